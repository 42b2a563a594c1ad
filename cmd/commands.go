package cmd

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/FactomWyomingEntity/prosper-roi/config"
	"github.com/FactomWyomingEntity/prosper-roi/database"
	"github.com/FactomWyomingEntity/prosper-roi/difficulty"
	"github.com/FactomWyomingEntity/prosper-roi/exit"
	"github.com/FactomWyomingEntity/prosper-roi/profitability"
	"github.com/FactomWyomingEntity/prosper-roi/simulation"
	"github.com/dustin/go-humanize"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run one simulation and report the return on investment",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := context.WithCancel(context.Background())
		exit.GlobalExitHandler.AddCancel(cancel)
		conf := viper.GetViper()

		network, err := loadNetworkModel(ctx, conf)
		if err != nil {
			log.WithError(err).Fatal("failed to build network hash rate model")
		}
		inv, err := investmentFromConfig(conf)
		if err != nil {
			log.WithError(err).Fatal("invalid investment")
		}

		pool := poolHashRate(conf, inv)
		s := seed(conf)
		cfg := simConfig(conf, network.Rate, pool)
		records, total, err := newSimulator(conf, s).Run(cfg)
		if err != nil {
			log.WithError(err).Fatal("simulation failed")
		}

		if conf.GetBool(config.ConfigSimDailyLog) {
			printDaily(records)
		}

		report, err := profitability.Evaluate(inv, total)
		if err != nil {
			log.WithError(err).Fatal("failed to evaluate")
		}
		log.WithFields(total.LogFields()).WithFields(log.Fields{
			"model":           network.Name,
			"expected_blocks": humanize.FormatFloat("#,###.##", expectedBlocks(cfg, conf.GetDuration(config.ConfigSimBlockTime))),
		}).Info("simulation complete")
		log.WithFields(report.LogFields()).Info("return on investment")

		if conf.GetBool(config.ConfigSQLRecord) {
			run := database.NewSingleRun(total)
			run.NetworkModel = network.Name
			run.Days = conf.GetInt(config.ConfigSimDays)
			run.Seed = s
			run.PoolHashRate = pool.Float64()
			run.Strict = conf.GetBool(config.ConfigSimStrict)
			run.ROI = report.ROI.String()
			record(conf, run)
		}
	},
}

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Run many seeded simulations and report the spread of outcomes",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := context.WithCancel(context.Background())
		exit.GlobalExitHandler.AddCancel(cancel)
		conf := viper.GetViper()

		network, err := loadNetworkModel(ctx, conf)
		if err != nil {
			log.WithError(err).Fatal("failed to build network hash rate model")
		}
		inv, err := investmentFromConfig(conf)
		if err != nil {
			log.WithError(err).Fatal("invalid investment")
		}

		pool := poolHashRate(conf, inv)
		s := seed(conf)
		res, err := simulation.RunBatch(ctx, simConfig(conf, network.Rate, pool), simulation.BatchConfig{
			Runs:    conf.GetInt(config.ConfigBatchRuns),
			Workers: conf.GetInt(config.ConfigBatchWorkers),
			Seed:    s,
			Policy:  policy(conf),
		})
		if err != nil {
			log.WithError(err).Fatal("batch failed")
		}
		log.WithFields(res.LogFields()).WithField("model", network.Name).Info("batch complete")

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "Percentile\tMined Value\tROI")
		var median *profitability.Report
		for _, p := range []struct {
			name  string
			value float64
		}{{"p05", res.P05RewardValue}, {"p50", res.P50RewardValue}, {"p95", res.P95RewardValue}} {
			report, err := profitability.Evaluate(inv, simulation.AggregateResult{TotalRewardValue: p.value})
			if err != nil {
				log.WithError(err).Fatal("failed to evaluate")
			}
			if p.name == "p50" {
				median = report
			}
			fmt.Fprintf(w, "%s\t$%s\t%s%%\n", p.name, humanize.FormatFloat("#,###.##", p.value), report.ROI.StringFixed(2))
		}
		_ = w.Flush()

		if conf.GetBool(config.ConfigSQLRecord) {
			run := database.NewBatchRun(res)
			run.NetworkModel = network.Name
			run.Days = conf.GetInt(config.ConfigSimDays)
			run.Seed = s
			run.PoolHashRate = pool.Float64()
			run.Strict = conf.GetBool(config.ConfigSimStrict)
			run.ROI = median.ROI.String()
			record(conf, run)
		}
	},
}

var fitCmd = &cobra.Command{
	Use:   "fit",
	Short: "Fit every trend model to the network hash rate and project it",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := context.WithCancel(context.Background())
		exit.GlobalExitHandler.AddCancel(cancel)
		conf := viper.GetViper()

		network, err := loadNetworkModel(ctx, conf)
		if err != nil {
			log.WithError(err).Fatal("failed to build network hash rate model")
		}
		if network.Models == nil {
			log.Infof("constant model, network hash rate held at %s", difficulty.HashRate(network.Rate(0)))
			return
		}

		days := conf.GetInt(config.ConfigSimDays)
		blockTime := conf.GetDuration(config.ConfigSimBlockTime)
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintf(w, "Model\tR²\tDay %d\tDay %d\tDifficulty Day %d\tEquation\n", days/2, days, days)
		for _, m := range network.Models.All() {
			end := difficulty.HashRate(m.Predict(float64(days)))
			fmt.Fprintf(w, "%s\t%.4f\t%s\t%s\t%s\t%s\n", m.Kind(), m.RSquared(),
				difficulty.HashRate(m.Predict(float64(days/2))),
				end,
				humanize.SI(difficulty.DifficultyFromHashRate(end, blockTime), "H"),
				m.String())
		}
		_ = w.Flush()
		for kind, err := range network.Models.Errors {
			log.WithError(err).WithField("model", kind).Warn("trend could not be fitted")
		}
		log.WithField("best", network.Models.Best().Kind()).Info("fit complete")
	},
}

var rigCmd = &cobra.Command{
	Use:   "rig",
	Short: "Show the cost of the reference mining rig",
	Run: func(cmd *cobra.Command, args []string) {
		conf := viper.GetViper()
		rig := profitability.DefaultRig(conf.GetFloat64(config.ConfigGPUCost))
		oc := conf.GetBool(config.ConfigOverclocked)

		inv, err := investmentFromConfig(conf)
		if err != nil {
			log.WithError(err).Fatal("invalid investment")
		}

		pool := poolHashRate(conf, inv)
		log.WithFields(log.Fields{
			"total_cost":     "$" + rig.TotalCost().StringFixed(2),
			"hashrate":       difficulty.MegaHash(rig.HashingPotential(oc)).String(),
			"cost_per_mh":    fmt.Sprintf("$%.4f", rig.CostPerHash(oc)),
			"pool_hashrate":  pool.String(),
			"reference_gpus": humanize.FormatFloat("#,###.", referenceGPUs(pool)),
		}).Info("rig")
	},
}

var historyCmd = &cobra.Command{
	Use:   "history [limit]",
	Short: "List recorded runs, newest first",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		limit := 20
		if len(args) == 1 {
			if _, err := fmt.Sscanf(args[0], "%d", &limit); err != nil {
				log.WithError(err).Fatal("limit must be a number")
			}
		}

		db, err := database.New(viper.GetViper())
		if err != nil {
			log.WithError(err).Fatal("failed to open database")
		}
		exit.GlobalExitHandler.AddExit(db.Close)
		defer exit.GlobalExitHandler.Close()

		runs, err := db.RecentRuns(limit)
		if err != nil {
			log.WithError(err).Fatal("failed to list runs")
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tRecorded\tKind\tModel\tDays\tRuns\tPool\tBlocks\tMined Value\tROI")
		for _, r := range runs {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%d\t%d\t%s\t%s\t$%s\t%s%%\n",
				r.ID, humanize.Time(r.RecordedAt), r.Kind, r.NetworkModel, r.Days, r.Runs,
				difficulty.HashRate(r.PoolHashRate), humanize.Comma(r.TotalBlocksMined),
				humanize.FormatFloat("#,###.##", r.TotalRewardValue), r.ROI)
		}
		_ = w.Flush()
	},
}

func printDaily(records []simulation.DailyRecord) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "Day\tBlocks\tReward\tPrice\tValue")
	for _, r := range records {
		fmt.Fprintf(w, "%d\t%d\t%.4f\t%.2f\t%.2f\n", r.Day, r.BlocksMined, r.Reward, r.EtherPrice, r.RewardValue)
	}
	_ = w.Flush()
}

func record(conf *viper.Viper, run *database.SimulationRun) {
	db, err := database.New(conf)
	if err != nil {
		log.WithError(err).Error("failed to open database, run not recorded")
		return
	}
	defer db.Close()

	if err := db.RecordRun(run); err != nil {
		log.WithError(err).Error("failed to record run")
		return
	}
	log.WithField("id", run.ID).Info("run recorded")
}
