package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/FactomWyomingEntity/prosper-roi/config"
	"github.com/FactomWyomingEntity/prosper-roi/exit"
	"github.com/FactomWyomingEntity/prosper-roi/loghelp"
	"github.com/FactomWyomingEntity/prosper-roi/profile"
	"github.com/FactomWyomingEntity/prosper-roi/simulation"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(batchCmd)
	rootCmd.AddCommand(fitCmd)
	rootCmd.AddCommand(rigCmd)
	rootCmd.AddCommand(historyCmd)

	rootCmd.PersistentFlags().String("log", "info", "Change the logging level. Can choose from 'trace', 'debug', 'info', 'warn', 'error', or 'fatal'")
	rootCmd.PersistentFlags().String("config", "", "Path to a config file, otherwise prosper-roi.toml is searched for in . and $HOME/.prosper-roi")
	rootCmd.PersistentFlags().String("source", "etherscan", "Hash rate history source, 'etherscan' or 'file'")
	rootCmd.PersistentFlags().Bool("cached", true, "Read the hash rate history from the cache file when present")
	rootCmd.PersistentFlags().String("cache", "export-NetworkHash.csv", "Hash rate history cache file")
	rootCmd.PersistentFlags().Int("lookback", 60, "Days of history to fit the network hash rate trend on")
	rootCmd.PersistentFlags().String("model", "linear", "Network hash rate trend: 'linear', 'quadratic', 'exponential', 'best', or 'constant'")
	rootCmd.PersistentFlags().Int("days", 360, "Simulation horizon in days")
	rootCmd.PersistentFlags().Int64("seed", 0, "Random seed, 0 seeds from the clock")
	rootCmd.PersistentFlags().Bool("strict", false, "Fail instead of clamping when the pool outgrows the network")
	rootCmd.PersistentFlags().Float64("investment", 40000, "Total investment in dollars")
	rootCmd.PersistentFlags().Bool("record", false, "Record the run in the database")
	rootCmd.PersistentFlags().Int("metrics", 0, "Serve pprof and prometheus metrics on this port, 0 is off")

	simulateCmd.Flags().Bool("daily", false, "Print every simulated day")
	batchCmd.Flags().Int("runs", 100, "Number of Monte-Carlo runs")
	batchCmd.Flags().Int("workers", 0, "Concurrent workers, 0 uses every cpu")
}

// Execute is cobra's entry point
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:              "prosper-roi",
	Short:            "Estimate the return of joining a mining pool",
	Long:             "Fits the historical network hash rate, simulates the blocks a pool would win day by day, and reports the return on the hardware investment.",
	PersistentPreRun: rootPreRunSetup,
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

// flagBindings maps every flag to the config key it overrides
var flagBindings = map[string]string{
	"log":        config.LoggingLevel,
	"source":     config.ConfigDataSourceName,
	"cached":     config.ConfigDataSourceCached,
	"cache":      config.ConfigDataSourceCachePath,
	"lookback":   config.ConfigForecastLookback,
	"model":      config.ConfigForecastModel,
	"days":       config.ConfigSimDays,
	"seed":       config.ConfigSimSeed,
	"strict":     config.ConfigSimStrict,
	"investment": config.ConfigInvestment,
	"record":     config.ConfigSQLRecord,
	"metrics":    config.ConfigMetricsPort,
	"daily":      config.ConfigSimDailyLog,
	"runs":       config.ConfigBatchRuns,
	"workers":    config.ConfigBatchWorkers,
}

// rootPreRunSetup is run before every command
func rootPreRunSetup(cmd *cobra.Command, args []string) {
	// Catch ctl+c
	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, os.Interrupt)
	go func() {
		<-signalChan
		log.Info("Gracefully closing")

		// We will give it 3 seconds to close gracefully.
		// If anything is hanging beyond that, just kill it.
		ctx, cancel := context.WithTimeout(context.Background(), time.Second*3)
		defer cancel()
		err := exit.GlobalExitHandler.CloseWithTimeout(ctx)
		if err != nil {
			log.Warn("took too long to close")
		}
		os.Exit(1)
	}()

	config.SetDefaults(viper.GetViper())
	for flag, key := range flagBindings {
		if f := cmd.Flags().Lookup(flag); f != nil {
			_ = viper.BindPFlag(key, f)
		}
	}

	SoftReadConfig(cmd)
	startMetrics()
}

// SoftReadConfig will not fail. Every command is happy with the defaults, a
// config file only overrides them.
func SoftReadConfig(cmd *cobra.Command) {
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		viper.SetConfigFile(path)
	} else {
		viper.SetConfigName("prosper-roi")
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME/.prosper-roi")
	}

	err := viper.ReadInConfig()
	initLogger()
	if err != nil {
		log.WithError(err).Debugf("failed to load config")
	}
}

func initLogger() {
	log.AddHook(loghelp.ContextHook{})
	switch strings.ToLower(viper.GetString(config.LoggingLevel)) {
	case "trace":
		log.SetLevel(log.TraceLevel)
	case "debug":
		log.SetLevel(log.DebugLevel)
	case "info":
		log.SetLevel(log.InfoLevel)
	case "warn":
		log.SetLevel(log.WarnLevel)
	case "error":
		log.SetLevel(log.ErrorLevel)
	case "fatal":
		log.SetLevel(log.FatalLevel)
	}
}

func startMetrics() {
	port := viper.GetInt(config.ConfigMetricsPort)
	if port <= 0 {
		return
	}
	simulation.RegisterPrometheus()
	srv := profile.StartProfiler(viper.GetBool(config.ConfigMetricsExpose), port)
	exit.GlobalExitHandler.AddExit(srv.Close)
}
