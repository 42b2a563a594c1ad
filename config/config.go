package config

import (
	"time"

	"github.com/FactomWyomingEntity/prosper-roi/difficulty"
	"github.com/spf13/viper"
)

// All config locations
const (
	LoggingLevel = "app.loglevel"

	ConfigDataSourceName      = "DataSource.Name"
	ConfigDataSourceURL       = "DataSource.URL"
	ConfigDataSourceCachePath = "DataSource.CachePath"
	ConfigDataSourceCached    = "DataSource.Cached"
	ConfigDataSourceRateLimit = "DataSource.RateLimit"
	ConfigDataSourceScale     = "DataSource.Scale"
	ConfigDataSourceTimeout   = "DataSource.Timeout"

	ConfigForecastLookback = "Forecast.LookbackDays"
	ConfigForecastModel    = "Forecast.Model"
	ConfigForecastScale    = "Forecast.NetworkScale"

	ConfigSimDays       = "Simulation.Days"
	ConfigSimBlockTime  = "Simulation.BlockTime"
	ConfigSimReward     = "Simulation.BlockReward"
	ConfigSimPriceFrom  = "Simulation.PriceFrom"
	ConfigSimPriceTo    = "Simulation.PriceTo"
	ConfigSimSeed       = "Simulation.Seed"
	ConfigSimStrict     = "Simulation.StrictProbability"
	ConfigSimDailyLog   = "Simulation.DailyLog"
	ConfigBatchRuns     = "Batch.Runs"
	ConfigBatchWorkers  = "Batch.Workers"
	ConfigPoolFeeRate   = "Pool.FeeRate"
	ConfigPoolHashRate  = "Pool.HashRate"
	ConfigInvestment    = "Profitability.TotalInvestment"
	ConfigGPUCost       = "Profitability.GPUCost"
	ConfigOverclocked   = "Profitability.Overclocked"
	ConfigResalePercent = "Profitability.AssetResellPercentage"
	ConfigMgmtFactor    = "Profitability.ManagementFeeFactor"

	ConfigSQLDialect = "Database.dialect"
	ConfigSQLPath    = "Database.path"
	ConfigSQLRecord  = "Database.record"

	ConfigMetricsPort   = "Metrics.port"
	ConfigMetricsExpose = "Metrics.expose"
)

func SetDefaults(conf *viper.Viper) {
	// All config defaults
	conf.SetDefault(LoggingLevel, "info")

	conf.SetDefault(ConfigDataSourceName, "etherscan")
	conf.SetDefault(ConfigDataSourceURL, "https://etherscan.io/chart/hashrate?output=csv")
	conf.SetDefault(ConfigDataSourceCachePath, "export-NetworkHash.csv")
	conf.SetDefault(ConfigDataSourceCached, true)
	conf.SetDefault(ConfigDataSourceRateLimit, 1)           // requests per second
	conf.SetDefault(ConfigDataSourceScale, difficulty.Giga) // etherscan reports GH/s
	conf.SetDefault(ConfigDataSourceTimeout, time.Second*30)

	conf.SetDefault(ConfigForecastLookback, 60)
	conf.SetDefault(ConfigForecastModel, "linear")
	conf.SetDefault(ConfigForecastScale, 1) // multiplies the fitted network trend

	conf.SetDefault(ConfigSimDays, 360)
	conf.SetDefault(ConfigSimBlockTime, time.Second*20)
	conf.SetDefault(ConfigSimReward, 5.07)
	conf.SetDefault(ConfigSimPriceFrom, 300)
	conf.SetDefault(ConfigSimPriceTo, 50)
	conf.SetDefault(ConfigSimSeed, 0) // 0 seeds from the clock
	conf.SetDefault(ConfigSimStrict, false)
	conf.SetDefault(ConfigSimDailyLog, false)

	conf.SetDefault(ConfigBatchRuns, 100)
	conf.SetDefault(ConfigBatchWorkers, 0)

	conf.SetDefault(ConfigPoolFeeRate, "0.15")
	conf.SetDefault(ConfigPoolHashRate, 0) // 0 derives it from the investment

	conf.SetDefault(ConfigInvestment, 40000)
	conf.SetDefault(ConfigGPUCost, 300)
	conf.SetDefault(ConfigOverclocked, true)
	conf.SetDefault(ConfigResalePercent, "0.3")
	conf.SetDefault(ConfigMgmtFactor, "6.75")

	conf.SetDefault(ConfigSQLDialect, "sqlite3")
	conf.SetDefault(ConfigSQLPath, "prosper-roi.db")
	conf.SetDefault(ConfigSQLRecord, false)

	conf.SetDefault(ConfigMetricsPort, 0) // 0 disables the endpoint
	conf.SetDefault(ConfigMetricsExpose, false)
}
