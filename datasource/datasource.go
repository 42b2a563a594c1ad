// Copyright (c) of parts are held by the various contributors (see the CLA)
// Licensed under the MIT License. See LICENSE file in the project root for full license information.

package datasource

import (
	"context"
	"fmt"
	"strings"

	"github.com/FactomWyomingEntity/prosper-roi/config"
	"github.com/FactomWyomingEntity/prosper-roi/forecast"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

var dsLog = log.WithField("mod", "datasource")

// IDataSource supplies the historical network hash rate. Retrieval, retries,
// caching and parsing all happen here, the forecaster only ever sees the
// parsed series.
type IDataSource interface {
	Name() string
	Url() string

	// FetchCSV returns the raw export, oldest row first.
	FetchCSV(ctx context.Context) ([]byte, error)
	// FetchHashRate returns the parsed series in H/s.
	FetchHashRate(ctx context.Context) (forecast.TimeSeries, error)
}

// AllDataSources is the list of names NewDataSource understands.
var AllDataSources = []string{"etherscan", "file"}

// NewDataSource builds the named source from the config. When caching is on
// the source is wrapped in a CachedDataSource.
func NewDataSource(source string, conf *viper.Viper) (IDataSource, error) {
	var s IDataSource
	var err error

	switch strings.ToLower(source) {
	case "etherscan":
		s, err = NewEtherscanDataSource(conf)
	case "file":
		s, err = NewFileDataSource(conf)
	default:
		return nil, fmt.Errorf("%s is not a supported data source, choose from %s",
			source, strings.Join(AllDataSources, ", "))
	}
	if err != nil {
		return nil, err
	}

	if conf.GetBool(config.ConfigDataSourceCached) && !strings.EqualFold(source, "file") {
		return NewCachedDataSource(conf.GetString(config.ConfigDataSourceCachePath), s, conf.GetFloat64(config.ConfigDataSourceScale)), nil
	}
	return s, nil
}
