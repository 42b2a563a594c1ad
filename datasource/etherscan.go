// Copyright (c) of parts are held by the various contributors (see the CLA)
// Licensed under the MIT License. See LICENSE file in the project root for full license information.

package datasource

import (
	"context"
	"fmt"
	"io/ioutil"
	"net/http"

	"github.com/FactomWyomingEntity/prosper-roi/config"
	"github.com/FactomWyomingEntity/prosper-roi/forecast"
	"github.com/cenkalti/backoff"
	"github.com/spf13/viper"
	"go.uber.org/ratelimit"
)

// EtherscanDataSource is the hash rate chart export at "https://etherscan.io"
type EtherscanDataSource struct {
	url     string
	scale   float64
	limiter ratelimit.Limiter
}

func NewEtherscanDataSource(conf *viper.Viper) (*EtherscanDataSource, error) {
	s := new(EtherscanDataSource)
	s.url = conf.GetString(config.ConfigDataSourceURL)
	if s.url == "" {
		return nil, fmt.Errorf("%s requires a url", s.Name())
	}
	s.scale = conf.GetFloat64(config.ConfigDataSourceScale)

	if rps := conf.GetInt(config.ConfigDataSourceRateLimit); rps > 0 {
		s.limiter = ratelimit.New(rps)
	} else {
		s.limiter = ratelimit.NewUnlimited()
	}
	return s, nil
}

func (d *EtherscanDataSource) Name() string {
	return "Etherscan"
}

func (d *EtherscanDataSource) Url() string {
	return d.url
}

func (d *EtherscanDataSource) FetchHashRate(ctx context.Context) (forecast.TimeSeries, error) {
	data, err := d.FetchCSV(ctx)
	if err != nil {
		return nil, err
	}
	return ParseHashRateCSV(data, d.scale)
}

// FetchCSV downloads the export, retrying transient failures.
func (d *EtherscanDataSource) FetchCSV(ctx context.Context) ([]byte, error) {
	var body []byte

	operation := func() error {
		d.limiter.Take()
		req, err := http.NewRequest(http.MethodGet, d.url, nil)
		if err != nil {
			return backoff.Permanent(err)
		}

		resp, err := NewHTTPClient().Do(req.WithContext(ctx))
		if err != nil {
			dsLog.WithError(err).Warning("Failed to get response from Etherscan")
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return statusError(resp)
		}
		body, err = ioutil.ReadAll(resp.Body)
		return err
	}

	err := backoff.Retry(operation, backoff.WithContext(FetchExponentialBackOff(), ctx))
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", d.url, err)
	}
	return body, nil
}
