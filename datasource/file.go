package datasource

import (
	"context"
	"fmt"
	"io/ioutil"
	"os"

	"github.com/FactomWyomingEntity/prosper-roi/config"
	"github.com/FactomWyomingEntity/prosper-roi/forecast"
	"github.com/spf13/viper"
)

// FileDataSource reads a previously downloaded export from disk.
type FileDataSource struct {
	path  string
	scale float64
}

func NewFileDataSource(conf *viper.Viper) (*FileDataSource, error) {
	s := new(FileDataSource)
	s.path = conf.GetString(config.ConfigDataSourceCachePath)
	if s.path == "" {
		return nil, fmt.Errorf("%s requires a path", s.Name())
	}
	s.scale = conf.GetFloat64(config.ConfigDataSourceScale)
	return s, nil
}

func (d *FileDataSource) Name() string {
	return "File"
}

func (d *FileDataSource) Url() string {
	return d.path
}

func (d *FileDataSource) FetchCSV(_ context.Context) ([]byte, error) {
	return ioutil.ReadFile(d.path)
}

func (d *FileDataSource) FetchHashRate(ctx context.Context) (forecast.TimeSeries, error) {
	data, err := d.FetchCSV(ctx)
	if err != nil {
		return nil, err
	}
	return ParseHashRateCSV(data, d.scale)
}

// CachedDataSource serves the export from a file when present, otherwise it
// fetches from the upstream source and writes the file for next time.
type CachedDataSource struct {
	Path     string
	Upstream IDataSource
	scale    float64
}

func NewCachedDataSource(path string, upstream IDataSource, scale float64) *CachedDataSource {
	return &CachedDataSource{Path: path, Upstream: upstream, scale: scale}
}

func (d *CachedDataSource) Name() string {
	return "Cached" + d.Upstream.Name()
}

func (d *CachedDataSource) Url() string {
	return d.Upstream.Url()
}

func (d *CachedDataSource) FetchCSV(ctx context.Context) ([]byte, error) {
	data, err := ioutil.ReadFile(d.Path)
	if err == nil {
		dsLog.WithField("path", d.Path).Debug("using cached export")
		return data, nil
	}
	if !os.IsNotExist(err) {
		return nil, err
	}

	dsLog.WithField("path", d.Path).Info("cache miss, fetching from upstream")
	data, err = d.Upstream.FetchCSV(ctx)
	if err != nil {
		return nil, err
	}
	if werr := ioutil.WriteFile(d.Path, data, 0644); werr != nil {
		dsLog.WithError(werr).Warn("failed to write cache file")
	}
	return data, nil
}

func (d *CachedDataSource) FetchHashRate(ctx context.Context) (forecast.TimeSeries, error) {
	data, err := d.FetchCSV(ctx)
	if err != nil {
		return nil, err
	}
	return ParseHashRateCSV(data, d.scale)
}
