package database

import (
	"fmt"

	"github.com/FactomWyomingEntity/prosper-roi/config"
	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/postgres"
	_ "github.com/jinzhu/gorm/dialects/sqlite"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

var dbLog = log.WithField("mod", "db")

// SqlDatabase records simulation runs. Nothing in the simulator reads from
// it, it is purely a history for the cli.
type SqlDatabase struct {
	*gorm.DB
}

// New opens the configured database and migrates the tables. For sqlite the
// path is a file (or ":memory:"), for postgres it is the connection string.
func New(conf *viper.Viper) (*SqlDatabase, error) {
	dialect := conf.GetString(config.ConfigSQLDialect)
	path := conf.GetString(config.ConfigSQLPath)

	db, err := gorm.Open(dialect, path)
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", dialect, err)
	}

	s := &SqlDatabase{DB: db}
	if err := s.AutoMigrate(&SimulationRun{}).Error; err != nil {
		_ = db.Close()
		return nil, err
	}
	dbLog.WithFields(log.Fields{"dialect": dialect, "path": path}).Debug("database opened")
	return s, nil
}

func (s *SqlDatabase) Close() error {
	return s.DB.Close()
}

// RecordRun inserts a finished run.
func (s *SqlDatabase) RecordRun(run *SimulationRun) error {
	return s.Create(run).Error
}

// RecentRuns returns up to limit runs, newest first.
func (s *SqlDatabase) RecentRuns(limit int) ([]SimulationRun, error) {
	var runs []SimulationRun
	err := s.Order("id desc").Limit(limit).Find(&runs).Error
	return runs, err
}
