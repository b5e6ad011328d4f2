package health

import (
	"time"

	"gorm.io/gorm"
)

type Status string

const (
	StatusUp   Status = "up"
	StatusDown Status = "down"
)

type Checker struct {
	db        *gorm.DB
	version   string
	startedAt time.Time
}

type Report struct {
	Status   Status `json:"status"`
	Version  string `json:"version"`
	UptimeS  int64  `json:"uptime_seconds"`
	Database Status `json:"database"`
}

func NewChecker(db *gorm.DB, version string) *Checker {
	return &Checker{db: db, version: version, startedAt: time.Now()}
}

func (c *Checker) Check() Report {
	dbStatus := StatusUp
	sqlDB, err := c.db.DB()
	if err != nil || sqlDB.Ping() != nil {
		dbStatus = StatusDown
	}

	overall := StatusUp
	if dbStatus == StatusDown {
		overall = StatusDown
	}

	return Report{
		Status:   overall,
		Version:  c.version,
		UptimeS:  int64(time.Since(c.startedAt).Seconds()),
		Database: dbStatus,
	}
}
