package db

import (
	"time"

	"github.com/go-sql-driver/mysql"
)

// MariaDbConfig groups the pool settings read from MARIADB_* variables.
type MariaDbConfig struct {
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// WithMultiStatements returns a copy whose DSN allows the multi statement
// scripts used by migrations. A DSN the driver cannot parse is kept as is so
// New reports it.
func (c MariaDbConfig) WithMultiStatements() MariaDbConfig {
	parsed, err := mysql.ParseDSN(c.DSN)
	if err != nil {
		return c
	}
	parsed.MultiStatements = true
	c.DSN = parsed.FormatDSN()
	return c
}
