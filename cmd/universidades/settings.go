package main

import (
	"fmt"

	"github.com/unimx/universidades/internal/config"
	"github.com/unimx/universidades/internal/database"
)

const defaultSQLitePath = "./universidades.db"

// resolveDatabase combines flags, environment and pool settings. Flags win over
// DB_DRIVER/DB_DSN, which win over the UNIVERSIDADES_DB_* variables.
func resolveDatabase(driverFlag, dsnFlag string) (database.Options, error) {
	name := driverFlag
	if name == "" {
		name = config.Getenv("DB_DRIVER", config.EnvName(config.EnvPrefix, "db.driver"))
	}
	driver, err := database.ParseDriver(name)
	if err != nil {
		return database.Options{}, err
	}

	dsn := dsnFlag
	if dsn == "" {
		dsn = config.Getenv("DB_DSN", config.EnvName(config.EnvPrefix, "db.dsn"))
	}
	if dsn == "" {
		if driver != database.DriverSQLite {
			return database.Options{}, fmt.Errorf("--dsn flag or DB_DSN environment variable is required for %s", driver)
		}
		dsn = defaultSQLitePath
	}

	opts := database.DefaultOptions(driver, dsn)
	loader := config.NewLoader(config.NewEnvSettings(config.EnvPrefix))
	opts.MaxOpenConns = loader.Int("db.max_open_conns", opts.MaxOpenConns)
	opts.MaxIdleConns = loader.Int("db.max_idle_conns", opts.MaxIdleConns)
	opts.ConnMaxLifetime = loader.Duration("db.conn_max_lifetime", opts.ConnMaxLifetime)
	return opts, nil
}
