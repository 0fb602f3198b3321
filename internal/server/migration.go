package server

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"strings"

	"github.com/Shiwantha-I-Rodrigo/watch-tower/internal/common"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/mysql"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

type MigrateDatabaseOutput struct {
	PostMigrationVersion uint
	PreMigrationVersion  uint
	IsDatabaseDirty      bool
	VersionsApplied      []uint
}

type MigrateDatabaseOpts struct {
	Connection  *sql.DB
	Force       int
	ServiceLogs chan<- common.ServiceLog
}

// MigrateDatabase brings the schema fully up to date from the embedded
// migration files
func MigrateDatabase(opts MigrateDatabaseOpts) (*MigrateDatabaseOutput, error) {
	driver, err := mysql.WithInstance(opts.Connection, &mysql.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to create mysql driver: %w", err)
	}

	source, err := iofs.New(migrationFiles, "migrations")
	if err != nil {
		return nil, fmt.Errorf("failed to create iofs source: %w", err)
	}

	migrator, err := migrate.NewWithInstance("iofs", source, "mysql", driver)
	if err != nil {
		return nil, fmt.Errorf("failed to create migrator instance: %w", err)
	}

	output := &MigrateDatabaseOutput{}

	output.PreMigrationVersion, output.IsDatabaseDirty, err = migrator.Version()
	if err != nil {
		if !strings.Contains(err.Error(), "no migration") {
			return nil, fmt.Errorf("failed to get version of current migration: %w", err)
		}
	}
	if output.IsDatabaseDirty {
		if opts.Force == 0 {
			return output, fmt.Errorf("failed to get a clean slate to run migrations on (dirty version: %v)", output.PreMigrationVersion)
		}
		if err := migrator.Force(opts.Force); err != nil {
			return nil, fmt.Errorf("failed to force version[%v]: %w", opts.Force, err)
		}
	}
	opts.ServiceLogs <- common.ServiceLogf(common.LogLevelDebug, "migrator version: %v (dirty: %v)", output.PreMigrationVersion, output.IsDatabaseDirty)

	if err := migrator.Up(); err != nil {
		if !errors.Is(err, migrate.ErrNoChange) {
			version, isDirty, _ := migrator.Version()
			output.PostMigrationVersion = version
			output.IsDatabaseDirty = isDirty
			return output, fmt.Errorf("failed to complete migrations: %w", err)
		}
		opts.ServiceLogs <- common.ServiceLogf(common.LogLevelDebug, "no schema change detected")
	}

	version, isDirty, _ := migrator.Version()
	output.PostMigrationVersion = version
	output.IsDatabaseDirty = isDirty
	for applied := output.PreMigrationVersion + 1; applied <= output.PostMigrationVersion; applied++ {
		output.VersionsApplied = append(output.VersionsApplied, applied)
	}
	return output, nil
}
