package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
)

// Tables lists the catalog tables in dependency order
var Tables = []string{
	"universidad",
	"nivel_educativo",
	"area",
	"carrera",
	"carrera_area",
	"beca",
	"foto",
	"video",
	"estado",
	"municipio",
	"ubicacion",
}

// Migrate applies the bundled catalog schema. Production databases are managed
// elsewhere; this exists for development, seeding and tests.
func (db *DB) Migrate(ctx context.Context) error {
	log.Info().Msg("Running database migrations")

	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	var currentVersion int
	err = db.QueryRowContext(ctx, "SELECT COALESCE(MAX(version), 0) FROM schema_migrations").Scan(&currentVersion)
	if err != nil {
		return fmt.Errorf("failed to get current migration version: %w", err)
	}

	log.Debug().Int("current_version", currentVersion).Msg("Current schema version")

	record := db.dialect.Rebind("INSERT INTO schema_migrations (version) VALUES (?)")

	for _, migration := range migrations {
		if migration.Version <= currentVersion {
			continue
		}
		log.Info().Int("version", migration.Version).Str("name", migration.Name).Msg("Applying migration")

		if err := db.Transaction(ctx, func(tx *sql.Tx) error {
			statements := splitSQLStatements(migration.SQL)
			for i, stmt := range statements {
				if _, err := tx.ExecContext(ctx, stmt); err != nil {
					return fmt.Errorf("migration %d statement %d failed: %w", migration.Version, i+1, err)
				}
			}

			if _, err := tx.ExecContext(ctx, record, migration.Version); err != nil {
				return fmt.Errorf("failed to record migration %d: %w", migration.Version, err)
			}

			return nil
		}); err != nil {
			return err
		}
	}

	log.Info().Msg("Database migrations complete")
	return nil
}

type migration struct {
	Version int
	Name    string
	SQL     string
}

// splitSQLStatements splits a SQL string into individual statements.
// It handles comments and only returns non-empty statements.
func splitSQLStatements(sql string) []string {
	var statements []string
	var current strings.Builder

	for line := range strings.SplitSeq(sql, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "--") {
			continue
		}
		current.WriteString(line)
		current.WriteString("\n")

		if strings.HasSuffix(trimmed, ";") {
			stmt := strings.TrimSpace(current.String())
			if stmt != "" && stmt != ";" {
				statements = append(statements, stmt)
			}
			current.Reset()
		}
	}

	if remaining := strings.TrimSpace(current.String()); remaining != "" {
		statements = append(statements, remaining)
	}

	return statements
}

var migrations = []migration{
	{
		Version: 1,
		Name:    "catalog_schema",
		SQL: `
			-- Institutions; tipo 0 = publica, 1 = privada
			CREATE TABLE universidad (
				id INTEGER PRIMARY KEY,
				nombre VARCHAR(255) NOT NULL,
				ruta_escudo VARCHAR(512) NOT NULL DEFAULT '',
				tipo INTEGER NOT NULL DEFAULT 0
			);

			CREATE TABLE nivel_educativo (
				id INTEGER PRIMARY KEY,
				nombre VARCHAR(64) NOT NULL
			);

			CREATE TABLE area (
				id INTEGER PRIMARY KEY,
				nombre VARCHAR(128) NOT NULL
			);

			-- Degree programs
			CREATE TABLE carrera (
				id INTEGER PRIMARY KEY,
				universidad_id INTEGER NOT NULL REFERENCES universidad(id),
				nivel_educativo_id INTEGER NOT NULL REFERENCES nivel_educativo(id),
				nombre VARCHAR(255) NOT NULL,
				recurso VARCHAR(1024)
			);

			CREATE TABLE carrera_area (
				carrera_id INTEGER NOT NULL REFERENCES carrera(id),
				area_id INTEGER NOT NULL REFERENCES area(id),
				PRIMARY KEY (carrera_id, area_id)
			);

			CREATE TABLE beca (
				id INTEGER PRIMARY KEY,
				universidad_id INTEGER NOT NULL REFERENCES universidad(id),
				titulo VARCHAR(255) NOT NULL
			);

			CREATE TABLE foto (
				id INTEGER PRIMARY KEY,
				universidad_id INTEGER NOT NULL REFERENCES universidad(id),
				titulo VARCHAR(255) NOT NULL,
				recurso VARCHAR(1024)
			);

			-- recurso holds the YouTube watch id, not the full URL
			CREATE TABLE video (
				id INTEGER PRIMARY KEY,
				universidad_id INTEGER NOT NULL REFERENCES universidad(id),
				titulo VARCHAR(255) NOT NULL,
				recurso VARCHAR(64)
			);

			CREATE TABLE estado (
				id INTEGER PRIMARY KEY,
				nombre VARCHAR(128) NOT NULL
			);

			CREATE TABLE municipio (
				id INTEGER PRIMARY KEY,
				estado_id INTEGER NOT NULL REFERENCES estado(id),
				nombre VARCHAR(128) NOT NULL
			);

			-- url_maps stores the Google Maps <iframe> embed snippet
			CREATE TABLE ubicacion (
				universidad_id INTEGER PRIMARY KEY REFERENCES universidad(id),
				num_interior VARCHAR(32),
				num_exterior VARCHAR(32),
				calle VARCHAR(255),
				colonia VARCHAR(255),
				ciudad VARCHAR(255),
				municipio_id INTEGER NOT NULL REFERENCES municipio(id),
				codigo_postal VARCHAR(16),
				url_maps TEXT
			);

			CREATE INDEX idx_carrera_universidad ON carrera (universidad_id);
			CREATE INDEX idx_carrera_area_area ON carrera_area (area_id);
			CREATE INDEX idx_beca_universidad ON beca (universidad_id);
			CREATE INDEX idx_foto_universidad ON foto (universidad_id);
			CREATE INDEX idx_video_universidad ON video (universidad_id);
		`,
	},
}
