package sqldb

import (
	"embed"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	migratepostgres "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/pkg/errors"
	"github.com/vfg2006/overtime-counters-api/internal/config"
)

//go:embed migrations/postgres/*.sql migrations/sqlite3/*.sql
var migrationFiles embed.FS

// Migrate aplica todas as migrações pendentes do driver da conexão
func Migrate(conn *Connection) error {
	source, err := iofs.New(migrationFiles, "migrations/"+conn.Driver())
	if err != nil {
		return errors.Wrap(err, "erro ao abrir migrações embutidas")
	}

	var driver database.Driver
	switch conn.Driver() {
	case config.DriverSQLite:
		driver, err = sqlite3.WithInstance(conn.DB, &sqlite3.Config{})
	default:
		driver, err = migratepostgres.WithInstance(conn.DB, &migratepostgres.Config{})
	}
	if err != nil {
		return errors.Wrapf(err, "erro ao preparar driver de migração %s", conn.Driver())
	}

	m, err := migrate.NewWithInstance("iofs", source, conn.Driver(), driver)
	if err != nil {
		return errors.Wrap(err, "erro ao criar migrador")
	}

	err = m.Up()
	if err == migrate.ErrNoChange {
		return nil
	}
	return errors.Wrap(err, "erro ao aplicar migrações")
}
