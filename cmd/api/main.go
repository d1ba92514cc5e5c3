package main

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/overtime-counters-api/infrastructure/database/sqldb"
	"github.com/vfg2006/overtime-counters-api/infrastructure/repository"
	"github.com/vfg2006/overtime-counters-api/infrastructure/workbook"
	"github.com/vfg2006/overtime-counters-api/internal/api"
	"github.com/vfg2006/overtime-counters-api/internal/config"
	"github.com/vfg2006/overtime-counters-api/internal/scheduler"
	"github.com/vfg2006/overtime-counters-api/internal/usecases/analyzing"
	"github.com/vfg2006/overtime-counters-api/internal/usecases/authenticating"
	"github.com/vfg2006/overtime-counters-api/internal/usecases/ingesting"
	"github.com/vfg2006/overtime-counters-api/pkg/log"
)

func main() {
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	if err := log.Setup(cfg.App.Env, cfg.App.LogLevel); err != nil {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", cfg.App.LogLevel)
		logrus.SetLevel(logrus.InfoLevel)
	}
	logrus.Infof("Nível de log configurado para: %s", logrus.GetLevel())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	conn := dbconn(ctx, cfg.Database)
	defer conn.Close()

	if cfg.Database.MigrateOnStart {
		if err := sqldb.Migrate(conn); err != nil {
			logrus.WithError(err).Fatal("Erro ao aplicar migrações")
		}
		logrus.Info("Migrações aplicadas")
	}

	periodRepo := repository.NewPeriodRepository(conn)
	driverRepo := repository.NewDriverRepository(conn)
	recordRepo := repository.NewMonthlyRecordRepository(conn, cfg.Database.InsertBatchSize)
	importLogRepo := repository.NewImportLogRepository(conn)

	authenticator := authenticating.NewService(cfg.Auth)

	ingestOptions := ingesting.OptionsFromConfig(cfg.Ingestion)
	ingestService := ingesting.NewService(
		workbook.NewExcelReader(),
		conn,
		periodRepo,
		driverRepo,
		recordRepo,
		importLogRepo,
		ingestOptions,
	)

	analyticsService := analyzing.NewService(
		periodRepo,
		driverRepo,
		recordRepo,
		cfg.Analytics.PageSize,
		ingestOptions.DefaultBufferHours,
	)

	inboxImportSyncService := scheduler.NewInboxImportSyncService(ingestService, cfg)
	if err := inboxImportSyncService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de importação da pasta de entrada")
	}

	server, err := api.New(
		cfg,
		ingestService,
		analyticsService,
		authenticator,
		inboxImportSyncService,
	)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// dbconn cria a conexão com o banco configurado (postgres ou sqlite3)
func dbconn(ctx context.Context, dbConfig config.Database) *sqldb.Connection {
	conn, err := sqldb.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).WithField("driver", dbConfig.Driver).Fatal("Erro ao conectar ao banco de dados")
	}

	logrus.WithField("driver", conn.Driver()).Info("Conexão com o banco de dados estabelecida com sucesso")
	return conn
}
