package api

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/justinas/alice"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/overtime-counters-api/internal/api/handler"
	"github.com/vfg2006/overtime-counters-api/internal/api/handler/router"
	"github.com/vfg2006/overtime-counters-api/internal/config"
	"github.com/vfg2006/overtime-counters-api/internal/scheduler"
	"github.com/vfg2006/overtime-counters-api/internal/usecases/analyzing"
	"github.com/vfg2006/overtime-counters-api/internal/usecases/authenticating"
	"github.com/vfg2006/overtime-counters-api/internal/usecases/ingesting"
	"github.com/vfg2006/overtime-counters-api/pkg/middleware"
)

const shutdownTimeout = 15 * time.Second

type Server struct {
	httpServer *http.Server
}

func New(
	config *config.Config,
	ingestService ingesting.Ingestor,
	analyticsService analyzing.Analyzer,
	authenticator authenticating.Authenticator,
	inboxImportSyncService *scheduler.InboxImportSyncService,
) (*Server, error) {
	cronServices := handler.CronJobServices{}
	if inboxImportSyncService != nil {
		cronServices.InboxImportSyncService = inboxImportSyncService
	}

	maxUploadBytes := config.Ingestion.MaxUploadMB << 20
	if maxUploadBytes <= 0 {
		return nil, fmt.Errorf("INGESTION_MAX_UPLOAD_MB inválido: %d", config.Ingestion.MaxUploadMB)
	}

	rt := router.New(
		router.WithRoutes(handler.Healthcheck()...),
		router.WithRoutes(handler.Imports(ingestService, maxUploadBytes)...),
		router.WithRoutes(handler.Analytics(analyticsService)...),
		router.WithRoutes(handler.CronJobs(cronServices)...),
	)

	middlewares := []alice.Constructor{
		middleware.LogPanicMiddleware(),
		middleware.LoggingMiddleware(),
		middleware.Cors(config.Server.AllowedOrigins),
		middleware.AuthMiddleware(authenticator),
	}

	srv := &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port),
			Handler:           alice.New(middlewares...).Then(rt),
			ReadHeaderTimeout: 2 * time.Second,
		},
	}

	return srv, nil
}

func (s Server) Run(ctx context.Context) error {
	go func() {
		logrus.WithFields(logrus.Fields{
			"address": s.httpServer.Addr,
		}).Info("Servidor iniciando")

		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Error("Erro durante a execução do servidor")
		}
	}()

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	select {
	case <-done:
		logrus.Info("Sinal de interrupção recebido")
	case <-ctx.Done():
		logrus.Info("Contexto de aplicação cancelado")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	logrus.WithField("timeout", shutdownTimeout.String()).Info("Iniciando desligamento gracioso do servidor")

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("Erro durante o desligamento do servidor")
		return err
	}

	logrus.Info("Servidor desligado com sucesso")
	return nil
}
