package scheduler

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/overtime-counters-api/internal/config"
	"github.com/vfg2006/overtime-counters-api/internal/usecases/ingesting"
)

const (
	processedDir = "processed"
	failedDir    = "failed"
)

// InboxImportSyncConfig representa a configuração do agendador de importação da pasta de entrada
type InboxImportSyncConfig struct {
	CronSchedule string
	Dir          string
	SyncEnabled  bool
}

// InboxImportSummary é o resultado de uma varredura da pasta de entrada
type InboxImportSummary struct {
	Imported []string `json:"imported"`
	Failed   []string `json:"failed"`
}

// InboxImportSyncService importa periodicamente as planilhas deixadas na pasta de entrada
type InboxImportSyncService struct {
	scheduler           *gocron.Scheduler
	config              InboxImportSyncConfig
	ingestor            ingesting.Ingestor
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
	lastSummary         InboxImportSummary
}

func NewInboxImportSyncService(ingestor ingesting.Ingestor, appConfig *config.Config) *InboxImportSyncService {
	syncConfig := InboxImportSyncConfig{
		CronSchedule: appConfig.InboxImport.CronSchedule,
		Dir:          appConfig.InboxImport.Dir,
		SyncEnabled:  appConfig.InboxImport.Enabled,
	}

	logrus.WithFields(logrus.Fields{
		"cron_schedule": syncConfig.CronSchedule,
		"dir":           syncConfig.Dir,
		"sync_enabled":  syncConfig.SyncEnabled,
	}).Info("Configuração do agendador de importação da pasta de entrada carregada")

	return &InboxImportSyncService{
		scheduler: gocron.NewScheduler(time.Local),
		config:    syncConfig,
		ingestor:  ingestor,
	}
}

// Start inicia o agendador
func (s *InboxImportSyncService) Start(ctx context.Context) error {
	if !s.config.SyncEnabled {
		logrus.Info("Importação da pasta de entrada desabilitada por configuração")
		return nil
	}

	if err := s.ensureDirs(); err != nil {
		return err
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador de importação da pasta de entrada")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.syncInbox(ctx)
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar importação da pasta de entrada: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de importação da pasta de entrada")
		s.scheduler.Stop()
	}()

	return nil
}

// syncInbox importa cada planilha da pasta e a move para processed/ ou failed/
func (s *InboxImportSyncService) syncInbox(ctx context.Context) InboxImportSummary {
	summary := InboxImportSummary{Imported: []string{}, Failed: []string{}}

	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Importação da pasta de entrada já em andamento, ignorando")
		return summary
	}
	s.syncRunning = true
	s.lastSyncStartedAt = time.Now()
	s.syncMutex.Unlock()

	defer func() {
		s.syncMutex.Lock()
		s.syncRunning = false
		s.lastSyncCompletedAt = time.Now()
		s.lastSummary = summary
		s.syncMutex.Unlock()
	}()

	if err := s.ensureDirs(); err != nil {
		logrus.WithError(err).Error("Erro ao preparar a pasta de entrada")
		return summary
	}

	files, err := s.pendingFiles()
	if err != nil {
		logrus.WithError(err).Error("Erro ao listar planilhas da pasta de entrada")
		return summary
	}

	if len(files) == 0 {
		logrus.Debug("Nenhuma planilha na pasta de entrada")
		return summary
	}

	for _, name := range files {
		if ctx.Err() != nil {
			break
		}

		target := processedDir
		if err := s.importFile(ctx, name); err != nil {
			logrus.WithError(err).WithField("file_name", name).Error("Erro ao importar planilha da pasta de entrada")
			target = failedDir
			summary.Failed = append(summary.Failed, name)
		} else {
			summary.Imported = append(summary.Imported, name)
		}

		if err := s.moveFile(name, target); err != nil {
			logrus.WithError(err).WithField("file_name", name).Error("Erro ao mover planilha processada")
		}
	}

	logrus.WithFields(logrus.Fields{
		"imported": len(summary.Imported),
		"failed":   len(summary.Failed),
	}).Info("Importação da pasta de entrada concluída")

	return summary
}

func (s *InboxImportSyncService) ensureDirs() error {
	for _, dir := range []string{s.config.Dir, s.targetDir(processedDir), s.targetDir(failedDir)} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("erro ao criar diretório %s: %w", dir, err)
		}
	}
	return nil
}

func (s *InboxImportSyncService) pendingFiles() ([]string, error) {
	entries, err := os.ReadDir(s.config.Dir)
	if err != nil {
		return nil, err
	}

	files := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), "~$") {
			continue
		}
		if strings.EqualFold(filepath.Ext(entry.Name()), ".xlsx") {
			files = append(files, entry.Name())
		}
	}
	sort.Strings(files)

	return files, nil
}

func (s *InboxImportSyncService) importFile(ctx context.Context, name string) error {
	content, err := os.ReadFile(filepath.Join(s.config.Dir, name))
	if err != nil {
		return err
	}

	report, err := s.ingestor.Import(ctx, name, content, ingesting.Overrides{})
	if err != nil {
		return err
	}

	logrus.WithFields(logrus.Fields{
		"file_name":       name,
		"batch_id":        report.BatchID,
		"imported_sheets": report.ImportedSheets,
		"skipped_sheets":  report.SkippedSheets,
	}).Info("Planilha da pasta de entrada importada")

	return nil
}

// moveFile prefixa o nome com o horário para não sobrescrever envios anteriores do mesmo arquivo
func (s *InboxImportSyncService) moveFile(name, target string) error {
	dest := filepath.Join(s.targetDir(target), fmt.Sprintf("%s_%s", time.Now().Format("20060102T150405"), name))
	return os.Rename(filepath.Join(s.config.Dir, name), dest)
}

func (s *InboxImportSyncService) targetDir(name string) string {
	return filepath.Join(s.config.Dir, name)
}

// TriggerManualSync inicia manualmente uma varredura da pasta de entrada
func (s *InboxImportSyncService) TriggerManualSync() {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Importação da pasta de entrada já em andamento, ignorando solicitação manual")
		return
	}
	s.syncMutex.Unlock()

	logrus.Info("Iniciando importação manual da pasta de entrada")
	go s.syncInbox(context.Background())
}

// GetStatus retorna o status atual da importação
func (s *InboxImportSyncService) GetStatus() map[string]any {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	return map[string]any{
		"sync_running":           s.syncRunning,
		"sync_cron":              s.config.CronSchedule,
		"sync_enabled":           s.config.SyncEnabled,
		"dir":                    s.config.Dir,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
		"last_imported":          s.lastSummary.Imported,
		"last_failed":            s.lastSummary.Failed,
	}
}
