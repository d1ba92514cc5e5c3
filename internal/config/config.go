package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite3"
)

type Config struct {
	App         App         `mapstructure:",squash"`
	Server      Server      `mapstructure:",squash"`
	Database    Database    `mapstructure:",squash"`
	Auth        Auth        `mapstructure:",squash"`
	Ingestion   Ingestion   `mapstructure:",squash"`
	Analytics   Analytics   `mapstructure:",squash"`
	InboxImport InboxImport `mapstructure:",squash"`
}

type Server struct {
	Host           string   `mapstructure:"host"`
	Port           string   `mapstructure:"port"`
	AllowedOrigins []string `mapstructure:"cors_allowed_origins"`
}

type Database struct {
	DSN             string `mapstructure:"-"`
	Driver          string `mapstructure:"database_driver"`
	Password        string `mapstructure:"database_password"`
	URL             string `mapstructure:"database_url"`
	User            string `mapstructure:"database_user"`
	SQLitePath      string `mapstructure:"database_sqlite_path"`
	InsertBatchSize int    `mapstructure:"database_insert_batch_size"`
	MigrateOnStart  bool   `mapstructure:"database_migrate_on_start"`
}

type App struct {
	Env      string `mapstructure:"app_env"`
	LogLevel string `mapstructure:"log_level"`
}

type Auth struct {
	Secret string `mapstructure:"auth_secret"`
}

type Ingestion struct {
	DefaultBufferHours       float64 `mapstructure:"ingestion_default_buffer_hours"`
	DefaultYear              int     `mapstructure:"ingestion_default_year"` // 0 = ano corrente
	HeaderScanRows           int     `mapstructure:"ingestion_header_scan_rows"`
	FuzzyMonths              bool    `mapstructure:"ingestion_fuzzy_months"`
	FlagInconsistentCounters bool    `mapstructure:"ingestion_flag_inconsistent_counters"`
	MaxUploadMB              int64   `mapstructure:"ingestion_max_upload_mb"`
}

type Analytics struct {
	PageSize int `mapstructure:"analytics_page_size"`
}

type InboxImport struct {
	CronSchedule string `mapstructure:"inbox_import_cron"`
	Dir          string `mapstructure:"inbox_import_dir"`
	Enabled      bool   `mapstructure:"inbox_import_enabled"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:4001")

	viper.SetDefault("DATABASE_DRIVER", DriverPostgres)
	viper.SetDefault("DATABASE_URL", "localhost:5432/overtime?sslmode=disable")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")
	viper.SetDefault("DATABASE_SQLITE_PATH", "overtime.db")
	viper.SetDefault("DATABASE_INSERT_BATCH_SIZE", 500)
	viper.SetDefault("DATABASE_MIGRATE_ON_START", true)

	viper.SetDefault("AUTH_SECRET", "your_secret_key")

	// Defaults da ingestão de planilhas
	viper.SetDefault("INGESTION_DEFAULT_BUFFER_HOURS", 17.0)        // Limite contratual em horas
	viper.SetDefault("INGESTION_DEFAULT_YEAR", 0)                   // Ano corrente
	viper.SetDefault("INGESTION_HEADER_SCAN_ROWS", 10)              // Linhas examinadas na busca do cabeçalho
	viper.SetDefault("INGESTION_FUZZY_MONTHS", true)                // Aceitar meses com um erro de digitação
	viper.SetDefault("INGESTION_FLAG_INCONSISTENT_COUNTERS", false) // Avisar contadores incoerentes
	viper.SetDefault("INGESTION_MAX_UPLOAD_MB", 20)

	viper.SetDefault("ANALYTICS_PAGE_SIZE", 500)

	viper.SetDefault("INBOX_IMPORT_CRON", "*/15 * * * *") // A cada 15 minutos
	viper.SetDefault("INBOX_IMPORT_DIR", "inbox")
	viper.SetDefault("INBOX_IMPORT_ENABLED", false)

	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("LOG_LEVEL", "debug")
}

func NewConfig() (*Config, error) {
	// Primeiro carregar o arquivo .env usando godotenv
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	// Configurar valores padrão
	SetDefaults()

	// Configurar o Viper
	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv() // Isso permite que o Viper leia variáveis de ambiente

	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env):", err)
	} else {
		logrus.Info("Arquivo .env lido pelo Viper com sucesso")
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	config.Database.DSN = BuildDSN(config.Database)

	return config, nil
}

// BuildDSN monta a string de conexão de acordo com o driver configurado
func BuildDSN(db Database) string {
	if db.Driver == DriverSQLite {
		return fmt.Sprintf("file:%s?_foreign_keys=on", db.SQLitePath)
	}

	return fmt.Sprintf(
		"%s://%s:%s@%s",
		db.Driver,
		db.User,
		db.Password,
		db.URL,
	)
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	// Tentar várias localizações possíveis para o arquivo .env
	locations := []string{
		filepath.Join(cwd, ".env"),               // Diretório atual
		filepath.Join(filepath.Dir(cwd), ".env"), // Diretório pai
		filepath.Join(cwd, "../../.env"),         // Dois diretórios acima
	}

	for _, location := range locations {
		logrus.Debug("Tentando carregar .env de:", location)
		if err := godotenv.Load(location); err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Warn("Não foi possível carregar o arquivo .env de nenhuma localização conhecida")
}
