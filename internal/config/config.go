package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// Config хранит все настройки приложения
type Config struct {
	Server        ServerConfig
	Database      DatabaseConfig
	Redis         RedisConfig
	OpenAI        OpenAIConfig `mapstructure:"openai"`
	Auth          AuthConfig
	Questionnaire QuestionnaireConfig
	RateLimit     RateLimitConfig `mapstructure:"ratelimit"`
}

// ServerConfig содержит настройки HTTP сервера
type ServerConfig struct {
	Port         string
	ReadTimeout  int    `mapstructure:"read_timeout"`
	WriteTimeout int    `mapstructure:"write_timeout"`
	Mode         string `mapstructure:"mode"` // debug | release
}

// DatabaseConfig содержит настройки подключения к PostgreSQL
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// RedisConfig содержит настройки подключения к Redis.
// Redis опционален: без него не работают кеш формы и rate limiting советника.
type RedisConfig struct {
	Enabled bool `mapstructure:"enabled"`

	// Mode: "single", "sentinel", "cluster". По умолчанию "single".
	Mode string `mapstructure:"mode"`

	// Addrs: список адресов (хост:порт). Для 'single' используется первый адрес.
	Addrs []string `mapstructure:"addrs"`

	// Addr: адрес для режима 'single', если Addrs пуст.
	Addr string `mapstructure:"addr"`

	Password   string `mapstructure:"password"`
	DB         int    `mapstructure:"db"`
	MasterName string `mapstructure:"master_name"`
}

// OpenAIConfig содержит настройки chat-completion API
type OpenAIConfig struct {
	APIKey         string `mapstructure:"api_key"`
	BaseURL        string `mapstructure:"base_url"`
	Model          string `mapstructure:"model"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
}

// AuthConfig содержит настройки сервисного токена
type AuthConfig struct {
	// ServiceJWTSecret - HS256 секрет для токенов с ролью service_role.
	// Если пуст, отладочные маршруты не регистрируются.
	ServiceJWTSecret string `mapstructure:"service_jwt_secret"`
}

// QuestionnaireConfig содержит настройки анкеты
type QuestionnaireConfig struct {
	FormSlug     string        `mapstructure:"form_slug"`
	FormCacheTTL time.Duration `mapstructure:"form_cache_ttl"`
}

// RateLimitConfig содержит лимиты для AI советника
type RateLimitConfig struct {
	AdvisorMaxRequests int           `mapstructure:"advisor_max_requests"`
	AdvisorWindow      time.Duration `mapstructure:"advisor_window"`
}

// PostgresConnectionString формирует строку подключения к PostgreSQL
func (d *DatabaseConfig) PostgresConnectionString() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}

// PostgresURL формирует URL подключения (нужен golang-migrate при работе через lib/pq)
func (d *DatabaseConfig) PostgresURL() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

// IsRelease сообщает, запущен ли сервер в production режиме
func (s *ServerConfig) IsRelease() bool {
	return s.Mode == "release"
}

// IsEnabled возвращает true, если ключ API задан
func (c *OpenAIConfig) IsEnabled() bool {
	return c.APIKey != ""
}

// Timeout возвращает таймаут HTTP клиента
func (c *OpenAIConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

func setDefaults(vip *viper.Viper) {
	vip.SetDefault("server.port", "8080")
	vip.SetDefault("server.read_timeout", 15)
	vip.SetDefault("server.write_timeout", 90)
	vip.SetDefault("server.mode", "debug")

	vip.SetDefault("database.port", "5432")
	vip.SetDefault("database.sslmode", "disable")

	vip.SetDefault("redis.mode", "single")

	vip.SetDefault("openai.base_url", "https://api.openai.com/v1")
	vip.SetDefault("openai.model", "gpt-4o-mini")
	vip.SetDefault("openai.timeout_seconds", 60)

	vip.SetDefault("questionnaire.form_slug", "onboarding_v1")
	vip.SetDefault("questionnaire.form_cache_ttl", 10*time.Minute)

	vip.SetDefault("ratelimit.advisor_max_requests", 10)
	vip.SetDefault("ratelimit.advisor_window", time.Minute)
}

func bindEnv(vip *viper.Viper) {
	vip.BindEnv("server.port", "SERVER_PORT")
	vip.BindEnv("server.mode", "GIN_MODE")

	vip.BindEnv("database.host", "DATABASE_HOST")
	vip.BindEnv("database.port", "DATABASE_PORT")
	vip.BindEnv("database.user", "DATABASE_USER")
	vip.BindEnv("database.password", "DATABASE_PASSWORD")
	vip.BindEnv("database.dbname", "DATABASE_DBNAME")
	vip.BindEnv("database.sslmode", "DATABASE_SSLMODE")

	vip.BindEnv("redis.enabled", "REDIS_ENABLED")
	vip.BindEnv("redis.mode", "REDIS_MODE")
	vip.BindEnv("redis.addrs", "REDIS_ADDRS")
	vip.BindEnv("redis.addr", "REDIS_ADDR")
	vip.BindEnv("redis.password", "REDIS_PASSWORD")
	vip.BindEnv("redis.db", "REDIS_DB")
	vip.BindEnv("redis.master_name", "REDIS_MASTER_NAME")

	vip.BindEnv("openai.api_key", "OPENAI_API_KEY")
	vip.BindEnv("openai.base_url", "OPENAI_BASE_URL")
	vip.BindEnv("openai.model", "OPENAI_MODEL")

	vip.BindEnv("auth.service_jwt_secret", "SERVICE_JWT_SECRET")

	vip.BindEnv("questionnaire.form_slug", "QUESTIONNAIRE_FORM_SLUG")
}

// Load загружает конфигурацию из файла и переменных окружения
func Load(configPath string, logger *zap.Logger) (*Config, error) {
	log := logger.Named("config")
	vip := viper.New()

	setDefaults(vip)
	bindEnv(vip)

	if configPath != "" {
		vip.SetConfigFile(configPath)
		// Файл не обязателен: всё можно задать через окружение
		if err := vip.ReadInConfig(); err != nil {
			log.Warn("config file not loaded, using env/defaults",
				zap.String("path", configPath), zap.Error(err))
		}
	}

	var cfg Config
	if err := vip.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if !cfg.Server.IsRelease() {
		log.Debug("loaded configuration",
			zap.String("database_host", cfg.Database.Host),
			zap.String("database_name", cfg.Database.DBName),
			zap.Bool("redis_enabled", cfg.Redis.Enabled),
			zap.String("openai_model", cfg.OpenAI.Model),
			zap.Bool("openai_key_set", cfg.OpenAI.IsEnabled()),
			zap.Bool("service_jwt_set", cfg.Auth.ServiceJWTSecret != ""),
			zap.String("form_slug", cfg.Questionnaire.FormSlug),
		)
	}
	if !cfg.OpenAI.IsEnabled() {
		log.Warn("OPENAI_API_KEY is not set, AI advisor requests will fail")
	}

	return &cfg, nil
}

// Validate проверяет обязательные параметры
func (c *Config) Validate() error {
	if c.Database.Host == "" || c.Database.DBName == "" || c.Database.User == "" {
		return fmt.Errorf("database configuration (host, dbname, user) is incomplete (check DATABASE_HOST, DATABASE_DBNAME, DATABASE_USER env vars)")
	}
	if c.Server.IsRelease() && c.Database.Password == "" {
		return fmt.Errorf("database password is required in release mode (check DATABASE_PASSWORD env var)")
	}
	if c.Redis.Enabled && len(c.Redis.Addrs) == 0 && c.Redis.Addr == "" {
		return fmt.Errorf("redis is enabled but neither REDIS_ADDRS nor REDIS_ADDR is set")
	}
	if c.Questionnaire.FormSlug == "" {
		return fmt.Errorf("questionnaire form slug must not be empty")
	}
	return nil
}
