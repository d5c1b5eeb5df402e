// Package config junta as configurações do CRM: padrões, arquivo YAML
// opcional (CRM_CONFIG_FILE) e variáveis de ambiente, nessa ordem de
// precedência crescente. Um .env na raiz é carregado antes de tudo.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

const ServiceName = "ligue-crm"

type AppConfig struct {
	Env      string `yaml:"env"`
	LogLevel string `yaml:"log_level"`
}

type ServerConfig struct {
	Port        string   `yaml:"port"`
	CORSOrigins []string `yaml:"cors_origins"`
}

type DatabaseConfig struct {
	Driver string `yaml:"driver"` // pgx | sqlite
	URL    string `yaml:"url"`
}

type RabbitMQConfig struct {
	URL string `yaml:"url"` // vazio = sem broker, só o hub local
}

type EmailJSConfig struct {
	ServiceID  string `yaml:"service_id"`
	TemplateID string `yaml:"template_id"`
	PublicKey  string `yaml:"public_key"`
	URL        string `yaml:"url"`
}

type SMTPConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
	User string `yaml:"user"`
	Pass string `yaml:"pass"`
	From string `yaml:"from"`
}

type MailConfig struct {
	Provider string        `yaml:"provider"` // emailjs | smtp
	EmailJS  EmailJSConfig `yaml:"emailjs"`
	SMTP     SMTPConfig    `yaml:"smtp"`
}

type FollowUpConfig struct {
	Interval time.Duration `yaml:"interval"` // 0 desliga o worker
}

type Config struct {
	App      AppConfig      `yaml:"app"`
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	RabbitMQ RabbitMQConfig `yaml:"rabbitmq"`
	Mail     MailConfig     `yaml:"mail"`
	FollowUp FollowUpConfig `yaml:"followup"`
}

func DefaultConfig() *Config {
	return &Config{
		App:      AppConfig{Env: "development", LogLevel: "info"},
		Server:   ServerConfig{Port: "8080", CORSOrigins: []string{"*"}},
		Database: DatabaseConfig{Driver: "sqlite", URL: "crm.db"},
		Mail: MailConfig{
			Provider: "emailjs",
			EmailJS:  EmailJSConfig{URL: "https://api.emailjs.com"},
			SMTP:     SMTPConfig{Port: 587},
		},
		FollowUp: FollowUpConfig{Interval: time.Hour},
	}
}

// Load lê .env (se existir), o YAML apontado por CRM_CONFIG_FILE e o ambiente.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return LoadFile(os.Getenv("CRM_CONFIG_FILE"))
}

// LoadFile é Load sem o .env. path vazio ou inexistente = só padrões + ambiente.
func LoadFile(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("erro ao ler config %s: %w", path, err)
			}
		case !os.IsNotExist(err):
			return nil, fmt.Errorf("erro ao abrir config %s: %w", path, err)
		}
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnvOverrides() {
	c.App.Env = getEnv("APP_ENV", c.App.Env)
	c.App.LogLevel = getEnv("LOG_LEVEL", c.App.LogLevel)

	c.Server.Port = getEnv("SERVER_PORT", c.Server.Port)
	if origins := os.Getenv("CORS_ORIGINS"); origins != "" {
		c.Server.CORSOrigins = splitList(origins)
	}

	c.Database.Driver = getEnv("DB_DRIVER", c.Database.Driver)
	c.Database.URL = getEnv("DATABASE_URL", c.Database.URL)
	c.RabbitMQ.URL = getEnv("RABBITMQ_URL", c.RabbitMQ.URL)

	c.Mail.Provider = getEnv("MAIL_PROVIDER", c.Mail.Provider)
	c.Mail.EmailJS.ServiceID = getEnv("EMAILJS_SERVICE_ID", c.Mail.EmailJS.ServiceID)
	c.Mail.EmailJS.TemplateID = getEnv("EMAILJS_TEMPLATE_ID", c.Mail.EmailJS.TemplateID)
	c.Mail.EmailJS.PublicKey = getEnv("EMAILJS_PUBLIC_KEY", c.Mail.EmailJS.PublicKey)
	c.Mail.EmailJS.URL = getEnv("EMAILJS_URL", c.Mail.EmailJS.URL)
	c.Mail.SMTP.Host = getEnv("MAIL_HOST", c.Mail.SMTP.Host)
	c.Mail.SMTP.Port = getEnvAsInt("MAIL_PORT", c.Mail.SMTP.Port)
	c.Mail.SMTP.User = getEnv("MAIL_USER", c.Mail.SMTP.User)
	c.Mail.SMTP.Pass = getEnv("MAIL_PASS", c.Mail.SMTP.Pass)
	c.Mail.SMTP.From = getEnv("MAIL_FROM", c.Mail.SMTP.From)

	c.FollowUp.Interval = getEnvAsDuration("FOLLOWUP_INTERVAL", c.FollowUp.Interval)
}

func (c *Config) Validate() error {
	switch c.Database.Driver {
	case "pgx", "sqlite":
	default:
		return fmt.Errorf("DB_DRIVER inválido: %q (use pgx ou sqlite)", c.Database.Driver)
	}
	switch c.Mail.Provider {
	case "emailjs", "smtp":
	default:
		return fmt.Errorf("MAIL_PROVIDER inválido: %q (use emailjs ou smtp)", c.Mail.Provider)
	}
	if c.FollowUp.Interval < 0 {
		return fmt.Errorf("FOLLOWUP_INTERVAL não pode ser negativo")
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}

// LogFields resume a config para o log de inicialização, sem segredos.
func (c *Config) LogFields() []zap.Field {
	return []zap.Field{
		zap.String("environment", c.App.Env),
		zap.String("server_port", c.Server.Port),
		zap.String("db_driver", c.Database.Driver),
		zap.Bool("rabbitmq", c.RabbitMQ.URL != ""),
		zap.String("mail_provider", c.Mail.Provider),
		zap.Duration("followup_interval", c.FollowUp.Interval),
	}
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	if v, err := strconv.Atoi(getEnv(key, "")); err == nil {
		return v
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	if v, err := time.ParseDuration(getEnv(key, "")); err == nil {
		return v
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
