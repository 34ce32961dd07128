package config

import (
	"errors"
	"io/fs"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// AppConfig описывает конфигурацию бота.
type AppConfig struct {
	AppEnv      string `envconfig:"APP_ENV" default:"dev"`
	HTTPAddr    string `envconfig:"HTTP_ADDR" default:":8080"`
	MetricsAddr string `envconfig:"METRICS_ADDR" default:":9090"`

	Telegram struct {
		Token       string `envconfig:"TG_BOT_TOKEN" required:"true"`
		WebhookURL  string `envconfig:"TG_WEBHOOK_URL"`
		PollTimeout int    `envconfig:"TG_POLL_TIMEOUT" default:"30"`
	} `envconfig:""`

	OpenAI struct {
		APIKey  string        `envconfig:"OPENAI_API_KEY" required:"true"`
		BaseURL string        `envconfig:"OPENAI_BASE_URL"`
		Model   string        `envconfig:"OPENAI_MODEL" default:"gpt-4.1-mini"`
		Timeout time.Duration `envconfig:"OPENAI_TIMEOUT" default:"60s"`
	} `envconfig:""`

	PGDSN     string `envconfig:"PG_DSN"`
	RedisAddr string `envconfig:"REDIS_ADDR"`

	Survey struct {
		SessionTTL   time.Duration `envconfig:"SESSION_TTL" default:"720h"`
		WelcomePhoto string        `envconfig:"WELCOME_PHOTO" default:"assets/welcome.jpg"`
		ContactURL   string        `envconfig:"CONTACT_URL" default:"https://t.me/doc_kazachkova_team"`
	} `envconfig:""`

	SettingsFile string `envconfig:"SETTINGS_FILE" default:"user_settings.json"`
}

// Load загружает конфиг из окружения, предварительно подхватив .env, если он есть.
func Load() AppConfig {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("не удалось прочитать .env: %v", err)
	}
	var cfg AppConfig
	if err := envconfig.Process("", &cfg); err != nil {
		log.Fatalf("не удалось загрузить конфиг: %v", err)
	}
	return cfg
}
