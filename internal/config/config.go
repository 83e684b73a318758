package config

import (
	"log"
	"time"

	"github.com/caarlos0/env/v6"
)

type LLMProvider string

const (
	ProviderModal  LLMProvider = "modal"
	ProviderOpenAI LLMProvider = "openai"
	ProviderYandex LLMProvider = "yandex"
)

type Config struct {
	TelegramBotToken string  `env:"TELEGRAM_BOT_TOKEN,required"`
	AllowedUsers     []int64 `env:"ALLOWED_USERS" envSeparator:":"`
	AdminUserID      int64   `env:"ADMIN_USER"`

	// Inference endpoint
	LLMProvider       LLMProvider `env:"LLM_PROVIDER" envDefault:"modal"`
	ModalInferenceURL string      `env:"MODAL_INFERENCE_URL" envDefault:"https://vibetune--inference-endpoint.modal.run"`
	OpenAIAPIKey      string      `env:"OPENAI_API_KEY"`
	OpenAIBaseURL     string      `env:"OPENAI_BASE_URL"`
	OpenAIModel       string      `env:"OPENAI_MODEL" envDefault:"gpt-4o-mini"`
	YandexOAuthToken  string      `env:"YANDEX_OAUTH_TOKEN"`
	YandexFolderID    string      `env:"YANDEX_FOLDER_ID"`

	// Report collection web app; /report is disabled when empty
	WebAppURL string `env:"WEB_APP_URL"`

	// Generation defaults for new sessions
	DefaultModelID     string  `env:"DEFAULT_MODEL_ID"`
	DefaultTemperature float64 `env:"DEFAULT_TEMPERATURE" envDefault:"0.7"`
	DefaultMaxTokens   int     `env:"DEFAULT_MAX_TOKENS" envDefault:"250"`
	DefaultTopP        float64 `env:"DEFAULT_TOP_P" envDefault:"0.9"`

	HistoryLimit     int           `env:"HISTORY_LIMIT" envDefault:"20"`
	InferenceTimeout time.Duration `env:"INFERENCE_TIMEOUT" envDefault:"30s"`
	ReportTimeout    time.Duration `env:"REPORT_TIMEOUT" envDefault:"10s"`

	// Storage
	LogFilePath string `env:"LOG_FILE_PATH" envDefault:"logs/log.jsonl"`
}

func New() *Config {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	cfg.sanitize()
	return cfg
}

// sanitize resets out-of-range generation defaults instead of refusing to start.
func (c *Config) sanitize() {
	if c.DefaultTemperature < 0 || c.DefaultTemperature > 2 {
		log.Printf("⚠️ DEFAULT_TEMPERATURE %v outside [0, 2], using 0.7", c.DefaultTemperature)
		c.DefaultTemperature = 0.7
	}
	if c.DefaultMaxTokens < 1 || c.DefaultMaxTokens > 4096 {
		log.Printf("⚠️ DEFAULT_MAX_TOKENS %d outside [1, 4096], using 250", c.DefaultMaxTokens)
		c.DefaultMaxTokens = 250
	}
	if c.DefaultTopP < 0 || c.DefaultTopP > 1 {
		log.Printf("⚠️ DEFAULT_TOP_P %v outside [0, 1], using 0.9", c.DefaultTopP)
		c.DefaultTopP = 0.9
	}
	if c.HistoryLimit < 1 {
		log.Printf("⚠️ HISTORY_LIMIT %d is not positive, using 20", c.HistoryLimit)
		c.HistoryLimit = 20
	}
}
