package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type ServerConfig struct {
	Addr               string        `mapstructure:"addr"`
	ShutdownTimeout    time.Duration `mapstructure:"shutdown_timeout"`
	StatusPollInterval time.Duration `mapstructure:"status_poll_interval"`
}

type DBConfig struct {
	Driver   string `mapstructure:"driver"` // mysql | memory
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	PoolSize int    `mapstructure:"pool_size"`
}

func (d DBConfig) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		d.Username, d.Password, d.Host, d.Port, d.Name)
}

type RedisConfig struct {
	Addr string `mapstructure:"addr"`
	Pass string `mapstructure:"pass"`
	DB   int    `mapstructure:"db"`
}

type QueueConfig struct {
	Driver      string         `mapstructure:"driver"` // asynq | local
	Concurrency int            `mapstructure:"concurrency"`
	Queues      map[string]int `mapstructure:"queues"`
	JobTimeout  time.Duration  `mapstructure:"job_timeout"`
	Retention   time.Duration  `mapstructure:"retention"`
}

type StorageConfig struct {
	UploadDir         string   `mapstructure:"upload_dir"`
	MaxUploadBytes    int64    `mapstructure:"max_upload_bytes"`
	AllowedExtensions []string `mapstructure:"allowed_extensions"`
}

type WhisperConfig struct {
	Mode        string        `mapstructure:"mode"` // cli | http
	Binary      string        `mapstructure:"binary"`
	Model       string        `mapstructure:"model"`
	Language    string        `mapstructure:"language"`
	URL         string        `mapstructure:"url"`
	CLITimeout  time.Duration `mapstructure:"cli_timeout"`
	HTTPTimeout time.Duration `mapstructure:"http_timeout"`
}

type OllamaConfig struct {
	URLs  []string `mapstructure:"urls"`
	Model string   `mapstructure:"model"`
}

type OpenAIConfig struct {
	APIKey  string `mapstructure:"api_key"`
	BaseURL string `mapstructure:"base_url"`
	Model   string `mapstructure:"model"`
}

type GeminiConfig struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"`
}

// LocalLLMConfig describes a CLI completion tool such as llama.cpp's
// llama-cli or the gpt4all CLI. "{prompt}" and "{model}" in Args are
// substituted per call.
type LocalLLMConfig struct {
	Binary    string   `mapstructure:"binary"`
	ModelPath string   `mapstructure:"model_path"`
	Args      []string `mapstructure:"args"`
}

type LLMConfig struct {
	Backend      string         `mapstructure:"backend"` // ollama | openai | gemini | local
	HTTPTimeout  time.Duration  `mapstructure:"http_timeout"`
	LocalTimeout time.Duration  `mapstructure:"local_timeout"`
	Ollama       OllamaConfig   `mapstructure:"ollama"`
	OpenAI       OpenAIConfig   `mapstructure:"openai"`
	Gemini       GeminiConfig   `mapstructure:"gemini"`
	Local        LocalLLMConfig `mapstructure:"local"`
}

type QuestionsConfig struct {
	PerSegment int           `mapstructure:"per_segment"`
	Delay      time.Duration `mapstructure:"delay"`
}

type QuizConfig struct {
	Store string        `mapstructure:"store"` // redis | memory
	TTL   time.Duration `mapstructure:"ttl"`
}

type Settings struct {
	Server    ServerConfig    `mapstructure:"server"`
	DB        DBConfig        `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Queue     QueueConfig     `mapstructure:"queue"`
	Storage   StorageConfig   `mapstructure:"storage"`
	Whisper   WhisperConfig   `mapstructure:"whisper"`
	LLM       LLMConfig       `mapstructure:"llm"`
	Questions QuestionsConfig `mapstructure:"questions"`
	Quiz      QuizConfig      `mapstructure:"quiz"`
	Env       string          `mapstructure:"env"`
	Debug     bool            `mapstructure:"debug"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.shutdown_timeout", 5*time.Second)
	v.SetDefault("server.status_poll_interval", time.Second)

	v.SetDefault("database.driver", "mysql")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 3306)
	v.SetDefault("database.name", "vidquiz")
	v.SetDefault("database.pool_size", 10)

	v.SetDefault("redis.addr", "localhost:6379")

	v.SetDefault("queue.driver", "asynq")
	v.SetDefault("queue.concurrency", 1)
	v.SetDefault("queue.queues", map[string]int{"default": 1})
	v.SetDefault("queue.job_timeout", 3*time.Hour)
	v.SetDefault("queue.retention", 24*time.Hour)

	v.SetDefault("storage.upload_dir", "uploads")
	v.SetDefault("storage.max_upload_bytes", int64(2<<30))
	v.SetDefault("storage.allowed_extensions", []string{
		".mp4", ".mov", ".avi", ".mkv", ".webm", ".mp3", ".wav", ".m4a", ".ogg", ".flac",
	})

	v.SetDefault("whisper.mode", "cli")
	v.SetDefault("whisper.binary", "whisper")
	v.SetDefault("whisper.model", "base")
	v.SetDefault("whisper.url", "http://localhost:9000")
	v.SetDefault("whisper.cli_timeout", 30*time.Minute)
	v.SetDefault("whisper.http_timeout", 60*time.Second)

	v.SetDefault("llm.backend", "ollama")
	v.SetDefault("llm.http_timeout", 60*time.Second)
	v.SetDefault("llm.local_timeout", 2*time.Minute)
	v.SetDefault("llm.ollama.urls", []string{"http://localhost:11434"})
	v.SetDefault("llm.ollama.model", "llama3.1:8b-instruct")
	v.SetDefault("llm.openai.model", "gpt-4o-mini")
	v.SetDefault("llm.gemini.model", "gemini-1.5-flash")
	v.SetDefault("llm.local.binary", "llama-cli")
	v.SetDefault("llm.local.args", []string{"-m", "{model}", "-p", "{prompt}", "-n", "1024", "--no-display-prompt"})

	v.SetDefault("questions.per_segment", 3)
	v.SetDefault("questions.delay", time.Second)

	v.SetDefault("quiz.store", "redis")
	v.SetDefault("quiz.ttl", 2*time.Hour)
}

func Load() (*Settings, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("VIDQUIZ")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Load settings from a configuration file or environment variables
	v.SetConfigName("config_" + genEnv())
	v.AddConfigPath(".")
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var settings Settings
	if err := v.Unmarshal(&settings); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &settings, nil
}

func genEnv() string {
	env := os.Getenv("ENV")
	if env == "" {
		return "dev"
	}
	return env
}
