package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"ai-quiz/internal/domain"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Logger  LoggerConfig
	LLM     LLMConfig
	Quiz    QuizConfig
	Storage StorageConfig
	Redis   RedisConfig
	Server  ServerConfig
}

type LoggerConfig struct {
	Level string
	Env   string
	// File receives log output when set; the terminal UI needs stdout for itself.
	File string
}

type LLMConfig struct {
	Provider      string // gemini, ollama or file
	APIKey        string
	Model         string
	ServerURL     string
	Temperature   float64
	Timeout       time.Duration
	QuestionsFile string

	// EmbeddingModel enables semantic duplicate checks in bank generate.
	// It is served by the Ollama instance at ServerURL.
	EmbeddingModel string
}

type QuizConfig struct {
	QuestionCount    int
	LeaderboardLimit int
	Language         string
	Topics           []string
}

type StorageConfig struct {
	Driver string // file, redis or sqlite
	Path   string
	Key    string
}

type RedisConfig struct {
	Address  string `yaml:"address"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type ServerConfig struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

const (
	ProviderGemini = "gemini"
	ProviderOllama = "ollama"
	ProviderFile   = "file"

	DriverFile   = "file"
	DriverRedis  = "redis"
	DriverSQLite = "sqlite"
)

func setDefaults(v *viper.Viper) {
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.env", "development")
	v.SetDefault("logger.file", "")

	v.SetDefault("llm.provider", ProviderGemini)
	v.SetDefault("llm.model", "gemini-2.0-flash")
	v.SetDefault("llm.server_url", "http://localhost:11434")
	v.SetDefault("llm.temperature", 0.7)
	v.SetDefault("llm.timeout", 90)
	v.SetDefault("llm.questions_file", "questions.yaml")
	v.SetDefault("llm.embedding_model", "")

	v.SetDefault("quiz.question_count", 20)
	v.SetDefault("quiz.leaderboard_limit", 100)
	v.SetDefault("quiz.language", "Traditional Chinese (Taiwan/zh-TW)")
	v.SetDefault("quiz.topics", []string{"AI Terminology", "AI Tool Usage", "AI Industry Information & Trends"})

	v.SetDefault("storage.driver", DriverFile)
	v.SetDefault("storage.path", "ai-quiz-leaderboard.json")
	v.SetDefault("storage.key", "ai_quiz_leaderboard")

	v.SetDefault("redis.address", "localhost:6379")
	v.SetDefault("redis.db", 0)

	v.SetDefault("server.port", 8090)
	v.SetDefault("server.read_timeout", 20)
	v.SetDefault("server.write_timeout", 20)
}

// LoadConfig reads config.yaml from path (or the default search paths when
// path is empty) and applies environment overrides. A missing config file is
// not an error; every key has a default. A .env file in the working
// directory is loaded first; variables already set win.
func LoadConfig(path string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		if os.Getenv("ENV") == "test" {
			v.AddConfigPath("../../config")
			v.AddConfigPath("../../")
		} else {
			v.AddConfigPath(".")
			v.AddConfigPath("./config")
		}
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if configFile := v.ConfigFileUsed(); configFile != "" {
		absPath, _ := filepath.Abs(configFile)
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", absPath)
	}

	config := &Config{
		Logger: LoggerConfig{
			Level: v.GetString("logger.level"),
			Env:   v.GetString("logger.env"),
			File:  v.GetString("logger.file"),
		},
		LLM: LLMConfig{
			Provider:       strings.ToLower(v.GetString("llm.provider")),
			APIKey:         v.GetString("llm.api_key"),
			Model:          v.GetString("llm.model"),
			ServerURL:      v.GetString("llm.server_url"),
			Temperature:    v.GetFloat64("llm.temperature"),
			Timeout:        time.Duration(v.GetInt("llm.timeout")) * time.Second,
			QuestionsFile:  v.GetString("llm.questions_file"),
			EmbeddingModel: v.GetString("llm.embedding_model"),
		},
		Quiz: QuizConfig{
			QuestionCount:    v.GetInt("quiz.question_count"),
			LeaderboardLimit: v.GetInt("quiz.leaderboard_limit"),
			Language:         v.GetString("quiz.language"),
			Topics:           v.GetStringSlice("quiz.topics"),
		},
		Storage: StorageConfig{
			Driver: strings.ToLower(v.GetString("storage.driver")),
			Path:   v.GetString("storage.path"),
			Key:    v.GetString("storage.key"),
		},
		Redis: RedisConfig{
			Address:  v.GetString("redis.address"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
		},
		Server: ServerConfig{
			Port:         v.GetInt("server.port"),
			ReadTimeout:  time.Duration(v.GetInt("server.read_timeout")) * time.Second,
			WriteTimeout: time.Duration(v.GetInt("server.write_timeout")) * time.Second,
		},
	}

	// Secrets come from the environment first.
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		config.LLM.APIKey = key
	} else if key := os.Getenv("API_KEY"); key != "" && config.LLM.APIKey == "" {
		config.LLM.APIKey = key
	}
	if redisPassword := os.Getenv("REDIS_PASSWORD"); redisPassword != "" {
		config.Redis.Password = redisPassword
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate checks structural settings only. A missing API key is reported
// when questions are requested, not here.
func (c *Config) Validate() error {
	switch c.LLM.Provider {
	case ProviderGemini, ProviderOllama, ProviderFile:
	default:
		return fmt.Errorf("unsupported llm.provider %q", c.LLM.Provider)
	}
	switch c.Storage.Driver {
	case DriverFile, DriverRedis, DriverSQLite:
	default:
		return fmt.Errorf("unsupported storage.driver %q", c.Storage.Driver)
	}
	if c.Quiz.QuestionCount <= 0 {
		return fmt.Errorf("quiz.question_count must be positive, got %d", c.Quiz.QuestionCount)
	}
	if c.Quiz.LeaderboardLimit <= 0 || c.Quiz.LeaderboardLimit > domain.DefaultLeaderboardLimit {
		return fmt.Errorf("quiz.leaderboard_limit must be between 1 and %d, got %d",
			domain.DefaultLeaderboardLimit, c.Quiz.LeaderboardLimit)
	}
	if c.Storage.Key == "" {
		return fmt.Errorf("storage.key cannot be empty")
	}
	return nil
}
