package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/samber/mo"
)

// Config はアプリケーション全体の設定を保持します
type Config struct {
	// OpenAI設定
	OpenAI OpenAIConfig

	// コード生成設定
	Tutor TutorConfig

	// HTTPサーバ設定
	Server ServerConfig

	// ログ設定
	Log LogConfig
}

// OpenAIConfig はOpenAI API設定
type OpenAIConfig struct {
	APIKey  string
	BaseURL mo.Option[string] // 互換APIやプロキシを使う場合のみ指定
	Model   string
	Timeout time.Duration
}

// TutorConfig はコード生成の動作設定
type TutorConfig struct {
	Enabled     bool // false の場合はLLMを呼び出さず空の応答を返す
	Temperature float64
	MaxTokens   int
}

// ServerConfig はHTTPサーバ設定
type ServerConfig struct {
	Host         string
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// Addr はリッスンアドレスを返します
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// LogConfig はログ出力設定
type LogConfig struct {
	Level  string // "debug", "info", "warn", "error"
	Format string // "json" or "text"
}

// Load は環境変数または.envファイルから設定を読み込みます
func Load(envFilePath string) (*Config, error) {
	// .envファイルが存在する場合は読み込む
	if envFilePath != "" {
		if err := godotenv.Load(envFilePath); err != nil {
			// ファイルが存在しない場合はエラーとしない（環境変数のみで動作可能）
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("failed to load .env file: %w", err)
			}
		}
	}

	cfg := &Config{
		OpenAI: OpenAIConfig{
			APIKey:  getEnv("OPENAI_API_KEY", ""),
			BaseURL: getEnvOption("OPENAI_BASE_URL"),
			Model:   getEnv("OPENAI_MODEL", "gpt-3.5-turbo"),
			Timeout: time.Duration(getEnvAsInt("OPENAI_TIMEOUT_SECONDS", 60)) * time.Second,
		},
		Tutor: TutorConfig{
			Enabled:     getEnvAsBool("TUTOR_ENABLED", false),
			Temperature: getEnvAsFloat("TUTOR_TEMPERATURE", 0.7),
			MaxTokens:   getEnvAsInt("TUTOR_MAX_TOKENS", 300),
		},
		Server: ServerConfig{
			Host:         getEnv("SERVER_HOST", "0.0.0.0"),
			Port:         getEnvAsInt("SERVER_PORT", 8000),
			ReadTimeout:  time.Duration(getEnvAsInt("SERVER_READ_TIMEOUT_SECONDS", 120)) * time.Second,
			WriteTimeout: time.Duration(getEnvAsInt("SERVER_WRITE_TIMEOUT_SECONDS", 120)) * time.Second,
			IdleTimeout:  time.Duration(getEnvAsInt("SERVER_IDLE_TIMEOUT_SECONDS", 120)) * time.Second,
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}

	return cfg, nil
}

// getEnv は環境変数を取得し、存在しない場合はデフォルト値を返します
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvOption は環境変数が設定されている場合のみ値を返します
func getEnvOption(key string) mo.Option[string] {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return mo.Some(value)
	}
	return mo.None[string]()
}

// getEnvAsInt は環境変数を整数として取得します
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsFloat は環境変数を浮動小数点数として取得します
func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsBool は環境変数を真偽値として取得します
func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
