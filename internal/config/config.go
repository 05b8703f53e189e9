package config

import (
	"fmt"

	"github.com/spf13/viper"
)

type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Storage StorageConfig `mapstructure:"storage"`
	Gemini  ModelConfig   `mapstructure:"gemini"`
}

type ServerConfig struct {
	Port string `mapstructure:"port"`
}

type StorageConfig struct {
	// SQLite 文件路径，档案 blob 存在这里的 kv 表里
	Path string `mapstructure:"path"`
}

type ModelConfig struct {
	APIKey string `mapstructure:"api_key"`
	// OpenAI 兼容端点；留空用 Google 官方默认
	BaseURL string `mapstructure:"base_url"`
	// generateContent 的 REST 端点前缀，网关代理转发用
	UpstreamURL string `mapstructure:"upstream_url"`
	Model       string `mapstructure:"model"`
}

// LoadConfig 读取配置文件
func LoadConfig() (*Config, error) {
	viper.SetConfigName("config") // 配置文件名 (不带扩展名)
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".") // 查找路径：根目录

	// 支持环境变量覆盖 (例如 EDUCONSULT_GEMINI_API_KEY)
	viper.SetEnvPrefix("EDUCONSULT")
	viper.AutomaticEnv()

	viper.SetDefault("server.port", ":8080")
	viper.SetDefault("storage.path", "educonsult.db")
	viper.SetDefault("gemini.model", "gemini-2.5-flash")
	viper.SetDefault("gemini.upstream_url", "https://generativelanguage.googleapis.com/v1beta")

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("读取配置文件失败: %w", err)
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("解析配置文件失败: %w", err)
	}

	return &cfg, nil
}
