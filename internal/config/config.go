package config

import "github.com/spf13/viper"

type Config struct {
	ServerPort     string `mapstructure:"SERVER_PORT"`
	PostgresURL    string `mapstructure:"POSTGRES_URL"`
	RedisAddr      string `mapstructure:"REDIS_ADDR"`
	RedisPassword  string `mapstructure:"REDIS_PASSWORD"`
	SerpAPIKey     string `mapstructure:"SERPAPI_KEY"`
	SerpAPIURL     string `mapstructure:"SERPAPI_URL"`
	DocPath        string `mapstructure:"DOC_PATH"`
	LocalStorePath string `mapstructure:"LOCAL_STORE_PATH"`
}

func Load() Config {
	viper.AutomaticEnv()
	viper.SetDefault("SERVER_PORT", ":8080")
	viper.SetDefault("SERPAPI_URL", "https://serpapi.com/search.json")
	viper.SetDefault("DOC_PATH", "planner")
	viper.SetDefault("LOCAL_STORE_PATH", "holiday-planner-data.json")

	var cfg Config
	_ = viper.Unmarshal(&cfg)
	return cfg
}
