package config

import (
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Environment          string
	ServerPort           int
	DatabaseDbPath       string
	DatabaseCacheAddress string
	DatabaseCachePort    int
	SessionTTLMinutes    int
}

// InitConfig reads configuration from the environment with sane local
// defaults. Keys use the SERVER_ prefix (SERVER_DATABASE_DB_PATH etc).
func InitConfig() (Config, error) {
	v := viper.New()

	v.SetEnvPrefix("SERVER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("environment", "development")
	v.SetDefault("server_port", 8080)
	v.SetDefault("database_db_path", "data/reports.db")
	v.SetDefault("database_cache_address", "localhost")
	v.SetDefault("database_cache_port", 6379)
	v.SetDefault("session_ttl_minutes", 60)

	config := Config{
		Environment:          v.GetString("environment"),
		ServerPort:           v.GetInt("server_port"),
		DatabaseDbPath:       v.GetString("database_db_path"),
		DatabaseCacheAddress: v.GetString("database_cache_address"),
		DatabaseCachePort:    v.GetInt("database_cache_port"),
		SessionTTLMinutes:    v.GetInt("session_ttl_minutes"),
	}

	return config, nil
}
