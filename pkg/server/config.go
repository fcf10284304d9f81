package server

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds the server settings. LoadConfig fills it from STACKCHART_*
// environment variables.
type Config struct {
	Addr string `envconfig:"ADDR" default:":8080"`

	// MongoURI selects the MongoDB store; StoreDir the file store. With
	// neither set records live in memory.
	MongoURI      string `envconfig:"MONGO_URI"`
	MongoDatabase string `envconfig:"MONGO_DATABASE" default:"stackchart"`
	StoreDir      string `envconfig:"STORE_DIR"`

	// RedisURL selects the Redis artifact cache; CacheDir the file cache.
	RedisURL string `envconfig:"REDIS_URL"`
	CacheDir string `envconfig:"CACHE_DIR"`

	// DataDir is the root for "source" paths in create requests. Empty
	// disables file sources.
	DataDir string `envconfig:"DATA_DIR"`

	MaxBodyBytes    int64         `envconfig:"MAX_BODY_BYTES" default:"8388608"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`
}

// LoadConfig reads the configuration from the environment.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := envconfig.Process("stackchart", &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
