package config

import (
	"log/slog"
	"os"
	"sync"

	"product-api/internal/logger"

	"github.com/joho/godotenv"
)

type Config struct {
	AppPort     string
	AppName     string
	MongoURI    string
	MongoDBName string

	// Optional observability endpoints; empty means the corresponding
	// exporter/agent is skipped.
	RemoteTraceRpcURI      string
	RemoteProfilingHttpURI string
}

var (
	configInstance *Config
	configOnce     sync.Once
)

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func Instance() *Config {
	configOnce.Do(func() {
		log := logger.Instance()

		// Load .env file (optional)
		if err := godotenv.Load(); err != nil {
			log.Warn("No .env file found, using system environment variables")
		}

		configInstance = &Config{
			AppPort:                getenv("APP_PORT", "8080"),
			AppName:                getenv("APP_NAME", "product-api"),
			MongoURI:               getenv("MONGO_URI", "mongodb://localhost:27017"),
			MongoDBName:            getenv("MONGO_DB_NAME", "ecomm"),
			RemoteTraceRpcURI:      os.Getenv("REMOTE_TRACE_RPC_URI"),
			RemoteProfilingHttpURI: os.Getenv("REMOTE_PROFILING_HTTP_URI"),
		}

		if configInstance.RemoteTraceRpcURI == "" {
			log.Warn("Missing REMOTE_TRACE_RPC_URI, traces go to stdout")
		}
		if configInstance.RemoteProfilingHttpURI == "" {
			log.Warn("Missing REMOTE_PROFILING_HTTP_URI, profiling disabled")
		}

		// MongoURI is left out on purpose, it may carry credentials.
		log.Info("Configuration loaded successfully",
			slog.String("data.app_port", configInstance.AppPort),
			slog.String("data.app_name", configInstance.AppName),
			slog.String("data.mongo_db_name", configInstance.MongoDBName),
			slog.String("data.remote_trace_rpc_uri", configInstance.RemoteTraceRpcURI),
			slog.String("data.remote_profiling_http_uri", configInstance.RemoteProfilingHttpURI),
		)
	})

	return configInstance
}
