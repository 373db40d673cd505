package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/Aleph-Alpha/kafkalens/v1/kafka"
	"github.com/Aleph-Alpha/kafkalens/v1/logger"
	"github.com/Aleph-Alpha/kafkalens/v1/metrics"
	"github.com/Aleph-Alpha/kafkalens/v1/redis"
	"github.com/Aleph-Alpha/kafkalens/v1/schema_registry"
	"github.com/Aleph-Alpha/kafkalens/v1/tracer"
)

// envPrefix prefixes every environment override, e.g. KAFKALENS_KAFKA_BROKERS.
const envPrefix = "kafkalens"

// Config is the kafkalens configuration file layout.
type Config struct {
	Logger         logger.Config          `mapstructure:"logger"`
	Metrics        metrics.Config         `mapstructure:"metrics"`
	Tracer         tracer.Config          `mapstructure:"tracer"`
	SchemaRegistry schema_registry.Config `mapstructure:"schema_registry"`
	Redis          redis.Config           `mapstructure:"redis"`
	Kafka          kafka.Config           `mapstructure:"kafka"`
}

// defaults lists every key that can be overridden from the environment.
// viper only resolves environment variables for keys it knows about.
var defaults = map[string]interface{}{
	"logger.level":          logger.Info,
	"logger.service_name":   "kafkalens",
	"logger.encoding":       logger.EncodingJSON,
	"logger.enable_tracing": false,

	"metrics.address":                   "",
	"metrics.enable_default_collectors": true,
	"metrics.namespace":                 "kafkalens",
	"metrics.service_name":              "kafkalens",

	"tracer.service_name":  "kafkalens",
	"tracer.app_env":       "development",
	"tracer.enable_export": false,
	"tracer.endpoint":      "",

	"schema_registry.url":               "http://localhost:8081",
	"schema_registry.username":          "",
	"schema_registry.password":          "",
	"schema_registry.timeout":           schema_registry.DefaultTimeout,
	"schema_registry.subject_cache_ttl": schema_registry.DefaultSubjectCacheTTL,

	"redis.host":       "",
	"redis.port":       redis.DefaultPort,
	"redis.username":   "",
	"redis.password":   "",
	"redis.db":         0,
	"redis.key_prefix": redis.DefaultKeyPrefix,
	"redis.schema_ttl": "0s",

	"kafka.brokers":            []string{"localhost:9092"},
	"kafka.topic":              "",
	"kafka.group_id":           "",
	"kafka.data_type":          kafka.DataTypeAvro,
	"kafka.subject":            "",
	"kafka.skip_undecodable":   false,
	"kafka.enable_auto_commit": false,
	"kafka.compression_codec":  "",
	"kafka.tls.enabled":        false,
	"kafka.tls.ca_cert_path":   "",
	"kafka.sasl.enabled":       false,
	"kafka.sasl.mechanism":     "",
	"kafka.sasl.username":      "",
	"kafka.sasl.password":      "",
}

// loadConfig reads the optional YAML file at path and applies KAFKALENS_*
// environment overrides on top of the defaults.
func loadConfig(path string) (*Config, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}
