package redis

import "time"

// Config defines the connection to the Redis instance that backs the shared
// schema store.
type Config struct {
	// Host is the Redis server hostname or IP address
	// Default: "localhost"
	Host string `yaml:"host" envconfig:"REDIS_HOST" mapstructure:"host"`

	// Port is the Redis server port
	// Default: 6379
	Port int `yaml:"port" envconfig:"REDIS_PORT" mapstructure:"port"`

	// Username is the Redis username for ACL authentication (Redis 6.0+)
	Username string `yaml:"username" envconfig:"REDIS_USERNAME" mapstructure:"username"`

	// Password is the Redis password for authentication
	Password string `yaml:"password" envconfig:"REDIS_PASSWORD" mapstructure:"password"`

	// DB is the Redis database number to use
	DB int `yaml:"db" envconfig:"REDIS_DB" mapstructure:"db"`

	// KeyPrefix namespaces every key written by the store.
	// Default: "kafkalens:"
	KeyPrefix string `yaml:"key_prefix" envconfig:"REDIS_KEY_PREFIX" mapstructure:"key_prefix"`

	// SchemaTTL expires stored schemas. Registry ids are immutable, so the
	// default of 0 keeps them forever.
	SchemaTTL time.Duration `yaml:"schema_ttl" envconfig:"REDIS_SCHEMA_TTL" mapstructure:"schema_ttl"`

	// PoolSize is the maximum number of socket connections
	// Default: 10 per CPU
	PoolSize int `yaml:"pool_size" envconfig:"REDIS_POOL_SIZE" mapstructure:"pool_size"`

	// MaxRetries is the maximum number of retries before giving up
	// Default: 3
	MaxRetries int `yaml:"max_retries" envconfig:"REDIS_MAX_RETRIES" mapstructure:"max_retries"`

	// DialTimeout is the timeout for establishing new connections
	// Default: 5 seconds
	DialTimeout time.Duration `yaml:"dial_timeout" envconfig:"REDIS_DIAL_TIMEOUT" mapstructure:"dial_timeout"`

	// ReadTimeout is the timeout for socket reads
	// Default: 3 seconds
	ReadTimeout time.Duration `yaml:"read_timeout" envconfig:"REDIS_READ_TIMEOUT" mapstructure:"read_timeout"`

	// WriteTimeout is the timeout for socket writes
	// Default: ReadTimeout
	WriteTimeout time.Duration `yaml:"write_timeout" envconfig:"REDIS_WRITE_TIMEOUT" mapstructure:"write_timeout"`

	// TLS contains TLS/SSL configuration
	TLS TLSConfig `yaml:"tls" mapstructure:"tls"`

	// Logger is an optional logger used for connection and store errors
	Logger Logger `yaml:"-" mapstructure:"-"`
}

// TLSConfig contains TLS/SSL configuration parameters.
type TLSConfig struct {
	// Enabled determines whether to use TLS/SSL for the connection
	Enabled bool `yaml:"enabled" envconfig:"REDIS_TLS_ENABLED" mapstructure:"enabled"`

	// CACertPath is the file path to the CA certificate for verifying the server
	CACertPath string `yaml:"ca_cert_path" envconfig:"REDIS_TLS_CA_CERT_PATH" mapstructure:"ca_cert_path"`

	// ClientCertPath is the file path to the client certificate
	ClientCertPath string `yaml:"client_cert_path" envconfig:"REDIS_TLS_CLIENT_CERT_PATH" mapstructure:"client_cert_path"`

	// ClientKeyPath is the file path to the client certificate's private key
	ClientKeyPath string `yaml:"client_key_path" envconfig:"REDIS_TLS_CLIENT_KEY_PATH" mapstructure:"client_key_path"`

	// InsecureSkipVerify controls whether to skip verification of the server's certificate
	// WARNING: Setting this to true is insecure and should only be used in testing
	InsecureSkipVerify bool `yaml:"insecure_skip_verify" envconfig:"REDIS_TLS_INSECURE_SKIP_VERIFY" mapstructure:"insecure_skip_verify"`

	// ServerName is used to verify the hostname on the returned certificates
	// If empty, the Host from the main config is used
	ServerName string `yaml:"server_name" envconfig:"REDIS_TLS_SERVER_NAME" mapstructure:"server_name"`
}

// Logger is the subset of logger.LoggerClient the client uses.
type Logger interface {
	Info(msg string, err error, fields ...map[string]interface{})
	Warn(msg string, err error, fields ...map[string]interface{})
}

// Default values for configuration
const (
	DefaultHost            = "localhost"
	DefaultPort            = 6379
	DefaultKeyPrefix       = "kafkalens:"
	DefaultMaxRetries      = 3
	DefaultMinRetryBackoff = 8 * time.Millisecond
	DefaultMaxRetryBackoff = 512 * time.Millisecond
	DefaultDialTimeout     = 5 * time.Second
	DefaultReadTimeout     = 3 * time.Second
)
