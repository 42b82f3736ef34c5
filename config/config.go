package config

import (
	"fmt"
	"os"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
)

var (
	globalConfig Config
	once         sync.Once
)

// DefaultSecretKey is only acceptable for local development.
const DefaultSecretKey = "dev-secret-key"

// ExtensionSet is a lowercase file extension allow-set, decoded from a
// comma-separated string ("png,jpg,jpeg,gif").
type ExtensionSet map[string]bool

// Contains reports whether ext (without the dot, any case) is allowed.
func (s ExtensionSet) Contains(ext string) bool {
	return s[strings.ToLower(ext)]
}

// Config holds the flattened application configuration.
type Config struct {
	// Server
	ServerHost         string        `mapstructure:"server_host"`
	ServerPort         int           `mapstructure:"server_port"`
	ServerReadTimeout  time.Duration `mapstructure:"server_read_timeout"`
	ServerWriteTimeout time.Duration `mapstructure:"server_write_timeout"`
	ServerIdleTimeout  time.Duration `mapstructure:"server_idle_timeout"`

	// Secret used to sign session cookies.
	SecretKey  string        `mapstructure:"secret_key"`
	SessionTTL time.Duration `mapstructure:"session_ttl"`

	// Database connection string: a postgres DSN/URL or a SQLite file path.
	DatabaseURL       string `mapstructure:"database_url"`
	DBMaxOpenConns    int    `mapstructure:"db_max_open_conns"`
	DBMaxIdleConns    int    `mapstructure:"db_max_idle_conns"`
	DBConnMaxLifetime int    `mapstructure:"db_conn_max_lifetime"`

	// Uploads
	UploadDir         string       `mapstructure:"upload_dir"`
	UploadMaxSizeMB   int          `mapstructure:"upload_max_size_mb"`
	AllowedExtensions ExtensionSet `mapstructure:"allowed_extensions"`

	// Rate limiting for the auth endpoints
	RateLimitAuthRPS   float64 `mapstructure:"rate_limit_auth_rps"`
	RateLimitAuthBurst int     `mapstructure:"rate_limit_auth_burst"`
}

// InitConfig initializes the global configuration exactly once.
func InitConfig() {
	once.Do(loadConfig)
}

func Get() *Config {
	return &globalConfig
}

func loadConfig() {
	setDefaults()

	envFile := viper.GetString("env_file_path")
	if envFile == "" {
		envFile = ".env"
	}
	viper.SetConfigFile(envFile)
	viper.SetConfigType("env")

	if err := viper.ReadInConfig(); err != nil {
		fmt.Fprintln(os.Stderr, "Info: .env file not found, using defaults and environment variables")
	} else {
		fmt.Fprintln(os.Stderr, "Info: Loaded configuration from .env file")
	}

	viper.AutomaticEnv()
	for _, key := range viper.AllKeys() {
		viper.BindEnv(key)
	}

	if err := viper.Unmarshal(&globalConfig, viper.DecodeHook(decodeHook())); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: Unable to unmarshal config, %v\n", err)
		os.Exit(1)
	}
}

// decodeHook composes the default string conversions with the
// ExtensionSet decoder.
func decodeHook() mapstructure.DecodeHookFunc {
	return mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		stringToExtensionSetHookFunc(),
	)
}

// stringToExtensionSetHookFunc decodes "png,jpg,jpeg,gif" into an
// ExtensionSet, lowercasing and trimming each entry.
func stringToExtensionSetHookFunc() mapstructure.DecodeHookFunc {
	return func(f reflect.Type, t reflect.Type, data interface{}) (interface{}, error) {
		if f.Kind() != reflect.String || t != reflect.TypeOf(ExtensionSet{}) {
			return data, nil
		}

		set := ExtensionSet{}
		for _, ext := range strings.Split(data.(string), ",") {
			ext = strings.ToLower(strings.TrimSpace(ext))
			if ext != "" {
				set[ext] = true
			}
		}
		return set, nil
	}
}

func setDefaults() {
	viper.SetDefault("server_host", "127.0.0.1")
	viper.SetDefault("server_port", 8080)
	viper.SetDefault("server_read_timeout", "15s")
	viper.SetDefault("server_write_timeout", "30s")
	viper.SetDefault("server_idle_timeout", "120s")

	viper.SetDefault("secret_key", DefaultSecretKey)
	viper.SetDefault("session_ttl", "24h")

	viper.SetDefault("database_url", "./data/startups.db")
	viper.SetDefault("db_max_open_conns", 100)
	viper.SetDefault("db_max_idle_conns", 25)
	viper.SetDefault("db_conn_max_lifetime", 3600)

	viper.SetDefault("upload_dir", "./data/uploads")
	viper.SetDefault("upload_max_size_mb", 10)
	viper.SetDefault("allowed_extensions", "png,jpg,jpeg,gif")

	viper.SetDefault("rate_limit_auth_rps", 1.0)
	viper.SetDefault("rate_limit_auth_burst", 10)
}

// Addr returns the listen address in "host:port" form.
func (c *Config) Addr() string {
	host := c.ServerHost
	if host == "" {
		host = "0.0.0.0"
	}
	port := c.ServerPort
	if port == 0 {
		port = 8080
	}
	return fmt.Sprintf("%s:%d", host, port)
}
