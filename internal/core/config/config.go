package config

import (
	"errors"
	"fmt"
	"reflect"
	"time"

	"github.com/spf13/viper"
)

// AppConfig holds the configuration for the application.
// Tags used:
// - mapstructure: used by viper to unmarshal
// - default: default value to set if missing
// - required: if "true", error if missing
// - alias: legacy environment variable read when the primary one is unset
type AppConfig struct {
	// Environment specifies the runtime environment (e.g., development, production).
	Environment string `mapstructure:"APP_ENV" default:"development"`
	// LogLevel defines the logging verbosity (e.g., debug, info, error).
	LogLevel string `mapstructure:"LOG_LEVEL" default:"info"`
	// ServerPort is the port where the server will listen.
	ServerPort int `mapstructure:"PORT" default:"10000" required:"true"`
	// StaticDir is the directory holding the checkout UI assets.
	StaticDir string `mapstructure:"STATIC_DIR" default:"public"`

	// PayPal holds the processor credentials and endpoint.
	PayPal PayPalConfig `mapstructure:",squash"`

	// TokenCache controls reuse of access tokens between operations.
	TokenCache TokenCacheConfig `mapstructure:",squash"`

	// Proxy routes outbound processor calls through an egress proxy.
	Proxy ProxyConfig `mapstructure:",squash"`
}

// PayPalConfig holds the REST API credentials.
// Credentials are intentionally not required so that /check-env can report them.
type PayPalConfig struct {
	// ClientID is the OAuth client identifier.
	ClientID string `mapstructure:"PAYPAL_CLIENT_ID"`
	// ClientSecret is the OAuth client secret.
	ClientSecret string `mapstructure:"PAYPAL_CLIENT_SECRET" alias:"PAYPAL_SECRET"`
	// APIBase is the processor base URL, e.g. https://api-m.sandbox.paypal.com.
	APIBase string `mapstructure:"PAYPAL_API_BASE"`
	// HTTPTimeout bounds every outbound processor call.
	HTTPTimeout time.Duration `mapstructure:"PAYPAL_HTTP_TIMEOUT" default:"30s" required:"true"`
}

// TokenCacheConfig holds the optional access token cache settings.
type TokenCacheConfig struct {
	// Enabled turns on token reuse. Off means a fresh token per operation.
	Enabled bool `mapstructure:"TOKEN_CACHE_ENABLED" default:"false"`
	// Skew is subtracted from the token lifetime before caching it.
	Skew time.Duration `mapstructure:"TOKEN_CACHE_SKEW" default:"60s"`
	// RedisURL is the cache backend, redis://[:password@]host[:port][/database].
	RedisURL string `mapstructure:"REDIS_URL"`
}

// ProxyConfig holds the egress proxy settings.
type ProxyConfig struct {
	Enabled  bool   `mapstructure:"OUTBOUND_PROXY_ENABLED" default:"false"`
	Hostname string `mapstructure:"OUTBOUND_PROXY_HOST"`
	Port     int    `mapstructure:"OUTBOUND_PROXY_PORT"`
	Username string `mapstructure:"OUTBOUND_PROXY_USERNAME"`
	Password string `mapstructure:"OUTBOUND_PROXY_PASSWORD"`
}

// ErrRedisURLRequired is returned when the token cache is enabled without a backend.
var ErrRedisURLRequired = errors.New("TOKEN_CACHE_ENABLED requires REDIS_URL")

// Load loads configuration from .env files and environment variables.
func Load(path string) (*AppConfig, error) {
	v := viper.New()

	v.AutomaticEnv()

	v.AddConfigPath(path)
	v.SetConfigName(".env")
	v.SetConfigType("env")

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config AppConfig

	if err := processTags(v, &config); err != nil {
		return nil, err
	}

	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}

	if err := validateRequired(&config); err != nil {
		return nil, err
	}

	if config.TokenCache.Enabled && config.TokenCache.RedisURL == "" {
		return nil, ErrRedisURLRequired
	}

	return &config, nil
}

// processTags iterates over the struct fields, binds env names and sets default values in Viper.
func processTags(v *viper.Viper, config interface{}) error {
	val := reflect.ValueOf(config)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}

	t := val.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)

		if field.Type.Kind() == reflect.Struct {
			if err := processTags(v, val.Field(i).Addr().Interface()); err != nil {
				return err
			}
			continue
		}

		key := field.Tag.Get("mapstructure")
		defaultValue := field.Tag.Get("default")

		if key != "" {
			alias := field.Tag.Get("alias")
			envNames := []string{key}
			if alias != "" {
				envNames = append(envNames, alias)
			}
			if err := v.BindEnv(append([]string{key}, envNames...)...); err != nil {
				return fmt.Errorf("failed to bind %s: %w", key, err)
			}

			// BindEnv only covers the process environment; the alias may also come from the .env file.
			if alias != "" && !v.IsSet(key) && v.IsSet(alias) {
				v.Set(key, v.Get(alias))
			}
		}

		if key != "" && defaultValue != "" {
			v.SetDefault(key, defaultValue)
		}
	}
	return nil
}

// validateRequired checks if fields marked as required have non-zero values.
func validateRequired(config interface{}) error {
	val := reflect.ValueOf(config)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}

	t := val.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)

		if field.Type.Kind() == reflect.Struct {
			if err := validateRequired(val.Field(i).Addr().Interface()); err != nil {
				return err
			}
			continue
		}

		if field.Tag.Get("required") == "true" && isZero(val.Field(i)) {
			return fmt.Errorf("missing required configuration: %s", field.Tag.Get("mapstructure"))
		}
	}
	return nil
}

// isZero checks if a reflect.Value is the zero value for its type.
func isZero(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.String:
		return v.String() == ""
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return v.Uint() == 0
	case reflect.Bool:
		return !v.Bool()
	default:
		return v.IsZero()
	}
}
