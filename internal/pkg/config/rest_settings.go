package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/MGTheTrain/docsign/internal/pkg/validators"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g. DOCSIGN_PORT.
const EnvPrefix = "DOCSIGN"

// KeyGenerationSettings controls RSA key pair generation on the server.
type KeyGenerationSettings struct {
	DefaultKeySize   int           `mapstructure:"default_key_size" validate:"required,rsakeysize"`
	Timeout          time.Duration `mapstructure:"timeout" validate:"required,gt=0"`
	MaxPrimeAttempts int           `mapstructure:"max_prime_attempts" validate:"gte=0"`
}

// SignatureSettings selects the digest used for signing and verification.
type SignatureSettings struct {
	HashAlgorithm string `mapstructure:"hash_algorithm" validate:"required,oneof=md5 sha256"`
}

// CORSSettings holds the origins accepted by the REST server.
type CORSSettings struct {
	AllowedOrigins []string `mapstructure:"allowed_origins" validate:"required,min=1,dive,required"`
}

// RestConfig is the complete configuration of the REST server.
type RestConfig struct {
	Port          string                `mapstructure:"port" validate:"required,numeric"`
	Logger        LoggerSettings        `mapstructure:"logger"`
	KeyGeneration KeyGenerationSettings `mapstructure:"key_generation"`
	Signature     SignatureSettings     `mapstructure:"signature"`
	CORS          CORSSettings          `mapstructure:"cors"`
}

// Validate checks the REST configuration including the nested logger settings.
func (c *RestConfig) Validate() error {
	validate := validator.New()
	if err := validators.Register(validate); err != nil {
		return fmt.Errorf("failed to register validators: %w", err)
	}

	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("validation failed for RestConfig: %w", err)
	}

	if err := c.Logger.Validate(); err != nil {
		return err
	}

	return nil
}

func setRestDefaults(v *viper.Viper) {
	v.SetDefault("port", "8080")
	v.SetDefault("logger.log_level", LogLevelInfo)
	v.SetDefault("logger.log_type", LogTypeConsole)
	v.SetDefault("logger.file_path", "")
	v.SetDefault("logger.max_size", DefaultLogMaxSizeMB)
	v.SetDefault("logger.max_backups", DefaultLogMaxBackups)
	v.SetDefault("logger.max_age", DefaultLogMaxAgeDays)
	v.SetDefault("key_generation.default_key_size", 1024)
	v.SetDefault("key_generation.timeout", 2*time.Minute)
	v.SetDefault("key_generation.max_prime_attempts", 0)
	v.SetDefault("signature.hash_algorithm", "sha256")
	v.SetDefault("cors.allowed_origins", []string{"*"})
}

// InitializeRestConfig reads the YAML file at path, applies DOCSIGN_ environment
// overrides on top of it and validates the result. An empty path skips the file
// and builds the config from defaults and environment only.
func InitializeRestConfig(path string) (*RestConfig, error) {
	v := viper.New()
	setRestDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	var cfg RestConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}
