package config

import (
	"reflect"
	"strings"

	"gdps-backend/core/cache"
	"gdps-backend/core/database"
	"gdps-backend/core/logger"
	"gdps-backend/core/redis"
	"gdps-backend/core/search"
	"gdps-backend/core/server"
	"gdps-backend/core/storage"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// It is divided into partial configurations owned by the packages they
// configure.
type Config struct {
	// Server holds configuration for the HTTP server.
	Server server.Config `mapstructure:"server"`
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
	// Database holds configuration for the MySQL connection.
	Database database.Config `mapstructure:"database"`
	// Search holds configuration for the Meilisearch connection.
	Search search.Config `mapstructure:"search"`
	// Redis holds configuration for the Redis connection.
	Redis redis.Config `mapstructure:"redis"`
	// Cache holds configuration for the cache layer.
	Cache cache.Config `mapstructure:"cache"`
	// Storage holds configuration for the object storage.
	Storage storage.Config `mapstructure:"storage"`
}

// LoadConfig loads configuration from environment variables and .env file.
func LoadConfig(path string) (*Config, error) {
	envPath := path + "/.env"
	if path == "." {
		envPath = ".env"
	}

	// Ignore error if file doesn't exist (e.g. production)
	_ = godotenv.Overload(envPath)

	v := viper.New()

	// Recursively parse struct tags to set default values
	bindValues(v, Config{}, "")

	// Map environment variables to nested keys (e.g. DATABASE_HOST -> database.host)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// bindValues uses reflection to iterate over the struct and set default
// values in Viper based on the 'default' and 'mapstructure' tags.
func bindValues(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")
		if tag == "" {
			continue
		}

		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		// Recurse into nested config structs.
		if field.Type.Kind() == reflect.Struct {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}

		if def, ok := field.Tag.Lookup("default"); ok {
			v.SetDefault(key, def)
		} else {
			// Bind the key anyway so AutomaticEnv picks it up.
			v.SetDefault(key, "")
		}
	}
}
