// Package kernel holds the configuration shared by all parts of the kernel.
package kernel

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"

	"github.com/go-arrower/kernel/entity"
)

// Config is a structure used for service configuration.
// It is intended to be mapped by viper.
type Config struct {
	ApplicationName string `mapstructure:"application_name"`

	Environment Environment `mapstructure:"environment"`

	Log   Log   `mapstructure:"log"`
	Store Store `mapstructure:"store"`
	HTTP  HTTP  `mapstructure:"http"`
	OTEL  OTEL  `mapstructure:"otel"`
}

const (
	LocalEnv       Environment = "local"
	TestEnv        Environment = "test"
	DevelopmentEnv Environment = "dev"
	ProductionEnv  Environment = "prod"
)

// Environments is the list of all supported environments.
func Environments() []Environment {
	return []Environment{LocalEnv, TestEnv, DevelopmentEnv, ProductionEnv}
}

type Environment string

const (
	// MemoryDriver keeps the key values in memory only.
	MemoryDriver StoreDriver = "memory"
	// JSONDriver persists the key values as JSON files in Store.Path.
	JSONDriver StoreDriver = "json"
	// BoltDriver persists the key values in a bbolt database at Store.Path.
	BoltDriver StoreDriver = "bolt"
)

// StoreDrivers is the list of all supported drivers.
func StoreDrivers() []StoreDriver {
	return []StoreDriver{MemoryDriver, JSONDriver, BoltDriver}
}

type StoreDriver string

type (
	Log struct {
		Level entity.Level `mapstructure:"level" json:"level"`
	}

	Store struct {
		Driver StoreDriver `mapstructure:"driver" json:"driver"`
		Path   string      `mapstructure:"path"   json:"path"`
	}

	HTTP struct {
		Port int `mapstructure:"port" json:"port"`
	}

	OTEL struct {
		Enabled bool   `mapstructure:"enabled" json:"enabled"`
		Host    string `mapstructure:"host"    json:"host"`
		Port    int    `mapstructure:"port"    json:"port"`
	}
)

// EnvPrefix is the prefix of all environment variables overwriting the configuration,
// e.g. KERNEL_HTTP_PORT for http.port.
const EnvPrefix = "KERNEL"

// DefaultViper returns a new viper instance with all default values
// from Config set.
func DefaultViper() *Viper {
	vip := viper.New()

	vip.SetEnvPrefix(EnvPrefix)
	vip.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	vip.AutomaticEnv()

	vip.SetDefault("application_name", "kernel")

	vip.SetDefault("environment", "local")

	vip.SetDefault("log.level", "info")

	vip.SetDefault("store.driver", "memory")
	vip.SetDefault("store.path", "data")

	vip.SetDefault("http.port", 8080)

	vip.SetDefault("otel.enabled", false)
	vip.SetDefault("otel.host", "localhost")
	vip.SetDefault("otel.port", 4317)

	return &Viper{Viper: vip}
}

var errConfigLoadFailed = errors.New("loading configuration failed")

// Viper is a wrapper around viper.Viper for configuration loading.
// The only purpose is to overwrite the Unmarshal method,
// so that the custom types of Config are validated and the
// developer does not have to think about it when using DefaultViper.
type Viper struct {
	*viper.Viper
}

func (vip *Viper) Unmarshal(rawVal any, opts ...viper.DecoderConfigOption) error {
	opts = append([]viper.DecoderConfigOption{viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
		allowedValuesHookFunc(Environments()),
		allowedValuesHookFunc(StoreDrivers()),
		levelHookFunc(),
	))}, opts...)

	err := vip.Viper.Unmarshal(rawVal, opts...)
	if err != nil {
		return fmt.Errorf("%w: could not decode configuration into struct: %v", errConfigLoadFailed, err)
	}

	return nil
}

// allowedValuesHookFunc restricts a string based enum type to the given values.
func allowedValuesHookFunc[T ~string](allowed []T) mapstructure.DecodeHookFuncType {
	return func(_ reflect.Type, t reflect.Type, data any) (any, error) {
		if t != reflect.TypeOf(*new(T)) {
			return data, nil
		}

		s, _ := data.(string)
		if slices.Contains(allowed, T(s)) {
			return data, nil
		}

		e := make([]string, 0, len(allowed))
		for _, a := range allowed {
			e = append(e, string(a))
		}

		return data, fmt.Errorf("value %q is not allowed, use one of: %s", s, strings.Join(e, ", ")) //nolint:err113,lll // accept dynamic error
	}
}

// levelHookFunc accepts the same spellings as entity.ParseLevel.
func levelHookFunc() mapstructure.DecodeHookFuncType {
	return func(_ reflect.Type, t reflect.Type, data any) (any, error) {
		if t != reflect.TypeOf(entity.Level("")) {
			return data, nil
		}

		s, _ := data.(string)

		level, err := entity.ParseLevel(s)
		if err != nil {
			return data, err //nolint:wrapcheck // wrapped by Unmarshal
		}

		return string(level), nil
	}
}
