package config

import (
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

const (
	environmentVariablePrefix = "FEDCOMPUTE"
	inferConfigTypes          = true

	configType = "yaml"
	configName = "fedcompute"

	// DefaultDataDir is where the compute node materializes fetched data
	// source files. The catalog's accessinfo paths are rooted here.
	DefaultDataDir = "/var/lib/fedcompute/data"
)

var (
	environmentVariableReplace = strings.NewReplacer(".", "_")
	configDecoderHook          = viper.DecodeHook(mapstructure.TextUnmarshallerHookFunc())
)

// Config carries every setting the federation core needs. It is built once
// at process start and handed to each component; nothing reads ambient
// global state.
type Config struct {
	Auth            AuthConfig    `mapstructure:"Auth"`
	Local           TargetConfig  `mapstructure:"Local"`
	CentralRegistry TargetConfig  `mapstructure:"CentralRegistry"`
	Storage         StorageConfig `mapstructure:"Storage"`
}

// AuthConfig is the participant's own OAuth client identity. One client
// id/secret pair authorizes exactly one participant.
type AuthConfig struct {
	ClientID     string `mapstructure:"ClientID"`
	ClientSecret string `mapstructure:"ClientSecret"`
	TenantID     string `mapstructure:"TenantID"`
}

// TargetConfig describes one bearer-authenticated API target: the token
// endpoint that issues tokens for it, the resource identifier tokens are
// scoped to, and the base address API calls are posted under.
type TargetConfig struct {
	TokenEndpoint string `mapstructure:"TokenEndpoint"`
	Resource      string `mapstructure:"Resource"`
	BaseAddress   string `mapstructure:"BaseAddress"`
}

// StorageConfig configures the blob store used to stage data source files.
type StorageConfig struct {
	Bucket   string `mapstructure:"Bucket"`
	Region   string `mapstructure:"Region"`
	Endpoint string `mapstructure:"Endpoint"`
	DataDir  string `mapstructure:"DataDir"`
}

// Load reads the configuration file from path (when non-empty) and overlays
// FEDCOMPUTE_-prefixed environment variables.
func Load(path string) (Config, error) {
	v := viper.New()
	if path != "" {
		v.AddConfigPath(path)
		v.SetConfigName(configName)
		v.SetConfigType(configType)
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return Config{}, errors.Wrap(err, "loading config file")
			}
		}
	}
	v.SetEnvPrefix(environmentVariablePrefix)
	v.SetTypeByDefaultValue(inferConfigTypes)
	v.SetEnvKeyReplacer(environmentVariableReplace)
	v.AutomaticEnv()
	v.SetDefault("Storage.DataDir", DefaultDataDir)

	var out Config
	if err := v.Unmarshal(&out, configDecoderHook); err != nil {
		return Config{}, errors.Wrap(err, "decoding config")
	}
	return out, nil
}
