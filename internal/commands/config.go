package commands

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// DefaultConfigFile is read when present and --config is not given.
const DefaultConfigFile = ".structupdate.yaml"

// EnvPrefix prefixes every environment variable override.
const EnvPrefix = "STRUCTUPDATE"

// Config keys. Flags use the same names with dashes.
const (
	keyOutput    = "output"
	keyDir       = "dir"
	keyDryRun    = "dry_run"
	keyKeepGoing = "keep_going"
	keyTags      = "tags"
	keyVerbose   = "verbose"
	keyNoColor   = "no_color"
)

// Config holds the resolved settings of a run.
type Config struct {
	Output    string   `mapstructure:"output"`
	Dir       string   `mapstructure:"dir"`
	DryRun    bool     `mapstructure:"dry_run"`
	KeepGoing bool     `mapstructure:"keep_going"`
	Tags      []string `mapstructure:"tags"`
	Verbose   bool     `mapstructure:"verbose"`
	NoColor   bool     `mapstructure:"no_color"`
}

// LoadConfig resolves the configuration from flags, environment and the
// config file named by the --config flag.
func LoadConfig(flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	v.SetDefault(keyOutput, "")
	v.SetDefault(keyDir, "")
	v.SetDefault(keyDryRun, false)
	v.SetDefault(keyKeepGoing, false)
	v.SetDefault(keyTags, []string{})
	v.SetDefault(keyVerbose, false)
	v.SetDefault(keyNoColor, false)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	for _, key := range []string{keyOutput, keyDir, keyDryRun, keyKeepGoing, keyTags, keyVerbose, keyNoColor} {
		f := flags.Lookup(strings.ReplaceAll(key, "_", "-"))
		if f == nil {
			continue
		}

		if err := v.BindPFlag(key, f); err != nil {
			return nil, fmt.Errorf("binding flag %s: %w", f.Name, err)
		}
	}

	if err := readConfigFile(v, flags); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding configuration: %w", err)
	}

	return &cfg, nil
}

// readConfigFile reads the file named by --config. The default file is
// optional; an explicitly named one must exist.
func readConfigFile(v *viper.Viper, flags *pflag.FlagSet) error {
	path := DefaultConfigFile
	explicit := false

	if f := flags.Lookup("config"); f != nil {
		path = f.Value.String()
		explicit = f.Changed
	}

	if path == "" {
		return nil
	}

	if _, err := os.Stat(path); err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return nil
		}

		return fmt.Errorf("config file: %w", err)
	}

	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	return nil
}
