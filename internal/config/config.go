// Package config resolves codetab options from defaults, a YAML config file,
// CODETABS_* environment variables and command-line flags, in increasing
// order of precedence.
package config

import (
	"errors"
	"fmt"
	"io"

	"github.com/ezerfernandes/codetabs/internal/codetab"
	"github.com/ezerfernandes/codetabs/internal/logging"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Option keys as they appear in the config file and, upper-cased with a
// CODETABS_ prefix, in the environment.
const (
	KeyDefaultLang = "default_lang"
	KeyShowAll     = "show_all_code_as_folders"
	KeyLanguages   = "languages"
)

// Command-line flag names for the same options.
const (
	FlagDefaultLang = "default-lang"
	FlagShowAll     = "show-all-as-tabs"
	FlagLanguages   = "lang"
)

const (
	envPrefix  = "CODETABS"
	configName = "codetabs"
)

// FlagKeys maps command-line flag names to the option keys they override.
var FlagKeys = map[string]string{
	FlagDefaultLang: KeyDefaultLang,
	FlagShowAll:     KeyShowAll,
	FlagLanguages:   KeyLanguages,
}

// AddFlags defines the option flags that [Load] binds.
func AddFlags(flags *pflag.FlagSet) {
	flags.String(FlagDefaultLang, codetab.DefaultLanguage, "language for fences without a tag")
	flags.Bool(FlagShowAll, true, "render a lone code block as a one-tab widget")
	flags.StringSlice(FlagLanguages, nil, "only convert fences whose language matches one of these globs")
}

// Load returns the effective options. An explicit path must exist; without
// one, codetabs.yaml in the working directory is used when present. flags
// may be nil.
func Load(path string, flags *pflag.FlagSet) (codetab.Options, error) {
	v := viper.New()

	v.SetDefault(KeyDefaultLang, codetab.DefaultLanguage)
	v.SetDefault(KeyShowAll, true)
	v.SetDefault(KeyLanguages, []string{})

	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	if len(path) != 0 {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(configName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if len(path) != 0 || !errors.As(err, &notFound) {
			return codetab.Options{}, fmt.Errorf("read config: %w", err)
		}
	}

	if flags != nil {
		for name, key := range FlagKeys {
			if flag := flags.Lookup(name); flag != nil {
				if err := v.BindPFlag(key, flag); err != nil {
					return codetab.Options{}, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	logging.New("config").Debug("loaded config", "file", v.ConfigFileUsed())

	return codetab.Options{
		DefaultLanguage: v.GetString(KeyDefaultLang),
		ShowAllAsTabs:   codetab.ParseFlag(v.Get(KeyShowAll)),
		Languages:       v.GetStringSlice(KeyLanguages),
	}, nil
}

// Dump writes opts as YAML in the config file format.
func Dump(opts codetab.Options, w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)

	if err := enc.Encode(opts); err != nil {
		return err
	}

	return enc.Close()
}
