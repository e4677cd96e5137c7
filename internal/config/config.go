package config

import (
	"errors"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	. "github.com/cricklet/dobutsugo/internal/helpers"
	"github.com/cricklet/dobutsugo/internal/tablebase"
)

const (
	ConfigTablebaseURL   = "tablebase-url"
	ConfigTablebaseDir   = "tablebase-dir"
	ConfigPort           = "port"
	ConfigStaticDir      = "static-dir"
	ConfigDebug          = "debug"
	ConfigPrefetch       = "prefetch-workers"
	ConfigConfigFile     = "config-file"
	ConfigProfile        = "profile"
	ConfigColor          = "color"
	DefaultPort          = 8002
	DefaultPrefetchLimit = 8
)

// Config is read, in increasing priority, from defaults, an optional config
// file, DOBUTSU_* environment variables and command line flags.
type Config struct {
	*viper.Viper
}

func DefaultConfig() *Config {
	c := &Config{viper.New()}
	c.SetDefault(ConfigTablebaseURL, tablebase.DefaultBaseURL)
	c.SetDefault(ConfigTablebaseDir, "")
	c.SetDefault(ConfigPort, DefaultPort)
	c.SetDefault(ConfigStaticDir, "./static")
	c.SetDefault(ConfigDebug, false)
	c.SetDefault(ConfigPrefetch, DefaultPrefetchLimit)
	c.SetDefault(ConfigProfile, false)
	c.SetDefault(ConfigColor, true)

	c.SetEnvPrefix("dobutsu")
	c.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	c.AutomaticEnv()
	return c
}

// Load parses --key=value flags from args and returns the remaining
// positional arguments.
func Load(name string, args []string) (*Config, []string, Error) {
	c := DefaultConfig()

	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.String(ConfigTablebaseURL, tablebase.DefaultBaseURL, "base url of the tablebase")
	fs.String(ConfigTablebaseDir, "", "local tablebase mirror; used instead of the url when set")
	fs.Int(ConfigPort, DefaultPort, "port for the play server")
	fs.String(ConfigStaticDir, "./static", "directory of static files for the play server")
	fs.Bool(ConfigDebug, false, "log at debug level")
	fs.Int(ConfigPrefetch, DefaultPrefetchLimit, "concurrent shard downloads when prefetching")
	fs.String(ConfigConfigFile, "", "optional config file (yaml, json or toml)")
	fs.Bool(ConfigProfile, false, "write a cpu profile")
	fs.Bool(ConfigColor, true, "colour the board when printing to a terminal")

	err := fs.Parse(args)
	if errors.Is(err, pflag.ErrHelp) {
		return nil, nil, Wrap(err)
	}
	if err != nil {
		return nil, nil, Errorf("parsing flags: %w", err)
	}

	err = c.BindPFlags(fs)
	if err != nil {
		return nil, nil, Wrap(err)
	}

	configFile := c.GetString(ConfigConfigFile)
	if configFile != "" {
		c.SetConfigFile(configFile)
		err = c.ReadInConfig()
		if err != nil {
			return nil, nil, Errorf("reading config %v: %w", configFile, err)
		}
	}

	return c, fs.Args(), NilError
}

func (c *Config) TablebaseURL() string {
	return c.GetString(ConfigTablebaseURL)
}

func (c *Config) TablebaseDir() string {
	return c.GetString(ConfigTablebaseDir)
}

func (c *Config) Port() int {
	return c.GetInt(ConfigPort)
}

func (c *Config) StaticDir() string {
	return c.GetString(ConfigStaticDir)
}

func (c *Config) Debug() bool {
	return c.GetBool(ConfigDebug)
}

func (c *Config) PrefetchWorkers() int {
	return c.GetInt(ConfigPrefetch)
}

func (c *Config) Profile() bool {
	return c.GetBool(ConfigProfile)
}

func (c *Config) Color() bool {
	return c.GetBool(ConfigColor)
}
