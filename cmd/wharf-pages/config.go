package main

import (
	"errors"
	"os"

	"github.com/iver-wharf/wharf-core/v2/pkg/config"
	"github.com/iver-wharf/wharf-pages/pkg/ghdeploy"
	"github.com/iver-wharf/wharf-pages/pkg/pages"
	"github.com/iver-wharf/wharf-pages/pkg/pagesapi"
)

// Config holds all configurable settings for wharf-pages.
//
// The config is read in the following order:
//
// 1. File: ~/.config/iver-wharf/wharf-pages/wharf-pages-config.yml
//
// 2. File: ./wharf-pages-config.yml
//
// 3. File from environment variable: WHARF_PAGES_CONFIG
//
// 4. Environment variables, prefixed with WHARF_PAGES
//
// Each inner struct is represented as a deeper field in the different
// configurations. For YAML they represent deeper nested maps. For environment
// variables they are joined together by underscores.
//
// All environment variables must be uppercased, while YAML files are
// case-insensitive. Keeping camelCasing in YAML config files is recommended
// for consistency.
//
// Credentials are never part of the config, and are only read as inputs.
type Config struct {
	Pages  pagesapi.Config
	Deploy pages.Config
	GitHub ghdeploy.Config
}

// DefaultConfig is the hard-coded default values for wharf-pages's configs.
var DefaultConfig = Config{
	Pages: pagesapi.Config{
		URL: "https://api.unexpected.app",
	},
	Deploy: pages.DefaultConfig,
}

func loadConfig() (Config, error) {
	cfgBuilder := config.NewBuilder(DefaultConfig)

	cfgBuilder.AddConfigYAMLFile("~/.config/iver-wharf/wharf-pages/wharf-pages-config.yml")
	cfgBuilder.AddConfigYAMLFile("wharf-pages-config.yml")
	if cfgFile, ok := os.LookupEnv("WHARF_PAGES_CONFIG"); ok {
		cfgBuilder.AddConfigYAMLFile(cfgFile)
	}
	cfgBuilder.AddEnvironmentVariables("WHARF_PAGES")

	var cfg Config
	err := cfgBuilder.Unmarshal(&cfg)
	if err != nil {
		return Config{}, err
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (cfg *Config) validate() error {
	if cfg.Pages.URL == "" {
		return errors.New("config pages.url: must not be empty")
	}
	backend, err := pages.ParseBackend(string(cfg.Deploy.Backend))
	if err != nil {
		return err
	}
	cfg.Deploy.Backend = backend
	if cfg.Deploy.IndexRetryDelay < 0 {
		return errors.New("config deploy.indexRetryDelay: must not be negative")
	}
	return nil
}
