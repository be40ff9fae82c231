package config

import (
	"os"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/subosito/gotenv"
)

const (
	envPrefix   = "XSENTIMENT_"
	legacyToken = "BEARER_TOKEN"

	BackendX      = "x"
	BackendNitter = "nitter"

	ClassifierVader      = "vader"
	ClassifierHugot      = "hugot"
	ClassifierOpenRouter = "openrouter"
)

type Config struct {
	Server     ServerConfig     `koanf:"server"`
	Search     SearchConfig     `koanf:"search"`
	Classifier ClassifierConfig `koanf:"classifier"`
	Log        LogConfig        `koanf:"log"`
}

type ServerConfig struct {
	Port            string        `koanf:"port"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

type SearchConfig struct {
	Backend        string        `koanf:"backend"`
	BearerToken    string        `koanf:"bearer_token"`
	BaseURL        string        `koanf:"base_url"`
	NitterInstance string        `koanf:"nitter_instance"`
	Timeout        time.Duration `koanf:"timeout"`
}

type ClassifierConfig struct {
	Backend         string `koanf:"backend"`
	Model           string `koanf:"model"`
	ModelDir        string `koanf:"model_dir"`
	APIKey          string `koanf:"api_key"`
	OpenRouterModel string `koanf:"openrouter_model"`
}

type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// Default returns the configuration used when no file or environment overrides are present.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Port:            ":8000",
			ShutdownTimeout: 10 * time.Second,
		},
		Search: SearchConfig{
			Backend: BackendX,
			BaseURL: "https://api.twitter.com",
			Timeout: 15 * time.Second,
		},
		Classifier: ClassifierConfig{
			Backend:         ClassifierVader,
			Model:           "distilbert/distilbert-base-uncased-finetuned-sst-2-english",
			ModelDir:        "./models",
			OpenRouterModel: "openai/gpt-4o-mini",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "tint",
		},
	}
}

// Load reads defaults, then the optional yaml file at path, then BEARER_TOKEN,
// then XSENTIMENT_* variables.
// A .env file in the working directory is loaded into the environment first.
func Load(path string) (*Config, error) {
	_ = gotenv.Load()

	k := koanf.New(".")

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, errors.Wrapf(err, "load %s", path)
			}
		}
	}

	if err := k.Load(env.ProviderWithValue(legacyToken, ".", legacyKey), nil); err != nil {
		return nil, errors.Wrap(err, "load environment")
	}
	if err := k.Load(env.Provider(envPrefix, ".", envKey), nil); err != nil {
		return nil, errors.Wrap(err, "load environment")
	}

	cfg := Default()
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, errors.Wrap(err, "decode config")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// envKey maps XSENTIMENT_SEARCH__BEARER_TOKEN to search.bearer_token.
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, envPrefix))
	return strings.ReplaceAll(key, "__", ".")
}

// legacyKey accepts a non-empty BEARER_TOKEN. The prefixed variable, loaded
// afterwards, takes precedence.
func legacyKey(key, value string) (string, any) {
	if key != legacyToken || value == "" {
		return "", nil
	}
	return "search.bearer_token", value
}

func (c *Config) Validate() error {
	switch c.Search.Backend {
	case BackendX:
		if c.Search.BearerToken == "" {
			return errors.New("search.bearer_token is required for the x backend (set BEARER_TOKEN)")
		}
	case BackendNitter:
		if c.Search.NitterInstance == "" {
			return errors.New("search.nitter_instance is required for the nitter backend")
		}
	default:
		return errors.Newf("unknown search backend %q", c.Search.Backend)
	}

	switch c.Classifier.Backend {
	case ClassifierVader:
	case ClassifierHugot:
		if c.Classifier.Model == "" {
			return errors.New("classifier.model is required for the hugot backend")
		}
	case ClassifierOpenRouter:
		if c.Classifier.APIKey == "" {
			return errors.New("classifier.api_key is required for the openrouter backend")
		}
	default:
		return errors.Newf("unknown classifier backend %q", c.Classifier.Backend)
	}

	if c.Search.Timeout <= 0 {
		return errors.New("search.timeout must be positive")
	}
	return nil
}
