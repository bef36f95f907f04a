// Package config holds the settings of a contract test run, and reads them from YAML files.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultURL     = "http://localhost:8080"
	DefaultTimeout = 30 * time.Second
	DefaultIndex   = "hairhealth-contract-runs"

	OutputText = "text"
	OutputJSON = "json"
)

// Elastic configures publishing of run documents to Elasticsearch.
type Elastic struct {
	URL   string `yaml:"url"`
	Index string `yaml:"index"`
}

// Config is the full set of run settings. Every field can also be set by a command-line flag.
type Config struct {
	URL           string        `yaml:"url"`
	Strict        bool          `yaml:"strict"`
	Run           []string      `yaml:"run"`
	Skip          []string      `yaml:"skip"`
	Debug         bool          `yaml:"debug"`
	DebugAll      bool          `yaml:"debug_all"`
	Timeout       time.Duration `yaml:"timeout"`
	Wait          time.Duration `yaml:"wait"`
	Output        string        `yaml:"output"`
	DB            string        `yaml:"db"`
	MetricsFile   string        `yaml:"metrics_file"`
	Pushgateway   string        `yaml:"pushgateway"`
	Elastic       Elastic       `yaml:"elastic"`
	Schedule      string        `yaml:"schedule"`
	Listen        string        `yaml:"listen"`
	DeleteAccount bool          `yaml:"delete_account"`
	LogJSON       bool          `yaml:"log_json"`
}

// Default returns the settings used when nothing is configured.
func Default() Config {
	return Config{
		URL:     DefaultURL,
		Timeout: DefaultTimeout,
		Output:  OutputText,
	}
}

// Load reads a YAML file. Settings that the file does not mention keep their default values.
// The result is not validated, since flags may still override it.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config %s: %w", path, err)
	}
	c := Default()
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Config{}, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if c.Elastic.URL != "" && c.Elastic.Index == "" {
		c.Elastic.Index = DefaultIndex
	}
	return c, nil
}

// Validate checks the settings for consistency.
func (c Config) Validate() error {
	u, err := url.Parse(c.URL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("url %q must be an absolute http or https URL", c.URL)
	}
	if c.Output != OutputText && c.Output != OutputJSON {
		return fmt.Errorf("output must be %q or %q, not %q", OutputText, OutputJSON, c.Output)
	}
	if c.Timeout <= 0 {
		return errors.New("timeout must be positive")
	}
	if c.Wait < 0 {
		return errors.New("wait must not be negative")
	}
	if c.Elastic.Index != "" && c.Elastic.URL == "" {
		return errors.New("an elastic index requires an elastic url")
	}
	if c.Listen != "" && c.Schedule == "" {
		return errors.New("listen requires a schedule")
	}
	return nil
}

// Monitor returns true if the settings ask for scheduled runs rather than a single run.
func (c Config) Monitor() bool {
	return c.Schedule != ""
}
