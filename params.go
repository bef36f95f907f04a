package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/alessio/shellescape"

	"github.com/hairhealth/api-contract-tests/framework"
	"github.com/hairhealth/api-contract-tests/internal/config"
)

const commandName = "hairhealth-contract-tests"

type commandParams struct {
	config     config.Config
	configFile string
	filters    framework.RegexFilters
}

// Read parses the command line. If -config names a file, the file supplies the defaults and
// any flag given on the command line overrides it; -run and -skip patterns are added to the
// file's lists.
func (c *commandParams) Read(args []string, errOut io.Writer) error {
	cfg := config.Default()
	fs := newFlagSet(&cfg, &c.configFile, errOut)
	if err := fs.Parse(args); err != nil {
		return err
	}

	if c.configFile != "" {
		fileConfig, err := config.Load(c.configFile)
		if err != nil {
			return err
		}
		cfg = fileConfig
		fs = newFlagSet(&cfg, &c.configFile, errOut)
		if err := fs.Parse(args); err != nil {
			return err
		}
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}

	if cfg.Elastic.URL != "" && cfg.Elastic.Index == "" {
		cfg.Elastic.Index = config.DefaultIndex
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	c.filters = framework.RegexFilters{}
	for _, p := range cfg.Run {
		if err := c.filters.MustMatch.Set(p); err != nil {
			return fmt.Errorf("-run %q: %w", p, err)
		}
	}
	for _, p := range cfg.Skip {
		if err := c.filters.MustNotMatch.Set(p); err != nil {
			return fmt.Errorf("-skip %q: %w", p, err)
		}
	}
	c.config = cfg
	return nil
}

func newFlagSet(cfg *config.Config, configFile *string, errOut io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(commandName, flag.ContinueOnError)
	fs.SetOutput(errOut)
	fs.StringVar(configFile, "config", *configFile, "YAML file with default settings")
	fs.StringVar(&cfg.URL, "url", cfg.URL, "base URL of the service under test")
	fs.BoolVar(&cfg.Strict, "strict", cfg.Strict, "treat warnings as failures")
	fs.Var((*stringList)(&cfg.Run), "run", "regex pattern(s) to select tests to run")
	fs.Var((*stringList)(&cfg.Skip), "skip", "regex pattern(s) to select tests not to run")
	fs.BoolVar(&cfg.Debug, "debug", cfg.Debug, "show debug output for failed and warned tests")
	fs.BoolVar(&cfg.DebugAll, "debug-all", cfg.DebugAll, "show debug output for all tests")
	fs.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "timeout for each request")
	fs.DurationVar(&cfg.Wait, "wait", cfg.Wait, "wait up to this long for the service to answer before starting")
	fs.StringVar(&cfg.Output, "output", cfg.Output, "report format: text or json")
	fs.StringVar(&cfg.DB, "db", cfg.DB, "SQLite file to record run history in")
	fs.StringVar(&cfg.MetricsFile, "metrics-file", cfg.MetricsFile, "write Prometheus metrics to this textfile")
	fs.StringVar(&cfg.Pushgateway, "pushgateway", cfg.Pushgateway, "push Prometheus metrics to this pushgateway URL")
	fs.StringVar(&cfg.Elastic.URL, "elastic-url", cfg.Elastic.URL, "index run documents in this Elasticsearch")
	fs.StringVar(&cfg.Elastic.Index, "elastic-index", cfg.Elastic.Index, "Elasticsearch index name (default "+config.DefaultIndex+")")
	fs.StringVar(&cfg.Schedule, "schedule", cfg.Schedule, "cron schedule; run repeatedly instead of once")
	fs.StringVar(&cfg.Listen, "listen", cfg.Listen, "address for the run history API in scheduled mode")
	fs.BoolVar(&cfg.DeleteAccount, "delete-account", cfg.DeleteAccount, "delete the registered account during cleanup")
	fs.BoolVar(&cfg.LogJSON, "log-json", cfg.LogJSON, "write operational logs as JSON")
	return fs
}

// stringList is a repeatable flag that appends to a slice.
type stringList []string

func (s *stringList) String() string {
	if s == nil {
		return ""
	}
	return strings.Join(*s, ",")
}

func (s *stringList) Set(value string) error {
	if value == "" {
		return errors.New("empty pattern")
	}
	*s = append(*s, value)
	return nil
}

// Reproduction returns a command line that runs with the same effective settings, without a
// config file. Settings that equal the defaults are left out.
func (c *commandParams) Reproduction() string {
	cfg, defaults := c.config, config.Default()
	b := commandBuilder{}
	b.add(commandName)
	b.addString("url", cfg.URL, defaults.URL)
	b.addBool("strict", cfg.Strict)
	for _, p := range cfg.Run {
		b.add("-run", p)
	}
	for _, p := range cfg.Skip {
		b.add("-skip", p)
	}
	b.addBool("debug", cfg.Debug)
	b.addBool("debug-all", cfg.DebugAll)
	b.addDuration("timeout", cfg.Timeout, defaults.Timeout)
	b.addDuration("wait", cfg.Wait, defaults.Wait)
	b.addString("output", cfg.Output, defaults.Output)
	b.addString("db", cfg.DB, "")
	b.addString("metrics-file", cfg.MetricsFile, "")
	b.addString("pushgateway", cfg.Pushgateway, "")
	b.addString("elastic-url", cfg.Elastic.URL, "")
	if cfg.Elastic.Index != config.DefaultIndex {
		b.addString("elastic-index", cfg.Elastic.Index, "")
	}
	b.addString("schedule", cfg.Schedule, "")
	b.addString("listen", cfg.Listen, "")
	b.addBool("delete-account", cfg.DeleteAccount)
	b.addBool("log-json", cfg.LogJSON)
	return b.String()
}

type commandBuilder []string

func (b *commandBuilder) add(args ...string) {
	for _, a := range args {
		*b = append(*b, shellescape.Quote(a))
	}
}

func (b *commandBuilder) addString(name, value, defaultValue string) {
	if value != defaultValue {
		b.add("-"+name, value)
	}
}

func (b *commandBuilder) addBool(name string, value bool) {
	if value {
		b.add("-" + name)
	}
}

func (b *commandBuilder) addDuration(name string, value, defaultValue time.Duration) {
	if value != defaultValue {
		b.add("-"+name, value.String())
	}
}

func (b commandBuilder) String() string {
	return strings.Join(b, " ")
}
