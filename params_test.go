package main

import (
	"bytes"
	"flag"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/hairhealth/api-contract-tests/framework"
	"github.com/hairhealth/api-contract-tests/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readParams(t *testing.T, args ...string) (commandParams, error) {
	var p commandParams
	err := p.Read(args, &bytes.Buffer{})
	return p, err
}

func writeConfig(t *testing.T, content string) string {
	path := filepath.Join(t.TempDir(), "contract.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestParamsDefaults(t *testing.T) {
	p, err := readParams(t)
	require.NoError(t, err)
	assert.Equal(t, config.Default(), p.config)
	assert.False(t, p.filters.IsDefined())
	assert.Equal(t, commandName, p.Reproduction())
}

func TestParamsFlags(t *testing.T) {
	p, err := readParams(t, "-url", "https://api.example.com", "-strict", "-run", "^health/", "-run", "^auth",
		"-skip", "Logout", "-timeout", "5s", "-output", "json", "-elastic-url", "http://localhost:9200")
	require.NoError(t, err)

	assert.Equal(t, "https://api.example.com", p.config.URL)
	assert.True(t, p.config.Strict)
	assert.Equal(t, []string{"^health/", "^auth"}, p.config.Run)
	assert.Equal(t, 5*time.Second, p.config.Timeout)
	assert.Equal(t, config.OutputJSON, p.config.Output)
	assert.Equal(t, config.DefaultIndex, p.config.Elastic.Index)

	assert.True(t, p.filters.AsFilter(framework.TestID{Path: []string{"health", "Health Check"}}))
	assert.False(t, p.filters.AsFilter(framework.TestID{Path: []string{"cleanup", "User Logout"}}))
	assert.False(t, p.filters.AsFilter(framework.TestID{Path: []string{"authentication", "User Logout"}}))
}

func TestParamsRejectInvalidSettings(t *testing.T) {
	for _, args := range [][]string{
		{"-url", "localhost:8080"},
		{"-output", "xml"},
		{"-timeout", "0s"},
		{"-run", "("},
		{"-listen", ":9090"},
		{"-elastic-index", "runs"},
		{"extra"},
		{"-no-such-flag"},
	} {
		_, err := readParams(t, args...)
		assert.Error(t, err, "args: %v", args)
	}
}

func TestParamsHelp(t *testing.T) {
	_, err := readParams(t, "-h")
	assert.ErrorIs(t, err, flag.ErrHelp)
}

func TestParamsConfigFileWithOverrides(t *testing.T) {
	path := writeConfig(t, `
url: https://staging.example.com
strict: true
run: ["^health/"]
timeout: 10s
`)
	p, err := readParams(t, "-config", path, "-url", "https://other.example.com", "-run", "^users/")
	require.NoError(t, err)

	assert.Equal(t, path, p.configFile)
	assert.Equal(t, "https://other.example.com", p.config.URL)
	assert.True(t, p.config.Strict)
	assert.Equal(t, 10*time.Second, p.config.Timeout)
	assert.Equal(t, []string{"^health/", "^users/"}, p.config.Run)
}

func TestParamsBadConfigFile(t *testing.T) {
	_, err := readParams(t, "-config", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = readParams(t, "-config", writeConfig(t, "url: [unclosed"))
	assert.Error(t, err)
}

func TestReproductionListsEffectiveSettings(t *testing.T) {
	path := writeConfig(t, `
url: https://staging.example.com
skip: ["medical sharing/"]
timeout: 10s
elastic:
  url: http://localhost:9200
`)
	p, err := readParams(t, "-config", path, "-strict")
	require.NoError(t, err)

	assert.Equal(t,
		commandName+" -url https://staging.example.com -strict -skip 'medical sharing/' -timeout 10s -elastic-url http://localhost:9200",
		p.Reproduction())
}
