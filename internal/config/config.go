// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config resolves launcher settings from defaults, an optional
// vibe.yaml, a workspace .env file and the environment, in that order of
// increasing precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/bartekus/vibe/internal/workspace"
)

// FileName is the config file looked up in the workspace when no explicit
// path is given.
const FileName = "vibe.yaml"

// Environment variables read by Load.
const (
	EnvTool    = "VIBE_TOOL"
	EnvRunner  = "VIBE_RUNNER"
	EnvTimeout = "VIBE_TIMEOUT"
)

// Config holds the resolved settings.
type Config struct {
	Toolchain workspace.Toolchain
	Layout    workspace.Layout
	// Timeout bounds pipeline operations; zero means none.
	Timeout time.Duration
	// Source is the config file that was read, if any.
	Source string
}

type fileLayout struct {
	Marker            string   `yaml:"marker"`
	RequiredFiles     []string `yaml:"required_files"`
	DependencyDir     string   `yaml:"dependency_dir"`
	AnswersCandidates []string `yaml:"answers_candidates"`
}

type file struct {
	Tool           string     `yaml:"tool"`
	ToolName       string     `yaml:"tool_name"`
	MinToolVersion string     `yaml:"min_tool_version"`
	Runner         string     `yaml:"runner"`
	Timeout        string     `yaml:"timeout"`
	Layout         fileLayout `yaml:"layout"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Toolchain: workspace.DefaultToolchain(),
		Layout:    workspace.DefaultLayout(),
	}
}

// Load resolves settings for the workspace at dir. path names an explicit
// config file, which must exist; when empty, dir/vibe.yaml is used if present.
func Load(dir, path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = filepath.Join(dir, FileName)
	}
	if err := cfg.mergeFile(path, explicit); err != nil {
		return nil, err
	}

	env, err := readDotEnv(filepath.Join(dir, ".env"))
	if err != nil {
		return nil, err
	}
	if err := cfg.mergeEnv(env); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) mergeFile(path string, required bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !required {
			return nil
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}

	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("failed to parse config YAML %s: %w", path, err)
	}

	setString(&c.Toolchain.Tool, f.Tool)
	setString(&c.Toolchain.ToolName, f.ToolName)
	setString(&c.Toolchain.MinToolVersion, f.MinToolVersion)
	setString(&c.Toolchain.Runner, f.Runner)

	setString(&c.Layout.Marker, f.Layout.Marker)
	setString(&c.Layout.DependencyDir, f.Layout.DependencyDir)
	if f.Layout.RequiredFiles != nil {
		c.Layout.RequiredFiles = f.Layout.RequiredFiles
	}
	if f.Layout.AnswersCandidates != nil {
		c.Layout.AnswersCandidates = f.Layout.AnswersCandidates
	}

	if f.Timeout != "" {
		d, err := parseTimeout(f.Timeout)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		c.Timeout = d
	}

	c.Source = path
	return nil
}

// mergeEnv applies environment overrides. Real environment variables win
// over values from the .env file.
func (c *Config) mergeEnv(dotenv map[string]string) error {
	lookup := func(key string) string {
		if v, ok := os.LookupEnv(key); ok {
			return strings.TrimSpace(v)
		}
		return strings.TrimSpace(dotenv[key])
	}

	setString(&c.Toolchain.Tool, lookup(EnvTool))
	setString(&c.Toolchain.Runner, lookup(EnvRunner))

	if raw := lookup(EnvTimeout); raw != "" {
		d, err := parseTimeout(raw)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvTimeout, err)
		}
		c.Timeout = d
	}
	return nil
}

func readDotEnv(path string) (map[string]string, error) {
	env, err := godotenv.Read(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return env, nil
}

func parseTimeout(raw string) (time.Duration, error) {
	d, err := time.ParseDuration(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("invalid timeout %q: %w", raw, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("invalid timeout %q: must not be negative", raw)
	}
	return d, nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
