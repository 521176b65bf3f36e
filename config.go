package main

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const envPrefix = "KB"

// Transports the server can listen on.
const (
	transportStdio = "stdio"
	transportSSE   = "sse"
	transportHTTP  = "http"
)

// ServerConfig holds server configuration
type ServerConfig struct {
	Root        string        `envconfig:"ROOT"`
	LogLevel    string        `envconfig:"LOG_LEVEL" default:"info"`
	LogDev      bool          `envconfig:"LOG_DEV" default:"false"`
	Transport   string        `envconfig:"TRANSPORT" default:"stdio"`
	Addr        string        `envconfig:"ADDR" default:":8080"`
	CallTimeout time.Duration `envconfig:"CALL_TIMEOUT" default:"30s"`
	CompatMode  bool          `envconfig:"COMPAT" default:"false"`

	// Flag-only settings.
	Debug   string `ignored:"true"`
	Single  bool   `ignored:"true"`
	EnvFile string `ignored:"true"`
}

// LoadConfig builds the configuration from an optional dotenv file, the
// environment and command-line args. Explicit flags win over the
// environment, and the environment wins over the dotenv file.
func LoadConfig(name string, args []string) (*ServerConfig, error) {
	fset := flag.NewFlagSet(name, flag.ContinueOnError)
	var (
		rootFlag      = fset.String("root", "", "knowledge base root directory (overrides $KB_ROOT)")
		debugFlag     = fset.String("debug", "", "write debug logs to this file")
		logLevelFlag  = fset.String("log-level", "", "log level: debug, info, warn, error")
		compatFlag    = fset.Bool("compat", false, "return tool results as plain text instead of JSON")
		transportFlag = fset.String("transport", "", "transport: stdio, sse or http")
		addrFlag      = fset.String("addr", "", "listen address for the sse and http transports")
		timeoutFlag   = fset.Duration("timeout", 0, "wall-clock budget per tool call (0 disables)")
		singleFlag    = fset.Bool("single", false, "refuse to start when another server serves the same root")
		envFileFlag   = fset.String("env-file", ".env", "dotenv file loaded before reading the environment")
	)
	if err := fset.Parse(args); err != nil {
		return nil, err
	}

	if *envFileFlag != "" {
		if err := godotenv.Load(*envFileFlag); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", *envFileFlag, err)
		}
	}

	var cfg ServerConfig
	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	cfg.Debug = *debugFlag
	cfg.Single = *singleFlag
	cfg.EnvFile = *envFileFlag

	fset.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "root":
			cfg.Root = *rootFlag
		case "log-level":
			cfg.LogLevel = *logLevelFlag
		case "compat":
			cfg.CompatMode = *compatFlag
		case "transport":
			cfg.Transport = *transportFlag
		case "addr":
			cfg.Addr = *addrFlag
		case "timeout":
			cfg.CallTimeout = *timeoutFlag
		}
	})

	if cfg.Root != "" {
		abs, err := filepath.Abs(cfg.Root)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve root: %w", err)
		}
		cfg.Root = abs
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks configuration validity. An empty root is allowed; tools
// report it per call.
func (c *ServerConfig) Validate() error {
	switch c.Transport {
	case transportStdio, transportSSE, transportHTTP:
	default:
		return fmt.Errorf("unknown transport %q", c.Transport)
	}
	if c.Transport != transportStdio && c.Addr == "" {
		return fmt.Errorf("transport %s requires a listen address", c.Transport)
	}
	if c.CallTimeout < 0 {
		return fmt.Errorf("call timeout must not be negative")
	}
	if _, err := parseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log level %q: %w", c.LogLevel, err)
	}
	return nil
}
