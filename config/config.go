package config

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
)

// Config is the process configuration. Flags win over environment
// variables, which win over the defaults.
type Config struct {
	Port      int
	Name      string
	Strategy  string
	Version   string
	Doctrine  string // optional doctrine JSON file
	RateLimit float64
	Burst     int
	LogLevel  slog.Level
	LogFormat string // "text" or "json"
}

func Default() Config {
	return Config{
		Port:      3000,
		Name:      "Mega ogudor",
		Strategy:  "AI-trapped-strategy",
		Version:   "1.0",
		Burst:     20,
		LogLevel:  slog.LevelInfo,
		LogFormat: "text",
	}
}

// Load parses args (without the program name) on top of the environment.
func Load(args []string) (Config, error) {
	cfg := Default()

	port, err := envInt("PORT", cfg.Port)
	if err != nil {
		return cfg, err
	}
	level := getEnv("LOG_LEVEL", "info")

	fs := flag.NewFlagSet("tower-core", flag.ContinueOnError)
	fs.IntVar(&cfg.Port, "port", port, "HTTP listen port")
	fs.StringVar(&cfg.Name, "name", getEnv("TEAM_NAME", cfg.Name), "team name reported on /info")
	fs.StringVar(&cfg.Strategy, "strategy", getEnv("STRATEGY", cfg.Strategy), "strategy label reported on /info")
	fs.StringVar(&cfg.Version, "version", cfg.Version, "version reported on /info")
	fs.StringVar(&cfg.Doctrine, "doctrine", getEnv("DOCTRINE", ""), "doctrine JSON file (reloaded on SIGHUP)")
	fs.Float64Var(&cfg.RateLimit, "rate", 0, "max requests per second, 0 disables throttling")
	fs.IntVar(&cfg.Burst, "burst", cfg.Burst, "throttle burst size")
	fs.StringVar(&level, "log-level", level, "debug, info, warn or error")
	fs.StringVar(&cfg.LogFormat, "log-format", getEnv("LOG_FORMAT", cfg.LogFormat), "text or json")
	if err := fs.Parse(args); err != nil {
		return cfg, err
	}

	if err := cfg.LogLevel.UnmarshalText([]byte(level)); err != nil {
		return cfg, fmt.Errorf("log level %q: %w", level, err)
	}
	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return cfg, fmt.Errorf("log format %q: want text or json", cfg.LogFormat)
	}
	if cfg.Port <= 0 || cfg.Port > 65535 {
		return cfg, fmt.Errorf("port %d out of range", cfg.Port)
	}
	return cfg, nil
}

// Addr is the listen address for the HTTP server.
func (c Config) Addr() string {
	return fmt.Sprintf("0.0.0.0:%d", c.Port)
}

// Logger builds the process logger from LogLevel and LogFormat.
func (c Config) Logger() *slog.Logger {
	opts := &slog.HandlerOptions{Level: c.LogLevel}
	if c.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}

func getEnv(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func envInt(key string, defaultValue int) (int, error) {
	raw := getEnv(key, "")
	if raw == "" {
		return defaultValue, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return defaultValue, fmt.Errorf("%s=%q: %w", key, raw, err)
	}
	return v, nil
}
