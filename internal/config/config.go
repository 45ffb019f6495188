package config

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type ServerConfig struct {
	MySQLDSN      string `yaml:"mysql-dsn"`
	Addr          string `yaml:"addr"`
	ScenarioFile  string `yaml:"scenario-file"`
	CacheCapacity int    `yaml:"cache-capacity"`
	LogLevel      string `yaml:"log-level"`
}

func defaults() ServerConfig {
	return ServerConfig{
		Addr:          ":8080",
		CacheCapacity: 64,
		LogLevel:      "info",
	}
}

// FromFlagsServer builds the server configuration. Precedence, lowest
// first: built-in defaults, the YAML file named by -config or
// AMBROUTE_CONFIG, environment variables (a .env file in the working
// directory is loaded first when present), then explicit flags.
func FromFlagsServer(args []string) (ServerConfig, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return ServerConfig{}, fmt.Errorf("config: .env: %w", err)
	}

	fl := flag.NewFlagSet("server", flag.ContinueOnError)
	file := fl.String("config", os.Getenv("AMBROUTE_CONFIG"), "YAML config file")
	dsn := fl.String("dsn", "", "MySQL DSN (env DB_DSN)")
	addr := fl.String("addr", "", "HTTP bind address")
	scenarios := fl.String("scenarios", "", "YAML scenario file served instead of MySQL (env SCENARIO_FILE)")
	capacity := fl.Int("cache", 0, "number of scenario graphs kept in memory")
	level := fl.String("log-level", "", "debug, info, warn or error (env LOG_LEVEL)")
	if err := fl.Parse(args); err != nil {
		return ServerConfig{}, err
	}

	cfg := defaults()
	if *file != "" {
		if err := cfg.readFile(*file); err != nil {
			return ServerConfig{}, err
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return ServerConfig{}, err
	}

	if *dsn != "" {
		cfg.MySQLDSN = *dsn
	}
	if *addr != "" {
		cfg.Addr = *addr
	}
	if *scenarios != "" {
		cfg.ScenarioFile = *scenarios
	}
	if *capacity > 0 {
		cfg.CacheCapacity = *capacity
	}
	if *level != "" {
		cfg.LogLevel = *level
	}
	return cfg, nil
}

func (c *ServerConfig) readFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("config: %s: %w", path, err)
	}
	return nil
}

func (c *ServerConfig) applyEnv() error {
	if v := os.Getenv("DB_DSN"); v != "" {
		c.MySQLDSN = v
	}
	if v := os.Getenv("ADDR"); v != "" {
		c.Addr = v
	}
	if v := os.Getenv("SCENARIO_FILE"); v != "" {
		c.ScenarioFile = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("CACHE_CAPACITY"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: CACHE_CAPACITY: %w", err)
		}
		c.CacheCapacity = n
	}
	return nil
}
