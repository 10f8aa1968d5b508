package main

import (
	"errors"
	"flag"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config is the resolved command line. Fighter and CPU defaults come from
// the environment, optionally seeded from a .env file.
type Config struct {
	Debug       bool
	Mute        bool
	BaseMonitor bool
	P1, P2      string
	CPU         string
	CPUSlot     int
	Summary     string
}

const (
	envP1  = "STICKCLASH_P1"
	envP2  = "STICKCLASH_P2"
	envCPU = "STICKCLASH_CPU"
)

// loadEnv reads .env if present. A missing file is fine.
func loadEnv(path string) error {
	err := godotenv.Load(path)
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func parseConfig(args []string) (Config, error) {
	var cfg Config
	fl := flag.NewFlagSet("stickclash", flag.ContinueOnError)
	fl.BoolVar(&cfg.Debug, "debug", false, "enable debug overlays, state logging and prefab hot reload")
	fl.BoolVar(&cfg.Mute, "mute", false, "start with sound muted")
	fl.BoolVar(&cfg.BaseMonitor, "m", false, "use base monitor instead of primary (for multi-monitor setups)")
	fl.StringVar(&cfg.P1, "p1", envOr(envP1, "Kira"), "player 1 fighter id or name")
	fl.StringVar(&cfg.P2, "p2", envOr(envP2, "Brick"), "player 2 fighter id or name")
	fl.StringVar(&cfg.CPU, "cpu", envOr(envCPU, ""), "brain script (.tengo or .lua) driving player 2")
	fl.IntVar(&cfg.CPUSlot, "cpu-slot", 2, "slot the -cpu brain drives")
	fl.StringVar(&cfg.Summary, "summary", "", "write a JSON match summary to this path on KO")
	if err := fl.Parse(args); err != nil {
		return cfg, err
	}
	if cfg.CPUSlot != 1 && cfg.CPUSlot != 2 {
		cfg.CPUSlot = 2
	}
	return cfg, nil
}
