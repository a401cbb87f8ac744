// Package config loads server and engine defaults from an optional YAML
// file with environment overrides.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"courieropt/internal/opt"
)

type Engine struct {
	PopulationSize    int      `yaml:"population_size"`
	Generations       int      `yaml:"generations"`
	MutationRate      float64  `yaml:"mutation_rate"`
	CrossoverRate     float64  `yaml:"crossover_rate"`
	AntCount          int      `yaml:"ant_count"`
	Iterations        int      `yaml:"iterations"`
	EvaporationRate   float64  `yaml:"evaporation_rate"`
	Alpha             float64  `yaml:"alpha"`
	Beta              float64  `yaml:"beta"`
	BaseSpeedKmh      float64  `yaml:"base_speed_kmh"`
	StopMinutes       float64  `yaml:"stop_minutes"`
	MaxEfficiencyKmh  float64  `yaml:"max_efficiency_kmh"`
	Strategies        []string `yaml:"strategies"`
	StrategyTimeoutMs int      `yaml:"strategy_timeout_ms"`
}

type Config struct {
	Addr           string  `yaml:"addr"`
	RedisURL       string  `yaml:"redis_url"`
	RateLimitRPS   float64 `yaml:"rate_limit_rps"`
	RateLimitBurst int     `yaml:"rate_limit_burst"`
	Engine         Engine  `yaml:"engine"`
}

// Load reads the YAML file at path (skipped when path is empty or the file
// is absent) and applies PORT/REDIS_URL env overrides on top.
func Load(path string) (Config, error) {
	cfg := Config{
		Addr:           ":8080",
		RateLimitRPS:   50,
		RateLimitBurst: 100,
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err == nil {
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("parse config %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}
	if v := os.Getenv("PORT"); v != "" {
		cfg.Addr = ":" + v
	}
	if v := os.Getenv("REDIS_URL"); v != "" {
		cfg.RedisURL = v
	}
	return cfg, nil
}

// Params converts the engine section into opt.Params; zero fields fall
// back to the engine defaults downstream.
func (e Engine) Params() opt.Params {
	return opt.Params{
		PopulationSize:   e.PopulationSize,
		Generations:      e.Generations,
		MutationRate:     e.MutationRate,
		CrossoverRate:    e.CrossoverRate,
		AntCount:         e.AntCount,
		Iterations:       e.Iterations,
		EvaporationRate:  e.EvaporationRate,
		Alpha:            e.Alpha,
		Beta:             e.Beta,
		BaseSpeedKmh:     e.BaseSpeedKmh,
		StopMinutes:      e.StopMinutes,
		MaxEfficiencyKmh: e.MaxEfficiencyKmh,
		Strategies:       e.Strategies,
		StrategyTimeout:  time.Duration(e.StrategyTimeoutMs) * time.Millisecond,
	}
}
