// Package config loads and saves the simulation configuration.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ChenxiSSS/FG21SimPlus/internal/halo"
)

const (
	DefaultBetaTurb       = 0.2
	DefaultEtaE           = 0.01
	DefaultGammaMin       = 1.0
	DefaultGammaMax       = 1e5
	DefaultGammaNp        = 200
	DefaultBufferNp       = 10
	DefaultTimeStep       = 0.01
	DefaultInjectionIndex = 3.5
	DefaultH0             = 71.0
	DefaultOmegaM         = 0.27
)

type CosmologyConfig struct {
	H0     float64 `yaml:"h0"`
	OmegaM float64 `yaml:"omega_m"`
}

type Config struct {
	Cosmology CosmologyConfig `yaml:"cosmology"`
	Halo      halo.Config     `yaml:"halo"`
	// Workers bounds ensemble concurrency; 0 means GOMAXPROCS.
	Workers int `yaml:"workers"`
}

func DefaultConfig() *Config {
	return &Config{
		Cosmology: CosmologyConfig{
			H0:     DefaultH0,
			OmegaM: DefaultOmegaM,
		},
		Halo: halo.Config{
			BetaTurb:       DefaultBetaTurb,
			EtaE:           DefaultEtaE,
			GammaMin:       DefaultGammaMin,
			GammaMax:       DefaultGammaMax,
			GammaNp:        DefaultGammaNp,
			BufferNp:       DefaultBufferNp,
			TimeStep:       DefaultTimeStep,
			InjectionIndex: DefaultInjectionIndex,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// HaloList is a batch file: one merger parameter set per entry.
type HaloList struct {
	Halos []halo.Params `yaml:"halos"`
}

func LoadHaloList(path string) ([]halo.Params, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var list HaloList
	if err := yaml.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("halo list %s: %w", path, err)
	}
	if len(list.Halos) == 0 {
		return nil, fmt.Errorf("halo list %s: no halos defined", path)
	}
	return list.Halos, nil
}
