package config

import (
	"sort"

	"github.com/ChenxiSSS/FG21SimPlus/internal/halo"
)

// Presets are named configurations trading accuracy for speed.
var Presets = map[string]*Config{
	"default": DefaultConfig(),
	"fast": {
		Cosmology: CosmologyConfig{H0: DefaultH0, OmegaM: DefaultOmegaM},
		Halo: halo.Config{
			BetaTurb:       DefaultBetaTurb,
			EtaE:           DefaultEtaE,
			GammaMin:       DefaultGammaMin,
			GammaMax:       DefaultGammaMax,
			GammaNp:        64,
			BufferNp:       6,
			TimeStep:       0.05,
			InjectionIndex: DefaultInjectionIndex,
		},
	},
	"fine": {
		Cosmology: CosmologyConfig{H0: DefaultH0, OmegaM: DefaultOmegaM},
		Halo: halo.Config{
			BetaTurb:       DefaultBetaTurb,
			EtaE:           DefaultEtaE,
			GammaMin:       DefaultGammaMin,
			GammaMax:       1e6,
			GammaNp:        512,
			BufferNp:       20,
			TimeStep:       0.002,
			InjectionIndex: DefaultInjectionIndex,
		},
	},
}

func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
