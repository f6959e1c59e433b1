package config

import (
	"math/rand"
	"os"
	"slices"

	"github.com/cockroachdb/errors"
	"github.com/san-kum/sortsim/internal/algorithm"
	"github.com/san-kum/sortsim/internal/player"
	"gopkg.in/yaml.v3"
)

const (
	DefaultAlgorithm = "bubble"
	DefaultSpeed     = player.DefaultSpeed
	DefaultSize      = 5
	DefaultMinValue  = 1
	DefaultMaxValue  = 10
	DefaultLevel     = 1
	DefaultTheme     = "cyberpunk"
	DefaultLogLevel  = "info"

	// MaxSize bounds generated inputs; traces grow quadratically.
	MaxSize = 64
)

type Config struct {
	Algorithm string  `yaml:"algorithm"`
	Speed     float64 `yaml:"speed"`
	Size      int     `yaml:"size"`
	Seed      int64   `yaml:"seed"`
	MinValue  int     `yaml:"min_value"`
	MaxValue  int     `yaml:"max_value"`
	Input     []int   `yaml:"input,omitempty"`
	Preset    string  `yaml:"preset,omitempty"`
	Level     int     `yaml:"level"`
	Theme     string  `yaml:"theme"`
	LogLevel  string  `yaml:"log_level"`
}

func DefaultConfig() *Config {
	return &Config{
		Algorithm: DefaultAlgorithm,
		Speed:     DefaultSpeed,
		Size:      DefaultSize,
		MinValue:  DefaultMinValue,
		MaxValue:  DefaultMaxValue,
		Level:     DefaultLevel,
		Theme:     DefaultTheme,
		LogLevel:  DefaultLogLevel,
	}
}

func Load(path string) (*Config, error) {
	return LoadWith(path, DefaultConfig())
}

// LoadWith reads path over a copy of base: keys missing from the file keep
// base's values. A preset named in the file is applied first, so the file's
// other keys override it. It replaces any preset already applied to base.
func LoadWith(path string, base *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading config %s", path)
	}
	var head struct {
		Preset string `yaml:"preset"`
	}
	if err := yaml.Unmarshal(data, &head); err != nil {
		return nil, errors.Wrapf(err, "parsing config %s", path)
	}

	cfg := *base
	cfg.Input = slices.Clone(base.Input)
	if head.Preset != "" && head.Preset != base.Preset {
		p := GetPreset(head.Preset)
		if p == nil {
			return nil, errors.Newf("config %s: unknown preset: %s (available: %v)", path, head.Preset, ListPresets())
		}
		if base.Preset != "" {
			cfg.Input = nil
		}
		cfg.Apply(p)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrapf(err, "parsing config %s", path)
	}
	return &cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return errors.Wrap(err, "encoding config")
	}
	return errors.Wrapf(os.WriteFile(path, data, 0644), "writing config %s", path)
}

// Validate checks the config and normalizes the speed into the supported
// range.
func (c *Config) Validate() error {
	if _, err := algorithm.Parse(c.Algorithm); err != nil {
		return err
	}
	if c.Size < 0 || c.Size > MaxSize {
		return errors.Newf("size %d out of range [0, %d]", c.Size, MaxSize)
	}
	if len(c.Input) > MaxSize {
		return errors.Newf("input has %d values, at most %d allowed", len(c.Input), MaxSize)
	}
	if err := CheckRange(c.MinValue, c.MaxValue); err != nil {
		return err
	}
	if c.Level < 1 || c.Level > 3 {
		return errors.Newf("level %d out of range [1, 3]", c.Level)
	}
	if c.Preset != "" && GetPreset(c.Preset) == nil {
		return errors.Newf("unknown preset: %s (available: %v)", c.Preset, ListPresets())
	}
	c.Speed = player.ClampSpeed(c.Speed)
	return nil
}

// AlgorithmID returns the parsed algorithm identifier.
func (c *Config) AlgorithmID() (algorithm.ID, error) {
	return algorithm.Parse(c.Algorithm)
}

// Sequence returns the input to sort: the explicit input if set, otherwise
// the preset's input, otherwise Size random values in [MinValue, MaxValue]
// drawn from rng.
func (c *Config) Sequence(rng *rand.Rand) []int {
	if c.Input != nil {
		return slices.Clone(c.Input)
	}
	if p := GetPreset(c.Preset); p != nil && p.Input != nil {
		return slices.Clone(p.Input)
	}
	return RandomSequence(rng, c.Size, c.MinValue, c.MaxValue)
}

// CheckRange rejects value ranges RandomSequence cannot draw from: inverted
// ranges and ranges wider than the largest int.
func CheckRange(lo, hi int) error {
	if lo > hi {
		return errors.Newf("min_value %d greater than max_value %d", lo, hi)
	}
	if hi-lo+1 <= 0 {
		return errors.Newf("value range [%d, %d] is too wide", lo, hi)
	}
	return nil
}

// RandomSequence draws n values uniformly from [lo, hi]. The range must pass
// CheckRange.
func RandomSequence(rng *rand.Rand, n, lo, hi int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = lo + rng.Intn(hi-lo+1)
	}
	return out
}
