package config

import (
	"slices"
	"sort"
)

// Presets are named starting points. Presets with an Input sort that exact
// sequence; the level presets only fix the size of a random input.
var Presets = map[string]*Config{
	"reversed":      {Input: []int{6, 5, 4, 3, 2, 1}},
	"sorted":        {Input: []int{1, 2, 3, 4, 5, 6}},
	"nearly-sorted": {Input: []int{1, 2, 4, 3, 5, 6}},
	"duplicates":    {Input: []int{3, 1, 3, 2, 1, 2}},
	"single":        {Input: []int{5}},
	"empty":         {Input: []int{}},
	"classic":       {Input: []int{4, 2, 7, 1, 5}},
	"level1":        {Size: 4, Level: 1},
	"level2":        {Size: 5, Level: 2},
	"level3":        {Size: 6, Level: 3},
}

func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg
}

// Apply copies the preset's non-zero fields onto c.
func (c *Config) Apply(p *Config) {
	if p.Input != nil {
		c.Input = slices.Clone(p.Input)
	}
	if p.Size != 0 {
		c.Size = p.Size
	}
	if p.Level != 0 {
		c.Level = p.Level
	}
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
