package config

import "sort"

var Presets = map[string]*Config{
	// full-size benchmark: 65536 bodies, 100 steps
	"reference": {
		Bodies: 65536, Steps: 100,
		LogFile: DefaultLogFile, Program: DefaultProgram, Physics: DefaultPhysics(),
	},
	"reference-fast": {
		Bodies: 65536, Steps: 100, FastMath: true,
		LogFile: DefaultLogFile, Program: DefaultProgram, Physics: DefaultPhysics(),
	},
	"small": {
		Bodies: 1024, Steps: 10,
		LogFile: DefaultLogFile, Program: DefaultProgram, Physics: DefaultPhysics(),
	},
	"grid4": {
		Bodies: 4, Steps: 1, Workers: 1,
		LogFile: DefaultLogFile, Program: DefaultProgram, Physics: DefaultPhysics(),
	},
	"single": {
		Bodies: 1, Steps: 10, Workers: 1, ValidateState: true,
		LogFile: DefaultLogFile, Program: DefaultProgram, Physics: DefaultPhysics(),
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	c := *cfg
	return &c
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
