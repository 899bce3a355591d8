package config

import (
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix scopes environment overrides, e.g. GRAVSIM_WORKERS=8.
const EnvPrefix = "GRAVSIM"

// Keys that may be overridden by a flag or an environment variable.
const (
	KeyBodies   = "bodies"
	KeySteps    = "steps"
	KeyWorkers  = "workers"
	KeyFastMath = "fast_math"
	KeyValidate = "validate_state"
	KeyLogFile  = "log_file"
	KeyProgram  = "program"
)

// NewViper returns a viper instance reading GRAVSIM_* variables.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()
	return v
}

// ApplyOverrides copies every key that is explicitly set in v (changed
// flag, environment variable or v.Set) onto cfg. Unset keys keep the
// value from the file or preset.
func ApplyOverrides(v *viper.Viper, cfg *Config) {
	if v.IsSet(KeyBodies) {
		cfg.Bodies = v.GetInt(KeyBodies)
	}
	if v.IsSet(KeySteps) {
		cfg.Steps = v.GetInt(KeySteps)
	}
	if v.IsSet(KeyWorkers) {
		cfg.Workers = v.GetInt(KeyWorkers)
	}
	if v.IsSet(KeyFastMath) {
		cfg.FastMath = v.GetBool(KeyFastMath)
	}
	if v.IsSet(KeyValidate) {
		cfg.ValidateState = v.GetBool(KeyValidate)
	}
	if v.IsSet(KeyLogFile) {
		cfg.LogFile = v.GetString(KeyLogFile)
	}
	if v.IsSet(KeyProgram) {
		cfg.Program = v.GetString(KeyProgram)
	}
}
