package main

import (
	"os"

	"gopkg.in/yaml.v3"
)

// projectConfig carries non-flag build settings that do not belong on
// the command line, loaded from an optional ".vismutc.yaml" file next
// to the source file (spec §6's CLI surface is flag-only; this is an
// [EXPANSION] config-file overlay, mirroring viant-linager's
// struct-tagged YAML inspector config). Each setting is on when either
// its flag or the loaded config enables it; a flag cannot switch off a
// setting the config turns on.
type projectConfig struct {
	ColorEnabled bool `yaml:"colorEnabled"`
	DumpAST      bool `yaml:"dumpAST"`
}

// loadProjectConfig reads path if it exists; a missing file is not an
// error (the zero-value config is used).
func loadProjectConfig(path string) (projectConfig, error) {
	var cfg projectConfig
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
