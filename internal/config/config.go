// Package config loads the project-level scan configuration, generalizing
// the teacher's decompose.yml loader.
package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ProjectConfig holds project-level settings loaded from deadcode.yml.
type ProjectConfig struct {
	Exclude                 []string `yaml:"exclude,omitempty"`
	DynamicPatterns         []string `yaml:"dynamicPatterns,omitempty"`
	DIDecorators            []string `yaml:"diDecorators,omitempty"`
	DIContainerPatterns     []string `yaml:"diContainerPatterns,omitempty"`
	DynamicPackageFields    []string `yaml:"dynamicPackageFields,omitempty"`
	GeneratedPatterns       []string `yaml:"generatedPatterns,omitempty"`
	UseUnifiedEntryDetector bool     `yaml:"useUnifiedEntryDetector,omitempty"`

	Languages []string `yaml:"languages,omitempty"`
	Verbose   bool     `yaml:"verbose,omitempty"`
	Workers   int      `yaml:"workers,omitempty"`

	Store     string `yaml:"store,omitempty"`
	StorePath string `yaml:"storePath,omitempty"`
}

// Load attempts to read deadcode.yml or deadcode.yaml from the given
// directory. Returns a zero-value config (not an error) if no config file
// exists.
func Load(dir string) (*ProjectConfig, error) {
	for _, name := range []string{"deadcode.yml", "deadcode.yaml"} {
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		var cfg ProjectConfig
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, err
		}
		return &cfg, nil
	}
	return &ProjectConfig{}, nil
}
