package config

import (
	"fmt"
	"os"

	"dario.cat/mergo"
	"gopkg.in/yaml.v3"
)

// Load reads path, expands environment variables, merges the result on top
// of Default(), validates, and returns the ready-to-use Config. A missing
// file is not an error — annad is expected to run on bare defaults until an
// operator drops a config in place.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			if verr := Validate(cfg); verr != nil {
				return nil, fmt.Errorf("%w: %v", ErrValidationFailed, verr)
			}
			return cfg, nil
		}
		return nil, &LoadError{File: path, Err: err}
	}

	data = ExpandEnv(data)

	var overlay Config
	if err := yaml.Unmarshal(data, &overlay); err != nil {
		return nil, &LoadError{File: path, Err: fmt.Errorf("%w: %v", ErrInvalidYAML, err)}
	}

	if err := mergo.Merge(cfg, overlay, mergo.WithOverride); err != nil {
		return nil, &LoadError{File: path, Err: err}
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidationFailed, err)
	}

	return cfg, nil
}
