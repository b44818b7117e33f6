// internal/config/params.go
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/rusenback/detpanel/internal/model"
)

// paramsFile on paikallinen kopio viimeksi käytetyistä parametreista,
// vastine palvelimen user_settings.json tiedostolle.
const paramsFile = "params.yaml"

// LoadParams reads the last-used detection params.
// Returns the defaults if no file has been saved yet.
func LoadParams() (model.DetectionParams, error) {
	dir, err := Dir()
	if err != nil {
		return model.DefaultParams(), err
	}
	return LoadParamsFile(filepath.Join(dir, paramsFile))
}

// LoadParamsFile reads detection params from the given path
func LoadParamsFile(path string) (model.DetectionParams, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return model.DefaultParams(), nil
		}
		return model.DefaultParams(), fmt.Errorf("failed to read params file %s: %w", path, err)
	}

	params := model.DefaultParams()
	if err := yaml.Unmarshal(data, &params); err != nil {
		return model.DefaultParams(), fmt.Errorf("failed to unmarshal params YAML from %s: %w", path, err)
	}
	return params, nil
}

// SaveParams writes the params so the next session starts from them
func SaveParams(params model.DetectionParams) error {
	dir, err := Dir()
	if err != nil {
		return err
	}
	return SaveParamsFile(filepath.Join(dir, paramsFile), params)
}

// SaveParamsFile writes detection params to the given path
func SaveParamsFile(path string, params model.DetectionParams) error {
	data, err := yaml.Marshal(params)
	if err != nil {
		return fmt.Errorf("failed to marshal params: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write params file %s: %w", path, err)
	}
	return nil
}
