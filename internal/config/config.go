package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Get returns the value of an environment variable, or fallback when unset.
func Get(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

type transferCitiesFile struct {
	TransferCities []string `yaml:"transfer_cities"`
}

// LoadTransferCities reads the static transfer-city list from a YAML file.
// The list is configuration, not discovered data: order is preserved and the
// planner only ever considers cities named here as connection points.
func LoadTransferCities(path string) ([]string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load transfer cities: read %q: %w", path, err)
	}

	var parsed transferCitiesFile
	if err := yaml.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("load transfer cities: parse %q: %w", path, err)
	}

	if len(parsed.TransferCities) == 0 {
		return nil, fmt.Errorf("load transfer cities: %q lists no cities", path)
	}

	return parsed.TransferCities, nil
}
