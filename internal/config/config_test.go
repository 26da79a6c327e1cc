package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadTransferCities(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cities.yaml")
	content := "transfer_cities:\n  - Москва\n  - Казань\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	cities, err := LoadTransferCities(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cities) != 2 || cities[0] != "Москва" || cities[1] != "Казань" {
		t.Fatalf("wrong list: %v", cities)
	}
}

func TestLoadTransferCitiesRejectsEmptyList(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cities.yaml")
	if err := os.WriteFile(path, []byte("transfer_cities: []\n"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	if _, err := LoadTransferCities(path); err == nil {
		t.Fatal("expected an error for an empty list")
	}
}

func TestLoadTransferCitiesMissingFile(t *testing.T) {
	if _, err := LoadTransferCities(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}
