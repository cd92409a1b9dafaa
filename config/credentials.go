package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Credentials is the superuser credential input, parsed from a YAML file.
type Credentials struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

// LoadCredentials reads and parses a YAML credentials file.
func LoadCredentials(path string) (*Credentials, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read credentials file: %w", err)
	}
	var creds Credentials
	if err := yaml.Unmarshal(data, &creds); err != nil {
		return nil, fmt.Errorf("parse credentials file: %w", err)
	}
	return &creds, nil
}
