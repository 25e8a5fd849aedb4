package config

import (
	"io/fs"
	"log"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"sigs.k8s.io/yaml"
)

// Load loads the configuration from the directory.
func Load(path string) (*Configuration, error) {
	return LoadFs(afero.NewOsFs(), path)
}

// LoadFs loads and validates the configuration from the directory in fsys.
func LoadFs(fsys afero.Fs, path string) (*Configuration, error) {
	// If given the path to a config.yaml file, move back up a level.
	if filepath.Base(path) == ConfigurationName {
		path = filepath.Dir(path)
	}

	configContents, err := afero.ReadFile(fsys, filepath.Join(path, ConfigurationName))
	if err != nil {
		return nil, err
	}
	var out Configuration
	if err := yaml.UnmarshalStrict(configContents, &out); err != nil {
		return nil, errors.Wrap(err, ConfigurationName)
	}
	if err := out.Validate(); err != nil {
		return nil, errors.Wrap(err, ConfigurationName)
	}
	out.configurationDir = path
	return &out, nil
}

// LoadOrDefault loads the configuration in path, falling back to the built
// in defaults if there is none.
func LoadOrDefault(fsys afero.Fs, path string, logger *log.Logger) (*Configuration, error) {
	cfg, err := LoadFs(fsys, path)
	if errors.Is(err, fs.ErrNotExist) {
		logger.Printf("No %s in %q, using defaults", ConfigurationName, path)
		return Default(), nil
	}
	return cfg, err
}

// Initialize writes the default configuration into dir, keeping any
// configuration that's already there.
func Initialize(fsys afero.Fs, dir string, logger *log.Logger) error {
	if err := fsys.MkdirAll(dir, 0700); err != nil {
		return err
	}

	configPath := filepath.Join(dir, ConfigurationName)
	exists, err := afero.Exists(fsys, configPath)
	switch {
	case err != nil:
		return err
	case exists:
		logger.Printf("%s already exists, skipping", configPath)
		return nil
	}

	logger.Printf("Writing %s", configPath)
	return afero.WriteFile(fsys, configPath, defaultConfigData, os.FileMode(0600))
}
