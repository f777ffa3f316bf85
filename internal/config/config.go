// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/tfctl/cfgload/internal/log"
)

// EnvSettings names the environment variable overriding the settings path.
const EnvSettings = "CFGLOAD_SETTINGS"

// ErrNoSettings is returned when no settings file exists.
var ErrNoSettings = errors.New("no settings file found")

// Type is the in-memory representation of the settings file.
type Type struct {
	Source    string
	Namespace string
	Data      map[string]interface{}
}

// Load reads the settings file. A missing file is reported as ErrNoSettings
// so callers can carry on with built-in defaults.
func Load(namespace string) (Type, error) {
	path, err := Path()
	if err != nil {
		return Type{Namespace: namespace}, err
	}

	bytes, err := os.ReadFile(path)
	if err != nil {
		return Type{Namespace: namespace}, err
	}

	var data map[string]interface{}
	if err := yaml.Unmarshal(bytes, &data); err != nil {
		return Type{Namespace: namespace}, fmt.Errorf("failed to parse settings %s: %w", path, err)
	}

	return Type{Source: path, Namespace: namespace, Data: data}, nil
}

// GetString returns the string at the dotted key, preferring the namespaced
// key. defaultValue is returned when neither exists or the value is not a
// string.
func (cfg Type) GetString(key string, defaultValue string) string {
	val, ok := cfg.get(key)
	if !ok {
		return defaultValue
	}
	s, ok := val.(string)
	if !ok {
		return defaultValue
	}
	return s
}

// get traverses the settings tree using a dotted key path. If Namespace is
// set, Namespace + "." + kspec is tried first.
func (cfg Type) get(kspec string) (any, bool) {
	candidateKeys := []string{kspec}
	if cfg.Namespace != "" {
		candidateKeys = []string{cfg.Namespace + "." + kspec, kspec}
	}

	for _, key := range candidateKeys {
		var current interface{} = cfg.Data
		success := true
		for _, k := range strings.Split(key, ".") {
			m, ok := current.(map[string]interface{})
			if !ok {
				success = false
				break
			}
			current, ok = m[k]
			if !ok {
				success = false
				break
			}
		}
		if success {
			return current, true
		}
	}
	return nil, false
}

// Path returns the absolute path to the settings file. If CFGLOAD_SETTINGS is
// set, it is treated as the full path. Otherwise cfgload.yaml in the
// os.UserConfigDir directory is used. The file must exist and not be a
// directory.
func Path() (string, error) {
	if cfgPath := os.Getenv(EnvSettings); cfgPath != "" {
		if fileInfo, err := os.Stat(cfgPath); err == nil {
			if !fileInfo.IsDir() {
				log.Debugf("using settings file from %s: %s", EnvSettings, cfgPath)
				return cfgPath, nil
			}
			return "", fmt.Errorf("%s points to a directory: %s", EnvSettings, cfgPath)
		}
		return "", fmt.Errorf("%w at %s path: %s", ErrNoSettings, EnvSettings, cfgPath)
	}

	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}

	file := filepath.Join(dir, "cfgload.yaml")
	if fileInfo, err := os.Stat(file); err == nil && !fileInfo.IsDir() {
		log.Debugf("using settings file: %s", file)
		return file, nil
	}

	return "", ErrNoSettings
}
