// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/apex/log"
	"gopkg.in/yaml.v3"
)

// FileName is the config file looked for in the standard locations.
const FileName = "linkctl.yaml"

type Type struct {
	Source    string
	Namespace string
	Data      map[string]interface{}
}

var Config Type

// Load reads the config file and makes it the package Config. The optional
// namespace is consulted first by the getters, so "get.limit" wins over
// "limit" when the namespace is "get".
func Load(namespace ...string) (Type, error) {
	path, err := getConfigPath()
	if err != nil {
		return Type{}, err
	}

	bytes, err := os.ReadFile(path)
	if err != nil {
		return Type{}, err
	}

	var data map[string]interface{}
	if err := yaml.Unmarshal(bytes, &data); err != nil {
		return Type{}, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	Config = Type{
		Source: path,
		Data:   data,
	}
	if len(namespace) > 0 {
		Config.Namespace = namespace[0]
	}

	return Config, nil
}

// get traverses the map using a dotted key path
func (cfg *Type) get(kspec string) (any, error) {
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
			return current, nil
		}
	}

	return nil, fmt.Errorf("no valid path found among: %v", candidateKeys)
}

func GetString(key string, defaultValue ...string) (string, error) {
	if len(Config.Data) == 0 {
		_, _ = Load(Config.Namespace)
	}

	val, err := Config.get(key)
	if err != nil {
		if len(defaultValue) == 1 {
			return defaultValue[0], nil
		}
		return "", err
	}

	s, ok := val.(string)
	if !ok {
		return "", errors.New("value is not a string")
	}

	return s, nil
}

func GetInt(key string, defaultValue ...int) (int, error) {
	if len(Config.Data) == 0 {
		_, _ = Load(Config.Namespace)
	}

	val, err := Config.get(key)
	if err != nil {
		if len(defaultValue) == 1 {
			return defaultValue[0], nil
		}
		return 0, err
	}

	// YAML numbers may be unmarshaled as int/float64 depending on content.
	switch v := val.(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case float64:
		return int(v), nil
	default:
		return 0, errors.New("value is not an int")
	}
}

func getConfigPath() (string, error) {
	// An explicit LINKCTL_CFG must exist; there is no fallback.
	if p, ok := os.LookupEnv("LINKCTL_CFG"); ok && p != "" {
		fi, err := os.Stat(p)
		if err != nil {
			return "", fmt.Errorf("config file not found: %s", p)
		}
		if fi.IsDir() {
			return "", fmt.Errorf("LINKCTL_CFG points to a directory: %s", p)
		}
		return p, nil
	}

	var candidates []string = []string{
		os.Getenv("XDG_CONFIG_HOME"),
		os.Getenv("APPDATA"),
		os.Getenv("HOME"),
	}

	for _, c := range candidates {
		if c == "" {
			continue
		}
		file := filepath.Join(c, FileName)
		if fileInfo, err := os.Stat(file); err == nil {
			if !fileInfo.IsDir() {
				log.Debugf("using config file: %s", file)
				return file, nil
			}
		}
	}
	return "", fmt.Errorf("no config file found in standard locations")
}
