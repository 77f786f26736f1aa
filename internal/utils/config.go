package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"

	"github.com/baalimago/go_away_boilerplate/pkg/ancli"
	"github.com/baalimago/go_away_boilerplate/pkg/misc"
)

func createConfigDir(configDirPath string) error {
	if _, err := os.Stat(configDirPath); os.IsNotExist(err) {
		if err := os.MkdirAll(configDirPath, os.ModePerm); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
		ancli.PrintOK(fmt.Sprintf("created config directory at: '%v'\n", configDirPath))
	}
	return nil
}

func createDefaultConfigFile[T any](configFilePath string, dflt *T) error {
	if _, err := os.Stat(configFilePath); os.IsNotExist(err) {
		if misc.Truthy(os.Getenv("DEBUG")) {
			ancli.PrintOK(fmt.Sprintf("attempting to create file: '%v'\n", configFilePath))
		}
		if err := CreateFile(configFilePath, dflt); err != nil {
			return fmt.Errorf("failed to write default config: '%v', error: %w", configFilePath, err)
		}
	}
	return nil
}

// LoadConfigFromFile at <configDirPath>/<configFileName>. The directory and a
// file with the default values are created if missing. Fields added to the
// defaults since the file was written are back-filled into the file.
func LoadConfigFromFile[T any](configDirPath, configFileName string, dflt *T) (T, error) {
	var conf T
	configPath := filepath.Join(configDirPath, configFileName)
	if misc.Truthy(os.Getenv("DEBUG")) {
		ancli.PrintOK(fmt.Sprintf("attempting to load file: %v\n", configPath))
	}
	if err := createConfigDir(configDirPath); err != nil {
		return conf, err
	}
	if err := createDefaultConfigFile(configPath, dflt); err != nil {
		return conf, err
	}
	if err := ReadAndUnmarshal(configPath, &conf); err != nil {
		return conf, fmt.Errorf("failed to unmarshal config '%v', error: %w", configFileName, err)
	}

	if hasChanged := setNonZeroValueFields(&conf, dflt); hasChanged {
		if err := CreateFile(configPath, &conf); err != nil {
			return conf, fmt.Errorf("failed to write config '%v' post zero-field appendage, error: %w", configFileName, err)
		}
		ancli.PrintOK(fmt.Sprintf("appended new fields and updated config file: %v\n", configPath))
	}

	if misc.Truthy(os.Getenv("DEBUG")) {
		ancli.PrintOK(fmt.Sprintf("found config: %+v\n", conf))
	}
	return conf, nil
}

// setNonZeroValueFields on a using b as template
func setNonZeroValueFields[T any](a, b *T) bool {
	hasChanged := false
	t := reflect.TypeOf(*a)
	for i := range t.NumField() {
		f := t.Field(i)
		aVal := reflect.ValueOf(a).Elem().FieldByName(f.Name)
		bVal := reflect.ValueOf(b).Elem().FieldByName(f.Name)
		if f.IsExported() && aVal.IsZero() && !bVal.IsZero() {
			hasChanged = true
			aVal.Set(bVal)
		}
	}
	return hasChanged
}
