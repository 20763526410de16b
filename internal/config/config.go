package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkgjs/create-package-json/internal/branding"
	"github.com/spf13/viper"
)

const (
	fileName = "config"
	fileType = "yaml"
)

// Keys understood by Defaults.
const (
	KeyLicense        = "license"
	KeyVersion        = "version"
	KeyType           = "type"
	KeyMain           = "main"
	KeySpacer         = "spacer"
	KeyKeywordsPolicy = "keywords-policy"
	KeyNpmBin         = "npm-bin"
)

// Keys lists every supported configuration key.
var Keys = []string{KeyLicense, KeyVersion, KeyType, KeyMain, KeySpacer, KeyKeywordsPolicy, KeyNpmBin}

// Defaults holds the built-in default layer of the resolution engine.
type Defaults struct {
	License        string
	Version        string
	Type           string
	Main           string
	Spacer         int
	KeywordsPolicy string
	NpmBin         string
}

// Dir returns the path to the config directory (~/.create-package-json/).
// CREATE_PACKAGE_JSON_HOME overrides the location.
func Dir() string {
	if v := os.Getenv(branding.EnvVar("HOME")); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return filepath.Join(home, branding.HomeDir())
}

// FilePath returns the full path to the config file.
func FilePath() string {
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// EnsureDir creates the config directory if it does not exist.
func EnsureDir() error {
	dir := Dir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}
	return nil
}

// Load initializes Viper to read from the config file and environment.
func Load() {
	viper.SetConfigFile(FilePath())
	viper.SetConfigType(fileType)
	viper.SetEnvPrefix(branding.EnvPrefix())
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	viper.SetDefault(KeyLicense, "ISC")
	viper.SetDefault(KeyVersion, "1.0.0")
	viper.SetDefault(KeyType, "commonjs")
	viper.SetDefault(KeyMain, "index.js")
	viper.SetDefault(KeySpacer, 2)
	viper.SetDefault(KeyKeywordsPolicy, "merge")
	viper.SetDefault(KeyNpmBin, "npm")

	// Ignore error if config file doesn't exist yet.
	_ = viper.ReadInConfig()
}

// Get returns a config value by key. Returns empty string if not set.
func Get(key string) string {
	return viper.GetString(key)
}

// Set writes a config key-value pair and saves the config file.
func Set(key, value string) error {
	if !isKnownKey(key) {
		return fmt.Errorf("unknown config key %q (known keys: %s)", key, strings.Join(Keys, ", "))
	}
	if err := EnsureDir(); err != nil {
		return err
	}

	viper.Set(key, value)

	configFile := FilePath()

	// Create the file if it doesn't exist.
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		f, err := os.Create(configFile)
		if err != nil {
			return fmt.Errorf("creating config file %s: %w", configFile, err)
		}
		f.Close()
	}

	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// Current returns the defaults layer as currently loaded.
func Current() Defaults {
	spacer := viper.GetInt(KeySpacer)
	if spacer <= 0 {
		spacer = 2
	}
	return Defaults{
		License:        viper.GetString(KeyLicense),
		Version:        viper.GetString(KeyVersion),
		Type:           viper.GetString(KeyType),
		Main:           viper.GetString(KeyMain),
		Spacer:         spacer,
		KeywordsPolicy: viper.GetString(KeyKeywordsPolicy),
		NpmBin:         viper.GetString(KeyNpmBin),
	}
}

func isKnownKey(key string) bool {
	for _, k := range Keys {
		if k == key {
			return true
		}
	}
	return false
}
