// Package config loads application settings and the ordered source list.
// Settings come from Viper (config file, environment, flags); the source
// list lives in its own YAML file so the CLI can add and remove entries
// without touching the rest of the configuration. Both files are
// read-modify-written wholesale, last writer wins.
package config

import (
	"os"

	"github.com/spf13/viper"
)

// Settings keys.
const (
	KeyTrackingPath    = "tracking_path"
	KeySourcesFile     = "sources_file"
	KeyExportDir       = "export_dir"
	KeyCredentialsFile = "credentials_file"
	KeyForce           = "force"
)

// Settings holds the application configuration for one reconciliation scope.
type Settings struct {
	// TrackingPath is where the change-detection store persists.
	TrackingPath string

	// SourcesFile is the YAML file holding the ordered source list.
	SourcesFile string

	// ExportDir is where merged CSV artifacts are written.
	ExportDir string

	// CredentialsFile is the Google service account key file.
	CredentialsFile string

	// Force bypasses change detection for every source.
	Force bool
}

// SetDefaults registers default values with Viper.
func SetDefaults() {
	viper.SetDefault(KeyTrackingPath, "sheets_tracking.json")
	viper.SetDefault(KeySourcesFile, "sources.yaml")
	viper.SetDefault(KeyExportDir, "")
	viper.SetDefault(KeyCredentialsFile, "")
	viper.SetDefault(KeyForce, false)
}

// Load reads settings from Viper's merged configuration.
func Load() *Settings {
	return &Settings{
		TrackingPath:    GetString(KeyTrackingPath),
		SourcesFile:     GetString(KeySourcesFile),
		ExportDir:       GetString(KeyExportDir),
		CredentialsFile: GetString(KeyCredentialsFile),
		Force:           viper.GetBool(KeyForce),
	}
}

// GetString is a helper to get string values from Viper.
// It checks both OS environment variables and Viper configuration.
func GetString(key string) string {
	osValue := os.Getenv(key)
	viperValue := viper.GetString(key)

	// If Viper doesn't have it but OS does, return OS value
	if viperValue == "" && osValue != "" {
		return osValue
	}
	return viperValue
}
