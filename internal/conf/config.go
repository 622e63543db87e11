// config.go: This file contains the configuration for the Adike-Go application. It defines the settings struct and functions to load and save the settings.
package conf

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

//go:embed config.yaml
var configFiles embed.FS

// LogConfig defines the configuration for a log file
type LogConfig struct {
	Enabled bool   // true to enable this log
	Path    string // path to log file
	MaxSize int    // max log file size in MB before rotation
	MaxAge  int    // max age in days to retain old log files
}

// MainSettings contains main application settings
type MainSettings struct {
	Name     string    // name of the node, can be used to identify the source of notes
	Timezone string    // IANA timezone name used for all persisted timestamps
	Log      LogConfig // main log configuration
}

// WebServerSettings contains web server configuration
type WebServerSettings struct {
	Enabled bool      // true to enable web server
	Port    string    // web server port
	Log     LogConfig // web server log configuration
}

// SecuritySettings contains session and authentication settings
type SecuritySettings struct {
	Host            string // host name or IP address of the server
	SessionSecret   string // secret key for session cookie signing
	SessionDuration int    // session duration in minutes
	RedirectToHTTPS bool   // true to redirect to HTTPS
}

// ModelSettings contains paths to the TensorFlow Lite model files.
type ModelSettings struct {
	YellowLeafPath string // path to yellow leaf disease classifier
	FruitRotPath   string // path to fruit rot (koleroga) classifier
	PricePath      string // path to price regression model
}

// UploadSettings contains settings for image uploads
type UploadSettings struct {
	Path         string   // directory for uploaded images
	MaxSizeMB    int64    // maximum upload size in megabytes
	AllowedTypes []string // allowed file extensions without dot
}

// SQLiteSettings contains SQLite database configuration
type SQLiteSettings struct {
	Enabled bool   // true to enable SQLite
	Path    string // path to SQLite database file
}

// MySQLSettings contains MySQL database configuration
type MySQLSettings struct {
	Enabled  bool   // true to enable MySQL
	Username string // MySQL username
	Password string // MySQL password
	Database string // MySQL database name
	Host     string // MySQL host
	Port     string // MySQL port
}

// OutputSettings contains database output settings
type OutputSettings struct {
	SQLite SQLiteSettings // SQLite database settings
	MySQL  MySQLSettings  // MySQL database settings
}

// PricingFallback holds the fixed price table used when scraping fails.
type PricingFallback struct {
	Red   float64 // fallback red arecanut price
	White float64 // fallback white arecanut price
}

// PricingSettings contains market price maintenance settings
type PricingSettings struct {
	SourceURL       string          // commodity page to scrape for prices
	SourceName      string          // label stored with scraped prices
	Grade           string          // grade label stored with prices
	CacheTTLMinutes int             // how long the latest price is memoized
	RefreshSchedule string          // cron expression for the daily refresh job
	SeedHistoryDays int             // days of synthetic history to seed an empty table
	Fallback        PricingFallback // fixed fallback prices
	Log             LogConfig       // pricing log configuration
}

// IrrigationSettings contains soil moisture classification thresholds
type IrrigationSettings struct {
	MoistureLow  float64 // below this the soil is classified Low
	MoistureHigh float64 // above this the soil is classified High
}

// WeatherSettings contains weather advisory provider settings
type WeatherSettings struct {
	Provider string // weather provider, "simulated" is the only implementation
	Debug    bool   // true to enable debug mode
}

// Settings contains all configuration settings, loaded from config file
type Settings struct {
	Debug bool // true to enable debug mode

	Main       MainSettings
	WebServer  WebServerSettings
	Security   SecuritySettings
	Models     ModelSettings
	Uploads    UploadSettings
	Output     OutputSettings
	Pricing    PricingSettings
	Irrigation IrrigationSettings
	Weather    WeatherSettings
}

// settingsInstance is the current settings instance
var (
	settingsInstance *Settings
	settingsMutex    sync.RWMutex

	location     *time.Location
	locationOnce sync.Once
)

// Load reads the configuration file and environment variables into Settings.
func Load() (*Settings, error) {
	settingsMutex.Lock()
	defer settingsMutex.Unlock()

	settings := &Settings{}

	// Initialize viper and read config
	if err := initViper(); err != nil {
		return nil, fmt.Errorf("error initializing viper: %w", err)
	}

	// Unmarshal the config into settings
	if err := viper.Unmarshal(settings); err != nil {
		return nil, fmt.Errorf("error unmarshaling config into struct: %w", err)
	}

	// Validate settings
	if err := ValidateSettings(settings); err != nil {
		return nil, fmt.Errorf("error validating settings: %w", err)
	}

	// Generate a session secret on first run and persist it so sessions
	// survive restarts.
	if settings.Security.SessionSecret == "" {
		settings.Security.SessionSecret = GenerateRandomSecret()
		if configPath := viper.ConfigFileUsed(); configPath != "" {
			if err := SaveYAMLConfig(configPath, settings); err != nil {
				log.Printf("Failed to persist generated session secret: %v", err)
			}
		}
	}

	settingsInstance = settings
	return settingsInstance, nil
}

// SaveSettings saves the current settings to the configuration file.
// It uses SaveYAMLConfig to handle the atomic write process.
func SaveSettings() error {
	settingsMutex.RLock()
	defer settingsMutex.RUnlock()

	if settingsInstance == nil {
		return fmt.Errorf("settings not loaded")
	}
	settingsCopy := *settingsInstance

	configPath := viper.ConfigFileUsed()
	if configPath == "" {
		return fmt.Errorf("no config file in use")
	}

	if err := SaveYAMLConfig(configPath, &settingsCopy); err != nil {
		return fmt.Errorf("error saving config: %w", err)
	}

	log.Printf("Settings saved successfully to %s", configPath)
	return nil
}

// SaveYAMLConfig updates the YAML configuration file with new settings.
// It overwrites the existing file, not preserving comments or structure.
func SaveYAMLConfig(configPath string, settings *Settings) error {
	yamlData, err := yaml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("error marshaling settings to YAML: %w", err)
	}

	// Write to a temporary file first so the replace is atomic.
	tempFile, err := os.CreateTemp(filepath.Dir(configPath), "config-*.yaml")
	if err != nil {
		return fmt.Errorf("error creating temporary file: %w", err)
	}
	tempFileName := tempFile.Name()
	defer os.Remove(tempFileName)

	if _, err := tempFile.Write(yamlData); err != nil {
		tempFile.Close()
		return fmt.Errorf("error writing to temporary file: %w", err)
	}
	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("error closing temporary file: %w", err)
	}

	if err := os.Rename(tempFileName, configPath); err != nil {
		return fmt.Errorf("error replacing config file: %w", err)
	}
	return nil
}

// initViper initializes viper with default values and reads the configuration file.
func initViper() error {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	// Get OS specific config paths
	configPaths, err := GetDefaultConfigPaths()
	if err != nil {
		return fmt.Errorf("error getting default config paths: %w", err)
	}

	// Assign config paths to Viper
	for _, path := range configPaths {
		viper.AddConfigPath(path)
	}

	// Set default values for each configuration parameter
	// function defined in defaults.go
	setDefaultConfig()

	// Read configuration file
	err = viper.ReadInConfig()
	if err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if errors.As(err, &configFileNotFoundError) {
			// Config file not found, create config with defaults
			return createDefaultConfig()
		}
		return fmt.Errorf("fatal error reading config file: %w", err)
	}

	return nil
}

// createDefaultConfig creates a default config file and writes it to the default config path
func createDefaultConfig() error {
	configPaths, err := GetDefaultConfigPaths()
	if err != nil {
		return fmt.Errorf("error getting default config paths: %w", err)
	}
	configPath := filepath.Join(configPaths[0], "config.yaml")
	defaultConfig := getDefaultConfig()

	// If the session secret is not set, generate a random one
	if viper.GetString("security.sessionsecret") == "" {
		viper.Set("security.sessionsecret", GenerateRandomSecret())
	}

	// Create directories for config file
	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return fmt.Errorf("error creating directories for config file: %w", err)
	}

	// Write default config file
	if err := os.WriteFile(configPath, []byte(defaultConfig), 0o644); err != nil {
		return fmt.Errorf("error writing default config file: %w", err)
	}

	fmt.Println("Created default config file at:", configPath)
	return viper.ReadInConfig()
}

// getDefaultConfig reads the default configuration from the embedded config.yaml file.
func getDefaultConfig() string {
	data, err := fs.ReadFile(configFiles, "config.yaml")
	if err != nil {
		log.Fatalf("Error reading config file: %v", err)
	}
	return string(data)
}

// GetSettings returns the current settings instance
func GetSettings() *Settings {
	settingsMutex.RLock()
	defer settingsMutex.RUnlock()
	return settingsInstance
}

// Setting returns the current settings instance, initializing from defaults
// when Load has not been called. Intended for tests.
func Setting() *Settings {
	settingsMutex.RLock()
	s := settingsInstance
	settingsMutex.RUnlock()
	if s != nil {
		return s
	}
	s, err := Load()
	if err != nil {
		log.Fatalf("Error loading settings: %v", err)
	}
	return s
}

// TimeLocation returns the configured timezone location, falling back to UTC
// when the timezone name cannot be resolved.
func (s *Settings) TimeLocation() *time.Location {
	locationOnce.Do(func() {
		loc, err := time.LoadLocation(s.Main.Timezone)
		if err != nil {
			log.Printf("Invalid timezone %q, falling back to UTC: %v", s.Main.Timezone, err)
			loc = time.UTC
		}
		location = loc
	})
	return location
}
