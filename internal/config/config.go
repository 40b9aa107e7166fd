package config

import (
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	"genwell/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Logging  LoggingConfig  `yaml:"logging" envconfig:"LOGGING"`
	Dataset  DatasetConfig  `yaml:"dataset" envconfig:"DATASET"`
	Cleaning CleaningConfig `yaml:"cleaning" envconfig:"CLEANING"`
	Charts   ChartsConfig   `yaml:"charts" envconfig:"CHARTS"`
	Survey   SurveyConfig   `yaml:"survey" envconfig:"SURVEY"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" default:"info" validate:"oneof=debug info warn error"`
	Output   string `yaml:"output" envconfig:"OUTPUT" default:"both" validate:"oneof=console file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" default:"logs/app.log"`
}

// DatasetConfig maps the analysis variables to their column names in the
// input file. The GenWell export names are the defaults; a differently
// labelled export only needs a config change, not a rebuild.
type DatasetConfig struct {
	ParticipantIDColumn  string `yaml:"participant_id_column" envconfig:"PARTICIPANT_ID_COLUMN" default:"PARTICIPANT_ID"`
	AgeColumn            string `yaml:"age_column" envconfig:"AGE_COLUMN" default:"DEMO_age" validate:"required"`
	LonelinessColumn     string `yaml:"loneliness_column" envconfig:"LONELINESS_COLUMN" default:"LONELY_dejong_emotional_social_loneliness_scale_TOTAL" validate:"required"`
	HoursAloneColumn     string `yaml:"hours_alone_column" envconfig:"HOURS_ALONE_COLUMN" default:"CONNECTION_social_time_alone"`
	ConversationsColumn  string `yaml:"conversations_column" envconfig:"CONVERSATIONS_COLUMN" default:"CONNECTION_activities_face_to_face_convorsation_p3m"`
	PhysicalHealthColumn string `yaml:"physical_health_column" envconfig:"PHYSICAL_HEALTH_COLUMN" default:"WELLNESS_self_rated_physical_health"`
	MentalHealthColumn   string `yaml:"mental_health_column" envconfig:"MENTAL_HEALTH_COLUMN" default:"WELLNESS_self_rated_mental_health"`
	VolunteeringColumn   string `yaml:"volunteering_column" envconfig:"VOLUNTEERING_COLUMN" default:"CONNECTION_activities_volunteered_p3m"`
}

// CleaningConfig contains the row-filtering rules applied by the cleaner
type CleaningConfig struct {
	MinAge          float64 `yaml:"min_age" envconfig:"MIN_AGE" default:"65" validate:"gt=0"`
	MaxAge          float64 `yaml:"max_age" envconfig:"MAX_AGE" default:"120" validate:"gtfield=MinAge"`
	MissingSentinel string  `yaml:"missing_sentinel" envconfig:"MISSING_SENTINEL" default:"9999"`
}

// ChartsConfig contains chart rendering configuration
type ChartsConfig struct {
	Palette string `yaml:"palette" envconfig:"PALETTE" default:"blues" validate:"oneof=blues warm grayscale"`
	Width   int    `yaml:"width" envconfig:"WIDTH" default:"800" validate:"gt=0"`
	Height  int    `yaml:"height" envconfig:"HEIGHT" default:"600" validate:"gt=0"`
}

// SurveyConfig contains survey collection configuration
type SurveyConfig struct {
	WeeklyIntervalDays    int `yaml:"weekly_interval_days" envconfig:"WEEKLY_INTERVAL_DAYS" default:"7" validate:"gt=0"`
	QuarterlyIntervalDays int `yaml:"quarterly_interval_days" envconfig:"QUARTERLY_INTERVAL_DAYS" default:"91" validate:"gt=0"`
}

// Load loads configuration from environment variables and config file.
// File values fill in anything the environment left empty; environment
// variables take precedence.
func Load() (*Config, error) {
	var cfg Config

	// Load from environment variables first
	if err := envconfig.Process("GENWELL", &cfg); err != nil {
		return nil, errors.NewConfigError("failed to load config from env", err)
	}

	// Load from config file if exists
	configFile := getConfigFilePath()
	if configFile != "" {
		fileConfig, err := loadFromFile(configFile)
		if err != nil {
			return nil, errors.NewConfigError("failed to load config from file", err)
		}
		cfg = mergeConfigs(*fileConfig, cfg)
	}

	// Validate configuration
	if err := cfg.validate(); err != nil {
		return nil, errors.NewConfigError("config validation failed", err)
	}

	return &cfg, nil
}

// loadFromFile loads configuration from YAML file
func loadFromFile(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// mergeConfigs merges file config with env config (env takes precedence)
func mergeConfigs(fileConfig, envConfig Config) Config {
	// Logging config
	if envConfig.Logging.Level == "" {
		envConfig.Logging.Level = fileConfig.Logging.Level
	}
	if envConfig.Logging.Output == "" {
		envConfig.Logging.Output = fileConfig.Logging.Output
	}
	if envConfig.Logging.FilePath == "" {
		envConfig.Logging.FilePath = fileConfig.Logging.FilePath
	}

	// Dataset config
	if envConfig.Dataset.ParticipantIDColumn == "" {
		envConfig.Dataset.ParticipantIDColumn = fileConfig.Dataset.ParticipantIDColumn
	}
	if envConfig.Dataset.AgeColumn == "" {
		envConfig.Dataset.AgeColumn = fileConfig.Dataset.AgeColumn
	}
	if envConfig.Dataset.LonelinessColumn == "" {
		envConfig.Dataset.LonelinessColumn = fileConfig.Dataset.LonelinessColumn
	}
	if envConfig.Dataset.HoursAloneColumn == "" {
		envConfig.Dataset.HoursAloneColumn = fileConfig.Dataset.HoursAloneColumn
	}
	if envConfig.Dataset.ConversationsColumn == "" {
		envConfig.Dataset.ConversationsColumn = fileConfig.Dataset.ConversationsColumn
	}
	if envConfig.Dataset.PhysicalHealthColumn == "" {
		envConfig.Dataset.PhysicalHealthColumn = fileConfig.Dataset.PhysicalHealthColumn
	}
	if envConfig.Dataset.MentalHealthColumn == "" {
		envConfig.Dataset.MentalHealthColumn = fileConfig.Dataset.MentalHealthColumn
	}
	if envConfig.Dataset.VolunteeringColumn == "" {
		envConfig.Dataset.VolunteeringColumn = fileConfig.Dataset.VolunteeringColumn
	}

	// Cleaning config
	if envConfig.Cleaning.MinAge == 0 {
		envConfig.Cleaning.MinAge = fileConfig.Cleaning.MinAge
	}
	if envConfig.Cleaning.MaxAge == 0 {
		envConfig.Cleaning.MaxAge = fileConfig.Cleaning.MaxAge
	}
	if envConfig.Cleaning.MissingSentinel == "" {
		envConfig.Cleaning.MissingSentinel = fileConfig.Cleaning.MissingSentinel
	}

	// Charts config
	if envConfig.Charts.Palette == "" {
		envConfig.Charts.Palette = fileConfig.Charts.Palette
	}
	if envConfig.Charts.Width == 0 {
		envConfig.Charts.Width = fileConfig.Charts.Width
	}
	if envConfig.Charts.Height == 0 {
		envConfig.Charts.Height = fileConfig.Charts.Height
	}

	// Survey config
	if envConfig.Survey.WeeklyIntervalDays == 0 {
		envConfig.Survey.WeeklyIntervalDays = fileConfig.Survey.WeeklyIntervalDays
	}
	if envConfig.Survey.QuarterlyIntervalDays == 0 {
		envConfig.Survey.QuarterlyIntervalDays = fileConfig.Survey.QuarterlyIntervalDays
	}

	return envConfig
}

// validate validates the configuration using struct tags
func (c *Config) validate() error {
	v := validator.New()
	if err := v.Struct(c); err != nil {
		return err
	}
	return nil
}

// getConfigFilePath returns the path to the config file
func getConfigFilePath() string {
	// Check for config file in common locations
	locations := []string{
		"config.yaml",
		"configs/config.yaml",
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location
		}
	}

	return "" // No config file found, use env vars only
}

// Default returns default configuration
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:    "info",
			Output:   "both",
			FilePath: "logs/app.log",
		},
		Dataset: DatasetConfig{
			ParticipantIDColumn:  "PARTICIPANT_ID",
			AgeColumn:            "DEMO_age",
			LonelinessColumn:     "LONELY_dejong_emotional_social_loneliness_scale_TOTAL",
			HoursAloneColumn:     "CONNECTION_social_time_alone",
			ConversationsColumn:  "CONNECTION_activities_face_to_face_convorsation_p3m",
			PhysicalHealthColumn: "WELLNESS_self_rated_physical_health",
			MentalHealthColumn:   "WELLNESS_self_rated_mental_health",
			VolunteeringColumn:   "CONNECTION_activities_volunteered_p3m",
		},
		Cleaning: CleaningConfig{
			MinAge:          65,
			MaxAge:          120,
			MissingSentinel: "9999",
		},
		Charts: ChartsConfig{
			Palette: "blues",
			Width:   800,
			Height:  600,
		},
		Survey: SurveyConfig{
			WeeklyIntervalDays:    7,
			QuarterlyIntervalDays: 91,
		},
	}
}
