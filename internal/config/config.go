package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config structure represents the application configuration
type Config struct {
	Server struct {
		Port string `yaml:"port" env:"SERVER_PORT"`
		Mode string `yaml:"mode" env:"SERVER_MODE"`
	} `yaml:"server"`

	Database struct {
		Host            string `yaml:"host" env:"DB_HOST"`
		Port            string `yaml:"port" env:"DB_PORT"`
		User            string `yaml:"user" env:"DB_USER"`
		Password        string `yaml:"password" env:"DB_PASSWORD"`
		DBName          string `yaml:"dbname" env:"DB_NAME"`
		SSLMode         string `yaml:"sslmode" env:"DB_SSLMODE"`
		MaxIdleConns    int    `yaml:"max_idle_conns" env:"DB_MAX_IDLE_CONNS"`
		MaxOpenConns    int    `yaml:"max_open_conns" env:"DB_MAX_OPEN_CONNS"`
		ConnMaxLifetime string `yaml:"conn_max_lifetime" env:"DB_CONN_MAX_LIFETIME"`
		MigrationsDir   string `yaml:"migrations_dir" env:"DB_MIGRATIONS_DIR"`
	} `yaml:"database"`

	Logging struct {
		Level  string `yaml:"level" env:"LOG_LEVEL"`
		Format string `yaml:"format" env:"LOG_FORMAT"`
	} `yaml:"logging"`

	Calendar struct {
		// StrictSave refuses to persist a calendar that has violations
		StrictSave bool `yaml:"strict_save" env:"CALENDAR_STRICT_SAVE"`
	} `yaml:"calendar"`

	Seed struct {
		// Demo creates a sample parcours, its courses and one student when the
		// GCC department has no parcours yet
		Demo bool `yaml:"demo" env:"SEED_DEMO"`
	} `yaml:"seed"`

	Enrollment EnrollmentConfig `yaml:"enrollment"`
}

// EnrollmentConfig holds the completion thresholds
type EnrollmentConfig struct {
	MinIndependentMandatory int                              `yaml:"min_independent_mandatory" env:"ENROLLMENT_MIN_MANDATORY"`
	DefaultRequiredECTS     float64                          `yaml:"default_required_ects" env:"ENROLLMENT_DEFAULT_REQUIRED_ECTS"`
	Departments             map[string]DepartmentRequirement `yaml:"departments"`
}

// DepartmentRequirement overrides thresholds for one department code
type DepartmentRequirement struct {
	RequiredECTS            float64 `yaml:"required_ects"`
	MinIndependentMandatory *int    `yaml:"min_independent_mandatory"`
}

// Thresholds returns the mandatory-count and ECTS thresholds for a department code
func (e EnrollmentConfig) Thresholds(departmentCode string) (int, float64) {
	minMandatory, requiredECTS := e.MinIndependentMandatory, e.DefaultRequiredECTS
	if dep, ok := e.Departments[strings.ToUpper(departmentCode)]; ok {
		requiredECTS = dep.RequiredECTS
		if dep.MinIndependentMandatory != nil {
			minMandatory = *dep.MinIndependentMandatory
		}
	}
	return minMandatory, requiredECTS
}

// LoadConfig loads configuration from a file, an optional .env file and environment variables
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{}
	setDefaults(config)

	if _, err := os.Stat(configPath); err == nil {
		file, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		if err := yaml.Unmarshal(file, config); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	// .env only fills variables that are not already exported
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			return nil, fmt.Errorf("failed to load .env file: %w", err)
		}
	}

	if err := loadFromEnv(config); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	normalizeDepartments(config)

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// setDefaults sets default values for the configuration
func setDefaults(config *Config) {
	config.Server.Port = "8080"
	config.Server.Mode = "development"

	config.Database.Host = "localhost"
	config.Database.Port = "5432"
	config.Database.User = "postgres"
	config.Database.Password = "postgres"
	config.Database.DBName = "courseselect"
	config.Database.SSLMode = "disable"
	config.Database.MaxIdleConns = 5
	config.Database.MaxOpenConns = 20
	config.Database.ConnMaxLifetime = "1h"
	config.Database.MigrationsDir = "migrations"

	config.Logging.Level = "info"
	config.Logging.Format = "json"

	config.Enrollment.MinIndependentMandatory = 2
	config.Enrollment.Departments = map[string]DepartmentRequirement{
		"GCC": {RequiredECTS: 48.5},
		"IMI": {RequiredECTS: 60},
	}
}

// loadFromEnv overrides configuration with environment variables
func loadFromEnv(config *Config) error {
	return processStructFields(config)
}

func normalizeDepartments(config *Config) {
	normalized := make(map[string]DepartmentRequirement, len(config.Enrollment.Departments))
	for code, req := range config.Enrollment.Departments {
		normalized[strings.ToUpper(code)] = req
	}
	config.Enrollment.Departments = normalized
}

// validateConfig ensures that the configuration is valid
func validateConfig(config *Config) error {
	if config.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}

	if _, err := time.ParseDuration(config.Database.ConnMaxLifetime); err != nil {
		return fmt.Errorf("invalid connection max lifetime: %w", err)
	}

	if config.Enrollment.MinIndependentMandatory < 0 {
		return fmt.Errorf("enrollment.min_independent_mandatory must not be negative")
	}
	if config.Enrollment.DefaultRequiredECTS < 0 {
		return fmt.Errorf("enrollment.default_required_ects must not be negative")
	}
	for code, dep := range config.Enrollment.Departments {
		if dep.RequiredECTS < 0 {
			return fmt.Errorf("enrollment.departments.%s.required_ects must not be negative", code)
		}
		if dep.MinIndependentMandatory != nil && *dep.MinIndependentMandatory < 0 {
			return fmt.Errorf("enrollment.departments.%s.min_independent_mandatory must not be negative", code)
		}
	}

	return nil
}

// GetPostgresConnectionString returns postgres connection string
func (c *Config) GetPostgresConnectionString() string {
	sslMode := c.Database.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}

	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.DBName,
		sslMode,
	)
}

// GetEnv gets an environment variable or returns a default value
func GetEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
