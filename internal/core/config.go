package core

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/allaithw/taskboard/pkg/models"
)

// ConfigurationManager loads and validates the board configuration from the
// .taskboardrc file in the base directory.
type ConfigurationManager interface {
	LoadConfig() (*models.Config, error)
	ValidateConfig(cfg *models.Config) error
}

// viperConfigManager implements ConfigurationManager using Viper for
// reading the YAML configuration file.
type viperConfigManager struct {
	basePath string
}

// NewConfigurationManager creates a ConfigurationManager that reads
// configuration relative to basePath.
func NewConfigurationManager(basePath string) ConfigurationManager {
	return &viperConfigManager{basePath: basePath}
}

// defaultConfig returns a Config populated with sensible defaults.
func defaultConfig() *models.Config {
	return &models.Config{
		ListenAddr:      ":3000",
		AdminPassword:   "",
		DefaultPriority: models.PriorityMedium,
		DefaultStatus:   models.StatusTodo,
		SMTP: models.SMTPConfig{
			Host: "smtp.gmail.com",
			Port: 587,
		},
	}
}

// LoadConfig reads the .taskboardrc file from the base path using Viper.
// If the file does not exist, defaults are returned. The admin and SMTP
// passwords can be supplied or overridden via the ADMIN_PASSWORD and
// EMAIL_PASS environment variables so secrets stay out of the file.
func (cm *viperConfigManager) LoadConfig() (*models.Config, error) {
	cfg := defaultConfig()

	v := viper.New()
	v.SetConfigName(".taskboardrc")
	v.SetConfigType("yaml")
	v.AddConfigPath(cm.basePath)

	// Set Viper defaults so missing keys fall back gracefully.
	v.SetDefault("server.listen_addr", cfg.ListenAddr)
	v.SetDefault("admin.password", cfg.AdminPassword)
	v.SetDefault("defaults.priority", string(cfg.DefaultPriority))
	v.SetDefault("defaults.status", string(cfg.DefaultStatus))
	v.SetDefault("smtp.host", cfg.SMTP.Host)
	v.SetDefault("smtp.port", cfg.SMTP.Port)
	v.SetDefault("smtp.username", cfg.SMTP.Username)
	v.SetDefault("smtp.password", cfg.SMTP.Password)
	v.SetDefault("smtp.from", cfg.SMTP.From)
	v.SetDefault("smtp.to", cfg.SMTP.To)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading .taskboardrc: %w", err)
		}
		// No config file found, continue with defaults.
	}

	cfg.ListenAddr = v.GetString("server.listen_addr")
	cfg.AdminPassword = v.GetString("admin.password")
	cfg.DefaultPriority = models.TaskPriority(v.GetString("defaults.priority"))
	cfg.DefaultStatus = models.TaskStatus(v.GetString("defaults.status"))
	cfg.SMTP.Host = v.GetString("smtp.host")
	cfg.SMTP.Port = v.GetInt("smtp.port")
	cfg.SMTP.Username = v.GetString("smtp.username")
	cfg.SMTP.Password = v.GetString("smtp.password")
	cfg.SMTP.From = v.GetString("smtp.from")
	cfg.SMTP.To = v.GetString("smtp.to")

	if pw := os.Getenv("ADMIN_PASSWORD"); pw != "" {
		cfg.AdminPassword = pw
	}
	if pw := os.Getenv("EMAIL_PASS"); pw != "" {
		cfg.SMTP.Password = pw
	}
	if user := os.Getenv("EMAIL_USER"); user != "" {
		cfg.SMTP.Username = user
		if cfg.SMTP.From == "" {
			cfg.SMTP.From = user
		}
	}

	return cfg, nil
}

// ValidateConfig checks the configuration for invalid values and returns a
// clear error message identifying every problem found.
func (cm *viperConfigManager) ValidateConfig(cfg *models.Config) error {
	if cfg == nil {
		return fmt.Errorf("configuration is nil")
	}

	var errs []string

	if cfg.ListenAddr == "" {
		errs = append(errs, "server.listen_addr must not be empty")
	}
	if cfg.DefaultPriority != "" && !models.ValidPriority(cfg.DefaultPriority) {
		errs = append(errs, fmt.Sprintf(
			"defaults.priority %q is invalid, must be one of: low, medium, high",
			cfg.DefaultPriority,
		))
	}
	if cfg.DefaultStatus != "" && !models.ValidStatus(cfg.DefaultStatus) {
		errs = append(errs, fmt.Sprintf(
			"defaults.status %q is invalid, must be one of: todo, in-progress, done",
			cfg.DefaultStatus,
		))
	}
	if cfg.SMTP.Port < 0 || cfg.SMTP.Port > 65535 {
		errs = append(errs, fmt.Sprintf("smtp.port %d is invalid, must be between 0 and 65535", cfg.SMTP.Port))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}

	return nil
}
