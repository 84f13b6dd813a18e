package types

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// Config validation errors.
var (
	ErrNoCategories = errors.New("at least one category is required")
	ErrNoAdmins     = errors.New("at least one admin id is required")
)

// Config holds the settings for attaching a store and running the service.
// Loaded from config.yaml via viper, with CARDKEEPER_ environment overrides.
type Config struct {
	// DataDir holds the store file, backups, logs, and language
	// preferences. Created on Attach if missing.
	DataDir string `mapstructure:"data_dir" yaml:"data_dir"`

	// Categories is the whitelist of valid card categories.
	Categories []string `mapstructure:"categories" yaml:"categories" validate:"min=1,dive,required"`

	// AdminIDs lists the user ids allowed to run admin workflows.
	AdminIDs []int64 `mapstructure:"admin_ids" yaml:"admin_ids" validate:"min=1"`

	// MaxBackups bounds the number of retained store snapshots.
	MaxBackups int `mapstructure:"max_backups" yaml:"max_backups" validate:"gte=1"`

	// MaxTitleLen and MaxDescriptionLen bound sanitized text fields.
	MaxTitleLen       int `mapstructure:"max_title_len" yaml:"max_title_len" validate:"gte=1"`
	MaxDescriptionLen int `mapstructure:"max_description_len" yaml:"max_description_len" validate:"gte=1"`

	// MaxMediaBytes bounds accepted media payloads (0 disables the check).
	MaxMediaBytes int64 `mapstructure:"max_media_bytes" yaml:"max_media_bytes" validate:"gte=0"`

	// SessionTimeout is the workflow idle timeout.
	SessionTimeout time.Duration `mapstructure:"session_timeout" yaml:"session_timeout" validate:"gt=0"`

	// Message-flood limiter: MessageMax events per MessageWindow per user.
	MessageWindow time.Duration `mapstructure:"message_window" yaml:"message_window" validate:"gt=0"`
	MessageMax    int           `mapstructure:"message_max" yaml:"message_max" validate:"gte=1"`

	// Review-cadence limiter: ReviewMax reviews per ReviewWindow per user.
	ReviewWindow time.Duration `mapstructure:"review_window" yaml:"review_window" validate:"gt=0"`
	ReviewMax    int           `mapstructure:"review_max" yaml:"review_max" validate:"gte=1"`

	// AutoDeleteAfter is how long a sent media message survives before the
	// scheduled privacy deletion fires.
	AutoDeleteAfter time.Duration `mapstructure:"auto_delete_after" yaml:"auto_delete_after" validate:"gte=0"`

	// CardsPerPage bounds category listings per page.
	CardsPerPage int `mapstructure:"cards_per_page" yaml:"cards_per_page" validate:"gte=1"`

	// DefaultLocale applies when a user has no stored preference.
	DefaultLocale string `mapstructure:"default_locale" yaml:"default_locale" validate:"required"`

	// LogLevel selects the zap level: debug, info, warn, error.
	LogLevel string `mapstructure:"log_level" yaml:"log_level" validate:"oneof=debug info warn error"`
}

// DefaultConfig returns the configuration the service ships with.
func DefaultConfig() Config {
	return Config{
		DataDir:           "data",
		Categories:        []string{"yugioh", "pokemon", "magic", "altro"},
		AdminIDs:          nil,
		MaxBackups:        5,
		MaxTitleLen:       100,
		MaxDescriptionLen: 500,
		MaxMediaBytes:     50 << 20,
		SessionTimeout:    300 * time.Second,
		MessageWindow:     5 * time.Second,
		MessageMax:        5,
		ReviewWindow:      time.Hour,
		ReviewMax:         3,
		AutoDeleteAfter:   60 * time.Second,
		CardsPerPage:      8,
		DefaultLocale:     "en",
		LogLevel:          "info",
	}
}

// validate is shared across Validate calls; validator instances cache
// struct metadata and are safe for concurrent use.
var validate = validator.New()

// Validate checks that the Config is well-formed. Returns a sentinel error
// for the cross-field rules and a validator error for tag violations.
func (c Config) Validate() error {
	if len(c.Categories) == 0 {
		return ErrNoCategories
	}
	if len(c.AdminIDs) == 0 {
		return ErrNoAdmins
	}
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config validation: %w", err)
	}
	return nil
}

// ValidCategory reports whether category is in the configured whitelist.
func (c Config) ValidCategory(category string) bool {
	for _, v := range c.Categories {
		if v == category {
			return true
		}
	}
	return false
}

// IsAdmin reports whether the user id is in the admin whitelist.
func (c Config) IsAdmin(userID int64) bool {
	for _, id := range c.AdminIDs {
		if id == userID {
			return true
		}
	}
	return false
}
