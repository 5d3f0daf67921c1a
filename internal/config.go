package internal

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/mbracken/skillet/internal/shopping"
)

// Auth modes.
const (
	AuthModeDisabled = "disabled"
	AuthModeToken    = "token"
)

// Config represents the application configuration.
type Config struct {
	App      ApplicationConfig `yaml:"app"`
	Vault    VaultConfig       `yaml:"vault"`
	SQLite   SQLiteConfig      `yaml:"sqlite"`
	Auth     AuthConfig        `yaml:"auth"`
	Plan     PlanConfig        `yaml:"plan"`
	Shopping ShoppingConfig    `yaml:"shopping"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.App.Validate(); err != nil {
		return err
	}
	if err := c.Vault.Validate(); err != nil {
		return err
	}
	if err := c.SQLite.Validate(); err != nil {
		return err
	}
	if err := c.Auth.Validate(); err != nil {
		return err
	}
	if err := c.Plan.Validate(); err != nil {
		return err
	}
	return c.Shopping.Validate()
}

// ApplicationConfig holds application-level configuration.
type ApplicationConfig struct {
	LogLevel slog.Level `yaml:"log_level"`
	HTTP     HTTPConfig `yaml:"http"`
}

// Validate validates the application configuration.
func (c *ApplicationConfig) Validate() error {
	return c.HTTP.Validate()
}

// HTTPConfig holds HTTP server configuration.
type HTTPConfig struct {
	Port int `yaml:"port"`
}

// Address returns HTTP server address.
func (c *HTTPConfig) Address() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Validate validates the HTTP configuration.
func (c *HTTPConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Port, validation.Required, validation.Min(1), validation.Max(65535)),
	)
}

// VaultConfig locates the vault directory and the well-known notes
// inside it. PlanNote, ShoppingNote, and RecipeFolder are vault-relative.
type VaultConfig struct {
	Path         string `yaml:"path"`
	PlanNote     string `yaml:"plan_note"`
	ShoppingNote string `yaml:"shopping_note"`
	RecipeFolder string `yaml:"recipe_folder"`
}

// Validate validates the vault configuration.
func (c *VaultConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Path, validation.Required),
		validation.Field(&c.PlanNote, validation.Required),
		validation.Field(&c.ShoppingNote, validation.Required),
		validation.Field(&c.RecipeFolder, validation.Required),
	)
}

// SQLiteConfig holds SQLite database configuration.
type SQLiteConfig struct {
	Path string `yaml:"path"`
}

// Validate validates the SQLite configuration.
func (c *SQLiteConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Path, validation.Required),
	)
}

// AuthConfig holds authentication configuration.
//
// Mode controls how authentication is enforced:
//   - "disabled" (default): no authentication required, suitable for local dev.
//   - "token": Bearer token authentication; Token must be non-empty.
type AuthConfig struct {
	Mode  string `yaml:"mode"`
	Token string `yaml:"token"`
}

// Validate validates the auth configuration.
func (c *AuthConfig) Validate() error {
	// Normalise empty mode to "disabled" for backward compatibility.
	if c.Mode == "" {
		c.Mode = AuthModeDisabled
	}
	if err := validation.ValidateStruct(c,
		validation.Field(&c.Mode, validation.Required, validation.In(AuthModeDisabled, AuthModeToken)),
	); err != nil {
		return err
	}
	if c.Mode == AuthModeToken && c.Token == "" {
		return fmt.Errorf("auth: mode is %q but token is empty", AuthModeToken)
	}
	return nil
}

// AuthEnabled returns true when authentication is active.
func (c *AuthConfig) AuthEnabled() bool {
	return c.Mode == AuthModeToken
}

// weekdayNames maps config values to time.Weekday.
var weekdayNames = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// PlanConfig holds meal-plan settings.
type PlanConfig struct {
	WeekStart   string `yaml:"week_start"`
	WeeksToShow int    `yaml:"weeks_to_show"`
}

// Validate validates the plan configuration.
func (c *PlanConfig) Validate() error {
	if c.WeekStart == "" {
		c.WeekStart = "monday"
	}
	if _, ok := weekdayNames[strings.ToLower(c.WeekStart)]; !ok {
		return fmt.Errorf("plan: unknown week_start %q", c.WeekStart)
	}
	return validation.ValidateStruct(c,
		validation.Field(&c.WeeksToShow, validation.Required, validation.Min(1), validation.Max(12)),
	)
}

// WeekStartDay returns the configured first day of the week.
func (c *PlanConfig) WeekStartDay() time.Weekday {
	return weekdayNames[strings.ToLower(c.WeekStart)]
}

// ShoppingConfig holds shopping-list settings. Ignore patterns are
// interpreted per IgnoreBehavior; they are compiled once at startup and
// an invalid pattern aborts the run.
type ShoppingConfig struct {
	AdvancedParsing bool     `yaml:"advanced_parsing"`
	Ignore          []string `yaml:"ignore"`
	IgnoreBehavior  string   `yaml:"ignore_behavior"`
	Template        string   `yaml:"template"`
}

// Validate validates the shopping configuration.
func (c *ShoppingConfig) Validate() error {
	if c.IgnoreBehavior == "" {
		c.IgnoreBehavior = shopping.BehaviorExact.String()
	}
	if _, ok := shopping.ParseBehavior(c.IgnoreBehavior); !ok {
		return fmt.Errorf("shopping: unknown ignore_behavior %q", c.IgnoreBehavior)
	}
	return nil
}

// Rules returns the ignore patterns paired with the configured behavior,
// ready for compilation.
func (c *ShoppingConfig) Rules() []shopping.Rule {
	behavior, _ := shopping.ParseBehavior(c.IgnoreBehavior)
	rules := make([]shopping.Rule, 0, len(c.Ignore))
	for _, p := range c.Ignore {
		rules = append(rules, shopping.Rule{Pattern: p, Behavior: behavior})
	}
	return rules
}

// NewDefaultConfig returns a new Config with sensible default values.
func NewDefaultConfig() *Config {
	return &Config{
		App: ApplicationConfig{
			LogLevel: slog.LevelInfo,
			HTTP: HTTPConfig{
				Port: 8080,
			},
		},
		Vault: VaultConfig{
			Path:         "./vault",
			PlanNote:     "Meal Plan.md",
			ShoppingNote: "Shopping List.md",
			RecipeFolder: "Recipes",
		},
		SQLite: SQLiteConfig{
			Path: "./skillet.db",
		},
		Auth: AuthConfig{
			Mode: AuthModeDisabled,
		},
		Plan: PlanConfig{
			WeekStart:   "monday",
			WeeksToShow: 6,
		},
		Shopping: ShoppingConfig{
			IgnoreBehavior: shopping.BehaviorExact.String(),
			Template:       shopping.DefaultTemplate,
		},
	}
}
