// Package config resolves the site configuration once at startup.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	"github.com/evcraddock/gardet/internal/auth"
	"github.com/evcraddock/gardet/internal/header"
	"github.com/evcraddock/gardet/internal/theme"
)

// Fallbacks for the brand settings.
const (
	DefaultBrandName = "Gardet"
	DefaultAppName   = "Gardet"
)

// Config is the resolved site configuration.
type Config struct {
	BrandName       string   `validate:"required"`
	AppName         string   `validate:"required"`
	ThemeColor      string   `validate:"required"`
	ScrollThreshold int      `validate:"gte=0"`
	BaseURL         string   `validate:"required,url"`
	CORSOrigins     []string `validate:"dive,required"`
	DevMode         bool

	Auth auth.Config

	// Palette is derived from ThemeColor when the config is loaded.
	Palette theme.Palette `validate:"-"`
}

// Load reads .env files (missing files are skipped), then the environment,
// and returns a validated config with its palette derived. With no
// arguments it looks for ".env" in the working directory.
func Load(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("loading %s: %w", f, err)
		}
	}

	cfg := FromEnv()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// FromEnv builds a config from environment variables without validating it.
func FromEnv() Config {
	devMode := envBool("GARDET_DEV_MODE", false)
	baseURL := envOrDefault("GARDET_BASE_URL", "http://localhost:8080")

	cfg := Config{
		BrandName:       envOrDefault("GARDET_BRAND_NAME", DefaultBrandName),
		AppName:         envOrDefault("GARDET_APP_NAME", DefaultAppName),
		ThemeColor:      envOrDefault("GARDET_THEME_COLOR", theme.DefaultColor),
		ScrollThreshold: envInt("GARDET_SCROLL_THRESHOLD", header.DefaultScrollThreshold),
		BaseURL:         baseURL,
		CORSOrigins:     splitList(envOrDefault("GARDET_CORS_ORIGINS", "http://localhost:5173")),
		DevMode:         devMode,
		Auth: auth.Config{
			AdminEmail: os.Getenv("GARDET_ADMIN_EMAIL"),
			SMTPHost:   os.Getenv("GARDET_SMTP_HOST"),
			SMTPPort:   envOrDefault("GARDET_SMTP_PORT", "587"),
			SMTPUser:   os.Getenv("GARDET_SMTP_USER"),
			SMTPPass:   os.Getenv("GARDET_SMTP_PASS"),
			SMTPFrom:   os.Getenv("GARDET_SMTP_FROM"),
			DevMode:    devMode,
			BaseURL:    baseURL,
		},
	}
	cfg.Palette = theme.Derive(cfg.ThemeColor)
	return cfg
}

// Validate checks the config. A theme color that is not valid hex is
// allowed: the palette then carries the raw value through unchanged.
func (c Config) Validate() error {
	if err := validatorInstance().Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s: failed %q", fe.Namespace(), fe.Tag()))
			}
			return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
		}
		return fmt.Errorf("validating config: %w", err)
	}

	if c.Palette.Dark == c.ThemeColor && c.Palette.Light == c.ThemeColor {
		slog.Warn("theme color is not a hex color, using it as is", "theme_color", c.ThemeColor)
	}
	return nil
}

// HeaderOptions returns the header settings carried by the config.
func (c Config) HeaderOptions() header.Options {
	return header.Options{
		BrandName:       c.BrandName,
		AppName:         c.AppName,
		Palette:         c.Palette,
		ScrollThreshold: c.ScrollThreshold,
	}
}

func envOrDefault(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		slog.Warn("ignoring non-integer environment value", "key", key, "value", v)
		return fallback
	}
	return n
}

func envBool(key string, fallback bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("ignoring non-boolean environment value", "key", key, "value", v)
		return fallback
	}
	return b
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
