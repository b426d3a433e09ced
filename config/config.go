// Package config reads the editor settings: an INI file first, then BCSAVIOR_* environment
// variables (optionally from a .env file) on top.
package config

import (
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"gopkg.in/ini.v1"

	"battlecats-savior/bcsav/dgate"
)

type Config struct {
	// Country is the default country tag. Empty means autodetect from the digest.
	Country string `ini:"country" validate:"omitempty,caseinsensitiveoneof=jp en kr tw"`
	// BackupDir receives a copy of every save before it is overwritten.
	BackupDir  string `ini:"backup_dir" split_words:"true" validate:"required"`
	LogLevel   string `ini:"log_level" split_words:"true" validate:"caseinsensitiveoneof=trace debug info warn error"`
	LogFile    string `ini:"log_file" split_words:"true"`
	JSONIndent int    `ini:"json_indent" split_words:"true" validate:"gte=0,lte=8"`
}

const (
	DefaultPath  = "battlecats-savior.ini"
	EnvPrefix    = "bcsavior"
	SectionName  = "editor"
	dotEnvPath   = ".env"
	indentSymbol = " "
)

func Default() Config {
	return Config{
		BackupDir:  "backups",
		LogLevel:   "info",
		JSONIndent: 2,
	}
}

// Load never fails on a missing file; defaults stand in for it.
func Load(path string) (*Config, error) {
	config := Default()

	if _, err := os.Stat(path); err == nil {
		file, err := ini.Load(path)
		if err != nil {
			return nil, errors.Wrap(err, "config.Load error")
		}
		if err := file.Section(SectionName).MapTo(&config); err != nil {
			return nil, errors.Wrap(err, "config.Load error")
		}
	} else {
		log.Debug().Str("path", path).Msg("config file not found, using defaults")
	}

	if err := godotenv.Load(dotEnvPath); err != nil && !os.IsNotExist(err) {
		log.Warn().Err(err).Msg("failed to load .env file")
	}
	if err := envconfig.Process(EnvPrefix, &config); err != nil {
		return nil, errors.Wrap(err, "config.Load error")
	}
	validate, err := NewValidator()
	if err != nil {
		return nil, errors.Wrap(err, "config.Load error")
	}
	if err := validate.Struct(config); err != nil {
		return nil, errors.Wrap(err, "config.Load error")
	}

	return &config, nil
}

var validations = map[string]validator.Func{
	"caseinsensitiveoneof": caseInsensitiveOneOf,
}

func NewValidator() (*validator.Validate, error) {
	return newValidator(validations)
}

func newValidator(funcs map[string]validator.Func) (*validator.Validate, error) {
	validate := validator.New()
	for tag, fn := range funcs {
		if err := validate.RegisterValidation(tag, fn); err != nil {
			return nil, errors.Wrapf(err, "config.NewValidator error: tag %s", tag)
		}
	}
	return validate, nil
}

func caseInsensitiveOneOf(fl validator.FieldLevel) bool {
	val := strings.ToLower(fl.Field().String())
	candidates := strings.Split(strings.ToLower(fl.Param()), " ")
	for _, v := range candidates {
		if val == v {
			return true
		}
	}
	return false
}

// CountryTag returns the configured country, or false when the digest should decide.
func (c Config) CountryTag() (dgate.Country, bool) {
	if c.Country == "" {
		return "", false
	}
	country, err := dgate.ParseCountry(c.Country)
	if err != nil {
		return "", false
	}
	return country, true
}

func (c Config) Indent() string {
	return strings.Repeat(indentSymbol, c.JSONIndent)
}
