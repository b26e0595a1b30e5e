package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"slices"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type config struct {
	FilePath   string        `envconfig:"EXCEL_FILE_PATH" validate:"required,file"`
	SheetName  string        `envconfig:"SHEET_NAME" default:"Sheet1"`
	Server     string        `envconfig:"SMTP_SERVER" default:"smtp.gmail.com"`
	Port       int           `envconfig:"SMTP_PORT" default:"587" validate:"min=1,max=65535"`
	Sender     string        `envconfig:"SENDER_EMAIL" validate:"required"`
	Password   string        `envconfig:"SENDER_PASSWORD" validate:"required"`
	SenderName string        `envconfig:"SENDER_NAME" default:"Ege Ercin"`
	Delay      int           `envconfig:"DELAY_BETWEEN_EMAILS" default:"2" validate:"min=0"`
	Security   string        `envconfig:"SMTP_SECURITY" default:"starttls" validate:"oneof=starttls tls"`
	Timeout    time.Duration `envconfig:"SMTP_TIMEOUT" default:"30s"`
	LogPath    string        `envconfig:"LOG_FILE" default:"email_campaign.log"`
}

const (
	DefaultEnvFile   = ".env"
	DefaultLogPath   = "email_campaign.log"
	SecurityStartTLS = "starttls"
	SecurityTLS      = "tls"
)

// ErrorType classifies a configuration failure.
type ErrorType string

const (
	ErrMissingEnv   ErrorType = "MISSING_ENV"
	ErrFileNotFound ErrorType = "FILE_NOT_FOUND"
	ErrParsing      ErrorType = "PARSING_FAILED"
	ErrValidation   ErrorType = "VALIDATION_FAILED"
)

// ConfigError is returned by Load when the environment cannot produce a
// usable configuration. Missing lists every required variable that was
// unset, in declaration order.
type ConfigError struct {
	Types   []ErrorType
	Missing []string
	Path    string
	Err     error
}

func (e *ConfigError) Error() string {
	var parts []string
	if len(e.Missing) > 0 {
		parts = append(parts, "missing required environment variables: "+strings.Join(e.Missing, ", "))
	}
	if e.Path != "" {
		parts = append(parts, "input file not found: "+e.Path)
	}
	if e.Err != nil {
		parts = append(parts, e.Err.Error())
	}
	if len(parts) == 0 {
		return "invalid configuration"
	}
	return strings.Join(parts, "; ")
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// Has reports whether the error includes a failure of the given type.
func (e *ConfigError) Has(t ErrorType) bool {
	for _, got := range e.Types {
		if got == t {
			return true
		}
	}
	return false
}

// LoadEnvFiles preloads variables from dotenv files. Variables already set in
// the process environment win, and absent files are ignored.
func LoadEnvFiles(files ...string) {
	if len(files) == 0 {
		files = []string{DefaultEnvFile}
	}
	for _, f := range files {
		if f == "" {
			continue
		}
		_ = godotenv.Load(f)
	}
}

// LogPath returns the log file location, which is needed before the rest of
// the configuration has been validated.
func LogPath() string {
	if p, ok := os.LookupEnv("LOG_FILE"); ok && strings.TrimSpace(p) != "" {
		return p
	}
	return DefaultLogPath
}

// Load builds and validates the configuration from the environment after
// preloading the given dotenv files.
func Load(envFiles ...string) (ConfigProvider, error) {
	LoadEnvFiles(envFiles...)

	var c config
	if err := envconfig.Process("", &c); err != nil {
		// envconfig stops at the first bad value, so required fields are
		// checked against the environment directly.
		cfgErr := &ConfigError{Missing: unsetRequired()}
		if len(cfgErr.Missing) > 0 {
			cfgErr.Types = append(cfgErr.Types, ErrMissingEnv)
		}
		cfgErr.Types = append(cfgErr.Types, ErrParsing)
		cfgErr.Err = fmt.Errorf("failed to process environment: %w", err)
		return nil, cfgErr
	}

	if err := validate(&c); err != nil {
		return nil, err
	}
	return NewConfigProvider(&c), nil
}

// unsetRequired lists the required variables that are unset or empty, in
// declaration order.
func unsetRequired() []string {
	var missing []string
	t := reflect.TypeOf(config{})
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		rules := strings.Split(f.Tag.Get("validate"), ",")
		if !slices.Contains(rules, "required") {
			continue
		}
		if os.Getenv(f.Tag.Get("envconfig")) == "" {
			missing = append(missing, f.Tag.Get("envconfig"))
		}
	}
	return missing
}

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		if name := fld.Tag.Get("envconfig"); name != "" {
			return name
		}
		return fld.Name
	})
	return v
}

func validate(c *config) error {
	err := newValidator().Struct(c)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return &ConfigError{Types: []ErrorType{ErrValidation}, Err: err}
	}

	cfgErr := &ConfigError{}
	var invalid []string
	for _, fe := range fieldErrs {
		switch fe.Tag() {
		case "required":
			cfgErr.Missing = append(cfgErr.Missing, fe.Field())
		case "file":
			cfgErr.Path = c.FilePath
		default:
			invalid = append(invalid, fmt.Sprintf("%s=%v fails %q", fe.Field(), fe.Value(), fe.Tag()))
		}
	}

	if len(cfgErr.Missing) > 0 {
		cfgErr.Types = append(cfgErr.Types, ErrMissingEnv)
	}
	if cfgErr.Path != "" {
		cfgErr.Types = append(cfgErr.Types, ErrFileNotFound)
	}
	if len(invalid) > 0 {
		cfgErr.Types = append(cfgErr.Types, ErrValidation)
		cfgErr.Err = fmt.Errorf("invalid values: %s", strings.Join(invalid, ", "))
	}
	return cfgErr
}
