package config

import (
	_ "embed"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"sigs.k8s.io/yaml"
)

var (
	//go:embed default/config.yaml
	defaultConfigData []byte
)

const (
	ConfigurationName = "config.yaml"
)

// Color modes.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

type Configuration struct {
	configurationDir string

	Prompt       string   `json:"prompt" validate:"required"`
	Color        string   `json:"color" validate:"oneof=auto always never"`
	ClearCommand string   `json:"clear_command" validate:"required"`
	ExitMessage  string   `json:"exit_message"`
	About        []string `json:"about" validate:"min=1"`
}

// Validate the configuration for basic semantic errors.
func (c *Configuration) Validate() error {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		return name
	})

	return validate.Struct(c)
}

// Dir returns the directory the configuration was loaded from, empty for the
// built in defaults.
func (c *Configuration) Dir() string {
	return c.configurationDir
}

// Default returns the built in configuration.
func Default() *Configuration {
	var out Configuration
	if err := yaml.UnmarshalStrict(defaultConfigData, &out); err != nil {
		panic(err)
	}
	return &out
}
