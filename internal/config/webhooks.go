package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	apperrors "notification-router/internal/common/errors"
	"notification-router/internal/filter"
)

// Hook types understood by the delivery layer
const (
	HookTypeDebug = "debug"
	HookTypeHTTP  = "http"
	HookTypeRedis = "redis"
)

// WebhookFile is the root of the YAML webhook file
type WebhookFile struct {
	Webhooks []Webhook `yaml:"webhooks" validate:"required,min=1,unique=Name,dive"`
}

// Webhook is one configured destination
type Webhook struct {
	Name     string  `yaml:"name" validate:"required"`
	HookType string  `yaml:"hook_type" validate:"required,oneof=debug http redis"`
	URL      string  `yaml:"url"`
	Token    string  `yaml:"token"`
	Filters  Filters `yaml:"filters"`
}

// Filters holds a webhook's filter switch and conditions. A webhook without
// enabled filters receives every payload.
type Filters struct {
	Enabled bool                     `yaml:"enabled"`
	Values  []filter.FilterCondition `yaml:"values" validate:"dive"`
}

// EnvName is the suffix used for URL_ and TOKEN_ overrides
func (w Webhook) EnvName() string {
	return strings.ToUpper(strings.ReplaceAll(w.Name, " ", "_"))
}

var validate = validator.New()

// LoadWebhooks reads, parses and resolves the webhook file at path
func LoadWebhooks(path string) ([]Webhook, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperrors.ConfigError("failed to read webhook file", err).WithContext("path", path)
	}
	return ParseWebhooks(data, os.Getenv)
}

// ParseWebhooks decodes a webhook file, applies URL_/TOKEN_ overrides from
// lookupEnv and validates the result.
func ParseWebhooks(data []byte, lookupEnv func(string) string) ([]Webhook, error) {
	var file WebhookFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, apperrors.ConfigError("failed to parse webhook file", err)
	}

	if err := validate.Struct(file); err != nil {
		return nil, apperrors.ConfigError("invalid webhook file", describeValidation(err))
	}

	for i := range file.Webhooks {
		hook := &file.Webhooks[i]
		if url := lookupEnv("URL_" + hook.EnvName()); url != "" {
			hook.URL = url
		}
		if token := lookupEnv("TOKEN_" + hook.EnvName()); token != "" {
			hook.Token = token
		}

		for j, cond := range hook.Filters.Values {
			if cond.Field == "" || cond.Operator == "" {
				return nil, apperrors.ConfigError("filter needs a field and an operator", nil).
					WithContext("webhook", hook.Name).
					WithContext("filter", j)
			}
		}

		if hook.HookType == HookTypeHTTP && hook.URL == "" {
			return nil, apperrors.ConfigError(
				fmt.Sprintf("missing url for webhook '%s', set it in the file or URL_%s", hook.Name, hook.EnvName()), nil)
		}
	}

	return file.Webhooks, nil
}

func describeValidation(err error) error {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		if fe.Param() != "" {
			parts = append(parts, fmt.Sprintf("%s failed '%s=%s'", fe.Namespace(), fe.Tag(), fe.Param()))
		} else {
			parts = append(parts, fmt.Sprintf("%s failed '%s'", fe.Namespace(), fe.Tag()))
		}
	}
	return fmt.Errorf("%s", strings.Join(parts, "; "))
}
