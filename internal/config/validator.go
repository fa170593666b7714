package config

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// schemaJSON describes the accepted configuration document.
const schemaJSON = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "additionalProperties": false,
  "properties": {
    "statsd": {
      "type": "object",
      "additionalProperties": false,
      "properties": {
        "host": {"type": "string"},
        "port": {
          "oneOf": [
            {"type": "integer", "minimum": 1, "maximum": 65535},
            {"type": "string", "pattern": "^[0-9]+$"}
          ]
        },
        "network": {"type": "string", "enum": ["udp", "tcp"]},
        "flushPeriod": {"type": "string"}
      }
    },
    "project": {"type": "string"},
    "hostname": {"type": "string"},
    "tags": {
      "type": "object",
      "additionalProperties": {"type": "string"}
    }
  }
}`

var configSchema = jsonschema.MustCompileString("config.schema.json", schemaJSON)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors struct {
	Errors []*ValidationError
}

func (e *ValidationErrors) Error() string {
	if len(e.Errors) == 0 {
		return "no validation errors"
	}
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d validation errors:\n", len(e.Errors)))
	for i, err := range e.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}

// Add adds an error to the collection.
func (e *ValidationErrors) Add(field, message string) {
	e.Errors = append(e.Errors, &ValidationError{Field: field, Message: message})
}

// HasErrors returns true if there are any errors.
func (e *ValidationErrors) HasErrors() bool {
	return len(e.Errors) > 0
}

// ValidateSchema checks a decoded document against the configuration schema.
//
// YAML documents are normalized through JSON first so that numbers and maps
// have the types the schema validator expects.
func ValidateSchema(doc interface{}) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("config is not representable as JSON: %w", err)
	}

	var normalized interface{}
	if err := json.Unmarshal(raw, &normalized); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}

	err = configSchema.Validate(normalized)
	if err == nil {
		return nil
	}

	validationErr, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return err
	}

	errs := &ValidationErrors{}
	collectSchemaErrors(validationErr, errs)
	if !errs.HasErrors() {
		errs.Add("", validationErr.Error())
	}
	return errs
}

// collectSchemaErrors flattens the leaf causes of a schema validation error.
func collectSchemaErrors(err *jsonschema.ValidationError, errs *ValidationErrors) {
	if len(err.Causes) == 0 {
		errs.Add(strings.TrimPrefix(err.InstanceLocation, "/"), err.Message)
		return
	}
	for _, cause := range err.Causes {
		collectSchemaErrors(cause, errs)
	}
}

// Validate checks semantic constraints the schema cannot express.
//
// Host and port are not required here: an incomplete config is reported by
// the reporter as missing configuration once the CLI tries to emit.
func (c *Config) Validate() error {
	errs := &ValidationErrors{}

	if c.Statsd.Port != "" {
		port, err := c.Statsd.Port.Int()
		if err != nil {
			errs.Add("statsd.port", fmt.Sprintf("'%s' is not a number", c.Statsd.Port))
		} else if port < 1 || port > 65535 {
			errs.Add("statsd.port", fmt.Sprintf("%d is out of range 1-65535", port))
		}
	}

	switch c.Statsd.Network {
	case "", "udp", "tcp":
	default:
		errs.Add("statsd.network", fmt.Sprintf("invalid network '%s', must be one of: udp, tcp", c.Statsd.Network))
	}

	if c.Statsd.FlushPeriod < 0 {
		errs.Add("statsd.flushPeriod", "must not be negative")
	}

	if strings.ContainsAny(c.Project, ", ") {
		errs.Add("project", "must not contain commas or spaces")
	}

	for k := range c.Tags {
		if k == "" {
			errs.Add("tags", "tag keys must not be empty")
		}
	}

	if errs.HasErrors() {
		return errs
	}
	return nil
}
