package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/servicekit/pkg/trace"
	"github.com/dmitrymomot/servicekit/pkg/validator"
)

// Service describes one supervised process.
type Service struct {
	// Name identifies the service in logs and status output. Required.
	Name string
	// Exec is the executable to spawn. Required.
	Exec string
	// Args are passed to the executable. Defaults to none.
	Args []string
	// Dir is the working directory for the process. Defaults to "./".
	Dir string
}

// Config is a validated supervisor configuration.
type Config struct {
	// CleanLogs truncates the supervisor's log file on startup instead
	// of appending to it. It has no effect without a log file.
	CleanLogs bool
	// Services are the processes to supervise.
	Services []Service
}

// FromFile loads and validates a configuration document, dispatching on
// the file extension: .json, .yaml or .yml.
func FromFile(path string, opts ...LoadOption) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FromJSON(raw, opts...)
	case ".yaml", ".yml":
		return FromYAML(raw, opts...)
	default:
		return Config{}, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}

// FromJSON parses a JSON document and validates it.
func FromJSON(data []byte, opts ...LoadOption) (Config, error) {
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return Config{}, errors.Join(ErrParseConfig, err)
	}
	return FromMap(doc, opts...)
}

// FromYAML parses a YAML document and validates it. JSON is a subset of
// YAML, so this also accepts inline JSON sources.
func FromYAML(data []byte, opts ...LoadOption) (Config, error) {
	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Config{}, errors.Join(ErrParseConfig, err)
	}
	return FromMap(doc, opts...)
}

// FromMap validates an already-deserialized document against Schema and
// decodes the surviving fields into a Config. Unknown fields and
// malformed service entries are dropped by the schema; service entries
// missing a required field after that fail the load.
func FromMap(doc map[string]any, opts ...LoadOption) (Config, error) {
	cfg := loadSettings{}
	for _, opt := range opts {
		opt(&cfg)
	}

	out, err := validator.EvaluateTraced(Schema(), doc, cfg.sink)
	if err != nil {
		return Config{}, fmt.Errorf("config schema: %w", err)
	}
	if !out.Matched() {
		return Config{}, ErrInvalidConfig
	}
	validated, ok := out.Value().(map[string]any)
	if !ok {
		return Config{}, ErrInvalidConfig
	}
	return decode(validated)
}

// decode turns a schema-validated document into typed records, applying
// defaults and enforcing required fields.
func decode(doc map[string]any) (Config, error) {
	cfg := Config{}
	if v, ok := doc["clean_logs"].(bool); ok {
		cfg.CleanLogs = v
	}

	services, _ := doc["services"].([]any)
	for i, raw := range services {
		record, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		svc := Service{Dir: "./"}
		if v, ok := record["name"].(string); ok {
			svc.Name = v
		}
		if v, ok := record["exec"].(string); ok {
			svc.Exec = v
		}
		if v, ok := record["dir"].(string); ok {
			svc.Dir = v
		}
		if args, ok := record["args"].([]any); ok {
			svc.Args = make([]string, 0, len(args))
			for _, a := range args {
				if s, ok := a.(string); ok {
					svc.Args = append(svc.Args, s)
				}
			}
		}

		if svc.Name == "" {
			return Config{}, fmt.Errorf("%w: service %d: name", ErrMissingField, i)
		}
		if svc.Exec == "" {
			return Config{}, fmt.Errorf("%w: service %q: exec", ErrMissingField, svc.Name)
		}
		cfg.Services = append(cfg.Services, svc)
	}
	return cfg, nil
}

type loadSettings struct {
	sink trace.Sink
}

// LoadOption adjusts how a configuration document is loaded.
type LoadOption func(*loadSettings)

// WithTrace reports every validation step of the load to sink.
func WithTrace(sink trace.Sink) LoadOption {
	return func(s *loadSettings) { s.sink = sink }
}
