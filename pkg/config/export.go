package config

import (
	"encoding/json"

	"github.com/elenamtz/nubegen/pkg/apperr"
)

// requiredKeys are the JSON keys an imported configuration must carry.
var requiredKeys = []string{"final_color", "n_stops", "words", "width", "height"}

// Export serializes a single configuration as indented JSON, the format of
// the dashboard's "Export Active Config" download.
func Export(cfg Configuration) ([]byte, error) {
	return json.MarshalIndent(cfg, "", "    ")
}

// Import parses a configuration from exported JSON. The full shape is
// validated before anything is returned: the payload must be a JSON object,
// every required key must be present, and the decoded values must pass
// Validate. A failed import therefore never leaves a caller's active
// configuration partially overwritten — the error names the first problem
// found.
func Import(data []byte) (Configuration, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return Configuration{}, apperr.Wrap(apperr.ErrCodeInvalidImport, err, "not a JSON object")
	}
	for _, key := range requiredKeys {
		if _, ok := raw[key]; !ok {
			return Configuration{}, apperr.New(apperr.ErrCodeInvalidImport, "missing required key %q", key)
		}
	}

	var cfg Configuration
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Configuration{}, apperr.Wrap(apperr.ErrCodeInvalidImport, err, "malformed configuration")
	}
	if err := cfg.Validate(); err != nil {
		return Configuration{}, apperr.Wrap(apperr.ErrCodeInvalidImport, err, "imported configuration is invalid")
	}
	if cfg.Words == nil {
		cfg.Words = []string{}
	}
	return cfg, nil
}
