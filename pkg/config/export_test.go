package config

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"

	"github.com/elenamtz/nubegen/pkg/apperr"
)

func TestExportImportRoundTrip(t *testing.T) {
	cfg := validConfig()
	data, err := Export(cfg)
	if err != nil {
		t.Fatal(err)
	}
	got, err := Import(data)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, cfg) {
		t.Errorf("round trip:\n got %+v\nwant %+v", got, cfg)
	}
}

func TestExportWireFormat(t *testing.T) {
	data, err := Export(validConfig())
	if err != nil {
		t.Fatal(err)
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{"final_color", "n_stops", "words", "width", "height"} {
		if _, ok := raw[key]; !ok {
			t.Errorf("export missing key %q", key)
		}
	}
}

func TestImportRejectsMalformedJSON(t *testing.T) {
	for _, payload := range []string{"", "{", "[]", `"texto"`} {
		if _, err := Import([]byte(payload)); !apperr.Is(err, apperr.ErrCodeInvalidImport) {
			t.Errorf("Import(%q) = %v, want INVALID_IMPORT", payload, err)
		}
	}
}

func TestImportRejectsEachMissingKey(t *testing.T) {
	full := map[string]any{
		"final_color": "#ff00d3",
		"n_stops":     5,
		"words":       []string{"uno"},
		"width":       2000,
		"height":      1600,
	}
	for missing := range full {
		payload := map[string]any{}
		for k, v := range full {
			if k != missing {
				payload[k] = v
			}
		}
		data, err := json.Marshal(payload)
		if err != nil {
			t.Fatal(err)
		}
		_, err = Import(data)
		if !apperr.Is(err, apperr.ErrCodeInvalidImport) {
			t.Errorf("missing %q: err = %v, want INVALID_IMPORT", missing, err)
			continue
		}
		if !strings.Contains(apperr.UserMessage(err), missing) {
			t.Errorf("missing %q: error should name the key, got %q", missing, apperr.UserMessage(err))
		}
	}
}

func TestImportRejectsOutOfRangeValues(t *testing.T) {
	data := []byte(`{"final_color":"#ff00d3","n_stops":50,"words":["uno"],"width":2000,"height":1600}`)
	if _, err := Import(data); !apperr.Is(err, apperr.ErrCodeInvalidImport) {
		t.Errorf("out-of-range import = %v, want INVALID_IMPORT", err)
	}
}

func TestImportAllowsEmptyWords(t *testing.T) {
	data := []byte(`{"final_color":"#ff00d3","n_stops":5,"words":[],"width":2000,"height":1600}`)
	cfg, err := Import(data)
	if err != nil {
		t.Fatalf("empty word list is storable: %v", err)
	}
	if cfg.Words == nil || len(cfg.Words) != 0 {
		t.Errorf("words = %v, want empty slice", cfg.Words)
	}
}
