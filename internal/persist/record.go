package persist

import (
	"encoding/json"
	"fmt"
)

// Record names a persisted document: its storage key and the single field
// wrapping the payload, as in {"clients": [...]}.
type Record struct {
	Key   string
	Field string
}

var (
	Clients    = Record{Key: "client-storage", Field: "clients"}
	Materials  = Record{Key: "material-storage", Field: "materials"}
	Quotations = Record{Key: "quotation-storage", Field: "quotations"}
	Invoices   = Record{Key: "invoice-storage", Field: "invoices"}
	Settings   = Record{Key: "global-settings-storage", Field: "settings"}
)

// Encode wraps v under the record's field.
func Encode[S any](rec Record, v S) ([]byte, error) {
	data, err := json.Marshal(map[string]S{rec.Field: v})
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", rec.Key, err)
	}
	return data, nil
}

// Decode extracts the payload of a document written by Encode. ok is false
// when the field is absent or null.
func Decode[S any](rec Record, data []byte) (v S, ok bool, err error) {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return v, false, fmt.Errorf("decode %s: %w", rec.Key, err)
	}
	raw, found := doc[rec.Field]
	if !found || string(raw) == "null" {
		return v, false, nil
	}
	if err := json.Unmarshal(raw, &v); err != nil {
		return v, false, fmt.Errorf("decode %s.%s: %w", rec.Key, rec.Field, err)
	}
	return v, true, nil
}
