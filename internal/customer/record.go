// Package customer decodes customer records: permissive JSON documents
// describing one brand's tracking settings. No field is required; a
// malformed optional field degrades to its zero value instead of failing
// the whole record.
package customer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"slices"
)

// Variable is one user-supplied variable, in document order.
type Variable struct {
	Name  string
	Value any
}

// Record holds the recognized fields of a customer document.
type Record struct {
	BrandName           string     // Display name of the brand; empty if absent.
	HistoricalDataSince string     // Date string for backfill start; empty if absent.
	MobileTracking      string     // "yes" (any case) enables the mobile flag.
	WebTracking         string     // "yes" (any case) enables the web flag.
	AppIDs              []any      // Tracked app identifiers; nil if absent or empty.
	UserVars            []Variable // user_set_variables entries in document order.
}

// Parse decodes a single JSON customer record. The document must be a
// JSON object; everything inside it is optional. Fields of an unexpected
// type are ignored, except user_set_variables which is additionally
// reported at Warn because silently dropping user intent is surprising.
func Parse(data []byte, logger *slog.Logger) (*Record, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("customer: parse record: %w", err)
	}

	rec := &Record{
		BrandName:           stringField(doc, "brand_name"),
		HistoricalDataSince: stringField(doc, "historical_data_since"),
		MobileTracking:      stringField(doc, "mobile_tracking"),
		WebTracking:         stringField(doc, "web_tracking"),
	}

	if raw, ok := doc["app_ids"]; ok {
		var ids []any
		if err := json.Unmarshal(raw, &ids); err == nil {
			rec.AppIDs = ids
		}
	}

	if raw, ok := doc["user_set_variables"]; ok {
		vars, err := parseUserVars(raw)
		if err != nil {
			logger.Warn("user_set_variables is not an object; ignoring", "error", err)
		} else {
			rec.UserVars = vars
		}
	}

	return rec, nil
}

// stringField returns the string value of a key, or "" when the key is
// absent or not a string.
func stringField(doc map[string]json.RawMessage, key string) string {
	raw, ok := doc[key]
	if !ok {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}

// parseUserVars decodes a JSON object into variables that keep the
// document's key order. encoding/json maps drop ordering, so the keys are
// recovered with a token walk over the same bytes.
func parseUserVars(raw json.RawMessage) ([]Variable, error) {
	var values map[string]any
	if err := json.Unmarshal(raw, &values); err != nil {
		return nil, err
	}

	order, err := objectKeyOrder(raw)
	if err != nil {
		return nil, err
	}

	vars := make([]Variable, 0, len(order))
	for _, name := range order {
		vars = append(vars, Variable{Name: name, Value: values[name]})
	}
	return vars, nil
}

// objectKeyOrder returns the top-level keys of a JSON object in document
// order. Duplicate keys keep their first position.
func objectKeyOrder(raw []byte) ([]string, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))

	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("customer: expected object, got %v", tok)
	}

	var keys []string
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("customer: expected object key, got %v", tok)
		}
		if !slices.Contains(keys, key) {
			keys = append(keys, key)
		}
		if err := skipValue(dec); err != nil {
			return nil, err
		}
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return keys, nil
}

// skipValue consumes one complete JSON value from the decoder.
func skipValue(dec *json.Decoder) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	d, ok := tok.(json.Delim)
	if !ok {
		return nil
	}
	switch d {
	case '{':
		for dec.More() {
			if _, err := dec.Token(); err != nil { // key
				return err
			}
			if err := skipValue(dec); err != nil {
				return err
			}
		}
	case '[':
		for dec.More() {
			if err := skipValue(dec); err != nil {
				return err
			}
		}
	}
	_, err = dec.Token() // closing delimiter
	return err
}
