package transform

import (
	"bytes"
	"encoding/json"
	"strings"
)

// SpecKind tags how a stored spec value was encoded.
type SpecKind int

const (
	// SpecPlain is any value that is not a JSON object with a "value" key.
	SpecPlain SpecKind = iota
	// SpecWrapped is a JSON object of the shape {"value": <actual>}.
	SpecWrapped
)

// SpecValue is a stored spec value resolved once at ingestion.
type SpecValue struct {
	kind    SpecKind
	raw     string
	wrapped any
}

// ParseSpecValue classifies raw. Parse failures are not errors: the value is
// kept as plain text.
func ParseSpecValue(raw string) SpecValue {
	trimmed := strings.TrimSpace(raw)
	if !strings.HasPrefix(trimmed, "{") {
		return SpecValue{kind: SpecPlain, raw: raw}
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal([]byte(trimmed), &obj); err != nil {
		return SpecValue{kind: SpecPlain, raw: raw}
	}
	inner, ok := obj["value"]
	if !ok {
		return SpecValue{kind: SpecPlain, raw: raw}
	}
	var value any
	dec := json.NewDecoder(bytes.NewReader(inner))
	dec.UseNumber()
	if err := dec.Decode(&value); err != nil {
		return SpecValue{kind: SpecPlain, raw: raw}
	}
	return SpecValue{kind: SpecWrapped, raw: raw, wrapped: normalizeNumber(value)}
}

// Plain wraps a value that is already known to be plain text.
func Plain(raw string) SpecValue {
	return SpecValue{kind: SpecPlain, raw: raw}
}

func (v SpecValue) Kind() SpecKind { return v.kind }

// Raw returns the stored text.
func (v SpecValue) Raw() string { return v.raw }

// Resolved returns the inner value for wrapped specs and the raw text otherwise.
func (v SpecValue) Resolved() any {
	if v.kind == SpecWrapped {
		return v.wrapped
	}
	return v.raw
}

func (v SpecValue) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.Resolved())
}

// normalizeNumber turns json.Number into int64 when integral, float64 otherwise.
func normalizeNumber(value any) any {
	n, ok := value.(json.Number)
	if !ok {
		return value
	}
	if i, err := n.Int64(); err == nil {
		return i
	}
	if f, err := n.Float64(); err == nil {
		return f
	}
	return n.String()
}
