// Package document holds decoded JSON values of unknown shape and
// exposes them through accessors that fail explicitly on a kind
// mismatch instead of panicking on a type assertion.
package document

import (
	"encoding/json"
	"sort"

	"github.com/pkg/errors"
)

// Kind identifies the JSON shape held by a Document.
type Kind int

const (
	Null Kind = iota
	Bool
	Number
	String
	Array
	Object
)

func (k Kind) String() string {
	switch k {
	case Null:
		return "null"
	case Bool:
		return "bool"
	case Number:
		return "number"
	case String:
		return "string"
	case Array:
		return "array"
	case Object:
		return "object"
	}
	return "unknown"
}

// Document wraps a decoded JSON value. The zero Document is null.
type Document struct {
	value interface{}
}

// New wraps a value as decoded by encoding/json: nil, bool, float64,
// string, []interface{} or map[string]interface{}.
func New(value interface{}) Document {
	return Document{value: value}
}

func Parse(data []byte) (Document, error) {
	var d Document
	if err := json.Unmarshal(data, &d); err != nil {
		return Document{}, errors.Wrap(err, "parse document")
	}
	return d, nil
}

func (d *Document) UnmarshalJSON(data []byte) error {
	var v interface{}
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	d.value = v
	return nil
}

func (d Document) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.value)
}

func (d Document) Kind() Kind {
	switch d.value.(type) {
	case nil:
		return Null
	case bool:
		return Bool
	case float64:
		return Number
	case string:
		return String
	case []interface{}:
		return Array
	case map[string]interface{}:
		return Object
	}
	return Null
}

func (d Document) IsNull() bool {
	return d.value == nil
}

// Value returns the underlying decoded value.
func (d Document) Value() interface{} {
	return d.value
}

func (d Document) Bool() (bool, error) {
	v, ok := d.value.(bool)
	if !ok {
		return false, errors.Errorf("document is %s, not bool", d.Kind())
	}
	return v, nil
}

func (d Document) Float64() (float64, error) {
	v, ok := d.value.(float64)
	if !ok {
		return 0, errors.Errorf("document is %s, not number", d.Kind())
	}
	return v, nil
}

func (d Document) Int64() (int64, error) {
	v, err := d.Float64()
	if err != nil {
		return 0, err
	}
	return int64(v), nil
}

func (d Document) Str() (string, error) {
	v, ok := d.value.(string)
	if !ok {
		return "", errors.Errorf("document is %s, not string", d.Kind())
	}
	return v, nil
}

func (d Document) Len() (int, error) {
	v, ok := d.value.([]interface{})
	if !ok {
		return 0, errors.Errorf("document is %s, not array", d.Kind())
	}
	return len(v), nil
}

func (d Document) Index(i int) (Document, error) {
	v, ok := d.value.([]interface{})
	if !ok {
		return Document{}, errors.Errorf("document is %s, not array", d.Kind())
	}
	if i < 0 || i >= len(v) {
		return Document{}, errors.Errorf("index %d out of range, length %d", i, len(v))
	}
	return Document{value: v[i]}, nil
}

func (d Document) Has(name string) bool {
	v, ok := d.value.(map[string]interface{})
	if !ok {
		return false
	}
	_, ok = v[name]
	return ok
}

func (d Document) Field(name string) (Document, error) {
	v, ok := d.value.(map[string]interface{})
	if !ok {
		return Document{}, errors.Errorf("document is %s, not object", d.Kind())
	}
	f, ok := v[name]
	if !ok {
		return Document{}, errors.Errorf("no field %q in document", name)
	}
	return Document{value: f}, nil
}

func (d Document) Keys() ([]string, error) {
	v, ok := d.value.(map[string]interface{})
	if !ok {
		return nil, errors.Errorf("document is %s, not object", d.Kind())
	}
	keys := make([]string, 0, len(v))
	for k := range v {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}
