package conf

import (
	"bytes"
	"encoding"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/tidwall/jsonc"
)

// ParseConfiguration decodes a JSON or JSONC document into a partial
// configuration. The schema is closed: unknown keys at any level are
// rejected. path is only used to locate diagnostics.
func ParseConfiguration(data []byte, path string) (PartialConfiguration, error) {
	var partial PartialConfiguration

	plain := jsonc.ToJSON(data)
	dec := json.NewDecoder(bytes.NewReader(plain))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&partial); err != nil {
		return PartialConfiguration{}, decodeDiagnostic(plain, path, err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return PartialConfiguration{}, &Diagnostic{
			Kind: ErrParse,
			Path: path,
			Err:  errors.New("unexpected content after the configuration object"),
		}
	}

	if err := partial.validate(path); err != nil {
		return PartialConfiguration{}, err
	}
	return partial, nil
}

func decodeDiagnostic(data []byte, path string, err error) error {
	var syntaxErr *json.SyntaxError
	typeErr, _ := err.(*json.UnmarshalTypeError)
	switch {
	case errors.As(err, &syntaxErr):
		return &Diagnostic{Kind: ErrParse, Path: path, Err: fmt.Errorf("offset %d: %w", syntaxErr.Offset, err)}
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		return &Diagnostic{Kind: ErrParse, Path: path, Err: errors.New("unexpected end of document")}
	case typeErr != nil && typeErr.Field != "":
		return &Diagnostic{Kind: ErrSchema, Path: path, Field: typeErr.Field, Err: err}
	}

	// Errors of custom decoders carry no location; find it by decoding the
	// document again one key at a time.
	field, cause := locate(data, reflect.TypeOf(PartialConfiguration{}))
	if cause == nil {
		cause = err
	}
	return &Diagnostic{Kind: ErrSchema, Path: path, Field: field, Err: errors.New(strings.TrimPrefix(cause.Error(), "json: "))}
}

var (
	jsonUnmarshaler = reflect.TypeOf((*json.Unmarshaler)(nil)).Elem()
	textUnmarshaler = reflect.TypeOf((*encoding.TextUnmarshaler)(nil)).Elem()
)

// locate decodes data into a value of type t and, on failure, returns the
// dotted path of the innermost key whose value fails together with its error.
func locate(data []byte, t reflect.Type) (string, error) {
	err := strictUnmarshal(data, reflect.New(t).Interface())
	if err == nil {
		return "", nil
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if pt := reflect.PointerTo(t); pt.Implements(jsonUnmarshaler) || pt.Implements(textUnmarshaler) {
		return "", err
	}

	switch t.Kind() {
	case reflect.Struct:
		var raw map[string]json.RawMessage
		if json.Unmarshal(data, &raw) != nil {
			break
		}
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
			value, ok := raw[name]
			if !f.IsExported() || name == "" || name == "-" || !ok {
				continue
			}
			if sub, ferr := locate(value, f.Type); ferr != nil {
				return joinField(name, sub), ferr
			}
		}
	case reflect.Slice:
		var items []json.RawMessage
		if json.Unmarshal(data, &items) != nil {
			break
		}
		for i, item := range items {
			if sub, ierr := locate(item, t.Elem()); ierr != nil {
				return joinField(fmt.Sprintf("[%d]", i), sub), ierr
			}
		}
	}
	return "", err
}

func strictUnmarshal(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

func joinField(parent, child string) string {
	switch {
	case child == "":
		return parent
	case strings.HasPrefix(child, "["):
		return parent + child
	default:
		return parent + "." + child
	}
}
