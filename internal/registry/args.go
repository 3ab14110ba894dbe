package registry

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sort"
)

// ValidationError reports a caller argument that does not satisfy the tool schema.
type ValidationError struct {
	// Param is the offending argument name.
	Param string
	// Reason describes the violated constraint.
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Param == "" {
		return e.Reason
	}
	return fmt.Sprintf("parameter %q %s", e.Param, e.Reason)
}

// Args holds validated arguments. Values are string or int64.
type Args map[string]any

// Has reports whether name is present.
func (a Args) Has(name string) bool {
	_, ok := a[name]
	return ok
}

// String returns the string argument or "" when absent.
func (a Args) String(name string) string {
	v, _ := a[name].(string)
	return v
}

// Int returns the integer argument or 0 when absent.
func (a Args) Int(name string) int64 {
	v, _ := a[name].(int64)
	return v
}

// Bind decodes raw JSON arguments, checks them against the descriptor and applies
// defaults. Optional parameters without a default are omitted when not supplied.
// Undeclared argument names are dropped and returned sorted as ignored.
func (d ToolDescriptor) Bind(raw json.RawMessage) (Args, []string, error) {
	input, err := decodeObject(raw)
	if err != nil {
		return nil, nil, err
	}

	known := make(map[string]struct{}, len(d.Params))
	for _, p := range d.Params {
		known[p.Name] = struct{}{}
	}
	var ignored []string
	for key := range input {
		if _, ok := known[key]; !ok {
			ignored = append(ignored, key)
		}
	}
	sort.Strings(ignored)

	var errs []error
	args := make(Args, len(d.Params))
	for _, p := range d.Params {
		value, present := input[p.Name]
		if !present || value == nil {
			if p.Required {
				errs = append(errs, &ValidationError{Param: p.Name, Reason: "is required"})
				continue
			}
			if p.Default != nil {
				args[p.Name] = p.Default
			}
			continue
		}
		converted, skip, err := convert(p, value)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if !skip {
			args[p.Name] = converted
		}
	}
	if len(errs) > 0 {
		return nil, ignored, errors.Join(errs...)
	}
	return args, ignored, nil
}

func decodeObject(raw json.RawMessage) (map[string]any, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return map[string]any{}, nil
	}
	decoder := json.NewDecoder(bytes.NewReader(trimmed))
	decoder.UseNumber()
	var input map[string]any
	if err := decoder.Decode(&input); err != nil {
		return nil, &ValidationError{Reason: "arguments must be a JSON object"}
	}
	if input == nil {
		input = map[string]any{}
	}
	return input, nil
}

func convert(p Param, value any) (any, bool, error) {
	switch p.Type {
	case TypeString:
		s, ok := value.(string)
		if !ok {
			return nil, false, &ValidationError{Param: p.Name, Reason: "must be a string"}
		}
		if s == "" {
			if p.NonEmpty {
				return nil, false, &ValidationError{Param: p.Name, Reason: "must not be empty"}
			}
			if p.Default == nil {
				return nil, true, nil
			}
			return p.Default, false, nil
		}
		return s, false, nil
	case TypeInteger:
		n, err := toInt(value)
		if err != nil {
			return nil, false, &ValidationError{Param: p.Name, Reason: "must be an integer"}
		}
		if p.Positive && n <= 0 {
			return nil, false, &ValidationError{Param: p.Name, Reason: "must be a positive integer"}
		}
		return n, false, nil
	default:
		return nil, false, &ValidationError{Param: p.Name, Reason: fmt.Sprintf("has unsupported type %q", p.Type)}
	}
}

func toInt(value any) (int64, error) {
	switch v := value.(type) {
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return n, nil
		}
		f, err := v.Float64()
		if err != nil {
			return 0, err
		}
		return floatToInt(f)
	case float64:
		return floatToInt(v)
	case int:
		return int64(v), nil
	case int64:
		return v, nil
	default:
		return 0, fmt.Errorf("not a number: %T", value)
	}
}

func floatToInt(f float64) (int64, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, fmt.Errorf("not an integer: %v", f)
	}
	if f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, fmt.Errorf("integer out of range: %v", f)
	}
	return int64(f), nil
}
