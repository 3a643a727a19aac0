package command

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"strings"
	"time"
)

// ValidationError reports the first non-JSON-safe value found in a payload,
// qualified by its path.
type ValidationError struct {
	Path   string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Path, e.Reason)
}

var (
	timeType       = reflect.TypeOf(time.Time{})
	rawMessageType = reflect.TypeOf(json.RawMessage(nil))
)

// ValidateJSONSafe walks a payload recursively and rejects anything that
// would not survive a JSON round trip as plain data: functions, channels,
// non-finite numbers, time.Time values (encode timestamps as numbers),
// binary buffers, non-string map keys, and opaque structs with unexported
// state. Pre-validated json.RawMessage fragments are allowed through.
func ValidateJSONSafe(v interface{}) error {
	return walkJSONSafe(reflect.ValueOf(v), "payload")
}

func walkJSONSafe(v reflect.Value, path string) error {
	if !v.IsValid() {
		return nil // encodes as null
	}
	switch v.Kind() {
	case reflect.Bool, reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return nil

	case reflect.Float32, reflect.Float64:
		f := v.Float()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return &ValidationError{Path: path, Reason: "non-finite number"}
		}
		return nil

	case reflect.Ptr, reflect.Interface:
		if v.IsNil() {
			return nil
		}
		return walkJSONSafe(v.Elem(), path)

	case reflect.Slice, reflect.Array:
		if v.Type() == rawMessageType {
			return nil
		}
		if v.Kind() == reflect.Slice && v.Type().Elem().Kind() == reflect.Uint8 {
			return &ValidationError{Path: path, Reason: "binary buffer"}
		}
		for i := 0; i < v.Len(); i++ {
			if err := walkJSONSafe(v.Index(i), fmt.Sprintf("%s[%d]", path, i)); err != nil {
				return err
			}
		}
		return nil

	case reflect.Map:
		if v.Type().Key().Kind() != reflect.String {
			return &ValidationError{Path: path, Reason: "map key is not a string"}
		}
		iter := v.MapRange()
		for iter.Next() {
			key := iter.Key().String()
			if err := walkJSONSafe(iter.Value(), path+"."+key); err != nil {
				return err
			}
		}
		return nil

	case reflect.Struct:
		if v.Type() == timeType {
			return &ValidationError{Path: path, Reason: "time.Time value; encode timestamps as numbers"}
		}
		t := v.Type()
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			if f.PkgPath != "" {
				return &ValidationError{Path: path, Reason: "opaque struct " + t.String() + " with unexported state"}
			}
			if err := walkJSONSafe(v.Field(i), path+"."+fieldName(f)); err != nil {
				return err
			}
		}
		return nil

	case reflect.Func:
		return &ValidationError{Path: path, Reason: "function value"}
	case reflect.Chan:
		return &ValidationError{Path: path, Reason: "channel value"}
	case reflect.Complex64, reflect.Complex128:
		return &ValidationError{Path: path, Reason: "complex number"}
	default:
		return &ValidationError{Path: path, Reason: "unsupported kind " + v.Kind().String()}
	}
}

func fieldName(f reflect.StructField) string {
	tag := f.Tag.Get("json")
	if tag == "" || tag == "-" {
		return f.Name
	}
	if i := strings.IndexByte(tag, ','); i >= 0 {
		tag = tag[:i]
	}
	if tag == "" {
		return f.Name
	}
	return tag
}
