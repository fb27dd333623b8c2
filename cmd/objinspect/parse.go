package main

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// parseValue converts text to a value of typ for Set.
func parseValue(typ reflect.Type, s string) (any, error) {
	s = strings.TrimSpace(s)
	v := reflect.New(typ).Elem()
	switch typ.Kind() {
	case reflect.String:
		if unq, err := strconv.Unquote(s); err == nil {
			s = unq
		}
		v.SetString(s)
	case reflect.Bool:
		b, err := strconv.ParseBool(s)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", typ, err)
		}
		v.SetBool(b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(s, 0, typ.Bits())
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", typ, err)
		}
		v.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		n, err := strconv.ParseUint(s, 0, typ.Bits())
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", typ, err)
		}
		v.SetUint(n)
	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(s, typ.Bits())
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", typ, err)
		}
		v.SetFloat(f)
	default:
		return nil, fmt.Errorf("cannot parse values of type %s", typ)
	}
	return v.Interface(), nil
}

// splitAssignment splits "path=value".
func splitAssignment(s string) (string, string, error) {
	path, value, ok := strings.Cut(s, "=")
	if !ok {
		return "", "", fmt.Errorf("expected path=value, got %q", s)
	}
	return strings.TrimSpace(path), value, nil
}
