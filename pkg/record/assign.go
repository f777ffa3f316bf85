// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package record

import (
	"errors"
	"fmt"
	"reflect"

	"gopkg.in/yaml.v3"
)

// assign stores raw in dst, converting it to dst's type. Values that are
// directly assignable are stored as-is. Strings headed for non-string scalar
// fields are decoded as plain YAML scalars, so "8080" fills an int and "5s"
// a time.Duration. Everything else is re-encoded and decoded through yaml.v3.
func assign(dst reflect.Value, raw any, path string) error {
	t := dst.Type()

	if raw == nil {
		dst.Set(reflect.Zero(t))
		return nil
	}

	rv := reflect.ValueOf(raw)
	if rv.Type().AssignableTo(t) {
		dst.Set(rv)
		return nil
	}

	var node yaml.Node
	if s, ok := raw.(string); ok {
		if t.Kind() == reflect.String {
			dst.SetString(s)
			return nil
		}
		if isNullScalar(s) && !isOptional(t) {
			return mismatch(path, raw, t, errNullScalar)
		}
		node = yaml.Node{Kind: yaml.ScalarNode, Value: s}
	} else if err := node.Encode(raw); err != nil {
		return mismatch(path, raw, t, err)
	}

	out := reflect.New(t)
	if err := node.Decode(out.Interface()); err != nil {
		return mismatch(path, raw, t, err)
	}
	dst.Set(out.Elem())
	return nil
}

var errNullScalar = errors.New("empty or null value")

// isNullScalar reports whether s would decode as a YAML null.
func isNullScalar(s string) bool {
	switch s {
	case "", "~", "null", "Null", "NULL":
		return true
	default:
		return false
	}
}

func mismatch(path string, raw any, t reflect.Type, err error) error {
	return fmt.Errorf("%w: %s: cannot use %T as %s: %v", ErrTypeMismatch, path, raw, t, err)
}
