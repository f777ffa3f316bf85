// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package record

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"time"

	"github.com/tfctl/cfgload/internal/log"
	"github.com/tfctl/cfgload/pkg/binding"
)

var (
	// ErrInvalidTarget is returned when Build is not given a pointer to a
	// struct.
	ErrInvalidTarget = errors.New("target must be a non-nil pointer to a struct")

	// ErrUnexpectedField is returned for source keys the type does not declare.
	ErrUnexpectedField = errors.New("unexpected field")

	// ErrMissingField is returned for declared fields absent from the source
	// that have neither a binding nor an optional shape.
	ErrMissingField = errors.New("missing required field")

	// ErrTypeMismatch is returned when a value cannot be stored in its field.
	ErrTypeMismatch = errors.New("type mismatch")

	// ErrUnknownBinding is returned when a binding.Set names a field the type
	// does not have.
	ErrUnknownBinding = errors.New("binding for unknown field")
)

var timeType = reflect.TypeOf(time.Time{})

// Build populates target, a pointer to a struct, from raw. Nothing is written
// to target unless the whole record builds.
func Build(ctx context.Context, target any, raw map[string]any) error {
	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("%w: got %T", ErrInvalidTarget, target)
	}

	staged := reflect.New(rv.Elem().Type()).Elem()
	if err := build(ctx, staged, raw, ""); err != nil {
		return err
	}
	rv.Elem().Set(staged)
	return nil
}

// FromMap builds a T from raw.
func FromMap[T any](ctx context.Context, raw map[string]any) (T, error) {
	var v T
	if err := Build(ctx, &v, raw); err != nil {
		var zero T
		return zero, err
	}
	return v, nil
}

// field describes one settable struct field.
type field struct {
	index     int
	name      string
	key       string
	omitEmpty bool
}

// fieldsOf lists the exported fields of t with their config keys.
func fieldsOf(t reflect.Type) []field {
	fields := make([]field, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}

		tag := sf.Tag.Get("yaml")
		if tag == "-" {
			continue
		}
		key, opts, _ := strings.Cut(tag, ",")
		if key == "" {
			key = strings.ToLower(sf.Name)
		}

		fields = append(fields, field{
			index:     i,
			name:      sf.Name,
			key:       key,
			omitEmpty: hasOption(opts, "omitempty"),
		})
	}
	return fields
}

func hasOption(opts, want string) bool {
	for _, o := range strings.Split(opts, ",") {
		if o == want {
			return true
		}
	}
	return false
}

// bindingsOf returns the binding set declared by t, if any.
func bindingsOf(t reflect.Type) binding.Set {
	if b, ok := reflect.New(t).Interface().(binding.Binder); ok {
		return b.FieldBindings()
	}
	return nil
}

func build(ctx context.Context, v reflect.Value, raw map[string]any, path string) error {
	t := v.Type()
	fields := fieldsOf(t)
	bindings := bindingsOf(t)
	log.Tracef("record: building %s at %q", t, path)

	keys := make(map[string]bool, len(fields))
	names := make(map[string]bool, 2*len(fields))
	for _, f := range fields {
		keys[f.key] = true
		names[f.key] = true
		names[f.name] = true
	}

	var unknown []string
	for k := range bindings {
		if !names[k] {
			unknown = append(unknown, k)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return fmt.Errorf("%w: %s has no field %s", ErrUnknownBinding, t, strings.Join(unknown, ", "))
	}

	var unexpected []string
	for k := range raw {
		if !keys[k] {
			unexpected = append(unexpected, join(path, k))
		}
	}
	if len(unexpected) > 0 {
		sort.Strings(unexpected)
		return fmt.Errorf("%w: %s", ErrUnexpectedField, strings.Join(unexpected, ", "))
	}

	for _, f := range fields {
		fv := v.Field(f.index)
		fpath := join(path, f.key)
		b, bound := bindings.Lookup(f.key, f.name)

		val, present := raw[f.key]
		if present {
			if isRecord(fv.Type()) {
				m, ok := val.(map[string]any)
				if val == nil && fv.Kind() != reflect.Pointer {
					// A null nested record still has its own rules to enforce.
					m, ok = map[string]any{}, true
				}
				if ok {
					if err := buildNested(ctx, fv, m, fpath); err != nil {
						return err
					}
					continue
				}
			}

			if bound {
				resolved, err := b.Assign(ctx, fpath, val)
				if err != nil {
					return err
				}
				val = resolved
			}
		} else {
			switch {
			case bound:
				fallback, err := b.Absent(fpath)
				if err != nil {
					return err
				}
				val = fallback
			case f.omitEmpty || isOptional(fv.Type()):
				continue
			default:
				return fmt.Errorf("%w: %s", ErrMissingField, fpath)
			}
		}

		if err := assign(fv, val, fpath); err != nil {
			return err
		}
	}

	return nil
}

// buildNested builds a nested struct, or a pointer to one, in place.
func buildNested(ctx context.Context, fv reflect.Value, raw map[string]any, path string) error {
	if fv.Kind() == reflect.Pointer {
		nv := reflect.New(fv.Type().Elem())
		if err := build(ctx, nv.Elem(), raw, path); err != nil {
			return err
		}
		fv.Set(nv)
		return nil
	}
	return build(ctx, fv, raw, path)
}

// isRecord reports whether t is a struct, or pointer to one, that should be
// built field by field rather than decoded as a value.
func isRecord(t reflect.Type) bool {
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.Kind() == reflect.Struct && t != timeType
}

// isOptional reports whether an absent field of type t may stay zero.
func isOptional(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Slice, reflect.Map:
		return true
	default:
		return false
	}
}

func join(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}
