// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package yamlfile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/tfctl/cfgload/internal/log"
)

// IncludeTag marks a scalar to be replaced by another file's content.
const IncludeTag = "!include"

var (
	// ErrFileNotFound is returned when the config path is not a regular file.
	ErrFileNotFound = errors.New("config yaml file not found")

	// ErrIncludeCycle is returned when includes loop back to a file being
	// read.
	ErrIncludeCycle = errors.New("include cycle")

	// ErrNotMapping is returned when the top-level document is not a mapping.
	ErrNotMapping = errors.New("config yaml document is not a mapping")
)

// Read parses the YAML file at path into a map. A relative path that does not
// exist under the working directory is searched for in each parent directory
// in turn. An empty document yields an empty map.
func Read(path string) (map[string]any, error) {
	file, err := Locate(path)
	if err != nil {
		return nil, err
	}
	log.Debugf("reading config file: %s", file)

	r := &reader{reading: map[string]bool{}}
	root, err := r.parseFile(file)
	if err != nil {
		return nil, err
	}
	if root == nil {
		return map[string]any{}, nil
	}
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: %s", ErrNotMapping, file)
	}

	var out any
	if err := root.Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", file, err)
	}

	m, _ := normalize(out).(map[string]any)
	if m == nil {
		m = map[string]any{}
	}
	return m, nil
}

// Locate returns the absolute path of the config file named by path.
func Locate(path string) (string, error) {
	if isFile(path) {
		return filepath.Abs(path)
	}

	if !filepath.IsAbs(path) {
		dir, err := os.Getwd()
		if err != nil {
			return "", err
		}
		for {
			candidate := filepath.Join(dir, path)
			if isFile(candidate) {
				log.Debugf("found config file in parent directory: %s", candidate)
				return candidate, nil
			}
			parent := filepath.Dir(dir)
			if parent == dir {
				break
			}
			dir = parent
		}
	}

	return "", fmt.Errorf("%w on path: %s", ErrFileNotFound, path)
}

func isFile(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && fi.Mode().IsRegular()
}

// reader tracks the files currently being parsed to detect include cycles.
type reader struct {
	reading map[string]bool
}

// parseFile returns the root content node of file with includes expanded,
// or nil for an empty document.
func (r *reader) parseFile(file string) (*yaml.Node, error) {
	abs, err := filepath.Abs(file)
	if err != nil {
		return nil, err
	}
	if r.reading[abs] {
		return nil, fmt.Errorf("%w: %s", ErrIncludeCycle, abs)
	}
	r.reading[abs] = true
	defer delete(r.reading, abs)

	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", abs, err)
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", abs, err)
	}
	if len(doc.Content) == 0 {
		return nil, nil
	}

	root := doc.Content[0]
	if err := r.expand(root, filepath.Dir(abs)); err != nil {
		return nil, err
	}
	return root, nil
}

// expand replaces every !include scalar under n, in place.
func (r *reader) expand(n *yaml.Node, dir string) error {
	if n.Kind == yaml.ScalarNode && n.Tag == IncludeTag {
		target := n.Value
		if !filepath.IsAbs(target) {
			target = filepath.Join(dir, target)
		}
		log.Debugf("including %s", target)

		included, err := r.parseFile(target)
		if err != nil {
			return fmt.Errorf("failed to include %s (line %d): %w", n.Value, n.Line, err)
		}
		if included == nil {
			*n = yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
			return nil
		}
		*n = *included
		return nil
	}

	for _, c := range n.Content {
		if err := r.expand(c, dir); err != nil {
			return err
		}
	}
	return nil
}

// normalize converts maps with non-string keys, which yaml.v3 produces for
// e.g. integer keys, into map[string]any recursively.
func normalize(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, e := range t {
			t[k] = normalize(e)
		}
		return t
	case map[any]any:
		m := make(map[string]any, len(t))
		for k, e := range t {
			m[fmt.Sprint(k)] = normalize(e)
		}
		return m
	case []any:
		for i, e := range t {
			t[i] = normalize(e)
		}
		return t
	default:
		return v
	}
}
