// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package driller

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

var segmentRE = regexp.MustCompile(`^([a-zA-Z0-9_-]+)(\[(\d+)\])?$`)

// Driller navigates jsonData along path. Each dot separated segment is a key,
// optionally followed by [n] to index into an array. The zero Result is
// returned for an invalid path or an out of range index.
func Driller(jsonData string, path string) gjson.Result {
	if !gjson.Valid(jsonData) {
		return gjson.Result{}
	}
	current := gjson.Parse(jsonData)

	for _, p := range strings.Split(path, ".") {
		matches := segmentRE.FindStringSubmatch(p)
		if len(matches) == 0 {
			return gjson.Result{}
		}

		val := current.Get(matches[1])
		if matches[3] != "" {
			index, err := strconv.Atoi(matches[3])
			if err != nil || !val.IsArray() {
				return gjson.Result{}
			}
			arr := val.Array()
			if index >= len(arr) {
				return gjson.Result{}
			}
			val = arr[index]
		}

		if !val.Exists() {
			return gjson.Result{}
		}
		current = val
	}

	return current
}

// Select returns the value at path as a string. Scalars are rendered without
// quotes, objects and arrays as their raw JSON. found is false when the path
// does not resolve or resolves to null.
func Select(jsonData string, path string) (value string, found bool) {
	r := Driller(jsonData, path)
	if !r.Exists() || r.Type == gjson.Null {
		return "", false
	}
	if r.IsObject() || r.IsArray() {
		return r.Raw, true
	}
	return r.String(), true
}
