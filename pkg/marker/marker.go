// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package marker

import (
	"fmt"
	"regexp"
)

// Capture group names understood by FindAll.
const (
	GroupName            = "name"
	GroupSeparator       = "separator"
	GroupFirstSeparator  = "first_separator"
	GroupParam           = "param"
	GroupSecondSeparator = "second_separator"
	GroupDefault         = "default"
)

// Separator introduces a param or default inside a marker.
const Separator = ":"

// Env matches ${NAME} and ${NAME:default}.
var Env = MustNew("env",
	`\$\{`+
		`(?P<name>[^{}:]+)`+
		`(?P<separator>:?)`+
		`(?P<default>.*?)`+
		`\}`)

// Secret matches !{NAME:PARAM} and !{NAME:PARAM:default}. The param group may
// be empty so that a marker without its namespace is still recognised and can
// be rejected as malformed.
var Secret = MustNew("secret",
	`!\{`+
		`(?P<name>[^{}:]+)`+
		`(?P<first_separator>:?)`+
		`(?P<param>[^{}:]*)`+
		`(?P<second_separator>:?)`+
		`(?P<default>.*?)`+
		`\}`)

// Marker is one placeholder occurrence. Start and End are byte offsets of
// the whole marker, End exclusive.
type Marker struct {
	Start      int
	End        int
	Name       string
	HasParam   bool
	Param      string
	HasDefault bool
	Default    string
}

// Text returns the marker as it appears in s.
func (m Marker) Text(s string) string {
	return s[m.Start:m.End]
}

// Pattern is the compiled grammar of one marker family.
type Pattern struct {
	family string
	re     *regexp.Regexp

	name, sep, firstSep, param, secondSep, def int
}

// New compiles expr into a Pattern. The expression must define a name group.
func New(family, expr string) (*Pattern, error) {
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("failed to compile %s marker pattern: %w", family, err)
	}

	p := &Pattern{
		family:    family,
		re:        re,
		name:      re.SubexpIndex(GroupName),
		sep:       re.SubexpIndex(GroupSeparator),
		firstSep:  re.SubexpIndex(GroupFirstSeparator),
		param:     re.SubexpIndex(GroupParam),
		secondSep: re.SubexpIndex(GroupSecondSeparator),
		def:       re.SubexpIndex(GroupDefault),
	}
	if p.name < 0 {
		return nil, fmt.Errorf("%s marker pattern has no %q group", family, GroupName)
	}
	return p, nil
}

// MustNew is New that panics on error. Intended for package-level patterns.
func MustNew(family, expr string) *Pattern {
	p, err := New(family, expr)
	if err != nil {
		panic(err)
	}
	return p
}

// Family returns the family name the pattern was declared with.
func (p *Pattern) Family() string {
	return p.family
}

// Regexp exposes the compiled grammar.
func (p *Pattern) Regexp() *regexp.Regexp {
	return p.re
}

// String returns the source expression.
func (p *Pattern) String() string {
	return p.re.String()
}

// Matches reports whether text contains at least one marker of this family.
func (p *Pattern) Matches(text string) bool {
	return p.re.MatchString(text)
}

// FindAll returns every non-overlapping marker in text, left to right.
//
// With a first_separator group (param-carrying families) the param is present
// when that separator was captured and the param group is non-empty, and the
// default is introduced by second_separator. Otherwise the default is
// introduced by separator.
func (p *Pattern) FindAll(text string) []Marker {
	all := p.re.FindAllStringSubmatchIndex(text, -1)
	if len(all) == 0 {
		return nil
	}

	markers := make([]Marker, 0, len(all))
	for _, loc := range all {
		m := Marker{
			Start: loc[0],
			End:   loc[1],
			Name:  group(text, loc, p.name),
		}

		defaultSep := p.sep
		if p.firstSep >= 0 {
			m.Param = group(text, loc, p.param)
			m.HasParam = group(text, loc, p.firstSep) == Separator && m.Param != ""
			defaultSep = p.secondSep
		} else if p.param >= 0 {
			m.Param = group(text, loc, p.param)
			m.HasParam = m.Param != ""
		}

		m.HasDefault = group(text, loc, defaultSep) == Separator
		if m.HasDefault {
			m.Default = group(text, loc, p.def)
		}

		markers = append(markers, m)
	}
	return markers
}

// group returns the text of capture group i, or "" when the group is absent
// from the pattern or did not participate in the match.
func group(text string, loc []int, i int) string {
	if i < 0 || 2*i+1 >= len(loc) || loc[2*i] < 0 {
		return ""
	}
	return text[loc[2*i]:loc[2*i+1]]
}
