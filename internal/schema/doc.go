// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package schema

import "strings"

// rawDocBuilder flattens an xsd:annotation/xsd:documentation subtree
// into plain text, trimming leading whitespace per line while
// preserving interior line breaks, per spec.md §4.2.
type rawDocBuilder struct {
	lines []string
}

func (b *rawDocBuilder) appendLines(prefix, text string) {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimLeft(line, " \t")
		if line == "" {
			continue
		}
		if prefix != "" {
			b.lines = append(b.lines, prefix+line)
		} else {
			b.lines = append(b.lines, line)
		}
	}
}

func (b *rawDocBuilder) plain(text string) { b.appendLines("", text) }
func (b *rawDocBuilder) brief(text string) { b.appendLines("@brief ", text) }
func (b *rawDocBuilder) see(href string)   { b.lines = append(b.lines, "@see "+href) }

func (b *rawDocBuilder) String() string {
	return strings.Join(b.lines, "\n")
}
