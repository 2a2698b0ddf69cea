// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package cpacsxml

import (
	"encoding/xml"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// memNode is one element in the in-memory document tree: an ordered
// child list (siblings of the same tag keep their relative order) plus
// a flat attribute map and leaf text content.
type memNode struct {
	tag      string
	attrs    map[string]string
	attrKeys []string // insertion order, for deterministic serialization
	text     string
	children []*memNode
}

func newMemNode(tag string) *memNode {
	return &memNode{tag: tag, attrs: make(map[string]string)}
}

func (n *memNode) setAttr(name, value string) {
	if _, exists := n.attrs[name]; !exists {
		n.attrKeys = append(n.attrKeys, name)
	}
	n.attrs[name] = value
}

func (n *memNode) removeAttr(name string) {
	if _, exists := n.attrs[name]; !exists {
		return
	}
	delete(n.attrs, name)
	for i, k := range n.attrKeys {
		if k == name {
			n.attrKeys = append(n.attrKeys[:i], n.attrKeys[i+1:]...)
			break
		}
	}
}

func (n *memNode) childrenNamed(tag string) []*memNode {
	var out []*memNode
	for _, c := range n.children {
		if c.tag == tag {
			out = append(out, c)
		}
	}
	return out
}

// MemDocument is this repository's own reference implementation of
// Document: a plain node tree in memory, grounded on moznion-helium's
// Document/Node split (a minimal DOM, not a validating parser). It is
// exercised by this package's own tests (memdoc_test.go), not used as
// production XML tooling -- see spec.md's Out-of-scope note on the DOM
// facade.
type MemDocument struct {
	root *memNode
}

// NewMemDocument returns an empty document whose root element is named
// rootTag; ReadCPACS/WriteCPACS xpaths are always rooted at "/" +
// rootTag.
func NewMemDocument(rootTag string) *MemDocument {
	return &MemDocument{root: newMemNode(rootTag)}
}

// rawNode mirrors memNode for encoding/xml's generic any-element decode.
type rawNode struct {
	XMLName  xml.Name
	Attrs    []xml.Attr `xml:",any,attr"`
	Content  string     `xml:",chardata"`
	Children []rawNode  `xml:",any"`
}

// ParseMemDocument loads an XML document into a MemDocument.
func ParseMemDocument(data []byte) (*MemDocument, error) {
	var raw rawNode
	if err := xml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("cpacsxml: parse document: %w", err)
	}
	return &MemDocument{root: fromRaw(&raw)}, nil
}

func fromRaw(r *rawNode) *memNode {
	n := newMemNode(r.XMLName.Local)
	for _, a := range r.Attrs {
		n.setAttr(a.Name.Local, a.Value)
	}
	n.text = strings.TrimSpace(r.Content)
	for i := range r.Children {
		n.children = append(n.children, fromRaw(&r.Children[i]))
	}
	return n
}

// WriteXML serializes the document back to XML text.
func (d *MemDocument) WriteXML() ([]byte, error) {
	var b strings.Builder
	writeNode(&b, d.root, 0)
	return []byte(b.String()), nil
}

func writeNode(b *strings.Builder, n *memNode, depth int) {
	indent := strings.Repeat("  ", depth)
	b.WriteString(indent)
	b.WriteString("<" + n.tag)
	for _, k := range n.attrKeys {
		fmt.Fprintf(b, " %s=%q", k, n.attrs[k])
	}
	if len(n.children) == 0 && n.text == "" {
		b.WriteString("/>\n")
		return
	}
	b.WriteString(">")
	if len(n.children) == 0 {
		b.WriteString(xmlEscape(n.text))
		b.WriteString("</" + n.tag + ">\n")
		return
	}
	b.WriteString("\n")
	for _, c := range n.children {
		writeNode(b, c, depth+1)
	}
	b.WriteString(indent + "</" + n.tag + ">\n")
}

func xmlEscape(s string) string {
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	return r.Replace(s)
}

// pathSegment is one "/"-separated xpath component: a tag name with an
// optional 1-based "[n]" index.
type pathSegment struct {
	tag   string
	index int // 1-based; parsePath sets 1 when the segment has no "[n]"
}

func parsePath(xpath string) ([]pathSegment, error) {
	xpath = strings.Trim(xpath, "/")
	if xpath == "" {
		return nil, nil
	}
	parts := strings.Split(xpath, "/")
	segs := make([]pathSegment, 0, len(parts))
	for _, p := range parts {
		seg := pathSegment{tag: p, index: 1}
		if i := strings.IndexByte(p, '['); i >= 0 && strings.HasSuffix(p, "]") {
			n, err := strconv.Atoi(p[i+1 : len(p)-1])
			if err != nil {
				return nil, fmt.Errorf("cpacsxml: bad index in xpath segment %q", p)
			}
			seg.tag = p[:i]
			seg.index = n
		}
		segs = append(segs, seg)
	}
	return segs, nil
}

// resolve walks from the document root along xpath, returning the node
// found, or (nil, false) if any segment along the way is absent.
func (d *MemDocument) resolve(xpath string) (*memNode, bool) {
	segs, err := parsePath(xpath)
	if err != nil || len(segs) == 0 {
		return nil, false
	}
	if segs[0].tag != d.root.tag {
		return nil, false
	}
	cur := d.root
	for _, seg := range segs[1:] {
		matches := cur.childrenNamed(seg.tag)
		if seg.index < 1 || seg.index > len(matches) {
			return nil, false
		}
		cur = matches[seg.index-1]
	}
	return cur, true
}

// resolveOrCreate is like resolve but creates any missing segment along
// the way (appended as the last child of its parent), matching
// createElementIfNotExists semantics.
func (d *MemDocument) resolveOrCreate(xpath string) (*memNode, error) {
	segs, err := parsePath(xpath)
	if err != nil {
		return nil, err
	}
	if len(segs) == 0 || segs[0].tag != d.root.tag {
		return nil, fmt.Errorf("cpacsxml: xpath %q does not start at document root %q", xpath, d.root.tag)
	}
	cur := d.root
	for _, seg := range segs[1:] {
		matches := cur.childrenNamed(seg.tag)
		for len(matches) < seg.index {
			n := newMemNode(seg.tag)
			cur.children = append(cur.children, n)
			matches = append(matches, n)
		}
		cur = matches[seg.index-1]
	}
	return cur, nil
}

func splitParent(xpath string) (parent, tag string) {
	i := strings.LastIndex(xpath, "/")
	if i < 0 {
		return "", xpath
	}
	return xpath[:i], xpath[i+1:]
}

func (d *MemDocument) CheckAttribute(xpath, name string) bool {
	n, ok := d.resolve(xpath)
	if !ok {
		return false
	}
	_, ok = n.attrs[name]
	return ok
}

func (d *MemDocument) CheckElement(xpath string) bool {
	_, ok := d.resolve(xpath)
	return ok
}

func (d *MemDocument) GetAttribute(xpath, name string) (string, error) {
	n, ok := d.resolve(xpath)
	if !ok {
		return "", &MissingError{XPath: xpath}
	}
	v, ok := n.attrs[name]
	if !ok {
		return "", &MissingError{XPath: xpath + "/@" + name}
	}
	return v, nil
}

func (d *MemDocument) GetElement(xpath string) (string, error) {
	n, ok := d.resolve(xpath)
	if !ok {
		return "", &MissingError{XPath: xpath}
	}
	return n.text, nil
}

func (d *MemDocument) ReadElements(xpath string, min, max uint32) ([]string, error) {
	parent, tag := splitParent(xpath)
	p, ok := d.resolve(parent)
	if !ok {
		if min == 0 {
			return nil, nil
		}
		return nil, &CardinalityError{XPath: xpath, Min: min, Max: max, Got: 0}
	}
	matches := p.childrenNamed(tag)
	if uint32(len(matches)) < min || (max != 0 && uint32(len(matches)) > max) {
		return nil, &CardinalityError{XPath: xpath, Min: min, Max: max, Got: uint32(len(matches))}
	}
	out := make([]string, len(matches))
	for i, m := range matches {
		out[i] = m.text
	}
	return out, nil
}

func (d *MemDocument) CountChildren(xpath string) (int, error) {
	parent, tag := splitParent(xpath)
	p, ok := d.resolve(parent)
	if !ok {
		return 0, nil
	}
	return len(p.childrenNamed(tag)), nil
}

func (d *MemDocument) EnsureIndexedElement(xpath string, index int) error {
	parent, tag := splitParent(xpath)
	p, err := d.resolveOrCreate(parent)
	if err != nil {
		return err
	}
	matches := p.childrenNamed(tag)
	for len(matches) < index {
		n := newMemNode(tag)
		p.children = append(p.children, n)
		matches = append(matches, n)
	}
	return nil
}

func (d *MemDocument) SaveAttribute(xpath, name, value string) error {
	n, err := d.resolveOrCreate(xpath)
	if err != nil {
		return err
	}
	n.setAttr(name, value)
	return nil
}

func (d *MemDocument) SaveElement(xpath, value string) error {
	n, err := d.resolveOrCreate(xpath)
	if err != nil {
		return err
	}
	n.text = value
	return nil
}

func (d *MemDocument) SaveElements(xpath string, values []string) error {
	parent, tag := splitParent(xpath)
	p, err := d.resolveOrCreate(parent)
	if err != nil {
		return err
	}
	kept := p.children[:0]
	for _, c := range p.children {
		if c.tag != tag {
			kept = append(kept, c)
		}
	}
	p.children = kept
	for _, v := range values {
		n := newMemNode(tag)
		n.text = v
		p.children = append(p.children, n)
	}
	return nil
}

func (d *MemDocument) CreateElementIfNotExists(xpath string) error {
	_, err := d.resolveOrCreate(xpath)
	return err
}

func (d *MemDocument) CreateSequenceElementIfNotExists(xpath string, orderList []string) error {
	if d.CheckElement(xpath) {
		return nil
	}
	parent, tag := splitParent(xpath)
	p, err := d.resolveOrCreate(parent)
	if err != nil {
		return err
	}

	pos := -1
	for i, t := range orderList {
		if t == tag {
			pos = i
			break
		}
	}
	n := newMemNode(tag)
	if pos < 0 {
		p.children = append(p.children, n)
		return nil
	}

	insertAt := len(p.children)
	for i, c := range p.children {
		childPos := -1
		for j, t := range orderList {
			if t == c.tag {
				childPos = j
				break
			}
		}
		if childPos > pos {
			insertAt = i
			break
		}
	}
	p.children = append(p.children, nil)
	copy(p.children[insertAt+1:], p.children[insertAt:])
	p.children[insertAt] = n
	return nil
}

func (d *MemDocument) RemoveAttribute(xpath, name string) error {
	n, ok := d.resolve(xpath)
	if !ok {
		return nil
	}
	n.removeAttr(name)
	return nil
}

func (d *MemDocument) RemoveElement(xpath string) error {
	parent, _ := splitParent(xpath)
	segs, err := parsePath(xpath)
	if err != nil {
		return err
	}
	lastSeg := segs[len(segs)-1]
	p, ok := d.resolve(parent)
	if !ok {
		return nil
	}
	matches := p.childrenNamed(lastSeg.tag)
	if lastSeg.index < 1 || lastSeg.index > len(matches) {
		return nil
	}
	target := matches[lastSeg.index-1]
	for i, c := range p.children {
		if c == target {
			p.children = append(p.children[:i], p.children[i+1:]...)
			break
		}
	}
	return nil
}

var _ Document = (*MemDocument)(nil)

// sortedAttrNames is a small test helper exposed for deterministic
// assertions over a node's attribute set.
func sortedAttrNames(n *memNode) []string {
	keys := append([]string(nil), n.attrKeys...)
	sort.Strings(keys)
	return keys
}
