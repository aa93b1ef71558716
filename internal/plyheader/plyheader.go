// Package plyheader parses the shared ASCII header used by both the
// plain and compressed PLY codecs: a "ply" magic line, a
// binary_little_endian format line, any number of comment lines,
// one or more "element <name> <count>" blocks each followed by
// "property <type> <name>" lines, and a terminating "end_header"
// line.
package plyheader

import (
	"bufio"
	"bytes"
	"fmt"
	"strconv"
	"strings"
)

// Property is one declared "property <type> <name>" line.
type Property struct {
	Type string
	Name string
}

// Element is one "element <name> <count>" block and its properties.
type Element struct {
	Name       string
	Count      int
	Properties []Property
}

// Header is the parsed result. HeaderLen is the byte offset,
// measured from the start of the input, at which the binary payload
// begins (immediately after the "end_header\n" line).
type Header struct {
	Elements  []Element
	HeaderLen int
}

// Parse reads the ASCII header from data. It does not touch the
// payload past HeaderLen.
func Parse(data []byte) (*Header, error) {
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 4096), 1<<20)

	consumed := 0
	readLine := func() (string, bool) {
		if !scanner.Scan() {
			return "", false
		}
		line := scanner.Text()
		consumed += len(line) + 1
		return line, true
	}

	magic, ok := readLine()
	if !ok || strings.TrimSpace(magic) != "ply" {
		return nil, fmt.Errorf("bad magic: expected \"ply\"")
	}

	var formatLine string
	for {
		line, ok := readLine()
		if !ok {
			return nil, fmt.Errorf("truncated header: missing format line")
		}
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "comment") {
			continue
		}
		formatLine = trimmed
		break
	}
	if formatLine != "format binary_little_endian 1.0" {
		return nil, fmt.Errorf("unsupported format line: %q", formatLine)
	}

	h := &Header{}
	var cur *Element

	for {
		line, ok := readLine()
		if !ok {
			return nil, fmt.Errorf("truncated header: missing end_header")
		}
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "comment") {
			continue
		}
		if trimmed == "end_header" {
			h.HeaderLen = consumed
			return h, nil
		}

		fields := strings.Fields(trimmed)
		switch {
		case len(fields) >= 3 && fields[0] == "element":
			count, err := strconv.Atoi(fields[2])
			if err != nil {
				return nil, fmt.Errorf("bad element count: %q", trimmed)
			}
			if count < 0 {
				return nil, fmt.Errorf("negative element count: %d", count)
			}
			h.Elements = append(h.Elements, Element{Name: fields[1], Count: count})
			cur = &h.Elements[len(h.Elements)-1]

		case len(fields) >= 3 && fields[0] == "property":
			if cur == nil {
				return nil, fmt.Errorf("property line before any element: %q", trimmed)
			}
			cur.Properties = append(cur.Properties, Property{Type: fields[1], Name: fields[2]})

		default:
			return nil, fmt.Errorf("unrecognized header line: %q", trimmed)
		}
	}
}

// FindElement returns the element with the given name, if present.
func (h *Header) FindElement(name string) (*Element, bool) {
	for i := range h.Elements {
		if h.Elements[i].Name == name {
			return &h.Elements[i], true
		}
	}
	return nil, false
}

// PropertyNames returns the ordered list of property names.
func (e *Element) PropertyNames() []string {
	names := make([]string, len(e.Properties))
	for i, p := range e.Properties {
		names[i] = p.Name
	}
	return names
}

// AllPropertiesOfType reports whether every property in e has the
// given type.
func (e *Element) AllPropertiesOfType(t string) bool {
	for _, p := range e.Properties {
		if p.Type != t {
			return false
		}
	}
	return true
}
