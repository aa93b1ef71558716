package plyheader

import "strconv"

// Classify implements the PLY auto-detect rule: a PLY buffer is
// compressed iff it has 2 or 3 elements, a "chunk" element with
// exactly the 18 required float properties (in any order), a
// "vertex" element with exactly the 4 required uint packed
// properties (in any order), chunk_count == ceil(vertex_count/256),
// and, if a third "sh" element is present, it has a property count in
// {9,24,45}, all uchar, named f_rest_0..k-1 with no duplicates, and a
// row count equal to the vertex count.
//
// Classify only inspects the header; it never reads the payload.
func Classify(data []byte) (compressed bool, hdr *Header, err error) {
	hdr, err = Parse(data)
	if err != nil {
		return false, nil, err
	}

	if len(hdr.Elements) != 2 && len(hdr.Elements) != 3 {
		return false, hdr, nil
	}

	chunk, ok := hdr.FindElement("chunk")
	if !ok || !isChunkElement(chunk) {
		return false, hdr, nil
	}

	vertex, ok := hdr.FindElement("vertex")
	if !ok || !isPackedVertexElement(vertex) {
		return false, hdr, nil
	}

	expectedChunks := (vertex.Count + 255) / 256
	if chunk.Count != expectedChunks {
		return false, hdr, nil
	}

	if len(hdr.Elements) == 3 {
		sh, ok := hdr.FindElement("sh")
		if !ok || !isShElement(sh, vertex.Count) {
			return false, hdr, nil
		}
	}

	return true, hdr, nil
}

var chunkProps = []string{
	"min_x", "min_y", "min_z", "max_x", "max_y", "max_z",
	"min_scale_x", "min_scale_y", "min_scale_z", "max_scale_x", "max_scale_y", "max_scale_z",
	"min_r", "min_g", "min_b", "max_r", "max_g", "max_b",
}

func isChunkElement(e *Element) bool {
	if len(e.Properties) != 18 {
		return false
	}
	if !e.AllPropertiesOfType("float") {
		return false
	}
	return sameSet(e.PropertyNames(), chunkProps)
}

var vertexProps = []string{"packed_position", "packed_rotation", "packed_scale", "packed_color"}

func isPackedVertexElement(e *Element) bool {
	if len(e.Properties) != 4 {
		return false
	}
	if !e.AllPropertiesOfType("uint") {
		return false
	}
	return sameSet(e.PropertyNames(), vertexProps)
}

func isShElement(e *Element, vertexCount int) bool {
	n := len(e.Properties)
	if n != 9 && n != 24 && n != 45 {
		return false
	}
	if !e.AllPropertiesOfType("uchar") {
		return false
	}
	if e.Count != vertexCount {
		return false
	}
	seen := make(map[string]bool, n)
	for i, p := range e.Properties {
		want := restName(i)
		if p.Name != want {
			return false
		}
		if seen[p.Name] {
			return false
		}
		seen[p.Name] = true
	}
	return true
}

func restName(i int) string {
	return "f_rest_" + strconv.Itoa(i)
}

func sameSet(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	set := make(map[string]bool, len(a))
	for _, s := range a {
		set[s] = true
	}
	if len(set) != len(a) {
		return false // duplicate names in a
	}
	for _, s := range b {
		if !set[s] {
			return false
		}
	}
	return true
}
