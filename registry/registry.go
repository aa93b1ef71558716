// Package registry maps a normalized extension string to a reader and
// a writer, and dispatches conversions between them. A Registry is
// built once via New, populated via Register, and never mutated by a
// read/write/convert call.
package registry

import (
	"strings"

	"github.com/gsplatlib/gsplat-core"
)

// Registry holds the extension -> handler mappings. The zero value is
// not usable; construct one with New.
type Registry struct {
	readers map[string]gsplat.Reader
	writers map[string]gsplat.Writer
}

// New returns an empty Registry. Use Default for the built-in set of
// handlers.
func New() *Registry {
	return &Registry{
		readers: make(map[string]gsplat.Reader),
		writers: make(map[string]gsplat.Writer),
	}
}

// Register associates a reader and/or writer with one or more
// extensions. Either may be nil to register only the other side.
func (r *Registry) Register(exts []string, reader gsplat.Reader, writer gsplat.Writer) {
	for _, ext := range exts {
		ext = NormalizeExt(ext)
		if reader != nil {
			r.readers[ext] = reader
		}
		if writer != nil {
			r.writers[ext] = writer
		}
	}
}

// ReaderFor returns the reader registered for ext, if any.
func (r *Registry) ReaderFor(ext string) (gsplat.Reader, bool) {
	h, ok := r.readers[NormalizeExt(ext)]
	return h, ok
}

// WriterFor returns the writer registered for ext, if any.
func (r *Registry) WriterFor(ext string) (gsplat.Writer, bool) {
	h, ok := r.writers[NormalizeExt(ext)]
	return h, ok
}

// Extensions returns the set of extensions with at least a reader or
// a writer registered.
func (r *Registry) Extensions() []string {
	seen := make(map[string]bool)
	for ext := range r.readers {
		seen[ext] = true
	}
	for ext := range r.writers {
		seen[ext] = true
	}
	out := make([]string, 0, len(seen))
	for ext := range seen {
		out = append(out, ext)
	}
	return out
}

// NormalizeExt strips one leading dot and lower-cases ext. Callers
// that have a full path, not a bare extension, should use
// NormalizeFilename instead so the compressed.ply double-suffix is
// recognized.
func NormalizeExt(ext string) string {
	ext = strings.ToLower(ext)
	ext = strings.TrimPrefix(ext, ".")
	return ext
}

// NormalizeFilename derives the registry extension token from a file
// name: "compressed.ply" is recognized as a single token when the
// name ends in that double suffix (case-insensitive), otherwise the
// token is everything after the last dot.
func NormalizeFilename(name string) string {
	lower := strings.ToLower(name)
	if strings.HasSuffix(lower, ".compressed.ply") {
		return "compressed.ply"
	}
	idx := strings.LastIndexByte(name, '.')
	if idx < 0 {
		return ""
	}
	return NormalizeExt(name[idx+1:])
}

// Read dispatches to the reader registered for ext.
func (r *Registry) Read(data []byte, ext string, opts gsplat.Options) (*gsplat.GaussianCloudIR, string, error) {
	h, ok := r.ReaderFor(ext)
	if !ok {
		return nil, "", gsplat.NewError(ext, gsplat.KindCapability, "no reader registered for extension %q", NormalizeExt(ext))
	}
	return h.Read(data, opts)
}

// Write dispatches to the writer registered for ext.
func (r *Registry) Write(ir *gsplat.GaussianCloudIR, ext string, opts gsplat.Options) ([]byte, error) {
	h, ok := r.WriterFor(ext)
	if !ok {
		return nil, gsplat.NewError(ext, gsplat.KindCapability, "no writer registered for extension %q", NormalizeExt(ext))
	}
	return h.Write(ir, opts)
}

// Convert reads data as fromExt and writes the resulting IR as toExt.
func (r *Registry) Convert(data []byte, fromExt, toExt string, opts gsplat.Options) ([]byte, string, error) {
	ir, warning, err := r.Read(data, fromExt, opts)
	if err != nil {
		return nil, "", err
	}
	out, err := r.Write(ir, toExt, opts)
	if err != nil {
		return nil, "", err
	}
	return out, warning, nil
}
