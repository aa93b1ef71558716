package gsplat

// Options configures a single read or write call. Strict elevates
// validation warnings to failures and triggers the finite-value scan
// (see Validate); it has no effect on writers, which never warn.
type Options struct {
	Strict bool
}

// Reader reads a byte buffer into an IR. A non-empty warning string
// may be returned alongside a successful read; it is never returned
// from a failed read.
type Reader interface {
	Read(data []byte, opts Options) (ir *GaussianCloudIR, warning string, err error)
}

// Writer serializes an IR into a byte buffer for one format.
type Writer interface {
	Write(ir *GaussianCloudIR, opts Options) ([]byte, error)
}

// ReaderFunc adapts a plain function to the Reader interface.
type ReaderFunc func(data []byte, opts Options) (*GaussianCloudIR, string, error)

// Read implements Reader.
func (f ReaderFunc) Read(data []byte, opts Options) (*GaussianCloudIR, string, error) {
	return f(data, opts)
}

// WriterFunc adapts a plain function to the Writer interface.
type WriterFunc func(ir *GaussianCloudIR, opts Options) ([]byte, error)

// Write implements Writer.
func (f WriterFunc) Write(ir *GaussianCloudIR, opts Options) ([]byte, error) {
	return f(ir, opts)
}
