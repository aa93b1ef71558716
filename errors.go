package gsplat

import "fmt"

// ErrorKind classifies why a codec operation failed.
type ErrorKind uint8

const (
	// KindStructural covers wrong magic/format, unexpected element or
	// property, size not matching record stride, truncated payload.
	KindStructural ErrorKind = iota
	// KindVersioning covers unsupported version bytes or unknown
	// compression modes.
	KindVersioning
	// KindSemantic covers invariant violations: negative point counts,
	// array-length mismatches, non-finite values under strict mode.
	KindSemantic
	// KindDependency covers failures surfaced by a third-party
	// collaborator: WebP decode, zlib inflate, ZIP central directory.
	KindDependency
	// KindCapability covers "no reader/writer registered for extension".
	KindCapability
)

// String returns the kind name.
func (k ErrorKind) String() string {
	switch k {
	case KindStructural:
		return "structural"
	case KindVersioning:
		return "versioning"
	case KindSemantic:
		return "semantic"
	case KindDependency:
		return "dependency"
	case KindCapability:
		return "capability"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(k))
	}
}

// CodecError is the structured failure type every codec returns
// across the public boundary. Codec is the short format tag ("ply",
// "ksplat", ...) that produced the failure.
type CodecError struct {
	Codec   string
	Kind    ErrorKind
	Message string
	Wrapped error
}

func (e *CodecError) Error() string {
	if e.Codec != "" {
		return fmt.Sprintf("%s: %s: %s", e.Codec, e.Kind, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap exposes the wrapped error, if any, for errors.Is/errors.As.
func (e *CodecError) Unwrap() error {
	return e.Wrapped
}

// NewError builds a CodecError with a formatted message.
func NewError(codec string, kind ErrorKind, format string, args ...any) *CodecError {
	return &CodecError{Codec: codec, Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// WrapError converts a third-party failure into a CodecError, per the
// error-handling policy: the wrapped library's message is prefixed
// with the codec name and classified with the kind the caller passes.
// It returns nil for a nil err.
func WrapError(codec string, kind ErrorKind, err error) *CodecError {
	if err == nil {
		return nil
	}
	return &CodecError{Codec: codec, Kind: kind, Message: err.Error(), Wrapped: err}
}
