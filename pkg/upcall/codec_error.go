package upcall

import (
	"fmt"

	"github.com/buildbarn/bb-nfs41-daemon/pkg/windowsext"
)

// CodecErrorKind describes why an upcall buffer could not be decoded,
// or why a reply could not be encoded.
type CodecErrorKind int

const (
	// CodecErrorTruncated indicates that a field did not fit in the
	// remainder of the request buffer.
	CodecErrorTruncated CodecErrorKind = iota
	// CodecErrorNameTooLong indicates that a pathname exceeds the
	// maximum path length.
	CodecErrorNameTooLong
	// CodecErrorNameInvalid indicates that a pathname is not valid
	// UTF-8, or contains a null byte.
	CodecErrorNameInvalid
	// CodecErrorBufferOverflow indicates that a reply did not fit
	// in the reply buffer.
	CodecErrorBufferOverflow
)

var codecErrorKindNames = [...]string{
	CodecErrorTruncated:      "Truncated",
	CodecErrorNameTooLong:    "NameTooLong",
	CodecErrorNameInvalid:    "NameInvalid",
	CodecErrorBufferOverflow: "BufferOverflow",
}

func (k CodecErrorKind) String() string {
	return codecErrorKindNames[k]
}

// CodecError is returned when upcall buffers cannot be decoded or
// encoded.
type CodecError struct {
	Kind  CodecErrorKind
	Field string
}

func (e *CodecError) Error() string {
	return fmt.Sprintf("%s: field %#v", e.Kind, e.Field)
}

// Win32Error returns the error code that is reported to the kernel.
func (e *CodecError) Win32Error() windowsext.Win32Error {
	switch e.Kind {
	case CodecErrorNameTooLong:
		return windowsext.ERROR_FILENAME_EXCED_RANGE
	case CodecErrorNameInvalid:
		return windowsext.ERROR_INVALID_NAME
	default:
		return windowsext.ERROR_BUFFER_OVERFLOW
	}
}
