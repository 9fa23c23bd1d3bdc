package upcall

import (
	"encoding/binary"
	"strings"
	"unicode/utf8"

	"github.com/buildbarn/bb-nfs41-daemon/pkg/nfs41"
)

// The redirector exchanges plain C structures with the daemon, in the
// native byte order of the host. All supported Windows architectures
// are little endian.
var byteOrder = binary.LittleEndian

// reader for upcall request buffers. Every read checks that the field
// fits in the remainder of the buffer.
type reader struct {
	buffer []byte
}

func (r *reader) next(field string, size int) ([]byte, error) {
	if len(r.buffer) < size {
		return nil, &CodecError{Kind: CodecErrorTruncated, Field: field}
	}
	b := r.buffer[:size]
	r.buffer = r.buffer[size:]
	return b, nil
}

func (r *reader) readBool(field string) (bool, error) {
	b, err := r.next(field, 1)
	if err != nil {
		return false, err
	}
	return b[0] != 0, nil
}

func (r *reader) readUint16(field string) (uint16, error) {
	b, err := r.next(field, 2)
	if err != nil {
		return 0, err
	}
	return byteOrder.Uint16(b), nil
}

func (r *reader) readUint32(field string) (uint32, error) {
	b, err := r.next(field, 4)
	if err != nil {
		return 0, err
	}
	return byteOrder.Uint32(b), nil
}

func (r *reader) readUint64(field string) (uint64, error) {
	b, err := r.next(field, 8)
	if err != nil {
		return 0, err
	}
	return byteOrder.Uint64(b), nil
}

// readName reads a pathname. Pathnames are prefixed with a 16-bit
// length, which includes the null terminator.
func (r *reader) readName(field string) (string, error) {
	length, err := r.readUint16(field)
	if err != nil {
		return "", err
	}
	b, err := r.next(field, int(length))
	if err != nil {
		return "", err
	}
	name := strings.TrimRight(string(b), "\x00")
	if len(name) > nfs41.MaximumPathLength {
		return "", &CodecError{Kind: CodecErrorNameTooLong, Field: field}
	}
	if !utf8.ValidString(name) || strings.IndexByte(name, 0) >= 0 {
		return "", &CodecError{Kind: CodecErrorNameInvalid, Field: field}
	}
	return name, nil
}

// writer of upcall reply buffers. The buffer has a fixed size, as it
// is provided by the redirector.
type writer struct {
	buffer []byte
	offset int
}

func (w *writer) next(field string, size int) ([]byte, error) {
	if len(w.buffer)-w.offset < size {
		return nil, &CodecError{Kind: CodecErrorBufferOverflow, Field: field}
	}
	b := w.buffer[w.offset : w.offset+size]
	w.offset += size
	return b, nil
}

func (w *writer) writeBool(field string, v bool) error {
	b, err := w.next(field, 1)
	if err != nil {
		return err
	}
	b[0] = boolToByte(v)
	return nil
}

func (w *writer) writeUint16(field string, v uint16) error {
	b, err := w.next(field, 2)
	if err != nil {
		return err
	}
	byteOrder.PutUint16(b, v)
	return nil
}

func (w *writer) writeUint32(field string, v uint32) error {
	b, err := w.next(field, 4)
	if err != nil {
		return err
	}
	byteOrder.PutUint32(b, v)
	return nil
}

func (w *writer) writeUint64(field string, v uint64) error {
	b, err := w.next(field, 8)
	if err != nil {
		return err
	}
	byteOrder.PutUint64(b, v)
	return nil
}

func (w *writer) writeBytes(field string, v []byte) error {
	b, err := w.next(field, len(v))
	if err != nil {
		return err
	}
	copy(b, v)
	return nil
}
