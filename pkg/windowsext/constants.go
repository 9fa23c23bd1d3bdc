package windowsext

// This file contains the subset of the NT I/O manager's constants that
// appear in upcalls forwarded by the redirector. They are declared here
// instead of being taken from golang.org/x/sys/windows, as the daemon's
// request handling logic is built and tested on non-Windows hosts too.

// Access mask bits, as provided to IRP_MJ_CREATE.
const (
	FILE_READ_DATA        = 0x00000001
	FILE_LIST_DIRECTORY   = 0x00000001
	FILE_WRITE_DATA       = 0x00000002
	FILE_ADD_FILE         = 0x00000002
	FILE_APPEND_DATA      = 0x00000004
	FILE_READ_EA          = 0x00000008
	FILE_WRITE_EA         = 0x00000010
	FILE_EXECUTE          = 0x00000020
	FILE_TRAVERSE         = 0x00000020
	FILE_READ_ATTRIBUTES  = 0x00000080
	FILE_WRITE_ATTRIBUTES = 0x00000100
	DELETE                = 0x00010000
	READ_CONTROL          = 0x00020000
	WRITE_DAC             = 0x00040000
	WRITE_OWNER           = 0x00080000
	SYNCHRONIZE           = 0x00100000
)

// Share access bits.
const (
	FILE_SHARE_READ   = 0x00000001
	FILE_SHARE_WRITE  = 0x00000002
	FILE_SHARE_DELETE = 0x00000004
)

// Create dispositions.
const (
	FILE_SUPERSEDE    = 0x00000000
	FILE_OPEN         = 0x00000001
	FILE_CREATE       = 0x00000002
	FILE_OPEN_IF      = 0x00000003
	FILE_OVERWRITE    = 0x00000004
	FILE_OVERWRITE_IF = 0x00000005
)

// Create options.
const (
	FILE_DIRECTORY_FILE     = 0x00000001
	FILE_WRITE_THROUGH      = 0x00000002
	FILE_SEQUENTIAL_ONLY    = 0x00000004
	FILE_NON_DIRECTORY_FILE = 0x00000040
	FILE_DELETE_ON_CLOSE    = 0x00001000
	FILE_OPEN_REPARSE_POINT = 0x00200000
)

// File attributes.
const (
	FILE_ATTRIBUTE_READONLY      = 0x00000001
	FILE_ATTRIBUTE_HIDDEN        = 0x00000002
	FILE_ATTRIBUTE_SYSTEM        = 0x00000004
	FILE_ATTRIBUTE_DIRECTORY     = 0x00000010
	FILE_ATTRIBUTE_ARCHIVE       = 0x00000020
	FILE_ATTRIBUTE_NORMAL        = 0x00000080
	FILE_ATTRIBUTE_REPARSE_POINT = 0x00000400
)

// DispositionName returns a human readable name of a create
// disposition, for use in log messages.
func DispositionName(disposition uint32) string {
	switch disposition {
	case FILE_SUPERSEDE:
		return "FILE_SUPERSEDE"
	case FILE_OPEN:
		return "FILE_OPEN"
	case FILE_CREATE:
		return "FILE_CREATE"
	case FILE_OPEN_IF:
		return "FILE_OPEN_IF"
	case FILE_OVERWRITE:
		return "FILE_OVERWRITE"
	case FILE_OVERWRITE_IF:
		return "FILE_OVERWRITE_IF"
	default:
		return "UNKNOWN"
	}
}
