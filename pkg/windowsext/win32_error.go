package windowsext

import (
	"errors"
	"fmt"
)

// Win32Error is an error code that is returned to the redirector. The
// kernel converts it to an NTSTATUS before completing the I/O request.
type Win32Error uint32

// Win32 error codes produced by the daemon.
const (
	ERROR_SUCCESS               Win32Error = 0
	ERROR_FILE_NOT_FOUND        Win32Error = 2
	ERROR_ACCESS_DENIED         Win32Error = 5
	ERROR_INVALID_HANDLE        Win32Error = 6
	ERROR_NOT_ENOUGH_MEMORY     Win32Error = 8
	ERROR_SHARING_VIOLATION     Win32Error = 32
	ERROR_LOCK_VIOLATION        Win32Error = 33
	ERROR_NOT_SUPPORTED         Win32Error = 50
	ERROR_BAD_NET_RESP          Win32Error = 58
	ERROR_NETWORK_ACCESS_DENIED Win32Error = 65
	ERROR_FILE_EXISTS           Win32Error = 80
	ERROR_INVALID_PARAMETER     Win32Error = 87
	ERROR_NET_WRITE_FAULT       Win32Error = 88
	ERROR_BUFFER_OVERFLOW       Win32Error = 111
	ERROR_DISK_FULL             Win32Error = 112
	ERROR_INVALID_NAME          Win32Error = 123
	ERROR_DIR_NOT_EMPTY         Win32Error = 145
	ERROR_FILENAME_EXCED_RANGE  Win32Error = 206
	ERROR_DIRECTORY             Win32Error = 267
	ERROR_REPARSE               Win32Error = 741
	ERROR_FILE_INVALID          Win32Error = 1006
	ERROR_TOO_MANY_LINKS        Win32Error = 1142
	ERROR_INTERNAL_ERROR        Win32Error = 1359
)

var win32ErrorNames = map[Win32Error]string{
	ERROR_SUCCESS:               "ERROR_SUCCESS",
	ERROR_FILE_NOT_FOUND:        "ERROR_FILE_NOT_FOUND",
	ERROR_ACCESS_DENIED:         "ERROR_ACCESS_DENIED",
	ERROR_INVALID_HANDLE:        "ERROR_INVALID_HANDLE",
	ERROR_NOT_ENOUGH_MEMORY:     "ERROR_NOT_ENOUGH_MEMORY",
	ERROR_SHARING_VIOLATION:     "ERROR_SHARING_VIOLATION",
	ERROR_LOCK_VIOLATION:        "ERROR_LOCK_VIOLATION",
	ERROR_NOT_SUPPORTED:         "ERROR_NOT_SUPPORTED",
	ERROR_BAD_NET_RESP:          "ERROR_BAD_NET_RESP",
	ERROR_NETWORK_ACCESS_DENIED: "ERROR_NETWORK_ACCESS_DENIED",
	ERROR_FILE_EXISTS:           "ERROR_FILE_EXISTS",
	ERROR_INVALID_PARAMETER:     "ERROR_INVALID_PARAMETER",
	ERROR_NET_WRITE_FAULT:       "ERROR_NET_WRITE_FAULT",
	ERROR_BUFFER_OVERFLOW:       "ERROR_BUFFER_OVERFLOW",
	ERROR_DISK_FULL:             "ERROR_DISK_FULL",
	ERROR_INVALID_NAME:          "ERROR_INVALID_NAME",
	ERROR_DIR_NOT_EMPTY:         "ERROR_DIR_NOT_EMPTY",
	ERROR_FILENAME_EXCED_RANGE:  "ERROR_FILENAME_EXCED_RANGE",
	ERROR_DIRECTORY:             "ERROR_DIRECTORY",
	ERROR_REPARSE:               "ERROR_REPARSE",
	ERROR_FILE_INVALID:          "ERROR_FILE_INVALID",
	ERROR_TOO_MANY_LINKS:        "ERROR_TOO_MANY_LINKS",
	ERROR_INTERNAL_ERROR:        "ERROR_INTERNAL_ERROR",
}

func (e Win32Error) Error() string {
	if name, ok := win32ErrorNames[e]; ok {
		return name
	}
	return fmt.Sprintf("Win32 error %d", uint32(e))
}

// Win32Error returns the error code itself. This permits ToWin32Error()
// to treat Win32Error like any other error type that carries a code.
func (e Win32Error) Win32Error() Win32Error {
	return e
}

// Win32ErrorCarrier is implemented by error types that know which Win32
// error code should be reported to the kernel.
type Win32ErrorCarrier interface {
	Win32Error() Win32Error
}

// ToWin32Error converts an arbitrary error to the code that is returned
// to the kernel. Errors that don't carry a code of their own are
// reported as defaultError.
func ToWin32Error(err error, defaultError Win32Error) Win32Error {
	if err == nil {
		return ERROR_SUCCESS
	}
	var carrier Win32ErrorCarrier
	if errors.As(err, &carrier) {
		return carrier.Win32Error()
	}
	return defaultError
}
