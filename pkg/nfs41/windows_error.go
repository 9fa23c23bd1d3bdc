package nfs41

import (
	"github.com/buildbarn/bb-nfs41-daemon/pkg/windowsext"
	"github.com/buildbarn/go-xdr/pkg/protocols/nfsv4"
)

var nfsv4StatusToWindowsError = map[nfsv4.Nfsstat4]windowsext.Win32Error{
	nfsv4.NFS4ERR_PERM:         windowsext.ERROR_ACCESS_DENIED,
	nfsv4.NFS4ERR_NOENT:        windowsext.ERROR_FILE_NOT_FOUND,
	nfsv4.NFS4ERR_IO:           windowsext.ERROR_NET_WRITE_FAULT,
	nfsv4.NFS4ERR_NXIO:         windowsext.ERROR_FILE_INVALID,
	nfsv4.NFS4ERR_ACCESS:       windowsext.ERROR_ACCESS_DENIED,
	nfsv4.NFS4ERR_EXIST:        windowsext.ERROR_FILE_EXISTS,
	nfsv4.NFS4ERR_NOTDIR:       windowsext.ERROR_DIRECTORY,
	nfsv4.NFS4ERR_ISDIR:        windowsext.ERROR_ACCESS_DENIED,
	nfsv4.NFS4ERR_INVAL:        windowsext.ERROR_INVALID_PARAMETER,
	nfsv4.NFS4ERR_NOSPC:        windowsext.ERROR_DISK_FULL,
	nfsv4.NFS4ERR_ROFS:         windowsext.ERROR_NETWORK_ACCESS_DENIED,
	nfsv4.NFS4ERR_NAMETOOLONG:  windowsext.ERROR_FILENAME_EXCED_RANGE,
	nfsv4.NFS4ERR_NOTEMPTY:     windowsext.ERROR_DIR_NOT_EMPTY,
	nfsv4.NFS4ERR_STALE:        windowsext.ERROR_INVALID_HANDLE,
	nfsv4.NFS4ERR_BADHANDLE:    windowsext.ERROR_INVALID_HANDLE,
	nfsv4.NFS4ERR_FHEXPIRED:    windowsext.ERROR_INVALID_HANDLE,
	nfsv4.NFS4ERR_SHARE_DENIED: windowsext.ERROR_SHARING_VIOLATION,
	nfsv4.NFS4ERR_LOCKED:       windowsext.ERROR_LOCK_VIOLATION,
	nfsv4.NFS4ERR_DENIED:       windowsext.ERROR_LOCK_VIOLATION,
	nfsv4.NFS4ERR_BADCHAR:      windowsext.ERROR_INVALID_NAME,
	nfsv4.NFS4ERR_BADNAME:      windowsext.ERROR_INVALID_NAME,
	nfsv4.NFS4ERR_BADXDR:       windowsext.ERROR_BAD_NET_RESP,
}

// ToWindowsError converts an error returned by Client, or by any of
// the helpers in this package, to the Win32 error code that is
// reported to the kernel. Statuses for which no translation exists are
// reported as defaultError.
func ToWindowsError(err error, defaultError windowsext.Win32Error) windowsext.Win32Error {
	if err == nil {
		return windowsext.ERROR_SUCCESS
	}
	if st, ok := StatusOf(err); ok {
		if windowsError, ok := nfsv4StatusToWindowsError[st]; ok {
			return windowsError
		}
		return defaultError
	}
	return windowsext.ToWin32Error(err, defaultError)
}
