package handler

import (
	"github.com/buildbarn/bb-nfs41-daemon/pkg/windowsext"
	"github.com/buildbarn/go-xdr/pkg/protocols/nfsv4"
)

// DispositionResult is returned by ResolveDisposition.
type DispositionResult struct {
	// Create indicates whether OPEN is to be called with
	// OPEN4_CREATE. For FILE_OVERWRITE and FILE_OVERWRITE_IF,
	// OPEN4_CREATE is used to truncate existing files.
	Create nfsv4.Opentype4
	// Informational error code that is returned to the redirector
	// alongside a successful open.
	Informational windowsext.Win32Error
}

// ResolveDisposition determines how a file should be opened, based on
// the create disposition provided by the redirector and whether the
// file was found during lookup. An error is returned if the disposition
// cannot be honoured.
func ResolveDisposition(disposition uint32, found bool) (DispositionResult, error) {
	switch disposition {
	case windowsext.FILE_SUPERSEDE:
		if !found {
			return DispositionResult{
				Create:        nfsv4.OPEN4_CREATE,
				Informational: windowsext.ERROR_FILE_NOT_FOUND,
			}, nil
		}
		// The file is truncated by the redirector.
		return DispositionResult{Create: nfsv4.OPEN4_NOCREATE}, nil
	case windowsext.FILE_CREATE:
		if found {
			return DispositionResult{}, windowsext.ERROR_FILE_EXISTS
		}
		return DispositionResult{Create: nfsv4.OPEN4_CREATE}, nil
	case windowsext.FILE_OPEN:
		if !found {
			return DispositionResult{}, windowsext.ERROR_FILE_NOT_FOUND
		}
		return DispositionResult{Create: nfsv4.OPEN4_NOCREATE}, nil
	case windowsext.FILE_OPEN_IF:
		if !found {
			return DispositionResult{
				Create:        nfsv4.OPEN4_CREATE,
				Informational: windowsext.ERROR_FILE_NOT_FOUND,
			}, nil
		}
		return DispositionResult{Create: nfsv4.OPEN4_NOCREATE}, nil
	case windowsext.FILE_OVERWRITE:
		if !found {
			return DispositionResult{}, windowsext.ERROR_FILE_NOT_FOUND
		}
		return DispositionResult{Create: nfsv4.OPEN4_CREATE}, nil
	case windowsext.FILE_OVERWRITE_IF:
		if !found {
			return DispositionResult{
				Create:        nfsv4.OPEN4_CREATE,
				Informational: windowsext.ERROR_FILE_NOT_FOUND,
			}, nil
		}
		return DispositionResult{Create: nfsv4.OPEN4_CREATE}, nil
	default:
		return DispositionResult{}, windowsext.ERROR_INVALID_PARAMETER
	}
}

// NeedsLookupOnly returns whether an open can be completed without
// calling OPEN or CREATE. This is the case for opens of existing
// directories, and for opens that only intend to access attributes.
func NeedsLookupOnly(fileType nfsv4.NfsFtype4, accessMask, disposition uint32) bool {
	if fileType == nfsv4.NF4DIR {
		return disposition == windowsext.FILE_OPEN || disposition == windowsext.FILE_OVERWRITE
	}
	return accessMask&(windowsext.FILE_READ_DATA|windowsext.FILE_WRITE_DATA|windowsext.FILE_APPEND_DATA|windowsext.FILE_EXECUTE) == 0
}
