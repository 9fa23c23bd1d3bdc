package nfs41

import (
	"errors"
	"fmt"

	"github.com/buildbarn/go-xdr/pkg/protocols/nfsv4"
)

// StatusError is returned by Client when the server completed an
// operation with a status other than NFS4_OK.
type StatusError nfsv4.Nfsstat4

// ErrReparse is returned by Client.Lookup() if one of the
// intermediate components of the path is a symbolic link.
var ErrReparse error = StatusError(nfsv4.NFS4ERR_SYMLINK)

func (e StatusError) Error() string {
	if name, ok := nfsv4.Nfsstat4_name[nfsv4.Nfsstat4(e)]; ok {
		return name
	}
	return fmt.Sprintf("NFSv4 status %d", int32(e))
}

// Status returns the NFSv4 status code.
func (e StatusError) Status() nfsv4.Nfsstat4 {
	return nfsv4.Nfsstat4(e)
}

// StatusOf extracts the NFSv4 status code from an error returned by
// Client, if any.
func StatusOf(err error) (nfsv4.Nfsstat4, bool) {
	var statusError StatusError
	if errors.As(err, &statusError) {
		return statusError.Status(), true
	}
	return nfsv4.NFS4_OK, false
}

// IsNotFound returns whether the error indicates that the file does
// not exist.
func IsNotFound(err error) bool {
	st, ok := StatusOf(err)
	return ok && st == nfsv4.NFS4ERR_NOENT
}
