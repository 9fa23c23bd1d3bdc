package handler

import (
	"context"

	"github.com/buildbarn/bb-nfs41-daemon/pkg/nfs41"
	"github.com/buildbarn/bb-nfs41-daemon/pkg/windowsext"
	"github.com/buildbarn/go-xdr/pkg/protocols/nfsv4"
	"github.com/sirupsen/logrus"
)

// AccessToAllowDeny converts the access mask and share access provided
// to IRP_MJ_CREATE to the share_access and share_deny fields of OPEN.
func AccessToAllowDeny(accessMask, accessMode uint32) (allow, deny uint32) {
	if accessMask&windowsext.FILE_READ_DATA != 0 {
		allow |= nfsv4.OPEN4_SHARE_ACCESS_READ
	}
	if accessMask&(windowsext.FILE_WRITE_DATA|windowsext.FILE_APPEND_DATA) != 0 {
		allow |= nfsv4.OPEN4_SHARE_ACCESS_WRITE
	}
	if allow == 0 {
		// OPEN requires at least one access bit to be set.
		allow = nfsv4.OPEN4_SHARE_ACCESS_READ
	}

	deny = nfsv4.OPEN4_SHARE_DENY_NONE
	if accessMode&windowsext.FILE_SHARE_READ == 0 {
		deny |= nfsv4.OPEN4_SHARE_DENY_READ
	}
	if accessMode&windowsext.FILE_SHARE_WRITE == 0 {
		deny |= nfsv4.OPEN4_SHARE_DENY_WRITE
	}
	return
}

// checkExecuteAccess calls ACCESS to determine whether the user is
// permitted to execute the file. Servers that are unable to verify
// execute access are trusted to grant it if read access is granted.
func checkExecuteAccess(ctx context.Context, client nfs41.Client, state *nfs41.OpenState, logger logrus.FieldLogger) error {
	supported, granted, err := client.Access(ctx, state.Session, &state.File, nfsv4.ACCESS4_EXECUTE|nfsv4.ACCESS4_READ)
	if err != nil {
		logger.WithError(err).Debug("Failed to check execute access")
		return windowsext.ERROR_ACCESS_DENIED
	}
	if supported&nfsv4.ACCESS4_EXECUTE == 0 {
		if supported&nfsv4.ACCESS4_READ == 0 || granted&nfsv4.ACCESS4_READ == 0 {
			logger.Debug("Server cannot verify execute access, and user does not have read access")
			return windowsext.ERROR_ACCESS_DENIED
		}
		return nil
	}
	if granted&nfsv4.ACCESS4_EXECUTE == 0 {
		logger.Debug("User does not have execute access to file")
		return windowsext.ERROR_ACCESS_DENIED
	}
	return nil
}
