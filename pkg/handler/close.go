package handler

import (
	"context"

	"github.com/buildbarn/bb-nfs41-daemon/pkg/nfs41"
	"github.com/buildbarn/bb-nfs41-daemon/pkg/upcall"
	"github.com/buildbarn/bb-nfs41-daemon/pkg/windowsext"
	"github.com/buildbarn/go-xdr/pkg/protocols/nfsv4"
	"github.com/sirupsen/logrus"
)

func (h *nfs41Handler) HandleClose(ctx context.Context, args *upcall.CloseArgs) error {
	logger := h.logger.WithFields(logrus.Fields{
		"state_handle": uint64(args.StateHandle),
		"remove":       args.Remove,
		"renamed":      args.Renamed,
	})
	// Take ownership of the open state, so that it cannot be
	// released by concurrent upcalls.
	state, err := h.pool.Release(args.StateHandle)
	if err != nil {
		logger.WithError(err).Error("Close of unknown open state")
		return err
	}

	// Layouts must be returned while the open state is still valid.
	if state.Type == nfsv4.NF4REG {
		h.layoutReleaser.ReleaseLayouts(ctx, state.Session, state, args.Remove)
	}

	var removeErr error
	if args.Remove {
		if args.Renamed {
			logger.WithField("name", state.File.Name).Debug("Removing a renamed file")
			if err := state.SillyRename(); err != nil {
				logger.WithError(err).Error("Failed to compute silly rename name")
				removeErr = windowsext.ToWin32Error(err, windowsext.ERROR_INTERNAL_ERROR)
			}
		}
		if removeErr == nil {
			if err := h.client.Remove(ctx, state.Session, &state.Parent, state.File.Name); err != nil {
				logger.WithError(err).Debug("Failed to remove file")
				removeErr = nfs41.ToWindowsError(err, windowsext.ERROR_INTERNAL_ERROR)
			}
		}
	}

	if state.DoClose {
		if err := h.client.Close(ctx, state.Session, state); err != nil {
			logger.WithError(err).Debug("Failed to close file")
			return nfs41.ToWindowsError(err, windowsext.ERROR_INTERNAL_ERROR)
		}
	}
	return removeErr
}
