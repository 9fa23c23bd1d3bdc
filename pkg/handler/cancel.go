package handler

import (
	"context"

	"github.com/buildbarn/bb-nfs41-daemon/pkg/nfs41"
	"github.com/buildbarn/bb-nfs41-daemon/pkg/upcall"
	"github.com/buildbarn/bb-nfs41-daemon/pkg/windowsext"
	"github.com/sirupsen/logrus"
)

func (h *nfs41Handler) CancelOpen(ctx context.Context, args *upcall.OpenArgs, reply *upcall.OpenReply) error {
	// Opens that failed or were reparsed have no open state.
	if reply == nil || reply.StateHandle == 0 {
		return nil
	}

	logger := h.logger.WithFields(logrus.Fields{
		"path":         args.Path,
		"state_handle": uint64(reply.StateHandle),
	})
	// Take ownership of the open state, so that it cannot be
	// released by concurrent upcalls.
	state, err := h.pool.Release(reply.StateHandle)
	if err != nil {
		logger.WithError(err).Error("Cancellation of unknown open state")
		return err
	}

	if state.DoClose {
		err = h.client.Close(ctx, state.Session, state)
	} else if reply.Created {
		err = h.client.Remove(ctx, state.Session, &state.Parent, state.File.Name)
	}
	if err != nil {
		logger.WithError(err).Warn("Failed to undo open")
		return nfs41.ToWindowsError(err, windowsext.ERROR_INTERNAL_ERROR)
	}
	return nil
}
