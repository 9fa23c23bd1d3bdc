package upcall

import (
	"context"
	"fmt"

	"github.com/buildbarn/bb-nfs41-daemon/pkg/windowsext"
	"github.com/sirupsen/logrus"
)

// Opcode of an upcall, as assigned by the redirector.
type Opcode uint32

const (
	// OpcodeOpen corresponds to NFS41_OPEN.
	OpcodeOpen Opcode = 2
	// OpcodeClose corresponds to NFS41_CLOSE.
	OpcodeClose Opcode = 3
)

func (o Opcode) String() string {
	switch o {
	case OpcodeOpen:
		return "NFS41_OPEN"
	case OpcodeClose:
		return "NFS41_CLOSE"
	default:
		return fmt.Sprintf("opcode %d", uint32(o))
	}
}

// Upcall holds the state of a single upcall while it is being
// processed by Dispatcher.
type Upcall struct {
	Opcode Opcode

	Open      *OpenArgs
	OpenReply *OpenReply
	Close     *CloseArgs

	// Status is the error code that is returned to the redirector.
	Status windowsext.Win32Error
	// LastError accompanies a successful status. It is set to
	// ERROR_REPARSE if the redirector needs to reparse the open.
	LastError windowsext.Win32Error
}

// Dispatcher routes upcalls to a Handler, based on their opcode. For
// each upcall, Parse(), Handle() and Marshal() are called in that
// order. Cancel() may be called afterwards if the reply could not be
// delivered.
type Dispatcher struct {
	handler Handler
	logger  logrus.FieldLogger
}

// NewDispatcher creates a Dispatcher that forwards upcalls to a
// Handler.
func NewDispatcher(handler Handler, logger logrus.FieldLogger) *Dispatcher {
	return &Dispatcher{
		handler: handler,
		logger:  logger,
	}
}

// Parse the payload of an upcall.
func (d *Dispatcher) Parse(opcode Opcode, buffer []byte) (*Upcall, error) {
	u := &Upcall{Opcode: opcode}
	switch opcode {
	case OpcodeOpen:
		args, err := DecodeOpenArgs(buffer)
		if err != nil {
			return nil, err
		}
		d.logger.WithFields(logrus.Fields{
			"path":          args.Path,
			"access_mask":   fmt.Sprintf("%#x", args.AccessMask),
			"access_mode":   fmt.Sprintf("%#x", args.AccessMode),
			"file_attrs":    fmt.Sprintf("%#x", args.FileAttributes),
			"create_opts":   fmt.Sprintf("%#x", args.CreateOptions),
			"disposition":   windowsext.DispositionName(args.Disposition),
			"root":          fmt.Sprintf("%#x", uint64(args.Root)),
			"open_owner_id": args.OpenOwnerID,
			"mode":          fmt.Sprintf("%o", args.Mode),
		}).Debug("Parsed NFS41_OPEN")
		u.Open = args
	case OpcodeClose:
		args, err := DecodeCloseArgs(buffer)
		if err != nil {
			return nil, err
		}
		d.logger.WithFields(logrus.Fields{
			"root":         fmt.Sprintf("%#x", uint64(args.Root)),
			"state_handle": fmt.Sprintf("%#x", uint64(args.StateHandle)),
			"remove":       args.Remove,
			"renamed":      args.Renamed,
			"path":         args.Path,
		}).Debug("Parsed NFS41_CLOSE")
		u.Close = args
	default:
		return nil, windowsext.ERROR_NOT_SUPPORTED
	}
	return u, nil
}

// Handle a parsed upcall, returning the status that is to be reported
// to the redirector.
func (d *Dispatcher) Handle(ctx context.Context, u *Upcall) windowsext.Win32Error {
	var err error
	switch u.Opcode {
	case OpcodeOpen:
		var reply *OpenReply
		reply, err = d.handler.HandleOpen(ctx, u.Open)
		if err == nil {
			u.OpenReply = reply
			if reply.Symlink != nil {
				u.LastError = windowsext.ERROR_REPARSE
			} else {
				u.LastError = reply.Informational
			}
		}
	case OpcodeClose:
		err = d.handler.HandleClose(ctx, u.Close)
	default:
		err = windowsext.ERROR_NOT_SUPPORTED
	}
	u.Status = windowsext.ToWin32Error(err, windowsext.ERROR_INTERNAL_ERROR)
	if u.Status != windowsext.ERROR_SUCCESS {
		d.logger.WithField("opcode", u.Opcode.String()).WithError(err).Debug("Upcall failed")
	}
	return u.Status
}

// Marshal the reply of a successfully handled upcall into a buffer
// provided by the redirector, returning the number of bytes written.
// Nothing is written for upcalls that failed.
func (d *Dispatcher) Marshal(u *Upcall, buffer []byte) (int, error) {
	if u.Status != windowsext.ERROR_SUCCESS {
		return 0, nil
	}
	switch u.Opcode {
	case OpcodeOpen:
		return EncodeOpenReply(buffer, u.OpenReply)
	case OpcodeClose:
		return EncodeCloseReply(buffer)
	default:
		return 0, windowsext.ERROR_NOT_SUPPORTED
	}
}

// Cancel an upcall whose reply could not be delivered to the
// redirector.
func (d *Dispatcher) Cancel(ctx context.Context, u *Upcall) windowsext.Win32Error {
	switch u.Opcode {
	case OpcodeOpen:
		var reply *OpenReply
		if u.Status == windowsext.ERROR_SUCCESS {
			reply = u.OpenReply
		}
		return windowsext.ToWin32Error(d.handler.CancelOpen(ctx, u.Open, reply), windowsext.ERROR_INTERNAL_ERROR)
	default:
		return windowsext.ERROR_SUCCESS
	}
}

// Dispatch processes a single upcall from start to finish. The reply
// is written into the reply buffer. If the reply does not fit, the
// upcall is cancelled and no reply is returned.
func (d *Dispatcher) Dispatch(ctx context.Context, opcode Opcode, request, reply []byte) (int, windowsext.Win32Error, windowsext.Win32Error) {
	u, err := d.Parse(opcode, request)
	if err != nil {
		d.logger.WithField("opcode", opcode.String()).WithError(err).Warn("Failed to parse upcall")
		return 0, windowsext.ToWin32Error(err, windowsext.ERROR_INVALID_PARAMETER), windowsext.ERROR_SUCCESS
	}
	if status := d.Handle(ctx, u); status != windowsext.ERROR_SUCCESS {
		return 0, status, windowsext.ERROR_SUCCESS
	}
	n, err := d.Marshal(u, reply)
	if err != nil {
		d.logger.WithField("opcode", opcode.String()).WithError(err).Error("Failed to marshal upcall reply")
		d.Cancel(ctx, u)
		return 0, windowsext.ToWin32Error(err, windowsext.ERROR_INTERNAL_ERROR), windowsext.ERROR_SUCCESS
	}
	return n, windowsext.ERROR_SUCCESS, u.LastError
}
