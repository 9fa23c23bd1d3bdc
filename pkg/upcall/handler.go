package upcall

import (
	"context"
)

// Handler of open and close upcalls. Errors returned by the handler
// are converted to Win32 error codes using windowsext.ToWin32Error().
type Handler interface {
	// HandleOpen processes an open upcall. If an error is
	// returned, no open state is retained.
	HandleOpen(ctx context.Context, args *OpenArgs) (*OpenReply, error)
	// CancelOpen undoes the effects of a call to HandleOpen()
	// whose reply could not be delivered to the redirector. reply
	// is nil if HandleOpen() failed.
	CancelOpen(ctx context.Context, args *OpenArgs, reply *OpenReply) error
	// HandleClose processes a close upcall, releasing the open
	// state that was handed out by HandleOpen().
	HandleClose(ctx context.Context, args *CloseArgs) error
}
