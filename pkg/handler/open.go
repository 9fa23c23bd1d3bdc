package handler

import (
	"context"
	"errors"

	"github.com/buildbarn/bb-nfs41-daemon/pkg/nfs41"
	"github.com/buildbarn/bb-nfs41-daemon/pkg/upcall"
	"github.com/buildbarn/bb-nfs41-daemon/pkg/windowsext"
	"github.com/buildbarn/go-xdr/pkg/protocols/nfsv4"
	"github.com/sirupsen/logrus"
)

// Access mask and share access that CreateSymbolicLink() uses to
// create the file that is subsequently turned into a symbolic link.
const (
	symlinkCreationAccessMask = windowsext.FILE_WRITE_ATTRIBUTES | windowsext.SYNCHRONIZE | windowsext.DELETE
	symlinkCreationAccessMode = 0
)

// openRequest holds the state of an open upcall while it progresses
// through the stages of HandleOpen().
type openRequest struct {
	args   *upcall.OpenArgs
	state  *nfs41.OpenState
	logger logrus.FieldLogger

	// Results of the initial lookup.
	lookup      nfs41.LookupResult
	lookupError error
	found       bool
	reparse     bool

	reply upcall.OpenReply
}

// openStageOutcome is returned by each of the stages of HandleOpen()
// that succeeds.
type openStageOutcome int

const (
	// Proceed with the next stage.
	openStageContinue openStageOutcome = iota
	// The file has been opened. The open state is handed to the
	// redirector.
	openStageOpened
	// The redirector needs to reparse the open against the path
	// in reply.Symlink. The open state is released.
	openStageReparse
)

type openStage func(h *nfs41Handler, ctx context.Context, r *openRequest) (openStageOutcome, error)

var openStages = []openStage{
	(*nfs41Handler).lookupPath,
	(*nfs41Handler).resolveEmbeddedSymlinks,
	(*nfs41Handler).checkFileType,
	(*nfs41Handler).openFile,
}

func (h *nfs41Handler) HandleOpen(ctx context.Context, args *upcall.OpenArgs) (*upcall.OpenReply, error) {
	logger := h.logger.WithFields(logrus.Fields{
		"path":          args.Path,
		"open_owner_id": args.OpenOwnerID,
		"disposition":   windowsext.DispositionName(args.Disposition),
	})

	handle, state, err := h.pool.Allocate(args.Path, args.OpenOwnerID)
	if err != nil {
		logger.WithError(err).Error("Failed to create open state")
		return nil, windowsext.ToWin32Error(err, windowsext.ERROR_INTERNAL_ERROR)
	}
	if args.CreateOptions&windowsext.FILE_DIRECTORY_FILE != 0 {
		state.Type = nfsv4.NF4DIR
	} else {
		state.Type = nfsv4.NF4REG
	}

	r := openRequest{
		args:   args,
		state:  state,
		logger: logger,
		reply: upcall.OpenReply{
			Mode: args.Mode,
		},
	}
	for _, stage := range openStages {
		outcome, err := stage(h, ctx, &r)
		if err != nil {
			h.releaseOpenState(handle)
			logger.WithError(err).Debug("Open failed")
			return nil, err
		}
		switch outcome {
		case openStageOpened:
			r.reply.StateHandle = handle
			logger.WithFields(logrus.Fields{
				"state_handle": uint64(handle),
				"mode":         r.reply.Mode,
				"changeattr":   r.reply.ChangeAttribute,
			}).Trace("Open succeeded")
			return &r.reply, nil
		case openStageReparse:
			h.releaseOpenState(handle)
			logger.WithField("target", r.reply.Symlink.Target).Debug("Reparsing open")
			return &r.reply, nil
		}
	}
	panic("Final stage of open did not complete")
}

func (h *nfs41Handler) releaseOpenState(handle nfs41.OpenStateHandle) {
	if _, err := h.pool.Release(handle); err != nil {
		panic("Attempted to release open state that is not owned by the handler")
	}
}

// lookupPath performs the initial lookup of the path. Lookups that fail
// due to the file not existing are permitted to proceed, as the file
// may need to be created.
func (h *nfs41Handler) lookupPath(ctx context.Context, r *openRequest) (openStageOutcome, error) {
	session, err := h.client.RootSession(r.args.Root)
	if err != nil {
		r.logger.WithError(err).Error("Failed to obtain session for root")
		return 0, windowsext.ERROR_INVALID_PARAMETER
	}
	r.state.Session = session

	r.lookup, err = h.client.Lookup(ctx, r.args.Root, session, r.state.Path())
	if r.lookup.Session != nil {
		r.state.Session = r.lookup.Session
	}
	switch {
	case err == nil:
		r.found = true
		r.state.Parent.Handle = r.lookup.Parent.Handle
		r.state.File.Handle = r.lookup.File.Handle
	case nfs41.IsNotFound(err):
		// The containing directory may still exist, in
		// which case the file can be created in it.
		r.lookupError = err
		r.state.Parent.Handle = r.lookup.Parent.Handle
	case errors.Is(err, nfs41.ErrReparse):
		r.reparse = true
	default:
		r.logger.WithError(err).Debug("Lookup failed")
		return 0, nfs41.ToWindowsError(err, windowsext.ERROR_FILE_NOT_FOUND)
	}
	return openStageContinue, nil
}

// resolveEmbeddedSymlinks is invoked if one of the intermediate
// components of the path is a symbolic link. The path is resolved
// fully, so that the redirector can reparse the open against it.
func (h *nfs41Handler) resolveEmbeddedSymlinks(ctx context.Context, r *openRequest) (openStageOutcome, error) {
	if !r.reparse {
		return openStageContinue, nil
	}

	link := r.lookup.Parent
	for depth := 1; ; depth++ {
		if depth > h.maximumSymlinkDepth {
			r.logger.WithField("depth", depth).Debug("Too many levels of symbolic links")
			return 0, windowsext.ERROR_TOO_MANY_LINKS
		}

		target, err := h.client.SymlinkTarget(ctx, r.state.Session, &link, r.state.Path())
		if err != nil {
			r.logger.WithError(err).Error("Failed to obtain symbolic link target")
			return 0, nfs41.ToWindowsError(err, windowsext.ERROR_FILE_NOT_FOUND)
		}
		if err := r.state.SetPath(target); err != nil {
			return 0, windowsext.ToWin32Error(err, windowsext.ERROR_INTERNAL_ERROR)
		}

		lookup, err := h.client.Lookup(ctx, r.args.Root, r.state.Session, target)
		if lookup.Session != nil {
			r.state.Session = lookup.Session
		}
		if !errors.Is(err, nfs41.ErrReparse) {
			// Only symbolic links need to be resolved. Any
			// other errors are reported by the redirector
			// when it reparses the open.
			break
		}
		link = lookup.Parent
	}

	r.reply.Symlink = &upcall.SymlinkReparse{
		Target:   r.state.Path(),
		Embedded: true,
	}
	return openStageReparse, nil
}

// checkFileType validates the type of an existing file against the
// create options of the open.
func (h *nfs41Handler) checkFileType(ctx context.Context, r *openRequest) (openStageOutcome, error) {
	if !r.found {
		return openStageContinue, nil
	}

	createOptions := r.args.CreateOptions
	info := &r.lookup.Info
	switch info.Type {
	case nfsv4.NF4DIR:
		if createOptions&windowsext.FILE_NON_DIRECTORY_FILE != 0 {
			r.logger.Error("Attempted to open directory as a file")
			return 0, windowsext.ERROR_ACCESS_DENIED
		}
	case nfsv4.NF4REG:
		if createOptions&windowsext.FILE_DIRECTORY_FILE != 0 {
			if h.rejectFileOpenedAsDirectory {
				r.logger.Error("Attempted to open file as a directory")
				return 0, windowsext.ERROR_ACCESS_DENIED
			}
			r.logger.Warn("Attempted to open file as a directory")
		}
	case nfsv4.NF4LNK:
		if createOptions&windowsext.FILE_OPEN_REPARSE_POINT == 0 {
			// Let the redirector reparse the open against
			// the target of the symbolic link.
			target, err := h.client.SymlinkTarget(ctx, r.state.Session, &r.state.File, r.state.Path())
			if err != nil {
				r.logger.WithError(err).Error("Failed to obtain symbolic link target")
				return 0, nfs41.ToWindowsError(err, windowsext.ERROR_FILE_NOT_FOUND)
			}
			r.reply.Symlink = &upcall.SymlinkReparse{
				Target:   target,
				Embedded: false,
			}
			return openStageReparse, nil
		}

		// Open the symbolic link itself. Whether it points to
		// a directory determines how it is displayed.
		if targetInfo, err := h.client.SymlinkFollow(ctx, r.args.Root, r.state.Session, &r.state.File); err == nil && targetInfo.Type == nfsv4.NF4DIR {
			info.SymlinkDir = true
		}
	default:
		r.logger.WithField("type", info.Type).Debug("Unsupported file type")
	}
	r.state.Type = info.Type
	return openStageContinue, nil
}

// openFile completes the open, either by calling OPEN or CREATE, or by
// using the results of the lookup.
func (h *nfs41Handler) openFile(ctx context.Context, r *openRequest) (openStageOutcome, error) {
	args := r.args
	switch {
	case args.Disposition == windowsext.FILE_CREATE &&
		args.AccessMask == symlinkCreationAccessMask &&
		args.AccessMode == symlinkCreationAccessMode &&
		args.CreateOptions&windowsext.FILE_OPEN_REPARSE_POINT != 0:
		return h.deferCreate(r)
	case NeedsLookupOnly(r.state.Type, args.AccessMask, args.Disposition):
		return h.completeLookupOnly(r)
	default:
		return h.createOrOpen(ctx, r)
	}
}

// deferCreate handles opens that are performed by
// CreateSymbolicLink(). Creation of the file is deferred until the
// symbolic link's target is set.
func (h *nfs41Handler) deferCreate(r *openRequest) (openStageOutcome, error) {
	disposition, err := ResolveDisposition(r.args.Disposition, r.found)
	if err != nil {
		return 0, err
	}
	r.reply.Informational = disposition.Informational
	r.logger.Debug("Deferring creation of symbolic link")

	// The open is followed by an upcall to set attributes, which
	// requires the superblock of the file to be known.
	r.state.File.Handle.Superblock = r.state.Parent.Handle.Superblock
	return openStageOpened, nil
}

func (h *nfs41Handler) completeLookupOnly(r *openRequest) (openStageOutcome, error) {
	if !r.found {
		r.logger.WithError(r.lookupError).Debug("Lookup failed")
		return 0, nfs41.ToWindowsError(r.lookupError, windowsext.ERROR_FILE_NOT_FOUND)
	}
	info := &r.lookup.Info
	r.reply.BasicInformation = upcall.NewFileBasicInformation(info)
	r.reply.StandardInformation = upcall.NewFileStandardInformation(info)
	r.reply.Mode = info.Mode
	r.reply.ChangeAttribute = info.Change
	return openStageOpened, nil
}

func (h *nfs41Handler) createOrOpen(ctx context.Context, r *openRequest) (openStageOutcome, error) {
	args := r.args
	state := r.state
	allow, deny := AccessToAllowDeny(args.AccessMask, args.AccessMode)
	disposition, err := ResolveDisposition(args.Disposition, r.found)
	if err != nil {
		return 0, err
	}
	r.reply.Informational = disposition.Informational

	if args.AccessMask&windowsext.FILE_EXECUTE != 0 && len(state.File.Handle.Value) > 0 {
		if err := checkExecuteAccess(ctx, h.client, state, r.logger); err != nil {
			return 0, err
		}
	}

	if disposition.Create == nfsv4.OPEN4_CREATE && args.CreateOptions&windowsext.FILE_DIRECTORY_FILE != 0 {
		r.reply.StandardInformation.Directory = true
		if err := h.client.CreateDirectory(ctx, state.Session, args.Mode, &state.Parent, &state.File); err != nil {
			r.logger.WithError(err).Debug("Failed to create directory")
			return 0, nfs41.ToWindowsError(err, windowsext.ERROR_FILE_NOT_FOUND)
		}
		r.reply.Created = true
		return openStageOpened, nil
	}

	info, err := h.client.Open(ctx, state.Session, state, allow, deny, disposition.Create, args.Mode)
	if err != nil {
		r.logger.WithError(err).Debug("Failed to open file")
		return 0, nfs41.ToWindowsError(err, windowsext.ERROR_FILE_NOT_FOUND)
	}
	state.DoClose = true
	r.reply.BasicInformation = upcall.NewFileBasicInformation(&info)
	r.reply.StandardInformation = upcall.NewFileStandardInformation(&info)
	r.reply.Mode = info.Mode
	r.reply.Created = disposition.Create == nfsv4.OPEN4_CREATE && !r.found
	return openStageOpened, nil
}
