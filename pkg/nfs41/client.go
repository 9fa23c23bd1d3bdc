package nfs41

import (
	"context"
	"time"

	"github.com/buildbarn/go-xdr/pkg/protocols/nfsv4"
)

// RootHandle is the opaque routing value that the redirector attaches
// to every upcall. It identifies the mount (and therefore the client
// and session) against which the request is to be performed.
type RootHandle uint64

// Session of an NFSv4.1 client. Sessions are owned by the client;
// this package only passes references around.
type Session struct {
	ID nfsv4.Sessionid4
}

// Superblock identifies the file system on the server to which a file
// handle belongs. It provides the context needed to process attribute
// requests against the file.
type Superblock struct {
	FSIDMajor uint64
	FSIDMinor uint64
}

// FileHandle is an NFSv4 file handle, together with the file system
// it was obtained from.
type FileHandle struct {
	Value      nfsv4.NfsFh4
	Superblock *Superblock
}

// PathFileHandle pairs a file handle with the path through which it
// was looked up. Name is the last component of Path.
type PathFileHandle struct {
	Path   string
	Name   string
	Handle FileHandle
}

// FileInfo contains the attributes of a file, as returned by LOOKUP,
// OPEN and GETATTR.
type FileInfo struct {
	Type       nfsv4.NfsFtype4
	Mode       uint32
	SizeBytes  uint64
	SpaceUsed  uint64
	LinkCount  uint32
	Change     uint64
	FileID     uint64
	TimeAccess time.Time
	TimeCreate time.Time
	TimeModify time.Time
	Hidden     bool
	System     bool
	Archive    bool

	// SymlinkDir is set for symbolic links whose target is a
	// directory. It is not reported by the server, but computed
	// by following the link.
	SymlinkDir bool
}

// LookupResult is returned by Client.Lookup().
//
// If Lookup() fails with ErrReparse, Parent refers to the symbolic
// link that was encountered while walking the path and Session to the
// session on which it was found. If Lookup() fails with NFS4ERR_NOENT,
// Parent and Session are still filled in if the containing directory
// exists, as they are needed to create the file.
type LookupResult struct {
	Parent  PathFileHandle
	File    PathFileHandle
	Info    FileInfo
	Session *Session
}

// Client of an NFSv4.1 server, providing the operations that are
// needed to process open and close upcalls. All methods either succeed
// or return an error. Errors that originate from the server are of
// type StatusError.
type Client interface {
	// RootSession returns the session that is used to perform the
	// initial lookup against a mount.
	RootSession(root RootHandle) (*Session, error)
	// Lookup resolves an absolute path. Lookups may cross into
	// other file systems, in which case the returned session
	// differs from the one provided.
	Lookup(ctx context.Context, root RootHandle, session *Session, path string) (LookupResult, error)
	// SymlinkTarget reads the symbolic link and returns the
	// absolute path obtained by substituting the link's target for
	// link.Path within path.
	SymlinkTarget(ctx context.Context, session *Session, link *PathFileHandle, path string) (string, error)
	// SymlinkFollow returns the attributes of the file to which a
	// symbolic link points.
	SymlinkFollow(ctx context.Context, root RootHandle, session *Session, link *PathFileHandle) (FileInfo, error)
	// Open calls OPEN against state.Parent with state.File.Name,
	// storing the resulting state ID in state.
	Open(ctx context.Context, session *Session, state *OpenState, allow, deny uint32, create nfsv4.Opentype4, mode uint32) (FileInfo, error)
	// CreateDirectory calls CREATE with type NF4DIR, storing the
	// new directory's file handle in file.
	CreateDirectory(ctx context.Context, session *Session, mode uint32, parent, file *PathFileHandle) error
	Close(ctx context.Context, session *Session, state *OpenState) error
	Remove(ctx context.Context, session *Session, parent *PathFileHandle, name string) error
	// Access calls ACCESS, returning the access rights that the
	// server was able to verify, and the ones that were granted.
	Access(ctx context.Context, session *Session, file *PathFileHandle, requested uint32) (supported, granted uint32, err error)
}

// LayoutReleaser is called into when a regular file is closed, so that
// any pNFS layouts that were obtained through the open state are
// returned to the server. It does not report errors.
type LayoutReleaser interface {
	ReleaseLayouts(ctx context.Context, session *Session, state *OpenState, removing bool)
}

type noopLayoutReleaser struct{}

// NoopLayoutReleaser can be used on mounts that don't use pNFS.
var NoopLayoutReleaser LayoutReleaser = noopLayoutReleaser{}

func (noopLayoutReleaser) ReleaseLayouts(ctx context.Context, session *Session, state *OpenState, removing bool) {}
