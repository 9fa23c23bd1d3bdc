package nfs41

import (
	"crypto/md5"
	"encoding/hex"
	"strconv"
	"sync"

	"github.com/buildbarn/bb-nfs41-daemon/pkg/windowsext"
	"github.com/buildbarn/go-xdr/pkg/protocols/nfsv4"
)

type allocationError struct {
	message    string
	win32Error windowsext.Win32Error
}

func (e *allocationError) Error() string {
	return e.message
}

func (e *allocationError) Win32Error() windowsext.Win32Error {
	return e.win32Error
}

var (
	// ErrPathTooLong is returned when an open state is created, or
	// its path is replaced, with a path that exceeds
	// MaximumPathLength.
	ErrPathTooLong error = &allocationError{
		message:    "Path exceeds the maximum path length",
		win32Error: windowsext.ERROR_BUFFER_OVERFLOW,
	}
	// ErrOutOfStates is returned by OpenStatePool when the
	// maximum number of open states has been reached.
	ErrOutOfStates error = &allocationError{
		message:    "Maximum number of open states reached",
		win32Error: windowsext.ERROR_NOT_ENOUGH_MEMORY,
	}
	errComponentTooLong error = &allocationError{
		message:    "Pathname component exceeds the maximum component length",
		win32Error: windowsext.ERROR_FILENAME_EXCED_RANGE,
	}
)

// OpenState is the state of a single file opened by the redirector.
// It is created when an open upcall is processed, and destroyed when
// the corresponding close upcall is processed.
//
// File and Parent are derived from the path. Whenever the path is
// replaced through SetPath(), they are recomputed and their file
// handles are cleared.
type OpenState struct {
	pathLock sync.RWMutex
	path     string

	File   PathFileHandle
	Parent PathFileHandle
	Owner  []byte
	Type   nfsv4.NfsFtype4

	// Session on which the file was looked up. It is owned by the
	// client.
	Session *Session
	// StateID is set by Client.Open().
	StateID nfsv4.Stateid4
	// DoClose is set if and only if Client.Open() succeeded,
	// meaning that Client.Close() needs to be called on release.
	DoClose bool
}

func newOpenState(path string, openOwnerID uint32) (*OpenState, error) {
	if len(path) > MaximumPathLength {
		return nil, ErrPathTooLong
	}
	owner := strconv.AppendUint(nil, uint64(openOwnerID), 10)
	if len(owner) > OpaqueLimit {
		// Cannot happen with 32-bit owner IDs.
		panic("Open-owner exceeds opaque limit")
	}
	file, parent := derivePathFileHandles(path)
	return &OpenState{
		path:   path,
		File:   file,
		Parent: parent,
		Owner:  owner,
		Type:   nfsv4.NF4REG,
	}, nil
}

// Path returns the absolute path of the opened file.
func (s *OpenState) Path() string {
	s.pathLock.RLock()
	defer s.pathLock.RUnlock()
	return s.path
}

// SetPath replaces the path of the opened file. This is used while
// resolving symbolic links in intermediate components.
func (s *OpenState) SetPath(path string) error {
	if len(path) > MaximumPathLength {
		return ErrPathTooLong
	}
	s.pathLock.Lock()
	defer s.pathLock.Unlock()
	s.path = path
	s.File, s.Parent = derivePathFileHandles(path)
	return nil
}

// SillyRename renames the opened file in place to a name that is
// derived from its file handle. This is used when removing a file that
// is still opened elsewhere under a name that has since been renamed
// over. The file handle of the file is retained.
func (s *OpenState) SillyRename() error {
	s.pathLock.Lock()
	defer s.pathLock.Unlock()

	hasher := md5.New()
	hasher.Write(s.File.Handle.Value)
	hasher.Write([]byte(s.File.Name))
	sillyName := s.File.Name + ".nfs" + hex.EncodeToString(hasher.Sum(nil))
	if len(sillyName) > MaximumComponentLength {
		return errComponentTooLong
	}
	newPath := s.path + sillyName[len(s.File.Name):]
	if len(newPath) > MaximumPathLength {
		return ErrPathTooLong
	}
	s.path = newPath
	s.File.Path = newPath
	s.File.Name = sillyName
	return nil
}
