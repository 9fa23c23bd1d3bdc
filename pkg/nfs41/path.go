package nfs41

import (
	"strings"
)

const (
	// MaximumPathLength is the maximum length in bytes of an
	// absolute path processed by the daemon.
	MaximumPathLength = 1280
	// MaximumComponentLength is the maximum length in bytes of a
	// single pathname component.
	MaximumComponentLength = 255
	// OpaqueLimit is the maximum length of opaque data, such as
	// open-owner names (NFS4_OPAQUE_LIMIT).
	OpaqueLimit = 1024
	// PathSeparator separates pathname components in paths
	// provided by the redirector.
	PathSeparator = '\\'
)

// LastComponent splits an absolute path into the path of the
// containing directory and the name of the last component. The
// containing directory of "\foo" is "".
func LastComponent(path string) (string, string) {
	i := strings.LastIndexByte(path, PathSeparator)
	if i < 0 {
		return "", path
	}
	return path[:i], path[i+1:]
}

// derivePathFileHandles computes the pair of names of the entry
// referenced by a path and its containing directory. File handles are
// left empty, as they are only known after a lookup.
func derivePathFileHandles(path string) (file, parent PathFileHandle) {
	parentPath, name := LastComponent(path)
	_, parentName := LastComponent(parentPath)
	file = PathFileHandle{Path: path, Name: name}
	parent = PathFileHandle{Path: parentPath, Name: parentName}
	return
}
