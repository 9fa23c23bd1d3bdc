package upcall

import (
	"github.com/buildbarn/bb-nfs41-daemon/pkg/nfs41"
)

// CloseArgs contains the fields of a close upcall.
type CloseArgs struct {
	Root        nfs41.RootHandle
	StateHandle nfs41.OpenStateHandle
	// Remove is set if the file is to be removed as part of the
	// close, due to FILE_DELETE_ON_CLOSE or a disposition set
	// earlier. Path and Renamed are only provided if Remove is set.
	Remove  bool
	Path    string
	Renamed bool
}

// DecodeCloseArgs decodes the payload of a close upcall.
func DecodeCloseArgs(buffer []byte) (*CloseArgs, error) {
	r := reader{buffer: buffer}
	var args CloseArgs
	root, err := r.readUint64("root")
	if err != nil {
		return nil, err
	}
	args.Root = nfs41.RootHandle(root)
	state, err := r.readUint64("state")
	if err != nil {
		return nil, err
	}
	args.StateHandle = nfs41.OpenStateHandle(state)
	if args.Remove, err = r.readBool("remove"); err != nil {
		return nil, err
	}
	if args.Remove {
		if args.Path, err = r.readName("path"); err != nil {
			return nil, err
		}
		if args.Renamed, err = r.readBool("renamed"); err != nil {
			return nil, err
		}
	}
	return &args, nil
}

// EncodeCloseReply writes a close reply. Close replies carry no data.
func EncodeCloseReply(buffer []byte) (int, error) {
	return 0, nil
}
