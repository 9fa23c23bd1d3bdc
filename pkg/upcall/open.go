package upcall

import (
	"github.com/buildbarn/bb-nfs41-daemon/pkg/nfs41"
	"github.com/buildbarn/bb-nfs41-daemon/pkg/windowsext"
	"golang.org/x/text/encoding/unicode"
)

// OpenArgs contains the fields of an open upcall, as forwarded by the
// redirector when processing IRP_MJ_CREATE.
type OpenArgs struct {
	Path           string
	AccessMask     uint32
	AccessMode     uint32
	FileAttributes uint32
	CreateOptions  uint32
	Disposition    uint32
	Root           nfs41.RootHandle
	OpenOwnerID    uint32
	Mode           uint32
}

// SymlinkReparse is attached to an open reply to instruct the
// redirector to reparse the open against another path.
type SymlinkReparse struct {
	Target string
	// Embedded is set if the symbolic link was found in one of the
	// intermediate components of the path, meaning that Target is
	// the fully resolved path. Otherwise, Target is the target of
	// the last component.
	Embedded bool
}

// OpenReply contains the results of a successful open upcall.
type OpenReply struct {
	BasicInformation    FileBasicInformation
	StandardInformation FileStandardInformation
	StateHandle         nfs41.OpenStateHandle
	Mode                uint32
	ChangeAttribute     uint64

	// Created is set if the open created a new file or directory.
	// It is not sent to the redirector, but is used to undo the
	// creation if the open is cancelled.
	Created bool
	// Informational error code that accompanies a successful open.
	// For example, ERROR_FILE_NOT_FOUND when FILE_OPEN_IF caused a
	// file to be created.
	Informational windowsext.Win32Error
	Symlink       *SymlinkReparse
}

// DecodeOpenArgs decodes the payload of an open upcall.
func DecodeOpenArgs(buffer []byte) (*OpenArgs, error) {
	r := reader{buffer: buffer}
	var args OpenArgs
	var err error
	if args.Path, err = r.readName("path"); err != nil {
		return nil, err
	}
	if args.AccessMask, err = r.readUint32("access_mask"); err != nil {
		return nil, err
	}
	if args.AccessMode, err = r.readUint32("access_mode"); err != nil {
		return nil, err
	}
	if args.FileAttributes, err = r.readUint32("file_attrs"); err != nil {
		return nil, err
	}
	if args.CreateOptions, err = r.readUint32("create_opts"); err != nil {
		return nil, err
	}
	if args.Disposition, err = r.readUint32("disposition"); err != nil {
		return nil, err
	}
	root, err := r.readUint64("root")
	if err != nil {
		return nil, err
	}
	args.Root = nfs41.RootHandle(root)
	if args.OpenOwnerID, err = r.readUint32("open_owner_id"); err != nil {
		return nil, err
	}
	if args.Mode, err = r.readUint32("mode"); err != nil {
		return nil, err
	}
	return &args, nil
}

var utf16Encoding = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)

// EncodeOpenReply writes an open reply into a buffer provided by the
// redirector, returning the number of bytes written. If the reply does
// not fit, nothing is returned to the redirector.
func EncodeOpenReply(buffer []byte, reply *OpenReply) (int, error) {
	w := writer{buffer: buffer}
	if err := w.writeFileBasicInformation("basic_info", &reply.BasicInformation); err != nil {
		return 0, err
	}
	if err := w.writeFileStandardInformation("std_info", &reply.StandardInformation); err != nil {
		return 0, err
	}
	if err := w.writeUint64("state", uint64(reply.StateHandle)); err != nil {
		return 0, err
	}
	if err := w.writeUint32("mode", reply.Mode); err != nil {
		return 0, err
	}
	if err := w.writeUint64("changeattr", reply.ChangeAttribute); err != nil {
		return 0, err
	}
	if symlink := reply.Symlink; symlink != nil {
		target, err := utf16Encoding.NewEncoder().Bytes([]byte(symlink.Target))
		if err != nil {
			return 0, &CodecError{Kind: CodecErrorNameInvalid, Field: "symlink"}
		}
		// The length includes the null terminator.
		target = append(target, 0, 0)
		if len(target) > 0xffff {
			return 0, &CodecError{Kind: CodecErrorBufferOverflow, Field: "symlink"}
		}
		if err := w.writeBool("symlink_embedded", symlink.Embedded); err != nil {
			return 0, err
		}
		if err := w.writeUint16("symlink_len", uint16(len(target))); err != nil {
			return 0, err
		}
		if err := w.writeBytes("symlink", target); err != nil {
			return 0, err
		}
	}
	return w.offset, nil
}
