package upcall

import (
	"github.com/buildbarn/bb-nfs41-daemon/pkg/nfs41"
	"github.com/buildbarn/bb-nfs41-daemon/pkg/windowsext"
	"github.com/buildbarn/go-xdr/pkg/protocols/nfsv4"
)

// FileBasicInformation corresponds to the FILE_BASIC_INFORMATION
// structure that is returned to the redirector.
type FileBasicInformation struct {
	CreationTime   int64
	LastAccessTime int64
	LastWriteTime  int64
	ChangeTime     int64
	FileAttributes uint32
}

// FileStandardInformation corresponds to the FILE_STANDARD_INFORMATION
// structure that is returned to the redirector.
type FileStandardInformation struct {
	AllocationSize int64
	EndOfFile      int64
	NumberOfLinks  uint32
	DeletePending  bool
	Directory      bool
}

// Sizes of the structures in the reply, including trailing padding.
const (
	fileBasicInformationSize    = 40
	fileStandardInformationSize = 24
)

// NewFileBasicInformation converts file attributes obtained from the
// server to FILE_BASIC_INFORMATION.
func NewFileBasicInformation(info *nfs41.FileInfo) FileBasicInformation {
	return FileBasicInformation{
		CreationTime:   windowsext.TimeToFiletime(info.TimeCreate),
		LastAccessTime: windowsext.TimeToFiletime(info.TimeAccess),
		LastWriteTime:  windowsext.TimeToFiletime(info.TimeModify),
		ChangeTime:     windowsext.TimeToFiletime(info.TimeModify),
		FileAttributes: fileAttributes(info),
	}
}

// NewFileStandardInformation converts file attributes obtained from
// the server to FILE_STANDARD_INFORMATION.
func NewFileStandardInformation(info *nfs41.FileInfo) FileStandardInformation {
	return FileStandardInformation{
		AllocationSize: int64(info.SpaceUsed),
		EndOfFile:      int64(info.SizeBytes),
		NumberOfLinks:  info.LinkCount,
		Directory:      info.Type == nfsv4.NF4DIR,
	}
}

func fileAttributes(info *nfs41.FileInfo) uint32 {
	var attributes uint32
	switch info.Type {
	case nfsv4.NF4DIR:
		attributes |= windowsext.FILE_ATTRIBUTE_DIRECTORY
	case nfsv4.NF4LNK:
		attributes |= windowsext.FILE_ATTRIBUTE_REPARSE_POINT
		if info.SymlinkDir {
			attributes |= windowsext.FILE_ATTRIBUTE_DIRECTORY
		}
	}
	if info.Mode&0o222 == 0 {
		attributes |= windowsext.FILE_ATTRIBUTE_READONLY
	}
	if info.Hidden {
		attributes |= windowsext.FILE_ATTRIBUTE_HIDDEN
	}
	if info.System {
		attributes |= windowsext.FILE_ATTRIBUTE_SYSTEM
	}
	if info.Archive {
		attributes |= windowsext.FILE_ATTRIBUTE_ARCHIVE
	}
	if attributes == 0 {
		attributes = windowsext.FILE_ATTRIBUTE_NORMAL
	}
	return attributes
}

func (w *writer) writeFileBasicInformation(field string, v *FileBasicInformation) error {
	b, err := w.next(field, fileBasicInformationSize)
	if err != nil {
		return err
	}
	byteOrder.PutUint64(b[0:], uint64(v.CreationTime))
	byteOrder.PutUint64(b[8:], uint64(v.LastAccessTime))
	byteOrder.PutUint64(b[16:], uint64(v.LastWriteTime))
	byteOrder.PutUint64(b[24:], uint64(v.ChangeTime))
	byteOrder.PutUint32(b[32:], v.FileAttributes)
	clear(b[36:])
	return nil
}

func (w *writer) writeFileStandardInformation(field string, v *FileStandardInformation) error {
	b, err := w.next(field, fileStandardInformationSize)
	if err != nil {
		return err
	}
	byteOrder.PutUint64(b[0:], uint64(v.AllocationSize))
	byteOrder.PutUint64(b[8:], uint64(v.EndOfFile))
	byteOrder.PutUint32(b[16:], v.NumberOfLinks)
	b[20] = boolToByte(v.DeletePending)
	b[21] = boolToByte(v.Directory)
	clear(b[22:])
	return nil
}

func boolToByte(v bool) byte {
	if v {
		return 1
	}
	return 0
}
