package handler_test

import (
	"context"
	"testing"
	"time"

	"github.com/buildbarn/bb-nfs41-daemon/internal/mock"
	"github.com/buildbarn/bb-nfs41-daemon/pkg/handler"
	"github.com/buildbarn/bb-nfs41-daemon/pkg/nfs41"
	"github.com/buildbarn/bb-nfs41-daemon/pkg/upcall"
	"github.com/buildbarn/bb-nfs41-daemon/pkg/windowsext"
	"github.com/buildbarn/go-xdr/pkg/protocols/nfsv4"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const exampleRoot nfs41.RootHandle = 0xfeedf00d

var (
	exampleSuperblock = &nfs41.Superblock{FSIDMajor: 1, FSIDMinor: 2}
	exampleParent     = nfs41.PathFileHandle{
		Path: "\\home\\alice",
		Name: "alice",
		Handle: nfs41.FileHandle{
			Value:      []byte{0x01},
			Superblock: exampleSuperblock,
		},
	}
	exampleFile = nfs41.PathFileHandle{
		Path: "\\home\\alice\\report.txt",
		Name: "report.txt",
		Handle: nfs41.FileHandle{
			Value:      []byte{0x02},
			Superblock: exampleSuperblock,
		},
	}
	exampleFileInfo = nfs41.FileInfo{
		Type:       nfsv4.NF4REG,
		Mode:       0o644,
		SizeBytes:  1234,
		SpaceUsed:  4096,
		LinkCount:  1,
		Change:     42,
		TimeModify: time.Unix(1700000000, 0),
	}
)

type handlerTestEnvironment struct {
	client         *mock.MockNFS41Client
	layoutReleaser *mock.MockLayoutReleaser
	pool           *nfs41.OpenStatePool
	session        *nfs41.Session
	handler        upcall.Handler
}

func newHandlerTestEnvironment(ctrl *gomock.Controller, maximumSymlinkDepth int, rejectFileOpenedAsDirectory bool) *handlerTestEnvironment {
	client := mock.NewMockNFS41Client(ctrl)
	layoutReleaser := mock.NewMockLayoutReleaser(ctrl)
	pool := nfs41.NewOpenStatePool(10)
	logger, _ := test.NewNullLogger()
	return &handlerTestEnvironment{
		client:         client,
		layoutReleaser: layoutReleaser,
		pool:           pool,
		session:        &nfs41.Session{ID: nfsv4.Sessionid4{1, 2, 3}},
		handler:        handler.NewHandler(client, layoutReleaser, pool, maximumSymlinkDepth, rejectFileOpenedAsDirectory, logger),
	}
}

func (e *handlerTestEnvironment) expectLookup(ctx context.Context, path string, result nfs41.LookupResult, err error) {
	e.client.EXPECT().RootSession(exampleRoot).Return(e.session, nil)
	result.Session = e.session
	e.client.EXPECT().Lookup(ctx, exampleRoot, e.session, path).Return(result, err)
}

func (e *handlerTestEnvironment) requireOpenState(t *testing.T, reply *upcall.OpenReply) *nfs41.OpenState {
	state, err := e.pool.Lookup(reply.StateHandle)
	require.NoError(t, err)
	return state
}

func TestHandlerOpenExistingFile(t *testing.T) {
	ctrl, ctx := gomock.WithContext(context.Background(), t)
	env := newHandlerTestEnvironment(ctrl, 32, false)

	env.expectLookup(ctx, "\\home\\alice\\report.txt", nfs41.LookupResult{
		Parent: exampleParent,
		File:   exampleFile,
		Info:   exampleFileInfo,
	}, nil)
	env.client.EXPECT().Open(
		ctx,
		env.session,
		gomock.Any(),
		uint32(nfsv4.OPEN4_SHARE_ACCESS_READ),
		uint32(nfsv4.OPEN4_SHARE_DENY_WRITE),
		nfsv4.OPEN4_NOCREATE,
		uint32(0o600),
	).DoAndReturn(func(ctx context.Context, session *nfs41.Session, state *nfs41.OpenState, allow, deny uint32, create nfsv4.Opentype4, mode uint32) (nfs41.FileInfo, error) {
		require.Equal(t, exampleFile, state.File)
		require.Equal(t, exampleParent, state.Parent)
		require.Equal(t, []byte("1000"), state.Owner)
		return exampleFileInfo, nil
	})

	reply, err := env.handler.HandleOpen(ctx, &upcall.OpenArgs{
		Path:          "\\home\\alice\\report.txt",
		AccessMask:    windowsext.FILE_READ_DATA | windowsext.SYNCHRONIZE,
		AccessMode:    windowsext.FILE_SHARE_READ,
		CreateOptions: windowsext.FILE_NON_DIRECTORY_FILE,
		Disposition:   windowsext.FILE_OPEN,
		Root:          exampleRoot,
		OpenOwnerID:   1000,
		Mode:          0o600,
	})
	require.NoError(t, err)
	require.Equal(t, &upcall.OpenReply{
		BasicInformation: upcall.FileBasicInformation{
			LastWriteTime:  windowsext.TimeToFiletime(exampleFileInfo.TimeModify),
			ChangeTime:     windowsext.TimeToFiletime(exampleFileInfo.TimeModify),
			FileAttributes: windowsext.FILE_ATTRIBUTE_NORMAL,
		},
		StandardInformation: upcall.FileStandardInformation{
			AllocationSize: 4096,
			EndOfFile:      1234,
			NumberOfLinks:  1,
		},
		StateHandle: reply.StateHandle,
		Mode:        0o644,
	}, reply)

	state := env.requireOpenState(t, reply)
	require.True(t, state.DoClose)
	require.Equal(t, nfsv4.NF4REG, state.Type)
	require.Same(t, env.session, state.Session)
	require.Equal(t, 1, env.pool.Len())
}

func TestHandlerOpenCreateNewFile(t *testing.T) {
	ctrl, ctx := gomock.WithContext(context.Background(), t)
	env := newHandlerTestEnvironment(ctrl, 32, false)

	env.expectLookup(ctx, "\\home\\alice\\report.txt", nfs41.LookupResult{
		Parent: exampleParent,
	}, nfs41.StatusError(nfsv4.NFS4ERR_NOENT))
	env.client.EXPECT().Open(
		ctx,
		env.session,
		gomock.Any(),
		uint32(nfsv4.OPEN4_SHARE_ACCESS_BOTH),
		uint32(nfsv4.OPEN4_SHARE_DENY_BOTH),
		nfsv4.OPEN4_CREATE,
		uint32(0o644),
	).DoAndReturn(func(ctx context.Context, session *nfs41.Session, state *nfs41.OpenState, allow, deny uint32, create nfsv4.Opentype4, mode uint32) (nfs41.FileInfo, error) {
		require.Equal(t, exampleParent, state.Parent)
		return exampleFileInfo, nil
	})

	reply, err := env.handler.HandleOpen(ctx, &upcall.OpenArgs{
		Path:        "\\home\\alice\\report.txt",
		AccessMask:  windowsext.FILE_READ_DATA | windowsext.FILE_WRITE_DATA,
		Disposition: windowsext.FILE_CREATE,
		Root:        exampleRoot,
		Mode:        0o644,
	})
	require.NoError(t, err)
	require.True(t, reply.Created)
	require.Equal(t, windowsext.ERROR_SUCCESS, reply.Informational)
	require.Nil(t, reply.Symlink)
	require.True(t, env.requireOpenState(t, reply).DoClose)
}

func TestHandlerOpenCreateExistingFile(t *testing.T) {
	ctrl, ctx := gomock.WithContext(context.Background(), t)
	env := newHandlerTestEnvironment(ctrl, 32, false)

	// No calls beyond the lookup may be performed.
	env.expectLookup(ctx, "\\home\\alice\\report.txt", nfs41.LookupResult{
		Parent: exampleParent,
		File:   exampleFile,
		Info:   exampleFileInfo,
	}, nil)

	_, err := env.handler.HandleOpen(ctx, &upcall.OpenArgs{
		Path:        "\\home\\alice\\report.txt",
		AccessMask:  windowsext.FILE_WRITE_DATA,
		Disposition: windowsext.FILE_CREATE,
		Root:        exampleRoot,
	})
	require.Equal(t, windowsext.ERROR_FILE_EXISTS, err)
	require.Equal(t, 0, env.pool.Len())
}

func TestHandlerOpenIfCreatesFile(t *testing.T) {
	ctrl, ctx := gomock.WithContext(context.Background(), t)
	env := newHandlerTestEnvironment(ctrl, 32, false)

	env.expectLookup(ctx, "\\home\\alice\\report.txt", nfs41.LookupResult{
		Parent: exampleParent,
	}, nfs41.StatusError(nfsv4.NFS4ERR_NOENT))
	env.client.EXPECT().Open(ctx, env.session, gomock.Any(), gomock.Any(), gomock.Any(), nfsv4.OPEN4_CREATE, uint32(0o644)).Return(exampleFileInfo, nil)

	reply, err := env.handler.HandleOpen(ctx, &upcall.OpenArgs{
		Path:        "\\home\\alice\\report.txt",
		AccessMask:  windowsext.FILE_WRITE_DATA,
		AccessMode:  windowsext.FILE_SHARE_READ | windowsext.FILE_SHARE_WRITE,
		Disposition: windowsext.FILE_OPEN_IF,
		Root:        exampleRoot,
		Mode:        0o644,
	})
	require.NoError(t, err)
	require.True(t, reply.Created)
	require.Equal(t, windowsext.ERROR_FILE_NOT_FOUND, reply.Informational)
}

func TestHandlerOpenFailures(t *testing.T) {
	ctrl, ctx := gomock.WithContext(context.Background(), t)

	t.Run("OutOfStates", func(t *testing.T) {
		logger, _ := test.NewNullLogger()
		h := handler.NewHandler(mock.NewMockNFS41Client(ctrl), nfs41.NoopLayoutReleaser, nfs41.NewOpenStatePool(0), 32, false, logger)

		_, err := h.HandleOpen(ctx, &upcall.OpenArgs{Path: "\\foo", Root: exampleRoot})
		require.Equal(t, windowsext.ERROR_NOT_ENOUGH_MEMORY, err)
	})

	t.Run("BadRoot", func(t *testing.T) {
		env := newHandlerTestEnvironment(ctrl, 32, false)
		env.client.EXPECT().RootSession(exampleRoot).Return(nil, windowsext.ERROR_INVALID_HANDLE)

		_, err := env.handler.HandleOpen(ctx, &upcall.OpenArgs{Path: "\\foo", Root: exampleRoot})
		require.Equal(t, windowsext.ERROR_INVALID_PARAMETER, err)
		require.Equal(t, 0, env.pool.Len())
	})

	t.Run("LookupFailure", func(t *testing.T) {
		env := newHandlerTestEnvironment(ctrl, 32, false)
		env.expectLookup(ctx, "\\secret\\file", nfs41.LookupResult{}, nfs41.StatusError(nfsv4.NFS4ERR_ACCESS))

		_, err := env.handler.HandleOpen(ctx, &upcall.OpenArgs{
			Path:        "\\secret\\file",
			AccessMask:  windowsext.FILE_READ_DATA,
			Disposition: windowsext.FILE_OPEN_IF,
			Root:        exampleRoot,
		})
		require.Equal(t, windowsext.ERROR_ACCESS_DENIED, err)
		require.Equal(t, 0, env.pool.Len())
	})

	t.Run("OpenNotFound", func(t *testing.T) {
		env := newHandlerTestEnvironment(ctrl, 32, false)
		env.expectLookup(ctx, "\\home\\alice\\report.txt", nfs41.LookupResult{
			Parent: exampleParent,
		}, nfs41.StatusError(nfsv4.NFS4ERR_NOENT))

		_, err := env.handler.HandleOpen(ctx, &upcall.OpenArgs{
			Path:        "\\home\\alice\\report.txt",
			AccessMask:  windowsext.FILE_READ_DATA,
			Disposition: windowsext.FILE_OPEN,
			Root:        exampleRoot,
		})
		require.Equal(t, windowsext.ERROR_FILE_NOT_FOUND, err)
		require.Equal(t, 0, env.pool.Len())
	})

	t.Run("DirectoryOpenedAsFile", func(t *testing.T) {
		env := newHandlerTestEnvironment(ctrl, 32, false)
		env.expectLookup(ctx, "\\home\\alice", nfs41.LookupResult{
			File: exampleParent,
			Info: nfs41.FileInfo{Type: nfsv4.NF4DIR},
		}, nil)

		_, err := env.handler.HandleOpen(ctx, &upcall.OpenArgs{
			Path:          "\\home\\alice",
			AccessMask:    windowsext.FILE_READ_DATA,
			CreateOptions: windowsext.FILE_NON_DIRECTORY_FILE,
			Disposition:   windowsext.FILE_OPEN,
			Root:          exampleRoot,
		})
		require.Equal(t, windowsext.ERROR_ACCESS_DENIED, err)
		require.Equal(t, 0, env.pool.Len())
	})

	t.Run("FileOpenedAsDirectoryRejected", func(t *testing.T) {
		env := newHandlerTestEnvironment(ctrl, 32, true)
		env.expectLookup(ctx, "\\home\\alice\\report.txt", nfs41.LookupResult{
			Parent: exampleParent,
			File:   exampleFile,
			Info:   exampleFileInfo,
		}, nil)

		_, err := env.handler.HandleOpen(ctx, &upcall.OpenArgs{
			Path:          "\\home\\alice\\report.txt",
			AccessMask:    windowsext.FILE_LIST_DIRECTORY,
			CreateOptions: windowsext.FILE_DIRECTORY_FILE,
			Disposition:   windowsext.FILE_OPEN,
			Root:          exampleRoot,
		})
		require.Equal(t, windowsext.ERROR_ACCESS_DENIED, err)
		require.Equal(t, 0, env.pool.Len())
	})

	t.Run("ExecuteAccessDenied", func(t *testing.T) {
		env := newHandlerTestEnvironment(ctrl, 32, false)
		env.expectLookup(ctx, "\\home\\alice\\report.txt", nfs41.LookupResult{
			Parent: exampleParent,
			File:   exampleFile,
			Info:   exampleFileInfo,
		}, nil)
		env.client.EXPECT().Access(ctx, env.session, &exampleFile, uint32(nfsv4.ACCESS4_EXECUTE|nfsv4.ACCESS4_READ)).
			Return(uint32(nfsv4.ACCESS4_EXECUTE|nfsv4.ACCESS4_READ), uint32(nfsv4.ACCESS4_READ), nil)

		_, err := env.handler.HandleOpen(ctx, &upcall.OpenArgs{
			Path:        "\\home\\alice\\report.txt",
			AccessMask:  windowsext.FILE_EXECUTE | windowsext.FILE_READ_DATA,
			Disposition: windowsext.FILE_OPEN,
			Root:        exampleRoot,
		})
		require.Equal(t, windowsext.ERROR_ACCESS_DENIED, err)
		require.Equal(t, 0, env.pool.Len())
	})

	t.Run("ExecuteAccessCheckFailure", func(t *testing.T) {
		env := newHandlerTestEnvironment(ctrl, 32, false)
		env.expectLookup(ctx, "\\home\\alice\\report.txt", nfs41.LookupResult{
			Parent: exampleParent,
			File:   exampleFile,
			Info:   exampleFileInfo,
		}, nil)
		env.client.EXPECT().Access(ctx, env.session, &exampleFile, gomock.Any()).
			Return(uint32(0), uint32(0), nfs41.StatusError(nfsv4.NFS4ERR_DELAY))

		_, err := env.handler.HandleOpen(ctx, &upcall.OpenArgs{
			Path:        "\\home\\alice\\report.txt",
			AccessMask:  windowsext.FILE_EXECUTE,
			Disposition: windowsext.FILE_OPEN,
			Root:        exampleRoot,
		})
		require.Equal(t, windowsext.ERROR_ACCESS_DENIED, err)
		require.Equal(t, 0, env.pool.Len())
	})

	t.Run("OpenRPCFailure", func(t *testing.T) {
		env := newHandlerTestEnvironment(ctrl, 32, false)
		env.expectLookup(ctx, "\\home\\alice\\report.txt", nfs41.LookupResult{
			Parent: exampleParent,
			File:   exampleFile,
			Info:   exampleFileInfo,
		}, nil)
		env.client.EXPECT().Open(ctx, env.session, gomock.Any(), gomock.Any(), gomock.Any(), nfsv4.OPEN4_NOCREATE, gomock.Any()).
			Return(nfs41.FileInfo{}, nfs41.StatusError(nfsv4.NFS4ERR_SHARE_DENIED))

		_, err := env.handler.HandleOpen(ctx, &upcall.OpenArgs{
			Path:        "\\home\\alice\\report.txt",
			AccessMask:  windowsext.FILE_WRITE_DATA,
			Disposition: windowsext.FILE_OPEN,
			Root:        exampleRoot,
		})
		require.Equal(t, windowsext.ERROR_SHARING_VIOLATION, err)
		require.Equal(t, 0, env.pool.Len())
	})

	t.Run("OpenRPCUnmappedFailure", func(t *testing.T) {
		env := newHandlerTestEnvironment(ctrl, 32, false)
		env.expectLookup(ctx, "\\home\\alice\\report.txt", nfs41.LookupResult{
			Parent: exampleParent,
		}, nfs41.StatusError(nfsv4.NFS4ERR_NOENT))
		env.client.EXPECT().Open(ctx, env.session, gomock.Any(), gomock.Any(), gomock.Any(), nfsv4.OPEN4_CREATE, gomock.Any()).
			Return(nfs41.FileInfo{}, nfs41.StatusError(nfsv4.NFS4ERR_DELAY))

		_, err := env.handler.HandleOpen(ctx, &upcall.OpenArgs{
			Path:        "\\home\\alice\\report.txt",
			AccessMask:  windowsext.FILE_WRITE_DATA,
			Disposition: windowsext.FILE_OVERWRITE_IF,
			Root:        exampleRoot,
		})
		require.Equal(t, windowsext.ERROR_FILE_NOT_FOUND, err)
		require.Equal(t, 0, env.pool.Len())
	})
}

func TestHandlerOpenFileAsDirectoryTolerated(t *testing.T) {
	ctrl, ctx := gomock.WithContext(context.Background(), t)
	env := newHandlerTestEnvironment(ctrl, 32, false)

	env.expectLookup(ctx, "\\home\\alice\\report.txt", nfs41.LookupResult{
		Parent: exampleParent,
		File:   exampleFile,
		Info:   exampleFileInfo,
	}, nil)
	env.client.EXPECT().Open(ctx, env.session, gomock.Any(), gomock.Any(), gomock.Any(), nfsv4.OPEN4_NOCREATE, gomock.Any()).Return(exampleFileInfo, nil)

	reply, err := env.handler.HandleOpen(ctx, &upcall.OpenArgs{
		Path:          "\\home\\alice\\report.txt",
		AccessMask:    windowsext.FILE_READ_DATA,
		CreateOptions: windowsext.FILE_DIRECTORY_FILE,
		Disposition:   windowsext.FILE_OPEN,
		Root:          exampleRoot,
	})
	require.NoError(t, err)
	require.Equal(t, nfsv4.NF4REG, env.requireOpenState(t, reply).Type)
}

func TestHandlerOpenExecuteAccess(t *testing.T) {
	ctrl, ctx := gomock.WithContext(context.Background(), t)

	t.Run("ReadSufficesIfExecuteUnsupported", func(t *testing.T) {
		env := newHandlerTestEnvironment(ctrl, 32, false)
		env.expectLookup(ctx, "\\home\\alice\\report.txt", nfs41.LookupResult{
			Parent: exampleParent,
			File:   exampleFile,
			Info:   exampleFileInfo,
		}, nil)
		env.client.EXPECT().Access(ctx, env.session, &exampleFile, gomock.Any()).
			Return(uint32(nfsv4.ACCESS4_READ), uint32(nfsv4.ACCESS4_READ), nil)
		env.client.EXPECT().Open(ctx, env.session, gomock.Any(), gomock.Any(), gomock.Any(), nfsv4.OPEN4_NOCREATE, gomock.Any()).Return(exampleFileInfo, nil)

		_, err := env.handler.HandleOpen(ctx, &upcall.OpenArgs{
			Path:        "\\home\\alice\\report.txt",
			AccessMask:  windowsext.FILE_EXECUTE,
			Disposition: windowsext.FILE_OPEN,
			Root:        exampleRoot,
		})
		require.NoError(t, err)
	})

	t.Run("ReadNotGranted", func(t *testing.T) {
		env := newHandlerTestEnvironment(ctrl, 32, false)
		env.expectLookup(ctx, "\\home\\alice\\report.txt", nfs41.LookupResult{
			Parent: exampleParent,
			File:   exampleFile,
			Info:   exampleFileInfo,
		}, nil)
		env.client.EXPECT().Access(ctx, env.session, &exampleFile, gomock.Any()).
			Return(uint32(nfsv4.ACCESS4_READ), uint32(0), nil)

		_, err := env.handler.HandleOpen(ctx, &upcall.OpenArgs{
			Path:        "\\home\\alice\\report.txt",
			AccessMask:  windowsext.FILE_EXECUTE,
			Disposition: windowsext.FILE_OPEN,
			Root:        exampleRoot,
		})
		require.Equal(t, windowsext.ERROR_ACCESS_DENIED, err)
	})

	t.Run("ExecuteGranted", func(t *testing.T) {
		env := newHandlerTestEnvironment(ctrl, 32, false)
		env.expectLookup(ctx, "\\home\\alice\\report.txt", nfs41.LookupResult{
			Parent: exampleParent,
			File:   exampleFile,
			Info:   exampleFileInfo,
		}, nil)
		env.client.EXPECT().Access(ctx, env.session, &exampleFile, gomock.Any()).
			Return(uint32(nfsv4.ACCESS4_EXECUTE|nfsv4.ACCESS4_READ), uint32(nfsv4.ACCESS4_EXECUTE), nil)
		env.client.EXPECT().Open(ctx, env.session, gomock.Any(), gomock.Any(), gomock.Any(), nfsv4.OPEN4_NOCREATE, gomock.Any()).Return(exampleFileInfo, nil)

		_, err := env.handler.HandleOpen(ctx, &upcall.OpenArgs{
			Path:        "\\home\\alice\\report.txt",
			AccessMask:  windowsext.FILE_EXECUTE,
			Disposition: windowsext.FILE_OPEN,
			Root:        exampleRoot,
		})
		require.NoError(t, err)
	})

	t.Run("SkippedForNewFiles", func(t *testing.T) {
		// Files that don't exist yet have no file handle
		// against which access can be checked.
		env := newHandlerTestEnvironment(ctrl, 32, false)
		env.expectLookup(ctx, "\\home\\alice\\report.txt", nfs41.LookupResult{
			Parent: exampleParent,
		}, nfs41.StatusError(nfsv4.NFS4ERR_NOENT))
		env.client.EXPECT().Open(ctx, env.session, gomock.Any(), gomock.Any(), gomock.Any(), nfsv4.OPEN4_CREATE, gomock.Any()).Return(exampleFileInfo, nil)

		_, err := env.handler.HandleOpen(ctx, &upcall.OpenArgs{
			Path:        "\\home\\alice\\report.txt",
			AccessMask:  windowsext.FILE_EXECUTE | windowsext.FILE_WRITE_DATA,
			Disposition: windowsext.FILE_CREATE,
			Root:        exampleRoot,
		})
		require.NoError(t, err)
	})
}

func TestHandlerOpenDirectory(t *testing.T) {
	ctrl, ctx := gomock.WithContext(context.Background(), t)

	t.Run("Existing", func(t *testing.T) {
		// Opening an existing directory requires no calls
		// beyond the lookup.
		env := newHandlerTestEnvironment(ctrl, 32, false)
		env.expectLookup(ctx, "\\home\\alice", nfs41.LookupResult{
			File: exampleParent,
			Info: nfs41.FileInfo{
				Type:      nfsv4.NF4DIR,
				Mode:      0o755,
				LinkCount: 3,
				Change:    1234,
			},
		}, nil)

		reply, err := env.handler.HandleOpen(ctx, &upcall.OpenArgs{
			Path:          "\\home\\alice",
			AccessMask:    windowsext.FILE_LIST_DIRECTORY,
			CreateOptions: windowsext.FILE_DIRECTORY_FILE,
			Disposition:   windowsext.FILE_OPEN,
			Root:          exampleRoot,
		})
		require.NoError(t, err)
		require.Equal(t, &upcall.OpenReply{
			BasicInformation: upcall.FileBasicInformation{
				FileAttributes: windowsext.FILE_ATTRIBUTE_DIRECTORY,
			},
			StandardInformation: upcall.FileStandardInformation{
				NumberOfLinks: 3,
				Directory:     true,
			},
			StateHandle:     reply.StateHandle,
			Mode:            0o755,
			ChangeAttribute: 1234,
		}, reply)

		state := env.requireOpenState(t, reply)
		require.False(t, state.DoClose)
		require.Equal(t, nfsv4.NF4DIR, state.Type)
	})

	t.Run("Create", func(t *testing.T) {
		env := newHandlerTestEnvironment(ctrl, 32, false)
		env.expectLookup(ctx, "\\home\\alice\\new", nfs41.LookupResult{
			Parent: exampleParent,
		}, nfs41.StatusError(nfsv4.NFS4ERR_NOENT))
		env.client.EXPECT().CreateDirectory(ctx, env.session, uint32(0o750), &exampleParent, &nfs41.PathFileHandle{
			Path: "\\home\\alice\\new",
			Name: "new",
		})

		reply, err := env.handler.HandleOpen(ctx, &upcall.OpenArgs{
			Path:          "\\home\\alice\\new",
			AccessMask:    windowsext.FILE_LIST_DIRECTORY,
			CreateOptions: windowsext.FILE_DIRECTORY_FILE,
			Disposition:   windowsext.FILE_OPEN_IF,
			Root:          exampleRoot,
			Mode:          0o750,
		})
		require.NoError(t, err)
		require.True(t, reply.Created)
		require.True(t, reply.StandardInformation.Directory)
		require.Equal(t, windowsext.ERROR_FILE_NOT_FOUND, reply.Informational)
		require.Equal(t, uint32(0o750), reply.Mode)
		require.False(t, env.requireOpenState(t, reply).DoClose)
	})

	t.Run("CreateExisting", func(t *testing.T) {
		env := newHandlerTestEnvironment(ctrl, 32, false)
		env.expectLookup(ctx, "\\home\\alice\\new", nfs41.LookupResult{
			Parent: exampleParent,
		}, nfs41.StatusError(nfsv4.NFS4ERR_NOENT))
		env.client.EXPECT().CreateDirectory(ctx, env.session, gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nfs41.StatusError(nfsv4.NFS4ERR_EXIST))

		_, err := env.handler.HandleOpen(ctx, &upcall.OpenArgs{
			Path:          "\\home\\alice\\new",
			CreateOptions: windowsext.FILE_DIRECTORY_FILE,
			Disposition:   windowsext.FILE_CREATE,
			Root:          exampleRoot,
		})
		require.Equal(t, windowsext.ERROR_FILE_EXISTS, err)
		require.Equal(t, 0, env.pool.Len())
	})
}

func TestHandlerOpenAttributesOnly(t *testing.T) {
	ctrl, ctx := gomock.WithContext(context.Background(), t)

	t.Run("Found", func(t *testing.T) {
		env := newHandlerTestEnvironment(ctrl, 32, false)
		env.expectLookup(ctx, "\\home\\alice\\report.txt", nfs41.LookupResult{
			Parent: exampleParent,
			File:   exampleFile,
			Info:   exampleFileInfo,
		}, nil)

		reply, err := env.handler.HandleOpen(ctx, &upcall.OpenArgs{
			Path:        "\\home\\alice\\report.txt",
			AccessMask:  windowsext.FILE_READ_ATTRIBUTES | windowsext.SYNCHRONIZE,
			Disposition: windowsext.FILE_OPEN,
			Root:        exampleRoot,
		})
		require.NoError(t, err)
		require.Equal(t, uint64(42), reply.ChangeAttribute)
		require.Equal(t, int64(1234), reply.StandardInformation.EndOfFile)
		require.False(t, env.requireOpenState(t, reply).DoClose)
	})

	t.Run("NotFound", func(t *testing.T) {
		env := newHandlerTestEnvironment(ctrl, 32, false)
		env.expectLookup(ctx, "\\home\\alice\\report.txt", nfs41.LookupResult{
			Parent: exampleParent,
		}, nfs41.StatusError(nfsv4.NFS4ERR_NOENT))

		_, err := env.handler.HandleOpen(ctx, &upcall.OpenArgs{
			Path:        "\\home\\alice\\report.txt",
			AccessMask:  windowsext.FILE_READ_ATTRIBUTES,
			Disposition: windowsext.FILE_OPEN_IF,
			Root:        exampleRoot,
		})
		require.Equal(t, windowsext.ERROR_FILE_NOT_FOUND, err)
		require.Equal(t, 0, env.pool.Len())
	})
}

func TestHandlerOpenDeferredSymlinkCreation(t *testing.T) {
	ctrl, ctx := gomock.WithContext(context.Background(), t)
	args := &upcall.OpenArgs{
		Path:          "\\home\\alice\\link",
		AccessMask:    windowsext.FILE_WRITE_ATTRIBUTES | windowsext.SYNCHRONIZE | windowsext.DELETE,
		CreateOptions: windowsext.FILE_OPEN_REPARSE_POINT,
		Disposition:   windowsext.FILE_CREATE,
		Root:          exampleRoot,
		Mode:          0o777,
	}

	t.Run("NotFound", func(t *testing.T) {
		// Creation of the file must be deferred until the
		// target of the symbolic link is set.
		env := newHandlerTestEnvironment(ctrl, 32, false)
		env.expectLookup(ctx, "\\home\\alice\\link", nfs41.LookupResult{
			Parent: exampleParent,
		}, nfs41.StatusError(nfsv4.NFS4ERR_NOENT))

		reply, err := env.handler.HandleOpen(ctx, args)
		require.NoError(t, err)
		require.False(t, reply.Created)

		state := env.requireOpenState(t, reply)
		require.False(t, state.DoClose)
		require.Same(t, exampleSuperblock, state.File.Handle.Superblock)
		require.Empty(t, state.File.Handle.Value)
	})

	t.Run("Found", func(t *testing.T) {
		env := newHandlerTestEnvironment(ctrl, 32, false)
		env.expectLookup(ctx, "\\home\\alice\\link", nfs41.LookupResult{
			Parent: exampleParent,
			File:   exampleFile,
			Info:   exampleFileInfo,
		}, nil)

		_, err := env.handler.HandleOpen(ctx, args)
		require.Equal(t, windowsext.ERROR_FILE_EXISTS, err)
		require.Equal(t, 0, env.pool.Len())
	})
}

func TestHandlerOpenSymlinks(t *testing.T) {
	ctrl, ctx := gomock.WithContext(context.Background(), t)
	args := &upcall.OpenArgs{
		Path:        "\\home\\alice\\link\\report.txt",
		AccessMask:  windowsext.FILE_READ_DATA,
		Disposition: windowsext.FILE_OPEN,
		Root:        exampleRoot,
	}
	link := nfs41.PathFileHandle{
		Path: "\\home\\alice\\link",
		Name: "link",
		Handle: nfs41.FileHandle{
			Value:      []byte{0x03},
			Superblock: exampleSuperblock,
		},
	}

	t.Run("EmbeddedChain", func(t *testing.T) {
		// Each resolved path leads to another symbolic link,
		// until the final lookup succeeds.
		env := newHandlerTestEnvironment(ctrl, 3, false)
		env.expectLookup(ctx, "\\home\\alice\\link\\report.txt", nfs41.LookupResult{
			Parent: link,
		}, nfs41.ErrReparse)
		gomock.InOrder(
			env.client.EXPECT().SymlinkTarget(ctx, env.session, &link, "\\home\\alice\\link\\report.txt").
				Return("\\a\\report.txt", nil),
			env.client.EXPECT().Lookup(ctx, exampleRoot, env.session, "\\a\\report.txt").
				Return(nfs41.LookupResult{Parent: link}, nfs41.ErrReparse),
			env.client.EXPECT().SymlinkTarget(ctx, env.session, &link, "\\a\\report.txt").
				Return("\\b\\report.txt", nil),
			env.client.EXPECT().Lookup(ctx, exampleRoot, env.session, "\\b\\report.txt").
				Return(nfs41.LookupResult{Parent: link}, nfs41.ErrReparse),
			env.client.EXPECT().SymlinkTarget(ctx, env.session, &link, "\\b\\report.txt").
				Return("\\c\\report.txt", nil),
			env.client.EXPECT().Lookup(ctx, exampleRoot, env.session, "\\c\\report.txt").
				Return(nfs41.LookupResult{}, nfs41.StatusError(nfsv4.NFS4ERR_NOENT)),
		)

		reply, err := env.handler.HandleOpen(ctx, args)
		require.NoError(t, err)
		require.Equal(t, &upcall.SymlinkReparse{
			Target:   "\\c\\report.txt",
			Embedded: true,
		}, reply.Symlink)
		require.Equal(t, nfs41.OpenStateHandle(0), reply.StateHandle)
		require.Equal(t, 0, env.pool.Len())
	})

	t.Run("TooManyLinks", func(t *testing.T) {
		env := newHandlerTestEnvironment(ctrl, 2, false)
		env.expectLookup(ctx, "\\home\\alice\\link\\report.txt", nfs41.LookupResult{
			Parent: link,
		}, nfs41.ErrReparse)
		env.client.EXPECT().SymlinkTarget(ctx, env.session, &link, gomock.Any()).
			Return("\\loop\\report.txt", nil).
			Times(2)
		env.client.EXPECT().Lookup(ctx, exampleRoot, env.session, "\\loop\\report.txt").
			Return(nfs41.LookupResult{Parent: link}, nfs41.ErrReparse).
			Times(2)

		_, err := env.handler.HandleOpen(ctx, args)
		require.Equal(t, windowsext.ERROR_TOO_MANY_LINKS, err)
		require.Equal(t, 0, env.pool.Len())
	})

	t.Run("EmbeddedTargetFailure", func(t *testing.T) {
		env := newHandlerTestEnvironment(ctrl, 32, false)
		env.expectLookup(ctx, "\\home\\alice\\link\\report.txt", nfs41.LookupResult{
			Parent: link,
		}, nfs41.ErrReparse)
		env.client.EXPECT().SymlinkTarget(ctx, env.session, &link, "\\home\\alice\\link\\report.txt").
			Return("", nfs41.StatusError(nfsv4.NFS4ERR_STALE))

		_, err := env.handler.HandleOpen(ctx, args)
		require.Equal(t, windowsext.ERROR_INVALID_HANDLE, err)
		require.Equal(t, 0, env.pool.Len())
	})

	t.Run("LastComponent", func(t *testing.T) {
		env := newHandlerTestEnvironment(ctrl, 32, false)
		env.expectLookup(ctx, "\\home\\alice\\link", nfs41.LookupResult{
			Parent: exampleParent,
			File:   link,
			Info:   nfs41.FileInfo{Type: nfsv4.NF4LNK},
		}, nil)
		env.client.EXPECT().SymlinkTarget(ctx, env.session, &link, "\\home\\alice\\link").
			Return("\\srv\\data", nil)

		reply, err := env.handler.HandleOpen(ctx, &upcall.OpenArgs{
			Path:        "\\home\\alice\\link",
			AccessMask:  windowsext.FILE_READ_DATA,
			Disposition: windowsext.FILE_OPEN,
			Root:        exampleRoot,
		})
		require.NoError(t, err)
		require.Equal(t, &upcall.SymlinkReparse{
			Target:   "\\srv\\data",
			Embedded: false,
		}, reply.Symlink)
		require.Equal(t, nfs41.OpenStateHandle(0), reply.StateHandle)
		require.Equal(t, 0, env.pool.Len())
	})

	t.Run("LastComponentTargetFailure", func(t *testing.T) {
		env := newHandlerTestEnvironment(ctrl, 32, false)
		env.expectLookup(ctx, "\\home\\alice\\link", nfs41.LookupResult{
			Parent: exampleParent,
			File:   link,
			Info:   nfs41.FileInfo{Type: nfsv4.NF4LNK},
		}, nil)
		env.client.EXPECT().SymlinkTarget(ctx, env.session, &link, "\\home\\alice\\link").
			Return("", nfs41.StatusError(nfsv4.NFS4ERR_IO))

		_, err := env.handler.HandleOpen(ctx, &upcall.OpenArgs{
			Path:        "\\home\\alice\\link",
			AccessMask:  windowsext.FILE_READ_DATA,
			Disposition: windowsext.FILE_OPEN,
			Root:        exampleRoot,
		})
		require.Equal(t, windowsext.ERROR_NET_WRITE_FAULT, err)
		require.Equal(t, 0, env.pool.Len())
	})

	t.Run("OpenReparsePoint", func(t *testing.T) {
		// Symbolic links pointing to directories are reported
		// as directories, so that they are displayed as such.
		env := newHandlerTestEnvironment(ctrl, 32, false)
		env.expectLookup(ctx, "\\home\\alice\\link", nfs41.LookupResult{
			Parent: exampleParent,
			File:   link,
			Info: nfs41.FileInfo{
				Type: nfsv4.NF4LNK,
				Mode: 0o777,
			},
		}, nil)
		env.client.EXPECT().SymlinkFollow(ctx, exampleRoot, env.session, &link).
			Return(nfs41.FileInfo{Type: nfsv4.NF4DIR}, nil)

		reply, err := env.handler.HandleOpen(ctx, &upcall.OpenArgs{
			Path:          "\\home\\alice\\link",
			AccessMask:    windowsext.FILE_READ_ATTRIBUTES,
			CreateOptions: windowsext.FILE_OPEN_REPARSE_POINT,
			Disposition:   windowsext.FILE_OPEN,
			Root:          exampleRoot,
		})
		require.NoError(t, err)
		require.Nil(t, reply.Symlink)
		require.Equal(
			t,
			uint32(windowsext.FILE_ATTRIBUTE_REPARSE_POINT|windowsext.FILE_ATTRIBUTE_DIRECTORY),
			reply.BasicInformation.FileAttributes)
		require.Equal(t, nfsv4.NF4LNK, env.requireOpenState(t, reply).Type)
	})
}

func TestHandlerOpenExecuteAccessLogging(t *testing.T) {
	ctrl, ctx := gomock.WithContext(context.Background(), t)
	client := mock.NewMockNFS41Client(ctrl)
	pool := nfs41.NewOpenStatePool(10)
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	h := handler.NewHandler(client, nfs41.NoopLayoutReleaser, pool, 32, false, logger)

	session := &nfs41.Session{}
	client.EXPECT().RootSession(exampleRoot).Return(session, nil)
	client.EXPECT().Lookup(ctx, exampleRoot, session, "\\home\\alice\\report.txt").Return(nfs41.LookupResult{
		Parent:  exampleParent,
		File:    exampleFile,
		Info:    exampleFileInfo,
		Session: session,
	}, nil)
	client.EXPECT().Access(ctx, session, &exampleFile, gomock.Any()).
		Return(uint32(nfsv4.ACCESS4_EXECUTE|nfsv4.ACCESS4_READ), uint32(nfsv4.ACCESS4_READ), nil)

	_, err := h.HandleOpen(ctx, &upcall.OpenArgs{
		Path:        "\\home\\alice\\report.txt",
		AccessMask:  windowsext.FILE_EXECUTE,
		Disposition: windowsext.FILE_OPEN,
		Root:        exampleRoot,
	})
	require.Equal(t, windowsext.ERROR_ACCESS_DENIED, err)

	var messages []string
	for _, entry := range hook.AllEntries() {
		if entry.Level == logrus.DebugLevel {
			messages = append(messages, entry.Message)
		}
	}
	require.Contains(t, messages, "User does not have execute access to file")
}
