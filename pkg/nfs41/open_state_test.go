package nfs41_test

import (
	"strings"
	"testing"

	"github.com/buildbarn/bb-nfs41-daemon/pkg/nfs41"
	"github.com/buildbarn/bb-nfs41-daemon/pkg/windowsext"
	"github.com/stretchr/testify/require"
)

func TestOpenStateSetPath(t *testing.T) {
	pool := nfs41.NewOpenStatePool(1)
	_, state, err := pool.Allocate("\\link\\file", 1)
	require.NoError(t, err)
	state.File.Handle.Value = []byte{1, 2, 3}
	state.Parent.Handle.Value = []byte{4, 5, 6}

	t.Run("Success", func(t *testing.T) {
		// Names must be recomputed and file handles discarded,
		// as they refer to the previous path.
		require.NoError(t, state.SetPath("\\target\\dir\\file"))
		require.Equal(t, "\\target\\dir\\file", state.Path())
		require.Equal(t, nfs41.PathFileHandle{
			Path: "\\target\\dir\\file",
			Name: "file",
		}, state.File)
		require.Equal(t, nfs41.PathFileHandle{
			Path: "\\target\\dir",
			Name: "dir",
		}, state.Parent)
	})

	t.Run("TooLong", func(t *testing.T) {
		require.Equal(t, nfs41.ErrPathTooLong, state.SetPath(strings.Repeat("\\x", nfs41.MaximumPathLength)))
		require.Equal(t, "\\target\\dir\\file", state.Path())
	})
}

func TestOpenStateSillyRename(t *testing.T) {
	pool := nfs41.NewOpenStatePool(3)

	t.Run("Success", func(t *testing.T) {
		_, state, err := pool.Allocate("\\home\\report.txt", 1)
		require.NoError(t, err)
		state.File.Handle.Value = []byte{1, 2, 3, 4}

		require.NoError(t, state.SillyRename())
		sillyName := "report.txt.nfs197180f04a6f29e4e9029c39eeef81c0"
		require.Equal(t, "\\home\\"+sillyName, state.Path())
		require.Equal(t, sillyName, state.File.Name)
		require.Equal(t, "\\home\\"+sillyName, state.File.Path)
		require.Equal(t, []byte{1, 2, 3, 4}, []byte(state.File.Handle.Value))
		require.Equal(t, "\\home", state.Parent.Path)
	})

	t.Run("ComponentTooLong", func(t *testing.T) {
		path := "\\home\\" + strings.Repeat("n", 230)
		_, state, err := pool.Allocate(path, 1)
		require.NoError(t, err)

		err = state.SillyRename()
		require.Equal(t, windowsext.ERROR_FILENAME_EXCED_RANGE, windowsext.ToWin32Error(err, windowsext.ERROR_INTERNAL_ERROR))
		require.Equal(t, path, state.Path())
	})

	t.Run("PathTooLong", func(t *testing.T) {
		path := strings.Repeat("\\"+strings.Repeat("d", 99), 12) + "\\" + strings.Repeat("n", 49)
		_, state, err := pool.Allocate(path, 1)
		require.NoError(t, err)

		require.Equal(t, nfs41.ErrPathTooLong, state.SillyRename())
		require.Equal(t, path, state.Path())
	})
}
