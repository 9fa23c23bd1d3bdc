package upcall_test

import (
	"encoding/binary"
	"testing"

	"github.com/buildbarn/bb-nfs41-daemon/pkg/upcall"
	"github.com/stretchr/testify/require"
)

func TestDecodeCloseArgs(t *testing.T) {
	t.Run("WithoutRemove", func(t *testing.T) {
		b := binary.LittleEndian.AppendUint64(nil, 0xfeedf00d)
		b = binary.LittleEndian.AppendUint64(b, 0x0000000200000005)
		b = append(b, 0)

		args, err := upcall.DecodeCloseArgs(b)
		require.NoError(t, err)
		require.Equal(t, &upcall.CloseArgs{
			Root:        0xfeedf00d,
			StateHandle: 0x0000000200000005,
		}, args)
	})

	t.Run("WithRemove", func(t *testing.T) {
		b := binary.LittleEndian.AppendUint64(nil, 0xfeedf00d)
		b = binary.LittleEndian.AppendUint64(b, 0x0000000200000005)
		b = append(b, 1)
		b = appendName(b, "\\tmp\\junk")
		b = append(b, 1)

		args, err := upcall.DecodeCloseArgs(b)
		require.NoError(t, err)
		require.Equal(t, &upcall.CloseArgs{
			Root:        0xfeedf00d,
			StateHandle: 0x0000000200000005,
			Remove:      true,
			Path:        "\\tmp\\junk",
			Renamed:     true,
		}, args)
	})

	t.Run("Truncated", func(t *testing.T) {
		b := binary.LittleEndian.AppendUint64(nil, 0xfeedf00d)
		b = binary.LittleEndian.AppendUint64(b, 0x0000000200000005)
		b = append(b, 1)
		b = appendName(b, "\\tmp\\junk")

		_, err := upcall.DecodeCloseArgs(b)
		require.Equal(t, &upcall.CodecError{Kind: upcall.CodecErrorTruncated, Field: "renamed"}, err)
	})
}

func TestEncodeCloseReply(t *testing.T) {
	n, err := upcall.EncodeCloseReply(make([]byte, 16))
	require.NoError(t, err)
	require.Equal(t, 0, n)
}
