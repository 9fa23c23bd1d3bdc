package aliases

import (
	"github.com/buildbarn/bb-nfs41-daemon/pkg/nfs41"
	"github.com/buildbarn/bb-nfs41-daemon/pkg/upcall"
)

// This file contains aliases for some of the interfaces provided by the
// nfs41 and upcall packages. These aliases are used to rename them to
// prevent naming collisions with other interface types for which we
// want to generate mocks.

// NFS41Client is an alias of nfs41.Client.
type NFS41Client = nfs41.Client

// UpcallHandler is an alias of upcall.Handler.
type UpcallHandler = upcall.Handler

// LayoutReleaser is an alias of nfs41.LayoutReleaser.
type LayoutReleaser = nfs41.LayoutReleaser
