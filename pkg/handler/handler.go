package handler

import (
	"github.com/buildbarn/bb-nfs41-daemon/pkg/nfs41"
	"github.com/buildbarn/bb-nfs41-daemon/pkg/upcall"
	"github.com/sirupsen/logrus"
)

type nfs41Handler struct {
	client                      nfs41.Client
	layoutReleaser              nfs41.LayoutReleaser
	pool                        *nfs41.OpenStatePool
	maximumSymlinkDepth         int
	rejectFileOpenedAsDirectory bool
	logger                      logrus.FieldLogger
}

// NewHandler creates an upcall.Handler that processes open and close
// upcalls by calling into an NFSv4.1 server. Open states are stored in
// the provided pool until the corresponding close upcall is received.
//
// Regular files opened with FILE_DIRECTORY_FILE are permitted to be
// opened, unless rejectFileOpenedAsDirectory is set. Some applications
// (e.g., Notepad) are known to open files this way.
func NewHandler(client nfs41.Client, layoutReleaser nfs41.LayoutReleaser, pool *nfs41.OpenStatePool, maximumSymlinkDepth int, rejectFileOpenedAsDirectory bool, logger logrus.FieldLogger) upcall.Handler {
	return &nfs41Handler{
		client:                      client,
		layoutReleaser:              layoutReleaser,
		pool:                        pool,
		maximumSymlinkDepth:         maximumSymlinkDepth,
		rejectFileOpenedAsDirectory: rejectFileOpenedAsDirectory,
		logger:                      logger,
	}
}
