package nfs41

import (
	"context"
	"sync"

	"github.com/buildbarn/go-xdr/pkg/protocols/nfsv4"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	clientPrometheusMetrics sync.Once

	clientOperations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "buildbarn",
			Subsystem: "nfs41",
			Name:      "client_operations_total",
			Help:      "Number of operations performed against the NFSv4.1 server while processing open and close upcalls.",
		},
		[]string{"operation", "status"})
)

type metricsClient struct {
	base Client

	lookupOK, symlinkTargetOK, symlinkFollowOK, openOK prometheus.Counter
	createDirectoryOK, closeOK, removeOK, accessOK     prometheus.Counter
}

// NewMetricsClient creates a decorator for Client that exposes
// Prometheus metrics for the number of operations performed, labeled by
// the NFSv4 status that was returned.
func NewMetricsClient(base Client) Client {
	clientPrometheusMetrics.Do(func() {
		prometheus.MustRegister(clientOperations)
	})

	// Already create counters for the case where NFS4_OK is
	// returned. This allows us to skip calls to WithLabelValues()
	// in the common case.
	okName := nfsv4.Nfsstat4_name[nfsv4.NFS4_OK]
	return &metricsClient{
		base: base,

		lookupOK:          clientOperations.WithLabelValues("Lookup", okName),
		symlinkTargetOK:   clientOperations.WithLabelValues("SymlinkTarget", okName),
		symlinkFollowOK:   clientOperations.WithLabelValues("SymlinkFollow", okName),
		openOK:            clientOperations.WithLabelValues("Open", okName),
		createDirectoryOK: clientOperations.WithLabelValues("CreateDirectory", okName),
		closeOK:           clientOperations.WithLabelValues("Close", okName),
		removeOK:          clientOperations.WithLabelValues("Remove", okName),
		accessOK:          clientOperations.WithLabelValues("Access", okName),
	}
}

func (c *metricsClient) observe(operation string, ok prometheus.Counter, err error) {
	if err == nil {
		ok.Inc()
		return
	}
	statusStr := "UNKNOWN"
	if st, isStatus := StatusOf(err); isStatus {
		if name, found := nfsv4.Nfsstat4_name[st]; found {
			statusStr = name
		}
	}
	clientOperations.WithLabelValues(operation, statusStr).Inc()
}

func (c *metricsClient) RootSession(root RootHandle) (*Session, error) {
	return c.base.RootSession(root)
}

func (c *metricsClient) Lookup(ctx context.Context, root RootHandle, session *Session, path string) (LookupResult, error) {
	result, err := c.base.Lookup(ctx, root, session, path)
	c.observe("Lookup", c.lookupOK, err)
	return result, err
}

func (c *metricsClient) SymlinkTarget(ctx context.Context, session *Session, link *PathFileHandle, path string) (string, error) {
	target, err := c.base.SymlinkTarget(ctx, session, link, path)
	c.observe("SymlinkTarget", c.symlinkTargetOK, err)
	return target, err
}

func (c *metricsClient) SymlinkFollow(ctx context.Context, root RootHandle, session *Session, link *PathFileHandle) (FileInfo, error) {
	info, err := c.base.SymlinkFollow(ctx, root, session, link)
	c.observe("SymlinkFollow", c.symlinkFollowOK, err)
	return info, err
}

func (c *metricsClient) Open(ctx context.Context, session *Session, state *OpenState, allow, deny uint32, create nfsv4.Opentype4, mode uint32) (FileInfo, error) {
	info, err := c.base.Open(ctx, session, state, allow, deny, create, mode)
	c.observe("Open", c.openOK, err)
	return info, err
}

func (c *metricsClient) CreateDirectory(ctx context.Context, session *Session, mode uint32, parent, file *PathFileHandle) error {
	err := c.base.CreateDirectory(ctx, session, mode, parent, file)
	c.observe("CreateDirectory", c.createDirectoryOK, err)
	return err
}

func (c *metricsClient) Close(ctx context.Context, session *Session, state *OpenState) error {
	err := c.base.Close(ctx, session, state)
	c.observe("Close", c.closeOK, err)
	return err
}

func (c *metricsClient) Remove(ctx context.Context, session *Session, parent *PathFileHandle, name string) error {
	err := c.base.Remove(ctx, session, parent, name)
	c.observe("Remove", c.removeOK, err)
	return err
}

func (c *metricsClient) Access(ctx context.Context, session *Session, file *PathFileHandle, requested uint32) (uint32, uint32, error) {
	supported, granted, err := c.base.Access(ctx, session, file, requested)
	c.observe("Access", c.accessOK, err)
	return supported, granted, err
}
