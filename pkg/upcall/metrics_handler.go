package upcall

import (
	"context"
	"sync"
	"time"

	"github.com/buildbarn/bb-nfs41-daemon/pkg/windowsext"
	"github.com/buildbarn/bb-storage/pkg/clock"
	"github.com/buildbarn/bb-storage/pkg/util"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	handlerPrometheusMetrics sync.Once

	handlerOperationsDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "buildbarn",
			Subsystem: "nfs41",
			Name:      "upcall_handler_operations_duration_seconds",
			Help:      "Amount of time spent per upcall, in seconds.",
			Buckets:   util.DecimalExponentialBuckets(-3, 6, 2),
		},
		[]string{"operation", "status"})
	handlerOpenResults = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "buildbarn",
			Subsystem: "nfs41",
			Name:      "upcall_handler_open_results_total",
			Help:      "Number of successful open upcalls, partitioned by whether a file was created or a reparse was requested.",
		},
		[]string{"result"})
)

type operationHistogram struct {
	ok      prometheus.Observer
	failure prometheus.ObserverVec
}

func newOperationHistogram(operation string) operationHistogram {
	return operationHistogram{
		ok:      handlerOperationsDurationSeconds.WithLabelValues(operation, windowsext.ERROR_SUCCESS.Error()),
		failure: handlerOperationsDurationSeconds.MustCurryWith(map[string]string{"operation": operation}),
	}
}

func (m *operationHistogram) observe(err error, timeStart, timeStop time.Time) {
	d := timeStop.Sub(timeStart).Seconds()
	if err == nil {
		m.ok.Observe(d)
	} else {
		m.failure.WithLabelValues(windowsext.ToWin32Error(err, windowsext.ERROR_INTERNAL_ERROR).Error()).Observe(d)
	}
}

var (
	operationHistogramOpen       = newOperationHistogram("Open")
	operationHistogramCancelOpen = newOperationHistogram("CancelOpen")
	operationHistogramClose      = newOperationHistogram("Close")

	openResultOpened  = handlerOpenResults.WithLabelValues("Opened")
	openResultCreated = handlerOpenResults.WithLabelValues("Created")
	openResultReparse = handlerOpenResults.WithLabelValues("Reparse")
)

type metricsHandler struct {
	base  Handler
	clock clock.Clock
}

// NewMetricsHandler creates a decorator for Handler that exposes
// Prometheus metrics for the duration and outcome of each upcall.
func NewMetricsHandler(base Handler, clock clock.Clock) Handler {
	handlerPrometheusMetrics.Do(func() {
		prometheus.MustRegister(handlerOperationsDurationSeconds)
		prometheus.MustRegister(handlerOpenResults)
	})

	return &metricsHandler{
		base:  base,
		clock: clock,
	}
}

func (h *metricsHandler) HandleOpen(ctx context.Context, args *OpenArgs) (*OpenReply, error) {
	timeStart := h.clock.Now()
	reply, err := h.base.HandleOpen(ctx, args)
	operationHistogramOpen.observe(err, timeStart, h.clock.Now())
	if err == nil {
		switch {
		case reply.Symlink != nil:
			openResultReparse.Inc()
		case reply.Created:
			openResultCreated.Inc()
		default:
			openResultOpened.Inc()
		}
	}
	return reply, err
}

func (h *metricsHandler) CancelOpen(ctx context.Context, args *OpenArgs, reply *OpenReply) error {
	timeStart := h.clock.Now()
	err := h.base.CancelOpen(ctx, args, reply)
	operationHistogramCancelOpen.observe(err, timeStart, h.clock.Now())
	return err
}

func (h *metricsHandler) HandleClose(ctx context.Context, args *CloseArgs) error {
	timeStart := h.clock.Now()
	err := h.base.HandleClose(ctx, args)
	operationHistogramClose.observe(err, timeStart, h.clock.Now())
	return err
}
