package configuration

import (
	"github.com/buildbarn/bb-nfs41-daemon/pkg/handler"
	"github.com/buildbarn/bb-nfs41-daemon/pkg/nfs41"
	"github.com/buildbarn/bb-nfs41-daemon/pkg/upcall"
	"github.com/buildbarn/bb-storage/pkg/clock"
	"github.com/buildbarn/bb-storage/pkg/util"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/trace"
)

// NewDispatcherFromConfiguration creates the chain of upcall handlers
// described by the configuration, and returns a Dispatcher that routes
// upcalls to it.
func NewDispatcherFromConfiguration(configuration *ApplicationConfiguration, client nfs41.Client, layoutReleaser nfs41.LayoutReleaser, tracerProvider trace.TracerProvider) (*upcall.Dispatcher, error) {
	level, err := logrus.ParseLevel(configuration.LogLevel)
	if err != nil {
		return nil, util.StatusWrap(err, "Invalid log level")
	}
	logger := logrus.New()
	logger.SetLevel(level)

	if configuration.Metrics {
		client = nfs41.NewMetricsClient(client)
	}
	h := handler.NewHandler(
		client,
		layoutReleaser,
		nfs41.NewOpenStatePool(configuration.MaximumOpenStates),
		configuration.MaximumSymlinkDepth,
		configuration.RejectFileOpenedAsDirectory,
		logger)
	if configuration.Metrics {
		h = upcall.NewMetricsHandler(h, clock.SystemClock)
	}
	if configuration.Tracing {
		h = upcall.NewTracingHandler(h, tracerProvider)
	}
	return upcall.NewDispatcher(h, logger), nil
}
