package configuration

import (
	"encoding/json"
	"os"
	"strings"

	"github.com/buildbarn/bb-storage/pkg/util"
	"github.com/google/go-jsonnet"
	"github.com/sirupsen/logrus"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ApplicationConfiguration contains the settings of the daemon that
// affect the processing of open and close upcalls.
type ApplicationConfiguration struct {
	// Name of the logrus level at which messages are logged.
	LogLevel string `json:"logLevel"`
	// Maximum number of symbolic links that are resolved while
	// reparsing a single open.
	MaximumSymlinkDepth int `json:"maximumSymlinkDepth"`
	// Maximum number of files that may be opened at the same time.
	MaximumOpenStates int `json:"maximumOpenStates"`
	// Fail opens of regular files that carry FILE_DIRECTORY_FILE,
	// instead of logging a warning.
	RejectFileOpenedAsDirectory bool `json:"rejectFileOpenedAsDirectory"`
	// Expose Prometheus metrics for upcalls and NFSv4.1 operations.
	Metrics bool `json:"metrics"`
	// Create an OpenTelemetry span for every upcall.
	Tracing bool `json:"tracing"`
}

// GetApplicationConfiguration reads the configuration from file and
// fills in default values.
func GetApplicationConfiguration(path string) (*ApplicationConfiguration, error) {
	var applicationConfiguration ApplicationConfiguration
	if err := unmarshalConfigurationFromFile(path, &applicationConfiguration); err != nil {
		return nil, util.StatusWrap(err, "Failed to retrieve configuration")
	}
	if err := setDefaultApplicationValues(&applicationConfiguration); err != nil {
		return nil, err
	}
	return &applicationConfiguration, nil
}

// unmarshalConfigurationFromFile evaluates a Jsonnet file and decodes
// the resulting JSON into a structure. Environment variables are
// exposed to the configuration as external variables, so that they can
// be accessed through std.extVar().
func unmarshalConfigurationFromFile(path string, configuration any) error {
	vm := jsonnet.MakeVM()
	for _, environmentVariable := range os.Environ() {
		if key, value, ok := strings.Cut(environmentVariable, "="); ok {
			vm.ExtVar(key, value)
		}
	}
	data, err := vm.EvaluateFile(path)
	if err != nil {
		return util.StatusWrapWithCode(err, codes.InvalidArgument, "Failed to evaluate configuration")
	}

	decoder := json.NewDecoder(strings.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(configuration); err != nil {
		return util.StatusWrapWithCode(err, codes.InvalidArgument, "Failed to unmarshal configuration")
	}
	return nil
}

func setDefaultApplicationValues(applicationConfiguration *ApplicationConfiguration) error {
	if applicationConfiguration.LogLevel == "" {
		applicationConfiguration.LogLevel = logrus.InfoLevel.String()
	} else if _, err := logrus.ParseLevel(applicationConfiguration.LogLevel); err != nil {
		return status.Errorf(codes.InvalidArgument, "Invalid log level %#v", applicationConfiguration.LogLevel)
	}

	switch {
	case applicationConfiguration.MaximumSymlinkDepth < 0:
		return status.Error(codes.InvalidArgument, "Maximum symbolic link depth cannot be negative")
	case applicationConfiguration.MaximumSymlinkDepth == 0:
		applicationConfiguration.MaximumSymlinkDepth = 32
	}
	switch {
	case applicationConfiguration.MaximumOpenStates < 0:
		return status.Error(codes.InvalidArgument, "Maximum number of open states cannot be negative")
	case applicationConfiguration.MaximumOpenStates == 0:
		applicationConfiguration.MaximumOpenStates = 65536
	}
	return nil
}
