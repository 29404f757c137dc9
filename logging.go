package libgo

import "github.com/icco/gutil/logging"

const (
	// GCPProject is the project this runs in.
	GCPProject = "libgo"

	// Service is the name of this service.
	Service = "libgo"

	// Version is the library version.
	Version = "0.6.0"
)

var (
	log = logging.Must(logging.NewLogger(Service))
)
