package reconciler

import (
	"github.com/agentstation/sheetsync/pkg/errors"
	"github.com/agentstation/sheetsync/pkg/export"
)

// options configures a reconciler.
type options struct {
	force        bool
	trackingPath string
	exporter     *export.Writer
}

func defaultOptions() *options {
	return &options{
		trackingPath: "sheets_tracking.json",
		exporter:     export.New(""),
	}
}

// Option is a function that configures a Reconciler.
type Option func(*options) error

func (options *options) apply(opts ...Option) (*options, error) {
	for _, opt := range opts {
		if err := opt(options); err != nil {
			return nil, err
		}
	}
	return options, nil
}

// newOptions returns reconciler options with default values.
func newOptions(opts ...Option) (*options, error) {
	return defaultOptions().apply(opts...)
}

// WithForce bypasses change detection: every source processes and every
// commit overwrites the stored fingerprint.
func WithForce(force bool) Option {
	return func(o *options) error {
		o.force = force
		return nil
	}
}

// WithTrackingPath sets where the tracking store is loaded from and saved to.
func WithTrackingPath(path string) Option {
	return func(o *options) error {
		if path == "" {
			return &errors.ValidationError{
				Field:   "trackingPath",
				Message: "cannot be empty",
			}
		}
		o.trackingPath = path
		return nil
	}
}

// WithExporter sets the export artifact writer.
func WithExporter(w *export.Writer) Option {
	return func(o *options) error {
		if w == nil {
			return &errors.ValidationError{
				Field:   "exporter",
				Message: "cannot be nil",
			}
		}
		o.exporter = w
		return nil
	}
}
