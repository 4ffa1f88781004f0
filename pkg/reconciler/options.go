package reconciler

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/deptmerge/internal/utils/ptr"
	"github.com/agentstation/deptmerge/pkg/errors"
	"github.com/agentstation/deptmerge/pkg/normalize"
)

// options configures a reconciler.
type options struct {
	policy       normalize.Policy
	noMatchLevel zerolog.Level
	altName      *string // NameAlt placeholder for leftover secondary rows
}

func defaultOptions() *options {
	return &options{
		policy:       normalize.DefaultPolicy,
		noMatchLevel: zerolog.InfoLevel,
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

// WithPolicy sets the normalization policy used to build match keys.
func WithPolicy(policy normalize.Policy) Option {
	return func(o *options) error {
		if !policy.Valid() {
			return errors.NewValidationError("policy", string(policy), "unknown normalization policy")
		}
		o.policy = policy
		return nil
	}
}

// WithNoMatchLevel sets the level of the per-row "no match" event.
// Only debug, info and warn are accepted.
func WithNoMatchLevel(level zerolog.Level) Option {
	return func(o *options) error {
		switch level {
		case zerolog.DebugLevel, zerolog.InfoLevel, zerolog.WarnLevel:
			o.noMatchLevel = level
			return nil
		default:
			return errors.NewValidationError("no_match_level", level.String(), "must be debug, info or warn")
		}
	}
}

// WithAltNamePlaceholder sets the NameAlt value of appended secondary rows.
// An empty placeholder leaves the column empty.
func WithAltNamePlaceholder(placeholder string) Option {
	return func(o *options) error {
		o.altName = ptr.StringOrNil(placeholder)
		return nil
	}
}
