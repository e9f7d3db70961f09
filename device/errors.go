package device

import "github.com/pkg/errors"

// ErrConfig marks a configuration mistake. The openarm facade returns it at
// init time for an arity mismatch, an unrecognised motor type, or
// overlapping receive IDs; this package returns it for a missing gripper
// motor and for a control command sent to a motor with no control mode
// configured.
var ErrConfig = errors.New("device: configuration error")

func errConfig(format string, args ...interface{}) error {
	return errors.Wrapf(ErrConfig, format, args...)
}
