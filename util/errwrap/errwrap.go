// Package errwrap contains some error helpers.
package errwrap

import (
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
)

// Wrapf adds a formatted message onto an existing chain of errors. If err is
// nil, Wrapf returns nil.
func Wrapf(err error, format string, args ...interface{}) error {
	return errors.Wrapf(err, format, args...)
}

// Append safely accumulates err onto reterr, for building up an aggregate
// error across several independent checks (e.g. admission collecting one
// refusal reason per conflicting owner). A nil reterr is replaced outright;
// a nil err is a no-op; only once both sides are real errors does this
// allocate a multierror.Error.
func Append(reterr, err error) error {
	if reterr == nil {
		return err
	}
	if err == nil {
		return reterr
	}
	return multierror.Append(reterr, err)
}
