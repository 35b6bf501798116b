package sensor

import "errors"

// ErrIllegalArgument is returned when construction parameters are malformed.
var ErrIllegalArgument = errors.New("illegal argument")
