package engine

import "errors"

// ErrInvalidPattern is reported when a pattern template cannot be compiled;
// pattern filtering is disabled for the run.
var ErrInvalidPattern = errors.New("invalid pattern template")
