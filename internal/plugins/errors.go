package plugins

import "errors"

// Load failures fall into the sentinel kinds below; loader open errors are
// passed through verbatim instead. Callers classify with errors.Is.
var (
	ErrDuplicate   = errors.New("plugin name already registered")
	ErrContract    = errors.New("plugin contract not satisfied")
	ErrValidation  = errors.New("plugin metadata invalid")
	ErrDependency  = errors.New("plugin dependency not satisfied")
	ErrInitialize  = errors.New("plugin initialization failed")
	ErrNotFound    = errors.New("plugin not registered")
	ErrUnsupported = errors.New("operation not supported by plugin")
)
