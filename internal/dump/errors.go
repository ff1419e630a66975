package dump

import "errors"

// Error variables for config loading and invocation.
var (
	ErrConfigFileNotFound = errors.New("config file not found")
	ErrConfigFileRead     = errors.New("cannot read config file")
	ErrConfigInvalid      = errors.New("invalid config file")
	ErrInvoke             = errors.New("cannot run dump tool")
)
