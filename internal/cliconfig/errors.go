package cliconfig

import "errors"

var (
	errConfigFileNotFound     = errors.New("config file not found")
	errConfigFileRead         = errors.New("failed to read config file")
	errConfigInvalid          = errors.New("invalid config")
	errUnknownStrategyName    = errors.New("unknown strategy")
	errNegativeRandomAttempts = errors.New("random_attempts must not be negative")
	errNegativeWindowSize     = errors.New("window_size must not be negative")
)
