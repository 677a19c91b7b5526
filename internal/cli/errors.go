package cli

import "errors"

var (
	errCommandRequired  = errors.New("oracle command is required")
	errDirectoryMissing = errors.New("--directory does not exist")
	errNoFilesFound     = errors.New("no source files found under --directory")
	errAborted          = errors.New("aborted")
)
