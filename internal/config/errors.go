package config

import "errors"

var (
	ErrConfigFileNotFound  = errors.New("config: file not found")
	ErrConfigFileRead      = errors.New("config: could not read file")
	ErrConfigInvalid       = errors.New("config: invalid")
	ErrScratchDirEmpty     = errors.New("config: scratch_dir must not be empty")
	ErrNoScannerConfigured = errors.New("config: one of scanner_cmd or scanner_url must be set")
)
