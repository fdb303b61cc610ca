package app

import "errors"

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	Command string // operation name, e.g. "validate"
	Folder  string // employer folder

	MasterPath  string // master report .xlsx, required by lookup and validate
	ProfilePath string // optional schema profile .hcl
	Employer    string // employer name override
	Identifier  string // membership number argument for search
	Recursive   bool

	LogFormat string
	LogLevel  string
}

// NewConfig validates a Config. Command and Folder are required for every
// operation; operation-specific inputs are validated by the operation
// itself so the error can carry remediation text.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.Command == "" {
		return nil, errors.New("a command is required")
	}
	if cfg.Folder == "" {
		return nil, errors.New("the employer folder is a required configuration field and cannot be empty")
	}
	return &cfg, nil
}
