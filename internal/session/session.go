// Package session defines the explicit per-run state handed to every
// operation. The calling shell owns the session's lifecycle; operations
// only read it. This replaces the sticky folder selection the old
// dashboard kept in global UI state.
package session

import (
	"io"
	"path/filepath"

	"github.com/knd/schedrec/internal/schema"
)

// Session carries the operator's inputs and the resolved schema profile
// for a single operation run.
type Session struct {
	// Folder is the employer folder holding the schedule files and the
	// lookup table.
	Folder string

	// MasterPath is the master report file, when the operation needs it.
	MasterPath string

	// EmployerName overrides the employer name; empty means "use the
	// folder's base name".
	EmployerName string

	// Identifier is the membership number argument of search operations.
	Identifier string

	// Recursive selects whether schedule files are discovered through
	// the whole folder tree or only the top level.
	Recursive bool

	// Profile is the active schema configuration.
	Profile *schema.Profile

	// Out receives operator-facing result output (tables, summaries).
	// Log records go through the context logger instead.
	Out io.Writer
}

// Employer returns the effective employer name.
func (s *Session) Employer() string {
	if s.EmployerName != "" {
		return s.EmployerName
	}
	return filepath.Base(s.Folder)
}
