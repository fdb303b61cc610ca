package registry

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/knd/schedrec/internal/session"
)

// Module is the interface that all operation modules must implement to be
// registered.
type Module interface {
	Register(r *Registry)
}

// Operation is one named engine operation exposed as a CLI command.
type Operation struct {
	// Name is the command name the operator types.
	Name string

	// Summary is the one-line description shown in usage output.
	Summary string

	// Run executes the operation against the given session.
	Run func(ctx context.Context, sess *session.Session) error
}

// Registry holds all registered operations for a single application
// instance.
type Registry struct {
	ops map[string]*Operation
}

// New creates and initializes a new Registry instance.
func New() *Registry {
	return &Registry{ops: make(map[string]*Operation)}
}

// RegisterOperation adds an operation. Registering the same name twice is
// a programmer error and panics.
func (r *Registry) RegisterOperation(op *Operation) {
	if _, exists := r.ops[op.Name]; exists {
		panic(fmt.Sprintf("operation with name '%s' already registered", op.Name))
	}
	slog.Debug("Registering operation.", "name", op.Name)
	r.ops[op.Name] = op
}

// Lookup returns the operation registered under name.
func (r *Registry) Lookup(name string) (*Operation, bool) {
	op, ok := r.ops[name]
	return op, ok
}

// Names returns all registered operation names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.ops))
	for name := range r.ops {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Operations returns all registered operations ordered by name.
func (r *Registry) Operations() []*Operation {
	ops := make([]*Operation, 0, len(r.ops))
	for _, name := range r.Names() {
		ops = append(ops, r.ops[name])
	}
	return ops
}
