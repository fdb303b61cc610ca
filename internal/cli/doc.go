// Package cli turns command-line arguments into an app.Config: the
// command name, the employer folder, and the option flags. It owns the
// usage text and the process-level exit-code contract; operation errors
// are someone else's job.
package cli
