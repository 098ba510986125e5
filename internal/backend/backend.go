// Package backend defines the Backend interface every target emitter
// implements, plus a small registry so the compiler driver and CLI can
// select a backend by its target selector string ("cpp", "rs", "py",
// "zig", "ts", "fab") without importing every target package directly.
package backend

import "github.com/faberlang/faber/internal/ast"

// Backend turns a checked Program into surface syntax for one target. A
// Backend is a pure function of (Program, its own internal config) — it
// performs no I/O and holds no state between Generate calls.
type Backend interface {
	// Name is the target selector this backend answers to.
	Name() string
	// Generate emits the Program as this target's surface syntax.
	Generate(prog *ast.Program) (string, error)
}

var registry = make(map[string]Backend)

// Register makes b available under its own Name(). Called from each
// target package's init().
func Register(b Backend) {
	registry[b.Name()] = b
}

// Get looks up a registered backend by target selector.
func Get(name string) (Backend, bool) {
	b, ok := registry[name]
	return b, ok
}

// Names returns every registered target selector, in registration order is
// not guaranteed; callers that need a stable order should sort it.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	return names
}
