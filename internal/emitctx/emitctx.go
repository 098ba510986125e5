// Package emitctx holds the per-run mutable state threaded through every
// target backend's emitter calls: indentation depth, the output buffer,
// and the monotonic feature/include/import latches that accumulate while
// walking the AST and are read back once, after the walk, to assemble a
// preamble.
package emitctx

import (
	"fmt"
	"sort"
	"strings"
)

// Context is the shared generator state a backend carries across one
// Generate call. It is never a package-level singleton: each call to
// backend.Backend.Generate constructs a fresh Context.
type Context struct {
	sb     strings.Builder
	Depth  int
	indent string

	features map[string]bool
	includes map[string]bool
	imports  map[string]bool

	guardCounter int
}

// New creates a Context that indents with unit (e.g. "    " or "\t").
func New(unit string) *Context {
	return &Context{
		indent:   unit,
		features: make(map[string]bool),
		includes: make(map[string]bool),
		imports:  make(map[string]bool),
	}
}

// Emit appends s verbatim, with no indentation or trailing newline.
func (c *Context) Emit(s string) {
	c.sb.WriteString(s)
}

// Emitf appends a formatted string, with no indentation or trailing newline.
func (c *Context) Emitf(format string, args ...any) {
	fmt.Fprintf(&c.sb, format, args...)
}

// EmitLine writes the current indent, s, and a trailing newline. An empty s
// writes a bare newline with no indent.
func (c *Context) EmitLine(s string) {
	if s == "" {
		c.sb.WriteString("\n")
		return
	}
	c.sb.WriteString(c.IndentStr())
	c.sb.WriteString(s)
	c.sb.WriteString("\n")
}

// EmitLinef is EmitLine with fmt.Sprintf formatting.
func (c *Context) EmitLinef(format string, args ...any) {
	c.EmitLine(fmt.Sprintf(format, args...))
}

// IncIndent and DecIndent are the scoped indent helpers every block-walking
// emitter call must pair up, including on error and early-return paths, so
// Depth returns to its entry value on every exit.
func (c *Context) IncIndent() { c.Depth++ }
func (c *Context) DecIndent() {
	if c.Depth > 0 {
		c.Depth--
	}
}

// IndentStr returns the current indentation prefix.
func (c *Context) IndentStr() string {
	return strings.Repeat(c.indent, c.Depth)
}

// String returns everything emitted so far.
func (c *Context) String() string {
	return c.sb.String()
}

// AddFeature latches a feature tag (e.g. "scope_guard", "optional") that the
// body just emitted depends on. Latches are set-only: once added, a tag
// stays added for the rest of the run.
func (c *Context) AddFeature(tag string) { c.features[tag] = true }

// HasFeature reports whether tag has been latched.
func (c *Context) HasFeature(tag string) bool { return c.features[tag] }

// Features returns the latched feature tags in stable lexicographic order.
func (c *Context) Features() []string { return sortedKeys(c.features) }

// AddInclude latches a header/include the body needs (C++-style).
func (c *Context) AddInclude(path string) { c.includes[path] = true }

// Includes returns latched includes in stable lexicographic order.
func (c *Context) Includes() []string { return sortedKeys(c.includes) }

// AddImport latches a module import the body needs (Python/Rust/TS-style).
func (c *Context) AddImport(path string) { c.imports[path] = true }

// Imports returns latched imports in stable lexicographic order.
func (c *Context) Imports() []string { return sortedKeys(c.imports) }

// NeedsScopeGuard reports whether any finally/demum clause so far required
// a scope-guard lowering (C++ backend) — a shorthand over
// HasFeature("scope_guard").
func (c *Context) NeedsScopeGuard() bool { return c.HasFeature("scope_guard") }

// FreshGuard returns a unique scope-guard variable name for this run and
// marks the scope_guard feature as needed. Names are `_demum_0`, `_demum_1`,
// ... in allocation order, guaranteeing no two guards in one output collide.
func (c *Context) FreshGuard() string {
	c.AddFeature("scope_guard")
	name := fmt.Sprintf("_demum_%d", c.guardCounter)
	c.guardCounter++
	return name
}

func sortedKeys(m map[string]bool) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
