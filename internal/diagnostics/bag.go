package diagnostics

import (
	"fmt"
	"io"
	"sync"
)

// Bag collects diagnostics during compilation
type Bag struct {
	diagnostics []*Diagnostic
	mu          sync.Mutex
	errorCount  int
	warnCount   int
}

// NewBag creates a new diagnostic bag
func NewBag() *Bag {
	return &Bag{
		diagnostics: make([]*Diagnostic, 0),
	}
}

// Add adds a diagnostic to the bag
func (b *Bag) Add(diag *Diagnostic) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.diagnostics = append(b.diagnostics, diag)

	switch diag.Severity {
	case Error:
		b.errorCount++
	case Warning:
		b.warnCount++
	}
}

// HasErrors returns true if there are any errors
func (b *Bag) HasErrors() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.errorCount > 0
}

// ErrorCount returns the number of errors
func (b *Bag) ErrorCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.errorCount
}

// WarningCount returns the number of warnings
func (b *Bag) WarningCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.warnCount
}

// Diagnostics returns a copy of all diagnostics (thread-safe)
func (b *Bag) Diagnostics() []*Diagnostic {
	b.mu.Lock()
	defer b.mu.Unlock()
	// Return a copy to prevent races if caller iterates while other goroutines append
	result := make([]*Diagnostic, len(b.diagnostics))
	copy(result, b.diagnostics)
	return result
}

// EmitAll writes every collected diagnostic to w, followed by a summary line.
func (b *Bag) EmitAll(w io.Writer) {
	emitter := NewEmitter(w)

	for _, diag := range b.Diagnostics() {
		emitter.Emit(diag)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.errorCount > 0 {
		fmt.Fprintf(w, "\ncompilation failed with %d error(s)", b.errorCount)
		if b.warnCount > 0 {
			fmt.Fprintf(w, " and %d warning(s)", b.warnCount)
		}
		fmt.Fprintln(w)
	} else if b.warnCount > 0 {
		fmt.Fprintf(w, "\ncompilation succeeded with %d warning(s)\n", b.warnCount)
	}
}

// Clear removes all diagnostics
func (b *Bag) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.diagnostics = make([]*Diagnostic, 0)
	b.errorCount = 0
	b.warnCount = 0
}
