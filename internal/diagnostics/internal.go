package diagnostics

import "fmt"

// InternalError describes a compiler-bug condition detected by an analysis
// pass. It is raised as a panic value so the pass driver can unwind the
// analysis of one function and convert the failure into an error; user code
// never recovers it.
type InternalError struct {
	Message string
	Symbol  string // name of the offending symbol, if any
}

func (e *InternalError) Error() string {
	if e.Symbol != "" {
		return fmt.Sprintf("internal error: %s (symbol %s)", e.Message, e.Symbol)
	}
	return "internal error: " + e.Message
}

// Internal reports an internal invariant violation on bag and panics with an
// *InternalError carrying the same message.
func Internal(bag *Bag, symbol, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	diag := NewError(msg).WithCode(ErrInternal)
	if symbol != "" {
		diag = diag.WithNote("offending symbol: " + symbol)
	}
	if bag != nil {
		bag.Add(diag)
	}
	panic(&InternalError{Message: msg, Symbol: symbol})
}
