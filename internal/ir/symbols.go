package ir

import (
	"github.com/krunalpuri/chapel/internal/source"
	"github.com/krunalpuri/chapel/internal/types"
)

// SymbolKind categorizes symbols
type SymbolKind int

const (
	SymbolVariable SymbolKind = iota
	SymbolParameter
	SymbolFunction
	SymbolLabel
)

// Flag marks resolved properties of a symbol.
type Flag uint8

const (
	// FlagDestructor marks a function that releases the heap state of its
	// first argument. Auto-destroy wrappers carry it as well.
	FlagDestructor Flag = 1 << iota

	// FlagPrototype marks a function declared without a body.
	FlagPrototype
)

// Symbol represents a declared entity (variable, parameter, function, label).
type Symbol struct {
	Name     string
	Kind     SymbolKind
	Type     types.SemType // semantic type of the symbol
	Return   types.SemType // return type, for function symbols
	Flags    Flag
	Location source.Location
}

// NewVariable creates a local variable symbol of the given type.
func NewVariable(name string, typ types.SemType) *Symbol {
	return &Symbol{Name: name, Kind: SymbolVariable, Type: typ}
}

// NewParameter creates a formal parameter symbol of the given type.
func NewParameter(name string, typ types.SemType) *Symbol {
	return &Symbol{Name: name, Kind: SymbolParameter, Type: typ}
}

// NewFunctionSymbol creates a function symbol with the given return type.
func NewFunctionSymbol(name string, ret types.SemType) *Symbol {
	return &Symbol{Name: name, Kind: SymbolFunction, Return: ret}
}

// NewLabelSymbol creates a label symbol for jump targets.
func NewLabelSymbol(name string) *Symbol {
	return &Symbol{Name: name, Kind: SymbolLabel}
}

// HasFlag reports whether f is set on the symbol.
func (s *Symbol) HasFlag(f Flag) bool {
	return s.Flags&f != 0
}

// SetFlag sets f on the symbol and returns it for chaining.
func (s *Symbol) SetFlag(f Flag) *Symbol {
	s.Flags |= f
	return s
}

// IsLocalOrParameter reports whether the symbol is a local variable or a
// formal parameter.
func (s *Symbol) IsLocalOrParameter() bool {
	return s.Kind == SymbolVariable || s.Kind == SymbolParameter
}

// Function is a resolved function: its symbol, formals, and a flat statement
// list. A nil body belongs to a prototype.
type Function struct {
	Sym     *Symbol
	Formals []*Symbol
	Body    []Expr
}

// NewFunction creates a function with the given symbol and formals.
func NewFunction(sym *Symbol, formals ...*Symbol) *Function {
	return &Function{Sym: sym, Formals: formals}
}

// IsPrototype reports whether the function has no body to analyze.
func (f *Function) IsPrototype() bool {
	return f.Sym.HasFlag(FlagPrototype) || f.Body == nil
}

// Append adds statements to the end of the function body.
func (f *Function) Append(stmts ...Expr) *Function {
	f.Body = append(f.Body, stmts...)
	return f
}

// Program is the root of the resolved IR.
type Program struct {
	Functions []*Function
}
