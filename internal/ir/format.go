package ir

import (
	"fmt"
	"strings"
)

// FormatProgram returns a readable text representation of the program.
func FormatProgram(prog *Program) string {
	if prog == nil {
		return ""
	}

	var b strings.Builder
	for i, fn := range prog.Functions {
		if i > 0 {
			b.WriteString("\n")
		}
		writeFunction(&b, fn)
	}
	return b.String()
}

// FormatFunction returns a readable text representation of one function.
func FormatFunction(fn *Function) string {
	var b strings.Builder
	writeFunction(&b, fn)
	return b.String()
}

func writeFunction(b *strings.Builder, fn *Function) {
	if fn == nil {
		return
	}

	fmt.Fprintf(b, "fn %s(", fn.Sym.Name)
	for i, formal := range fn.Formals {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(b, "%s: %s", formal.Name, formal.Type)
	}
	b.WriteString(")")
	if fn.Sym.Return != nil {
		fmt.Fprintf(b, " -> %s", fn.Sym.Return)
	}
	if fn.IsPrototype() {
		b.WriteString(";\n")
		return
	}
	b.WriteString(" {\n")
	for _, stmt := range fn.Body {
		fmt.Fprintf(b, "  %s\n", FormatExpr(stmt))
	}
	b.WriteString("}\n")
}

// FormatExpr returns a one-line representation of an expression.
func FormatExpr(expr Expr) string {
	switch e := expr.(type) {
	case nil:
		return "<nil>"
	case *SymExpr:
		return e.Sym.Name
	case *DefExpr:
		return fmt.Sprintf("def %s: %s", e.Sym.Name, e.Sym.Type)
	case *LabelExpr:
		return e.Sym.Name + ":"
	case *GotoExpr:
		if e.Cond != nil {
			return fmt.Sprintf("goto %s if %s", e.Target.Name, FormatExpr(e.Cond))
		}
		return "goto " + e.Target.Name
	case *CallExpr:
		args := make([]string, len(e.Args))
		for i, a := range e.Args {
			args[i] = FormatExpr(a)
		}
		if e.Fn != nil {
			return fmt.Sprintf("%s(%s)", e.Fn.Name, strings.Join(args, ", "))
		}
		if e.Primitive == PrimReturn && len(args) == 0 {
			return "return"
		}
		return fmt.Sprintf("('%s' %s)", e.Primitive, strings.Join(args, " "))
	default:
		return fmt.Sprintf("<%T>", expr)
	}
}
