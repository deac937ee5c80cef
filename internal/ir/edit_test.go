package ir

import (
	"testing"

	"github.com/krunalpuri/chapel/internal/types"
)

func testFunction() (*Function, []Expr) {
	rec := types.NewRecord("R", nil)
	x := NewVariable("x", rec)
	stmts := []Expr{
		NewDefExpr(x),
		NewMove(NewSymExpr(x), NewPrimInit(rec)),
		NewReturn(nil),
	}
	fn := NewFunction(NewFunctionSymbol("f", types.TypeVoid))
	fn.Append(stmts...)
	return fn, stmts
}

// Test inserting before an existing statement
func TestInsertBefore(t *testing.T) {
	fn, stmts := testFunction()
	marker := NewDefExpr(NewVariable("m", types.TypeInt))

	if !fn.InsertBefore(stmts[2], marker) {
		t.Fatal("InsertBefore failed to find the statement")
	}

	if len(fn.Body) != 4 {
		t.Fatalf("body has %d statements, want 4", len(fn.Body))
	}
	if fn.Body[2] != Expr(marker) || fn.Body[3] != stmts[2] {
		t.Error("statement not inserted immediately before the target")
	}
}

// Test inserting after an existing statement
func TestInsertAfter(t *testing.T) {
	fn, stmts := testFunction()
	marker := NewDefExpr(NewVariable("m", types.TypeInt))

	if !fn.InsertAfter(stmts[1], marker) {
		t.Fatal("InsertAfter failed to find the statement")
	}

	if fn.Body[1] != stmts[1] || fn.Body[2] != Expr(marker) || fn.Body[3] != stmts[2] {
		t.Error("statement not inserted immediately after the target")
	}
}

// Test that editing reports a missing target
func TestInsertMissingTarget(t *testing.T) {
	fn, _ := testFunction()
	stranger := NewReturn(nil)

	if fn.InsertBefore(stranger, NewReturn(nil)) {
		t.Error("InsertBefore should fail for a statement outside the body")
	}
	if fn.InsertAfter(stranger, NewReturn(nil)) {
		t.Error("InsertAfter should fail for a statement outside the body")
	}
	if len(fn.Body) != 3 {
		t.Error("failed insert should not modify the body")
	}
}
