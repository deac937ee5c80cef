package diagnostics

import (
	"fmt"
	"io"
)

// Emitter renders diagnostics as plain text.
type Emitter struct {
	writer io.Writer
}

// NewEmitter creates an emitter writing to w
func NewEmitter(w io.Writer) *Emitter {
	return &Emitter{writer: w}
}

// Emit writes a single diagnostic
func (e *Emitter) Emit(diag *Diagnostic) {
	if diag.Code != "" {
		fmt.Fprintf(e.writer, "%s[%s]: %s\n", diag.Severity, diag.Code, diag.Message)
	} else {
		fmt.Fprintf(e.writer, "%s: %s\n", diag.Severity, diag.Message)
	}

	for _, label := range diag.Labels {
		marker := "---"
		if label.Style == Primary {
			marker = "^^^"
		}
		if label.Location != nil && label.Location.Start != nil {
			fmt.Fprintf(e.writer, "  %s %s:%d:%d %s\n",
				marker, label.Location.File(), label.Location.Start.Line, label.Location.Start.Column, label.Message)
		} else {
			fmt.Fprintf(e.writer, "  %s %s\n", marker, label.Message)
		}
	}

	for _, note := range diag.Notes {
		fmt.Fprintf(e.writer, "  note: %s\n", note.Message)
	}

	if diag.Help != "" {
		fmt.Fprintf(e.writer, "  help: %s\n", diag.Help)
	}
}
