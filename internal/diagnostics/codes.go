package diagnostics

// Error codes for the mid-end passes
const (
	// Ownership analysis (A prefix)
	ErrInternal           = "A0001"
	WarnUninitializedCopy = "A0002"
)
