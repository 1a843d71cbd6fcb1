package syntax

// Diagnostic is a human-readable message anchored to a byte range of
// the source text. The core attaches no machine-readable codes;
// consumers classify on their own terms.
type Diagnostic struct {
	Range   TextRange
	Message string
}
