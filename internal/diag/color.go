package diag

// Colorizer is the external collaborator spec §1/§9 calls out as "the
// terminal color/ANSI output used for debug dumps": this module only
// defines the interface and a no-color default. A real ANSI backend
// (cursor codes, 256-color palettes, terminal-width detection) is left
// external, specified only by this interface.
type Colorizer interface {
	// Kind wraps s in whatever styling the backend uses to highlight an
	// AST node kind (e.g. "BINARY") in a dump.
	Kind(s string) string
	// Type wraps s for a resolved value type (e.g. "i64").
	Type(s string) string
	// Dim wraps s for de-emphasized text (spans, punctuation).
	Dim(s string) string
}

// NoColor is the default Colorizer: every method returns its argument
// unchanged. Used whenever color is disabled (the common case for
// non-interactive/CI invocations) or until a real backend is wired in.
type NoColor struct{}

func (NoColor) Kind(s string) string { return s }
func (NoColor) Type(s string) string { return s }
func (NoColor) Dim(s string) string  { return s }

var _ Colorizer = NoColor{}
