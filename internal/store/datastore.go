package store

// TreeWriter receives the rows of a parsed section tree. Both Store (direct
// SQLite) and Batch (in-memory buffering for parallel indexing) implement
// it.
type TreeWriter interface {
	// Each insert returns the assigned ID.
	InsertSection(sec *Section) (int64, error)
	InsertKeybind(kb *Keybind) (int64, error)
	InsertProgram(p *BindProgram) (int64, error)
}

// Compile-time checks.
var (
	_ TreeWriter = (*Store)(nil)
	_ TreeWriter = (*Batch)(nil)
)
