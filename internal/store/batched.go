package store

// Batch buffers the rows of one file's tree in memory using fake (negative)
// IDs, so a parse worker can build it without touching SQLite. CommitBatch
// writes it in a single transaction. A Batch is owned by one goroutine.
type Batch struct {
	File     File
	Sections []Section
	Keybinds []Keybind
	Programs []BindProgram

	nextFakeID int64 // starts at -1, decrements
}

// NewBatch creates a Batch for the given file record.
func NewBatch(f File) *Batch {
	return &Batch{File: f, nextFakeID: -1}
}

func (b *Batch) allocFakeID() int64 {
	id := b.nextFakeID
	b.nextFakeID--
	return id
}

func (b *Batch) InsertSection(sec *Section) (int64, error) {
	sec.ID = b.allocFakeID()
	b.Sections = append(b.Sections, *sec)
	return sec.ID, nil
}

func (b *Batch) InsertKeybind(kb *Keybind) (int64, error) {
	kb.ID = b.allocFakeID()
	b.Keybinds = append(b.Keybinds, *kb)
	return kb.ID, nil
}

func (b *Batch) InsertProgram(p *BindProgram) (int64, error) {
	p.ID = b.allocFakeID()
	b.Programs = append(b.Programs, *p)
	return p.ID, nil
}
