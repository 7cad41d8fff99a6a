package parse

// cursor is the position of a single forward scan over the input lines.
// It is shared by every level of the recursive build.
type cursor struct {
	lines []string
	pos   int
}

func (c *cursor) done() bool { return c.pos >= len(c.lines) }
func (c *cursor) current() string { return c.lines[c.pos] }
func (c *cursor) advance() { c.pos++ }

// Parser builds section trees. The zero value is ready to use.
type Parser struct {
	commenter Commenter
}

// Option configures a Parser.
type Option func(*Parser)

// WithCommenter replaces the built-in comment generator for binds that do
// not carry an explicit comment.
func WithCommenter(fn Commenter) Option {
	return func(p *Parser) {
		p.commenter = fn
	}
}

// New creates a Parser.
func New(opts ...Option) *Parser {
	p := &Parser{}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse builds the section tree for lines and returns the top-level
// sections. Binds that appear before the first heading belong to no section
// and are dropped.
func (p *Parser) Parse(lines []string) []Section {
	c := &cursor{lines: lines}
	root := p.build(c, 0, newSection("", 0))
	return root.Children
}

// ParseString splits text into lines and parses it.
func (p *Parser) ParseString(text string) []Section {
	return p.Parse(SplitLines(text))
}

// Parse parses text with the default comment generator.
func Parse(text string) []Section {
	return New().ParseString(text)
}

// build collects binds and child sections for a section opened by a
// heading of the given depth. It returns, leaving the cursor on the line,
// when it meets a heading that is not deeper than depth.
func (p *Parser) build(c *cursor, depth int, sec Section) Section {
	for !c.done() {
		line := classify(c.current())

		switch line.kind {
		case lineHeading:
			if line.depth <= depth {
				return sec
			}
			c.advance()
			child := p.build(c, line.depth, newSection(line.name, line.depth))
			sec.Children = append(sec.Children, child)
			continue
		case lineBind:
			if kb, ok := parseBind(line.payload, p.commenter); ok {
				sec.Keybinds = append(sec.Keybinds, kb)
			}
		}
		c.advance()
	}
	return sec
}
