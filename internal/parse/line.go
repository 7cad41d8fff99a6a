package parse

import "strings"

const (
	// hiddenMarker in a bind's parameters removes it from the tree.
	hiddenMarker = "[hidden]"
	// commentBindMarker prefixes binds written as comments.
	commentBindMarker = "#/#"
	bindKeyword       = "bind"
)

type lineKind int

const (
	lineOther lineKind = iota
	lineHeading
	lineBind
)

// classifiedLine is the result of looking at a single configuration line.
type classifiedLine struct {
	kind lineKind

	// Heading fields.
	depth int
	name  string

	// payload is the text bind parsing starts from.
	payload string
}

// headingDepth reports the length of a "#+!" marker at the very start of
// line, or 0 when the line does not open with one.
func headingDepth(line string) int {
	n := 0
	for n < len(line) && line[n] == '#' {
		n++
	}
	if n == 0 || n >= len(line) || line[n] != '!' {
		return 0
	}
	return n + 1
}

// classify decides whether line is a heading, a bind directive or neither.
func classify(line string) classifiedLine {
	if depth := headingDepth(line); depth > 0 {
		return classifiedLine{
			kind:  lineHeading,
			depth: depth,
			name:  strings.TrimSpace(line[depth:]),
		}
	}

	trimmed := strings.TrimSpace(line)
	switch {
	case strings.HasPrefix(trimmed, commentBindMarker):
		return classifiedLine{kind: lineBind, payload: trimmed[len(commentBindMarker):]}
	case strings.HasPrefix(trimmed, bindKeyword):
		return classifiedLine{kind: lineBind, payload: trimmed}
	}
	return classifiedLine{kind: lineOther}
}

// SplitLines splits text on '\n' and drops a trailing '\r' from every line,
// so files written with either line ending parse the same.
func SplitLines(text string) []string {
	text = strings.TrimSuffix(text, "\n")
	if text == "" {
		return nil
	}
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}
