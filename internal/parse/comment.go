package parse

import "strings"

// Commenter produces the comment for a bind that has no explicit one. The
// binding passed in has every field set except Comment.
type Commenter func(kb KeyBinding) string

// commentRule maps a lowercase dispatcher name to a formatter receiving the
// first whitespace-separated token of the bind parameters.
type commentRule struct {
	dispatcher string
	format     func(arg string) string
}

func fixed(text string) func(string) string {
	return func(string) string { return text }
}

var commentRules = []commentRule{
	{"resizewindow", fixed("Resize window")},
	{"movewindow", fixed("Move window")},
	{"togglefloating", fixed("Toggle floating")},
	{"fullscreen", fixed("Toggle fullscreen")},
	{"workspace", func(arg string) string { return "Switch to workspace " + arg }},
	{"movetoworkspace", func(arg string) string { return "Move to workspace " + arg }},
	{"exec", execComment},
}

func execComment(cmd string) string {
	if strings.Contains(cmd, "rofi") {
		switch {
		case strings.Contains(cmd, "drun"):
			return "Open application launcher"
		case strings.Contains(cmd, "emoji"):
			return "Open emoji picker"
		}
	}
	return "Run: " + cmd
}

// AutoComment describes a bind from its dispatcher and parameters. Unknown
// dispatchers fall back to "<dispatcher> <params>".
func AutoComment(dispatcher, params string) string {
	name := strings.ToLower(dispatcher)
	for _, r := range commentRules {
		if r.dispatcher == name {
			return r.format(firstField(params))
		}
	}
	return strings.TrimSpace(dispatcher + " " + params)
}

// DefaultCommenter is the Commenter used when none is configured.
func DefaultCommenter(kb KeyBinding) string {
	return AutoComment(kb.Dispatcher, kb.Params)
}

func firstField(s string) string {
	if f := strings.Fields(s); len(f) > 0 {
		return f[0]
	}
	return ""
}
