package parse

import "strings"

// bindFieldCount is the number of comma separated fields a bind needs: the
// "bind = MODS" lead, the key, the dispatcher and its parameters. Extra commas
// stay in the parameters.
const bindFieldCount = 4

// parseBind turns a bind payload into a KeyBinding. ok is false for lines
// that are not real binds: comment-only text, too few fields, or binds
// marked hidden.
func parseBind(payload string, commenter Commenter) (kb KeyBinding, ok bool) {
	line := strings.TrimSpace(payload)
	if line == "" || strings.HasPrefix(line, "#") {
		return KeyBinding{}, false
	}

	fields := strings.SplitN(line, ",", bindFieldCount)
	if len(fields) < bindFieldCount {
		return KeyBinding{}, false
	}
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}
	keySpec, dispatcher, params := fields[1], fields[2], fields[3]

	if strings.Contains(params, hiddenMarker) {
		return KeyBinding{}, false
	}

	mods, key := splitKeySpec(keySpec)
	kb = KeyBinding{
		Mods:       mods,
		Key:        key,
		Dispatcher: dispatcher,
		Params:     params,
	}

	if i := strings.IndexByte(params, '#'); i >= 0 {
		kb.Params = strings.TrimSpace(params[:i])
		kb.Comment = strings.TrimSpace(params[i+1:])
		return kb, true
	}

	if commenter == nil {
		commenter = DefaultCommenter
	}
	kb.Comment = commenter(kb)
	return kb, true
}

// splitKeySpec splits "MOD1 MOD2 KEY" into its modifiers and the final key.
func splitKeySpec(spec string) ([]string, string) {
	tokens := strings.Fields(spec)
	if len(tokens) <= 1 {
		return []string{}, spec
	}
	last := len(tokens) - 1
	return tokens[:last], tokens[last]
}
