package runtime

import (
	"context"
	"fmt"

	"github.com/risor-io/risor/object"
	"go.uber.org/zap"

	"github.com/jward/hyprkeys/internal/parse"
)

// Commenter generates keybind comments with a user script. The script sees
// these globals and its last expression is the comment:
//
//	dispatcher  string
//	params      string
//	key         string
//	mods        list of strings
//	fallback    string, the built-in comment
//
// A result of nil or "" keeps the fallback.
type Commenter struct {
	rt     *Runtime
	source string
	label  string
}

// NewCommenter loads the comment script at path.
func (r *Runtime) NewCommenter(path string) (*Commenter, error) {
	src, err := r.LoadScript(path)
	if err != nil {
		return nil, err
	}
	return &Commenter{rt: r, source: src, label: path}, nil
}

// NewSourceCommenter wraps inline script source.
func (r *Runtime) NewSourceCommenter(source string) *Commenter {
	return &Commenter{rt: r, source: source, label: "<inline>"}
}

// Source returns the script text.
func (c *Commenter) Source() string {
	return c.source
}

// Comment runs the script for kb.
func (c *Commenter) Comment(ctx context.Context, kb parse.KeyBinding) (string, error) {
	fallback := parse.DefaultCommenter(kb)

	mods := make([]object.Object, len(kb.Mods))
	for i, m := range kb.Mods {
		mods[i] = object.NewString(m)
	}

	result, err := c.rt.eval(ctx, c.source, c.label, map[string]any{
		"dispatcher": kb.Dispatcher,
		"params":     kb.Params,
		"key":        kb.Key,
		"mods":       object.NewList(mods),
		"fallback":   fallback,
	})
	if err != nil {
		return fallback, err
	}

	switch v := result.(type) {
	case nil:
		return fallback, nil
	case *object.String:
		if v.Value() == "" {
			return fallback, nil
		}
		return v.Value(), nil
	}
	if result == object.Nil {
		return fallback, nil
	}
	return fallback, fmt.Errorf("runtime: script %s returned %s, want string", c.label, result.Type())
}

// Func adapts the Commenter to the parser hook. Script failures are logged
// and the built-in comment is used, so a broken script never aborts a parse.
func (c *Commenter) Func(ctx context.Context) parse.Commenter {
	return func(kb parse.KeyBinding) string {
		comment, err := c.Comment(ctx, kb)
		if err != nil {
			c.rt.logger.Warn("comment script failed",
				zap.String("script", c.label),
				zap.String("dispatcher", kb.Dispatcher),
				zap.String("key", kb.Key),
				zap.Error(err),
			)
		}
		return comment
	}
}
