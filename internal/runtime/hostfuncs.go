package runtime

import (
	"context"

	"github.com/risor-io/risor/object"
	"go.uber.org/zap"

	"github.com/jward/hyprkeys/internal/parse"
)

// autoCommentFn exposes the built-in comment table to scripts.
//
// auto_comment(dispatcher, params) → string
var autoCommentFn = object.NewBuiltin("auto_comment", func(ctx context.Context, args ...object.Object) object.Object {
	if len(args) != 2 {
		return object.NewArgsError("auto_comment", 2, len(args))
	}
	dispatcher, ok := args[0].(*object.String)
	if !ok {
		return object.Errorf("auto_comment: dispatcher must be a string, got %s", args[0].Type())
	}
	params, ok := args[1].(*object.String)
	if !ok {
		return object.Errorf("auto_comment: params must be a string, got %s", args[1].Type())
	}
	return object.NewString(parse.AutoComment(dispatcher.Value(), params.Value()))
})

// logObject is proxied into scripts as the "log" global.
type logObject struct {
	logger *zap.Logger
}

func (l *logObject) Info(msg string) {
	l.logger.Info(msg)
}

func (l *logObject) Warn(msg string) {
	l.logger.Warn(msg)
}

func (l *logObject) Error(msg string) {
	l.logger.Error(msg)
}
