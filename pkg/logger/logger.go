package logger

import (
	"go.uber.org/zap"
)

var Log *zap.Logger

func NewLogger() *zap.Logger {
	l, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	Log = l
	return l
}

// NewDevelopmentLogger is used by the terminal client, where the
// production JSON encoder would drown the command output.
func NewDevelopmentLogger() *zap.Logger {
	l, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	Log = l
	return l
}
