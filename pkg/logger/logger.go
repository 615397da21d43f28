package logger

import (
	"go.uber.org/zap"
)

var log *zap.SugaredLogger = zap.NewNop().Sugar()

// Init replaces the global logger. Development config in anything but
// production, JSON output otherwise.
func Init(env string) error {
	var (
		l   *zap.Logger
		err error
	)
	if env == "production" {
		l, err = zap.NewProduction()
	} else {
		l, err = zap.NewDevelopment()
	}
	if err != nil {
		return err
	}
	zap.ReplaceGlobals(l)
	log = l.Sugar()
	return nil
}

func Infof(format string, args ...interface{})  { log.Infof(format, args...) }
func Errorf(format string, args ...interface{}) { log.Errorf(format, args...) }
func Fatalf(format string, args ...interface{}) { log.Fatalf(format, args...) }

// Sync flushes buffered log entries.
func Sync() {
	_ = log.Sync()
}
