// Package log is a thin key/value wrapper around a zap sugared logger.
package log

import (
	"strings"
	"sync"

	"go.uber.org/zap"
)

// Debug levels are bits; several may be enabled at once.
const (
	DebugLevelApi uint64 = 1 << iota
	DebugLevelSql
)

var DebugLevelStrings = []string{"api", "sql"}

var debugLevelValue = map[string]uint64{
	"api": DebugLevelApi,
	"sql": DebugLevelSql,
}

var slogger *zap.SugaredLogger
var debugLevel uint64
var mux sync.Mutex

func init() {
	logger, _ := zap.NewDevelopment(zap.AddCallerSkip(1))
	defer logger.Sync()
	slogger = logger.Sugar()
}

func DebugLog(lvl uint64, msg string, keysAndValues ...interface{}) {
	if GetDebugLevel()&lvl == 0 {
		return
	}
	slogger.Infow(msg, keysAndValues...)
}

func InfoLog(msg string, keysAndValues ...interface{}) {
	slogger.Infow(msg, keysAndValues...)
}

func WarnLog(msg string, keysAndValues ...interface{}) {
	slogger.Warnw(msg, keysAndValues...)
}

func FatalLog(msg string, keysAndValues ...interface{}) {
	slogger.Fatalw(msg, keysAndValues...)
}

// Sync flushes buffered log entries. Call before exit.
func Sync() {
	slogger.Sync()
}

func SetDebugLevel(lvl uint64) {
	mux.Lock()
	defer mux.Unlock()
	debugLevel |= lvl
}

func ClearDebugLevel(lvl uint64) {
	mux.Lock()
	defer mux.Unlock()
	debugLevel &= ^lvl
}

func GetDebugLevel() uint64 {
	mux.Lock()
	defer mux.Unlock()
	return debugLevel
}

// SetDebugLevelStrs enables the levels named in a comma separated list.
// Unknown names are ignored.
func SetDebugLevelStrs(list string) {
	for _, str := range strings.Split(list, ",") {
		if val, ok := debugLevelValue[strings.TrimSpace(str)]; ok {
			SetDebugLevel(val)
		}
	}
}
