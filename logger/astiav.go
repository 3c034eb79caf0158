// astiav.go converts between go-belt log levels and libav log levels.

package logger

import (
	"github.com/asticode/go-astiav"
)

func LogLevelToAstiav(level Level) astiav.LogLevel {
	switch level {
	case LevelFatal:
		return astiav.LogLevelFatal
	case LevelPanic:
		return astiav.LogLevelPanic
	case LevelError:
		return astiav.LogLevelError
	case LevelWarning:
		return astiav.LogLevelWarning
	case LevelInfo:
		return astiav.LogLevelInfo
	case LevelDebug:
		return astiav.LogLevelDebug
	case LevelTrace:
		return astiav.LogLevelVerbose
	default:
		return astiav.LogLevelWarning
	}
}

func LogLevelFromAstiav(level astiav.LogLevel) Level {
	switch level {
	case astiav.LogLevelPanic:
		return LevelPanic
	case astiav.LogLevelFatal:
		return LevelFatal
	case astiav.LogLevelError:
		return LevelError
	case astiav.LogLevelWarning:
		return LevelWarning
	case astiav.LogLevelInfo:
		return LevelInfo
	case astiav.LogLevelVerbose, astiav.LogLevelDebug:
		return LevelDebug
	default:
		return LevelWarning
	}
}
