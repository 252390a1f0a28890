package middleware

import "log/slog"

// slogLevelFor maps a response status to a log level: server errors at
// error, client errors at warn, the rest at info.
func slogLevelFor(status int) slog.Level {
	switch {
	case status >= 500:
		return slog.LevelError
	case status >= 400:
		return slog.LevelWarn
	default:
		return slog.LevelInfo
	}
}
