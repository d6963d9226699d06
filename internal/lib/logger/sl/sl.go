package sl

import (
	"log/slog"
)

// Err creates a slog.Attr with the given error. A nil error is logged as an empty string.
func Err(err error) slog.Attr {
	if err == nil {
		return slog.String("error", "")
	}

	return slog.Attr{
		Key:   "error",
		Value: slog.StringValue(err.Error()),
	}
}

// Op scopes a logger to the named operation and division.
func Op(log *slog.Logger, opn, division string) *slog.Logger {
	return log.With(
		slog.String("op", opn),
		slog.String("division", division),
	)
}
