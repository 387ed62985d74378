package logfields

import "log/slog"

// Canonical log field names shared by the pipeline packages.
const (
	KeyRunID      = "run_id"
	KeyStage      = "stage"
	KeyState      = "state"
	KeyTool       = "tool"
	KeyArgs       = "args"
	KeyExitCode   = "exit_code"
	KeyDurationMS = "duration_ms"
	KeyPath       = "path"
	KeyCount      = "count"
	KeyTarget     = "target"
	KeyError      = "error"
)

func RunID(id string) slog.Attr        { return slog.String(KeyRunID, id) }
func Stage(name string) slog.Attr      { return slog.String(KeyStage, name) }
func State(s string) slog.Attr         { return slog.String(KeyState, s) }
func Tool(name string) slog.Attr       { return slog.String(KeyTool, name) }
func Args(a []string) slog.Attr        { return slog.Any(KeyArgs, a) }
func ExitCode(c int) slog.Attr         { return slog.Int(KeyExitCode, c) }
func DurationMS(ms float64) slog.Attr  { return slog.Float64(KeyDurationMS, ms) }
func Path(p string) slog.Attr          { return slog.String(KeyPath, p) }
func Count(n int) slog.Attr            { return slog.Int(KeyCount, n) }
func Target(t string) slog.Attr        { return slog.String(KeyTarget, t) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
