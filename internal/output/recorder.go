package output

import "fmt"

// Recorder is a Reporter that keeps messages in memory.
type Recorder struct {
	Infos []string
	Warns []string
}

// Info records an informational message.
func (r *Recorder) Info(format string, args ...any) {
	r.Infos = append(r.Infos, fmt.Sprintf(format, args...))
}

// Warn records a warning.
func (r *Recorder) Warn(format string, args ...any) {
	r.Warns = append(r.Warns, fmt.Sprintf(format, args...))
}

// Discard is a Reporter that drops every message.
var Discard Reporter = &discard{}

type discard struct{}

func (*discard) Info(string, ...any) {}
func (*discard) Warn(string, ...any) {}
