package pg

import (
	"context"

	"apiwarden/internal/platform/logger"

	"github.com/rs/zerolog"
)

// QueryEvent is one completed statement as seen by the adapter layer.
type QueryEvent struct {
	SQL       string
	Args      any
	ElapsedUS int64
	Err       error
	Slow      bool
}

type QueryTracer interface {
	OnQuery(ctx context.Context, ev QueryEvent)
}

// Tracer builds a QueryTracer on top of root. The child logger is forced to
// debug so LogSQL output survives a stricter process-wide level.
func Tracer(root logger.Logger) QueryTracer {
	return &zlTracer{
		log: root.Level(zerolog.DebugLevel).With().Str("component", "pg").Logger(),
	}
}

type zlTracer struct{ log logger.Logger }

func (z *zlTracer) OnQuery(_ context.Context, ev QueryEvent) {
	evt := z.log.Info()
	if ev.Slow {
		evt = z.log.Warn()
	}
	evt.Float64("elapsed_ms", float64(ev.ElapsedUS)/1000.0).
		Bool("slow", ev.Slow).
		Str("sql", compact(ev.SQL)).
		Interface("args", ev.Args).
		Err(ev.Err).
		Msg("pg query")
}

// compact collapses runs of whitespace so multi-line SQL logs as one line.
func compact(s string) string {
	out := make([]rune, 0, len(s))
	ws := false
	for _, r := range s {
		switch r {
		case ' ', '\n', '\t', '\r':
			if !ws {
				out = append(out, ' ')
				ws = true
			}
		default:
			ws = false
			out = append(out, r)
		}
	}
	return string(out)
}
