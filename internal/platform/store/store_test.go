package store

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
)

func TestOpen_EmptyConfigLeavesSeamsNil(t *testing.T) {
	t.Parallel()

	s, err := Open(context.Background(), Config{})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if s.PG != nil || s.CH != nil || s.RDS != nil {
		t.Fatalf("disabled backends were opened: PG=%T CH=%T RDS=%T", s.PG, s.CH, s.RDS)
	}
	if err := s.Close(context.Background()); err != nil {
		t.Fatalf("Close on empty store: %v", err)
	}
}

func TestOpen_BadBackendURLsFail(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		cfg  Config
	}{
		{"pg", Config{PG: PGConfig{Enabled: true, URL: "://bad"}}},
		{"ch", Config{CH: CHConfig{Enabled: true, URL: "://bad"}}},
		{
			// pg fails before ch is ever attempted
			"pg then ch",
			Config{
				PG: PGConfig{Enabled: true, URL: "://bad"},
				CH: CHConfig{Enabled: true, URL: "://bad"},
			},
		},
	}
	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()
			s, err := Open(context.Background(), c.cfg)
			if err == nil {
				t.Fatalf("Open accepted a bad %s URL", c.name)
			}
			if s != nil {
				t.Fatalf("store not nil on error: %#v", s)
			}
		})
	}
}

// A failing redis must not block boot. Limiting degrades to local counting,
// so the store opens with the RDS seam left nil.
func TestOpen_RedisUnavailableDegrades(t *testing.T) {
	t.Parallel()

	s, err := Open(context.Background(), Config{
		RDS: RedisConfig{Enabled: true, Addr: ""},
	})
	if err != nil {
		t.Fatalf("Open failed instead of degrading: %v", err)
	}
	if s.RDS != nil {
		t.Fatalf("RDS seam set after failed open: %T", s.RDS)
	}
	if err := s.Close(context.Background()); err != nil {
		t.Fatalf("Close: %v", err)
	}
}

func TestOpen_WithLoggerOption(t *testing.T) {
	t.Parallel()

	var zl zerolog.Logger
	s, err := Open(context.Background(), Config{}, WithLogger(zl))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if e := s.Close(context.Background()); e != nil {
		t.Fatalf("Close: %v", e)
	}
}
