package store

import "time"

// Config aggregates per backend configuration
type Config struct {
	AppName string

	PG  PGConfig
	CH  CHConfig
	RDS RedisConfig
}

// PGConfig configures postgres connectivity and tracing
type PGConfig struct {
	Enabled     bool
	URL         string
	MaxConns    int32
	LogSQL      bool
	SlowQueryMs int

	// Guard/boot knobs:
	ConnectRetries int           // default 6 (63s(ish) max with exponential backoff)
	PingTimeout    time.Duration // default 5s
}

// CHConfig configures clickhouse connectivity
type CHConfig struct {
	Enabled bool
	URL     string

	// ClientName/ClientTag annotate the connection for server-side tracing
	ClientName string
	ClientTag  string
}

// RedisConfig configures redis connectivity for the counter seam
type RedisConfig struct {
	Enabled  bool
	Addr     string
	DB       int
	Password string

	// All timeouts must stay well below any caller deadline so a slow
	// redis degrades to local fallback rather than stalling requests
	DialTimeout  time.Duration // default 500ms
	ReadTimeout  time.Duration // default 1s
	WriteTimeout time.Duration // default 1s
}
