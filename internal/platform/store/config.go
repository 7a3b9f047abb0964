package store

import "time"

// Config aggregates per backend configuration
type Config struct {
	AppName string

	PG PGConfig
	CH CHConfig
}

// PGConfig configures postgres connectivity and tracing
type PGConfig struct {
	Enabled     bool
	URL         string
	MaxConns    int32
	LogSQL      bool
	SlowQueryMs int

	// boot ping attempts, default 6
	ConnectRetries int
	// per attempt ping timeout, default 5s
	PingTimeout time.Duration
}

// CHConfig configures clickhouse connectivity
type CHConfig struct {
	Enabled bool
	URL     string
	// Tag is the build version reported as client info
	Tag string
}
