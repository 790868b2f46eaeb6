package redis

// Config holds Redis connection settings
type Config struct {
	// URL is a redis:// connection URL
	URL string
	// KeyPrefix namespaces every key this backend writes
	KeyPrefix string
	// PoolSize is the connection pool size
	PoolSize int
	// MinIdleConns is the minimum number of idle connections
	MinIdleConns int
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		URL:          "redis://localhost:6379",
		KeyPrefix:    "scorekeeper",
		PoolSize:     10,
		MinIdleConns: 2,
	}
}
