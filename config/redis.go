package config

import "strings"

// RedisConfig locates the Redis deployment that holds session token slots.
// It is only consulted when SESSION_BACKEND=redis. Cluster mode wins over
// sentinel mode, which wins over a single node at URI.
type RedisConfig struct {
	// URI is host:port or a redis:// / rediss:// URL. In cluster mode without
	// CLUSTER_NODES it seeds node discovery.
	URI      string `env:"URI"      envDefault:"localhost:6379"`
	Password string `env:"PASSWORD" envDefault:""`

	UseSentinel        bool     `env:"USE_SENTINEL"         envDefault:"false"`
	SentinelNodes      []string `env:"SENTINEL_NODES"       envDefault:"localhost:26379"`
	SentinelMasterName string   `env:"SENTINEL_MASTER_NAME" envDefault:"mymaster"`
	SentinelPassword   string   `env:"SENTINEL_PASSWORD"    envDefault:""`

	UseCluster   bool     `env:"USE_CLUSTER"   envDefault:"false"`
	ClusterNodes []string `env:"CLUSTER_NODES" envDefault:""`
}

// Sanitize trims the connection strings.
func (c *RedisConfig) Sanitize() {
	c.URI = strings.TrimSpace(c.URI)
	c.SentinelMasterName = strings.TrimSpace(c.SentinelMasterName)
}
