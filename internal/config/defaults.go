package config

import "time"

const defaultPort = 8080

var defaultDB = DB{
	Host: "127.0.0.1",
	Port: "5432",
	User: "myuser",
	Pass: "mypassword",
	Name: "dispatch_db",
}

var defaultKafka = Kafka{
	GroupID: "dispatch-worker",
	Topic:   "",
}

var defaultEngine = Engine{
	PassInterval:     30 * time.Second,
	OperationTimeout: 5 * time.Second,
}

var defaultRateLimit = RateLimit{
	Enabled:    false,
	Rate:       20,
	Burst:      40,
	TTL:        10 * time.Minute,
	MaxBuckets: 10_000,
}

var defaultPprof = Pprof{
	Addr: "127.0.0.1:6060",
}

// DefaultPort returns the default HTTP port.
func DefaultPort() int { return defaultPort }

// DefaultDB returns the default database settings.
func DefaultDB() DB { return defaultDB }

// DefaultKafka returns the default Kafka settings.
func DefaultKafka() Kafka { return defaultKafka }

// DefaultEngine returns the default engine settings.
func DefaultEngine() Engine { return defaultEngine }

// DefaultRateLimit returns the default rate limit settings.
func DefaultRateLimit() RateLimit { return defaultRateLimit }

// DefaultPprof returns the default pprof settings.
func DefaultPprof() Pprof { return defaultPprof }
