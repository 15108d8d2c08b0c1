package config

// BalanceRedisLock wraps transaction creation in a best-effort redislock
// on top of the database advisory lock.
//
// Set via env:
// - BALANCE_REDIS_LOCK=false to disable (default on)
func BalanceRedisLock() bool {
	return BoolFromEnv("BALANCE_REDIS_LOCK", true)
}

// EventsEnabled turns on order.created / transaction.created publishing.
//
// Set via env:
// - EVENTS_ENABLED=true
// - EVENTS_TOPIC=<pubsub topic>
func EventsEnabled() bool {
	return BoolFromEnv("EVENTS_ENABLED", false) && StringFromEnv("EVENTS_TOPIC", "") != ""
}

// AuthRequired rejects write requests without a valid bearer token.
//
// Set via env:
// - AUTH_REQUIRED=true
func AuthRequired() bool {
	return BoolFromEnv("AUTH_REQUIRED", false)
}
