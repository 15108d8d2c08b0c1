package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIntFromEnv(t *testing.T) {
	t.Setenv("TEST_INT", " 42 ")
	require.Equal(t, 42, IntFromEnv("TEST_INT", 7))

	t.Setenv("TEST_INT", "forty")
	require.Equal(t, 7, IntFromEnv("TEST_INT", 7))

	require.Equal(t, 7, IntFromEnv("TEST_INT_UNSET", 7))
}

func TestBoolFromEnv(t *testing.T) {
	for value, want := range map[string]bool{"true": true, "1": true, "YES": true, "y": true, "false": false, "0": false, "no": false} {
		t.Setenv("TEST_BOOL", value)
		require.Equal(t, want, BoolFromEnv("TEST_BOOL", !want), value)
	}
	t.Setenv("TEST_BOOL", "maybe")
	require.True(t, BoolFromEnv("TEST_BOOL", true))
}

func TestSplitAndTrim(t *testing.T) {
	require.Equal(t, []string{"a", "b"}, SplitAndTrim(" a , ,b,"))
	require.Nil(t, SplitAndTrim("  "))
}

func TestFeatureFlags(t *testing.T) {
	require.True(t, BalanceRedisLock())
	t.Setenv("BALANCE_REDIS_LOCK", "false")
	require.False(t, BalanceRedisLock())

	t.Setenv("EVENTS_ENABLED", "true")
	require.False(t, EventsEnabled())
	t.Setenv("EVENTS_TOPIC", "storefront-events")
	require.True(t, EventsEnabled())
}

func TestDSNFromEnv(t *testing.T) {
	t.Setenv("DB_USER", "app")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("DB_HOST", "127.0.0.1")
	t.Setenv("DB_PORT", "3306")
	t.Setenv("DB_NAME", "storefront")
	require.Equal(t, "app:secret@tcp(127.0.0.1:3306)/storefront?charset=utf8mb4&multiStatements=true&parseTime=true", DSNFromEnv())

	t.Setenv("DB_HOST", "/cloudsql/p:r:i")
	require.Contains(t, DSNFromEnv(), "@unix(/cloudsql/p:r:i)/")
}

func TestRetryBackoff(t *testing.T) {
	require.Equal(t, "2s", RetryBackoff(1).String())
	require.Equal(t, "30s", RetryBackoff(10).String())
}
