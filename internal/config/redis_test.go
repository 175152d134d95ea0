package config

import "testing"

func clearRedisEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"REDIS_HOST", "REDIS_PORT", "REDIS_ADDR", "REDIS_PASSWORD",
		"REDIS_DB", "REDIS_TLS", "REDIS_TLS_SKIP_VERIFY",
	} {
		t.Setenv(k, "")
	}
}

func TestRedisOptionsDefaults(t *testing.T) {
	clearRedisEnv(t)
	opts := newRedisOptions()
	if opts.Addr != "localhost:6379" {
		t.Errorf("addr = %q", opts.Addr)
	}
	if opts.TLSConfig != nil {
		t.Error("TLS enabled without REDIS_TLS")
	}
}

func TestRedisOptionsAddrPrecedence(t *testing.T) {
	clearRedisEnv(t)
	t.Setenv("REDIS_ADDR", "cache.internal:6380")
	if opts := newRedisOptions(); opts.Addr != "cache.internal:6380" {
		t.Errorf("addr = %q", opts.Addr)
	}
	// Host/port take precedence over the shorthand.
	t.Setenv("REDIS_HOST", "redis.internal")
	t.Setenv("REDIS_PORT", "6381")
	if opts := newRedisOptions(); opts.Addr != "redis.internal:6381" {
		t.Errorf("addr = %q", opts.Addr)
	}
}

func TestRedisOptionsTLSVerifiesByDefault(t *testing.T) {
	clearRedisEnv(t)
	t.Setenv("REDIS_TLS", "true")
	opts := newRedisOptions()
	if opts.TLSConfig == nil {
		t.Fatal("REDIS_TLS=true did not enable TLS")
	}
	if opts.TLSConfig.InsecureSkipVerify {
		t.Fatal("certificate verification disabled by default")
	}

	t.Setenv("REDIS_TLS_SKIP_VERIFY", "1")
	opts = newRedisOptions()
	if opts.TLSConfig == nil || !opts.TLSConfig.InsecureSkipVerify {
		t.Fatal("explicit REDIS_TLS_SKIP_VERIFY not honored")
	}
}
