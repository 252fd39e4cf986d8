package config

import "testing"

func TestLoadPoolSizeDefaults(t *testing.T) {
	t.Setenv("POSTGRES_MAX_CONNS", "")
	t.Setenv("POSTGRES_MIN_CONNS", "")
	cfg := Load()
	if cfg.PGMaxConns != 8 {
		t.Errorf("PGMaxConns = %d, want 8", cfg.PGMaxConns)
	}
	if cfg.PGMinConns != 1 {
		t.Errorf("PGMinConns = %d, want 1", cfg.PGMinConns)
	}
}

func TestLoadPoolSizeOverride(t *testing.T) {
	t.Setenv("POSTGRES_MAX_CONNS", "32")
	t.Setenv("POSTGRES_MIN_CONNS", "4")
	cfg := Load()
	if cfg.PGMaxConns != 32 || cfg.PGMinConns != 4 {
		t.Errorf("pool sizes = %d/%d, want 32/4", cfg.PGMaxConns, cfg.PGMinConns)
	}
}

func TestLoadPoolSizeIgnoresGarbage(t *testing.T) {
	t.Setenv("POSTGRES_MAX_CONNS", "not-a-number")
	t.Setenv("POSTGRES_MIN_CONNS", "-3")
	cfg := Load()
	if cfg.PGMaxConns != 8 || cfg.PGMinConns != 1 {
		t.Errorf("pool sizes = %d/%d, want defaults 8/1", cfg.PGMaxConns, cfg.PGMinConns)
	}
}
