package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "MONGO_URI", "MONGO_DB", "REDIS_ADDR", "JWT_SECRET", "UPLOAD_DIR", "PUBLIC_BASE_URL", "ALLOWED_ORIGINS"} {
		t.Setenv(key, "")
	}

	cfg := Load()
	if cfg.Port != ":8082" {
		t.Fatalf("Port = %q", cfg.Port)
	}
	if cfg.MongoDB != "catalogdb" {
		t.Fatalf("MongoDB = %q", cfg.MongoDB)
	}
	if len(cfg.AllowedOrigins) != 1 || cfg.AllowedOrigins[0] != "*" {
		t.Fatalf("AllowedOrigins = %v", cfg.AllowedOrigins)
	}
}

func TestLoadPortPrefix(t *testing.T) {
	t.Setenv("PORT", "9090")
	cfg := Load()
	if cfg.Port != ":9090" {
		t.Fatalf("Port = %q, want :9090", cfg.Port)
	}
}

func TestLoadOriginList(t *testing.T) {
	t.Setenv("ALLOWED_ORIGINS", "http://a.example.com, http://b.example.com")
	cfg := Load()
	if len(cfg.AllowedOrigins) != 2 {
		t.Fatalf("AllowedOrigins = %v", cfg.AllowedOrigins)
	}
	if cfg.AllowedOrigins[1] != "http://b.example.com" {
		t.Fatalf("origins not trimmed: %v", cfg.AllowedOrigins)
	}
}

func TestLoadTrimsBaseURL(t *testing.T) {
	t.Setenv("PUBLIC_BASE_URL", "http://cdn.example.com/")
	cfg := Load()
	if cfg.PublicBaseURL != "http://cdn.example.com" {
		t.Fatalf("PublicBaseURL = %q", cfg.PublicBaseURL)
	}
}
