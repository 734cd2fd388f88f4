package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Load with missing file: %v", err)
	}
	if cfg.DB.Driver != "sqlite" {
		t.Errorf("DB.Driver = %q, want sqlite", cfg.DB.Driver)
	}
	if cfg.AdminKey == "" {
		t.Errorf("expected a default admin registration key")
	}
	if cfg.JWT.ExpMin <= 0 {
		t.Errorf("JWT.ExpMin = %d, want positive", cfg.JWT.ExpMin)
	}
	if cfg.Classifier.Timeout != 30*time.Second {
		t.Errorf("Classifier.Timeout = %v, want 30s", cfg.Classifier.Timeout)
	}
	if cfg.HTTP.Port == 0 {
		t.Errorf("expected a default http port")
	}
}

func TestLoadOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := `
http:
  host: 0.0.0.0
  port: 8080
db:
  driver: mysql
  name: fruit
admin:
  registration_key: super-secret
classifier:
  url: http://localhost:5000/classify
  timeout: 5s
watch:
  paths:
    - /tmp/drop
`
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.HTTP.Host != "0.0.0.0" || cfg.HTTP.Port != 8080 {
		t.Errorf("HTTP = %+v", cfg.HTTP)
	}
	if cfg.DB.Driver != "mysql" || cfg.DB.Name != "fruit" {
		t.Errorf("DB = %+v", cfg.DB)
	}
	if cfg.AdminKey != "super-secret" {
		t.Errorf("AdminKey = %q", cfg.AdminKey)
	}
	if cfg.Classifier.URL != "http://localhost:5000/classify" || cfg.Classifier.Timeout != 5*time.Second {
		t.Errorf("Classifier = %+v", cfg.Classifier)
	}
	if len(cfg.WatchPaths) != 1 || cfg.WatchPaths[0] != "/tmp/drop" {
		t.Errorf("WatchPaths = %v", cfg.WatchPaths)
	}
}
