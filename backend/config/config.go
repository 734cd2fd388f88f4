package config

import (
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

type HTTP struct {
	Host string
	Port int
}

type DB struct {
	Driver string
	Path   string
	Host   string
	Port   int
	User   string
	Pass   string
	Name   string
}

type JWT struct {
	Secret string
	Issuer string
	ExpMin int
}

type Classifier struct {
	URL     string
	APIKey  string
	Timeout time.Duration
}

type Config struct {
	HTTP       HTTP
	DB         DB
	JWT        JWT
	Classifier Classifier
	// AdminKey authorizes privileged registration.
	AdminKey string
	// StoragePath is the root directory for saved image files.
	StoragePath string
	// WatchPaths are drop folders auto-classified by the watcher.
	WatchPaths []string
	LogPath    string
}

// Load reads the YAML config at path. A missing file is not an error; the
// defaults describe a self-contained local setup.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.SetDefault("http.host", "127.0.0.1")
	v.SetDefault("http.port", 9600)
	v.SetDefault("db.driver", "sqlite")
	v.SetDefault("db.path", filepath.Join("data", "fruitlens.db"))
	v.SetDefault("db.host", "127.0.0.1")
	v.SetDefault("db.port", 3306)
	v.SetDefault("db.user", "root")
	v.SetDefault("db.pass", "")
	v.SetDefault("db.name", "fruitlens")
	v.SetDefault("jwt.secret", "dev-secret")
	v.SetDefault("jwt.issuer", "fruitlens")
	v.SetDefault("jwt.exp_min", 60)
	v.SetDefault("admin.registration_key", "fruit_admin_2025")
	v.SetDefault("storage.path", filepath.Join("data", "images"))
	v.SetDefault("classifier.url", "")
	v.SetDefault("classifier.api_key", "")
	v.SetDefault("classifier.timeout", "30s")
	v.SetDefault("watch.paths", []string{})
	_ = v.ReadInConfig()

	cfg := &Config{
		HTTP: HTTP{Host: v.GetString("http.host"), Port: v.GetInt("http.port")},
		DB: DB{
			Driver: v.GetString("db.driver"),
			Path:   v.GetString("db.path"),
			Host:   v.GetString("db.host"),
			Port:   v.GetInt("db.port"),
			User:   v.GetString("db.user"),
			Pass:   v.GetString("db.pass"),
			Name:   v.GetString("db.name"),
		},
		JWT: JWT{Secret: v.GetString("jwt.secret"), Issuer: v.GetString("jwt.issuer"), ExpMin: v.GetInt("jwt.exp_min")},
		Classifier: Classifier{
			URL:     v.GetString("classifier.url"),
			APIKey:  v.GetString("classifier.api_key"),
			Timeout: v.GetDuration("classifier.timeout"),
		},
		AdminKey:    v.GetString("admin.registration_key"),
		StoragePath: v.GetString("storage.path"),
		WatchPaths:  v.GetStringSlice("watch.paths"),
		LogPath:     v.GetString("log.path"),
	}
	if cfg.JWT.ExpMin <= 0 {
		cfg.JWT.ExpMin = 60
	}
	return cfg, nil
}
