package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cast"
	"gopkg.in/yaml.v2"
)

// SysConfig holds process-level settings.
type SysConfig struct {
	Appid    string `yaml:"appid" json:"appid"`
	Location string `yaml:"location" json:"location"`
	Workdir  string `yaml:"workdir" json:"workdir"`
	Debug    bool   `yaml:"debug" json:"debug"`
}

type LogConfig struct {
	Mode       string `yaml:"mode" json:"mode"` // development or production
	FileEnable bool   `yaml:"file_enable" json:"file_enable"`
	Filename   string `yaml:"filename" json:"filename"`
}

// StorageConfig describes the local snapshot store. The store is a single
// bbolt file under workdir; backups are full copies into BackupDir.
type StorageConfig struct {
	Filename   string `yaml:"filename" json:"filename"`
	BackupDir  string `yaml:"backup_dir" json:"backup_dir"`
	BackupSpec string `yaml:"backup_spec" json:"backup_spec"`
}

// SessionConfig tunes the auth/order store.
// AuthLatencyMs is the artificial delay applied to login and register to
// simulate a network round trip; 0 disables it (used in tests).
type SessionConfig struct {
	AuthLatencyMs  int64  `yaml:"auth_latency_ms" json:"auth_latency_ms"`
	OrderPrefix    string `yaml:"order_prefix" json:"order_prefix"`
	TrackingPrefix string `yaml:"tracking_prefix" json:"tracking_prefix"`
	NodeID         int64  `yaml:"node_id" json:"node_id"`
}

type AppConfig struct {
	System  SysConfig     `yaml:"system" json:"system"`
	Logger  LogConfig     `yaml:"logger" json:"logger"`
	Storage StorageConfig `yaml:"storage" json:"storage"`
	Session SessionConfig `yaml:"session" json:"session"`
}

// StorageFile returns the absolute path of the snapshot store file.
func (c *AppConfig) StorageFile() string {
	return filepath.Join(c.System.Workdir, c.Storage.Filename)
}

func (c *AppConfig) InitDirs() error {
	if err := os.MkdirAll(c.System.Workdir, 0o755); err != nil {
		return err
	}
	return os.MkdirAll(filepath.Join(c.System.Workdir, c.Storage.BackupDir), 0o755)
}

var DefaultAppConfig = &AppConfig{
	System: SysConfig{
		Appid:    "Storefront",
		Location: "Africa/Lagos",
		Workdir:  "/var/storefront",
		Debug:    true,
	},
	Logger: LogConfig{
		Mode:       "development",
		FileEnable: true,
		Filename:   "/var/storefront/storefront.log",
	},
	Storage: StorageConfig{
		Filename:   "storefront.db",
		BackupDir:  "backup",
		BackupSpec: "@daily",
	},
	Session: SessionConfig{
		AuthLatencyMs:  1000,
		OrderPrefix:    "SF",
		TrackingPrefix: "TRK",
		NodeID:         1,
	},
}

func setEnvValue(name string, f func(v string)) {
	var evalue = os.Getenv(name)
	if evalue != "" {
		f(evalue)
	}
}

// LoadConfig reads the yaml config file if it exists and applies environment
// overrides. A missing file is not an error; defaults are used.
func LoadConfig(cfile string) *AppConfig {
	cfg := new(AppConfig)
	*cfg = *DefaultAppConfig
	if cfile != "" {
		if data, err := os.ReadFile(cfile); err == nil {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				fmt.Fprintf(os.Stderr, "config file %s parse error: %s\n", cfile, err)
			}
		}
	}

	setEnvValue("STOREFRONT_SYSTEM_WORKDIR", func(v string) { cfg.System.Workdir = v })
	setEnvValue("STOREFRONT_SYSTEM_DEBUG", func(v string) { cfg.System.Debug = cast.ToBool(v) })
	setEnvValue("STOREFRONT_LOGGER_MODE", func(v string) { cfg.Logger.Mode = v })
	setEnvValue("STOREFRONT_LOGGER_FILE_ENABLE", func(v string) { cfg.Logger.FileEnable = cast.ToBool(v) })
	setEnvValue("STOREFRONT_STORAGE_FILENAME", func(v string) { cfg.Storage.Filename = v })
	setEnvValue("STOREFRONT_STORAGE_BACKUP_SPEC", func(v string) { cfg.Storage.BackupSpec = v })
	setEnvValue("STOREFRONT_SESSION_AUTH_LATENCY_MS", func(v string) { cfg.Session.AuthLatencyMs = cast.ToInt64(v) })
	setEnvValue("STOREFRONT_SESSION_ORDER_PREFIX", func(v string) { cfg.Session.OrderPrefix = v })
	setEnvValue("STOREFRONT_SESSION_NODE_ID", func(v string) { cfg.Session.NodeID = cast.ToInt64(v) })

	return cfg
}
