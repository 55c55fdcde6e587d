package config

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/spf13/viper"

	"github.com/a1s/gridview/internal/config/data"
)

// EnvPrefix prefixes the environment variables overriding the config file.
const EnvPrefix = "GRIDVIEW"

// Config is the root configuration for the application.
type Config struct {
	Gridview *Gridview `yaml:"gridview"`
	mx       sync.RWMutex
}

// NewConfig creates a new Config with default settings.
func NewConfig() *Config {
	return &Config{
		Gridview: NewGridview(),
	}
}

// Load loads the configuration from the given path.
// If the file doesn't exist, the current config is kept.
func (c *Config) Load(path string, force bool) error {
	c.mx.Lock()
	defer c.mx.Unlock()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if !force {
			return nil
		}
		return fmt.Errorf("config file does not exist: %s", path)
	}

	if err := data.LoadYAML(path, c); err != nil {
		return fmt.Errorf("failed to load config from %s: %w", path, err)
	}
	if c.Gridview == nil {
		c.Gridview = NewGridview()
	}
	c.Gridview.Validate()

	return nil
}

// Save saves the configuration to the given path.
// If force is false, only saves if the file already exists.
func (c *Config) Save(path string, force bool) error {
	c.mx.RLock()
	defer c.mx.RUnlock()

	if path == "" {
		return fmt.Errorf("no config file path configured")
	}
	_, err := os.Stat(path)
	if !force && err != nil {
		return nil
	}

	if err := data.SaveYAML(path, c); err != nil {
		return fmt.Errorf("failed to save config to %s: %w", path, err)
	}

	return nil
}

// NewEnv returns a viper instance reading GRIDVIEW_* environment variables.
// Nested keys map dots to underscores, so store.backend reads GRIDVIEW_STORE_BACKEND.
func NewEnv() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v
}

// Refine applies environment and CLI overrides to the loaded configuration.
// Precedence: CLI flag > GRIDVIEW_* environment > config file > defaults.
func (c *Config) Refine(flags *data.Flags, env *viper.Viper) error {
	c.mx.Lock()
	defer c.mx.Unlock()

	if c.Gridview == nil {
		return fmt.Errorf("config.Gridview is nil")
	}
	if env != nil {
		c.Gridview.applyEnv(env)
	}
	c.Gridview.Override(flags)
	c.Gridview.Validate()

	if _, err := c.Gridview.GetAPITimeout(); err != nil {
		return err
	}

	return nil
}

func (g *Gridview) applyEnv(v *viper.Viper) {
	g.mx.Lock()
	defer g.mx.Unlock()

	str := func(key string, dst *string) {
		if v.IsSet(key) {
			*dst = v.GetString(key)
		}
	}
	if v.IsSet("refreshRate") {
		g.RefreshRate = float32(v.GetFloat64("refreshRate"))
	}
	if v.IsSet("persistFilters") {
		g.PersistFilters = v.GetBool("persistFilters")
	}
	if v.IsSet("multiSelect") {
		b := v.GetBool("multiSelect")
		g.Selection.MultiSelect = &b
	}
	if v.IsSet("store.db") {
		g.Store.DB = v.GetInt("store.db")
	}
	str("apiTimeout", &g.APITimeout)
	str("source", &g.Source)
	str("identityField", &g.IdentityField)
	str("storageKey", &g.StorageKey)
	str("store.backend", &g.Store.Backend)
	str("store.path", &g.Store.Path)
	str("store.addr", &g.Store.Addr)
	str("store.password", &g.Store.Password)
	str("store.bucket", &g.Store.Bucket)
	str("store.prefix", &g.Store.Prefix)
	str("aws.profile", &g.AWS.Profile)
	str("aws.region", &g.AWS.Region)
	str("aws.endpoint", &g.AWS.Endpoint)
}
