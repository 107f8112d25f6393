package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/toybox/internal/paths"
	"github.com/mesh-intelligence/toybox/pkg/toybox"
)

// configFile holds the structure written to config.yaml.
type configFile struct {
	Backend string `yaml:"backend"`
	DataDir string `yaml:"data_dir,omitempty"`
}

func (a *app) newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the configuration file and storage",
		Long: "Create the configuration directory with a default config.yaml, then open\n" +
			"the storage backend once so its files exist.",
		Args: cobra.NoArgs,
		RunE: a.runInit,
	}
}

func (a *app) runInit(cmd *cobra.Command, args []string) error {
	configDir, err := paths.ResolveConfigDir(a.configDir)
	if err != nil {
		return sysError(fmt.Errorf("resolve config dir: %w", err))
	}
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return sysError(fmt.Errorf("create config directory: %w", err))
	}

	cfg := configFile{Backend: a.backend}
	if cfg.Backend == "" {
		cfg.Backend = defaultBackend
	}
	if a.dataDir != "" {
		abs, err := filepath.Abs(a.dataDir)
		if err != nil {
			return sysError(fmt.Errorf("resolve data dir: %w", err))
		}
		cfg.DataDir = abs
	}
	if err := writeConfigIfMissing(paths.ConfigFile(configDir), cfg); err != nil {
		return sysError(fmt.Errorf("write config: %w", err))
	}

	return a.withShop(func(shop *toybox.Shop) error {
		for _, s := range []interface{ Save() error }{shop.Toys, shop.Customers, shop.Orders} {
			if err := s.Save(); err != nil {
				return sysError(fmt.Errorf("initialize storage: %w", err))
			}
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Toybox initialized (config: %s)\n", configDir)
		return nil
	})
}

// writeConfigIfMissing creates config.yaml unless it already exists.
func writeConfigIfMissing(path string, cfg configFile) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	}

	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
