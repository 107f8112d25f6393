package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/toybox/internal/logging"
	"github.com/mesh-intelligence/toybox/internal/paths"
	"github.com/mesh-intelligence/toybox/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	envPrefix      = "TOYBOX"

	cfgKeyBackend      = "backend"
	cfgKeyDataDir      = "data_dir"
	cfgKeyRedisAddr    = "redis.addr"
	cfgKeyRedisPrefix  = "redis.prefix"
	cfgKeyRedisTimeout = "redis.timeout"
	cfgKeyLogFormat    = "log.format"
	cfgKeyLogLevel     = "log.level"

	logFormatConsole = "console"
	logFormatJSON    = "json"

	defaultBackend = types.BackendFile
)

// loadConfig reads config.yaml from configDir using Viper. A missing file is
// not an error. TOYBOX_BACKEND, TOYBOX_REDIS_ADDR, and TOYBOX_LOG_FORMAT
// override the file;
// data_dir is resolved separately by paths.ResolveDataDir.
func loadConfig(configDir string) (*viper.Viper, error) {
	v := viper.New()
	v.SetDefault(cfgKeyBackend, defaultBackend)
	v.SetDefault(cfgKeyRedisPrefix, types.DefaultRedisPrefix)
	v.SetDefault(cfgKeyRedisTimeout, types.DefaultRedisTimeout)
	v.SetDefault(cfgKeyLogFormat, logFormatConsole)
	v.SetDefault(cfgKeyLogLevel, "warn")

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	for _, key := range []string{cfgKeyBackend, cfgKeyRedisAddr, cfgKeyLogFormat} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("bind env %s: %w", key, err)
		}
	}

	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	return v, nil
}

// resolveConfig combines flags, config.yaml, and environment into the
// types.Config passed to toybox.Open.
func (a *app) resolveConfig() (types.Config, error) {
	configDir, err := paths.ResolveConfigDir(a.configDir)
	if err != nil {
		return types.Config{}, sysError(fmt.Errorf("resolve config dir: %w", err))
	}

	v, err := loadConfig(configDir)
	if err != nil {
		return types.Config{}, userError(err)
	}

	dataDir, err := paths.ResolveDataDir(a.dataDir, v.GetString(cfgKeyDataDir))
	if err != nil {
		return types.Config{}, sysError(fmt.Errorf("resolve data dir: %w", err))
	}

	a.logFormat = v.GetString(cfgKeyLogFormat)
	a.logLevel = v.GetString(cfgKeyLogLevel)

	backend := a.backend
	if backend == "" {
		backend = v.GetString(cfgKeyBackend)
	}

	return types.Config{
		Backend: backend,
		DataDir: dataDir,
		Redis: types.RedisConfig{
			Addr:    v.GetString(cfgKeyRedisAddr),
			Prefix:  v.GetString(cfgKeyRedisPrefix),
			Timeout: v.GetDuration(cfgKeyRedisTimeout),
		},
	}, nil
}

// newLogger builds the logger selected by log.format. The JSON format is for
// running under a supervisor; --verbose forces debug level in either format.
func (a *app) newLogger() (*zap.Logger, error) {
	switch a.logFormat {
	case logFormatJSON:
		level := a.logLevel
		if a.verbose {
			level = "debug"
		}
		return logging.NewJSON(level)
	case logFormatConsole, "":
		return logging.New(a.verbose)
	default:
		return nil, fmt.Errorf("unknown log format %q", a.logFormat)
	}
}
