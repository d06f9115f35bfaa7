package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/muurk/apsetup/internal/config"
	"github.com/muurk/apsetup/internal/discovery"
	"github.com/muurk/apsetup/internal/gateway"
	"github.com/muurk/apsetup/internal/logging"
	"github.com/muurk/apsetup/internal/urls"
)

const (
	envPrefix   = "APSETUP"
	settingsKey = "apsetup"
	logFileName = "apsetup.log"
)

var defaultURL = urls.SetupModeURL

// Settings are the resolved command settings: flags, then APSETUP_*
// environment variables, then the settings file, then registry preferences.
type Settings struct {
	v        *viper.Viper
	registry *config.Registry

	URL       string
	Host      string
	Port      int
	Discover  bool
	Timeout   time.Duration
	SaveDelay time.Duration
	LogLevel  string
	LogFile   string
}

var settings *Settings

func loadSettings(cmd *cobra.Command, _ []string) error {
	registry, err := config.LoadRegistry()
	if err != nil {
		return err
	}

	s, err := newSettings(cmd, registry)
	if err != nil {
		return err
	}
	settings = s

	output := logOutput(cmd, s)
	if output != "stderr" && (s.LogLevel != "" || os.Getenv(logging.LogLevelEnvVar) != "") {
		if err := os.MkdirAll(filepath.Dir(output), 0700); err != nil {
			return fmt.Errorf("failed to create log directory: %w", err)
		}
	}
	if err := logging.InitializeWithOutput(s.LogLevel, output); err != nil {
		return err
	}
	logging.Debug("Settings loaded",
		zap.String("command", cmd.Name()),
		zap.String("settings_file", s.v.ConfigFileUsed()),
		zap.String("registry", registry.Path()),
	)
	return nil
}

// logOutput picks where logs go. The console owns the terminal, so it logs
// to the log file; every other command logs to stderr.
func logOutput(cmd *cobra.Command, s *Settings) string {
	if cmd.Root() == cmd && s.LogFile != "" {
		return s.LogFile
	}
	return "stderr"
}

func newSettings(cmd *cobra.Command, registry *config.Registry) (*Settings, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	prefs := registry.Preferences
	v.SetDefault("port", prefs.Port())
	v.SetDefault("timeout", prefs.DiscoverTimeoutDuration())
	v.SetDefault("save-delay", prefs.SaveDelay())
	if path := registry.Path(); path != "" {
		v.SetDefault("log-file", filepath.Join(filepath.Dir(path), logFileName))
	}

	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return nil, fmt.Errorf("failed to bind flags: %w", err)
	}

	if file := v.GetString("config"); file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName(settingsKey)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if dir, err := config.GetConfigDir(); err == nil {
			v.AddConfigPath(dir)
		}
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read settings file: %w", err)
		}
	}

	return &Settings{
		v:         v,
		registry:  registry,
		URL:       v.GetString("url"),
		Host:      v.GetString("host"),
		Port:      v.GetInt("port"),
		Discover:  v.GetBool("discover"),
		Timeout:   v.GetDuration("timeout"),
		SaveDelay: v.GetDuration("save-delay"),
		LogLevel:  v.GetString("log-level"),
		LogFile:   v.GetString("log-file"),
	}, nil
}

// String returns a command-local setting such as --ssid.
func (s *Settings) String(key string) string {
	return s.v.GetString(key)
}

// IsSet reports whether a command-local setting was given.
func (s *Settings) IsSet(key string) bool {
	return s.v.IsSet(key)
}

// DeviceURL resolves the device to talk to: --url, then --host and --port,
// then mDNS discovery when asked for, then the setup-mode address.
func (s *Settings) DeviceURL(ctx context.Context) (string, error) {
	switch {
	case s.URL != "":
		return s.URL, nil
	case s.Host != "":
		return "http://" + net.JoinHostPort(s.Host, strconv.Itoa(s.Port)), nil
	case s.Discover:
		device, err := s.discover(ctx)
		if err != nil {
			return "", err
		}
		return device.BaseURL(), nil
	}

	if s.Port != 0 && s.Port != gateway.DefaultPort {
		return defaultURL + ":" + strconv.Itoa(s.Port), nil
	}
	return defaultURL, nil
}

// discover returns the first device still waiting for a network, or the
// first device found.
func (s *Settings) discover(ctx context.Context) (*discovery.Device, error) {
	scanner := discovery.NewScanner()
	if s.Timeout > 0 {
		scanner.Timeout = s.Timeout
	}

	devices, err := scanner.ScanForDevicesWithContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("discovery failed: %w", err)
	}
	if len(devices) == 0 {
		return nil, fmt.Errorf("no devices in setup mode found within %s", scanner.Timeout)
	}
	for _, d := range devices {
		if !d.Configured {
			return d, nil
		}
	}
	return devices[0], nil
}

// Client creates a gateway client for the resolved device.
func (s *Settings) Client(ctx context.Context) (*gateway.Client, error) {
	baseURL, err := s.DeviceURL(ctx)
	if err != nil {
		return nil, err
	}
	client := gateway.NewClientWithURL(baseURL)
	if s.Timeout > 0 {
		client.SetTimeout(s.Timeout)
	}
	return client, nil
}

// remember records a device sighting or save in the registry. Registry
// failures are logged, never fatal.
func (s *Settings) remember(update func(r *config.Registry)) {
	update(s.registry)
	if err := s.registry.Save(); err != nil {
		logging.Warn("Failed to save device registry", zap.Error(err))
	}
}
