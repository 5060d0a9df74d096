package config

import (
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"raspview/internal/util"
)

const DefaultPath = "./config/config.yml"

const (
	KeyLogFile       = "log_file"
	KeyListenAddr    = "listen_addr"
	KeyLogLevel      = "log_level"
	KeyLogForwardURL = "log_forward_url"
	KeyReadTimeout   = "read_timeout"
)

// Settings is a snapshot of the configuration. Components receive it
// explicitly instead of reading viper themselves.
type Settings struct {
	LogFile       string
	ListenAddr    string
	LogLevel      string
	LogForwardURL string
	ReadTimeout   time.Duration
}

func setDefaults() {
	viper.SetDefault(KeyLogFile, "/var/www/logfile.log")
	viper.SetDefault(KeyListenAddr, "0.0.0.0:8080")
	viper.SetDefault(KeyLogLevel, "info")
	viper.SetDefault(KeyLogForwardURL, "")
	viper.SetDefault(KeyReadTimeout, "10s")
}

// InitConfig reads the config file at path, creating an empty one when it is
// missing. Environment variables prefixed with RASPVIEW_ override the file.
func InitConfig(path string) (*Settings, error) {
	if path == "" {
		path = DefaultPath
	}

	// Check if config file exists. If not create.
	if err := util.CreateFileIfNotExist(path); err != nil {
		return nil, err
	}

	setDefaults()
	viper.SetConfigFile(path)
	viper.SetConfigType(configType(path))
	viper.SetEnvPrefix("raspview")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return nil, errors.Wrapf(err, "reading config %s", path)
	}

	return Current(), nil
}

// Current builds Settings from the values viper holds right now.
func Current() *Settings {
	return &Settings{
		LogFile:       viper.GetString(KeyLogFile),
		ListenAddr:    viper.GetString(KeyListenAddr),
		LogLevel:      viper.GetString(KeyLogLevel),
		LogForwardURL: viper.GetString(KeyLogForwardURL),
		ReadTimeout:   viper.GetDuration(KeyReadTimeout),
	}
}

func Validate(s *Settings) error {
	if s.LogFile == "" {
		return errors.New("log_file is empty")
	}
	if !filepath.IsAbs(s.LogFile) {
		return errors.Errorf("log_file must be an absolute path, got %q", s.LogFile)
	}

	if !strings.Contains(s.ListenAddr, ":") {
		return errors.Errorf("listen_addr must be in the form host:port, got %q", s.ListenAddr)
	}

	if _, err := logrus.ParseLevel(s.LogLevel); err != nil {
		return errors.Wrap(err, "log_level")
	}

	if s.LogForwardURL != "" {
		u, err := url.Parse(s.LogForwardURL)
		if err != nil {
			return errors.Wrap(err, "log_forward_url")
		}
		if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return errors.Errorf("log_forward_url must begin with http:// or https://, got %q", s.LogForwardURL)
		}
	}

	if s.ReadTimeout <= 0 {
		return errors.Errorf("read_timeout must be positive, got %s", s.ReadTimeout)
	}

	return nil
}

// LogDirMissing reports whether the directory meant to hold the log file is
// absent. The viewer still runs and shows the no-logs notice until it exists.
func LogDirMissing(s *Settings) bool {
	return !util.FileExists(filepath.Dir(s.LogFile))
}

// Watch calls onChange with the new settings each time the config file is
// rewritten and still validates. Invalid edits are logged and ignored.
func Watch(onChange func(*Settings)) {
	viper.OnConfigChange(func(in fsnotify.Event) {
		s := Current()
		if err := Validate(s); err != nil {
			logrus.Warnf("[config] ignoring change to %s: %v", in.Name, err)
			return
		}
		logrus.Infof("[config] reloaded %s", in.Name)
		onChange(s)
	})
	viper.WatchConfig()
}

func configType(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return "json"
	case ".toml":
		return "toml"
	default:
		return "yaml"
	}
}
