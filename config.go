package dxfio

import (
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/zooyer/dxfio/core"
)

// Config 读写行为配置，可由 YAML 加载
type Config struct {
	// Version 没有 $ACADVER 时按此版本读取；写出时覆盖文档版本。空表示默认。
	Version string `yaml:"version,omitempty"`
	// CodePage 强制使用的代码页，优先于 $DWGCODEPAGE，例如 ANSI_936
	CodePage string `yaml:"codepage,omitempty"`
	// LenientRanges 越界的枚举值只告警，不作为错误
	LenientRanges bool `yaml:"lenient_ranges"`
	// SkipInvalid 跳过格式错误或退化的记录，记录到 Document.Issues
	SkipInvalid bool `yaml:"skip_invalid"`
	// LogLevel logrus 日志级别
	LogLevel string `yaml:"log_level,omitempty"`

	logger logrus.FieldLogger
}

func DefaultConfig() *Config {
	return &Config{
		SkipInvalid: true,
		LogLevel:    "info",
	}
}

// ParseConfig 解析 YAML，未出现的键保持默认值
func ParseConfig(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func LoadConfig(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	return ParseConfig(data)
}

func (c *Config) Validate() error {
	if c.Version != "" {
		if _, err := core.ParseVersion(c.Version); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}
	}
	if _, err := core.CodePage(c.CodePage); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if c.LogLevel != "" {
		if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}
	}
	return nil
}

// WithLogger 使用指定 logger，不再根据 LogLevel 创建
func (c *Config) WithLogger(logger logrus.FieldLogger) *Config {
	c.logger = logger
	return c
}

// Logger 返回配置的 logger，未指定时按 LogLevel 创建
func (c *Config) Logger() logrus.FieldLogger {
	if c.logger != nil {
		return c.logger
	}
	logger := logrus.New()
	if level, err := logrus.ParseLevel(c.LogLevel); err == nil {
		logger.SetLevel(level)
	}
	c.logger = logger
	return logger
}

func (c *Config) version() core.Version {
	v, err := core.ParseVersion(c.Version)
	if err != nil {
		return core.VersionUnknown
	}
	return v
}

func (c *Config) String() string {
	return fmt.Sprintf("version=%s codepage=%s lenient=%t skip=%t log=%s",
		c.Version, c.CodePage, c.LenientRanges, c.SkipInvalid, strings.ToLower(c.LogLevel))
}
