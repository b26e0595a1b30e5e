package config

import "time"

// ConfigProvider defines the read-only view of the campaign configuration
type ConfigProvider interface {
	GetFilePath() string
	GetSheetName() string
	GetServer() string
	GetPort() int
	GetSender() string
	GetPassword() string
	GetSenderName() string
	GetDelay() time.Duration
	GetSecurity() string
	GetTimeout() time.Duration
	GetLogPath() string
}

// ConfigImpl implements ConfigProvider interface
type ConfigImpl struct {
	cfg config
}

// NewConfigProvider copies cfg so later changes to it are not observed
func NewConfigProvider(cfg *config) ConfigProvider {
	return &ConfigImpl{cfg: *cfg}
}

func (c *ConfigImpl) GetFilePath() string {
	return c.cfg.FilePath
}

func (c *ConfigImpl) GetSheetName() string {
	return c.cfg.SheetName
}

func (c *ConfigImpl) GetServer() string {
	return c.cfg.Server
}

func (c *ConfigImpl) GetPort() int {
	return c.cfg.Port
}

func (c *ConfigImpl) GetSender() string {
	return c.cfg.Sender
}

func (c *ConfigImpl) GetPassword() string {
	return c.cfg.Password
}

func (c *ConfigImpl) GetSenderName() string {
	return c.cfg.SenderName
}

func (c *ConfigImpl) GetDelay() time.Duration {
	return time.Duration(c.cfg.Delay) * time.Second
}

func (c *ConfigImpl) GetSecurity() string {
	return c.cfg.Security
}

func (c *ConfigImpl) GetTimeout() time.Duration {
	return c.cfg.Timeout
}

func (c *ConfigImpl) GetLogPath() string {
	return c.cfg.LogPath
}
