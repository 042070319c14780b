package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server    ServerConfig    `yaml:"server" json:"server"`
	Scheduler SchedulerConfig `yaml:"scheduler" json:"scheduler"`
	Reminders ReminderConfig  `yaml:"reminders" json:"reminders"`
	Inbox     InboxConfig     `yaml:"inbox" json:"inbox"`
}

type ServerConfig struct {
	Addr    string `yaml:"addr" json:"addr"`
	DataDir string `yaml:"data_dir" json:"data_dir"`
}

type SchedulerConfig struct {
	DueNowIntervalS  int `yaml:"due_now_interval_s" json:"due_now_interval_s"`
	OverdueIntervalS int `yaml:"overdue_interval_s" json:"overdue_interval_s"`
	SweepIntervalS   int `yaml:"sweep_interval_s" json:"sweep_interval_s"`
}

type ReminderConfig struct {
	DueNowWindowS    int `yaml:"due_now_window_s" json:"due_now_window_s"`
	DueNowCooldownS  int `yaml:"due_now_cooldown_s" json:"due_now_cooldown_s"`
	OverdueCooldownS int `yaml:"overdue_cooldown_s" json:"overdue_cooldown_s"`
}

type InboxConfig struct {
	MaxAgeH int `yaml:"max_age_h" json:"max_age_h"`
}

func (c *Config) ApplyDefaults() {
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Server.DataDir == "" {
		c.Server.DataDir = "data"
	}
	if c.Scheduler.DueNowIntervalS <= 0 {
		c.Scheduler.DueNowIntervalS = 60
	}
	if c.Scheduler.OverdueIntervalS <= 0 {
		c.Scheduler.OverdueIntervalS = 300
	}
	if c.Scheduler.SweepIntervalS <= 0 {
		c.Scheduler.SweepIntervalS = 3600
	}
	if c.Reminders.DueNowWindowS <= 0 {
		c.Reminders.DueNowWindowS = 60
	}
	if c.Reminders.DueNowCooldownS <= 0 {
		c.Reminders.DueNowCooldownS = 300
	}
	if c.Reminders.OverdueCooldownS <= 0 {
		c.Reminders.OverdueCooldownS = 3600
	}
	if c.Inbox.MaxAgeH <= 0 {
		c.Inbox.MaxAgeH = 24
	}
}

func Default() *Config {
	c := &Config{}
	c.ApplyDefaults()
	return c
}

// Load reads the yaml file at path. A missing file is not an error:
// defaults apply.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, err
	}
	c.ApplyDefaults()
	return &c, nil
}

func (c *Config) DueNowInterval() time.Duration {
	return time.Duration(c.Scheduler.DueNowIntervalS) * time.Second
}

func (c *Config) OverdueInterval() time.Duration {
	return time.Duration(c.Scheduler.OverdueIntervalS) * time.Second
}

func (c *Config) SweepInterval() time.Duration {
	return time.Duration(c.Scheduler.SweepIntervalS) * time.Second
}

func (c *Config) DueNowWindow() time.Duration {
	return time.Duration(c.Reminders.DueNowWindowS) * time.Second
}

func (c *Config) DueNowCooldown() time.Duration {
	return time.Duration(c.Reminders.DueNowCooldownS) * time.Second
}

func (c *Config) OverdueCooldown() time.Duration {
	return time.Duration(c.Reminders.OverdueCooldownS) * time.Second
}

func (c *Config) InboxMaxAge() time.Duration {
	return time.Duration(c.Inbox.MaxAgeH) * time.Hour
}
