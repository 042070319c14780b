package config

import (
	"os"
	"strconv"
)

// ApplyEnv overlays environment variables onto the loaded config.
// Unset or malformed values leave the config untouched.
func (c *Config) ApplyEnv() {
	if v := os.Getenv("TASKAPP_ADDR"); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv("TASKAPP_DATA_DIR"); v != "" {
		c.Server.DataDir = v
	}
	if v := getEnvInt("TASKAPP_DUE_NOW_INTERVAL_S"); v > 0 {
		c.Scheduler.DueNowIntervalS = v
	}
	if v := getEnvInt("TASKAPP_OVERDUE_INTERVAL_S"); v > 0 {
		c.Scheduler.OverdueIntervalS = v
	}
	if v := getEnvInt("TASKAPP_SWEEP_INTERVAL_S"); v > 0 {
		c.Scheduler.SweepIntervalS = v
	}
	if v := getEnvInt("TASKAPP_DUE_NOW_WINDOW_S"); v > 0 {
		c.Reminders.DueNowWindowS = v
	}
	if v := getEnvInt("TASKAPP_DUE_NOW_COOLDOWN_S"); v > 0 {
		c.Reminders.DueNowCooldownS = v
	}
	if v := getEnvInt("TASKAPP_OVERDUE_COOLDOWN_S"); v > 0 {
		c.Reminders.OverdueCooldownS = v
	}
	if v := getEnvInt("TASKAPP_INBOX_MAX_AGE_H"); v > 0 {
		c.Inbox.MaxAgeH = v
	}
}

func getEnvInt(key string) int {
	val := os.Getenv(key)
	if val == "" {
		return 0
	}
	num, err := strconv.Atoi(val)
	if err != nil {
		return 0
	}
	return num
}
