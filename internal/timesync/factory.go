package timesync

import (
	"fmt"
	"time"

	"github.com/shiwa/timecard-mini/if482-gen/internal/config"
)

// NewReference создаёт опорный источник из конфига time_sync.
func NewReference(c config.TimeSyncConfig) (Reference, error) {
	switch c.Protocol {
	case "nmea":
		return NewNMEA(c.Device, c.Baud)
	case "ubx":
		return NewUBX(c.Device, c.Baud)
	case "ntp":
		if c.IP == "" {
			return nil, fmt.Errorf("ntp: ip required")
		}
		return NewNTP(c.IP, 0), nil
	default:
		return nil, fmt.Errorf("timesync: неизвестный protocol %q", c.Protocol)
	}
}

// NewTrackerFromConfig создаёт трекер с источником и параметрами из конфига.
func NewTrackerFromConfig(c *config.TimeSyncConfig) (*Tracker, error) {
	ref, err := NewReference(*c)
	if err != nil {
		return nil, err
	}
	interval := parseDuration(c.PollInterval, DefaultPollInterval)
	maxOffset := parseDuration(c.MaxOffset, DefaultMaxOffset)
	return NewTracker(ref, interval, maxOffset), nil
}

// StaleAfter возвращает срок давности подтверждения из конфига;
// 0 — не задан (часы применят свой дефолт 12h).
func StaleAfter(c *config.TimeSyncConfig) time.Duration {
	if c == nil {
		return 0
	}
	return parseDuration(c.StaleAfter, 0)
}

func parseDuration(s string, defaultVal time.Duration) time.Duration {
	if s == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return defaultVal
	}
	return d
}
