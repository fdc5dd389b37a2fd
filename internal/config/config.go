// Package config — конфигурация if482-gen.
// Формат YAML в стиле tc-sync: serial (выход IF482), pulse (источник
// тактового импульса), time_sync (опорный источник для символа
// мониторинга), timepulse (CFG-TP5 для -configure).
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// NominalPulseMs — номинальный период телеграмм (1 Гц); относительно него
// выбирается режим масштабирования импульсов.
const NominalPulseMs = 1000

// Config — конфигурация генератора.
type Config struct {
	Serial    SerialConfig    `yaml:"serial"`
	Telegram  TelegramConfig  `yaml:"telegram"`
	Pulse     PulseConfig     `yaml:"pulse"`
	TimeSync  *TimeSyncConfig `yaml:"time_sync"`
	Timepulse TimepulseConfig `yaml:"timepulse"`
}

// SerialConfig — последовательный порт выдачи телеграмм.
// Параметры линии 7E1 фиксированы протоколом и задаются кодом, не конфигом.
type SerialConfig struct {
	Port string `yaml:"port"`
	Baud int    `yaml:"baud"`
}

// TelegramConfig — параметры выдачи телеграмм.
type TelegramConfig struct {
	// OffsetMs — упреждение передачи: за сколько миллисекунд до границы
	// секунды начинается передача, чтобы CR лёг на границу.
	OffsetMs int `yaml:"offset_ms"`
	// Timezone — зона телеграммы: имя IANA, "Local" или пусто (Local).
	Timezone string `yaml:"timezone"`
}

// PulseConfig — источник тактового импульса планировщика.
// Источник выбирается один раз; одновременно двух быть не может.
type PulseConfig struct {
	Source   string `yaml:"source"`    // timer | pps
	PeriodMs int    `yaml:"period_ms"` // период импульса в мс
	Index    int    `yaml:"index"`     // /dev/pps{N} для source: pps
}

// TimeSyncConfig — опорный источник подтверждения времени хоста.
// Отсутствие секции означает, что часы хоста считаются достоверными.
type TimeSyncConfig struct {
	Protocol     string `yaml:"protocol"` // nmea | ubx | ntp
	Device       string `yaml:"device"`
	Baud         int    `yaml:"baud"`
	IP           string `yaml:"ip"`
	PollInterval string `yaml:"pollinterval"`
	StaleAfter   string `yaml:"stale_after"` // срок давности подтверждения, по умолчанию 12h
	MaxOffset    string `yaml:"max_offset"`  // допуск расхождения с хостом, по умолчанию 500ms
}

// TimepulseConfig — параметры CFG-TP5 приёмника (для -configure).
// Период импульса берётся из pulse.period_ms, здесь — только форма импульса.
type TimepulseConfig struct {
	Device          string  `yaml:"device"`
	Baud            int     `yaml:"baud"`
	PulseWidthMs    float64 `yaml:"pulse_width_ms"`
	TPIdx           uint8   `yaml:"tp_idx"`
	AntCableDelayNs int16   `yaml:"ant_cable_delay_ns"`
	AlignToTow      bool    `yaml:"align_to_tow"`
}

// Default возвращает конфиг по умолчанию: программный таймер 1 Гц,
// выход на /dev/ttyS1, упреждение 90 мс.
func Default() *Config {
	return &Config{
		Serial: SerialConfig{
			Port: "/dev/ttyS1",
			Baud: 9600,
		},
		Telegram: TelegramConfig{
			OffsetMs: 90,
			Timezone: "Local",
		},
		Pulse: PulseConfig{
			Source:   "timer",
			PeriodMs: NominalPulseMs,
		},
		Timepulse: TimepulseConfig{
			Device:       "/dev/ttyS0",
			Baud:         9600,
			PulseWidthMs: 5,
			TPIdx:        0,
			AlignToTow:   true,
		},
	}
}

// Load читает конфиг из YAML и подставляет значения по умолчанию.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var c Config
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	applyDefaults(&c)
	return &c, nil
}

func applyDefaults(c *Config) {
	d := Default()
	if c.Serial.Port == "" {
		c.Serial.Port = d.Serial.Port
	}
	if c.Serial.Baud == 0 {
		c.Serial.Baud = d.Serial.Baud
	}
	if c.Telegram.OffsetMs == 0 {
		c.Telegram.OffsetMs = d.Telegram.OffsetMs
	}
	if c.Telegram.Timezone == "" {
		c.Telegram.Timezone = d.Telegram.Timezone
	}
	if c.Pulse.Source == "" {
		c.Pulse.Source = d.Pulse.Source
	}
	if c.Pulse.PeriodMs == 0 {
		c.Pulse.PeriodMs = d.Pulse.PeriodMs
	}
	if c.Timepulse.Device == "" {
		c.Timepulse.Device = d.Timepulse.Device
	}
	if c.Timepulse.Baud == 0 {
		c.Timepulse.Baud = d.Timepulse.Baud
	}
	if c.Timepulse.PulseWidthMs == 0 {
		c.Timepulse.PulseWidthMs = d.Timepulse.PulseWidthMs
	}
	if c.TimeSync != nil {
		if c.TimeSync.Baud == 0 {
			c.TimeSync.Baud = 9600
		}
	}
}

// Validate проверяет конфиг перед запуском.
// Источник импульса — ровно один; дробные отношения периода к номиналу
// не поддерживаются (целочисленное масштабирование).
func (c *Config) Validate() error {
	switch c.Pulse.Source {
	case "timer", "pps":
	default:
		return fmt.Errorf("pulse: source должен быть timer или pps, получен %q", c.Pulse.Source)
	}
	p := c.Pulse.PeriodMs
	if p <= 0 {
		return fmt.Errorf("pulse: period_ms должен быть > 0, получен %d", p)
	}
	if p > NominalPulseMs && p%NominalPulseMs != 0 {
		return fmt.Errorf("pulse: period_ms %d не кратен номиналу %d", p, NominalPulseMs)
	}
	if p < NominalPulseMs && NominalPulseMs%p != 0 {
		return fmt.Errorf("pulse: номинал %d не кратен period_ms %d", NominalPulseMs, p)
	}
	if c.Telegram.OffsetMs <= 0 || c.Telegram.OffsetMs >= NominalPulseMs {
		return fmt.Errorf("telegram: offset_ms должен быть в (0, %d), получен %d", NominalPulseMs, c.Telegram.OffsetMs)
	}
	if ts := c.TimeSync; ts != nil {
		switch ts.Protocol {
		case "nmea", "ubx":
			if ts.Device == "" {
				return fmt.Errorf("time_sync: для protocol %s нужен device", ts.Protocol)
			}
		case "ntp":
			if ts.IP == "" {
				return fmt.Errorf("time_sync: для protocol ntp нужен ip")
			}
		default:
			return fmt.Errorf("time_sync: неизвестный protocol %q", ts.Protocol)
		}
	}
	return nil
}
