package timesync

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/tarm/serial"
)

// Таймаут одного чтения RMC
const nmeaFetchTimeout = 2 * time.Second

// NMEA — опорный источник по NMEA RMC (GPRMC/GNRMC) с последовательного порта.
type NMEA struct {
	port   *serial.Port
	device string
}

// NewNMEA открывает порт приёмника NMEA.
func NewNMEA(device string, baud int) (*NMEA, error) {
	if baud == 0 {
		baud = 9600
	}
	c := &serial.Config{Name: device, Baud: baud, ReadTimeout: nmeaFetchTimeout}
	port, err := serial.OpenPort(c)
	if err != nil {
		return nil, fmt.Errorf("nmea open %s: %w", device, err)
	}
	return &NMEA{port: port, device: device}, nil
}

// Name возвращает имя источника.
func (n *NMEA) Name() string {
	return fmt.Sprintf("nmea:%s", n.device)
}

// Protocol возвращает протокол.
func (n *NMEA) Protocol() string {
	return "nmea"
}

// Fetch читает строки NMEA до первой валидной RMC и возвращает её UTC время.
func (n *NMEA) Fetch() (time.Time, bool) {
	deadline := time.Now().Add(nmeaFetchTimeout)
	rd := bufio.NewReader(n.port)
	for time.Now().Before(deadline) {
		line, err := rd.ReadString('\n')
		if err != nil {
			return time.Time{}, false
		}
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "$GP") && !strings.HasPrefix(line, "$GN") {
			continue
		}
		if !strings.Contains(line, "RMC") {
			continue
		}
		if t, ok := parseRMC(line); ok {
			return t, true
		}
	}
	return time.Time{}, false
}

// parseRMC парсит $GPRMC/$GNRMC: поле 1 — hhmmss.ss, поле 2 — A/V, поле 9 — ddmmyy.
func parseRMC(line string) (time.Time, bool) {
	if i := strings.Index(line, "*"); i >= 0 {
		line = line[:i]
	}
	parts := strings.Split(line, ",")
	if len(parts) < 10 {
		return time.Time{}, false
	}
	if parts[2] != "A" {
		return time.Time{}, false
	}
	timeStr, dateStr := parts[1], parts[9]
	if len(timeStr) < 6 || len(dateStr) < 6 {
		return time.Time{}, false
	}
	hh, _ := strconv.Atoi(timeStr[0:2])
	mm, _ := strconv.Atoi(timeStr[2:4])
	ss, _ := strconv.Atoi(timeStr[4:6])
	nsec := 0
	if len(timeStr) >= 8 && timeStr[6] == '.' {
		fracStr := timeStr[7:]
		if len(fracStr) > 9 {
			fracStr = fracStr[:9]
		}
		frac, _ := strconv.Atoi(fracStr)
		for i := 0; i < 9-len(fracStr); i++ {
			frac *= 10
		}
		nsec = frac
	}
	day, _ := strconv.Atoi(dateStr[0:2])
	month, _ := strconv.Atoi(dateStr[2:4])
	year, _ := strconv.Atoi(dateStr[4:6])
	if year < 80 {
		year += 2000
	} else {
		year += 1900
	}
	return time.Date(year, time.Month(month), day, hh, mm, ss, nsec, time.UTC), true
}

// Close закрывает порт.
func (n *NMEA) Close() error {
	if n.port == nil {
		return nil
	}
	return n.port.Close()
}
