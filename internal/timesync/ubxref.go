package timesync

import (
	"fmt"
	"time"

	"github.com/shiwa/timecard-mini/if482-gen/internal/ubx"
)

// Таймаут ожидания NAV-PVT (u-blox шлёт его обычно 1 Гц)
const ubxFetchTimeout = 1500 * time.Millisecond

// UBX — опорный источник по UBX NAV-PVT с приёмника u-blox / Timecard Mini.
type UBX struct {
	port   *ubx.Port
	device string
}

// NewUBX открывает порт приёмника UBX.
func NewUBX(device string, baud int) (*UBX, error) {
	port, err := ubx.Open(device, baud)
	if err != nil {
		return nil, err
	}
	return &UBX{port: port, device: device}, nil
}

// Name возвращает имя источника.
func (u *UBX) Name() string {
	return fmt.Sprintf("ubx:%s", u.device)
}

// Protocol возвращает протокол.
func (u *UBX) Protocol() string {
	return "ubx"
}

// Fetch читает пакеты до первого NAV-PVT с валидным временем.
func (u *UBX) Fetch() (time.Time, bool) {
	deadline := time.Now().Add(ubxFetchTimeout)
	for time.Now().Before(deadline) {
		packet, err := u.port.ReadPacket()
		if err != nil {
			return time.Time{}, false
		}
		if !ubx.IsPacket(packet, ubx.ClassNAV, ubx.IDNAVPVT) {
			continue
		}
		if t, ok := ubx.ParseNAVPVTTime(ubx.PacketPayload(packet)); ok {
			return t, true
		}
	}
	return time.Time{}, false
}

// Close закрывает порт.
func (u *UBX) Close() error {
	return u.port.Close()
}
