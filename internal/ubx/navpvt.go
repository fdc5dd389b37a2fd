package ubx

import (
	"encoding/binary"
	"time"
)

// NAVPVTSize — минимальный размер payload NAV-PVT.
const NAVPVTSize = 92

// Смещения полей времени в payload NAV-PVT
const (
	navPvtYear  = 4  // uint16
	navPvtMonth = 6  // uint8
	navPvtDay   = 7  // uint8
	navPvtHour  = 8  // uint8
	navPvtMin   = 9  // uint8
	navPvtSec   = 10 // uint8
	navPvtValid = 11 // uint8: bit0 validDate, bit1 validTime, bit2 fullyResolved
	navPvtNano  = 16 // int32
)

// Флаг validTime в поле valid
const navPvtValidTime = 1 << 1

// ParseNAVPVTTime разбирает UTC время из payload NAV-PVT.
// Возвращает (время, true) только при установленном validTime;
// наносекунды обрезаются до [0, 999999999].
func ParseNAVPVTTime(payload []byte) (time.Time, bool) {
	if len(payload) < NAVPVTSize {
		return time.Time{}, false
	}
	if payload[navPvtValid]&navPvtValidTime == 0 {
		return time.Time{}, false
	}
	year := int(binary.LittleEndian.Uint16(payload[navPvtYear:]))
	nano := int(int32(binary.LittleEndian.Uint32(payload[navPvtNano : navPvtNano+4])))
	if nano < 0 {
		nano = 0
	} else if nano > 999999999 {
		nano = 999999999
	}
	t := time.Date(year, time.Month(payload[navPvtMonth]), int(payload[navPvtDay]),
		int(payload[navPvtHour]), int(payload[navPvtMin]), int(payload[navPvtSec]),
		nano, time.UTC)
	return t, true
}
