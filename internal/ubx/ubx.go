// Package ubx — минимальный протокол u-blox UBX: сборка и разбор пакетов,
// CFG-TP5 (программирование time pulse под период импульса генератора)
// и чтение времени из NAV-PVT для опорного источника.
package ubx

import "encoding/binary"

// Sync bytes протокола UBX
const (
	Sync1 = 0xB5
	Sync2 = 0x62
)

// Классы и ID используемых сообщений
const (
	ClassCFG = 0x06
	ClassNAV = 0x01
	IDTP5    = 0x31 // CFG-TP5 Time Pulse
	IDNAVPVT = 0x07 // NAV-PVT: position, velocity, time
)

// Checksum вычисляет контрольную сумму UBX (Fletcher-8, без sync bytes).
func Checksum(data []byte) (ckA, ckB uint8) {
	for _, b := range data {
		ckA += b
		ckB += ckA
	}
	return ckA, ckB
}

// EncodePacket собирает полный пакет: sync + class/id + length + payload + checksum.
func EncodePacket(class, id uint8, payload []byte) []byte {
	buf := make([]byte, 0, 8+len(payload)+2)
	buf = append(buf, Sync1, Sync2, class, id)
	buf = binary.LittleEndian.AppendUint16(buf, uint16(len(payload)))
	buf = append(buf, payload...)
	ckA, ckB := Checksum(buf[2:])
	buf = append(buf, ckA, ckB)
	return buf
}

// VerifyChecksum проверяет контрольную сумму пакета (sync..payload + 2 байта).
func VerifyChecksum(packet []byte) bool {
	if len(packet) < 10 {
		return false
	}
	ckA, ckB := Checksum(packet[2 : len(packet)-2])
	return packet[len(packet)-2] == ckA && packet[len(packet)-1] == ckB
}

// PacketPayload возвращает payload пакета (без заголовка и checksum),
// nil при неполном пакете.
func PacketPayload(packet []byte) []byte {
	if len(packet) < 8 {
		return nil
	}
	n := int(binary.LittleEndian.Uint16(packet[4:6]))
	if len(packet) < 8+n {
		return nil
	}
	return packet[8 : 8+n]
}

// IsPacket возвращает true, если пакет имеет заданные class и id.
func IsPacket(packet []byte, class, id uint8) bool {
	if len(packet) < 8 || packet[0] != Sync1 || packet[1] != Sync2 {
		return false
	}
	return packet[2] == class && packet[3] == id
}
