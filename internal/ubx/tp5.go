package ubx

import "encoding/binary"

// CFG-TP5 payload (32 байта, u-blox spec):
// 0 tpIdx, 1 version, 2-4 reserved, 4 antCableDelay (int16),
// 6 rfGroupDelay (int16), 8 freqPeriod (u32), 12 freqPeriodLock (u32),
// 16 pulseLenRatio (u32), 20 pulseLenRatioLock (u32),
// 24 userConfigDelay (int32), 28 flags (u32)
const tp5PayloadSize = 32

// Биты флагов CFG-TP5
const (
	tp5Active         = 0x01
	tp5LockGnssFreq   = 0x02
	tp5LockedOtherSet = 0x04
	tp5IsLength       = 0x10 // pulseLenRatio задаёт длительность, а не скважность
	tp5AlignToTow     = 0x20
)

// TimePulse — программируемый time pulse приёмника.
// PeriodMs должен совпадать с pulse.period_ms генератора: приёмник
// настраивается выдавать ровно тот импульс, на который рассчитан планировщик.
type TimePulse struct {
	TPIdx           uint8
	PeriodMs        int     // период импульса в мс
	PulseWidthMs    float64 // длительность импульса в мс
	AntCableDelayNs int16
	AlignToTow      bool
}

// Marshal сериализует параметры в 32-байтный payload CFG-TP5.
// Период кодируется в микросекундах (freqPeriod при установленном isLength).
func (tp TimePulse) Marshal() []byte {
	periodUs := uint32(tp.PeriodMs) * 1000
	widthNs := uint32(tp.PulseWidthMs * 1e6)
	p := make([]byte, tp5PayloadSize)
	p[0] = tp.TPIdx
	binary.LittleEndian.PutUint16(p[4:6], uint16(tp.AntCableDelayNs))
	binary.LittleEndian.PutUint32(p[8:12], periodUs)
	binary.LittleEndian.PutUint32(p[12:16], periodUs)
	binary.LittleEndian.PutUint32(p[16:20], widthNs)
	binary.LittleEndian.PutUint32(p[20:24], widthNs)
	flags := uint32(tp5Active | tp5LockGnssFreq | tp5LockedOtherSet | tp5IsLength)
	if tp.AlignToTow {
		flags |= tp5AlignToTow
	}
	binary.LittleEndian.PutUint32(p[28:32], flags)
	return p
}

// BuildTimePulse собирает полный пакет UBX CFG-TP5.
func BuildTimePulse(tp TimePulse) []byte {
	return EncodePacket(ClassCFG, IDTP5, tp.Marshal())
}
