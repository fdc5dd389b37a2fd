// Package telegram кодирует телеграмму времени IF482 — 17-байтовый ASCII кадр
// для ведомых часов (например BÜRK BU190).
//
// Формат кадра: 'O' + символ мониторинга + символ зоны + 13 знаков
// даты/времени (ГГ ММ ДД Д ЧЧ ММ СС) + CR. Кадр заканчивается в начале
// секунды, которую описывает; параметры линии — 9600 бод, 7E1.
package telegram

import (
	"time"

	"github.com/shiwa/timecard-mini/if482-gen/internal/clock"
)

// FrameSize — длина телеграммы IF482 в байтах, всегда ровно 17.
const FrameSize = 17

// Символы кадра по спецификации IF482 (TE 112.023).
const (
	StartChar        = 'O'  // начало телеграммы
	ZoneLocal        = 'L'  // зона: локальное время (W/S/U в этом развёртывании не используются)
	MonitorSet       = 'A'  // время подтверждено
	MonitorNeedsSync = 'M'  // подтверждения нет более срока давности
	MonitorNotSet    = '?'  // достоверного времени не было (на линию в норме не попадает)
	EndChar          = '\r' // конец телеграммы
)

// zeroPayload — полезная нагрузка при отсутствии достоверного времени.
const zeroPayload = "000000F000000"

// Битовая длина кадра на линии: старт + 7 данных + чётность + стоп на байт.
const frameBits = FrameSize * 10

// FrameDuration — время передачи кадра при 9600 бод; бюджет упреждения
// (offset_ms) должен быть не меньше этой величины.
const FrameDuration = frameBits * time.Second / 9600

// Snapshot — календарные поля одного момента времени.
// Снимается одним вызовом FromTime; поля после этого не перечитываются,
// чтобы не порвать значения на границе секунды.
type Snapshot struct {
	Year    int // смещение от 2000
	Month   int
	Day     int
	Weekday int // ISO: Пн=1 .. Вс=7
	Hour    int
	Minute  int
	Second  int
}

// FromTime снимает календарные поля с одного момента времени.
func FromTime(t time.Time) Snapshot {
	wd := int(t.Weekday())
	if wd == 0 {
		wd = 7
	}
	return Snapshot{
		Year:    t.Year() - 2000,
		Month:   int(t.Month()),
		Day:     t.Day(),
		Weekday: wd,
		Hour:    t.Hour(),
		Minute:  t.Minute(),
		Second:  t.Second(),
	}
}

// MonitorChar возвращает символ мониторинга для статуса времени.
func MonitorChar(st clock.Status) byte {
	switch st {
	case clock.StatusSet:
		return MonitorSet
	case clock.StatusNeedsSync:
		return MonitorNeedsSync
	default:
		return MonitorNotSet
	}
}

// Encode собирает телеграмму IF482. Ошибки невозможны: все числовые поля
// маскируются до допустимого диапазона перед записью, длина кадра
// фиксирована типом результата. При статусе NotSet нагрузка — zeroPayload.
func Encode(snap Snapshot, st clock.Status) [FrameSize]byte {
	var f [FrameSize]byte
	f[0] = StartChar
	f[1] = MonitorChar(st)
	f[2] = ZoneLocal
	if st.IsSet() {
		put2(f[3:5], snap.Year)
		put2(f[5:7], snap.Month)
		put2(f[7:9], snap.Day)
		f[9] = digit(snap.Weekday)
		put2(f[10:12], snap.Hour)
		put2(f[12:14], snap.Minute)
		put2(f[14:16], snap.Second)
	} else {
		copy(f[3:16], zeroPayload)
	}
	f[16] = EndChar
	return f
}

// put2 пишет значение двумя десятичными знаками, маскируя до 0..99.
func put2(dst []byte, v int) {
	v %= 100
	if v < 0 {
		v += 100
	}
	dst[0] = '0' + byte(v/10)
	dst[1] = '0' + byte(v%10)
}

// digit пишет значение одним знаком, маскируя до 0..9.
func digit(v int) byte {
	v %= 10
	if v < 0 {
		v += 10
	}
	return '0' + byte(v)
}
