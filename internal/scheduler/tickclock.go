// Package scheduler — планировщик телеграмм IF482: одноразовое выравнивание
// на границу секунды, ожидание тактового импульса и выдача кадров так,
// чтобы конец передачи ложился на границу секунды.
package scheduler

import "time"

// Tick планировщика — миллисекунда монотонных часов процесса.
// Один счётчик делят источник импульса (штампует фронты) и планировщик
// (считает моменты выстрела), поэтому их tick'и сравнимы напрямую.
type TickClock interface {
	// Ticks возвращает текущий tick.
	Ticks() int64
	// SleepUntil блокируется до наступления tick; прошедший tick
	// возвращает немедленно.
	SleepUntil(tick int64)
}

// Monotonic — TickClock на монотонных часах процесса.
type Monotonic struct {
	start time.Time
}

// NewMonotonic создаёт часы с отсчётом от текущего момента.
func NewMonotonic() *Monotonic {
	return &Monotonic{start: time.Now()}
}

// Ticks возвращает миллисекунды от старта часов.
func (m *Monotonic) Ticks() int64 {
	return time.Since(m.start).Milliseconds()
}

// SleepUntil блокируется до наступления tick.
func (m *Monotonic) SleepUntil(tick int64) {
	d := time.Duration(tick-m.Ticks()) * time.Millisecond
	if d > 0 {
		time.Sleep(d)
	}
}
