package pulse

import (
	"fmt"
	"time"
)

// Timer — программный источник импульса на time.Ticker.
// Замена аппаратного тактового сигнала, когда линия /dev/pps не заведена;
// точность ограничена планировщиком ОС.
type Timer struct {
	period time.Duration
	stop   chan struct{}
}

// NewTimer создаёт таймерный источник с заданным периодом.
func NewTimer(period time.Duration) *Timer {
	if period <= 0 {
		period = time.Second
	}
	return &Timer{
		period: period,
		stop:   make(chan struct{}),
	}
}

// Name возвращает имя источника.
func (t *Timer) Name() string {
	return fmt.Sprintf("timer:%v", t.period)
}

// Start запускает выдачу импульсов.
func (t *Timer) Start(notify func()) {
	ticker := time.NewTicker(t.period)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				notify()
			case <-t.stop:
				return
			}
		}
	}()
}

// Close останавливает выдачу.
func (t *Timer) Close() error {
	close(t.stop)
	return nil
}
