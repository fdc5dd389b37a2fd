// Package timesync — подтверждение достоверности хостовых часов внешним
// опорным источником (NMEA, UBX или NTP). Трекер только наблюдает: часы
// хоста он не трогает, дисциплинирование — забота tc-sync. Результат
// наблюдения виден планировщику как символ мониторинга телеграммы.
package timesync

import (
	"context"
	"sync"
	"time"

	"github.com/shiwa/timecard-mini/if482-gen/internal/logger"
)

// Reference — опорный источник времени для подтверждения хостовых часов.
type Reference interface {
	// Name возвращает имя источника для логов.
	Name() string
	// Protocol возвращает протокол: nmea, ubx, ntp.
	Protocol() string
	// Fetch возвращает время по источнику; false — источник молчит или
	// данные невалидны.
	Fetch() (time.Time, bool)
	// Close освобождает ресурсы.
	Close() error
}

// Значения по умолчанию опроса и допуска.
const (
	DefaultPollInterval = 16 * time.Second
	DefaultMaxOffset    = 500 * time.Millisecond
)

// Tracker опрашивает опорный источник и хранит момент последнего
// подтверждения. Подтверждением считается только согласие источника с
// хостовыми часами в пределах maxOffset: если хост ушёл дальше, статус
// должен деградировать, а не подтверждаться.
type Tracker struct {
	ref       Reference
	interval  time.Duration
	maxOffset time.Duration

	mu        sync.Mutex
	last      time.Time
	confirmed bool

	now func() time.Time // подменяется в тестах
}

// NewTracker создаёт трекер. interval <= 0 — DefaultPollInterval,
// maxOffset <= 0 — DefaultMaxOffset.
func NewTracker(ref Reference, interval, maxOffset time.Duration) *Tracker {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	if maxOffset <= 0 {
		maxOffset = DefaultMaxOffset
	}
	return &Tracker{
		ref:       ref,
		interval:  interval,
		maxOffset: maxOffset,
		now:       time.Now,
	}
}

// LastConfirmed возвращает момент последнего подтверждения и признак,
// было ли подтверждение хотя бы раз. Реализует clock.SyncState.
func (t *Tracker) LastConfirmed() (time.Time, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.last, t.confirmed
}

// Run опрашивает источник до отмены ctx. Первый опрос — сразу.
func (t *Tracker) Run(ctx context.Context) {
	logger.Info("timesync: источник %s, опрос %v, допуск %v", t.ref.Name(), t.interval, t.maxOffset)
	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()
	for {
		t.poll()
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// poll выполняет один опрос источника.
func (t *Tracker) poll() {
	refTime, ok := t.ref.Fetch()
	if !ok {
		logger.Debug("timesync: %s не ответил", t.ref.Name())
		return
	}
	host := t.now()
	off := refTime.Sub(host)
	if off < 0 {
		off = -off
	}
	if off > t.maxOffset {
		logger.Info("timesync: расхождение с %s %v превышает допуск %v, подтверждения нет",
			t.ref.Name(), refTime.Sub(host), t.maxOffset)
		return
	}
	t.mu.Lock()
	t.last = host
	t.confirmed = true
	t.mu.Unlock()
	logger.Debug("timesync: подтверждено по %s, расхождение %v", t.ref.Name(), refTime.Sub(host))
}

// Close закрывает опорный источник.
func (t *Tracker) Close() error {
	return t.ref.Close()
}
