// Package clock — календарные часы генератора: чтение времени хоста,
// перевод в локальную зону и статус достоверности для символа мониторинга.
package clock

import "time"

// Status — достоверность времени (как timeStatus() у исходного генератора:
// timeSet / timeNeedsSync / timeNotSet).
type Status int

const (
	StatusNotSet    Status = iota // время ни разу не подтверждено
	StatusNeedsSync               // время было подтверждено, но срок давности истёк
	StatusSet                     // время подтверждено и актуально
)

func (s Status) String() string {
	switch s {
	case StatusNotSet:
		return "not_set"
	case StatusNeedsSync:
		return "needs_sync"
	case StatusSet:
		return "set"
	default:
		return "unknown"
	}
}

// IsSet возвращает true, если время пригодно для кодирования даты в телеграмме
// (телеграмма при этом уходит всегда — меняется только символ мониторинга и payload).
func (s Status) IsSet() bool {
	return s == StatusSet || s == StatusNeedsSync
}

// Clock — интерфейс часов, потребляемый планировщиком телеграмм.
type Clock interface {
	// Now возвращает текущее время хоста (UTC или локальное — как у time.Now).
	Now() time.Time
	// ToLocal переводит время в зону выдачи телеграмм.
	ToLocal(t time.Time) time.Time
	// Status возвращает достоверность времени на данный момент.
	Status() Status
	// WaitSecondBoundary блокируется до начала следующей секунды.
	// Используется один раз — для выравнивания планировщика.
	WaitSecondBoundary()
}

// SyncState — состояние подтверждения времени внешним опорным источником.
// Реализуется timesync.Tracker; nil означает, что хостовые часы
// дисциплинируются извне (например tc-sync) и считаются достоверными.
type SyncState interface {
	// LastConfirmed возвращает момент последнего подтверждения и признак,
	// было ли подтверждение хотя бы раз.
	LastConfirmed() (time.Time, bool)
}

// DefaultStaleAfter — срок давности подтверждения, после которого статус
// деградирует до NeedsSync. 12 часов — по определению символа 'M' в IF482.
const DefaultStaleAfter = 12 * time.Hour

// System — часы на time.Now с локальной зоной и необязательным трекером
// подтверждения времени.
type System struct {
	loc        *time.Location
	sync       SyncState
	staleAfter time.Duration

	now func() time.Time // подменяется в тестах
}

// NewSystem создаёт системные часы. loc == nil — time.Local,
// staleAfter <= 0 — DefaultStaleAfter, sync == nil — статус всегда Set.
func NewSystem(loc *time.Location, sync SyncState, staleAfter time.Duration) *System {
	if loc == nil {
		loc = time.Local
	}
	if staleAfter <= 0 {
		staleAfter = DefaultStaleAfter
	}
	return &System{
		loc:        loc,
		sync:       sync,
		staleAfter: staleAfter,
		now:        time.Now,
	}
}

// Now возвращает текущее время хоста.
func (s *System) Now() time.Time {
	return s.now()
}

// ToLocal переводит время в зону выдачи телеграмм.
func (s *System) ToLocal(t time.Time) time.Time {
	return t.In(s.loc)
}

// Status возвращает достоверность времени.
// Без трекера хостовые часы считаются дисциплинированными извне.
func (s *System) Status() Status {
	if s.sync == nil {
		return StatusSet
	}
	last, ok := s.sync.LastConfirmed()
	if !ok {
		return StatusNotSet
	}
	if s.now().Sub(last) <= s.staleAfter {
		return StatusSet
	}
	return StatusNeedsSync
}

// Порог перехода от сна к опросу перед границей секунды.
const spinThreshold = 2 * time.Millisecond

// WaitSecondBoundary блокируется до начала следующей секунды:
// грубый сон, затем короткий опрос у самой границы.
func (s *System) WaitSecondBoundary() {
	for {
		now := s.now()
		next := now.Truncate(time.Second).Add(time.Second)
		rem := next.Sub(now)
		if rem > spinThreshold {
			time.Sleep(rem - spinThreshold)
			continue
		}
		for s.now().Before(next) {
			time.Sleep(50 * time.Microsecond)
		}
		return
	}
}
