package scheduler

// Номинальный период телеграмм: одна в секунду.
const nominalTicks = 1000

// emitPolicy — политика выдачи, выбранная один раз при инициализации по
// отношению периода импульса к номиналу. На каждое уведомление политика
// решает, сколько телеграмм выдать и как распределить задержки.
type emitPolicy interface {
	name() string
	// onPulse обрабатывает одно уведомление; wake — tick фронта импульса.
	onPulse(s *Scheduler, wake int64)
}

// newPolicy выбирает политику по периоду импульса в мс.
func newPolicy(periodMs int) emitPolicy {
	switch {
	case periodMs == nominalTicks:
		return unscaled{}
	case periodMs > nominalTicks:
		return upclocked{k: periodMs / nominalTicks}
	default:
		return downclocked{}
	}
}

// unscaled — период равен номиналу: задержка до момента выстрела,
// затем одна телеграмма на фронт.
type unscaled struct{}

func (unscaled) name() string { return "unscaled" }

func (unscaled) onPulse(s *Scheduler, wake int64) {
	s.delayUntil(&wake, s.shot)
	s.emit()
}

// upclocked — период кратен номиналу сверху: k = период/номинал выдач на
// уведомление, каждая со своей задержкой до выстрела. Исходный генератор
// ведёт себя именно так — k телеграмм на секунду, не одна; поведение
// сохранено сознательно (см. TestUpclockedEmitsPerSubPulse).
type upclocked struct {
	k int
}

func (p upclocked) name() string { return "upclocked" }

func (p upclocked) onPulse(s *Scheduler, wake int64) {
	for i := 0; i < p.k; i++ {
		s.delayUntil(&wake, s.shot)
		s.emit()
	}
}

// downclocked — период меньше номинала: телеграмма сразу по фронту,
// затем задержка на момент выстрела минус период — выдача растягивается
// под более медленный импульс.
type downclocked struct{}

func (downclocked) name() string { return "downclocked" }

func (downclocked) onPulse(s *Scheduler, wake int64) {
	s.emit()
	s.delayUntil(&wake, s.shot-s.periodTicks)
}
