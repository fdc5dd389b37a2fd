// Package pulse — тактовый импульс планировщика: источники импульса
// (аппаратный /dev/pps или программный таймер) и мост к задаче планировщика.
package pulse

import (
	"context"
	"sync/atomic"
)

// Mailbox — одноместный почтовый ящик уведомлений об импульсе.
// Источник пишет tick последнего фронта, планировщик — единственный
// потребитель. Если потребитель не успел, новое уведомление затирает
// старое (побеждает последний tick); очередь не растёт.
type Mailbox struct {
	tick atomic.Int64
	wake chan struct{}
}

// NewMailbox создаёт пустой почтовый ящик.
func NewMailbox() *Mailbox {
	return &Mailbox{wake: make(chan struct{}, 1)}
}

// Notify записывает tick фронта и будит потребителя.
// Не блокируется и не аллоцирует — пригодно для вызова из горутины
// источника на каждом фронте.
func (m *Mailbox) Notify(tick int64) {
	m.tick.Store(tick)
	select {
	case m.wake <- struct{}{}:
	default: // потребитель ещё не забрал прошлое уведомление — коалесцируем
	}
}

// Wait блокируется до следующего уведомления и возвращает tick последнего
// фронта. Таймаута нет: планировщик движется только по импульсам;
// разблокирует лишь отмена ctx (завершение процесса).
func (m *Mailbox) Wait(ctx context.Context) (int64, error) {
	select {
	case <-m.wake:
		return m.tick.Load(), nil
	case <-ctx.Done():
		return 0, ctx.Err()
	}
}
