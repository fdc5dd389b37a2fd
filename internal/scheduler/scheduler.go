package scheduler

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/shiwa/timecard-mini/if482-gen/internal/clock"
	"github.com/shiwa/timecard-mini/if482-gen/internal/logger"
	"github.com/shiwa/timecard-mini/if482-gen/internal/pulse"
	"github.com/shiwa/timecard-mini/if482-gen/internal/telegram"
)

// Config — параметры планировщика. Оба значения фиксируются при
// инициализации и не меняются на ходу.
type Config struct {
	PeriodMs int // период тактового импульса в мс
	OffsetMs int // упреждение передачи в мс
}

// Scheduler — единственный потребитель уведомлений об импульсе.
// Жизненный цикл: выравнивание на границу секунды (один раз), затем
// вечный цикл «ждать фронт — выдать по политике». Терминального
// состояния нет; остановка — только отменой ctx при завершении процесса.
type Scheduler struct {
	clock  clock.Clock
	ticks  TickClock
	mb     *pulse.Mailbox
	out    io.Writer
	policy emitPolicy

	periodTicks int64
	offsetTicks int64
	// shot — приращение от фронта импульса до момента выстрела:
	// передача начинается за offset до следующей границы секунды,
	// чтобы CR лёг на границу. Вычисляется один раз при выравнивании.
	shot int64
}

// New создаёт планировщик. Политика выдачи выбирается здесь, по
// конфигу, и больше не пересматривается.
func New(clk clock.Clock, ticks TickClock, mb *pulse.Mailbox, out io.Writer, cfg Config) (*Scheduler, error) {
	if cfg.PeriodMs <= 0 {
		return nil, fmt.Errorf("scheduler: период импульса %d", cfg.PeriodMs)
	}
	if cfg.OffsetMs <= 0 || cfg.OffsetMs >= nominalTicks {
		return nil, fmt.Errorf("scheduler: упреждение %d вне (0, %d)", cfg.OffsetMs, nominalTicks)
	}
	return &Scheduler{
		clock:       clk,
		ticks:       ticks,
		mb:          mb,
		out:         out,
		policy:      newPolicy(cfg.PeriodMs),
		periodTicks: int64(cfg.PeriodMs),
		offsetTicks: int64(cfg.OffsetMs),
	}, nil
}

// Run выполняет цикл планировщика до отмены ctx.
//
// Ожидание фронта без таймаута: планировщик движется только по импульсам.
// Отказ источника импульса здесь не обнаруживается — выдача просто
// останавливается (известное ограничение, сторожевого таймера нет).
func (s *Scheduler) Run(ctx context.Context) error {
	// Одноразовое выравнивание на границу секунды
	s.clock.WaitSecondBoundary()
	alignTick := s.ticks.Ticks()
	s.shot = nominalTicks - s.offsetTicks
	logger.Info("выровнен на границе секунды (tick %d): выстрел через %d мс после фронта, режим %s, период %d мс",
		alignTick, s.shot, s.policy.name(), s.periodTicks)

	for {
		wake, err := s.mb.Wait(ctx)
		if err != nil {
			return err
		}
		s.policy.onPulse(s, wake)
	}
}

// delayUntil повторяет семантику vTaskDelayUntil: цель = base + inc,
// сон до цели, base сдвигается на цель (не на фактический момент
// пробуждения) — накопления дрейфа от задержек пробуждения нет.
func (s *Scheduler) delayUntil(base *int64, inc int64) {
	target := *base + inc
	s.ticks.SleepUntil(target)
	*base = target
}

// emit кодирует и передаёт одну телеграмму. Кодируется следующая секунда:
// кадр описывает секунду, которая начнётся в момент конца передачи.
// Недостоверное время выдачу не останавливает — меняется только символ
// мониторинга и нагрузка; каденс 1 Гц держится всегда.
func (s *Scheduler) emit() {
	t := s.clock.ToLocal(s.clock.Now().Add(time.Second))
	frame := telegram.Encode(telegram.FromTime(t), s.clock.Status())
	logger.Debug("IF482 = %q", frame[:])
	if _, err := s.out.Write(frame[:]); err != nil {
		logger.Error("запись телеграммы: %v", err)
	}
}
