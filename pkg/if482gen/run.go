// Package if482gen — сборка и запуск генератора IF482: часы, опорный
// источник подтверждения времени, источник тактового импульса, мост и
// планировщик. Используется из cmd/if482-gen и пригоден для встраивания.
package if482gen

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/shiwa/timecard-mini/if482-gen/internal/clock"
	"github.com/shiwa/timecard-mini/if482-gen/internal/config"
	"github.com/shiwa/timecard-mini/if482-gen/internal/logger"
	"github.com/shiwa/timecard-mini/if482-gen/internal/pulse"
	"github.com/shiwa/timecard-mini/if482-gen/internal/scheduler"
	"github.com/shiwa/timecard-mini/if482-gen/internal/sink"
	"github.com/shiwa/timecard-mini/if482-gen/internal/timesync"
)

// Run запускает генератор с готовым выходом телеграмм до отмены ctx.
// Ошибка сборки любого узла фатальна: деградированного режима без
// планировщика нет.
func Run(ctx context.Context, cfg *config.Config, out io.Writer) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	loc, err := location(cfg.Telegram.Timezone)
	if err != nil {
		return fmt.Errorf("telegram: timezone: %w", err)
	}

	var syncState clock.SyncState
	if cfg.TimeSync != nil {
		tracker, err := timesync.NewTrackerFromConfig(cfg.TimeSync)
		if err != nil {
			return fmt.Errorf("time_sync: %w", err)
		}
		defer tracker.Close()
		go tracker.Run(ctx)
		syncState = tracker
	}
	clk := clock.NewSystem(loc, syncState, timesync.StaleAfter(cfg.TimeSync))

	src, err := pulse.NewSource(cfg.Pulse)
	if err != nil {
		return fmt.Errorf("pulse: %w", err)
	}
	defer src.Close()

	ticks := scheduler.NewMonotonic()
	mb := pulse.NewMailbox()
	sched, err := scheduler.New(clk, ticks, mb, out, scheduler.Config{
		PeriodMs: cfg.Pulse.PeriodMs,
		OffsetMs: cfg.Telegram.OffsetMs,
	})
	if err != nil {
		return err
	}

	// Мост: фронт импульса — один tick в почтовый ящик планировщика
	src.Start(func() { mb.Notify(ticks.Ticks()) })
	logger.Info("источник импульса %s, упреждение %d мс", src.Name(), cfg.Telegram.OffsetMs)

	return sched.Run(ctx)
}

// RunDaemon открывает последовательный выход из конфига и запускает Run.
func RunDaemon(ctx context.Context, cfg *config.Config, quiet bool) error {
	logger.Quiet = quiet
	port, err := sink.Open(cfg.Serial.Port, cfg.Serial.Baud)
	if err != nil {
		return fmt.Errorf("открытие порта %s: %w", cfg.Serial.Port, err)
	}
	defer port.Close()
	logger.Info("выход IF482: %s, %d бод 7E1", cfg.Serial.Port, cfg.Serial.Baud)
	return Run(ctx, cfg, port)
}

// location разбирает зону телеграммы: пусто или "Local" — time.Local.
func location(name string) (*time.Location, error) {
	if name == "" || name == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(name)
}
