package pulse

import (
	"context"
	"testing"
	"time"

	"github.com/shiwa/timecard-mini/if482-gen/internal/config"
)

func TestMailboxNotifyWait(t *testing.T) {
	m := NewMailbox()
	m.Notify(42)
	got, err := m.Wait(context.Background())
	if err != nil {
		t.Fatalf("Wait: %v", err)
	}
	if got != 42 {
		t.Errorf("Wait = %d, want 42", got)
	}
}

func TestMailboxCoalescing(t *testing.T) {
	// Два импульса до первого Wait — потребитель видит только последний tick
	m := NewMailbox()
	m.Notify(1)
	m.Notify(2)
	m.Notify(3)
	got, err := m.Wait(context.Background())
	if err != nil {
		t.Fatalf("Wait: %v", err)
	}
	if got != 3 {
		t.Errorf("Wait = %d, want последний tick 3", got)
	}
	// Повторного пробуждения нет — уведомления схлопнулись
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	if _, err := m.Wait(ctx); err == nil {
		t.Error("ожидали таймаут: коалесцированные уведомления не копятся")
	}
}

func TestMailboxNotifyNeverBlocks(t *testing.T) {
	m := NewMailbox()
	done := make(chan struct{})
	go func() {
		for i := 0; i < 10000; i++ {
			m.Notify(int64(i))
		}
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Notify заблокировался без потребителя")
	}
}

func TestMailboxWaitCancel(t *testing.T) {
	m := NewMailbox()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := m.Wait(ctx); err != context.Canceled {
		t.Errorf("Wait err = %v, want context.Canceled", err)
	}
}

func TestTimerSource(t *testing.T) {
	src := NewTimer(10 * time.Millisecond)
	if src.Name() == "" {
		t.Error("пустое имя источника")
	}
	ticks := make(chan struct{}, 64)
	src.Start(func() { ticks <- struct{}{} })
	var n int
	deadline := time.After(300 * time.Millisecond)
	for n < 3 {
		select {
		case <-ticks:
			n++
		case <-deadline:
			t.Fatalf("за 300ms пришло %d импульсов, ожидали >= 3", n)
		}
	}
	if err := src.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
}

func TestNewSource(t *testing.T) {
	t.Run("timer", func(t *testing.T) {
		src, err := NewSource(config.PulseConfig{Source: "timer", PeriodMs: 1000})
		if err != nil {
			t.Fatalf("NewSource: %v", err)
		}
		defer src.Close()
		if _, ok := src.(*Timer); !ok {
			t.Errorf("ожидали *Timer, получили %T", src)
		}
	})
	t.Run("unknown", func(t *testing.T) {
		if _, err := NewSource(config.PulseConfig{Source: "gps"}); err == nil {
			t.Error("ожидали ошибку для неизвестного источника")
		}
	})
}
