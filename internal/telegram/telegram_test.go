package telegram

import (
	"testing"
	"time"

	"github.com/shiwa/timecard-mini/if482-gen/internal/clock"
)

func TestEncodeKnownInstant(t *testing.T) {
	// Пример из описания протокола: 2016-08-06, день недели 1, 17:04:00
	snap := Snapshot{Year: 16, Month: 8, Day: 6, Weekday: 1, Hour: 17, Minute: 4, Second: 0}
	got := Encode(snap, clock.StatusSet)
	want := "OAL1608061170400\r"
	if string(got[:]) != want {
		t.Errorf("Encode = %q, want %q", got, want)
	}
}

func TestEncodeFrameShape(t *testing.T) {
	snaps := []Snapshot{
		{},
		{Year: 0, Month: 1, Day: 1, Weekday: 1},
		{Year: 99, Month: 12, Day: 31, Weekday: 7, Hour: 23, Minute: 59, Second: 59},
		{Year: 25, Month: 6, Day: 15, Weekday: 3, Hour: 9, Minute: 30, Second: 7},
	}
	statuses := []clock.Status{clock.StatusNotSet, clock.StatusNeedsSync, clock.StatusSet}
	for _, snap := range snaps {
		for _, st := range statuses {
			f := Encode(snap, st)
			if len(f) != FrameSize {
				t.Fatalf("кадр %d байт, want %d", len(f), FrameSize)
			}
			if f[0] != StartChar {
				t.Errorf("кадр начинается с %q, want 'O'", f[0])
			}
			if f[2] != ZoneLocal {
				t.Errorf("символ зоны %q, want 'L'", f[2])
			}
			if f[FrameSize-1] != EndChar {
				t.Errorf("кадр заканчивается %q, want CR", f[FrameSize-1])
			}
		}
	}
}

func TestEncodeNotSet(t *testing.T) {
	// При NotSet нагрузка нулевая независимо от переданных полей
	snap := Snapshot{Year: 25, Month: 8, Day: 24, Weekday: 1, Hour: 12, Minute: 34, Second: 56}
	got := Encode(snap, clock.StatusNotSet)
	want := "O?L000000F000000\r"
	if string(got[:]) != want {
		t.Errorf("Encode(NotSet) = %q, want %q", got, want)
	}
}

func TestMonitorChar(t *testing.T) {
	tests := []struct {
		st   clock.Status
		want byte
	}{
		{clock.StatusSet, 'A'},
		{clock.StatusNeedsSync, 'M'},
		{clock.StatusNotSet, '?'},
	}
	for _, tt := range tests {
		f := Encode(Snapshot{Year: 25, Month: 1, Day: 1, Weekday: 1}, tt.st)
		if f[1] != tt.want {
			t.Errorf("символ мониторинга для %v = %q, want %q", tt.st, f[1], tt.want)
		}
	}
}

func TestEncodeIdempotent(t *testing.T) {
	snap := Snapshot{Year: 16, Month: 8, Day: 6, Weekday: 1, Hour: 17, Minute: 4}
	a := Encode(snap, clock.StatusSet)
	b := Encode(snap, clock.StatusSet)
	if a != b {
		t.Errorf("повторное кодирование дало другой кадр: %q vs %q", a, b)
	}
}

func TestEncodeMasksOverflow(t *testing.T) {
	// Поля вне диапазона не должны ломать длину кадра
	snap := Snapshot{Year: 116, Month: 13, Day: 40, Weekday: 12, Hour: 25, Minute: 61, Second: 61}
	f := Encode(snap, clock.StatusSet)
	if len(f) != FrameSize || f[FrameSize-1] != EndChar {
		t.Fatalf("кадр при переполнении полей: %q", f)
	}
	if f[3] != '1' || f[4] != '6' {
		t.Errorf("год 116 должен маскироваться до 16, кадр %q", f)
	}
	if f[9] != '2' {
		t.Errorf("день недели 12 должен маскироваться до 2, кадр %q", f)
	}
}

func TestFromTime(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want Snapshot
	}{
		{
			"saturday",
			time.Date(2016, 8, 6, 17, 4, 0, 0, time.UTC),
			Snapshot{Year: 16, Month: 8, Day: 6, Weekday: 6, Hour: 17, Minute: 4, Second: 0},
		},
		{
			"sunday is 7",
			time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
			Snapshot{Year: 25, Month: 6, Day: 1, Weekday: 7},
		},
		{
			"monday is 1",
			time.Date(2025, 6, 2, 23, 59, 59, 0, time.UTC),
			Snapshot{Year: 25, Month: 6, Day: 2, Weekday: 1, Hour: 23, Minute: 59, Second: 59},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FromTime(tt.in); got != tt.want {
				t.Errorf("FromTime(%v) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestFrameDuration(t *testing.T) {
	// 17 байт по 10 бит при 9600 бод — около 17.7 мс
	if FrameDuration < 17*time.Millisecond || FrameDuration > 18*time.Millisecond {
		t.Errorf("FrameDuration = %v, ожидали ~17.7ms", FrameDuration)
	}
}
