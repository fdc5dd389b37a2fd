package ubx

import (
	"encoding/binary"
	"testing"
	"time"
)

func TestEncodePacketRoundtrip(t *testing.T) {
	payload := []byte{1, 2, 3, 4}
	pkt := EncodePacket(ClassCFG, IDTP5, payload)
	// sync(2) + class/id(2) + len(2) + payload + checksum(2)
	if len(pkt) != 8+len(payload) {
		t.Fatalf("len = %d, want %d", len(pkt), 8+len(payload))
	}
	if pkt[0] != Sync1 || pkt[1] != Sync2 {
		t.Error("нет sync-байтов")
	}
	if !VerifyChecksum(pkt) {
		t.Error("checksum собранного пакета не сходится")
	}
	if !IsPacket(pkt, ClassCFG, IDTP5) {
		t.Error("IsPacket не распознал собранный пакет")
	}
	got := PacketPayload(pkt)
	if string(got) != string(payload) {
		t.Errorf("payload = %v, want %v", got, payload)
	}
}

func TestVerifyChecksum(t *testing.T) {
	pkt := EncodePacket(ClassNAV, IDNAVPVT, make([]byte, 8))
	pkt[10]++
	if VerifyChecksum(pkt) {
		t.Error("искажённый пакет прошёл проверку checksum")
	}
	if VerifyChecksum(pkt[:5]) {
		t.Error("короткий пакет прошёл проверку checksum")
	}
}

func TestTimePulseMarshal(t *testing.T) {
	tp := TimePulse{
		TPIdx:        0,
		PeriodMs:     2000,
		PulseWidthMs: 5,
		AlignToTow:   true,
	}
	p := tp.Marshal()
	if len(p) != tp5PayloadSize {
		t.Fatalf("payload %d байт, want %d", len(p), tp5PayloadSize)
	}
	periodUs := binary.LittleEndian.Uint32(p[8:12])
	if periodUs != 2000000 {
		t.Errorf("freqPeriod = %d, want 2000000 (период 2000 мс в мкс)", periodUs)
	}
	if lock := binary.LittleEndian.Uint32(p[12:16]); lock != periodUs {
		t.Errorf("freqPeriodLock = %d, want %d", lock, periodUs)
	}
	widthNs := binary.LittleEndian.Uint32(p[16:20])
	if widthNs != 5000000 {
		t.Errorf("pulseLen = %d, want 5000000 (5 мс в нс)", widthNs)
	}
	flags := binary.LittleEndian.Uint32(p[28:32])
	if flags&tp5Active == 0 || flags&tp5IsLength == 0 || flags&tp5AlignToTow == 0 {
		t.Errorf("flags = %#x", flags)
	}
}

func TestBuildTimePulse(t *testing.T) {
	pkt := BuildTimePulse(TimePulse{PeriodMs: 1000, PulseWidthMs: 5})
	if !IsPacket(pkt, ClassCFG, IDTP5) {
		t.Error("пакет не CFG-TP5")
	}
	if !VerifyChecksum(pkt) {
		t.Error("checksum не сходится")
	}
}

func TestParseNAVPVTTime(t *testing.T) {
	mk := func(valid byte, year, month, day, hour, min, sec int, nano int32) []byte {
		p := make([]byte, NAVPVTSize)
		binary.LittleEndian.PutUint16(p[navPvtYear:], uint16(year))
		p[navPvtMonth] = byte(month)
		p[navPvtDay] = byte(day)
		p[navPvtHour] = byte(hour)
		p[navPvtMin] = byte(min)
		p[navPvtSec] = byte(sec)
		p[navPvtValid] = valid
		binary.LittleEndian.PutUint32(p[navPvtNano:], uint32(nano))
		return p
	}

	t.Run("valid time", func(t *testing.T) {
		got, ok := ParseNAVPVTTime(mk(navPvtValidTime, 2025, 8, 24, 12, 30, 45, 123456789))
		if !ok {
			t.Fatal("expected ok")
		}
		want := time.Date(2025, 8, 24, 12, 30, 45, 123456789, time.UTC)
		if !got.Equal(want) {
			t.Errorf("got %v want %v", got, want)
		}
	})

	t.Run("validTime not set", func(t *testing.T) {
		if _, ok := ParseNAVPVTTime(mk(0, 2025, 8, 24, 0, 0, 0, 0)); ok {
			t.Error("expected !ok")
		}
	})

	t.Run("short payload", func(t *testing.T) {
		if _, ok := ParseNAVPVTTime(make([]byte, 40)); ok {
			t.Error("expected !ok")
		}
	})

	t.Run("nano clamped", func(t *testing.T) {
		got, ok := ParseNAVPVTTime(mk(navPvtValidTime, 2025, 1, 1, 0, 0, 0, -5))
		if !ok || got.Nanosecond() != 0 {
			t.Errorf("отрицательные наносекунды должны обрезаться до 0: ok=%v nano=%d", ok, got.Nanosecond())
		}
	})
}
