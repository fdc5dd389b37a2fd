//go:build linux

package pulse

import (
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"time"
	"unsafe"

	"golang.org/x/sys/unix"

	"github.com/shiwa/timecard-mini/if482-gen/internal/logger"
)

// Linux PPS API (include/uapi/linux/pps.h):
// PPS_FETCH = _IOWR('p', 0xa4, struct pps_fdata)
// pps_fdata { pps_kinfo info; pps_ktime timeout; }
// pps_kinfo: assert_sequence u32, clear_sequence u32, assert_tu, clear_tu, current_mode
// pps_ktime: sec int64, nsec int32, flags uint32
// timeout.flags = PPS_TIME_INVALID — ждать следующего события (блокирующий fetch)
const (
	ppsIoctlFetch   = 0xc00470a4 // _IOWR('p', 0xa4, 64)
	ppsFdataSize    = 64
	ppsAssertSeq    = 0  // offset assert_sequence в pps_kinfo
	ppsTimeoutFlags = 60 // offset timeout.flags в pps_fdata
	ppsTimeInvalid  = 1  // PPS_TIME_INVALID
)

// PPS — аппаратный источник импульса с /dev/pps{N} (assert-фронты от
// приёмника GNSS или RTC). Каждый фронт — одно уведомление.
type PPS struct {
	f     *os.File
	index int
	stop  chan struct{}
}

// NewPPS открывает /dev/pps{index}.
func NewPPS(index int) (*PPS, error) {
	path := filepath.Join("/dev", fmt.Sprintf("pps%d", index))
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return nil, fmt.Errorf("pps open %s: %w", path, err)
	}
	return &PPS{
		f:     f,
		index: index,
		stop:  make(chan struct{}),
	}, nil
}

// Name возвращает имя источника.
func (p *PPS) Name() string {
	return fmt.Sprintf("pps:/dev/pps%d", p.index)
}

// Start запускает цикл блокирующего PPS_FETCH: каждый возврат с новым
// assert_sequence — один фронт.
func (p *PPS) Start(notify func()) {
	go func() {
		buf := make([]byte, ppsFdataSize)
		var lastSeq uint32
		first := true
		for {
			select {
			case <-p.stop:
				return
			default:
			}
			// timeout.flags = PPS_TIME_INVALID: ядро ждёт следующий фронт
			for i := range buf {
				buf[i] = 0
			}
			binary.LittleEndian.PutUint32(buf[ppsTimeoutFlags:ppsTimeoutFlags+4], ppsTimeInvalid)
			if err := ioctlPPSFetch(int(p.f.Fd()), buf); err != nil {
				select {
				case <-p.stop:
					return
				default:
				}
				logger.Error("pps%d fetch: %v", p.index, err)
				time.Sleep(100 * time.Millisecond)
				continue
			}
			seq := binary.LittleEndian.Uint32(buf[ppsAssertSeq : ppsAssertSeq+4])
			if first || seq != lastSeq {
				lastSeq = seq
				first = false
				notify()
			}
		}
	}()
}

// Close останавливает цикл и закрывает устройство.
func (p *PPS) Close() error {
	close(p.stop)
	return p.f.Close()
}

// ioctlPPSFetch выполняет PPS_FETCH; ядро заполняет info в buf.
func ioctlPPSFetch(fd int, buf []byte) error {
	if len(buf) < ppsFdataSize {
		return fmt.Errorf("buffer too small")
	}
	_, _, errno := unix.Syscall(unix.SYS_IOCTL, uintptr(fd), uintptr(ppsIoctlFetch), uintptr(unsafe.Pointer(&buf[0])))
	if errno != 0 {
		return errno
	}
	return nil
}
