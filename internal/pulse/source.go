package pulse

import (
	"fmt"
	"time"

	"github.com/shiwa/timecard-mini/if482-gen/internal/config"
)

// Source — источник тактового импульса. Ровно один источник выбирается
// при инициализации; смены источника на ходу нет.
type Source interface {
	// Name возвращает имя источника для логов.
	Name() string
	// Start запускает выдачу; notify вызывается на каждом фронте импульса.
	Start(notify func())
	// Close останавливает источник и освобождает ресурсы.
	Close() error
}

// NewSource создаёт источник импульса из конфига.
func NewSource(c config.PulseConfig) (Source, error) {
	period := time.Duration(c.PeriodMs) * time.Millisecond
	switch c.Source {
	case "timer":
		return NewTimer(period), nil
	case "pps":
		return NewPPS(c.Index)
	default:
		return nil, fmt.Errorf("pulse: неизвестный источник %q", c.Source)
	}
}
