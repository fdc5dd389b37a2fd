// Package sink — последовательный выход телеграмм IF482.
// Параметры линии фиксированы протоколом: 7 бит данных, чётность even,
// 1 стоп-бит; скорость по умолчанию 9600 бод.
package sink

import (
	"fmt"

	"github.com/tarm/serial"
)

// Port — открытый порт выдачи телеграмм.
type Port struct {
	port   *serial.Port
	device string
}

// Open открывает порт с линией 7E1.
func Open(device string, baud int) (*Port, error) {
	if baud == 0 {
		baud = 9600
	}
	c := &serial.Config{
		Name:     device,
		Baud:     baud,
		Size:     7,
		Parity:   serial.ParityEven,
		StopBits: serial.Stop1,
	}
	p, err := serial.OpenPort(c)
	if err != nil {
		return nil, fmt.Errorf("serial open %s: %w", device, err)
	}
	return &Port{port: p, device: device}, nil
}

// Write пишет кадр в порт. Передача синхронная: возврат означает, что
// байты отданы драйверу; длительность кадра входит в бюджет упреждения.
func (p *Port) Write(b []byte) (int, error) {
	return p.port.Write(b)
}

// Close закрывает порт.
func (p *Port) Close() error {
	if p.port == nil {
		return nil
	}
	return p.port.Close()
}
