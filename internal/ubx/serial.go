package ubx

import (
	"fmt"
	"io"
	"time"

	"github.com/tarm/serial"
)

// Port — последовательный порт приёмника UBX (линия 8N1).
type Port struct {
	port *serial.Port
}

// Open открывает порт приёмника. ReadTimeout нужен, чтобы чтение пакета
// не висело вечно на молчащем устройстве.
func Open(device string, baud int) (*Port, error) {
	if baud == 0 {
		baud = 9600
	}
	c := &serial.Config{
		Name:        device,
		Baud:        baud,
		ReadTimeout: 2 * time.Second,
	}
	p, err := serial.OpenPort(c)
	if err != nil {
		return nil, fmt.Errorf("serial open %s: %w", device, err)
	}
	return &Port{port: p}, nil
}

// WritePacket отправляет готовый UBX пакет.
func (p *Port) WritePacket(packet []byte) error {
	_, err := p.port.Write(packet)
	return err
}

// ConfigureTimePulse отправляет CFG-TP5 на приёмник.
func (p *Port) ConfigureTimePulse(tp TimePulse) error {
	return p.WritePacket(BuildTimePulse(tp))
}

// ReadPacket читает один UBX пакет: ждёт sync, затем заголовок,
// затем payload с checksum.
func (p *Port) ReadPacket() ([]byte, error) {
	// Поиск пары sync-байтов
	var prev byte
	for {
		var b [1]byte
		if _, err := io.ReadFull(p.port, b[:]); err != nil {
			return nil, err
		}
		if prev == Sync1 && b[0] == Sync2 {
			break
		}
		prev = b[0]
	}
	// class, id, length
	header := make([]byte, 4)
	if _, err := io.ReadFull(p.port, header); err != nil {
		return nil, err
	}
	length := int(header[2]) | int(header[3])<<8
	rest := make([]byte, length+2)
	if _, err := io.ReadFull(p.port, rest); err != nil {
		return nil, err
	}
	packet := make([]byte, 0, 8+length+2)
	packet = append(packet, Sync1, Sync2)
	packet = append(packet, header...)
	packet = append(packet, rest...)
	if !VerifyChecksum(packet) {
		return packet, fmt.Errorf("ubx checksum mismatch")
	}
	return packet, nil
}

// Close закрывает порт.
func (p *Port) Close() error {
	if p.port == nil {
		return nil
	}
	return p.port.Close()
}
