//go:build !linux

package pulse

import "fmt"

// PPS — заглушка на не-Linux: интерфейс /dev/pps есть только в Linux.
type PPS struct{}

// NewPPS возвращает ошибку: источник pps доступен только на Linux.
func NewPPS(index int) (*PPS, error) {
	return nil, fmt.Errorf("pps: /dev/pps%d доступен только на Linux", index)
}

// Name возвращает имя источника.
func (p *PPS) Name() string { return "pps:unsupported" }

// Start не делает ничего.
func (p *PPS) Start(notify func()) {}

// Close не делает ничего.
func (p *PPS) Close() error { return nil }
