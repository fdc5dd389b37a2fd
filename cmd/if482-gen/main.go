// if482-gen — генератор телеграмм времени IF482 (Mobatime).
//
// По тактовому импульсу (программный таймер или PPS ядра) выдаёт в
// последовательный порт (9600 бод, 7E1) 17-байтные ASCII телеграммы так,
// чтобы конец кадра ложился на границу секунды. Опциональный опорный
// источник (NMEA, UBX NAV-PVT или NTP) подтверждает достоверность часов
// хоста и управляет символом мониторинга телеграммы.
//
// Использование:
//
//	if482-gen -configure                  — настроить time pulse приёмника и выйти
//	if482-gen -run -config if482-gen.yml  — запуск daemon
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/shiwa/timecard-mini/if482-gen/internal/config"
	"github.com/shiwa/timecard-mini/if482-gen/internal/logger"
	"github.com/shiwa/timecard-mini/if482-gen/internal/ubx"
	"github.com/shiwa/timecard-mini/if482-gen/pkg/if482gen"
)

func main() {
	configure := flag.Bool("configure", false, "настроить time pulse на UBX устройстве и выйти")
	run := flag.Bool("run", false, "запуск daemon: выдача телеграмм IF482 по тактовому импульсу")
	configPath := flag.String("config", "", "путь к YAML конфигу (по умолчанию if482-gen.yml)")
	port := flag.String("port", "", "порт выдачи телеграмм (переопределяет config)")
	baud := flag.Int("baud", 0, "скорость порта выдачи (переопределяет config)")
	offsetMs := flag.Int("offset-ms", 0, "упреждение передачи в мс (переопределяет config)")
	quiet := flag.Bool("quiet", false, "меньше вывода")
	verbose := flag.Bool("verbose", false, "дамп каждой телеграммы")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil && *configPath != "" {
		log.Fatalf("config: %v", err)
	}
	if cfg == nil {
		cfg = config.Default()
	}

	if *port != "" {
		cfg.Serial.Port = *port
	}
	if *baud != 0 {
		cfg.Serial.Baud = *baud
	}
	if *offsetMs != 0 {
		cfg.Telegram.OffsetMs = *offsetMs
	}
	logger.Verbose = *verbose

	if *configure {
		runConfigure(cfg, *quiet)
		return
	}

	if *run {
		logger.Quiet = *quiet
		runDaemonWithShutdown(cfg, *quiet)
		return
	}

	// По умолчанию: только configure
	runConfigure(cfg, *quiet)
	if !*quiet {
		fmt.Println("if482-gen: для выдачи телеграмм используйте -run.")
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		path = "if482-gen.yml"
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, nil
	}
	return config.Load(path)
}

// runConfigure программирует time pulse приёмника под период импульса
// планировщика: приёмник выдаёт ровно тот импульс, на который рассчитан
// генератор.
func runConfigure(cfg *config.Config, quiet bool) {
	port, err := ubx.Open(cfg.Timepulse.Device, cfg.Timepulse.Baud)
	if err != nil {
		log.Fatalf("открытие порта %s: %v", cfg.Timepulse.Device, err)
	}
	defer port.Close()

	tp := ubx.TimePulse{
		TPIdx:           cfg.Timepulse.TPIdx,
		PeriodMs:        cfg.Pulse.PeriodMs,
		PulseWidthMs:    cfg.Timepulse.PulseWidthMs,
		AntCableDelayNs: cfg.Timepulse.AntCableDelayNs,
		AlignToTow:      cfg.Timepulse.AlignToTow,
	}

	if err := port.ConfigureTimePulse(tp); err != nil {
		log.Fatalf("настройка time pulse: %v", err)
	}
	if !quiet {
		fmt.Printf("Time pulse настроен: %s, %d baud, период %d мс, импульс %.2f мс\n",
			cfg.Timepulse.Device, cfg.Timepulse.Baud, cfg.Pulse.PeriodMs, cfg.Timepulse.PulseWidthMs)
	}
}

// runDaemonWithShutdown запускает генератор через if482gen.RunDaemon с
// контекстом; по SIGINT/SIGTERM контекст отменяется, источники корректно
// останавливаются.
func runDaemonWithShutdown(cfg *config.Config, quiet bool) {
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info("получен сигнал %v, завершение...", sig)
		cancel()
	}()

	if err := if482gen.RunDaemon(ctx, cfg, quiet); err != nil && err != context.Canceled {
		logger.Error("%v", err)
	}
}
