package main

import (
	"context"
	"time"

	"tasktrace-go/hal"
	"tasktrace-go/services/config"
	"tasktrace-go/system"
	"tasktrace-go/x/logx"
	"tasktrace-go/x/tick"
)

func main() {
	time.Sleep(hal.BootDelay)
	logx.Info("boot", hal.Device)

	cfg, err := config.Load(hal.Device)
	if err != nil {
		logx.Error("boot", err.Error())
		return
	}
	config.ApplyLogLevel(cfg)

	clk := tick.NewWall(config.TickPeriod(cfg))
	plat, err := hal.NewPlatform(cfg, clk)
	if err != nil {
		logx.Error("boot", err.Error())
		return
	}
	deps := system.Deps{
		Clock:  clk,
		GPIO:   plat.GPIO,
		Serial: hal.NewUARTSerial(plat.UART),
	}
	if plat.Analyzer != nil {
		deps.Trace = plat.Analyzer
	}
	sys, err := system.New(cfg, deps)
	if err != nil {
		logx.Error("boot", err.Error())
		return
	}
	if err := sys.Start(context.Background()); err != nil {
		logx.Error("boot", err.Error())
		return
	}
	sys.Wait()
}
