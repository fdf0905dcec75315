//go:build !rp2040 && !rp2350

// Command tasktrace-sim runs the periodic task set on the host, either
// against a scripted stimulus on a manual clock or interactively in real
// time. Console output goes to stdout; logs and the trace summary go to
// stderr.
package main

import (
	"context"
	"flag"
	"io"
	"os"
	"time"

	"tasktrace-go/errcode"
	"tasktrace-go/hal"
	"tasktrace-go/services/config"
	"tasktrace-go/services/tracereport"
	"tasktrace-go/system"
	"tasktrace-go/types"
	"tasktrace-go/x/conv"
	"tasktrace-go/x/logx"
	"tasktrace-go/x/tick"
	"tasktrace-go/x/timex"
)

func main() {
	var (
		cfgPath     = flag.String("config", "", "YAML config file (default: embedded host config)")
		scriptPath  = flag.String("script", "", "YAML stimulus script, run on a manual clock")
		interactive = flag.Bool("i", false, "read press/release/toggle/report/quit commands from stdin")
		runFor      = flag.Duration("for", 0, "how long to run when the script or console gives no end")
		level       = flag.String("log", "", "log level override")
	)
	flag.Parse()

	cfg, err := loadConfig(*cfgPath)
	if err != nil {
		fail(err)
	}
	config.ApplyLogLevel(cfg)
	if *level != "" {
		logx.SetLevel(logx.ParseLevel(*level))
	}

	switch {
	case *scriptPath != "":
		err = simulate(cfg, *scriptPath, *runFor)
	default:
		err = live(cfg, *interactive, *runFor)
	}
	if err != nil {
		fail(err)
	}
}

func fail(err error) {
	logx.Error("sim", err.Error())
	os.Exit(exitCode(err))
}

// exitCode is 2 for bad input (config, script, pin names) and 1 otherwise.
func exitCode(err error) int {
	switch errcode.Of(err) {
	case errcode.OK:
		return 0
	case errcode.InvalidConfig, errcode.UnknownDevice, errcode.UnknownPin:
		return 2
	default:
		return 1
	}
}

func loadConfig(path string) (types.SystemConfig, error) {
	if path == "" {
		return config.Load(hal.Device)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return types.SystemConfig{}, err
	}
	cfg, err := config.Parse(raw)
	if err != nil {
		return types.SystemConfig{}, err
	}
	if cfg.Device == "" {
		cfg.Device = hal.Device
	}
	return cfg, nil
}

type bench struct {
	io   *hal.HostGPIO
	uart *hal.HostUART
	an   *hal.Analyzer
	sys  *system.System
}

// newBench wires a host board whose console UART transmits to out.
func newBench(cfg types.SystemConfig, clk tick.Clock, out io.Writer) (*bench, error) {
	board, err := hal.BoardFromNames(cfg.Pins)
	if err != nil {
		return nil, err
	}
	b := &bench{uart: hal.NewHostUART(out), an: hal.NewAnalyzer(4096)}
	if b.io, err = hal.NewHostGPIO(board, clk, b.an); err != nil {
		return nil, err
	}
	b.sys, err = system.New(cfg, system.Deps{
		Clock:  clk,
		GPIO:   b.io,
		Serial: hal.NewUARTSerial(b.uart),
		Trace:  b.an,
	})
	return b, err
}

func (b *bench) summary() {
	tracereport.New(b.an, nil, 0).Report()
}

func simulate(cfg types.SystemConfig, path string, runFor time.Duration) error {
	sc, err := loadScript(path)
	if err != nil {
		return err
	}
	b, err := play(cfg, sc, runFor, os.Stdout)
	if err != nil {
		return err
	}
	b.summary()
	return nil
}

// play runs sc to completion on a manual clock and returns the stopped
// bench for inspection.
func play(cfg types.SystemConfig, sc Script, runFor time.Duration, out io.Writer) (*bench, error) {
	steps, err := sc.compile()
	if err != nil {
		return nil, err
	}
	ticks := sc.Duration
	if ticks == 0 {
		ticks = timex.TicksIn(runFor, config.TickPeriod(cfg))
	}

	clk := tick.NewManual(0)
	b, err := newBench(cfg, clk, out)
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := b.sys.Start(ctx); err != nil {
		return nil, err
	}
	err = runScript(b.sys, clk, b.io, steps, ticks)
	cancel()
	b.sys.Wait()
	if err != nil {
		return nil, err
	}
	logx.Info("sim", "stopped at tick", formatTick(clk.Now()))
	return b, nil
}

func live(cfg types.SystemConfig, interactive bool, runFor time.Duration) error {
	clk := tick.NewWall(config.TickPeriod(cfg))
	b, err := newBench(cfg, clk, os.Stdout)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if runFor > 0 {
		ctx, cancel = context.WithTimeout(ctx, runFor)
		defer cancel()
	}
	if err := b.sys.Start(ctx); err != nil {
		return err
	}
	if interactive {
		// Commands arrive on the console UART's RX line.
		eof := make(chan struct{})
		go feed(b.uart, os.Stdin, eof)
		go func() {
			c := &console{io: b.io, report: b.summary, errOut: os.Stderr}
			c.run(rxReader{u: b.uart, done: eof})
			cancel()
		}()
	}
	b.sys.Wait()
	b.summary()
	return nil
}

func formatTick(t tick.Tick) string {
	return string(conv.AppendUint(nil, uint64(t)))
}
