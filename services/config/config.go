// Package config resolves the embedded YAML configuration for a device and
// fills in whatever it leaves out.
package config

import (
	"bytes"
	"errors"
	"io"
	"sort"
	"time"

	"gopkg.in/yaml.v3"

	"tasktrace-go/errcode"
	"tasktrace-go/types"
	"tasktrace-go/x/logx"
	"tasktrace-go/x/mathx"
	"tasktrace-go/x/timex"
)

// Bounds applied by Normalize.
const (
	MaxQueueCapacity = 64
	MaxSendTimeout   = 1000
	MaxTickHz        = 10000
)

// EmbeddedConfigLookup allows overriding how configs are resolved.
var EmbeddedConfigLookup = func(device string) ([]byte, bool) {
	b, ok := embeddedConfigs[device]
	return b, ok
}

// Devices lists the device IDs with an embedded config.
func Devices() []string {
	out := make([]string, 0, len(embeddedConfigs))
	for d := range embeddedConfigs {
		out = append(out, d)
	}
	sort.Strings(out)
	return out
}

var defaultTasks = map[string]types.TaskConfig{
	types.TaskButton1:     {Period: 50},
	types.TaskButton2:     {Period: 50},
	types.TaskTransmitter: {Period: 100},
	types.TaskReceiver:    {Period: 20},
	types.TaskLoad1:       {Period: 10, Iterations: 40000},
	types.TaskLoad2:       {Period: 100, Iterations: 100000},
}

// Default returns the reference timing with no pins assigned.
func Default() types.SystemConfig {
	cfg := types.SystemConfig{
		TickHz:           1000,
		QueueCapacity:    5,
		SendTimeoutTicks: 10,
		TickHook:         true,
		LogLevel:         "info",
		Serial:           types.SerialConfig{Baud: 115200, DataBits: 8, StopBits: 1},
		Tasks:            map[string]types.TaskConfig{},
	}
	for name, tc := range defaultTasks {
		cfg.Tasks[name] = tc
	}
	return cfg
}

// Load parses and normalises the embedded config for device.
func Load(device string) (types.SystemConfig, error) {
	raw, ok := EmbeddedConfigLookup(device)
	if !ok || len(raw) == 0 {
		return types.SystemConfig{}, &errcode.E{C: errcode.UnknownDevice, Op: "config.Load", Msg: device}
	}
	cfg, err := Parse(raw)
	if err != nil {
		return types.SystemConfig{}, err
	}
	if cfg.Device == "" {
		cfg.Device = device
	}
	logx.Info("config", "loaded", cfg.Device)
	return cfg, nil
}

// Parse decodes one YAML document. Unknown keys are rejected.
func Parse(raw []byte) (types.SystemConfig, error) {
	var cfg types.SystemConfig
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return types.SystemConfig{}, errcode.Wrap(errcode.InvalidConfig, "config.Parse", err)
	}
	return Normalize(cfg)
}

// Normalize fills zero fields from Default and clamps the bounded ones.
// A zero send timeout means "use the default", not "never wait".
func Normalize(cfg types.SystemConfig) (types.SystemConfig, error) {
	def := Default()

	cfg.TickHz = mathx.Clamp(mathx.OrDefault(cfg.TickHz, def.TickHz), 1, MaxTickHz)
	cfg.QueueCapacity = mathx.Clamp(mathx.OrDefault(cfg.QueueCapacity, def.QueueCapacity), 1, MaxQueueCapacity)
	cfg.SendTimeoutTicks = mathx.Clamp(mathx.OrDefault(cfg.SendTimeoutTicks, def.SendTimeoutTicks), 1, MaxSendTimeout)
	cfg.LogLevel = mathx.OrDefault(cfg.LogLevel, def.LogLevel)

	cfg.Serial.Baud = mathx.OrDefault(cfg.Serial.Baud, def.Serial.Baud)
	cfg.Serial.DataBits = mathx.OrDefault(cfg.Serial.DataBits, def.Serial.DataBits)
	cfg.Serial.StopBits = mathx.OrDefault(cfg.Serial.StopBits, def.Serial.StopBits)

	tasks := make(map[string]types.TaskConfig, len(defaultTasks))
	for name, tc := range cfg.Tasks {
		if _, known := defaultTasks[name]; !known {
			return types.SystemConfig{}, &errcode.E{C: errcode.InvalidConfig, Op: "config.Normalize", Msg: "unknown task " + name}
		}
		tasks[name] = tc
	}
	for name, d := range defaultTasks {
		tc := tasks[name]
		tc.Period = mathx.OrDefault(tc.Period, d.Period)
		if tc.BusyTicks == 0 {
			tc.Iterations = mathx.OrDefault(tc.Iterations, d.Iterations)
		}
		tasks[name] = tc
	}
	cfg.Tasks = tasks
	return cfg, nil
}

// TickPeriod is the wall-clock length of one tick.
func TickPeriod(cfg types.SystemConfig) time.Duration {
	return timex.PeriodFromHz(cfg.TickHz)
}

// ApplyLogLevel sets the logger level from cfg.
func ApplyLogLevel(cfg types.SystemConfig) {
	logx.SetLevel(logx.ParseLevel(cfg.LogLevel))
}
