package types

// ------------------------
// System configuration (embedded per device, YAML)
// ------------------------

// Task names as they appear under "tasks:".
const (
	TaskButton1     = "button1"
	TaskButton2     = "button2"
	TaskTransmitter = "transmitter"
	TaskReceiver    = "receiver"
	TaskLoad1       = "load1"
	TaskLoad2       = "load2"
)

type SystemConfig struct {
	Device           string       `yaml:"device"`
	TickHz           uint32       `yaml:"tick_hz"`
	QueueCapacity    int          `yaml:"queue_capacity"`
	SendTimeoutTicks uint32       `yaml:"send_timeout_ticks"`
	TickHook         bool         `yaml:"tick_hook"`
	LogLevel         string       `yaml:"log_level,omitempty"`
	Serial           SerialConfig `yaml:"serial"`
	Report           ReportConfig `yaml:"report"`
	// Pins maps pin names (see hal.PinID) to board GPIO numbers.
	Pins  map[string]int        `yaml:"pins"`
	Tasks map[string]TaskConfig `yaml:"tasks"`
}

type TaskConfig struct {
	Period     uint32 `yaml:"period"`               // ticks, >0
	Iterations int    `yaml:"iterations,omitempty"` // load tasks only
	BusyTicks  uint32 `yaml:"busy_ticks,omitempty"` // load tasks: spin for ticks instead of iterations
}

type ReportConfig struct {
	IntervalTicks uint32 `yaml:"interval_ticks"` // 0 disables
}

// Task returns the named task entry, zero if absent.
func (c SystemConfig) Task(name string) TaskConfig {
	return c.Tasks[name]
}
