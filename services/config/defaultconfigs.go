package config

// Embedded per-device configuration, keyed by the device ID handed to Load.

const cfgPico = `
device: pico
tick_hz: 1000
queue_capacity: 5
send_timeout_ticks: 10
tick_hook: true
log_level: info
serial: {port: uart0, baud: 115200, tx: 0, rx: 1}
report: {interval_ticks: 5000}
pins:
  button1: 2
  button2: 3
  button1_analyzer: 6
  button2_analyzer: 7
  transmit_analyzer: 8
  receiver_analyzer: 9
  load1_analyzer: 10
  load2_analyzer: 11
  tick_hook: 12
  idle_hook: 13
tasks:
  button1:     {period: 50}
  button2:     {period: 50}
  transmitter: {period: 100}
  receiver:    {period: 20}
  load1:       {period: 10, iterations: 40000}
  load2:       {period: 100, iterations: 100000}
`

// The host board keeps the P0.16..P0.25 numbering of the original wiring.
const cfgHost = `
device: host
tick_hz: 1000
queue_capacity: 5
send_timeout_ticks: 10
tick_hook: true
log_level: info
serial: {port: stdout, baud: 115200}
report: {interval_ticks: 1000}
pins:
  button1: 16
  button2: 17
  button1_analyzer: 18
  button2_analyzer: 19
  transmit_analyzer: 20
  receiver_analyzer: 21
  load1_analyzer: 22
  load2_analyzer: 23
  tick_hook: 24
  idle_hook: 25
tasks:
  button1:     {period: 50}
  button2:     {period: 50}
  transmitter: {period: 100}
  receiver:    {period: 20}
  load1:       {period: 10, iterations: 40000}
  load2:       {period: 100, iterations: 100000}
`

var embeddedConfigs = map[string][]byte{
	"pico": []byte(cfgPico),
	"host": []byte(cfgHost),
}
