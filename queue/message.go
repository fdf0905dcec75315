package queue

// PayloadSize is the fixed payload buffer, NUL terminator included.
const PayloadSize = 20

// Tags identify the producer of a message.
const (
	TagButton1  byte = '1'
	TagButton2  byte = '2'
	TagPeriodic byte = '3'
)

// Event texts carried in payloads.
const (
	EventRisingEdge  = "Rising Edge"
	EventFallingEdge = "Falling Edge"
	EventNoChange    = "No Change"
	EventPeriodic    = "Periodic Message"
)

// Message is a tagged, fixed-size text record. It is a value: the queue
// stores copies, so a producer can never mutate a message after sending it.
type Message struct {
	Tag     byte
	Payload [PayloadSize]byte
}

// NewMessage builds a message for tag. Text longer than PayloadSize-1 bytes
// is truncated so the payload always keeps its NUL terminator.
func NewMessage(tag byte, text string) Message {
	m := Message{Tag: tag}
	n := copy(m.Payload[:PayloadSize-1], text)
	m.Payload[n] = 0
	return m
}

// Text returns the payload bytes up to the first NUL.
func (m Message) Text() []byte {
	for i, b := range m.Payload {
		if b == 0 {
			return m.Payload[:i:i]
		}
	}
	return m.Payload[:]
}
