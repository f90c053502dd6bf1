package input

import "strconv"

type EventType uint8

const (
	Pressed EventType = iota
	Released
	Axis
)

func (t EventType) String() string {
	switch t {
	case Pressed:
		return "pressed"
	case Released:
		return "released"
	case Axis:
		return "axis"
	}
	return "EventType(" + strconv.Itoa(int(t)) + ")"
}

// Event is delivered to handlers synchronously from Mapper.Tick. Value is
// only meaningful for Axis events.
type Event struct {
	Type  EventType
	Name  string
	Value float32
}
