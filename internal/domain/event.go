package domain

type EventKind byte

const (
	EventInitialState = EventKind(iota)
	EventUpdate
	EventReset
	EventOther
	EventInvalid
	EventConnected
	EventDisconnected
)

var eventKindNames = map[EventKind]string{
	EventInitialState: "initial_state",
	EventUpdate:       "update",
	EventReset:        "reset",
	EventOther:        "other",
	EventInvalid:      "invalid",
	EventConnected:    "connected",
	EventDisconnected: "disconnected",
}

func (k EventKind) String() string {
	return eventKindNames[k]
}

type Event struct {
	Kind   EventKind
	Type   string
	Chess  Chess
	Change *Change
	Err    error
}
