package domain

// EventKind defines the category of a pipeline event.
type EventKind string

const (
	EventPathStart        EventKind = "path_start"
	EventPointVisit       EventKind = "point_visit"
	EventPauseRequested   EventKind = "pause_requested"
	EventPathEnd          EventKind = "path_end"
	EventSequenceComplete EventKind = "sequence_complete"
)

// Event is one step of a pipeline pass. Only the fields relevant to the
// kind are populated: PathID for path boundaries, Point for visits,
// Message for pause requests. Events are ephemeral; they are recorded
// once per run and discarded afterwards.
type Event struct {
	Kind    EventKind `json:"kind"`
	PathID  string    `json:"path_id,omitempty"`
	Point   WeldPoint `json:"point,omitempty"`
	Message string    `json:"message,omitempty"`
}

// PathStart constructs a path boundary start event.
func PathStart(pathID string) Event {
	return Event{Kind: EventPathStart, PathID: pathID}
}

// PathEnd constructs a path boundary end event.
func PathEnd(pathID string) Event {
	return Event{Kind: EventPathEnd, PathID: pathID}
}

// PointVisit constructs a visit event for one weld point.
func PointVisit(p WeldPoint) Event {
	return Event{Kind: EventPointVisit, PathID: p.PathID, Point: p}
}

// PauseRequested constructs an operator pause event.
func PauseRequested(pathID, message string) Event {
	return Event{Kind: EventPauseRequested, PathID: pathID, Message: message}
}

// SequenceComplete constructs the terminal event of a pass.
func SequenceComplete() Event {
	return Event{Kind: EventSequenceComplete}
}
