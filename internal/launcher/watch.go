package launcher

// EventKind distinguishes the states a supervised server moves through.
type EventKind int

const (
	// EventLine is one line of server output.
	EventLine EventKind = iota
	// EventStarted fires once, when the output shows the server is serving.
	EventStarted
	// EventExited fires when the process ends, with a failure classification
	// if it never reached the started state.
	EventExited
)

// Event is one observation from a supervised server.
type Event struct {
	Kind        EventKind
	Line        string
	URL         string
	Class       FailureClass
	Suggestions []string
	Err         error
}

// Watch consumes a handle's output and reports lifecycle events on the
// returned channel, which is closed after the exit event. Classification only
// looks at output captured before the server reported itself up; anything a
// healthy server prints later is request traffic, not a startup failure.
func Watch(handle Handle, url string) <-chan Event {
	events := make(chan Event)
	go func() {
		defer close(events)

		started := false
		var captured []string

		for line := range handle.Lines() {
			if !started && IsStartupSuccess(line) {
				started = true
				events <- Event{Kind: EventStarted, URL: url}
			}
			if !started && IsErrorLine(line) {
				captured = append(captured, line)
			}
			events <- Event{Kind: EventLine, Line: line}
		}

		<-handle.Done()

		exit := Event{Kind: EventExited, Err: handle.Err()}
		if !started {
			exit.Class = Classify(captured)
			if exit.Class == FailureNone && exit.Err != nil {
				// Died before serving without any recognizable error line.
				exit.Class = FailureGeneric
			}
			exit.Suggestions = Suggestions(exit.Class)
		}
		events <- exit
	}()
	return events
}
