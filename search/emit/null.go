package emit

// NullEmitter implements Emitter by discarding all events.
//
// Use it where an Emitter is required but output is unwanted, such as a
// MultiEmitter assembled from optional sinks.
type NullEmitter struct{}

// NewNullEmitter creates a new NullEmitter.
func NewNullEmitter() *NullEmitter {
	return &NullEmitter{}
}

// Emit discards the event.
func (n *NullEmitter) Emit(event Event) {}
