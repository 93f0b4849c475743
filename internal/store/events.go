package store

// ChangeOp classifies what happened to an entity.
type ChangeOp string

// Change operations.
const (
	OpCreated ChangeOp = "created"
	OpUpdated ChangeOp = "updated"
	OpDeleted ChangeOp = "deleted"
	OpReset   ChangeOp = "reset"
)

// Change describes a mutation so the presentation layer can re-render the
// affected views. The store never calls into rendering directly; it emits
// these descriptors to subscribers instead.
type Change struct {
	Op     ChangeOp `json:"op"`
	Entity string   `json:"entity"`
	ID     string   `json:"id,omitempty"`
}

const subscriberBuffer = 16

// Subscribe registers a change listener. The returned channel is buffered;
// a subscriber that falls behind misses changes rather than blocking
// mutations.
func (s *Store) Subscribe() (int, <-chan Change) {
	s.subsMu.Lock()
	defer s.subsMu.Unlock()

	s.nextID++
	id := s.nextID
	ch := make(chan Change, subscriberBuffer)
	s.subs[id] = ch
	return id, ch
}

// Unsubscribe removes a listener and closes its channel.
func (s *Store) Unsubscribe(id int) {
	s.subsMu.Lock()
	defer s.subsMu.Unlock()

	if ch, ok := s.subs[id]; ok {
		delete(s.subs, id)
		close(ch)
	}
}

func (s *Store) emit(change Change) {
	s.subsMu.Lock()
	defer s.subsMu.Unlock()

	for _, ch := range s.subs {
		select {
		case ch <- change:
		default:
		}
	}
}
