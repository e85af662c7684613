package user

import "sync"

// subscriber channel buffer; events beyond it are dropped for that
// subscriber rather than blocking the mutating call.
const feedBuffer = 16

// feed is an in-process, typed publish/subscribe channel scoped to a user
// store. It replaces the original generic "storage changed" signal so
// unrelated writes cannot spuriously trigger reloads.
type feed struct {
	mu   sync.Mutex
	subs map[int]chan Event
	next int
}

func newFeed() *feed {
	return &feed{subs: make(map[int]chan Event)}
}

func (f *feed) subscribe() (<-chan Event, func()) {
	f.mu.Lock()
	defer f.mu.Unlock()

	id := f.next
	f.next++
	ch := make(chan Event, feedBuffer)
	f.subs[id] = ch

	cancel := func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		if ch, ok := f.subs[id]; ok {
			delete(f.subs, id)
			close(ch)
		}
	}
	return ch, cancel
}

func (f *feed) publish(ev Event) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, ch := range f.subs {
		select {
		case ch <- ev:
		default:
			// best-effort fan-out: drop rather than block the mutator
		}
	}
}
