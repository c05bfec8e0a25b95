package registry

import (
	"log"

	"github.com/example/task-tracker-demo/domain/task"
)

// Observer receives the full task snapshot after every mutation and
// after load. The snapshot is a copy; observers own what they get and
// cannot reach back into registry state through it.
type Observer interface {
	Receive(tasks []task.Task)
}

// AddObserver registers an observer. Observers are notified in
// registration order.
func (r *Registry) AddObserver(o Observer) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.observers = append(r.observers, o)
}

// RemoveObserver unregisters a previously added observer. Unknown
// observers are ignored.
func (r *Registry) RemoveObserver(o Observer) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, existing := range r.observers {
		if existing == o {
			r.observers = append(r.observers[:i], r.observers[i+1:]...)
			return
		}
	}
}

// notify delivers the snapshot to every observer synchronously, in
// registration order. A panicking observer is contained so delivery
// continues to the rest.
func (r *Registry) notify(snapshot []task.Task) {
	r.mu.RLock()
	observers := make([]Observer, len(r.observers))
	copy(observers, r.observers)
	r.mu.RUnlock()

	for _, o := range observers {
		func() {
			defer func() {
				if rec := recover(); rec != nil {
					log.Printf("[registry] Observer panic: %v", rec)
				}
			}()
			o.Receive(snapshot)
		}()
	}
}
