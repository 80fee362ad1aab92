package notify

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	model "sitebid.com/sitebid/internal/models"
	repository "sitebid.com/sitebid/internal/repositories"
)

// Event is one lifecycle fact addressed to one user.
type Event struct {
	UserID    string
	EventType string
	Payload   map[string]any
}

// Dispatcher delivers events off the request path. Enqueue never blocks and
// delivery failures are logged, never surfaced to the lifecycle operation
// that produced the event.
type Dispatcher struct {
	queue     chan Event
	wg        sync.WaitGroup
	purgeWG   sync.WaitGroup
	purgeStop chan struct{}
	repo      *repository.NotificationRepository
	ttl       time.Duration
	now       func() time.Time
}

func NewDispatcher(repo *repository.NotificationRepository, workers, queueSize int, ttl time.Duration) *Dispatcher {
	d := &Dispatcher{
		queue:     make(chan Event, queueSize),
		purgeStop: make(chan struct{}),
		repo:      repo,
		ttl:       ttl,
		now:       time.Now,
	}

	d.purgeWG.Add(1)
	go d.purgeExpiredLoop()

	for i := 1; i <= workers; i++ {
		d.wg.Add(1)
		go d.worker(i)
	}

	return d
}

// Notify queues an event for delivery. A full queue drops the event; the
// aggregates remain the system of record, so a lost notification is only an
// inconvenience.
func (d *Dispatcher) Notify(userID, eventType string, payload map[string]any) {
	ev := Event{UserID: userID, EventType: eventType, Payload: payload}

	select {
	case d.queue <- ev:
	default:
		log.Printf("notify: queue full, dropping %s for user %s", eventType, userID)
	}
}

func (d *Dispatcher) worker(workerID int) {
	defer d.wg.Done()

	for ev := range d.queue {
		d.deliver(workerID, ev)
	}
}

func (d *Dispatcher) deliver(workerID int, ev Event) {
	now := d.now().UTC()
	n := &model.Notification{
		ID:        uuid.NewString(),
		UserID:    ev.UserID,
		EventType: ev.EventType,
		Payload:   ev.Payload,
		CreatedAt: now,
		ExpiresAt: now.Add(d.ttl),
	}

	if err := d.repo.Create(context.Background(), n); err != nil {
		log.Printf("notify: worker %d failed to deliver %s for user %s: %v",
			workerID, ev.EventType, ev.UserID, err)
	}
}

func (d *Dispatcher) purgeExpiredLoop() {
	defer d.purgeWG.Done()

	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := d.repo.PurgeExpired(context.Background(), d.now().UTC()); err != nil {
				log.Printf("notify: failed to purge expired notifications: %v", err)
			}
		case <-d.purgeStop:
			return
		}
	}
}

// Shutdown drains the queue and waits for in-flight deliveries.
func (d *Dispatcher) Shutdown(ctx context.Context) {
	close(d.purgeStop)
	d.purgeWG.Wait()
	close(d.queue)

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		log.Println("notify: shutdown timed out with deliveries in flight")
	}
}
