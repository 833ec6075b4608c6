package events

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Type là tên event trên topic activity
type Type string

const (
	PostCreated    Type = "post.created"
	FollowCreated  Type = "follow.created"
	FollowDeleted  Type = "follow.deleted"
	AccountDeleted Type = "account.deleted"
)

// Event mô tả một thay đổi đã commit. ActorID là account thực hiện,
// SubjectID là entity bị tác động (post id, account được follow...).
type Event struct {
	ID         uuid.UUID   `json:"id"`
	Type       Type        `json:"type"`
	ActorID    uuid.UUID   `json:"actor_id"`
	SubjectID  uuid.UUID   `json:"subject_id"`
	OccurredAt time.Time   `json:"occurred_at"`
	Payload    interface{} `json:"payload,omitempty"`
}

func New(t Type, actor, subject uuid.UUID, payload interface{}) Event {
	return Event{
		ID:         uuid.New(),
		Type:       t,
		ActorID:    actor,
		SubjectID:  subject,
		OccurredAt: time.Now().UTC(),
		Payload:    payload,
	}
}

// Publisher gửi event ra message broker
type Publisher interface {
	Publish(ctx context.Context, e Event) error
	Close() error
}

// Emit publish event và chỉ log khi lỗi: write đã commit thì request vẫn thành công
func Emit(ctx context.Context, p Publisher, e Event) {
	if p == nil {
		return
	}
	if err := p.Publish(ctx, e); err != nil {
		log.Warn().
			Err(err).
			Str("event_type", string(e.Type)).
			Str("event_id", e.ID.String()).
			Msg("[EVENTS] Publish failed")
	}
}

// Noop bỏ qua mọi event, dùng khi KAFKA_BROKERS rỗng
type Noop struct{}

func (Noop) Publish(ctx context.Context, e Event) error { return nil }
func (Noop) Close() error                                { return nil }

// Recorder giữ lại các event đã publish, dùng trong tests
type Recorder struct {
	mu     sync.Mutex
	events []Event
	Err    error
}

func (r *Recorder) Publish(ctx context.Context, e Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	r.events = append(r.events, e)
	return nil
}

func (r *Recorder) Close() error { return nil }

func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}

// Types trả về danh sách type theo thứ tự publish
func (r *Recorder) Types() []Type {
	var out []Type
	for _, e := range r.Events() {
		out = append(out, e.Type)
	}
	return out
}
