package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockWriter struct {
	messages   []kafka.Message
	shouldFail bool
	closed     bool
	ctxErr     error
}

func (m *mockWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	m.ctxErr = ctx.Err()
	if m.shouldFail {
		return errors.New("mock kafka write failed")
	}
	m.messages = append(m.messages, msgs...)
	return nil
}

func (m *mockWriter) Close() error {
	m.closed = true
	return nil
}

func TestKafkaPublisherWritesKeyedJSON(t *testing.T) {
	w := &mockWriter{}
	p := NewKafkaPublisherWithWriter(w, "activity", time.Second)

	actor, subject := uuid.New(), uuid.New()
	e := New(FollowCreated, actor, subject, map[string]string{"note": "hi"})
	require.NoError(t, p.Publish(context.Background(), e))

	require.Len(t, w.messages, 1)
	msg := w.messages[0]
	assert.Equal(t, actor.String(), string(msg.Key))
	assert.Equal(t, "event_type", msg.Headers[0].Key)
	assert.Equal(t, string(FollowCreated), string(msg.Headers[0].Value))

	var decoded Event
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, e.ID, decoded.ID)
	assert.Equal(t, FollowCreated, decoded.Type)
	assert.Equal(t, subject, decoded.SubjectID)

	require.NoError(t, p.Close())
	assert.True(t, w.closed)
}

func TestKafkaPublisherWrapsWriteError(t *testing.T) {
	p := NewKafkaPublisherWithWriter(&mockWriter{shouldFail: true}, "activity", time.Second)

	err := p.Publish(context.Background(), New(PostCreated, uuid.New(), uuid.New(), nil))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "post.created")
}

func TestEmitSwallowsPublishErrors(t *testing.T) {
	rec := &Recorder{Err: errors.New("broker down")}

	assert.NotPanics(t, func() {
		Emit(context.Background(), rec, New(PostCreated, uuid.New(), uuid.New(), nil))
		Emit(context.Background(), nil, New(PostCreated, uuid.New(), uuid.New(), nil))
	})
	assert.Empty(t, rec.Events())

	rec.Err = nil
	Emit(context.Background(), rec, New(FollowDeleted, uuid.New(), uuid.New(), nil))
	assert.Equal(t, []Type{FollowDeleted}, rec.Types())
}

func TestKafkaPublisherIgnoresRequestCancellation(t *testing.T) {
	w := &mockWriter{}
	p := NewKafkaPublisherWithWriter(w, "activity", time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.NoError(t, p.Publish(ctx, New(PostCreated, uuid.New(), uuid.New(), nil)))
	assert.NoError(t, w.ctxErr)
	assert.Len(t, w.messages, 1)
}

func TestNewKafkaPublisherIsAsync(t *testing.T) {
	p := NewKafkaPublisher(KafkaConfig{Brokers: []string{"localhost:9092"}, Topic: "activity"})
	w, ok := p.writer.(*kafka.Writer)
	require.True(t, ok)
	assert.True(t, w.Async)
	assert.NotNil(t, w.Completion)
	assert.Equal(t, 10*time.Second, w.WriteTimeout)

	assert.NotPanics(t, func() {
		logCompletion([]kafka.Message{{Key: []byte("k")}}, errors.New("broker down"))
		logCompletion(nil, nil)
	})
	require.NoError(t, p.Close())
}
