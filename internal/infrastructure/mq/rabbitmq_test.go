package mq

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"user-profile-api/config"
	"user-profile-api/internal/interface/api/rest/dto/user"
)

func TestNewEvent(t *testing.T) {
	id := uuid.New()
	e := NewEvent(http.MethodPatch, user.User{ID: id, Email: "a@b.c"})

	assert.NotEqual(t, uuid.Nil, e.Id)
	assert.Equal(t, http.MethodPatch, e.Method)
	assert.Equal(t, id.String(), e.UserID)
	assert.WithinDuration(t, time.Now(), e.TS, time.Minute)
}

func TestToPublishing(t *testing.T) {
	e := NewEvent(http.MethodPost, user.User{ID: uuid.New(), Email: "a@b.c"})

	pub, err := toPublishing(e)
	require.NoError(t, err)

	assert.Equal(t, "application/json", pub.ContentType)
	assert.Equal(t, amqp091.Persistent, pub.DeliveryMode)
	assert.Equal(t, e.Id.String(), pub.MessageId)
	assert.Equal(t, http.MethodPost, pub.Type)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(pub.Body, &decoded))
	assert.Equal(t, "POST", decoded["event_action"])
	assert.Equal(t, e.UserID, decoded["user_id"])
}

func TestPublish_EnqueuesEvent(t *testing.T) {
	r := New(config.MQ{}, zap.NewNop())
	e := NewEvent(http.MethodDelete, user.User{ID: uuid.New()})

	r.Publish(context.Background(), e)

	select {
	case got := <-r.GetInputChan():
		assert.Equal(t, e, got)
	default:
		t.Fatal("event was not enqueued")
	}
}

func TestPublish_DropsWhenContextDone(t *testing.T) {
	r := &RabbitMQ{log: zap.NewNop(), in: make(chan Event)}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	done := make(chan struct{})
	go func() {
		r.Publish(ctx, NewEvent(http.MethodPut, user.User{ID: uuid.New()}))
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Publish blocked on a cancelled context")
	}
}

func TestConnect_InvalidDSN(t *testing.T) {
	r := New(config.MQ{}, zap.NewNop())

	err := r.Connect(context.Background(), "amqp://bad:://dsn")
	require.Error(t, err)
	assert.Nil(t, r.GetConn())
}
