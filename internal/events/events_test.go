package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeToken struct {
	done chan struct{}
	err  error
}

func newToken(err error, complete bool) *fakeToken {
	t := &fakeToken{done: make(chan struct{}), err: err}
	if complete {
		close(t.done)
	}
	return t
}

func (t *fakeToken) Wait() bool                     { <-t.done; return true }
func (t *fakeToken) WaitTimeout(time.Duration) bool { return true }
func (t *fakeToken) Done() <-chan struct{}          { return t.done }
func (t *fakeToken) Error() error                   { return t.err }

type published struct {
	topic   string
	qos     byte
	payload []byte
}

type fakeClient struct {
	token        *fakeToken
	sent         []published
	disconnected bool
}

func (c *fakeClient) Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token {
	c.sent = append(c.sent, published{topic: topic, qos: qos, payload: payload.([]byte)})
	return c.token
}

func (c *fakeClient) Disconnect(uint) { c.disconnected = true }

func TestMQTTPublisher_Publish(t *testing.T) {
	client := &fakeClient{token: newToken(nil, true)}
	p := newMQTTPublisher(client, "tripsheet/", time.Second)

	err := p.Publish(context.Background(), TripCreated, map[string]string{"id": "trip-1"})
	require.NoError(t, err)
	require.Len(t, client.sent, 1)
	assert.Equal(t, "tripsheet/trips/created", client.sent[0].topic)
	assert.Equal(t, byte(1), client.sent[0].qos)

	var env struct {
		ID    string            `json:"id"`
		Event string            `json:"event"`
		Data  map[string]string `json:"data"`
	}
	require.NoError(t, json.Unmarshal(client.sent[0].payload, &env))
	assert.Equal(t, TripCreated, env.Event)
	assert.NotEmpty(t, env.ID)
	assert.Equal(t, "trip-1", env.Data["id"])

	p.Close()
	assert.True(t, client.disconnected)
}

func TestMQTTPublisher_BrokerError(t *testing.T) {
	client := &fakeClient{token: newToken(errors.New("not authorized"), true)}
	p := newMQTTPublisher(client, "", time.Second)

	err := p.Publish(context.Background(), LoadDeleted, nil)
	assert.EqualError(t, err, "not authorized")
	assert.Equal(t, "loads/deleted", client.sent[0].topic)
}

func TestMQTTPublisher_Timeout(t *testing.T) {
	client := &fakeClient{token: newToken(nil, false)}
	p := newMQTTPublisher(client, "x", 10*time.Millisecond)
	assert.Error(t, p.Publish(context.Background(), TripUpdated, nil))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	p = newMQTTPublisher(client, "x", time.Minute)
	assert.ErrorIs(t, p.Publish(ctx, TripUpdated, nil), context.Canceled)
}

func TestNewMQTTPublisher_NoBroker(t *testing.T) {
	_, err := NewMQTTPublisher(Config{})
	assert.Error(t, err)
}

func TestNopPublisher(t *testing.T) {
	var p Publisher = NopPublisher{}
	assert.NoError(t, p.Publish(context.Background(), TripCreated, nil))
	p.Close()
}
