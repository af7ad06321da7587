// Package events publishes record changes to an MQTT broker.
package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// Event names, appended to the topic prefix.
const (
	TripCreated      = "trips/created"
	TripUpdated      = "trips/updated"
	TripDeleted      = "trips/deleted"
	LoadCreated      = "loads/created"
	LoadUpdated      = "loads/updated"
	LoadDeleted      = "loads/deleted"
	ExpensesSaved    = "expenses/saved"
	PaymentUpdated   = "payments/updated"
	PaymentRecorded  = "payments/recorded"
	CourierSaved     = "couriers/saved"
	DocumentExpiring = "trucks/document-expiring"
)

// Publisher sends an event with a JSON-encodable payload.
type Publisher interface {
	Publish(ctx context.Context, event string, data interface{}) error
	Close()
}

// Envelope wraps every payload on the wire.
type Envelope struct {
	ID         string      `json:"id"`
	Event      string      `json:"event"`
	OccurredAt time.Time   `json:"occurred_at"`
	Data       interface{} `json:"data"`
}

// NopPublisher drops every event. It is used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(ctx context.Context, event string, data interface{}) error { return nil }
func (NopPublisher) Close()                                                            {}

// Config holds the broker settings.
type Config struct {
	Broker   string
	ClientID string
	Prefix   string
	Timeout  time.Duration
}

// mqttClient is the part of mqtt.Client the publisher uses.
type mqttClient interface {
	Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token
	Disconnect(quiesce uint)
}

// MQTTPublisher publishes events with QoS 1.
type MQTTPublisher struct {
	client  mqttClient
	prefix  string
	timeout time.Duration
}

// NewMQTTPublisher connects to the broker in cfg.
func NewMQTTPublisher(cfg Config) (*MQTTPublisher, error) {
	if cfg.Broker == "" {
		return nil, errors.New("mqtt broker not configured")
	}
	if cfg.ClientID == "" {
		cfg.ClientID = "tripsheet-" + uuid.NewString()[:8]
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Second
	}

	opts := mqtt.NewClientOptions().
		AddBroker(cfg.Broker).
		SetClientID(cfg.ClientID).
		SetAutoReconnect(true).
		SetConnectTimeout(cfg.Timeout).
		SetConnectionLostHandler(func(_ mqtt.Client, err error) {
			log.WithError(err).Warn("mqtt connection lost")
		})
	client := mqtt.NewClient(opts)
	token := client.Connect()
	if !token.WaitTimeout(cfg.Timeout) {
		return nil, fmt.Errorf("mqtt connect to %s timed out", cfg.Broker)
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("mqtt connect: %w", err)
	}

	log.WithFields(log.Fields{"broker": cfg.Broker, "client_id": cfg.ClientID}).Info("connected to mqtt broker")
	return newMQTTPublisher(client, cfg.Prefix, cfg.Timeout), nil
}

func newMQTTPublisher(client mqttClient, prefix string, timeout time.Duration) *MQTTPublisher {
	return &MQTTPublisher{client: client, prefix: strings.TrimSuffix(prefix, "/"), timeout: timeout}
}

// Topic returns the full topic an event is published on.
func (p *MQTTPublisher) Topic(event string) string {
	if p.prefix == "" {
		return event
	}
	return p.prefix + "/" + event
}

// Publish encodes data in an Envelope and waits for the broker to acknowledge it.
func (p *MQTTPublisher) Publish(ctx context.Context, event string, data interface{}) error {
	payload, err := json.Marshal(Envelope{
		ID:         uuid.NewString(),
		Event:      event,
		OccurredAt: time.Now().UTC(),
		Data:       data,
	})
	if err != nil {
		return fmt.Errorf("encode %s event: %w", event, err)
	}

	token := p.client.Publish(p.Topic(event), 1, false, payload)
	select {
	case <-token.Done():
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(p.timeout):
		return fmt.Errorf("publish %s timed out", event)
	}
	return token.Error()
}

// Close disconnects from the broker.
func (p *MQTTPublisher) Close() {
	p.client.Disconnect(250)
}
