package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// InquiryEvent is published whenever a visitor submits an inquiry.
type InquiryEvent struct {
	ID        string    `json:"id"`
	Source    string    `json:"source"` // "contact", "rental" or "booking"
	Subject   string    `json:"subject,omitempty"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// InquiryPublisher announces new inquiries to staff.
type InquiryPublisher interface {
	PublishInquiry(ctx context.Context, event InquiryEvent) error
}

// NopPublisher drops every event.
type NopPublisher struct{}

// PublishInquiry does nothing.
func (NopPublisher) PublishInquiry(context.Context, InquiryEvent) error { return nil }

// MQTTPublisher publishes inquiry events to an MQTT topic.
type MQTTPublisher struct {
	client  mqtt.Client
	topic   string
	timeout time.Duration
}

// NewMQTTPublisher connects to broker and returns a publisher for topic.
func NewMQTTPublisher(broker, topic string) (*MQTTPublisher, error) {
	if broker == "" {
		return nil, errors.New("mqtt broker is required")
	}
	opts := mqtt.NewClientOptions().
		AddBroker(broker).
		SetClientID("travel-agency-" + uuid.NewString()).
		SetAutoReconnect(true).
		SetConnectTimeout(10 * time.Second)
	client := mqtt.NewClient(opts)

	token := client.Connect()
	if !token.WaitTimeout(10 * time.Second) {
		return nil, fmt.Errorf("mqtt connect to %s timed out", broker)
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("mqtt connect: %w", err)
	}
	return NewMQTTPublisherWithClient(client, topic), nil
}

// NewMQTTPublisherWithClient wraps an existing client.
func NewMQTTPublisherWithClient(client mqtt.Client, topic string) *MQTTPublisher {
	return &MQTTPublisher{client: client, topic: topic, timeout: 5 * time.Second}
}

// PublishInquiry sends event as JSON with QoS 1.
func (p *MQTTPublisher) PublishInquiry(ctx context.Context, event InquiryEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal inquiry event: %w", err)
	}
	token := p.client.Publish(p.topic, 1, false, payload)

	timeout := p.timeout
	if deadline, ok := ctx.Deadline(); ok {
		if d := time.Until(deadline); d < timeout {
			timeout = d
		}
	}
	if !token.WaitTimeout(timeout) {
		return fmt.Errorf("mqtt publish to %s timed out", p.topic)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("mqtt publish: %w", err)
	}
	log.WithFields(log.Fields{"topic": p.topic, "inquiry_id": event.ID, "source": event.Source}).Debug("Published inquiry event")
	return nil
}

// Close disconnects from the broker.
func (p *MQTTPublisher) Close() {
	p.client.Disconnect(250)
}
