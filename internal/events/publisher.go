// Package events publishes car availability transitions so showroom dashboards
// can follow the rental lifecycle live. Publishing is best-effort: failures
// are logged and never fail the request that caused the transition.
package events

import (
	"encoding/json"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	log "github.com/sirupsen/logrus"
)

// AvailabilityEvent describes one car availability transition.
type AvailabilityEvent struct {
	CarID        string    `json:"car_id"`
	Availability string    `json:"availability"`
	BookingID    string    `json:"booking_id,omitempty"`
	Timestamp    time.Time `json:"timestamp"`
}

// Publisher emits availability events.
type Publisher interface {
	PublishAvailability(event AvailabilityEvent)
}

// MQTTPublisher publishes events to an MQTT broker.
type MQTTPublisher struct {
	client mqtt.Client
}

// NewMQTTPublisher connects to the broker and returns a publisher.
func NewMQTTPublisher(brokerURL, clientID string) (*MQTTPublisher, error) {
	opts := mqtt.NewClientOptions().
		AddBroker(brokerURL).
		SetClientID(clientID).
		SetConnectTimeout(10 * time.Second).
		SetAutoReconnect(true)

	client := mqtt.NewClient(opts)
	token := client.Connect()
	if !token.WaitTimeout(10 * time.Second) {
		return nil, fmt.Errorf("mqtt connect timeout: %s", brokerURL)
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("mqtt connect: %w", err)
	}
	return &MQTTPublisher{client: client}, nil
}

// PublishAvailability publishes the event on rentals/cars/<id>/availability.
func (p *MQTTPublisher) PublishAvailability(event AvailabilityEvent) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	payload, err := json.Marshal(event)
	if err != nil {
		log.WithError(err).Error("failed to marshal availability event")
		return
	}

	topic := fmt.Sprintf("rentals/cars/%s/availability", event.CarID)
	token := p.client.Publish(topic, 0, false, payload)
	go func() {
		token.Wait()
		if err := token.Error(); err != nil {
			log.WithFields(log.Fields{"topic": topic}).WithError(err).Error("failed to publish availability event")
		}
	}()
}

// Close disconnects from the broker.
func (p *MQTTPublisher) Close() {
	p.client.Disconnect(250)
}

// NopPublisher drops all events. Used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) PublishAvailability(AvailabilityEvent) {}
