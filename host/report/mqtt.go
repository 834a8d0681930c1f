package report

import (
	"errors"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

var errTimeout = errors.New("mqtt: timed out")

// MQTT publishes readings as JSON messages.
type MQTT struct {
	client  mqtt.Client
	topic   string
	timeout time.Duration
}

// DialMQTT connects to broker (e.g. "tcp://localhost:1883") and returns a reporter publishing to topic.
func DialMQTT(broker, clientID, topic string, timeout time.Duration) (*MQTT, error) {
	opts := mqtt.NewClientOptions().
		AddBroker(broker).
		SetClientID(clientID).
		SetConnectTimeout(timeout).
		SetAutoReconnect(true)
	client := mqtt.NewClient(opts)
	if err := wait(client.Connect(), timeout); err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", broker, err)
	}
	return &MQTT{client: client, topic: topic, timeout: timeout}, nil
}

func (m *MQTT) Report(r Reading) error {
	p, err := Payload(r)
	if err != nil {
		return err
	}
	return wait(m.client.Publish(m.topic, 1, false, p), m.timeout)
}

func (m *MQTT) Close() {
	m.client.Disconnect(250)
}

func wait(t mqtt.Token, timeout time.Duration) error {
	if !t.WaitTimeout(timeout) {
		return errTimeout
	}
	return t.Error()
}
