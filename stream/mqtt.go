package stream

import (
	"fmt"
	"time"

	"github.com/eclipse/paho.mqtt.golang"
)

const publishTimeout = time.Second

// MQTTPublisher sends frames as binary over MQTT to an ledrx device.
type MQTTPublisher struct {
	client mqtt.Client
	topic  string
}

// NewMQTTPublisher creates a publisher for topic.
func NewMQTTPublisher(client mqtt.Client, topic string) *MQTTPublisher {
	p := new(MQTTPublisher)
	p.client = client
	p.topic = topic
	return p
}

// Publish sends f with QoS 0. Failed frames are not retried.
func (p *MQTTPublisher) Publish(f *Frame) error {
	b, err := f.MarshalBinary()
	if err != nil {
		return err
	}
	token := p.client.Publish(p.topic, 0, false, b)
	if !token.WaitTimeout(publishTimeout) {
		return fmt.Errorf("publish to %s timed out", p.topic)
	}
	return token.Error()
}
