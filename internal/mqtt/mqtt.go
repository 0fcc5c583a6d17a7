package mqtt

import (
	"encoding/json"
	"fmt"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/rs/zerolog/log"
)

const (
	TopicCourseCreated = "courses/created"
	TopicCourseDeleted = "courses/deleted"

	publishTimeout    = 5 * time.Second
	disconnectQuiesce = 250
)

// CourseEvent is the payload published for course lifecycle changes.
type CourseEvent struct {
	Type      string `json:"type"`
	CourseID  int    `json:"courseId"`
	UserID    int    `json:"userId"`
	Timestamp int64  `json:"timestamp"`
}

// Publisher sends course events to subscribers.
type Publisher interface {
	Publish(topic string, event CourseEvent) error
}

// Client publishes events to an MQTT broker.
type Client struct {
	client paho.Client
}

var _ Publisher = (*Client)(nil)

// MQTT connection handler
var connectHandler paho.OnConnectHandler = func(client paho.Client) {
	log.Info().Msg("Connected to MQTT broker")
}

// MQTT connection lost handler
var connectLostHandler paho.ConnectionLostHandler = func(client paho.Client, err error) {
	log.Warn().Err(err).Msg("MQTT connection lost")
}

// Connect dials brokerURL (e.g. tcp://localhost:1883) and returns a ready Client.
func Connect(brokerURL, clientID string) (*Client, error) {
	opts := paho.NewClientOptions()
	opts.AddBroker(brokerURL)
	opts.SetClientID(clientID)
	opts.SetAutoReconnect(true)
	opts.OnConnect = connectHandler
	opts.OnConnectionLost = connectLostHandler

	client := paho.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("failed to connect to MQTT broker: %w", token.Error())
	}

	log.Info().Str("broker", brokerURL).Msg("MQTT client initialized successfully")
	return &Client{client: client}, nil
}

func (c *Client) Publish(topic string, event CourseEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode %s event: %w", event.Type, err)
	}

	token := c.client.Publish(topic, 1, false, payload)
	if !token.WaitTimeout(publishTimeout) {
		return fmt.Errorf("timed out publishing to %s", topic)
	}
	if token.Error() != nil {
		return fmt.Errorf("failed to publish to %s: %w", topic, token.Error())
	}
	return nil
}

func (c *Client) Close() {
	c.client.Disconnect(disconnectQuiesce)
	log.Info().Msg("MQTT client disconnected")
}

// Noop drops every event.
type Noop struct{}

var _ Publisher = Noop{}

func (Noop) Publish(string, CourseEvent) error { return nil }

// NewCourseEvent stamps an event of the given type with the current time.
func NewCourseEvent(typ string, courseID, userID int) CourseEvent {
	return CourseEvent{
		Type:      typ,
		CourseID:  courseID,
		UserID:    userID,
		Timestamp: time.Now().Unix(),
	}
}
