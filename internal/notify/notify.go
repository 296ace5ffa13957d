package notify

import (
	"encoding/json"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/Johnnysharkhead/axis-ai-agent-event-analysis-sub000/internal/constants"
)

// Action names the kind of committed change.
type Action string

const (
	ActionAdded      Action = "added"
	ActionSuperseded Action = "superseded"
	ActionRemoved    Action = "removed"
	ActionEnabled    Action = "enabled"
	ActionDisabled   Action = "disabled"
)

// Event is published after a zone's schedule changed in the store. RuleIDs
// lists the rules added or removed by the change; for a supersession the new
// rule comes first, followed by the rules it replaced.
type Event struct {
	Zone    string    `json:"zone"`
	Action  Action    `json:"action"`
	RuleIDs []int64   `json:"ruleIds"`
	At      time.Time `json:"at"`
}

// Publisher delivers schedule change events.
type Publisher interface {
	Publish(e Event) error
	Close()
}

// Nop discards every event. It is used when no broker is configured.
type Nop struct{}

func (Nop) Publish(Event) error { return nil }
func (Nop) Close()              {}

// Topic is the per-zone topic events are published on.
func Topic(prefix, zone string) string {
	if prefix == "" {
		prefix = constants.DefaultTopicPrefix
	}
	return fmt.Sprintf("%s/%s/schedule", prefix, zone)
}

// Options configure an MQTT publisher.
type Options struct {
	Broker      string
	ClientID    string
	Username    string
	Password    string
	TopicPrefix string
	Timeout     time.Duration
}

// client is the subset of mqtt.Client the publisher uses.
type client interface {
	Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token
	Disconnect(quiesce uint)
}

// MQTTPublisher publishes events at QoS 1 so a detection backend reloads
// the zone after reconnecting.
type MQTTPublisher struct {
	client  client
	prefix  string
	timeout time.Duration
}

var connectFunc = func(opts *mqtt.ClientOptions) (client, error) {
	c := mqtt.NewClient(opts)
	token := c.Connect()
	if !token.WaitTimeout(opts.ConnectTimeout) {
		return nil, fmt.Errorf("timed out connecting to MQTT broker")
	}
	if err := token.Error(); err != nil {
		return nil, err
	}
	return c, nil
}

// NewMQTT connects to the broker in opts.
func NewMQTT(opts Options) (*MQTTPublisher, error) {
	if opts.Broker == "" {
		return nil, fmt.Errorf("MQTT broker address is required")
	}
	if opts.ClientID == "" {
		opts.ClientID = constants.AppName
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 5 * time.Second
	}

	clientOpts := mqtt.NewClientOptions()
	clientOpts.AddBroker(opts.Broker)
	clientOpts.SetClientID(opts.ClientID)
	if opts.Username != "" {
		clientOpts.SetUsername(opts.Username)
	}
	if opts.Password != "" {
		clientOpts.SetPassword(opts.Password)
	}
	clientOpts.SetAutoReconnect(true)
	clientOpts.SetCleanSession(true)
	clientOpts.SetConnectTimeout(opts.Timeout)

	c, err := connectFunc(clientOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MQTT broker %s: %w", opts.Broker, err)
	}
	return &MQTTPublisher{client: c, prefix: opts.TopicPrefix, timeout: opts.Timeout}, nil
}

func (p *MQTTPublisher) Publish(e Event) error {
	payload, err := json.Marshal(e)
	if err != nil {
		return err
	}

	topic := Topic(p.prefix, e.Zone)
	token := p.client.Publish(topic, 1, false, payload)
	if !token.WaitTimeout(p.timeout) {
		return fmt.Errorf("timed out publishing to topic %s", topic)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("failed to publish to topic %s: %w", topic, err)
	}
	return nil
}

func (p *MQTTPublisher) Close() {
	p.client.Disconnect(250)
}
