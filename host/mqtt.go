package host

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/scxmlgo/scxml/core"
	"github.com/scxmlgo/scxml/util"
)

// MQTT couples a Fleet to an MQTT broker: each inbound message on
// SubTopics is parsed as a wireEvent and delivered to the chart named
// by the message's topic (or DefaultChartId if TopicIsChartId is
// false); each processed chart's configuration is republished to
// OutTopic.
//
// Grounded on sheens's own cmd/sio MQTT coupling, which subscribes on
// connect and forwards every inbound publish into a channel read by
// a separate dispatch loop. Here each inbound publish is handled
// directly in the subscription callback, and NewMQTTClient builds the
// broker connection with mqtt.NewClientOptions, AutoReconnect and a
// connection-lost handler; it sets no will topic and no default
// publish handler.
type MQTT struct {
	Client mqtt.Client

	Fleet *Fleet

	SubTopics      []string
	TopicIsChartId bool
	DefaultChartId string
	OutTopic       string
	QoS            byte

	Quiesce uint
}

// NewMQTTClient builds an mqtt.Client for broker (e.g.
// "tcp://localhost:1883") with the given client id. AutoReconnect is
// enabled, matching sheens's own coupling.
func NewMQTTClient(broker, clientId string) mqtt.Client {
	opts := mqtt.NewClientOptions()
	opts.AddBroker(broker)
	opts.SetClientID(clientId)
	opts.SetKeepAlive(10 * time.Second)
	opts.AutoReconnect = true
	opts.OnConnectionLost = func(client mqtt.Client, err error) {
		util.Logf("host: mqtt connection lost: %v", err)
	}
	return mqtt.NewClient(opts)
}

// Start connects to the broker and subscribes to m.SubTopics, routing
// every inbound publish through m.handle.
func (m *MQTT) Start(ctx context.Context) error {
	if token := m.Client.Connect(); token.Wait() && token.Error() != nil {
		return token.Error()
	}

	for _, topic := range m.SubTopics {
		topic, qos := parseMQTTTopic(topic)
		if topic == "" {
			continue
		}
		handler := func(client mqtt.Client, msg mqtt.Message) {
			m.handle(ctx, msg)
		}
		if token := m.Client.Subscribe(topic, qos, handler); token.Wait() && token.Error() != nil {
			return token.Error()
		}
	}
	return nil
}

// Stop disconnects from the broker, waiting at most m.Quiesce
// milliseconds for in-flight work to finish.
func (m *MQTT) Stop() {
	m.Client.Disconnect(m.Quiesce)
}

func (m *MQTT) handle(ctx context.Context, msg mqtt.Message) {
	ev, err := parseWireEvent(msg.Payload())
	if err != nil {
		util.Logf("host: mqtt: %v", err)
		return
	}

	chartId := m.DefaultChartId
	if m.TopicIsChartId {
		chartId = msg.Topic()
	}

	chart, have := m.Fleet.Get(chartId)
	if !have {
		util.Logf("host: mqtt: no chart %q for topic %q", chartId, msg.Topic())
		return
	}

	sc := chart.Send(ev, m.Fleet.Executor)
	m.publish(chartId, sc)
}

func (m *MQTT) publish(chartId string, sc *core.StateChart) {
	if m.OutTopic == "" {
		return
	}
	resp := wsResponse{
		ChartId:       chartId,
		Configuration: core.ActiveLeaves(sc),
		Phase:         sc.Phase.String(),
	}
	js, err := json.Marshal(resp)
	if err != nil {
		util.Logf("host: mqtt: marshaling response: %v", err)
		return
	}
	token := m.Client.Publish(m.OutTopic, m.QoS, false, js)
	token.Wait()
	if token.Error() != nil {
		util.Logf("host: mqtt: publish: %v", token.Error())
	}
}

// parseMQTTTopic extracts an optional ":QOS" suffix from a topic
// name, as sheens's own coupling does.
func parseMQTTTopic(s string) (string, byte) {
	var topic string
	var qos byte
	if _, err := fmt.Sscanf(strings.Replace(s, ":", " ", 1), "%s %d", &topic, &qos); err != nil {
		return s, 0
	}
	return topic, qos
}
