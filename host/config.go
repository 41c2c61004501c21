package host

import (
	"fmt"
	"io"
	"io/ioutil"

	"gopkg.in/yaml.v2"
)

// Config describes which transports a process should start against a
// Fleet, and where (if anywhere) to keep an audit log. Grounded on the
// flag/option surface of sheens's own cmd/mcrew and cmd/sio mains,
// collected here into one YAML document instead of flags so a Fleet
// deployment can run more than one transport at once.
type Config struct {
	AuditFile string `yaml:"auditFile"`

	Stdio *StdioConfig `yaml:"stdio"`
	WS    *WSConfig    `yaml:"ws"`
	MQTT  *MQTTConfig  `yaml:"mqtt"`
}

type StdioConfig struct {
	Timestamps bool `yaml:"timestamps"`
	EchoInput  bool `yaml:"echoInput"`
}

type WSConfig struct {
	Addr string `yaml:"addr"`
	Path string `yaml:"path"`
}

type MQTTConfig struct {
	Broker         string   `yaml:"broker"`
	ClientId       string   `yaml:"clientId"`
	SubTopics      []string `yaml:"subTopics"`
	TopicIsChartId bool     `yaml:"topicIsChartId"`
	DefaultChartId string   `yaml:"defaultChartId"`
	OutTopic       string   `yaml:"outTopic"`
}

// LoadConfig parses a Config from r.
func LoadConfig(r io.Reader) (*Config, error) {
	bs, err := ioutil.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("host: reading config: %w", err)
	}
	var c Config
	if err := yaml.Unmarshal(bs, &c); err != nil {
		return nil, fmt.Errorf("host: parsing config: %w", err)
	}
	return &c, nil
}
