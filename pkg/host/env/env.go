// Package env provides host side options for reaching a target.
package env

import (
	"flag"
	"os"
	"time"

	"github.com/robotalks/pinata.go/pkg/host/client"
	"github.com/robotalks/pinata.go/pkg/telemetry/mqtt"
)

// Config provides the options of the host tools.
type Config struct {
	// Target is host:port, tcp://host:port or ws://host:port/link.
	Target  string
	Timeout time.Duration
	// MQTTBrokerURL is where targets publish telemetry.
	MQTTBrokerURL string
}

var defaultConfig = Config{
	Target:  "localhost:9600",
	Timeout: client.DefaultTimeout,
}

func init() {
	if val := os.Getenv("PINATA_TARGET"); val != "" {
		defaultConfig.Target = val
	}
	if val := os.Getenv("PINATA_MQTT_URL"); val != "" {
		defaultConfig.MQTTBrokerURL = val
	}
}

// SetupFlags sets command line flags.
func SetupFlags() {
	flag.StringVar(&defaultConfig.Target, "target", defaultConfig.Target, "Target link address.")
	flag.DurationVar(&defaultConfig.Timeout, "timeout", defaultConfig.Timeout, "Per command timeout.")
	flag.StringVar(&defaultConfig.MQTTBrokerURL, "mqtt", defaultConfig.MQTTBrokerURL, "MQTT broker URL for target telemetry.")
}

// Default gets the default config.
func Default() *Config {
	return &defaultConfig
}

// NewConfig creates a Config with default configurations.
func NewConfig() *Config {
	conf := defaultConfig
	return &conf
}

// Dial connects to target, or Target when target is empty.
func (c *Config) Dial(target string) (*client.Client, error) {
	if target == "" {
		target = c.Target
	}
	return client.Dial(target, c.Timeout)
}

// NewQueue creates the telemetry queue, nil when no broker is configured.
func (c *Config) NewQueue() (*mqtt.Queue, error) {
	if c.MQTTBrokerURL == "" {
		return nil, nil
	}
	return mqtt.NewQueueFromURL(c.MQTTBrokerURL)
}
