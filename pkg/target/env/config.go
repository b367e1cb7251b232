// Package env assembles a target from command line flags and environment.
package env

import (
	"encoding/hex"
	"flag"
	"fmt"
	"os"

	"github.com/denisbrodbeck/machineid"

	"github.com/robotalks/pinata.go/pkg/target/dispatch"
)

// Trigger policies.
const (
	TriggerPerCall    = "call"
	TriggerPerCommand = "command"
	TriggerNone       = "none"
)

// Config provides the options of a target.
type Config struct {
	// Key is the hex encoded AES-128 key provisioned at boot.
	Key        string
	BufferSize int
	// Listen is the TCP link address, empty to disable.
	Listen string
	// WebsocketListen is the websocket link address, empty to disable.
	WebsocketListen string
	// Trigger is one of call, command or none.
	Trigger string
	// MQTTBrokerURL enables telemetry, e.g. mqtt://host:port/topic-prefix/
	MQTTBrokerURL string
	// ID names the target in telemetry topics.
	ID string
}

var defaultConfig = Config{
	Key:        "cafebabedeadbeef0001020304050607",
	BufferSize: dispatch.DefaultBufferSize,
	Listen:     ":9600",
	Trigger:    TriggerPerCall,
}

func init() {
	if val := os.Getenv("PINATA_KEY"); val != "" {
		defaultConfig.Key = val
	}
	if val := os.Getenv("PINATA_LISTEN"); val != "" {
		defaultConfig.Listen = val
	}
	if val := os.Getenv("PINATA_MQTT_URL"); val != "" {
		defaultConfig.MQTTBrokerURL = val
	}
	defaultConfig.ID = MachineID()
}

// MachineID retrieves the ID identifying the machine, or "pinata" when the
// platform doesn't provide one.
func MachineID() string {
	id, err := machineid.ProtectedID("pinata")
	if err != nil {
		return "pinata"
	}
	return id[:12]
}

// SetupFlags sets command line flags.
func SetupFlags() {
	flag.StringVar(&defaultConfig.Key, "key", defaultConfig.Key, "AES-128 key in hex.")
	flag.IntVar(&defaultConfig.BufferSize, "buffer-size", defaultConfig.BufferSize, "Receive buffer size in bytes.")
	flag.StringVar(&defaultConfig.Listen, "listen", defaultConfig.Listen, "TCP link address, empty to disable.")
	flag.StringVar(&defaultConfig.WebsocketListen, "ws-listen", defaultConfig.WebsocketListen, "Websocket link address, empty to disable.")
	flag.StringVar(&defaultConfig.Trigger, "trigger", defaultConfig.Trigger, "Trigger policy: call, command or none.")
	flag.StringVar(&defaultConfig.MQTTBrokerURL, "mqtt", defaultConfig.MQTTBrokerURL, "MQTT broker URL for telemetry, empty to disable.")
	flag.StringVar(&defaultConfig.ID, "id", defaultConfig.ID, "Target ID.")
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

// KeyBytes decodes Key.
func (c *Config) KeyBytes() ([]byte, error) {
	key, err := hex.DecodeString(c.Key)
	if err != nil {
		return nil, fmt.Errorf("invalid key: %v", err)
	}
	return key, nil
}

// Validate checks the options.
func (c *Config) Validate() error {
	if _, err := c.KeyBytes(); err != nil {
		return err
	}
	switch c.Trigger {
	case TriggerPerCall, TriggerPerCommand, TriggerNone:
	default:
		return fmt.Errorf("unknown trigger policy: %q", c.Trigger)
	}
	if c.Listen == "" && c.WebsocketListen == "" {
		return fmt.Errorf("at least one link listener is required")
	}
	return nil
}
