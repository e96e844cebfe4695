package kafka

import (
	"crypto/tls"
	"fmt"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/segmentio/kafka-go/sasl"
	"github.com/segmentio/kafka-go/sasl/plain"
	"github.com/segmentio/kafka-go/sasl/scram"
)

type KafkaConfig struct {
	Brokers    []string
	Username   string
	Password   string
	Mechanism  string
	TLSEnabled bool
}

func (c KafkaConfig) saslMechanism() (sasl.Mechanism, error) {
	if c.Username == "" {
		return nil, nil
	}
	switch strings.ToUpper(c.Mechanism) {
	case "", "PLAIN":
		return plain.Mechanism{Username: c.Username, Password: c.Password}, nil
	case "SCRAM-SHA-256":
		return scram.Mechanism(scram.SHA256, c.Username, c.Password)
	case "SCRAM-SHA-512":
		return scram.Mechanism(scram.SHA512, c.Username, c.Password)
	}
	return nil, fmt.Errorf("unsupported sasl mechanism %q", c.Mechanism)
}

func (c KafkaConfig) tlsConfig() *tls.Config {
	if !c.TLSEnabled {
		return nil
	}
	return &tls.Config{MinVersion: tls.VersionTLS12}
}

func (c KafkaConfig) transport() (*kafka.Transport, error) {
	mechanism, err := c.saslMechanism()
	if err != nil {
		return nil, err
	}
	return &kafka.Transport{SASL: mechanism, TLS: c.tlsConfig()}, nil
}

func (c KafkaConfig) dialer() (*kafka.Dialer, error) {
	mechanism, err := c.saslMechanism()
	if err != nil {
		return nil, err
	}
	return &kafka.Dialer{
		Timeout:       10 * time.Second,
		DualStack:     true,
		SASLMechanism: mechanism,
		TLS:           c.tlsConfig(),
	}, nil
}
