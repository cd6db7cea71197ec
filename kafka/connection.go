package kafka

import (
	"context"
	"crypto/tls"
	"math/rand"
	"time"

	"github.com/Skyrin/go-dsbridge/e"
	"github.com/segmentio/kafka-go"
	"github.com/segmentio/kafka-go/sasl"
)

const (
	// Error constants
	ECode080001 = e.Code0800 + "01"
	ECode080002 = e.Code0800 + "02"
	ECode080003 = e.Code0800 + "03"
	ECode080004 = e.Code0800 + "04"
)

// DefaultDialTimeout broker dial timeout if none is configured
const DefaultDialTimeout = 10 * time.Second

// ConnectionConfig for NewConn
type ConnectionConfig struct {
	AddressList   []string
	NoTLS         bool
	SASLMechanism sasl.Mechanism
	Timeout       *time.Duration
	TLS           *tls.Config
}

// Connection a kafka connection with pre-initialized address list, dialer,
// transport and SASL mechanism
type Connection struct {
	addressList []string
	conn        *kafka.Conn
	dialer      *kafka.Dialer
	transport   *kafka.Transport
}

// NewConn creates a new Kafka connection. A broker is dialed once so an
// unreachable cluster is reported here
func NewConn(ctx context.Context, conf ConnectionConfig) (c *Connection, err error) {
	if len(conf.AddressList) == 0 {
		return nil, e.NK(e.ErrConfiguration, ECode080001, "no kafka address")
	}

	dialer := &kafka.Dialer{
		DualStack: true,
		Timeout:   DefaultDialTimeout,
	}
	transport := &kafka.Transport{}
	if conf.Timeout != nil {
		dialer.Timeout = *conf.Timeout
		transport.DialTimeout = *conf.Timeout
	}

	if conf.SASLMechanism != nil {
		if conf.TLS != nil {
			dialer.TLS = conf.TLS
			transport.TLS = conf.TLS
		} else if !conf.NoTLS {
			dialer.TLS = &tls.Config{}
			transport.TLS = &tls.Config{}
		}

		dialer.SASLMechanism = conf.SASLMechanism
		transport.SASL = conf.SASLMechanism
	}

	c = &Connection{
		addressList: conf.AddressList,
		dialer:      dialer,
		transport:   transport,
	}

	if err := c.connect(ctx); err != nil {
		return nil, e.W(err, ECode080002)
	}

	return c, nil
}

// connect dials a random address of the list
func (c *Connection) connect(ctx context.Context) (err error) {
	idx := rand.Intn(len(c.addressList))
	c.conn, err = c.dialer.DialContext(ctx, "tcp", c.addressList[idx])
	if err != nil {
		return e.WK(err, e.ErrTransport, ECode080003, "failed to connect to kafka")
	}

	return nil
}

// Close closes the connection
func (c *Connection) Close() (err error) {
	if c.conn != nil {
		if err := c.conn.Close(); err != nil {
			return e.W(err, ECode080004)
		}

		c.conn = nil
	}

	return nil
}

// NewWriter helper to return a new kafka writer using this connection's
// address list and transport. Messages with the same key go to the same
// partition
func (c *Connection) NewWriter(topic string) (w *kafka.Writer) {
	return &kafka.Writer{
		Addr:         kafka.TCP(c.addressList...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		Transport:    c.transport,
	}
}
