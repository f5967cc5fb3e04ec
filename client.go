package mqstub

import (
	"bufio"
	"errors"
	"net"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/oimyounis/mqstub/bytes"
)

// ConnState is the position of a connection's read loop.
type ConnState int32

const (
	StateOpen ConnState = iota
	StateAwaitingHeader
	StateReadingBody
	StateDispatching
	StateClosed
)

func (s ConnState) String() string {
	switch s {
	case StateOpen:
		return "open"
	case StateAwaitingHeader:
		return "awaiting header"
	case StateReadingBody:
		return "reading body"
	case StateDispatching:
		return "dispatching"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// Client is the handler of one accepted connection. It owns the connection and every
// packet read from it; nothing in it is shared with other clients.
type Client struct {
	connection net.Conn
	connected  atomicBool
	state      int32
	broker     *Broker
	logger     *zap.Logger
	ID         string
	RemoteAddr string
}

func newClient(b *Broker, conn net.Conn) *Client {
	c := &Client{
		connection: conn,
		broker:     b,
		ID:         uuid.New().String(),
		RemoteAddr: conn.RemoteAddr().String(),
	}
	c.connected.Store(true)
	c.logger = b.Logger.With(zap.String("id", c.ID), zap.String("remote", c.RemoteAddr))
	return c
}

// State returns the current state of the read loop.
func (c *Client) State() ConnState {
	return ConnState(atomic.LoadInt32(&c.state))
}

func (c *Client) setState(s ConnState) {
	atomic.StoreInt32(&c.state, int32(s))
}

func (c *Client) listen() {
	var err error

	defer Recover(func(r, stack string) {
		c.logger.Error("panic in connection handler", zap.String("panic", r), zap.String("stack", stack))
		c.disconnect(errors.New(r))
	})

	sockBuffer := bufio.NewReader(c.connection)

	for c.connected.Load() {
		if err = c.readPacket(sockBuffer); err != nil {
			break
		}
	}

	if errors.Is(err, ErrStreamClosed) {
		err = nil
	}

	c.disconnect(err)
}

// readPacket reads one packet and dispatches it. Unsupported packet types are
// consumed and dropped.
func (c *Client) readPacket(r *bufio.Reader) error {
	c.setState(StateAwaitingHeader)

	if timeout := c.broker.config.ReadTimeout; timeout > 0 {
		_ = c.connection.SetReadDeadline(time.Now().Add(timeout))
	}

	packetType, flags, first, err := readFixedHeader(r)
	if err != nil {
		return err
	}

	remLen, lenBytes, err := decodeVariableLength(r, first, c.broker.config.MaxPacketSize)
	if err != nil {
		return err
	}

	c.setState(StateReadingBody)

	pk := &Packet{Type: packetType, Flags: flags, RemainingLength: remLen}
	if packetType.Supported() {
		if pk.Body, err = readBody(r, remLen); err != nil {
			return err
		}
	} else if err = skipBody(r, remLen); err != nil {
		return err
	}

	c.broker.Stats.bytesIn(int64(1 + lenBytes + remLen))

	c.setState(StateDispatching)
	return c.dispatch(pk)
}

func (c *Client) dispatch(pk *Packet) error {
	switch pk.Type {
	case TypeConnect:
		connect, err := extractConnect(pk.Body)
		if err != nil {
			return err
		}
		c.broker.Stats.packet(pk.Type)

		c.logger.Info("connect",
			zap.String("protocol", connect.ProtocolName),
			zap.Uint8("level", connect.ProtocolLevel),
			zap.String("flags", bytes.ByteToBinaryString(byte(connect.Flags))),
			zap.Bool("cleanSession", connect.Flags.CleanSession()))

		// every CONNECT is accepted
		connack, err := makeConnAckPacket(0, ConnectAccepted)
		if err != nil {
			return err
		}
		if err := c.emit(connack); err != nil {
			return err
		}

		c.broker.invokeOnConnect(c, connect)
	case TypePublish:
		publish, err := extractPublish(pk.Body)
		if err != nil {
			return err
		}
		c.broker.Stats.packet(pk.Type)

		c.logger.Info("publish",
			zap.ByteString("topic", publish.Topic),
			zap.ByteString("payload", publish.Payload),
			zap.Int("bytes", len(publish.Payload)))

		c.broker.invokeOnPublish(c, publish)
	default:
		c.broker.Stats.packet(pk.Type)
		c.logger.Debug("skipped packet", zap.Stringer("type", pk.Type), zap.Int("bytes", pk.RemainingLength))
	}

	return nil
}

// disconnect closes the connection once and reports how it ended. err is nil when
// the peer closed the stream between packets.
func (c *Client) disconnect(err error) {
	if !c.closeConnection() {
		return
	}

	c.broker.Stats.disconnection()

	var decodeErr *DecodeError
	if errors.As(err, &decodeErr) {
		c.broker.Stats.malformed()
		c.logger.Error("malformed", zap.String("reason", decodeErr.Reason), zap.Error(err))
	} else if err != nil {
		c.logger.Error("connection error", zap.Error(err))
	}

	c.broker.invokeOnDisconnect(c, err)

	c.logger.Info("client disconnected", zap.Bool("graceful", err == nil))
}

// closeConnection reports whether this call closed the connection.
func (c *Client) closeConnection() bool {
	if !c.connected.Swap(false) {
		return false
	}
	c.setState(StateClosed)
	_ = c.connection.Close()
	return true
}

func (c *Client) emit(packet []byte) error {
	if _, err := c.connection.Write(packet); err != nil {
		return err
	}
	c.broker.Stats.bytesOut(int64(len(packet)))
	return nil
}
