package mqstub

import (
	"errors"
	"net"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/oimyounis/mqstub/utils"
)

const acceptRetryDelay = 100 * time.Millisecond

// Broker accepts connections and runs one Client per connection. It keeps no
// per-connection state.
type Broker struct {
	config    Config
	listener  net.Listener
	wss       *webSocketsServer
	dashboard *echo.Echo
	mutex     sync.Mutex
	closed    atomicBool
	hooks     []Hook
	metrics   *prometheus.Registry
	Logger    *zap.Logger
	Stats     *brokerStats
}

func NewBroker(config Config, logger *zap.Logger) *Broker {
	if logger == nil {
		logger = zap.NewNop()
	}

	stats := newBrokerStats()

	return &Broker{
		config:  config,
		Logger:  logger,
		Stats:   stats,
		metrics: newMetricsRegistry(stats),
	}
}

// AddHook registers h. Hooks must be added before Listen.
func (b *Broker) AddHook(h Hook) {
	b.hooks = append(b.hooks, h)
	b.Logger.Info("added hook", zap.String("hook", h.ID()))
}

// Listen binds the configured address and serves until Close is called. It starts
// the WebSocket listener and the dashboard when they are enabled.
func (b *Broker) Listen() error {
	l, err := net.Listen("tcp", b.config.Address())
	if err != nil {
		return err
	}

	// Close may have run since net.Listen returned.
	b.mutex.Lock()
	if b.closed.Load() {
		b.mutex.Unlock()
		_ = l.Close()
		return ErrServerClosed
	}

	if b.config.WebSockets.Enabled {
		b.wss = newWebSocketsServer(b)
		go b.wss.Listen()
	}

	if b.config.Dashboard.Enabled {
		b.dashboard = newDashboardServer(b)
		go startDashboardServer(b)
	}
	b.mutex.Unlock()

	return b.Serve(l)
}

// Serve accepts connections on l until Close is called. l is closed on return.
func (b *Broker) Serve(l net.Listener) error {
	defer l.Close()

	b.mutex.Lock()
	if b.closed.Load() {
		b.mutex.Unlock()
		return ErrServerClosed
	}
	b.listener = l
	b.mutex.Unlock()

	b.Logger.Info("broker listening", zap.String("address", l.Addr().String()), zap.String("host", utils.GetHostname()))

	for {
		conn, err := l.Accept()
		if err != nil {
			if b.closed.Load() {
				return nil
			}
			if errors.Is(err, net.ErrClosed) {
				return err
			}
			b.Logger.Error("couldn't accept connection", zap.Error(err))
			time.Sleep(acceptRetryDelay)
			continue
		}

		go b.handleConnection(conn)
	}
}

// Addr returns the bound TCP address, or nil before Serve.
func (b *Broker) Addr() net.Addr {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	if b.listener == nil {
		return nil
	}
	return b.listener.Addr()
}

// Close stops accepting connections. Running connections are left to end on their own.
func (b *Broker) Close() error {
	if b.closed.Swap(true) {
		return nil
	}

	b.mutex.Lock()
	defer b.mutex.Unlock()

	var err error
	if b.listener != nil {
		err = b.listener.Close()
	}

	if b.wss != nil {
		b.wss.Close()
	}

	stopDashboardServer(b.dashboard)

	b.Logger.Info("broker closed")
	return err
}

func (b *Broker) handleConnection(conn net.Conn) {
	c := newClient(b, conn)
	b.Stats.connection()
	c.logger.Info("accepted connection")
	c.listen()
}
