package mqstub

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/oimyounis/mqstub/utils"
)

var ErrInvalidMessage = errors.New("websocket message type not binary")

// wsConn carries the MQTT byte stream over binary websocket messages so a Client
// can read it like a TCP connection. Packets may span or share messages.
type wsConn struct {
	net.Conn
	c *websocket.Conn
	r io.Reader
}

func newWSConn(c *websocket.Conn) *wsConn {
	return &wsConn{Conn: c.UnderlyingConn(), c: c}
}

func (ws *wsConn) Read(p []byte) (int, error) {
	for {
		if ws.r == nil {
			op, r, err := ws.c.NextReader()
			if err != nil {
				var closeErr *websocket.CloseError
				if errors.As(err, &closeErr) {
					return 0, io.EOF
				}
				return 0, err
			}
			if op != websocket.BinaryMessage {
				return 0, ErrInvalidMessage
			}
			ws.r = r
		}

		n, err := ws.r.Read(p)
		if errors.Is(err, io.EOF) {
			ws.r = nil
			if n == 0 {
				continue
			}
			err = nil
		}
		return n, err
	}
}

func (ws *wsConn) Write(p []byte) (int, error) {
	if err := ws.c.WriteMessage(websocket.BinaryMessage, p); err != nil {
		return 0, err
	}
	return len(p), nil
}

func (ws *wsConn) Close() error {
	return ws.c.Close()
}

type webSocketsServer struct {
	broker   *Broker
	upgrader websocket.Upgrader
	server   *http.Server
}

func newWebSocketsServer(b *Broker) *webSocketsServer {
	c := b.config.WebSockets
	wss := &webSocketsServer{broker: b}
	wss.upgrader = websocket.Upgrader{
		ReadBufferSize:  4096,
		WriteBufferSize: 4096,
		Subprotocols:    []string{"mqtt"},
		CheckOrigin: func(r *http.Request) bool {
			if len(c.Origins) == 0 {
				return true
			}

			origin := r.Header.Get("origin")
			if origin == "" {
				return !c.RejectEmptyOrigin
			}
			return utils.StringInSlice(origin, c.Origins)
		},
	}

	mux := http.NewServeMux()
	mux.HandleFunc(c.Path, wss.onRequestHandler)
	wss.server = &http.Server{
		Addr:              c.Listen,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return wss
}

func (wss *webSocketsServer) onRequestHandler(w http.ResponseWriter, r *http.Request) {
	conn, err := wss.upgrader.Upgrade(w, r, nil)
	if err != nil {
		wss.broker.Logger.Warn("websocket upgrade failed", zap.String("remote", r.RemoteAddr), zap.Error(err))
		return
	}

	wss.broker.handleConnection(newWSConn(conn))
}

func (wss *webSocketsServer) Listen() {
	wss.broker.Logger.Info("websockets listening", zap.String("address", wss.server.Addr))
	if err := wss.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		wss.broker.Logger.Error("websockets server error", zap.Error(err))
	}
}

func (wss *webSocketsServer) Close() {
	_ = wss.server.Shutdown(context.Background())
}
