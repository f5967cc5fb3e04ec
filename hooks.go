package mqstub

// Hook observes what a connection decodes. Hooks are called from the connection's own
// goroutine, so a Hook shared by several connections must be safe for concurrent use.
type Hook interface {
	ID() string
	OnConnect(c *Client, pk *ConnectPacket)
	OnPublish(c *Client, pk *PublishPacket)
	OnDisconnect(c *Client, err error)
}

// HookBase implements Hook with no-op methods, for embedding.
type HookBase struct{}

func (h *HookBase) ID() string                             { return "base" }
func (h *HookBase) OnConnect(c *Client, pk *ConnectPacket) {}
func (h *HookBase) OnPublish(c *Client, pk *PublishPacket) {}
func (h *HookBase) OnDisconnect(c *Client, err error)      {}

func (b *Broker) invokeOnConnect(c *Client, pk *ConnectPacket) {
	for _, h := range b.hooks {
		h.OnConnect(c, pk)
	}
}

func (b *Broker) invokeOnPublish(c *Client, pk *PublishPacket) {
	for _, h := range b.hooks {
		h.OnPublish(c, pk)
	}
}

func (b *Broker) invokeOnDisconnect(c *Client, err error) {
	for _, h := range b.hooks {
		h.OnDisconnect(c, err)
	}
}
