package chat

const sendBuffer = 32

// Client is one websocket session. UserID is zero until the session
// authenticates at connection time; unauthenticated sessions stay connected
// but every stateful event is refused.
type Client struct {
	ID     string
	UserID uint
	send   chan Event
}

func NewClient(id string, userID uint) *Client {
	return &Client{
		ID:     id,
		UserID: userID,
		send:   make(chan Event, sendBuffer),
	}
}

// Events exposes the outbound stream consumed by the connection writer.
func (c *Client) Events() <-chan Event {
	return c.send
}

// Authenticated reports whether the session carries a resolved identity.
func (c *Client) Authenticated() bool {
	return c.UserID != 0
}

// push queues an event without blocking; a slow consumer loses frames
// rather than stalling the hub.
func (c *Client) push(e Event) {
	select {
	case c.send <- e:
	default:
	}
}

func (c *Client) close() {
	close(c.send)
}
