package chat

// Hub tracks the set of authenticated chat connections and fans inbound
// messages out to every connection except the sender. Delivery is best effort:
// there is no history, no persistence and no retry, and a receiver that cannot
// keep up is dropped.
type Hub struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	relay      chan envelope
}

type envelope struct {
	sender  *Client
	payload []byte
}

// NewHub creates an empty hub. Run must be started before clients attach.
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		relay:      make(chan envelope),
	}
}

// Run owns the client set. All membership changes and fan-out happen on this
// single goroutine, so no lock is needed.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.clients[client] = true
		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
		case msg := <-h.relay:
			for client := range h.clients {
				if client == msg.sender {
					continue
				}
				select {
				case client.send <- msg.payload:
				default:
					delete(h.clients, client)
					close(client.send)
				}
			}
		}
	}
}

// Register adds an authenticated connection to the fan-out set.
func (h *Hub) Register(c *Client) {
	h.register <- c
}

// Unregister removes a connection; a disconnected participant simply stops
// receiving.
func (h *Hub) Unregister(c *Client) {
	h.unregister <- c
}

// Relay queues a payload for delivery to every client other than the sender.
func (h *Hub) Relay(sender *Client, payload []byte) {
	h.relay <- envelope{sender: sender, payload: payload}
}
