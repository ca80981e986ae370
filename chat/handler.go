package chat

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"plume/config"
	"plume/utils"
)

// SessionResolver maps a handshake request to the session identity, if any.
// The router injects the same function the HTTP middleware uses, so there is
// no separate login for the channel.
type SessionResolver func(*http.Request) (*utils.SessionUser, bool)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     checkOrigin,
}

func checkOrigin(r *http.Request) bool {
	origins := config.Get().AllowedOrigins
	if len(origins) == 1 && origins[0] == "*" {
		return true
	}
	origin := r.Header.Get("Origin")
	for _, allowed := range origins {
		if origin == allowed {
			return true
		}
	}
	return false
}

// ServeWS upgrades the connection and wires it to the hub. The session is
// resolved before the upgrade; a guest connection is accepted but stays
// passive, never registered for relay and with all inbound frames discarded.
func ServeWS(hub *Hub, resolve SessionResolver) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		user, authenticated := resolve(ctx.Request)

		conn, err := upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
		if err != nil {
			if utils.Sugar != nil {
				utils.Sugar.Warnf("websocket upgrade failed: %v", err)
			}
			return
		}

		if !authenticated {
			go discard(conn)
			return
		}

		client := newClient(hub, conn, *user)
		hub.Register(client)

		go client.writePump()
		client.welcome()
		go client.readPump()
	}
}

// discard drains a guest connection until it closes.
func discard(conn *websocket.Conn) {
	defer conn.Close()
	conn.SetReadLimit(maxMessageSize)
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
