package websocket

import (
	"github.com/gofiber/websocket/v2"
)

// ServeWs attaches a connection to the hub on the given channel.
func ServeWs(hub *Hub, c *websocket.Conn, channel string) {
	client := &Client{Hub: hub, Conn: c, Channel: channel, Send: make(chan []byte, 256)}
	client.Hub.register <- client

	// Allow collection of memory referenced by the caller by doing all work in
	// new goroutines.
	go client.writePump()
	client.readPump() // Run readPump in current goroutine (handler)
}
