package room

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// Client is a spectator connected to the server via websockets
type Client struct {
	// ID identifies the connection in the logs
	ID string

	// Conn is the underlying websocket connection
	Conn *websocket.Conn

	// send is a channel for sending messages to the client
	send chan interface{}

	// Close is a channel for closing the client
	Close chan string

	// CloseError contains the reason why the connection was closed
	CloseError error
}

// NewClient returns a new client object
func NewClient(conn *websocket.Conn) *Client {
	return &Client{
		ID:    uuid.New().String(),
		send:  make(chan interface{}, 256),
		Close: make(chan string),
		Conn:  conn,
	}
}

// Send send a message to the web client
// If the client is not keeping up, the message is dropped and false is returned
func (c *Client) Send(msg interface{}) bool {
	select {
	case c.send <- msg:
		return true
	default:
		return false
	}
}

// SendChan returns a read-only channel
func (c *Client) SendChan() <-chan interface{} {
	return c.send
}

// String returns a traceable identifier for the client
func (c *Client) String() string {
	return fmt.Sprintf("spectator:%s", c.ID)
}
