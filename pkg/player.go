package pkg

import (
	"bufio"
	"log"
	"net"

	"github.com/qnkhuat/termchess/pkg/engine"
)

type PlayerColor int

const (
	White PlayerColor = iota
	Black
	Viewer
	Unknown
)

func (pc PlayerColor) String() string {
	switch pc {
	case White:
		return "White"
	case Black:
		return "Black"
	case Viewer:
		return "Viewer"
	default:
		return "Unknown"
	}
}

// Side maps a player color to the engine side it plays.
func (pc PlayerColor) Side() engine.Side {
	switch pc {
	case White:
		return engine.White
	case Black:
		return engine.Black
	}
	return engine.InvalidSide
}

func ColorOf(s engine.Side) PlayerColor {
	switch s {
	case engine.White:
		return White
	case engine.Black:
		return Black
	}
	return Unknown
}

type Player struct {
	Conn  net.Conn
	Color PlayerColor
	Out   chan MessageInterface
	Id    int
	Name  string
}

func NewPlayer(conn net.Conn, name string) *Player {
	Out := make(chan MessageInterface, ConnQueueSize)

	p := &Player{
		Conn: conn,
		Out:  Out,
		Name: name,
	}
	return p
}

// HandleRead forwards every envelope from the connection to in, tagged with
// the player id, and a MessageLeave once the connection closes.
func (p *Player) HandleRead(in chan<- MessageTransport) {
	scanner := bufio.NewScanner(p.Conn)
	for scanner.Scan() {
		var messageTransport MessageTransport
		if err := Decode(scanner.Bytes(), &messageTransport); err != nil {
			log.Printf("Player %d sent garbage: %v", p.Id, err)
			continue
		}
		messageTransport.PlayerId = p.Id
		in <- messageTransport
	}
	leave := Wrap(MessageLeave{})
	leave.PlayerId = p.Id
	in <- leave
}

func (p *Player) HandleWrite() {
	for message := range p.Out {
		if err := WriteMessage(p.Conn, message); err != nil {
			log.Printf("Failed to write: %v Error: %v", message, err)
		}
	}
}

// Send queues a message without blocking the match on a slow reader.
func (p *Player) Send(m MessageInterface) {
	select {
	case p.Out <- m:
	default:
		log.Printf("Dropped %s for player %d: queue full", m.Type(), p.Id)
	}
}

func (p *Player) Disconnect() {
	if p.Conn != nil {
		p.Conn.Close()
	}
}
