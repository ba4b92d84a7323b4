package pkg

import (
	"encoding/json"
	"fmt"
	"log"
)

type MessageType int

const (
	TypeMessageGame MessageType = iota
	TypeMessageMove
	TypeMessageTransport
	TypeMessageConnect
	TypeMessageJoin
	TypeMessageAction
	TypeMessageGameOver
	TypeMessageChat
	TypeMessageLeave
)

func (m MessageType) String() string {
	switch m {
	case TypeMessageGame:
		return "TypeMessageGame"
	case TypeMessageMove:
		return "TypeMessageMove"
	case TypeMessageTransport:
		return "TypeMessageTransport"
	case TypeMessageConnect:
		return "TypeMessageConnect"
	case TypeMessageJoin:
		return "TypeMessageJoin"
	case TypeMessageAction:
		return "TypeMessageAction"
	case TypeMessageGameOver:
		return "TypeMessageGameOver"
	case TypeMessageChat:
		return "TypeMessageChat"
	case TypeMessageLeave:
		return "TypeMessageLeave"
	default:
		return "Unknown MessageType"
	}
}

type MessageInterface interface {
	Type() MessageType
	Encode() json.RawMessage
}

func encodeMessage(m interface{}) json.RawMessage {
	data, err := json.Marshal(m)
	if err != nil {
		log.Panic(err)
	}
	return data
}

// MessageTransport is the envelope written on the wire, one JSON object per line.
type MessageTransport struct {
	MsgType  MessageType
	Data     json.RawMessage
	PlayerId int
}

func (m MessageTransport) Type() MessageType       { return TypeMessageTransport }
func (m MessageTransport) Encode() json.RawMessage { return encodeMessage(m) }

// Wrap puts a message in its transport envelope.
func Wrap(m MessageInterface) MessageTransport {
	return MessageTransport{MsgType: m.Type(), Data: m.Encode()}
}

// Unwrap decodes the payload of a transport envelope.
func Unwrap(t MessageTransport) (MessageInterface, error) {
	var m MessageInterface
	switch t.MsgType {
	case TypeMessageGame:
		m = &MessageGame{}
	case TypeMessageMove:
		m = &MessageMove{}
	case TypeMessageConnect:
		m = &MessageConnect{}
	case TypeMessageJoin:
		m = &MessageJoin{}
	case TypeMessageAction:
		m = &MessageAction{}
	case TypeMessageGameOver:
		m = &MessageGameOver{}
	case TypeMessageChat:
		m = &MessageChat{}
	case TypeMessageLeave:
		return &MessageLeave{}, nil
	default:
		return nil, fmt.Errorf("unknown message type %d", t.MsgType)
	}
	if err := json.Unmarshal(t.Data, m); err != nil {
		return nil, fmt.Errorf("decode %s: %w", t.MsgType, err)
	}
	return m, nil
}

// MessageMove carries one ply in UCI form, e.g. "e7e8q".
type MessageMove struct {
	Move string
}

func (m MessageMove) Type() MessageType       { return TypeMessageMove }
func (m MessageMove) Encode() json.RawMessage { return encodeMessage(m) }

// MessageGame resyncs a board to the authoritative position.
type MessageGame struct {
	Fen    string
	IsTurn bool
}

func (m MessageGame) Type() MessageType       { return TypeMessageGame }
func (m MessageGame) Encode() json.RawMessage { return encodeMessage(m) }

type MessageConnect struct {
	Color   PlayerColor
	Fen     string
	IsTurn  bool
	MatchId string
}

func (m MessageConnect) Type() MessageType       { return TypeMessageConnect }
func (m MessageConnect) Encode() json.RawMessage { return encodeMessage(m) }

// MessageJoin is the first message a client sends. An empty MatchId joins
// any match waiting for an opponent.
type MessageJoin struct {
	MatchId string
	Name    string
}

func (m MessageJoin) Type() MessageType       { return TypeMessageJoin }
func (m MessageJoin) Encode() json.RawMessage { return encodeMessage(m) }

type MessageAction struct {
	Action Action
}

func (m MessageAction) Type() MessageType       { return TypeMessageAction }
func (m MessageAction) Encode() json.RawMessage { return encodeMessage(m) }

type MessageGameOver struct {
	Reason string
	Winner PlayerColor
}

func (m MessageGameOver) Type() MessageType       { return TypeMessageGameOver }
func (m MessageGameOver) Encode() json.RawMessage { return encodeMessage(m) }

type MessageChat struct {
	Name    string
	Message string
}

func (m MessageChat) Type() MessageType       { return TypeMessageChat }
func (m MessageChat) Encode() json.RawMessage { return encodeMessage(m) }

// MessageLeave never crosses the wire; a Player emits it when its
// connection closes.
type MessageLeave struct{}

func (m MessageLeave) Type() MessageType       { return TypeMessageLeave }
func (m MessageLeave) Encode() json.RawMessage { return encodeMessage(m) }
