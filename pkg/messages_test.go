package pkg

import (
	"bufio"
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapUnwrap(t *testing.T) {
	for _, msg := range []MessageInterface{
		MessageMove{Move: "e7e8q"},
		MessageGame{Fen: "8/8/8/8/8/8/8/8 w - - 0 1", IsTurn: true},
		MessageConnect{Color: Black, Fen: "x", MatchId: "brave-otter"},
		MessageJoin{MatchId: "brave-otter", Name: "alice"},
		MessageAction{Action: ActionDrawOffer},
		MessageGameOver{Reason: "checkmate", Winner: White},
		MessageChat{Name: "bob", Message: "hi"},
	} {
		t.Run(msg.Type().String(), func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, WriteMessage(&buf, msg))
			assert.True(t, strings.HasSuffix(buf.String(), "\n"))

			var transport MessageTransport
			require.NoError(t, Decode(bytes.TrimSpace(buf.Bytes()), &transport))
			assert.Equal(t, msg.Type(), transport.MsgType)

			got, err := Unwrap(transport)
			require.NoError(t, err)
			assert.Equal(t, msg.Type(), got.Type())
			assert.Equal(t, msg.Encode(), got.Encode())
		})
	}
}

func TestUnwrapErrors(t *testing.T) {
	_, err := Unwrap(MessageTransport{MsgType: MessageType(99)})
	assert.Error(t, err)

	_, err = Unwrap(MessageTransport{MsgType: TypeMessageMove, Data: []byte("{")})
	assert.Error(t, err)

	leave, err := Unwrap(Wrap(MessageLeave{}))
	require.NoError(t, err)
	assert.IsType(t, &MessageLeave{}, leave)
}

func TestWriteMessageFraming(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteMessage(&buf, MessageMove{Move: "e2e4"}))
	require.NoError(t, WriteMessage(&buf, MessageChat{Name: "a", Message: "multi\nline"}))

	scanner := bufio.NewScanner(&buf)
	var lines int
	for scanner.Scan() {
		lines++
	}
	assert.Equal(t, 2, lines)
}

func TestActionWire(t *testing.T) {
	assert.True(t, ActionResignYes.Wire())
	assert.True(t, ActionDrawAccept.Wire())
	assert.False(t, ActionResignNo.Wire())
	assert.False(t, ActionDrawPrompt.Wire())
	assert.False(t, ActionExit.Wire())
}

func TestNames(t *testing.T) {
	assert.Equal(t, "alice", Nickname("alice"))
	assert.NotEmpty(t, Nickname(""))
	id := NewMatchId()
	assert.Len(t, strings.Split(id, "-"), 2)
}

func TestPlayerColor(t *testing.T) {
	for _, c := range []PlayerColor{White, Black} {
		assert.Equal(t, c, ColorOf(c.Side()))
	}
	assert.Equal(t, Unknown, ColorOf(Viewer.Side()))
	assert.Equal(t, "Viewer", Viewer.String())
}
