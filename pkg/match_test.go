package pkg

import (
	"testing"

	"github.com/qnkhuat/termchess/pkg/engine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func drain(p *Player) []MessageInterface {
	var out []MessageInterface
	for {
		select {
		case m, ok := <-p.Out:
			if !ok {
				return out
			}
			out = append(out, m)
		default:
			return out
		}
	}
}

func filter[T MessageInterface](msgs []MessageInterface) []T {
	var out []T
	for _, m := range msgs {
		if v, ok := m.(T); ok {
			out = append(out, v)
		}
	}
	return out
}

func send(m *Match, p *Player, msg MessageInterface) {
	t := Wrap(msg)
	t.PlayerId = p.Id
	m.Handle(t)
}

func newTestMatch(t *testing.T) (*Match, *Player, *Player) {
	t.Helper()
	m := NewMatch("test-match")
	white, black := NewPlayer(nil, "alice"), NewPlayer(nil, "bob")
	m.AddPlayer(white)
	m.AddPlayer(black)
	drain(white)
	drain(black)
	return m, white, black
}

func TestMatchSeatsPlayers(t *testing.T) {
	m := NewMatch("seats")
	assert.True(t, m.Waiting())

	white, black, viewer := NewPlayer(nil, "a"), NewPlayer(nil, "b"), NewPlayer(nil, "c")
	m.AddPlayer(white)
	m.AddPlayer(black)
	assert.False(t, m.Waiting())
	m.AddPlayer(viewer)

	assert.Equal(t, White, white.Color)
	assert.Equal(t, Black, black.Color)
	assert.Equal(t, Viewer, viewer.Color)
	assert.Len(t, m.Viewers, 1)

	connect := filter[MessageConnect](drain(white))
	require.Len(t, connect, 1)
	assert.Equal(t, engine.StartFEN, connect[0].Fen)
	assert.True(t, connect[0].IsTurn)
	assert.Equal(t, "seats", connect[0].MatchId)

	connect = filter[MessageConnect](drain(black))
	require.Len(t, connect, 1)
	assert.False(t, connect[0].IsTurn)
	assert.Equal(t, Black, connect[0].Color)
}

func TestMatchRelaysMoves(t *testing.T) {
	m, white, black := newTestMatch(t)
	viewer := NewPlayer(nil, "carol")
	m.AddPlayer(viewer)
	drain(white)
	drain(black)
	drain(viewer)

	send(m, white, MessageMove{Move: "e2e4"})
	assert.Empty(t, drain(white))
	assert.Equal(t, []MessageInterface{MessageMove{Move: "e2e4"}}, drain(black))
	assert.Equal(t, []MessageInterface{MessageMove{Move: "e2e4"}}, drain(viewer))
	assert.Equal(t, engine.Black, m.Board.Turn())
}

func TestMatchRejectsBadMoves(t *testing.T) {
	m, white, black := newTestMatch(t)

	send(m, black, MessageMove{Move: "e7e5"})
	games := filter[MessageGame](drain(black))
	require.Len(t, games, 1)
	assert.Equal(t, engine.StartFEN, games[0].Fen)
	assert.False(t, games[0].IsTurn)

	send(m, white, MessageMove{Move: "e2e5"})
	games = filter[MessageGame](drain(white))
	require.Len(t, games, 1)
	assert.True(t, games[0].IsTurn)

	send(m, white, MessageMove{Move: "garbage"})
	assert.Len(t, filter[MessageGame](drain(white)), 1)

	assert.Empty(t, drain(black))
	assert.Equal(t, engine.StartFEN, m.Board.FEN())
}

func TestMatchCheckmate(t *testing.T) {
	m, white, black := newTestMatch(t)
	players := map[engine.Side]*Player{engine.White: white, engine.Black: black}
	for _, mv := range []string{"f2f3", "e7e5", "g2g4", "d8h4"} {
		send(m, players[m.Board.Turn()], MessageMove{Move: mv})
	}

	for _, p := range []*Player{white, black} {
		over := filter[MessageGameOver](drain(p))
		require.Len(t, over, 1)
		assert.Equal(t, "checkmate", over[0].Reason)
		assert.Equal(t, Black, over[0].Winner)
	}
	assert.Equal(t, engine.ReasonCheckmate, m.Board.Status())
}

func TestMatchPromotion(t *testing.T) {
	m, white, black := newTestMatch(t)
	require.NoError(t, m.Board.LoadFEN("4k3/1P6/8/8/8/8/8/4K3 w - - 0 1"))

	send(m, white, MessageMove{Move: "b7b8n"})
	assert.Equal(t, []MessageInterface{MessageMove{Move: "b7b8n"}}, drain(black))
	b8, _ := engine.ParseCoord("b8")
	assert.Equal(t, engine.Knight, m.Board.Piece(b8).Kind())

	require.NoError(t, m.Board.LoadFEN("4k3/1P6/8/8/8/8/8/4K3 w - - 0 1"))
	send(m, white, MessageMove{Move: "b7b8"})
	assert.Len(t, filter[MessageGame](drain(white)), 1)
}

func TestMatchResign(t *testing.T) {
	m, white, black := newTestMatch(t)
	send(m, black, MessageAction{Action: ActionResignYes})

	over := filter[MessageGameOver](drain(white))
	require.Len(t, over, 1)
	assert.Equal(t, "resignation", over[0].Reason)
	assert.Equal(t, White, over[0].Winner)
	assert.Len(t, filter[MessageGameOver](drain(black)), 1)

	send(m, white, MessageMove{Move: "e2e4"})
	assert.Len(t, filter[MessageGame](drain(white)), 1)
}

func TestMatchDrawOffer(t *testing.T) {
	m, white, black := newTestMatch(t)

	// Accepting your own offer does nothing.
	send(m, white, MessageAction{Action: ActionDrawOffer})
	assert.Equal(t, []MessageInterface{MessageAction{Action: ActionDrawPrompt}}, drain(black))
	send(m, white, MessageAction{Action: ActionDrawAccept})
	assert.False(t, m.Board.GameIsOver())

	send(m, white, MessageAction{Action: ActionDrawOffer})
	drain(black)
	send(m, black, MessageAction{Action: ActionDrawReject})
	assert.Equal(t, []MessageInterface{MessageAction{Action: ActionDrawReject}}, drain(white))

	send(m, white, MessageAction{Action: ActionDrawOffer})
	drain(black)
	send(m, black, MessageAction{Action: ActionDrawAccept})
	over := filter[MessageGameOver](drain(white))
	require.Len(t, over, 1)
	assert.Equal(t, "agreement", over[0].Reason)
	assert.Equal(t, Unknown, over[0].Winner)
}

func TestMatchNewGame(t *testing.T) {
	m, white, black := newTestMatch(t)
	send(m, white, MessageMove{Move: "e2e4"})
	send(m, black, MessageAction{Action: ActionResignYes})
	drain(white)
	drain(black)

	send(m, white, MessageAction{Action: ActionNewGameOffer})
	assert.Equal(t, []MessageInterface{MessageAction{Action: ActionNewGamePrompt}}, drain(black))
	send(m, black, MessageAction{Action: ActionNewGameAccept})

	for _, p := range []*Player{white, black} {
		connect := filter[MessageConnect](drain(p))
		require.Len(t, connect, 1)
		assert.Equal(t, engine.StartFEN, connect[0].Fen)
	}
	assert.False(t, m.Board.GameIsOver())
}

func TestMatchChat(t *testing.T) {
	m, white, black := newTestMatch(t)
	send(m, white, MessageChat{Name: "spoofed", Message: "gl hf"})
	want := []MessageInterface{MessageChat{Name: "alice", Message: "gl hf"}}
	assert.Equal(t, want, drain(white))
	assert.Equal(t, want, drain(black))
}

func TestMatchLeave(t *testing.T) {
	m, white, black := newTestMatch(t)
	send(m, white, MessageMove{Move: "e2e4"})
	drain(black)

	send(m, black, MessageLeave{})
	over := filter[MessageGameOver](drain(white))
	require.Len(t, over, 1)
	assert.Equal(t, "abandonment", over[0].Reason)
	assert.Equal(t, White, over[0].Winner)
	assert.True(t, m.Waiting())

	_, open := <-black.Out
	assert.False(t, open)

	send(m, white, MessageLeave{})
	assert.Equal(t, engine.StartFEN, m.Board.FEN())
	assert.False(t, m.Board.GameIsOver())
}

func TestMatchIgnoresViewerActions(t *testing.T) {
	m, white, _ := newTestMatch(t)
	viewer := NewPlayer(nil, "carol")
	m.AddPlayer(viewer)
	drain(white)

	send(m, viewer, MessageAction{Action: ActionResignYes})
	send(m, viewer, MessageMove{Move: "e2e4"})
	assert.False(t, m.Board.GameIsOver())
	assert.Equal(t, engine.StartFEN, m.Board.FEN())
	assert.Empty(t, drain(white))
}

func TestMatchClose(t *testing.T) {
	m, white, _ := newTestMatch(t)
	m.Close()
	m.Close()
	_, open := <-white.Out
	assert.False(t, open)

	send(m, white, MessageMove{Move: "e2e4"})
	assert.Equal(t, engine.StartFEN, m.Board.FEN())
}
