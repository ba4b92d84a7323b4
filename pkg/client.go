package pkg

import (
	"bufio"
	"errors"
	"fmt"
	"log"
	"net"

	"github.com/gdamore/tcell/v2"
	"github.com/qnkhuat/termchess/pkg/engine"
	"github.com/qnkhuat/termchess/pkg/gui"
	"github.com/rivo/tview"
)

const modalPage = "modal"

type ClientConfig struct {
	Name    string
	MatchId string
	Fen     string
	Theme   gui.Theme
	// Local plays both sides on one terminal without a server.
	Local bool
}

type Client struct {
	Game     *engine.Board
	App      *tview.Application
	Board    *tview.Table
	Pages    *tview.Pages
	Conn     net.Conn
	Out      chan MessageInterface
	Color    PlayerColor
	Config   ClientConfig
	status   *tview.TextView
	messages *tview.TextView
	chat     *tview.InputField
}

func NewClient(cfg ClientConfig) (*Client, error) {
	if cfg.Fen == "" {
		cfg.Fen = engine.StartFEN
	}
	if cfg.Theme.Name == "" {
		cfg.Theme = gui.ThemeBasic
	}
	cfg.Name = Nickname(cfg.Name)

	app := tview.NewApplication()
	cl := &Client{
		App:    app,
		Board:  tview.NewTable(),
		Out:    make(chan MessageInterface, ConnQueueSize),
		Color:  Unknown,
		Config: cfg,
	}
	if cfg.Local {
		cl.Color = White
	}

	game, err := BoardFromFEN(cfg.Fen, engine.WithSubscriber(cl))
	if err != nil {
		return nil, err
	}
	cl.Game = game

	drawBtn := tview.NewButton(string(ActionDrawOffer)).SetSelectedFunc(func() {
		if cl.Config.Local {
			cl.endGame(engine.ReasonAgreement)
			return
		}
		cl.Send(MessageAction{Action: ActionDrawOffer})
		cl.Notify("Draw offered")
	})
	resignBtn := tview.NewButton(string(ActionResignPrompt)).SetSelectedFunc(func() {
		cl.prompt("Resign?", []Action{ActionResignYes, ActionResignNo})
	})
	newGameBtn := tview.NewButton(string(ActionNewGameOffer)).SetSelectedFunc(func() {
		if cl.Config.Local {
			cl.Game.ResetBoard()
			cl.Render()
			return
		}
		cl.Send(MessageAction{Action: ActionNewGameOffer})
		cl.Notify("New game offered")
	})
	exitBtn := tview.NewButton(string(ActionExit)).SetSelectedFunc(cl.Stop)

	cl.status = tview.NewTextView()
	cl.messages = tview.NewTextView().SetScrollable(true)
	cl.messages.SetBorder(true).SetTitle("Messages")
	cl.chat = tview.NewInputField().SetLabel("> ")
	cl.chat.SetDoneFunc(func(key tcell.Key) {
		if key != tcell.KeyEnter || cl.chat.GetText() == "" {
			return
		}
		cl.Send(MessageChat{Name: cl.Config.Name, Message: cl.chat.GetText()})
		cl.chat.SetText("")
	})

	gameOptions := tview.NewGrid().
		SetColumns(12, 12).
		SetRows(1, 1, 1, 1, -1, 1).
		AddItem(cl.status, 0, 0, 1, 2, 0, 0, false).
		AddItem(drawBtn, 1, 0, 1, 1, 0, 0, false).
		AddItem(resignBtn, 1, 1, 1, 1, 0, 0, false).
		AddItem(newGameBtn, 2, 0, 1, 1, 0, 0, false).
		AddItem(exitBtn, 2, 1, 1, 1, 0, 0, false).
		AddItem(cl.messages, 4, 0, 1, 2, 0, 0, false).
		AddItem(cl.chat, 5, 0, 1, 2, 0, 0, false)

	layout := tview.NewGrid().
		SetRows(-1, gui.TableSize*2, -1).
		SetColumns(-1, gui.TableSize*3+2, 26, -1).
		AddItem(cl.Board, 1, 1, 1, 1, 0, 0, true).
		AddItem(gameOptions, 1, 2, 1, 1, 0, 0, false)

	cl.Pages = tview.NewPages().AddPage("game", layout, true, true)
	cl.initTable()
	cl.Render()
	return cl, nil
}

func (cl *Client) initTable() {
	cl.Board.SetSelectable(true, true)
	cl.Board.Select(7, 1).SetDoneFunc(func(key tcell.Key) {
		if key == tcell.KeyEscape {
			cl.Game.Release()
			cl.Render()
		}
	}).SetSelectedFunc(func(row, col int) {
		sq, ok := gui.CellToSquare(row, col, cl.flip())
		if !ok {
			return
		}
		cl.selectSquare(sq)
		cl.Render()
	})
}

// selectSquare picks up a piece, or puts the held one down on sq.
func (cl *Client) selectSquare(sq engine.Coord) {
	if cl.Color == Viewer {
		return
	}
	held, holding := cl.Game.Held()
	switch {
	case holding && held == sq:
		cl.Game.Release()
	case holding:
		if err := cl.Game.PutDown(sq); err != nil {
			log.Printf("Put down %s: %v", sq, err)
			// A click on another friendly piece picks that one up instead.
			if p := cl.Game.Piece(sq); p != nil && p.Side() == cl.Game.Turn() {
				cl.pickUp(sq)
			}
		}
	default:
		cl.pickUp(sq)
	}
}

func (cl *Client) pickUp(sq engine.Coord) {
	if err := cl.Game.PickUp(sq); err != nil {
		log.Printf("Pick up %s: %v", sq, err)
	}
}

func (cl *Client) flip() bool {
	return cl.Color == Black
}

// Render redraws the board and status. Call it from the UI goroutine.
func (cl *Client) Render() {
	gs := gui.NewGameState(cl.Game, cl.Color.Side(), cl.Config.Theme).WithHeldHints()
	gui.RenderTable(cl.Board, gs)

	text := gui.StatusText(cl.Game)
	if cl.Config.Local {
		text = "Local | " + text
	} else if cl.Color != Unknown {
		text = fmt.Sprintf("%s | %s", cl.Color, text)
	}
	cl.status.SetText(text)
}

// Notify appends a line to the message box.
func (cl *Client) Notify(format string, args ...interface{}) {
	fmt.Fprintf(cl.messages, format+"\n", args...)
	cl.messages.ScrollToEnd()
}

// OnEvent reacts to the local board. It always runs on the UI goroutine
// because the board is only touched from there.
func (cl *Client) OnEvent(e engine.Event) {
	switch e := e.(type) {
	case engine.PromotionBegin:
		cl.promotionModal()
	case engine.MoveCompleted:
		if !e.WasOpponentsMove {
			cl.Send(MessageMove{Move: e.Move.String()})
		}
	case engine.GameOver:
		cl.Notify("Game over: %s", e.Reason)
	}
}

func (cl *Client) promotionModal() {
	labels := make([]string, len(engine.PromoTypes))
	for i, p := range engine.PromoTypes {
		labels[i] = p.String()
	}
	modal := tview.NewModal().
		SetText("Promote to").
		AddButtons(labels).
		SetDoneFunc(func(i int, label string) {
			if i < 0 {
				return
			}
			cl.Pages.RemovePage(modalPage)
			if err := cl.Game.EndPromotion(engine.PromoTypes[i]); err != nil {
				log.Printf("End promotion: %v", err)
			}
			cl.App.SetFocus(cl.Board)
			cl.Render()
		})
	cl.Pages.AddPage(modalPage, modal, false, true)
	cl.App.SetFocus(modal)
}

// prompt asks a question whose answers are actions.
func (cl *Client) prompt(text string, answers []Action) {
	labels := make([]string, len(answers))
	for i, a := range answers {
		labels[i] = string(a)
	}
	modal := tview.NewModal().
		SetText(text).
		AddButtons(labels).
		SetDoneFunc(func(i int, label string) {
			cl.Pages.RemovePage(modalPage)
			cl.App.SetFocus(cl.Board)
			if i >= 0 {
				cl.answer(answers[i])
			}
		})
	cl.Pages.AddPage(modalPage, modal, false, true)
	cl.App.SetFocus(modal)
}

func (cl *Client) answer(a Action) {
	if cl.Config.Local {
		if a == ActionResignYes {
			cl.endGame(engine.ReasonResignation)
		}
		return
	}
	if a.Wire() {
		cl.Send(MessageAction{Action: a})
	}
}

func (cl *Client) endGame(reason engine.Reason) {
	if err := cl.Game.EndGame(reason); err != nil && !errors.Is(err, engine.ErrGameOver) {
		log.Printf("End game: %v", err)
	}
	cl.Render()
}

// Send queues a message for the server. Local games have no server.
func (cl *Client) Send(m MessageInterface) {
	if cl.Config.Local {
		if chat, ok := m.(MessageChat); ok {
			cl.Notify("%s: %s", chat.Name, chat.Message)
		}
		return
	}
	select {
	case cl.Out <- m:
	default:
		log.Printf("Dropped %s: queue full", m.Type())
	}
}

// Connect dials the server and joins the configured match.
func (cl *Client) Connect(addr string) error {
	log.Printf("Connecting to %s", addr)
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		return err
	}
	cl.Conn = conn
	return WriteMessage(conn, MessageJoin{MatchId: cl.Config.MatchId, Name: cl.Config.Name})
}

func (cl *Client) HandleWrite() {
	for message := range cl.Out {
		if err := WriteMessage(cl.Conn, message); err != nil {
			log.Printf("Failed to write %s: %v", message.Type(), err)
			return
		}
		log.Printf("Sent a msg type: %s", message.Type())
	}
}

// HandleRead applies server messages on the UI goroutine until the
// connection closes.
func (cl *Client) HandleRead() {
	scanner := bufio.NewScanner(cl.Conn)
	for scanner.Scan() {
		var messageTransport MessageTransport
		if err := Decode(scanner.Bytes(), &messageTransport); err != nil {
			log.Printf("Bad message from server: %v", err)
			continue
		}
		msg, err := Unwrap(messageTransport)
		if err != nil {
			log.Printf("Bad message from server: %v", err)
			continue
		}
		cl.App.QueueUpdateDraw(func() {
			cl.Handle(msg)
			cl.Render()
		})
	}
	cl.App.QueueUpdateDraw(func() {
		cl.Notify("Disconnected from server")
	})
}

// Handle applies one server message to the local board.
func (cl *Client) Handle(msg MessageInterface) {
	switch msg := msg.(type) {
	case *MessageConnect:
		cl.Color = msg.Color
		cl.Config.MatchId = msg.MatchId
		cl.load(msg.Fen)
		cl.Game.SetUserSide(msg.Color.Side())
		cl.Notify("Joined match %s as %s", msg.MatchId, msg.Color)

	case *MessageGame:
		cl.load(msg.Fen)

	case *MessageMove:
		mv, err := engine.ParseMove(msg.Move)
		if err == nil {
			err = cl.Game.ApplyRemoteMove(mv, mv.Promo)
		}
		if err != nil {
			log.Printf("Could not apply %q: %v", msg.Move, err)
		}

	case *MessageGameOver:
		reason, ok := engine.ParseReason(msg.Reason)
		if !ok {
			log.Printf("Unknown game over reason %q", msg.Reason)
			return
		}
		cl.endGame(reason)
		switch {
		case msg.Winner == cl.Color:
			cl.Notify(string(ActionWin))
		case msg.Winner == Unknown:
			cl.Notify(string(ActionDraw))
		case cl.Color != Viewer:
			cl.Notify(string(ActionLose))
		}

	case *MessageAction:
		switch msg.Action {
		case ActionDrawPrompt:
			cl.prompt(string(ActionDrawPrompt), []Action{ActionDrawAccept, ActionDrawReject})
		case ActionNewGamePrompt:
			cl.prompt(string(ActionNewGamePrompt), []Action{ActionNewGameAccept, ActionNewGameReject})
		case ActionDrawReject:
			cl.Notify("Draw declined")
		case ActionNewGameReject:
			cl.Notify("New game declined")
		}

	case *MessageChat:
		cl.Notify("%s: %s", msg.Name, msg.Message)

	default:
		log.Printf("Received unexpected message %s", msg.Type())
	}
}

func (cl *Client) load(fen string) {
	if err := cl.Game.LoadFEN(fen); err != nil {
		log.Printf("Server sent a bad position %q: %v", fen, err)
	}
}

func (cl *Client) Run() error {
	return cl.App.SetRoot(cl.Pages, true).EnableMouse(true).Run()
}

func (cl *Client) Stop() {
	cl.App.Stop()
	cl.Disconnect()
}

func (cl *Client) Disconnect() {
	if cl.Conn != nil {
		cl.Conn.Close()
	}
}
