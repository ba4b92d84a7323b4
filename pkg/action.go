package pkg

type Action string

const (
	ActionDrawOffer     Action = "Want Draw"
	ActionDrawPrompt    Action = "Draw?"
	ActionDrawAccept    Action = "Accept"
	ActionDrawReject    Action = "Reject"
	ActionResignPrompt  Action = "Resign"
	ActionResignYes     Action = "Yes"
	ActionResignNo      Action = "No"
	ActionNewGamePrompt Action = "New Game?"
	ActionNewGameOffer  Action = "New Game"
	ActionNewGameAccept Action = "Yes!"
	ActionNewGameReject Action = "No~"
	ActionExit          Action = "Exit"
	ActionWin           Action = "Win"
	ActionLose          Action = "Lose"
	ActionDraw          Action = "Draw"
)

// Wire reports whether the action is sent to the server rather than only
// driving local prompts.
func (a Action) Wire() bool {
	switch a {
	case ActionDrawOffer, ActionDrawAccept, ActionDrawReject,
		ActionResignYes, ActionNewGameOffer, ActionNewGameAccept, ActionNewGameReject:
		return true
	}
	return false
}
