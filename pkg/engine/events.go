package engine

import "golang.org/x/exp/slices"

// Reason is why a game ended.
type Reason string

const (
	ReasonNone        Reason = ""
	ReasonCheckmate   Reason = "checkmate"
	ReasonStalemate   Reason = "stalemate"
	ReasonResignation Reason = "resignation"
	ReasonAgreement   Reason = "agreement"
	ReasonAbandonment Reason = "abandonment"
)

func ParseReason(s string) (Reason, bool) {
	switch r := Reason(s); r {
	case ReasonCheckmate, ReasonStalemate, ReasonResignation, ReasonAgreement, ReasonAbandonment:
		return r, true
	}
	return ReasonNone, false
}

// Event is anything the board publishes to its subscribers.
type Event interface {
	eventName() string
}

// PromotionBegin is published when a pawn reached the last rank and the
// board waits for EndPromotion.
type PromotionBegin struct {
	Side   Side
	Square Coord
}

type MoveCompleted struct {
	Move             Move
	WasOpponentsMove bool
}

type GameOver struct {
	Reason Reason
}

func (PromotionBegin) eventName() string { return "PromotionBegin" }
func (MoveCompleted) eventName() string  { return "MoveCompleted" }
func (GameOver) eventName() string       { return "GameOver" }

// EventName returns the event's type name, mostly for logs.
func EventName(e Event) string { return e.eventName() }

type Subscriber interface {
	OnEvent(e Event)
}

// SubscriberFunc adapts a function to a Subscriber.
type SubscriberFunc func(e Event)

func (f SubscriberFunc) OnEvent(e Event) { f(e) }

type subscription struct {
	id  int
	sub Subscriber
}

// Bus delivers events synchronously, in subscription order, on the
// publisher's goroutine.
type Bus struct {
	subs   []subscription
	nextID int
}

// Subscribe registers s and returns a function that removes it again.
func (b *Bus) Subscribe(s Subscriber) (unsubscribe func()) {
	b.nextID++
	id := b.nextID
	b.subs = append(b.subs, subscription{id: id, sub: s})
	return func() {
		if i := slices.IndexFunc(b.subs, func(s subscription) bool { return s.id == id }); i >= 0 {
			b.subs = slices.Delete(b.subs, i, i+1)
		}
	}
}

func (b *Bus) Publish(e Event) {
	subs := append([]subscription(nil), b.subs...)
	for _, s := range subs {
		s.sub.OnEvent(e)
	}
}
