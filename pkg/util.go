package pkg

import (
	"encoding/json"
	"io"
	"log"
	"os"

	petname "github.com/dustinkirkland/golang-petname"
	"github.com/qnkhuat/termchess/pkg/engine"
)

const (
	ConnQueueSize = 10
)

func InitLog(dest, prefix string) {
	f, err := os.OpenFile(dest, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		log.Fatalf("error opening file: %v", err)
	}
	log.SetOutput(f)
	log.SetPrefix(prefix)
}

// EngineLogger shares the global log destination with an ENGINE prefix.
func EngineLogger() *log.Logger {
	return log.New(log.Writer(), "ENGINE: ", log.Flags())
}

func Encode(v interface{}) []byte {
	b, err := json.Marshal(v)
	if err != nil {
		log.Panic(err)
	}
	return b
}

func Decode(data []byte, v interface{}) error {
	return json.Unmarshal(data, v)
}

// WriteMessage writes m in its envelope as a single line.
func WriteMessage(w io.Writer, m MessageInterface) error {
	b := Encode(Wrap(m))
	if b[len(b)-1] != '\n' {
		b = append(b, '\n')
	}
	_, err := w.Write(b)
	return err
}

// BoardFromFEN builds an engine board that logs with the global logger.
func BoardFromFEN(fen string, opts ...engine.Option) (*engine.Board, error) {
	opts = append([]engine.Option{engine.WithFEN(fen), engine.WithLogger(EngineLogger())}, opts...)
	return engine.NewBoard(opts...)
}

// NewMatchId returns a readable id such as "brave-otter".
func NewMatchId() string {
	return petname.Generate(2, "-")
}

// Nickname returns name, or a generated one when it is empty.
func Nickname(name string) string {
	if name != "" {
		return name
	}
	return petname.Generate(1, "")
}
