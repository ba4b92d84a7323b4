package engine

import (
	"fmt"
	"strings"
)

const (
	numFiles            = 8
	numRanks            = 8
	numOfSquaresInBoard = numFiles * numRanks
)

// Coord is a square on the board. X is the file (0 = a), Y is the rank (0 = 1).
type Coord struct {
	X, Y int
}

// NoCoord means "no square".
var NoCoord = Coord{-1, -1}

func Sq(x, y int) Coord { return Coord{x, y} }

func (c Coord) OnBoard() bool {
	return c.X >= 0 && c.X < numFiles && c.Y >= 0 && c.Y < numRanks
}

func (c Coord) Index() int { return c.Y*numFiles + c.X }

func (c Coord) Add(dx, dy int) Coord { return Coord{c.X + dx, c.Y + dy} }

func (c Coord) String() string {
	if !c.OnBoard() {
		return "-"
	}
	var b strings.Builder
	b.WriteByte(byte('a' + c.X))
	b.WriteByte(byte('1' + c.Y))
	return b.String()
}

func coordFromIndex(i int) Coord { return Coord{i % numFiles, i / numFiles} }

// ParseCoord parses algebraic square names such as "e4". "-" parses to NoCoord.
func ParseCoord(s string) (Coord, error) {
	if s == "-" {
		return NoCoord, nil
	}
	if len(s) != 2 {
		return NoCoord, fmt.Errorf("bad square %q", s)
	}
	c := Coord{int(s[0]) - 'a', int(s[1]) - '1'}
	if !c.OnBoard() {
		return NoCoord, fmt.Errorf("bad square %q", s)
	}
	return c, nil
}

// SameDiagonal reports whether a and b share a diagonal.
func SameDiagonal(a, b Coord) bool {
	return abs(a.X-b.X) == abs(a.Y-b.Y)
}

// SameLine reports whether a and b share a rank or a file.
func SameLine(a, b Coord) bool {
	return a.X == b.X || a.Y == b.Y
}

// collinear reports whether c lies on the line through a and b.
func collinear(a, b, c Coord) bool {
	return (b.X-a.X)*(c.Y-a.Y) == (b.Y-a.Y)*(c.X-a.X)
}

// between returns the squares strictly between a and b when they are aligned
// on a rank, file or diagonal. Otherwise it returns nil.
func between(a, b Coord) []Coord {
	if a == b || !(SameLine(a, b) || SameDiagonal(a, b)) {
		return nil
	}
	dx, dy := sign(b.X-a.X), sign(b.Y-a.Y)
	var out []Coord
	for c := a.Add(dx, dy); c != b; c = c.Add(dx, dy) {
		out = append(out, c)
	}
	return out
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
