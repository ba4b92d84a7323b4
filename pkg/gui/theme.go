package gui

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/gdamore/tcell/v2"
)

// Terminal safe color palette is available here
// Themes should be limited to the colors defined in this reference
// https://upload.wikimedia.org/wikipedia/commons/1/15/Xterm_256color_chart.svg

// Theme is used for dynamically coloring the UI
type Theme struct {
	Name        string
	SquareDark  tcell.Color
	SquareLight tcell.Color
	SquareHigh  tcell.Color
	SquareHint  tcell.Color
	SquareCheck tcell.Color
	SquareHeld  tcell.Color
	White       tcell.Color
	Black       tcell.Color
	Msg         tcell.Color
	Rank        tcell.Color
	File        tcell.Color
}

// ThemeHex is the form themes take in a config file
type ThemeHex struct {
	Name        string `json:"name"`
	SquareDark  string `json:"squareDark"`
	SquareLight string `json:"squareLight"`
	SquareHigh  string `json:"squareHigh"`
	SquareHint  string `json:"squareHint"`
	SquareCheck string `json:"squareCheck"`
	SquareHeld  string `json:"squareHeld"`
	White       string `json:"white"`
	Black       string `json:"black"`
	Msg         string `json:"msg"`
	Rank        string `json:"rank"`
	File        string `json:"file"`
}

// fmtHex returns a one character hex for the ColorDefault
// and otherwise it returns a standard hex. This is useful
// because it allows ColorDefault to be imported from the config
// and parsed properly rather than being interpreted as black
func fmtHex(v int32) string {
	if v == -1 {
		return "#0"
	}
	return fmt.Sprintf("#%06x", v)
}

// Hex converts a Theme to a ThemeHex
func (t Theme) Hex() ThemeHex {
	return ThemeHex{
		t.Name,
		fmtHex(t.SquareDark.Hex()),
		fmtHex(t.SquareLight.Hex()),
		fmtHex(t.SquareHigh.Hex()),
		fmtHex(t.SquareHint.Hex()),
		fmtHex(t.SquareCheck.Hex()),
		fmtHex(t.SquareHeld.Hex()),
		fmtHex(t.White.Hex()),
		fmtHex(t.Black.Hex()),
		fmtHex(t.Msg.Hex()),
		fmtHex(t.Rank.Hex()),
		fmtHex(t.File.Hex()),
	}
}

// Theme converts a ThemeHex to a Theme
func (t ThemeHex) Theme() Theme {
	return Theme{
		t.Name,
		tcell.GetColor(t.SquareDark),
		tcell.GetColor(t.SquareLight),
		tcell.GetColor(t.SquareHigh),
		tcell.GetColor(t.SquareHint),
		tcell.GetColor(t.SquareCheck),
		tcell.GetColor(t.SquareHeld),
		tcell.GetColor(t.White),
		tcell.GetColor(t.Black),
		tcell.GetColor(t.Msg),
		tcell.GetColor(t.Rank),
		tcell.GetColor(t.File),
	}
}

// ImportThemes returns a converted Theme from a slice of ThemeHex
// entities if its name matches the want argument
func ImportThemes(want string, themes []ThemeHex) (Theme, error) {
	for _, t := range themes {
		if t.Name == want {
			return t.Theme(), nil
		}
	}
	for _, t := range BuiltinThemes {
		if t.Name == want {
			return t, nil
		}
	}
	return Theme{}, errors.New("theme: no theme found")
}

// ReadThemes decodes a JSON array of ThemeHex.
func ReadThemes(r io.Reader) ([]ThemeHex, error) {
	var themes []ThemeHex
	if err := json.NewDecoder(r).Decode(&themes); err != nil {
		return nil, fmt.Errorf("theme: %w", err)
	}
	return themes, nil
}

// ThemeBasic is the default theme
var ThemeBasic = Theme{
	"basic",        // Name
	tcell.Color188, // SquareDark
	tcell.Color230, // SquareLight
	tcell.Color226, // SquareHigh
	tcell.Color223, // SquareHint
	tcell.Color218, // SquareCheck
	tcell.Color150, // SquareHeld
	tcell.Color232, // White
	tcell.Color232, // Black
	tcell.Color160, // Msg
	tcell.Color247, // Rank
	tcell.Color247, // File
}

var ThemeNight = Theme{
	"night",
	tcell.Color60,
	tcell.Color103,
	tcell.Color179,
	tcell.Color109,
	tcell.Color167,
	tcell.Color71,
	tcell.Color231,
	tcell.Color16,
	tcell.Color203,
	tcell.Color245,
	tcell.Color245,
}

var BuiltinThemes = []Theme{ThemeBasic, ThemeNight}
