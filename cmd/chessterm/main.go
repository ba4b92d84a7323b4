package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/qnkhuat/termchess/pkg"
	"github.com/qnkhuat/termchess/pkg/gui"
	"golang.org/x/term"
)

func getenv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

func fail(format string, args ...interface{}) {
	color.New(color.FgRed, color.Bold).Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}

func loadTheme(name, file string) gui.Theme {
	var themes []gui.ThemeHex
	if file != "" {
		f, err := os.Open(file)
		if err != nil {
			fail("Could not open themes: %v", err)
		}
		defer f.Close()
		if themes, err = gui.ReadThemes(f); err != nil {
			fail("Could not read themes: %v", err)
		}
	}
	theme, err := gui.ImportThemes(name, themes)
	if err != nil {
		fail("Unknown theme %q", name)
	}
	return theme
}

func main() {
	logPath := flag.String("log", getenv("CHESSTERM_LOG", "./chessterm.log"), "path to log file")
	server := flag.String("server", getenv("CHESSTERM_SERVER", "localhost"+pkg.ServerPort), "server address")
	matchId := flag.String("match", getenv("CHESSTERM_MATCH", ""), "match to join, empty joins any waiting match")
	name := flag.String("name", getenv("CHESSTERM_NAME", ""), "your nickname")
	fen := flag.String("fen", "", "starting position for a local game")
	local := flag.Bool("local", false, "play both sides on this terminal")
	themeName := flag.String("theme", getenv("CHESSTERM_THEME", gui.ThemeBasic.Name), "board theme")
	themeFile := flag.String("themes", getenv("CHESSTERM_THEMES", ""), "JSON file with extra themes")
	flag.Parse()

	if !term.IsTerminal(int(os.Stdin.Fd())) {
		fail("chessterm needs an interactive terminal")
	}
	if *fen != "" && !*local {
		fail("-fen only applies to -local games")
	}

	pkg.InitLog(*logPath, "CLIENT: ")
	log.Println("New Client")

	cl, err := pkg.NewClient(pkg.ClientConfig{
		Name:    *name,
		MatchId: *matchId,
		Fen:     *fen,
		Theme:   loadTheme(*themeName, *themeFile),
		Local:   *local,
	})
	if err != nil {
		fail("Bad position: %v", err)
	}

	if !*local {
		if err := cl.Connect(*server); err != nil {
			fail("Could not reach %s: %v", *server, err)
		}
		go cl.HandleRead()
		go cl.HandleWrite()
	}

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigc
		cl.Stop()
	}()

	if err := cl.Run(); err != nil {
		cl.Disconnect()
		fail("%v", err)
	}
	cl.Disconnect()
	fmt.Println(color.GreenString("Bye %s!", cl.Config.Name))
}
