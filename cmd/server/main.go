package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/qnkhuat/termchess/pkg"
	"golang.org/x/sync/errgroup"
)

func getenv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

func main() {
	logPath := flag.String("log", getenv("CHESSTERM_SERVER_LOG", "./server.log"), "path to log file")
	addr := flag.String("listen", getenv("CHESSTERM_LISTEN", pkg.ServerPort), "address for game connections")
	sshAddr := flag.String("listen-ssh", getenv("CHESSTERM_LISTEN_SSH", ""), "address for the ssh front door, empty disables it")
	clientPath := flag.String("client", getenv("CHESSTERM_CLIENT", "chessterm"), "chessterm binary run for ssh sessions")
	hostKey := flag.String("host-key", getenv("CHESSTERM_HOST_KEY", ""), "ssh host key, empty generates one")
	debugAddr := flag.String("debug-address", getenv("CHESSTERM_DEBUG", ""), "address for the debug HTTP endpoint, empty disables it")
	idle := flag.Duration("idle", pkg.ServerIdleTimeout, "close matches idle for this long")
	flag.Parse()

	pkg.InitLog(*logPath, "SERVER: ")
	log.Println("Server started")

	s, err := pkg.NewServer(pkg.ServerConfig{
		Addr:        *addr,
		SshAddr:     *sshAddr,
		HostKeyFile: *hostKey,
		ClientPath:  *clientPath,
		IdleTimeout: *idle,
	})
	if err != nil {
		color.Red("Could not start server: %v", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return s.Listen(ctx) })
	g.Go(func() error { return s.ListenSSH(ctx) })
	g.Go(func() error { return s.CleanIdleMatches(ctx) })
	if *debugAddr != "" {
		g.Go(func() error { return s.ListenDebug(ctx, *debugAddr) })
	}

	color.Green("Listening at %s", *addr)
	start := time.Now()
	if err := g.Wait(); err != nil {
		log.Printf("Server stopped: %v", err)
		color.Red("Server stopped: %v", err)
		os.Exit(1)
	}
	log.Printf("Server shut down after %s", time.Since(start).Round(time.Second))
}
