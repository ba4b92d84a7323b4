package pkg

import (
	"bufio"
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"os"
	"os/exec"
	"sort"
	"sync"
	"time"

	"github.com/creack/pty"
	"github.com/gliderlabs/ssh"
	gossh "golang.org/x/crypto/ssh"
)

const (
	ServerIdleTimeout = 5 * time.Minute
	SshPort           = ":2222"
	ServerPort        = ":1998"
)

type ServerConfig struct {
	Addr        string
	SshAddr     string
	HostKeyFile string
	// ClientPath is the chessterm binary ssh sessions are attached to.
	ClientPath  string
	IdleTimeout time.Duration
}

type Server struct {
	Config  ServerConfig
	Matches map[string]*Match
	ssh     *ssh.Server
	mu      sync.Mutex
}

func NewServer(cfg ServerConfig) (*Server, error) {
	if cfg.Addr == "" {
		cfg.Addr = ServerPort
	}
	if cfg.IdleTimeout == 0 {
		cfg.IdleTimeout = ServerIdleTimeout
	}
	server := &Server{
		Config:  cfg,
		Matches: make(map[string]*Match),
	}
	if cfg.SshAddr == "" {
		return server, nil
	}

	s := &ssh.Server{
		Addr:        cfg.SshAddr,
		IdleTimeout: cfg.IdleTimeout,
		Handler:     server.sshHandle,
	}
	signer, err := loadHostKey(cfg.HostKeyFile)
	if err != nil {
		return nil, err
	}
	s.AddHostKey(signer)
	server.ssh = s
	return server, nil
}

// loadHostKey reads a PEM private key, or generates a throwaway ed25519 key
// when no file is configured.
func loadHostKey(file string) (gossh.Signer, error) {
	if file == "" {
		_, priv, err := ed25519.GenerateKey(rand.Reader)
		if err != nil {
			return nil, err
		}
		log.Println("No host key configured, using an ephemeral key")
		return gossh.NewSignerFromKey(priv)
	}
	pem, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("reading host key: %w", err)
	}
	return gossh.ParsePrivateKey(pem)
}

func (s *Server) sshHandle(sess ssh.Session) {
	ptyReq, winCh, isPty := sess.Pty()
	if !isPty {
		io.WriteString(sess, "non-interactive terminals are not supported\n")
		sess.Exit(1)
		return
	}

	cmdCtx, cancelCmd := context.WithCancel(sess.Context())
	defer cancelCmd()

	args := []string{"-server", "localhost" + s.Config.Addr, "-name", sess.User()}
	if cmd := sess.Command(); len(cmd) > 0 {
		args = append(args, "-match", cmd[0])
	}
	cmd := exec.CommandContext(cmdCtx, s.Config.ClientPath, args...)
	cmd.Env = append(sess.Environ(), fmt.Sprintf("TERM=%s", ptyReq.Term))

	f, err := pty.StartWithSize(cmd, &pty.Winsize{
		Rows: uint16(ptyReq.Window.Height),
		Cols: uint16(ptyReq.Window.Width),
	})
	if err != nil {
		io.WriteString(sess, fmt.Sprintf("failed to initialize pseudo-terminal: %s\n", err))
		sess.Exit(1)
		return
	}
	defer f.Close()

	go func() {
		for win := range winCh {
			pty.Setsize(f, &pty.Winsize{Rows: uint16(win.Height), Cols: uint16(win.Width)})
		}
	}()

	go func() {
		io.Copy(f, sess)
	}()
	io.Copy(sess, f)

	f.Close()
	cmd.Wait()
	log.Printf("ssh session for %s ended", sess.User())
}

// ListenSSH serves the ssh front door until ctx is done.
func (s *Server) ListenSSH(ctx context.Context) error {
	if s.ssh == nil {
		return nil
	}
	go func() {
		<-ctx.Done()
		s.ssh.Close()
	}()
	log.Printf("Listening for ssh at %s", s.ssh.Addr)
	err := s.ssh.ListenAndServe()
	if errors.Is(err, ssh.ErrServerClosed) {
		return nil
	}
	return err
}

// Listen accepts game connections until ctx is done.
func (s *Server) Listen(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.Config.Addr)
	if err != nil {
		return err
	}
	log.Printf("Listening at %s", listener.Addr())
	go func() {
		<-ctx.Done()
		listener.Close()
	}()

	for {
		conn, err := listener.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			log.Printf("Failed to connect %v", err)
			continue
		}
		go s.HandleConn(conn)
	}
}

type bufferedConn struct {
	net.Conn
	r *bufio.Reader
}

func (c bufferedConn) Read(p []byte) (int, error) { return c.r.Read(p) }

// HandleConn expects a MessageJoin as the first line and seats the
// connection in the requested match.
func (s *Server) HandleConn(conn net.Conn) {
	r := bufio.NewReader(conn)
	line, err := r.ReadBytes('\n')
	if err != nil {
		log.Printf("Connection from %s closed before joining: %v", conn.RemoteAddr(), err)
		conn.Close()
		return
	}
	var t MessageTransport
	if err := Decode(line, &t); err != nil || t.MsgType != TypeMessageJoin {
		log.Printf("Connection from %s did not join: %s", conn.RemoteAddr(), line)
		conn.Close()
		return
	}
	msg, err := Unwrap(t)
	if err != nil {
		conn.Close()
		return
	}
	join := msg.(*MessageJoin)

	p := NewPlayer(bufferedConn{Conn: conn, r: r}, Nickname(join.Name))
	m := s.Join(join.MatchId, p)
	go p.HandleWrite()
	go p.HandleRead(m.In)
}

// Join seats p in the match with id. An empty id picks a match that is
// waiting for an opponent, or creates a new one.
func (s *Server) Join(id string, p *Player) *Match {
	s.mu.Lock()
	m := s.Matches[id]
	if id == "" {
		for _, w := range s.Matches {
			if w.Waiting() {
				m = w
				break
			}
		}
	}
	if m == nil {
		for id == "" || s.Matches[id] != nil {
			id = NewMatchId()
		}
		m = NewMatch(id)
		s.Matches[id] = m
		go m.Run()
		log.Printf("Created match %s", id)
	}
	s.mu.Unlock()

	m.AddPlayer(p)
	return m
}

func (s *Server) Match(id string) (*Match, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.Matches[id]
	return m, ok
}

// MatchIds returns the ids of every live match, sorted.
func (s *Server) MatchIds() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]string, 0, len(s.Matches))
	for id := range s.Matches {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// CleanIdleMatches closes matches nobody has touched for IdleTimeout.
func (s *Server) CleanIdleMatches(ctx context.Context) error {
	ticker := time.NewTicker(s.Config.IdleTimeout / 2)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			s.closeAll()
			return nil
		case now := <-ticker.C:
			s.cleanIdle(now)
		}
	}
}

func (s *Server) cleanIdle(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, m := range s.Matches {
		if now.Sub(m.IdleSince()) > s.Config.IdleTimeout {
			log.Printf("Closing idle match %s", id)
			m.Close()
			delete(s.Matches, id)
		}
	}
}

func (s *Server) closeAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, m := range s.Matches {
		m.Close()
		delete(s.Matches, id)
	}
}
