// Package server exposes Jolt sessions over WebSocket. Every connection
// is an independent session with its own Evaluator; every text message
// is one unit of source.
package server

import (
	"context"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"jolt/internal/config"
	"jolt/internal/eval"
	"jolt/internal/history"
)

// Reply answers one message.
type Reply struct {
	Session string   `json:"session"`
	Results []string `json:"results"`
	Error   string   `json:"error,omitempty"`
}

type Server struct {
	cfg      config.Server
	recorder history.Recorder
	upgrader websocket.Upgrader

	mu       sync.Mutex
	sessions map[string]*session
}

type session struct {
	id   string
	conn *websocket.Conn
	ev   *eval.Evaluator
}

// New returns a server. recorder may be nil.
func New(cfg config.Server, recorder history.Recorder) *Server {
	return &Server{
		cfg:      cfg,
		recorder: recorder,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		sessions: make(map[string]*session),
	}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/repl", s.serveREPL)
	return mux
}

// ListenAndServe serves on the configured address until ctx is done.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Printf("server: listening on %s", s.cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return errors.Wrap(err, "server")
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.closeSessions()
		return srv.Shutdown(shutdown)
	})
	return g.Wait()
}

// Sessions returns the number of open sessions.
func (s *Server) Sessions() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (s *Server) serveREPL(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("server: upgrade: %v", err)
		return
	}
	if s.cfg.ReadLimit > 0 {
		conn.SetReadLimit(s.cfg.ReadLimit)
	}

	sess := &session{
		id:   uuid.NewString(),
		conn: conn,
		ev:   eval.New(nil),
	}
	s.add(sess)
	defer s.remove(sess)

	for {
		kind, msg, err := conn.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Printf("server: session %s: %v", sess.id, err)
			}
			return
		}
		if kind != websocket.TextMessage {
			continue
		}
		reply := s.evaluate(r.Context(), sess, string(msg))
		if err := conn.WriteJSON(reply); err != nil {
			log.Printf("server: session %s: %v", sess.id, err)
			return
		}
	}
}

func (s *Server) evaluate(ctx context.Context, sess *session, src string) Reply {
	reply := Reply{Session: sess.id, Results: []string{}}
	results, err := sess.ev.EmitSource(src)
	if s.recorder != nil {
		entry := history.Entry{Session: sess.id, Source: src, Failed: err != nil}
		if rerr := s.recorder.Record(ctx, entry); rerr != nil {
			log.Printf("server: %v", rerr)
		}
	}
	if err != nil {
		reply.Error = err.Error()
		return reply
	}
	for _, r := range results {
		reply.Results = append(reply.Results, r.Unwrap().String())
	}
	return reply
}

func (s *Server) add(sess *session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.id] = sess
}

func (s *Server) remove(sess *session) {
	s.mu.Lock()
	delete(s.sessions, sess.id)
	s.mu.Unlock()
	sess.conn.Close()
}

func (s *Server) closeSessions() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, sess := range s.sessions {
		sess.conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
			time.Now().Add(time.Second))
		sess.conn.Close()
	}
}
