// Package playground serves the lexer and parsers over a websocket so editors
// and browser tools can analyze source interactively.
package playground

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"plume/internal/config"
	"plume/internal/log"
)

const shutdownTimeout = 5 * time.Second

type Server struct {
	cfg      config.Playground
	logger   *log.Logger
	upgrader websocket.Upgrader
	now      func() time.Time
}

func New(cfg config.Playground, logger *log.Logger) *Server {
	s := &Server{
		cfg:    cfg,
		logger: logger.WithField("component", "playground"),
		now:    time.Now,
	}
	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  4096,
		WriteBufferSize: 4096,
		CheckOrigin:     s.checkOrigin,
	}
	return s
}

// checkOrigin allows everything when no origins are configured, otherwise
// only the listed ones. Requests without an Origin header are not browsers.
func (s *Server) checkOrigin(r *http.Request) bool {
	if len(s.cfg.AllowedOrigins) == 0 {
		return true
	}
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	for _, allowed := range s.cfg.AllowedOrigins {
		if allowed == "*" || allowed == origin {
			return true
		}
	}
	return false
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.HandleFunc("/auth", s.handleAuth)
	mux.HandleFunc("/ws", s.handleWS)
	return mux
}

// ListenAndServe blocks until ctx is cancelled or the listener fails.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", log.Fields{"addr": s.cfg.Addr, "auth": s.cfg.AuthEnabled()})
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		s.logger.Info("shutting down")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("ok"))
}

type authRequest struct {
	Key string `json:"key"`
}

type authResponse struct {
	Token     string    `json:"token"`
	Session   string    `json:"session"`
	ExpiresAt time.Time `json:"expiresAt"`
}

func (s *Server) handleAuth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if !s.cfg.AuthEnabled() {
		writeError(w, http.StatusNotFound, "auth is disabled")
		return
	}

	var req authRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 4096)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if !verifyKey(s.cfg.KeyHash, req.Key) {
		s.logger.Warn("rejected access key", log.Fields{"remote": r.RemoteAddr})
		writeError(w, http.StatusUnauthorized, ErrUnauthorized.Error())
		return
	}

	sid := uuid.New().String()
	signed, expires, err := s.signToken(sid)
	if err != nil {
		s.logger.Error("signing token", log.Fields{"error": err})
		writeError(w, http.StatusInternalServerError, "could not issue token")
		return
	}
	s.logger.Info("issued token", log.Fields{"session": sid})
	writeJSON(w, http.StatusOK, authResponse{Token: signed, Session: sid, ExpiresAt: expires.UTC()})
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	sid := uuid.New().String()
	if s.cfg.AuthEnabled() {
		var err error
		if sid, err = s.verifyToken(bearerToken(r)); err != nil {
			s.logger.Warn("rejected websocket", log.Fields{"remote": r.RemoteAddr, "error": err})
			writeError(w, http.StatusUnauthorized, ErrUnauthorized.Error())
			return
		}
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already replied to the client
		s.logger.Warn("websocket upgrade failed", log.Fields{"error": err})
		return
	}
	s.serveSession(conn, sid)
}

func (s *Server) serveSession(conn *websocket.Conn, sid string) {
	defer conn.Close()
	logger := s.logger.WithField("session", sid)
	logger.Info("session opened")

	// room for the JSON envelope around a maximal source
	conn.SetReadLimit(int64(s.cfg.MaxSourceBytes)*2 + 4096)

	for {
		msgType, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logger.Info("session closed")
			} else {
				logger.Warn("session ended", log.Fields{"error": err})
			}
			return
		}
		if msgType != websocket.TextMessage {
			continue
		}

		var resp Response
		var req Request
		if err := json.Unmarshal(msg, &req); err != nil {
			resp = Response{}.fail(KindRequest, errors.New("invalid request: "+err.Error()))
		} else {
			resp = Analyze(req, s.cfg.MaxSourceBytes)
		}
		logger.Debug("analyzed", log.Fields{"id": req.ID, "mode": req.Mode, "ok": resp.OK})

		if err := conn.WriteJSON(resp); err != nil {
			logger.Warn("write failed", log.Fields{"error": err})
			return
		}
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
