// Package preview serves generated floors and terrain chunks over WebSocket.
// Clients send one JSON request per message and receive one JSON response.
// Every connection owns its own carver and terrain field; only the cleared
// store is shared.
package preview

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/Strowy/ProceduralGame/internal/config"
	"github.com/Strowy/ProceduralGame/internal/dungeon"
	"github.com/Strowy/ProceduralGame/internal/export"
	"github.com/Strowy/ProceduralGame/internal/geom"
	"github.com/Strowy/ProceduralGame/internal/logger"
	"github.com/Strowy/ProceduralGame/internal/terrain"
)

// Request kinds.
const (
	KindFloor = "floor" // dungeon floor below entrance (x, y)
	KindChunk = "chunk" // terrain chunk at chunk coordinate (x, y)
	KindClear = "clear" // mark the entrance at (x, y) cleared
	KindScore = "score" // number of cleared entrances
)

const (
	writeWait       = 10 * time.Second
	shutdownTimeout = 5 * time.Second
)

// Request is one client message.
type Request struct {
	Kind  string `json:"kind"`
	X     int    `json:"x"`
	Y     int    `json:"y"`
	Floor int    `json:"floor"`
}

// Portal is a dungeon entrance inside a chunk response.
type Portal struct {
	X       int  `json:"x"`
	Y       int  `json:"y"`
	Cleared bool `json:"cleared"`
}

// Response answers one Request. Error is set when the request failed.
type Response struct {
	Kind     string   `json:"kind"`
	X        int      `json:"x"`
	Y        int      `json:"y"`
	Floor    int      `json:"floor,omitempty"`
	Strategy string   `json:"strategy,omitempty"`
	Rooms    int      `json:"rooms,omitempty"`
	Rows     []string `json:"rows,omitempty"`
	Portals  []Portal `json:"portals,omitempty"`
	First    bool     `json:"first,omitempty"`
	Score    int      `json:"score,omitempty"`
	Error    string   `json:"error,omitempty"`
}

// Server is the preview service.
type Server struct {
	cfg      *config.Config
	store    ClearedStore
	upgrader websocket.Upgrader
	limiter  *connLimiter
}

// New validates cfg and returns a server. A nil store is replaced with an
// in-memory one.
func New(cfg *config.Config, store ClearedStore) (*Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if store == nil {
		store = NewMemoryStore()
	}

	s := &Server{
		cfg:     cfg,
		store:   store,
		limiter: newConnLimiter(cfg.Preview.MaxConnectionsPerIP, cfg.Preview.MaxConnections),
	}
	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     s.checkOrigin,
	}
	return s, nil
}

// Handler returns the HTTP handler serving /ws.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocketUpgrade)
	return mux
}

// ListenAndServe serves on the configured address until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Preview.Address,
		Handler:           s.Handler(),
		ReadHeaderTimeout: writeWait,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()
	logger.Info("Preview server listening", "address", s.cfg.Preview.Address)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

func (s *Server) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	allowed := s.cfg.Preview.IsOriginAllowed(origin, r.Host)
	if !allowed {
		logger.Warning("WebSocket connection rejected - origin not allowed",
			"origin", origin,
			"host", r.Host,
			"remote_addr", r.RemoteAddr)
	}
	return allowed
}

func (s *Server) handleWebSocketUpgrade(w http.ResponseWriter, r *http.Request) {
	ip := clientIP(r)
	if !s.limiter.tryAcquire(ip) {
		logger.Warning("WebSocket connection rejected - connection limit reached",
			"ip", ip,
			"open", s.limiter.open())
		http.Error(w, "Too many connections", http.StatusTooManyRequests)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// The upgrader has already written the HTTP error.
		s.limiter.release(ip)
		logger.Warning("WebSocket upgrade failed", "error", err)
		return
	}
	go s.serveConn(conn, ip)
}

func (s *Server) serveConn(conn *websocket.Conn, ip string) {
	defer s.limiter.release(ip)
	defer conn.Close()
	conn.SetReadLimit(s.cfg.Preview.MaxMessageSize)

	remote := conn.RemoteAddr().String()
	sess, err := s.newSession()
	if err != nil {
		logger.Error("Preview session setup failed", "remote_addr", remote, "error", err)
		return
	}
	logger.Info("Preview client connected", "remote_addr", remote)

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logger.Warning("Preview client read failed", "remote_addr", remote, "error", err)
			}
			break
		}

		var resp Response
		var req Request
		if err := json.Unmarshal(message, &req); err != nil {
			resp = Response{Error: fmt.Sprintf("malformed request: %v", err)}
		} else {
			resp = sess.handle(req)
		}

		conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteJSON(resp); err != nil {
			logger.Warning("Preview client write failed", "remote_addr", remote, "error", err)
			break
		}
	}
	logger.Info("Preview client disconnected", "remote_addr", remote)
}

// session is the per-connection generator state.
type session struct {
	carver dungeon.Carver
	floors int
	field  *terrain.Field
	store  ClearedStore
}

func (s *Server) newSession() (*session, error) {
	carver, err := s.cfg.Dungeon.NewCarver()
	if err != nil {
		return nil, err
	}
	field, err := terrain.NewField(s.cfg.Terrain.Properties(), s.cfg.World.Seed,
		terrain.WithCleared(clearedFunc(s.store)))
	if err != nil {
		return nil, err
	}
	return &session{carver: carver, floors: s.cfg.Dungeon.Floors, field: field, store: s.store}, nil
}

func clearedFunc(store ClearedStore) terrain.ClearedFunc {
	return func(entrance geom.Point) bool {
		cleared, err := store.IsCleared(entrance)
		if err != nil {
			logger.Warning("Cleared lookup failed", "entrance", entrance, "error", err)
			return false
		}
		return cleared
	}
}

func (sess *session) handle(req Request) Response {
	resp := Response{Kind: req.Kind, X: req.X, Y: req.Y}
	var err error
	switch req.Kind {
	case KindFloor:
		err = sess.floor(req, &resp)
	case KindChunk:
		sess.chunk(req, &resp)
	case KindClear:
		err = sess.clear(req, &resp)
	case KindScore:
		resp.Score, err = sess.store.Score()
	default:
		err = fmt.Errorf("unknown request kind %q", req.Kind)
	}
	if err != nil {
		resp.Error = err.Error()
	}
	return resp
}

func (sess *session) floor(req Request, resp *Response) error {
	d, err := dungeon.NewDungeon(sess.carver, geom.Pt(req.X, req.Y), sess.floors)
	if err != nil {
		return err
	}
	floor, err := d.Floor(req.Floor)
	if err != nil {
		return err
	}
	resp.Floor = floor.Number
	resp.Strategy = floor.Strategy.String()
	resp.Rooms = len(floor.Rooms)
	resp.Rows = export.RenderFloor(floor.Grid)
	return nil
}

func (sess *session) chunk(req Request, resp *Response) {
	c := sess.field.Chunk(req.X, req.Y)
	resp.Rows = export.RenderChunk(c)
	for _, p := range c.Portals {
		resp.Portals = append(resp.Portals, Portal{X: p.Entrance.X, Y: p.Entrance.Y, Cleared: p.Cleared})
	}
}

func (sess *session) clear(req Request, resp *Response) error {
	entrance := geom.Pt(req.X, req.Y)
	if _, ok := sess.field.TerrainData(entrance.X, entrance.Y).Feature.(terrain.Portal); !ok {
		return fmt.Errorf("no dungeon entrance at %v", entrance)
	}

	first, err := sess.store.MarkCleared(entrance)
	if err != nil {
		return err
	}
	resp.First = first
	resp.Score, err = sess.store.Score()
	return err
}
