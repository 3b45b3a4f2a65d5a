// Package server relays a bot stats session over HTTP. It exposes the
// latest display model, the sample window and session status as JSON,
// renders the HTML chart, and pushes every poll result to websocket
// clients as it arrives.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rileyhilliard/botstat/internal/errors"
	"github.com/rileyhilliard/botstat/internal/logger"
	"github.com/rileyhilliard/botstat/internal/monitor"
)

// shutdownTimeout bounds graceful HTTP shutdown.
const shutdownTimeout = 5 * time.Second

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Server wires a poller to the HTTP routes and the websocket hub.
type Server struct {
	poller *monitor.Poller
	hub    *Hub
	engine *gin.Engine
	log    logger.Logger
}

// New builds the gin engine for poller. It does not start polling.
func New(poller *monitor.Poller, log logger.Logger) *Server {
	if log == nil {
		log = logger.Noop()
	}

	s := &Server{
		poller: poller,
		hub:    NewHub(log),
		engine: gin.New(),
		log:    log,
	}
	s.engine.Use(gin.Recovery())
	s.routes()
	return s
}

func (s *Server) routes() {
	api := s.engine.Group("/api")
	{
		api.GET("/display", s.handleDisplay)
		api.GET("/history", s.handleHistory)
		api.GET("/status", s.handleStatus)
	}
	s.engine.GET("/chart", s.handleChart)
	s.engine.GET("/ws", s.handleWebSocket)
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Hub returns the websocket hub.
func (s *Server) Hub() *Hub {
	return s.hub
}

// Run polls at interval and serves on addr until ctx is cancelled.
func (s *Server) Run(ctx context.Context, addr string, interval time.Duration) error {
	if err := s.poller.Start(interval); err != nil {
		return errors.WrapWithCode(err, errors.ErrServe,
			"Can't start polling",
			"Use a positive --interval like 5s")
	}
	defer s.poller.Stop()
	defer s.hub.Stop()

	go s.relay(ctx)

	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("serving %s on http://%s", s.poller.Session().Endpoint, addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			return errors.WrapWithCode(err, errors.ErrServe,
				"Server stopped unexpectedly",
				"Check that "+addr+" is free, or pick another address with --addr")
		}
		return nil
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return errors.WrapWithCode(err, errors.ErrServe, "Graceful shutdown failed", "")
		}
		return nil
	}
}

// relay forwards scheduled poll results to websocket clients.
func (s *Server) relay(ctx context.Context) {
	results := s.poller.Results()
	for {
		select {
		case <-ctx.Done():
			return
		case res := <-results:
			s.Publish(res)
		}
	}
}

// Publish broadcasts one poll result. Stale results are not sent.
func (s *Server) Publish(res monitor.Result) {
	if res.Stale {
		return
	}

	f := Frame{Seq: res.Seq, Timestamp: time.Now()}
	if res.Err != nil {
		f.Type = FrameError
		f.Error = res.Err.Error()
	} else {
		data, err := json.Marshal(res.Display)
		if err != nil {
			s.log.Error("encode display: %v", err)
			return
		}
		f.Type = FrameDisplay
		f.Data = data
	}

	if err := s.hub.Broadcast(f); err != nil {
		s.log.Error("broadcast %s frame: %v", f.Type, err)
	}
}

func (s *Server) handleWebSocket(c *gin.Context) {
	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.log.Warn("websocket upgrade: %v", err)
		return
	}

	id := c.ClientIP() + "-" + uuid.NewString()[:8]
	if !s.hub.attach(id, ws) {
		ws.Close()
	}
}
