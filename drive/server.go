package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"mpc-drive-core/utils"
)

// Server accepts simulator connections and runs one Session per connection.
// Sessions share the Planner, which is stateless, and nothing else.
type Server struct {
	cfg      Config
	log      *utils.Logger
	planner  *Planner
	mirror   *utils.ActuationMirror
	upgrader websocket.Upgrader
}

func NewServer(cfg Config, log *utils.Logger, mirror *utils.ActuationMirror) *Server {
	return &Server{
		cfg:     cfg,
		log:     log,
		planner: NewPlanner(cfg, log),
		mirror:  mirror,
		upgrader: websocket.Upgrader{
			// the simulator connects from localhost without an Origin header
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

// ListenAndServe blocks until ctx is canceled or the listener fails.
func (srv *Server) ListenAndServe(ctx context.Context) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/", srv.handleConn(ctx))

	httpSrv := &http.Server{Addr: srv.cfg.Addr, Handler: mux}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = httpSrv.Shutdown(shutdownCtx)
	}()

	srv.log.Info("listening on %s (period=%dms horizon=%d max_speed=%.0f)",
		srv.cfg.Addr, srv.cfg.ActuationPeriodMS, srv.cfg.Horizon, srv.cfg.MaxSpeed)

	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("listen: %w", err)
	}
	return nil
}

func (srv *Server) handleConn(ctx context.Context) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := srv.upgrader.Upgrade(w, r, nil)
		if err != nil {
			srv.log.Warn("upgrade failed: %v", err)
			return
		}
		defer conn.Close()
		NewSession(conn, srv.planner, srv.cfg, srv.log, srv.mirror).Run(ctx)
	}
}
