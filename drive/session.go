package main

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"mpc-drive-core/utils"
)

// Session runs the per-connection receive/dispatch loop. One goroutine reads
// frames into a bounded inbox that drops its oldest entry on overflow, so
// the dispatch loop always acts on the freshest telemetry and never builds a
// backlog. The dispatch loop plans, paces to the actuation deadline, and
// replies.
type Session struct {
	id      string
	conn    *websocket.Conn
	log     *utils.Logger
	planner *Planner
	period  time.Duration
	inbox   chan []byte
	mirror  *utils.ActuationMirror
}

func NewSession(conn *websocket.Conn, planner *Planner, cfg Config, log *utils.Logger, mirror *utils.ActuationMirror) *Session {
	return &Session{
		id:      uuid.NewString(),
		conn:    conn,
		log:     log,
		planner: planner,
		period:  cfg.Period(),
		inbox:   make(chan []byte, cfg.InboxCapacity),
		mirror:  mirror,
	}
}

// Run services the connection until it closes or ctx is canceled.
func (s *Session) Run(ctx context.Context) {
	s.log.Info("session %s: connected", s.id)
	defer s.log.Info("session %s: closed", s.id)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			_, msg, err := s.conn.ReadMessage()
			if err != nil {
				return
			}
			s.enqueue(msg)
		}
	}()

	for {
		select {
		case <-ctx.Done():
			_ = s.conn.Close()
			<-done
			return
		case <-done:
			return
		case msg := <-s.inbox:
			s.dispatch(ctx, msg)
		}
	}
}

// enqueue adds msg to the inbox, discarding the oldest entry when full.
func (s *Session) enqueue(msg []byte) {
	for {
		select {
		case s.inbox <- msg:
			return
		default:
		}
		select {
		case <-s.inbox:
			s.log.Debug("session %s: inbox full, dropped stale frame", s.id)
		default:
		}
	}
}

func (s *Session) dispatch(ctx context.Context, msg []byte) {
	start := time.Now()

	kind, tel, err := ParseMessage(msg)
	if err != nil {
		s.log.Debug("session %s: dropped frame: %v", s.id, err)
		return
	}

	switch kind {
	case MsgManual:
		time.Sleep(s.period)
		s.send(ManualAck)

	case MsgTelemetry:
		res, err := s.planner.Cycle(*tel)
		if err != nil {
			s.log.Debug("session %s: dropped cycle: %v", s.id, err)
			return
		}
		reply, err := EncodeSteer(res)
		if err != nil {
			s.log.Error("session %s: encode reply: %v", s.id, err)
			return
		}
		s.log.Trace("session %s: steer=%.4f throttle=%.4f value=%.2f",
			s.id, res.Act.Steering, res.Act.Throttle, res.Value)

		if wait := paceDelay(time.Since(start), s.period); wait > 0 {
			time.Sleep(wait)
		}
		s.send(reply)

		if s.mirror != nil {
			if err := s.mirror.Mirror(ctx, res.Act.Steering, res.Act.Throttle); err != nil {
				s.log.Warn("session %s: CAN mirror: %v", s.id, err)
			}
		}
	}
}

// paceDelay is how long to suspend before replying so responses never outrun
// the simulator's cadence. Zero once processing has already overrun the
// period; the reply is then sent immediately, never dropped.
func paceDelay(elapsed, period time.Duration) time.Duration {
	if wait := period - elapsed; wait > 0 {
		return wait
	}
	return 0
}

func (s *Session) send(frame []byte) {
	if err := s.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
		s.log.Warn("session %s: write: %v", s.id, err)
	}
}
