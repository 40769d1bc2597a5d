package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// The simulator speaks socket.io-style text frames: every event is the
// literal prefix "42" followed by a two-element JSON array of event name and
// payload.
const eventPrefix = "42"

// ManualAck is the fixed reply to manual/no-op messages.
var ManualAck = []byte(`42["manual",{}]`)

// MsgKind classifies one inbound frame.
type MsgKind int

const (
	// MsgManual covers reset/manual-mode events and telemetry frames with a
	// missing payload; they get the fixed acknowledgement.
	MsgManual MsgKind = iota
	// MsgTelemetry carries one full telemetry snapshot.
	MsgTelemetry
)

// Telemetry is one decoded snapshot. Consumed immediately, never retained.
type Telemetry struct {
	PtsX          []float64
	PtsY          []float64
	X             float64
	Y             float64
	Speed         float64
	Psi           float64
	PsiUnity      float64
	SteeringAngle float64
	Throttle      float64
}

// telemetryWire enforces the strict schema: every field must be present with
// the right type or the frame is dropped.
type telemetryWire struct {
	PtsX          *[]float64 `json:"ptsx"`
	PtsY          *[]float64 `json:"ptsy"`
	X             *float64   `json:"x"`
	Y             *float64   `json:"y"`
	Speed         *float64   `json:"speed"`
	Psi           *float64   `json:"psi"`
	PsiUnity      *float64   `json:"psi_unity"`
	SteeringAngle *float64   `json:"steering_angle"`
	Throttle      *float64   `json:"throttle"`
}

// ParseMessage decodes one inbound frame. A non-nil error means the frame is
// undecodable and must be dropped without a reply.
func ParseMessage(raw []byte) (MsgKind, *Telemetry, error) {
	msg := bytes.TrimSpace(raw)
	if !bytes.HasPrefix(msg, []byte(eventPrefix)) {
		return 0, nil, fmt.Errorf("not an event frame: %q", preview(msg))
	}

	var env []json.RawMessage
	if err := json.Unmarshal(msg[len(eventPrefix):], &env); err != nil {
		return 0, nil, fmt.Errorf("decode envelope: %w", err)
	}
	if len(env) == 0 {
		return 0, nil, errors.New("empty event envelope")
	}

	var event string
	if err := json.Unmarshal(env[0], &event); err != nil {
		return 0, nil, fmt.Errorf("decode event name: %w", err)
	}
	if event != "telemetry" {
		return MsgManual, nil, nil
	}
	if len(env) < 2 || string(bytes.TrimSpace(env[1])) == "null" {
		// telemetry tag without data is a no-op message
		return MsgManual, nil, nil
	}

	var wire telemetryWire
	if err := json.Unmarshal(env[1], &wire); err != nil {
		return 0, nil, fmt.Errorf("decode telemetry: %w", err)
	}
	tel, err := wire.validate()
	if err != nil {
		return 0, nil, err
	}
	return MsgTelemetry, tel, nil
}

func (w *telemetryWire) validate() (*Telemetry, error) {
	required := []struct {
		name string
		ok   bool
	}{
		{"ptsx", w.PtsX != nil},
		{"ptsy", w.PtsY != nil},
		{"x", w.X != nil},
		{"y", w.Y != nil},
		{"speed", w.Speed != nil},
		{"psi", w.Psi != nil},
		{"psi_unity", w.PsiUnity != nil},
		{"steering_angle", w.SteeringAngle != nil},
		{"throttle", w.Throttle != nil},
	}
	for _, f := range required {
		if !f.ok {
			return nil, fmt.Errorf("telemetry missing field %q", f.name)
		}
	}
	if len(*w.PtsX) != len(*w.PtsY) {
		return nil, fmt.Errorf("telemetry waypoint count mismatch: %d vs %d", len(*w.PtsX), len(*w.PtsY))
	}
	return &Telemetry{
		PtsX:          *w.PtsX,
		PtsY:          *w.PtsY,
		X:             *w.X,
		Y:             *w.Y,
		Speed:         *w.Speed,
		Psi:           *w.Psi,
		PsiUnity:      *w.PsiUnity,
		SteeringAngle: *w.SteeringAngle,
		Throttle:      *w.Throttle,
	}, nil
}

type steerPayload struct {
	SteeringAngle float64   `json:"steering_angle"`
	Throttle      float64   `json:"throttle"`
	NextX         []float64 `json:"next_x"`
	NextY         []float64 `json:"next_y"`
	MpcX          []float64 `json:"mpc_x"`
	MpcY          []float64 `json:"mpc_y"`
}

// EncodeSteer frames one actuation reply: the command plus the vehicle-frame
// reference line and predicted trajectory for display.
func EncodeSteer(res PlanResult) ([]byte, error) {
	payload := steerPayload{
		SteeringAngle: res.Act.Steering,
		Throttle:      res.Act.Throttle,
		NextX:         emptyNotNil(res.WayX),
		NextY:         emptyNotNil(res.WayY),
		MpcX:          emptyNotNil(res.PathX),
		MpcY:          emptyNotNil(res.PathY),
	}
	body, err := json.Marshal([]any{"steer", payload})
	if err != nil {
		return nil, fmt.Errorf("marshal steer: %w", err)
	}
	return append([]byte(eventPrefix), body...), nil
}

// emptyNotNil keeps empty slices rendering as [] rather than null.
func emptyNotNil(v []float64) []float64 {
	if v == nil {
		return []float64{}
	}
	return v
}

func preview(b []byte) string {
	if len(b) > 32 {
		b = b[:32]
	}
	return string(b)
}
