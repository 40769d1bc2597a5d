package utils

import (
	"context"
	"encoding/binary"
	"fmt"
	"math"
	"net"

	"go.einride.tech/can"
	"go.einride.tech/can/pkg/socketcan"
)

// CANWriter is the transmit side of a CAN interface.
type CANWriter interface {
	WriteFrame(ctx context.Context, frame can.Frame) error
	Close() error
}

// ActuationMirror re-encodes accepted actuation commands onto a CAN bus so a
// hardware-in-the-loop bench can observe them alongside the wire replies.
type ActuationMirror struct {
	id     uint32
	writer CANWriter
}

// NewActuationMirror opens a SocketCAN interface for mirroring. id is the
// frame ID used for every transmitted command.
func NewActuationMirror(ctx context.Context, iface string, id uint32) (*ActuationMirror, error) {
	conn, err := socketcan.DialContext(ctx, "can", iface)
	if err != nil {
		return nil, fmt.Errorf("socketcan dial: %w", err)
	}
	return &ActuationMirror{
		id:     id,
		writer: &socketCANWriter{conn: conn, tx: socketcan.NewTransmitter(conn)},
	}, nil
}

// NewActuationMirrorWith wires a mirror over an existing writer.
func NewActuationMirrorWith(id uint32, w CANWriter) *ActuationMirror {
	return &ActuationMirror{id: id, writer: w}
}

// Mirror transmits one actuation frame.
func (m *ActuationMirror) Mirror(ctx context.Context, steering, throttle float64) error {
	return m.writer.WriteFrame(ctx, EncodeActuationFrame(m.id, steering, throttle))
}

func (m *ActuationMirror) Close() error {
	return m.writer.Close()
}

// EncodeActuationFrame packs steering and throttle as little-endian int16
// with factor 0.001, both clamped to [-1, 1].
func EncodeActuationFrame(id uint32, steering, throttle float64) can.Frame {
	frame := can.Frame{ID: id, Length: 4}
	binary.LittleEndian.PutUint16(frame.Data[0:2], uint16(scaleActuation(steering)))
	binary.LittleEndian.PutUint16(frame.Data[2:4], uint16(scaleActuation(throttle)))
	return frame
}

func scaleActuation(v float64) int16 {
	if v > 1 {
		v = 1
	} else if v < -1 {
		v = -1
	}
	return int16(math.Round(v / 0.001))
}

type socketCANWriter struct {
	conn net.Conn
	tx   *socketcan.Transmitter
}

func (w *socketCANWriter) WriteFrame(ctx context.Context, frame can.Frame) error {
	return w.tx.TransmitFrame(ctx, frame)
}

func (w *socketCANWriter) Close() error {
	if w.conn != nil {
		return w.conn.Close()
	}
	return nil
}
