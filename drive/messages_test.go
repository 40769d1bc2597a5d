package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

const telemetryFrame = `42["telemetry",{"ptsx":[5,30],"ptsy":[0,0],"x":1.5,"y":-2,"speed":12.5,"psi":0.3,"psi_unity":4.2,"steering_angle":-0.05,"throttle":0.7}]`

func TestParseTelemetry(t *testing.T) {
	kind, tel, err := ParseMessage([]byte(telemetryFrame))
	require.NoError(t, err)
	require.Equal(t, MsgTelemetry, kind)

	want := Telemetry{
		PtsX:          []float64{5, 30},
		PtsY:          []float64{0, 0},
		X:             1.5,
		Y:             -2,
		Speed:         12.5,
		Psi:           0.3,
		PsiUnity:      4.2,
		SteeringAngle: -0.05,
		Throttle:      0.7,
	}
	if diff := cmp.Diff(want, *tel); diff != "" {
		t.Fatalf("telemetry mismatch (-want +got):\n%s", diff)
	}
}

func TestParseManualEvent(t *testing.T) {
	kind, tel, err := ParseMessage([]byte(`42["manual",{}]`))
	require.NoError(t, err)
	require.Equal(t, MsgManual, kind)
	require.Nil(t, tel)
}

func TestParseTelemetryWithoutPayloadIsManual(t *testing.T) {
	for _, frame := range []string{
		`42["telemetry"]`,
		`42["telemetry",null]`,
	} {
		kind, tel, err := ParseMessage([]byte(frame))
		require.NoError(t, err, frame)
		require.Equal(t, MsgManual, kind, frame)
		require.Nil(t, tel, frame)
	}
}

func TestParseDropsUndecodableFrames(t *testing.T) {
	for _, frame := range []string{
		``,
		`not a frame`,
		`41["telemetry",{}]`,
		`42{"not":"an array"}`,
		`42[]`,
		`42[7,{}]`,
		// fields missing
		`42["telemetry",{"ptsx":[1,2],"ptsy":[0,0]}]`,
		// wrong field type
		`42["telemetry",{"ptsx":[1,2],"ptsy":[0,0],"x":"oops","y":0,"speed":0,"psi":0,"psi_unity":0,"steering_angle":0,"throttle":0}]`,
		// waypoint count mismatch
		`42["telemetry",{"ptsx":[1,2],"ptsy":[0],"x":0,"y":0,"speed":0,"psi":0,"psi_unity":0,"steering_angle":0,"throttle":0}]`,
	} {
		_, _, err := ParseMessage([]byte(frame))
		require.Error(t, err, frame)
	}
}

func TestEncodeSteer(t *testing.T) {
	res := PlanResult{
		Act:   Actuation{Steering: -0.12, Throttle: 0.85},
		PathX: []float64{0.5, 1.1},
		PathY: []float64{0, 0.02},
		WayX:  []float64{5, 30},
		WayY:  []float64{0, 0},
	}
	frame, err := EncodeSteer(res)
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(frame, []byte(`42["steer",`)), string(frame))

	var env []json.RawMessage
	require.NoError(t, json.Unmarshal(frame[2:], &env))
	require.Len(t, env, 2)

	var payload steerPayload
	require.NoError(t, json.Unmarshal(env[1], &payload))
	if diff := cmp.Diff(steerPayload{
		SteeringAngle: -0.12,
		Throttle:      0.85,
		NextX:         []float64{5, 30},
		NextY:         []float64{0, 0},
		MpcX:          []float64{0.5, 1.1},
		MpcY:          []float64{0, 0.02},
	}, payload); diff != "" {
		t.Fatalf("payload mismatch (-want +got):\n%s", diff)
	}
}

func TestEncodeSteerEmptySlices(t *testing.T) {
	frame, err := EncodeSteer(PlanResult{})
	require.NoError(t, err)
	require.NotContains(t, string(frame), "null")
}

func TestManualAckLiteral(t *testing.T) {
	require.Equal(t, `42["manual",{}]`, string(ManualAck))
}
