// File: game/messages.go
package game

import (
	"encoding/json"
	"fmt"

	"github.com/lguibr/striker/utils"
)

// MessageType tags the websocket envelope exchanged with remote agents.
type MessageType string

const (
	MsgConfig   MessageType = "config"   // server -> client: match configuration
	MsgAssign   MessageType = "assign"   // server -> client: seat assignment
	MsgState    MessageType = "state"    // server -> client: snapshot for this tick
	MsgAction   MessageType = "action"   // client -> server: action request
	MsgGameOver MessageType = "gameOver" // server -> client: final result
	MsgError    MessageType = "error"    // either direction
)

// Envelope is the single wire frame: a type tag plus the typed payload.
type Envelope struct {
	Type MessageType     `json:"type"`
	Data json.RawMessage `json:"data"`
}

// ErrorPayload carries a human-readable failure description.
type ErrorPayload struct {
	Message string `json:"message"`
}

func encode(msgType MessageType, payload any) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", msgType, err)
	}
	return json.Marshal(Envelope{Type: msgType, Data: data})
}

func EncodeConfig(cfg utils.Config) ([]byte, error) { return encode(MsgConfig, cfg) }

func EncodeAssign(id PlayerID) ([]byte, error) { return encode(MsgAssign, id) }

func EncodeState(state MatchState) ([]byte, error) { return encode(MsgState, state) }

func EncodeAction(action Action) ([]byte, error) { return encode(MsgAction, action) }

func EncodeGameOver(result Result) ([]byte, error) { return encode(MsgGameOver, result) }

func EncodeError(message string) ([]byte, error) {
	return encode(MsgError, ErrorPayload{Message: message})
}

// DecodeEnvelope splits a frame into its type tag and raw payload.
func DecodeEnvelope(raw []byte) (Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return Envelope{}, fmt.Errorf("decode envelope: %w", err)
	}
	if env.Type == "" {
		return Envelope{}, fmt.Errorf("decode envelope: missing type tag")
	}
	return env, nil
}

// DecodeAction parses the payload of a MsgAction envelope.
func DecodeAction(data json.RawMessage) (Action, error) {
	var action Action
	if err := json.Unmarshal(data, &action); err != nil {
		return Action{}, fmt.Errorf("decode action: %w", err)
	}
	return action, nil
}
