package sports

import (
	"fmt"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/rs/zerolog/log"

	"sportiq/internal/common"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Shape identifies which response envelope a payload used.
type Shape int

const (
	// ShapeUnrecognized covers payloads with neither known envelope key.
	ShapeUnrecognized Shape = iota
	// ShapeA is {"response": [...]} with nested teams.home.name / teams.away.name.
	ShapeA
	// ShapeB is {"results": [...]} with flat home / away fields.
	ShapeB
)

func (s Shape) String() string {
	switch s {
	case ShapeA:
		return "response"
	case ShapeB:
		return "results"
	default:
		return "unrecognized"
	}
}

// Match is a normalized two-team record.
type Match struct {
	HomeTeam string `json:"home_team"`
	AwayTeam string `json:"away_team"`
}

// Payload is the decoded form of one response body.
type Payload struct {
	Shape   Shape
	Items   int
	Matches []Match
	Skipped int
}


// DecodePayload classifies the envelope once and extracts matches from it.
// Only a body that is not valid JSON returns an error; an unknown envelope
// yields ShapeUnrecognized with no matches.
func DecodePayload(body []byte) (Payload, error) {
	var top map[string]jsoniter.RawMessage
	if err := json.Unmarshal(body, &top); err != nil {
		return Payload{}, fmt.Errorf("decode payload: %w", err)
	}

	if raw, ok := top["response"]; ok {
		items, ok := envelopeItems(raw)
		if !ok {
			log.Debug().Msg("response envelope is not an array")
			return Payload{Shape: ShapeUnrecognized}, nil
		}
		return decodeShapeA(items), nil
	}

	if raw, ok := top["results"]; ok {
		items, ok := envelopeItems(raw)
		if !ok {
			log.Debug().Msg("results envelope is not an array")
			return Payload{Shape: ShapeUnrecognized}, nil
		}
		return decodeShapeB(items), nil
	}

	return Payload{Shape: ShapeUnrecognized}, nil
}

// envelopeItems splits an envelope value into its items. Only a JSON array
// qualifies; null and every other value are rejected.
func envelopeItems(raw jsoniter.RawMessage) ([]jsoniter.RawMessage, bool) {
	trimmed := strings.TrimSpace(string(raw))
	if !strings.HasPrefix(trimmed, "[") {
		return nil, false
	}
	var items []jsoniter.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, false
	}
	return items, true
}

// lookupString follows keys through nested objects, matching each key
// exactly, and returns the string at the end of the path.
func lookupString(raw jsoniter.RawMessage, keys ...string) (string, bool) {
	for _, key := range keys {
		var obj map[string]jsoniter.RawMessage
		if err := json.Unmarshal(raw, &obj); err != nil || obj == nil {
			return "", false
		}
		next, ok := obj[key]
		if !ok {
			return "", false
		}
		raw = next
	}

	if strings.TrimSpace(string(raw)) == "null" {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}

func decodeShapeA(items []jsoniter.RawMessage) Payload {
	p := Payload{Shape: ShapeA, Items: len(items), Matches: make([]Match, 0, len(items))}

	for i, raw := range items {
		home, okHome := lookupString(raw, "teams", "home", "name")
		away, okAway := lookupString(raw, "teams", "away", "name")
		if !okHome || !okAway {
			p.Skipped++
			log.Debug().Int("index", i).Msg("skipping item without team names")
			continue
		}
		p.Matches = append(p.Matches, Match{HomeTeam: home, AwayTeam: away})
	}

	return p
}

func decodeShapeB(items []jsoniter.RawMessage) Payload {
	p := Payload{Shape: ShapeB, Items: len(items), Matches: make([]Match, 0, len(items))}

	for _, raw := range items {
		var fields map[string]jsoniter.RawMessage
		// A non-object item still counts as one match of placeholders.
		_ = json.Unmarshal(raw, &fields)
		p.Matches = append(p.Matches, Match{
			HomeTeam: flatField(fields, "home"),
			AwayTeam: flatField(fields, "away"),
		})
	}

	return p
}

// flatField renders a shape B field as text: strings verbatim, absent or
// null as the placeholder, anything else as compact JSON.
func flatField(fields map[string]jsoniter.RawMessage, key string) string {
	raw, ok := fields[key]
	if !ok {
		return common.UnknownTeam
	}
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		return common.UnknownTeam
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}

	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return trimmed
	}
	compact, err := json.Marshal(v)
	if err != nil {
		return trimmed
	}
	return string(compact)
}
