package marketplace

import (
	"bytes"
	"encoding/json"
)

// Envelope is the uniform shape every list response is reduced to.
type Envelope struct {
	Results []json.RawMessage
	Count   int
}

// decodeEnvelope resolves the three envelope shapes the backend is known
// to return: {"results": [...], "count": N}, a bare array, and
// {"data": [...]}. Anything unrecognized degrades to an empty envelope
// instead of an error so that a malformed response never breaks a list.
func decodeEnvelope(body []byte) Envelope {

	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return Envelope{Results: []json.RawMessage{}}
	}

	var bare []json.RawMessage
	if err := json.Unmarshal(body, &bare); err == nil {
		return Envelope{Results: bare, Count: len(bare)}
	}

	var wrapped struct {
		Results []json.RawMessage `json:"results"`
		Data    []json.RawMessage `json:"data"`
		Count   *int              `json:"count"`
	}
	if err := json.Unmarshal(body, &wrapped); err != nil {
		return Envelope{Results: []json.RawMessage{}}
	}

	if wrapped.Results != nil {
		count := len(wrapped.Results)
		if wrapped.Count != nil {
			count = *wrapped.Count
		}
		return Envelope{Results: wrapped.Results, Count: count}
	}

	if wrapped.Data != nil {
		return Envelope{Results: wrapped.Data, Count: len(wrapped.Data)}
	}

	return Envelope{Results: []json.RawMessage{}}
}
