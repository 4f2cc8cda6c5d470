// Package token decodes Glyph token envelopes embedded in unlocking scripts.
package token

import (
	"bytes"
	"errors"
	"fmt"
	"reflect"

	"github.com/btcsuite/btcd/txscript"
	"github.com/fxamacker/cbor/v2"
)

// decMode forces string-keyed maps so metadata round-trips into JSONB.
var decMode = func() cbor.DecMode {
	dm, err := cbor.DecOptions{
		DefaultMapType: reflect.TypeOf(map[string]any(nil)),
	}.DecMode()
	if err != nil {
		panic(err)
	}
	return dm
}()

// magic prefixes the envelope payload inside a script push.
var magic = []byte("gly")

// ErrNoEnvelope reports that the script carries no Glyph envelope. Plain
// spends are the normal case, so callers usually just skip on it.
var ErrNoEnvelope = errors.New("no token envelope")

// MalformedEnvelopeError reports a payload behind a valid magic prefix that
// failed to decode. Non-fatal: callers log it and treat the input as a
// plain transfer.
type MalformedEnvelopeError struct {
	Cause error
}

func (e *MalformedEnvelopeError) Error() string {
	return fmt.Sprintf("malformed token envelope: %v", e.Cause)
}

func (e *MalformedEnvelopeError) Unwrap() error { return e.Cause }

// Envelope is a decoded Glyph genesis or transfer declaration. Type is an
// open string enum: unknown values decode without any decoder change, the
// raw ref and metadata are carried through as-is.
type Envelope struct {
	Ref        string
	Type       string
	Metadata   map[string]any
	Output     uint32
	Supply     *uint64
	Collection string
}

// payload is the self-describing CBOR map behind the magic prefix.
type payload struct {
	Ref        string         `cbor:"ref"`
	Type       string         `cbor:"type"`
	Metadata   map[string]any `cbor:"meta"`
	Output     uint32         `cbor:"out"`
	Supply     *uint64        `cbor:"supply"`
	Collection string         `cbor:"coll"`
}

// Decode scans an unlocking script for a pushed envelope. Returns
// ErrNoEnvelope when no push starts with the magic prefix, and a
// MalformedEnvelopeError when the payload behind a valid prefix is bad.
func Decode(script []byte) (*Envelope, error) {
	if len(script) == 0 {
		return nil, ErrNoEnvelope
	}

	pushes, err := txscript.PushedData(script)
	if err != nil {
		// Unparseable script: nothing token-shaped here.
		return nil, ErrNoEnvelope
	}

	for _, push := range pushes {
		if !bytes.HasPrefix(push, magic) {
			continue
		}
		return decodePayload(push[len(magic):])
	}
	return nil, ErrNoEnvelope
}

func decodePayload(raw []byte) (*Envelope, error) {
	var p payload
	if err := decMode.Unmarshal(raw, &p); err != nil {
		return nil, &MalformedEnvelopeError{Cause: err}
	}
	if p.Ref == "" {
		return nil, &MalformedEnvelopeError{Cause: errors.New("missing ref")}
	}
	if p.Type == "" {
		return nil, &MalformedEnvelopeError{Cause: errors.New("missing type")}
	}

	return &Envelope{
		Ref:        p.Ref,
		Type:       p.Type,
		Metadata:   p.Metadata,
		Output:     p.Output,
		Supply:     p.Supply,
		Collection: p.Collection,
	}, nil
}
