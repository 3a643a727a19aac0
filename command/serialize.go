package command

import (
	"encoding/json"
	"fmt"
)

// SchemaVersion is the current envelope schema. Older envelopes are lifted
// forward by Migrate before reconstruction.
const SchemaVersion = 2

// Envelope is the persisted wire form of one command. Payload is fully
// JSON-safe; Type is a stable tag never derived from a Go type name.
type Envelope struct {
	Type      string          `json:"type"`
	Payload   json.RawMessage `json:"payload"`
	Timestamp int64           `json:"timestamp"`
	Version   int             `json:"version"`
}

// Serialize projects a command onto its wire envelope. The payload is
// validated for JSON safety on every call, so a non-serializable value is
// caught the moment the command is authored, not months later when a
// history fails to load.
func Serialize(cmd Command) (Envelope, error) {
	tag, payload, err := payloadOf(cmd)
	if err != nil {
		return Envelope{}, err
	}
	if err := ValidateJSONSafe(payload); err != nil {
		return Envelope{}, fmt.Errorf("%s: %w", tag, err)
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return Envelope{}, fmt.Errorf("%s: %w", tag, err)
	}
	return Envelope{
		Type:      tag,
		Payload:   raw,
		Timestamp: cmd.CreatedAt(),
		Version:   SchemaVersion,
	}, nil
}

// payloadOf pattern-matches the closed variant set onto (tag, payload).
func payloadOf(cmd Command) (string, interface{}, error) {
	switch c := cmd.(type) {
	case *AddPages:
		return TypeAddPages, c.payload(), nil
	case *DeletePages:
		return TypeDeletePages, c.payload(), nil
	case *DuplicatePages:
		return TypeDuplicatePages, c.payload(), nil
	case *ReorderPages:
		return TypeReorderPages, c.payload(), nil
	case *RotatePages:
		return TypeRotatePages, c.payload(), nil
	case *ResizePages:
		return TypeResizePages, c.payload(), nil
	case *InsertDivider:
		return TypeInsertDivider, c.payload(), nil
	case *RemoveSource:
		return TypeRemoveSource, c.payload(), nil
	case *AddRedaction:
		return TypeAddRedaction, c.payload(), nil
	case *UpdateRedaction:
		return TypeUpdateRedaction, c.payload(), nil
	case *DeleteRedaction:
		return TypeDeleteRedaction, c.payload(), nil
	case *UpdateOutline:
		return TypeUpdateOutline, c.payload(), nil
	case *Batch:
		p, err := c.payload()
		if err != nil {
			return "", nil, fmt.Errorf("batch %s: %w", c.ID(), err)
		}
		return TypeBatch, p, nil
	default:
		return "", nil, fmt.Errorf("serialize: unknown command kind %T", cmd)
	}
}
