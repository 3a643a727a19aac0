package document

import (
	"encoding/json"
	"fmt"
)

// MarshalPageEntry encodes one page list entry. The two concrete shapes
// share one object layout; dividers are flagged with "isDivider": true.
func MarshalPageEntry(e PageEntry) ([]byte, error) {
	switch v := e.(type) {
	case *DividerReference:
		return json.Marshal(struct {
			ID        string `json:"id"`
			IsDivider bool   `json:"isDivider"`
		}{v.ID, true})
	case *PageReference:
		return json.Marshal(v)
	default:
		return nil, fmt.Errorf("unknown entry kind %T", e)
	}
}

// UnmarshalPageEntry decodes one page list entry from its JSON form.
func UnmarshalPageEntry(data []byte) (PageEntry, error) {
	var probe struct {
		ID        string `json:"id"`
		IsDivider bool   `json:"isDivider"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("page entry: %w", err)
	}
	if probe.ID == "" {
		return nil, fmt.Errorf("page entry: missing id")
	}
	if probe.IsDivider {
		return &DividerReference{ID: probe.ID}, nil
	}
	var ref PageReference
	if err := json.Unmarshal(data, &ref); err != nil {
		return nil, fmt.Errorf("page entry %s: %w", probe.ID, err)
	}
	return &ref, nil
}

// EntryList is a JSON-round-trippable page entry slice.
type EntryList []PageEntry

func (l EntryList) MarshalJSON() ([]byte, error) {
	raw := make([]json.RawMessage, len(l))
	for i, e := range l {
		b, err := MarshalPageEntry(e)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		raw[i] = b
	}
	return json.Marshal(raw)
}

func (l *EntryList) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := make([]PageEntry, len(raw))
	for i, r := range raw {
		e, err := UnmarshalPageEntry(r)
		if err != nil {
			return fmt.Errorf("entry %d: %w", i, err)
		}
		out[i] = e
	}
	*l = out
	return nil
}

type wireSnapshot struct {
	Entry json.RawMessage `json:"entry"`
	Index int             `json:"index"`
}

func (s EntrySnapshot) MarshalJSON() ([]byte, error) {
	b, err := MarshalPageEntry(s.Entry)
	if err != nil {
		return nil, err
	}
	return json.Marshal(wireSnapshot{Entry: b, Index: s.Index})
}

func (s *EntrySnapshot) UnmarshalJSON(data []byte) error {
	var w wireSnapshot
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	e, err := UnmarshalPageEntry(w.Entry)
	if err != nil {
		return err
	}
	s.Entry = e
	s.Index = w.Index
	return nil
}
