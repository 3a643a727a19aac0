package command

import (
	"encoding/json"
	"fmt"
)

// migration lifts a payload map from one schema version to the next.
// Migrations run in order on load, before reconstruction, and fill in
// defaults for fields introduced later.
type migration func(tag string, payload map[string]interface{})

var migrations = map[int]migration{
	// v1 → v2: rotate deltas were stored under "angle"; add-pages envelopes
	// predate the addedSource ownership flag and are assumed to own their
	// source registration (the only behavior v1 had).
	1: func(tag string, p map[string]interface{}) {
		switch tag {
		case TypeRotatePages:
			if v, ok := p["angle"]; ok {
				p["degrees"] = v
				delete(p, "angle")
			}
		case TypeAddPages:
			if _, ok := p["addedSource"]; !ok {
				p["addedSource"] = true
			}
		}
	},
}

// Migrate lifts an envelope to the current schema version. Envelopes already
// at (or beyond) the current version pass through untouched.
func Migrate(env Envelope) (Envelope, error) {
	if env.Version >= SchemaVersion {
		return env, nil
	}
	from := env.Version
	if from <= 0 {
		from = 1
	}
	var payload map[string]interface{}
	if err := json.Unmarshal(env.Payload, &payload); err != nil {
		return Envelope{}, fmt.Errorf("migrate %s v%d: %w", env.Type, env.Version, err)
	}
	for v := from; v < SchemaVersion; v++ {
		m, ok := migrations[v]
		if !ok {
			return Envelope{}, fmt.Errorf("migrate %s: no migration from v%d", env.Type, v)
		}
		m(env.Type, payload)
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return Envelope{}, fmt.Errorf("migrate %s: %w", env.Type, err)
	}
	env.Payload = raw
	env.Version = SchemaVersion
	return env, nil
}
