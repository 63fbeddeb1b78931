// Package snapshot stores WholeHouseInput values in a versioned envelope so
// records written under an older input shape stay readable.
package snapshot

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Simplici0/homecost/internal/estimate"
	"github.com/Simplici0/homecost/internal/pricing"
)

// CurrentVersion is the version Encode writes.
const CurrentVersion = 2

// ErrUnknownVersion is returned for an envelope version with no decoder.
var ErrUnknownVersion = errors.New("unknown snapshot version")

// Envelope is the persisted form: an explicit version tag over raw data.
type Envelope struct {
	Version int             `json:"version"`
	Data    json.RawMessage `json:"data"`
}

// V1 is the legacy input shape: a single finish, a boolean pool and no location.
type V1 struct {
	Sqft      float64 `json:"sqft"`
	Stories   int     `json:"stories"`
	Bedrooms  int     `json:"bedrooms"`
	Bathrooms float64 `json:"bathrooms"`
	Finish    string  `json:"finish"`
	Style     string  `json:"style"`
	Pool      bool    `json:"pool"`
	Elevated  bool    `json:"elevated"`
	Generator bool    `json:"generator"`
}

// MigrateV1 converts a legacy snapshot to the current input. A legacy pool
// becomes the standard tier and the location is left to the default.
func MigrateV1(v V1) estimate.WholeHouseInput {
	in := estimate.WholeHouseInput{
		SquareFeet:  v.Sqft,
		Stories:     v.Stories,
		Bedrooms:    v.Bedrooms,
		Bathrooms:   v.Bathrooms,
		FinishLevel: pricing.FinishLevel(v.Finish),
		Style:       estimate.Style(v.Style),
		Elevated:    v.Elevated,
		Generator:   v.Generator,
		Pool:        estimate.PoolNone,
	}
	if in.Stories == 0 {
		in.Stories = 1
	}
	if v.Pool {
		in.Pool = estimate.PoolStandard
	}
	return in
}

// Encode wraps in in a current-version envelope.
func Encode(in estimate.WholeHouseInput) ([]byte, error) {
	data, err := json.Marshal(in)
	if err != nil {
		return nil, fmt.Errorf("marshal input: %w", err)
	}
	return json.Marshal(Envelope{Version: CurrentVersion, Data: data})
}

// Decode reads an envelope of any known version and returns the current input.
func Decode(raw []byte) (estimate.WholeHouseInput, int, error) {
	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return estimate.WholeHouseInput{}, 0, fmt.Errorf("decode snapshot envelope: %w", err)
	}

	switch env.Version {
	case 1:
		var v V1
		if err := json.Unmarshal(env.Data, &v); err != nil {
			return estimate.WholeHouseInput{}, env.Version, fmt.Errorf("decode v1 snapshot: %w", err)
		}
		return MigrateV1(v), env.Version, nil
	case CurrentVersion:
		var in estimate.WholeHouseInput
		if err := json.Unmarshal(env.Data, &in); err != nil {
			return estimate.WholeHouseInput{}, env.Version, fmt.Errorf("decode v2 snapshot: %w", err)
		}
		return in, env.Version, nil
	default:
		return estimate.WholeHouseInput{}, env.Version, fmt.Errorf("%w: %d", ErrUnknownVersion, env.Version)
	}
}
