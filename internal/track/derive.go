package track

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/benhalverson/rc-coach/internal/centerline"
	"github.com/benhalverson/rc-coach/internal/limits"
)

// Derived bundles everything recomputed from the document's editable
// geometry. It is a pure function of the centerline, the zones and the
// sample count; callers replace it wholesale after each edit instead
// of mutating it.
type Derived struct {
	Params centerline.Params
	Limits limits.TrackLimits
}

// Recompute derives the centerline parameterization and track limits
// from the document's current geometry. Call it after every mutation;
// it reads the document but never writes it. Fails with
// centerline.ErrTooFewPoints when the document has no usable
// centerline.
func Recompute(d *Document, numSamples int) (Derived, error) {
	params, err := centerline.Parameterize(d.CenterlinePoints())
	if err != nil {
		return Derived{}, err
	}

	return Derived{
		Params: params,
		Limits: limits.Extract(params, d.EngineZones(), numSamples),
	}, nil
}

// Memo caches Recompute results keyed by a content hash of the
// centerline, the zones and the sample count. Callers own their Memo;
// there is no package-level instance, and a caller that prefers to
// recompute on every edit can simply not use one.
type Memo struct {
	entries map[string]Derived
}

// NewMemo creates an empty cache.
func NewMemo() *Memo {
	return &Memo{entries: make(map[string]Derived)}
}

// Recompute returns the cached Derived for the document's current
// geometry, deriving and storing it on a miss.
func (m *Memo) Recompute(d *Document, numSamples int) (Derived, error) {
	key, err := contentKey(d, numSamples)
	if err != nil {
		return Derived{}, err
	}

	if derived, ok := m.entries[key]; ok {
		return derived, nil
	}

	derived, err := Recompute(d, numSamples)
	if err != nil {
		return Derived{}, err
	}
	m.entries[key] = derived
	return derived, nil
}

// Len returns the number of cached entries.
func (m *Memo) Len() int {
	return len(m.entries)
}

// contentKey hashes the inputs Recompute actually depends on.
func contentKey(d *Document, numSamples int) (string, error) {
	h := sha256.New()
	enc := json.NewEncoder(h)
	if err := enc.Encode(d.Centerline); err != nil {
		return "", err
	}
	if err := enc.Encode(d.Zones); err != nil {
		return "", err
	}
	fmt.Fprintf(h, "%d", numSamples)
	return hex.EncodeToString(h.Sum(nil)), nil
}
