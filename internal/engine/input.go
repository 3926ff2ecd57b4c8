package engine

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	"github.com/specialistvlad/formtree/internal/expr"
	"github.com/specialistvlad/formtree/internal/formdata"
)

// Input is one immutable snapshot of everything expressions can read.
type Input struct {
	// Version identifies the snapshot. Concurrent snapshots with the same
	// version are generated once. Empty disables the sharing.
	Version  string
	Data     *formdata.Snapshot
	Instance *expr.Instance
	Settings map[string]string
	// Texts holds the text resources of Language by key.
	Texts    map[string]string
	Language string
}

func (in Input) textLookup() expr.TextLookup {
	if in.Texts == nil {
		return nil
	}
	return func(key string) (string, bool) {
		v, ok := in.Texts[key]
		return v, ok
	}
}

// scope fingerprints the inputs that are not form data. Results resolved under
// one scope are never reused under another.
func (in Input) scope() (string, error) {
	b, err := json.Marshal(struct {
		Instance *expr.Instance    `json:"instance"`
		Settings map[string]string `json:"settings"`
		Texts    map[string]string `json:"texts"`
		Language string            `json:"language"`
	}{in.Instance, in.Settings, in.Texts, in.Language})
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:]), nil
}
