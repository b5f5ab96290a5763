package offersummary

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// Fingerprint identifies a build: the same input and supplier defaults always hash
// to the same value. Map keys are serialized in sorted order, so catalog order does not matter.
func (b *Builder) Fingerprint(in BuildInput) (string, error) {
	payload, err := json.Marshal(struct {
		Input    BuildInput `json:"input"`
		Defaults PartyInfo  `json:"defaults"`
	}{Input: in, Defaults: b.supplierDefaults})
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:]), nil
}
