package report

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/brenonevs/EyeTrackerDataAnalyzer-Heatmap/internal/gaze"
)

// DomainLog prefixes log digests. The version suffix allows a future change
// of encoding without colliding with old digests.
const DomainLog = "gazeclean/log/v1"

// hashWithDomain computes SHA256(domain + 0x00 + data).
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// Digest returns a content digest of log. Each record is encoded as an array
// of [name, value] pairs in attribute order.
func Digest(log gaze.Log) (string, error) {
	records := make([]any, len(log))
	for i, rec := range log {
		attrs := make([]any, len(rec.Attrs))
		for j, a := range rec.Attrs {
			attrs[j] = []string{a.Name, a.Value}
		}
		records[i] = attrs
	}

	canonical, err := MarshalCanonical(records)
	if err != nil {
		return "", fmt.Errorf("digest: %w", err)
	}
	return hashWithDomain(DomainLog, canonical), nil
}
