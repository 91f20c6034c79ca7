package tracker

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/agentstation/sheetsync/pkg/filter"
)

// fingerprintVersion is the domain prefix hashed ahead of the row data.
// Bumping it invalidates every stored fingerprint at once.
const fingerprintVersion = "sheetsync/fingerprint/v1"

// Fingerprint is a deterministic digest over an ordered filtered row set.
// It serializes as a hex string and round-trips losslessly through JSON.
// The empty string means "no fingerprint recorded", which is distinct from
// the fingerprint of an empty row set.
type Fingerprint string

// ComputeFingerprint digests the filtered rows in row-major cell order.
// Each cell is length-prefixed so cell and row boundaries are unambiguous:
// ("a","bc") and ("ab","c") hash differently. The digest is order-sensitive:
// reordering rows changes it. An empty row set produces a distinct
// well-known fingerprint rather than the zero value.
func ComputeFingerprint(rows []filter.Row) Fingerprint {
	h := sha256.New()
	fmt.Fprintf(h, "%s\n", fingerprintVersion)

	for _, row := range rows {
		fmt.Fprintf(h, "r%d:", len(row.Cells))
		for _, cell := range row.Cells {
			fmt.Fprintf(h, "%d:%s", len(cell), cell)
		}
		h.Write([]byte{'\n'})
	}

	return Fingerprint(hex.EncodeToString(h.Sum(nil)))
}

// EmptyFingerprint returns the well-known fingerprint of an empty filtered set.
func EmptyFingerprint() Fingerprint {
	return ComputeFingerprint(nil)
}

// IsZero reports whether no fingerprint has been recorded.
func (f Fingerprint) IsZero() bool {
	return f == ""
}

// String returns the hex representation.
func (f Fingerprint) String() string {
	return string(f)
}
