package hashkey

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
	"sort"
	"strconv"
)

// Fingerprint returns a short hex fingerprint of an item set and the
// parameters that shape its split.
//
// Ids are sorted first, so the fingerprint does not depend on input order.
// It hashes with SHA-256 and truncates to 10 bytes (20 hex chars).
func Fingerprint(ids []string, params ...string) string {
	sorted := append([]string(nil), ids...)
	sort.Strings(sorted)

	h := sha256.New()
	for _, p := range params {
		writeField(h, p)
	}
	for _, id := range sorted {
		writeField(h, id)
	}
	sum := h.Sum(nil)
	return hex.EncodeToString(sum[:10])
}

// writeField length-prefixes s so adjacent fields cannot run together.
func writeField(w io.Writer, s string) {
	_, _ = w.Write([]byte(strconv.Itoa(len(s))))
	_, _ = w.Write([]byte{':'})
	_, _ = w.Write([]byte(s))
}
