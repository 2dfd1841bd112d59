// Package idgen produces the human-readable identifiers used across the
// platform: opaque record ids, DNE tracking numbers, DNX customer numbers,
// SKUs and manifest numbers. Uniqueness of the random formats is
// probabilistic, which is acceptable for a single-process store; customer
// numbers are the exception and retry against the existing collection.
package idgen

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strconv"
	"strings"
	"time"
)

const base36Upper = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// customerNumberAttempts bounds the regenerate-on-collision loop so a
// pathological collection state cannot spin forever.
const customerNumberAttempts = 64

// ID returns an opaque record id: "id_" + unix millis + "_" + 9 base36 chars.
func ID() string {
	return fmt.Sprintf("id_%d_%s", time.Now().UnixMilli(), randomBase36(9, false))
}

// TrackingNumber returns a public tracking number: the DNE prefix, the
// current unix millis in upper-case base 36, and a 5-char random suffix.
func TrackingNumber() string {
	ts := strings.ToUpper(strconv.FormatInt(time.Now().UnixMilli(), 36))
	return "DNE" + ts + randomBase36(5, true)
}

// CustomerNumber returns a DNX-NNNNNN account number derived from the current
// user count. taken reports whether a candidate already exists; on collision
// the sequence is advanced, falling back to random candidates once the
// attempt budget is spent. Every candidate, random ones included, is checked
// against taken.
func CustomerNumber(userCount int, taken func(string) bool) string {
	for i := 0; i < customerNumberAttempts; i++ {
		candidate := fmt.Sprintf("DNX-%06d", userCount+100001+i)
		if taken == nil || !taken(candidate) {
			return candidate
		}
	}
	for {
		candidate := fmt.Sprintf("DNX-%06d", randomInt(1000000))
		if taken == nil || !taken(candidate) {
			return candidate
		}
	}
}

// SKU returns a generated stock keeping unit: SKU-<millis>-<3 digits>.
func SKU() string {
	return fmt.Sprintf("SKU-%d-%03d", time.Now().UnixMilli(), randomInt(1000))
}

// ManifestNumber returns MNF-<yyyymmdd>-<4 digits>.
func ManifestNumber() string {
	return fmt.Sprintf("MNF-%s-%04d", time.Now().UTC().Format("20060102"), randomInt(10000))
}

// randomBase36 returns n random base36 characters, lower-cased unless upper.
func randomBase36(n int, upper bool) string {
	var b strings.Builder
	b.Grow(n)
	for i := 0; i < n; i++ {
		b.WriteByte(base36Upper[randomInt(36)])
	}
	if upper {
		return b.String()
	}
	return strings.ToLower(b.String())
}

// randomInt returns a uniform value in [0, max), falling back to a
// time-derived value if the system randomness source fails.
func randomInt(max int64) int64 {
	n, err := rand.Int(rand.Reader, big.NewInt(max))
	if err != nil {
		return time.Now().UnixNano() % max
	}
	return n.Int64()
}
