package gameserver

import (
	"crypto/sha1" //nolint:gosec // the legacy wire contract mandates SHA-1
	"encoding/hex"
	"fmt"
	"strings"
)

// PasswordKey is the fixed mangling key the legacy game server expects.
// Frozen: any change breaks every deployed game client.
const PasswordKey = "0123456789ABCDEF0123456789ABCDEF"

// tokenPermutation reorders the 40 hex digits of the SHA-1 digest into the
// token layout the legacy server verifies against. Frozen wire contract.
var tokenPermutation = [40]int{
	30, 26, 24, 39, 2, 15, 1, 4, 5, 18, 27, 38, 10, 19, 33, 17, 7, 36, 34, 31,
	8, 14, 23, 21, 29, 3, 32, 25, 37, 20, 28, 11, 22, 16, 35, 0, 6, 9, 13, 12,
}

// EncodePassword derives the 40-character uppercase-hex token transmitted to
// the legacy game server in place of the plaintext password.
//
// The interleaving, space stripping, and digit permutation are dictated by
// the server and must stay bit-exact. Deterministic: equal inputs produce
// equal outputs.
func EncodePassword(password, key string) (string, error) {
	if password == "" {
		return "", fmt.Errorf("password must not be empty")
	}

	s := string(password[0]) + key[:10] + password[1:] + key[10:]
	s = strings.ReplaceAll(s, " ", "")

	sum := sha1.Sum([]byte(s)) //nolint:gosec // legacy wire contract
	digest := strings.ToUpper(hex.EncodeToString(sum[:]))

	var token [40]byte
	for i, idx := range tokenPermutation {
		token[i] = digest[idx]
	}
	return string(token[:]), nil
}
