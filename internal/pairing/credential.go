package pairing

import (
	cryptorand "crypto/rand"
	"fmt"
	"math/rand/v2"
)

// alphabet is the character set for generated names and passwords. It is
// strictly alphanumeric, so a credential can never smuggle the ';', ':' or
// '=' delimiters into the QR payload.
const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// Generated credential lengths. These are policy constants matching what the
// Android wireless-debugging pairing dialog expects, not structural limits.
const (
	NameLength     = 5
	PasswordLength = 6
)

// Credential identifies a single pairing session. The name is advertised to
// the device inside the QR payload and the password is the pairing code.
// A Credential is immutable; regeneration produces a new value rather than
// mutating an existing one.
type Credential struct {
	Name     string
	Password string
}

// Generate produces a fresh random credential from a locally-owned random
// source. Each call seeds its own generator, so there is no shared mutable
// state between generations.
func Generate() Credential {
	return Credential{
		Name:     randText(NameLength),
		Password: randText(PasswordLength),
	}
}

// QRPayload derives the string consumed by Android's wireless-debugging QR
// scanner. The schema is fixed: WIFI:T:ADB;S:<name>;P:<password>;;
func (c Credential) QRPayload() string {
	return fmt.Sprintf("WIFI:T:ADB;S:%s;P:%s;;", c.Name, c.Password)
}

// PairHint returns the manual-pairing command line shown alongside the QR
// code, with the address left for the user to fill in.
func (c Credential) PairHint() string {
	return fmt.Sprintf("adb pair IP:PORT %s", c.Password)
}

func randText(n int) string {
	var seed [32]byte
	// crypto/rand.Read never fails; it panics internally on a broken
	// entropy source.
	_, _ = cryptorand.Read(seed[:])
	rng := rand.New(rand.NewChaCha8(seed))

	b := make([]byte, n)
	for i := range b {
		b[i] = alphabet[rng.IntN(len(alphabet))]
	}
	return string(b)
}
