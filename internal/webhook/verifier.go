package webhook

import (
	"crypto/subtle"
	"net/textproto"
)

// Verifier is a pluggable per-provider signature predicate:
// verify(rawBody, headers) -> bool. More than one provider can be
// registered, so the predicate is looked up by name rather than hard-coded
// into the handler.
type Verifier func(rawBody []byte, headers map[string]string) bool

// Registry maps provider name to its Verifier.
type Registry map[string]Verifier

// NewFlutterwaveVerifier returns a Verifier for Flutterwave's scheme: a
// direct secret-hash comparison against the verif-hash or x-flw-signature
// header, not an HMAC of the body — Flutterwave's webhooks carry a shared
// secret echoed back verbatim rather than signing the payload.
//
// Header lookups go through textproto.CanonicalMIMEHeaderKey because the
// headers map is populated from http.Header, which net/http always stores
// under its canonical form ("Verif-Hash", "X-Flw-Signature") regardless of
// the case Flutterwave sent the header in on the wire.
func NewFlutterwaveVerifier(secretHash string) Verifier {
	return func(_ []byte, headers map[string]string) bool {
		received := headers[textproto.CanonicalMIMEHeaderKey("verif-hash")]
		if received == "" {
			received = headers[textproto.CanonicalMIMEHeaderKey("x-flw-signature")]
		}
		if received == "" || secretHash == "" {
			return false
		}
		return subtle.ConstantTimeCompare([]byte(received), []byte(secretHash)) == 1
	}
}
