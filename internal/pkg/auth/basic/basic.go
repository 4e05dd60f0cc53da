/*
Package basic decodes and encodes HTTP Basic credentials carried in the
Authorization header.
*/
package basic

import (
	"encoding/base64"
	"errors"
	"strings"
	"unicode/utf8"
)

const (
	// Prefix is the case-sensitive scheme prefix a Basic Authorization header must start with.
	Prefix = "Basic "

	// Challenge is the WWW-Authenticate value sent with 401 responses.
	Challenge = `Basic realm="useracct"`
)

var (
	// ErrMissingScheme means the header is empty or does not use the Basic scheme.
	ErrMissingScheme = errors.New("basic: missing or unsupported scheme")

	// ErrMalformed means the credential after the scheme is not base64 encoded
	// UTF-8 text of the form "id:secret".
	ErrMalformed = errors.New("basic: malformed credential")
)

// ParseHeader extracts the user id and secret from an Authorization header value.
// The decoded text is split at its first colon, so the secret may itself contain colons.
func ParseHeader(header string) (userID, secret string, err error) {
	encoded, ok := strings.CutPrefix(header, Prefix)
	if !ok {
		return "", "", ErrMissingScheme
	}

	decoded, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", "", ErrMalformed
	}
	if !utf8.Valid(decoded) {
		return "", "", ErrMalformed
	}

	userID, secret, found := strings.Cut(string(decoded), ":")
	if !found {
		return "", "", ErrMalformed
	}
	return userID, secret, nil
}

// Header builds the Authorization header value for the given credential.
func Header(userID, secret string) string {
	return Prefix + base64.StdEncoding.EncodeToString([]byte(userID+":"+secret))
}
