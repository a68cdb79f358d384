package device

import (
	"crypto/md5"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
)

// digestAuthorization answers an HTTP digest challenge (RFC 7616,
// MD5 with qop=auth, which is what PrusaLink firmware speaks).
func digestAuthorization(challenge, username, password, method, uri string) (string, error) {
	params, err := parseChallenge(challenge)
	if err != nil {
		return "", err
	}

	realm := params["realm"]
	nonce := params["nonce"]
	if nonce == "" {
		return "", fmt.Errorf("digest challenge missing nonce: %q", challenge)
	}

	cnonceBytes := make([]byte, 8)
	if _, err := rand.Read(cnonceBytes); err != nil {
		return "", err
	}
	cnonce := hex.EncodeToString(cnonceBytes)

	ha1 := md5hex(username + ":" + realm + ":" + password)
	ha2 := md5hex(method + ":" + uri)

	var response string
	qop := params["qop"]
	if strings.Contains(qop, "auth") {
		qop = "auth"
		response = md5hex(ha1 + ":" + nonce + ":00000001:" + cnonce + ":" + qop + ":" + ha2)
	} else {
		qop = ""
		response = md5hex(ha1 + ":" + nonce + ":" + ha2)
	}

	var b strings.Builder
	fmt.Fprintf(&b, `Digest username=%q, realm=%q, nonce=%q, uri=%q, response=%q`,
		username, realm, nonce, uri, response)
	if qop != "" {
		fmt.Fprintf(&b, `, qop=%s, nc=00000001, cnonce=%q`, qop, cnonce)
	}
	if opaque := params["opaque"]; opaque != "" {
		fmt.Fprintf(&b, `, opaque=%q`, opaque)
	}
	return b.String(), nil
}

func parseChallenge(challenge string) (map[string]string, error) {
	const prefix = "Digest "
	if !strings.HasPrefix(challenge, prefix) {
		return nil, fmt.Errorf("unsupported auth challenge: %q", challenge)
	}

	params := map[string]string{}
	for _, part := range strings.Split(challenge[len(prefix):], ",") {
		key, value, found := strings.Cut(strings.TrimSpace(part), "=")
		if !found {
			continue
		}
		params[key] = strings.Trim(value, `"`)
	}
	return params, nil
}

func md5hex(s string) string {
	sum := md5.Sum([]byte(s))
	return hex.EncodeToString(sum[:])
}
