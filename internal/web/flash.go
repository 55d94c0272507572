package web

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"strings"
)

const flashCookie = "recetario_flash"

// Flash is a one-shot notification carried across a redirect in a
// signed cookie.
type Flash struct {
	Level   string `json:"level"` // success, warning, danger, info
	Message string `json:"message"`
}

// flashCodec signs and verifies flash cookies with the configured
// secret key. Tampered cookies are silently dropped.
type flashCodec struct {
	secret []byte
}

func newFlashCodec(secret string) *flashCodec {
	return &flashCodec{secret: []byte(secret)}
}

func (c *flashCodec) sign(payload []byte) string {
	mac := hmac.New(sha256.New, c.secret)
	mac.Write(payload)
	return base64.RawURLEncoding.EncodeToString(payload) + "." + hex.EncodeToString(mac.Sum(nil))
}

func (c *flashCodec) verify(value string) ([]byte, bool) {
	encoded, sig, ok := strings.Cut(value, ".")
	if !ok {
		return nil, false
	}
	payload, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return nil, false
	}
	want, err := hex.DecodeString(sig)
	if err != nil {
		return nil, false
	}
	mac := hmac.New(sha256.New, c.secret)
	mac.Write(payload)
	if !hmac.Equal(mac.Sum(nil), want) {
		return nil, false
	}
	return payload, true
}

// setFlash queues a flash message for the next rendered page.
func (c *flashCodec) setFlash(w http.ResponseWriter, f Flash) {
	payload, err := json.Marshal(f)
	if err != nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookie,
		Value:    c.sign(payload),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// popFlash reads and clears the pending flash message, if any.
func (c *flashCodec) popFlash(w http.ResponseWriter, r *http.Request) *Flash {
	cookie, err := r.Cookie(flashCookie)
	if err != nil {
		return nil
	}

	http.SetCookie(w, &http.Cookie{
		Name:     flashCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	payload, ok := c.verify(cookie.Value)
	if !ok {
		return nil
	}

	var f Flash
	if err := json.Unmarshal(payload, &f); err != nil {
		return nil
	}
	return &f
}
