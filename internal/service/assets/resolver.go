// Package assets resolves logical media names into fetchable URLs.
// Handlers only ever request a name; storage layout and signing stay here.
package assets

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/joemocode/cakewalk-skill/internal/model/request"
)

// Resolver maps a logical media name to a URL a device can fetch.
type Resolver interface {
	MediaURL(name string) string
}

// SignedResolver produces time-limited signed URLs under a base media URL.
type SignedResolver struct {
	baseURL string
	key     []byte
	ttl     time.Duration
	now     func() time.Time
}

// NewSignedResolver builds a resolver rooted at baseURL. With an empty key
// URLs are returned unsigned.
func NewSignedResolver(baseURL, key string, ttl time.Duration) *SignedResolver {
	return &SignedResolver{
		baseURL: strings.TrimRight(baseURL, "/"),
		key:     []byte(key),
		ttl:     ttl,
		now:     time.Now,
	}
}

// MediaURL returns the (optionally signed) URL for a logical media name.
func (r *SignedResolver) MediaURL(name string) string {
	raw := r.baseURL + "/" + strings.TrimLeft(name, "/")
	if len(r.key) == 0 {
		return raw
	}

	expires := r.now().Add(r.ttl).Unix()
	mac := hmac.New(sha256.New, r.key)
	fmt.Fprintf(mac, "%s\n%d", name, expires)

	q := url.Values{}
	q.Set("expires", strconv.FormatInt(expires, 10))
	q.Set("signature", hex.EncodeToString(mac.Sum(nil)))
	return raw + "?" + q.Encode()
}

// StaticResolver joins names onto a fixed base URL with no signing.
type StaticResolver string

func (r StaticResolver) MediaURL(name string) string {
	return strings.TrimRight(string(r), "/") + "/" + strings.TrimLeft(name, "/")
}

// LogoForViewport picks the large or small logo depending on screen width.
func LogoForViewport(r Resolver, vp *request.Viewport) string {
	if vp != nil && vp.PixelWidth > 480 {
		return r.MediaURL("media/full_icon_512.png")
	}
	return r.MediaURL("media/full_icon_108.png")
}

// BackgroundForViewport resolves a resolution-specific background image,
// e.g. "garlands_1024x600.png".
func BackgroundForViewport(r Resolver, name string, vp *request.Viewport) string {
	resolution := "480x480"
	if vp != nil {
		resolution = vp.Resolution()
	}
	return r.MediaURL("media/" + name + "_" + resolution + ".png")
}

// CardImage is the image attached to display cards.
func CardImage(r Resolver) string {
	return r.MediaURL("media/garlands_480x480.png")
}
