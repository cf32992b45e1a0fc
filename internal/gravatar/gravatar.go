// Package gravatar builds avatar URLs for profiles without an uploaded picture.
package gravatar

import (
	"crypto/sha256"
	"encoding/hex"
	"net/url"
	"strconv"
	"strings"
)

const baseURL = "https://www.gravatar.com/avatar/"

// Options controls the generated image.
type Options struct {
	// DefaultImage is the fallback when the address has no Gravatar ("d" parameter).
	DefaultImage string
	// Rating is the maximum allowed rating ("r" parameter).
	Rating string
	// Size is the edge length in pixels ("s" parameter). Zero omits it.
	Size int
}

// URL returns the Gravatar URL for email, or "" when email is blank.
func URL(email string, opts Options) string {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return ""
	}

	sum := sha256.Sum256([]byte(email))

	params := url.Values{}
	if opts.DefaultImage != "" {
		params.Set("d", opts.DefaultImage)
	}
	if opts.Rating != "" {
		params.Set("r", opts.Rating)
	}
	if opts.Size > 0 {
		params.Set("s", strconv.Itoa(opts.Size))
	}

	u := baseURL + hex.EncodeToString(sum[:])
	if len(params) > 0 {
		u += "?" + params.Encode()
	}
	return u
}

var (
	defaultImages = map[string]bool{
		"404": true, "mp": true, "identicon": true, "monsterid": true,
		"wavatar": true, "retro": true, "robohash": true, "blank": true,
	}
	ratings = map[string]bool{"g": true, "pg": true, "r": true, "x": true}
)

func IsValidDefaultImage(s string) bool { return defaultImages[s] }

func IsValidRating(s string) bool { return ratings[s] }

// IsValidSize reports whether size is within Gravatar's 1-2048 pixel range.
func IsValidSize(size int) bool { return size >= 1 && size <= 2048 }
