package verifier

import (
	"errors"
	"fmt"
)

const clientScriptURL = "https://www.google.com/recaptcha/api.js"

// ErrInvalidSiteKey is returned by HTML when the Verifier was built
// without a usable site key. This is a configuration error, distinct
// from the verification outcome codes.
var ErrInvalidSiteKey = errors.New("invalid site key")

// ScriptTag returns the script tag loading the challenge widget's
// client script.
func ScriptTag() string {
	return fmt.Sprintf(`<script src=%q async defer></script>`, clientScriptURL)
}

// HTML returns the widget container div carrying the site key. With
// includeScript the script tag is prepended, for pages that have not
// loaded the client script elsewhere.
func (v *Verifier) HTML(includeScript bool) (string, error) {
	if v.siteKey == "" {
		return "", ErrInvalidSiteKey
	}
	div := fmt.Sprintf(`<div class="g-recaptcha" data-sitekey=%q></div>`, v.siteKey)
	if includeScript {
		return ScriptTag() + "\n" + div, nil
	}
	return div, nil
}
