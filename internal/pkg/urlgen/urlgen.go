// Package urlgen builds tokenized links for client-facing proposal and
// quote pages.
package urlgen

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"time"
)

const (
	defaultTokenBytes = 32
	defaultExpiryDays = 30
)

// SecureToken returns n random bytes hex-encoded. n <= 0 falls back to
// the default length.
func SecureToken(n int) (string, error) {
	if n <= 0 {
		n = defaultTokenBytes
	}
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate secure token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// ExpiryDate returns the expiry instant days from now. days <= 0 falls
// back to the default window.
func ExpiryDate(days int) time.Time {
	if days <= 0 {
		days = defaultExpiryDays
	}
	return time.Now().AddDate(0, 0, days)
}

// IsExpired reports whether a token expiry has passed. A zero expiry
// counts as expired.
func IsExpired(expiry time.Time) bool {
	if expiry.IsZero() {
		return true
	}
	return time.Now().After(expiry)
}

// AccessLink is a generated tokenized URL for one resource.
type AccessLink struct {
	URL       string
	Token     string
	ExpiresAt time.Time
	ID        string
}

// ProposalURL generates a tokenized link to a proposal page. The token is
// returned to the caller; persisting it for later validation is not
// handled here.
func ProposalURL(proposalID string, expiryDays int, baseURL string) (*AccessLink, error) {
	return link("proposals", proposalID, expiryDays, baseURL)
}

// QuoteURL generates a tokenized link to a quote page.
func QuoteURL(quoteID string, expiryDays int, baseURL string) (*AccessLink, error) {
	return link("quotes", quoteID, expiryDays, baseURL)
}

func link(kind, id string, expiryDays int, baseURL string) (*AccessLink, error) {
	token, err := SecureToken(defaultTokenBytes)
	if err != nil {
		return nil, err
	}
	return &AccessLink{
		URL:       fmt.Sprintf("%s/%s/%s?token=%s", strings.TrimRight(baseURL, "/"), kind, id, token),
		Token:     token,
		ExpiresAt: ExpiryDate(expiryDays),
		ID:        id,
	}, nil
}
