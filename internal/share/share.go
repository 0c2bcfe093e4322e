// Package share embeds encoded grids in links and extracts them again.
package share

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Param is the query parameter carrying the encoded grid.
const Param = "data"

var ErrNoData = errors.New("link carries no grid data")

// Link returns base with the blob set as its data parameter. Other query
// parameters of base are kept.
func Link(base, blob string) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("parse base url: %w", err)
	}
	q := u.Query()
	q.Set(Param, blob)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// Extract returns the blob from a link produced by Link. Text that is not
// a link is returned as is, so a bare blob pasted by the user also works.
func Extract(text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", ErrNoData
	}
	if !strings.Contains(text, "?") && !strings.Contains(text, "://") {
		return text, nil
	}
	u, err := url.Parse(text)
	if err != nil {
		return "", fmt.Errorf("parse link: %w", err)
	}
	blob := u.Query().Get(Param)
	if blob == "" {
		return "", ErrNoData
	}
	return blob, nil
}
