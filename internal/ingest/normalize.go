package ingest

import (
	"strings"
	"time"

	"github.com/passosperdidos/parlamento-backend/internal/feed"
)

// Column caps. Feed values longer than these are truncated silently
// before any identity lookup so that lookup and storage agree.
const (
	maxExternalID     = 1000
	maxTitle          = 5000
	maxType           = 255
	maxTypeCode       = 10
	maxNumber         = 20
	maxSelection      = 10
	maxLegNumber      = 50
	maxURL            = 500
	maxName           = 255
	maxParty          = 100
	maxAuthorType     = 50
	maxIDCadastro     = 50
	maxPhaseName      = 1000
	maxPhaseCode      = 50
	maxEventID        = 50
	maxAttachmentName = 500
	maxPubLabel       = 100
	maxPubNumber      = 50
	maxCommissionName = 500
	maxCommissionNum  = 50
	maxDocTitle       = 500
	maxDocType        = 100
	maxEntity         = 255
	maxResult         = 100
	maxVoteResult     = 50
	maxMeeting        = 50
	maxFlag           = 50
	maxDebatePhase    = 100
	maxClock          = 10
	maxRole           = 255
	maxCountry        = 100
)

var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02T15:04:05",
	"02-01-2006",
}

// ParseDate turns a feed date into a time or nil. Unknown layouts and
// the feed's zero-date sentinel both come back nil; dates never fail a
// record.
func ParseDate(raw string) *time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.HasPrefix(raw, "0001-01-01") {
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t
		}
	}
	return nil
}

func Truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}

// clip truncates a feed scalar and maps emptiness to nil.
func clip(t feed.Text, max int) *string {
	s := Truncate(strings.TrimSpace(t.String()), max)
	if s == "" {
		return nil
	}
	return &s
}

func clipStr(t feed.Text, max int) string {
	return Truncate(strings.TrimSpace(t.String()), max)
}
