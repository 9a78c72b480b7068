package ingest

import (
	"regexp"
	"strings"
)

// Breakdown is the structured form of a vote's free-text detail field.
type Breakdown struct {
	AFavor    []string `json:"a_favor"`
	Contra    []string `json:"contra"`
	Abstencao []string `json:"abstencao"`
}

var (
	voteSectionRe = regexp.MustCompile(`(?i)<br\s*/?>`)
	voteItalicRe  = regexp.MustCompile(`(?is)<i>(.*?)</i>`)
)

// ParseVoteDetails extracts per-party positions from the marked-up
// detail string the feed ships, e.g.
// "A Favor: <I>PS</I>, <I>PSD</I><BR>Contra: <I>CH</I>".
// Unrecognised sections are ignored; the result always carries the
// three keys even when empty.
func ParseVoteDetails(details string) Breakdown {
	bd := Breakdown{
		AFavor:    []string{},
		Contra:    []string{},
		Abstencao: []string{},
	}
	for _, section := range voteSectionRe.Split(details, -1) {
		idx := strings.Index(section, ":")
		if idx < 0 {
			continue
		}
		label := strings.ToLower(section[:idx])
		parties := extractParties(section[idx+1:])
		switch {
		case strings.Contains(label, "favor"):
			bd.AFavor = append(bd.AFavor, parties...)
		case strings.Contains(label, "contra"):
			bd.Contra = append(bd.Contra, parties...)
		case strings.Contains(label, "absten"):
			bd.Abstencao = append(bd.Abstencao, parties...)
		}
	}
	return bd
}

func extractParties(body string) []string {
	parties := []string{}
	for _, m := range voteItalicRe.FindAllStringSubmatch(body, -1) {
		name := strings.TrimSpace(m[1])
		if name != "" {
			parties = append(parties, name)
		}
	}
	return parties
}
