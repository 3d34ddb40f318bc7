package aqt

import "strings"

// Quote renders a qualified identifier from its segments using the
// configured quoting scheme. A trailing "*" is detached first and
// reattached unquoted, so ("me", "*") renders as `me`.* rather than a
// quoted asterisk; a name of just "*" stays a bare *.
func (s *State) Quote(segments []string) string {
	cfg := &s.r.cfg

	star := false
	if len(segments) > 0 && segments[len(segments)-1] == "*" {
		star = true
		segments = segments[:len(segments)-1]
	}
	if len(segments) == 0 {
		if star {
			return "*"
		}
		return ""
	}

	var name string
	if cfg.Quote {
		quoted := make([]string, 0, len(segments))
		for _, seg := range segments {
			quoted = append(quoted, quoteSegment(cfg, seg))
		}
		name = strings.Join(quoted, cfg.NameSep)
	} else {
		name = strings.Join(segments, cfg.NameSep)
	}

	if star {
		name += cfg.NameSep + "*"
	}
	return name
}

// quoteSegment wraps one segment, escaping embedded close quotes by
// doubling them so crafted identifiers cannot break out of the quoting.
func quoteSegment(cfg *Config, seg string) string {
	if cfg.QuoteClose != "" {
		seg = strings.ReplaceAll(seg, cfg.QuoteClose, cfg.QuoteClose+cfg.QuoteClose)
	}
	return cfg.QuoteOpen + seg + cfg.QuoteClose
}
