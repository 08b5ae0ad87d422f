/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package feed

import (
	"log/slog"
	"regexp"
	"strings"

	"github.com/SchwabischesBauernbrot/firefish/storagemodels"
)

// compiledMutePattern is one ready-to-apply word-mute rule. Either keywords
// or re is set, never both.
type compiledMutePattern struct {
	keywords []string // lowercased; all must be present
	re       *regexp.Regexp
}

// compileMutePatterns prepares configured patterns for matching. Malformed
// regex patterns are logged and skipped, never fatal to the request.
func compileMutePatterns(patterns []storagemodels.MutePattern, logger *slog.Logger) []compiledMutePattern {
	compiled := make([]compiledMutePattern, 0, len(patterns))
	for _, p := range patterns {
		if p.Regex != "" {
			re, err := compileSlashRegex(p.Regex)
			if err != nil {
				logger.Warn("skipping malformed mute pattern", "pattern", p.Regex, "error", err)
				continue
			}
			compiled = append(compiled, compiledMutePattern{re: re})
			continue
		}
		if len(p.Keywords) == 0 {
			continue
		}
		keywords := make([]string, len(p.Keywords))
		for i, kw := range p.Keywords {
			keywords[i] = strings.ToLower(kw)
		}
		compiled = append(compiled, compiledMutePattern{keywords: keywords})
	}
	return compiled
}

// compileSlashRegex parses the "/body/flags" encoded form. Supported flags
// are i, m and s; others are ignored.
func compileSlashRegex(encoded string) (*regexp.Regexp, error) {
	body := encoded
	var flags string
	if strings.HasPrefix(encoded, "/") {
		if end := strings.LastIndex(encoded, "/"); end > 0 {
			body = encoded[1:end]
			flags = encoded[end+1:]
		}
	}

	var prefix string
	for _, f := range flags {
		switch f {
		case 'i', 'm', 's':
			prefix += string(f)
		}
	}
	if prefix != "" {
		body = "(?" + prefix + ")" + body
	}
	return regexp.Compile(body)
}

// matchesMutePatterns reports whether any configured pattern matches the
// text. A literal pattern matches only when every keyword is a
// case-insensitive substring.
func matchesMutePatterns(patterns []compiledMutePattern, text string) bool {
	if text == "" {
		return false
	}
	lower := strings.ToLower(text)
	for _, p := range patterns {
		if p.re != nil {
			if p.re.MatchString(text) {
				return true
			}
			continue
		}
		all := true
		for _, kw := range p.keywords {
			if !strings.Contains(lower, kw) {
				all = false
				break
			}
		}
		if all {
			return true
		}
	}
	return false
}

// muteTargetText concatenates every text field word mutes scan: the note
// body, content warning, attachment captions, and the denormalized
// reply/renote equivalents.
func muteTargetText(n *storagemodels.NoteRow) string {
	parts := []string{n.Text, n.CW, n.ReplyText, n.ReplyCW, n.RenoteText, n.RenoteCW}
	for _, f := range n.Files {
		parts = append(parts, f.Comment)
	}
	nonEmpty := parts[:0]
	for _, p := range parts {
		if p != "" {
			nonEmpty = append(nonEmpty, p)
		}
	}
	return strings.Join(nonEmpty, " ")
}
