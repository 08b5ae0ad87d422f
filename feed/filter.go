/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package feed

import (
	"log/slog"

	"github.com/SchwabischesBauernbrot/firefish/storagemodels"
)

// FilterContext carries the viewer identity, the joined predicate sets, and
// the caller intent flags one request's filter chain reads. It is built once
// per request, before the scanner starts, and is never mutated afterwards.
type FilterContext struct {
	// Viewer is the requesting user id; empty for anonymous requests.
	Viewer string

	Following        map[string]struct{}
	ChannelFollowing map[string]struct{}
	MutedUsers       map[string]struct{}
	MutedInstances   map[string]struct{}
	// Blocked is the union of "blocked by viewer" and "blocks viewer".
	Blocked     map[string]struct{}
	RenoteMuted map[string]struct{}

	MutePatterns []compiledMutePattern

	WithReplies           bool
	IncludeMyRenotes      bool
	IncludeRenotedMyNotes bool
	IncludeLocalRenotes   bool
	WithFiles             bool

	Logger *slog.Logger
}

// FilterFunc is one predicate-application step. Steps are pure with respect
// to their inputs; all cache reads happen before the chain runs.
type FilterFunc func(rows []storagemodels.FeedRow, fc *FilterContext) []storagemodels.FeedRow

// Chain is an ordered sequence of filter steps bound to one request context.
type Chain struct {
	steps []FilterFunc
	fc    *FilterContext
}

// Apply runs every step over the batch in order.
func (c Chain) Apply(rows []storagemodels.FeedRow) []storagemodels.FeedRow {
	for _, step := range c.steps {
		rows = step(rows, c.fc)
	}
	return rows
}

// buildChain assembles the filter chain for one feed kind. Kinds already
// scoped by their partition key skip the steps the scoping makes redundant.
func buildChain(tmpl scanTemplate, fc *FilterContext) Chain {
	var steps []FilterFunc

	switch tmpl.origin {
	case storagemodels.OriginNote:
		if tmpl.homeScoped {
			steps = append(steps, filterOwnershipScope)
		}
		if tmpl.kind != KindByChannel {
			steps = append(steps, filterChannel)
		}
		steps = append(steps,
			filterReplyPolicy,
			filterVisibility,
			filterMute,
			filterBlock,
			filterRenoteMute,
			filterInclusionFlags,
		)
		if fc.WithFiles {
			steps = append(steps, filterAttachmentsOnly)
		}
		steps = append(steps, filterHidden)
	case storagemodels.OriginNotification, storagemodels.OriginReaction:
		steps = append(steps, filterActorMute, filterActorBlock)
	}

	return Chain{steps: steps, fc: fc}
}

// keepNotes filters the note variant with keep, passing other variants
// through untouched.
func keepNotes(rows []storagemodels.FeedRow, keep func(*storagemodels.NoteRow) bool) []storagemodels.FeedRow {
	out := rows[:0]
	for _, row := range rows {
		if row.Origin == storagemodels.OriginNote && !keep(row.Note) {
			continue
		}
		out = append(out, row)
	}
	return out
}

// filterOwnershipScope keeps rows whose actor is the viewer or a followed
// user. Only meaningful for kinds not already scoped by partition key.
func filterOwnershipScope(rows []storagemodels.FeedRow, fc *FilterContext) []storagemodels.FeedRow {
	return keepNotes(rows, func(n *storagemodels.NoteRow) bool {
		if n.UserID == fc.Viewer {
			return true
		}
		_, ok := fc.Following[n.UserID]
		return ok
	})
}

// filterChannel drops channel-scoped rows the viewer cannot see: all of them
// when the viewer follows no channels, otherwise those from unfollowed
// channels.
func filterChannel(rows []storagemodels.FeedRow, fc *FilterContext) []storagemodels.FeedRow {
	return keepNotes(rows, func(n *storagemodels.NoteRow) bool {
		if n.ChannelID == "" {
			return true
		}
		if len(fc.ChannelFollowing) == 0 {
			return false
		}
		_, ok := fc.ChannelFollowing[n.ChannelID]
		return ok
	})
}

// filterReplyPolicy applies the reply visibility rules: unauthenticated
// viewers see only self-replies; authenticated viewers without "include
// replies" see only replies where they are author or reply target, plus
// self-replies.
func filterReplyPolicy(rows []storagemodels.FeedRow, fc *FilterContext) []storagemodels.FeedRow {
	return keepNotes(rows, func(n *storagemodels.NoteRow) bool {
		if n.ReplyID == "" {
			return true
		}
		if fc.Viewer == "" {
			return n.ReplyUserID == n.UserID
		}
		if fc.WithReplies {
			return true
		}
		return n.UserID == fc.Viewer || n.ReplyUserID == fc.Viewer || n.ReplyUserID == n.UserID
	})
}

// filterVisibility applies the visibility scopes. Public and home rows always
// pass. Followers rows pass for the author, the author's follower, a
// reply-target of the author, or an explicit mention target. Specified rows
// pass for the author or a listed recipient.
func filterVisibility(rows []storagemodels.FeedRow, fc *FilterContext) []storagemodels.FeedRow {
	return keepNotes(rows, func(n *storagemodels.NoteRow) bool {
		switch n.Visibility {
		case storagemodels.VisibilityPublic, storagemodels.VisibilityHome:
			return true
		case storagemodels.VisibilityFollowers:
			if fc.Viewer == "" {
				return false
			}
			if n.UserID == fc.Viewer || n.ReplyUserID == fc.Viewer {
				return true
			}
			if _, ok := fc.Following[n.UserID]; ok {
				return true
			}
			return containsID(n.Mentions, fc.Viewer)
		case storagemodels.VisibilitySpecified:
			if fc.Viewer == "" {
				return false
			}
			return n.UserID == fc.Viewer || containsID(n.VisibleUserIDs, fc.Viewer)
		}
		return false
	})
}

// filterMute drops rows whose author, reply-author, or renote-author is muted
// by id or instance, and rows whose concatenated text matches a word-mute
// pattern.
func filterMute(rows []storagemodels.FeedRow, fc *FilterContext) []storagemodels.FeedRow {
	return keepNotes(rows, func(n *storagemodels.NoteRow) bool {
		for _, id := range []string{n.UserID, n.ReplyUserID, n.RenoteUserID} {
			if id == "" {
				continue
			}
			if _, ok := fc.MutedUsers[id]; ok {
				return false
			}
		}
		for _, host := range []string{n.UserHost, n.ReplyUserHost, n.RenoteUserHost} {
			if host == "" {
				continue
			}
			if _, ok := fc.MutedInstances[host]; ok {
				return false
			}
		}
		if len(fc.MutePatterns) > 0 && matchesMutePatterns(fc.MutePatterns, muteTargetText(n)) {
			return false
		}
		return true
	})
}

// filterBlock drops rows authored, replied-to, or renoted-to by any id in the
// symmetric block union.
func filterBlock(rows []storagemodels.FeedRow, fc *FilterContext) []storagemodels.FeedRow {
	return keepNotes(rows, func(n *storagemodels.NoteRow) bool {
		for _, id := range []string{n.UserID, n.ReplyUserID, n.RenoteUserID} {
			if id == "" {
				continue
			}
			if _, ok := fc.Blocked[id]; ok {
				return false
			}
		}
		return true
	})
}

// filterRenoteMute drops pure renotes whose renoting actor the viewer has
// muted for renotes. Quotes pass.
func filterRenoteMute(rows []storagemodels.FeedRow, fc *FilterContext) []storagemodels.FeedRow {
	return keepNotes(rows, func(n *storagemodels.NoteRow) bool {
		if !n.IsPureRenote() {
			return true
		}
		_, muted := fc.RenoteMuted[n.UserID]
		return !muted
	})
}

// filterInclusionFlags applies the caller's renote inclusion flags to pure
// renotes. A renote with its own text, attachment or poll is never dropped
// here.
func filterInclusionFlags(rows []storagemodels.FeedRow, fc *FilterContext) []storagemodels.FeedRow {
	return keepNotes(rows, func(n *storagemodels.NoteRow) bool {
		if !n.IsPureRenote() {
			return true
		}
		if !fc.IncludeMyRenotes && fc.Viewer != "" && n.UserID == fc.Viewer {
			return false
		}
		if !fc.IncludeRenotedMyNotes && fc.Viewer != "" && n.RenoteUserID == fc.Viewer {
			return false
		}
		if !fc.IncludeLocalRenotes && n.RenoteUserHost == "" {
			return false
		}
		return true
	})
}

// filterAttachmentsOnly keeps rows carrying at least one attachment.
func filterAttachmentsOnly(rows []storagemodels.FeedRow, fc *FilterContext) []storagemodels.FeedRow {
	return keepNotes(rows, func(n *storagemodels.NoteRow) bool {
		return len(n.Files) > 0
	})
}

// filterHidden is the hard visibility floor: rows explicitly marked hidden
// never surface.
func filterHidden(rows []storagemodels.FeedRow, fc *FilterContext) []storagemodels.FeedRow {
	return keepNotes(rows, func(n *storagemodels.NoteRow) bool {
		return !n.Hidden
	})
}

// filterActorMute drops notification and reaction rows from muted actors or
// instances.
func filterActorMute(rows []storagemodels.FeedRow, fc *FilterContext) []storagemodels.FeedRow {
	out := rows[:0]
	for _, row := range rows {
		if actor := row.ActorID(); actor != "" {
			if _, ok := fc.MutedUsers[actor]; ok {
				continue
			}
		}
		if host := row.ActorHost(); host != "" {
			if _, ok := fc.MutedInstances[host]; ok {
				continue
			}
		}
		out = append(out, row)
	}
	return out
}

// filterActorBlock drops notification and reaction rows from blocked actors.
func filterActorBlock(rows []storagemodels.FeedRow, fc *FilterContext) []storagemodels.FeedRow {
	out := rows[:0]
	for _, row := range rows {
		if actor := row.ActorID(); actor != "" {
			if _, ok := fc.Blocked[actor]; ok {
				continue
			}
		}
		out = append(out, row)
	}
	return out
}

func containsID(ids []string, id string) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}
