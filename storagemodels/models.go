/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package storagemodels

import (
	"time"
)

// RowOrigin discriminates the FeedRow variant a scanned item belongs to.
type RowOrigin string

const (
	OriginNote         RowOrigin = "Note"
	OriginNotification RowOrigin = "Notification"
	OriginReaction     RowOrigin = "Reaction"
)

// Visibility is the note visibility scope.
type Visibility string

const (
	VisibilityPublic    Visibility = "public"
	VisibilityHome      Visibility = "home"
	VisibilityFollowers Visibility = "followers"
	VisibilitySpecified Visibility = "specified"
)

// DriveFile carries the attachment fields the filter chain needs. The full
// drive record (URLs, blurhash) is resolved downstream.
type DriveFile struct {
	ID      string `json:"id"`
	Comment string `json:"comment,omitempty"`
}

// NoteRow is the content variant of a feed row. A row's partition is derived
// solely from its creation date: the id's embedded timestamp and
// CreatedAtDate must agree.
type NoteRow struct {
	ID            string     `json:"id"`
	CreatedAt     time.Time  `json:"createdAt"`
	CreatedAtDate string     `json:"createdAtDate"`
	UserID        string     `json:"userId"`
	UserHost      string     `json:"userHost,omitempty"`
	Text          string     `json:"text,omitempty"`
	CW            string     `json:"cw,omitempty"`
	Visibility    Visibility `json:"visibility"`

	ReplyID       string `json:"replyId,omitempty"`
	ReplyUserID   string `json:"replyUserId,omitempty"`
	ReplyUserHost string `json:"replyUserHost,omitempty"`
	// Denormalized reply fields for word-mute scanning.
	ReplyText string `json:"replyText,omitempty"`
	ReplyCW   string `json:"replyCw,omitempty"`

	RenoteID       string `json:"renoteId,omitempty"`
	RenoteUserID   string `json:"renoteUserId,omitempty"`
	RenoteUserHost string `json:"renoteUserHost,omitempty"`
	RenoteText     string `json:"renoteText,omitempty"`
	RenoteCW       string `json:"renoteCw,omitempty"`

	Files          []DriveFile `json:"files,omitempty"`
	Mentions       []string    `json:"mentions,omitempty"`
	VisibleUserIDs []string    `json:"visibleUserIds,omitempty"`
	ChannelID      string      `json:"channelId,omitempty"`
	HasPoll        bool        `json:"hasPoll,omitempty"`

	// Hidden marks rows dropped by moderation regardless of visibility.
	Hidden bool `json:"hidden,omitempty"`
}

// IsPureRenote reports whether the row is a renote that adds no content of
// its own. A renote with a comment, attachment or poll is treated as a quote
// and is never dropped by renote-specific filters.
func (n *NoteRow) IsPureRenote() bool {
	return n.RenoteID != "" && n.Text == "" && n.CW == "" && len(n.Files) == 0 && !n.HasPoll
}

// NotificationRow is the notification variant of a feed row.
type NotificationRow struct {
	TargetID      string    `json:"targetId"`
	CreatedAt     time.Time `json:"createdAt"`
	CreatedAtDate string    `json:"createdAtDate"`
	ID            string    `json:"id"`
	NotifierID    string    `json:"notifierId,omitempty"`
	NotifierHost  string    `json:"notifierHost,omitempty"`
	Type          string    `json:"type"`
	EntityID      string    `json:"entityId,omitempty"`
	Reaction      string    `json:"reaction,omitempty"`
	Choice        *int      `json:"choice,omitempty"`
}

// ReactionRow is the reaction variant of a feed row.
type ReactionRow struct {
	ID            string    `json:"id"`
	NoteID        string    `json:"noteId"`
	UserID        string    `json:"userId"`
	Reaction      string    `json:"reaction"`
	CreatedAt     time.Time `json:"createdAt"`
	CreatedAtDate string    `json:"createdAtDate"`
}

// FeedRow is a tagged union over the three scan variants. Exactly one of the
// variant pointers matching Origin is set.
type FeedRow struct {
	Origin       RowOrigin
	Note         *NoteRow
	Notification *NotificationRow
	Reaction     *ReactionRow
}

// ID returns the row identifier of the active variant.
func (r FeedRow) ID() string {
	switch r.Origin {
	case OriginNote:
		return r.Note.ID
	case OriginNotification:
		return r.Notification.ID
	case OriginReaction:
		return r.Reaction.ID
	}
	return ""
}

// CreatedAt returns the creation timestamp of the active variant.
func (r FeedRow) CreatedAt() time.Time {
	switch r.Origin {
	case OriginNote:
		return r.Note.CreatedAt
	case OriginNotification:
		return r.Notification.CreatedAt
	case OriginReaction:
		return r.Reaction.CreatedAt
	}
	return time.Time{}
}

// ActorID returns the id of the acting user: note author, notifier, or reactor.
func (r FeedRow) ActorID() string {
	switch r.Origin {
	case OriginNote:
		return r.Note.UserID
	case OriginNotification:
		return r.Notification.NotifierID
	case OriginReaction:
		return r.Reaction.UserID
	}
	return ""
}

// ActorHost returns the host of the acting user; empty for local actors.
func (r FeedRow) ActorHost() string {
	switch r.Origin {
	case OriginNote:
		return r.Note.UserHost
	case OriginNotification:
		return r.Notification.NotifierHost
	case OriginReaction:
		return ""
	}
	return ""
}
