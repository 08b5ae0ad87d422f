/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package feed

import (
	"github.com/SchwabischesBauernbrot/firefish/errors"
	"github.com/SchwabischesBauernbrot/firefish/storagemodels"
)

// Kind selects which partition-key scoping and scan template a feed request
// uses.
type Kind string

const (
	KindHome          Kind = "home"
	KindLocal         Kind = "local"
	KindGlobal        Kind = "global"
	KindRenotesOf     Kind = "renotesOf"
	KindByUser        Kind = "byUser"
	KindByChannel     Kind = "byChannel"
	KindNotifications Kind = "notifications"
	KindReactions     Kind = "reactions"
	KindListAggregate Kind = "list"
)

// scanTemplate is the prepared range-scan shape for one feed kind: a fixed
// partition-key prefix plus a creation-time clustering bound.
type scanTemplate struct {
	kind       Kind
	prefix     string
	origin     storagemodels.RowOrigin
	scopeName  string // non-empty when the kind requires a scoping id
	homeScoped bool   // apply the ownership-scope filter step
	perTarget  bool   // each target id contributes its own sub-scan
}

var templates = map[Kind]scanTemplate{
	KindHome:          {kind: KindHome, prefix: "NOTE", origin: storagemodels.OriginNote, homeScoped: true},
	KindLocal:         {kind: KindLocal, prefix: "LNOTE", origin: storagemodels.OriginNote},
	KindGlobal:        {kind: KindGlobal, prefix: "NOTE", origin: storagemodels.OriginNote},
	KindRenotesOf:     {kind: KindRenotesOf, prefix: "RNOTE", origin: storagemodels.OriginNote, scopeName: "note id"},
	KindByUser:        {kind: KindByUser, prefix: "UNOTE", origin: storagemodels.OriginNote, scopeName: "user id"},
	KindByChannel:     {kind: KindByChannel, prefix: "CNOTE", origin: storagemodels.OriginNote, scopeName: "channel id"},
	KindNotifications: {kind: KindNotifications, prefix: "NOTIF", origin: storagemodels.OriginNotification, scopeName: "user id"},
	KindReactions:     {kind: KindReactions, prefix: "REACT", origin: storagemodels.OriginReaction, scopeName: "user id"},
	KindListAggregate: {kind: KindListAggregate, prefix: "UNOTE", origin: storagemodels.OriginNote, scopeName: "list id", perTarget: true},
}

// templateFor selects the scan template for a feed kind, validating that a
// required scoping id is present.
func templateFor(kind Kind, scopeID string) (scanTemplate, error) {
	tmpl, ok := templates[kind]
	if !ok {
		return scanTemplate{}, errors.NewValidationError("kind", "unknown feed kind "+string(kind))
	}
	if tmpl.scopeName != "" && scopeID == "" {
		return scanTemplate{}, errors.NewInvalidFeedParametersError(string(kind), tmpl.scopeName)
	}
	return tmpl, nil
}

// partitionKey renders the partition key for one scoping id and calendar day.
// The list-aggregate kind renders per-member user partitions.
func (t scanTemplate) partitionKey(scopeID, day string) string {
	if t.scopeName == "" {
		return t.prefix + "#" + day
	}
	return t.prefix + "#" + scopeID + "#" + day
}
