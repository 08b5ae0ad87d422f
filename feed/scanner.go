/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package feed

import (
	"context"
	"time"

	"github.com/SchwabischesBauernbrot/firefish/errors"
	"github.com/SchwabischesBauernbrot/firefish/storagemodels"
)

// scanState is the scan cursor for one pagination request. It is owned by a
// single request and never shared or persisted.
type scanState struct {
	found   []storagemodels.FeedRow
	scanned int // day windows exhausted so far
}

// scan runs the cross-partition control loop, walking day windows from the
// upper bound backwards. Within one window every target id contributes its own
// sub-scan; the list-aggregate kind is the only multi-target case. The budget
// counts day windows, so a wide list costs more scans per window but never
// starves later members.
func (e *Engine) scan(
	ctx context.Context,
	tmpl scanTemplate,
	targets []string,
	b bounds,
	chain Chain,
	targetCount int,
) ([]storagemodels.FeedRow, error) {
	state := &scanState{}
	until := b.until
	untilID := b.untilID

	for len(state.found) < targetCount && state.scanned < e.settings.MaxPartitions {
		for _, scope := range targets {
			if len(state.found) >= targetCount {
				break
			}
			if err := e.scanPartition(ctx, tmpl, scope, until, untilID, b.since, chain, targetCount, state); err != nil {
				return nil, err
			}
		}

		// Window exhausted: spend one unit of budget and jump to the end of
		// the previous calendar day.
		state.scanned++
		until = endOfPreviousDay(until)
		untilID = ""
		if b.since != nil && until.Before(*b.since) {
			break
		}
	}
	return state.found, nil
}

// scanPartition drains one target's partition for the current day window,
// issuing bounded range scans and paging past the fetch limit with a
// (timestamp, id) cursor. The id component breaks ties between rows sharing
// one timestamp, so a re-issued scan never re-fetches or skips a row.
func (e *Engine) scanPartition(
	ctx context.Context,
	tmpl scanTemplate,
	scope string,
	until time.Time,
	untilID string,
	since *time.Time,
	chain Chain,
	targetCount int,
	state *scanState,
) error {
	for len(state.found) < targetCount {
		params := storagemodels.ScanParams{
			PartitionKey: tmpl.partitionKey(scope, dayOf(until)),
			Until:        until,
			UntilID:      untilID,
			Since:        since,
			Limit:        e.settings.FetchLimit,
		}

		rows, err := e.store.ScanPartition(ctx, params)
		if err != nil {
			return errors.NewQueryError("partition scan", err)
		}

		survivors := chain.Apply(rows)
		state.found = append(state.found, survivors...)

		e.logger.Debug("partition scan",
			"kind", tmpl.kind,
			"partition", params.PartitionKey,
			"fetched", len(rows),
			"kept", len(survivors),
			"accumulated", len(state.found))

		if int32(len(rows)) < params.Limit {
			return nil
		}

		// A full batch means the partition may hold more matching rows
		// immediately after the last one; advance the cursor and keep going.
		last := rows[len(rows)-1]
		until = last.CreatedAt()
		untilID = last.ID()
	}
	return nil
}
