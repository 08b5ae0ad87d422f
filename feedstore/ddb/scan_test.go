/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/SchwabischesBauernbrot/firefish/feedstore/mock"
	"github.com/SchwabischesBauernbrot/firefish/storagemodels"
)

func noteItem(t *testing.T, id string, at time.Time) map[string]types.AttributeValue {
	t.Helper()
	item, err := attributevalue.MarshalMap(&storagemodels.NoteRow{
		ID:            id,
		CreatedAt:     at,
		CreatedAtDate: at.UTC().Format("2006-01-02"),
		UserID:        "A",
		Visibility:    storagemodels.VisibilityPublic,
	})
	if err != nil {
		t.Fatalf("failed to marshal note: %v", err)
	}
	item[partitionKeyAttr] = &types.AttributeValueMemberS{Value: "NOTE#" + at.UTC().Format("2006-01-02")}
	item[sortKeyAttr] = &types.AttributeValueMemberS{Value: at.UTC().Format(sortKeyTimeFormat) + "#" + id}
	item[originAttr] = &types.AttributeValueMemberS{Value: string(storagemodels.OriginNote)}
	return item
}

func TestUpperSortKey(t *testing.T) {
	at := time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)

	t.Run("with id cursor", func(t *testing.T) {
		got := upperSortKey(storagemodels.ScanParams{Until: at, UntilID: "abc"})
		if got != "2026-08-28T10:00:00.000Z#abc" {
			t.Errorf("unexpected upper bound %q", got)
		}
	})

	t.Run("without id cursor", func(t *testing.T) {
		got := upperSortKey(storagemodels.ScanParams{Until: at})
		if got != "2026-08-28T10:00:00.000Z#~" {
			t.Errorf("unexpected upper bound %q", got)
		}
	})
}

func TestQueryLimit(t *testing.T) {
	if got := queryLimit(storagemodels.ScanParams{Limit: 2}); got != 2 {
		t.Errorf("expected 2 without a since floor, got %d", got)
	}

	since := time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)
	if got := queryLimit(storagemodels.ScanParams{Limit: 2, Since: &since}); got != 3 {
		t.Errorf("expected one extra slot for the boundary row, got %d", got)
	}
}

func TestDecodeRowsDropsBoundaryAndKeepsBatchFull(t *testing.T) {
	at := time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)
	upper := at.UTC().Format(sortKeyTimeFormat) + "#c"

	// A since-bound BETWEEN fetch returns the cursor row itself first; the
	// batch after the drop must still carry a full limit's worth of rows.
	items := []map[string]types.AttributeValue{
		noteItem(t, "c", at), // cursor row, sk == upper
		noteItem(t, "b", at),
		noteItem(t, "a", at),
	}

	rows, err := decodeRows(upper, 2, items)
	if err != nil {
		t.Fatalf("decodeRows failed: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected a full batch of 2, got %d", len(rows))
	}
	if rows[0].ID() != "b" || rows[1].ID() != "a" {
		t.Errorf("expected [b a], got [%s %s]", rows[0].ID(), rows[1].ID())
	}
}

func TestDecodeRowsTruncatesToLimit(t *testing.T) {
	at := time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)
	upper := at.UTC().Format(sortKeyTimeFormat) + "#~"

	items := []map[string]types.AttributeValue{
		noteItem(t, "c", at),
		noteItem(t, "b", at),
		noteItem(t, "a", at),
	}

	rows, err := decodeRows(upper, 2, items)
	if err != nil {
		t.Fatalf("decodeRows failed: %v", err)
	}
	if len(rows) != 2 {
		t.Errorf("expected truncation to 2, got %d", len(rows))
	}
}

func TestDecodeRowsMissingOrigin(t *testing.T) {
	at := time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)
	item := noteItem(t, "a", at)
	delete(item, originAttr)

	if _, err := decodeRows(upperSortKey(storagemodels.ScanParams{Until: at}), 10, []map[string]types.AttributeValue{item}); err == nil {
		t.Error("expected an error for a missing Origin attribute")
	}
}

// TestScanBoundsMatchMockStore pins both backends to the same paging
// contract: given identical rows and bounds, the Query-shaped fetch (BETWEEN
// plus boundary drop) must yield exactly what the in-memory store yields.
func TestScanBoundsMatchMockStore(t *testing.T) {
	at := time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)
	since := time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)
	noises := []string{"a", "b", "c", "d", "e"}

	key := "NOTE#" + at.UTC().Format("2006-01-02")
	store := mock.NewFeedStore()
	var items []map[string]types.AttributeValue
	for _, noise := range noises {
		items = append(items, noteItem(t, noise, at))
		store.AddRow(key, storagemodels.FeedRow{
			Origin: storagemodels.OriginNote,
			Note: &storagemodels.NoteRow{
				ID:            noise,
				CreatedAt:     at,
				CreatedAtDate: at.UTC().Format("2006-01-02"),
				UserID:        "A",
				Visibility:    storagemodels.VisibilityPublic,
			},
		})
	}

	params := storagemodels.ScanParams{
		PartitionKey: key,
		Until:        at,
		UntilID:      "d",
		Since:        &since,
		Limit:        2,
	}

	want, err := store.ScanPartition(context.Background(), params)
	if err != nil {
		t.Fatalf("mock scan failed: %v", err)
	}

	// Replay the Query the DynamoDB backend issues: sort-key BETWEEN the
	// floor and the upper bound inclusive, descending, capped at queryLimit.
	upper := upperSortKey(params)
	lower := params.Since.UTC().Format(sortKeyTimeFormat)
	var fetched []map[string]types.AttributeValue
	for _, item := range items {
		sk := item[sortKeyAttr].(*types.AttributeValueMemberS).Value
		if sk >= lower && sk <= upper {
			fetched = append(fetched, item)
		}
	}
	sort.Slice(fetched, func(i, j int) bool {
		return fetched[i][sortKeyAttr].(*types.AttributeValueMemberS).Value >
			fetched[j][sortKeyAttr].(*types.AttributeValueMemberS).Value
	})
	if limit := queryLimit(params); int32(len(fetched)) > limit {
		fetched = fetched[:limit]
	}

	got, err := decodeRows(upper, params.Limit, fetched)
	if err != nil {
		t.Fatalf("decodeRows failed: %v", err)
	}

	if len(got) != len(want) {
		t.Fatalf("backends diverge: mock returned %d rows, query path %d", len(want), len(got))
	}
	for i := range want {
		if got[i].ID() != want[i].ID() {
			t.Errorf("row %d: mock %s, query path %s", i, want[i].ID(), got[i].ID())
		}
	}
}
