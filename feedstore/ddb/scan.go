/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	sdk "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/SchwabischesBauernbrot/firefish/registry"
	"github.com/SchwabischesBauernbrot/firefish/storagemodels"
)

func init() {
	registry.RegisterRowVariant(storagemodels.OriginNote, func(item map[string]types.AttributeValue) (storagemodels.FeedRow, error) {
		row := &storagemodels.NoteRow{}
		if err := attributevalue.UnmarshalMap(item, row); err != nil {
			return storagemodels.FeedRow{}, fmt.Errorf("failed to unmarshal note row: %w", err)
		}
		return storagemodels.FeedRow{Origin: storagemodels.OriginNote, Note: row}, nil
	})

	registry.RegisterRowVariant(storagemodels.OriginNotification, func(item map[string]types.AttributeValue) (storagemodels.FeedRow, error) {
		row := &storagemodels.NotificationRow{}
		if err := attributevalue.UnmarshalMap(item, row); err != nil {
			return storagemodels.FeedRow{}, fmt.Errorf("failed to unmarshal notification row: %w", err)
		}
		return storagemodels.FeedRow{Origin: storagemodels.OriginNotification, Notification: row}, nil
	})

	registry.RegisterRowVariant(storagemodels.OriginReaction, func(item map[string]types.AttributeValue) (storagemodels.FeedRow, error) {
		row := &storagemodels.ReactionRow{}
		if err := attributevalue.UnmarshalMap(item, row); err != nil {
			return storagemodels.FeedRow{}, fmt.Errorf("failed to unmarshal reaction row: %w", err)
		}
		return storagemodels.FeedRow{Origin: storagemodels.OriginReaction, Reaction: row}, nil
	})
}

// upperSortKey renders the exclusive upper bound for a scan. Without an id
// cursor, rows at exactly the upper timestamp are still included; '~' sorts
// above every id character.
func upperSortKey(params storagemodels.ScanParams) string {
	upper := params.Until.UTC().Format(sortKeyTimeFormat)
	if params.UntilID != "" {
		return upper + "#" + params.UntilID
	}
	return upper + "#~"
}

// queryLimit sizes the Query limit. The since-bound BETWEEN range is
// upper-inclusive, so the cursor row itself is fetched and occupies one slot
// before being dropped; one extra slot keeps a full batch full, so the caller
// never mistakes a boundary-trimmed batch for a drained partition. Ids are
// unique within a partition, so at most one row shares the cursor's sort key.
func queryLimit(params storagemodels.ScanParams) int32 {
	if params.Since != nil {
		return params.Limit + 1
	}
	return params.Limit
}

// ScanPartition issues one bounded Query against a single day partition,
// descending by sort key. Items are unmarshaled through the row-variant
// registry using the injected Origin attribute.
func (d *FeedStore) ScanPartition(ctx context.Context, params storagemodels.ScanParams) ([]storagemodels.FeedRow, error) {
	upper := upperSortKey(params)

	keyCondition := fmt.Sprintf("%s = :pk AND %s < :until", partitionKeyAttr, sortKeyAttr)
	exprValues := map[string]types.AttributeValue{
		":pk":    &types.AttributeValueMemberS{Value: params.PartitionKey},
		":until": &types.AttributeValueMemberS{Value: upper},
	}
	if params.Since != nil {
		// A key condition allows one sort-key clause, so the lower bound
		// switches the clause to BETWEEN. BETWEEN is upper-inclusive; the
		// boundary row (the cursor row itself) is dropped below.
		keyCondition = fmt.Sprintf("%s = :pk AND %s BETWEEN :since AND :until", partitionKeyAttr, sortKeyAttr)
		exprValues[":since"] = &types.AttributeValueMemberS{Value: params.Since.UTC().Format(sortKeyTimeFormat)}
	}

	input := &sdk.QueryInput{
		TableName:                 &d.tableName,
		KeyConditionExpression:    &keyCondition,
		ExpressionAttributeValues: exprValues,
		Limit:                     aws.Int32(queryLimit(params)),
		ScanIndexForward:          aws.Bool(false),
	}

	out, err := d.client.Query(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("query error: %w", err)
	}

	return decodeRows(upper, params.Limit, out.Items)
}

// decodeRows turns fetched items into feed rows: boundary items at or above
// the exclusive upper bound are dropped, the remainder is capped at limit,
// and each item is unmarshaled through the row-variant registry using its
// Origin attribute.
func decodeRows(upper string, limit int32, items []map[string]types.AttributeValue) ([]storagemodels.FeedRow, error) {
	rows := make([]storagemodels.FeedRow, 0, len(items))
	for _, item := range items {
		if sk, ok := item[sortKeyAttr].(*types.AttributeValueMemberS); ok && sk.Value >= upper {
			continue
		}
		if limit > 0 && int32(len(rows)) >= limit {
			break
		}

		var origin string
		if attr, ok := item[originAttr]; ok {
			if err := attributevalue.Unmarshal(attr, &origin); err != nil {
				return nil, fmt.Errorf("failed to unmarshal Origin: %w", err)
			}
		} else {
			return nil, fmt.Errorf("missing Origin attribute in item")
		}

		unmarshalFn, err := registry.GetUnmarshalFunc(storagemodels.RowOrigin(origin))
		if err != nil {
			return nil, err
		}
		row, err := unmarshalFn(item)
		if err != nil {
			return nil, fmt.Errorf("failed to unmarshal item for origin %q: %w", origin, err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}
