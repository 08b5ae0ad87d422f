/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	sdk "github.com/aws/aws-sdk-go-v2/service/dynamodb"
)

// The feed table uses single-table day partitioning: the partition key is the
// rendered scope + calendar day (e.g. "NOTE#2026-08-28", "UNOTE#<userId>#
// 2026-08-28") and the sort key is the composite "<timestamp>#<id>" with the
// timestamp in fixed-width RFC3339 milliseconds. Lexicographic sort-key order
// is therefore (creation time, id) order, which gives range scans their
// clustering bound and pagination its tie-break.

const (
	partitionKeyAttr = "PK"
	sortKeyAttr      = "SK"
	originAttr       = "Origin"
)

// sortKeyTimeFormat is fixed-width so string comparison agrees with time
// comparison.
const sortKeyTimeFormat = "2006-01-02T15:04:05.000Z"

// NewClient initializes a DynamoDB client from static credentials.
func NewClient(awsAccessKey, awsSecretKey, awsRegion string) (*sdk.Client, error) {
	cfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithRegion(awsRegion),
		config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(awsAccessKey, awsSecretKey, ""),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}
	return sdk.NewFromConfig(cfg), nil
}

// FeedStore implements feedstore.FeedStore against a DynamoDB feed table.
type FeedStore struct {
	client    *sdk.Client
	tableName string
}

// NewFeedStore constructs a FeedStore over an existing client.
func NewFeedStore(client *sdk.Client, tableName string) *FeedStore {
	return &FeedStore{
		client:    client,
		tableName: tableName,
	}
}

// Kind identifies the backend.
func (d *FeedStore) Kind() string {
	return "dynamodb"
}
