/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	sdk "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// KVStore implements feedstore.KVStore on a DynamoDB cache table. Entries are
// items with PK "CACHE#<namespace>", SK the entry key, a binary Value and a
// numeric ExpireAt registered as the table's TTL attribute. DynamoDB expires
// items lazily, so every read also checks ExpireAt.
type KVStore struct {
	client    *sdk.Client
	tableName string
	now       func() time.Time
}

// NewKVStore constructs a KVStore over an existing client.
func NewKVStore(client *sdk.Client, tableName string) *KVStore {
	return &KVStore{
		client:    client,
		tableName: tableName,
		now:       time.Now,
	}
}

const (
	cacheValueAttr  = "Value"
	cacheExpireAttr = "ExpireAt"
)

func cachePartitionKey(namespace string) string {
	return "CACHE#" + namespace
}

func (k *KVStore) key(namespace, key string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		partitionKeyAttr: &types.AttributeValueMemberS{Value: cachePartitionKey(namespace)},
		sortKeyAttr:      &types.AttributeValueMemberS{Value: key},
	}
}

func (k *KVStore) expired(item map[string]types.AttributeValue) bool {
	attr, ok := item[cacheExpireAttr].(*types.AttributeValueMemberN)
	if !ok {
		return true
	}
	expireAt, err := strconv.ParseInt(attr.Value, 10, 64)
	if err != nil {
		return true
	}
	return k.now().Unix() >= expireAt
}

// Get returns the entry value, or ok=false when absent or expired.
func (k *KVStore) Get(ctx context.Context, namespace, key string) ([]byte, bool, error) {
	out, err := k.client.GetItem(ctx, &sdk.GetItemInput{
		TableName: &k.tableName,
		Key:       k.key(namespace, key),
	})
	if err != nil {
		return nil, false, fmt.Errorf("GetItem error: %w", err)
	}
	if out.Item == nil || k.expired(out.Item) {
		return nil, false, nil
	}
	value, ok := out.Item[cacheValueAttr].(*types.AttributeValueMemberB)
	if !ok {
		return nil, false, fmt.Errorf("cache entry %s/%s missing Value attribute", namespace, key)
	}
	return value.Value, true, nil
}

// Set writes the entry with a fresh expiry; a single PutItem, so partial
// writes are never observable.
func (k *KVStore) Set(ctx context.Context, namespace, key string, value []byte, ttl time.Duration) error {
	item := k.key(namespace, key)
	item[cacheValueAttr] = &types.AttributeValueMemberB{Value: value}
	item[cacheExpireAttr] = &types.AttributeValueMemberN{
		Value: strconv.FormatInt(k.now().Add(ttl).Unix(), 10),
	}
	_, err := k.client.PutItem(ctx, &sdk.PutItemInput{
		TableName: &k.tableName,
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("PutItem failed: %w", err)
	}
	return nil
}

// GetAll returns every live entry under the namespace.
func (k *KVStore) GetAll(ctx context.Context, namespace string) (map[string][]byte, error) {
	keyCondition := fmt.Sprintf("%s = :pk", partitionKeyAttr)
	out := make(map[string][]byte)

	var startKey map[string]types.AttributeValue
	for {
		page, err := k.client.Query(ctx, &sdk.QueryInput{
			TableName:              &k.tableName,
			KeyConditionExpression: &keyCondition,
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":pk": &types.AttributeValueMemberS{Value: cachePartitionKey(namespace)},
			},
			ExclusiveStartKey: startKey,
		})
		if err != nil {
			return nil, fmt.Errorf("query error: %w", err)
		}
		for _, item := range page.Items {
			if k.expired(item) {
				continue
			}
			sk, ok := item[sortKeyAttr].(*types.AttributeValueMemberS)
			if !ok {
				continue
			}
			value, ok := item[cacheValueAttr].(*types.AttributeValueMemberB)
			if !ok {
				continue
			}
			out[sk.Value] = value.Value
		}
		if len(page.LastEvaluatedKey) == 0 {
			break
		}
		startKey = page.LastEvaluatedKey
	}
	return out, nil
}

// Renew resets the expiry on the given keys. Conditioned on existence so a
// renewal never resurrects a deleted entry.
func (k *KVStore) Renew(ctx context.Context, namespace string, keys []string, ttl time.Duration) error {
	expireAt := strconv.FormatInt(k.now().Add(ttl).Unix(), 10)
	for _, key := range keys {
		_, err := k.client.UpdateItem(ctx, &sdk.UpdateItemInput{
			TableName:        &k.tableName,
			Key:              k.key(namespace, key),
			UpdateExpression: aws.String(fmt.Sprintf("SET %s = :expireAt", cacheExpireAttr)),
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":expireAt": &types.AttributeValueMemberN{Value: expireAt},
			},
			ConditionExpression: aws.String(fmt.Sprintf("attribute_exists(%s)", sortKeyAttr)),
		})
		if err != nil {
			var cfe *types.ConditionalCheckFailedException
			if errors.As(err, &cfe) {
				continue
			}
			return fmt.Errorf("renew failed for %s/%s: %w", namespace, key, err)
		}
	}
	return nil
}

// Delete removes entries; no-op on absent keys.
func (k *KVStore) Delete(ctx context.Context, namespace string, keys ...string) error {
	for _, key := range keys {
		_, err := k.client.DeleteItem(ctx, &sdk.DeleteItemInput{
			TableName: &k.tableName,
			Key:       k.key(namespace, key),
		})
		if err != nil {
			return fmt.Errorf("failed to delete cache entry %s/%s: %w", namespace, key, err)
		}
	}
	return nil
}
