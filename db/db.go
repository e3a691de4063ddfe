// Package db keeps per-file comparison records in DynamoDB, keyed by the
// ground-truth file name.
package db

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbattribute"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbiface"
	"github.com/jsphweid/chordal/config"
	"github.com/jsphweid/chordal/constants"
	"github.com/jsphweid/chordal/model"
)

type Client struct {
	api   dynamodbiface.DynamoDBAPI
	table string
}

func New(cfg config.Dynamo) (*Client, error) {
	sess, err := session.NewSession(&aws.Config{
		Region:   aws.String(cfg.Region),
		Endpoint: aws.String(cfg.Endpoint),
	})
	if err != nil {
		return nil, fmt.Errorf("creating DynamoDB session: %w", err)
	}
	return NewWithAPI(dynamodb.New(sess), cfg.Table), nil
}

func NewWithAPI(api dynamodbiface.DynamoDBAPI, table string) *Client {
	return &Client{api: api, table: table}
}

func (c *Client) PutComparison(ctx context.Context, rec model.ComparisonRecord) error {
	item, err := dynamodbattribute.MarshalMap(rec)
	if err != nil {
		return fmt.Errorf("marshalling comparison of %s: %w", rec.File, err)
	}
	_, err = c.api.PutItemWithContext(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(c.table),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("putting comparison of %s: %w", rec.File, err)
	}
	return nil
}

// GetComparisons fetches the stored records for files. Files without a
// record are absent from the result.
func (c *Client) GetComparisons(ctx context.Context, files []string) (map[string]model.ComparisonRecord, error) {
	res := make(map[string]model.ComparisonRecord)

	seen := make(map[string]bool)
	var keys []map[string]*dynamodb.AttributeValue
	for _, f := range files {
		if seen[f] {
			continue
		}
		seen[f] = true
		keys = append(keys, map[string]*dynamodb.AttributeValue{
			"PK": {S: aws.String(f)},
		})
	}

	for start := 0; start < len(keys); start += constants.MaxBatchGetKeys {
		end := start + constants.MaxBatchGetKeys
		if end > len(keys) {
			end = len(keys)
		}
		if err := c.batchGet(ctx, keys[start:end], res); err != nil {
			return nil, err
		}
	}
	return res, nil
}

func (c *Client) batchGet(ctx context.Context, keys []map[string]*dynamodb.AttributeValue, res map[string]model.ComparisonRecord) error {
	request := map[string]*dynamodb.KeysAndAttributes{
		c.table: {Keys: keys},
	}
	for len(request) > 0 {
		out, err := c.api.BatchGetItemWithContext(ctx, &dynamodb.BatchGetItemInput{RequestItems: request})
		if err != nil {
			return fmt.Errorf("batch get from %s: %w", c.table, err)
		}
		for _, item := range out.Responses[c.table] {
			var rec model.ComparisonRecord
			if err := dynamodbattribute.UnmarshalMap(item, &rec); err != nil {
				return fmt.Errorf("unmarshalling comparison: %w", err)
			}
			res[rec.File] = rec
		}
		request = out.UnprocessedKeys
	}
	return nil
}
