/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"
	"sync"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	sdk "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/suparena/docregistry/registry"
)

type testSet struct {
	Trait string `dynamodbav:"Trait"`
	Crate string `dynamodbav:"Crate"`
	Count int    `dynamodbav:"Count"`
}

type unmappedEntity struct {
	ID string
}

func init() {
	registry.RegisterIndexMap[testSet](map[string]string{
		"PK":     "TRAIT#{Trait}",
		"SK":     "CRATE#{Crate}",
		"GSI1PK": "CRATE#{Crate}",
		"GSI1SK": "TRAIT#{Trait}",
	})
	registry.RegisterType("testSet", func(item map[string]types.AttributeValue) (interface{}, error) {
		var s testSet
		err := attributevalue.UnmarshalMap(item, &s)
		return &s, err
	})
}

// fakeClient keeps items keyed by PK and SK. Query replays the configured
// outcomes in order: an error when errs has one left, otherwise the next page.
type fakeClient struct {
	mu      sync.Mutex
	items   map[string]map[string]types.AttributeValue
	pages   []*sdk.QueryOutput
	errs    []error
	queries []sdk.QueryInput
}

func newFakeClient() *fakeClient {
	return &fakeClient{items: make(map[string]map[string]types.AttributeValue)}
}

func itemKey(key map[string]types.AttributeValue) string {
	var pk, sk string
	if v, ok := key["PK"].(*types.AttributeValueMemberS); ok {
		pk = v.Value
	}
	if v, ok := key["SK"].(*types.AttributeValueMemberS); ok {
		sk = v.Value
	}
	return pk + "/" + sk
}

func (f *fakeClient) GetItem(_ context.Context, in *sdk.GetItemInput, _ ...func(*sdk.Options)) (*sdk.GetItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return &sdk.GetItemOutput{Item: f.items[itemKey(in.Key)]}, nil
}

func (f *fakeClient) PutItem(_ context.Context, in *sdk.PutItemInput, _ ...func(*sdk.Options)) (*sdk.PutItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.items[itemKey(in.Item)] = in.Item
	return &sdk.PutItemOutput{}, nil
}

func (f *fakeClient) DeleteItem(_ context.Context, in *sdk.DeleteItemInput, _ ...func(*sdk.Options)) (*sdk.DeleteItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.items, itemKey(in.Key))
	return &sdk.DeleteItemOutput{}, nil
}

func (f *fakeClient) Query(_ context.Context, in *sdk.QueryInput, _ ...func(*sdk.Options)) (*sdk.QueryOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queries = append(f.queries, *in)
	if len(f.errs) > 0 {
		err := f.errs[0]
		f.errs = f.errs[1:]
		return nil, err
	}
	if len(f.pages) == 0 {
		return &sdk.QueryOutput{}, nil
	}
	page := f.pages[0]
	f.pages = f.pages[1:]
	return page, nil
}

func (f *fakeClient) queryInputs() []sdk.QueryInput {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]sdk.QueryInput(nil), f.queries...)
}

// storedItem marshals s the way Put stores it.
func storedItem(s testSet) map[string]types.AttributeValue {
	item, err := attributevalue.MarshalMap(s)
	if err != nil {
		panic(err)
	}
	item["PK"] = &types.AttributeValueMemberS{Value: "TRAIT#" + s.Trait}
	item["SK"] = &types.AttributeValueMemberS{Value: "CRATE#" + s.Crate}
	item[EntityTypeAttribute] = &types.AttributeValueMemberS{Value: "testSet"}
	return item
}
