// Package ddb implements the channel catalog on a DynamoDB table. It carries
// the richer lookup and per-entry accessors but no collection-level activation
// shape, matching mid-generation deployments.
package ddb

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	ddbTypes "github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"vergate/internal/ports"
	"vergate/internal/types"
)

type Opener struct {
	table string
	cli   *dynamodb.Client
}

func NewOpener(table string, cli *dynamodb.Client) *Opener {
	// Creates the table only if it doesn't exist.
	// We ignore the error if the table already exists.
	createTableIfNotExists(cli, table)
	return &Opener{table: table, cli: cli}
}

// Open loads every channel in the dir partition. The location is a catalog
// partition name here, not a filesystem path.
func (o *Opener) Open(ctx context.Context, dir string) (ports.Catalog, error) {
	out, err := o.cli.Query(ctx, &dynamodb.QueryInput{
		TableName:              &o.table,
		KeyConditionExpression: awsString("PK = :pk AND begins_with(SK, :sk)"),
		ExpressionAttributeValues: map[string]ddbTypes.AttributeValue{
			":pk": &ddbTypes.AttributeValueMemberS{Value: pkCatalog(dir)},
			":sk": &ddbTypes.AttributeValueMemberS{Value: SChannel + "#"},
		},
		ConsistentRead: awsBool(true),
	})
	if err != nil {
		return nil, types.Err(types.ErrCatalogAccess, err, "query catalog %q", dir)
	}
	cat := &Catalog{table: o.table, cli: o.cli, dir: dir}
	for _, item := range out.Items {
		var rec types.Channel
		if err := attributevalue.UnmarshalMap(item, &rec); err != nil {
			return nil, types.Err(types.ErrCatalogAccess, err, "decode catalog item")
		}
		cat.channels = append(cat.channels, &channel{rec: rec})
	}
	return cat, nil
}

type Catalog struct {
	table    string
	cli      *dynamodb.Client
	dir      string
	channels []*channel
}

type channel struct {
	rec types.Channel
}

func (c *channel) ResourceName() string  { return c.rec.Name }
func (c *channel) IsActive() bool        { return c.rec.Active }
func (c *channel) SetActive(active bool) { c.rec.Active = active }

func (c *Catalog) Find(ctx context.Context, name string) (ports.Resource, error) {
	return c.FindAny(ctx, name, false)
}

func (c *Catalog) FindAny(_ context.Context, name string, includeInactive bool) (ports.Resource, error) {
	for _, ch := range c.channels {
		if ch.rec.Name != name {
			continue
		}
		if !ch.rec.Active && !includeInactive {
			break
		}
		return ch, nil
	}
	return nil, types.Err(types.ErrNotFound, nil, "channel %q", name)
}

func (c *Catalog) Persist(ctx context.Context) error {
	for _, ch := range c.channels {
		item, err := attributevalue.MarshalMap(struct {
			PK string `dynamodbav:"PK"`
			SK string `dynamodbav:"SK"`
			types.Channel
		}{
			PK:      pkCatalog(c.dir),
			SK:      skChannel(ch.rec.Name),
			Channel: ch.rec,
		})
		if err != nil {
			return types.Err(types.ErrPersist, err, "encode channel %q", ch.rec.Name)
		}
		_, err = c.cli.PutItem(ctx, &dynamodb.PutItemInput{
			TableName: &c.table,
			Item:      item,
		})
		if err != nil {
			return types.Err(types.ErrPersist, err, "write channel %q", ch.rec.Name)
		}
	}
	return nil
}
