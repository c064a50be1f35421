package repository

import (
	"context"

	"autopro_rental/internal/domain/entities"
	"autopro_rental/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const defaultClientsTableName = "clients"

type clientItem struct {
	ID          string `dynamodbav:"id"`
	CompanyName string `dynamodbav:"company_name"`
	ContactName string `dynamodbav:"contact_name,omitempty"`
	Email       string `dynamodbav:"email,omitempty"`
	Phone       string `dynamodbav:"phone,omitempty"`
	Address     string `dynamodbav:"address,omitempty"`
	City        string `dynamodbav:"city,omitempty"`
	PostalCode  string `dynamodbav:"postal_code,omitempty"`
	Country     string `dynamodbav:"country,omitempty"`
	VATRate     string `dynamodbav:"vat_rate"`
	VATNumber   string `dynamodbav:"vat_number,omitempty"`
	SIREN       string `dynamodbav:"siren,omitempty"`
	RCSNumber   string `dynamodbav:"rcs_number,omitempty"`
	IsActive    bool   `dynamodbav:"is_active"`
	CreatedAt   string `dynamodbav:"created_at"`
}

// ClientDynamoRepository persists Client entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//
// Deactivation is a soft delete (is_active flag); listing filters on it so
// orders and invoices keep resolving their client reference.

type ClientDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IClientRepository = (*ClientDynamoRepository)(nil)

func NewClientDynamoRepository(ddb *dynamodb.Client) *ClientDynamoRepository {
	return &ClientDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("CLIENTS_TABLE", defaultClientsTableName),
	}
}

func (r *ClientDynamoRepository) Create(ctx context.Context, c entities.Client) (entities.Client, error) {
	av, err := attributevalue.MarshalMap(toClientItem(c))
	if err != nil {
		return entities.Client{}, err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{
			"#id": "id",
		},
	})
	if err != nil {
		return entities.Client{}, err
	}
	return c, nil
}

func (r *ClientDynamoRepository) GetByID(ctx context.Context, id string) (entities.Client, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Client{}, err
	}
	if len(out.Item) == 0 {
		return entities.Client{}, nil
	}

	var it clientItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Client{}, err
	}
	return fromClientItem(it), nil
}

func (r *ClientDynamoRepository) ListActive(ctx context.Context) ([]entities.Client, error) {
	clients := make([]entities.Client, 0)

	var startKey map[string]types.AttributeValue
	for {
		out, err := r.ddb.Scan(ctx, &dynamodb.ScanInput{
			TableName:        aws.String(r.tableName),
			FilterExpression: aws.String("is_active = :active"),
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":active": &types.AttributeValueMemberBOOL{Value: true},
			},
			ExclusiveStartKey: startKey,
		})
		if err != nil {
			return nil, err
		}
		for _, raw := range out.Items {
			var it clientItem
			if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
				return nil, err
			}
			clients = append(clients, fromClientItem(it))
		}
		if out.LastEvaluatedKey == nil {
			return clients, nil
		}
		startKey = out.LastEvaluatedKey
	}
}

func (r *ClientDynamoRepository) Update(ctx context.Context, c entities.Client) (entities.Client, error) {
	av, err := attributevalue.MarshalMap(toClientItem(c))
	if err != nil {
		return entities.Client{}, err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_exists(#id)"),
		ExpressionAttributeNames: map[string]string{
			"#id": "id",
		},
	})
	if err != nil {
		return entities.Client{}, err
	}
	return c, nil
}

func (r *ClientDynamoRepository) CountActive(ctx context.Context) (int, error) {
	count := 0

	var startKey map[string]types.AttributeValue
	for {
		out, err := r.ddb.Scan(ctx, &dynamodb.ScanInput{
			TableName:        aws.String(r.tableName),
			Select:           types.SelectCount,
			FilterExpression: aws.String("is_active = :active"),
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":active": &types.AttributeValueMemberBOOL{Value: true},
			},
			ExclusiveStartKey: startKey,
		})
		if err != nil {
			return 0, err
		}
		count += int(out.Count)
		if out.LastEvaluatedKey == nil {
			return count, nil
		}
		startKey = out.LastEvaluatedKey
	}
}

func toClientItem(c entities.Client) clientItem {
	return clientItem{
		ID:          c.ID,
		CompanyName: c.CompanyName,
		ContactName: c.ContactName,
		Email:       c.Email,
		Phone:       c.Phone,
		Address:     c.Address,
		City:        c.City,
		PostalCode:  c.PostalCode,
		Country:     c.Country,
		VATRate:     floatToString(c.VATRate),
		VATNumber:   c.VATNumber,
		SIREN:       c.SIREN,
		RCSNumber:   c.RCSNumber,
		IsActive:    c.IsActive,
		CreatedAt:   formatTime(c.CreatedAt),
	}
}

func fromClientItem(it clientItem) entities.Client {
	return entities.Client{
		ID:          it.ID,
		CompanyName: it.CompanyName,
		ContactName: it.ContactName,
		Email:       it.Email,
		Phone:       it.Phone,
		Address:     it.Address,
		City:        it.City,
		PostalCode:  it.PostalCode,
		Country:     it.Country,
		VATRate:     stringToFloat(it.VATRate),
		VATNumber:   it.VATNumber,
		SIREN:       it.SIREN,
		RCSNumber:   it.RCSNumber,
		IsActive:    it.IsActive,
		CreatedAt:   parseTime(it.CreatedAt),
	}
}
