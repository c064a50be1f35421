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

const defaultOrdersTableName = "orders"

// orderItemItem is the stored form of an order line, shared between the
// orders and invoices tables (invoices snapshot the order items).
type orderItemItem struct {
	VehicleID      string `dynamodbav:"vehicle_id"`
	Quantity       int    `dynamodbav:"quantity"`
	DailyRate      string `dynamodbav:"daily_rate"`
	StartDate      string `dynamodbav:"start_date"`
	EndDate        string `dynamodbav:"end_date"`
	TotalDays      int    `dynamodbav:"total_days"`
	ItemTotalHT    string `dynamodbav:"item_total_ht"`
	IsRenewable    bool   `dynamodbav:"is_renewable"`
	RentalPeriod   string `dynamodbav:"rental_period,omitempty"`
	RentalDuration int    `dynamodbav:"rental_duration,omitempty"`
}

type orderItem struct {
	ID            string          `dynamodbav:"id"`
	ClientID      string          `dynamodbav:"client_id"`
	OrderNumber   string          `dynamodbav:"order_number"`
	Items         []orderItemItem `dynamodbav:"items"`
	TotalHT       string          `dynamodbav:"total_ht"`
	TotalVAT      string          `dynamodbav:"total_vat"`
	TotalTTC      string          `dynamodbav:"total_ttc"`
	DepositAmount string          `dynamodbav:"deposit_amount"`
	DepositVAT    string          `dynamodbav:"deposit_vat"`
	GrandTotal    string          `dynamodbav:"grand_total"`
	Status        string          `dynamodbav:"status"`
	CreatedAt     string          `dynamodbav:"created_at"`
	CreatedBy     string          `dynamodbav:"created_by,omitempty"`
}

// OrderDynamoRepository persists Order entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)

type OrderDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IOrderRepository = (*OrderDynamoRepository)(nil)

func NewOrderDynamoRepository(ddb *dynamodb.Client) *OrderDynamoRepository {
	return &OrderDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("ORDERS_TABLE", defaultOrdersTableName),
	}
}

func (r *OrderDynamoRepository) Create(ctx context.Context, o entities.Order) (entities.Order, error) {
	av, err := attributevalue.MarshalMap(toOrderItem(o))
	if err != nil {
		return entities.Order{}, err
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
		return entities.Order{}, err
	}
	return o, nil
}

func (r *OrderDynamoRepository) GetByID(ctx context.Context, id string) (entities.Order, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Order{}, err
	}
	if len(out.Item) == 0 {
		return entities.Order{}, nil
	}

	var it orderItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Order{}, err
	}
	return fromOrderItem(it), nil
}

func (r *OrderDynamoRepository) List(ctx context.Context) ([]entities.Order, error) {
	orders := make([]entities.Order, 0)

	var startKey map[string]types.AttributeValue
	for {
		out, err := r.ddb.Scan(ctx, &dynamodb.ScanInput{
			TableName:         aws.String(r.tableName),
			ExclusiveStartKey: startKey,
		})
		if err != nil {
			return nil, err
		}
		for _, raw := range out.Items {
			var it orderItem
			if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
				return nil, err
			}
			orders = append(orders, fromOrderItem(it))
		}
		if out.LastEvaluatedKey == nil {
			return orders, nil
		}
		startKey = out.LastEvaluatedKey
	}
}

func (r *OrderDynamoRepository) Update(ctx context.Context, o entities.Order) (entities.Order, error) {
	av, err := attributevalue.MarshalMap(toOrderItem(o))
	if err != nil {
		return entities.Order{}, err
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
		return entities.Order{}, err
	}
	return o, nil
}

func (r *OrderDynamoRepository) Count(ctx context.Context) (int, error) {
	return r.count(ctx, "", "")
}

func (r *OrderDynamoRepository) CountByStatus(ctx context.Context, status entities.OrderStatus) (int, error) {
	return r.count(ctx, "#status = :status", string(status))
}

func (r *OrderDynamoRepository) count(ctx context.Context, filter, status string) (int, error) {
	count := 0

	var startKey map[string]types.AttributeValue
	for {
		in := &dynamodb.ScanInput{
			TableName:         aws.String(r.tableName),
			Select:            types.SelectCount,
			ExclusiveStartKey: startKey,
		}
		if filter != "" {
			in.FilterExpression = aws.String(filter)
			in.ExpressionAttributeNames = map[string]string{"#status": "status"}
			in.ExpressionAttributeValues = map[string]types.AttributeValue{
				":status": &types.AttributeValueMemberS{Value: status},
			}
		}
		out, err := r.ddb.Scan(ctx, in)
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

func toOrderItemItems(items []entities.OrderItem) []orderItemItem {
	out := make([]orderItemItem, 0, len(items))
	for _, item := range items {
		out = append(out, orderItemItem{
			VehicleID:      item.VehicleID,
			Quantity:       item.Quantity,
			DailyRate:      floatToString(item.DailyRate),
			StartDate:      formatTime(item.StartDate),
			EndDate:        formatTime(item.EndDate),
			TotalDays:      item.TotalDays,
			ItemTotalHT:    floatToString(item.ItemTotalHT),
			IsRenewable:    item.IsRenewable,
			RentalPeriod:   string(item.RentalPeriod),
			RentalDuration: item.RentalDuration,
		})
	}
	return out
}

func fromOrderItemItems(items []orderItemItem) []entities.OrderItem {
	out := make([]entities.OrderItem, 0, len(items))
	for _, it := range items {
		out = append(out, entities.OrderItem{
			VehicleID:      it.VehicleID,
			Quantity:       it.Quantity,
			DailyRate:      stringToFloat(it.DailyRate),
			StartDate:      parseTime(it.StartDate),
			EndDate:        parseTime(it.EndDate),
			TotalDays:      it.TotalDays,
			ItemTotalHT:    stringToFloat(it.ItemTotalHT),
			IsRenewable:    it.IsRenewable,
			RentalPeriod:   entities.RentalPeriod(it.RentalPeriod),
			RentalDuration: it.RentalDuration,
		})
	}
	return out
}

func toOrderItem(o entities.Order) orderItem {
	return orderItem{
		ID:            o.ID,
		ClientID:      o.ClientID,
		OrderNumber:   o.OrderNumber,
		Items:         toOrderItemItems(o.Items),
		TotalHT:       floatToString(o.TotalHT),
		TotalVAT:      floatToString(o.TotalVAT),
		TotalTTC:      floatToString(o.TotalTTC),
		DepositAmount: floatToString(o.DepositAmount),
		DepositVAT:    floatToString(o.DepositVAT),
		GrandTotal:    floatToString(o.GrandTotal),
		Status:        string(o.Status),
		CreatedAt:     formatTime(o.CreatedAt),
		CreatedBy:     o.CreatedBy,
	}
}

func fromOrderItem(it orderItem) entities.Order {
	o := entities.Order{
		ID:          it.ID,
		ClientID:    it.ClientID,
		OrderNumber: it.OrderNumber,
		Items:       fromOrderItemItems(it.Items),
		Status:      entities.OrderStatus(it.Status),
		CreatedAt:   parseTime(it.CreatedAt),
		CreatedBy:   it.CreatedBy,
	}
	o.TotalHT = stringToFloat(it.TotalHT)
	o.TotalVAT = stringToFloat(it.TotalVAT)
	o.TotalTTC = stringToFloat(it.TotalTTC)
	o.DepositAmount = stringToFloat(it.DepositAmount)
	o.DepositVAT = stringToFloat(it.DepositVAT)
	o.GrandTotal = stringToFloat(it.GrandTotal)
	return o
}
