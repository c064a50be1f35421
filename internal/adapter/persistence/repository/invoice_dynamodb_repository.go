package repository

import (
	"context"
	"errors"
	"time"

	"autopro_rental/internal/domain/entities"
	"autopro_rental/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	defaultInvoicesTableName = "invoices"
	invoicesOrderIDIndex     = "order_id-index"
)

// ErrVersionConflict reports a lost optimistic-lock race on an invoice
// update: another writer bumped the version first.
var ErrVersionConflict = errors.New("invoice was modified concurrently")

type invoiceItem struct {
	ID              string          `dynamodbav:"id"`
	InvoiceNumber   string          `dynamodbav:"invoice_number"`
	OrderID         string          `dynamodbav:"order_id"`
	ClientID        string          `dynamodbav:"client_id"`
	InvoiceDate     string          `dynamodbav:"invoice_date"`
	DueDate         string          `dynamodbav:"due_date"`
	Items           []orderItemItem `dynamodbav:"items"`
	TotalHT         string          `dynamodbav:"total_ht"`
	TotalVAT        string          `dynamodbav:"total_vat"`
	TotalTTC        string          `dynamodbav:"total_ttc"`
	DepositAmount   string          `dynamodbav:"deposit_amount"`
	DepositVAT      string          `dynamodbav:"deposit_vat"`
	GrandTotal      string          `dynamodbav:"grand_total"`
	Status          string          `dynamodbav:"status"`
	AmountPaid      string          `dynamodbav:"amount_paid"`
	RemainingAmount string          `dynamodbav:"remaining_amount"`
	PaymentDate     string          `dynamodbav:"payment_date,omitempty"`
	PDFData         string          `dynamodbav:"pdf_data,omitempty"`
	Version         int64           `dynamodbav:"version"`
	CreatedAt       string          `dynamodbav:"created_at"`
}

// InvoiceDynamoRepository persists Invoice entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: order_id-index (PK: order_id)
//
// Update is an optimistic conditional write on the version attribute: the
// stored version must match the one read, and the write bumps it. Payment
// aggregates therefore never clobber a concurrent writer silently.

type InvoiceDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IInvoiceRepository = (*InvoiceDynamoRepository)(nil)

func NewInvoiceDynamoRepository(ddb *dynamodb.Client) *InvoiceDynamoRepository {
	return &InvoiceDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("INVOICES_TABLE", defaultInvoicesTableName),
	}
}

func (r *InvoiceDynamoRepository) Create(ctx context.Context, inv entities.Invoice) (entities.Invoice, error) {
	av, err := attributevalue.MarshalMap(toInvoiceItem(inv))
	if err != nil {
		return entities.Invoice{}, err
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
		return entities.Invoice{}, err
	}
	return inv, nil
}

func (r *InvoiceDynamoRepository) GetByID(ctx context.Context, id string) (entities.Invoice, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Invoice{}, err
	}
	if len(out.Item) == 0 {
		return entities.Invoice{}, nil
	}

	var it invoiceItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Invoice{}, err
	}
	return fromInvoiceItem(it), nil
}

func (r *InvoiceDynamoRepository) List(ctx context.Context) ([]entities.Invoice, error) {
	return r.scan(ctx, nil, nil, nil)
}

func (r *InvoiceDynamoRepository) ListByOrderID(ctx context.Context, orderID string) ([]entities.Invoice, error) {
	out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(invoicesOrderIDIndex),
		KeyConditionExpression: aws.String("order_id = :oid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":oid": &types.AttributeValueMemberS{Value: orderID},
		},
	})
	if err != nil {
		return nil, err
	}

	invoices := make([]entities.Invoice, 0, len(out.Items))
	for _, raw := range out.Items {
		var it invoiceItem
		if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
			return nil, err
		}
		invoices = append(invoices, fromInvoiceItem(it))
	}
	return invoices, nil
}

func (r *InvoiceDynamoRepository) ListOverdue(ctx context.Context, now time.Time) ([]entities.Invoice, error) {
	filter, names, values := overdueFilter(now)
	return r.scan(ctx, filter, names, values)
}

func (r *InvoiceDynamoRepository) Update(ctx context.Context, inv entities.Invoice) (entities.Invoice, error) {
	previousVersion := inv.Version
	inv.Version++

	av, err := attributevalue.MarshalMap(toInvoiceItem(inv))
	if err != nil {
		return entities.Invoice{}, err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_exists(#id) AND #version = :version"),
		ExpressionAttributeNames: map[string]string{
			"#id":      "id",
			"#version": "version",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":version": &types.AttributeValueMemberN{Value: formatInt(previousVersion)},
		},
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			return entities.Invoice{}, ErrVersionConflict
		}
		return entities.Invoice{}, err
	}
	return inv, nil
}

func (r *InvoiceDynamoRepository) Count(ctx context.Context) (int, error) {
	return r.count(ctx, nil, nil, nil)
}

func (r *InvoiceDynamoRepository) CountOverdue(ctx context.Context, now time.Time) (int, error) {
	filter, names, values := overdueFilter(now)
	return r.count(ctx, filter, names, values)
}

// overdueFilter matches invoices whose due date has lapsed and whose status
// still expects money: sent, partially_paid or already flagged overdue.
func overdueFilter(now time.Time) (*string, map[string]string, map[string]types.AttributeValue) {
	filter := aws.String("due_date < :now AND #status IN (:sent, :partial, :overdue)")
	names := map[string]string{"#status": "status"}
	values := map[string]types.AttributeValue{
		":now":     &types.AttributeValueMemberS{Value: formatTime(now)},
		":sent":    &types.AttributeValueMemberS{Value: string(entities.InvoiceStatusSent)},
		":partial": &types.AttributeValueMemberS{Value: string(entities.InvoiceStatusPartiallyPaid)},
		":overdue": &types.AttributeValueMemberS{Value: string(entities.InvoiceStatusOverdue)},
	}
	return filter, names, values
}

func (r *InvoiceDynamoRepository) scan(ctx context.Context, filter *string, names map[string]string, values map[string]types.AttributeValue) ([]entities.Invoice, error) {
	invoices := make([]entities.Invoice, 0)

	var startKey map[string]types.AttributeValue
	for {
		out, err := r.ddb.Scan(ctx, &dynamodb.ScanInput{
			TableName:                 aws.String(r.tableName),
			FilterExpression:          filter,
			ExpressionAttributeNames:  names,
			ExpressionAttributeValues: values,
			ExclusiveStartKey:         startKey,
		})
		if err != nil {
			return nil, err
		}
		for _, raw := range out.Items {
			var it invoiceItem
			if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
				return nil, err
			}
			invoices = append(invoices, fromInvoiceItem(it))
		}
		if out.LastEvaluatedKey == nil {
			return invoices, nil
		}
		startKey = out.LastEvaluatedKey
	}
}

func (r *InvoiceDynamoRepository) count(ctx context.Context, filter *string, names map[string]string, values map[string]types.AttributeValue) (int, error) {
	count := 0

	var startKey map[string]types.AttributeValue
	for {
		out, err := r.ddb.Scan(ctx, &dynamodb.ScanInput{
			TableName:                 aws.String(r.tableName),
			Select:                    types.SelectCount,
			FilterExpression:          filter,
			ExpressionAttributeNames:  names,
			ExpressionAttributeValues: values,
			ExclusiveStartKey:         startKey,
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

func toInvoiceItem(inv entities.Invoice) invoiceItem {
	return invoiceItem{
		ID:              inv.ID,
		InvoiceNumber:   inv.InvoiceNumber,
		OrderID:         inv.OrderID,
		ClientID:        inv.ClientID,
		InvoiceDate:     formatTime(inv.InvoiceDate),
		DueDate:         formatTime(inv.DueDate),
		Items:           toOrderItemItems(inv.Items),
		TotalHT:         floatToString(inv.TotalHT),
		TotalVAT:        floatToString(inv.TotalVAT),
		TotalTTC:        floatToString(inv.TotalTTC),
		DepositAmount:   floatToString(inv.DepositAmount),
		DepositVAT:      floatToString(inv.DepositVAT),
		GrandTotal:      floatToString(inv.GrandTotal),
		Status:          string(inv.Status),
		AmountPaid:      floatToString(inv.AmountPaid),
		RemainingAmount: floatToString(inv.RemainingAmount),
		PaymentDate:     formatTimePtr(inv.PaymentDate),
		PDFData:         inv.PDFData,
		Version:         inv.Version,
		CreatedAt:       formatTime(inv.CreatedAt),
	}
}

func fromInvoiceItem(it invoiceItem) entities.Invoice {
	inv := entities.Invoice{
		ID:              it.ID,
		InvoiceNumber:   it.InvoiceNumber,
		OrderID:         it.OrderID,
		ClientID:        it.ClientID,
		InvoiceDate:     parseTime(it.InvoiceDate),
		DueDate:         parseTime(it.DueDate),
		Items:           fromOrderItemItems(it.Items),
		Status:          entities.InvoiceStatus(it.Status),
		AmountPaid:      stringToFloat(it.AmountPaid),
		RemainingAmount: stringToFloat(it.RemainingAmount),
		PaymentDate:     parseTimePtr(it.PaymentDate),
		PDFData:         it.PDFData,
		Version:         it.Version,
		CreatedAt:       parseTime(it.CreatedAt),
	}
	inv.TotalHT = stringToFloat(it.TotalHT)
	inv.TotalVAT = stringToFloat(it.TotalVAT)
	inv.TotalTTC = stringToFloat(it.TotalTTC)
	inv.DepositAmount = stringToFloat(it.DepositAmount)
	inv.DepositVAT = stringToFloat(it.DepositVAT)
	inv.GrandTotal = stringToFloat(it.GrandTotal)
	return inv
}
