package repository

import (
	"context"
	"time"

	"autopro_rental/internal/domain/entities"
	"autopro_rental/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const defaultAccountingEntriesTableName = "accounting_entries"

type accountingEntryItem struct {
	ID          string `dynamodbav:"id"`
	EntryDate   string `dynamodbav:"entry_date"`
	InvoiceID   string `dynamodbav:"invoice_id"`
	ClientID    string `dynamodbav:"client_id"`
	AccountCode string `dynamodbav:"account_code"`
	AccountName string `dynamodbav:"account_name"`
	Debit       string `dynamodbav:"debit"`
	Credit      string `dynamodbav:"credit"`
	Description string `dynamodbav:"description"`
	Reference   string `dynamodbav:"reference"`
	EntryType   string `dynamodbav:"entry_type"`
}

// AccountingEntryDynamoRepository persists the append-only accounting ledger
// in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//
// Entry sets are small (2-3 rows per invoice or settlement), so CreateMany
// writes them one by one; a partial failure leaves the already written rows
// in place and surfaces the error to the best-effort caller.

type AccountingEntryDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IAccountingEntryRepository = (*AccountingEntryDynamoRepository)(nil)

func NewAccountingEntryDynamoRepository(ddb *dynamodb.Client) *AccountingEntryDynamoRepository {
	return &AccountingEntryDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("ACCOUNTING_ENTRIES_TABLE", defaultAccountingEntriesTableName),
	}
}

func (r *AccountingEntryDynamoRepository) CreateMany(ctx context.Context, entries []entities.AccountingEntry) error {
	for _, e := range entries {
		av, err := attributevalue.MarshalMap(toAccountingEntryItem(e))
		if err != nil {
			return err
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
			return err
		}
	}
	return nil
}

func (r *AccountingEntryDynamoRepository) List(ctx context.Context) ([]entities.AccountingEntry, error) {
	return r.scan(ctx, nil, nil)
}

func (r *AccountingEntryDynamoRepository) ListByDateRange(ctx context.Context, start, end time.Time) ([]entities.AccountingEntry, error) {
	filter := aws.String("entry_date BETWEEN :start AND :end")
	values := map[string]types.AttributeValue{
		":start": &types.AttributeValueMemberS{Value: formatTime(start)},
		":end":   &types.AttributeValueMemberS{Value: formatTime(end)},
	}
	return r.scan(ctx, filter, values)
}

func (r *AccountingEntryDynamoRepository) scan(ctx context.Context, filter *string, values map[string]types.AttributeValue) ([]entities.AccountingEntry, error) {
	entries := make([]entities.AccountingEntry, 0)

	var startKey map[string]types.AttributeValue
	for {
		out, err := r.ddb.Scan(ctx, &dynamodb.ScanInput{
			TableName:                 aws.String(r.tableName),
			FilterExpression:          filter,
			ExpressionAttributeValues: values,
			ExclusiveStartKey:         startKey,
		})
		if err != nil {
			return nil, err
		}
		for _, raw := range out.Items {
			var it accountingEntryItem
			if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
				return nil, err
			}
			entries = append(entries, fromAccountingEntryItem(it))
		}
		if out.LastEvaluatedKey == nil {
			return entries, nil
		}
		startKey = out.LastEvaluatedKey
	}
}

func toAccountingEntryItem(e entities.AccountingEntry) accountingEntryItem {
	return accountingEntryItem{
		ID:          e.ID,
		EntryDate:   formatTime(e.EntryDate),
		InvoiceID:   e.InvoiceID,
		ClientID:    e.ClientID,
		AccountCode: e.AccountCode,
		AccountName: e.AccountName,
		Debit:       floatToString(e.Debit),
		Credit:      floatToString(e.Credit),
		Description: e.Description,
		Reference:   e.Reference,
		EntryType:   string(e.EntryType),
	}
}

func fromAccountingEntryItem(it accountingEntryItem) entities.AccountingEntry {
	return entities.AccountingEntry{
		ID:          it.ID,
		EntryDate:   parseTime(it.EntryDate),
		InvoiceID:   it.InvoiceID,
		ClientID:    it.ClientID,
		AccountCode: it.AccountCode,
		AccountName: it.AccountName,
		Debit:       stringToFloat(it.Debit),
		Credit:      stringToFloat(it.Credit),
		Description: it.Description,
		Reference:   it.Reference,
		EntryType:   entities.AccountingEntryType(it.EntryType),
	}
}
