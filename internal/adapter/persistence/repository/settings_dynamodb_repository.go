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

const (
	defaultSettingsTableName = "settings"
	settingsDocumentID       = "default"
)

type settingsItem struct {
	ID              string             `dynamodbav:"id"`
	CompanyName     string             `dynamodbav:"company_name,omitempty"`
	CompanyAddress  string             `dynamodbav:"company_address,omitempty"`
	CompanyPhone    string             `dynamodbav:"company_phone,omitempty"`
	CompanyEmail    string             `dynamodbav:"company_email,omitempty"`
	VATRates        map[string]float64 `dynamodbav:"vat_rates,omitempty"`
	PaymentDelays   map[string]int     `dynamodbav:"payment_delays,omitempty"`
	ReminderPeriods []int              `dynamodbav:"reminder_periods,omitempty"`
	SalesAccount    string             `dynamodbav:"sales_account,omitempty"`
	VATStandardAcct string             `dynamodbav:"vat_standard_account,omitempty"`
	VATReducedAcct  string             `dynamodbav:"vat_reduced_account,omitempty"`
	MailgunAPIKey   string             `dynamodbav:"mailgun_api_key,omitempty"`
	MailgunDomain   string             `dynamodbav:"mailgun_domain,omitempty"`
}

// SettingsDynamoRepository persists the single Settings document in DynamoDB.
//
// Table requirements:
//   - PK: id (string), always "default"

type SettingsDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.ISettingsRepository = (*SettingsDynamoRepository)(nil)

func NewSettingsDynamoRepository(ddb *dynamodb.Client) *SettingsDynamoRepository {
	return &SettingsDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("SETTINGS_TABLE", defaultSettingsTableName),
	}
}

func (r *SettingsDynamoRepository) Get(ctx context.Context) (entities.Settings, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: settingsDocumentID},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Settings{}, err
	}
	if len(out.Item) == 0 {
		return entities.Settings{}, nil
	}

	var it settingsItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Settings{}, err
	}
	return fromSettingsItem(it), nil
}

func (r *SettingsDynamoRepository) Put(ctx context.Context, s entities.Settings) (entities.Settings, error) {
	s.ID = settingsDocumentID
	av, err := attributevalue.MarshalMap(toSettingsItem(s))
	if err != nil {
		return entities.Settings{}, err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      av,
	})
	if err != nil {
		return entities.Settings{}, err
	}
	return s, nil
}

func toSettingsItem(s entities.Settings) settingsItem {
	return settingsItem{
		ID:              s.ID,
		CompanyName:     s.CompanyName,
		CompanyAddress:  s.CompanyAddress,
		CompanyPhone:    s.CompanyPhone,
		CompanyEmail:    s.CompanyEmail,
		VATRates:        s.VATRates,
		PaymentDelays:   s.PaymentDelays,
		ReminderPeriods: s.ReminderPeriods,
		SalesAccount:    s.Accounts.Sales,
		VATStandardAcct: s.Accounts.VATStandard,
		VATReducedAcct:  s.Accounts.VATReduced,
		MailgunAPIKey:   s.MailgunAPIKey,
		MailgunDomain:   s.MailgunDomain,
	}
}

func fromSettingsItem(it settingsItem) entities.Settings {
	return entities.Settings{
		ID:              it.ID,
		CompanyName:     it.CompanyName,
		CompanyAddress:  it.CompanyAddress,
		CompanyPhone:    it.CompanyPhone,
		CompanyEmail:    it.CompanyEmail,
		VATRates:        it.VATRates,
		PaymentDelays:   it.PaymentDelays,
		ReminderPeriods: it.ReminderPeriods,
		Accounts: entities.AccountingAccounts{
			Sales:       it.SalesAccount,
			VATStandard: it.VATStandardAcct,
			VATReduced:  it.VATReducedAcct,
		},
		MailgunAPIKey: it.MailgunAPIKey,
		MailgunDomain: it.MailgunDomain,
	}
}
