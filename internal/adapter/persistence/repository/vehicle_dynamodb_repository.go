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

const defaultVehiclesTableName = "vehicles"

type vehicleItem struct {
	ID                     string `dynamodbav:"id"`
	Type                   string `dynamodbav:"type"`
	Brand                  string `dynamodbav:"brand,omitempty"`
	Model                  string `dynamodbav:"model,omitempty"`
	LicensePlate           string `dynamodbav:"license_plate"`
	FirstRegistration      string `dynamodbav:"first_registration,omitempty"`
	TechnicalControlExpiry string `dynamodbav:"technical_control_expiry,omitempty"`
	InsuranceCompany       string `dynamodbav:"insurance_company,omitempty"`
	InsuranceContract      string `dynamodbav:"insurance_contract,omitempty"`
	InsuranceAmount        string `dynamodbav:"insurance_amount,omitempty"`
	InsuranceExpiry        string `dynamodbav:"insurance_expiry,omitempty"`
	DailyRate              string `dynamodbav:"daily_rate"`
	AccountingAccount      string `dynamodbav:"accounting_account,omitempty"`
	IsAvailable            bool   `dynamodbav:"is_available"`
	CreatedAt              string `dynamodbav:"created_at"`
}

// VehicleDynamoRepository persists Vehicle entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)

type VehicleDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IVehicleRepository = (*VehicleDynamoRepository)(nil)

func NewVehicleDynamoRepository(ddb *dynamodb.Client) *VehicleDynamoRepository {
	return &VehicleDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("VEHICLES_TABLE", defaultVehiclesTableName),
	}
}

func (r *VehicleDynamoRepository) Create(ctx context.Context, v entities.Vehicle) (entities.Vehicle, error) {
	av, err := attributevalue.MarshalMap(toVehicleItem(v))
	if err != nil {
		return entities.Vehicle{}, err
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
		return entities.Vehicle{}, err
	}
	return v, nil
}

func (r *VehicleDynamoRepository) GetByID(ctx context.Context, id string) (entities.Vehicle, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Vehicle{}, err
	}
	if len(out.Item) == 0 {
		return entities.Vehicle{}, nil
	}

	var it vehicleItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Vehicle{}, err
	}
	return fromVehicleItem(it), nil
}

func (r *VehicleDynamoRepository) List(ctx context.Context) ([]entities.Vehicle, error) {
	vehicles := make([]entities.Vehicle, 0)

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
			var it vehicleItem
			if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
				return nil, err
			}
			vehicles = append(vehicles, fromVehicleItem(it))
		}
		if out.LastEvaluatedKey == nil {
			return vehicles, nil
		}
		startKey = out.LastEvaluatedKey
	}
}

func (r *VehicleDynamoRepository) Update(ctx context.Context, v entities.Vehicle) (entities.Vehicle, error) {
	av, err := attributevalue.MarshalMap(toVehicleItem(v))
	if err != nil {
		return entities.Vehicle{}, err
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
		return entities.Vehicle{}, err
	}
	return v, nil
}

func (r *VehicleDynamoRepository) Count(ctx context.Context) (int, error) {
	count := 0

	var startKey map[string]types.AttributeValue
	for {
		out, err := r.ddb.Scan(ctx, &dynamodb.ScanInput{
			TableName:         aws.String(r.tableName),
			Select:            types.SelectCount,
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

func toVehicleItem(v entities.Vehicle) vehicleItem {
	return vehicleItem{
		ID:                     v.ID,
		Type:                   string(v.Type),
		Brand:                  v.Brand,
		Model:                  v.Model,
		LicensePlate:           v.LicensePlate,
		FirstRegistration:      formatTime(v.FirstRegistration),
		TechnicalControlExpiry: formatTime(v.TechnicalControlExpiry),
		InsuranceCompany:       v.InsuranceCompany,
		InsuranceContract:      v.InsuranceContract,
		InsuranceAmount:        floatToString(v.InsuranceAmount),
		InsuranceExpiry:        formatTime(v.InsuranceExpiry),
		DailyRate:              floatToString(v.DailyRate),
		AccountingAccount:      v.AccountingAccount,
		IsAvailable:            v.IsAvailable,
		CreatedAt:              formatTime(v.CreatedAt),
	}
}

func fromVehicleItem(it vehicleItem) entities.Vehicle {
	return entities.Vehicle{
		ID:                     it.ID,
		Type:                   entities.VehicleType(it.Type),
		Brand:                  it.Brand,
		Model:                  it.Model,
		LicensePlate:           it.LicensePlate,
		FirstRegistration:      parseTime(it.FirstRegistration),
		TechnicalControlExpiry: parseTime(it.TechnicalControlExpiry),
		InsuranceCompany:       it.InsuranceCompany,
		InsuranceContract:      it.InsuranceContract,
		InsuranceAmount:        stringToFloat(it.InsuranceAmount),
		InsuranceExpiry:        parseTime(it.InsuranceExpiry),
		DailyRate:              stringToFloat(it.DailyRate),
		AccountingAccount:      it.AccountingAccount,
		IsAvailable:            it.IsAvailable,
		CreatedAt:              parseTime(it.CreatedAt),
	}
}
