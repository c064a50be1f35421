package usecase

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"autopro_rental/internal/domain/accounting"
	"autopro_rental/internal/domain/entities"
	"autopro_rental/internal/usecase/interfaces"

	"github.com/google/uuid"
)

var (
	ErrInvalidVehicleID    = errors.New("invalid vehicle id")
	ErrInvalidLicensePlate = errors.New("license plate is required")
	ErrInvalidDailyRate    = errors.New("daily rate cannot be negative")
)

type CreateVehicleCommand struct {
	Type                   entities.VehicleType
	Brand                  string
	Model                  string
	LicensePlate           string
	FirstRegistration      time.Time
	TechnicalControlExpiry time.Time
	InsuranceCompany       string
	InsuranceContract      string
	InsuranceAmount        float64
	InsuranceExpiry        time.Time
	DailyRate              float64
	AccountingAccount      string
}

type IVehicleUseCase interface {
	Create(ctx context.Context, cmd CreateVehicleCommand) (entities.Vehicle, error)
	GetByID(ctx context.Context, id string) (entities.Vehicle, error)
	List(ctx context.Context) ([]entities.Vehicle, error)
	Update(ctx context.Context, v entities.Vehicle) (entities.Vehicle, error)
}

type VehicleUseCase struct {
	vehicles interfaces.IVehicleRepository
}

var _ IVehicleUseCase = (*VehicleUseCase)(nil)

func NewVehicleUseCase(vehicles interfaces.IVehicleRepository) *VehicleUseCase {
	return &VehicleUseCase{vehicles: vehicles}
}

func (u *VehicleUseCase) Create(ctx context.Context, cmd CreateVehicleCommand) (entities.Vehicle, error) {
	cmd.LicensePlate = strings.ToUpper(strings.TrimSpace(cmd.LicensePlate))
	if cmd.LicensePlate == "" {
		return entities.Vehicle{}, ErrInvalidLicensePlate
	}
	if cmd.DailyRate < 0 {
		return entities.Vehicle{}, ErrInvalidDailyRate
	}
	if cmd.Type == "" {
		cmd.Type = entities.VehicleTypeCar
	}
	if strings.TrimSpace(cmd.AccountingAccount) == "" {
		cmd.AccountingAccount = accounting.AccountSalesServices
	}

	v := entities.Vehicle{
		ID:                     uuid.NewString(),
		Type:                   cmd.Type,
		Brand:                  cmd.Brand,
		Model:                  cmd.Model,
		LicensePlate:           cmd.LicensePlate,
		FirstRegistration:      cmd.FirstRegistration,
		TechnicalControlExpiry: cmd.TechnicalControlExpiry,
		InsuranceCompany:       cmd.InsuranceCompany,
		InsuranceContract:      cmd.InsuranceContract,
		InsuranceAmount:        cmd.InsuranceAmount,
		InsuranceExpiry:        cmd.InsuranceExpiry,
		DailyRate:              cmd.DailyRate,
		AccountingAccount:      cmd.AccountingAccount,
		IsAvailable:            true,
		CreatedAt:              time.Now().UTC(),
	}
	created, err := u.vehicles.Create(ctx, v)
	if err != nil {
		return entities.Vehicle{}, err
	}

	log.Printf("[vehicle][usecase] vehicle created vehicle_id=%s plate=%s rate=%.2f", created.ID, created.LicensePlate, created.DailyRate)
	return created, nil
}

func (u *VehicleUseCase) GetByID(ctx context.Context, id string) (entities.Vehicle, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Vehicle{}, ErrInvalidVehicleID
	}
	v, err := u.vehicles.GetByID(ctx, id)
	if err != nil {
		return entities.Vehicle{}, err
	}
	if v.ID == "" {
		return entities.Vehicle{}, ErrVehicleNotFound
	}
	return v, nil
}

func (u *VehicleUseCase) List(ctx context.Context) ([]entities.Vehicle, error) {
	return u.vehicles.List(ctx)
}

func (u *VehicleUseCase) Update(ctx context.Context, v entities.Vehicle) (entities.Vehicle, error) {
	existing, err := u.GetByID(ctx, v.ID)
	if err != nil {
		return entities.Vehicle{}, err
	}
	if strings.TrimSpace(v.LicensePlate) == "" {
		return entities.Vehicle{}, ErrInvalidLicensePlate
	}
	if v.DailyRate < 0 {
		return entities.Vehicle{}, ErrInvalidDailyRate
	}
	v.LicensePlate = strings.ToUpper(strings.TrimSpace(v.LicensePlate))
	v.CreatedAt = existing.CreatedAt
	return u.vehicles.Update(ctx, v)
}
