package usecase

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"autopro_rental/internal/domain/entities"
	"autopro_rental/internal/usecase/interfaces"

	"github.com/google/uuid"
)

var (
	ErrInvalidCompanyName = errors.New("company name is required")
	ErrInvalidVATRate     = errors.New("vat rate cannot be negative")
	ErrInvalidIdentifier  = errors.New("identifier must be a 9-digit SIREN or 14-digit SIRET")

	// ErrCompanyNotFound is returned by registry implementations when the
	// identifier matches no registered company.
	ErrCompanyNotFound = errors.New("company not found in registry")
)

// defaultVATRate is the French standard rate applied when a client is
// created without one.
const defaultVATRate = 20.0

type CreateClientCommand struct {
	CompanyName string
	ContactName string
	Email       string
	Phone       string
	Address     string
	City        string
	PostalCode  string
	Country     string
	VATRate     float64
	VATNumber   string
	SIREN       string
	RCSNumber   string
}

type IClientUseCase interface {
	Create(ctx context.Context, cmd CreateClientCommand) (entities.Client, error)
	GetByID(ctx context.Context, id string) (entities.Client, error)
	List(ctx context.Context) ([]entities.Client, error)
	Update(ctx context.Context, c entities.Client) (entities.Client, error)
	Deactivate(ctx context.Context, id string) error
	LookupCompany(ctx context.Context, identifier string) (entities.CompanyInfo, error)
}

type ClientUseCase struct {
	clients  interfaces.IClientRepository
	registry interfaces.IBusinessRegistry
}

var _ IClientUseCase = (*ClientUseCase)(nil)

func NewClientUseCase(clients interfaces.IClientRepository, registry interfaces.IBusinessRegistry) *ClientUseCase {
	return &ClientUseCase{clients: clients, registry: registry}
}

func (u *ClientUseCase) Create(ctx context.Context, cmd CreateClientCommand) (entities.Client, error) {
	cmd.CompanyName = strings.TrimSpace(cmd.CompanyName)
	if cmd.CompanyName == "" {
		return entities.Client{}, ErrInvalidCompanyName
	}
	if cmd.VATRate < 0 {
		return entities.Client{}, ErrInvalidVATRate
	}
	if cmd.VATRate == 0 {
		cmd.VATRate = defaultVATRate
	}
	if strings.TrimSpace(cmd.Country) == "" {
		cmd.Country = "France"
	}

	c := entities.Client{
		ID:          uuid.NewString(),
		CompanyName: cmd.CompanyName,
		ContactName: cmd.ContactName,
		Email:       cmd.Email,
		Phone:       cmd.Phone,
		Address:     cmd.Address,
		City:        cmd.City,
		PostalCode:  cmd.PostalCode,
		Country:     cmd.Country,
		VATRate:     cmd.VATRate,
		VATNumber:   cmd.VATNumber,
		SIREN:       cmd.SIREN,
		RCSNumber:   cmd.RCSNumber,
		IsActive:    true,
		CreatedAt:   time.Now().UTC(),
	}
	created, err := u.clients.Create(ctx, c)
	if err != nil {
		return entities.Client{}, err
	}

	log.Printf("[client][usecase] client created client_id=%s company=%s vat_rate=%.1f", created.ID, created.CompanyName, created.VATRate)
	return created, nil
}

func (u *ClientUseCase) GetByID(ctx context.Context, id string) (entities.Client, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Client{}, ErrInvalidClientID
	}
	c, err := u.clients.GetByID(ctx, id)
	if err != nil {
		return entities.Client{}, err
	}
	if c.ID == "" {
		return entities.Client{}, ErrClientNotFound
	}
	return c, nil
}

func (u *ClientUseCase) List(ctx context.Context) ([]entities.Client, error) {
	return u.clients.ListActive(ctx)
}

func (u *ClientUseCase) Update(ctx context.Context, c entities.Client) (entities.Client, error) {
	existing, err := u.GetByID(ctx, c.ID)
	if err != nil {
		return entities.Client{}, err
	}
	if strings.TrimSpace(c.CompanyName) == "" {
		return entities.Client{}, ErrInvalidCompanyName
	}
	if c.VATRate < 0 {
		return entities.Client{}, ErrInvalidVATRate
	}
	c.CreatedAt = existing.CreatedAt
	c.IsActive = existing.IsActive
	return u.clients.Update(ctx, c)
}

// Deactivate soft-deletes the client. Orders and invoices keep referencing
// it, so the record itself is never removed.
func (u *ClientUseCase) Deactivate(ctx context.Context, id string) error {
	c, err := u.GetByID(ctx, id)
	if err != nil {
		return err
	}
	c.IsActive = false
	if _, err := u.clients.Update(ctx, c); err != nil {
		return err
	}
	log.Printf("[client][usecase] client deactivated client_id=%s", c.ID)
	return nil
}

// LookupCompany queries the business registry with a SIREN or SIRET so the
// front office can prefill a client form.
func (u *ClientUseCase) LookupCompany(ctx context.Context, identifier string) (entities.CompanyInfo, error) {
	identifier = strings.TrimSpace(strings.ReplaceAll(identifier, " ", ""))
	if len(identifier) != 9 && len(identifier) != 14 {
		return entities.CompanyInfo{}, ErrInvalidIdentifier
	}
	return u.registry.LookupCompany(ctx, identifier)
}
