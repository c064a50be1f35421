package interfaces

import (
	"context"

	"autopro_rental/internal/domain/entities"
)

// IBusinessRegistry abstracts the official company registry (INSEE Sirene)
// used to validate identifiers and prefill client records.
type IBusinessRegistry interface {
	LookupCompany(ctx context.Context, identifier string) (entities.CompanyInfo, error)
	ValidateSIREN(ctx context.Context, siren string) (bool, error)
	ValidateSIRET(ctx context.Context, siret string) (bool, error)
}
