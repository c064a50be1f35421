package usecase

import (
	"context"
	"log"

	"autopro_rental/internal/domain/entities"
	"autopro_rental/internal/usecase/interfaces"
)

type ISettingsUseCase interface {
	Get(ctx context.Context) (entities.Settings, error)
	Update(ctx context.Context, s entities.Settings) (entities.Settings, error)
}

type SettingsUseCase struct {
	settings interfaces.ISettingsRepository
}

var _ ISettingsUseCase = (*SettingsUseCase)(nil)

func NewSettingsUseCase(settings interfaces.ISettingsRepository) *SettingsUseCase {
	return &SettingsUseCase{settings: settings}
}

// Get returns the configuration document, creating the defaults on first
// access so callers always see a fully populated document.
func (u *SettingsUseCase) Get(ctx context.Context) (entities.Settings, error) {
	s, err := u.settings.Get(ctx)
	if err != nil {
		return entities.Settings{}, err
	}
	if s.ID == "" {
		defaults := entities.DefaultSettings()
		created, err := u.settings.Put(ctx, defaults)
		if err != nil {
			return entities.Settings{}, err
		}
		log.Printf("[settings][usecase] default settings created")
		return created, nil
	}
	return s, nil
}

// Update replaces the document wholesale. The id is pinned so there can only
// ever be one settings row.
func (u *SettingsUseCase) Update(ctx context.Context, s entities.Settings) (entities.Settings, error) {
	s.ID = "default"
	if s.VATRates == nil {
		s.VATRates = entities.DefaultSettings().VATRates
	}
	if s.PaymentDelays == nil {
		s.PaymentDelays = entities.DefaultSettings().PaymentDelays
	}
	return u.settings.Put(ctx, s)
}
