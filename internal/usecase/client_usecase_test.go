package usecase

import (
	"context"
	"errors"
	"testing"

	"autopro_rental/internal/domain/entities"
	mock_interfaces "autopro_rental/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

func TestClientUseCase_Create(t *testing.T) {
	t.Run("missing company name", func(t *testing.T) {
		uc := NewClientUseCase(nil, nil)
		_, err := uc.Create(context.Background(), CreateClientCommand{CompanyName: "   "})
		if !errors.Is(err, ErrInvalidCompanyName) {
			t.Fatalf("expected ErrInvalidCompanyName, got %v", err)
		}
	})

	t.Run("negative vat rate", func(t *testing.T) {
		uc := NewClientUseCase(nil, nil)
		_, err := uc.Create(context.Background(), CreateClientCommand{CompanyName: "Morel", VATRate: -1})
		if !errors.Is(err, ErrInvalidVATRate) {
			t.Fatalf("expected ErrInvalidVATRate, got %v", err)
		}
	})

	t.Run("defaults applied", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		clients := mock_interfaces.NewMockIClientRepository(ctrl)
		uc := NewClientUseCase(clients, nil)

		clients.EXPECT().Create(gomock.Any(), gomock.AssignableToTypeOf(entities.Client{})).DoAndReturn(
			func(_ context.Context, c entities.Client) (entities.Client, error) {
				if c.ID == "" || !c.IsActive || c.CreatedAt.IsZero() {
					t.Fatalf("unexpected client: %+v", c)
				}
				if c.VATRate != 20 {
					t.Fatalf("expected default vat rate 20, got %.1f", c.VATRate)
				}
				if c.Country != "France" {
					t.Fatalf("expected default country France, got %s", c.Country)
				}
				return c, nil
			},
		)

		created, err := uc.Create(context.Background(), CreateClientCommand{CompanyName: "Transports Morel"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if created.CompanyName != "Transports Morel" {
			t.Fatalf("unexpected company: %s", created.CompanyName)
		}
	})
}

func TestClientUseCase_Deactivate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	clients := mock_interfaces.NewMockIClientRepository(ctrl)
	uc := NewClientUseCase(clients, nil)

	clients.EXPECT().GetByID(gomock.Any(), "cli-1").Return(entities.Client{ID: "cli-1", CompanyName: "Morel", IsActive: true}, nil)
	clients.EXPECT().Update(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, c entities.Client) (entities.Client, error) {
			if c.IsActive {
				t.Fatalf("expected client deactivated")
			}
			return c, nil
		},
	)

	if err := uc.Deactivate(context.Background(), "cli-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestClientUseCase_LookupCompany(t *testing.T) {
	t.Run("invalid identifier length", func(t *testing.T) {
		uc := NewClientUseCase(nil, nil)
		_, err := uc.LookupCompany(context.Background(), "12345")
		if !errors.Is(err, ErrInvalidIdentifier) {
			t.Fatalf("expected ErrInvalidIdentifier, got %v", err)
		}
	})

	t.Run("siren lookup passthrough", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		registry := mock_interfaces.NewMockIBusinessRegistry(ctrl)
		uc := NewClientUseCase(nil, registry)

		registry.EXPECT().LookupCompany(gomock.Any(), "732829320").Return(entities.CompanyInfo{SIREN: "732829320", CompanyName: "SNCF"}, nil)

		info, err := uc.LookupCompany(context.Background(), "732 829 320")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if info.CompanyName != "SNCF" {
			t.Fatalf("unexpected company: %+v", info)
		}
	})
}
