package interfaces

import (
	"context"

	"autopro_rental/internal/domain/entities"
)

// ISettingsRepository abstracts DynamoDB persistence for the single Settings
// document. Get returns a zero-value Settings (empty ID) when none exists.

type ISettingsRepository interface {
	Get(ctx context.Context) (entities.Settings, error)
	Put(ctx context.Context, s entities.Settings) (entities.Settings, error)
}
