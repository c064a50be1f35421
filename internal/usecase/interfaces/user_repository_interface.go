package interfaces

import (
	"context"

	"autopro_rental/internal/domain/entities"
)

// IUserRepository abstracts DynamoDB persistence for User.

type IUserRepository interface {
	Create(ctx context.Context, u entities.User) (entities.User, error)
	GetByID(ctx context.Context, id string) (entities.User, error)
	GetByUsername(ctx context.Context, username string) (entities.User, error)
	GetByEmail(ctx context.Context, email string) (entities.User, error)
}
