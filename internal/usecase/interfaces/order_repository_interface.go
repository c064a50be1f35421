package interfaces

import (
	"context"

	"autopro_rental/internal/domain/entities"
)

// IOrderRepository abstracts DynamoDB persistence for Order.
//
// Count feeds the CMD%06d order number sequence. Update exists for the
// renewal sweep, which advances the renewed item's end date on the source
// order.

type IOrderRepository interface {
	Create(ctx context.Context, o entities.Order) (entities.Order, error)
	GetByID(ctx context.Context, id string) (entities.Order, error)
	List(ctx context.Context) ([]entities.Order, error)
	Update(ctx context.Context, o entities.Order) (entities.Order, error)
	Count(ctx context.Context) (int, error)
	CountByStatus(ctx context.Context, status entities.OrderStatus) (int, error)
}
