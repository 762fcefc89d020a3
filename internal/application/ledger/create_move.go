package ledger

import (
	"context"

	"github.com/stockmaster/stockmaster-api/internal/application/dto"
	"github.com/stockmaster/stockmaster-api/internal/domain/entity"
)

// CreateMoveFromRequest adapta el request HTTP al caso de uso
// CreateMove(ctx, CreateMoveInput). Usar desde handlers que tengan el userID
// del token y el dto.CreateMoveRequest ya parseado.
func (uc *UseCase) CreateMoveFromRequest(ctx context.Context, userID string, in dto.CreateMoveRequest) (*entity.StockMove, error) {
	input := CreateMoveInput{
		Type:                  in.Type,
		ProductID:             in.ProductID,
		SourceLocationID:      in.SourceLocationID,
		DestinationLocationID: in.DestinationLocationID,
		Quantity:              in.Quantity,
		Reference:             in.Reference,
		Notes:                 in.Notes,
		UserID:                userID,
	}
	return uc.CreateMove(ctx, input)
}
