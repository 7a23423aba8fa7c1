// Package inventory consultas de inventario expuestas solo al Inventory Manager.
package inventory

import (
	"context"
	"fmt"

	"github.com/jhoicas/rapidxcel-logistics/internal/application/dto"
	"github.com/jhoicas/rapidxcel-logistics/internal/domain/repository"
)

// StockUseCase lectura del inventario central.
type StockUseCase struct {
	collections repository.CollectionRepository
}

// NewStockUseCase construye el caso de uso.
func NewStockUseCase(collections repository.CollectionRepository) *StockUseCase {
	return &StockUseCase{collections: collections}
}

// List inventario completo. Nunca devuelve nil: sin ítems -> slice vacío.
func (uc *StockUseCase) List(ctx context.Context) ([]dto.StockResponse, error) {
	stocks, err := uc.collections.ListStocks(ctx)
	if err != nil {
		return nil, fmt.Errorf("listar stock: %w", err)
	}
	out := dto.NewStockResponses(stocks)
	if out == nil {
		out = []dto.StockResponse{}
	}
	return out, nil
}
