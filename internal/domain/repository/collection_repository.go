package repository

import (
	"context"

	"github.com/jhoicas/rapidxcel-logistics/internal/domain/entity"
)

// CollectionRepository lectura de las colecciones que acompañan al perfil
// según el rol. Solo lectura: la mutación de stock y órdenes no vive aquí.
type CollectionRepository interface {
	ListStocks(ctx context.Context) ([]entity.Stock, error)
	ListReplenishmentOrders(ctx context.Context, managerID string) ([]entity.SupplyOrder, error)
	ListSupplierProducts(ctx context.Context, supplierUserID string) ([]entity.Product, error)
	ListCatalogProducts(ctx context.Context) ([]entity.Product, error)
	ListSupplyOrders(ctx context.Context, supplierUserID string) ([]entity.SupplyOrder, error)
	ListNotifications(ctx context.Context, userID string) ([]entity.Notification, error)
	ListSuppliers(ctx context.Context) ([]entity.Supplier, error)
	ListCourierOrders(ctx context.Context, courierUserID string) ([]entity.Order, error)
}
