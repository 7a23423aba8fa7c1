package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/rapidxcel-logistics/internal/domain/entity"
	"github.com/jhoicas/rapidxcel-logistics/internal/domain/repository"
)

var _ repository.CollectionRepository = (*CollectionRepo)(nil)

// CollectionRepo colecciones de solo lectura cargadas con Seed*.
type CollectionRepo struct {
	mu                sync.RWMutex
	stocks            []entity.Stock
	catalog           []entity.Product
	supplierProducts  map[string][]entity.Product
	supplyOrders      map[string][]entity.SupplyOrder
	replenishment     map[string][]entity.SupplyOrder
	notificationsByID map[string][]entity.Notification
	suppliers         []entity.Supplier
	deliveries        map[string][]entity.Order
}

// NewCollectionRepository construye el repositorio vacío.
func NewCollectionRepository() *CollectionRepo {
	return &CollectionRepo{
		supplierProducts:  make(map[string][]entity.Product),
		supplyOrders:      make(map[string][]entity.SupplyOrder),
		replenishment:     make(map[string][]entity.SupplyOrder),
		notificationsByID: make(map[string][]entity.Notification),
		deliveries:        make(map[string][]entity.Order),
	}
}

func (r *CollectionRepo) SeedStocks(s ...entity.Stock) {
	r.mu.Lock()
	r.stocks = append(r.stocks, s...)
	r.mu.Unlock()
}

func (r *CollectionRepo) SeedCatalog(p ...entity.Product) {
	r.mu.Lock()
	r.catalog = append(r.catalog, p...)
	r.mu.Unlock()
}

func (r *CollectionRepo) SeedSupplierProducts(supplierUserID string, p ...entity.Product) {
	r.mu.Lock()
	r.supplierProducts[supplierUserID] = append(r.supplierProducts[supplierUserID], p...)
	r.mu.Unlock()
}

func (r *CollectionRepo) SeedSupplyOrders(supplierUserID string, o ...entity.SupplyOrder) {
	r.mu.Lock()
	r.supplyOrders[supplierUserID] = append(r.supplyOrders[supplierUserID], o...)
	r.mu.Unlock()
}

func (r *CollectionRepo) SeedReplenishmentOrders(managerID string, o ...entity.SupplyOrder) {
	r.mu.Lock()
	r.replenishment[managerID] = append(r.replenishment[managerID], o...)
	r.mu.Unlock()
}

func (r *CollectionRepo) SeedNotifications(userID string, n ...entity.Notification) {
	r.mu.Lock()
	r.notificationsByID[userID] = append(r.notificationsByID[userID], n...)
	r.mu.Unlock()
}

func (r *CollectionRepo) SeedSuppliers(s ...entity.Supplier) {
	r.mu.Lock()
	r.suppliers = append(r.suppliers, s...)
	r.mu.Unlock()
}

// SeedCourierOrders asigna órdenes al courier courierUserID.
func (r *CollectionRepo) SeedCourierOrders(courierUserID string, o ...entity.Order) {
	r.mu.Lock()
	for i := range o {
		o[i].CourierID = courierUserID
	}
	r.deliveries[courierUserID] = append(r.deliveries[courierUserID], o...)
	r.mu.Unlock()
}

func (r *CollectionRepo) ListStocks(context.Context) ([]entity.Stock, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]entity.Stock(nil), r.stocks...), nil
}

func (r *CollectionRepo) ListReplenishmentOrders(_ context.Context, managerID string) ([]entity.SupplyOrder, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]entity.SupplyOrder(nil), r.replenishment[managerID]...), nil
}

func (r *CollectionRepo) ListSupplierProducts(_ context.Context, supplierUserID string) ([]entity.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]entity.Product(nil), r.supplierProducts[supplierUserID]...), nil
}

func (r *CollectionRepo) ListCatalogProducts(context.Context) ([]entity.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]entity.Product(nil), r.catalog...), nil
}

func (r *CollectionRepo) ListSupplyOrders(_ context.Context, supplierUserID string) ([]entity.SupplyOrder, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]entity.SupplyOrder(nil), r.supplyOrders[supplierUserID]...), nil
}

func (r *CollectionRepo) ListNotifications(_ context.Context, userID string) ([]entity.Notification, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]entity.Notification(nil), r.notificationsByID[userID]...), nil
}

func (r *CollectionRepo) ListSuppliers(context.Context) ([]entity.Supplier, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]entity.Supplier(nil), r.suppliers...), nil
}

func (r *CollectionRepo) ListCourierOrders(_ context.Context, courierUserID string) ([]entity.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]entity.Order(nil), r.deliveries[courierUserID]...), nil
}
