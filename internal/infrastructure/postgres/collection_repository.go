package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/rapidxcel-logistics/internal/domain/entity"
	"github.com/jhoicas/rapidxcel-logistics/internal/domain/repository"
)

var _ repository.CollectionRepository = (*CollectionRepo)(nil)

// CollectionRepo lecturas de inventario, productos, órdenes y notificaciones.
type CollectionRepo struct {
	q Querier
}

// NewCollectionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCollectionRepository(q Querier) *CollectionRepo {
	return &CollectionRepo{q: q}
}

// ListStocks inventario central ordenado por código.
func (r *CollectionRepo) ListStocks(ctx context.Context) ([]entity.Stock, error) {
	query := `
		SELECT id, stock_id, stock_name, price, quantity, weight, updated_at
		FROM inventory ORDER BY stock_id`
	return collect(ctx, r.q, "list stocks", query, nil, func(row pgx.Row) (entity.Stock, error) {
		var s entity.Stock
		err := row.Scan(&s.ID, &s.StockID, &s.StockName, &s.Price, &s.Quantity, &s.Weight, &s.UpdatedAt)
		return s, err
	})
}

const supplyOrderSelect = `
	SELECT so.id, so.supplier_id, i.stock_id, so.quantity, so.total_cost, so.status, so.expected_delivery_date
	FROM supply_orders so
	JOIN inventory i ON i.id = so.inventory_id`

func scanSupplyOrder(row pgx.Row) (entity.SupplyOrder, error) {
	var o entity.SupplyOrder
	err := row.Scan(&o.ID, &o.SupplierID, &o.StockID, &o.Quantity, &o.TotalCost, &o.Status, &o.ExpectedDeliveryDate)
	return o, err
}

// ListReplenishmentOrders órdenes de reposición emitidas por el manager.
func (r *CollectionRepo) ListReplenishmentOrders(ctx context.Context, managerID string) ([]entity.SupplyOrder, error) {
	query := supplyOrderSelect + ` WHERE so.manager_id = $1 ORDER BY so.created_at DESC`
	return collect(ctx, r.q, "list replenishment orders", query, []any{managerID}, scanSupplyOrder)
}

// ListSupplyOrders órdenes dirigidas al proveedor cuyo usuario es supplierUserID.
func (r *CollectionRepo) ListSupplyOrders(ctx context.Context, supplierUserID string) ([]entity.SupplyOrder, error) {
	query := supplyOrderSelect + `
		JOIN suppliers s ON s.id = so.supplier_id
		WHERE s.user_id = $1 ORDER BY so.created_at DESC`
	return collect(ctx, r.q, "list supply orders", query, []any{supplierUserID}, scanSupplyOrder)
}

func scanProduct(row pgx.Row) (entity.Product, error) {
	var p entity.Product
	err := row.Scan(&p.ID, &p.Name, &p.Price, &p.Quantity)
	return p, err
}

// ListSupplierProducts productos del proveedor.
func (r *CollectionRepo) ListSupplierProducts(ctx context.Context, supplierUserID string) ([]entity.Product, error) {
	query := `
		SELECT p.id, p.name, p.price, p.quantity
		FROM products p
		JOIN suppliers s ON s.id = p.supplier_id
		WHERE s.user_id = $1 ORDER BY p.name`
	return collect(ctx, r.q, "list supplier products", query, []any{supplierUserID}, scanProduct)
}

// ListCatalogProducts catálogo visible para clientes (solo con existencias).
func (r *CollectionRepo) ListCatalogProducts(ctx context.Context) ([]entity.Product, error) {
	query := `SELECT id, name, price, quantity FROM products WHERE quantity > 0 ORDER BY name`
	return collect(ctx, r.q, "list catalog", query, nil, scanProduct)
}

// ListNotifications avisos del usuario, más recientes primero.
func (r *CollectionRepo) ListNotifications(ctx context.Context, userID string) ([]entity.Notification, error) {
	query := `
		SELECT id, message, read, created_at
		FROM notifications WHERE user_id = $1 ORDER BY created_at DESC`
	return collect(ctx, r.q, "list notifications", query, []any{userID}, func(row pgx.Row) (entity.Notification, error) {
		var n entity.Notification
		err := row.Scan(&n.ID, &n.Message, &n.Read, &n.CreatedAt)
		return n, err
	})
}

// ListSuppliers directorio de proveedores ordenado por nombre.
func (r *CollectionRepo) ListSuppliers(ctx context.Context) ([]entity.Supplier, error) {
	query := `
		SELECT id, user_id, name, email, phone_number, address, created_at
		FROM suppliers ORDER BY name`
	return collect(ctx, r.q, "list suppliers", query, nil, func(row pgx.Row) (entity.Supplier, error) {
		var s entity.Supplier
		err := row.Scan(&s.ID, &s.UserID, &s.Name, &s.Email, &s.PhoneNumber, &s.Address, &s.CreatedAt)
		return s, err
	})
}

// ListCourierOrders órdenes de cliente asignadas al courier, con sus líneas.
func (r *CollectionRepo) ListCourierOrders(ctx context.Context, courierUserID string) ([]entity.Order, error) {
	query := `
		SELECT id, customer_id, courier_id, shipping_address, consignment_weight,
		       shipping_cost, status, delivery_date, created_at
		FROM orders WHERE courier_id = $1 ORDER BY created_at DESC`
	orders, err := collect(ctx, r.q, "list courier orders", query, []any{courierUserID}, func(row pgx.Row) (entity.Order, error) {
		var o entity.Order
		err := row.Scan(&o.ID, &o.CustomerID, &o.CourierID, &o.ShippingAddress, &o.ConsignmentWeight,
			&o.ShippingCost, &o.Status, &o.DeliveryDate, &o.CreatedAt)
		return o, err
	})
	if err != nil || len(orders) == 0 {
		return orders, err
	}

	ids := make([]string, len(orders))
	byID := make(map[string]int, len(orders))
	for i, o := range orders {
		ids[i] = o.ID
		byID[o.ID] = i
	}
	itemsQuery := `
		SELECT oi.order_id, i.stock_id, i.stock_name, oi.quantity, oi.item_cost
		FROM order_items oi
		JOIN inventory i ON i.id = oi.inventory_id
		WHERE oi.order_id = ANY($1::uuid[]) ORDER BY i.stock_name`
	type line struct {
		orderID string
		item    entity.OrderItem
	}
	lines, err := collect(ctx, r.q, "list order items", itemsQuery, []any{ids}, func(row pgx.Row) (line, error) {
		var l line
		err := row.Scan(&l.orderID, &l.item.StockID, &l.item.Name, &l.item.Quantity, &l.item.ItemCost)
		return l, err
	})
	if err != nil {
		return nil, err
	}
	for _, l := range lines {
		i := byID[l.orderID]
		orders[i].Items = append(orders[i].Items, l.item)
	}
	return orders, nil
}

// collect ejecuta la consulta y escanea cada fila. Sin filas -> nil.
func collect[T any](ctx context.Context, q Querier, op, query string, args []any, scan func(pgx.Row) (T, error)) ([]T, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()
	var out []T
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return out, nil
}
