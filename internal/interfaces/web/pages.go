package web

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
	g "maragu.dev/gomponents"
	"maragu.dev/gomponents/html"

	"github.com/jhoicas/rapidxcel-logistics/internal/domain/entity"
	"github.com/jhoicas/rapidxcel-logistics/internal/domain/navigation"
)

// ReportPath descarga del reporte de inventario en PDF.
const ReportPath = "/dashboard/stock-management/report.pdf"

// routePage título y contenido de cada ruta protegida. Las colecciones
// ausentes se muestran como estado vacío.
func routePage(key navigation.RouteKey, u *entity.User, lowStock int) (string, []g.Node) {
	switch key {
	case navigation.RouteOverview:
		return "Overview", overview(u)
	case navigation.RouteSuppliers:
		return "Suppliers Management", []g.Node{
			table([]string{"Name", "Email", "Phone", "Address"}, supplierDirectoryRows(u.Suppliers), "No suppliers yet."),
			html.H2(g.Text("Replenishment by supplier")),
			table([]string{"Supplier", "Orders", "Open orders", "Total cost"}, supplierRows(u.ReplenishmentOrders, u.Suppliers), "No replenishment orders."),
		}
	case navigation.RouteStockManagement:
		return "Stock Management", []g.Node{
			html.P(html.A(html.Href(ReportPath), g.Text("Download stock report (PDF)"))),
			table([]string{"SKU", "Name", "Quantity", "Weight", "Price", "Value"}, stockRows(u.Stocks), "No stock items."),
		}
	case navigation.RouteStockReplenishment:
		return "Stock Replenishment", []g.Node{
			html.H2(g.Textf("Items at or below %d units", lowStock)),
			table([]string{"SKU", "Name", "Quantity", "Weight", "Price", "Value"}, stockRows(lowStockItems(u.Stocks, lowStock)), "Nothing to replenish."),
			html.H2(g.Text("Open replenishment orders")),
			table(orderHeaders, orderRows(openOrders(u.ReplenishmentOrders)), "No open orders."),
		}
	case navigation.RouteOrders:
		return "My Orders", []g.Node{
			table(orderHeaders, orderRows(u.ReplenishmentOrders), "No orders yet."),
		}
	case navigation.RouteProducts:
		return "Products", []g.Node{
			table([]string{"Name", "Price", "Quantity"}, productRows(u.Products), "No products."),
		}
	case navigation.RouteSupplyOrders:
		return "Supply Orders", []g.Node{
			table(orderHeaders, orderRows(u.SupplyOrders), "No supply orders."),
		}
	case navigation.RouteNotifications:
		return "Notifications", []g.Node{
			table([]string{"Date", "Message", "Status"}, notificationRows(u.Notifications), "No notifications."),
		}
	case navigation.RouteCourierService:
		return "Courier Service", []g.Node{
			table(deliveryHeaders, deliveryRows(u.Deliveries), "No deliveries assigned."),
		}
	default:
		return "Overview", overview(u)
	}
}

func overview(u *entity.User) []g.Node {
	type count struct {
		label string
		n     int
	}
	counts := []count{
		{"Stock items", len(u.Stocks)},
		{"Products", len(u.Products)},
		{"Supply orders", len(u.SupplyOrders)},
		{"Replenishment orders", len(u.ReplenishmentOrders)},
		{"Notifications", len(u.Notifications)},
		{"Suppliers", len(u.Suppliers)},
		{"Deliveries", len(u.Deliveries)},
	}
	var items []g.Node
	for _, c := range counts {
		if c.n > 0 {
			items = append(items, html.Li(g.Textf("%s: %d", c.label, c.n)))
		}
	}
	nodes := []g.Node{html.P(g.Textf("Welcome, %s (%s).", nameOf(u), u.Role))}
	if len(items) == 0 {
		return append(nodes, html.P(html.Class("empty"), g.Text("No data yet.")))
	}
	return append(nodes, html.Ul(items...))
}

var orderHeaders = []string{"Order", "Supplier", "Stock", "Quantity", "Total cost", "Status", "Expected delivery"}

func orderRows(orders []entity.SupplyOrder) [][]string {
	rows := make([][]string, 0, len(orders))
	for _, o := range orders {
		expected := "-"
		if o.ExpectedDeliveryDate != nil {
			expected = o.ExpectedDeliveryDate.Format("2006-01-02")
		}
		rows = append(rows, []string{o.ID, o.SupplierID, o.StockID, fmt.Sprint(o.Quantity), money(o.TotalCost), o.Status, expected})
	}
	return rows
}

func openOrders(orders []entity.SupplyOrder) []entity.SupplyOrder {
	var out []entity.SupplyOrder
	for _, o := range orders {
		if o.Status != entity.SupplyStatusReceived {
			out = append(out, o)
		}
	}
	return out
}

func stockRows(stocks []entity.Stock) [][]string {
	rows := make([][]string, 0, len(stocks))
	for _, s := range stocks {
		rows = append(rows, []string{s.StockID, s.StockName, fmt.Sprint(s.Quantity), s.Weight.StringFixed(2) + " kg", money(s.Price), money(s.Value())})
	}
	return rows
}

func lowStockItems(stocks []entity.Stock, threshold int) []entity.Stock {
	var out []entity.Stock
	for _, s := range stocks {
		if s.Quantity <= threshold {
			out = append(out, s)
		}
	}
	return out
}

func productRows(products []entity.Product) [][]string {
	rows := make([][]string, 0, len(products))
	for _, p := range products {
		rows = append(rows, []string{p.Name, money(p.Price), fmt.Sprint(p.Quantity)})
	}
	return rows
}

func notificationRows(ns []entity.Notification) [][]string {
	rows := make([][]string, 0, len(ns))
	for _, n := range ns {
		status := "unread"
		if n.Read {
			status = "read"
		}
		rows = append(rows, []string{n.CreatedAt.Format("2006-01-02 15:04"), n.Message, status})
	}
	return rows
}

var deliveryHeaders = []string{"Order", "Date", "Shipping address", "Weight", "Items", "Shipping cost", "Delivery date", "Status"}

func deliveryRows(orders []entity.Order) [][]string {
	rows := make([][]string, 0, len(orders))
	for _, o := range orders {
		delivery := "-"
		if o.DeliveryDate != nil {
			delivery = o.DeliveryDate.Format("2006-01-02")
		}
		names := make([]string, 0, len(o.Items))
		for _, it := range o.Items {
			names = append(names, it.Name)
		}
		rows = append(rows, []string{
			o.ID, o.CreatedAt.Format("2006-01-02"), o.ShippingAddress, o.ConsignmentWeight.StringFixed(2) + " kg",
			strings.Join(names, ", "), money(o.ShippingCost), delivery, o.Status,
		})
	}
	return rows
}

func supplierDirectoryRows(suppliers []entity.Supplier) [][]string {
	rows := make([][]string, 0, len(suppliers))
	for _, s := range suppliers {
		rows = append(rows, []string{s.Name, s.Email, s.PhoneNumber, s.Address})
	}
	return rows
}

// supplierRows agrupa las órdenes de reposición por proveedor; usa el nombre
// del directorio cuando lo conoce.
func supplierRows(orders []entity.SupplyOrder, suppliers []entity.Supplier) [][]string {
	names := make(map[string]string, len(suppliers))
	for _, s := range suppliers {
		names[s.ID] = s.Name
	}
	type agg struct {
		orders, open int
		total        decimal.Decimal
	}
	bySupplier := map[string]*agg{}
	for _, o := range orders {
		a, ok := bySupplier[o.SupplierID]
		if !ok {
			a = &agg{}
			bySupplier[o.SupplierID] = a
		}
		a.orders++
		if o.Status != entity.SupplyStatusReceived {
			a.open++
		}
		a.total = a.total.Add(o.TotalCost)
	}
	ids := make([]string, 0, len(bySupplier))
	for id := range bySupplier {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	rows := make([][]string, 0, len(ids))
	for _, id := range ids {
		a := bySupplier[id]
		label := id
		if n, ok := names[id]; ok {
			label = n
		}
		rows = append(rows, []string{label, fmt.Sprint(a.orders), fmt.Sprint(a.open), money(a.total)})
	}
	return rows
}

func money(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}
