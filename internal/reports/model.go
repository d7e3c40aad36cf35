package reports

import "time"

// ProductSalesFilter narrows the product sales report.
type ProductSalesFilter struct {
	Range     DateRange
	Frequency Frequency
	ProductID *int64
	Category  *string
	Brand     *string
}

// CustomerSalesFilter narrows the customer sales report.
type CustomerSalesFilter struct {
	Range      DateRange
	Frequency  Frequency
	CustomerID *int64
}

// OrderAnalyticsFilter narrows the order analytics report.
type OrderAnalyticsFilter struct {
	Range     DateRange
	Frequency Frequency
}

// LineRow is one exploded order line as returned by the repository:
// the order's creation time for bucketing plus the joined product
// columns. Rows whose product no longer exists are excluded by the
// repository join, never surfaced as an error.
type LineRow struct {
	OrderID        int64
	OrderCreatedAt time.Time
	ProductID      int64
	ProductName    string
	Category       string
	Brand          string
	Quantity       float64
	Price          float64
	LineTotal      float64
}

// CustomerLineRow is one exploded order line joined to the order's
// customer. Orders whose customer no longer exists are excluded.
type CustomerLineRow struct {
	OrderID        int64
	OrderCreatedAt time.Time
	CustomerID     int64
	CustomerName   string
	CustomerEmail  string
	CustomerPhone  string
	Quantity       float64
	Price          float64
	LineTotal      float64
}

// OrderRow is one order header for the period analytics report.
type OrderRow struct {
	OrderID   int64
	CreatedAt time.Time
	Total     float64
}

// ProductSales is one aggregated row of the product sales report.
type ProductSales struct {
	ProductID     int64     `json:"productId"`
	ProductName   string    `json:"productName"`
	Category      string    `json:"category"`
	Brand         string    `json:"brand"`
	Period        PeriodKey `json:"period"`
	TotalQuantity float64   `json:"totalQuantity"`
	TotalAmount   float64   `json:"totalAmount"`
}

// CustomerSales is one aggregated row of the customer sales report.
// OrderCount counts distinct orders, not line items.
type CustomerSales struct {
	CustomerID    int64     `json:"customerId"`
	CustomerName  string    `json:"customerName"`
	CustomerEmail string    `json:"customerEmail"`
	CustomerPhone string    `json:"customerPhone"`
	Period        PeriodKey `json:"period"`
	OrderCount    int       `json:"orderCount"`
	TotalQuantity float64   `json:"totalQuantity"`
	TotalAmount   float64   `json:"totalAmount"`
}

// OrderAnalytics is one aggregated row of the order analytics report.
type OrderAnalytics struct {
	Period      PeriodKey `json:"period"`
	OrderCount  int       `json:"orderCount"`
	TotalAmount float64   `json:"totalAmount"`
}

// Summary bundles all three reports for the dashboard endpoint.
type Summary struct {
	ProductSales   []ProductSales   `json:"productSales"`
	CustomerSales  []CustomerSales  `json:"customerSales"`
	OrderAnalytics []OrderAnalytics `json:"orderAnalytics"`
}

// lineAmount guards against a zero or missing stored line total.
func lineAmount(total, quantity, price float64) float64 {
	if total > 0 {
		return total
	}
	return quantity * price
}
