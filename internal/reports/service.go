package reports

import (
	"context"
	"sort"

	"golang.org/x/sync/errgroup"
)

// Service runs the aggregation pipeline over repository rows and caches
// the results per tenant and filter.
type Service struct {
	repo  Repository
	cache *Cache
}

// NewService wires a Repository with a Cache helper.
func NewService(repo Repository, cache *Cache) *Service {
	return &Service{repo: repo, cache: cache}
}

// ProductSales aggregates sold quantity and amount per product and
// period. Line items whose product no longer resolves were already
// dropped by the repository join.
func (s *Service) ProductSales(ctx context.Context, tenantID int64, filter ProductSalesFilter) ([]ProductSales, error) {
	filter.Frequency = normalize(filter.Frequency)

	loader := func(ctx context.Context) (interface{}, error) {
		rows, err := s.repo.ProductLineRows(ctx, tenantID, filter)
		if err != nil {
			return nil, err
		}
		return aggregateProductSales(rows, filter.Frequency), nil
	}

	var result []ProductSales
	if err := s.cached(ctx, keyProductSales(tenantID, filter), &result, loader); err != nil {
		return nil, err
	}
	return result, nil
}

// CustomerSales aggregates sold quantity, amount and distinct order
// count per customer and period.
func (s *Service) CustomerSales(ctx context.Context, tenantID int64, filter CustomerSalesFilter) ([]CustomerSales, error) {
	filter.Frequency = normalize(filter.Frequency)

	loader := func(ctx context.Context) (interface{}, error) {
		rows, err := s.repo.CustomerLineRows(ctx, tenantID, filter)
		if err != nil {
			return nil, err
		}
		return aggregateCustomerSales(rows, filter.Frequency), nil
	}

	var result []CustomerSales
	if err := s.cached(ctx, keyCustomerSales(tenantID, filter), &result, loader); err != nil {
		return nil, err
	}
	return result, nil
}

// OrderAnalytics aggregates order count and revenue per period without
// exploding line items.
func (s *Service) OrderAnalytics(ctx context.Context, tenantID int64, filter OrderAnalyticsFilter) ([]OrderAnalytics, error) {
	filter.Frequency = normalize(filter.Frequency)

	loader := func(ctx context.Context) (interface{}, error) {
		rows, err := s.repo.OrderRows(ctx, tenantID, filter.Range)
		if err != nil {
			return nil, err
		}
		return aggregateOrderAnalytics(rows, filter.Frequency), nil
	}

	var result []OrderAnalytics
	if err := s.cached(ctx, keyOrderAnalytics(tenantID, filter), &result, loader); err != nil {
		return nil, err
	}
	return result, nil
}

// GetSummary fetches all three reports concurrently for one range and
// frequency.
func (s *Service) GetSummary(ctx context.Context, tenantID int64, rng DateRange, freq Frequency) (*Summary, error) {
	var summary Summary
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		rows, err := s.ProductSales(gctx, tenantID, ProductSalesFilter{Range: rng, Frequency: freq})
		summary.ProductSales = rows
		return err
	})
	g.Go(func() error {
		rows, err := s.CustomerSales(gctx, tenantID, CustomerSalesFilter{Range: rng, Frequency: freq})
		summary.CustomerSales = rows
		return err
	})
	g.Go(func() error {
		rows, err := s.OrderAnalytics(gctx, tenantID, OrderAnalyticsFilter{Range: rng, Frequency: freq})
		summary.OrderAnalytics = rows
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &summary, nil
}

// cached goes through the cache helper; a nil cache degrades to a
// plain load.
func (s *Service) cached(ctx context.Context, keyParts []string, dest interface{}, loader func(context.Context) (interface{}, error)) error {
	key, err := s.cache.BuildKey(ctx, keyParts...)
	if err != nil {
		return err
	}
	return s.cache.FetchJSON(ctx, key, dest, loader)
}

func normalize(f Frequency) Frequency {
	return ParseFrequency(string(f))
}

type productGroupKey struct {
	ProductID int64
	Period    PeriodKey
}

func aggregateProductSales(rows []LineRow, freq Frequency) []ProductSales {
	groups := make(map[productGroupKey]*ProductSales)
	for _, row := range rows {
		key := productGroupKey{ProductID: row.ProductID, Period: BucketKey(row.OrderCreatedAt, freq)}
		group, ok := groups[key]
		if !ok {
			group = &ProductSales{
				ProductID:   row.ProductID,
				ProductName: row.ProductName,
				Category:    row.Category,
				Brand:       row.Brand,
				Period:      key.Period,
			}
			groups[key] = group
		}
		group.TotalQuantity += row.Quantity
		group.TotalAmount += lineAmount(row.LineTotal, row.Quantity, row.Price)
	}

	result := make([]ProductSales, 0, len(groups))
	for _, group := range groups {
		result = append(result, *group)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Period != result[j].Period {
			return result[i].Period.Less(result[j].Period)
		}
		return result[i].ProductID < result[j].ProductID
	})
	return result
}

type customerGroupKey struct {
	CustomerID int64
	Period     PeriodKey
}

func aggregateCustomerSales(rows []CustomerLineRow, freq Frequency) []CustomerSales {
	groups := make(map[customerGroupKey]*CustomerSales)
	seenOrders := make(map[customerGroupKey]map[int64]struct{})
	for _, row := range rows {
		key := customerGroupKey{CustomerID: row.CustomerID, Period: BucketKey(row.OrderCreatedAt, freq)}
		group, ok := groups[key]
		if !ok {
			group = &CustomerSales{
				CustomerID:    row.CustomerID,
				CustomerName:  row.CustomerName,
				CustomerEmail: row.CustomerEmail,
				CustomerPhone: row.CustomerPhone,
				Period:        key.Period,
			}
			groups[key] = group
			seenOrders[key] = make(map[int64]struct{})
		}
		group.TotalQuantity += row.Quantity
		group.TotalAmount += lineAmount(row.LineTotal, row.Quantity, row.Price)
		if _, seen := seenOrders[key][row.OrderID]; !seen {
			seenOrders[key][row.OrderID] = struct{}{}
			group.OrderCount++
		}
	}

	result := make([]CustomerSales, 0, len(groups))
	for _, group := range groups {
		result = append(result, *group)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Period != result[j].Period {
			return result[i].Period.Less(result[j].Period)
		}
		return result[i].CustomerID < result[j].CustomerID
	})
	return result
}

func aggregateOrderAnalytics(rows []OrderRow, freq Frequency) []OrderAnalytics {
	groups := make(map[PeriodKey]*OrderAnalytics)
	for _, row := range rows {
		key := BucketKey(row.CreatedAt, freq)
		group, ok := groups[key]
		if !ok {
			group = &OrderAnalytics{Period: key}
			groups[key] = group
		}
		group.OrderCount++
		group.TotalAmount += row.Total
	}

	result := make([]OrderAnalytics, 0, len(groups))
	for _, group := range groups {
		result = append(result, *group)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Period.Less(result[j].Period)
	})
	return result
}
