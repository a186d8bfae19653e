package application

import (
	"context"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"pgregory.net/rapid"

	ordertypes "github.com/Apurer/gomitas-api/internal/domains/orders/application/types"
	"github.com/Apurer/gomitas-api/internal/domains/orders/domain"
	"github.com/Apurer/gomitas-api/internal/shared/pagination"
)

// Random sequences of placements, cancellations, deletions and status changes
// must keep every stock record non-negative, every total equal to its lines,
// and stock plus quantities held by open orders equal to the opening stock.
func TestEngine_StockConservationProperty(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		f := newFixture(t)
		ctx := context.Background()

		initial := map[int64]int64{}
		var products []int64
		for i := 0; i < 3; i++ {
			q := rapid.Int64Range(0, 20).Draw(rt, fmt.Sprintf("stock%d", i))
			id := f.product(t, "1.25", q)
			initial[id] = q
			products = append(products, id)
		}

		var placed []int64
		steps := rapid.IntRange(1, 25).Draw(rt, "steps")
		for i := 0; i < steps; i++ {
			switch rapid.IntRange(0, 3).Draw(rt, "op") {
			case 0:
				n := rapid.IntRange(1, 3).Draw(rt, "lines")
				var lines []ordertypes.LineInput
				for j := 0; j < n; j++ {
					pid := rapid.SampledFrom(products).Draw(rt, "product")
					qty := rapid.Int64Range(1, 8).Draw(rt, "quantity")
					lines = append(lines, line(pid, qty))
				}
				order, err := f.engine.PlaceOrder(ctx, customer, place(lines...))
				if err == nil {
					placed = append(placed, order.ID)
				}
			case 1:
				if len(placed) > 0 {
					_, _ = f.engine.CancelOrder(ctx, customer, rapid.SampledFrom(placed).Draw(rt, "cancel"))
				}
			case 2:
				if len(placed) > 0 {
					_ = f.engine.DeleteOrder(ctx, customer, rapid.SampledFrom(placed).Draw(rt, "delete"))
				}
			case 3:
				if len(placed) > 0 {
					target := rapid.SampledFrom([]domain.Status{domain.StatusShipped, domain.StatusDelivered}).Draw(rt, "status")
					_, _ = f.engine.ChangeStatus(ctx, editor, rapid.SampledFrom(placed).Draw(rt, "advance"), target)
				}
			}
		}

		held := map[int64]int64{}
		page, err := f.engine.ListOrders(ctx, admin, ordertypes.ListOrdersInput{Page: pagination.Query{Page: 1, PerPage: pagination.MaxPerPage}})
		if err != nil {
			rt.Fatalf("list orders: %v", err)
		}
		for _, order := range page.Items {
			sum := decimal.Zero
			for _, l := range order.Lines() {
				sum = sum.Add(l.Subtotal())
				if order.Status != domain.StatusCancelled {
					held[l.ProductID] += l.Quantity
				}
			}
			if !sum.Equal(order.Total) {
				rt.Fatalf("order %d total %s, lines sum %s", order.ID, order.Total, sum)
			}
		}
		for _, pid := range products {
			quantity := f.stock(t, pid)
			if quantity < 0 {
				rt.Fatalf("product %d stock went negative: %d", pid, quantity)
			}
			if quantity+held[pid] != initial[pid] {
				rt.Fatalf("product %d: stock %d + held %d != initial %d", pid, quantity, held[pid], initial[pid])
			}
		}
	})
}
