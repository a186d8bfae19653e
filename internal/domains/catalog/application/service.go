package application

import (
	"context"
	"errors"
	"time"

	accessdomain "github.com/Apurer/gomitas-api/internal/domains/access/domain"
	accessports "github.com/Apurer/gomitas-api/internal/domains/access/ports"
	catalogtypes "github.com/Apurer/gomitas-api/internal/domains/catalog/application/types"
	"github.com/Apurer/gomitas-api/internal/domains/catalog/domain"
	"github.com/Apurer/gomitas-api/internal/domains/catalog/ports"
	inventoryapp "github.com/Apurer/gomitas-api/internal/domains/inventory/application"
	inventorydomain "github.com/Apurer/gomitas-api/internal/domains/inventory/domain"
	inventoryports "github.com/Apurer/gomitas-api/internal/domains/inventory/ports"
	"github.com/Apurer/gomitas-api/internal/shared/pagination"
	"github.com/Apurer/gomitas-api/internal/shared/uow"
)

// Service orchestrates catalog use cases.
type Service struct {
	uow  uow.UnitOfWork
	gate accessports.Authorizer
	now  func() time.Time
}

func NewService(unit uow.UnitOfWork, gate accessports.Authorizer) *Service {
	return &Service{uow: unit, gate: gate, now: time.Now}
}

// CreateProduct adds a product and, when InitialStock is set, its stock record in the same transaction.
func (s *Service) CreateProduct(ctx context.Context, actor accessdomain.Actor, input catalogtypes.CreateProductInput) (*catalogtypes.ProductView, error) {
	if err := s.gate.Authorize(actor, accessdomain.ProductsCreate, accessdomain.Resource{}); err != nil {
		return nil, err
	}
	product, err := domain.NewProduct(input.Name, input.Flavor, input.Size, input.Price)
	if err != nil {
		return nil, mapError(err)
	}
	if input.InitialStock != nil && *input.InitialStock < 0 {
		return nil, mapError(inventorydomain.ErrNegativeQuantity)
	}
	view := &catalogtypes.ProductView{}
	err = s.uow.Do(ctx, func(ctx context.Context, repos uow.Repositories) error {
		created, err := repos.Products().Create(ctx, product)
		if err != nil {
			return err
		}
		view.Product = created
		if input.InitialStock == nil {
			return nil
		}
		record, err := inventorydomain.NewStockRecord(created.ID, *input.InitialStock)
		if err != nil {
			return mapError(err)
		}
		ledger := inventoryapp.NewLedger(repos.Stock(), s.now)
		opened, err := ledger.Open(ctx, record, inventorydomain.Reference{Reason: inventorydomain.ReasonInitial, ActorID: actor.ID})
		if err != nil {
			return err
		}
		quantity := opened.Quantity
		view.Stock = &quantity
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

func (s *Service) UpdateProduct(ctx context.Context, actor accessdomain.Actor, input catalogtypes.UpdateProductInput) (*catalogtypes.ProductView, error) {
	if err := s.gate.Authorize(actor, accessdomain.ProductsEdit, accessdomain.Resource{}); err != nil {
		return nil, err
	}
	if input.ID <= 0 {
		return nil, mapError(domain.ErrInvalidID)
	}
	var view *catalogtypes.ProductView
	err := s.uow.Do(ctx, func(ctx context.Context, repos uow.Repositories) error {
		product, err := repos.Products().GetByID(ctx, input.ID)
		if err != nil {
			return err
		}
		if err := product.Rename(input.Name, input.Flavor, input.Size); err != nil {
			return mapError(err)
		}
		if input.Price != nil {
			if err := product.Reprice(*input.Price); err != nil {
				return mapError(err)
			}
		}
		updated, err := repos.Products().Update(ctx, product)
		if err != nil {
			return err
		}
		view, err = withStock(ctx, repos, updated)
		return err
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

// DeleteProduct removes a product and its stock record. Products captured on
// order lines stay, so historical totals keep matching their lines.
func (s *Service) DeleteProduct(ctx context.Context, actor accessdomain.Actor, id int64) error {
	if err := s.gate.Authorize(actor, accessdomain.ProductsDelete, accessdomain.Resource{}); err != nil {
		return err
	}
	return s.uow.Do(ctx, func(ctx context.Context, repos uow.Repositories) error {
		if _, err := repos.Products().GetByID(ctx, id); err != nil {
			return err
		}
		referenced, err := repos.Orders().ReferencesProduct(ctx, id)
		if err != nil {
			return err
		}
		if referenced {
			return ports.ErrInUse
		}
		if err := repos.Stock().Delete(ctx, id); err != nil && !errors.Is(err, inventoryports.ErrNotFound) {
			return err
		}
		return repos.Products().Delete(ctx, id)
	})
}

func (s *Service) GetProduct(ctx context.Context, actor accessdomain.Actor, id int64) (*catalogtypes.ProductView, error) {
	if err := s.gate.Authorize(actor, accessdomain.ProductsView, accessdomain.Resource{}); err != nil {
		return nil, err
	}
	var view *catalogtypes.ProductView
	err := s.uow.Do(ctx, func(ctx context.Context, repos uow.Repositories) error {
		product, err := repos.Products().GetByID(ctx, id)
		if err != nil {
			return err
		}
		view, err = withStock(ctx, repos, product)
		return err
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

func (s *Service) ListProducts(ctx context.Context, actor accessdomain.Actor, query pagination.Query) (pagination.Page[*catalogtypes.ProductView], error) {
	if err := s.gate.Authorize(actor, accessdomain.ProductsView, accessdomain.Resource{}); err != nil {
		return pagination.Page[*catalogtypes.ProductView]{}, err
	}
	query = query.Normalize()
	var page pagination.Page[*catalogtypes.ProductView]
	err := s.uow.Do(ctx, func(ctx context.Context, repos uow.Repositories) error {
		products, total, err := repos.Products().List(ctx, query)
		if err != nil {
			return err
		}
		records, err := repos.Stock().List(ctx)
		if err != nil {
			return err
		}
		byProduct := make(map[int64]int64, len(records))
		for _, rec := range records {
			byProduct[rec.ProductID] = rec.Quantity
		}
		views := make([]*catalogtypes.ProductView, 0, len(products))
		for _, product := range products {
			view := &catalogtypes.ProductView{Product: product}
			if quantity, ok := byProduct[product.ID]; ok {
				view.Stock = &quantity
			}
			views = append(views, view)
		}
		page = pagination.NewPage(views, query, total)
		return nil
	})
	return page, err
}

func withStock(ctx context.Context, repos uow.Repositories, product *domain.Product) (*catalogtypes.ProductView, error) {
	view := &catalogtypes.ProductView{Product: product}
	record, err := repos.Stock().GetByProduct(ctx, product.ID)
	switch {
	case errors.Is(err, inventoryports.ErrNotFound):
		return view, nil
	case err != nil:
		return nil, err
	}
	quantity := record.Quantity
	view.Stock = &quantity
	return view, nil
}

var _ ports.Service = (*Service)(nil)
