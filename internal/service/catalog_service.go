package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/VS237/momshop/internal/domain/catalog"
	"github.com/VS237/momshop/internal/store"
	"github.com/VS237/momshop/pkg/logger"
)

const (
	featuredLimit     = 8
	inventoryLimit    = 20
	defaultAdminLimit = 50
)

// ProductPage is one storefront page of products.
type ProductPage struct {
	Products   []*catalog.Product `json:"products"`
	Total      int                `json:"total"`
	Page       int                `json:"page"`
	PageSize   int                `json:"page_size"`
	TotalPages int                `json:"total_pages"`
}

// ProductInput carries the product form. An empty ID creates a product.
// Category and supplier are referenced by name and created when missing.
type ProductInput struct {
	ID            string
	Name          string
	Description   string
	BuyingPrice   decimal.Decimal
	SellingPrice  decimal.Decimal
	Unit          string
	Quantity      int
	MinStockLevel *int
	ImageURL      string
	CategoryName  string
	SupplierName  string
}

// CatalogService serves the storefront and the product back-office.
type CatalogService struct {
	store    store.Store
	pageSize int
	city     string
	logger   logger.Logger
}

func NewCatalogService(st store.Store, pageSize int, city string, log logger.Logger) *CatalogService {
	if pageSize < 1 {
		pageSize = 9
	}
	return &CatalogService{store: st, pageSize: pageSize, city: city, logger: log}
}

// Browse lists in-stock products for the storefront.
func (s *CatalogService) Browse(ctx context.Context, search, categoryID string, page int) *ProductPage {
	if page < 1 {
		page = 1
	}
	out := &ProductPage{Products: []*catalog.Product{}, Page: page, PageSize: s.pageSize}

	products, total, err := s.store.Repos().Products.List(ctx, catalog.ProductFilter{
		Search:      strings.TrimSpace(search),
		CategoryID:  categoryID,
		InStockOnly: true,
		Limit:       s.pageSize,
		Offset:      (page - 1) * s.pageSize,
	})
	if err != nil {
		s.logger.Error("error browsing products", "error", err)
		return out
	}

	out.Products = products
	out.Total = total
	out.TotalPages = (total + s.pageSize - 1) / s.pageSize
	return out
}

// Featured returns the newest in-stock products.
func (s *CatalogService) Featured(ctx context.Context) []*catalog.Product {
	products, _, err := s.store.Repos().Products.List(ctx, catalog.ProductFilter{InStockOnly: true, Limit: featuredLimit})
	if err != nil {
		s.logger.Error("error loading featured products", "error", err)
		return []*catalog.Product{}
	}
	return products
}

func (s *CatalogService) Categories(ctx context.Context) []*catalog.Category {
	categories, err := s.store.Repos().Categories.List(ctx)
	if err != nil {
		s.logger.Error("error listing categories", "error", err)
		return []*catalog.Category{}
	}
	return categories
}

func (s *CatalogService) Suppliers(ctx context.Context) []*catalog.Supplier {
	suppliers, err := s.store.Repos().Suppliers.List(ctx)
	if err != nil {
		s.logger.Error("error listing suppliers", "error", err)
		return []*catalog.Supplier{}
	}
	return suppliers
}

func (s *CatalogService) Product(ctx context.Context, id string) (*catalog.Product, error) {
	return s.store.Repos().Products.FindByID(ctx, id)
}

// List is the back-office product listing; it also returns the total match
// count and how many products are low on stock.
func (s *CatalogService) List(ctx context.Context, f catalog.ProductFilter) ([]*catalog.Product, int, int) {
	if f.Limit <= 0 {
		f.Limit = defaultAdminLimit
	}
	repos := s.store.Repos()

	products, total, err := repos.Products.List(ctx, f)
	if err != nil {
		s.logger.Error("error listing products", "error", err)
		return []*catalog.Product{}, 0, 0
	}
	lowStock, err := repos.Products.CountLowStock(ctx)
	if err != nil {
		s.logger.Error("error counting low stock", "error", err)
	}
	return products, total, lowStock
}

// Save creates or updates a product from the back-office form.
func (s *CatalogService) Save(ctx context.Context, in ProductInput) (*catalog.Product, error) {
	minStock := catalog.DefaultMinStockLevel
	if in.MinStockLevel != nil {
		minStock = *in.MinStockLevel
	}

	var p *catalog.Product
	err := s.store.WithinTransaction(ctx, func(ctx context.Context, repos store.Repositories) error {
		var err error
		if in.ID == "" {
			p, err = catalog.NewProduct(in.Name, in.Unit, in.BuyingPrice, in.SellingPrice, in.Quantity, minStock)
		} else {
			p, err = repos.Products.FindByID(ctx, in.ID)
			if err == nil {
				err = p.Apply(in.Name, in.Unit, in.BuyingPrice, in.SellingPrice, in.Quantity, minStock)
			}
		}
		if err != nil {
			return err
		}
		p.Description = strings.TrimSpace(in.Description)
		p.ImageURL = strings.TrimSpace(in.ImageURL)

		p.CategoryID = ""
		if name := strings.TrimSpace(in.CategoryName); name != "" {
			c, err := repos.Categories.GetOrCreate(ctx, name)
			if err != nil {
				return err
			}
			p.CategoryID = c.ID
		}
		p.SupplierID = ""
		if name := strings.TrimSpace(in.SupplierName); name != "" {
			sup, err := repos.Suppliers.GetOrCreate(ctx, name, s.city)
			if err != nil {
				return err
			}
			p.SupplierID = sup.ID
		}

		if in.ID == "" {
			return repos.Products.Create(ctx, p)
		}
		return repos.Products.Update(ctx, p)
	})
	if err != nil {
		return nil, txError("save product", err)
	}

	s.logger.Info("product saved", "product_id", p.ID, "name", p.Name)
	return p, nil
}

func (s *CatalogService) Delete(ctx context.Context, id string) error {
	if err := s.store.Repos().Products.Delete(ctx, id); err != nil {
		return txError("delete product", err)
	}
	s.logger.Info("product deleted", "product_id", id)
	return nil
}

// InventorySummary lists the first products with price and stock, one per
// line, for the shop assistant.
func (s *CatalogService) InventorySummary(ctx context.Context) (string, error) {
	products, _, err := s.store.Repos().Products.List(ctx, catalog.ProductFilter{Limit: inventoryLimit})
	if err != nil {
		return "", err
	}
	lines := make([]string, 0, len(products))
	for _, p := range products {
		lines = append(lines, fmt.Sprintf("- %s: %s XAF (Stock: %d %s)", p.Name, p.SellingPrice.StringFixed(0), p.Quantity, p.Unit))
	}
	return strings.Join(lines, "\n"), nil
}
