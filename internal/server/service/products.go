package service

import (
	"context"
	"fmt"
	"strconv"

	"gorm.io/gorm"

	"github.com/awsomeshop/awsomeshop/internal/logging"
	"github.com/awsomeshop/awsomeshop/internal/server/models"
	"github.com/awsomeshop/awsomeshop/internal/server/repo"
)

type ProductService struct {
	Repos *repo.Repos
	DB    *gorm.DB
}

type CreateProductRequest struct {
	Name           string `json:"name"`
	ImageURL       string `json:"image_url"`
	PointsRequired int    `json:"points_required"`
	StockQuantity  int    `json:"stock_quantity"`
}

// CreateProduct inserts a product and its initial price-history row.
func (s *ProductService) CreateProduct(ctx context.Context, req CreateProductRequest, operatorID uint) (*models.Product, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}
	if req.PointsRequired <= 0 {
		return nil, fmt.Errorf("%w: points required must be greater than 0", ErrValidation)
	}
	if req.StockQuantity < 0 {
		return nil, fmt.Errorf("%w: stock quantity cannot be negative", ErrValidation)
	}

	product := &models.Product{
		Name:           req.Name,
		ImageURL:       req.ImageURL,
		PointsRequired: req.PointsRequired,
		StockQuantity:  req.StockQuantity,
		Status:         "active",
	}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(product).Error; err != nil {
			return err
		}
		return tx.Create(&models.ProductPriceHistory{
			ProductID:  product.ID,
			NewPoints:  product.PointsRequired,
			OperatorID: &operatorID,
		}).Error
	})
	if err != nil {
		return nil, err
	}

	logging.FromContext(ctx).Info("product_created", "product_id", product.ID, "operator_id", operatorID)
	return product, nil
}

type UpdateProductRequest struct {
	Name           *string `json:"name"`
	ImageURL       *string `json:"image_url"`
	PointsRequired *int    `json:"points_required"`
	StockQuantity  *int    `json:"stock_quantity"`
}

// UpdateProduct patches the set fields; a price change appends to the
// price history.
func (s *ProductService) UpdateProduct(ctx context.Context, productID uint, req UpdateProductRequest, operatorID uint) (*models.Product, error) {
	product, err := s.Repos.Products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	pointsChanged := false
	oldPoints := product.PointsRequired

	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.ImageURL != nil {
		product.ImageURL = *req.ImageURL
	}
	if req.PointsRequired != nil {
		if *req.PointsRequired <= 0 {
			return nil, fmt.Errorf("%w: points required must be greater than 0", ErrValidation)
		}
		if *req.PointsRequired != product.PointsRequired {
			pointsChanged = true
			product.PointsRequired = *req.PointsRequired
		}
	}
	if req.StockQuantity != nil {
		if *req.StockQuantity < 0 {
			return nil, fmt.Errorf("%w: stock quantity cannot be negative", ErrValidation)
		}
		product.StockQuantity = *req.StockQuantity
	}

	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(product).Error; err != nil {
			return err
		}
		if !pointsChanged {
			return nil
		}
		return tx.Create(&models.ProductPriceHistory{
			ProductID:  product.ID,
			OldPoints:  &oldPoints,
			NewPoints:  product.PointsRequired,
			OperatorID: &operatorID,
		}).Error
	})
	if err != nil {
		return nil, err
	}

	return product, nil
}

func (s *ProductService) SetStatus(ctx context.Context, productID uint, status string) error {
	if status != "active" && status != "inactive" {
		return fmt.Errorf("%w: status must be 'active' or 'inactive'", ErrValidation)
	}
	return s.Repos.Products.UpdateStatus(ctx, productID, status)
}

func (s *ProductService) ActiveProducts(ctx context.Context) ([]models.Product, error) {
	return s.Repos.Products.Active(ctx)
}

func (s *ProductService) GetByID(ctx context.Context, productID uint) (*models.Product, error) {
	return s.Repos.Products.GetByID(ctx, productID)
}

func (s *ProductService) List(ctx context.Context, status *string) ([]models.Product, error) {
	return s.Repos.Products.List(ctx, status)
}

// batchImportRow is one parsed row of the import table:
// | name | image | stock | points |
type batchImportRow struct {
	Name           string
	ImageURL       string
	StockQuantity  int
	PointsRequired int
}

func parseProductImportTable(markdown string) ([]batchImportRow, error) {
	rows, err := parseTableRows(markdown, 4)
	if err != nil {
		return nil, err
	}

	products := make([]batchImportRow, 0, len(rows))
	for i, fields := range rows {
		stock, err := strconv.Atoi(fields[2])
		if err != nil {
			return nil, fmt.Errorf("%w: invalid stock quantity in row %d: %s", ErrValidation, i+1, fields[2])
		}
		points, err := strconv.Atoi(fields[3])
		if err != nil {
			return nil, fmt.Errorf("%w: invalid points in row %d: %s", ErrValidation, i+1, fields[3])
		}
		products = append(products, batchImportRow{
			Name:           fields[0],
			ImageURL:       fields[1],
			StockQuantity:  stock,
			PointsRequired: points,
		})
	}
	return products, nil
}

// BatchImport creates every product in the markdown table, or none of them.
func (s *ProductService) BatchImport(ctx context.Context, markdown string, operatorID uint) ([]models.Product, error) {
	l := logging.FromContext(ctx).With("svc", "products.batch_import")

	imports, err := parseProductImportTable(markdown)
	if err != nil {
		return nil, err
	}

	for i, p := range imports {
		if p.Name == "" {
			return nil, fmt.Errorf("%w: product %d: name is required", ErrValidation, i+1)
		}
		if p.StockQuantity < 0 {
			return nil, fmt.Errorf("%w: product %d: stock quantity cannot be negative", ErrValidation, i+1)
		}
		if p.PointsRequired <= 0 {
			return nil, fmt.Errorf("%w: product %d: points required must be greater than 0", ErrValidation, i+1)
		}
	}

	var created []models.Product
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, p := range imports {
			product := models.Product{
				Name:           p.Name,
				ImageURL:       p.ImageURL,
				PointsRequired: p.PointsRequired,
				StockQuantity:  p.StockQuantity,
				Status:         "active",
			}
			if err := tx.Create(&product).Error; err != nil {
				return err
			}
			if err := tx.Create(&models.ProductPriceHistory{
				ProductID:  product.ID,
				NewPoints:  product.PointsRequired,
				OperatorID: &operatorID,
			}).Error; err != nil {
				return err
			}
			created = append(created, product)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	l.Info("products_imported", "count", len(created), "operator_id", operatorID)
	return created, nil
}
