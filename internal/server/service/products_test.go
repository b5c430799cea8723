package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/awsomeshop/awsomeshop/internal/server/models"
)

func TestProductService_CreateProduct(t *testing.T) {
	t.Parallel()

	gdb, repos := newTestDB(t)
	svc := &ProductService{Repos: repos, DB: gdb}
	ctx := context.Background()

	product, err := svc.CreateProduct(ctx, CreateProductRequest{
		Name:           "Thermos",
		ImageURL:       "https://img.example.com/thermos.png",
		PointsRequired: 800,
		StockQuantity:  5,
	}, 1)
	require.NoError(t, err)
	assert.Equal(t, "active", product.Status)

	// creation seeds the price history
	var history models.ProductPriceHistory
	require.NoError(t, gdb.Where("product_id = ?", product.ID).First(&history).Error)
	assert.Nil(t, history.OldPoints)
	assert.Equal(t, 800, history.NewPoints)
}

func TestProductService_CreateProduct_Validation(t *testing.T) {
	t.Parallel()

	gdb, repos := newTestDB(t)
	svc := &ProductService{Repos: repos, DB: gdb}
	ctx := context.Background()

	_, err := svc.CreateProduct(ctx, CreateProductRequest{PointsRequired: 100}, 1)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.CreateProduct(ctx, CreateProductRequest{Name: "X", PointsRequired: 0}, 1)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.CreateProduct(ctx, CreateProductRequest{Name: "X", PointsRequired: 100, StockQuantity: -1}, 1)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestProductService_UpdateProduct_PriceChangeAppendsHistory(t *testing.T) {
	t.Parallel()

	gdb, repos := newTestDB(t)
	svc := &ProductService{Repos: repos, DB: gdb}
	ctx := context.Background()

	product, err := svc.CreateProduct(ctx, CreateProductRequest{Name: "Mug", PointsRequired: 500, StockQuantity: 10}, 1)
	require.NoError(t, err)

	newPoints := 650
	updated, err := svc.UpdateProduct(ctx, product.ID, UpdateProductRequest{PointsRequired: &newPoints}, 2)
	require.NoError(t, err)
	assert.Equal(t, 650, updated.PointsRequired)

	var history []models.ProductPriceHistory
	require.NoError(t, gdb.Where("product_id = ?", product.ID).Order("id ASC").Find(&history).Error)
	require.Len(t, history, 2)
	require.NotNil(t, history[1].OldPoints)
	assert.Equal(t, 500, *history[1].OldPoints)
	assert.Equal(t, 650, history[1].NewPoints)

	// a same-price update does not append
	samePoints := 650
	newName := "Big Mug"
	_, err = svc.UpdateProduct(ctx, product.ID, UpdateProductRequest{PointsRequired: &samePoints, Name: &newName}, 2)
	require.NoError(t, err)

	var count int64
	require.NoError(t, gdb.Model(&models.ProductPriceHistory{}).Where("product_id = ?", product.ID).Count(&count).Error)
	assert.EqualValues(t, 2, count)
}

func TestProductService_SetStatus(t *testing.T) {
	t.Parallel()

	gdb, repos := newTestDB(t)
	svc := &ProductService{Repos: repos, DB: gdb}
	ctx := context.Background()
	product := seedProduct(t, gdb, models.Product{Name: "Mug", PointsRequired: 500, StockQuantity: 10})

	require.NoError(t, svc.SetStatus(ctx, product.ID, "inactive"))

	active, err := svc.ActiveProducts(ctx)
	require.NoError(t, err)
	assert.Empty(t, active)

	assert.ErrorIs(t, svc.SetStatus(ctx, product.ID, "archived"), ErrValidation)
}

func TestProductService_BatchImport(t *testing.T) {
	t.Parallel()

	gdb, repos := newTestDB(t)
	svc := &ProductService{Repos: repos, DB: gdb}
	ctx := context.Background()

	markdown := `| name | image | stock | points |
|------|-------|-------|--------|
| Mug | https://img/m.png | 10 | 500 |
| Thermos | https://img/t.png | 5 | 800 |`

	created, err := svc.BatchImport(ctx, markdown, 1)
	require.NoError(t, err)
	require.Len(t, created, 2)
	assert.Equal(t, "Mug", created[0].Name)
	assert.Equal(t, 800, created[1].PointsRequired)

	var historyCount int64
	require.NoError(t, gdb.Model(&models.ProductPriceHistory{}).Count(&historyCount).Error)
	assert.EqualValues(t, 2, historyCount)
}

func TestProductService_BatchImport_AllOrNothing(t *testing.T) {
	t.Parallel()

	gdb, repos := newTestDB(t)
	svc := &ProductService{Repos: repos, DB: gdb}
	ctx := context.Background()

	// second row has a bad points value; nothing may be created
	markdown := `| name | image | stock | points |
|------|-------|-------|--------|
| Mug | https://img/m.png | 10 | 500 |
| Thermos | https://img/t.png | 5 | free |`

	_, err := svc.BatchImport(ctx, markdown, 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)

	var count int64
	require.NoError(t, gdb.Model(&models.Product{}).Count(&count).Error)
	assert.Zero(t, count)
}
