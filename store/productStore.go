package store

import (
	"context"

	"gorm.io/gorm"

	"github.com/Kariqs/storefront-api/models"
)

type ProductStore struct {
	db *gorm.DB
}

func NewProductStore(db *gorm.DB) *ProductStore {
	return &ProductStore{db: db}
}

func (s *ProductStore) Create(ctx context.Context, product *models.Product) error {
	return wrap(s.db.WithContext(ctx).Create(product).Error, "create product")
}

func (s *ProductStore) Save(ctx context.Context, product *models.Product) error {
	return wrap(s.db.WithContext(ctx).Save(product).Error, "save product")
}

func (s *ProductStore) Delete(ctx context.Context, id uint) error {
	result := s.db.WithContext(ctx).Delete(&models.Product{}, id)
	if result.Error != nil {
		return wrap(result.Error, "delete product")
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *ProductStore) FindByID(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	if err := s.db.WithContext(ctx).First(&product, id).Error; err != nil {
		return nil, wrap(err, "find product")
	}
	return &product, nil
}

func (s *ProductStore) FindByIDs(ctx context.Context, ids []uint) ([]models.Product, error) {
	products := []models.Product{}
	if len(ids) == 0 {
		return products, nil
	}
	err := s.db.WithContext(ctx).Where("id IN ?", ids).Find(&products).Error
	return products, wrap(err, "find products by id")
}

func (s *ProductStore) FindAll(ctx context.Context) ([]models.Product, error) {
	products := []models.Product{}
	err := s.db.WithContext(ctx).Order("created_at desc").Find(&products).Error
	return products, wrap(err, "find products")
}

func (s *ProductStore) FindFeatured(ctx context.Context) ([]models.Product, error) {
	products := []models.Product{}
	err := s.db.WithContext(ctx).Where("is_featured = ?", true).Order("id").Find(&products).Error
	return products, wrap(err, "find featured products")
}

func (s *ProductStore) FindByCategory(ctx context.Context, category string) ([]models.Product, error) {
	products := []models.Product{}
	err := s.db.WithContext(ctx).Where("category = ?", category).Find(&products).Error
	return products, wrap(err, "find products by category")
}

// Sample returns up to n random products, restricted to category when set.
func (s *ProductStore) Sample(ctx context.Context, category string, n int) ([]models.Product, error) {
	products := []models.Product{}
	query := s.db.WithContext(ctx).Select("id", "name", "description", "images", "price")
	if category != "" {
		query = query.Where("category = ?", category)
	}
	err := query.Order("RAND()").Limit(n).Find(&products).Error
	return products, wrap(err, "sample products")
}

func (s *ProductStore) Count(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Product{}).Count(&count).Error
	return count, wrap(err, "count products")
}
