package services

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"

	"github.com/Kariqs/storefront-api/cdn"
	"github.com/Kariqs/storefront-api/models"
	"github.com/Kariqs/storefront-api/store"
)

const recommendationSize = 4

type ProductService struct {
	products ProductStore
	images   ImageStore
	featured *FeaturedService
}

func NewProductService(products ProductStore, images ImageStore, featured *FeaturedService) *ProductService {
	return &ProductService{products: products, images: images, featured: featured}
}

func (s *ProductService) All(ctx context.Context) ([]models.Product, error) {
	return s.products.FindAll(ctx)
}

func (s *ProductService) ByCategory(ctx context.Context, category string) ([]models.Product, error) {
	return s.products.FindByCategory(ctx, normalizeCategory(category))
}

func (s *ProductService) Recommendations(ctx context.Context, category string) ([]models.Product, error) {
	return s.products.Sample(ctx, normalizeCategory(category), recommendationSize)
}

func (s *ProductService) Create(ctx context.Context, input models.ProductInput) (*models.Product, error) {
	if strings.TrimSpace(input.Name) == "" || strings.TrimSpace(input.Description) == "" ||
		strings.TrimSpace(input.Category) == "" || input.Price == nil {
		return nil, ErrMissingFields
	}
	if *input.Price < 0 {
		return nil, ErrInvalidPrice
	}
	if err := checkImageCount(input.Images); err != nil {
		return nil, err
	}

	urls, err := s.storeImages(ctx, input.Images)
	if err != nil {
		return nil, err
	}

	product := &models.Product{
		Name:        strings.TrimSpace(input.Name),
		Description: strings.TrimSpace(input.Description),
		Price:       *input.Price,
		Images:      datatypes.JSONSlice[string](urls),
		Category:    normalizeCategory(input.Category),
	}
	if err := s.products.Create(ctx, product); err != nil {
		s.removeImages(ctx, urls)
		return nil, err
	}

	s.featured.Refresh(ctx)
	return product, nil
}

// Update applies the non-empty fields of input. When images are given they
// replace the current list: URLs already on the CDN are kept, new sources are
// uploaded, and CDN images no longer listed are deleted.
func (s *ProductService) Update(ctx context.Context, id uint, input models.ProductInput) (*models.Product, error) {
	product, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	if name := strings.TrimSpace(input.Name); name != "" {
		product.Name = name
	}
	if description := strings.TrimSpace(input.Description); description != "" {
		product.Description = description
	}
	if input.Price != nil {
		if *input.Price < 0 {
			return nil, ErrInvalidPrice
		}
		product.Price = *input.Price
	}
	if category := normalizeCategory(input.Category); category != "" {
		product.Category = category
	}

	var dropped, uploaded []string
	if input.Images != nil {
		if err := checkImageCount(input.Images); err != nil {
			return nil, err
		}
		keep := make(map[string]bool, len(input.Images))
		urls := make([]string, 0, len(input.Images))
		for _, src := range input.Images {
			if s.images.Hosts(src) {
				keep[src] = true
				urls = append(urls, src)
				continue
			}
			url, err := s.images.Store(ctx, src)
			if err != nil {
				s.removeImages(ctx, uploaded)
				return nil, imageError(err)
			}
			uploaded = append(uploaded, url)
			urls = append(urls, url)
		}
		for _, old := range product.Images {
			if !keep[old] {
				dropped = append(dropped, old)
			}
		}
		product.Images = datatypes.JSONSlice[string](urls)
	}

	if err := s.products.Save(ctx, product); err != nil {
		s.removeImages(ctx, uploaded)
		return nil, err
	}
	s.removeImages(ctx, dropped)

	s.featured.Refresh(ctx)
	return product, nil
}

func (s *ProductService) ToggleFeatured(ctx context.Context, id uint) (*models.Product, error) {
	product, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	product.IsFeatured = !product.IsFeatured
	if err := s.products.Save(ctx, product); err != nil {
		return nil, err
	}

	s.featured.Refresh(ctx)
	return product, nil
}

func (s *ProductService) Delete(ctx context.Context, id uint) error {
	product, err := s.find(ctx, id)
	if err != nil {
		return err
	}

	if err := s.products.Delete(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrProductNotFound
		}
		return err
	}
	s.removeImages(ctx, product.Images)

	s.featured.Refresh(ctx)
	return nil
}

func (s *ProductService) find(ctx context.Context, id uint) (*models.Product, error) {
	if id == 0 {
		return nil, ErrInvalidProductID
	}
	product, err := s.products.FindByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrProductNotFound
	}
	return product, err
}

func (s *ProductService) storeImages(ctx context.Context, sources []string) ([]string, error) {
	urls := make([]string, 0, len(sources))
	for _, src := range sources {
		url, err := s.images.Store(ctx, src)
		if err != nil {
			s.removeImages(ctx, urls)
			return nil, imageError(err)
		}
		urls = append(urls, url)
	}
	return urls, nil
}

// removeImages deletes CDN objects best effort.
func (s *ProductService) removeImages(ctx context.Context, urls []string) {
	for _, url := range urls {
		if err := s.images.Remove(ctx, url); err != nil {
			log.Ctx(ctx).Warn().Err(err).Str("url", url).Msg("failed to delete image from CDN")
		}
	}
}

// imageError reports bad submitted images as client errors and leaves CDN
// failures as internal ones.
func imageError(err error) error {
	if errors.Is(err, cdn.ErrInvalidImage) {
		return invalid(err.Error())
	}
	return err
}

func checkImageCount(images []string) error {
	if len(images) == 0 {
		return ErrNoImages
	}
	if len(images) > models.MaxProductImages {
		return ErrTooManyImages
	}
	return nil
}

func normalizeCategory(category string) string {
	return strings.ToLower(strings.TrimSpace(category))
}
