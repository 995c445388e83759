package store

import (
	"context"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/Kariqs/storefront-api/models"
)

type UserStore struct {
	db *gorm.DB
}

func NewUserStore(db *gorm.DB) *UserStore {
	return &UserStore{db: db}
}

func (s *UserStore) Create(ctx context.Context, user *models.User) error {
	return wrap(s.db.WithContext(ctx).Create(user).Error, "create user")
}

func (s *UserStore) EmailExists(ctx context.Context, email string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.User{}).Where("email = ?", email).Count(&count).Error
	return count > 0, wrap(err, "check user email")
}

func (s *UserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, wrap(err, "find user by email")
	}
	s.migrateCart(ctx, &user)
	return &user, nil
}

// FindByID loads a user. A cart that needed repair on decode is written back
// once so later reads see the clean shape.
func (s *UserStore) FindByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, wrap(err, "find user")
	}
	s.migrateCart(ctx, &user)
	return &user, nil
}

func (s *UserStore) SaveCart(ctx context.Context, userID uint, items []models.CartItem) error {
	err := s.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", userID).
		Update("cart_items", models.NewCart(items)).Error
	return wrap(err, "save cart")
}

func (s *UserStore) Count(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.User{}).Count(&count).Error
	return count, wrap(err, "count users")
}

func (s *UserStore) migrateCart(ctx context.Context, user *models.User) {
	if !user.CartItems.NeedsRewrite() {
		return
	}
	if err := s.SaveCart(ctx, user.ID, user.CartItems.Items); err != nil {
		log.Ctx(ctx).Error().Err(err).Uint("user_id", user.ID).Msg("failed to rewrite repaired cart")
		return
	}
	user.CartItems = models.NewCart(user.CartItems.Items)
	log.Ctx(ctx).Warn().Uint("user_id", user.ID).Msg("repaired malformed cart entries")
}
