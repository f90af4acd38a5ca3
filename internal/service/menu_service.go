package service

import (
	"context"
	"log"

	"cafe-pos/internal/domain"
)

// MenuService manages the menu catalog. Listings are served from the Redis
// cache when one is configured; any write invalidates every cached listing.
type MenuService struct {
	repo  MenuRepository
	cache MenuCache
}

func NewMenuService(repo MenuRepository, cache MenuCache) *MenuService {
	return &MenuService{repo: repo, cache: cache}
}

func (s *MenuService) List(ctx context.Context) ([]domain.MenuItemView, error) {
	if s.cache != nil {
		if items, err := s.cache.Get(ctx, s.cache.MenuKey()); err == nil && items != nil {
			return views(items), nil
		}
	}

	items, err := s.repo.ListMenuItems()
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		_ = s.cache.Set(ctx, s.cache.MenuKey(), items)
	}
	return views(items), nil
}

func (s *MenuService) ListByCategory(ctx context.Context, category string) ([]domain.MenuItemView, error) {
	if s.cache != nil {
		if items, err := s.cache.Get(ctx, s.cache.CategoryKey(category)); err == nil && items != nil {
			return views(items), nil
		}
	}

	items, err := s.repo.ListMenuItemsByCategory(category)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		_ = s.cache.Set(ctx, s.cache.CategoryKey(category), items)
	}
	return views(items), nil
}

func (s *MenuService) Create(ctx context.Context, req *domain.CreateMenuItemRequest) (*domain.MenuItemView, error) {
	if req.Name == "" || req.Price == nil || req.Category == "" {
		return nil, domain.ErrValidation
	}

	item := &domain.MenuItem{
		Name:      req.Name,
		Price:     *req.Price,
		Image:     req.Image,
		Category:  req.Category,
		Available: true,
	}
	if req.Available != nil {
		item.Available = *req.Available
	}

	if err := s.repo.CreateMenuItem(item); err != nil {
		return nil, err
	}
	s.invalidate(ctx)

	view := item.View()
	return &view, nil
}

func (s *MenuService) Update(ctx context.Context, id int, patch *domain.MenuItemPatch) (*domain.MenuItemView, error) {
	item, err := s.repo.GetMenuItem(id)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		item.Name = *patch.Name
	}
	if patch.Price != nil {
		item.Price = *patch.Price
	}
	if patch.Image != nil {
		item.Image = *patch.Image
	}
	if patch.Category != nil {
		item.Category = *patch.Category
	}
	if patch.Available != nil {
		item.Available = *patch.Available
	}

	if err := s.repo.UpdateMenuItem(item); err != nil {
		return nil, err
	}
	s.invalidate(ctx)

	view := item.View()
	return &view, nil
}

func (s *MenuService) Delete(ctx context.Context, id int) error {
	rows, err := s.repo.DeleteMenuItem(id)
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrNotFound
	}
	s.invalidate(ctx)
	return nil
}

func (s *MenuService) Categories() ([]string, error) {
	return s.repo.ListCategories()
}

// AddCategory only checks for duplicates: categories are plain strings on
// menu items, so there is nothing to persist for a category of its own.
func (s *MenuService) AddCategory(name string) error {
	categories, err := s.repo.ListCategories()
	if err != nil {
		return err
	}
	for _, existing := range categories {
		if existing == name {
			return domain.ErrCategoryExists
		}
	}
	return nil
}

func (s *MenuService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		log.Printf("Warning: failed to invalidate menu cache: %v", err)
	}
}

func views(items []domain.MenuItem) []domain.MenuItemView {
	result := []domain.MenuItemView{}
	for i := range items {
		result = append(result, items[i].View())
	}
	return result
}

var _ MenuInterface = (*MenuService)(nil)
