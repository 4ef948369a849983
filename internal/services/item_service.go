package services

import (
	"errors"
	"fmt"

	"github.com/foundlyhq/foundly-backend/internal/dto"
	"github.com/foundlyhq/foundly-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrItemNotFound = errors.New("item not found")
	ErrNotItemOwner = errors.New("you can only modify your own items")
	ErrBadCategory  = errors.New("unknown category")
)

type ItemService struct {
	db *gorm.DB
}

func NewItemService(db *gorm.DB) *ItemService {
	return &ItemService{db: db}
}

func (s *ItemService) Create(ownerID uuid.UUID, req *dto.CreateItemRequest, imageRef string) (*models.Item, error) {
	if req.Title == "" {
		return nil, errors.New("title is required")
	}
	if req.Category != "" && !models.ValidCategory(req.Category) {
		return nil, ErrBadCategory
	}
	if req.Reward < 0 {
		return nil, errors.New("reward cannot be negative")
	}

	item := models.Item{
		ID:           uuid.New(),
		Title:        req.Title,
		Description:  req.Description,
		Category:     req.Category,
		Location:     req.Location,
		Reward:       req.Reward,
		Image:        imageRef,
		ContactName:  req.ContactName,
		ContactPhone: req.ContactPhone,
		ContactEmail: req.ContactEmail,
		OwnerID:      ownerID,
		Status:       models.StatusLost,
		RewardStatus: models.RewardNotClaimed,
		Version:      1,
	}

	if err := s.db.Create(&item).Error; err != nil {
		return nil, fmt.Errorf("failed to create item: %w", err)
	}
	return &item, nil
}

// List applies the search/filter/sort parameters of the browse screen.
func (s *ItemService) List(q *dto.ItemQuery) ([]models.Item, int64, error) {
	query := s.db.Model(&models.Item{})

	if q.Search != "" {
		like := "%" + q.Search + "%"
		query = query.Where(
			"title ILIKE ? OR description ILIKE ? OR category ILIKE ? OR location ILIKE ?",
			like, like, like, like,
		)
	}
	if q.Status != "" && q.Status != "all" {
		query = query.Where("status = ?", q.Status)
	}
	if q.Category != "" && q.Category != "all" {
		query = query.Where("category = ?", q.Category)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	switch q.Sort {
	case "oldest":
		query = query.Order("created_at ASC")
	case "reward-high":
		query = query.Order("reward DESC")
	case "reward-low":
		query = query.Order("reward ASC")
	case "title-asc":
		query = query.Order("title ASC")
	case "title-desc":
		query = query.Order("title DESC")
	default:
		query = query.Order("created_at DESC")
	}

	limit := q.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	page := q.Page
	if page < 1 {
		page = 1
	}

	var items []models.Item
	err := query.Limit(limit).Offset((page - 1) * limit).Find(&items).Error
	return items, total, err
}

func (s *ItemService) GetByID(id uuid.UUID) (*models.Item, error) {
	var item models.Item
	if err := s.db.Preload("Owner").Preload("Finder").First(&item, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}
	return &item, nil
}

// Similar returns up to limit other lost items in the same category.
func (s *ItemService) Similar(item *models.Item, limit int) ([]models.Item, error) {
	var similar []models.Item
	err := s.db.
		Where("id <> ? AND category = ? AND status = ?", item.ID, item.Category, models.StatusLost).
		Order("created_at DESC").
		Limit(limit).
		Find(&similar).Error
	return similar, err
}

// MyItems returns the user's posted listings and the listings they found.
func (s *ItemService) MyItems(userID uuid.UUID) (posted []models.Item, found []models.Item, err error) {
	if err = s.db.Where("owner_id = ?", userID).Order("created_at DESC").Find(&posted).Error; err != nil {
		return nil, nil, err
	}
	if err = s.db.Where("finder_id = ?", userID).Order("created_at DESC").Find(&found).Error; err != nil {
		return nil, nil, err
	}
	return posted, found, nil
}

func (s *ItemService) Update(id uuid.UUID, actor uuid.UUID, req *dto.UpdateItemRequest, imageRef string) (*models.Item, error) {
	var item models.Item
	if err := s.db.First(&item, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}
	if item.OwnerID != actor {
		return nil, ErrNotItemOwner
	}
	if req.Category != "" && !models.ValidCategory(req.Category) {
		return nil, ErrBadCategory
	}
	if req.Reward < 0 {
		return nil, errors.New("reward cannot be negative")
	}

	updates := map[string]interface{}{
		"title":         req.Title,
		"description":   req.Description,
		"category":      req.Category,
		"location":      req.Location,
		"reward":        req.Reward,
		"contact_name":  req.ContactName,
		"contact_phone": req.ContactPhone,
		"contact_email": req.ContactEmail,
	}
	if imageRef != "" {
		updates["image"] = imageRef
	}

	if err := s.db.Model(&item).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update item: %w", err)
	}
	return &item, nil
}

func (s *ItemService) Delete(id uuid.UUID, actor uuid.UUID) error {
	var item models.Item
	if err := s.db.First(&item, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrItemNotFound
		}
		return err
	}
	if item.OwnerID != actor {
		return ErrNotItemOwner
	}
	return s.db.Delete(&item).Error
}

// AdminDelete removes a listing regardless of owner.
func (s *ItemService) AdminDelete(id uuid.UUID) error {
	result := s.db.Delete(&models.Item{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrItemNotFound
	}
	return nil
}

// SetAIDescription stores an AI-polished description alongside the original.
func (s *ItemService) SetAIDescription(id uuid.UUID, actor uuid.UUID, description string) error {
	var item models.Item
	if err := s.db.First(&item, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrItemNotFound
		}
		return err
	}
	if item.OwnerID != actor {
		return ErrNotItemOwner
	}
	return s.db.Model(&item).Update("ai_description", description).Error
}
