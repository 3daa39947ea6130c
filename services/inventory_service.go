package services

import (
	"context"
	"fmt"

	"pixel-hunt-system/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// InventoryService stores items handed out as hunt rewards.
type InventoryService struct {
	DB *gorm.DB
}

func NewInventoryService(db *gorm.DB) *InventoryService {
	return &InventoryService{DB: db}
}

// Give adds quantity of item to the player's inventory.
func (s *InventoryService) Give(ctx context.Context, playerID, item string, quantity int) error {
	if playerID == "" || item == "" || quantity < 1 {
		return fmt.Errorf("%w: player, item and a positive quantity are required", models.ErrInvalidArgument)
	}

	stack := models.InventoryItem{
		ExternalUserID: playerID,
		Item:           item,
		Quantity:       quantity,
	}
	err := s.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "external_user_id"}, {Name: "item"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"quantity":   gorm.Expr("inventory_items.quantity + ?", quantity),
			"updated_at": gorm.Expr("NOW()"),
		}),
	}).Create(&stack).Error
	if err != nil {
		return fmt.Errorf("give %dx %s to %s: %w", quantity, item, playerID, err)
	}
	return nil
}

// Items lists the player's inventory.
func (s *InventoryService) Items(ctx context.Context, playerID string) ([]models.InventoryItem, error) {
	var items []models.InventoryItem
	err := s.DB.WithContext(ctx).
		Where("external_user_id = ?", playerID).
		Order("item ASC").
		Find(&items).Error
	return items, err
}
