package services

import (
	"context"
	"fmt"

	"pixel-hunt-system/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// WalletService is the database-backed economy.
type WalletService struct {
	DB              *gorm.DB
	defaultCurrency string
}

func NewWalletService(db *gorm.DB, defaultCurrency string) *WalletService {
	if defaultCurrency == "" {
		defaultCurrency = "coins"
	}
	return &WalletService{DB: db, defaultCurrency: defaultCurrency}
}

func (s *WalletService) DefaultCurrency() string { return s.defaultCurrency }

// Deposit adds amount to the player's wallet, creating it on first use.
func (s *WalletService) Deposit(ctx context.Context, playerID, currency string, amount float64) error {
	if playerID == "" || currency == "" {
		return fmt.Errorf("%w: player and currency are required", models.ErrInvalidArgument)
	}
	if amount <= 0 {
		return fmt.Errorf("%w: deposit must be positive", models.ErrInvalidArgument)
	}

	wallet := models.Wallet{
		ExternalUserID: playerID,
		Currency:       currency,
		Balance:        amount,
	}
	err := s.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "external_user_id"}, {Name: "currency"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"balance":    gorm.Expr("wallets.balance + ?", amount),
			"updated_at": gorm.Expr("NOW()"),
		}),
	}).Create(&wallet).Error
	if err != nil {
		return fmt.Errorf("deposit %.2f %s for %s: %w", amount, currency, playerID, err)
	}
	return nil
}

// Balance returns the player's balance in currency; zero if no wallet exists.
func (s *WalletService) Balance(ctx context.Context, playerID, currency string) (float64, error) {
	var wallet models.Wallet
	err := s.DB.WithContext(ctx).
		Where("external_user_id = ? AND currency = ?", playerID, currency).
		First(&wallet).Error
	if err == gorm.ErrRecordNotFound {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return wallet.Balance, nil
}

// Ping reports whether the database behind the economy is reachable.
func (s *WalletService) Ping(ctx context.Context) error {
	sqlDB, err := s.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
