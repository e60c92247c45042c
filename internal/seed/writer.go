package seed

import (
	"context"
	"fmt"

	"dating-admin/internal/logutils"
	"dating-admin/pkg/models"

	"gorm.io/gorm"
)

const batchSize = 500

// Reset vide les tables métier; les comptes opérateurs sont conservés
func Reset(ctx context.Context, db *gorm.DB) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, model := range []any{
			&models.Notification{},
			&models.SafetyReport{},
			&models.Report{},
			&models.Blindate{},
			&models.Match{},
			&models.User{},
		} {
			if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model).Error; err != nil {
				return fmt.Errorf("failed to reset %T: %w", model, err)
			}
		}
		return nil
	})
}

// Write insère le jeu de données dans une transaction, par lots
func Write(ctx context.Context, db *gorm.DB, ds *Dataset) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		steps := []struct {
			name  string
			count int
			rows  any
		}{
			{"users", len(ds.Users), &ds.Users},
			{"matches", len(ds.Matches), &ds.Matches},
			{"blindates", len(ds.Blindates), &ds.Blindates},
			{"reports", len(ds.Reports), &ds.Reports},
			{"safety reports", len(ds.SafetyReports), &ds.SafetyReports},
			{"notifications", len(ds.Notifications), &ds.Notifications},
		}
		for _, step := range steps {
			if step.count == 0 {
				continue
			}
			if err := tx.CreateInBatches(step.rows, batchSize).Error; err != nil {
				return fmt.Errorf("failed to insert %s: %w", step.name, err)
			}
			logutils.Log.Infof("Seed: inserted %d %s", step.count, step.name)
		}
		return nil
	})
}
