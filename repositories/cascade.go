// File: /repositories/cascade.go
package repositories

import (
	"fleetexpense-api/models"

	"gorm.io/gorm"
)

// deleteGroups removes the groups and every expense record attached to them.
// Callers run it inside a transaction.
func deleteGroups(tx *gorm.DB, groupIDs []string) error {
	if len(groupIDs) == 0 {
		return nil
	}

	for _, category := range models.ExpenseCategories {
		if err := tx.Where("group_id IN ?", groupIDs).Delete(category.NewRecord()).Error; err != nil {
			return err
		}
	}

	return tx.Where("id IN ?", groupIDs).Delete(&models.Group{}).Error
}

func groupIDsWhere(tx *gorm.DB, query string, args ...interface{}) ([]string, error) {
	var ids []string
	err := tx.Model(&models.Group{}).Where(query, args...).Pluck("id", &ids).Error
	return ids, err
}
