package dao

import "gorm.io/gorm"

func InitTables(db *gorm.DB) error {
	return db.AutoMigrate(
		&Lottery{},
		&Ticket{},
		&Anomaly{},
		&ProcessedPayment{},
		&Winner{},
		&RecurringTemplate{},
		&UserPoints{},
		&RewardTier{},
		&UserReward{},
		&WalletJournalEntry{},
		&LedgerSync{},
		&Character{},
		&CharacterOwnership{},
		&UserProfile{},
	)
}

// dropAllTables wipes the public schema. Integration tests use it between runs.
func dropAllTables(db *gorm.DB) error {
	var tableNames []string
	if err := db.Table("information_schema.tables").
		Where("table_schema = ?", "public").
		Pluck("table_name", &tableNames).Error; err != nil {
		return err
	}

	for _, tableName := range tableNames {
		if err := db.Exec("DROP TABLE IF EXISTS " + tableName + " CASCADE").Error; err != nil {
			return err
		}
	}

	return nil
}

// ResetTables drops and recreates every table.
func ResetTables(db *gorm.DB) error {
	if err := dropAllTables(db); err != nil {
		return err
	}

	return InitTables(db)
}
