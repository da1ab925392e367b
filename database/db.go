package database

import (
	"fmt"
	"os"

	"swiftship-backend/logger"
	"swiftship-backend/models/log"
	"swiftship-backend/models/quote"
	"swiftship-backend/models/shipment"
	"swiftship-backend/models/user"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

// InitDB initializes the database connection with migration and indexing
func InitDB() (*gorm.DB, error) {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		logger.Error("Error loading .env file", err)
	}

	host := os.Getenv("DB_HOST")
	port := os.Getenv("DB_PORT")
	database := os.Getenv("DB_DATABASE")
	username := os.Getenv("DB_USERNAME")
	password := os.Getenv("DB_PASSWORD")
	sslmode := os.Getenv("DB_SSLMODE") // Optional: "disable", "require", etc.

	if sslmode == "" {
		sslmode = "disable"
	}

	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		host, port, username, password, database, sslmode)

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		logger.Error("Failed to connect to the database", err)
		return nil, err
	}
	logger.Success("Successfully connected to the database")

	if err := autoMigrate(); err != nil {
		logger.Error("Failed to run migrations", err)
		return nil, err
	}
	logger.Success("All migrations completed successfully")

	if err := createForeignKeyConstraints(); err != nil {
		logger.Error("Failed to create foreign key constraints", err)
		return nil, err
	}
	logger.Success("All foreign key constraints created successfully")

	if err := createIndexes(); err != nil {
		logger.Error("Failed to create indexes", err)
		return nil, err
	}
	logger.Success("All indexes created successfully")

	return DB, nil
}

// autoMigrate runs auto migration for all models in dependency stages
func autoMigrate() error {
	// Stage 1: Core foundation models
	stage1Models := []interface{}{
		&user.Profile{},
	}

	for _, model := range stage1Models {
		if err := DB.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", model, err)
		}
	}

	// Stage 2: Models depending on profiles
	stage2Models := []interface{}{
		&quote.SavedQuote{},
		&shipment.Shipment{},
	}

	for _, model := range stage2Models {
		if err := DB.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", model, err)
		}
	}

	// Stage 3: Remaining models
	remainingModels := []interface{}{
		&shipment.ShipmentEvent{},
		&log.Log{},
	}

	for _, model := range remainingModels {
		if err := DB.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", model, err)
		}
	}

	return nil
}

// createIndexes creates additional indexes for better performance
func createIndexes() error {
	// Profile indexes
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_profiles_uuid ON profiles(uuid)").Error; err != nil {
		return fmt.Errorf("failed to create profile uuid index: %w", err)
	}

	// Saved quote indexes
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_saved_quotes_user_id ON saved_quotes(user_id)").Error; err != nil {
		return fmt.Errorf("failed to create saved_quote user_id index: %w", err)
	}
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_saved_quotes_status ON saved_quotes(status)").Error; err != nil {
		return fmt.Errorf("failed to create saved_quote status index: %w", err)
	}
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_saved_quotes_created_at ON saved_quotes(created_at)").Error; err != nil {
		return fmt.Errorf("failed to create saved_quote created_at index: %w", err)
	}

	// Shipment indexes
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_shipments_status ON shipments(status)").Error; err != nil {
		return fmt.Errorf("failed to create shipment status index: %w", err)
	}
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_shipments_created_at ON shipments(created_at)").Error; err != nil {
		return fmt.Errorf("failed to create shipment created_at index: %w", err)
	}

	// Shipment event indexes
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_shipment_events_created_at ON shipment_events(created_at)").Error; err != nil {
		return fmt.Errorf("failed to create shipment_event created_at index: %w", err)
	}

	// Log indexes
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_logs_status_code ON logs(status_code)").Error; err != nil {
		return fmt.Errorf("failed to create log status_code index: %w", err)
	}
	if err := DB.Exec("CREATE INDEX IF NOT EXISTS idx_logs_created_at ON logs(created_at)").Error; err != nil {
		return fmt.Errorf("failed to create log created_at index: %w", err)
	}

	return nil
}

// createForeignKeyConstraints creates foreign key constraints after auto migration
func createForeignKeyConstraints() error {
	constraints := []struct {
		name string
		sql  string
	}{
		{
			name: "fk_saved_quotes_profile",
			sql: `ALTER TABLE saved_quotes ADD CONSTRAINT fk_saved_quotes_profile
				  FOREIGN KEY (user_id) REFERENCES profiles(id)
				  ON UPDATE CASCADE ON DELETE RESTRICT`,
		},
		{
			name: "fk_shipments_profile",
			sql: `ALTER TABLE shipments ADD CONSTRAINT fk_shipments_profile
				  FOREIGN KEY (user_id) REFERENCES profiles(id)
				  ON UPDATE CASCADE ON DELETE SET NULL`,
		},
		{
			// Events live and die with their shipment.
			name: "fk_shipment_events_shipment",
			sql: `ALTER TABLE shipment_events ADD CONSTRAINT fk_shipment_events_shipment
				  FOREIGN KEY (shipment_id) REFERENCES shipments(id)
				  ON UPDATE CASCADE ON DELETE CASCADE`,
		},
	}

	for _, constraint := range constraints {
		var exists bool
		checkSQL := `
			SELECT EXISTS (
				SELECT 1 FROM information_schema.table_constraints
				WHERE constraint_name = $1
			)
		`

		err := DB.Raw(checkSQL, constraint.name).Scan(&exists).Error
		if err != nil {
			logger.Warning(fmt.Sprintf("Failed to check constraint existence: %s - Error: %v", constraint.name, err))
			continue
		}

		if !exists {
			if err := DB.Exec(constraint.sql).Error; err != nil {
				logger.Warning(fmt.Sprintf("Failed to create constraint: %s - Error: %v", constraint.name, err))
			} else {
				logger.Success(fmt.Sprintf("Successfully created constraint: %s", constraint.name))
			}
		} else {
			logger.Debug(fmt.Sprintf("Constraint already exists: %s", constraint.name))
		}
	}

	return nil
}

// GetDB returns the database instance
func GetDB() *gorm.DB {
	return DB
}
