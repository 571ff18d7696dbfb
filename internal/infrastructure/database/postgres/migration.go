// internal/infrastructure/database/postgres/migration.go
package postgres

import (
	"fmt"
	"log"

	"github.com/your-org/viber-store/internal/domain/cart"
	"github.com/your-org/viber-store/internal/domain/product"
	"github.com/your-org/viber-store/internal/domain/user"
	"github.com/your-org/viber-store/internal/pkg/auth"
	"gorm.io/gorm"
)

// Migration handles database migrations
type Migration struct {
	db *gorm.DB
}

// NewMigration creates a new migration instance
func NewMigration(db *gorm.DB) *Migration {
	return &Migration{db: db}
}

// RunAutoMigrations runs GORM auto-migrations for all models
func (m *Migration) RunAutoMigrations() error {
	log.Println("Running database auto-migrations...")

	models := []interface{}{
		&user.User{},
		&product.Product{},
		&cart.CartLine{},
	}

	for _, model := range models {
		log.Printf("Migrating model: %T", model)
		if err := m.db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate model %T: %w", model, err)
		}
	}

	log.Println("Database auto-migrations completed successfully")
	return nil
}

// CreateIndexes creates additional indexes for better performance
func (m *Migration) CreateIndexes() error {
	log.Println("Creating additional database indexes...")

	indexes := []string{
		// Product indexes
		"CREATE INDEX IF NOT EXISTS idx_products_category_price ON products(category, price)",
		"CREATE INDEX IF NOT EXISTS idx_products_in_stock ON products(in_stock)",

		// Cart indexes. The composite unique index is also declared on the
		// model; repeated here so a hand-managed schema keeps the invariant.
		"CREATE INDEX IF NOT EXISTS idx_cart_lines_owner_key ON cart_lines(owner_key)",
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_cart_lines_owner_product ON cart_lines(owner_key, product_id)",
	}

	successCount := 0
	failCount := 0

	for _, indexSQL := range indexes {
		if err := m.db.Exec(indexSQL).Error; err != nil {
			log.Printf("Failed to create index: %v", err)
			failCount++
		} else {
			successCount++
		}
	}

	log.Printf("Created %d indexes successfully (%d failed)", successCount, failCount)
	return nil
}

// SeedInitialData inserts initial data into the database
func (m *Migration) SeedInitialData() error {
	log.Println("Seeding initial data...")

	if err := m.seedProducts(); err != nil {
		return fmt.Errorf("failed to seed products: %w", err)
	}

	if err := m.seedTestUser(); err != nil {
		return fmt.Errorf("failed to seed test user: %w", err)
	}

	log.Println("Initial data seeded successfully")
	return nil
}

// seedProducts creates the sample hat catalog
func (m *Migration) seedProducts() error {
	log.Println("Seeding products...")

	var productCount int64
	m.db.Model(&product.Product{}).Count(&productCount)
	if productCount > 0 {
		log.Println("Products already exist")
		return nil
	}

	sampleProducts := []product.Product{
		{
			Name:          "Classic Fedora",
			Description:   "A timeless fedora hat made from premium felt",
			Price:         4999,
			ImageURL:      "https://placehold.co/300x200?text=Fedora",
			Category:      "Formal",
			Material:      "Felt",
			Style:         "Fedora",
			Color:         "Charcoal",
			Season:        "All-Season",
			Gender:        "Unisex",
			InStock:       true,
			StockQuantity: 25,
		},
		{
			Name:          "Summer Straw Hat",
			Description:   "Light and breezy straw hat perfect for sunny days",
			Price:         2999,
			ImageURL:      "https://placehold.co/300x200?text=Straw+Hat",
			Category:      "Summer",
			Material:      "Straw",
			Style:         "Wide Brim",
			Color:         "Natural",
			Season:        "Summer",
			Gender:        "Unisex",
			InStock:       true,
			StockQuantity: 40,
		},
		{
			Name:          "Winter Beanie",
			Description:   "Warm and cozy beanie for cold weather",
			Price:         1999,
			ImageURL:      "https://placehold.co/300x200?text=Beanie",
			Category:      "Winter",
			Material:      "Wool",
			Style:         "Beanie",
			Color:         "Navy",
			Season:        "Winter",
			Gender:        "Unisex",
			Fit:           "Snug",
			InStock:       true,
			StockQuantity: 60,
		},
		{
			Name:          "Vintage Bowler",
			Description:   "Classic bowler hat with a modern twist",
			Price:         5999,
			ImageURL:      "https://placehold.co/300x200?text=Bowler",
			Category:      "Formal",
			Material:      "Wool Felt",
			Style:         "Bowler",
			Color:         "Black",
			Season:        "All-Season",
			Gender:        "Unisex",
			InStock:       true,
			StockQuantity: 15,
		},
	}

	for _, prod := range sampleProducts {
		if err := m.db.Create(&prod).Error; err != nil {
			return err
		}
		log.Printf("Created product: %s", prod.Name)
	}

	return nil
}

// seedTestUser creates a development user. The account is stored but the
// login flow never reads it; any non-empty credential pair is accepted.
func (m *Migration) seedTestUser() error {
	log.Println("Seeding test user...")

	var existing user.User
	result := m.db.Where("username = ?", "testuser").First(&existing)
	if result.Error == nil {
		log.Println("Test user already exists")
		return nil
	}

	hashedPassword, err := auth.HashPassword("test123", 10)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	testUser := user.User{
		Username: "testuser",
		Password: hashedPassword,
	}

	if err := m.db.Create(&testUser).Error; err != nil {
		return err
	}

	log.Println("Created test user: testuser")
	return nil
}
