package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	"github.com/roastline/roastline-backend/config"
	"github.com/roastline/roastline-backend/internal/app/model"
	"github.com/roastline/roastline-backend/internal/app/repository"
	"github.com/roastline/roastline-backend/internal/app/service"
	"github.com/roastline/roastline-backend/internal/db"
)

// Seeds the database with an initial admin account and a starter catalog.
// Usage:
//
//	go run ./cmd/seed                  # built-in starter catalog
//	go run ./cmd/seed catalog.xlsx     # import products from a workbook
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	database, err := db.Connect(&cfg.Database)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close(database)

	if err := db.Migrate(database); err != nil {
		fmt.Fprintf(os.Stderr, "failed to run migrations: %v\n", err)
		os.Exit(1)
	}

	if err := seedAdmin(database, &cfg.JWT); err != nil {
		fmt.Fprintf(os.Stderr, "failed to seed admin user: %v\n", err)
		os.Exit(1)
	}

	var products []model.Product
	if len(os.Args) > 1 {
		products, err = readProductsFromXLSX(os.Args[1])
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to read catalog file: %v\n", err)
			os.Exit(1)
		}
	} else {
		products = starterCatalog()
	}

	imported := 0
	for i := range products {
		var count int64
		database.Model(&model.Product{}).Where("name = ?", products[i].Name).Count(&count)
		if count > 0 {
			continue
		}
		if err := database.Create(&products[i]).Error; err != nil {
			fmt.Fprintf(os.Stderr, "failed to insert product %q: %v\n", products[i].Name, err)
			os.Exit(1)
		}
		imported++
	}

	fmt.Printf("Seed complete: %d products imported\n", imported)
}

func seedAdmin(database *gorm.DB, jwtCfg *config.JWTConfig) error {
	username := os.Getenv("SEED_ADMIN_USERNAME")
	if username == "" {
		username = "admin"
	}
	password := os.Getenv("SEED_ADMIN_PASSWORD")
	if password == "" {
		password = "changeme"
		fmt.Println("SEED_ADMIN_PASSWORD not set, using default password 'changeme'")
	}

	authService := service.NewAuthService(repository.NewAdminUserRepository(database), jwtCfg)
	_, err := authService.Register(username, username+"@roastline.example", password)
	if errors.Is(err, service.ErrUsernameTaken) || errors.Is(err, service.ErrEmailTaken) {
		fmt.Printf("Admin user %q already exists, skipping\n", username)
		return nil
	}
	if err != nil {
		return err
	}

	fmt.Printf("Admin user %q created\n", username)
	return nil
}

// readProductsFromXLSX imports a catalog workbook. Expected columns:
// name, description, price, category, origin, roast level, tasting notes.
func readProductsFromXLSX(filePath string) ([]model.Product, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open XLSX file: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	fmt.Printf("Reading sheet: %s\n", sheetName)

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}

	var products []model.Product
	for i, row := range rows {
		// Skip header row
		if i == 0 {
			continue
		}
		if len(row) < 4 || row[0] == "" {
			continue
		}

		price, err := decimal.NewFromString(row[2])
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid price %q: %w", i+1, row[2], err)
		}

		product := model.Product{
			Name:        row[0],
			Description: row[1],
			Price:       price,
			Category:    model.ProductCategory(row[3]),
			InStock:     true,
		}
		if len(row) > 4 {
			product.Origin = row[4]
		}
		if len(row) > 5 {
			product.RoastLevel = model.RoastLevel(row[5])
		}
		if len(row) > 6 {
			for col := 6; col < len(row); col++ {
				if row[col] != "" {
					product.TastingNotes = append(product.TastingNotes, row[col])
				}
			}
		}
		if len(row) > 7 {
			if inStock, err := strconv.ParseBool(row[7]); err == nil {
				product.InStock = inStock
			}
		}

		products = append(products, product)
	}

	return products, nil
}

func starterCatalog() []model.Product {
	return []model.Product{
		{
			Name:         "Yirgacheffe Washed",
			Description:  "Bright Ethiopian single origin with a floral, tea-like body.",
			Price:        decimal.RequireFromString("24.99"),
			Category:     model.CategorySingleOrigin,
			Origin:       "Ethiopia",
			RoastLevel:   model.RoastLight,
			TastingNotes: []string{"jasmine", "bergamot", "lemon"},
			InStock:      true,
		},
		{
			Name:         "Huila Supremo",
			Description:  "Balanced Colombian cup, sweet and clean.",
			Price:        decimal.RequireFromString("19.50"),
			Category:     model.CategorySingleOrigin,
			Origin:       "Colombia",
			RoastLevel:   model.RoastMedium,
			TastingNotes: []string{"caramel", "red apple", "milk chocolate"},
			InStock:      true,
		},
		{
			Name:         "Breakfast Blend",
			Description:  "Our everyday blend of Central and South American lots.",
			Price:        decimal.RequireFromString("16.00"),
			Category:     model.CategoryBlend,
			Origin:       "Guatemala / Brazil",
			RoastLevel:   model.RoastMedium,
			TastingNotes: []string{"toffee", "hazelnut"},
			InStock:      true,
		},
		{
			Name:         "Midnight Espresso",
			Description:  "Developed roast built for milk drinks and heavy crema.",
			Price:        decimal.RequireFromString("18.75"),
			Category:     model.CategoryEspresso,
			Origin:       "Brazil / India",
			RoastLevel:   model.RoastDark,
			TastingNotes: []string{"dark chocolate", "molasses"},
			InStock:      true,
		},
		{
			Name:         "Sugarcane Decaf",
			Description:  "Colombian decaf processed with ethyl acetate, full flavor without the caffeine.",
			Price:        decimal.RequireFromString("21.25"),
			Category:     model.CategoryDecaf,
			Origin:       "Colombia",
			RoastLevel:   model.RoastMediumDark,
			TastingNotes: []string{"brown sugar", "cherry"},
			InStock:      true,
		},
	}
}
