package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"github.com/cafein/api-go/config"
	"github.com/cafein/api-go/models"
)

// seedCafe is the dataset row shape. Nested collections are optional.
type seedCafe struct {
	Name      string   `json:"name"`
	Address   string   `json:"address"`
	Phone     *string  `json:"phone"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`

	Hours []struct {
		DayOfWeek int     `json:"day_of_week"`
		OpenTime  *string `json:"open_time"`
		CloseTime *string `json:"close_time"`
		IsClosed  bool    `json:"is_closed"`
	} `json:"operating_hours"`

	Menus []struct {
		Name        string  `json:"name"`
		Description *string `json:"description"`
		Price       float64 `json:"price"`
		Category    string  `json:"category"`
	} `json:"menus"`

	Images []struct {
		URL       string `json:"url"`
		IsPrimary bool   `json:"is_primary"`
	} `json:"images"`

	Reviews []struct {
		Rating  int     `json:"rating"`
		Comment *string `json:"comment"`
	} `json:"reviews"`
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()

	file := flag.String("file", "cafes.json", "path to the dataset file")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	raw, err := os.ReadFile(*file)
	if err != nil {
		return fmt.Errorf("read dataset: %w", err)
	}

	var rows []seedCafe
	if err := json.Unmarshal(raw, &rows); err != nil {
		return fmt.Errorf("parse dataset: %w", err)
	}
	logger.Info("dataset loaded", "file", *file, "cafes", len(rows))

	db := config.InitDB()

	// Each cafe is imported independently. A failed cafe row skips its
	// children; a failed child is logged and the rest continue, so a
	// partially bad dataset still yields the good rows.
	imported := 0
	for _, row := range rows {
		if err := importCafe(db, logger, row); err != nil {
			logger.Error("cafe skipped", "name", row.Name, "error", err)
			continue
		}
		imported++
	}

	logger.Info("import finished", "imported", imported, "skipped", len(rows)-imported)
	return nil
}

func importCafe(db *gorm.DB, logger *slog.Logger, row seedCafe) error {
	cafe := models.Cafe{
		Name:      row.Name,
		Address:   row.Address,
		Phone:     row.Phone,
		Latitude:  row.Latitude,
		Longitude: row.Longitude,
		IsActive:  true,
	}
	if err := db.Create(&cafe).Error; err != nil {
		return fmt.Errorf("create cafe: %w", err)
	}
	logger.Info("cafe created", "id", cafe.ID, "name", cafe.Name)

	for _, h := range row.Hours {
		hours := models.OperatingHours{
			CafeID:    cafe.ID,
			DayOfWeek: h.DayOfWeek,
			OpenTime:  h.OpenTime,
			CloseTime: h.CloseTime,
			IsClosed:  h.IsClosed,
		}
		if err := db.Create(&hours).Error; err != nil {
			logger.Error("hours skipped", "cafe", cafe.Name, "day", h.DayOfWeek, "error", err)
		}
	}

	for _, m := range row.Menus {
		menu := models.CafeMenu{
			CafeID:      cafe.ID,
			Name:        m.Name,
			Description: m.Description,
			Price:       m.Price,
			Category:    models.MenuCategory(m.Category),
		}
		if err := db.Create(&menu).Error; err != nil {
			logger.Error("menu skipped", "cafe", cafe.Name, "item", m.Name, "error", err)
		}
	}

	for _, img := range row.Images {
		image := models.CafeImage{
			CafeID:    cafe.ID,
			ImageURL:  img.URL,
			IsPrimary: img.IsPrimary,
		}
		if err := db.Create(&image).Error; err != nil {
			logger.Error("image skipped", "cafe", cafe.Name, "url", img.URL, "error", err)
		}
	}

	for _, r := range row.Reviews {
		review := models.Review{
			CafeID:         cafe.ID,
			Rating:         r.Rating,
			Comment:        r.Comment,
			IsAdminCreated: true,
		}
		if err := db.Create(&review).Error; err != nil {
			logger.Error("review skipped", "cafe", cafe.Name, "error", err)
		}
	}

	if len(row.Reviews) > 0 {
		refreshAggregates(db, cafe.ID.String())
	}
	return nil
}

// refreshAggregates recomputes the denormalized rating columns after a
// bulk review insert.
func refreshAggregates(db *gorm.DB, cafeID string) {
	db.Model(&models.Cafe{}).Where("id = ?", cafeID).Updates(map[string]interface{}{
		"review_count": gorm.Expr("(SELECT COUNT(*) FROM reviews WHERE reviews.cafe_id = ?)", cafeID),
		"rating":       gorm.Expr("(SELECT COALESCE(AVG(rating), 0) FROM reviews WHERE reviews.cafe_id = ?)", cafeID),
	})
}
