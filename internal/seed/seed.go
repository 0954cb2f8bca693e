// Package seed loads a fixed demo catalog with reviews. Ids are derived
// from names, so reseeding inserts nothing new.
package seed

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/MehmetBegun/Product-Review-App-SolarityAI/pkg/database"
)

var namespace = uuid.MustParse("6b3f1d8e-52a4-4f0c-9b7e-0d2c4a1e8f37")

// ProductID returns the id the seed assigns to the product called name.
func ProductID(name string) string {
	return uuid.NewSHA1(namespace, []byte("product:"+name)).String()
}

func reviewID(productName string, n int) string {
	return uuid.NewSHA1(namespace, []byte(fmt.Sprintf("review:%s:%d", productName, n))).String()
}

// Review is one seeded review.
type Review struct {
	Reviewer string
	Comment  string
	Rating   int
}

// Product is one seeded product with its reviews.
type Product struct {
	Name        string
	Description string
	Categories  []string
	Price       int64 // cents
	ImageURL    string
	Reviews     []Review
}

// Result counts the rows actually inserted.
type Result struct {
	Products int64
	Reviews  int64
}

const insertProduct = `
	INSERT INTO products (id, name, description, categories, price, currency, image_url, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, 'USD', $6, $7, $7)
	ON CONFLICT (id) DO NOTHING`

const insertReview = `
	INSERT INTO product_reviews (id, product_id, reviewer_name, comment, rating, helpful_count, created_at)
	VALUES ($1, $2, $3, $4, $5, 0, $6)
	ON CONFLICT (id) DO NOTHING`

// Run inserts catalog into db. Creation times are spaced one hour apart
// back from base so listings have a stable order.
func Run(ctx context.Context, db database.DBTX, catalog []Product, base time.Time, logger *slog.Logger) (Result, error) {
	var res Result
	for i, p := range catalog {
		id := ProductID(p.Name)
		created := base.Add(-time.Duration(len(catalog)-i) * time.Hour)

		tag, err := db.Exec(ctx, insertProduct, id, p.Name, p.Description, p.Categories, p.Price, p.ImageURL, created)
		if err != nil {
			return res, fmt.Errorf("insert product %q: %w", p.Name, err)
		}
		res.Products += tag.RowsAffected()

		for j, r := range p.Reviews {
			tag, err := db.Exec(ctx, insertReview,
				reviewID(p.Name, j), id, r.Reviewer, r.Comment, r.Rating, created.Add(time.Duration(j+1)*time.Minute),
			)
			if err != nil {
				return res, fmt.Errorf("insert review %d of %q: %w", j, p.Name, err)
			}
			res.Reviews += tag.RowsAffected()
		}
		logger.DebugContext(ctx, "product seeded", slog.String("name", p.Name), slog.String("id", id))
	}
	return res, nil
}

// Catalog is the demo data set.
var Catalog = []Product{
	{
		Name:        "SmartPhone X",
		Description: "6.1-inch OLED phone with a two-day battery.",
		Categories:  []string{"Electronics", "Phones"},
		Price:       69900,
		ImageURL:    "https://images.example.com/smartphone-x.jpg",
		Reviews: []Review{
			{"Ada", "Battery easily lasts two days.", 5},
			{"Linus", "Great screen, fast updates.", 5},
			{"Grace", "Solid phone, camera is average in low light.", 4},
			{"Ken", "Gets warm while charging.", 3},
		},
	},
	{
		Name:        "Noise Cancelling Headphones",
		Description: "Over-ear wireless headphones with adaptive noise cancelling.",
		Categories:  []string{"Electronics", "Audio", "Sale"},
		Price:       24900,
		ImageURL:    "https://images.example.com/headphones.jpg",
		Reviews: []Review{
			{"Barbara", "Blocks out the office completely.", 5},
			{"Dennis", "Comfortable for long flights.", 4},
		},
	},
	{
		Name:        "Smart Watch Pro",
		Description: "Fitness tracking, ECG and GPS in a titanium case.",
		Categories:  []string{"Electronics", "Wearables"},
		Price:       39900,
		ImageURL:    "https://images.example.com/smartwatch.jpg",
		Reviews: []Review{
			{"Margaret", "Accurate heart rate, clunky app.", 3},
			{"Edsger", "Strap broke after a month.", 2},
			{"Alan", "Does everything I need.", 4},
		},
	},
	{
		Name:        "Espresso Machine",
		Description: "15-bar pump espresso maker with steam wand.",
		Categories:  []string{"Home & Kitchen"},
		Price:       17900,
		ImageURL:    "https://images.example.com/espresso.jpg",
		Reviews: []Review{
			{"Frances", "Cafe-quality shots at home.", 5},
		},
	},
	{
		Name:        "Cast Iron Skillet",
		Description: "Pre-seasoned 12-inch skillet.",
		Categories:  []string{"Home & Kitchen", "Sale"},
		Price:       3900,
		ImageURL:    "https://images.example.com/skillet.jpg",
	},
	{
		Name:        "Trail Running Shoes",
		Description: "Lightweight shoes with a rock plate and aggressive lugs.",
		Categories:  []string{"Sports & Outdoors", "Clothing"},
		Price:       12900,
		ImageURL:    "https://images.example.com/trail-shoes.jpg",
		Reviews: []Review{
			{"Radia", "Great grip on wet rock.", 5},
			{"Butler", "Runs half a size small.", 3},
		},
	},
	{
		Name:        "The Go Programming Language",
		Description: "A thorough introduction to Go.",
		Categories:  []string{"Books"},
		Price:       3499,
		ImageURL:    "https://images.example.com/gopl.jpg",
		Reviews: []Review{
			{"Rob", "Clear and precise.", 5},
			{"Robert", "The concurrency chapters are excellent.", 5},
			{"Ian", "Dense but worth it.", 4},
		},
	},
}
