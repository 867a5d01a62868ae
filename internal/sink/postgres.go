// internal/sink/postgres.go
package sink

import (
	"context"

	"zepto-scraper/internal/common/database"
	stderrors "zepto-scraper/internal/common/errors"
	"zepto-scraper/internal/common/logger"
	"zepto-scraper/internal/product"
)

const insertRecordQuery = `
	INSERT INTO product_records (
		source_date, platform, f_brand, city, sku, pincode,
		title, mrp, live_price, is_available, edt,
		brand, canonical_url, pack_size
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	ON CONFLICT (sku, pincode, source_date) DO UPDATE SET
		title = EXCLUDED.title,
		mrp = EXCLUDED.mrp,
		live_price = EXCLUDED.live_price,
		is_available = EXCLUDED.is_available,
		edt = EXCLUDED.edt`

// PostgresSink persists records into the product_records table. Reruns of
// the same day's batch upsert instead of duplicating rows.
type PostgresSink struct {
	db     *database.PostgresClient
	logger logger.Logger
}

func NewPostgresSink(db *database.PostgresClient, log logger.Logger) *PostgresSink {
	return &PostgresSink{
		db:     db,
		logger: log.WithFields(map[string]interface{}{"sink": "postgres"}),
	}
}

func (s *PostgresSink) Name() string { return "postgres" }

func (s *PostgresSink) Write(ctx context.Context, rec *product.ProductRecord) error {
	_, err := s.db.Exec(ctx, insertRecordQuery,
		rec.SourceDate, rec.Platform, rec.BrandTag, rec.City, rec.SKU, rec.Pincode,
		rec.Title, rec.MRP, rec.LivePrice, rec.IsAvailable, rec.ETA,
		rec.Brand, rec.CanonicalURL, rec.PackSize,
	)
	if err != nil {
		s.logger.WithError(err).Error("record insert failed", map[string]interface{}{"sku": rec.SKU})
		return stderrors.NewSinkWriteFailedError(s.Name(), err)
	}

	s.logger.Debug("record persisted", map[string]interface{}{"sku": rec.SKU, "pincode": rec.Pincode})
	return nil
}
