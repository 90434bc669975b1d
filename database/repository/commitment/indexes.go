package commitmentRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the indexes behind the per-day commitment lookups.
func (r *mongoCommitmentRepo) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		// Primary query pattern.
		{
			Keys:    bson.D{{Key: "vendorId", Value: 1}, {Key: "date", Value: 1}, {Key: "staffId", Value: 1}},
			Options: options.Index().SetName("vendor_date_staff_idx"),
		},
		{
			Keys:    bson.D{{Key: "date", Value: 1}, {Key: "items.staffId", Value: 1}},
			Options: options.Index().SetName("date_item_staff_idx"),
		},
	}

	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create commitment indexes: %w", err)
	}
	return nil
}
