package commitmentRepo

import (
	"context"
	"fmt"
	"time"

	"glowslots/models"

	"go.mongodb.org/mongo-driver/bson"
)

// commitmentFilter matches active commitments on date where any of staffIDs is the
// main staff or is assigned to one of the service items.
func commitmentFilter(vendorID string, staffIDs []string, date string) bson.M {
	filter := bson.M{
		"date":   date,
		"status": bson.M{"$in": models.ActiveStatuses},
	}
	if vendorID != "" {
		filter["vendorId"] = vendorID
	}
	if len(staffIDs) > 0 {
		filter["$or"] = bson.A{
			bson.M{"staffId": bson.M{"$in": staffIDs}},
			bson.M{"items.staffId": bson.M{"$in": staffIDs}},
		}
	}
	return filter
}

func (r *mongoCommitmentRepo) ListCommitments(ctx context.Context, vendorID string, staffIDs []string, date string) ([]models.Commitment, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, commitmentFilter(vendorID, staffIDs, date))
	if err != nil {
		return nil, fmt.Errorf("failed to query commitments for %s: %w", date, err)
	}
	defer cursor.Close(ctx)

	var out []models.Commitment
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("failed to decode commitments: %w", err)
	}
	return out, nil
}
