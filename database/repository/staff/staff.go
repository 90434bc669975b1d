package staffRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"glowslots/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// StaffRepository reads staff profiles, schedules and blocks.
type StaffRepository interface {
	GetStaff(ctx context.Context, vendorID, staffID string) (*models.Staff, error)
	ListStaff(ctx context.Context, vendorID string) ([]models.Staff, error)
	EnsureIndexes(ctx context.Context) error
}

type mongoStaffRepo struct {
	coll   *mongo.Collection
	logger *zap.Logger
}

// NewMongoStaffRepo uses the "staff" collection of db. A nil logger discards output.
func NewMongoStaffRepo(db *mongo.Database, logger *zap.Logger) StaffRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &mongoStaffRepo{coll: db.Collection("staff"), logger: logger}
}

func (r *mongoStaffRepo) GetStaff(ctx context.Context, vendorID, staffID string) (*models.Staff, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var s models.Staff
	err := r.coll.FindOne(ctx, bson.M{"id": staffID, "vendorId": vendorID}).Decode(&s)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("staff %s of vendor %s: %w", staffID, vendorID, models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch staff %s: %w", staffID, err)
	}
	return models.NewStaff(s)
}

// ListStaff returns the vendor's staff in a stable order (by id), which the team
// placeholder rule relies on.
func (r *mongoStaffRepo) ListStaff(ctx context.Context, vendorID string) ([]models.Staff, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "id", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.M{"vendorId": vendorID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list staff for vendor %s: %w", vendorID, err)
	}
	defer cursor.Close(ctx)

	var docs []models.Staff
	for cursor.Next(ctx) {
		var s models.Staff
		if err := cursor.Decode(&s); err != nil {
			r.logger.Warn("skipping undecodable staff record", zap.String("vendorId", vendorID), zap.Error(err))
			continue
		}
		docs = append(docs, s)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("staff cursor error: %w", err)
	}
	return keepValid(r.logger, vendorID, docs), nil
}

// keepValid drops records that fail validation so one bad profile does not empty
// the vendor's pool.
func keepValid(logger *zap.Logger, vendorID string, docs []models.Staff) []models.Staff {
	out := make([]models.Staff, 0, len(docs))
	for _, s := range docs {
		valid, err := models.NewStaff(s)
		if err != nil {
			logger.Warn("skipping invalid staff record",
				zap.String("vendorId", vendorID),
				zap.String("staffId", s.ID),
				zap.Error(err),
			)
			continue
		}
		out = append(out, *valid)
	}
	return out
}

func (r *mongoStaffRepo) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		{
			Keys:    bson.D{{Key: "vendorId", Value: 1}, {Key: "id", Value: 1}},
			Options: options.Index().SetName("vendor_staff_idx"),
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create staff indexes: %w", err)
	}
	return nil
}
