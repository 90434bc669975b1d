package commitmentRepo

import (
	"context"

	"glowslots/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// CommitmentRepository reads existing bookings. The slot engine never writes.
type CommitmentRepository interface {
	ListCommitments(ctx context.Context, vendorID string, staffIDs []string, date string) ([]models.Commitment, error)
	EnsureIndexes(ctx context.Context) error
}

type mongoCommitmentRepo struct {
	coll *mongo.Collection
}

// NewMongoCommitmentRepo uses the "commitments" collection of db.
func NewMongoCommitmentRepo(db *mongo.Database) CommitmentRepository {
	return &mongoCommitmentRepo{coll: db.Collection("commitments")}
}
