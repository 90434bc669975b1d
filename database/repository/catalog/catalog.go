package catalogRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"glowslots/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// CatalogRepository reads service packages and catalogue entries.
type CatalogRepository interface {
	GetPackage(ctx context.Context, packageID string) (*models.ServicePackage, error)
	GetServiceItems(ctx context.Context, vendorID string, ids []string) ([]models.ServiceItem, error)
}

type mongoCatalogRepo struct {
	packages *mongo.Collection
	services *mongo.Collection
}

func NewMongoCatalogRepo(db *mongo.Database) CatalogRepository {
	return &mongoCatalogRepo{
		packages: db.Collection("packages"),
		services: db.Collection("services"),
	}
}

func (r *mongoCatalogRepo) GetPackage(ctx context.Context, packageID string) (*models.ServicePackage, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var p models.ServicePackage
	err := r.packages.FindOne(ctx, bson.M{"id": packageID}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("package %s: %w", packageID, models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch package %s: %w", packageID, err)
	}
	return models.NewServicePackage(p)
}

// GetServiceItems returns the vendor's catalogue entries for ids. Every id must exist.
func (r *mongoCatalogRepo) GetServiceItems(ctx context.Context, vendorID string, ids []string) ([]models.ServiceItem, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := r.services.Find(ctx, bson.M{"vendorId": vendorID, "id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("failed to query services for vendor %s: %w", vendorID, err)
	}
	defer cursor.Close(ctx)

	var items []models.ServiceItem
	if err := cursor.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("failed to decode services: %w", err)
	}

	byID := make(map[string]models.ServiceItem, len(items))
	for _, it := range items {
		byID[it.ID] = it
	}
	ordered := make([]models.ServiceItem, 0, len(ids))
	for _, id := range ids {
		it, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("service %s of vendor %s: %w", id, vendorID, models.ErrNotFound)
		}
		ordered = append(ordered, it)
	}
	return ordered, nil
}
