package mongo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mobilemart/marketplace/internal/core/domain"
	"github.com/mobilemart/marketplace/internal/core/ports"
)

const mobilesCollection = "mobiles"

type MobileRepository struct {
	col *mongo.Collection
}

func NewMobileRepository(db *mongo.Database) *MobileRepository {
	return &MobileRepository{col: db.Collection(mobilesCollection)}
}

type mongoMobile struct {
	ID                primitive.ObjectID `bson:"_id,omitempty"`
	Brand             string             `bson:"brand"`
	Model             string             `bson:"model"`
	Description       string             `bson:"description"`
	MobilePrice       float64            `bson:"mobilePrice"`
	AvailableQuantity int                `bson:"availableQuantity"`
	UserID            string             `bson:"userId"`
	CreatedAt         time.Time          `bson:"createdAt"`
	UpdatedAt         time.Time          `bson:"updatedAt"`
}

func (mm *mongoMobile) toDomain() *domain.Mobile {
	return &domain.Mobile{
		ID:                mm.ID.Hex(),
		Brand:             mm.Brand,
		Model:             mm.Model,
		Description:       mm.Description,
		MobilePrice:       mm.MobilePrice,
		AvailableQuantity: mm.AvailableQuantity,
		UserID:            mm.UserID,
	}
}

func (r *MobileRepository) Create(ctx context.Context, m *domain.Mobile) (*domain.Mobile, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	now := time.Now().UTC()
	doc := mongoMobile{
		Brand:             m.Brand,
		Model:             m.Model,
		Description:       m.Description,
		MobilePrice:       m.MobilePrice,
		AvailableQuantity: m.AvailableQuantity,
		UserID:            m.UserID,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert mobile: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		doc.ID = oid
	}
	return doc.toDomain(), nil
}

func (r *MobileRepository) FindByID(ctx context.Context, id string) (*domain.Mobile, error) {
	oid, ok := parseID(id)
	if !ok {
		return nil, domain.ErrMobileNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mm mongoMobile
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&mm); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrMobileNotFound
		}
		return nil, fmt.Errorf("find mobile: %w", err)
	}
	return mm.toDomain(), nil
}

// List applies the owner, search and price-order parameters of filter.
func (r *MobileRepository) List(ctx context.Context, filter ports.MobileFilter) ([]*domain.Mobile, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, buildFilter(filter), options.Find().SetSort(buildSort(filter.Sort)))
	if err != nil {
		return nil, fmt.Errorf("list mobiles: %w", err)
	}
	defer cur.Close(ctx)

	items := make([]*domain.Mobile, 0)
	for cur.Next(ctx) {
		var mm mongoMobile
		if err := cur.Decode(&mm); err != nil {
			return nil, fmt.Errorf("decode mobile: %w", err)
		}
		items = append(items, mm.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("list mobiles: %w", err)
	}
	return items, nil
}

func (r *MobileRepository) Update(ctx context.Context, id string, changes domain.MobileChanges) error {
	oid, ok := parseID(id)
	if !ok {
		return domain.ErrMobileNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": buildSet(changes, time.Now().UTC())})
	if err != nil {
		return fmt.Errorf("update mobile: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrMobileNotFound
	}
	return nil
}

func (r *MobileRepository) Delete(ctx context.Context, id string) error {
	oid, ok := parseID(id)
	if !ok {
		return domain.ErrMobileNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete mobile: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrMobileNotFound
	}
	return nil
}

// EnsureIndexes creates necessary indexes on the mobiles collection.
func (r *MobileRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "mobilePrice", Value: 1}}},
		{Keys: bson.D{{Key: "mobilePrice", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

// buildFilter turns the search term into a case-insensitive literal match on
// brand or model. Regex metacharacters in the term are escaped.
func buildFilter(filter ports.MobileFilter) bson.M {
	q := bson.M{}
	if filter.OwnerID != "" {
		q["userId"] = filter.OwnerID
	}
	if filter.Search != "" {
		re := primitive.Regex{Pattern: regexp.QuoteMeta(filter.Search), Options: "i"}
		q["$or"] = bson.A{
			bson.M{"brand": re},
			bson.M{"model": re},
		}
	}
	return q
}

func buildSort(order domain.SortOrder) bson.D {
	return bson.D{
		{Key: "mobilePrice", Value: int(order)},
		{Key: "_id", Value: 1},
	}
}

func buildSet(c domain.MobileChanges, now time.Time) bson.M {
	set := bson.M{"updatedAt": now}
	if c.Brand != nil {
		set["brand"] = *c.Brand
	}
	if c.Model != nil {
		set["model"] = *c.Model
	}
	if c.Description != nil {
		set["description"] = *c.Description
	}
	if c.MobilePrice != nil {
		set["mobilePrice"] = *c.MobilePrice
	}
	if c.AvailableQuantity != nil {
		set["availableQuantity"] = *c.AvailableQuantity
	}
	return set
}
