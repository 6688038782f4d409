package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/shopstack/storefront-api/internal/core/domain"
)

const collectionCoupons = "coupons"

type CouponRepository struct {
	col *mongo.Collection
}

func NewCouponRepository(db *mongo.Database) *CouponRepository {
	return &CouponRepository{col: db.Collection(collectionCoupons)}
}

type couponDoc struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty"`
	Code               string             `bson:"code"`
	DiscountPercentage int                `bson:"discount_percentage"`
	ExpirationDate     time.Time          `bson:"expiration_date"`
	UserID             string             `bson:"user_id"`
	IsActive           bool               `bson:"is_active"`
}

func (d *couponDoc) toDomain() *domain.Coupon {
	return &domain.Coupon{
		ID:                 d.ID.Hex(),
		Code:               d.Code,
		DiscountPercentage: d.DiscountPercentage,
		ExpirationDate:     d.ExpirationDate,
		UserID:             d.UserID,
		IsActive:           d.IsActive,
	}
}

func (r *CouponRepository) Create(ctx context.Context, c *domain.Coupon) (*domain.Coupon, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	doc := couponDoc{
		Code:               c.Code,
		DiscountPercentage: c.DiscountPercentage,
		ExpirationDate:     c.ExpirationDate,
		UserID:             c.UserID,
		IsActive:           c.IsActive,
	}

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert coupon: %w", err)
	}

	created := *c
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

// FindActive returns the user's active coupon, or nil when none exists.
func (r *CouponRepository) FindActive(ctx context.Context, userID string) (*domain.Coupon, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var doc couponDoc
	err := r.col.FindOne(ctx, bson.M{"user_id": userID, "is_active": true}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("find active coupon: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *CouponRepository) FindActiveByCode(ctx context.Context, userID, code string) (*domain.Coupon, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var doc couponDoc
	err := r.col.FindOne(ctx, bson.M{"code": code, "user_id": userID, "is_active": true}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrCouponNotFound
		}
		return nil, fmt.Errorf("find coupon by code: %w", err)
	}
	return doc.toDomain(), nil
}

// Deactivate flips is_active to false. Missing coupons are a no-op so
// repeated checkout confirmations stay idempotent.
func (r *CouponRepository) Deactivate(ctx context.Context, userID, code string) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	_, err := r.col.UpdateOne(ctx,
		bson.M{"code": code, "user_id": userID},
		bson.M{"$set": bson.M{"is_active": false}},
	)
	if err != nil {
		return fmt.Errorf("deactivate coupon: %w", err)
	}
	return nil
}

func (r *CouponRepository) DeleteByUser(ctx context.Context, userID string) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	if _, err := r.col.DeleteMany(ctx, bson.M{"user_id": userID}); err != nil {
		return fmt.Errorf("delete coupons: %w", err)
	}
	return nil
}

// EnsureIndexes creates supporting indexes on the coupons collection.
func (r *CouponRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}}},
		{Keys: bson.D{{Key: "code", Value: 1}, {Key: "user_id", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
