package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/shopstack/storefront-api/internal/core/domain"
)

const collectionUsers = "users"

type UserRepository struct {
	col *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{col: db.Collection(collectionUsers)}
}

type userDoc struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Email        string             `bson:"email"`
	Name         string             `bson:"name"`
	PasswordHash string             `bson:"password_hash"`
	Role         string             `bson:"role"`
	CartItems    []domain.CartLine  `bson:"cart_items"`
	CreatedAt    time.Time          `bson:"created_at"`
}

func (d *userDoc) toDomain() *domain.User {
	cart := d.CartItems
	if cart == nil {
		cart = []domain.CartLine{}
	}
	return &domain.User{
		ID:           d.ID.Hex(),
		Email:        d.Email,
		Name:         d.Name,
		PasswordHash: d.PasswordHash,
		Role:         d.Role,
		CartItems:    cart,
		CreatedAt:    d.CreatedAt,
	}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	doc := userDoc{
		Email:        user.Email,
		Name:         user.Name,
		PasswordHash: user.PasswordHash,
		Role:         user.Role,
		CartItems:    user.CartItems,
		CreatedAt:    user.CreatedAt,
	}

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	created := *user
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var doc userDoc
	if err := r.col.FindOne(ctx, bson.M{"email": email}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var doc userDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user by id: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()
	return r.col.CountDocuments(ctx, bson.M{})
}

// AddCartItem increments the matching embedded line, or appends a fresh
// line when none exists. Both writes are single atomic update commands;
// when a concurrent append wins the race between them, the increment is
// retried so no add is ever lost.
func (r *UserRepository) AddCartItem(ctx context.Context, userID, productID string) ([]domain.CartLine, error) {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	inc := bson.M{"$inc": bson.M{"cart_items.$.quantity": 1}}
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": oid, "cart_items.product_id": productID}, inc)
	if err != nil {
		return nil, fmt.Errorf("increment cart line: %w", err)
	}

	if res.MatchedCount == 0 {
		push := bson.M{"$push": bson.M{"cart_items": domain.CartLine{ProductID: productID, Quantity: 1}}}
		res, err = r.col.UpdateOne(ctx, bson.M{"_id": oid, "cart_items.product_id": bson.M{"$ne": productID}}, push)
		if err != nil {
			return nil, fmt.Errorf("push cart line: %w", err)
		}
		if res.MatchedCount == 0 {
			// A concurrent request appended the line first; fold this
			// add into it.
			if _, err := r.col.UpdateOne(ctx, bson.M{"_id": oid, "cart_items.product_id": productID}, inc); err != nil {
				return nil, fmt.Errorf("increment cart line: %w", err)
			}
		}
	}

	return r.cartLines(ctx, oid)
}

func (r *UserRepository) SetCartItemQuantity(ctx context.Context, userID, productID string, quantity int) ([]domain.CartLine, error) {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": oid, "cart_items.product_id": productID},
		bson.M{"$set": bson.M{"cart_items.$.quantity": quantity}},
	)
	if err != nil {
		return nil, fmt.Errorf("set cart quantity: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrCartItemNotFound
	}

	return r.cartLines(ctx, oid)
}

func (r *UserRepository) RemoveCartItem(ctx context.Context, userID, productID string) ([]domain.CartLine, error) {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": oid, "cart_items.product_id": productID},
		bson.M{"$pull": bson.M{"cart_items": bson.M{"product_id": productID}}},
	)
	if err != nil {
		return nil, fmt.Errorf("remove cart line: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrCartItemNotFound
	}

	return r.cartLines(ctx, oid)
}

func (r *UserRepository) ClearCart(ctx context.Context, userID string) ([]domain.CartLine, error) {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{"cart_items": []domain.CartLine{}}})
	if err != nil {
		return nil, fmt.Errorf("clear cart: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrUserNotFound
	}

	return []domain.CartLine{}, nil
}

func (r *UserRepository) cartLines(ctx context.Context, oid primitive.ObjectID) ([]domain.CartLine, error) {
	opts := options.FindOne().SetProjection(bson.M{"cart_items": 1})
	var doc userDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}, opts).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("load cart: %w", err)
	}
	if doc.CartItems == nil {
		return []domain.CartLine{}, nil
	}
	return doc.CartItems, nil
}

// EnsureIndexes creates the unique email index on the users collection.
func (r *UserRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}
