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
	"github.com/shopstack/storefront-api/internal/core/ports"
)

const collectionOrders = "orders"

type OrderRepository struct {
	col *mongo.Collection
}

func NewOrderRepository(db *mongo.Database) *OrderRepository {
	return &OrderRepository{col: db.Collection(collectionOrders)}
}

type orderDoc struct {
	ID              primitive.ObjectID `bson:"_id,omitempty"`
	UserID          string             `bson:"user_id"`
	Lines           []domain.OrderLine `bson:"lines"`
	TotalCents      int64              `bson:"total_cents"`
	StripeSessionID string             `bson:"stripe_session_id"`
	CreatedAt       time.Time          `bson:"created_at"`
}

func (d *orderDoc) toDomain() *domain.Order {
	return &domain.Order{
		ID:              d.ID.Hex(),
		UserID:          d.UserID,
		Lines:           d.Lines,
		TotalCents:      d.TotalCents,
		StripeSessionID: d.StripeSessionID,
		CreatedAt:       d.CreatedAt,
	}
}

// Create inserts the order. The unique index on stripe_session_id turns
// a concurrent or repeated confirmation into a duplicate-key error, in
// which case the previously created order is returned instead.
func (r *OrderRepository) Create(ctx context.Context, o *domain.Order) (*domain.Order, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	doc := orderDoc{
		UserID:          o.UserID,
		Lines:           o.Lines,
		TotalCents:      o.TotalCents,
		StripeSessionID: o.StripeSessionID,
		CreatedAt:       o.CreatedAt,
	}

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			existing, findErr := r.FindByStripeSession(ctx, o.StripeSessionID)
			if findErr != nil {
				return nil, false, findErr
			}
			return existing, true, nil
		}
		return nil, false, fmt.Errorf("insert order: %w", err)
	}

	created := *o
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, false, nil
}

func (r *OrderRepository) FindByStripeSession(ctx context.Context, sessionID string) (*domain.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var doc orderDoc
	if err := r.col.FindOne(ctx, bson.M{"stripe_session_id": sessionID}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, fmt.Errorf("find order: %w", err)
	}
	return doc.toDomain(), nil
}

// Totals returns the all-time order count and summed revenue in cents.
func (r *OrderRepository) Totals(ctx context.Context) (int64, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	cur, err := r.col.Aggregate(ctx, mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id":     nil,
			"sales":   bson.M{"$sum": 1},
			"revenue": bson.M{"$sum": "$total_cents"},
		}}},
	})
	if err != nil {
		return 0, 0, fmt.Errorf("aggregate totals: %w", err)
	}
	defer cur.Close(ctx)

	var row struct {
		Sales   int64 `bson:"sales"`
		Revenue int64 `bson:"revenue"`
	}
	if cur.Next(ctx) {
		if err := cur.Decode(&row); err != nil {
			return 0, 0, fmt.Errorf("decode totals: %w", err)
		}
	}
	if err := cur.Err(); err != nil {
		return 0, 0, fmt.Errorf("iterate totals: %w", err)
	}
	return row.Sales, row.Revenue, nil
}

// SalesByDay groups orders created in [from, to] by calendar day
// (UTC). Days without orders are absent from the result.
func (r *OrderRepository) SalesByDay(ctx context.Context, from, to time.Time) (map[string]ports.DailySales, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	cur, err := r.col.Aggregate(ctx, mongo.Pipeline{
		{{Key: "$match", Value: bson.M{
			"created_at": bson.M{"$gte": from, "$lte": to},
		}}},
		{{Key: "$group", Value: bson.M{
			"_id":     bson.M{"$dateToString": bson.M{"format": "%Y-%m-%d", "date": "$created_at"}},
			"sales":   bson.M{"$sum": 1},
			"revenue": bson.M{"$sum": "$total_cents"},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}},
	})
	if err != nil {
		return nil, fmt.Errorf("aggregate daily sales: %w", err)
	}
	defer cur.Close(ctx)

	byDay := make(map[string]ports.DailySales)
	for cur.Next(ctx) {
		var row struct {
			Date    string `bson:"_id"`
			Sales   int64  `bson:"sales"`
			Revenue int64  `bson:"revenue"`
		}
		if err := cur.Decode(&row); err != nil {
			return nil, fmt.Errorf("decode daily sales: %w", err)
		}
		byDay[row.Date] = ports.DailySales{Date: row.Date, Sales: row.Sales, RevenueCents: row.Revenue}
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("iterate daily sales: %w", err)
	}
	return byDay, nil
}

// EnsureIndexes creates the unique session index that makes checkout
// confirmation idempotent.
func (r *OrderRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "stripe_session_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}
