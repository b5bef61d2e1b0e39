package mongodb

import (
	"context"
	"errors"
	"time"

	"vastorn-backend/internal/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const contactsCollection = "contacts"

type contactRepo struct {
	col *mongo.Collection
}

func NewContactRepository(db *mongo.Database) domain.ContactRepository {
	return &contactRepo{col: db.Collection(contactsCollection)}
}

// EnsureIndexes creates the query indexes on the contacts collection.
// Safe to call on every startup; existing indexes are left alone.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(contactsCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}},
		{Keys: bson.D{{Key: "submittedAt", Value: -1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
	})
	return err
}

func (r *contactRepo) Create(ctx context.Context, sub *domain.ContactSubmission) error {
	now := time.Now().UTC()
	sub.CreatedAt = now
	sub.UpdatedAt = now

	res, err := r.col.InsertOne(ctx, sub)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		sub.ID = oid
	}
	return nil
}

func (r *contactRepo) GetByID(ctx context.Context, id string) (*domain.ContactSubmission, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	var sub domain.ContactSubmission
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&sub); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrSubmissionNotFound
		}
		return nil, err
	}
	return &sub, nil
}

func (r *contactRepo) Fetch(ctx context.Context, status domain.Status, limit, offset int) ([]domain.ContactSubmission, int64, error) {
	filter := statusFilter(status)

	opts := options.Find().
		SetSort(bson.D{{Key: "submittedAt", Value: -1}}).
		SetSkip(int64(offset)).
		SetLimit(int64(limit))

	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	var subs []domain.ContactSubmission
	if err := cur.All(ctx, &subs); err != nil {
		return nil, 0, err
	}

	total, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	return subs, total, nil
}

func (r *contactRepo) UpdateStatus(ctx context.Context, id string, status domain.Status) (*domain.ContactSubmission, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	update := bson.M{"$set": bson.M{
		"status":    status,
		"updatedAt": time.Now().UTC(),
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var sub domain.ContactSubmission
	if err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(&sub); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrSubmissionNotFound
		}
		return nil, err
	}
	return &sub, nil
}

func (r *contactRepo) Delete(ctx context.Context, id string) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrSubmissionNotFound
	}
	return nil
}

func (r *contactRepo) Count(ctx context.Context, status domain.Status) (int64, error) {
	return r.col.CountDocuments(ctx, statusFilter(status))
}

func (r *contactRepo) CountSince(ctx context.Context, since time.Time) (int64, error) {
	return r.col.CountDocuments(ctx, bson.M{"submittedAt": bson.M{"$gte": since}})
}

// parseID maps malformed object ids to ErrSubmissionNotFound so callers
// answer 404 instead of leaking a decode error.
func parseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, domain.ErrSubmissionNotFound
	}
	return oid, nil
}

func statusFilter(status domain.Status) bson.M {
	if status == "" {
		return bson.M{}
	}
	return bson.M{"status": status}
}
