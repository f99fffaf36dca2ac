package repository

import (
	"context"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/seekers/backend/internal/model"
)

type inquiryDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Name      string             `bson:"name"`
	Email     string             `bson:"email"`
	Phone     string             `bson:"phone"`
	EventType string             `bson:"eventType"`
	EventDate *time.Time         `bson:"eventDate,omitempty"`
	Message   string             `bson:"message"`
	Status    string             `bson:"status"`
	Notes     string             `bson:"notes"`
	CreatedAt time.Time          `bson:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt"`
}

func (d inquiryDoc) model() *model.Inquiry {
	return &model.Inquiry{
		ID:        d.ID.Hex(),
		Name:      d.Name,
		Email:     d.Email,
		Phone:     d.Phone,
		EventType: d.EventType,
		EventDate: d.EventDate,
		Message:   d.Message,
		Status:    d.Status,
		Notes:     d.Notes,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

// MongoInquiryRepository is the MongoDB implementation of InquiryRepository.
type MongoInquiryRepository struct {
	coll *mongo.Collection
	now  func() time.Time
}

func NewMongoInquiryRepository(db *mongo.Database) *MongoInquiryRepository {
	return &MongoInquiryRepository{coll: db.Collection(inquiryCollection), now: utcNow}
}

var _ InquiryRepository = (*MongoInquiryRepository)(nil)

func (r *MongoInquiryRepository) List(ctx context.Context, opts model.InquiryListOptions) ([]*model.Inquiry, error) {
	filter := bson.M{}
	if status := strings.TrimSpace(opts.Status); status != "" && status != "all" {
		filter["status"] = status
	}
	cur, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, err
	}
	var docs []inquiryDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	list := make([]*model.Inquiry, 0, len(docs))
	for _, d := range docs {
		list = append(list, d.model())
	}
	return list, nil
}

func (r *MongoInquiryRepository) GetByID(ctx context.Context, id string) (*model.Inquiry, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	var d inquiryDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&d); err != nil {
		return nil, mongoErr(err)
	}
	return d.model(), nil
}

func (r *MongoInquiryRepository) Create(ctx context.Context, q *model.Inquiry) error {
	now := r.now()
	d := inquiryDoc{
		ID:        primitive.NewObjectID(),
		Name:      q.Name,
		Email:     q.Email,
		Phone:     q.Phone,
		EventType: q.EventType,
		EventDate: q.EventDate,
		Message:   q.Message,
		Status:    q.Status,
		Notes:     q.Notes,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := r.coll.InsertOne(ctx, d); err != nil {
		return mongoErr(err)
	}
	q.ID, q.CreatedAt, q.UpdatedAt = d.ID.Hex(), now, now
	return nil
}

func (r *MongoInquiryRepository) Update(ctx context.Context, q *model.Inquiry) error {
	oid, err := primitive.ObjectIDFromHex(q.ID)
	if err != nil {
		return ErrNotFound
	}
	set := bson.M{
		"name": q.Name, "email": q.Email, "phone": q.Phone, "eventType": q.EventType,
		"eventDate": q.EventDate, "message": q.Message, "status": q.Status, "notes": q.Notes,
		"updatedAt": r.now(),
	}
	var out inquiryDoc
	err = r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&out)
	if err != nil {
		return mongoErr(err)
	}
	q.CreatedAt, q.UpdatedAt = out.CreatedAt, out.UpdatedAt
	return nil
}

func (r *MongoInquiryRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoInquiryRepository) Count(ctx context.Context) (int64, error) {
	return r.coll.CountDocuments(ctx, bson.M{})
}

func (r *MongoInquiryRepository) DeleteAll(ctx context.Context) error {
	_, err := r.coll.DeleteMany(ctx, bson.M{})
	return err
}
