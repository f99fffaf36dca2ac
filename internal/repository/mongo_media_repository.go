package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/seekers/backend/internal/model"
)

type mediaDoc struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	URL          string             `bson:"url"`
	Type         string             `bson:"type"`
	Category     string             `bson:"category"`
	Title        string             `bson:"title"`
	Description  string             `bson:"description"`
	Filename     string             `bson:"filename"`
	Size         int64              `bson:"size"`
	MimeType     string             `bson:"mimeType"`
	ThumbnailURL *string            `bson:"thumbnailUrl,omitempty"`
	Metadata     mediaMetadataDoc   `bson:"metadata"`
	CreatedAt    time.Time          `bson:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt"`
}

type mediaMetadataDoc struct {
	Width    *int     `bson:"width,omitempty"`
	Height   *int     `bson:"height,omitempty"`
	Duration string   `bson:"duration,omitempty"`
	FPS      *float64 `bson:"fps,omitempty"`
}

func newMediaDoc(m *model.Media) mediaDoc {
	return mediaDoc{
		URL:          m.URL,
		Type:         m.Type,
		Category:     m.Category,
		Title:        m.Title,
		Description:  m.Description,
		Filename:     m.Filename,
		Size:         m.Size,
		MimeType:     m.MimeType,
		ThumbnailURL: m.ThumbnailURL,
		Metadata: mediaMetadataDoc{
			Width:    m.Metadata.Width,
			Height:   m.Metadata.Height,
			Duration: m.Metadata.Duration,
			FPS:      m.Metadata.FPS,
		},
	}
}

func (d mediaDoc) model() *model.Media {
	return &model.Media{
		ID:           d.ID.Hex(),
		URL:          d.URL,
		Type:         d.Type,
		Category:     d.Category,
		Title:        d.Title,
		Description:  d.Description,
		Filename:     d.Filename,
		Size:         d.Size,
		MimeType:     d.MimeType,
		ThumbnailURL: d.ThumbnailURL,
		Metadata: model.MediaMetadata{
			Width:    d.Metadata.Width,
			Height:   d.Metadata.Height,
			Duration: d.Metadata.Duration,
			FPS:      d.Metadata.FPS,
		},
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

// MongoMediaRepository is the MongoDB implementation of MediaRepository.
type MongoMediaRepository struct {
	coll *mongo.Collection
	now  func() time.Time
}

// NewMongoMediaRepository creates a MongoMediaRepository on db's media collection.
func NewMongoMediaRepository(db *mongo.Database) *MongoMediaRepository {
	return &MongoMediaRepository{coll: db.Collection(mediaCollection), now: utcNow}
}

var _ MediaRepository = (*MongoMediaRepository)(nil)

func utcNow() time.Time { return time.Now().UTC() }

func (r *MongoMediaRepository) find(ctx context.Context, filter bson.M) ([]*model.Media, error) {
	cur, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, err
	}
	var docs []mediaDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	list := make([]*model.Media, 0, len(docs))
	for _, d := range docs {
		list = append(list, d.model())
	}
	return list, nil
}

func (r *MongoMediaRepository) List(ctx context.Context, filter model.MediaFilter) ([]*model.Media, error) {
	q := bson.M{}
	if filter.Category != "" {
		q["category"] = filter.Category
	}
	if filter.Type != "" {
		q["type"] = filter.Type
	}
	return r.find(ctx, q)
}

func (r *MongoMediaRepository) GetByID(ctx context.Context, id string) (*model.Media, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	var d mediaDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&d); err != nil {
		return nil, mongoErr(err)
	}
	return d.model(), nil
}

func (r *MongoMediaRepository) ListByIDs(ctx context.Context, ids []string) ([]*model.Media, error) {
	oids := objectIDs(ids)
	if len(oids) == 0 {
		return []*model.Media{}, nil
	}
	return r.find(ctx, bson.M{"_id": bson.M{"$in": oids}})
}

func (r *MongoMediaRepository) Create(ctx context.Context, m *model.Media) error {
	d := newMediaDoc(m)
	d.ID = primitive.NewObjectID()
	d.CreatedAt = r.now()
	d.UpdatedAt = d.CreatedAt
	if _, err := r.coll.InsertOne(ctx, d); err != nil {
		return mongoErr(err)
	}
	m.ID, m.CreatedAt, m.UpdatedAt = d.ID.Hex(), d.CreatedAt, d.UpdatedAt
	return nil
}

func (r *MongoMediaRepository) Update(ctx context.Context, m *model.Media) error {
	oid, err := primitive.ObjectIDFromHex(m.ID)
	if err != nil {
		return ErrNotFound
	}
	d := newMediaDoc(m)
	d.UpdatedAt = r.now()
	set := bson.M{
		"url": d.URL, "type": d.Type, "category": d.Category, "title": d.Title,
		"description": d.Description, "filename": d.Filename, "size": d.Size,
		"mimeType": d.MimeType, "thumbnailUrl": d.ThumbnailURL, "metadata": d.Metadata,
		"updatedAt": d.UpdatedAt,
	}
	var out mediaDoc
	err = r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&out)
	if err != nil {
		return mongoErr(err)
	}
	m.CreatedAt, m.UpdatedAt = out.CreatedAt, out.UpdatedAt
	return nil
}

func (r *MongoMediaRepository) Delete(ctx context.Context, id string) error {
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

func (r *MongoMediaRepository) UpdateCategory(ctx context.Context, ids []string, category string) (int64, error) {
	oids := objectIDs(ids)
	if len(oids) == 0 {
		return 0, nil
	}
	res, err := r.coll.UpdateMany(ctx, bson.M{"_id": bson.M{"$in": oids}},
		bson.M{"$set": bson.M{"category": category, "updatedAt": r.now()}})
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}

func (r *MongoMediaRepository) DeleteMany(ctx context.Context, ids []string) (int64, error) {
	oids := objectIDs(ids)
	if len(oids) == 0 {
		return 0, nil
	}
	res, err := r.coll.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": oids}})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

func (r *MongoMediaRepository) Count(ctx context.Context) (int64, error) {
	return r.coll.CountDocuments(ctx, bson.M{})
}

func (r *MongoMediaRepository) DeleteAll(ctx context.Context) error {
	_, err := r.coll.DeleteMany(ctx, bson.M{})
	return err
}
