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

type backgroundDoc struct {
	ID               primitive.ObjectID `bson:"_id,omitempty"`
	Section          string             `bson:"section"`
	MediaType        string             `bson:"mediaType"`
	MediaURL         string             `bson:"mediaUrl"`
	MediaID          *string            `bson:"mediaId,omitempty"`
	FallbackImageURL *string            `bson:"fallbackImageUrl,omitempty"`
	Opacity          float64            `bson:"opacity"`
	OverlayColor     string             `bson:"overlayColor"`
	Position         string             `bson:"position"`
	IsActive         bool               `bson:"isActive"`
	Title            string             `bson:"title"`
	Description      string             `bson:"description"`
	CreatedAt        time.Time          `bson:"createdAt"`
	UpdatedAt        time.Time          `bson:"updatedAt"`
}

func (d backgroundDoc) model() *model.Background {
	return &model.Background{
		ID:               d.ID.Hex(),
		Section:          d.Section,
		MediaType:        d.MediaType,
		MediaURL:         d.MediaURL,
		MediaID:          d.MediaID,
		FallbackImageURL: d.FallbackImageURL,
		Opacity:          d.Opacity,
		OverlayColor:     d.OverlayColor,
		Position:         d.Position,
		IsActive:         d.IsActive,
		Title:            d.Title,
		Description:      d.Description,
		CreatedAt:        d.CreatedAt,
		UpdatedAt:        d.UpdatedAt,
	}
}

func backgroundSet(b *model.Background) bson.M {
	return bson.M{
		"section": b.Section, "mediaType": b.MediaType, "mediaUrl": b.MediaURL,
		"mediaId": b.MediaID, "fallbackImageUrl": b.FallbackImageURL, "opacity": b.Opacity,
		"overlayColor": b.OverlayColor, "position": b.Position, "isActive": b.IsActive,
		"title": b.Title, "description": b.Description,
	}
}

// MongoBackgroundRepository is the MongoDB implementation of BackgroundRepository.
// Backgrounds reference media by id; reads resolve the reference like a populate.
type MongoBackgroundRepository struct {
	coll  *mongo.Collection
	media MediaRepository
	now   func() time.Time
}

func NewMongoBackgroundRepository(db *mongo.Database) *MongoBackgroundRepository {
	return &MongoBackgroundRepository{
		coll:  db.Collection(backgroundCollection),
		media: NewMongoMediaRepository(db),
		now:   utcNow,
	}
}

var _ BackgroundRepository = (*MongoBackgroundRepository)(nil)

func (r *MongoBackgroundRepository) List(ctx context.Context) ([]*model.Background, error) {
	cur, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "section", Value: 1}}))
	if err != nil {
		return nil, err
	}
	var docs []backgroundDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	list := make([]*model.Background, 0, len(docs))
	for _, d := range docs {
		list = append(list, d.model())
	}
	if err := populateMedia(ctx, r.media, list...); err != nil {
		return nil, err
	}
	return list, nil
}

func (r *MongoBackgroundRepository) findOne(ctx context.Context, filter bson.M) (*model.Background, error) {
	var d backgroundDoc
	if err := r.coll.FindOne(ctx, filter).Decode(&d); err != nil {
		return nil, mongoErr(err)
	}
	b := d.model()
	if err := populateMedia(ctx, r.media, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (r *MongoBackgroundRepository) GetByID(ctx context.Context, id string) (*model.Background, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *MongoBackgroundRepository) GetBySection(ctx context.Context, section string) (*model.Background, error) {
	return r.findOne(ctx, bson.M{"section": section})
}

func (r *MongoBackgroundRepository) Create(ctx context.Context, b *model.Background) error {
	now := r.now()
	d := backgroundDoc{
		ID:               primitive.NewObjectID(),
		Section:          b.Section,
		MediaType:        b.MediaType,
		MediaURL:         b.MediaURL,
		MediaID:          b.MediaID,
		FallbackImageURL: b.FallbackImageURL,
		Opacity:          b.Opacity,
		OverlayColor:     b.OverlayColor,
		Position:         b.Position,
		IsActive:         b.IsActive,
		Title:            b.Title,
		Description:      b.Description,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if _, err := r.coll.InsertOne(ctx, d); err != nil {
		return mongoErr(err)
	}
	b.ID, b.CreatedAt, b.UpdatedAt = d.ID.Hex(), now, now
	return populateMedia(ctx, r.media, b)
}

func (r *MongoBackgroundRepository) Update(ctx context.Context, b *model.Background) error {
	oid, err := primitive.ObjectIDFromHex(b.ID)
	if err != nil {
		return ErrNotFound
	}
	set := backgroundSet(b)
	set["updatedAt"] = r.now()
	var out backgroundDoc
	err = r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&out)
	if err != nil {
		return mongoErr(err)
	}
	b.CreatedAt, b.UpdatedAt = out.CreatedAt, out.UpdatedAt
	return populateMedia(ctx, r.media, b)
}

func (r *MongoBackgroundRepository) Delete(ctx context.Context, id string) error {
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

func (r *MongoBackgroundRepository) Count(ctx context.Context) (int64, error) {
	return r.coll.CountDocuments(ctx, bson.M{})
}

func (r *MongoBackgroundRepository) DeleteAll(ctx context.Context) error {
	_, err := r.coll.DeleteMany(ctx, bson.M{})
	return err
}
