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

type packageDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Title       string             `bson:"title"`
	Description string             `bson:"description"`
	Price       float64            `bson:"price"`
	Features    []string           `bson:"features"`
	Image       string             `bson:"image"`
	Popular     bool               `bson:"popular"`
	Active      bool               `bson:"active"`
	CreatedAt   time.Time          `bson:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt"`
}

func (d packageDoc) model() *model.Package {
	features := d.Features
	if features == nil {
		features = []string{}
	}
	return &model.Package{
		ID:          d.ID.Hex(),
		Title:       d.Title,
		Description: d.Description,
		Price:       d.Price,
		Features:    features,
		Image:       d.Image,
		Popular:     d.Popular,
		Active:      d.Active,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

// MongoPackageRepository is the MongoDB implementation of PackageRepository.
type MongoPackageRepository struct {
	coll *mongo.Collection
	now  func() time.Time
}

func NewMongoPackageRepository(db *mongo.Database) *MongoPackageRepository {
	return &MongoPackageRepository{coll: db.Collection(packageCollection), now: utcNow}
}

var _ PackageRepository = (*MongoPackageRepository)(nil)

func (r *MongoPackageRepository) List(ctx context.Context, opts model.PackageListOptions) ([]*model.Package, error) {
	filter := bson.M{"active": true}
	if opts.IncludeInactive {
		filter = bson.M{}
	}
	cur, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{
		{Key: "popular", Value: -1},
		{Key: "createdAt", Value: -1},
	}))
	if err != nil {
		return nil, err
	}
	var docs []packageDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	list := make([]*model.Package, 0, len(docs))
	for _, d := range docs {
		list = append(list, d.model())
	}
	return list, nil
}

func (r *MongoPackageRepository) GetByID(ctx context.Context, id string) (*model.Package, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	var d packageDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&d); err != nil {
		return nil, mongoErr(err)
	}
	return d.model(), nil
}

func (r *MongoPackageRepository) Create(ctx context.Context, p *model.Package) error {
	now := r.now()
	d := packageDoc{
		ID:          primitive.NewObjectID(),
		Title:       p.Title,
		Description: p.Description,
		Price:       p.Price,
		Features:    p.Features,
		Image:       p.Image,
		Popular:     p.Popular,
		Active:      p.Active,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if _, err := r.coll.InsertOne(ctx, d); err != nil {
		return mongoErr(err)
	}
	p.ID, p.CreatedAt, p.UpdatedAt = d.ID.Hex(), now, now
	return nil
}

func (r *MongoPackageRepository) Update(ctx context.Context, p *model.Package) error {
	oid, err := primitive.ObjectIDFromHex(p.ID)
	if err != nil {
		return ErrNotFound
	}
	set := bson.M{
		"title": p.Title, "description": p.Description, "price": p.Price,
		"features": p.Features, "image": p.Image, "popular": p.Popular, "active": p.Active,
		"updatedAt": r.now(),
	}
	var out packageDoc
	err = r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&out)
	if err != nil {
		return mongoErr(err)
	}
	p.CreatedAt, p.UpdatedAt = out.CreatedAt, out.UpdatedAt
	return nil
}

func (r *MongoPackageRepository) Delete(ctx context.Context, id string) error {
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

func (r *MongoPackageRepository) CountActive(ctx context.Context) (int64, error) {
	return r.coll.CountDocuments(ctx, bson.M{"active": true})
}

func (r *MongoPackageRepository) Count(ctx context.Context) (int64, error) {
	return r.coll.CountDocuments(ctx, bson.M{})
}

func (r *MongoPackageRepository) DeleteAll(ctx context.Context) error {
	_, err := r.coll.DeleteMany(ctx, bson.M{})
	return err
}
