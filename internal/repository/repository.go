package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/x/mongo/driver/connstring"
)

// Store bundles the entity repositories sharing one database handle.
// Exactly one Store is opened per process; both drivers dial lazily, so the
// first query establishes the connection and later requests reuse it.
type Store struct {
	Driver      string
	Media       MediaRepository
	Packages    PackageRepository
	Inquiries   InquiryRepository
	Backgrounds BackgroundRepository

	db    DB
	close func()
}

// Driver names reported by Store.Driver.
const (
	DriverPostgres = "postgres"
	DriverMongo    = "mongo"
)

// IsMongoURL reports whether url addresses a MongoDB deployment.
func IsMongoURL(url string) bool {
	return strings.HasPrefix(url, "mongodb://") || strings.HasPrefix(url, "mongodb+srv://")
}

// Open selects the driver from the URL scheme and wires the repositories.
// defaultDB names the Mongo database when the URL has no path.
func Open(ctx context.Context, url, defaultDB string) (*Store, error) {
	if IsMongoURL(url) {
		db, client, err := NewMongoDatabase(ctx, url, defaultDB)
		if err != nil {
			return nil, err
		}
		return NewMongoStore(db, client), nil
	}
	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("postgres: %w", err)
	}
	return NewPgStore(pool), nil
}

// NewPgStore wires the PostgreSQL repositories onto pool.
func NewPgStore(pool *pgxpool.Pool) *Store {
	return &Store{
		Driver:      DriverPostgres,
		Media:       NewPgMediaRepository(pool),
		Packages:    NewPgPackageRepository(pool),
		Inquiries:   NewPgInquiryRepository(pool),
		Backgrounds: NewPgBackgroundRepository(pool),
		db:          pool,
		close:       pool.Close,
	}
}

// NewMongoStore wires the MongoDB repositories onto db.
func NewMongoStore(db *mongo.Database, client *mongo.Client) *Store {
	return &Store{
		Driver:      DriverMongo,
		Media:       NewMongoMediaRepository(db),
		Packages:    NewMongoPackageRepository(db),
		Inquiries:   NewMongoInquiryRepository(db),
		Backgrounds: NewMongoBackgroundRepository(db),
		db:          mongoPinger{client: client},
		close: func() {
			_ = client.Disconnect(context.Background())
		},
	}
}

// Ping checks that the database answers.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

// Close releases the driver handle. Servers may skip it and let process exit do the work.
func (s *Store) Close() {
	if s.close != nil {
		s.close()
	}
}

// NewPool は PostgreSQL 接続プールを生成し、疎通を確認する
func NewPool(ctx context.Context, connString string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}

// NewMongoDatabase connects a client for url and returns the database named in
// the URL path, or defaultDB when the path is empty.
func NewMongoDatabase(ctx context.Context, url, defaultDB string) (*mongo.Database, *mongo.Client, error) {
	cs, err := connstring.ParseAndValidate(url)
	if err != nil {
		return nil, nil, fmt.Errorf("mongo: parse url: %w", err)
	}
	name := cs.Database
	if name == "" {
		name = defaultDB
	}
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(url))
	if err != nil {
		return nil, nil, fmt.Errorf("mongo: connect: %w", err)
	}
	return client.Database(name), client, nil
}

type mongoPinger struct {
	client *mongo.Client
}

func (p mongoPinger) Ping(ctx context.Context) error {
	return p.client.Ping(ctx, nil)
}
