package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/mamadbah2/phonebooks/internal/domain/models"
)

const (
	recordsCollection   = "records"
	summariesCollection = "daily_summaries"
)

// MongoDBRepository stores records and daily summaries in MongoDB.
type MongoDBRepository struct {
	client *mongo.Client
	dbName string
	logger *zap.Logger
	now    func() time.Time
}

// NewMongoDBRepository connects to MongoDB and verifies the connection.
func NewMongoDBRepository(ctx context.Context, uri string, dbName string, logger *zap.Logger) (*MongoDBRepository, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	// Ping the database to verify connection
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	repo := &MongoDBRepository{
		client: client,
		dbName: dbName,
		logger: logger,
		now:    time.Now,
	}

	if err := repo.ensureIndexes(ctx); err != nil {
		return nil, err
	}

	return repo, nil
}

func (r *MongoDBRepository) records() *mongo.Collection {
	return r.client.Database(r.dbName).Collection(recordsCollection)
}

func (r *MongoDBRepository) ensureIndexes(ctx context.Context) error {
	_, err := r.records().Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "date", Value: -1}},
	})
	if err != nil {
		return fmt.Errorf("failed to create records date index: %w", err)
	}
	return nil
}

// Insert stores a new record, assigning its id and audit timestamps.
func (r *MongoDBRepository) Insert(ctx context.Context, rec *models.Record) error {
	now := r.now()
	rec.ID = primitive.NewObjectID()
	rec.CreatedAt = now
	rec.UpdatedAt = now

	if _, err := r.records().InsertOne(ctx, rec); err != nil {
		return &models.StoreError{Op: "insert record", Err: err}
	}

	r.logger.Debug("record inserted", zap.String("id", rec.ID.Hex()), zap.String("type", string(rec.Type)))
	return nil
}

// ListAll returns every record, latest date first.
func (r *MongoDBRepository) ListAll(ctx context.Context) ([]models.Record, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})

	cursor, err := r.records().Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, &models.StoreError{Op: "list records", Err: err}
	}
	defer func() { _ = cursor.Close(ctx) }()

	records := make([]models.Record, 0)
	if err := cursor.All(ctx, &records); err != nil {
		return nil, &models.StoreError{Op: "decode records", Err: err}
	}

	return records, nil
}

// GetByID fetches a single record.
func (r *MongoDBRepository) GetByID(ctx context.Context, id string) (*models.Record, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, models.ErrRecordNotFound
	}

	var rec models.Record
	if err := r.records().FindOne(ctx, bson.M{"_id": oid}).Decode(&rec); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.ErrRecordNotFound
		}
		return nil, &models.StoreError{Op: "get record", Err: err}
	}

	return &rec, nil
}

// Replace shallow-merges the supplied fields onto the stored document and
// returns the result. Fields absent from the patch are left untouched.
func (r *MongoDBRepository) Replace(ctx context.Context, id string, patch models.RecordPatch) (*models.Record, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, models.ErrRecordNotFound
	}

	set := patchDocument(patch)
	set["updatedAt"] = r.now()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var rec models.Record
	err = r.records().FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, opts).Decode(&rec)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.ErrRecordNotFound
		}
		return nil, &models.StoreError{Op: "update record", Err: err}
	}

	return &rec, nil
}

// Delete permanently removes a record.
func (r *MongoDBRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.ErrRecordNotFound
	}

	res, err := r.records().DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return &models.StoreError{Op: "delete record", Err: err}
	}
	if res.DeletedCount == 0 {
		return models.ErrRecordNotFound
	}

	return nil
}

// SaveDailySummary saves an end-of-day summary snapshot.
func (r *MongoDBRepository) SaveDailySummary(ctx context.Context, summary models.DailySummary) error {
	collection := r.client.Database(r.dbName).Collection(summariesCollection)
	if _, err := collection.InsertOne(ctx, summary); err != nil {
		return &models.StoreError{Op: "insert daily summary", Err: err}
	}
	return nil
}

// Close closes the MongoDB connection.
func (r *MongoDBRepository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}

func patchDocument(p models.RecordPatch) bson.M {
	set := bson.M{}
	if p.Type != nil {
		set["type"] = *p.Type
	}
	putString(set, "customerName", p.CustomerName)
	putString(set, "supplierName", p.SupplierName)
	putString(set, "phoneSold", p.PhoneSold)
	putString(set, "phoneGiven", p.PhoneGiven)
	putString(set, "phoneReceived", p.PhoneReceived)
	putString(set, "phoneNames", p.PhoneNames)
	if p.AmountPaid != nil {
		set["amountPaid"] = *p.AmountPaid
	}
	if p.AmountSellerPaid != nil {
		set["amountSellerPaid"] = *p.AmountSellerPaid
	}
	if p.Quantity != nil {
		set["quantity"] = *p.Quantity
	}
	if p.UnitPrice != nil {
		set["unitPrice"] = *p.UnitPrice
	}
	if p.TotalAmount != nil {
		set["totalAmount"] = *p.TotalAmount
	}
	if p.PaymentStatus != nil {
		set["paymentStatus"] = *p.PaymentStatus
	}
	if p.Date != nil {
		set["date"] = p.Date.Time
	}
	return set
}

func putString(set bson.M, key string, value *string) {
	if value != nil {
		set[key] = *value
	}
}
