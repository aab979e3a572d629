package citizens

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/urbanfix/urbanfix/models"
	"github.com/urbanfix/urbanfix/utils"
)

type mongoRepository struct {
	col *mongo.Collection
}

// NewMongoRepository wraps the citizens collection. The caller is responsible
// for having run database.EnsureIndexes so the unique username index exists.
func NewMongoRepository(col *mongo.Collection) Repository {
	return &mongoRepository{col: col}
}

func (r *mongoRepository) Create(ctx context.Context, citizen *models.Citizen) error {
	now := time.Now().UTC()
	citizen.ID = bson.NewObjectID()
	citizen.CreatedAt = now
	citizen.UpdatedAt = now
	if citizen.Images == nil {
		citizen.Images = []models.CitizenImage{}
	}
	if citizen.Complaints == nil {
		citizen.Complaints = []models.Complaint{}
	}

	if _, err := r.col.InsertOne(ctx, citizen); err != nil {
		if utils.IsDuplicateKey(err) {
			return ErrDuplicateUsername
		}
		return err
	}
	return nil
}

func (r *mongoRepository) FindByUsername(ctx context.Context, username string) (*models.Citizen, error) {
	var citizen models.Citizen
	err := r.col.FindOne(ctx, bson.M{"username": username}).Decode(&citizen)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &citizen, nil
}

func (r *mongoRepository) FindByID(ctx context.Context, id bson.ObjectID) (*models.Citizen, error) {
	var citizen models.Citizen
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&citizen)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &citizen, nil
}

func (r *mongoRepository) List(ctx context.Context) ([]models.Citizen, error) {
	return r.find(ctx, bson.M{})
}

func (r *mongoRepository) ListByUsername(ctx context.Context, username string) ([]models.Citizen, error) {
	return r.find(ctx, bson.M{"username": username})
}

func (r *mongoRepository) find(ctx context.Context, filter bson.M) ([]models.Citizen, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	cursor, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	items := make([]models.Citizen, 0)
	for cursor.Next(ctx) {
		var citizen models.Citizen
		if err := cursor.Decode(&citizen); err != nil {
			return nil, err
		}
		items = append(items, citizen)
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *mongoRepository) AppendComplaint(ctx context.Context, citizenID bson.ObjectID, complaint models.Complaint) (*models.Citizen, error) {
	now := time.Now().UTC()

	var updated models.Citizen
	err := r.col.FindOneAndUpdate(ctx,
		bson.M{"_id": citizenID},
		bson.M{
			"$push": bson.M{"complaints": complaint},
			"$set":  bson.M{"updatedAt": now},
		},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&updated)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (r *mongoRepository) DeleteComplaint(ctx context.Context, citizenID, complaintID bson.ObjectID) error {
	// $pull is atomic and naturally idempotent: pulling an id that is not in
	// the list matches the parent but modifies nothing.
	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": citizenID},
		bson.M{
			"$pull": bson.M{"complaints": bson.M{"_id": complaintID}},
			"$set":  bson.M{"updatedAt": time.Now().UTC()},
		},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *mongoRepository) UpdateComplaintStatus(ctx context.Context, citizenID, complaintID bson.ObjectID, status models.ComplaintStatus) (*models.Complaint, error) {
	now := time.Now().UTC()

	var updated models.Citizen
	err := r.col.FindOneAndUpdate(ctx,
		bson.M{"_id": citizenID, "complaints._id": complaintID},
		bson.M{
			"$set": bson.M{
				"complaints.$.status":    status,
				"complaints.$.updatedAt": now,
				"updatedAt":              now,
			},
		},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&updated)
	if errors.Is(err, mongo.ErrNoDocuments) {
		// Distinguish a missing parent from a missing complaint.
		if count, cerr := r.col.CountDocuments(ctx, bson.M{"_id": citizenID}); cerr == nil && count == 0 {
			return nil, ErrNotFound
		}
		return nil, ErrComplaintNotFound
	}
	if err != nil {
		return nil, err
	}

	complaint := updated.FindComplaint(complaintID)
	if complaint == nil {
		return nil, ErrComplaintNotFound
	}
	return complaint, nil
}

func (r *mongoRepository) AddImages(ctx context.Context, citizenID bson.ObjectID, urls []string) (*models.Citizen, error) {
	images := make([]models.CitizenImage, 0, len(urls))
	for _, u := range urls {
		images = append(images, models.CitizenImage{URL: u})
	}

	var updated models.Citizen
	err := r.col.FindOneAndUpdate(ctx,
		bson.M{"_id": citizenID},
		bson.M{
			"$push": bson.M{"images": bson.M{"$each": images}},
			"$set":  bson.M{"updatedAt": time.Now().UTC()},
		},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&updated)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &updated, nil
}
