package data

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// ApplicationsStore performs job application DB operations.
type ApplicationsStore struct {
	coll *mongo.Collection
}

// NewApplicationsStore returns an ApplicationsStore using the provided collection.
func NewApplicationsStore(coll *mongo.Collection) *ApplicationsStore {
	return &ApplicationsStore{coll: coll}
}

// ApplicationFilter selects applications by recruiter and/or candidate.
// Empty fields do not filter.
type ApplicationFilter struct {
	RecruiterID string
	CandidateID string
}

// CreateApplication inserts an application. A candidate may apply to a job once.
func (s *ApplicationsStore) CreateApplication(ctx context.Context, a *Application) (*Application, error) {
	now := time.Now().UTC()
	a.CreatedAt, a.UpdatedAt = now, now

	result, err := s.coll.InsertOne(ctx, a)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, fmt.Errorf("application for job %s: %w", a.JobID, ErrDuplicate)
		}
		return nil, fmt.Errorf("%w: insert application: %w", ErrWrite, err)
	}
	a.ID = result.InsertedID.(bson.ObjectID)
	return a, nil
}

// GetApplication finds an application by hex id.
func (s *ApplicationsStore) GetApplication(ctx context.Context, id string) (*Application, error) {
	oid, err := ParseID(id)
	if err != nil {
		return nil, err
	}

	var a Application
	if err := s.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&a); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("application: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("%w: find application: %w", ErrFetch, err)
	}
	return &a, nil
}

// ListApplications returns matching applications, newest first.
func (s *ApplicationsStore) ListApplications(ctx context.Context, f ApplicationFilter) ([]*Application, error) {
	filter := bson.M{}
	if f.RecruiterID != "" {
		filter["recruiter_id"] = f.RecruiterID
	}
	if f.CandidateID != "" {
		filter["candidate_id"] = f.CandidateID
	}

	cursor, err := s.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("%w: list applications: %w", ErrFetch, err)
	}
	defer cursor.Close(ctx)

	var apps []*Application
	if err := cursor.All(ctx, &apps); err != nil {
		return nil, fmt.Errorf("%w: decode applications: %w", ErrFetch, err)
	}
	return apps, nil
}

// UpdateStatus sets the status of an application and returns the updated record.
func (s *ApplicationsStore) UpdateStatus(ctx context.Context, id string, status Status) (*Application, error) {
	return s.update(ctx, id, bson.M{"status": status})
}

// UpdateScore persists a scoring result together with the status it implies.
func (s *ApplicationsStore) UpdateScore(ctx context.Context, id string, score float64, reasoning string, status Status) (*Application, error) {
	return s.update(ctx, id, bson.M{"score": score, "reasoning": reasoning, "status": status})
}

func (s *ApplicationsStore) update(ctx context.Context, id string, set bson.M) (*Application, error) {
	oid, err := ParseID(id)
	if err != nil {
		return nil, err
	}
	set["updated_at"] = time.Now().UTC()

	var a Application
	err = s.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&a)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("application: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("%w: update application: %w", ErrWrite, err)
	}
	return &a, nil
}
