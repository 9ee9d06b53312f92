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

// JobsStore performs job posting DB operations.
type JobsStore struct {
	coll *mongo.Collection
}

// NewJobsStore returns a JobsStore using the provided collection.
func NewJobsStore(coll *mongo.Collection) *JobsStore {
	return &JobsStore{coll: coll}
}

// CreateJob inserts a job posting and returns it with its id.
func (s *JobsStore) CreateJob(ctx context.Context, j *Job) (*Job, error) {
	now := time.Now().UTC()
	j.CreatedAt, j.UpdatedAt = now, now

	result, err := s.coll.InsertOne(ctx, j)
	if err != nil {
		return nil, fmt.Errorf("%w: insert job: %w", ErrWrite, err)
	}
	j.ID = result.InsertedID.(bson.ObjectID)
	return j, nil
}

// GetJob finds a job by hex id.
func (s *JobsStore) GetJob(ctx context.Context, id string) (*Job, error) {
	oid, err := ParseID(id)
	if err != nil {
		return nil, err
	}

	var j Job
	if err := s.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&j); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("job: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("%w: find job: %w", ErrFetch, err)
	}
	return &j, nil
}

// ListJobs returns jobs newest first, limited to one recruiter when recruiterID is set.
func (s *JobsStore) ListJobs(ctx context.Context, recruiterID string) ([]*Job, error) {
	filter := bson.M{}
	if recruiterID != "" {
		filter["recruiter_id"] = recruiterID
	}

	cursor, err := s.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("%w: list jobs: %w", ErrFetch, err)
	}
	defer cursor.Close(ctx)

	var jobs []*Job
	if err := cursor.All(ctx, &jobs); err != nil {
		return nil, fmt.Errorf("%w: decode jobs: %w", ErrFetch, err)
	}
	return jobs, nil
}
