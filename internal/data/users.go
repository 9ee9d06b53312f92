// Package data provides DB models and stores.
package data

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/PaulBabatuyi/jobboard/internal/normalize"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// UsersStore performs user DB operations.
type UsersStore struct {
	// coll is the "users" collection; every method below reads or writes it
	coll *mongo.Collection
}

// NewUsersStore returns a UsersStore using the provided collection.
func NewUsersStore(coll *mongo.Collection) *UsersStore {
	return &UsersStore{coll: coll}
}

// ProfileUpdate carries the editable profile fields. Nil fields are left unchanged.
type ProfileUpdate struct {
	DisplayName     *string
	Name            *string
	ProfileImageURL *string
	CompanyName     *string
	Bio             *string
	Tags            []string
	Skills          []string
}

// ParseID converts a hex user/job/application id. Malformed ids cannot name a
// stored document, so they are reported as ErrNotFound.
func ParseID(id string) (bson.ObjectID, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return bson.ObjectID{}, fmt.Errorf("id %q: %w", id, ErrNotFound)
	}
	return oid, nil
}

// CreateUser inserts a new user document with an already-hashed password.
func (u *UsersStore) CreateUser(ctx context.Context, email, hashedPassword, displayName string, role Role) (*User, error) {
	now := time.Now().UTC()
	user := &User{
		Email:       normalize.Email(email),
		Password:    hashedPassword,
		DisplayName: displayName,
		Name:        displayName,
		Role:        role,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if role == RoleRecruiter {
		user.Settings = &RecruiterSettings{CutoffScore: DefaultCutoffScore, AutoStatus: DefaultAutoStatus}
	}

	result, err := u.coll.InsertOne(ctx, user)
	if err != nil {
		// unique index on email
		if mongo.IsDuplicateKeyError(err) {
			return nil, fmt.Errorf("user %s: %w", user.Email, ErrDuplicate)
		}
		return nil, fmt.Errorf("%w: insert user: %w", ErrWrite, err)
	}

	user.ID = result.InsertedID.(bson.ObjectID)
	return user, nil
}

// GetUserByEmail finds a user by email.
func (u *UsersStore) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	return u.findOne(ctx, bson.M{"email": normalize.Email(email)})
}

// GetUserByID finds a user by hex id.
func (u *UsersStore) GetUserByID(ctx context.Context, id string) (*User, error) {
	oid, err := ParseID(id)
	if err != nil {
		return nil, err
	}
	return u.findOne(ctx, bson.M{"_id": oid})
}

func (u *UsersStore) findOne(ctx context.Context, filter bson.M) (*User, error) {
	var user User
	err := u.coll.FindOne(ctx, filter).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("user: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("%w: find user: %w", ErrFetch, err)
	}
	return &user, nil
}

// ListUsers returns the whole directory in insertion order, without password hashes.
func (u *UsersStore) ListUsers(ctx context.Context) ([]*User, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "_id", Value: 1}}).
		SetProjection(bson.M{"password": 0})

	cursor, err := u.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("%w: list users: %w", ErrFetch, err)
	}
	defer cursor.Close(ctx)

	var users []*User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("%w: decode users: %w", ErrFetch, err)
	}
	return users, nil
}

// UpdateProfile applies the non-nil fields of p and returns the updated user.
func (u *UsersStore) UpdateProfile(ctx context.Context, id string, p ProfileUpdate) (*User, error) {
	oid, err := ParseID(id)
	if err != nil {
		return nil, err
	}

	set := bson.M{"updated_at": time.Now().UTC()}
	if p.DisplayName != nil {
		set["display_name"] = *p.DisplayName
	}
	if p.Name != nil {
		set["name"] = *p.Name
	}
	if p.ProfileImageURL != nil {
		set["profile_image_url"] = *p.ProfileImageURL
	}
	if p.CompanyName != nil {
		set["company_name"] = *p.CompanyName
	}
	if p.Bio != nil {
		set["bio"] = *p.Bio
	}
	if p.Tags != nil {
		set["tags"] = p.Tags
	}
	if p.Skills != nil {
		set["skills"] = p.Skills
	}

	return u.findOneAndSet(ctx, oid, set)
}

// UpdateSettings replaces the cutoff score and auto status of a recruiter.
func (u *UsersStore) UpdateSettings(ctx context.Context, id string, cutoff int, auto Status) (*User, error) {
	oid, err := ParseID(id)
	if err != nil {
		return nil, err
	}
	return u.findOneAndSet(ctx, oid, bson.M{
		"settings.cutoff_score": cutoff,
		"settings.auto_status":  auto,
		"updated_at":            time.Now().UTC(),
	})
}

// SetShortlistedReset records when the recruiter/candidate last reset the
// shortlisted counter on their dashboard.
func (u *UsersStore) SetShortlistedReset(ctx context.Context, id string, at time.Time) (*User, error) {
	oid, err := ParseID(id)
	if err != nil {
		return nil, err
	}
	return u.findOneAndSet(ctx, oid, bson.M{"settings.shortlisted_reset_at": at.UTC()})
}

func (u *UsersStore) findOneAndSet(ctx context.Context, oid bson.ObjectID, set bson.M) (*User, error) {
	opts := options.FindOneAndUpdate().
		SetReturnDocument(options.After).
		SetProjection(bson.M{"password": 0})

	var user User
	err := u.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, opts).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("user: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("%w: update user: %w", ErrWrite, err)
	}
	return &user, nil
}
