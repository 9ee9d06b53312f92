package main

import (
	"context"
	"errors"
	"log"
	"strings"

	v1 "github.com/PaulBabatuyi/jobboard/api/jobboard/v1"
	"github.com/PaulBabatuyi/jobboard/internal/auth"
	"github.com/PaulBabatuyi/jobboard/internal/data"
	"github.com/PaulBabatuyi/jobboard/internal/normalize"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const minPasswordLength = 6

// Register handles user registration: hashes password, stores user, returns JWT token
func (s *Server) Register(ctx context.Context, req *v1.RegisterRequest) (*v1.AuthResponse, error) {
	email := normalize.Email(req.Email)
	if !strings.Contains(email, "@") {
		return nil, status.Errorf(codes.InvalidArgument, "invalid email")
	}
	if len(req.Password) < minPasswordLength {
		return nil, status.Errorf(codes.InvalidArgument, "password must be at least %d characters", minPasswordLength)
	}
	role := data.Role(req.Role)
	if role == "" {
		role = data.RoleCandidate
	}
	if !role.Valid() {
		return nil, status.Errorf(codes.InvalidArgument, "unknown role %q", req.Role)
	}
	displayName := strings.TrimSpace(req.DisplayName)
	if displayName == "" {
		displayName = strings.SplitN(email, "@", 2)[0]
	}

	// Hash password using auth utility
	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "failed to hash password: %v", err)
	}

	user, err := s.users.CreateUser(ctx, email, hashed, displayName, role)
	if err != nil {
		if errors.Is(err, data.ErrDuplicate) {
			return nil, status.Errorf(codes.AlreadyExists, "email already registered")
		}
		log.Printf("create user failed: %v", err)
		return nil, status.Errorf(codes.Internal, "failed to create user")
	}

	return s.issueToken(user)
}

// Login authenticates a user and returns a JWT token
func (s *Server) Login(ctx context.Context, req *v1.LoginRequest) (*v1.AuthResponse, error) {
	user, err := s.users.GetUserByEmail(ctx, normalize.Email(req.Email))
	if err != nil {
		if errors.Is(err, data.ErrNotFound) {
			return nil, status.Errorf(codes.Unauthenticated, "invalid credentials")
		}
		return nil, toStatus(err)
	}

	if err := auth.CheckPassword(user.Password, req.Password); err != nil {
		return nil, status.Errorf(codes.Unauthenticated, "invalid credentials")
	}

	return s.issueToken(user)
}

func (s *Server) issueToken(user *data.User) (*v1.AuthResponse, error) {
	token, expiresAt, err := s.auth.GenerateToken(user.IDHex(), user.Email, string(user.Role))
	if err != nil {
		return nil, status.Errorf(codes.Internal, "failed to generate token: %v", err)
	}
	return &v1.AuthResponse{Token: token, ExpiresAt: expiresAt, User: toProfile(user)}, nil
}

// GetProfile returns the requested user's profile, or the caller's own.
func (s *Server) GetProfile(ctx context.Context, req *v1.GetProfileRequest) (*v1.Profile, error) {
	caller, err := callerFrom(ctx)
	if err != nil {
		return nil, err
	}
	id := req.UserID
	if id == "" {
		id = caller.UserID
	}

	user, err := s.users.GetUserByID(ctx, id)
	if err != nil {
		return nil, toStatus(err)
	}
	return toProfile(user), nil
}

// UpdateProfile edits the caller's own profile.
func (s *Server) UpdateProfile(ctx context.Context, req *v1.UpdateProfileRequest) (*v1.Profile, error) {
	caller, err := callerFrom(ctx)
	if err != nil {
		return nil, err
	}

	user, err := s.users.UpdateProfile(ctx, caller.UserID, data.ProfileUpdate{
		DisplayName:     req.DisplayName,
		Name:            req.Name,
		ProfileImageURL: req.ProfileImageURL,
		CompanyName:     req.CompanyName,
		Bio:             req.Bio,
		Tags:            req.Tags,
		Skills:          req.Skills,
	})
	if err != nil {
		return nil, toStatus(err)
	}
	return toProfile(user), nil
}

// SearchProfiles filters the directory by name, company, tags and skills.
func (s *Server) SearchProfiles(ctx context.Context, req *v1.SearchProfilesRequest) (*v1.SearchProfilesResponse, error) {
	if _, err := callerFrom(ctx); err != nil {
		return nil, err
	}
	users, err := s.search.Profiles(ctx, req.Query)
	if err != nil {
		return nil, toStatus(err)
	}
	return &v1.SearchProfilesResponse{Profiles: toProfiles(users)}, nil
}
