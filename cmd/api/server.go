package main

import (
	"context"
	"errors"
	"log"
	"time"

	v1 "github.com/PaulBabatuyi/jobboard/api/jobboard/v1"
	"github.com/PaulBabatuyi/jobboard/internal/auth"
	"github.com/PaulBabatuyi/jobboard/internal/board"
	"github.com/PaulBabatuyi/jobboard/internal/chat"
	"github.com/PaulBabatuyi/jobboard/internal/data"
	"github.com/PaulBabatuyi/jobboard/internal/scoring"
	"github.com/PaulBabatuyi/jobboard/internal/screening"
	"github.com/PaulBabatuyi/jobboard/internal/search"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// userStore is the subset of data.UsersStore the handlers use.
type userStore interface {
	CreateUser(ctx context.Context, email, hashedPassword, displayName string, role data.Role) (*data.User, error)
	GetUserByEmail(ctx context.Context, email string) (*data.User, error)
	GetUserByID(ctx context.Context, id string) (*data.User, error)
	UpdateProfile(ctx context.Context, id string, p data.ProfileUpdate) (*data.User, error)
}

// Server implements the JobBoard service on top of the domain services.
type Server struct {
	v1.UnimplementedJobBoardServer

	users     userStore
	auth      *auth.JWTManager
	chats     *chat.Service
	search    *search.Searcher
	board     *board.Service
	screening *screening.Service

	// debounce is the quiet period SearchUsers waits for before querying.
	debounce time.Duration
}

// newServer returns a ready-to-use Server wired with stores, services and auth manager.
func newServer(users userStore, authMgr *auth.JWTManager, chats *chat.Service, searcher *search.Searcher, b *board.Service, sc *screening.Service) *Server {
	return &Server{
		users:     users,
		auth:      authMgr,
		chats:     chats,
		search:    searcher,
		board:     b,
		screening: sc,
		debounce:  search.DefaultDebounce,
	}
}

// registerService registers the JobBoard service on the given gRPC server.
func registerService(s *grpc.Server, srv *Server) {
	v1.RegisterJobBoardServer(s, srv)
}

// callerFrom returns the authenticated caller placed in ctx by the auth interceptors.
func callerFrom(ctx context.Context) (*auth.Claims, error) {
	claims, ok := getClaimsFromContext(ctx)
	if !ok || claims.UserID == "" {
		return nil, status.Errorf(codes.Unauthenticated, "missing auth claims")
	}
	return claims, nil
}

// toStatus maps domain errors to gRPC status errors.
func toStatus(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := status.FromError(err); ok {
		return err
	}

	var apiErr *scoring.APIError
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return status.FromContextError(err).Err()
	case errors.Is(err, data.ErrRollback), errors.Is(err, data.ErrWrite):
		log.Printf("write failed: %v", err)
		return status.Errorf(codes.Internal, "write failed")
	case errors.Is(err, data.ErrInvalid):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, data.ErrNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, data.ErrDuplicate):
		return status.Error(codes.AlreadyExists, err.Error())
	case errors.Is(err, data.ErrForbidden):
		return status.Error(codes.PermissionDenied, err.Error())
	case errors.As(err, &apiErr):
		return status.Errorf(codes.Unavailable, "scoring service: %s", apiErr.Message)
	case errors.Is(err, data.ErrFetch):
		log.Printf("fetch failed: %v", err)
		return status.Errorf(codes.Unavailable, "upstream unavailable")
	default:
		log.Printf("internal error: %v", err)
		return status.Errorf(codes.Internal, "internal error")
	}
}
