package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	v1 "github.com/PaulBabatuyi/jobboard/api/jobboard/v1"
	"github.com/PaulBabatuyi/jobboard/internal/auth"
	"github.com/PaulBabatuyi/jobboard/internal/board"
	"github.com/PaulBabatuyi/jobboard/internal/chat"
	"github.com/PaulBabatuyi/jobboard/internal/config"
	"github.com/PaulBabatuyi/jobboard/internal/data"
	"github.com/PaulBabatuyi/jobboard/internal/db"
	"github.com/PaulBabatuyi/jobboard/internal/middleware"
	"github.com/PaulBabatuyi/jobboard/internal/scoring"
	"github.com/PaulBabatuyi/jobboard/internal/screening"
	"github.com/PaulBabatuyi/jobboard/internal/search"
	"github.com/PaulBabatuyi/jobboard/internal/storage"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize database
	dbClient, err := db.New(ctx, cfg.MongoURI, cfg.MongoDatabase)
	if err != nil {
		log.Fatalf("failed to connect to DB: %v", err)
	}
	defer func() {
		_ = dbClient.Close(context.Background())
	}()

	// Ensure indexes exist
	if err := dbClient.CreateIndexes(ctx); err != nil {
		log.Fatalf("failed to create indexes: %v", err)
	}

	// Create stores
	usersStore := data.NewUsersStore(dbClient.UsersCollection())
	chatsStore := data.NewChatsStore(dbClient.ChatsCollection())
	msgsStore := data.NewMessagesStore(dbClient.MessagesCollection())
	jobsStore := data.NewJobsStore(dbClient.JobsCollection())
	appsStore := data.NewApplicationsStore(dbClient.ApplicationsCollection())

	// If JWT_KEYS is supplied tokens are signed with the active kid and any
	// listed key verifies; otherwise the single JWT_SECRET is used.
	var jwtMgr *auth.JWTManager
	if len(cfg.JWTKeys) > 0 {
		jwtMgr = auth.NewJWTManagerFromKeys(cfg.JWTKeys, cfg.JWTActiveKid, cfg.TokenTTL)
	} else {
		jwtMgr = auth.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL)
	}

	// Domain services
	broker := chat.NewBroker()
	chatSvc := chat.NewService(chatsStore, usersStore, msgsStore, broker)
	searcher := search.NewSearcher(usersStore)
	boardSvc := board.NewService(jobsStore, appsStore, usersStore)

	scorer := scoring.NewClient(cfg.ScoringURL, cfg.ScoringTimeout)
	pingCtx, cancelPing := context.WithTimeout(ctx, 5*time.Second)
	if err := scorer.Ping(pingCtx); err != nil {
		log.Printf("warning: scoring service at %s not reachable: %v", cfg.ScoringURL, err)
	}
	cancelPing()
	fetcher := storage.NewFetcher(storage.DefaultTimeout, storage.DefaultMaxSize, cfg.StorageHosts)
	boardSvc.Files = fetcher
	screenSvc := screening.NewService(appsStore, jobsStore, usersStore, scorer, fetcher)
	screenSvc.Interval = cfg.ScoreInterval

	// Writes made by other instances reach local subscribers through the change stream.
	if cfg.ChangeStreams {
		go func() {
			if err := dbClient.WatchChats(ctx, func(owner string) { broker.Notify(owner) }); err != nil {
				log.Printf("chat change stream stopped: %v", err)
			}
		}()
	}

	// Rate limit Register and Login per account (small burst to allow a couple
	// of quick retries), and the HTTP API per client address.
	limiterStore := middleware.NewLimiterStore(cfg.RateLimitRPM, 3, time.Minute)
	defer limiterStore.Stop()
	limited := map[string]bool{
		v1.FullMethod("Register"): true,
		v1.FullMethod("Login"):    true,
	}
	httpLimiter := middleware.NewLimiterStore(cfg.RateLimitRPM*30, 20, time.Minute)
	defer httpLimiter.Stop()

	var serverOpts []grpc.ServerOption
	if cfg.TLSCert != "" && cfg.TLSKey != "" {
		creds, err := credentials.NewServerTLSFromFile(cfg.TLSCert, cfg.TLSKey)
		if err != nil {
			log.Fatalf("failed to load TLS certs: %v", err)
		}
		serverOpts = append(serverOpts, grpc.Creds(creds))
	}
	serverOpts = append(serverOpts,
		grpc.ChainUnaryInterceptor(
			middleware.UnaryInterceptor(limiterStore, limited),
			authUnaryInterceptor(jwtMgr),
		),
		grpc.ChainStreamInterceptor(authStreamInterceptor(jwtMgr)),
	)

	grpcServer := grpc.NewServer(serverOpts...)
	srv := newServer(usersStore, jwtMgr, chatSvc, searcher, boardSvc, screenSvc)
	srv.debounce = cfg.SearchDebounce
	registerService(grpcServer, srv)

	// Listen and serve
	listenAddr := fmt.Sprintf(":%s", cfg.Port)
	lis, err := net.Listen("tcp", listenAddr)
	if err != nil {
		log.Fatalf("failed to listen: %v", err)
	}
	go func() {
		log.Printf("gRPC server listening on %s", listenAddr)
		if err := grpcServer.Serve(lis); err != nil {
			log.Fatalf("gRPC server exit: %v", err)
		}
	}()

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           newGateway(jwtMgr, chatSvc, searcher, httpLimiter, cfg.AllowedOrigins),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		log.Printf("HTTP gateway listening on %s", cfg.HTTPAddr)
		var err error
		if cfg.TLSCert != "" && cfg.TLSKey != "" {
			err = httpServer.ListenAndServeTLS(cfg.TLSCert, cfg.TLSKey)
		} else {
			err = httpServer.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("HTTP gateway exit: %v", err)
		}
	}()

	// Graceful shutdown on SIGINT/SIGTERM
	<-ctx.Done()
	log.Printf("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP gateway shutdown: %v", err)
	}

	// WatchChats streams only end when their clients leave, so graceful stop
	// is bounded by the shutdown timeout.
	stopped := make(chan struct{})
	go func() {
		grpcServer.GracefulStop()
		close(stopped)
	}()
	select {
	case <-stopped:
	case <-shutdownCtx.Done():
		grpcServer.Stop()
	}
}
