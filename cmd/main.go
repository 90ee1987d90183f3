package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	restctx "github.com/prepmate/interview-server/internal/api/rest/context"
	"github.com/prepmate/interview-server/internal/api/rest/router"
	restServer "github.com/prepmate/interview-server/internal/api/rest/server"
	"github.com/prepmate/interview-server/internal/config"
	"github.com/prepmate/interview-server/internal/logger"
	"github.com/prepmate/interview-server/internal/model"
	"github.com/prepmate/interview-server/internal/question"
	"github.com/prepmate/interview-server/internal/repository/postgres"
	"github.com/prepmate/interview-server/internal/server"
	"github.com/prepmate/interview-server/internal/service"
	storage "github.com/prepmate/interview-server/internal/storage/minio"
	"github.com/prepmate/interview-server/internal/token"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.New(cfg.LogLevel)

	db, err := postgres.NewConection(ctx, cfg.Database.DSN)
	if err != nil {
		logger.Fatal("failed to initialize storage", "error", err)
	}
	defer db.Close()

	interviewRepo := postgres.NewInterviewRepository(db)
	streakRepo := postgres.NewStreakRepository(db)
	resumeRepo := postgres.NewResumeRepository(db)
	tokenManager := token.NewJWT(cfg.JWT.Secret)

	minioClient, err := minio.New(cfg.Storage.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.Storage.AccessKey, cfg.Storage.SecretKey, ""),
		Secure: cfg.Storage.UseSSL,
	})
	if err != nil {
		logger.Fatal("failed to create minio client", "error", err)
	}
	storageClient, err := storage.NewClient(ctx, minioClient, cfg.Storage.Bucket)
	if err != nil {
		logger.Fatal("failed to initialize storage client", "error", err)
	}

	questionClient := question.NewClient(cfg.Question.BaseURL, cfg.Question.Timeout)

	streakService := service.NewStreak(streakRepo, logger)
	interviewService := service.NewInterview(interviewRepo, questionClient, streakService, logger)
	resumeService := service.NewResume(resumeRepo, storageClient, logger)
	authService := service.NewAuth(tokenManager)
	ctxMgr := restctx.NewManager()

	r := router.New(interviewService, streakService, resumeService, authService, ctxMgr, logger)
	httpServer := restServer.NewHTTPServer(r.Register(), fmt.Sprintf(":%s", cfg.HTTP.Port))

	var sl model.SecurityLayer
	if cfg.HTTP.EnableHTTPS {
		sl = server.NewTLSListener(cfg.HTTP.CertFileName, cfg.HTTP.PrivateKeyFileName)
	} else {
		sl = server.NewPlainListener()
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func(s model.Server) {
		defer wg.Done()
		logger.Info("Starting server on", "address", s.Address())
		err := s.Start(sl)
		if err != nil {
			logger.Error("failed to start server", "error", err)
		}
	}(httpServer)

	logAppVersion()

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := httpServer.Stop(shutdownCtx); err != nil {
		logger.Error("error during server shutdown", "error", err, "address", httpServer.Address())
	}

	wg.Wait()
	logger.Info("shutdown complete")
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}
