package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	recoverer "github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"

	"blogapi/bootstrap"
	"blogapi/config"
	"blogapi/database"
	"blogapi/internal/apperr"
	"blogapi/internal/handlers"
	"blogapi/internal/logger"
	"blogapi/internal/middleware"
	"blogapi/internal/repository"
	"blogapi/internal/routes"
	"blogapi/internal/social"
	"blogapi/internal/upload"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using system environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logg := logger.New(cfg.Env)

	// --- MongoDB connection ---
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	client, err := database.Connect(ctx, cfg.MongoURI)
	cancel()
	if err != nil {
		logg.WithError(err).Fatal("mongodb connection failed")
	}
	db := client.Database(cfg.MongoDB)
	logg.WithField("db", cfg.MongoDB).Info("connected to mongodb")

	if err := bootstrap.EnsureIndexes(context.Background(), db); err != nil {
		logg.WithError(err).Fatal("ensure indexes failed")
	}

	// --- Wiring ---
	rec := repository.NewRecounter(db)
	usersRepo := repository.NewUsers(db, rec)
	articlesRepo := repository.NewArticles(db)
	commentsRepo := repository.NewComments(db)
	likesRepo := repository.NewLikes(db, rec)
	bookmarksRepo := repository.NewBookmarks(db)

	soc := social.NewService(usersRepo, likesRepo, logg)

	var uploads *upload.Client
	if cfg.HasCloudinary() {
		uploads, err = upload.New(
			cfg.CloudinaryCloudName,
			cfg.CloudinaryAPIKey,
			cfg.CloudinaryAPISecret,
			cfg.CloudinaryFolder,
		)
		if err != nil {
			logg.WithError(err).Fatal("cloudinary init failed")
		}
	} else {
		logg.Warn("cloudinary not configured, photo uploads disabled")
	}

	validate := validator.New()

	authHandler := &handlers.AuthHandler{Users: usersRepo, Cfg: cfg, Validate: validate, Log: logg}
	userHandler := &handlers.UserHandler{
		Users:     usersRepo,
		Articles:  articlesRepo,
		Bookmarks: bookmarksRepo,
		Comments:  commentsRepo,
		Social:    soc,
		Log:       logg,
	}
	articleHandler := &handlers.ArticleHandler{
		Articles:  articlesRepo,
		Comments:  commentsRepo,
		Likes:     likesRepo,
		Bookmarks: bookmarksRepo,
		Social:    soc,
		Uploads:   uploads,
		Validate:  validate,
		Log:       logg,
	}
	commentHandler := &handlers.CommentHandler{Comments: commentsRepo, Articles: articlesRepo, Recount: rec, Log: logg}
	bookmarkHandler := &handlers.BookmarkHandler{Bookmarks: bookmarksRepo, Articles: articlesRepo, Log: logg}
	likeHandler := &handlers.LikeHandler{Likes: likesRepo, Log: logg}
	adminHandler := &handlers.AdminHandler{
		Users:     usersRepo,
		Comments:  commentsRepo,
		Bookmarks: bookmarksRepo,
		Recount:   rec,
		Log:       logg,
	}

	// --- Fiber app ---
	app := fiber.New(fiber.Config{
		AppName:      "blogapi",
		BodyLimit:    upload.MaxFileSize + 1<<20, // form overhead on top of the image cap
		ErrorHandler: apperr.Handler(cfg.IsDevelopment(), logg),
	})

	app.Use(recoverer.New())
	app.Use(cors.New())
	if cfg.IsDevelopment() {
		app.Use(fiberlogger.New())
	}

	routes.Register(app, routes.Deps{
		Auth:      authHandler,
		Users:     userHandler,
		Articles:  articleHandler,
		Comments:  commentHandler,
		Bookmarks: bookmarkHandler,
		Likes:     likeHandler,
		Admin:     adminHandler,
		Protect:   middleware.Protect(cfg.JWTSecret, usersRepo),
	})

	// --- Serve until signalled, then drain and close the client ---
	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			logg.WithError(err).Fatal("server stopped")
		}
	}()
	logg.WithField("port", cfg.Port).Info("listening")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logg.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		logg.WithError(err).Error("server shutdown failed")
	}
	if err := database.Disconnect(shutdownCtx, client); err != nil {
		logg.WithError(err).Error("mongodb disconnect failed")
	}
}
