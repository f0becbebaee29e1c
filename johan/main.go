package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"johan/johan/config"
	"johan/johan/controllers"
	"johan/johan/middlewares"
	"johan/johan/packages/linkpreview"
	"johan/johan/packages/notes"
	"johan/johan/pkghost"
	"johan/johan/routes"
	"johan/johan/sources/psql"
	"johan/johan/sources/psql/dao"
	"johan/johan/sources/storage"
	"johan/johan/utils/logging"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

func main() {
	logging.InitLogger()
	cfg := config.LoadConfig()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	db, err := psql.NewDatabase(ctx, cfg)
	if err != nil {
		logging.ErrorLogger.Error("database connection error", zap.Error(err))
		os.Exit(1)
	}
	defer db.Close()

	userDAO := dao.NewUserDAO(db.DB)
	agentDAO := dao.NewAgentDAO(db.DB)
	chatDAO := dao.NewChatDAO(db.DB)

	minioClient, err := storage.NewMinIOClient(cfg)
	if err != nil {
		logging.ErrorLogger.Error("minio connection error", zap.Error(err))
		os.Exit(1)
	}

	authCtrl := controllers.NewAuthController(userDAO, cfg)
	userCtrl := controllers.NewUserController(userDAO)
	agentCtrl := controllers.NewAgentController(agentDAO)
	chatCtrl := controllers.NewChatController(chatDAO, agentDAO, cfg.ModelEndpoint)
	uploadCtrl := controllers.NewUploadController(minioClient, chatCtrl)
	healthCtrl := controllers.NewHealthController()

	// package registry: built-ins register here, packages.yaml decides which
	// ones come up active
	registry := pkghost.NewRegistry(db.DB)
	for _, pkg := range []pkghost.Package{
		notes.New(db.DB),
		linkpreview.New(),
	} {
		if err := registry.Register(pkg); err != nil {
			logging.ErrorLogger.Error("package registration error", zap.Error(err))
			os.Exit(1)
		}
	}

	var loader *pkghost.Loader
	pkgs, err := config.LoadPackages(cfg.PackagesFile)
	if err != nil {
		logging.AppLogger.Warn("no packages file, activating all registered packages", zap.Error(err))
		for _, info := range registry.List() {
			pkgs.Enabled = append(pkgs.Enabled, info.Name)
		}
	}
	if pkgs.Dir != "" {
		loader = pkghost.NewLoader(pkgs.Dir)
	}
	for _, name := range pkgs.Enabled {
		if err := registry.Activate(ctx, name); err != nil {
			logging.ErrorLogger.Error("package activation error", zap.String("package", name), zap.Error(err))
			os.Exit(1)
		}
	}
	packagesCtrl := controllers.NewPackagesController(registry, loader)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Mount("/health", routes.HealthRoutes(healthCtrl))
	r.Mount("/auth", routes.AuthRoutes(authCtrl))
	r.Mount("/users", routes.UserRoutes(userCtrl, cfg))
	r.Mount("/agents", routes.AgentRoutes(agentCtrl, cfg))
	r.Mount("/chats", routes.ChatRoutes(chatCtrl, uploadCtrl, cfg))
	r.Mount("/admin/packages", routes.PackagesRoutes(packagesCtrl, cfg))
	r.Group(func(gr chi.Router) {
		gr.Use(middlewares.AuthMiddleware(cfg))
		gr.Mount("/packages", registry.Handler())
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}
	go func() {
		logging.AppLogger.Info("server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.ErrorLogger.Error("server listen error", zap.Error(err))
		}
	}()
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	// deactivate packages so their Remove hooks run before the DB goes away
	for _, info := range registry.List() {
		if info.State == pkghost.StateActive {
			if err := registry.Deactivate(shutdownCtx, info.Name); err != nil {
				logging.ErrorLogger.Error("package deactivation error", zap.String("package", info.Name), zap.Error(err))
			}
		}
	}
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logging.ErrorLogger.Error("server shutdown error", zap.Error(err))
	}
	logging.AppLogger.Info("server shutdown complete")
}
