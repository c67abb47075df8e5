package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/aumugisha-umu/seido-sub006/config"
	"github.com/aumugisha-umu/seido-sub006/internal/api/handler"
	"github.com/aumugisha-umu/seido-sub006/internal/api/router"
	"github.com/aumugisha-umu/seido-sub006/internal/repository"
	"github.com/aumugisha-umu/seido-sub006/internal/service"
	"github.com/aumugisha-umu/seido-sub006/pkg/database"
	"github.com/aumugisha-umu/seido-sub006/pkg/jwt"
	applogger "github.com/aumugisha-umu/seido-sub006/pkg/logger"
	"github.com/aumugisha-umu/seido-sub006/pkg/push"
	"github.com/aumugisha-umu/seido-sub006/pkg/redis"
)

func main() {
	// 1. Chargement de la configuration
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "échec du chargement de la configuration: %v\n", err)
		os.Exit(1)
	}

	// 2. Initialisation du logger
	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "échec de l'initialisation du logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("démarrage de l'application...",
		zap.Int("port", cfg.Server.Port),
		zap.String("log_level", cfg.Log.Level),
	)

	// 3. Connexion à la base de données
	db, err := database.NewDB(&cfg.Database, logger)
	if err != nil {
		logger.Fatal("échec de la connexion à la base de données", zap.Error(err))
	}
	logger.Info("base de données connectée")

	// 3.1 Migrations embarquées
	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("échec de la récupération du sql.DB sous-jacent", zap.Error(err))
	}
	if err := database.RunMigrations(sqlDB, logger); err != nil {
		logger.Fatal("échec des migrations", zap.Error(err))
	}

	// 4. Connexion Redis (optionnelle : mode dégradé si indisponible,
	// la liste noire de tokens et le rate limiting sont alors inactifs)
	rdb, err := redis.NewClient(&cfg.Redis, logger)
	if err != nil {
		logger.Warn("Redis indisponible, fonctionnement en mode dégradé", zap.Error(err))
		rdb = nil
	}

	// 5. Gestionnaire JWT
	jwtMgr := jwt.NewManager(&cfg.Auth)

	// 6. Passerelle de notifications push (nil si non configurée)
	notifier := push.NewNotifier(&cfg.Push, logger)

	// 7. Injection de dépendances : Repository → Service → Handler
	repo := repository.NewRepository(db)
	svc := service.NewService(repo, jwtMgr, rdb, notifier, logger)
	h := handler.NewHandler(svc)

	// 8. Routage
	engine := router.Setup(cfg, h, jwtMgr, rdb, logger)

	// 9. Serveur HTTP avec arrêt propre
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("serveur HTTP démarré", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("erreur du serveur HTTP", zap.Error(err))
		}
	}()

	// 10. Attente du signal d'arrêt
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	logger.Info("signal reçu, arrêt en cours...", zap.String("signal", sig.String()))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("arrêt du serveur en erreur", zap.Error(err))
	}

	if closeDB, _ := db.DB(); closeDB != nil {
		closeDB.Close()
	}

	if rdb != nil {
		rdb.Close()
	}

	logger.Info("serveur arrêté")
}
