package main

import (
	"log"

	redisv9 "github.com/redis/go-redis/v9"

	"fleamarket_backend/internal/app/router"
	authadapters "fleamarket_backend/internal/feature/auth/adapters"
	authhandler "fleamarket_backend/internal/feature/auth/transport/handler"
	authusecase "fleamarket_backend/internal/feature/auth/usecase"
	itemadapters "fleamarket_backend/internal/feature/items/adapters"
	itemhandler "fleamarket_backend/internal/feature/items/transport/handler"
	itemusecase "fleamarket_backend/internal/feature/items/usecase"
	"fleamarket_backend/internal/platform/cache"
	"fleamarket_backend/internal/platform/config"
	"fleamarket_backend/internal/platform/db"
	jwtmw "fleamarket_backend/internal/platform/jwt"
	platformredis "fleamarket_backend/internal/platform/redis"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	// db
	conn, err := db.OpenDB(cfg.DatabaseDSN, cfg.RunMigrations)
	if err != nil {
		log.Fatal(err)
	}

	// Redis（未設定ならキャッシュなしで動作）
	var rdb *redisv9.Client
	if cfg.RedisAddr != "" {
		if tmp, err := platformredis.NewRedisClient(cfg.RedisAddr); err != nil {
			log.Println("[WARN] Redis unavailable. Running without cache.")
		} else {
			rdb = tmp
			defer func() {
				if err := rdb.Close(); err != nil {
					log.Println("[ERROR] Failed to close Redis client:", err)
				}
			}()
		}
	}

	// Repository
	userRepo := authadapters.NewUserPostgres(conn)
	itemRepo := itemadapters.NewItemPostgres(conn)

	// Redisキャッシュでラップ
	cachedItemRepo := cache.NewCachingItemRepository(rdb, cfg.CacheTTL, itemRepo, "items")

	// Usecase
	tokenGen := jwtmw.NewGenerator(cfg.JWTSecret, cfg.JWTExpiration)
	authUC := authusecase.NewAuthUsecase(userRepo, tokenGen)
	itemsUC := itemusecase.NewItemsUsecase(cachedItemRepo)

	// Handler
	authH := authhandler.NewAuthHandler(authUC)
	itemH := itemhandler.NewItemHandler(itemsUC)

	// ルータ生成
	r := router.NewRouter(authH, itemH, cfg.JWTSecret, authUC)

	if err := r.Run(cfg.Addr); err != nil {
		log.Fatal(err)
	}
}
