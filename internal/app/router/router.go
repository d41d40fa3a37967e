// Package router assembles the HTTP route table.
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	authhandler "fleamarket_backend/internal/feature/auth/transport/handler"
	itemhandler "fleamarket_backend/internal/feature/items/transport/handler"
	jwtmw "fleamarket_backend/internal/platform/jwt"
)

// NewRouter builds the Gin engine with all application routes.
// Reads are public; every mutation requires a valid JWT whose claims
// resolve to a stored user.
func NewRouter(auth *authhandler.AuthHandler, items *itemhandler.ItemHandler,
	jwtSecret string, finder jwtmw.UserFinder) *gin.Engine {
	r := gin.Default()

	// 認証不要
	// 導通確認用
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	// 新規ユーザー登録
	r.POST("/signup", auth.Signup)
	// ログイン（JWT 発行）
	r.POST("/login", auth.Login)
	// 商品一覧・詳細は誰でも閲覧できる
	r.GET("/items", items.List)
	r.GET("/items/:id", items.Get)

	// 認証必須のルート
	protected := r.Group("/")
	protected.Use(jwtmw.AuthRequired(jwtSecret, finder))
	{
		// 出品
		protected.POST("/items", items.Create)
		// 購入ステップ（予約→売却確定）
		protected.PATCH("/items/:id/status", items.UpdateStatus)
		// 出品取り下げ
		protected.DELETE("/items/:id", items.Delete)
	}

	return r
}
