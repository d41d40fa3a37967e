// Package handler は商品フィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	authentity "fleamarket_backend/internal/feature/auth/domain/entity"
	"fleamarket_backend/internal/feature/items/domain/entity"
	"fleamarket_backend/internal/feature/items/transport/http/dto"
	"fleamarket_backend/internal/feature/items/usecase"
	jwtmw "fleamarket_backend/internal/platform/jwt"
)

// ItemsUsecase は商品操作のユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type ItemsUsecase interface {
	ListAll(ctx context.Context) ([]entity.Item, error)
	GetByID(ctx context.Context, id string) (*entity.Item, error)
	Create(ctx context.Context, name string, price int, description string, owner *authentity.User) (*entity.Item, error)
	UpdateStatus(ctx context.Context, id string, actingUser *authentity.User) (*entity.Item, error)
	Delete(ctx context.Context, id string, actingUser *authentity.User) error
}

// ItemHandler は商品操作のHTTPリクエストを処理します。
type ItemHandler struct {
	items ItemsUsecase
}

// NewItemHandler はItemHandlerの新しいインスタンスを生成します。
func NewItemHandler(items ItemsUsecase) *ItemHandler {
	return &ItemHandler{items: items}
}

// currentUser は認証ミドルウェアがコンテキストに格納したユーザーを取り出します。
func currentUser(c *gin.Context) (*authentity.User, bool) {
	v, ok := c.Get(jwtmw.ContextUser)
	if !ok {
		return nil, false
	}
	user, ok := v.(*authentity.User)
	return user, ok
}

// writeError はユースケースのエラーをHTTPステータスに変換します。
// NotFound→404、所有権/状態の業務ルール違反→400、並行更新の競合→409、それ以外→500。
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, usecase.ErrItemNotFound):
		c.JSON(http.StatusNotFound, dto.ErrorRes{Error: "item not found"})
	case errors.Is(err, usecase.ErrOwnItemPurchase),
		errors.Is(err, usecase.ErrItemSoldOut),
		errors.Is(err, usecase.ErrNotItemOwner):
		c.JSON(http.StatusBadRequest, dto.ErrorRes{Error: err.Error()})
	case errors.Is(err, usecase.ErrItemStateChanged):
		c.JSON(http.StatusConflict, dto.ErrorRes{Error: err.Error()})
	default:
		slog.Error("item operation failed", "error", err)
		c.JSON(http.StatusInternalServerError, dto.ErrorRes{Error: "internal error"})
	}
}

// List は全商品の一覧を取得するAPIです。認証不要。
func (h *ItemHandler) List(c *gin.Context) {
	items, err := h.items.ListAll(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	out := make([]dto.ItemRes, 0, len(items))
	for i := range items {
		out = append(out, dto.FromEntity(&items[i]))
	}
	c.JSON(http.StatusOK, out)
}

// Get は商品を1件取得するAPIです。所有者情報を含みます。認証不要。
func (h *ItemHandler) Get(c *gin.Context) {
	item, err := h.items.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromEntity(item))
}

// Create は新規商品を出品するAPIです。
// - リクエストJSONをCreateItemReqにバインド
// - バリデーションエラー時は400を返却
// - 成功時は201でON_SALE状態の商品を返却
func (h *ItemHandler) Create(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.ErrorRes{Error: "unauthenticated"})
		return
	}
	var req dto.CreateItemReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("create item validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, dto.ErrorRes{Error: "invalid request"})
		return
	}
	item, err := h.items.Create(c.Request.Context(), req.Name, req.Price, req.Description, user)
	if err != nil {
		writeError(c, err)
		return
	}
	slog.Info("item created", "item_id", item.ID, "user_id", user.ID)
	c.JSON(http.StatusCreated, dto.FromEntity(item))
}

// UpdateStatus は購入ステップを1段階進めるAPIです。
// 1回目の呼び出しで予約（TRADING）、2回目で売却確定（SOLD_OUT）となります。
func (h *ItemHandler) UpdateStatus(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.ErrorRes{Error: "unauthenticated"})
		return
	}
	item, err := h.items.UpdateStatus(c.Request.Context(), c.Param("id"), user)
	if err != nil {
		writeError(c, err)
		return
	}
	slog.Info("item status advanced", "item_id", item.ID, "status", item.Status, "user_id", user.ID)
	c.JSON(http.StatusOK, dto.FromEntity(item))
}

// Delete は商品を削除するAPIです。所有者のみ実行できます。
func (h *ItemHandler) Delete(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.ErrorRes{Error: "unauthenticated"})
		return
	}
	if err := h.items.Delete(c.Request.Context(), c.Param("id"), user); err != nil {
		writeError(c, err)
		return
	}
	slog.Info("item deleted", "item_id", c.Param("id"), "user_id", user.ID)
	c.Status(http.StatusNoContent)
}
