// Package usecase は商品（item）フィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"

	authentity "fleamarket_backend/internal/feature/auth/domain/entity"
	"fleamarket_backend/internal/feature/items/domain/entity"
)

// ItemRepository は商品エンティティの永続化層を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type ItemRepository interface {
	// FindAll は全商品を登録順に返します。
	FindAll(ctx context.Context) ([]entity.Item, error)

	// FindByID は所有者をプリロードした商品を返します。
	// 商品が存在しない場合、ErrItemNotFoundを返します。
	FindByID(ctx context.Context, id string) (*entity.Item, error)

	// Create は新しい商品をストレージに永続化します。
	Create(ctx context.Context, item *entity.Item) error

	// CompareAndSetStatus はstatusがfromのままである場合に限りtoへ更新します。
	// 行が既に別の状態に移っていた場合、ErrItemStateChangedを返します。
	// 商品が存在しない場合、ErrItemNotFoundを返します。
	CompareAndSetStatus(ctx context.Context, id string, from, to entity.ItemStatus) error

	// Delete は商品を完全に削除します。
	// 商品が存在しない場合、ErrItemNotFoundを返します。
	Delete(ctx context.Context, id string) error
}

// ItemsUsecase は商品操作のビジネスロジックを提供します。
type ItemsUsecase struct {
	items ItemRepository
}

// NewItemsUsecase はItemsUsecaseの新しいインスタンスを生成します。
func NewItemsUsecase(items ItemRepository) *ItemsUsecase {
	return &ItemsUsecase{items: items}
}

// ListAll は全商品を登録順に返します。ページネーションなし。
func (u *ItemsUsecase) ListAll(ctx context.Context) ([]entity.Item, error) {
	return u.items.FindAll(ctx)
}

// GetByID は所有者付きの商品を返します。
func (u *ItemsUsecase) GetByID(ctx context.Context, id string) (*entity.Item, error) {
	return u.items.FindByID(ctx, id)
}

// Create は指定された所有者でON_SALE状態の新しい商品を登録します。
func (u *ItemsUsecase) Create(ctx context.Context, name string, price int, description string, owner *authentity.User) (*entity.Item, error) {
	item := &entity.Item{
		Name:        name,
		Price:       price,
		Description: description,
		Status:      entity.ItemStatusOnSale,
		UserID:      owner.ID,
		User:        *owner,
	}
	if err := u.items.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// UpdateStatus は購入ステップを1段階進めます。
// ON_SALE → TRADING（予約）、TRADING → SOLD_OUT（確定）。
// 所有者自身は購入できません。SOLD_OUTは終端状態です。
//
// 状態の書き込みは条件付きUPDATE（compare-and-set）で永続化されるため、
// 同一商品に対する2人の同時購入者が状態を二重に進めることはありません。
func (u *ItemsUsecase) UpdateStatus(ctx context.Context, id string, actingUser *authentity.User) (*entity.Item, error) {
	item, err := u.items.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if actingUser.ID == item.UserID {
		return nil, ErrOwnItemPurchase
	}

	next, ok := item.Status.Next()
	if !ok {
		return nil, ErrItemSoldOut
	}

	if err := u.items.CompareAndSetStatus(ctx, item.ID, item.Status, next); err != nil {
		return nil, err
	}
	item.Status = next
	return item, nil
}

// Delete は商品を完全に削除します。所有者のみ実行できます。
func (u *ItemsUsecase) Delete(ctx context.Context, id string, actingUser *authentity.User) error {
	item, err := u.items.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if actingUser.ID != item.UserID {
		return ErrNotItemOwner
	}
	return u.items.Delete(ctx, item.ID)
}
