// Package adapters は商品フィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"fleamarket_backend/internal/feature/items/domain/entity"
	"fleamarket_backend/internal/feature/items/usecase"
)

// itemPostgres はItemRepositoryインターフェースのPostgreSQL実装です。
type itemPostgres struct {
	db *gorm.DB
}

var _ usecase.ItemRepository = (*itemPostgres)(nil)

// NewItemPostgres は指定されたDB接続でitemPostgresリポジトリの新しいインスタンスを生成します。
func NewItemPostgres(db *gorm.DB) *itemPostgres {
	return &itemPostgres{db: db}
}

// FindAll は全商品を登録順（created_at昇順）に返します。
func (r *itemPostgres) FindAll(ctx context.Context) ([]entity.Item, error) {
	var items []entity.Item
	if err := r.db.WithContext(ctx).
		Order("created_at ASC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// FindByID は所有者をプリロードした商品を返します。
// 商品が存在しない場合、usecase.ErrItemNotFoundを返します。
func (r *itemPostgres) FindByID(ctx context.Context, id string) (*entity.Item, error) {
	var item entity.Item
	if err := r.db.WithContext(ctx).
		Preload("User").
		Where("id = ?", id).
		First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrItemNotFound
		}
		return nil, err
	}
	return &item, nil
}

// Create は商品をデータベースに追加します。
// 所有者はUserIDで参照するのみで、Userアソシエーションは書き込みません。
func (r *itemPostgres) Create(ctx context.Context, item *entity.Item) error {
	return r.db.WithContext(ctx).Omit("User").Create(item).Error
}

// CompareAndSetStatus はstatusがfromのままの行に限りtoへ更新します。
// 条件付きUPDATEにより、2人の同時購入者によるlost updateを防ぎます。
// 行が一致しなかった場合、商品自体が無ければErrItemNotFound、
// 状態が先に進んでいればErrItemStateChangedを返します。
func (r *itemPostgres) CompareAndSetStatus(ctx context.Context, id string, from, to entity.ItemStatus) error {
	res := r.db.WithContext(ctx).
		Model(&entity.Item{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).
			Model(&entity.Item{}).
			Where("id = ?", id).
			Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return usecase.ErrItemNotFound
		}
		return usecase.ErrItemStateChanged
	}
	return nil
}

// Delete は商品を完全に削除します。
// 対象行が存在しない場合、usecase.ErrItemNotFoundを返します。
func (r *itemPostgres) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&entity.Item{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return usecase.ErrItemNotFound
	}
	return nil
}
