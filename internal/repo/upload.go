package repo

import (
	"context"
	"errors"
	"fmt"

	"GoMFiles/internal/model"

	"gorm.io/gorm"
)

// UploadRepository keeps staged file content until an object claims it.
// Uploads are claimed by ObjectRepository.Create.
type UploadRepository interface {
	Create(ctx context.Context, content []byte) (*model.Upload, error)
}

type uploadRepo struct {
	db *gorm.DB
}

// NewUploadRepository returns a gorm backed UploadRepository.
func NewUploadRepository(db *gorm.DB) UploadRepository {
	return &uploadRepo{db: db}
}

func (r *uploadRepo) Create(ctx context.Context, content []byte) (*model.Upload, error) {
	if content == nil {
		content = []byte{}
	}
	u := &model.Upload{Content: content, Size: int64(len(content))}
	if err := r.db.WithContext(ctx).Create(u).Error; err != nil {
		return nil, err
	}
	return u, nil
}

// takeUpload loads and removes an upload inside tx. An unknown ID yields
// gorm.ErrRecordNotFound.
func takeUpload(tx *gorm.DB, id int) (*model.Upload, error) {
	var u model.Upload
	if err := tx.First(&u, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("upload %d: %w", id, err)
	}
	res := tx.Delete(&model.Upload{}, "id = ?", id)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, errors.New("upload already taken")
	}
	return &u, nil
}
