package repo

import (
	"context"
	"strings"

	"GoMFiles/internal/model"

	"gorm.io/gorm"
)

// ObjectRepository stores vault objects with their properties and files.
type ObjectRepository interface {
	// Create assigns the next ID of the object's type and inserts the object
	// together with its properties and files. Files with an UploadID claim
	// that staged upload in the same transaction, so a failed create leaves
	// every upload in place. A missing upload yields gorm.ErrRecordNotFound.
	Create(ctx context.Context, obj *model.Object) error
	// Get returns gorm.ErrRecordNotFound for unknown objects.
	Get(ctx context.Context, objType, objID int) (*model.Object, error)
	// Search matches q case-insensitively against titles and file names.
	// Deleted objects are skipped. Results are ordered by type and ID.
	Search(ctx context.Context, q string, limit int) ([]model.Object, error)
	// Update saves the scalar columns of obj.
	Update(ctx context.Context, obj *model.Object) error
	// Destroy removes the object and everything attached to it.
	Destroy(ctx context.Context, objType, objID int) error
	// File returns one file of an object including its content.
	File(ctx context.Context, objType, objID, fileID int) (*model.ObjectFile, error)
}

type objectRepo struct {
	db *gorm.DB
}

// NewObjectRepository returns a gorm backed ObjectRepository.
func NewObjectRepository(db *gorm.DB) ObjectRepository {
	return &objectRepo{db: db}
}

func (r *objectRepo) Create(ctx context.Context, obj *model.Object) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var next int
		if err := tx.Model(&model.Object{}).
			Where("obj_type = ?", obj.ObjType).
			Select("COALESCE(MAX(obj_id), 0) + 1").
			Row().Scan(&next); err != nil {
			return err
		}
		obj.ObjID = next
		for i := range obj.Files {
			f := &obj.Files[i]
			if f.UploadID == 0 {
				continue
			}
			up, err := takeUpload(tx, f.UploadID)
			if err != nil {
				return err
			}
			f.Content, f.Size = up.Content, up.Size
		}
		if obj.Version == 0 {
			obj.Version = 1
		}
		return tx.Create(obj).Error
	})
}

func (r *objectRepo) Get(ctx context.Context, objType, objID int) (*model.Object, error) {
	var obj model.Object
	err := r.db.WithContext(ctx).
		Preload("Properties").
		Preload("Files", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "object_seq", "name", "extension", "size").Order("id")
		}).
		Where("obj_type = ? AND obj_id = ?", objType, objID).
		First(&obj).Error
	if err != nil {
		return nil, err
	}
	return &obj, nil
}

func (r *objectRepo) Search(ctx context.Context, q string, limit int) ([]model.Object, error) {
	like := "%" + escapeLike(strings.ToLower(q)) + "%"
	files := r.db.Model(&model.ObjectFile{}).
		Select("object_seq").
		Where("LOWER(name || '.' || extension) LIKE ? ESCAPE '\\'", like)
	db := r.db.WithContext(ctx).
		Preload("Files", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "object_seq", "name", "extension", "size").Order("id")
		}).
		Where("deleted = ?", false).
		Where(r.db.Where("LOWER(title) LIKE ? ESCAPE '\\'", like).Or("seq IN (?)", files)).
		Order("obj_type").Order("obj_id")
	if limit > 0 {
		db = db.Limit(limit)
	}
	var out []model.Object
	return out, db.Find(&out).Error
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes q match literally inside a LIKE pattern escaped with '\'.
func escapeLike(q string) string {
	return likeEscaper.Replace(q)
}

func (r *objectRepo) Update(ctx context.Context, obj *model.Object) error {
	return r.db.WithContext(ctx).Model(obj).
		Select("title", "class", "version", "checked_out", "deleted").
		Updates(obj).Error
}

func (r *objectRepo) Destroy(ctx context.Context, objType, objID int) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var obj model.Object
		if err := tx.Where("obj_type = ? AND obj_id = ?", objType, objID).First(&obj).Error; err != nil {
			return err
		}
		if err := tx.Where("object_seq = ?", obj.Seq).Delete(&model.ObjectProperty{}).Error; err != nil {
			return err
		}
		if err := tx.Where("object_seq = ?", obj.Seq).Delete(&model.ObjectFile{}).Error; err != nil {
			return err
		}
		return tx.Delete(&obj).Error
	})
}

func (r *objectRepo) File(ctx context.Context, objType, objID, fileID int) (*model.ObjectFile, error) {
	var f model.ObjectFile
	err := r.db.WithContext(ctx).
		Joins("JOIN objects ON objects.seq = object_files.object_seq").
		Where("objects.obj_type = ? AND objects.obj_id = ? AND object_files.id = ?", objType, objID, fileID).
		First(&f).Error
	if err != nil {
		return nil, err
	}
	return &f, nil
}
