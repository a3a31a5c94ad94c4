package repo

import (
	"context"

	"GoMFiles/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// StructureRepository serves the vault metadata: object types, classes,
// property definitions and value lists.
type StructureRepository interface {
	ObjectTypes(ctx context.Context) ([]model.ObjectType, error)
	Classes(ctx context.Context) ([]model.Class, error)
	Class(ctx context.Context, id int) (*model.Class, []model.ClassProperty, error)
	Properties(ctx context.Context) ([]model.PropertyDef, error)
	Property(ctx context.Context, id int) (*model.PropertyDef, error)
	ValueLists(ctx context.Context) ([]model.ValueList, error)
	ValueListItems(ctx context.Context, listID int) ([]model.ValueListItem, error)

	// Upsert stores any of the structure models, replacing rows with the same key.
	Upsert(ctx context.Context, rows any) error
}

type structureRepo struct {
	db *gorm.DB
}

// NewStructureRepository returns a gorm backed StructureRepository.
func NewStructureRepository(db *gorm.DB) StructureRepository {
	return &structureRepo{db: db}
}

func (r *structureRepo) ObjectTypes(ctx context.Context) ([]model.ObjectType, error) {
	var out []model.ObjectType
	return out, r.db.WithContext(ctx).Order("id").Find(&out).Error
}

func (r *structureRepo) Classes(ctx context.Context) ([]model.Class, error) {
	var out []model.Class
	return out, r.db.WithContext(ctx).Order("id").Find(&out).Error
}

func (r *structureRepo) Class(ctx context.Context, id int) (*model.Class, []model.ClassProperty, error) {
	var c model.Class
	if err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error; err != nil {
		return nil, nil, err
	}
	var props []model.ClassProperty
	if err := r.db.WithContext(ctx).Where("class_id = ?", id).Order("property_def").Find(&props).Error; err != nil {
		return nil, nil, err
	}
	return &c, props, nil
}

func (r *structureRepo) Properties(ctx context.Context) ([]model.PropertyDef, error) {
	var out []model.PropertyDef
	return out, r.db.WithContext(ctx).Order("id").Find(&out).Error
}

func (r *structureRepo) Property(ctx context.Context, id int) (*model.PropertyDef, error) {
	var p model.PropertyDef
	if err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *structureRepo) ValueLists(ctx context.Context) ([]model.ValueList, error) {
	var out []model.ValueList
	return out, r.db.WithContext(ctx).Order("id").Find(&out).Error
}

// ValueListItems returns the items of a list in insertion order. An unknown
// list yields gorm.ErrRecordNotFound.
func (r *structureRepo) ValueListItems(ctx context.Context, listID int) ([]model.ValueListItem, error) {
	var list model.ValueList
	if err := r.db.WithContext(ctx).First(&list, "id = ?", listID).Error; err != nil {
		return nil, err
	}
	var out []model.ValueListItem
	err := r.db.WithContext(ctx).Where("list_id = ?", listID).Order("position").Find(&out).Error
	return out, err
}

func (r *structureRepo) Upsert(ctx context.Context, rows any) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(rows).Error
}
