package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"GoMFiles/internal/model"
	"GoMFiles/internal/repo"
	"GoMFiles/pkg/mfiles"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SearchLimit caps the number of objects one search returns.
const SearchLimit = 500

// Check-out states accepted by SetCheckout.
const (
	CheckedIn      = "0"
	CheckedOutByMe = "2"
)

// VaultService implements the object and metadata operations of one vault.
type VaultService struct {
	structure repo.StructureRepository
	objects   repo.ObjectRepository
	uploads   repo.UploadRepository
	log       *zap.SugaredLogger
}

func NewVaultService(st repo.StructureRepository, obj repo.ObjectRepository, up repo.UploadRepository, log *zap.SugaredLogger) *VaultService {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &VaultService{structure: st, objects: obj, uploads: up, log: log}
}

// notFound maps gorm.ErrRecordNotFound to ErrNotFound.
func notFound(err error, what string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: %s", ErrNotFound, what)
	}
	return err
}

func (s *VaultService) ObjectTypes(ctx context.Context) ([]model.ObjectType, error) {
	return s.structure.ObjectTypes(ctx)
}

func (s *VaultService) Classes(ctx context.Context) ([]model.Class, error) {
	return s.structure.Classes(ctx)
}

func (s *VaultService) Class(ctx context.Context, id int) (*model.Class, []model.ClassProperty, error) {
	c, props, err := s.structure.Class(ctx, id)
	if err != nil {
		return nil, nil, notFound(err, fmt.Sprintf("class %d", id))
	}
	return c, props, nil
}

func (s *VaultService) Properties(ctx context.Context) ([]model.PropertyDef, error) {
	return s.structure.Properties(ctx)
}

func (s *VaultService) ValueLists(ctx context.Context) ([]model.ValueList, error) {
	return s.structure.ValueLists(ctx)
}

func (s *VaultService) ValueListItems(ctx context.Context, listID int) ([]model.ValueListItem, error) {
	items, err := s.structure.ValueListItems(ctx, listID)
	if err != nil {
		return nil, notFound(err, fmt.Sprintf("value list %d", listID))
	}
	return items, nil
}

// Stage stores uploaded content until an object claims it.
func (s *VaultService) Stage(ctx context.Context, content []byte) (*model.Upload, error) {
	u, err := s.uploads.Create(ctx, content)
	if err != nil {
		return nil, err
	}
	s.log.Debugw("file staged", "upload_id", u.ID, "size", u.Size)
	return u, nil
}

// CreateObject validates an envelope and stores the object. The first two
// property values must be the name and the class.
func (s *VaultService) CreateObject(ctx context.Context, objType int, env *mfiles.ObjectEnvelope) (*model.Object, error) {
	if err := s.requireType(ctx, objType); err != nil {
		return nil, err
	}
	if env == nil || len(env.PropertyValues) < 2 {
		return nil, fmt.Errorf("%w: name and class properties are required", ErrBadRequest)
	}
	title, err := nameOf(env.PropertyValues[0])
	if err != nil {
		return nil, err
	}
	classID, err := classOf(env.PropertyValues[1])
	if err != nil {
		return nil, err
	}
	class, classProps, err := s.Class(ctx, classID)
	if err != nil {
		return nil, fmt.Errorf("%w: class %d does not exist", ErrBadRequest, classID)
	}
	if class.ObjectType != objType {
		return nil, fmt.Errorf("%w: class %d does not belong to object type %d", ErrBadRequest, classID, objType)
	}

	obj := &model.Object{ObjType: objType, Title: title, Class: classID}
	seen := map[int]bool{}
	for _, pv := range env.PropertyValues {
		prop, err := s.checkProperty(ctx, pv)
		if err != nil {
			return nil, err
		}
		raw, err := json.Marshal(pv.TypedValue)
		if err != nil {
			return nil, err
		}
		seen[pv.PropertyDef] = true
		obj.Properties = append(obj.Properties, model.ObjectProperty{
			PropertyDef: pv.PropertyDef,
			DataType:    prop.DataType,
			Value:       string(raw),
		})
	}
	for _, cp := range classProps {
		if cp.Required && !seen[cp.PropertyDef] {
			return nil, fmt.Errorf("%w: property %d is required by class %d", ErrBadRequest, cp.PropertyDef, classID)
		}
	}
	for _, f := range env.Files {
		if f == nil {
			continue
		}
		obj.Files = append(obj.Files, model.ObjectFile{
			Name:      f.Title,
			Extension: f.Extension,
			UploadID:  f.UploadID,
		})
	}
	if err := s.objects.Create(ctx, obj); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %v", ErrBadRequest, err)
		}
		return nil, err
	}
	s.log.Infow("object created", "type", objType, "id", obj.ObjID, "class", classID, "title", title, "files", len(obj.Files))
	return obj, nil
}

func (s *VaultService) requireType(ctx context.Context, objType int) error {
	types, err := s.structure.ObjectTypes(ctx)
	if err != nil {
		return err
	}
	for _, t := range types {
		if t.ID == objType {
			return nil
		}
	}
	return fmt.Errorf("%w: object type %d", ErrNotFound, objType)
}

func nameOf(pv mfiles.PropertyValue) (string, error) {
	v, ok := pv.TypedValue.(mfiles.PlainValue)
	if pv.PropertyDef != mfiles.PropertyDefName || !ok {
		return "", fmt.Errorf("%w: first property must be the name", ErrBadRequest)
	}
	title, ok := v.Value.(string)
	if !ok || title == "" {
		return "", fmt.Errorf("%w: name must be a non-empty string", ErrBadRequest)
	}
	return title, nil
}

func classOf(pv mfiles.PropertyValue) (int, error) {
	v, ok := pv.TypedValue.(mfiles.LookupValue)
	if pv.PropertyDef != mfiles.PropertyDefClass || !ok {
		return 0, fmt.Errorf("%w: second property must be the class lookup", ErrBadRequest)
	}
	return v.Lookup.Item, nil
}

// checkProperty verifies the definition exists, the data type matches and
// lookups point at an existing item.
func (s *VaultService) checkProperty(ctx context.Context, pv mfiles.PropertyValue) (*model.PropertyDef, error) {
	if pv.TypedValue == nil {
		return nil, fmt.Errorf("%w: property %d has no value", ErrBadRequest, pv.PropertyDef)
	}
	prop, err := s.structure.Property(ctx, pv.PropertyDef)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: property %d does not exist", ErrBadRequest, pv.PropertyDef)
		}
		return nil, err
	}
	if int(pv.TypedValue.Type()) != prop.DataType {
		return nil, fmt.Errorf("%w: property %d expects data type %d, got %d", ErrBadRequest, prop.ID, prop.DataType, pv.TypedValue.Type())
	}
	lv, isLookup := pv.TypedValue.(mfiles.LookupValue)
	if mfiles.DataType(prop.DataType).IsLookup() != isLookup {
		return nil, fmt.Errorf("%w: property %d lookup mismatch", ErrBadRequest, prop.ID)
	}
	if !isLookup || prop.ID == mfiles.PropertyDefClass {
		return prop, nil
	}
	items, err := s.structure.ValueListItems(ctx, prop.ValueList)
	if err != nil {
		return nil, notFound(err, fmt.Sprintf("value list %d", prop.ValueList))
	}
	for _, it := range items {
		if it.ItemID == lv.Lookup.Item {
			return prop, nil
		}
	}
	return nil, fmt.Errorf("%w: item %d is not in value list %d", ErrBadRequest, lv.Lookup.Item, prop.ValueList)
}

// object loads an object and checks version, which is "latest" or a number
// not above the current version.
func (s *VaultService) object(ctx context.Context, objType, objID int, version string) (*model.Object, error) {
	obj, err := s.objects.Get(ctx, objType, objID)
	if err != nil {
		return nil, notFound(err, fmt.Sprintf("object %d/%d", objType, objID))
	}
	if version == "" || version == mfiles.LatestVersion {
		return obj, nil
	}
	v, err := strconv.Atoi(version)
	if err != nil {
		return nil, fmt.Errorf("%w: version %q", ErrBadRequest, version)
	}
	if v < 1 || v > obj.Version {
		return nil, fmt.Errorf("%w: version %d of object %d/%d", ErrNotFound, v, objType, objID)
	}
	return obj, nil
}

// Object returns one object.
func (s *VaultService) Object(ctx context.Context, objType, objID int, version string) (*model.Object, error) {
	return s.object(ctx, objType, objID, version)
}

// SetCheckout checks an object out (CheckedOutByMe) or in (CheckedIn).
// Check-out starts a new version; check-in must name the current one.
func (s *VaultService) SetCheckout(ctx context.Context, objType, objID int, version, status string) (*model.Object, error) {
	obj, err := s.object(ctx, objType, objID, version)
	if err != nil {
		return nil, err
	}
	if obj.Deleted {
		return nil, fmt.Errorf("%w: object %d/%d is deleted", ErrConflict, objType, objID)
	}
	switch status {
	case CheckedOutByMe:
		if obj.CheckedOut {
			return nil, fmt.Errorf("%w: object %d/%d is already checked out", ErrConflict, objType, objID)
		}
		obj.CheckedOut = true
		obj.Version++
	case CheckedIn:
		if !obj.CheckedOut {
			return nil, fmt.Errorf("%w: object %d/%d is not checked out", ErrConflict, objType, objID)
		}
		if version != mfiles.LatestVersion && version != strconv.Itoa(obj.Version) {
			return nil, fmt.Errorf("%w: version %s is not the checked out version %d", ErrConflict, version, obj.Version)
		}
		obj.CheckedOut = false
	default:
		return nil, fmt.Errorf("%w: unsupported check-out status %q", ErrBadRequest, status)
	}
	if err := s.objects.Update(ctx, obj); err != nil {
		return nil, err
	}
	s.log.Infow("checkout changed", "type", objType, "id", objID, "version", obj.Version, "checked_out", obj.CheckedOut)
	return obj, nil
}

// MarkDeleted flags an object as deleted.
func (s *VaultService) MarkDeleted(ctx context.Context, objType, objID int) (*model.Object, error) {
	obj, err := s.object(ctx, objType, objID, mfiles.LatestVersion)
	if err != nil {
		return nil, err
	}
	if obj.Deleted {
		return nil, fmt.Errorf("%w: object %d/%d is already deleted", ErrConflict, objType, objID)
	}
	obj.Deleted = true
	if err := s.objects.Update(ctx, obj); err != nil {
		return nil, err
	}
	s.log.Infow("object deleted", "type", objType, "id", objID)
	return obj, nil
}

// Destroy removes an object with all versions. Only allVersions is supported.
func (s *VaultService) Destroy(ctx context.Context, objType, objID int, allVersions bool) error {
	if !allVersions {
		return fmt.Errorf("%w: only allVersions=true is supported", ErrBadRequest)
	}
	if err := s.objects.Destroy(ctx, objType, objID); err != nil {
		return notFound(err, fmt.Sprintf("object %d/%d", objType, objID))
	}
	s.log.Infow("object destroyed", "type", objType, "id", objID)
	return nil
}

// Search returns objects whose title or file name contains q, and whether
// more results were cut off.
func (s *VaultService) Search(ctx context.Context, q string) ([]model.Object, bool, error) {
	list, err := s.objects.Search(ctx, q, SearchLimit+1)
	if err != nil {
		return nil, false, err
	}
	if len(list) > SearchLimit {
		return list[:SearchLimit], true, nil
	}
	return list, false, nil
}

// FileContent returns one file of an object version.
func (s *VaultService) FileContent(ctx context.Context, objType, objID int, version string, fileID int) (*model.ObjectFile, error) {
	if _, err := s.object(ctx, objType, objID, version); err != nil {
		return nil, err
	}
	f, err := s.objects.File(ctx, objType, objID, fileID)
	if err != nil {
		return nil, notFound(err, fmt.Sprintf("file %d of object %d/%d", fileID, objType, objID))
	}
	return f, nil
}
