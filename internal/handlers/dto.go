package handlers

import (
	"GoMFiles/internal/model"
	"GoMFiles/pkg/mfiles"
)

func toObjectVersion(o *model.Object) mfiles.ObjectVersion {
	files := make([]mfiles.ObjectFile, 0, len(o.Files))
	for _, f := range o.Files {
		files = append(files, mfiles.ObjectFile{ID: f.ID, Name: f.Name, Extension: f.Extension, Size: f.Size})
	}
	return mfiles.ObjectVersion{
		Title:            o.Title,
		ObjVer:           mfiles.ObjVer{ID: o.ObjID, Type: o.ObjType, Version: o.Version},
		Class:            o.Class,
		ObjectCheckedOut: o.CheckedOut,
		Deleted:          o.Deleted,
		Files:            files,
	}
}

func toTypeInfos[T any](rows []T, conv func(T) mfiles.TypeInfo) []mfiles.TypeInfo {
	out := make([]mfiles.TypeInfo, 0, len(rows))
	for _, r := range rows {
		out = append(out, conv(r))
	}
	return out
}

func objectTypeInfo(t model.ObjectType) mfiles.TypeInfo {
	return mfiles.TypeInfo{ID: t.ID, Name: t.Name}
}

func classInfo(c model.Class) mfiles.TypeInfo {
	return mfiles.TypeInfo{ID: c.ID, Name: c.Name}
}

func propertyInfo(p model.PropertyDef) mfiles.TypeInfo {
	return mfiles.TypeInfo{ID: p.ID, Name: p.Name, DataType: mfiles.DataType(p.DataType), ValueList: p.ValueList}
}

func toClassDetails(c *model.Class, props []model.ClassProperty) mfiles.ClassDetails {
	assoc := make([]mfiles.AssociatedPropertyDef, 0, len(props))
	for _, p := range props {
		assoc = append(assoc, mfiles.AssociatedPropertyDef{PropertyDef: p.PropertyDef, Required: p.Required})
	}
	return mfiles.ClassDetails{
		ID:              c.ID,
		Name:            c.Name,
		ObjectType:      c.ObjectType,
		NamePropertyDef: mfiles.PropertyDefName,
		AssociatedProps: assoc,
	}
}

func toValueLists(rows []model.ValueList) []mfiles.ValueList {
	out := make([]mfiles.ValueList, 0, len(rows))
	for _, l := range rows {
		out = append(out, mfiles.ValueList{ID: l.ID, Name: l.Name, HasOwner: l.HasOwner, OwnerID: l.OwnerID})
	}
	return out
}

type valueListItems struct {
	Items []mfiles.ValueListItem `json:"Items"`
}

func toValueListItems(rows []model.ValueListItem) valueListItems {
	out := valueListItems{Items: make([]mfiles.ValueListItem, 0, len(rows))}
	for _, it := range rows {
		out.Items = append(out.Items, mfiles.ValueListItem{ID: it.ItemID, Name: it.Name, HasOwner: it.HasOwner, OwnerID: it.OwnerID})
	}
	return out
}
