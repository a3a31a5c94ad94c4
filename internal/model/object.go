package model

import "time"

// Object is the latest version of a vault object. IDs are unique per type.
type Object struct {
	Seq        uint   `gorm:"primaryKey"`
	ObjType    int    `gorm:"not null;uniqueIndex:idx_object_type_id"`
	ObjID      int    `gorm:"not null;uniqueIndex:idx_object_type_id"`
	Title      string `gorm:"not null;index"`
	Class      int    `gorm:"not null"`
	Version    int    `gorm:"not null;default:1"`
	CheckedOut bool   `gorm:"not null;default:false"`
	Deleted    bool   `gorm:"not null;default:false"`

	Properties []ObjectProperty `gorm:"foreignKey:ObjectSeq;constraint:OnDelete:CASCADE"`
	Files      []ObjectFile     `gorm:"foreignKey:ObjectSeq;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// ObjectProperty stores one property value as JSON text.
type ObjectProperty struct {
	Seq         uint   `gorm:"primaryKey"`
	ObjectSeq   uint   `gorm:"not null;index"`
	PropertyDef int    `gorm:"not null"`
	DataType    int    `gorm:"not null"`
	Value       string `gorm:"type:text"`
}

// ObjectFile is a file attached to an object. A non-zero UploadID names the
// staged upload that supplies Content and Size on insert.
type ObjectFile struct {
	ID        int    `gorm:"primaryKey"`
	ObjectSeq uint   `gorm:"not null;index"`
	Name      string `gorm:"not null"`
	Extension string
	Size      int64
	Content   []byte
	UploadID  int `gorm:"-"`
}

// Upload is staged file content waiting to be attached to an object.
type Upload struct {
	ID        int `gorm:"primaryKey"`
	Content   []byte
	Size      int64
	CreatedAt time.Time `gorm:"autoCreateTime"`
}
