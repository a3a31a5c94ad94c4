package mfiles

import (
	"context"
	"fmt"
)

type checkoutStatus struct {
	Value string `json:"Value"`
}

// Check-out states as sent to the checkedout endpoint.
var (
	checkedIn      = checkoutStatus{Value: "0"}
	checkedOutByMe = checkoutStatus{Value: "2"}
)

// CreateObject creates an object in the vault. Type and class given by name
// are translated first.
func (c *Client) CreateObject(ctx context.Context, name string, objectType, objectClass Ref, extra []Property, file *FileRef) (*ObjectVersion, error) {
	typeID, err := c.resolveRef(ctx, objectType, CategoryObject)
	if err != nil {
		return nil, err
	}
	classID, err := c.resolveRef(ctx, objectClass, CategoryClass)
	if err != nil {
		return nil, err
	}
	env, err := c.BuildObject(ctx, name, typeID, classID, extra, file)
	if err != nil {
		return nil, err
	}
	var out ObjectVersion
	if err := c.Post(ctx, fmt.Sprintf("objects/%d", typeID), env, &out); err != nil {
		return nil, err
	}
	c.log.Infow("object created", "type", typeID, "class", classID, "id", out.ObjVer.ID, "title", name)
	return &out, nil
}

// CheckOut checks out the latest version of an object.
func (c *Client) CheckOut(ctx context.Context, objectType, objectID int) (*ObjectVersion, error) {
	var out ObjectVersion
	endpoint := fmt.Sprintf("objects/%d/%d/latest/checkedout", objectType, objectID)
	if err := c.Put(ctx, endpoint, checkedOutByMe, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CheckIn checks in the given version of an object.
func (c *Client) CheckIn(ctx context.Context, objectType, objectID, version int) (*ObjectVersion, error) {
	var out ObjectVersion
	endpoint := fmt.Sprintf("objects/%d/%d/%d/checkedout", objectType, objectID, version)
	if err := c.Put(ctx, endpoint, checkedIn, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteObject flags an object as deleted. Administrators can still see it.
func (c *Client) DeleteObject(ctx context.Context, objectType, objectID int) (*ObjectVersion, error) {
	var out ObjectVersion
	if err := c.Put(ctx, fmt.Sprintf("objects/%d/%d/deleted", objectType, objectID), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DestroyObject removes every version of an object. It cannot be undone.
func (c *Client) DestroyObject(ctx context.Context, objectType, objectID int) error {
	if err := c.Delete(ctx, fmt.Sprintf("objects/%d/%d/latest?allVersions=true", objectType, objectID), nil); err != nil {
		return err
	}
	c.log.Infow("object destroyed", "type", objectType, "id", objectID)
	return nil
}
