package mfiles

import (
	"context"
	"fmt"
)

// ObjectTypes lists all object types in the vault.
func (c *Client) ObjectTypes(ctx context.Context) ([]TypeInfo, error) {
	var out []TypeInfo
	if err := c.Get(ctx, "structure/objecttypes", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Classes lists all classes in the vault.
func (c *Client) Classes(ctx context.Context) ([]TypeInfo, error) {
	var out []TypeInfo
	if err := c.Get(ctx, "structure/classes", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Properties lists all property definitions in the vault.
func (c *Client) Properties(ctx context.Context) ([]TypeInfo, error) {
	var out []TypeInfo
	if err := c.Get(ctx, "structure/properties", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ClassDetails returns details of one class.
func (c *Client) ClassDetails(ctx context.Context, classID int) (*ClassDetails, error) {
	var out ClassDetails
	if err := c.Get(ctx, fmt.Sprintf("structure/classes/%d", classID), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ValueLists lists all value lists in the vault.
func (c *Client) ValueLists(ctx context.Context) ([]ValueList, error) {
	var out []ValueList
	if err := c.Get(ctx, "valuelists", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ValueListItems lists the items of one value list.
func (c *Client) ValueListItems(ctx context.Context, listID int) ([]ValueListItem, error) {
	var out valueListItems
	if err := c.Get(ctx, fmt.Sprintf("valuelists/%d/items", listID), &out); err != nil {
		return nil, err
	}
	return out.Items, nil
}
