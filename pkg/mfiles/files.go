package mfiles

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/afero"
)

// LatestVersion addresses the newest version of an object.
const LatestVersion = "latest"

// StageFile uploads raw bytes to temporary storage on the server.
func (c *Client) StageFile(ctx context.Context, r io.Reader) (*UploadInfo, error) {
	raw, err := c.send(ctx, request{method: http.MethodPost, endpoint: "files", raw: r})
	if err != nil {
		return nil, err
	}
	var out UploadInfo
	if err := decode(http.MethodPost, "files", raw, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UploadFile stages a local file and creates an object holding it. The object
// is named after the file's base name without extension. If object creation
// fails the staged upload is left behind on the server.
func (c *Client) UploadFile(ctx context.Context, path string, objectType, objectClass Ref, extra []Property) (*ObjectVersion, error) {
	content, err := afero.ReadFile(c.fs, path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	upload, err := c.StageFile(ctx, bytes.NewReader(content))
	if err != nil {
		return nil, err
	}
	title, ext := splitFileName(path)
	file := &FileRef{
		UploadID:  upload.UploadID,
		Title:     title,
		Extension: ext,
		Size:      upload.Size,
	}
	c.log.Debugw("file staged", "path", path, "upload_id", upload.UploadID, "size", upload.Size)
	return c.CreateObject(ctx, title, objectType, objectClass, extra, file)
}

// DownloadFile writes the content of one file of an object version to
// localPath. version is a version number or LatestVersion.
func (c *Client) DownloadFile(ctx context.Context, localPath string, objectType, objectID, fileID int, version string) error {
	if version == "" {
		version = LatestVersion
	}
	endpoint := fmt.Sprintf("objects/%d/%d/%s/files/%d/content", objectType, objectID, version, fileID)
	content, err := c.send(ctx, request{method: http.MethodGet, endpoint: endpoint})
	if err != nil {
		return err
	}
	if err := afero.WriteFile(c.fs, localPath, content, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", localPath, err)
	}
	c.log.Debugw("file downloaded", "path", localPath, "bytes", len(content))
	return nil
}

// DownloadFileByName searches for fileName and downloads the first file of the
// top result. The top result is not guaranteed to be the intended file; search
// and DownloadFile are the precise alternative. It returns false only when the
// search finds nothing. An empty localPath means fileName in the working
// directory.
func (c *Client) DownloadFileByName(ctx context.Context, fileName, localPath string) (bool, error) {
	results, err := c.QuickSearch(ctx, fileName)
	if err != nil {
		return false, err
	}
	if len(results.Items) == 0 {
		return false, nil
	}
	item := results.Items[0]
	if len(item.Files) == 0 {
		return false, &NotFoundError{Kind: "file", Name: item.Title}
	}
	if localPath == "" {
		wd, err := os.Getwd()
		if err != nil {
			return false, err
		}
		localPath = filepath.Join(wd, fileName)
	}
	ov := item.ObjVer
	err = c.DownloadFile(ctx, localPath, ov.Type, ov.ID, item.Files[0].ID, strconv.Itoa(ov.Version))
	if err != nil {
		return false, err
	}
	return true, nil
}

// splitFileName returns the base name without extension and the extension
// without its dot.
func splitFileName(path string) (string, string) {
	base := filepath.Base(path)
	ext := filepath.Ext(base)
	return strings.TrimSuffix(base, ext), strings.TrimPrefix(ext, ".")
}
