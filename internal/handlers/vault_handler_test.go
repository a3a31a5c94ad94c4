package handlers_test

import (
	"bytes"
	"compress/gzip"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"GoMFiles/pkg/mfiles"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestStructureEndpoints(t *testing.T) {
	router, _ := newTestRouter(t)
	token := login(t, router)

	rr := doJSON(t, router, http.MethodGet, "/REST/structure/objecttypes", token, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var types []mfiles.TypeInfo
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &types))
	assert.Contains(t, types, mfiles.TypeInfo{ID: 0, Name: "Document"})

	rr = doJSON(t, router, http.MethodGet, "/REST/structure/classes/1", token, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var details mfiles.ClassDetails
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &details))
	assert.Equal(t, "Report", details.Name)
	assert.Contains(t, details.AssociatedProps, mfiles.AssociatedPropertyDef{PropertyDef: 1020, Required: true})

	rr = doJSON(t, router, http.MethodGet, "/REST/structure/classes/999", token, nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = doJSON(t, router, http.MethodGet, "/REST/structure/classes/abc", token, nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = doJSON(t, router, http.MethodGet, "/REST/valuelists/101/items", token, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var items struct{ Items []mfiles.ValueListItem }
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &items))
	require.NotEmpty(t, items.Items)
	assert.Equal(t, "Report", items.Items[0].Name)

	rr = doJSON(t, router, http.MethodGet, "/REST/valuelists/404/items", token, nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestCreateObject_Validation(t *testing.T) {
	router, _ := newTestRouter(t)
	token := login(t, router)

	// Report requires Document Type
	env := mfiles.NewObjectEnvelope("Quarterly", 1, nil)
	rr := doJSON(t, router, http.MethodPost, "/REST/objects/0", token, env)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, message(t, rr), "required")

	rr = doJSON(t, router, http.MethodPost, "/REST/objects/77", token, mfiles.NewObjectEnvelope("x", 0, nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)

	req := httptest.NewRequest(http.MethodPost, "/REST/objects/0", bytes.NewBufferString("not json"))
	req.Header.Set("X-Authentication", token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rr = doJSON(t, router, http.MethodPost, "/REST/objects/0", token, mfiles.NewObjectEnvelope("Plain", 0, nil))
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	var ov mfiles.ObjectVersion
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &ov))
	assert.Equal(t, "Plain", ov.Title)
	assert.Equal(t, 1, ov.ObjVer.Version)
	assert.Empty(t, ov.Files)
}

func TestCheckout_ErrorMapping(t *testing.T) {
	router, _ := newTestRouter(t)
	token := login(t, router)

	rr := doJSON(t, router, http.MethodPost, "/REST/objects/0", token, mfiles.NewObjectEnvelope("Doc", 0, nil))
	require.Equal(t, http.StatusOK, rr.Code)
	var ov mfiles.ObjectVersion
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &ov))

	out := map[string]string{"Value": "2"}
	path := "/REST/objects/0/" + strconv.Itoa(ov.ObjVer.ID) + "/latest/checkedout"
	assert.Equal(t, http.StatusOK, doJSON(t, router, http.MethodPut, path, token, out).Code)
	assert.Equal(t, http.StatusConflict, doJSON(t, router, http.MethodPut, path, token, out).Code)
	assert.Equal(t, http.StatusBadRequest, doJSON(t, router, http.MethodPut, path, token, map[string]string{"Value": "7"}).Code)
	assert.Equal(t, http.StatusNotFound, doJSON(t, router, http.MethodPut, "/REST/objects/0/999/latest/checkedout", token, out).Code)

	rr = doJSON(t, router, http.MethodDelete, "/REST/objects/0/"+strconv.Itoa(ov.ObjVer.ID)+"/latest", token, nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestStage_ReturnsUploadInfo(t *testing.T) {
	router, _ := newTestRouter(t)
	token := login(t, router)

	req := httptest.NewRequest(http.MethodPost, "/REST/files", bytes.NewBufferString("hello"))
	req.Header.Set("X-Authentication", token)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	var info mfiles.UploadInfo
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &info))
	assert.NotZero(t, info.UploadID)
	assert.Equal(t, int64(5), info.Size)
}

func TestResponses_Gzip(t *testing.T) {
	router, _ := newTestRouter(t)
	token := login(t, router)

	req := httptest.NewRequest(http.MethodGet, "/REST/structure/objecttypes", nil)
	req.Header.Set("X-Authentication", token)
	req.Header.Set("Accept-Encoding", "gzip")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "gzip", rr.Header().Get("Content-Encoding"))

	zr, err := gzip.NewReader(rr.Body)
	require.NoError(t, err)
	raw, err := io.ReadAll(zr)
	require.NoError(t, err)
	var types []mfiles.TypeInfo
	require.NoError(t, json.Unmarshal(raw, &types))
	assert.NotEmpty(t, types)
}

// The client library against the fake vault: upload, search, download,
// check-out cycle, delete and destroy.
func TestClientRoundTrip(t *testing.T) {
	srv, _ := newTestServer(t)
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/in/report.txt", []byte("quarterly numbers"), 0o644))
	c := newClient(t, srv, fs)
	ctx := context.Background()

	ov, err := c.UploadFile(ctx, "/in/report.txt", mfiles.ByName("Document"), mfiles.ByName("Report"),
		[]mfiles.Property{{Name: "Document Type", Value: "Invoice"}})
	require.NoError(t, err)
	assert.Equal(t, "report", ov.Title)
	assert.Equal(t, 1, ov.Class)
	require.Len(t, ov.Files, 1)
	assert.Equal(t, int64(len("quarterly numbers")), ov.Files[0].Size)

	res, err := c.QuickSearch(ctx, "report.txt")
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	assert.Equal(t, ov.ObjVer.ID, res.Items[0].ObjVer.ID)

	found, err := c.DownloadFileByName(ctx, "report.txt", "/out/report.txt")
	require.NoError(t, err)
	assert.True(t, found)
	got, err := afero.ReadFile(fs, "/out/report.txt")
	require.NoError(t, err)
	assert.Equal(t, "quarterly numbers", string(got))

	found, err = c.DownloadFileByName(ctx, "missing.pdf", "/out/missing.pdf")
	require.NoError(t, err)
	assert.False(t, found)

	out, err := c.CheckOut(ctx, ov.ObjVer.Type, ov.ObjVer.ID)
	require.NoError(t, err)
	assert.True(t, out.ObjectCheckedOut)
	in, err := c.CheckIn(ctx, ov.ObjVer.Type, ov.ObjVer.ID, out.ObjVer.Version)
	require.NoError(t, err)
	assert.False(t, in.ObjectCheckedOut)

	del, err := c.DeleteObject(ctx, ov.ObjVer.Type, ov.ObjVer.ID)
	require.NoError(t, err)
	assert.True(t, del.Deleted)
	res, err = c.QuickSearch(ctx, "report")
	require.NoError(t, err)
	assert.Empty(t, res.Items)

	require.NoError(t, c.DestroyObject(ctx, ov.ObjVer.Type, ov.ObjVer.ID))
	err = c.DestroyObject(ctx, ov.ObjVer.Type, ov.ObjVer.ID)
	var te *mfiles.TransportError
	require.True(t, errors.As(err, &te))
	assert.Equal(t, http.StatusNotFound, te.StatusCode)
}

func TestClientCreateObject_UnknownLookupValue(t *testing.T) {
	srv, _ := newTestServer(t)
	c := newClient(t, srv, afero.NewMemMapFs())

	_, err := c.CreateObject(context.Background(), "Memo 1", mfiles.ByName("Document"), mfiles.ByName("Report"),
		[]mfiles.Property{{Name: "Document Type", Value: "Receipt"}}, nil)
	var nf *mfiles.NotFoundError
	require.True(t, errors.As(err, &nf))
}

func TestSearch_RejectsUnsupportedParameters(t *testing.T) {
	router, _ := newTestRouter(t)
	token := login(t, router)

	rr := doJSON(t, router, http.MethodGet, "/REST/objects?q=memo", token, nil)
	require.Equal(t, http.StatusOK, rr.Code)

	rr = doJSON(t, router, http.MethodGet, "/REST/objects?q=memo&p1020=1", token, nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, message(t, rr), "p1020")

	rr = doJSON(t, router, http.MethodGet, "/REST/objects?o=0", token, nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestObjectChanges_LogUserID(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	router, _ := newTestRouterWithLogger(t, zap.New(core).Sugar())
	token := login(t, router)

	rr := doJSON(t, router, http.MethodPost, "/REST/objects/0", token, mfiles.NewObjectEnvelope("Audited", 0, nil))
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	var ov mfiles.ObjectVersion
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &ov))
	rr = doJSON(t, router, http.MethodPut, "/REST/objects/0/"+strconv.Itoa(ov.ObjVer.ID)+"/deleted", token, nil)
	require.Equal(t, http.StatusOK, rr.Code)

	entries := logs.FilterMessage("object changed").All()
	require.Len(t, entries, 2)
	for i, action := range []string{"create", "delete"} {
		fields := entries[i].ContextMap()
		assert.Equal(t, action, fields["action"])
		assert.NotZero(t, fields["user_id"])
		assert.EqualValues(t, ov.ObjVer.ID, fields["id"])
	}
}
