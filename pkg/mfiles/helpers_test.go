package mfiles

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

// fakeServer records every request and routes it through a ServeMux.
type fakeServer struct {
	*httptest.Server
	mux *http.ServeMux

	mu   sync.Mutex
	hits []string
}

func newFakeServer(t *testing.T) *fakeServer {
	t.Helper()
	f := &fakeServer{mux: http.NewServeMux()}
	f.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.hits = append(f.hits, r.Method+" "+r.URL.RequestURI())
		f.mu.Unlock()
		f.mux.ServeHTTP(w, r)
	}))
	t.Cleanup(f.Close)
	return f
}

func (f *fakeServer) handle(pattern string, h http.HandlerFunc) { f.mux.HandleFunc(pattern, h) }

func (f *fakeServer) reply(pattern string, v any) {
	f.handle(pattern, func(w http.ResponseWriter, _ *http.Request) { writeJSON(w, v) })
}

// count returns how many recorded requests start with prefix, e.g. "POST /files".
func (f *fakeServer) count(prefix string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, h := range f.hits {
		if strings.HasPrefix(h, prefix) {
			n++
		}
	}
	return n
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

// newTokenClient returns a client that reuses a token and never logs in.
func newTokenClient(t *testing.T, f *fakeServer, opts ...Option) *Client {
	t.Helper()
	base := []Option{
		WithServer(f.URL),
		WithVault("{C840BE1A-5B47-4AC0-8EF7-835C166C8E24}"),
		WithToken("tok"),
		WithFs(afero.NewMemMapFs()),
		WithCredentialProviders(),
	}
	c, err := New(context.Background(), append(base, opts...)...)
	require.NoError(t, err)
	return c
}

// seedStructure serves a small metadata set:
//
//	object types: Document(0), Customer(136)
//	classes:      Unclassified Document(0), Report(5)
//	properties:   Document Title(1002, text), Document Type(1001, lookup on list 101)
//	list 101:     Report owned by class 5, Report owned by class 9, Memo without owner
func seedStructure(f *fakeServer) {
	f.reply("GET /structure/objecttypes", []TypeInfo{
		{ID: 0, Name: "Document"},
		{ID: 136, Name: "Customer"},
	})
	f.reply("GET /structure/classes", []TypeInfo{
		{ID: 0, Name: "Unclassified Document"},
		{ID: 5, Name: "Report"},
	})
	f.reply("GET /structure/properties", []TypeInfo{
		{ID: 0, Name: "Name or title", DataType: DataTypeText},
		{ID: 100, Name: "Class", DataType: DataTypeLookup, ValueList: 1},
		{ID: 1002, Name: "Document Title", DataType: DataTypeText},
		{ID: 1001, Name: "Document Type", DataType: DataTypeLookup, ValueList: 101},
		{ID: 1003, Name: "Keywords", DataType: DataTypeMultiSelectLookup, ValueList: 102},
	})
	f.reply("GET /valuelists/101/items", valueListItems{Items: []ValueListItem{
		{ID: 1, Name: "Report", HasOwner: true, OwnerID: 9},
		{ID: 2, Name: "Report", HasOwner: true, OwnerID: 5},
		{ID: 3, Name: "Memo"},
	}})
	f.reply("GET /valuelists/102/items", valueListItems{Items: []ValueListItem{
		{ID: 7, Name: "Finance"},
	}})
}
