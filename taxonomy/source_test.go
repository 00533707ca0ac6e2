package taxonomy

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDocument = `{
	"domestic": [
		{"id": "hyundai", "label": "현대", "models": [
			{"id": "grandeur", "model": "그랜저", "trims": [
				{"id": "grandeur-gn7", "trim": "디 올 뉴 그랜저 (22년~현재)"}
			]}
		]}
	],
	"import": [
		{"id": "bmw", "label": "BMW", "models": []}
	]
}`

func TestDecode(t *testing.T) {
	t.Run("original resource shape", func(t *testing.T) {
		tree, err := Decode([]byte(sampleDocument))
		require.NoError(t, err)
		require.Len(t, tree.Domestic, 1)
		assert.Equal(t, "그랜저", tree.Domestic[0].Models[0].Label)
		assert.Equal(t, "디 올 뉴 그랜저 (22년~현재)", tree.Domestic[0].Models[0].Trims[0].Label)
	})

	t.Run("missing categories decode as empty", func(t *testing.T) {
		tree, err := Decode([]byte(`{}`))
		require.NoError(t, err)
		assert.NotNil(t, tree.Domestic)
		assert.NotNil(t, tree.Import)
		assert.True(t, tree.IsEmpty())
	})

	t.Run("malformed", func(t *testing.T) {
		_, err := Decode([]byte(`{"domestic": [`))
		assert.ErrorIs(t, err, ErrDecodeFailed)
	})
}

func TestFileSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "search_tree.json")
	require.NoError(t, os.WriteFile(path, []byte(sampleDocument), 0o644))

	tree, err := NewFileSource(path).Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "BMW", tree.Import[0].Label)

	_, err = NewFileSource(filepath.Join(t.TempDir(), "missing.json")).Fetch(context.Background())
	assert.Error(t, err)
}

func TestHTTPSource_BypassesCaches(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "no-cache", r.Header.Get("Cache-Control"))
		assert.Equal(t, "no-cache", r.Header.Get("Pragma"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(sampleDocument))
	}))
	defer srv.Close()

	tree, err := NewHTTPSource(srv.URL).Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "hyundai", tree.Domestic[0].ID)
}

func TestHTTPSource_RetriesServerErrors(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(sampleDocument))
	}))
	defer srv.Close()

	tree, err := NewHTTPSource(srv.URL, WithRetry(3, time.Millisecond)).Fetch(context.Background())
	require.NoError(t, err)
	assert.False(t, tree.IsEmpty())
	assert.Equal(t, int32(3), hits.Load())
}

func TestHTTPSource_NonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	_, err := NewHTTPSource(srv.URL, WithRetry(2, time.Millisecond)).Fetch(context.Background())
	assert.ErrorIs(t, err, ErrUnexpectedStatus)
}

func TestHTTPSource_StoreDegradesOnFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	store, err := NewStore(NewHTTPSource(srv.URL, WithRetry(1, time.Millisecond)))
	require.NoError(t, err)
	assert.True(t, store.Load(context.Background()).IsEmpty())
}

func TestHTTPSource_DocumentSizeLimit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(sampleDocument))
	}))
	defer srv.Close()

	t.Run("oversized document is rejected", func(t *testing.T) {
		src := NewHTTPSource(srv.URL, WithRetry(1, time.Millisecond), WithMaxDocumentSize(64))
		_, err := src.Fetch(context.Background())
		assert.ErrorIs(t, err, ErrDocumentTooLarge)
		assert.NotErrorIs(t, err, ErrDecodeFailed)
	})

	t.Run("document at the limit is accepted", func(t *testing.T) {
		src := NewHTTPSource(srv.URL, WithRetry(1, time.Millisecond), WithMaxDocumentSize(int64(len(sampleDocument))))
		tax, err := src.Fetch(context.Background())
		require.NoError(t, err)
		assert.Len(t, tax.Domestic, 1)
	})
}

func TestStaticSource_Nil(t *testing.T) {
	_, err := StaticSource{}.Fetch(context.Background())
	assert.ErrorIs(t, err, ErrNilTaxonomy)

	store, err := NewStore(StaticSource{})
	require.NoError(t, err)
	assert.True(t, store.Load(context.Background()).IsEmpty())
}
