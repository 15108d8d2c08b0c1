package main

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mmdatafocus/storefront_backend/movies"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
)

func TestBrowse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/genres":
			fmt.Fprint(w, `[{"id":1,"name":"action","title":"Action"},{"id":2,"name":"drama","title":"Drama"}]`)
		case strings.HasPrefix(r.URL.Path, "/genres/"):
			id := strings.TrimPrefix(r.URL.Path, "/genres/")
			fmt.Fprintf(w, `{"id":%s,"name":"g%s","title":"Genre %s"}`, id, id, id)
		case r.URL.Path == "/movies":
			id := r.URL.Query().Get("Genre_id")
			fmt.Fprintf(w, `[{"imdbID":"tt%s","Title":"Film %s","Runtime":"90 min","Ratings":[{"Source":"x","Value":"7/10"}]}]`, id, id)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	logger, _ := test.NewNullLogger()
	provider := movies.NewProvider(movies.NewClientWithBaseURL(srv.URL, nil), movies.WithLogger(logger))
	defer provider.Close()

	var out bytes.Buffer
	err := browse(movies.WithProvider(context.Background(), provider), &out, []int{2})
	require.NoError(t, err)

	text := out.String()
	require.Contains(t, text, "*   1 Action")
	require.Contains(t, text, "== Genre 1 (1) ==")
	require.Contains(t, text, "== Genre 2 (2) ==")
	require.Contains(t, text, "tt2")
	require.Contains(t, text, "7/10")
}

func TestBrowseOutsideProvider(t *testing.T) {
	require.PanicsWithValue(t, movies.ErrOutsideProvider, func() {
		_ = browse(context.Background(), &bytes.Buffer{}, nil)
	})
}
