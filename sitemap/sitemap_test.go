package sitemap

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadSitemap(t *testing.T) {
	body := `<?xml version="1.0" encoding="UTF-8"?>
<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
  <url><loc>https://x.test/a</loc></url>
  <url><loc> https://x.test/b </loc></url>
  <url><loc>https://x.test/c</loc></url>
</urlset>`

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/xml")
		w.Write([]byte(body))
	}))
	defer srv.Close()

	urls, err := NewHTTPReader(Options{}).ReadSitemap(context.Background(), srv.URL+"/sitemap.xml")
	require.NoError(t, err)
	assert.Equal(t, []string{"https://x.test/a", "https://x.test/b", "https://x.test/c"}, urls)
}

func TestReadSitemapNamespacePrefix(t *testing.T) {
	// loc elements must match by local name whatever the prefix
	body := `<?xml version="1.0"?>
<sm:urlset xmlns:sm="http://www.sitemaps.org/schemas/sitemap/0.9">
  <sm:url><sm:loc>https://x.test/prefixed</sm:loc></sm:url>
</sm:urlset>`

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(body))
	}))
	defer srv.Close()

	urls, err := NewHTTPReader(Options{}).ReadSitemap(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, []string{"https://x.test/prefixed"}, urls)
}

func TestReadSitemapIndex(t *testing.T) {
	// a sitemap index also declares loc elements; they are returned as-is
	body := `<?xml version="1.0"?>
<sitemapindex xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
  <sitemap><loc>https://x.test/sitemap-1.xml</loc></sitemap>
  <sitemap><loc>https://x.test/sitemap-2.xml</loc></sitemap>
</sitemapindex>`

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(body))
	}))
	defer srv.Close()

	urls, err := NewHTTPReader(Options{}).ReadSitemap(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Len(t, urls, 2)
}

func TestReadSitemapSkipsNonHTTP(t *testing.T) {
	body := `<urlset>
  <url><loc>ftp://x.test/skip</loc></url>
  <url><loc>https://x.test/keep</loc></url>
</urlset>`

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(body))
	}))
	defer srv.Close()

	urls, err := NewHTTPReader(Options{}).ReadSitemap(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, []string{"https://x.test/keep"}, urls)
}

func TestReadSitemapHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusNotFound)
	}))
	defer srv.Close()

	urls, err := NewHTTPReader(Options{}).ReadSitemap(context.Background(), srv.URL)
	assert.Error(t, err)
	assert.Empty(t, urls)
}

func TestReadSitemapUnreachable(t *testing.T) {
	urls, err := NewHTTPReader(Options{}).ReadSitemap(context.Background(), "http://127.0.0.1:1/sitemap.xml")
	assert.Error(t, err)
	assert.Empty(t, urls)
}
