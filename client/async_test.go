package client_test

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/streetlevel/panorama/client"
)

func TestAsyncClient_ListPanoramas(t *testing.T) {
	page := testPage(t, "", "")

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		serveJSON(t, w, page)
	}))
	defer ts.Close()

	a, err := client.BuildAsync(client.WithBaseURL(ts.URL + "/"))
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}

	r := a.ListPanoramas(context.Background())

	select {
	case <-r.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("Done channel was not closed in time")
	}

	got, err := r.Value()
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if diff := cmp.Diff(&page, got); diff != "" {
		t.Errorf("unexpected page (-want +got):\n%s", diff)
	}
}

func TestAsyncClient_ConcurrentCalls(t *testing.T) {
	const calls = 8

	page := testPage(t, "", "")

	var served atomic.Int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		served.Add(1)
		serveJSON(t, w, page)
	}))
	defer ts.Close()

	// Many outstanding calls on one instance must be safe.
	a, err := client.BuildAsync(client.WithBaseURL(ts.URL + "/"))
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}

	results := make([]*client.Result[*client.PagedPanoramasResponse], calls)
	for i := range results {
		results[i] = a.ListPanoramas(context.Background())
	}

	for i, r := range results {
		if _, err := r.Value(); err != nil {
			t.Errorf("call %d: expected no error, got: %v", i, err)
		}
	}

	if n := served.Load(); n != calls {
		t.Errorf("expected %d requests, got %d", calls, n)
	}
}

func TestAsyncClient_Cancel(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	defer close(release)

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(started)
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer ts.Close()

	a, err := client.BuildAsync(client.WithBaseURL(ts.URL + "/"))
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}

	r := a.ListPanoramas(context.Background())
	<-started
	r.Cancel()

	if err := r.Err(); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got: %v", err)
	}
}

func TestAsyncClient_NextPage_NoMorePages(t *testing.T) {
	a, err := client.BuildAsync()
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}

	last := testPage(t, "", "")
	if err := a.NextPage(context.Background(), &last).Err(); !errors.Is(err, client.ErrNoMorePages) {
		t.Errorf("expected ErrNoMorePages, got: %v", err)
	}
}

func TestAsyncClient_DownloadImage(t *testing.T) {
	imageBytes := []byte("async image payload")

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := w.Write(imageBytes); err != nil {
			t.Errorf("failed to write image: %v", err)
		}
	}))
	defer ts.Close()

	a, err := client.BuildAsync()
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}

	pano := decodePanorama(t)
	pano.Links.EquirectangularFull = client.Link{Href: ts.URL + "/full.jpg"}

	got, err := a.DownloadImage(context.Background(), &pano, client.SizeFull).Value()
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if !bytes.Equal(got, imageBytes) {
		t.Errorf("downloaded bytes do not match served bytes")
	}
}

func TestAsyncClient_SaveImages(t *testing.T) {
	const limit = 2

	var running, maxRunning atomic.Int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cur := running.Add(1)
		defer running.Add(-1)
		for {
			old := maxRunning.Load()
			if cur <= old || maxRunning.CompareAndSwap(old, cur) {
				break
			}
		}
		time.Sleep(20 * time.Millisecond)
		if _, err := w.Write([]byte("image for " + r.URL.Path)); err != nil {
			t.Errorf("failed to write image: %v", err)
		}
	}))
	defer ts.Close()

	a, err := client.BuildAsync()
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}

	panos := make([]client.Panorama, 5)
	for i := range panos {
		pano := decodePanorama(t)
		pano.ID = pano.ID + "-" + string(rune('a'+i))
		pano.Filename = pano.ID + ".jpg"
		pano.Links.EquirectangularMedium = client.Link{Href: ts.URL + "/" + pano.Filename}
		panos[i] = pano
	}

	dir := t.TempDir()
	q := a.SaveImages(context.Background(), panos, client.SizeMedium, dir, limit)
	if err := q.Wait(); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if got := maxRunning.Load(); got > limit {
		t.Errorf("expected at most %d concurrent downloads, observed %d", limit, got)
	}

	for _, pano := range panos {
		if _, err := os.Stat(filepath.Join(dir, pano.Filename)); err != nil {
			t.Errorf("expected saved image for %s: %v", pano.ID, err)
		}
	}
}

func TestAsyncClient_SaveImages_PartialFailure(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := w.Write([]byte("image")); err != nil {
			t.Errorf("failed to write image: %v", err)
		}
	}))
	defer ts.Close()

	a, err := client.BuildAsync()
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}

	good := decodePanorama(t)
	good.Links.EquirectangularSmall = client.Link{Href: ts.URL + "/good.jpg"}

	bad := decodePanorama(t)
	bad.ID = bad.ID + "-noimg"
	bad.Filename = "noimg.jpg"
	bad.Links.EquirectangularSmall = client.Link{}

	dir := t.TempDir()
	q := a.SaveImages(context.Background(), []client.Panorama{good, bad}, client.SizeSmall, dir, 0)

	if err := q.Wait(); !errors.Is(err, client.ErrMissingVariant) {
		t.Fatalf("expected ErrMissingVariant in joined errors, got: %v", err)
	}

	if _, err := os.Stat(filepath.Join(dir, good.Filename)); err != nil {
		t.Errorf("expected the good panorama's image to be saved: %v", err)
	}
}

func TestAsyncClient_SyncTwin(t *testing.T) {
	c, err := client.Build()
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}

	if c.Async().Sync() != c {
		t.Error("expected Async().Sync() to return the same client")
	}
}
