package memory

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"testing"

	"astrobrasil/internal/blob/core"
)

func TestStoreMissing(t *testing.T) {
	store := New()
	ctx := context.Background()
	if _, err := store.Head(ctx, "missing"); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected ErrNotFound from head, got %v", err)
	}
	if _, _, err := store.Get(ctx, "missing"); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected ErrNotFound from get, got %v", err)
	}
	if ok, err := store.Delete(ctx, "missing"); err != nil || ok {
		t.Fatalf("expected delete false, got %v %v", ok, err)
	}
}

func TestStorePutGetOverwrite(t *testing.T) {
	store := New()
	ctx := context.Background()
	meta := map[string]string{"kind": "seed"}
	info, err := store.Put(ctx, "catalog/seed.yaml", bytes.NewBufferString("v1"), core.PutOptions{ContentType: "application/yaml", Metadata: meta})
	if err != nil {
		t.Fatalf("put: %v", err)
	}
	meta["kind"] = "mutated"
	if info.Size != 2 || info.ETag == "" {
		t.Fatalf("unexpected info %+v", info)
	}
	if _, err := store.Put(ctx, "catalog/seed.yaml", bytes.NewBufferString("v2"), core.PutOptions{}); !errors.Is(err, core.ErrExists) {
		t.Fatalf("expected ErrExists, got %v", err)
	}
	if _, err := store.Put(ctx, "catalog/seed.yaml", bytes.NewBufferString("v2!"), core.PutOptions{Overwrite: true}); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	got, rc, err := store.Get(ctx, "catalog/seed.yaml")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer func() { _ = rc.Close() }()
	body, _ := io.ReadAll(rc)
	if string(body) != "v2!" || got.Size != 3 {
		t.Fatalf("unexpected content %q size %d", body, got.Size)
	}
	if got.Metadata != nil {
		t.Fatalf("overwrite should replace metadata, got %v", got.Metadata)
	}
}

func TestStoreListPrefix(t *testing.T) {
	store := New()
	ctx := context.Background()
	for _, k := range []string{"contact/b", "contact/a", "status/1"} {
		if _, err := store.Put(ctx, k, bytes.NewBufferString(k), core.PutOptions{}); err != nil {
			t.Fatalf("put %s: %v", k, err)
		}
	}
	list, err := store.List(ctx, "contact/")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 || list[0].Key != "contact/a" || list[1].Key != "contact/b" {
		t.Fatalf("unexpected listing %+v", list)
	}
	all, _ := store.List(ctx, "")
	if len(all) != 3 {
		t.Fatalf("expected 3 blobs, got %d", len(all))
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, fmt.Errorf("fail") }

func TestStorePutErrors(t *testing.T) {
	store := New()
	if store.Driver() != core.DriverMemory {
		t.Fatalf("expected memory driver")
	}
	if _, err := store.Put(context.Background(), "bad", failingReader{}, core.PutOptions{}); err == nil {
		t.Fatalf("expected read error")
	}
	if _, err := store.Put(context.Background(), " ", bytes.NewBufferString("x"), core.PutOptions{}); err == nil {
		t.Fatalf("expected empty key error")
	}
}
