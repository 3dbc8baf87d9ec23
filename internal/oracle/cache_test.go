package oracle

import (
	"context"
	"path/filepath"
	"testing"
)

func TestDiskCacheReturnsCachedResponseWithoutCallingNext(t *testing.T) {
	dir := t.TempDir()
	inner := &Static{Response: "FROM node:20-alpine\n"}
	cache := NewDiskCache(inner, dir)

	ctx := context.Background()
	first, err := cache.AddMultistage(ctx, "FROM node:20\n", nil)
	if err != nil {
		t.Fatalf("AddMultistage() error: %v", err)
	}

	inner.Response = "this should never be returned"
	second, err := cache.AddMultistage(ctx, "FROM node:20\n", nil)
	if err != nil {
		t.Fatalf("AddMultistage() error: %v", err)
	}

	if first != second {
		t.Errorf("cached call returned %q, want %q", second, first)
	}
}

func TestDiskCachePersistsAcrossInstances(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	first := NewDiskCache(&Static{Response: "FROM node:20-alpine\n"}, dir)
	if _, err := first.AddMultistage(ctx, "FROM node:20\n", nil); err != nil {
		t.Fatalf("AddMultistage() error: %v", err)
	}

	second := NewDiskCache(&Static{Response: "should not be used"}, dir)
	resp, err := second.AddMultistage(ctx, "FROM node:20\n", nil)
	if err != nil {
		t.Fatalf("AddMultistage() error: %v", err)
	}
	if resp != "FROM node:20-alpine\n" {
		t.Errorf("second instance did not load the persisted cache: got %q", resp)
	}

	if _, err := filepath.Glob(filepath.Join(dir, "oracle-responses.json")); err != nil {
		t.Fatalf("Glob() error: %v", err)
	}
}

func TestDiskCacheDistinguishesScripts(t *testing.T) {
	dir := t.TempDir()
	inner := &Static{Response: "A"}
	cache := NewDiskCache(inner, dir)
	ctx := context.Background()

	if _, err := cache.AddMultistage(ctx, "FROM node:20\n", []ScriptInvocation{{Command: "start", Script: "node server.js"}}); err != nil {
		t.Fatalf("AddMultistage() error: %v", err)
	}

	inner.Response = "B"
	resp, err := cache.AddMultistage(ctx, "FROM node:20\n", []ScriptInvocation{{Command: "start", Script: "node index.js"}})
	if err != nil {
		t.Fatalf("AddMultistage() error: %v", err)
	}
	if resp != "B" {
		t.Errorf("expected a distinct cache key for different scripts, got cached %q", resp)
	}
}
