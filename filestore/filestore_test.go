package filestore

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestDiskRoundTrip(t *testing.T) {
	dir := t.TempDir()
	disk, err := NewDisk(dir, "http://localhost:8082")
	if err != nil {
		t.Fatalf("NewDisk: %v", err)
	}

	ctx := context.Background()
	content := []byte("image bytes")
	if err := disk.Upload(ctx, "abc123", bytes.NewReader(content)); err != nil {
		t.Fatalf("Upload: %v", err)
	}

	stored, err := os.ReadFile(filepath.Join(dir, "abc123"))
	if err != nil {
		t.Fatalf("stored object missing: %v", err)
	}
	if !bytes.Equal(stored, content) {
		t.Fatal("stored bytes differ from uploaded bytes")
	}

	if err := disk.Delete(ctx, "abc123"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "abc123")); !os.IsNotExist(err) {
		t.Fatal("object still present after delete")
	}
}

func TestDiskDeleteMissingObject(t *testing.T) {
	disk, err := NewDisk(t.TempDir(), "http://localhost:8082")
	if err != nil {
		t.Fatalf("NewDisk: %v", err)
	}
	if err := disk.Delete(context.Background(), "never-uploaded"); err != nil {
		t.Fatalf("deleting a missing object should be a no-op, got %v", err)
	}
	if err := disk.Delete(context.Background(), ""); err != nil {
		t.Fatalf("deleting an empty name should be a no-op, got %v", err)
	}
}

func TestObjectURI(t *testing.T) {
	disk, err := NewDisk(t.TempDir(), "http://cdn.example.com")
	if err != nil {
		t.Fatalf("NewDisk: %v", err)
	}
	if got := disk.ObjectURI("abc123"); got != "http://cdn.example.com/static/abc123" {
		t.Fatalf("ObjectURI = %q", got)
	}
	if got := disk.ObjectURI(""); got != "" {
		t.Fatalf("empty name should resolve to empty URI, got %q", got)
	}
}
