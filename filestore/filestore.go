// Package filestore is the object storage boundary for item images. The
// core never inspects bytes; it hands over an opaque name and later
// resolves a displayable URI.
package filestore

import (
	"bytes"
	"context"
	"fmt"
	"image/jpeg"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"

	"github.com/tech-manthan/mernspace-catalog-service/apperror"
)

type Storage interface {
	Upload(ctx context.Context, name string, file io.Reader) error
	Delete(ctx context.Context, name string) error
	ObjectURI(name string) string
}

// Disk stores objects under a local directory served as static files, with
// a jpeg thumbnail rendered next to each original.
type Disk struct {
	dir     string
	baseURL string
}

func NewDisk(dir, baseURL string) (*Disk, error) {
	if err := os.MkdirAll(filepath.Join(dir, "thumb"), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory %q: %w", dir, err)
	}
	return &Disk{dir: dir, baseURL: baseURL}, nil
}

func (d *Disk) Upload(ctx context.Context, name string, file io.Reader) error {
	buf, err := io.ReadAll(file)
	if err != nil {
		return apperror.Storage("failed to read image", err)
	}

	path := filepath.Join(d.dir, name)
	if err := os.WriteFile(path, buf, 0o644); err != nil {
		return apperror.Storage("failed to store image", err)
	}

	// Thumbnail failures don't fail the upload.
	if err := d.writeThumb(name, buf); err != nil {
		log.Printf("filestore: thumbnail for %s: %v", name, err)
	}
	return nil
}

func (d *Disk) writeThumb(name string, buf []byte) error {
	img, err := imaging.Decode(bytes.NewReader(buf))
	if err != nil {
		return err
	}

	thumb := imaging.Resize(img, 300, 0, imaging.Lanczos)
	out, err := os.Create(filepath.Join(d.dir, "thumb", name+".jpg"))
	if err != nil {
		return err
	}
	defer out.Close()

	return jpeg.Encode(out, thumb, &jpeg.Options{Quality: 85})
}

func (d *Disk) Delete(ctx context.Context, name string) error {
	if name == "" {
		return nil
	}
	if err := os.Remove(filepath.Join(d.dir, name)); err != nil && !os.IsNotExist(err) {
		return apperror.Storage("failed to delete image", err)
	}
	os.Remove(filepath.Join(d.dir, "thumb", name+".jpg"))
	return nil
}

func (d *Disk) ObjectURI(name string) string {
	if name == "" {
		return ""
	}
	return d.baseURL + "/static/" + name
}
