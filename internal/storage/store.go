// Package storage provides the blob store the upload workflow writes
// documents to. The store is write-once: putting to a key that already holds
// an object fails with ErrObjectExists instead of silently replacing it.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"
)

// ErrObjectExists is returned by Put when the target key already holds an
// object. The timestamped key layout makes this practically impossible, but a
// collision is treated as a failure, never a replace.
var ErrObjectExists = errors.New("object already exists at key")

// BlobStore is the write-once object store contract consumed by the
// submission workflow.
type BlobStore interface {
	// Put streams size bytes from r to key. It must not overwrite an
	// existing object; implementations return ErrObjectExists in that case.
	Put(ctx context.Context, key, contentType string, r io.Reader, size int64) error
}

// ObjectKey builds the storage key for an upload:
//
//	{prefix}/{sanitized_email}_{epoch_millis}.{ext}
//
// Every non-alphanumeric rune of the email is replaced with '_' and the
// extension is taken from the original filename (without the dot), defaulting
// to "pdf" when the name has none.
func ObjectKey(prefix, email, filename string, now time.Time) string {
	var b strings.Builder
	for _, r := range email {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	ext := strings.TrimPrefix(filepath.Ext(filename), ".")
	if ext == "" {
		ext = "pdf"
	}
	name := fmt.Sprintf("%s_%d.%s", b.String(), now.UnixMilli(), ext)
	if prefix == "" {
		return name
	}
	return prefix + "/" + name
}
