// Package fsutil provides file system safety primitives for vellum.
// It handles atomic writes, external modification detection, and backups
// for in-place document edits.
package fsutil

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"os"
	"time"
)

// Sentinel errors for error categorization via errors.Is.
var (
	// ErrNilStamp is returned when a nil Stamp is passed.
	ErrNilStamp = errors.New("nil Stamp")

	// ErrNotFound indicates the file does not exist.
	ErrNotFound = errors.New("file not found")

	// ErrPermissionDenied indicates a permission error.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrIsDirectory indicates the path is a directory, not a file.
	ErrIsDirectory = errors.New("path is a directory")
)

// Stamp captures the state of a file at the moment it was read.
// Compare against it later to detect external modification before
// writing edits back.
type Stamp struct {
	// Path is the absolute or relative path to the file.
	Path string

	// Mode is the file's permission and mode bits.
	Mode os.FileMode

	// ModTime is the file's modification time.
	ModTime time.Time

	// Size is the file size in bytes.
	Size int64

	// Hash is the SHA-256 hash of the file content.
	Hash [32]byte
}

// ReadFile reads a file and returns its content along with a Stamp of its
// state. Pass the Stamp to Modified before writing back.
func ReadFile(ctx context.Context, path string) ([]byte, *Stamp, error) {
	select {
	case <-ctx.Done():
		return nil, nil, fmt.Errorf("read file: %w", ctx.Err())
	default:
	}

	stat, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, fmt.Errorf("%w: %s: %w", ErrNotFound, path, err)
		}
		if os.IsPermission(err) {
			return nil, nil, fmt.Errorf("%w: %s: %w", ErrPermissionDenied, path, err)
		}
		return nil, nil, fmt.Errorf("stat %s: %w", path, err)
	}

	if stat.IsDir() {
		return nil, nil, fmt.Errorf("%w: %s", ErrIsDirectory, path)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsPermission(err) {
			return nil, nil, fmt.Errorf("%w: %s: %w", ErrPermissionDenied, path, err)
		}
		return nil, nil, fmt.Errorf("read %s: %w", path, err)
	}

	stamp := &Stamp{
		Path:    path,
		Mode:    stat.Mode(),
		ModTime: stat.ModTime(),
		Size:    stat.Size(),
		Hash:    sha256.Sum256(content),
	}

	return content, stamp, nil
}

// Modified returns true if the file has changed since the Stamp was taken.
// Used to refuse clobbering concurrent external edits.
//
// The check is two-tier:
//  1. Quick check: compare mod time and size (fast, catches most cases)
//  2. Hash check: re-read and hash content (catches all changes)
func Modified(ctx context.Context, stamp *Stamp) (bool, error) {
	if stamp == nil {
		return false, ErrNilStamp
	}

	select {
	case <-ctx.Done():
		return false, fmt.Errorf("check modified: %w", ctx.Err())
	default:
	}

	stat, err := os.Stat(stamp.Path)
	if err != nil {
		if os.IsNotExist(err) {
			// File was deleted - that's a modification.
			return true, nil
		}
		return false, fmt.Errorf("stat %s: %w", stamp.Path, err)
	}

	// Quick check: mod time and size.
	if !stat.ModTime().Equal(stamp.ModTime) || stat.Size() != stamp.Size {
		return true, nil
	}

	// Thorough check: re-hash the content.
	content, err := os.ReadFile(stamp.Path)
	if err != nil {
		return false, fmt.Errorf("read %s: %w", stamp.Path, err)
	}

	currentHash := sha256.Sum256(content)
	return currentHash != stamp.Hash, nil
}

// ModifiedQuick performs only the quick modification check (mod time + size).
// Use this when hash comparison is too expensive and false negatives are acceptable.
func ModifiedQuick(ctx context.Context, stamp *Stamp) (bool, error) {
	if stamp == nil {
		return false, ErrNilStamp
	}

	select {
	case <-ctx.Done():
		return false, fmt.Errorf("check modified: %w", ctx.Err())
	default:
	}

	stat, err := os.Stat(stamp.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return true, nil
		}
		return false, fmt.Errorf("stat %s: %w", stamp.Path, err)
	}

	return !stat.ModTime().Equal(stamp.ModTime) || stat.Size() != stamp.Size, nil
}
