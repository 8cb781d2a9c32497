// Package installer downloads, extracts and removes mod artifacts in an
// instance's mods directory.
package installer

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"go.fmods.dev/fmods/internal/core/domain"
	"go.trai.ch/zerr"
)

const defaultStorageURL = "https://mods-storage.re146.dev"

// Installer implements ports.Installer against the mod storage mirror. It
// runs strictly after planning and never feeds back into resolution.
type Installer struct {
	storageURL string
	client     *http.Client
	snapshot   *domain.Snapshot
}

// Option configures an Installer.
type Option func(*Installer)

// WithStorageURL overrides the artifact storage base URL. Used for testing.
func WithStorageURL(storageURL string) Option {
	return func(i *Installer) { i.storageURL = storageURL }
}

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(i *Installer) { i.client = client }
}

// New creates an installer bound to the given instance snapshot.
func New(snapshot *domain.Snapshot, opts ...Option) *Installer {
	i := &Installer{
		storageURL: defaultStorageURL,
		client:     http.DefaultClient,
		snapshot:   snapshot,
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Install downloads the mod archive for the given version and extracts it
// into the mods directory.
func (i *Installer) Install(ctx context.Context, modID string, version domain.Version) error {
	endpoint := i.storageURL + "/" + url.PathEscape(modID) + "/" + version.String() + ".zip"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return zerr.Wrap(err, "failed to build download request")
	}

	resp, err := i.client.Do(req)
	if err != nil {
		return zerr.With(errors.Join(domain.ErrDownloadFailed, err), "mod", modID)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return zerr.With(zerr.With(domain.ErrDownloadFailed, "mod", modID), "status", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return zerr.With(errors.Join(domain.ErrDownloadFailed, err), "mod", modID)
	}

	archive, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return zerr.With(errors.Join(domain.ErrDownloadFailed, err), "mod", modID)
	}

	for _, file := range archive.File {
		if err := i.extract(file); err != nil {
			return err
		}
	}

	return nil
}

// extract writes one archive entry below the mods directory, rejecting
// entries whose path would escape it.
func (i *Installer) extract(file *zip.File) error {
	root := filepath.Clean(i.snapshot.ModsDir)
	target := filepath.Join(root, file.Name) //nolint:gosec // escape checked below

	if target != root && !strings.HasPrefix(target, root+string(os.PathSeparator)) {
		return zerr.With(domain.ErrDownloadFailed, "entry", file.Name)
	}

	if file.FileInfo().IsDir() {
		return os.MkdirAll(target, 0o755)
	}

	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return zerr.Wrap(err, "failed to create mod directory")
	}

	src, err := file.Open()
	if err != nil {
		return zerr.Wrap(err, "failed to read archive entry")
	}
	defer func() { _ = src.Close() }()

	dst, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return zerr.Wrap(err, "failed to create mod file")
	}

	if _, err := io.Copy(dst, src); err != nil { //nolint:gosec // archives come from the trusted mirror
		_ = dst.Close()
		return zerr.Wrap(err, "failed to extract mod file")
	}

	return dst.Close()
}

// Remove deletes the installed mod's directories, both the versioned
// layout (<name>_<version>) and the bare one.
func (i *Installer) Remove(modID string) error {
	if installed, ok := i.snapshot.Installed(modID); ok {
		versioned := filepath.Join(i.snapshot.ModsDir, modID+"_"+installed.String())
		if err := os.RemoveAll(versioned); err != nil {
			return zerr.Wrap(err, "failed to remove mod directory")
		}
	}

	if err := os.RemoveAll(filepath.Join(i.snapshot.ModsDir, modID)); err != nil {
		return zerr.Wrap(err, "failed to remove mod directory")
	}

	return nil
}
