package source

import (
	"archive/tar"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/klauspost/compress/gzip"

	"github.com/matzehuels/apkgraph/pkg/apkindex"
	apperrors "github.com/matzehuels/apkgraph/pkg/errors"
	"github.com/matzehuels/apkgraph/pkg/httputil"
	"github.com/matzehuels/apkgraph/pkg/observability"
)

const (
	indexMember  = "APKINDEX"
	indexArchive = "APKINDEX.tar.gz"
	userAgent    = "apkgraph/1.0 (+https://github.com/matzehuels/apkgraph)"
)

// LoadOptions configures [Load].
type LoadOptions struct {
	// TestMode treats location as a local test repository file that must
	// exist: a TOML fixture (.toml) or a plain text index.
	TestMode bool
	// Timeout bounds the HTTP download (default httputil.DefaultTimeout).
	Timeout time.Duration
	// Client overrides the HTTP client (tests).
	Client *httputil.Client
}

// Load reads a repository index from location and returns a source over it.
//
// location may be an http(s) URL of a repository directory (APKINDEX.tar.gz
// is appended) or of the index itself, a local directory containing
// APKINDEX.tar.gz or APKINDEX, a .tar.gz archive, or a plain text index.
//
// Failures to obtain or parse the index wrap [ErrSourceUnavailable]. In test
// mode a missing file is reported as FILE_NOT_FOUND instead.
func Load(ctx context.Context, location string, opts LoadOptions) (*IndexSource, error) {
	hooks := observability.Source()
	ctx = hooks.OnFetchStart(ctx, location)
	start := time.Now()

	src, err := load(ctx, location, opts)

	n := 0
	if src != nil {
		n = src.Len()
	}
	hooks.OnFetchComplete(ctx, location, n, time.Since(start), err)
	return src, err
}

func load(ctx context.Context, location string, opts LoadOptions) (*IndexSource, error) {
	if opts.TestMode {
		return loadTestRepository(location)
	}
	if isURL(location) {
		return loadURL(ctx, location, opts)
	}
	return loadPath(location)
}

func loadTestRepository(path string) (*IndexSource, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeFileNotFound, err, "test repository file not found: %s", path)
	}
	if info.IsDir() {
		return nil, apperrors.New(apperrors.ErrCodeFileNotFound, "test repository must be a file: %s", path)
	}
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return LoadFixture(path)
	}
	return loadFile(path)
}

func loadURL(ctx context.Context, location string, opts LoadOptions) (*IndexSource, error) {
	client := opts.Client
	if client == nil {
		client = httputil.NewClient(opts.Timeout, map[string]string{"User-Agent": userAgent})
	}
	u := indexURL(location)
	data, err := client.Download(ctx, u)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, unavailable(u, err)
	}
	pkgs, err := decode(data)
	if err != nil {
		return nil, unavailable(u, err)
	}
	return NewIndexSource(pkgs), nil
}

func loadPath(path string) (*IndexSource, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, unavailable(path, err)
	}
	if !info.IsDir() {
		return loadFile(path)
	}
	for _, name := range []string{indexArchive, indexMember} {
		candidate := filepath.Join(path, name)
		if _, err := os.Stat(candidate); err == nil {
			return loadFile(candidate)
		}
	}
	return nil, unavailable(path, fmt.Errorf("no %s or %s in directory", indexArchive, indexMember))
}

func loadFile(path string) (*IndexSource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, unavailable(path, err)
	}
	pkgs, err := decode(data)
	if err != nil {
		return nil, unavailable(path, err)
	}
	return NewIndexSource(pkgs), nil
}

// decode parses data as a gzip'd tar archive holding an APKINDEX member,
// or as plain index text when it does not start with the gzip magic.
func decode(data []byte) ([]apkindex.Package, error) {
	if len(data) >= 2 && data[0] == 0x1f && data[1] == 0x8b {
		return extractIndex(bytes.NewReader(data))
	}
	return apkindex.Parse(bytes.NewReader(data))
}

// extractIndex walks the archive for the APKINDEX member. Signed indexes
// are two concatenated gzip streams (signature, then content); the gzip
// reader's multistream mode presents them as one tar stream.
func extractIndex(r io.Reader) ([]apkindex.Package, error) {
	gz, err := gzip.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("open gzip: %w", err)
	}
	defer gz.Close()

	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("archive has no %s member", indexMember)
		}
		if err != nil {
			return nil, fmt.Errorf("read archive: %w", err)
		}
		if hdr.Name == indexMember {
			return apkindex.Parse(tr)
		}
	}
}

func unavailable(location string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrSourceUnavailable, location, err)
}

func isURL(location string) bool {
	return strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://")
}

// indexURL turns a repository URL into the URL of its index archive.
func indexURL(location string) string {
	u := strings.TrimRight(location, "/")
	if strings.HasSuffix(u, ".tar.gz") || strings.HasSuffix(u, "/"+indexMember) {
		return u
	}
	return u + "/" + indexArchive
}
