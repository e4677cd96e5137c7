package shards

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	. "github.com/cricklet/dobutsugo/internal/helpers"
)

var (
	ErrNotFound     = errors.New("tablebase file not found")
	ErrBadStatus    = errors.New("unexpected http status")
	ErrEmptyFile    = errors.New("tablebase file is empty")
	ErrUnknownShard = errors.New("unknown shard")
)

// Source fetches tablebase files by their path relative to the tablebase
// root, e.g. "maximums.dat" or "3/141.dat".
type Source interface {
	Fetch(ctx context.Context, path string) ([]byte, Error)
	String() string
}

type HTTPSource struct {
	BaseURL string
	Client  *http.Client
}

var _ Source = (*HTTPSource)(nil)

func NewHTTPSource(baseURL string) *HTTPSource {
	return &HTTPSource{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client:  &http.Client{Timeout: 30 * time.Second},
	}
}

func (s *HTTPSource) String() string {
	return s.BaseURL
}

func (s *HTTPSource) Fetch(ctx context.Context, path string) ([]byte, Error) {
	url := s.BaseURL + "/" + path

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, Wrap(err)
	}

	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, Errorf("fetching %v: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, Errorf("%w: %v", ErrNotFound, url)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, Errorf("%w %d: %v", ErrBadStatus, resp.StatusCode, url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, Errorf("reading %v: %w", url, err)
	}
	if len(body) == 0 {
		return nil, Errorf("%w: %v", ErrEmptyFile, url)
	}
	return body, NilError
}

// DirSource reads a local mirror of the tablebase.
type DirSource struct {
	Root string
}

var _ Source = (*DirSource)(nil)

func NewDirSource(root string) *DirSource {
	return &DirSource{Root: root}
}

func (s *DirSource) String() string {
	return s.Root
}

func (s *DirSource) Fetch(ctx context.Context, path string) ([]byte, Error) {
	if err := ctx.Err(); err != nil {
		return nil, Wrap(err)
	}

	fullPath := filepath.Join(s.Root, filepath.FromSlash(path))
	body, err := os.ReadFile(fullPath)
	if errors.Is(err, os.ErrNotExist) {
		return nil, Errorf("%w: %v", ErrNotFound, fullPath)
	}
	if err != nil {
		return nil, Errorf("reading %v: %w", fullPath, err)
	}
	if len(body) == 0 {
		return nil, Errorf("%w: %v", ErrEmptyFile, fullPath)
	}
	return body, NilError
}

// NewSource prefers a local mirror when dir is set.
func NewSource(url string, dir string) Source {
	if dir != "" {
		return NewDirSource(dir)
	}
	return NewHTTPSource(url)
}
