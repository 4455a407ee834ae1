package upload

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// DiskStore writes uploads under a local directory served at /uploads/.
type DiskStore struct {
	dir     string
	baseURL string
}

func NewDiskStore(dir string, baseURL string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("couldn't create upload dir: %v", err)
	}
	return &DiskStore{
		dir:     dir,
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}, nil
}

func (s *DiskStore) Save(
	_ context.Context,
	filename string,
	_ string,
	data io.Reader,
) (
	string,
	error,
) {
	base, ext := sanitizeName(filename)
	name := fmt.Sprintf("%s-%d%s", base, time.Now().UnixMilli(), ext)

	file, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrStoreFailed, err)
	}
	defer file.Close()

	if _, err := io.Copy(file, data); err != nil {
		return "", fmt.Errorf("%w: %v", ErrStoreFailed, err)
	}

	return s.baseURL + "/uploads/" + url.PathEscape(name), nil
}
