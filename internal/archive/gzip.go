// Package archive expands the gzip-compressed dataset files in place.
package archive

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"

	"github.com/JonMunkholm/imdbsql/internal/logging"
)

// UnzipDir expands every regular *.gz file in dir next to itself, with the
// .gz suffix removed, and returns the written paths in directory order.
// Existing destinations are overwritten.
func UnzipDir(ctx context.Context, dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read data directory %s: %w", dir, err)
	}

	var written []string
	for _, e := range entries {
		if !e.Type().IsRegular() || !strings.HasSuffix(e.Name(), ".gz") {
			continue
		}
		if err := ctx.Err(); err != nil {
			return written, err
		}

		src := filepath.Join(dir, e.Name())
		dst := strings.TrimSuffix(src, ".gz")
		logging.From(ctx).Info("unzipping", "src", src, "dst", dst)

		if err := UnzipFile(src, dst); err != nil {
			return written, err
		}
		written = append(written, dst)
	}
	return written, nil
}

// UnzipFile decompresses src into dst. The output goes to a temporary file
// in dst's directory and is renamed into place only when complete.
func UnzipFile(src, dst string) (err error) {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open %s: %w", src, err)
	}
	defer in.Close()

	zr, err := gzip.NewReader(in)
	if err != nil {
		return fmt.Errorf("invalid gzip %s: %w", src, err)
	}
	defer zr.Close()

	tmp, err := os.CreateTemp(filepath.Dir(dst), "."+filepath.Base(dst)+".*")
	if err != nil {
		return fmt.Errorf("create %s: %w", dst, err)
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmpName)
		}
	}()

	if _, err = io.Copy(tmp, zr); err != nil {
		return fmt.Errorf("invalid gzip %s: %w", src, err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", dst, err)
	}
	if err = os.Rename(tmpName, dst); err != nil {
		return fmt.Errorf("rename %s: %w", dst, err)
	}
	return nil
}
