package archive

import (
	"archive/tar"
	"compress/gzip"
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/morikuni/failure/v2"
)

// File is one member to store in a new archive.
type File struct {
	// Name is the member name, e.g. "sample_page.md".
	Name string

	// Content is the member body.
	Content []byte
}

// Create writes files into a new archive in dir named after now and returns
// a Ref to it. Members are stored in the given order. Create refuses to
// overwrite an existing archive and removes a partially written one.
func Create(dir string, now time.Time, files []File) (ref Ref, err error) {
	path := filepath.Join(dir, FormatName(now))
	ref, _ = NewRef(path)

	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644) //nolint:gosec // archives are meant to be shared
	if err != nil {
		return Ref{}, writeError(path, "cannot create archive", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = writeError(path, "cannot close archive", cerr)
		}
		if err != nil {
			_ = os.Remove(path)
			ref = Ref{}
		}
	}()

	gz := gzip.NewWriter(f)
	tw := tar.NewWriter(gz)
	for _, file := range files {
		hdr := &tar.Header{
			Typeflag: tar.TypeReg,
			Name:     file.Name,
			Mode:     0o644,
			Size:     int64(len(file.Content)),
			ModTime:  now,
		}
		if err := tw.WriteHeader(hdr); err != nil {
			return Ref{}, writeError(path, "cannot write archive member header", err)
		}
		if _, err := tw.Write(file.Content); err != nil {
			return Ref{}, writeError(path, "cannot write archive member", err)
		}
	}
	if err := errors.Join(tw.Close(), gz.Close()); err != nil {
		return Ref{}, writeError(path, "cannot finish archive", err)
	}
	return ref, nil
}

func writeError(path, msg string, err error) error {
	return failure.New(ErrArchiveWrite,
		failure.Message(msg),
		failure.Context{
			"archive": path,
			"error":   err.Error(),
		},
	)
}
