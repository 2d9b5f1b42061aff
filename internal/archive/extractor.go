package archive

import (
	"archive/tar"
	"compress/gzip"
	"errors"
	"io"
	"os"
	"strings"

	"github.com/morikuni/failure/v2"
)

// Extract reads every regular member of the archive into memory and returns
// a mapping from member name to text content.
//
// Member names have a leading "./" removed. When a member name appears more
// than once the last occurrence wins. Bytes that are not valid UTF-8 are
// replaced with U+FFFD. The archive file is closed before Extract returns.
func Extract(ref Ref) (map[string]string, error) {
	f, err := os.Open(ref.Path)
	if err != nil {
		return nil, readError(ref, "cannot open archive", err)
	}
	defer f.Close()

	return ExtractFrom(ref, f)
}

// ExtractFrom is Extract over an already opened gzip stream.
// ref is only used in error context.
func ExtractFrom(ref Ref, r io.Reader) (map[string]string, error) {
	gz, err := gzip.NewReader(r)
	if err != nil {
		return nil, readError(ref, "archive is not a valid gzip stream", err)
	}
	defer gz.Close()

	files := make(map[string]string)
	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, readError(ref, "archive is not a valid tar stream", err)
		}
		if hdr.Typeflag != tar.TypeReg {
			continue
		}

		data, err := io.ReadAll(tr)
		if err != nil {
			return nil, readError(ref, "cannot read archive member", err)
		}
		files[memberName(hdr.Name)] = strings.ToValidUTF8(string(data), "\uFFFD")
	}
	return files, nil
}

// memberName normalizes a tar member name.
func memberName(name string) string {
	for strings.HasPrefix(name, "./") {
		name = strings.TrimPrefix(name, "./")
	}
	return name
}

func readError(ref Ref, msg string, err error) error {
	return failure.New(ErrArchiveRead,
		failure.Message(msg+": "+ref.Name()),
		failure.Context{
			"archive": ref.Path,
			"error":   err.Error(),
		},
	)
}
