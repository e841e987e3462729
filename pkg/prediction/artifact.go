package prediction

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/dsnet/compress/bzip2"
	"github.com/lintang-b-s/compassx/pkg/util"
)

type artifactReader struct {
	*bufio.Reader
	closers []io.Closer
}

func (ar *artifactReader) Close() error {
	var firstErr error
	for i := len(ar.closers) - 1; i >= 0; i-- {
		if err := ar.closers[i].Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// openArtifact opens a model artifact, decompressing it when the name ends with .bz2.
func openArtifact(path string) (*artifactReader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, util.WrapErrorf(err, util.ErrBuild, "cannot open model artifact %s", path)
	}
	if !strings.HasSuffix(path, ".bz2") {
		return &artifactReader{Reader: bufio.NewReader(f), closers: []io.Closer{f}}, nil
	}

	bz, err := bzip2.NewReader(f, nil)
	if err != nil {
		f.Close()
		return nil, util.WrapErrorf(err, util.ErrBuild, "cannot decompress model artifact %s", path)
	}
	return &artifactReader{Reader: bufio.NewReader(bz), closers: []io.Closer{f, bz}}, nil
}

// createArtifact creates a model artifact, compressing it when the name ends with .bz2.
func createArtifact(path string) (*bufio.Writer, func() error, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	if !strings.HasSuffix(path, ".bz2") {
		w := bufio.NewWriter(f)
		return w, func() error {
			if err := w.Flush(); err != nil {
				f.Close()
				return err
			}
			return f.Close()
		}, nil
	}

	bz, err := bzip2.NewWriter(f, &bzip2.WriterConfig{})
	if err != nil {
		f.Close()
		return nil, nil, err
	}
	w := bufio.NewWriter(bz)
	return w, func() error {
		if err := w.Flush(); err != nil {
			bz.Close()
			f.Close()
			return err
		}
		if err := bz.Close(); err != nil {
			f.Close()
			return err
		}
		return f.Close()
	}, nil
}

// nextFields reads the next non-empty, non-comment line of the artifact.
func nextFields(br *bufio.Reader) ([]string, error) {
	for {
		line, err := util.ReadLine(br)
		if err != nil {
			return nil, err
		}
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		return util.Fields(line), nil
	}
}
