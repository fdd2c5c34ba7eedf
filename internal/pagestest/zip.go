package pagestest

import (
	"archive/zip"
	"io"
	"mime/multipart"
)

func readZip(open func() (multipart.File, error), size int64) (map[string][]byte, error) {
	f, err := open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	zr, err := zip.NewReader(f, size)
	if err != nil {
		return nil, err
	}
	files := make(map[string][]byte, len(zr.File))
	for _, entry := range zr.File {
		rc, err := entry.Open()
		if err != nil {
			return nil, err
		}
		content, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, err
		}
		files[entry.Name] = content
	}
	return files, nil
}
