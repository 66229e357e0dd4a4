package dataset

import (
	"archive/tar"
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path"
	"sort"
	"strings"
)

// IsArchive reports whether root names a tar file rather than a directory.
func IsArchive(root string) bool {
	st, err := os.Stat(root)
	return err == nil && st.Mode().IsRegular() && strings.HasSuffix(strings.ToLower(root), ".tar")
}

// LoadArchive reads a tar file laid out like a dataset root: members named
// <class>/<file> for each class in opts. Ordering and skip rules match Load;
// members in nested directories or unknown folders are ignored.
func LoadArchive(archive string, opts LoadOptions) (Dataset, error) {
	if opts.ImageSize <= 0 {
		return nil, fmt.Errorf("dataset: image size must be > 0 (got %d)", opts.ImageSize)
	}
	classes := opts.Classes
	if len(classes) == 0 {
		classes = DefaultClasses
	}
	index := make(map[string]int, len(classes))
	for i, c := range classes {
		index[c.Name] = i
	}

	f, err := os.Open(archive)
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}
	defer f.Close()

	members := make([][]archiveMember, len(classes))
	tr := tar.NewReader(bufio.NewReader(f))
	for {
		hdr, err := tr.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read tar: %w", err)
		}
		if !hdr.FileInfo().Mode().IsRegular() {
			continue
		}
		name := path.Clean(strings.TrimPrefix(hdr.Name, "./"))
		dir, file := path.Split(name)
		idx, ok := index[strings.TrimSuffix(dir, "/")]
		if !ok || file == "" {
			continue
		}
		data, err := io.ReadAll(tr)
		if err != nil {
			return nil, fmt.Errorf("read member %s: %w", name, err)
		}
		members[idx] = append(members[idx], archiveMember{name: name, data: data})
	}

	var data Dataset
	for idx, class := range classes {
		found := members[idx]
		if len(found) == 0 {
			log.Printf("warning: folder %q not found in %s", class.Name, archive)
			continue
		}
		sort.Slice(found, func(i, j int) bool { return found[i].name < found[j].name })

		count := 0
		for _, m := range found {
			input, err := DecodeFeatures(bytes.NewReader(m.data), opts.ImageSize)
			if err != nil {
				continue
			}
			data = append(data, Sample{
				Path:   archive + ":" + m.name,
				Input:  input,
				Target: []float64{class.Target},
			})
			count++
		}
		if count > 0 {
			log.Printf("folder=%q class_index=%d target=%g images=%d", archive+":"+class.Name, idx, class.Target, count)
		}
	}
	return data, nil
}

type archiveMember struct {
	name string
	data []byte
}
