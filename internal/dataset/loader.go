// Package dataset turns folders of labelled images into feature vectors.
package dataset

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"path/filepath"
)

// Sample is one labelled feature vector.
type Sample struct {
	Path   string
	Input  []float64
	Target []float64
}

// Dataset is an ordered, fully materialized list of samples.
type Dataset []Sample

// Class maps a subdirectory of the dataset root to its target value.
type Class struct {
	Name   string
	Target float64
}

// DefaultClasses is the two-folder layout: class_a is the positive class.
var DefaultClasses = []Class{
	{Name: "class_a", Target: 1},
	{Name: "class_b", Target: 0},
}

// LoadOptions configures Load.
type LoadOptions struct {
	Classes   []Class
	ImageSize int
}

// Load reads every decodable image under root/<class> for each class, in
// class order and then file name order.
//
// A class folder that is missing or unreadable is logged and skipped, and
// files that fail to decode are skipped silently, so the result may be
// empty. Only invalid options produce an error. A root naming a .tar file is
// read with LoadArchive instead.
func Load(root string, opts LoadOptions) (Dataset, error) {
	if IsArchive(root) {
		return LoadArchive(root, opts)
	}
	if opts.ImageSize <= 0 {
		return nil, fmt.Errorf("dataset: image size must be > 0 (got %d)", opts.ImageSize)
	}
	classes := opts.Classes
	if len(classes) == 0 {
		classes = DefaultClasses
	}

	var data Dataset
	for idx, class := range classes {
		folder := filepath.Join(root, class.Name)
		files, err := DiscoverFiles(folder)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				log.Printf("warning: folder %q does not exist", folder)
			} else {
				log.Printf("warning: folder %q skipped: %v", folder, err)
			}
			continue
		}

		count := 0
		for _, path := range files {
			input, err := FeaturesFromFile(path, opts.ImageSize)
			if err != nil {
				continue
			}
			data = append(data, Sample{
				Path:   path,
				Input:  input,
				Target: []float64{class.Target},
			})
			count++
		}
		if count > 0 {
			log.Printf("folder=%q class_index=%d target=%g images=%d", folder, idx, class.Target, count)
		}
	}
	return data, nil
}
