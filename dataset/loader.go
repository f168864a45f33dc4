// Package dataset - loads detection dumps from disk into the shape the
// evaluator consumes.
package dataset

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"

	"github.com/nvr-ai/go-eval/boxes"
	"github.com/nvr-ai/go-eval/metrics"
)

// PredictionRecord is one predicted box with its confidence score.
type PredictionRecord struct {
	// Box is [cx, cy, cz, dx, dy, dz, yaw].
	Box   []float32 `json:"box"`
	Score float32   `json:"score"`
}

// File is the on-disk document: boxes grouped by class, then image ID.
// Ground-truth boxes use the same 7-value layout as prediction boxes.
type File struct {
	GroundTruth map[string]map[string][][]float32        `json:"ground_truth"`
	Predictions map[string]map[string][]PredictionRecord `json:"predictions"`
}

// Set holds a loaded dataset in the evaluator's input shape.
type Set struct {
	preds map[string]map[string][]metrics.Detection
	gts   map[string]map[string][]any
}

func newSet() *Set {
	return &Set{
		preds: make(map[string]map[string][]metrics.Detection),
		gts:   make(map[string]map[string][]any),
	}
}

// Predictions returns the predictions keyed by class, then image ID.
func (s *Set) Predictions() map[string]map[string][]metrics.Detection {
	return s.preds
}

// GroundTruth returns the ground-truth boxes keyed by class, then
// image ID.
func (s *Set) GroundTruth() map[string]map[string][]any {
	return s.gts
}

// Classes returns the sorted class names present in the ground truth.
func (s *Set) Classes() []string {
	classes := make([]string, 0, len(s.gts))
	for class := range s.gts {
		classes = append(classes, class)
	}
	sort.Strings(classes)
	return classes
}

// Load reads a single JSON detection dump.
//
// Arguments:
//   - path: Path to a .json file in the File layout.
//
// Returns:
//   - *Set: The loaded dataset.
//   - error: Read, parse or validation failure.
func Load(path string) (*Set, error) {
	set := newSet()
	if err := set.merge(path); err != nil {
		return nil, err
	}
	return set, nil
}

// LoadDir reads every .json file in dir and merges them in name order,
// so per-scene dumps can be split across files.
func LoadDir(dir string) (*Set, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrap(err, "read dataset directory")
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	if len(names) == 0 {
		return nil, errors.Errorf("no .json files in %s", dir)
	}

	set := newSet()
	for _, name := range names {
		if err := set.merge(filepath.Join(dir, name)); err != nil {
			return nil, err
		}
	}
	return set, nil
}

func (s *Set) merge(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrap(err, "read dataset file")
	}

	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		return errors.Wrapf(err, "parse %s", path)
	}

	for class, imgs := range f.GroundTruth {
		for img, rows := range imgs {
			for _, row := range rows {
				box, err := parseBox(row)
				if err != nil {
					return errors.Wrapf(err, "%s: ground truth %s/%s", path, class, img)
				}
				if s.gts[class] == nil {
					s.gts[class] = make(map[string][]any)
				}
				s.gts[class][img] = append(s.gts[class][img], box)
			}
		}
	}

	for class, imgs := range f.Predictions {
		for img, recs := range imgs {
			for _, rec := range recs {
				box, err := parseBox(rec.Box)
				if err != nil {
					return errors.Wrapf(err, "%s: prediction %s/%s", path, class, img)
				}
				if rec.Score < 0 || rec.Score > 1 {
					return errors.Errorf("%s: prediction %s/%s: score %v outside [0,1]",
						path, class, img, rec.Score)
				}
				if s.preds[class] == nil {
					s.preds[class] = make(map[string][]metrics.Detection)
				}
				s.preds[class][img] = append(s.preds[class][img], metrics.Detection{
					Box:   box,
					Score: rec.Score,
				})
			}
		}
	}

	return nil
}

func parseBox(row []float32) (boxes.Box3D, error) {
	if len(row) != 7 {
		return boxes.Box3D{}, errors.Errorf("box needs 7 values [cx cy cz dx dy dz yaw], got %d", len(row))
	}
	if row[3] <= 0 || row[4] <= 0 || row[5] <= 0 {
		return boxes.Box3D{}, errors.Errorf("box extents must be positive, got %v", row[3:6])
	}
	return boxes.Box3D{
		X: row[0], Y: row[1], Z: row[2],
		Dx: row[3], Dy: row[4], Dz: row[5],
		Yaw: row[6],
	}, nil
}
