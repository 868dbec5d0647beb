package layout

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/jackzampolin/docaudit/internal/model"
)

// labelsSchema validates the layout-label file shape before any label is
// trusted. A file that fails validation is a configuration error.
const labelsSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["pages"],
  "properties": {
    "pages": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["page_index", "labels"],
        "properties": {
          "page_index": {"type": "integer", "minimum": 0},
          "labels": {
            "type": "array",
            "items": {
              "type": "object",
              "required": ["bbox", "label"],
              "properties": {
                "bbox": {
                  "type": "object",
                  "required": ["x", "y", "width", "height"],
                  "properties": {
                    "x": {"type": "number"},
                    "y": {"type": "number"},
                    "width": {"type": "number"},
                    "height": {"type": "number"}
                  }
                },
                "label": {"enum": ["Text", "Title", "List", "Table", "Figure"]},
                "confidence": {"type": "number", "minimum": 0, "maximum": 1}
              }
            }
          }
        }
      }
    }
  }
}`

var compiledLabelsSchema = jsonschema.MustCompileString("labels.schema.json", labelsSchema)

// FileSource serves labels loaded from a JSON file produced by an
// external layout model run.
type FileSource struct {
	byPage map[int][]model.LayoutLabel
}

type labelsFile struct {
	Pages []struct {
		PageIndex int                 `json:"page_index"`
		Labels    []model.LayoutLabel `json:"labels"`
	} `json:"pages"`
}

// NewFileSource loads and validates a layout-label file.
func NewFileSource(path string) (*FileSource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read labels file: %w", err)
	}

	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("labels file is not valid JSON: %w", err)
	}
	if err := compiledLabelsSchema.Validate(raw); err != nil {
		return nil, fmt.Errorf("labels file failed schema validation: %w", err)
	}

	var lf labelsFile
	if err := json.Unmarshal(data, &lf); err != nil {
		return nil, fmt.Errorf("failed to decode labels file: %w", err)
	}

	fs := &FileSource{byPage: make(map[int][]model.LayoutLabel, len(lf.Pages))}
	for _, p := range lf.Pages {
		labels := make([]model.LayoutLabel, 0, len(p.Labels))
		for _, l := range p.Labels {
			// Schema already constrains the enum; guard anyway so a
			// future schema edit cannot leak unknown kinds downstream.
			if !l.Kind.Valid() {
				continue
			}
			labels = append(labels, l)
		}
		fs.byPage[p.PageIndex] = append(fs.byPage[p.PageIndex], labels...)
	}
	return fs, nil
}

// Labels returns the labels recorded for the page.
func (fs *FileSource) Labels(pageIndex int) []model.LayoutLabel {
	return fs.byPage[pageIndex]
}
