package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/crux-triage/crux/internal/model"
)

// LoadBundle reads a round bundle from a JSON or YAML file. The format is
// chosen by extension; anything else is rejected rather than guessed.
func LoadBundle(path string) (*model.Bundle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read bundle: %w", err)
	}

	var bundle model.Bundle
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		if err := json.Unmarshal(data, &bundle); err != nil {
			return nil, fmt.Errorf("parse JSON bundle: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &bundle); err != nil {
			return nil, fmt.Errorf("parse YAML bundle: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported bundle format %q (use .json or .yaml)", filepath.Ext(path))
	}

	return &bundle, nil
}

// LoadAnswers reads a partition answer map from a JSON or YAML file.
func LoadAnswers(path string) (model.AnswerMap, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read answers: %w", err)
	}

	answers := make(model.AnswerMap)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		if err := json.Unmarshal(data, &answers); err != nil {
			return nil, fmt.Errorf("parse JSON answers: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &answers); err != nil {
			return nil, fmt.Errorf("parse YAML answers: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported answers format %q (use .json or .yaml)", filepath.Ext(path))
	}

	return answers, nil
}
