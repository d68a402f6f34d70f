package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed default_checklist.yaml
var defaultChecklistTemplate []byte

// TemplateItem is one checklist entry in a template document.
type TemplateItem struct {
	Category string `yaml:"category"`
	Task     string `yaml:"task"`
	Priority string `yaml:"priority"`
}

type checklistTemplate struct {
	Items []TemplateItem `yaml:"items"`
}

// LoadChecklistTemplate reads the checklist template at path, or the
// built-in template when path is empty.
func LoadChecklistTemplate(path string) ([]TemplateItem, error) {
	data := defaultChecklistTemplate
	if path != "" {
		loaded, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading checklist template: %w", err)
		}
		data = loaded
	}

	var template checklistTemplate
	if err := yaml.Unmarshal(data, &template); err != nil {
		return nil, fmt.Errorf("parsing checklist template: %w", err)
	}
	if len(template.Items) == 0 {
		return nil, fmt.Errorf("checklist template has no items")
	}

	for i, item := range template.Items {
		if item.Category == "" || item.Task == "" || item.Priority == "" {
			return nil, fmt.Errorf("checklist template item %d is missing a field", i+1)
		}
	}

	return template.Items, nil
}
