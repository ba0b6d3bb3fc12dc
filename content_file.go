package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// contentDocument is the on-disk layout of a content file. Skills is a
// mapping so the file reads naturally; its key order is the display order.
type contentDocument struct {
	Skills     skillCategories `yaml:"skills"`
	Projects   []Project       `yaml:"projects"`
	Experience []ResumeEntry   `yaml:"experience"`
	Education  []ResumeEntry   `yaml:"education"`
}

type skillCategories []SkillCategory

func (s *skillCategories) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: skills must map a category to its skill list", node.Line)
	}

	seen := make(map[string]bool, len(node.Content)/2)
	categories := make([]SkillCategory, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i], node.Content[i+1]
		if seen[key.Value] {
			return fmt.Errorf("line %d: duplicate skill category %q", key.Line, key.Value)
		}
		seen[key.Value] = true

		var skills []string
		if err := value.Decode(&skills); err != nil {
			return fmt.Errorf("skill category %q: %w", key.Value, err)
		}
		categories = append(categories, SkillCategory{Label: key.Value, Skills: skills})
	}

	*s = categories
	return nil
}

// LoadContentFile reads portfolio content from a YAML file.
func LoadContentFile(path string) (*StaticContentProvider, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read content file: %w", err)
	}

	var doc contentDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse content file %s: %w", path, err)
	}

	return NewStaticContentProvider(doc.Skills, doc.Projects, Resume{
		Experience: doc.Experience,
		Education:  doc.Education,
	}), nil
}
