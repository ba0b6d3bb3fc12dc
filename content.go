package main

import (
	"context"
	"slices"
)

// SkillCategory groups skill names under a display label.
type SkillCategory struct {
	Label  string   `yaml:"label"`
	Skills []string `yaml:"skills"`
}

// Project is one portfolio entry. Technologies, links and Category are optional.
type Project struct {
	Title        string   `yaml:"title"`
	Description  string   `yaml:"description"`
	Technologies []string `yaml:"technologies"`
	Image        string   `yaml:"image"`
	DemoURL      string   `yaml:"demo_url"`
	SourceURL    string   `yaml:"source_url"`
	Category     string   `yaml:"category"`
}

// ResumeEntry is shared by experience (role at company) and education
// (degree at institution).
type ResumeEntry struct {
	Title        string `yaml:"title"`
	Organization string `yaml:"organization"`
	Period       string `yaml:"period"`
	Description  string `yaml:"description"`
}

type Resume struct {
	Experience []ResumeEntry
	Education  []ResumeEntry
}

// ContentProvider is the read-only source of everything the pages display.
type ContentProvider interface {
	ListSkillCategories(ctx context.Context) ([]SkillCategory, error)
	ListProjects(ctx context.Context) ([]Project, error)
	ListResumeEntries(ctx context.Context) (Resume, error)
}

// StaticContentProvider serves content fixed at construction time. It never
// hands out its own slices, so callers may modify what they receive.
type StaticContentProvider struct {
	skills   []SkillCategory
	projects []Project
	resume   Resume
}

func NewStaticContentProvider(skills []SkillCategory, projects []Project, resume Resume) *StaticContentProvider {
	return &StaticContentProvider{
		skills:   cloneSkills(skills),
		projects: cloneProjects(projects),
		resume:   cloneResume(resume),
	}
}

func (p *StaticContentProvider) ListSkillCategories(context.Context) ([]SkillCategory, error) {
	return cloneSkills(p.skills), nil
}

func (p *StaticContentProvider) ListProjects(context.Context) ([]Project, error) {
	return cloneProjects(p.projects), nil
}

func (p *StaticContentProvider) ListResumeEntries(context.Context) (Resume, error) {
	return cloneResume(p.resume), nil
}

func cloneSkills(in []SkillCategory) []SkillCategory {
	out := make([]SkillCategory, len(in))
	for i, c := range in {
		out[i] = SkillCategory{Label: c.Label, Skills: slices.Clone(c.Skills)}
	}
	return out
}

func cloneProjects(in []Project) []Project {
	out := make([]Project, len(in))
	for i, p := range in {
		p.Technologies = slices.Clone(p.Technologies)
		out[i] = p
	}
	return out
}

func cloneResume(in Resume) Resume {
	return Resume{
		Experience: slices.Clone(in.Experience),
		Education:  slices.Clone(in.Education),
	}
}

// DefaultContent returns the built-in portfolio content.
func DefaultContent() *StaticContentProvider {
	skills := []SkillCategory{
		{Label: "Front-End", Skills: []string{"HTML", "CSS", "JavaScript", "React"}},
		{Label: "Back-End", Skills: []string{"Python", "Flask", "Node.js", "Express"}},
		{Label: "Databases", Skills: []string{"MongoDB", "PostgreSQL", "SQLite"}},
		{Label: "DevOps", Skills: []string{"Docker", "Git", "GitHub Actions"}},
	}

	projects := []Project{
		{
			Title:        "Project One",
			Description:  "A full-stack web application that does amazing things.",
			Technologies: []string{"Python", "Flask", "PostgreSQL", "React"},
			DemoURL:      "https://example.com/project-one",
			SourceURL:    "https://github.com/example/project-one",
			Category:     "fullstack",
		},
		{
			Title:        "Project Two",
			Description:  "A beautiful and responsive front-end design for a fictional company.",
			Technologies: []string{"HTML", "CSS", "JavaScript"},
			DemoURL:      "https://example.com/project-two",
			Category:     "frontend",
		},
		{
			Title:        "Project Three",
			Description:  "A robust and scalable REST API for a mobile application.",
			Technologies: []string{"Node.js", "Express", "MongoDB", "Docker"},
			SourceURL:    "https://github.com/example/project-three",
			Category:     "backend",
		},
	}

	resume := Resume{
		Experience: []ResumeEntry{
			{
				Title:        "Software Developer",
				Organization: "Tech Solutions Inc.",
				Period:       "2022 - Present",
				Description:  "Build and maintain customer-facing web applications and the REST services behind them.",
			},
			{
				Title:        "Junior Web Developer",
				Organization: "Creative Agency",
				Period:       "2020 - 2022",
				Description:  "Turned design mock-ups into responsive, accessible front-end pages.",
			},
		},
		Education: []ResumeEntry{
			{
				Title:        "Bachelor of Science in Computer Science",
				Organization: "State University",
				Period:       "2016 - 2020",
				Description:  "Coursework in data structures, algorithms, databases and web development.",
			},
		},
	}

	return NewStaticContentProvider(skills, projects, resume)
}
