// Package fixture describes a board workspace dataset in YAML. The seed command
// and store tests load fixtures and write them through the store.
package fixture

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Fixture is a full dataset.
type Fixture struct {
	Workspaces []Workspace `yaml:"workspaces"`
}

// Workspace groups members and boards.
type Workspace struct {
	ID      string   `yaml:"id"`
	Slug    string   `yaml:"slug"`
	Name    string   `yaml:"name"`
	Members []string `yaml:"members"`
	Boards  []Board  `yaml:"boards"`
}

// Board is a board and its cards.
type Board struct {
	ID          string    `yaml:"id"`
	Name        string    `yaml:"name"`
	Description string    `yaml:"description"`
	Archived    bool      `yaml:"archived"`
	UpdatedAt   time.Time `yaml:"updated_at"`
	Cards       []Card    `yaml:"cards"`
}

// Card is a card with its associations and children. DueInHours is relative
// to the seed time and wins over DueAt when both are set.
type Card struct {
	ID          string       `yaml:"id"`
	Title       string       `yaml:"title"`
	Description string       `yaml:"description"`
	DueAt       *time.Time   `yaml:"due_at"`
	DueInHours  *int         `yaml:"due_in_hours"`
	Completed   bool         `yaml:"completed"`
	Archived    bool         `yaml:"archived"`
	UpdatedAt   time.Time    `yaml:"updated_at"`
	Labels      []string     `yaml:"labels"`
	Assignees   []string     `yaml:"assignees"`
	Comments    []Comment    `yaml:"comments"`
	Checklists  []Checklist  `yaml:"checklists"`
	Attachments []Attachment `yaml:"attachments"`
}

// Due resolves the card's due date against now.
func (c Card) Due(now time.Time) *time.Time {
	if c.DueInHours != nil {
		t := now.Add(time.Duration(*c.DueInHours) * time.Hour)
		return &t
	}
	return c.DueAt
}

// Comment is a comment on a card.
type Comment struct {
	ID        string    `yaml:"id"`
	Body      string    `yaml:"body"`
	UpdatedAt time.Time `yaml:"updated_at"`
}

// Checklist is a named checklist with items.
type Checklist struct {
	ID        string    `yaml:"id"`
	Name      string    `yaml:"name"`
	UpdatedAt time.Time `yaml:"updated_at"`
	Items     []Item    `yaml:"items"`
}

// Item is one checklist line.
type Item struct {
	ID        string    `yaml:"id"`
	Body      string    `yaml:"body"`
	Completed bool      `yaml:"completed"`
	UpdatedAt time.Time `yaml:"updated_at"`
}

// Attachment is a file reference on a card.
type Attachment struct {
	ID          string    `yaml:"id"`
	FileName    string    `yaml:"file_name"`
	ExternalURL string    `yaml:"external_url"`
	UpdatedAt   time.Time `yaml:"updated_at"`
}

// Load reads and parses a fixture file.
func Load(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture %s: %w", path, err)
	}
	f, err := Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("fixture %s: %w", path, err)
	}
	return f, nil
}

// Parse decodes a fixture and validates it.
func Parse(r io.Reader) (*Fixture, error) {
	var f Fixture
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && err != io.EOF {
		return nil, fmt.Errorf("parse fixture: %w", err)
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// Validate checks that every entity has an id and that ids are unique per kind.
func (f *Fixture) Validate() error {
	seen := map[string]map[string]struct{}{}
	check := func(kind, id string) error {
		if id == "" {
			return fmt.Errorf("%s: id is required", kind)
		}
		if seen[kind] == nil {
			seen[kind] = map[string]struct{}{}
		}
		if _, ok := seen[kind][id]; ok {
			return fmt.Errorf("%s %q: duplicate id", kind, id)
		}
		seen[kind][id] = struct{}{}
		return nil
	}

	for _, w := range f.Workspaces {
		if err := check("workspace", w.ID); err != nil {
			return err
		}
		if w.Slug == "" {
			return fmt.Errorf("workspace %q: slug is required", w.ID)
		}
		for _, b := range w.Boards {
			if err := check("board", b.ID); err != nil {
				return err
			}
			for _, c := range b.Cards {
				if err := check("card", c.ID); err != nil {
					return err
				}
				for _, m := range c.Comments {
					if err := check("comment", m.ID); err != nil {
						return err
					}
				}
				for _, k := range c.Checklists {
					if err := check("checklist", k.ID); err != nil {
						return err
					}
					for _, it := range k.Items {
						if err := check("checklist item", it.ID); err != nil {
							return err
						}
					}
				}
				for _, a := range c.Attachments {
					if err := check("attachment", a.ID); err != nil {
						return err
					}
				}
			}
		}
	}
	return nil
}
