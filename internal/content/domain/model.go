package domain

import (
	"fmt"
	"strings"
)

// Entity is the shape a Collection works with. Implementations are plain
// value types; the With* methods return modified copies.
type Entity[T any] interface {
	Identifier() string
	ImageURL() string
	WithID(id string) T
	WithImageURL(url string) T
	Validate() error
}

// Project is a portfolio entry in the "projects" collection.
type Project struct {
	ID          string   `json:"id" mapstructure:"-"`
	Title       string   `json:"title" mapstructure:"title"`
	Description string   `json:"description" mapstructure:"description"`
	Features    string   `json:"features" mapstructure:"features"`
	Github      string   `json:"github" mapstructure:"github"`
	ImgLink     string   `json:"imgLink" mapstructure:"imgLink"`
	TechStack   []string `json:"techStack" mapstructure:"techStack"`
}

func (p Project) Identifier() string { return p.ID }
func (p Project) ImageURL() string   { return p.ImgLink }

func (p Project) WithID(id string) Project {
	p.ID = id
	return p
}

func (p Project) WithImageURL(url string) Project {
	p.ImgLink = url
	return p
}

func (p Project) Validate() error {
	if err := required("title", p.Title); err != nil {
		return err
	}
	return required("description", p.Description)
}

// Certificate is an entry in the "certificates" collection.
type Certificate struct {
	ID    string `json:"id" mapstructure:"-"`
	Name  string `json:"name" mapstructure:"name"`
	Image string `json:"image" mapstructure:"image"`
}

func (c Certificate) Identifier() string { return c.ID }
func (c Certificate) ImageURL() string   { return c.Image }

func (c Certificate) WithID(id string) Certificate {
	c.ID = id
	return c
}

func (c Certificate) WithImageURL(url string) Certificate {
	c.Image = url
	return c
}

func (c Certificate) Validate() error {
	return required("name", c.Name)
}

func required(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%w: %s", ErrRequiredField, field)
	}
	return nil
}
