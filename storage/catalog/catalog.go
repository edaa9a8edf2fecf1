package catalog

import (
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/jmog/academy/core/subject"
	appfs "github.com/jmog/academy/fs"
)

const catalogPath = "assets/catalog.yaml"

type catalogFile struct {
	Subjects []subject.Subject          `yaml:"subjects"`
	Content  map[string]subject.Content `yaml:"content"`
}

// Repository serves the subject catalog from the embedded YAML asset. The
// catalog is read once at startup and immutable afterwards.
type Repository struct {
	subjects []subject.Subject
	byID     map[string]subject.Subject
	content  map[string]subject.Content
}

var _ subject.Repository = (*Repository)(nil)

func NewRepository() (*Repository, error) {
	data, err := appfs.FS.ReadFile(catalogPath)
	if err != nil {
		return nil, errors.Wrap(err, "reading subject catalog")
	}

	var file catalogFile
	if err = yaml.Unmarshal(data, &file); err != nil {
		return nil, errors.Wrap(err, "parsing subject catalog")
	}

	repo := &Repository{
		subjects: file.Subjects,
		byID:     make(map[string]subject.Subject, len(file.Subjects)),
		content:  file.Content,
	}
	for _, sub := range file.Subjects {
		repo.byID[sub.ID] = sub
	}
	return repo, nil
}

func (repo *Repository) QueryAllSubjects() ([]subject.Subject, error) {
	out := make([]subject.Subject, len(repo.subjects))
	copy(out, repo.subjects)
	return out, nil
}

func (repo *Repository) GetSubjectByID(id string) (subject.Subject, error) {
	if sub, ok := repo.byID[id]; ok {
		return sub, nil
	}
	return subject.Subject{}, subject.ErrNotFound
}

func (repo *Repository) GetSubjectContent(id string) (subject.Content, error) {
	if _, ok := repo.byID[id]; !ok {
		return subject.Content{}, subject.ErrNotFound
	}
	return repo.content[id], nil
}
