// Package seed holds the static Ghana state-entity registry and the
// idempotent loader that populates an empty store from it.
package seed

import (
	"context"
	_ "embed"
	"sync"
	"time"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/ghana-siga/siga-igov/internal/domain"
	"github.com/ghana-siga/siga-igov/internal/repo"
)

// BatchSize bounds per-call load on the store during bulk inserts.
const BatchSize = 50

//go:embed ghana_entities.yaml
var rawDataset []byte

// Record is one entry of the embedded registry file.
type Record struct {
	EntityID        string `yaml:"entityId"`
	Name            string `yaml:"name"`
	Category        string `yaml:"category"`
	Sector          string `yaml:"sector"`
	ParentMinistry  string `yaml:"parentMinistry"`
	Status          string `yaml:"status"`
	ContactEmail    string `yaml:"contactEmail"`
	ContactPhone    string `yaml:"contactPhone"`
	Website         string `yaml:"website"`
	Description     string `yaml:"description"`
	EstablishedDate string `yaml:"establishedDate"`
}

// Counts summarises the registry per category.
type Counts struct {
	SOEs  int `json:"SOES"`
	JVCs  int `json:"JVCS"`
	OSEs  int `json:"OSES"`
	Total int `json:"TOTAL"`
}

var (
	decodeOnce sync.Once
	records    []Record
	decodeErr  error
)

// Entities decodes the embedded registry once and returns it.
func Entities() []Record {
	decodeOnce.Do(func() {
		var doc struct {
			Entities []Record `yaml:"entities"`
		}
		decodeErr = yaml.Unmarshal(rawDataset, &doc)
		records = doc.Entities
	})
	if decodeErr != nil {
		// The dataset is compiled in; a decode failure is a build defect.
		panic(decodeErr)
	}
	return records
}

// EntityCounts tallies the registry per category.
func EntityCounts() Counts {
	var c Counts
	for _, r := range Entities() {
		switch r.Category {
		case domain.CategorySOE:
			c.SOEs++
		case domain.CategoryJVC:
			c.JVCs++
		case domain.CategoryOSE:
			c.OSEs++
		}
		c.Total++
	}
	return c
}

// ToEntity converts a registry record into a storage entity, defaulting the
// optional contact fields to NULL and stamping timestamps.
func (r Record) ToEntity(now time.Time) *domain.Entity {
	e := &domain.Entity{
		ID:             uuid.NewString(),
		EntityID:       r.EntityID,
		Name:           r.Name,
		Category:       r.Category,
		Sector:         r.Sector,
		ParentMinistry: r.ParentMinistry,
		Status:         r.Status,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	e.ContactEmail = optional(r.ContactEmail)
	e.ContactPhone = optional(r.ContactPhone)
	e.Website = optional(r.Website)
	e.Description = optional(r.Description)
	e.EstablishedDate = optional(r.EstablishedDate)
	return e
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// Loader populates the store from the embedded registry.
type Loader struct {
	repo repo.EntityRepo
	log  *log.Helper
}

func NewLoader(repo repo.EntityRepo, logger log.Logger) *Loader {
	return &Loader{repo: repo, log: log.NewHelper(logger)}
}

// EnsureSeeded seeds the store when it holds no entities. Safe to call on
// every request: a non-zero count is a no-op. Store errors are logged and
// swallowed; callers proceed and rely on fallback data downstream.
func (l *Loader) EnsureSeeded(ctx context.Context) {
	n, err := l.repo.Count(ctx)
	if err != nil {
		l.log.Warnf("seed: count failed, skipping: %v", err)
		return
	}
	if n > 0 {
		return
	}
	if _, _, err := l.insertAll(ctx); err != nil {
		l.log.Warnf("seed: initial load failed: %v", err)
	}
}

// Reset deletes every entity then reloads the full registry. Returns how
// many rows were created and how many were attempted.
func (l *Loader) Reset(ctx context.Context) (created, attempted int, err error) {
	if err := l.repo.DeleteAll(ctx); err != nil {
		return 0, 0, err
	}
	return l.insertAll(ctx)
}

func (l *Loader) insertAll(ctx context.Context) (created, attempted int, err error) {
	all := Entities()
	now := time.Now()
	l.log.Infof("seed: loading %d Ghana entities in batches of %d", len(all), BatchSize)

	for start := 0; start < len(all); start += BatchSize {
		end := start + BatchSize
		if end > len(all) {
			end = len(all)
		}
		batch := make([]*domain.Entity, 0, end-start)
		for _, r := range all[start:end] {
			batch = append(batch, r.ToEntity(now))
		}
		n, err := l.repo.InsertBatch(ctx, batch)
		if err != nil {
			return created, len(all), err
		}
		created += n
	}
	l.log.Infof("seed: created %d of %d entities", created, len(all))
	return created, len(all), nil
}
