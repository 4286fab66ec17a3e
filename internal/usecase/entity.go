package usecase

import (
	"context"
	"time"

	"github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"

	"github.com/ghana-siga/siga-igov/internal/domain"
	"github.com/ghana-siga/siga-igov/internal/repo"
	"github.com/ghana-siga/siga-igov/internal/seed"
	"github.com/ghana-siga/siga-igov/internal/synth"
)

// ResetResult reports the outcome of a destructive reseed.
type ResetResult struct {
	Message   string      `json:"message"`
	Counts    seed.Counts `json:"counts"`
	Created   int         `json:"created"`
	Attempted int         `json:"attempted"`
}

// EntityUseCase serves the entity registry and per-entity detail views.
type EntityUseCase struct {
	repo   repo.EntityRepo
	loader *seed.Loader
	log    *log.Helper
}

func NewEntityUseCase(repo repo.EntityRepo, loader *seed.Loader, logger log.Logger) *EntityUseCase {
	return &EntityUseCase{repo: repo, loader: loader, log: log.NewHelper(logger)}
}

// List returns every entity sorted by name ascending.
func (uc *EntityUseCase) List(ctx context.Context) ([]*domain.Entity, error) {
	return uc.repo.ListAll(ctx)
}

// Reset deletes all entities and reloads the full registry.
func (uc *EntityUseCase) Reset(ctx context.Context) (*ResetResult, error) {
	created, attempted, err := uc.loader.Reset(ctx)
	if err != nil {
		return nil, err
	}
	return &ResetResult{
		Message:   "Ghana entities database populated successfully",
		Counts:    seed.EntityCounts(),
		Created:   created,
		Attempted: attempted,
	}, nil
}

// Detail resolves one entity and its bounded relations. Resolution is
// layered: store first, then the hand-authored fallback set when the store is
// unreachable, then a minimal placeholder so the UI always gets a renderable
// shape. A reachable store with no matching row (and no fallback entry) is
// the only 404 path. Empty KPI/risk/compliance collections are backfilled
// with synthesized series before returning.
func (uc *EntityUseCase) Detail(ctx context.Context, id string) (*domain.EntityDetail, error) {
	detail, err := uc.repo.GetDetail(ctx, id)
	if err != nil {
		if fb, ok := fallbackEntities[id]; ok {
			uc.log.Warnf("serving fallback entity %s: %v", id, err)
			detail = fb()
		} else if errors.IsNotFound(err) {
			return nil, err
		} else {
			// Total failure: minimal placeholder with empty collections so the
			// UI never crashes on a malformed shape.
			uc.log.Errorf("store and fallback both missed for %s: %v", id, err)
			return placeholderEntity(id), nil
		}
	}
	uc.backfill(detail)
	return detail, nil
}

// backfill guarantees every relation collection is renderable: empty KPI,
// risk and compliance lists get synthesized series carrying the real entity
// identifier; the rest default to empty slices rather than null.
func (uc *EntityUseCase) backfill(d *domain.EntityDetail) {
	now := time.Now()
	key := d.EntityID
	if key == "" {
		key = d.ID
	}
	if len(d.KpiData) == 0 {
		d.KpiData = synth.KpiSeries(key, now, synth.KpiMonths)
	}
	if len(d.RiskScores) == 0 {
		d.RiskScores = synth.RiskSeries(key, now, synth.RiskQuarters)
	}
	if len(d.ComplianceLogs) == 0 {
		d.ComplianceLogs = synth.ComplianceChecklist(key, now)
	}
	if d.BoardMembers == nil {
		d.BoardMembers = []domain.BoardMember{}
	}
	if d.Dividends == nil {
		d.Dividends = []domain.Dividend{}
	}
	if d.Guarantees == nil {
		d.Guarantees = []domain.Guarantee{}
	}
}

func strptr(s string) *string { return &s }

// fallbackEntities is the small hand-authored set served when the store is
// unreachable, keyed by public entity id.
var fallbackEntities = map[string]func() *domain.EntityDetail{
	"soe-001": func() *domain.EntityDetail {
		return &domain.EntityDetail{
			Entity: domain.Entity{
				ID:              "soe-001",
				EntityID:        "soe-001",
				Name:            "Electricity Company of Ghana",
				Category:        domain.CategorySOE,
				Sector:          "Energy",
				ParentMinistry:  "Ministry of Energy",
				Status:          "ACTIVE",
				Website:         strptr("www.ecg.com.gh"),
				Description:     strptr("Ghana's primary electricity distribution company"),
				EstablishedDate: strptr("1963-02-01"),
			},
			BoardMembers: []domain.BoardMember{
				{ID: "bm1", EntityID: "soe-001", Name: "Kwame Nkrumah", Position: "Chairman", AppointedDate: "2020-01-15"},
				{ID: "bm2", EntityID: "soe-001", Name: "Ama Serwaa", Position: "Board Member", AppointedDate: "2021-03-20"},
			},
			Source: domain.SourceFallback,
		}
	},
	"jvc-001": func() *domain.EntityDetail {
		return &domain.EntityDetail{
			Entity: domain.Entity{
				ID:              "jvc-001",
				EntityID:        "jvc-001",
				Name:            "GOIL Company",
				Category:        domain.CategoryJVC,
				Sector:          "Oil & Gas",
				ParentMinistry:  "Ministry of Energy",
				Status:          "ACTIVE",
				Website:         strptr("www.goil.com.gh"),
				Description:     strptr("Petroleum products marketing joint venture"),
				EstablishedDate: strptr("1960-06-14"),
			},
			BoardMembers: []domain.BoardMember{
				{ID: "bm3", EntityID: "jvc-001", Name: "Kofi Mensah", Position: "Chairman", AppointedDate: "2019-06-10"},
			},
			Source: domain.SourceFallback,
		}
	},
	"ose-001": func() *domain.EntityDetail {
		return &domain.EntityDetail{
			Entity: domain.Entity{
				ID:              "ose-001",
				EntityID:        "ose-001",
				Name:            "Ghana Revenue Authority",
				Category:        domain.CategoryOSE,
				Sector:          "Revenue",
				ParentMinistry:  "Ministry of Finance",
				Status:          "ACTIVE",
				Website:         strptr("www.gra.gov.gh"),
				Description:     strptr("National revenue collection agency"),
				EstablishedDate: strptr("2009-12-31"),
			},
			Source: domain.SourceFallback,
		}
	},
}

// placeholderEntity is the last-resort shape: a sentinel-status entity the
// UI can render instead of an error body.
func placeholderEntity(id string) *domain.EntityDetail {
	return &domain.EntityDetail{
		Entity: domain.Entity{
			ID:          id,
			EntityID:    id,
			Name:        "Entity Data Unavailable",
			Category:    "UNKNOWN",
			Sector:      "Unknown",
			Status:      "ERROR",
			Description: strptr("Unable to load entity details due to server limitations"),
		},
		BoardMembers:   []domain.BoardMember{},
		RiskScores:     []domain.RiskScore{},
		ComplianceLogs: []domain.ComplianceLog{},
		KpiData:        []domain.KpiData{},
		Dividends:      []domain.Dividend{},
		Guarantees:     []domain.Guarantee{},
		Source:         domain.SourceSynthesized,
	}
}
