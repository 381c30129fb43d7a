package pipeline

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"declaration_audit/pkg/core/diff"
	"declaration_audit/pkg/core/entity"
	"declaration_audit/pkg/core/ingest"
	"declaration_audit/pkg/core/parse"
	"declaration_audit/pkg/core/report"
	"declaration_audit/pkg/core/sequence"
	"declaration_audit/pkg/core/store"
	"declaration_audit/pkg/models"
)

// FilingSource retrieves declaration cards and bodies.
// Implementations may fetch from:
// - Live registry API
// - Local document cache
// - Test fixtures
type FilingSource interface {
	ListFilings(ctx context.Context, fullName string) (*models.FilingList, error)
	FetchFiling(ctx context.Context, id string) ([]byte, error)
}

// Orchestrator manages the end-to-end audit flow:
// List -> Sequence -> Fetch+Parse -> Compare -> Report -> Storage.
type Orchestrator struct {
	source       FilingSource
	repo         store.AuditRepository
	fetchWorkers int
}

// NewOrchestrator creates an orchestrator over the given filing source.
// Reports are not persisted unless SetRepository is called.
func NewOrchestrator(source FilingSource) *Orchestrator {
	return &Orchestrator{
		source:       source,
		fetchWorkers: 4,
	}
}

// SetRepository allows injecting a report repository (e.g., for testing).
func (o *Orchestrator) SetRepository(repo store.AuditRepository) {
	o.repo = repo
}

// SetFetchWorkers bounds the number of concurrent document fetches.
func (o *Orchestrator) SetFetchWorkers(n int) {
	if n > 0 {
		o.fetchWorkers = n
	}
}

// CheckPerson runs the full audit for one declarant. declarantID narrows the
// card list when several people share the name; pass 0 to skip the filter, in
// which case an ambiguous list is an error rather than a merged history.
func (o *Orchestrator) CheckPerson(ctx context.Context, fullName string, declarantID int) (*report.Report, error) {
	log.Printf("Starting audit for %s...", fullName)
	start := time.Now()

	list, err := o.source.ListFilings(ctx, fullName)
	if err != nil {
		return nil, err
	}

	decls := make([]*entity.Declaration, 0, len(list.Data))
	for _, card := range list.Data {
		decls = append(decls, entity.NewDeclaration(
			int(card.DeclarationType),
			card.ID,
			int(card.UserDeclarantID),
			card.Date,
			int(card.DeclarationYear),
			int(card.Type),
			card.CorruptionAffected,
		))
	}

	if declarantID != 0 {
		decls = sequence.FilterByDeclarant(decls, declarantID)
	}
	if err := sequence.GuardNamesakes(decls); err != nil {
		return nil, err
	}

	rep := report.New(fullName)

	majors := sequence.DropSuperseded(sequence.SortedMajors(decls))
	if len(majors) == 0 {
		rep.AddRisk(report.LevelTop, report.HighRisk, "Декларацій не знайдено")
		o.persist(ctx, fullName, declarantID, rep)
		return rep, nil
	}
	rep.SetPeriod(majors[0].Year, majors[len(majors)-1].Year)

	if err := o.populateAll(ctx, majors); err != nil {
		return nil, err
	}

	// Each comparison is independent once the declarations are parsed;
	// results are collected by index so the report stays chronological.
	results := make([]*diff.Result, len(majors))
	g, _ := errgroup.WithContext(ctx)
	for i := range majors {
		i := i
		g.Go(func() error {
			prev := majors[i]
			if i > 0 {
				prev = majors[i-1]
			}
			res, err := diff.Compare(prev, majors[i], ingest.DeclarationViewURL(majors[i].ID))
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	for _, res := range results {
		rep.Append(res.Findings)
	}

	for _, minor := range sequence.SortedMinors(decls) {
		rep.AddLinked(report.LevelTop,
			fmt.Sprintf("Повідомлення про суттєві зміни у майновому стані від %s.", minor.SubmitDate),
			ingest.DeclarationViewURL(minor.ID))
	}

	o.persist(ctx, fullName, declarantID, rep)
	log.Printf("Audit completed for %s in %v (%d declarations)", fullName, time.Since(start), len(majors))
	return rep, nil
}

// CheckMany audits a list of declarants. A failed audit is reported in place
// of its result and does not abort the batch.
func (o *Orchestrator) CheckMany(ctx context.Context, fullNames []string) []*report.Report {
	reports := make([]*report.Report, 0, len(fullNames))
	for _, name := range fullNames {
		rep, err := o.CheckPerson(ctx, name, 0)
		if err != nil {
			log.Printf("Warning: audit failed for %s: %v", name, err)
			rep = report.New(name)
			rep.AddRisk(report.LevelTop, report.HighRisk, fmt.Sprintf("Перевірку не завершено: %v", err))
		}
		reports = append(reports, rep)
	}
	return reports
}

// populateAll fetches and parses declaration bodies concurrently, bounded by
// fetchWorkers. Declarations are mutated in place.
func (o *Orchestrator) populateAll(ctx context.Context, decls []*entity.Declaration) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.fetchWorkers)
	for _, decl := range decls {
		decl := decl
		g.Go(func() error {
			body, err := o.source.FetchFiling(gctx, decl.ID)
			if err != nil {
				return err
			}
			if err := parse.PopulateDeclaration(decl, body); err != nil {
				return fmt.Errorf("parsing declaration %s: %w", decl.ID, err)
			}
			return nil
		})
	}
	return g.Wait()
}

// persist saves the finished report when a repository is configured. Storage
// failure does not invalidate the audit itself.
func (o *Orchestrator) persist(ctx context.Context, fullName string, declarantID int, rep *report.Report) {
	if o.repo == nil {
		return
	}
	key := ingest.UnifyName(fullName)
	if declarantID != 0 {
		key = strconv.Itoa(declarantID)
	}
	if err := o.repo.Save(ctx, key, rep); err != nil {
		log.Printf("Warning: failed to store report for %s: %v", fullName, err)
	}
}
