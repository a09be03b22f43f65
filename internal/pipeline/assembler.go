// Package pipeline orchestrates the content run: resolve fields out of a
// record, gate each one on sufficiency, augment the insufficient ones
// through the generative service, parse structure back out, synthesize
// FAQs and keywords, then hash, score and persist the bundle.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/bojo24/contentforge/internal/augment"
	"github.com/bojo24/contentforge/internal/extract"
	"github.com/bojo24/contentforge/internal/faq"
	"github.com/bojo24/contentforge/internal/length"
	"github.com/bojo24/contentforge/internal/model"
	"github.com/bojo24/contentforge/internal/resolve"
	"github.com/bojo24/contentforge/internal/store"
	"github.com/bojo24/contentforge/internal/unique"
)

// Assembler turns one BenefitRecord into one persisted OptimizedContent
// per content type. All policy (minimum lengths, augmentation gate, rate
// limits) comes in through the config; the assembler itself holds no
// ambient state.
type Assembler struct {
	resolver *resolve.Resolver
	invoker  *augment.Invoker
	records  store.RecordStore
	contents store.ContentStore
	ledger   store.HashLedger
	limiter  *rate.Limiter
	cfg      *model.Config
	now      func() time.Time
}

// NewAssembler wires the pipeline. The record store is wrapped in a
// read-through cache so a record fetched for "intro" is not re-read for
// the other content types.
func NewAssembler(cfg *model.Config, invoker *augment.Invoker, st store.Store) *Assembler {
	rps := cfg.Concurrency.AugmentRPS
	if rps <= 0 {
		rps = 0.5
	}
	burst := cfg.Concurrency.AugmentBurst
	if burst < 1 {
		burst = 1
	}
	if invoker == nil {
		invoker = augment.NewInvoker(nil, augment.Policy{}, false)
	}

	return &Assembler{
		resolver: resolve.NewResolver(),
		invoker:  invoker,
		records:  store.NewCachedRecords(st, cfg.Store.RecordCacheTTL),
		contents: st,
		ledger:   st,
		limiter:  rate.NewLimiter(rate.Limit(rps), burst),
		cfg:      cfg,
		now:      time.Now,
	}
}

// Result is the per-record outcome reported back to the batch runner.
// Duplicate and Skipped are not errors: they are normal "do not publish"
// signals.
type Result struct {
	RecordID    string
	ContentType model.ContentType
	Content     *model.OptimizedContent
	Duplicate   bool
	Skipped     bool
	Err         error
}

// Process runs the full pipeline for one (record, content type): load,
// assemble, claim the content hash, score uniqueness, persist. Existing
// content for the pair is left alone.
func (a *Assembler) Process(ctx context.Context, recordID string, ct model.ContentType) Result {
	res := Result{RecordID: recordID, ContentType: ct}

	rec, err := a.records.Record(ctx, recordID)
	if err != nil {
		res.Err = fmt.Errorf("load record %s: %w", recordID, err)
		return res
	}

	if _, err := a.contents.Content(ctx, recordID, ct); err == nil {
		res.Skipped = true
		return res
	} else if !errors.Is(err, store.ErrNotFound) {
		res.Err = fmt.Errorf("check existing content: %w", err)
		return res
	}

	content := a.Assemble(ctx, rec, ct)

	hash := unique.ContentHash(unique.HashInput{
		ID:      rec.ID,
		Name:    rec.Name,
		Summary: content.Summary,
		Target:  content.Sections.Target.Content,
		Benefit: content.Sections.Benefit.Content,
	})
	content.ContentHash = hash

	owner, _, err := a.ledger.Claim(ctx, hash, ct, rec.ID)
	if err != nil {
		res.Err = fmt.Errorf("claim content hash: %w", err)
		return res
	}
	if owner != rec.ID {
		// Another record already published this hash. Surface the skip
		// signal; the content is not persisted.
		content.Duplicate = true
		res.Content = content
		res.Duplicate = true
		return res
	}

	samples, err := a.contents.SampleBodies(ctx, rec.ID, a.cfg.Store.SampleSize)
	if err != nil {
		res.Err = fmt.Errorf("sample bodies: %w", err)
		return res
	}
	content.UniquenessScore = unique.Score(content.Body(), samples)

	if err := a.contents.PutContent(ctx, *content); err != nil {
		res.Err = fmt.Errorf("persist content: %w", err)
		return res
	}

	res.Content = content
	return res
}

// Assemble builds the content bundle for a record without touching the
// ledger or the content store. Augmentation failures degrade to the
// unaugmented text; Assemble never fails.
func (a *Assembler) Assemble(ctx context.Context, rec model.BenefitRecord, ct model.ContentType) *model.OptimizedContent {
	fields := a.resolver.ResolveAll(rec)

	// Summary and benefit keep the public-data text in front of the
	// generated expansion; the other fields replace outright.
	summary := rec.Summary
	if summary == "" {
		summary = buildSummary(rec, fields)
	}
	summary = a.augmentField(ctx, rec, fields, summary, a.cfg.Augment.MinSummaryLen, a.invoker.EnhanceSummary, true)

	targetContent := resolvedOrSentinel(fields, resolve.FieldTarget)
	targetContent = a.augmentField(ctx, rec, fields, targetContent, a.cfg.Augment.MinTargetLen, a.invoker.EnhanceTarget, false)
	criteria := fieldText(fields, resolve.FieldCriteria)

	benefitContent := resolvedOrSentinel(fields, resolve.FieldBenefit)
	benefitContent = a.augmentField(ctx, rec, fields, benefitContent, a.cfg.Augment.MinBenefitLen, a.invoker.EnhanceBenefit, true)
	amount, _ := extract.Amount(benefitContent)
	benefitType, _ := extract.BenefitType(benefitContent)

	applyMethod := resolvedOrSentinel(fields, resolve.FieldApply)
	applyMethod = a.augmentField(ctx, rec, fields, applyMethod, a.cfg.Augment.MinApplyLen, a.invoker.EnhanceApply, false)
	steps := extract.ApplySteps(applyMethod)
	rawDocuments := fieldText(fields, resolve.FieldDocuments)
	documents := extract.Documents(rawDocuments)
	if len(documents) == 0 {
		documents = extract.FormatDocuments(rawDocuments)
	}
	deadline := fieldText(fields, resolve.FieldDeadline)

	content := &model.OptimizedContent{
		RecordID:    rec.ID,
		ContentType: ct,
		Summary:     summary,
		Sections: model.Sections{
			Target: model.TargetSection{
				Title:    "지원 대상",
				Content:  targetContent,
				Criteria: criteria,
			},
			Benefit: model.BenefitSection{
				Title:   "지원 내용",
				Content: benefitContent,
				Amount:  amount,
				Type:    benefitType,
			},
			Apply: model.ApplySection{
				Title:     "신청 방법",
				Steps:     steps,
				Documents: documents,
				Deadline:  deadline,
				Method:    applyMethod,
			},
			Contact: model.ContactSection{
				Title:   "문의처",
				Phone:   fieldText(fields, resolve.FieldPhone),
				Email:   fieldText(fields, resolve.FieldEmail),
				Address: fieldText(fields, resolve.FieldAddress),
				Website: fieldText(fields, resolve.FieldWebsite),
			},
		},
		FAQs:        faq.Synthesize(rec, fields),
		Keywords:    extract.Keywords(rec.Name, rec.Category, rec.GoverningOrg, targetContent, benefitContent),
		GeneratedAt: a.now().UTC(),
	}

	switch ct {
	case model.ContentTypeAnalysis:
		content.Sections.Analysis = buildAnalysis(rec, fields, targetContent, benefitContent, amount)
	case model.ContentTypeTips:
		content.Sections.Tips = buildTips(fields, applyMethod, documents, deadline)
	case model.ContentTypeGuide, model.ContentTypeIntro:
		// guide and intro carry the base sections only
	}
	if timeline := buildTimeline(fields, deadline); timeline != nil {
		content.Sections.Timeline = timeline
	}

	return content
}

// enhanceFunc is the shape shared by the invoker's per-field methods.
type enhanceFunc func(ctx context.Context, rec model.BenefitRecord, fields map[string]model.ResolvedField, current string, t length.Target) (string, bool)

// augmentField runs the sufficiency gate and, when the text is short and
// augmentation is enabled, one rate-limited generation call followed by
// length normalization. Any failure leaves the original text untouched.
// With merge set, the non-sentinel original is kept in front of the
// generated text so the public-data wording always survives publication.
func (a *Assembler) augmentField(ctx context.Context, rec model.BenefitRecord, fields map[string]model.ResolvedField, current string, min int, enhance enhanceFunc, merge bool) string {
	if !length.NeedsAugmentation(current, min) {
		return current
	}
	if !a.invoker.Enabled() {
		return current
	}

	t := length.TargetFor(length.Runes(current))
	if err := a.limiter.Wait(ctx); err != nil {
		return current
	}

	augmented, ok := enhance(ctx, rec, fields, current, t)
	if !ok {
		return current
	}

	original := current
	if merge {
		if trimmed := strings.TrimSpace(current); trimmed != "" && trimmed != model.NoInformation {
			augmented = trimmed + "\n\n" + augmented
		}
		// Already merged; Normalize must not prepend a second copy.
		original = ""
	}
	normalized := length.Normalize(augmented, original, t)
	if a.cfg.Output.Verbose {
		fmt.Fprintf(os.Stderr, "pipeline: %s augmented %d -> %d runes\n",
			rec.ID, length.Runes(current), length.Runes(normalized))
	}
	return normalized
}

// resolvedOrSentinel returns the resolved value, keeping the
// no-information marker for unresolved fields so section content is never
// empty.
func resolvedOrSentinel(fields map[string]model.ResolvedField, name string) string {
	f, ok := fields[name]
	if !ok || f.Value == "" {
		return model.NoInformation
	}
	return f.Value
}
