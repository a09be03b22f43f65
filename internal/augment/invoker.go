// Package augment invokes the external generative text service to fill in
// fields the public data leaves insufficient. Every failure mode, from a
// closed gate or missing credentials to a timeout or an empty reply, is
// the normal "no augmentation" outcome, never an error the caller has to
// recover from.
package augment

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/bojo24/contentforge/internal/cache"
	"github.com/bojo24/contentforge/internal/extract"
	"github.com/bojo24/contentforge/internal/length"
	"github.com/bojo24/contentforge/internal/llm"
	"github.com/bojo24/contentforge/internal/model"
)

// Invoker builds field-specific prompts and calls the generative service
// exactly once per field per record. No retries here: the assembler decides
// whether to proceed with the unaugmented field.
type Invoker struct {
	provider llm.Provider
	policy   Policy
	verbose  bool

	replies  cache.Cache
	replyTTL time.Duration
}

// NewInvoker creates an invoker. A nil provider means augmentation is
// disabled entirely; the invoker then reports "no augmentation" for every
// field.
func NewInvoker(provider llm.Provider, policy Policy, verbose bool) *Invoker {
	return &Invoker{provider: provider, policy: policy, verbose: verbose}
}

// UseReplyCache attaches a reply cache. Identical prompts to the same
// provider are answered from the cache instead of a fresh call.
func (iv *Invoker) UseReplyCache(c cache.Cache, ttl time.Duration) {
	iv.replies = c
	iv.replyTTL = ttl
}

// Enabled reports whether any record could be augmented at all.
func (iv *Invoker) Enabled() bool {
	return iv.provider != nil && (iv.policy.Enabled || len(iv.policy.AllowedIDs) > 0)
}

// EnhanceSummary asks for an improved record summary.
func (iv *Invoker) EnhanceSummary(ctx context.Context, rec model.BenefitRecord, fields map[string]model.ResolvedField, current string, t length.Target) (string, bool) {
	prompt := buildPrompt(summaryPrompt, map[string]string{
		"benefitName":    rec.Name,
		"category":       rec.Category,
		"governingOrg":   rec.GoverningOrg,
		"target":         fieldValue(fields, "target"),
		"benefit":        fieldValue(fields, "benefit"),
		"amount":         extract.AmountOr(fieldValue(fields, "benefit"), ""),
		"apply":          fieldValue(fields, "apply"),
		"deadline":       fieldValue(fields, "deadline"),
		"currentSummary": current,
		"lengthGuidance": lengthGuidance(length.Runes(current), t.Min, t.Max),
		"targetMin":      fmt.Sprintf("%d", t.Min),
		"targetMax":      fmt.Sprintf("%d", t.Max),
	})
	return iv.generate(ctx, rec, "summary", prompt)
}

// EnhanceTarget asks for a clearer eligibility description.
func (iv *Invoker) EnhanceTarget(ctx context.Context, rec model.BenefitRecord, fields map[string]model.ResolvedField, current string, t length.Target) (string, bool) {
	prompt := buildPrompt(targetPrompt, map[string]string{
		"benefitName":    rec.Name,
		"governingOrg":   rec.GoverningOrg,
		"currentTarget":  current,
		"criteria":       fieldValue(fields, "criteria"),
		"lengthGuidance": lengthGuidance(length.Runes(current), t.Min, t.Max),
		"targetMin":      fmt.Sprintf("%d", t.Min),
		"targetMax":      fmt.Sprintf("%d", t.Max),
	})
	return iv.generate(ctx, rec, "target", prompt)
}

// EnhanceBenefit asks for a clearer benefit description.
func (iv *Invoker) EnhanceBenefit(ctx context.Context, rec model.BenefitRecord, fields map[string]model.ResolvedField, current string, t length.Target) (string, bool) {
	prompt := buildPrompt(benefitPrompt, map[string]string{
		"benefitName":    rec.Name,
		"governingOrg":   rec.GoverningOrg,
		"currentBenefit": current,
		"amount":         extract.AmountOr(current, ""),
		"benefitType":    extract.BenefitTypeOr(current, ""),
		"lengthGuidance": lengthGuidance(length.Runes(current), t.Min, t.Max),
		"targetMin":      fmt.Sprintf("%d", t.Min),
		"targetMax":      fmt.Sprintf("%d", t.Max),
	})
	return iv.generate(ctx, rec, "benefit", prompt)
}

// EnhanceApply asks for a step-by-step application guide.
func (iv *Invoker) EnhanceApply(ctx context.Context, rec model.BenefitRecord, fields map[string]model.ResolvedField, current string, t length.Target) (string, bool) {
	prompt := buildPrompt(applyPrompt, map[string]string{
		"benefitName":    rec.Name,
		"governingOrg":   rec.GoverningOrg,
		"currentApply":   current,
		"documents":      fieldValue(fields, "documents"),
		"deadline":       fieldValue(fields, "deadline"),
		"lengthGuidance": lengthGuidance(length.Runes(current), t.Min, t.Max),
		"targetMin":      fmt.Sprintf("%d", t.Min),
		"targetMax":      fmt.Sprintf("%d", t.Max),
	})
	return iv.generate(ctx, rec, "apply", prompt)
}

// EnhanceDocuments asks for a cleanly reflowed document checklist.
func (iv *Invoker) EnhanceDocuments(ctx context.Context, rec model.BenefitRecord, current string) (string, bool) {
	prompt := buildPrompt(documentsPrompt, map[string]string{
		"benefitName":      rec.Name,
		"currentDocuments": current,
	})
	return iv.generate(ctx, rec, "documents", prompt)
}

// EnhanceFAQAnswer asks for a tightened FAQ answer.
func (iv *Invoker) EnhanceFAQAnswer(ctx context.Context, rec model.BenefitRecord, question, original string) (string, bool) {
	prompt := buildPrompt(faqAnswerPrompt, map[string]string{
		"benefitName":    rec.Name,
		"governingOrg":   rec.GoverningOrg,
		"question":       question,
		"originalAnswer": original,
	})
	return iv.generate(ctx, rec, "faq", prompt)
}

// generate performs the single outbound call for one field. The bool result
// is false for every expected no-augmentation outcome.
func (iv *Invoker) generate(ctx context.Context, rec model.BenefitRecord, field, prompt string) (string, bool) {
	if iv.provider == nil {
		return "", false
	}
	if !iv.policy.Permits(rec.ID) {
		if iv.verbose {
			fmt.Fprintf(os.Stderr, "augment: record %s not permitted, skipping %s\n", rec.ID, field)
		}
		return "", false
	}
	// Augmentation without the identifying facts would be fabrication.
	if rec.Name == "" || rec.GoverningOrg == "" {
		if iv.verbose {
			fmt.Fprintf(os.Stderr, "augment: record %s missing name or governing org, skipping %s\n", rec.ID, field)
		}
		return "", false
	}

	var key string
	if iv.replies != nil {
		key = cache.Key(iv.provider.Name(), prompt)
		if cached, found := iv.replies.Get(key); found {
			if iv.verbose {
				fmt.Fprintf(os.Stderr, "augment: %s/%s answered from reply cache\n", rec.ID, field)
			}
			return string(cached), true
		}
	}

	resp, err := iv.provider.Generate(ctx, llm.GenerateRequest{
		System: systemRole,
		Prompt: prompt,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "augment: %s/%s generation failed: %v\n", rec.ID, field, err)
		return "", false
	}
	if resp == nil || resp.Text == "" {
		return "", false
	}

	if iv.replies != nil {
		if err := iv.replies.Set(key, []byte(resp.Text), iv.replyTTL); err != nil && iv.verbose {
			fmt.Fprintf(os.Stderr, "augment: reply cache write failed: %v\n", err)
		}
	}
	return resp.Text, true
}

func fieldValue(fields map[string]model.ResolvedField, name string) string {
	if f, ok := fields[name]; ok {
		return f.Value
	}
	return model.NoInformation
}
