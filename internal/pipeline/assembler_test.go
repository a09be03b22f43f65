package pipeline

import (
	"context"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/bojo24/contentforge/internal/augment"
	"github.com/bojo24/contentforge/internal/length"
	"github.com/bojo24/contentforge/internal/llm"
	"github.com/bojo24/contentforge/internal/model"
	"github.com/bojo24/contentforge/internal/store"
	"github.com/bojo24/contentforge/internal/unique"
)

type stubProvider struct {
	reply string
	calls int
}

func (s *stubProvider) Name() string { return "stub" }

func (s *stubProvider) Generate(context.Context, llm.GenerateRequest) (*llm.GenerateResponse, error) {
	s.calls++
	return &llm.GenerateResponse{Text: s.reply}, nil
}

func (s *stubProvider) IsAvailable(context.Context) bool { return true }

func testConfig() *model.Config {
	cfg := model.DefaultConfig()
	cfg.Concurrency.AugmentRPS = 1000 // no pacing in tests
	cfg.Concurrency.AugmentBurst = 10
	return cfg
}

func richRecord() model.BenefitRecord {
	return model.BenefitRecord{
		ID:           "B001",
		Name:         "청년 월세 지원",
		Category:     "주거",
		GoverningOrg: "서울특별시",
		Detail: model.DetailJSON{
			Detail: map[string]string{
				"지원대상":  "서울에 거주하는 만 19세부터 39세까지의 무주택 청년 가구로서 기준 중위소득 150% 이하인 사람",
				"지원내용":  "월 20만원 현금 지급, 최대 12개월간 지원",
				"신청방법":  "1. 온라인 접속 2. 신청서 제출",
				"구비서류":  "신분증, 주민등록등본, 임대차계약서",
				"신청기간":  "2026년 3월 2일 ~ 3월 31일",
				"문의처":   "02-120",
				"서비스목적": "청년층의 주거비 부담 완화",
			},
		},
	}
}

func newTestAssembler(cfg *model.Config, invoker *augment.Invoker) (*Assembler, *store.Memory) {
	m := store.NewMemory()
	return NewAssembler(cfg, invoker, m), m
}

func TestAssemble_Sections(t *testing.T) {
	a, _ := newTestAssembler(testConfig(), nil)
	content := a.Assemble(context.Background(), richRecord(), model.ContentTypeIntro)

	if content.RecordID != "B001" || content.ContentType != model.ContentTypeIntro {
		t.Errorf("unexpected identity %s/%s", content.RecordID, content.ContentType)
	}
	if !strings.Contains(content.Summary, "청년 월세 지원") {
		t.Errorf("summary missing record name: %q", content.Summary)
	}
	if !strings.Contains(content.Summary, "【지원 대상】") {
		t.Errorf("summary missing target block: %q", content.Summary)
	}

	target := content.Sections.Target
	if !strings.Contains(target.Content, "무주택 청년") {
		t.Errorf("target content = %q", target.Content)
	}

	benefit := content.Sections.Benefit
	if benefit.Amount != "20만원" {
		t.Errorf("benefit amount = %q, want 20만원", benefit.Amount)
	}
	if benefit.Type != "현금" {
		t.Errorf("benefit type = %q, want 현금", benefit.Type)
	}

	apply := content.Sections.Apply
	if len(apply.Steps) != 2 || apply.Steps[0] != "온라인 접속" {
		t.Errorf("apply steps = %v", apply.Steps)
	}
	if len(apply.Documents) != 3 {
		t.Errorf("documents = %v", apply.Documents)
	}
	if apply.Deadline == "" {
		t.Error("deadline not resolved")
	}

	if content.Sections.Contact.Phone != "02-120" {
		t.Errorf("contact phone = %q", content.Sections.Contact.Phone)
	}
	if len(content.FAQs) == 0 {
		t.Error("no FAQs synthesized")
	}
	if len(content.Keywords) == 0 {
		t.Error("no keywords extracted")
	}
	if content.Sections.Timeline == nil {
		t.Error("timeline expected: deadline resolved")
	}
}

func TestAssemble_SentinelForMissingFields(t *testing.T) {
	a, _ := newTestAssembler(testConfig(), nil)
	rec := model.BenefitRecord{ID: "B002", Name: "이름뿐인 정책", Category: "기타", GoverningOrg: "정부"}
	content := a.Assemble(context.Background(), rec, model.ContentTypeIntro)

	if content.Sections.Target.Content != model.NoInformation {
		t.Errorf("target content = %q, want sentinel", content.Sections.Target.Content)
	}
	if content.Sections.Benefit.Content != model.NoInformation {
		t.Errorf("benefit content = %q, want sentinel", content.Sections.Benefit.Content)
	}
	if content.Summary == "" {
		t.Error("summary must never be empty")
	}
	// only the deadline FAQ survives an empty record
	if len(content.FAQs) != 1 {
		t.Errorf("expected 1 FAQ, got %d", len(content.FAQs))
	}
}

func TestAssemble_ContentTypeSections(t *testing.T) {
	a, _ := newTestAssembler(testConfig(), nil)
	ctx := context.Background()
	rec := richRecord()

	intro := a.Assemble(ctx, rec, model.ContentTypeIntro)
	if intro.Sections.Analysis != nil || intro.Sections.Tips != nil {
		t.Error("intro must not carry analysis or tips sections")
	}

	analysis := a.Assemble(ctx, rec, model.ContentTypeAnalysis)
	if analysis.Sections.Analysis == nil {
		t.Fatal("analysis content type must build the analysis section")
	}
	if len(analysis.Sections.Analysis.Insights) == 0 {
		t.Error("analysis insights expected for a rich record")
	}

	tips := a.Assemble(ctx, rec, model.ContentTypeTips)
	if tips.Sections.Tips == nil {
		t.Fatal("tips content type must build the tips section")
	}
	if len(tips.Sections.Tips.Items) < 2 {
		t.Errorf("tips items = %v", tips.Sections.Tips.Items)
	}
}

func TestAssemble_AugmentsInsufficientField(t *testing.T) {
	cfg := testConfig()
	cfg.Augment.Enabled = true
	cfg.Augment.MinSummaryLen = 1 // isolate the target field gate
	cfg.Augment.MinBenefitLen = 1
	cfg.Augment.MinApplyLen = 1

	provider := &stubProvider{reply: strings.Repeat("가", 250)}
	invoker := augment.NewInvoker(provider, augment.NewPolicy(true, nil), false)
	a, _ := newTestAssembler(cfg, invoker)

	rec := richRecord()
	rec.Detail.Detail["지원대상"] = "무주택 청년" // 6 runes, well under 100
	content := a.Assemble(context.Background(), rec, model.ContentTypeIntro)

	if provider.calls != 1 {
		t.Fatalf("expected one generation call, got %d", provider.calls)
	}
	got := content.Sections.Target.Content
	n := length.Runes(got)
	if n < 200 || n > 330 {
		t.Errorf("augmented target length = %d runes, want within [200, 330]", n)
	}
}

func TestAssemble_SummaryAugmentationKeepsOriginal(t *testing.T) {
	cfg := testConfig()
	cfg.Augment.Enabled = true
	cfg.Augment.MinTargetLen = 1 // isolate the summary field gate
	cfg.Augment.MinBenefitLen = 1
	cfg.Augment.MinApplyLen = 1

	provider := &stubProvider{reply: strings.Repeat("가", 250)}
	invoker := augment.NewInvoker(provider, augment.NewPolicy(true, nil), false)
	a, _ := newTestAssembler(cfg, invoker)

	rec := richRecord()
	rec.Summary = "청년에게 월세를 지원하는 제도입니다."
	content := a.Assemble(context.Background(), rec, model.ContentTypeIntro)

	if provider.calls != 1 {
		t.Fatalf("expected one generation call, got %d", provider.calls)
	}
	if !strings.HasPrefix(content.Summary, rec.Summary) {
		t.Errorf("augmented summary must start with the public-data text, got %q", content.Summary)
	}
	if !strings.Contains(content.Summary, "가가") {
		t.Error("augmented summary must carry the generated expansion")
	}
}

func TestAssemble_BenefitAugmentationKeepsOriginal(t *testing.T) {
	cfg := testConfig()
	cfg.Augment.Enabled = true
	cfg.Augment.MinSummaryLen = 1 // isolate the benefit field gate
	cfg.Augment.MinTargetLen = 1
	cfg.Augment.MinApplyLen = 1

	provider := &stubProvider{reply: strings.Repeat("나", 250)}
	invoker := augment.NewInvoker(provider, augment.NewPolicy(true, nil), false)
	a, _ := newTestAssembler(cfg, invoker)

	content := a.Assemble(context.Background(), richRecord(), model.ContentTypeIntro)

	if provider.calls != 1 {
		t.Fatalf("expected one generation call, got %d", provider.calls)
	}
	got := content.Sections.Benefit.Content
	if !strings.HasPrefix(got, "월 20만원 현금 지급") {
		t.Errorf("augmented benefit must start with the public-data text, got %q", got)
	}
	if !strings.Contains(got, "나나") {
		t.Error("augmented benefit must carry the generated expansion")
	}
}

func TestAssemble_ApplyAugmentationForMissingMethod(t *testing.T) {
	cfg := testConfig()
	cfg.Augment.Enabled = true
	cfg.Augment.MinSummaryLen = 1 // isolate the apply field gate
	cfg.Augment.MinTargetLen = 1
	cfg.Augment.MinBenefitLen = 1

	provider := &stubProvider{reply: strings.Repeat("다", 250)}
	invoker := augment.NewInvoker(provider, augment.NewPolicy(true, nil), false)
	a, _ := newTestAssembler(cfg, invoker)

	rec := richRecord()
	delete(rec.Detail.Detail, "신청방법")
	content := a.Assemble(context.Background(), rec, model.ContentTypeIntro)

	if provider.calls != 1 {
		t.Fatalf("expected one generation call, got %d", provider.calls)
	}
	n := length.Runes(content.Sections.Apply.Method)
	if n < 200 || n > 330 {
		t.Errorf("augmented apply method length = %d runes, want within [200, 330]", n)
	}
}

func TestAssemble_DocumentFallbackReflow(t *testing.T) {
	a, _ := newTestAssembler(testConfig(), nil)

	rec := richRecord()
	rec.Detail.Detail["구비서류"] = "주민등록등본과 가족관계증명서 및 소득금액증명원 등 증빙서류 일체를 발급일 3개월 이내 원본으로 제출하여 주시기 바랍니다"
	content := a.Assemble(context.Background(), rec, model.ContentTypeIntro)

	docs := content.Sections.Apply.Documents
	if len(docs) != 1 {
		t.Fatalf("expected one reflowed document entry, got %d", len(docs))
	}
	if !strings.HasPrefix(docs[0], "1. ") || !strings.Contains(docs[0], "주민등록등본") {
		t.Errorf("reflowed entry = %q, want numbered entry carrying the document text", docs[0])
	}
}

func TestAssemble_AllowListBlocksAugmentation(t *testing.T) {
	cfg := testConfig()
	provider := &stubProvider{reply: strings.Repeat("가", 250)}
	invoker := augment.NewInvoker(provider, augment.NewPolicy(false, []string{"A"}), false)
	a, _ := newTestAssembler(cfg, invoker)

	rec := richRecord()
	rec.ID = "B"
	rec.Detail.Detail["지원대상"] = "무주택 청년"
	content := a.Assemble(context.Background(), rec, model.ContentTypeIntro)

	if provider.calls != 0 {
		t.Errorf("provider must not be called for a record outside the allow-list, got %d calls", provider.calls)
	}
	if content.Sections.Target.Content != "무주택 청년" {
		t.Errorf("short unaugmented text must be published as-is, got %q", content.Sections.Target.Content)
	}
}

func TestProcess_PersistsAndScores(t *testing.T) {
	a, m := newTestAssembler(testConfig(), nil)
	ctx := context.Background()
	m.AddRecord(richRecord())

	res := a.Process(ctx, "B001", model.ContentTypeIntro)
	if res.Err != nil {
		t.Fatalf("Process: %v", res.Err)
	}
	if res.Duplicate || res.Skipped {
		t.Fatalf("unexpected flags %+v", res)
	}
	if res.Content.ContentHash == "" {
		t.Error("content hash not set")
	}
	if res.Content.UniquenessScore != 1.0 {
		t.Errorf("first stored body must score 1.0, got %v", res.Content.UniquenessScore)
	}

	stored, err := m.Content(ctx, "B001", model.ContentTypeIntro)
	if err != nil {
		t.Fatalf("content not persisted: %v", err)
	}
	if stored.ContentHash != res.Content.ContentHash {
		t.Error("stored hash mismatch")
	}
}

func TestProcess_SkipsExistingContent(t *testing.T) {
	a, m := newTestAssembler(testConfig(), nil)
	ctx := context.Background()
	m.AddRecord(richRecord())

	first := a.Process(ctx, "B001", model.ContentTypeIntro)
	if first.Err != nil {
		t.Fatalf("first Process: %v", first.Err)
	}
	second := a.Process(ctx, "B001", model.ContentTypeIntro)
	if !second.Skipped {
		t.Error("second run over existing content must skip")
	}

	// a different content type is not skipped
	other := a.Process(ctx, "B001", model.ContentTypeGuide)
	if other.Skipped || other.Err != nil {
		t.Errorf("other content type must process: %+v", other)
	}
}

func TestProcess_DuplicateHashNotPersisted(t *testing.T) {
	a, m := newTestAssembler(testConfig(), nil)
	ctx := context.Background()
	rec := richRecord()
	m.AddRecord(rec)

	// claim the exact hash this record will produce, as another record
	assembled := a.Assemble(ctx, rec, model.ContentTypeIntro)
	hash := unique.ContentHash(unique.HashInput{
		ID:      rec.ID,
		Name:    rec.Name,
		Summary: assembled.Summary,
		Target:  assembled.Sections.Target.Content,
		Benefit: assembled.Sections.Benefit.Content,
	})
	if _, inserted, _ := m.Claim(ctx, hash, model.ContentTypeIntro, "Z999"); !inserted {
		t.Fatal("seed claim failed")
	}

	res := a.Process(ctx, "B001", model.ContentTypeIntro)
	if res.Err != nil {
		t.Fatalf("Process: %v", res.Err)
	}
	if !res.Duplicate {
		t.Fatal("expected duplicate signal")
	}
	if !res.Content.Duplicate {
		t.Error("content must be marked duplicate")
	}
	if _, err := m.Content(ctx, "B001", model.ContentTypeIntro); err == nil {
		t.Error("duplicate content must not be persisted")
	}
}

func TestProcess_MissingRecord(t *testing.T) {
	a, _ := newTestAssembler(testConfig(), nil)
	res := a.Process(context.Background(), "nope", model.ContentTypeIntro)
	if res.Err == nil {
		t.Error("expected error for unknown record")
	}
}

func TestBuildSummary_LengthAndStructure(t *testing.T) {
	a, _ := newTestAssembler(testConfig(), nil)
	rec := richRecord()
	fields := a.resolver.ResolveAll(rec)
	summary := buildSummary(rec, fields)

	for _, frag := range []string{"서울특별시", "주거 분야", "【지원 대상】", "【지원 규모】", "20만원", "신청 기간은"} {
		if !strings.Contains(summary, frag) {
			t.Errorf("summary missing %q:\n%s", frag, summary)
		}
	}
	if utf8.RuneCountInString(summary) < 100 {
		t.Errorf("summary for a rich record is suspiciously short: %d runes", utf8.RuneCountInString(summary))
	}
}

func TestBuildTimeline(t *testing.T) {
	if got := buildTimeline(nil, ""); got != nil {
		t.Errorf("timeline without any timing field must be nil, got %+v", got)
	}

	fields := map[string]model.ResolvedField{
		"payment": {Field: "payment", Value: "매월 25일"},
	}
	got := buildTimeline(fields, "3월 한 달간")
	if got == nil {
		t.Fatal("timeline expected")
	}
	if got.Content != "신청 기간: 3월 한 달간. 지급 시기: 매월 25일." {
		t.Errorf("timeline content = %q", got.Content)
	}
}

func TestBuildAnalysis_NoInsightsMeansNoSection(t *testing.T) {
	rec := model.BenefitRecord{ID: "X", Name: "정책", Category: "기타분야", GoverningOrg: "정부"}
	if got := buildAnalysis(rec, nil, "", "", ""); got != nil {
		t.Errorf("analysis without insights must be nil, got %+v", got)
	}
}
