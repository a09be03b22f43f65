package resolve

import (
	"testing"

	"github.com/bojo24/contentforge/internal/model"
)

func record(detail, list, support map[string]string) model.BenefitRecord {
	return model.BenefitRecord{
		ID:           "SVC00001",
		Name:         "청년 월세 지원",
		Category:     "주거",
		GoverningOrg: "서울특별시",
		Detail: model.DetailJSON{
			Detail:            detail,
			List:              list,
			SupportConditions: support,
		},
	}
}

func TestResolver_PathPriority(t *testing.T) {
	r := NewResolver()

	// Same field present in both sub-maps: detail wins.
	rec := record(
		map[string]string{"지원대상": "만 19세~34세 무주택 청년"},
		map[string]string{"지원대상": "list의 지원대상"},
		nil,
	)

	got := r.Resolve(rec, FieldTarget)
	if got.Value != "만 19세~34세 무주택 청년" {
		t.Errorf("expected detail value, got %q", got.Value)
	}
	if got.SourcePath != "detail.지원대상" {
		t.Errorf("expected source path detail.지원대상, got %q", got.SourcePath)
	}
}

func TestResolver_AliasFallback(t *testing.T) {
	r := NewResolver()

	rec := record(
		map[string]string{"대상": "저소득 한부모 가구"},
		nil,
		nil,
	)

	got := r.Resolve(rec, FieldTarget)
	if got.Value != "저소득 한부모 가구" {
		t.Errorf("expected alias match, got %q", got.Value)
	}
	if got.SourcePath != "detail.대상" {
		t.Errorf("unexpected source path %q", got.SourcePath)
	}
}

func TestResolver_FallsThroughToList(t *testing.T) {
	r := NewResolver()

	rec := record(
		map[string]string{"지원대상": "   "}, // whitespace only, not a match
		map[string]string{"지원대상": "국가유공자 본인"},
		nil,
	)

	got := r.Resolve(rec, FieldTarget)
	if got.Value != "국가유공자 본인" {
		t.Errorf("expected list fallback, got %q", got.Value)
	}
	if got.SourcePath != "list.지원대상" {
		t.Errorf("unexpected source path %q", got.SourcePath)
	}
}

func TestResolver_SentinelWhenAbsent(t *testing.T) {
	r := NewResolver()

	got := r.Resolve(record(nil, nil, nil), FieldBenefit)
	if got.Value != model.NoInformation {
		t.Errorf("expected sentinel, got %q", got.Value)
	}
	if got.SourcePath != "" {
		t.Errorf("expected empty source path, got %q", got.SourcePath)
	}
	if !got.Missing() {
		t.Error("expected Missing() to report true for sentinel")
	}
}

func TestResolver_Idempotent(t *testing.T) {
	r := NewResolver()
	rec := record(
		map[string]string{"지원내용": "월 20만원 지급", "신청방법": "온라인 신청"},
		map[string]string{"문의처": "02-120"},
		nil,
	)

	for _, field := range []string{FieldBenefit, FieldApply, FieldPhone, FieldEmail} {
		first := r.Resolve(rec, field)
		for i := 0; i < 3; i++ {
			again := r.Resolve(rec, field)
			if again != first {
				t.Errorf("field %s: resolution not idempotent: %+v vs %+v", field, first, again)
			}
		}
	}
}

func TestResolver_UnknownField(t *testing.T) {
	r := NewResolver()
	got := r.Resolve(record(nil, nil, nil), "nonexistent")
	if got.Value != model.NoInformation {
		t.Errorf("expected sentinel for unknown field, got %q", got.Value)
	}
}

func TestCleanText_HTML(t *testing.T) {
	in := `<p>만 19세 이상 <strong>무주택</strong> 청년</p><script>alert(1)</script>`
	got := CleanText(in)
	want := "만 19세 이상 무주택 청년"
	if got != want {
		t.Errorf("CleanText(%q) = %q, want %q", in, got, want)
	}
}

func TestCleanText_PlainText(t *testing.T) {
	in := "  월   20만원  \n 지급  "
	got := CleanText(in)
	if got != "월 20만원 지급" {
		t.Errorf("unexpected whitespace collapse: %q", got)
	}
}

func TestCleanText_AngleBracketsNotHTML(t *testing.T) {
	// Comparison text with bare angle brackets should survive.
	in := "소득 < 기준중위소득 150%"
	got := CleanText(in)
	if got == "" {
		t.Errorf("expected non-empty result for %q", in)
	}
}
