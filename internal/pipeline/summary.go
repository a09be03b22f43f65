package pipeline

import (
	"strconv"
	"strings"

	"github.com/bojo24/contentforge/internal/extract"
	"github.com/bojo24/contentforge/internal/model"
	"github.com/bojo24/contentforge/internal/resolve"
)

// buildSummary composes the structured snippet-style summary from the
// resolved fields. This is the text the sufficiency gate measures; when it
// comes up short the assembler asks the generative service for a longer
// version.
func buildSummary(rec model.BenefitRecord, fields map[string]model.ResolvedField) string {
	purpose := fieldText(fields, resolve.FieldPurpose)
	target := fieldText(fields, resolve.FieldTarget)
	benefit := fieldText(fields, resolve.FieldBenefit)
	deadline := fieldText(fields, resolve.FieldDeadline)

	var b strings.Builder
	b.WriteString(rec.Name + "은(는) " + rec.GoverningOrg + "에서 제공하는 " + rec.Category + " 분야의 정부 지원금입니다.")

	if purpose != "" {
		b.WriteString(" 이 지원금은 " + purpose + "을(를) 목적으로 합니다.")
	}
	if target != "" {
		b.WriteString("\n\n【지원 대상】\n" + target)
	}
	if benefit != "" {
		if amount, ok := extract.Amount(benefit); ok {
			b.WriteString("\n\n【지원 규모】\n" + amount)
		}
		b.WriteString("\n\n【지원 내용】\n" + benefit)
	}
	if deadline != "" {
		b.WriteString(" 신청 기간은 " + deadline + "입니다.")
	} else {
		b.WriteString(" 신청은 상시 접수 또는 정해진 기간 내에 가능합니다.")
	}
	return b.String()
}

// targetGroupKeywords are the audience groups the analysis calls out when
// they appear in the eligibility text.
var targetGroupKeywords = []string{"청년", "노인", "장애인", "저소득", "다자녀", "임신", "출산"}

// categoryInsights are canned per-category observations. Categories not in
// the table simply get no such insight.
var categoryInsights = map[string]string{
	"육아/교육": "육아 및 교육 분야 지원금은 자녀 양육 부담을 완화하고 교육 기회를 확대하는 데 중점을 둡니다.",
	"일자리":   "일자리 분야 지원금은 취업 지원, 창업 지원, 직업 훈련 등을 통해 경제 활동을 촉진합니다.",
	"주거":    "주거 분야 지원금은 주거 안정과 주거비 부담 완화를 목적으로 합니다.",
	"생활안정":  "생활안정 분야 지원금은 저소득층의 기본 생활을 보장하고 경제적 안정을 도모합니다.",
	"창업/경영": "창업/경영 분야 지원금은 신규 창업자와 소상공인을 지원하여 경제 활성화를 도모합니다.",
}

// buildAnalysis derives the commentary section. Returns nil when no
// insight could be derived; an analysis without insights reads as padding.
func buildAnalysis(rec model.BenefitRecord, fields map[string]model.ResolvedField, target, benefit, amount string) *model.AnalysisSection {
	var insights []string
	analysis := rec.Name + "은(는) " + rec.GoverningOrg + "에서 운영하는 " + rec.Category + " 분야의 정부 지원금입니다."

	if amount != "" {
		analysis += " 지원 규모는 " + amount + "로,"
		switch n := digitsOf(amount); {
		case n >= 1000000:
			insights = append(insights, "대규모 지원금으로 가구당 상당한 경제적 도움을 제공합니다.")
		case n >= 100000:
			insights = append(insights, "중규모 지원금으로 생활비 보조에 실질적인 도움이 됩니다.")
		}
	}

	if target != "" && target != model.NoInformation {
		var matched []string
		for _, k := range targetGroupKeywords {
			if strings.Contains(target, k) {
				matched = append(matched, k)
			}
		}
		if len(matched) > 0 {
			insights = append(insights, "주요 지원 대상은 "+strings.Join(matched, ", ")+" 등입니다.")
		}
	}

	if benefitType, ok := extract.BenefitType(benefit); ok {
		analysis += " 지원 형태는 " + benefitType + "이며,"
		switch benefitType {
		case "현금":
			insights = append(insights, "현금 지원으로 사용자가 필요에 따라 자유롭게 활용할 수 있습니다.")
		case "바우처":
			insights = append(insights, "바우처 형태로 지정된 서비스나 상품에 한해 사용 가능합니다.")
		}
	}

	if purpose := fieldText(fields, resolve.FieldPurpose); purpose != "" {
		analysis += " 이 정책의 목적은 " + purpose + "입니다."
	}
	if insight, ok := categoryInsights[rec.Category]; ok {
		insights = append(insights, insight)
	}

	if len(insights) == 0 {
		return nil
	}

	analysis += " 이 정책은 " + rec.Category + " 분야의 특성을 반영하여 설계되었습니다."
	return &model.AnalysisSection{
		Title:    "정책 분석",
		Content:  analysis,
		Insights: insights,
	}
}

// buildTips assembles practical application tips. At least the two
// generic tips are always present.
func buildTips(fields map[string]model.ResolvedField, apply string, documents []string, deadline string) *model.TipsSection {
	var tips []string

	if len(documents) > 0 {
		listed := documents
		suffix := ""
		if len(listed) > 3 {
			listed = listed[:3]
			suffix = " 등"
		}
		tips = append(tips, "신청 전 필요한 서류("+strings.Join(listed, ", ")+suffix+")를 미리 준비하시면 신청이 원활합니다.")
	}

	if deadline != "" {
		tips = append(tips, "신청 기간("+deadline+")을 놓치지 않도록 미리 일정을 확인하시기 바랍니다.")
	} else {
		tips = append(tips, "상시 접수 가능한 경우라도 조기 신청을 권장합니다.")
	}

	if strings.Contains(apply, "온라인") {
		tips = append(tips, "온라인 신청이 가능한 경우, 인터넷 환경이 안정적인 곳에서 신청하시는 것을 권장합니다.")
	}
	if strings.Contains(apply, "방문") {
		tips = append(tips, "방문 신청의 경우, 사전에 문의하여 필요한 서류를 확인하시면 시간을 절약할 수 있습니다.")
	}

	if contact := fieldText(fields, resolve.FieldPhone); contact != "" {
		tips = append(tips, "신청 전 문의처("+contact+")로 자격 요건과 신청 절차를 확인하시면 실수를 방지할 수 있습니다.")
	}

	tips = append(tips,
		"신청서 작성 시 오기입이나 누락이 없도록 신중하게 작성하시기 바랍니다.",
		"신청 후 처리 결과는 공식 홈페이지나 문자 알림을 통해 확인할 수 있습니다.")

	return &model.TipsSection{Title: "실전 팁", Items: tips}
}

// buildTimeline summarizes application and payment timing. Returns nil
// when no timing field resolved.
func buildTimeline(fields map[string]model.ResolvedField, deadline string) *model.TimelineSection {
	payment := fieldText(fields, resolve.FieldPayment)
	review := fieldText(fields, resolve.FieldReview)
	if deadline == "" && payment == "" && review == "" {
		return nil
	}

	var parts []string
	if deadline != "" {
		parts = append(parts, "신청 기간: "+deadline+".")
	}
	if payment != "" {
		parts = append(parts, "지급 시기: "+payment+".")
	}
	if review != "" {
		parts = append(parts, "심사 기간: "+review+".")
	}
	return &model.TimelineSection{Title: "신청 일정", Content: strings.Join(parts, " ")}
}

// fieldText reads a resolved field with the no-information marker
// normalized to the empty string.
func fieldText(fields map[string]model.ResolvedField, name string) string {
	f, ok := fields[name]
	if !ok || f.Missing() {
		return ""
	}
	return f.Value
}

// digitsOf concatenates the decimal digits of s and parses them. Scale
// words like 만 are ignored: "1,000,000원" reads as one million, "10만원"
// as ten. Crude, but stable for ordering amounts written the same way.
func digitsOf(s string) int {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return 0
	}
	n, err := strconv.Atoi(b.String())
	if err != nil {
		return 0
	}
	return n
}
