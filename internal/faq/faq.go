// Package faq synthesizes question/answer pairs from resolved record
// fields. Questions come from a fixed template set; a question is emitted
// only when its underlying field actually resolved, except the deadline
// question which always ships with a generic fallback.
package faq

import (
	"strconv"
	"strings"

	"github.com/bojo24/contentforge/internal/extract"
	"github.com/bojo24/contentforge/internal/model"
	"github.com/bojo24/contentforge/internal/resolve"
)

// maxAnswerRunes caps every answer; overlong answers are cut with an
// ellipsis marker.
const maxAnswerRunes = 300

// Synthesize builds the FAQ list for a record from its resolved fields.
// The result is empty only when the record name is blank or no field
// resolved at all.
func Synthesize(rec model.BenefitRecord, fields map[string]model.ResolvedField) []model.FAQ {
	if rec.Name == "" {
		return nil
	}

	name := rec.Name
	var faqs []model.FAQ

	if target := fieldText(fields, resolve.FieldTarget); target != "" {
		answer := name + "의 지원 대상은 " + target + "입니다. "
		if criteria := fieldText(fields, resolve.FieldCriteria); criteria != "" {
			answer += "선정 기준은 " + criteria + "입니다."
		} else {
			answer += "자세한 자격 요건은 공식 홈페이지에서 확인하실 수 있습니다."
		}
		faqs = append(faqs, model.FAQ{
			Question: name + "은 누가 받을 수 있나요?",
			Answer:   truncate(answer),
		})
	}

	if benefit := fieldText(fields, resolve.FieldBenefit); benefit != "" {
		answer := name + "의 지원 내용은 " + benefit + "입니다."
		if amount, ok := extract.Amount(benefit); ok {
			answer = name + "은 " + amount + "을(를) 지원합니다. " + benefit + " 등의 혜택을 받을 수 있습니다."
		}
		if benefitType, ok := extract.BenefitType(benefit); ok {
			answer += " 지원 형태는 " + benefitType + "입니다."
		}
		faqs = append(faqs, model.FAQ{
			Question: name + "에서 어떤 혜택을 받을 수 있나요?",
			Answer:   truncate(answer),
		})
	}

	if apply := fieldText(fields, resolve.FieldApply); apply != "" {
		answer := name + " 신청 방법은 다음과 같습니다: "
		if steps := extract.ApplySteps(apply); len(steps) > 0 {
			var parts []string
			for i, step := range steps {
				parts = append(parts, strconv.Itoa(i+1)+"단계: "+step)
			}
			answer += strings.Join(parts, " ") + "입니다."
		} else {
			answer += apply + "입니다."
		}
		faqs = append(faqs, model.FAQ{
			Question: name + "은 어떻게 신청하나요?",
			Answer:   truncate(answer),
		})
	}

	if docs := extract.Documents(fieldText(fields, resolve.FieldDocuments)); len(docs) > 0 {
		answer := name + " 신청 시 필요한 서류는 다음과 같습니다: " + strings.Join(docs, ", ") +
			"입니다. 정확한 서류 목록은 공식 홈페이지에서 확인하시기 바랍니다."
		faqs = append(faqs, model.FAQ{
			Question: name + " 신청 시 필요한 서류는 무엇인가요?",
			Answer:   truncate(answer),
		})
	}

	phone := fieldText(fields, resolve.FieldPhone)
	website := fieldText(fields, resolve.FieldWebsite)
	if phone != "" || website != "" {
		contact := "전화 " + phone
		if phone == "" {
			contact = "온라인 " + website
		}
		answer := name + " 신청 관련 문의는 " + contact + "로 연락하시면 됩니다."
		if email := fieldText(fields, resolve.FieldEmail); email != "" {
			answer += " 이메일 문의도 가능합니다: " + email
		}
		faqs = append(faqs, model.FAQ{
			Question: name + " 신청 관련 문의는 어디로 하나요?",
			Answer:   truncate(answer),
		})
	}

	// The deadline question always ships, with a fallback pointing at the
	// record's own contact channels when no period is on file.
	deadlineAnswer := ""
	if deadline := fieldText(fields, resolve.FieldDeadline); deadline != "" {
		deadlineAnswer = name + "의 신청 기간은 " + deadline + "입니다. 기간 내에 신청하시기 바랍니다."
	} else {
		site := website
		if site == "" {
			site = "해당 기관 홈페이지"
		}
		inquiry := phone
		if inquiry == "" {
			inquiry = "해당 기관"
		}
		deadlineAnswer = name + "은 상시 접수 또는 정해진 기간 내에 신청 가능합니다. 정확한 신청 기간은 공식 홈페이지(" +
			site + ") 또는 문의처(" + inquiry + ")를 통해 확인하시기 바랍니다."
	}
	faqs = append(faqs, model.FAQ{
		Question: name + " 신청 기간이 정해져 있나요?",
		Answer:   truncate(deadlineAnswer),
	})

	if payment := fieldText(fields, resolve.FieldPayment); payment != "" {
		answer := name + "은 " + payment + "에 지급됩니다. 정확한 지급 일정은 신청 승인 후 안내받으실 수 있습니다."
		faqs = append(faqs, model.FAQ{
			Question: name + "은 언제 지급되나요?",
			Answer:   truncate(answer),
		})
	}

	return faqs
}

// fieldText returns a resolved field's value with the no-information
// marker normalized to the empty string.
func fieldText(fields map[string]model.ResolvedField, name string) string {
	f, ok := fields[name]
	if !ok || f.Missing() {
		return ""
	}
	return f.Value
}

func truncate(s string) string {
	runes := []rune(s)
	if len(runes) <= maxAnswerRunes {
		return s
	}
	return string(runes[:maxAnswerRunes]) + "..."
}
