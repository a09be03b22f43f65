package augment

import (
	"fmt"
	"strings"
)

// systemRole frames every generation call. The service is asked to act as
// an explainer of public benefit data, never as a source of new facts.
const systemRole = "당신은 대한민국 정부 보조금 정보를 시민들이 이해하기 쉽게 설명하는 전문가입니다. 제공된 공공데이터에 없는 정보는 절대 추가하지 마세요."

// commonGuidelines are the formatting rules shared by every field prompt.
const commonGuidelines = `[공통 규칙]
- 제공된 공공데이터에 없는 정보는 추가하지 마세요
- 볼드(**텍스트**)로 중요한 키워드를 강조하세요
- 목록(- 또는 •)을 활용하여 항목을 명확히 나열하세요
- 문단을 나누어 가독성을 높이세요
- 문장은 자연스럽고 읽기 쉽게 작성하세요
- 순수 텍스트만 반환하세요 (JSON이나 코드 블록 금지)`

const summaryPrompt = `[보조금 정보]
- 정책명: {benefitName}
- 카테고리: {category}
- 관할 기관: {governingOrg}
- 지원 대상: {target}
- 지원 내용: {benefit}
- 지원 금액: {amount}
- 신청 방법: {apply}
- 신청 기간: {deadline}
- 현재 요약 내용: {currentSummary}

{lengthGuidance}

[요구사항]
위 공공데이터를 기반으로 **핵심 요약**을 명확하고 읽기 쉽게 작성해주세요.

1. {targetMin}~{targetMax}자로 작성하세요
2. 첫 문장에 보조금 이름과 카테고리를 포함하세요
3. 본문에 지원 대상, 지원 내용, 지원 금액 등 핵심 정보를 담으세요
4. 마지막 문장에 신청 방법 또는 신청 기간을 포함하세요`

const targetPrompt = `[보조금 정보]
- 정책명: {benefitName}
- 관할 기관: {governingOrg}
- 현재 지원 대상 정보: {currentTarget}
- 선정 기준: {criteria}

{lengthGuidance}

[요구사항]
위 공공데이터를 기반으로 **지원 대상**을 가독성 있게 정리해주세요.

1. {targetMin}~{targetMax}자로 작성하세요
2. 자격 요건(거주지, 신분, 나이, 소득 등)을 구체적으로 나열하세요
3. **실제 신청 가능한 사람의 예시**를 반드시 하나 이상 포함하세요
   (예: "동대문구에 거주하는 60대 국가유공자")`

const benefitPrompt = `[보조금 정보]
- 정책명: {benefitName}
- 관할 기관: {governingOrg}
- 현재 지원 내용 정보: {currentBenefit}
- 지원 규모: {amount}
- 지원 형태: {benefitType}

{lengthGuidance}

[요구사항]
위 공공데이터를 기반으로 **지원 내용**을 가독성 있게 정리해주세요.

1. {targetMin}~{targetMax}자로 작성하세요
2. 지원 금액, 지원 형태, 지원 기간을 구체적으로 명시하세요
3. 개요 문단 뒤에 혜택 목록을 - 로 나열하세요
4. **반드시 "예를 들어" 섹션을 포함**하세요: 실제로 받을 수 있는
   금액이나 서비스의 구체적인 예시를 같은 줄에 작성하세요`

const applyPrompt = `[보조금 정보]
- 정책명: {benefitName}
- 관할 기관: {governingOrg}
- 현재 신청 방법 정보: {currentApply}
- 필요 서류: {documents}
- 신청 기간: {deadline}

{lengthGuidance}

[요구사항]
위 공공데이터를 기반으로 **신청 방법**을 단계별 가이드로 정리해주세요.

1. {targetMin}~{targetMax}자로 작성하세요
2. **1단계**, **2단계** 형식으로 순서대로 나열하세요
3. 신청 장소 또는 방법(온라인, 방문, 우편)과 필요 서류를 포함하세요
4. 문의처가 있다면 마지막에 안내하세요`

const documentsPrompt = `[보조금 정보]
- 정책명: {benefitName}
- 현재 필요 서류 정보: {currentDocuments}

[요구사항]
위 필요 서류 목록을 읽기 쉽게 정리해주세요.

1. 서류마다 한 줄씩, 번호를 붙여 나열하세요 (1. 2. 3. ...)
2. 줄바꿈이 잘못 들어간 항목은 하나로 합치세요
3. 서류 이름과 부수 외의 설명은 추가하지 마세요`

const faqAnswerPrompt = `[보조금 정보]
- 정책명: {benefitName}
- 관할 기관: {governingOrg}
- 질문: {question}
- 공공데이터 기반 원본 답변: {originalAnswer}

[요구사항]
위 공공데이터를 기반으로 FAQ 답변을 명확하고 간결하게 작성해주세요.

1. 100~300자로 작성하세요
2. 질문에 직접적으로 답변하고 핵심 정보만 포함하세요
3. 금액, 기간 등 구체적 수치가 있다면 반드시 포함하세요`

// buildPrompt substitutes {placeholder} values into a template. Missing
// facts are rendered as the no-information marker so the model sees an
// explicit gap rather than an empty slot.
func buildPrompt(template string, values map[string]string) string {
	out := commonGuidelines + "\n\n" + template
	for key, val := range values {
		if strings.TrimSpace(val) == "" {
			val = "정보 없음"
		}
		out = strings.ReplaceAll(out, "{"+key+"}", val)
	}
	return out
}

// lengthGuidance tells the model how far the current text is from the
// target window. The explicit gap nudges short generations upward.
func lengthGuidance(current, min, max int) string {
	if current >= min {
		return fmt.Sprintf("[글자수 안내]\n목표 글자수는 %d~%d자입니다.", min, max)
	}
	return fmt.Sprintf(
		"[글자수 안내]\n현재 글자수는 %d자로 목표(%d~%d자)에 부족합니다. 더 상세하고 구체적으로 작성하여 목표 글자수에 도달하세요.",
		current, min, max)
}
