package resolve

import (
	"github.com/bojo24/contentforge/internal/model"
)

// Logical field names. The resolver maps each of these onto the upstream
// key spellings it may appear under.
const (
	FieldPurpose   = "purpose"
	FieldTarget    = "target"
	FieldCriteria  = "criteria"
	FieldBenefit   = "benefit"
	FieldApply     = "apply"
	FieldDocuments = "documents"
	FieldDeadline  = "deadline"
	FieldPhone     = "phone"
	FieldEmail     = "email"
	FieldAddress   = "address"
	FieldWebsite   = "website"
	FieldPayment   = "payment"
	FieldReview    = "review"
)

// Source path names inside a record's detail bag, in lookup priority order.
const (
	PathDetail            = "detail"
	PathList              = "list"
	PathSupportConditions = "supportConditions"
)

// SourceSpec names one sub-map of the detail bag and the key aliases to try
// there, in order.
type SourceSpec struct {
	Path    string
	Aliases []string
}

// FieldSpec is the full ordered lookup plan for one logical field.
type FieldSpec struct {
	Field   string
	Sources []SourceSpec
}

// aliasesEverywhere expands one alias list across all three source paths,
// detail first. Most fields use the same spellings in every sub-map.
func aliasesEverywhere(aliases ...string) []SourceSpec {
	return []SourceSpec{
		{Path: PathDetail, Aliases: aliases},
		{Path: PathList, Aliases: aliases},
		{Path: PathSupportConditions, Aliases: aliases},
	}
}

// Resolver extracts logical fields from a record's inconsistently keyed
// detail bag. It is pure lookup: same record in, same value and source
// path out.
type Resolver struct {
	specs map[string]FieldSpec
}

// NewResolver builds a resolver with the standard field table. The alias
// spellings mirror what the upstream public-data API actually emits,
// including the spaced variants.
func NewResolver() *Resolver {
	specs := []FieldSpec{
		{Field: FieldPurpose, Sources: aliasesEverywhere("서비스목적", "서비스목적요약")},
		{Field: FieldTarget, Sources: aliasesEverywhere("지원대상", "대상", "사용자구분")},
		{Field: FieldCriteria, Sources: aliasesEverywhere("선정기준", "선정 기준")},
		{Field: FieldBenefit, Sources: aliasesEverywhere("지원내용", "지원 내용")},
		{Field: FieldApply, Sources: aliasesEverywhere("신청방법", "신청 방법")},
		{Field: FieldDocuments, Sources: aliasesEverywhere("구비서류", "필요서류")},
		{Field: FieldDeadline, Sources: aliasesEverywhere("신청기간", "접수기간", "신청 기간", "신청기한")},
		{Field: FieldPhone, Sources: aliasesEverywhere("문의처", "전화문의", "연락처")},
		{Field: FieldEmail, Sources: aliasesEverywhere("이메일", "이메일주소")},
		{Field: FieldAddress, Sources: aliasesEverywhere("주소", "소재지")},
		{Field: FieldWebsite, Sources: aliasesEverywhere("온라인신청사이트URL", "상세조회URL", "홈페이지")},
		{Field: FieldPayment, Sources: aliasesEverywhere("지급시기", "지급 시기")},
		{Field: FieldReview, Sources: aliasesEverywhere("심사기간", "심사 기간")},
	}

	table := make(map[string]FieldSpec, len(specs))
	for _, s := range specs {
		table[s.Field] = s
	}
	return &Resolver{specs: table}
}

// Resolve returns the first non-empty value for the field across its source
// paths and aliases. When nothing matches, the value is the no-information
// marker and the source path is empty; callers never see a null.
func (r *Resolver) Resolve(rec model.BenefitRecord, field string) model.ResolvedField {
	spec, ok := r.specs[field]
	if !ok {
		return model.ResolvedField{Field: field, Value: model.NoInformation}
	}

	for _, src := range spec.Sources {
		m := subMap(rec.Detail, src.Path)
		if m == nil {
			continue
		}
		for _, alias := range src.Aliases {
			if v, ok := m[alias]; ok {
				if cleaned := CleanText(v); cleaned != "" {
					return model.ResolvedField{
						Field:      field,
						Value:      cleaned,
						SourcePath: src.Path + "." + alias,
					}
				}
			}
		}
	}

	return model.ResolvedField{Field: field, Value: model.NoInformation}
}

// ResolveAll resolves every field in the table. Keyed by logical field name.
func (r *Resolver) ResolveAll(rec model.BenefitRecord) map[string]model.ResolvedField {
	out := make(map[string]model.ResolvedField, len(r.specs))
	for field := range r.specs {
		out[field] = r.Resolve(rec, field)
	}
	return out
}

func subMap(d model.DetailJSON, path string) map[string]string {
	switch path {
	case PathDetail:
		return d.Detail
	case PathList:
		return d.List
	case PathSupportConditions:
		return d.SupportConditions
	}
	return nil
}
