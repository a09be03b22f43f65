package model

import "time"

// NoInformation is the fixed marker for a field that resolved to nothing.
// It is a real string rather than an empty one so downstream length checks
// stay total: the sufficiency gate treats it as "needs augmentation" and
// renderers can display it verbatim.
const NoInformation = "정보 없음"

// BenefitRecord is one public-benefit program as materialized by the
// upstream ingestion job. It is read-only inside this system: the pipeline
// resolves fields out of it and never writes back.
type BenefitRecord struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Category     string     `json:"category"`
	GoverningOrg string     `json:"governing_org"`
	Detail       DetailJSON `json:"detail_json"`
	LastUpdated  time.Time  `json:"last_updated_at"`

	// Summary is an optional previously generated short summary. When
	// present it seeds the summary field before the sufficiency gate runs.
	Summary string `json:"summary,omitempty"`
}

// DetailJSON is the nested free-text bag attached to a record. The upstream
// API populates the three sub-maps inconsistently: a logical field like
// "지원대상" may live in any of them, under slightly different key spellings.
// The resolve package owns the lookup order.
type DetailJSON struct {
	Detail            map[string]string `json:"detail,omitempty"`
	List              map[string]string `json:"list,omitempty"`
	SupportConditions map[string]string `json:"supportConditions,omitempty"`
}

// ResolvedField is the output of a single field resolution: the logical
// field name, the text that was found (or NoInformation), and the source
// path it came from ("" when nothing matched).
type ResolvedField struct {
	Field      string `json:"field"`
	Value      string `json:"value"`
	SourcePath string `json:"source_path,omitempty"`
}

// Missing reports whether the field resolved to the no-information marker.
func (f ResolvedField) Missing() bool {
	return f.Value == NoInformation || f.Value == ""
}
