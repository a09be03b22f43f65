package model

import "time"

// ContentType distinguishes different purposes of generated content for the
// same record. Each type is tracked independently in the duplicate ledger.
type ContentType string

const (
	ContentTypeIntro    ContentType = "intro"
	ContentTypeAnalysis ContentType = "analysis"
	ContentTypeGuide    ContentType = "guide"
	ContentTypeTips     ContentType = "tips"
)

// OptimizedContent is the publishable content bundle produced for one
// BenefitRecord and content type.
type OptimizedContent struct {
	RecordID    string      `json:"record_id"`
	ContentType ContentType `json:"content_type"`

	Summary  string   `json:"summary"`
	Sections Sections `json:"sections"`
	FAQs     []FAQ    `json:"faqs"`
	Keywords []string `json:"keywords"`

	// Persistence metadata. Hash and UniquenessScore are filled by the
	// assembler just before publication; Duplicate marks a bundle whose
	// hash already belongs to a different record.
	ContentHash     string    `json:"content_hash,omitempty"`
	UniquenessScore float64   `json:"uniqueness_score"`
	Duplicate       bool      `json:"duplicate,omitempty"`
	GeneratedAt     time.Time `json:"generated_at"`
}

// Body concatenates the free-text parts of the bundle. This is the text
// the uniqueness scorer compares across records.
func (c OptimizedContent) Body() string {
	parts := []string{c.Summary, c.Sections.Target.Content, c.Sections.Benefit.Content}
	if c.Sections.Analysis != nil {
		parts = append(parts, c.Sections.Analysis.Content)
	}
	body := ""
	for _, p := range parts {
		if p == "" || p == NoInformation {
			continue
		}
		if body != "" {
			body += " "
		}
		body += p
	}
	return body
}

// Sections holds the named content sections. Target, Benefit, Apply and
// Contact are always present (their Content may be the no-information
// marker); Analysis, Tips and Timeline are emitted only when the source
// data yields something to say.
type Sections struct {
	Target   TargetSection    `json:"target"`
	Benefit  BenefitSection   `json:"benefit"`
	Apply    ApplySection     `json:"apply"`
	Contact  ContactSection   `json:"contact"`
	Analysis *AnalysisSection `json:"analysis,omitempty"`
	Tips     *TipsSection     `json:"tips,omitempty"`
	Timeline *TimelineSection `json:"timeline,omitempty"`
}

// TargetSection describes who is eligible.
type TargetSection struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	Criteria string `json:"criteria,omitempty"`
}

// BenefitSection describes what is provided.
type BenefitSection struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Amount  string `json:"amount,omitempty"`
	Type    string `json:"type,omitempty"`
}

// ApplySection describes how to apply.
type ApplySection struct {
	Title     string   `json:"title"`
	Steps     []string `json:"steps"`
	Documents []string `json:"documents,omitempty"`
	Deadline  string   `json:"deadline,omitempty"`
	Method    string   `json:"method"`
}

// ContactSection holds inquiry channels.
type ContactSection struct {
	Title   string `json:"title"`
	Phone   string `json:"phone,omitempty"`
	Email   string `json:"email,omitempty"`
	Address string `json:"address,omitempty"`
	Website string `json:"website,omitempty"`
}

// AnalysisSection holds derived commentary on the policy.
type AnalysisSection struct {
	Title    string   `json:"title"`
	Content  string   `json:"content"`
	Insights []string `json:"insights,omitempty"`
}

// TipsSection holds practical application tips.
type TipsSection struct {
	Title string   `json:"title"`
	Items []string `json:"items"`
}

// TimelineSection summarizes application and payment timing.
type TimelineSection struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// FAQ is one question/answer pair synthesized from the resolved fields.
type FAQ struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}
