package types

// Category is one enumerated kind of sensitive information the engine can
// locate inside OCR-extracted text.
type Category string

const (
	CatPhone      Category = "phone"
	CatLandline   Category = "landline"
	CatIDCard     Category = "id_card"
	CatAddress    Category = "address"
	CatEmail      Category = "email"
	CatPassword   Category = "password"
	CatCreditCard Category = "credit_card"
	CatIPAddress  Category = "ip_address"
)

// CategoryAll is the selector meaning "every known category".
const CategoryAll = "all"

// Categories returns every known category in canonical order. The order is
// fixed at process start and drives deterministic matcher scheduling.
func Categories() []Category {
	return []Category{
		CatPhone,
		CatLandline,
		CatIDCard,
		CatAddress,
		CatEmail,
		CatPassword,
		CatCreditCard,
		CatIPAddress,
	}
}

// DisplayName returns a short human-readable name for the category.
func (c Category) DisplayName() string {
	switch c {
	case CatPhone:
		return "手机号码"
	case CatLandline:
		return "座机号码"
	case CatIDCard:
		return "身份证号"
	case CatAddress:
		return "家庭住址"
	case CatEmail:
		return "电子邮箱"
	case CatPassword:
		return "密码"
	case CatCreditCard:
		return "银行卡号"
	case CatIPAddress:
		return "IP地址"
	}
	return string(c)
}

// Finding is a validated match: a candidate that passed its category's
// validator, with a confidence score in [0,1] and a canonical display value.
type Finding struct {
	Category   Category `json:"category"`
	Value      string   `json:"value"`           // canonical form (prefix stripped, separators removed)
	Match      string   `json:"match,omitempty"` // raw matched substring
	Start      int      `json:"start"`           // byte offset in the source text
	End        int      `json:"end"`
	Context    string   `json:"context,omitempty"`
	Confidence float64  `json:"confidence"`
}

// ScanReport holds the findings for a single source, ordered by start
// offset. A source whose text could not be obtained is marked Failed with a
// Reason instead of being dropped from the batch.
type ScanReport struct {
	Source   string    `json:"source"`
	Findings []Finding `json:"findings,omitempty"`
	Failed   bool      `json:"failed,omitempty"`
	Reason   string    `json:"reason,omitempty"`
}

// BatchReport collects one ScanReport per submitted source, in submission
// order.
type BatchReport struct {
	Reports []ScanReport `json:"reports"`
}

// TotalFindings counts findings across all reports in the batch.
func (b BatchReport) TotalFindings() int {
	n := 0
	for _, r := range b.Reports {
		n += len(r.Findings)
	}
	return n
}

// FailedSources counts reports marked as failed.
func (b BatchReport) FailedSources() int {
	n := 0
	for _, r := range b.Reports {
		if r.Failed {
			n++
		}
	}
	return n
}
