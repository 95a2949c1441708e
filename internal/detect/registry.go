package detect

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/ccjmqdzj/sensitive-info-scanner/internal/types"
)

// ErrUnknownCategory is returned when a requested category tag is not in the
// enumerated set. It fails the whole scan call; per-source problems never
// surface through it.
var ErrUnknownCategory = errors.New("unknown category")

// Options holds the heuristic knobs of the engine. The defaults mirror the
// tuning the rule set was written against; they are knobs, not contracts.
type Options struct {
	// ContextWindow is how many runes either side of a match are handed to
	// the validator for label corroboration.
	ContextWindow int
	// Concurrency bounds source-level parallelism in Scan. Zero or negative
	// means GOMAXPROCS.
	Concurrency int
	// Labels are corroborating keywords per category, matched
	// case-insensitively inside the context window.
	Labels map[types.Category][]string
	// Scores are the per-signal confidence levels.
	Scores Scores
}

// Scores groups the confidence constants. Monotonic by construction: every
// extra corroborating signal maps to an equal or higher value.
type Scores struct {
	Shape      float64 // bare shape match
	Label      float64 // shape match plus corroborating label in context
	IDCard     float64 // checksum-verified ID number
	CreditCard float64 // Luhn-verified card number
	Password   float64 // labeled password token (inherently heuristic)

	AddressPerKeyword float64 // per distinct administrative-unit marker
	AddressCap        float64

	ReservedIP float64 // loopback/unspecified/broadcast without a label
	TestEmail  float64 // test@/example@/sample@ local parts
}

// DefaultOptions returns the stock heuristics.
func DefaultOptions() Options {
	return Options{
		ContextWindow: 20,
		Labels: map[types.Category][]string{
			types.CatPhone:      {"手机", "电话", "联系", "拨打", "号码", "tel", "phone", "mobile"},
			types.CatLandline:   {"电话", "座机", "分机", "传真", "客服", "tel", "fax"},
			types.CatIDCard:     {"身份证", "证件", "号码", "身份", "证号"},
			types.CatAddress:    {"地址", "住址", "家庭", "位于", "住在"},
			types.CatEmail:      {"邮箱", "邮件", "电子邮件", "email", "联系"},
			types.CatIPAddress:  {"ip", "地址", "服务器", "网络", "主机"},
			types.CatCreditCard: {"银行卡", "信用卡", "储蓄卡", "卡号", "账号"},
		},
		Scores: Scores{
			Shape:             0.7,
			Label:             0.9,
			IDCard:            0.9,
			CreditCard:        0.85,
			Password:          0.6,
			AddressPerKeyword: 0.5,
			AddressCap:        0.9,
			ReservedIP:        0.5,
			TestEmail:         0.3,
		},
	}
}

// validator decides whether a raw candidate becomes a finding and scores it.
// Validators are pure: same candidate in, same verdict out.
type validator func(c Candidate, opts Options) (types.Finding, bool)

// PatternSpec pairs one category's matching rule with its validator. Specs
// are read-only after registry construction.
type PatternSpec struct {
	Category types.Category
	re       *regexp.Regexp
	// group selects the submatch carrying the sensitive value (0 = whole
	// match). Password uses 1: the label is part of the pattern but not of
	// the finding.
	group int
	// digitBounded rejects matches embedded in longer digit runs. RE2 has no
	// lookaround, so the matcher checks the adjacent bytes instead.
	digitBounded bool
	validate     validator
}

// Registry maps categories to their PatternSpecs. It is immutable once built
// and safe for concurrent use by any number of scans.
type Registry struct {
	specs []PatternSpec
	byCat map[types.Category]int
	opts  Options
}

var (
	rePhone    = regexp.MustCompile(`(?:\+?86)?1[3-9][0-9]{9}`)
	reLandline = regexp.MustCompile(`(?:\(0[0-9]{2,3}\)[ ]?|0[0-9]{2,3}[- ])?[2-9][0-9]{6,7}`)
	reIDCard   = regexp.MustCompile(`[1-9][0-9]{5}(?:19|20)[0-9]{2}(?:0[1-9]|1[0-2])(?:0[1-9]|[12][0-9]|3[01])[0-9]{3}[0-9Xx]`)
	reAddress  = regexp.MustCompile(`(?:北京|上海|天津|重庆|广州|深圳|杭州|南京|武汉|成都|西安|沈阳|大连|青岛|济南|郑州|长沙|福州|厦门|哈尔滨|长春|太原|石家庄|呼和浩特|南宁|银川|乌鲁木齐|拉萨|西宁|兰州|贵阳|昆明|南昌|合肥|海口|三亚|香港|澳门|台北)(?:市|省|特别行政区)?[\x{4e00}-\x{9fa5}]{1,3}(?:区|县|市)[\x{4e00}-\x{9fa5}]{2,10}(?:路|街|道|巷|胡同)[\x{4e00}-\x{9fa5}0-9]{1,10}号?(?:[\x{4e00}-\x{9fa5}0-9]{1,10}(?:号楼|单元|室|号))?`)
	reEmail    = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)
	rePassword = regexp.MustCompile(`(?i)(?:密码|口令|password|pwd|pass)[：:= ][ \t]*([A-Za-z0-9@#$%^&*]{6,20})`)
	reCard     = regexp.MustCompile(`(?:[0-9]{4}[ -]?){3,4}[0-9]{0,4}`)
	reIP       = regexp.MustCompile(`\b(?:(?:25[0-5]|2[0-4][0-9]|[01]?[0-9][0-9]?)\.){3}(?:25[0-5]|2[0-4][0-9]|[01]?[0-9][0-9]?)\b`)
)

// NewRegistry builds the immutable pattern registry. Specs are registered in
// canonical category order so scans are deterministic.
func NewRegistry(opts Options) *Registry {
	if opts.ContextWindow <= 0 {
		opts.ContextWindow = DefaultOptions().ContextWindow
	}
	if opts.Labels == nil {
		opts.Labels = DefaultOptions().Labels
	}
	if opts.Scores == (Scores{}) {
		opts.Scores = DefaultOptions().Scores
	}
	specs := []PatternSpec{
		{Category: types.CatPhone, re: rePhone, digitBounded: true, validate: validatePhone},
		{Category: types.CatLandline, re: reLandline, digitBounded: true, validate: validateLandline},
		{Category: types.CatIDCard, re: reIDCard, digitBounded: true, validate: validateIDCard},
		{Category: types.CatAddress, re: reAddress, validate: validateAddress},
		{Category: types.CatEmail, re: reEmail, validate: validateEmail},
		{Category: types.CatPassword, re: rePassword, group: 1, validate: validatePassword},
		{Category: types.CatCreditCard, re: reCard, digitBounded: true, validate: validateCreditCard},
		{Category: types.CatIPAddress, re: reIP, validate: validateIPAddress},
	}
	byCat := make(map[types.Category]int, len(specs))
	for i, s := range specs {
		byCat[s.Category] = i
	}
	return &Registry{specs: specs, byCat: byCat, opts: opts}
}

// Options returns the registry's effective heuristics.
func (r *Registry) Options() Options { return r.opts }

// ActiveSpecs resolves the requested categories to their specs, preserving
// canonical order regardless of request order. Duplicates collapse. An
// unrecognized tag yields ErrUnknownCategory.
func (r *Registry) ActiveSpecs(cats []types.Category) ([]PatternSpec, error) {
	want := make(map[types.Category]bool, len(cats))
	for _, c := range cats {
		if _, ok := r.byCat[c]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownCategory, c)
		}
		want[c] = true
	}
	out := make([]PatternSpec, 0, len(want))
	for _, s := range r.specs {
		if want[s.Category] {
			out = append(out, s)
		}
	}
	return out, nil
}

// ParseCategories maps user-supplied tags to categories, expanding the "all"
// shorthand. Order and duplicates are normalized away by ActiveSpecs.
func ParseCategories(names []string) ([]types.Category, error) {
	if len(names) == 0 {
		return types.Categories(), nil
	}
	known := make(map[types.Category]bool, len(types.Categories()))
	for _, c := range types.Categories() {
		known[c] = true
	}
	var out []types.Category
	for _, n := range names {
		if n == types.CategoryAll {
			return types.Categories(), nil
		}
		c := types.Category(n)
		if !known[c] {
			return nil, fmt.Errorf("%w: %q", ErrUnknownCategory, n)
		}
		out = append(out, c)
	}
	return out, nil
}
