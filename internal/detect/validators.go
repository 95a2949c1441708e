package detect

import (
	"regexp"
	"strings"

	"github.com/ccjmqdzj/sensitive-info-scanner/internal/types"
)

// Validators are pure functions from Candidate to an accepted Finding or a
// rejection. They run after shape matching and are where checksums, boundary
// sanity, and label corroboration live.

var (
	rePhoneCanon    = regexp.MustCompile(`^1[3-9][0-9]{9}$`)
	reLandlineCanon = regexp.MustCompile(`^(?:\(0[0-9]{2,3}\) ?|0[0-9]{2,3}[- ])?[2-9][0-9]{6,7}$`)
	reDigits16to19  = regexp.MustCompile(`^[0-9]{16,19}$`)
)

// Numbers that appear in every tutorial and carrier ad; without a
// corroborating label they are noise, not leaks.
var placeholderPhones = map[string]bool{
	"13800138000": true,
	"13912345678": true,
}

var reservedIPs = map[string]bool{
	"127.0.0.1":       true,
	"0.0.0.0":         true,
	"255.255.255.255": true,
}

func accept(c Candidate, value string, conf float64) (types.Finding, bool) {
	return types.Finding{
		Category:   c.Category,
		Value:      value,
		Match:      c.Match,
		Start:      c.Start,
		End:        c.End,
		Confidence: conf,
	}, true
}

func reject() (types.Finding, bool) { return types.Finding{}, false }

// hasLabel reports whether any corroborating keyword for the candidate's
// category appears in its context window, case-insensitively.
func hasLabel(c Candidate, opts Options) bool {
	ctx := strings.ToLower(c.Context)
	for _, kw := range opts.Labels[c.Category] {
		if strings.Contains(ctx, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}

func digitsOf(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if isDigit(s[i]) {
			b.WriteByte(s[i])
		}
	}
	return b.String()
}

func validatePhone(c Candidate, opts Options) (types.Finding, bool) {
	digits := digitsOf(c.Match)
	if len(digits) > 11 && strings.HasPrefix(digits, "86") {
		digits = digits[2:]
	}
	if !rePhoneCanon.MatchString(digits) {
		return reject()
	}
	if hasLabel(c, opts) {
		return accept(c, digits, opts.Scores.Label)
	}
	if placeholderPhones[digits] {
		return reject()
	}
	return accept(c, digits, opts.Scores.Shape)
}

func validateLandline(c Candidate, opts Options) (types.Finding, bool) {
	if !reLandlineCanon.MatchString(c.Match) {
		return reject()
	}
	if hasLabel(c, opts) {
		return accept(c, c.Match, opts.Scores.Label)
	}
	return accept(c, c.Match, opts.Scores.Shape)
}

// GB 11643 check-digit weights for the first 17 digits.
var idCardWeights = [17]int{7, 9, 10, 5, 8, 4, 2, 1, 6, 3, 7, 9, 10, 5, 8, 4, 2}

// idCardCheckChars maps (weighted sum mod 11) to the check character.
const idCardCheckChars = "10X98765432"

// idCardCheckChar computes the GB 11643 check character over the 17 leading
// digits. Callers must pass exactly 17 ASCII digits.
func idCardCheckChar(first17 string) byte {
	sum := 0
	for i := 0; i < 17; i++ {
		sum += int(first17[i]-'0') * idCardWeights[i]
	}
	return idCardCheckChars[sum%11]
}

func validateIDCard(c Candidate, opts Options) (types.Finding, bool) {
	id := c.Match
	if len(id) != 18 {
		return reject()
	}
	check := id[17]
	if check == 'x' {
		check = 'X'
	}
	if idCardCheckChar(id[:17]) != check {
		// No partial credit: a failed checksum is an ordinary number.
		return reject()
	}
	return accept(c, strings.ToUpper(id), opts.Scores.IDCard)
}

// addressUnitMarkers are the administrative-unit suffixes the address
// heuristic counts. Confidence scales with the number of distinct marker
// kinds present; there is no structural checksum for addresses, so this is a
// known precision ceiling.
var addressUnitMarkers = []string{
	"省", "市", "区", "县",
	"路", "街", "道", "巷", "胡同",
	"号楼", "单元", "室", "号",
}

func validateAddress(c Candidate, opts Options) (types.Finding, bool) {
	kinds := 0
	rest := c.Match
	for _, m := range addressUnitMarkers {
		if strings.Contains(rest, m) {
			kinds++
			// Strip the counted marker so 号楼 does not also count as 号.
			rest = strings.ReplaceAll(rest, m, "")
		}
	}
	if kinds == 0 {
		return reject()
	}
	conf := float64(kinds) * opts.Scores.AddressPerKeyword
	if conf > opts.Scores.AddressCap {
		conf = opts.Scores.AddressCap
	}
	return accept(c, c.Match, conf)
}

func validateEmail(c Candidate, opts Options) (types.Finding, bool) {
	addr := c.Match
	if hasLabel(c, opts) {
		return accept(c, addr, opts.Scores.Label)
	}
	local := strings.ToLower(addr[:strings.IndexByte(addr, '@')])
	if local == "test" || local == "example" || local == "sample" {
		return accept(c, addr, opts.Scores.TestEmail)
	}
	return accept(c, addr, opts.Scores.Shape)
}

func validatePassword(c Candidate, opts Options) (types.Finding, bool) {
	// The label is the signal; once the label+token shape matched there is
	// nothing further to corroborate, so never auto-reject.
	return accept(c, c.Value, opts.Scores.Password)
}

// luhnValid runs the Luhn checksum over a string of ASCII digits.
func luhnValid(digits string) bool {
	sum := 0
	double := false
	for i := len(digits) - 1; i >= 0; i-- {
		d := int(digits[i] - '0')
		if double {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
		double = !double
	}
	return sum%10 == 0
}

func validateCreditCard(c Candidate, opts Options) (types.Finding, bool) {
	digits := digitsOf(c.Match)
	if !reDigits16to19.MatchString(digits) {
		return reject()
	}
	if !luhnValid(digits) {
		return reject()
	}
	return accept(c, digits, opts.Scores.CreditCard)
}

func validateIPAddress(c Candidate, opts Options) (types.Finding, bool) {
	parts := strings.Split(c.Match, ".")
	if len(parts) != 4 {
		return reject()
	}
	for _, p := range parts {
		// The pattern already bounds each octet at 255; reject leading
		// zeros beyond a lone "0" here.
		if len(p) > 1 && p[0] == '0' {
			return reject()
		}
	}
	if hasLabel(c, opts) {
		return accept(c, c.Match, opts.Scores.Label)
	}
	if reservedIPs[c.Match] {
		return accept(c, c.Match, opts.Scores.ReservedIP)
	}
	return accept(c, c.Match, opts.Scores.Shape)
}
