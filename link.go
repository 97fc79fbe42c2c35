package companyintel

import (
	"net/url"
	"regexp"
)

// DefaultMaxLinks is the default number of related pages fetched per report.
const DefaultMaxLinks = 5

// LinkCategory labels a link by the kind of page it points to.
type LinkCategory string

// Link categories, in the order rules are evaluated by default.
const (
	CategoryAbout      LinkCategory = "about"
	CategoryCareers    LinkCategory = "careers"
	CategoryProducts   LinkCategory = "products"
	CategoryTechnology LinkCategory = "technology"
	CategoryNews       LinkCategory = "news"
	CategoryTeam       LinkCategory = "team"
	CategoryCustomers  LinkCategory = "customers"
)

// LinkCandidate is a classified, fetch-worthy URL discovered on a page.
type LinkCandidate struct {
	URL      string       `json:"url"`
	Category LinkCategory `json:"category"`
}

// LinkRule assigns Category to links whose path matches Pattern.
type LinkRule struct {
	Category LinkCategory
	Pattern  *regexp.Regexp
}

// DefaultLinkRules returns the fixed rule table. Patterns are matched
// case-insensitively against the URL path only.
func DefaultLinkRules() []LinkRule {
	return []LinkRule{
		{CategoryAbout, regexp.MustCompile(`(?i)about|company|who-we-are|mission|our-story`)},
		{CategoryCareers, regexp.MustCompile(`(?i)career|jobs|join-us|hiring|work-with-us`)},
		{CategoryProducts, regexp.MustCompile(`(?i)product|solution|platform|services|pricing|features`)},
		{CategoryTechnology, regexp.MustCompile(`(?i)technology|tech|engineering|research|developers|api`)},
		{CategoryNews, regexp.MustCompile(`(?i)news|press|blog|media|announcement|investor`)},
		{CategoryTeam, regexp.MustCompile(`(?i)team|leadership|people|management|founders`)},
		{CategoryCustomers, regexp.MustCompile(`(?i)customer|case-stud|clients|partners|success-stor`)},
	}
}

// LinkClassifier labels links by matching their paths against a rule table.
// The first matching rule in table order wins; links matching no rule are
// dropped. LinkClassifier never fails and is safe for concurrent use.
type LinkClassifier struct {
	rules []LinkRule
}

// NewLinkClassifier returns a classifier over rules.
// A nil rules slice selects DefaultLinkRules.
func NewLinkClassifier(rules []LinkRule) *LinkClassifier {
	if rules == nil {
		rules = DefaultLinkRules()
	}
	return &LinkClassifier{rules: rules}
}

// Classify returns candidates for the links whose path matches a rule,
// preserving input order. Repeated URLs yield a single candidate.
func (c *LinkClassifier) Classify(links []string) []LinkCandidate {
	var candidates []LinkCandidate
	seen := make(map[string]bool)
	for _, link := range links {
		if seen[link] {
			continue
		}
		category, ok := c.categorize(link)
		if !ok {
			continue
		}
		seen[link] = true
		candidates = append(candidates, LinkCandidate{URL: link, Category: category})
	}
	return candidates
}

func (c *LinkClassifier) categorize(link string) (LinkCategory, bool) {
	u, err := url.Parse(link)
	if err != nil || u.Path == "" || u.Path == "/" {
		return "", false
	}
	for _, rule := range c.rules {
		if rule.Pattern.MatchString(u.Path) {
			return rule.Category, true
		}
	}
	return "", false
}
