package news

// Keywords holds the static relevance tables the scorer is built from.
// They are configuration data, not runtime state: callers normally use
// DefaultKeywords and tweak the slices before constructing a Scorer.
type Keywords struct {
	// Clubs maps a canonical club name to its surface spellings (EN/AR).
	// A club contributes its bonus at most once per headline.
	Clubs map[string][]string

	// Leagues are competition keywords; each one matched adds its bonus.
	Leagues []string

	// Positive are result/transfer/injury words that make a headline
	// actionable rather than filler.
	Positive []string

	// Negative are regex patterns for rumor and speculation language.
	Negative []string

	// SourceWeights maps a substring of the normalized source name to a
	// multiplier. First match in Sources order wins; unknown sources get 1.0.
	SourceWeights []SourceWeight
}

// SourceWeight is one reputable-source multiplier, matched by substring.
type SourceWeight struct {
	Substring string
	Weight    float64
}

// DefaultKeywords returns the curated bilingual tables the digest ships with.
func DefaultKeywords() Keywords {
	return Keywords{
		Clubs: map[string][]string{
			// Spain
			"real madrid": {"real madrid", "madrid", "ريال مدريد"},
			"barcelona":   {"barcelona", "barça", "barca", "برشلونة"},
			// Italy
			"ac milan": {"ac milan", "milan", "ميلان"},
			// England
			"manchester united": {"man united", "man utd", "manchester united", "يونايتد"},
			"manchester city":   {"man city", "manchester city", "السيتي"},
			"arsenal":           {"arsenal", "آرسنال", "ارسنال"},
			"chelsea":           {"chelsea", "تشيلسي"},
			// Saudi
			"al ahli": {"al ahli", "al-ahli", "alahli", "الأهلي", "الأهلي جدة", "أهلي جدة"},
		},
		Leagues: []string{
			"saudi pro league", "spl", "الدوري السعودي", "دوري روشن", "روشن السعودي",
		},
		Positive: []string{
			"official", "confirmed", "statement", "signs", "suspended", "injury", "out",
			"return", "deal", "transfer", "joins", "sold", "loan", "sack", "appointed",
			"wins", "beats", "draw", "fixtures", "result", "deadline",
			"رسمي", "تعاقد", "انتقال", "إيقاف", "إصابة", "غياب", "عودة", "مدرب", "فوز", "خسارة", "تعادل",
		},
		Negative: []string{
			`\brumou?r\b`, `\brumou?rs\b`, `\bgossip\b`, `\btalk\b`, `\blinked\b`,
			`\bset to\b`, `\breportedly\b`, `\bconsidering\b`, `\bclose to\b`,
			`مصدر|إشاعة|تقارير|مرشح|قد|يرتبط|محتمل`,
		},
		SourceWeights: []SourceWeight{
			{"bbc", 1.15},
			{"guardian", 1.10},
			{"skysports", 1.05},
			{"espn", 1.0},
		},
	}
}

// DefaultFeeds are the RSS feeds polled when none are configured.
var DefaultFeeds = []string{
	"https://www.espn.com/espn/rss/soccer/news",
	"https://feeds.bbci.co.uk/sport/football/rss.xml",
	"https://www.theguardian.com/football/rss",
	"https://www.skysports.com/rss/12040",
}
