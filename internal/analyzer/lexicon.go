package analyzer

// Lexicons used by the sentiment and marketing analyzers. Loaded once at
// package init into immutable maps; analyzers never mutate them.

// positiveTerms score +1 toward polarity.
var positiveTerms = map[string]bool{
	"amazing": true, "awesome": true, "beautiful": true, "best": true,
	"better": true, "brilliant": true, "care": true, "comfortable": true,
	"delight": true, "delightful": true, "durable": true, "easy": true,
	"excellent": true, "exceptional": true, "exclusive": true, "fast": true,
	"favorite": true, "finest": true, "free": true, "fresh": true,
	"friendly": true, "good": true, "great": true, "happy": true,
	"high-quality": true, "innovative": true, "love": true, "loved": true,
	"perfect": true, "premium": true, "quality": true, "reliable": true,
	"satisfied": true, "seamless": true, "smooth": true, "superior": true,
	"sustainable": true, "trusted": true, "unique": true, "wonderful": true,
}

// negativeTerms score -1 toward polarity.
var negativeTerms = map[string]bool{
	"bad": true, "broken": true, "cheap": true, "complaint": true,
	"damaged": true, "defective": true, "delay": true, "delayed": true,
	"difficult": true, "disappointed": true, "disappointing": true,
	"expensive": true, "fail": true, "failed": true, "faulty": true,
	"hard": true, "issue": true, "late": true, "lost": true,
	"missing": true, "negative": true, "never": true, "poor": true,
	"problem": true, "refuse": true, "refused": true, "slow": true,
	"terrible": true, "unfortunately": true, "unhappy": true,
	"worst": true, "wrong": true,
}

// stopwords are excluded from theme and keyword frequency counts.
var stopwords = map[string]bool{
	"a": true, "about": true, "after": true, "all": true, "also": true,
	"and": true, "any": true, "are": true, "as": true, "at": true,
	"be": true, "because": true, "but": true, "by": true, "can": true,
	"do": true, "for": true, "from": true, "get": true, "has": true,
	"have": true, "her": true, "his": true, "how": true, "if": true,
	"in": true, "into": true, "is": true, "it": true, "its": true,
	"just": true, "may": true, "more": true, "most": true, "not": true,
	"of": true, "on": true, "one": true, "or": true, "our": true,
	"out": true, "over": true, "so": true, "than": true, "that": true,
	"the": true, "their": true, "them": true, "then": true, "there": true,
	"these": true, "they": true, "this": true, "to": true, "us": true,
	"use": true, "was": true, "we": true, "were": true, "what": true,
	"when": true, "where": true, "which": true, "while": true, "who": true,
	"will": true, "with": true, "you": true, "your": true,
}

// Persona labels.
const (
	PersonaYoungCasual  = "young & casual"
	PersonaPremium      = "premium & luxury"
	PersonaProfessional = "professional & B2B"
	PersonaEco          = "eco-conscious"
)

// personaLexicons weight corpus terms toward audience personas.
// Distinctive terms carry weight 2, supporting terms weight 1.
var personaLexicons = map[string]map[string]int{
	PersonaYoungCasual: {
		"trendy": 2, "fun": 2, "cool": 2, "vibe": 2, "playful": 2,
		"fresh": 1, "bold": 1, "street": 1, "casual": 1, "colorful": 1,
		"chill": 1, "hip": 1, "style": 1,
	},
	PersonaPremium: {
		"luxury": 2, "premium": 2, "exclusive": 2, "bespoke": 2,
		"handcrafted": 2, "elegant": 1, "sophisticated": 1, "refined": 1,
		"heritage": 1, "artisan": 1, "finest": 1, "signature": 1,
	},
	PersonaProfessional: {
		"business": 2, "professional": 2, "enterprise": 2, "corporate": 2,
		"solution": 1, "productivity": 1, "reliable": 1, "industry": 1,
		"workflow": 1, "compliance": 1, "efficiency": 1, "office": 1,
	},
	PersonaEco: {
		"sustainable": 2, "eco": 2, "organic": 2, "recycled": 2,
		"green": 1, "ethical": 1, "planet": 1, "natural": 1,
		"biodegradable": 1, "responsibly": 1, "earth": 1,
	},
}

// contentStrategies suggests content directions per dominant persona.
var contentStrategies = map[string][]string{
	PersonaYoungCasual: {
		"Lean into short-form video and user-generated content",
		"Run trend-driven seasonal campaigns across social channels",
		"Showcase real customers styling or using products",
	},
	PersonaPremium: {
		"Publish craftsmanship and provenance storytelling",
		"Offer early access and limited editions to loyal customers",
		"Invest in editorial-grade product photography",
	},
	PersonaProfessional: {
		"Produce case studies and ROI-focused content",
		"Build an email nurture sequence for repeat B2B buyers",
		"Publish comparison guides addressing procurement questions",
	},
	PersonaEco: {
		"Document supply-chain transparency and material sourcing",
		"Highlight certifications and measurable impact",
		"Create educational content on sustainable product care",
	},
}
