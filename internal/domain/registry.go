package domain

import "fmt"

// Registry returns the four content categories with their curated sources
// and keyword tables. The tables are small and stable; keyword scoring over
// them is deliberate (no ML), so order and content are part of behavior.
func Registry() []Category {
	return []Category{finante(), asigurari(), tech(), investitii()}
}

// Lookup resolves a category by key.
func Lookup(key string) (Category, error) {
	for _, c := range Registry() {
		if c.Key == key {
			return c, nil
		}
	}
	return Category{}, fmt.Errorf("unknown category %q", key)
}

func finante() Category {
	return Category{
		Key:   "finante",
		Label: "Finanțe Personale",
		Icon:  "💰",
		Sources: []Source{
			{ID: "bnr", Name: "Banca Națională a României", Mode: SourceFeed, URL: "https://www.bnr.ro/RSS_200.aspx"},
			{ID: "zf", Name: "Ziarul Financiar", Mode: SourceFeed, URL: "https://www.zf.ro/rss"},
			{ID: "profit", Name: "Profit.ro", Mode: SourceFeed, URL: "https://www.profit.ro/rss"},
			{ID: "wall_street", Name: "Wall-Street.ro", Mode: SourceFeed, URL: "https://www.wall-street.ro/rss/economie.xml"},
		},
		Subcategories: Vocabulary{
			{Label: "credite", Keywords: []string{"credit", "credite", "ipotecar", "imobiliar", "dobândă", "IRCC", "ROBOR", "împrumut", "bancă", "refinanțare", "prima casă", "noua casă"}},
			{Label: "economisire", Keywords: []string{"economii", "economisire", "depozit", "cont economii", "buget", "cheltuieli"}},
			{Label: "investitii", Keywords: []string{"investiți", "acțiuni", "obligațiuni", "ETF", "bursă", "BVB", "portofoliu", "dividend", "titluri de stat", "fond de investiții"}},
			{Label: "taxe", Keywords: []string{"taxe", "impozit", "ANAF", "declarația unică", "CAS", "CASS", "TVA", "fiscal", "PFA", "SRL"}},
			{Label: "pensii", Keywords: []string{"pensie", "pilonul", "fond de pensii", "CNPP", "punct de pensie", "vârstă de pensionare"}},
		},
		SubcategoryLabels: map[string]string{
			"credite":     "Credite",
			"economisire": "Economisire",
			"investitii":  "Investiții",
			"taxe":        "Taxe",
			"pensii":      "Pensii",
		},
		BaseKeywords:     []string{"finanțe personale", "România", "2025"},
		MetaSubcatTerms:  5,
		ReadingTimeFloor: 2,
		FeedEntryCap:     10,
		ContentRuneCap:   2000,
		DefaultMaxItems:  5,
	}
}

func asigurari() Category {
	return Category{
		Key:   "asigurari",
		Label: "Asigurări",
		Icon:  "🛡️",
		Sources: []Source{
			{ID: "asf", Name: "ASF - Autoritatea de Supraveghere Financiară", Mode: SourcePage, URL: "https://asfromania.ro/ro/a/1/informatii-publice/comunicate", Selector: ".view-content .views-row"},
			{ID: "1asig", Name: "1asig.ro", Mode: SourceFeed, URL: "https://www.1asig.ro/rss/"},
			{ID: "xprimm", Name: "XPRIMM", Mode: SourcePage, URL: "https://www.xprimm.com/Romania/", Selector: ".news-list .news-item"},
			{ID: "zf_asig", Name: "Ziarul Financiar - Asigurări", Mode: SourceFeed, URL: "https://www.zf.ro/rss", FilterKeywords: []string{"asigur", "RCA", "CASCO", "poliț"}},
		},
		Subcategories: Vocabulary{
			{Label: "rca", Keywords: []string{"RCA", "asigurare auto", "obligatorie auto", "daune auto", "poliță auto", "asigurător auto", "despăgubire auto", "BAAR"}},
			{Label: "casco", Keywords: []string{"CASCO", "miniCASCO", "asigurare facultativă", "avarie", "furt auto", "decontare directă"}},
			{Label: "sanatate", Keywords: []string{"asigurare sănătate", "medical", "asigurare privată sănătate", "spitalizare", "diagnostic"}},
			{Label: "calatorie", Keywords: []string{"asigurare călătorie", "travel", "asistență rutieră", "carte verde", "asigurare vacanță"}},
			{Label: "locuinta", Keywords: []string{"asigurare locuință", "PAD", "PAID", "inundații", "cutremur", "asigurare casă"}},
		},
		SubcategoryLabels: map[string]string{
			"rca":       "RCA",
			"casco":     "CASCO",
			"sanatate":  "Sănătate",
			"calatorie": "Călătorie",
			"locuinta":  "Locuință",
		},
		BaseKeywords:     []string{"asigurări", "România", "2025"},
		MetaSubcatTerms:  4,
		ReadingTimeFloor: 2,
		FeedEntryCap:     15,
		ContentRuneCap:   2000,
		DefaultMaxItems:  5,
	}
}

func tech() Category {
	return Category{
		Key:   "tech",
		Label: "Tehnologie",
		Icon:  "💻",
		Sources: []Source{
			{ID: "arenait", Name: "ArenaIT.ro", Mode: SourceFeed, URL: "https://arenait.ro/feed/"},
			{ID: "go4it", Name: "Go4IT.ro", Mode: SourceFeed, URL: "https://www.go4it.ro/feed/"},
			{ID: "playtech", Name: "Playtech.ro", Mode: SourceFeed, URL: "https://playtech.ro/feed/"},
			{ID: "techradar", Name: "TechRadar", Mode: SourceFeed, URL: "https://www.techradar.com/rss", FilterKeywords: []string{"review", "best", "vs", "comparison"}},
			{ID: "theverge", Name: "The Verge", Mode: SourceFeed, URL: "https://www.theverge.com/rss/reviews/index.xml"},
		},
		Subcategories: Vocabulary{
			{Label: "telefoane", Keywords: []string{"telefon", "smartphone", "Samsung", "iPhone", "Pixel", "OnePlus", "Xiaomi", "Galaxy", "Motorola", "Nothing Phone", "POCO"}},
			{Label: "laptopuri", Keywords: []string{"laptop", "notebook", "MacBook", "ThinkPad", "Dell XPS", "ASUS", "Lenovo", "HP Pavilion", "ultrabook", "Chromebook"}},
			{Label: "software", Keywords: []string{"aplicație", "app", "software", "VPN", "antivirus", "Windows", "macOS", "Linux", "browser", "Chrome", "Firefox"}},
			{Label: "ai", Keywords: []string{"AI", "inteligență artificială", "ChatGPT", "Claude", "Gemini", "Copilot", "machine learning", "neural", "LLM", "GPT"}},
			{Label: "accesorii", Keywords: []string{"căști", "headphones", "earbuds", "smartwatch", "ceas inteligent", "tabletă", "monitor", "tastatură", "mouse"}},
		},
		SubcategoryLabels: map[string]string{
			"telefoane": "Telefoane",
			"laptopuri": "Laptopuri",
			"software":  "Software",
			"ai":        "AI",
			"accesorii": "Accesorii",
		},
		BaseKeywords:     []string{"tehnologie", "recenzie", "2025"},
		MetaSubcatTerms:  4,
		ReadingTimeFloor: 3,
		FeedEntryCap:     15,
		ContentRuneCap:   2500,
		DefaultMaxItems:  5,
	}
}

func investitii() Category {
	return Category{
		Key:   "investitii",
		Label: "Investiții",
		Icon:  "📈",
		Sources: []Source{
			{ID: "reuters_biz", Name: "Reuters Business", Mode: SourceFeed, URL: "https://www.reutersagency.com/feed/?taxonomy=best-sectors&post_type=best"},
			{ID: "ft_markets", Name: "Financial Times Markets", Mode: SourceFeed, URL: "https://www.ft.com/rss/markets"},
			{ID: "investing_ro", Name: "Investing.com Romania", Mode: SourceFeed, URL: "https://ro.investing.com/rss/news.rss"},
			{ID: "bvb_news", Name: "BVB News", Mode: SourcePage, URL: "https://bvb.ro/FinancialInstruments/SelectedData/NewsItem", Selector: ".news-list .news-item, .dataTable tr"},
			{ID: "romania_insider_biz", Name: "Romania Insider Business", Mode: SourceFeed, URL: "https://www.romania-insider.com/feed", FilterKeywords: []string{"ETF", "BVB", "investit", "actiuni", "fond", "bursa", "stock", "bond", "obligatiuni"}},
			{ID: "zf_burse", Name: "Ziarul Financiar - Burse", Mode: SourceFeed, URL: "https://www.zf.ro/rss", FilterKeywords: []string{"BVB", "ETF", "bursa", "actiuni", "investit", "fond", "BET"}},
			{ID: "ri_realestate", Name: "Romania Insider Real Estate", Mode: SourceFeed, URL: "https://www.romania-insider.com/feed", FilterKeywords: []string{"real estate", "imobiliar", "apartament", "rezidential", "dezvoltator", "proiect", "constructi", "Coresi", "AFI", "One United", "IULIUS", "Speedwell"}},
			{ID: "business_review", Name: "Business Review Property", Mode: SourceFeed, URL: "https://business-review.eu/feed", FilterKeywords: []string{"property", "real estate", "residential", "office", "logistics", "developer", "imobiliar", "Cluj", "Brasov", "Timisoara", "Bucuresti"}},
			{ID: "ri_corporate", Name: "Romania Insider Corporate", Mode: SourceFeed, URL: "https://www.romania-insider.com/feed", FilterKeywords: []string{"investit", "fabrica", "factory", "milioane euro", "million", "FDI", "corporat", "Knauf", "Continental", "Stada", "Bosch", "Mercedes", "Ford"}},
			{ID: "profit_invest", Name: "Profit.ro Investitii", Mode: SourceFeed, URL: "https://www.profit.ro/rss", FilterKeywords: []string{"investit", "fabrica", "proiect", "milioane", "corporat", "strain"}},
		},
		Subcategories: Vocabulary{
			{Label: "finante_internationale", Keywords: []string{
				"global", "international", "Fed", "BCE", "ECB", "inflatie", "inflation",
				"dollar", "euro", "tariff", "trade war", "recession", "GDP", "PIB",
				"S&P 500", "Dow Jones", "NASDAQ", "emerging markets", "crypto", "bitcoin",
				"oil", "petrol", "commodities", "gold", "aur",
			}},
			{Label: "etf_bvb", Keywords: []string{
				"ETF", "BVB", "BET", "bursa", "stock exchange", "actiuni", "shares",
				"fond investitii", "TVBETETF", "BKBETETF", "InterCapital", "Patria",
				"obligatiuni", "bonds", "titluri de stat", "Hidroelectrica", "OMV Petrom",
				"Banca Transilvania", "Romgaz", "Nuclearelectrica", "dividend",
				"portofoliu", "randament", "yield",
			}},
			{Label: "imobiliare", Keywords: []string{
				"imobiliar", "real estate", "apartament", "rezidential", "dezvoltator",
				"developer", "constructi", "proiect", "Coresi", "AFI", "One United",
				"IULIUS", "Speedwell", "NEPI", "Globalworth", "WDP", "logistic",
				"birouri", "office", "retail", "mall", "hotel", "mixed-use",
				"Brasov", "Cluj", "Timisoara", "Bucuresti", "Bucharest", "Oradea",
				"Sibiu", "Iasi", "pret", "price", "chirii", "rent",
			}},
			{Label: "investitii_corporative", Keywords: []string{
				"investit", "fabrica", "factory", "plant", "FDI", "corporat",
				"multinational", "strain", "foreign", "milioane euro", "million",
				"Continental", "Bosch", "Mercedes", "Ford", "Knauf", "Stada",
				"Renault", "Dacia", "Nokia", "Oracle", "Amazon", "Google",
				"Microsoft", "Kaufland", "Lidl", "Dedeman", "locuri de munca", "jobs",
			}},
		},
		Cities: Vocabulary{
			{Label: "brasov", Keywords: []string{"Brasov", "Brașov", "Coresi", "AFI Park Brasov", "Ghimbav", "Tractorul"}},
			{Label: "bucuresti", Keywords: []string{"Bucuresti", "București", "Bucharest", "Ilfov", "One United", "Floreasca", "Pipera", "Baneasa"}},
			{Label: "timisoara", Keywords: []string{"Timisoara", "Timișoara", "Iulius Town", "Paltim", "Continental Timisoara"}},
			{Label: "cluj", Keywords: []string{"Cluj", "Cluj-Napoca", "RIVUS", "Iulius Mall Cluj", "Borhanci", "Sophia"}},
			{Label: "emergente", Keywords: []string{"Oradea", "Sibiu", "Iasi", "Iași", "Constanta", "Constanța", "Craiova", "Arad", "Alba Iulia"}},
		},
		SubcategoryLabels: map[string]string{
			"finante_internationale": "Finante Internationale",
			"etf_bvb":                "ETF & BVB",
			"imobiliare":             "Imobiliare",
			"investitii_corporative": "Investitii Corporative",
		},
		BaseKeywords:     []string{"investitii", "Romania", "2026"},
		MetaSubcatTerms:  5,
		ReadingTimeFloor: 3,
		FeedEntryCap:     20,
		ContentRuneCap:   3000,
		DefaultMaxItems:  8,
	}
}
