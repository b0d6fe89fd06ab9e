package analyzer

import (
	"fmt"
	"sort"
)

// rule inspects an analysis result and emits a recommendation, or nil when
// the trigger condition is absent. Rules never fail.
type rule func(res *AnalysisResult) *Recommendation

// recommendationRules is the fixed, ordered rule table. Definition order is
// the tie-break within a priority level, so new rules belong in their
// priority block.
var recommendationRules = buildRules()

// GenerateRecommendations evaluates every rule independently and returns the
// fired recommendations stably sorted HIGH, MEDIUM, LOW.
func GenerateRecommendations(res *AnalysisResult) []Recommendation {
	var out []Recommendation
	for _, r := range recommendationRules {
		if rec := r(res); rec != nil {
			out = append(out, *rec)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Priority.rank() < out[j].Priority.rank()
	})

	return out
}

func buildRules() []rule {
	return []rule{
		// HIGH priority - critical for AEO success.
		faqSchemaRule,
		questionHeadingsRule,
		expandFirstParaRule,
		shortenFirstParaRule,
		listsRule,

		// MEDIUM priority - important for better performance.
		authorMetaRule,
		publicationDateRule,
		howtoSchemaRule,
		tldrRule,
		tablesRule,
		articleSchemaRule,
		authorBioRule,

		// LOW priority - nice to have.
		readabilityRule,
		paragraphLengthRule,
		entitiesRule,
		sourcesRule,
		tocRule,
		internalLinksRule,
		wordCountRule,
		contactLinkRule,
	}
}

func faqSchemaRule(res *AnalysisResult) *Recommendation {
	if res.Schema.FAQPresent {
		return nil
	}
	return &Recommendation{
		Priority: PriorityHigh,
		Category: "Schema Markup",
		Action:   "Implement FAQ Schema Markup",
		Impact:   `Critical for appearing in "People Also Ask" boxes and AI answer engines. FAQ schema allows AI to extract Q&A directly.`,
		Effort:   "Medium",
		Steps: []string{
			"1. Identify 3-5 common questions your page answers",
			"2. Format them as clear question-answer pairs",
			"3. Add JSON-LD FAQ schema to your page <head> or body",
			"4. Test with Google Rich Results Test tool",
			"5. Example: Use schema.org/FAQPage format",
		},
		Example: `<script type="application/ld+json">
{
  "@context": "https://schema.org",
  "@type": "FAQPage",
  "mainEntity": [{
    "@type": "Question",
    "name": "Your question here?",
    "acceptedAnswer": {
      "@type": "Answer",
      "text": "Your answer here"
    }
  }]
}</script>`,
	}
}

func questionHeadingsRule(res *AnalysisResult) *Recommendation {
	if res.Questions.QuestionHeadings >= 3 {
		return nil
	}
	return &Recommendation{
		Priority: PriorityHigh,
		Category: "Content Structure",
		Action:   fmt.Sprintf("Add More Question-Based Headings (Currently: %d, Target: 5+)", res.Questions.QuestionHeadings),
		Impact:   "Question headings are how AI engines understand what your content answers. Conversational AI searches heavily rely on question-format queries.",
		Effort:   "Low",
		Steps: []string{
			"1. List the top questions your target audience asks",
			"2. Restructure existing sections into question format",
			`3. Use H2 or H3 tags for questions (e.g., "What is X?", "How does Y work?")`,
			"4. Provide clear, concise answers immediately after each question",
			"5. Front-load the answer in the first 1-2 sentences",
		},
		Example: `Good: <h2>What is Answer Engine Optimization?</h2>
Bad: <h2>Introduction to AEO</h2>

Good: <h2>How Do I Optimize for ChatGPT?</h2>
Bad: <h2>ChatGPT Optimization Techniques</h2>`,
	}
}

func expandFirstParaRule(res *AnalysisResult) *Recommendation {
	if res.Snippet.FirstParaWords >= 40 {
		return nil
	}
	return &Recommendation{
		Priority: PriorityHigh,
		Category: "Snippet Optimization",
		Action:   fmt.Sprintf("Expand First Paragraph (Currently: %d words, Target: 40-60)", res.Snippet.FirstParaWords),
		Impact:   "AI engines prioritize the opening paragraph. Too short = not enough context. The 40-60 word range is optimal for featured snippets.",
		Effort:   "Low",
		Steps: []string{
			"1. Start with a direct answer to the main question",
			"2. Add 1-2 sentences of essential context",
			"3. Include the primary keyword naturally",
			"4. Aim for exactly 40-60 words",
			"5. Make it self-contained (understandable without reading further)",
		},
		Example: `Good (52 words): "Answer Engine Optimization (AEO) is the practice of optimizing content to be easily discovered and cited by AI-powered search engines like ChatGPT, Claude, and Perplexity. Unlike traditional SEO which focuses on ranking in search results, AEO ensures your content is selected as the authoritative answer that AI systems reference when responding to user queries."`,
	}
}

func shortenFirstParaRule(res *AnalysisResult) *Recommendation {
	if res.Snippet.FirstParaWords <= 60 {
		return nil
	}
	return &Recommendation{
		Priority: PriorityHigh,
		Category: "Snippet Optimization",
		Action:   fmt.Sprintf("Shorten First Paragraph (Currently: %d words, Target: 40-60)", res.Snippet.FirstParaWords),
		Impact:   "First paragraphs longer than 60 words are less likely to be used as featured snippets. AI engines prefer concise, direct answers.",
		Effort:   "Low",
		Steps: []string{
			"1. Identify the core answer in your opening",
			"2. Remove redundant phrases and fluff",
			"3. Move supporting details to the second paragraph",
			"4. Keep only essential context",
			"5. Recount words to hit 40-60 target",
		},
		Example: `Before (78 words): "In this comprehensive guide, we will explore the fascinating world of Answer Engine Optimization, which is becoming increasingly important in today's digital landscape. AEO represents a paradigm shift from traditional SEO practices, and understanding it is crucial for content creators and marketers who want to succeed in an AI-driven future..."

After (48 words): "Answer Engine Optimization (AEO) optimizes content for AI search engines like ChatGPT and Perplexity. Unlike traditional SEO that focuses on rankings, AEO ensures AI systems cite your content as authoritative answers to user queries."`,
	}
}

func listsRule(res *AnalysisResult) *Recommendation {
	if res.Snippet.Lists > 0 {
		return nil
	}
	return &Recommendation{
		Priority: PriorityHigh,
		Category: "Content Format",
		Action:   "Add Bulleted or Numbered Lists",
		Impact:   "Lists are extremely easy for AI to parse and extract. They increase snippet visibility by 300% and are preferred for step-by-step answers.",
		Effort:   "Low",
		Steps: []string{
			"1. Identify any sequences, steps, or related items in your content",
			"2. Convert paragraph-format lists into bullet points or numbered lists",
			"3. Use numbered lists for sequential steps or rankings",
			"4. Use bullet points for non-sequential items or features",
			"5. Keep each list item to 1-2 sentences maximum",
			"6. Aim for 3-7 items per list (optimal for readability)",
		},
		Example: `Before: "The benefits include improved visibility, better user engagement, and increased authority."

After:
- Improved visibility in AI search results
- Better user engagement through clear answers
- Increased authority and citation frequency`,
	}
}

func authorMetaRule(res *AnalysisResult) *Recommendation {
	if res.EEAT.HasAuthorMeta {
		return nil
	}
	return &Recommendation{
		Priority: PriorityMedium,
		Category: "E-E-A-T",
		Action:   "Add Author Metadata and Credentials",
		Impact:   "Claude and Perplexity heavily weight author credibility. Author info increases trust signals by 40% and is critical for YMYL (Your Money Your Life) content.",
		Effort:   "Low",
		Steps: []string{
			`1. Add author meta tag: <meta name="author" content="Author Name">`,
			"2. Include author byline at top of article with credentials",
			"3. Link to author bio page or LinkedIn profile",
			"4. Add author schema markup with expertise details",
			"5. Include author photo for additional trust",
		},
		Example: `<meta name="author" content="Dr. Jane Smith">

<script type="application/ld+json">
{
  "@context": "https://schema.org",
  "@type": "Article",
  "author": {
    "@type": "Person",
    "name": "Dr. Jane Smith",
    "jobTitle": "AI Research Scientist",
    "url": "https://example.com/author/jane-smith"
  }
}</script>`,
	}
}

func publicationDateRule(res *AnalysisResult) *Recommendation {
	if res.EEAT.HasDate {
		return nil
	}
	return &Recommendation{
		Priority: PriorityMedium,
		Category: "E-E-A-T",
		Action:   "Add Publication and Update Dates",
		Impact:   "AI engines prefer recent content. Dates signal freshness and help AI determine if information is current or outdated.",
		Effort:   "Low",
		Steps: []string{
			`1. Add meta tag: <meta property="article:published_time" content="2024-01-15">`,
			"2. Display publication date visibly on page",
			`3. Add "Last Updated" date if content is refreshed`,
			"4. Include datePublished and dateModified in Article schema",
			"5. Keep content updated and reflect changes in dates",
		},
		Example: `<meta property="article:published_time" content="2024-01-15T10:00:00Z">
<meta property="article:modified_time" content="2024-03-20T14:30:00Z">

Published: January 15, 2024 | Last Updated: March 20, 2024`,
	}
}

func howtoSchemaRule(res *AnalysisResult) *Recommendation {
	if res.Schema.HowToPresent || res.Questions.QuestionHeadings == 0 {
		return nil
	}
	return &Recommendation{
		Priority: PriorityMedium,
		Category: "Schema Markup",
		Action:   "Implement HowTo Schema for Process Content",
		Impact:   `HowTo schema is perfect for instructional content. It enables step-by-step extraction and increases visibility for "how to" queries by 250%.`,
		Effort:   "Medium",
		Steps: []string{
			"1. Identify if your content includes a process or tutorial",
			"2. Break the process into clear, sequential steps",
			"3. Add HowTo schema with each step defined",
			"4. Include tools/materials needed if applicable",
			"5. Estimate total time for completion",
			"6. Test with Google Rich Results Test",
		},
		Example: `<script type="application/ld+json">
{
  "@context": "https://schema.org",
  "@type": "HowTo",
  "name": "How to Optimize Content for AEO",
  "step": [{
    "@type": "HowToStep",
    "name": "Add Question Headings",
    "text": "Restructure your headings as questions..."
  }, {
    "@type": "HowToStep",
    "name": "Implement Schema Markup",
    "text": "Add FAQ or HowTo schema to your page..."
  }]
}</script>`,
	}
}

func tldrRule(res *AnalysisResult) *Recommendation {
	if res.Structure.HasTLDR {
		return nil
	}
	return &Recommendation{
		Priority: PriorityMedium,
		Category: "Content Structure",
		Action:   "Add TL;DR or Executive Summary",
		Impact:   "A summary section provides AI engines with a quick extraction point. It increases the likelihood of being cited by 180%.",
		Effort:   "Medium",
		Steps: []string{
			`1. Add a "TL;DR" or "Key Takeaways" section at the top`,
			"2. Summarize main points in 3-5 bullet points",
			"3. Each point should be one sentence",
			"4. Place it immediately after the introduction",
			"5. Use bold formatting: <strong>TL;DR:</strong>",
			"6. Make it scannable and self-contained",
		},
		Example: `<strong>TL;DR:</strong>
- AEO optimizes content for AI search engines like ChatGPT and Claude
- Focus on question-based headings, structured data, and concise answers
- Schema markup (FAQ, HowTo) increases AI citation by 250%
- First paragraph should be 40-60 words for optimal snippet performance`,
	}
}

func tablesRule(res *AnalysisResult) *Recommendation {
	if res.Snippet.Tables > 0 || res.Structure.WordCount <= 500 {
		return nil
	}
	return &Recommendation{
		Priority: PriorityMedium,
		Category: "Content Format",
		Action:   "Add Comparison Tables or Data Tables",
		Impact:   "Tables are excellent for structured data extraction. AI engines can easily parse and cite table data. Especially effective for comparisons and specifications.",
		Effort:   "Medium",
		Steps: []string{
			"1. Identify data that can be presented in table format",
			"2. Common table types: comparisons, features, pricing, specifications",
			"3. Use proper HTML table structure with <thead> and <tbody>",
			"4. Include clear column headers",
			"5. Keep tables simple (3-5 columns max for readability)",
			"6. Add table caption for context",
		},
		Example: `<table>
  <caption>AEO vs Traditional SEO</caption>
  <thead>
    <tr>
      <th>Aspect</th>
      <th>Traditional SEO</th>
      <th>AEO</th>
    </tr>
  </thead>
  <tbody>
    <tr>
      <td>Goal</td>
      <td>Rank in search results</td>
      <td>Be cited by AI engines</td>
    </tr>
  </tbody>
</table>`,
	}
}

func articleSchemaRule(res *AnalysisResult) *Recommendation {
	if res.Schema.ArticlePresent || res.Structure.WordCount <= 300 {
		return nil
	}
	return &Recommendation{
		Priority: PriorityMedium,
		Category: "Schema Markup",
		Action:   "Add Article Schema Markup",
		Impact:   "Article schema provides essential metadata that AI engines use to understand and categorize your content.",
		Effort:   "Low",
		Steps: []string{
			"1. Determine article type (Article, BlogPosting, NewsArticle)",
			"2. Add JSON-LD with headline, description, author, date",
			"3. Include image URL if available",
			"4. Add publisher information",
			"5. Test with Google Rich Results Test",
		},
		Example: `<script type="application/ld+json">
{
  "@context": "https://schema.org",
  "@type": "Article",
  "headline": "Complete Guide to AEO",
  "description": "Learn how to optimize content for AI engines",
  "author": {
    "@type": "Person",
    "name": "Jane Smith"
  },
  "datePublished": "2024-01-15"
}</script>`,
	}
}

func authorBioRule(res *AnalysisResult) *Recommendation {
	if res.EEAT.HasAuthorBio || !res.EEAT.HasAuthorMeta {
		return nil
	}
	return &Recommendation{
		Priority: PriorityMedium,
		Category: "E-E-A-T",
		Action:   "Create Author Bio Section",
		Impact:   "An author bio establishes expertise and builds trust. Critical for Claude which emphasizes author credibility.",
		Effort:   "Low",
		Steps: []string{
			"1. Add author bio section at end of article",
			"2. Include 2-3 sentences about author expertise",
			"3. Mention relevant credentials, experience, or achievements",
			"4. Add link to full author profile or LinkedIn",
			"5. Include professional headshot if possible",
		},
		Example: `<div class="author-bio">
  <h3>About the Author</h3>
  <p><strong>Dr. Jane Smith</strong> is an AI Research Scientist with 10 years of experience in natural language processing. She has published 15 peer-reviewed papers on semantic search and advises Fortune 500 companies on AI strategy.</p>
  <a href="/author/jane-smith">View full profile</a>
</div>`,
	}
}

func readabilityRule(res *AnalysisResult) *Recommendation {
	if res.Structure.FleschReadingEase >= 60 {
		return nil
	}
	return &Recommendation{
		Priority: PriorityLow,
		Category: "Readability",
		Action:   fmt.Sprintf("Improve Readability Score (Current: %.1f, Target: 60+)", res.Structure.FleschReadingEase),
		Impact:   "Higher readability scores mean AI engines can better understand and extract your content. Aim for 8th-9th grade reading level.",
		Effort:   "High",
		Steps: []string{
			"1. Use shorter sentences (15-20 words average)",
			"2. Replace complex words with simpler alternatives",
			"3. Break up long paragraphs (3-4 sentences max)",
			"4. Use active voice instead of passive voice",
			"5. Add transition words for flow",
			"6. Test with Hemingway Editor or similar tools",
		},
		Example: `Before: "The implementation of Answer Engine Optimization methodologies necessitates a comprehensive understanding of the algorithmic processes utilized by contemporary AI-powered search infrastructures."

After: "To optimize for answer engines, you need to understand how modern AI search systems work."`,
	}
}

func paragraphLengthRule(res *AnalysisResult) *Recommendation {
	if res.Structure.AvgParaLength <= 100 {
		return nil
	}
	return &Recommendation{
		Priority: PriorityLow,
		Category: "Readability",
		Action:   fmt.Sprintf("Shorten Paragraphs (Current avg: %.1f words, Target: 50-75)", res.Structure.AvgParaLength),
		Impact:   "Shorter paragraphs improve scannability and make it easier for AI to identify discrete concepts and extract answers.",
		Effort:   "Medium",
		Steps: []string{
			"1. Aim for 2-4 sentences per paragraph",
			"2. One main idea per paragraph",
			"3. Use paragraph breaks for better visual flow",
			"4. Split long paragraphs at natural transition points",
			"5. Keep most paragraphs under 75 words",
		},
		Example: `Before: One long 150-word paragraph covering multiple ideas.

After:
Split into 3 shorter paragraphs:
- Paragraph 1: Introduce main concept (50 words)
- Paragraph 2: Explain benefits (60 words)
- Paragraph 3: Provide example (55 words)`,
	}
}

func entitiesRule(res *AnalysisResult) *Recommendation {
	if res.Entities.EntitiesFound >= 10 {
		return nil
	}
	return &Recommendation{
		Priority: PriorityLow,
		Category: "Semantic SEO",
		Action:   fmt.Sprintf("Increase Entity Mentions (Current: %d, Target: 15+)", res.Entities.EntitiesFound),
		Impact:   "Entities (proper nouns, brands, people, places) help AI engines understand topic context. Gemini particularly relies on entity recognition.",
		Effort:   "High",
		Steps: []string{
			"1. Mention relevant brands, products, or companies",
			"2. Reference industry experts or thought leaders",
			"3. Include specific tools, technologies, or methodologies by name",
			"4. Add geographic locations if relevant",
			"5. Use full names on first mention, then abbreviations",
			"6. Link to authoritative sources about these entities",
		},
		Example: `Weak: "Many search engines use AI technology."

Strong: "Google's Bard, OpenAI's ChatGPT, Anthropic's Claude, and Perplexity AI all use large language models (LLMs) based on transformer architecture developed by researchers at Google Brain."`,
	}
}

func sourcesRule(res *AnalysisResult) *Recommendation {
	if res.EEAT.HasSources {
		return nil
	}
	return &Recommendation{
		Priority: PriorityLow,
		Category: "E-E-A-T",
		Action:   "Add Citations and References Section",
		Impact:   "External citations demonstrate research depth and build credibility. Perplexity specifically values source attribution.",
		Effort:   "Medium",
		Steps: []string{
			`1. Add "References" or "Sources" section at article end`,
			"2. Cite authoritative sources (academic papers, industry reports)",
			"3. Use inline citations or numbered references",
			"4. Link to original sources",
			"5. Prefer .edu, .gov, and reputable industry sites",
			"6. Include publication dates for sources",
		},
		Example: `<section class="references">
  <h2>References</h2>
  <ol>
    <li>Smith, J. (2023). "The Future of Search: AI and Semantic Understanding." Journal of Information Science. <a href="#">Link</a></li>
    <li>OpenAI Research Team. (2024). "GPT-4 Technical Report." OpenAI. <a href="#">Link</a></li>
  </ol>
</section>`,
	}
}

func tocRule(res *AnalysisResult) *Recommendation {
	if res.Structure.HasTOC || res.Structure.WordCount <= 1500 {
		return nil
	}
	return &Recommendation{
		Priority: PriorityLow,
		Category: "Navigation",
		Action:   "Add Table of Contents",
		Impact:   "A table of contents helps AI understand content structure and improves user navigation. Especially valuable for long-form content.",
		Effort:   "Low",
		Steps: []string{
			"1. Create TOC for articles over 1500 words",
			"2. List all H2 and major H3 headings",
			"3. Use jump links (anchor tags) to sections",
			"4. Place TOC after introduction",
			"5. Consider sticky TOC for long articles",
			`6. Use semantic HTML: <nav> tag with aria-label="Table of Contents"`,
		},
		Example: `<nav aria-label="Table of Contents">
  <h2>Table of Contents</h2>
  <ul>
    <li><a href="#what-is-aeo">What is AEO?</a></li>
    <li><a href="#why-matters">Why AEO Matters</a></li>
    <li><a href="#implementation">How to Implement</a></li>
    <li><a href="#best-practices">Best Practices</a></li>
  </ul>
</nav>`,
	}
}

func internalLinksRule(res *AnalysisResult) *Recommendation {
	if res.Structure.WordCount <= 500 {
		return nil
	}
	return &Recommendation{
		Priority: PriorityLow,
		Category: "Content Structure",
		Action:   "Add Strategic Internal Links",
		Impact:   "Internal links help AI understand content relationships and site structure. They also guide users to related information.",
		Effort:   "Low",
		Steps: []string{
			"1. Link to 3-5 related articles on your site",
			`2. Use descriptive anchor text (not "click here")`,
			"3. Link to deeper explanation of concepts mentioned",
			"4. Add links naturally within content flow",
			"5. Link to authoritative external sources when appropriate",
			"6. Ensure all links open in new tab for external sites",
		},
		Example: `Learn more about <a href="/semantic-seo-guide">semantic SEO strategies</a> to complement your AEO efforts.

For a deeper dive into structured data, see our complete <a href="/schema-markup-tutorial">schema markup tutorial</a>.`,
	}
}

func wordCountRule(res *AnalysisResult) *Recommendation {
	if res.Structure.WordCount >= 500 {
		return nil
	}
	return &Recommendation{
		Priority: PriorityLow,
		Category: "Content Depth",
		Action:   fmt.Sprintf("Expand Content Depth (Current: %d words, Target: 800+)", res.Structure.WordCount),
		Impact:   "Longer, comprehensive content tends to perform better with AI engines. Aim for 800-2000 words for most topics.",
		Effort:   "High",
		Steps: []string{
			"1. Add more detailed explanations of key concepts",
			"2. Include examples and use cases",
			"3. Address related questions and subtopics",
			`4. Add a "Common Questions" or FAQ section`,
			"5. Provide step-by-step instructions where applicable",
			"6. Include expert insights or quotes",
		},
		Example: `Expand from basic definition to include:
- What it is (100 words)
- Why it matters (150 words)
- How it works (200 words)
- Implementation steps (250 words)
- Examples (150 words)
- Common mistakes (100 words)
- Resources (50 words)
Total: ~1000 words`,
	}
}

func contactLinkRule(res *AnalysisResult) *Recommendation {
	if res.EEAT.HasContactLink {
		return nil
	}
	return &Recommendation{
		Priority: PriorityLow,
		Category: "E-E-A-T",
		Action:   "Add Contact Page Link",
		Impact:   "A visible contact link builds trust and credibility. Shows you stand behind your content.",
		Effort:   "Low",
		Steps: []string{
			"1. Add contact link in header or footer navigation",
			"2. Create dedicated contact page with form or email",
			"3. Include social media profiles",
			"4. Add physical address if you have a business location",
			"5. Ensure contact page is linked from every article",
		},
		Example: `<footer>
  <nav>
    <a href="/about">About</a>
    <a href="/contact">Contact</a>
    <a href="/privacy">Privacy</a>
  </nav>
</footer>`,
	}
}
