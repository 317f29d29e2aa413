package generate

import (
	"strings"

	"github.com/aniketsingh1023/Astroshala/internal/domain"
)

// Canned advisory texts returned when the live model is unavailable for a
// topic-specific request.
const careerFallback = `## Career & Professional Insights

Based on Vedic astrological principles, here are some insights about your career path:

**Natural Talents & Strengths**
Your chart suggests you have strong analytical abilities and communication skills. Mercury's position indicates you may excel in fields requiring detailed analysis, writing, or teaching.

**Current Career Phase**
You appear to be in a phase of professional growth and change. This is a good time to explore new opportunities in your field and develop new skills that align with your interests.

**Timing for Career Moves**
The next 6-8 months look particularly favorable for career advancement. Consider making important moves during this window.

**Remedies for Career Growth**
- Recite the Mercury mantra "Om Budhaya Namaha" 108 times on Wednesdays
- Wear a green or emerald stone (after proper consultation)

For a more detailed reading, please provide your complete birth details.`

const relationshipFallback = `## Marriage & Relationship Insights

Based on Vedic astrological principles, here are some insights about your relationships:

**Relationship Patterns**
Your chart suggests you value emotional security and intellectual connection in relationships. Venus's position indicates you're attracted to partners who are both emotionally nurturing and mentally stimulating.

**Current Relationship Phase**
You appear to be in a phase of relationship reflection or transformation. This is a good time to evaluate what you truly need from partnerships.

**Compatibility Factors**
You likely connect well with partners who respect your need for independence and share your intellectual interests.

**Remedies for Relationship Harmony**
- Recite the Venus mantra "Om Shukraya Namaha" 108 times on Fridays
- Practice forgiveness meditation to release past relationship karma

For a more detailed reading, please provide your complete birth details.`

const financeFallback = `## Financial & Wealth Insights

Based on Vedic astrological principles, here are some insights about your financial situation:

**Wealth Potential**
Your chart suggests you have good potential for wealth accumulation, particularly through multiple income streams. Jupiter's position indicates potential for growth through investments.

**Current Financial Phase**
You appear to be in a phase of financial reorganization or planning. This is a good time to review your budget and consider new investment strategies.

**Income Sources**
You may find success in knowledge-based enterprises, financial services, or creative business models.

**Remedies for Financial Growth**
- Recite the Jupiter mantra "Om Gurave Namaha" 108 times on Thursdays
- Donate to educational or spiritual causes to enhance wealth karma

For a more detailed reading, please provide your complete birth details.`

const genericFallback = "According to Parasara Jyotish principles, your question relates to the cosmic influences that shape our experiences. The planetary positions and their aspects form unique patterns that can provide insights into various life situations. Would you like to know more about a specific area of Vedic astrology?"

var topicFallbacks = map[domain.Topic]string{
	domain.TopicCareer:       careerFallback,
	domain.TopicRelationship: relationshipFallback,
	domain.TopicFinance:      financeFallback,
}

// keywordRule is one entry of the canned-response table: the first rule whose
// keyword appears in the lowercased user message wins.
type keywordRule struct {
	keywords []string
	response string
}

var keywordRules = []keywordRule{
	{
		keywords: []string{"birth chart", "chart analysis", "birth details"},
		response: `## Birth Chart Analysis

Based on your birth details, here's an analysis of your Vedic birth chart:

**Ascendant (Lagna)**: Libra
Your ascendant indicates a balanced, harmonious approach to life. Venus as your ascendant lord gives you artistic sensibilities and diplomatic skills.

**Moon Sign (Rashi)**: Taurus
Your moon sign shows emotional stability and a practical approach to feelings. You seek security and comfort in your emotional life.

**Sun Sign**: Capricorn
Your sun sign reveals a disciplined, ambitious core identity with strong leadership potential.

**Current Dasha Period**:
You're currently in Venus Mahadasha, which brings focus to relationships, creativity, and material comforts.

For more specific guidance, please let me know which area of life you'd like to explore in depth.`,
	},
	{
		// Listed before the "vedic astrology" rule so that a question like
		// "the nine planets in Vedic astrology" gets the graha answer.
		keywords: []string{"planet", "graha"},
		response: "In Vedic astrology, there are nine celestial bodies or grahas: Sun (Surya), Moon (Chandra), Mars (Mangal), Mercury (Budha), Jupiter (Guru), Venus (Shukra), Saturn (Shani), and the lunar nodes Rahu and Ketu. Each planet represents different energies and influences various aspects of life.",
	},
	{
		keywords: []string{"vedic astrology", "parasara jyotish"},
		response: "Vedic astrology, also known as Jyotish, is an ancient Indian system of astrology dating back thousands of years. It differs from Western astrology by using a sidereal zodiac rather than a tropical zodiac. Parasara Jyotish specifically refers to the astrological system codified by the sage Parasara, considered one of the foundational texts of Vedic astrology.",
	},
	{
		keywords: []string{"house", "bhava"},
		response: "Vedic astrology divides a birth chart into 12 houses or bhavas, each governing different areas of life. The 1st house represents self and personality, 2nd house wealth, 3rd house siblings, 4th house mother and home, 5th house creativity and children, and so on.",
	},
	{
		keywords: []string{"zodiac", "rashi"},
		response: "Vedic astrology uses the sidereal zodiac with 12 signs (rashis): Aries (Mesha), Taurus (Vrishabha), Gemini (Mithuna), Cancer (Karka), Leo (Simha), Virgo (Kanya), Libra (Tula), Scorpio (Vrishchika), Sagittarius (Dhanu), Capricorn (Makara), Aquarius (Kumbha), and Pisces (Meena).",
	},
	{
		keywords: []string{"dasha", "period"},
		response: "Parasara Jyotish uses the Vimshottari Dasha system to time events. This system divides life into planetary periods (dashas) and sub-periods (antardashas). The sequence is: Sun (6 years), Moon (10 years), Mars (7 years), Rahu (18 years), Jupiter (16 years), Saturn (19 years), Mercury (17 years), Ketu (7 years), and Venus (20 years).",
	},
}

// Fallback picks the deterministic reply used when the model call fails: the
// topic-specific advisory when a topic is active, otherwise the first
// matching keyword rule, otherwise the generic redirect.
func Fallback(topic domain.Topic, userMessage string) string {
	if text, ok := topicFallbacks[topic]; ok {
		return text
	}

	question := strings.ToLower(userMessage)
	for _, rule := range keywordRules {
		for _, kw := range rule.keywords {
			if strings.Contains(question, kw) {
				return rule.response
			}
		}
	}
	return genericFallback
}
