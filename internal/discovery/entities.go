package discovery

import (
	"regexp"
	"strings"
)

// ExtractedEntity is a government body mentioned in article text.
type ExtractedEntity struct {
	Name       string
	EntityType string
	State      string
}

var floridaCounties = []string{
	"Alachua", "Baker", "Bay", "Bradford", "Brevard", "Broward", "Calhoun",
	"Charlotte", "Citrus", "Clay", "Collier", "Columbia", "DeSoto", "Dixie",
	"Duval", "Escambia", "Flagler", "Franklin", "Gadsden", "Gilchrist",
	"Glades", "Gulf", "Hamilton", "Hardee", "Hendry", "Hernando", "Highlands",
	"Hillsborough", "Holmes", "Indian River", "Jackson", "Jefferson", "Lafayette",
	"Lake", "Lee", "Leon", "Levy", "Liberty", "Madison", "Manatee", "Marion",
	"Martin", "Miami-Dade", "Monroe", "Nassau", "Okaloosa", "Okeechobee",
	"Orange", "Osceola", "Palm Beach", "Pasco", "Pinellas", "Polk", "Putnam",
	"Santa Rosa", "Sarasota", "Seminole", "St. Johns", "St. Lucie", "Sumter",
	"Suwannee", "Taylor", "Union", "Volusia", "Wakulla", "Walton", "Washington",
}

var floridaCities = []string{
	"Jacksonville", "Miami", "Tampa", "Orlando", "St. Petersburg", "Hialeah",
	"Port St. Lucie", "Cape Coral", "Tallahassee", "Fort Lauderdale",
	"Pembroke Pines", "Hollywood", "Gainesville", "Miramar", "Coral Springs",
	"Clearwater", "Miami Gardens", "Palm Bay", "Pompano Beach", "West Palm Beach",
	"Lakeland", "Davie", "Boca Raton", "Sunrise", "Deltona", "Plantation",
	"Fort Myers", "Deerfield Beach", "Palm Coast", "Melbourne", "Boynton Beach",
	"Largo", "Kissimmee", "Homestead", "Doral", "Tamarac", "Delray Beach",
	"Daytona Beach", "Weston", "North Port", "Wellington", "North Miami",
	"Jupiter", "Ocala", "Port Orange", "Margate", "Coconut Creek", "Sanford",
	"Sarasota", "Pensacola", "Bradenton", "St. Cloud", "Winter Haven", "Apopka",
}

type entityPattern struct {
	re         *regexp.Regexp
	entityType string
}

var entityPatterns = []entityPattern{
	{regexp.MustCompile(`(?i)(\w+(?:-\w+)?(?:\s+\w+)?)\s+(?:County\s+)?School\s+Board`), "school_board"},
	{regexp.MustCompile(`(?i)(\w+(?:-\w+)?(?:\s+\w+)?)\s+County\s+Commission`), "county"},
	{regexp.MustCompile(`(?i)(\w+(?:-\w+)?(?:\s+\w+)?)\s+County\s+Board`), "county"},
	{regexp.MustCompile(`(?i)(\w+(?:-\w+)?(?:\s+\w+)?)\s+County\s+Government`), "county"},
	{regexp.MustCompile(`(?i)(\w+(?:-\w+)?(?:\s+\w+)?)\s+County(?:\s|,|\.)`), "county"},
	{regexp.MustCompile(`(?i)City\s+of\s+(\w+(?:\s+\w+)?)`), "city"},
	{regexp.MustCompile(`(?i)(\w+(?:\s+\w+)?)\s+City\s+Council`), "city"},
	{regexp.MustCompile(`(?i)(\w+(?:\s+\w+)?)\s+City\s+Commission`), "city"},
	{regexp.MustCompile(`(?i)(\w+(?:-\w+)?(?:\s+\w+)?)\s+School\s+District`), "school_board"},
	{regexp.MustCompile(`(?i)(\w+(?:\s+\w+)?)\s+Water\s+(?:Management\s+)?District`), "utility"},
}

// words that look like entity names under the looser patterns
var entityStopwords = map[string]bool{
	"the": true, "a": true, "an": true, "by": true, "to": true,
	"in": true, "for": true, "and": true, "or": true, "this": true,
}

// ExtractEntities finds the government bodies named in an article. County
// and school board matches are validated against the known county list to
// keep noise out of the entity table.
func ExtractEntities(title, content string) []ExtractedEntity {
	fullText := title + " " + content

	var entities []ExtractedEntity
	seen := map[[2]string]bool{}
	add := func(name, entityType string) {
		key := [2]string{name, entityType}
		if seen[key] {
			return
		}
		seen[key] = true
		entities = append(entities, ExtractedEntity{Name: name, EntityType: entityType, State: "FL"})
	}

	// Named utilities are matched literally.
	if strings.Contains(fullText, "JEA") || strings.Contains(fullText, "Jacksonville Electric Authority") {
		add("JEA (Jacksonville)", "utility")
		add("Jacksonville", "city")
		add("Duval", "county")
	}
	if strings.Contains(fullText, "FPL") || strings.Contains(fullText, "Florida Power") {
		add("FPL", "utility")
	}

	for _, p := range entityPatterns {
		for _, m := range p.re.FindAllStringSubmatch(fullText, -1) {
			name := strings.TrimSpace(m[1])
			if entityStopwords[strings.ToLower(name)] {
				continue
			}
			if p.entityType == "county" || p.entityType == "school_board" {
				county := matchCounty(name)
				if county == "" {
					continue
				}
				name = county
			}
			add(name, p.entityType)
		}
	}

	for _, city := range floridaCities {
		if strings.Contains(fullText, city) {
			add(city, "city")
		}
	}

	return entities
}

func matchCounty(name string) string {
	lower := strings.ToLower(name)
	for _, county := range floridaCounties {
		if strings.Contains(lower, strings.ToLower(county)) {
			return county
		}
	}
	return ""
}
