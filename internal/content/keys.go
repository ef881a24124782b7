package content

import (
	"fmt"
	"strings"
)

// Cache keys follow "<namespace>:<discriminators>". Optional discriminators
// collapse to the literal "all" so the same query always maps to the same
// key.

const anyValue = "all"

func orAll(value string) string {
	value = strings.TrimSpace(strings.ToLower(value))
	if value == "" {
		return anyValue
	}
	return value
}

func searchKey(query, contentType, language string, page int) string {
	return fmt.Sprintf("search:%s:%s:%s:%d", strings.TrimSpace(query), orAll(contentType), orAll(language), page)
}

func contentKey(contentType, id string) string {
	return fmt.Sprintf("content:%s:%s", orAll(contentType), id)
}

func creditsKey(contentType, id string) string {
	return fmt.Sprintf("credits:%s:%s", orAll(contentType), id)
}

func similarKey(contentType, id string, page int) string {
	return fmt.Sprintf("similar:%s:%s:%d", orAll(contentType), id, page)
}

func trendingKey(contentType, timeWindow string) string {
	return fmt.Sprintf("trending:%s:%s", orAll(contentType), orAll(timeWindow))
}

func genresKey(contentType string) string {
	return fmt.Sprintf("genres:%s", orAll(contentType))
}
