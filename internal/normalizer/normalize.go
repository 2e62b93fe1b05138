package normalizer

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"eventhub/pkg/models"
)

var (
	whitespaceRx = regexp.MustCompile(`\s+`)
	digitsRx     = regexp.MustCompile(`\d+`)

	// datePatterns are tried in priority order; the first match wins.
	// A 4-digit first group means year-first, otherwise day-first.
	datePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(\d{4})-(\d{1,2})-(\d{1,2})`),   // YYYY-MM-DD
		regexp.MustCompile(`(\d{1,2})/(\d{1,2})/(\d{4})`),   // DD/MM/YYYY
		regexp.MustCompile(`(\d{1,2})\.(\d{1,2})\.(\d{4})`), // DD.MM.YYYY
		regexp.MustCompile(`(\d{1,2})-(\d{1,2})-(\d{4})`),   // DD-MM-YYYY
	}
)

// Normalize maps one raw record from the given source into the
// canonical event schema. ok is false when the record is rejected
// (empty title after cleanup); rejection is not an error and must not
// fail the batch. The sequence id is assigned by the Transformer,
// not here.
func Normalize(raw models.RawEvent, sourceKey string) (*models.CanonicalEvent, bool) {
	title := CleanText(raw["title"])
	if title == "" {
		return nil, false
	}

	category := extractCategory(raw)
	url := stringify(raw["url"])

	ev := &models.CanonicalEvent{
		Title:         title,
		Description:   extractDescription(raw),
		Date:          extractDate(raw),
		Region:        extractRegion(raw),
		Category:      category,
		CategoryColor: categoryColor(category),
		Location:      extractLocation(raw),
		Venue:         extractVenue(raw),
		URL:           url,
		EventURL:      url,
		Price:         ExtractPrice(raw["price"]),
		MaxCapacity:   defaultCapacity,
		Source:        FormatSourceName(sourceKey),
		SourceKey:     sourceKey,
	}

	if img := extractImage(raw); img != "" {
		ev.Image = &img
		ev.ImageURL = &img
	}

	return ev, true
}

// CleanText coerces a value to a single normalized string: list
// elements joined with a space, whitespace runs collapsed, trimmed.
func CleanText(v any) string {
	if v == nil {
		return ""
	}

	var text string
	if list, ok := v.([]any); ok {
		parts := make([]string, 0, len(list))
		for _, item := range list {
			if s := stringify(item); s != "" {
				parts = append(parts, s)
			}
		}
		text = strings.Join(parts, " ")
	} else {
		text = stringify(v)
	}

	text = strings.TrimSpace(text)
	return whitespaceRx.ReplaceAllString(text, " ")
}

func extractDescription(raw models.RawEvent) string {
	desc := firstNonEmpty(raw, "description", "excerpt", "summary")

	// Still nothing: fall back to the content field.
	if desc == "" {
		switch content := raw["content"].(type) {
		case []any:
			limit := len(content)
			if limit > 3 {
				limit = 3 // first 3 paragraphs
			}
			parts := make([]string, 0, limit)
			for _, c := range content[:limit] {
				if s := stringify(c); s != "" {
					parts = append(parts, s)
				}
			}
			desc = strings.Join(parts, " ")
		case string:
			desc = truncate(content, 500)
		}
	}

	if desc == "" {
		if ft := stringify(raw["full_text"]); ft != "" {
			desc = truncate(ft, 500)
		}
	}

	return CleanText(desc)
}

func firstNonEmpty(raw models.RawEvent, keys ...string) string {
	for _, k := range keys {
		v := raw[k]
		if v == nil {
			continue
		}
		if list, ok := v.([]any); ok {
			if s := CleanText(list); s != "" {
				return s
			}
			continue
		}
		if s := stringify(v); s != "" {
			return s
		}
	}
	return ""
}

// extractDate standardizes a recognized date string to YYYY-MM-DD.
// Unrecognized strings pass through unchanged; a missing date field
// yields nil.
func extractDate(raw models.RawEvent) *string {
	v := raw["date"]
	if v == nil {
		return nil
	}
	date := strings.TrimSpace(stringify(v))
	if date == "" {
		return nil
	}

	for _, rx := range datePatterns {
		m := rx.FindStringSubmatch(date)
		if m == nil {
			continue
		}

		var year, month, day string
		if len(m[1]) == 4 {
			year, month, day = m[1], m[2], m[3]
		} else {
			day, month, year = m[1], m[2], m[3]
		}

		mo, err1 := strconv.Atoi(month)
		d, err2 := strconv.Atoi(day)
		if err1 != nil || err2 != nil {
			break
		}
		out := fmt.Sprintf("%s-%02d-%02d", year, mo, d)
		return &out
	}

	// Return as-is if we can't parse.
	return &date
}

func extractRegion(raw models.RawEvent) string {
	location := stringify(raw["location"])
	venue := stringify(raw["venue"])

	text := strings.ToLower(location + " " + venue)
	for _, m := range regionTable {
		if strings.Contains(text, m.Keyword) {
			return m.Value
		}
	}
	return defaultRegion
}

func extractCategory(raw models.RawEvent) string {
	category := raw["category"]
	if list, ok := category.([]any); ok {
		if len(list) > 0 {
			category = list[0]
		} else {
			category = ""
		}
	}

	cat := strings.ToLower(strings.TrimSpace(stringify(category)))
	for _, m := range categoryTable {
		if strings.Contains(cat, m.Keyword) {
			return m.Value
		}
	}

	// Try to infer from title or description.
	text := strings.ToLower(stringify(raw["title"]) + " " + stringify(raw["description"]))
	for _, m := range categoryTable {
		if strings.Contains(text, m.Keyword) {
			return m.Value
		}
	}

	return defaultCategory
}

func categoryColor(category string) string {
	if c, ok := categoryColors[category]; ok {
		return c
	}
	return fallbackColor
}

func extractLocation(raw models.RawEvent) string {
	location := CleanText(raw["location"])
	if location == "" {
		location = CleanText(raw["venue"])
	}
	return location
}

func extractVenue(raw models.RawEvent) string {
	venue := CleanText(raw["venue"])
	if venue == "" {
		venue = CleanText(raw["location"])
	}
	return venue
}

func extractImage(raw models.RawEvent) string {
	switch images := raw["images"].(type) {
	case []any:
		if len(images) > 0 {
			if s := stringify(images[0]); s != "" {
				return s
			}
			return ""
		}
	case string:
		if images != "" {
			return images
		}
	}

	return stringify(raw["image"])
}

// ExtractPrice yields a non-negative integer price: 0 for empty or
// free-admission strings, otherwise the first contiguous digit run.
// It never fails.
func ExtractPrice(v any) int {
	price := strings.ToLower(stringify(v))
	if price == "" {
		return 0
	}

	for _, tok := range freeTokens {
		if strings.Contains(price, tok) {
			return 0
		}
	}

	if digits := digitsRx.FindString(price); digits != "" {
		if n, err := strconv.Atoi(digits); err == nil {
			return n
		}
	}
	return 0
}

// FormatSourceName maps an adapter key to its display name. Unknown
// keys are title-cased (letters after a non-letter are upper-cased).
func FormatSourceName(sourceKey string) string {
	if name, ok := sourceNames[sourceKey]; ok {
		return name
	}

	var b strings.Builder
	b.Grow(len(sourceKey))
	prevLetter := false
	for _, r := range sourceKey {
		if unicode.IsLetter(r) && !prevLetter {
			b.WriteRune(unicode.ToUpper(r))
		} else {
			b.WriteRune(unicode.ToLower(r))
		}
		prevLetter = unicode.IsLetter(r)
	}
	return b.String()
}

// truncate cuts s to at most n runes (not bytes, Greek text must stay
// valid UTF-8).
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

// stringify renders a scalar raw value the way the snapshot should
// show it. Numbers from JSON arrive as float64; integral ones must
// not pick up a ".0" suffix.
func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		if t == float64(int64(t)) {
			return strconv.FormatInt(int64(t), 10)
		}
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case bool:
		if t {
			return "true"
		}
		return "false"
	default:
		return fmt.Sprintf("%v", t)
	}
}
