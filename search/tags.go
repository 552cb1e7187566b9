package search

// DeriveLetterTags extracts single-letter phonetic tags from a title. For each
// distinct ASCII letter (case-insensitive, in order of first appearance) it
// emits three surface forms: the bare letter, the letter in phoneme notation
// ("/s/"), and a "letter-s" prefixed form. Non-alphabetic characters emit
// nothing.
//
// The library organizes material by individual speech sounds, which the
// generic tokenizer cannot index on its own; these tags make a single-letter
// query like "s" land on the right resources. The ingestion pipeline unions
// the derived tags into a resource's stored tags on every title-affecting
// write, and the corpus builder appends them fresh on every scoring pass.
func DeriveLetterTags(title string) []string {
	var seen [26]bool
	tags := make([]string, 0, 12)

	for _, r := range title {
		if r >= 'A' && r <= 'Z' {
			r += 'a' - 'A'
		}
		if r < 'a' || r > 'z' {
			continue
		}
		if seen[r-'a'] {
			continue
		}
		seen[r-'a'] = true

		letter := string(r)
		tags = append(tags, letter, "/"+letter+"/", "letter-"+letter)
	}

	return tags
}
