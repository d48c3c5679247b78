// Package match provides name normalization, Levenshtein distance calculation
// and candidate ranking used to suggest corrections for misspelt mixture keys
// and data IDs.
//
// Key functions:
//   - NormalizeIdent: normalizes identifiers for fuzzy matching
//   - Levenshtein: computes edit distance between strings
//   - RankCandidates: ranks known names by similarity to an unknown one
//   - Suggest: returns the close matches worth showing to a user
package match
