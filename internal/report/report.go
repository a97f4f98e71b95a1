// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report aggregates persisted analysis results into the entity
// summary view shared by the summarize command and the dashboard.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/pdiddy/fieldscope/pkg/types"
)

// LoadResults reads a persisted sentiment results JSON file.
func LoadResults(path string) (types.SentimentResults, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.SentimentResults{}, fmt.Errorf("reading results file %s: %w", path, err)
	}
	var res types.SentimentResults
	if err := json.Unmarshal(data, &res); err != nil {
		return types.SentimentResults{}, fmt.Errorf("parsing results file %s: %w", path, err)
	}
	return res, nil
}

// Aggregate folds per-document entity records into one summary row per
// entity name. Mention counts accumulate across documents; an entity
// seen with conflicting sentiments is reported as "mixed".
func Aggregate(res types.SentimentResults) []types.EntitySummary {
	byName := make(map[string]*types.EntitySummary)
	var order []string

	for _, doc := range res.Documents {
		for _, ent := range doc.Entities {
			mentions := ent.Mentions
			if mentions <= 0 {
				mentions = 1
			}
			existing, ok := byName[ent.EntityName]
			if !ok {
				byName[ent.EntityName] = &types.EntitySummary{
					Name:         ent.EntityName,
					Type:         ent.EntityType,
					Sentiment:    ent.Sentiment,
					MentionCount: mentions,
				}
				order = append(order, ent.EntityName)
				continue
			}
			existing.MentionCount += mentions
			if existing.Sentiment != ent.Sentiment {
				existing.Sentiment = "mixed"
			}
		}
	}

	summaries := make([]types.EntitySummary, 0, len(order))
	for _, name := range order {
		summaries = append(summaries, *byName[name])
	}
	sort.SliceStable(summaries, func(i, j int) bool {
		return summaries[i].MentionCount > summaries[j].MentionCount
	})
	return summaries
}

// SentimentCounts tallies summaries per sentiment label.
func SentimentCounts(summaries []types.EntitySummary) map[string]int {
	counts := make(map[string]int)
	for _, s := range summaries {
		counts[s.Sentiment]++
	}
	return counts
}

// FormatTable writes the entity summaries as a human-readable table.
func FormatTable(summaries []types.EntitySummary, w io.Writer) {
	if len(summaries) == 0 {
		fmt.Fprintln(w, "No entities found in the analysis results.")
		return
	}

	fmt.Fprintf(w, "%-30s  %-14s  %-10s  %s\n", "Entity", "Type", "Sentiment", "Mentions")
	fmt.Fprintln(w, strings.Repeat("-", 66))

	totalMentions := 0
	for _, s := range summaries {
		fmt.Fprintf(w, "%-30s  %-14s  %-10s  %d\n",
			Truncate(s.Name, 30), s.Type, s.Sentiment, s.MentionCount)
		totalMentions += s.MentionCount
	}

	counts := SentimentCounts(summaries)
	fmt.Fprintf(w, "\n%d entities, %d mentions (%d negative, %d positive, %d neutral, %d mixed)\n",
		len(summaries), totalMentions,
		counts["negative"], counts["positive"], counts["neutral"], counts["mixed"])
}

// Truncate shortens s to at most max runes, ellipsizing on a rune
// boundary so multi-byte names never yield invalid UTF-8.
func Truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}

// FormatJSON writes the entity summaries as indented JSON.
func FormatJSON(summaries []types.EntitySummary, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(summaries)
}
