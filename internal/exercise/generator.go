package exercise

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"

	"github.com/abhisek/vocabdrill/internal/vocab"
)

// DistractorSource supplies distinct surface forms of other items in a
// course with the given part of speech. A limit of zero or less returns
// every candidate.
type DistractorSource interface {
	CandidateDistractors(ctx context.Context, courseCode string, pos vocab.PartOfSpeech, excludeItemID string, limit int) ([]string, error)
}

// Generator builds exercises for items, choosing the exercise kind and
// the distractors at random.
type Generator struct {
	distractors DistractorSource
	rng         *rand.Rand
	logger      *slog.Logger
}

// NewGenerator creates a Generator. A nil rng is seeded randomly.
func NewGenerator(distractors DistractorSource, rng *rand.Rand, logger *slog.Logger) *Generator {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Generator{distractors: distractors, rng: rng, logger: logger}
}

// PickKind returns a random exercise kind. Items without a translation
// always get multiple choice, since the gap-fill prompt shows it.
func (g *Generator) PickKind(item vocab.Item) Kind {
	if item.Translation == "" {
		return KindMultipleChoice
	}
	return Kinds[g.rng.IntN(len(Kinds))]
}

// Generate builds an exercise of the given kind from one context entry.
func (g *Generator) Generate(ctx context.Context, kind Kind, item vocab.Item, entry vocab.ContextEntry) (*Exercise, error) {
	switch kind {
	case KindGapFill:
		return BuildGapFill(item, entry)
	case KindMultipleChoice:
		candidates, err := g.distractors.CandidateDistractors(ctx, item.CourseCode, item.PartOfSpeech, item.ID, 0)
		if err != nil {
			return nil, fmt.Errorf("load distractors for item %s: %w", item.ID, err)
		}
		// The whole pool is shuffled so large courses draw from every word.
		g.rng.Shuffle(len(candidates), func(i, j int) {
			candidates[i], candidates[j] = candidates[j], candidates[i]
		})

		ex, err := BuildMultipleChoice(item, entry, candidates, g.rng)
		if err != nil {
			return nil, err
		}
		if ex.Placeholders > 0 {
			g.logger.Info("padded multiple choice options",
				"item_id", item.ID,
				"course", item.CourseCode,
				"placeholders", ex.Placeholders,
			)
		}
		return ex, nil
	default:
		return nil, fmt.Errorf("unknown exercise kind %q", kind)
	}
}

// PickContext returns one of the entries at random.
func (g *Generator) PickContext(item vocab.Item, entries []vocab.ContextEntry) (vocab.ContextEntry, error) {
	if len(entries) == 0 {
		return vocab.ContextEntry{}, fmt.Errorf("item %s: %w", item.ID, vocab.ErrNoContextAvailable)
	}
	return entries[g.rng.IntN(len(entries))], nil
}
