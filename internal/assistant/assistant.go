// Package assistant answers collector questions by combining the local
// catalog, the vector index, and live provider data into one LLM prompt.
package assistant

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/brickmind/brickmind/internal/catalog"
	"github.com/brickmind/brickmind/internal/config"
	"github.com/brickmind/brickmind/internal/llm"
	"github.com/brickmind/brickmind/internal/queryproc"
	"github.com/brickmind/brickmind/internal/store"
)

const (
	structuredLimit = 20
	semanticLimit   = 5
	answerSetLimit  = 10
)

// LiveSearcher is the provider-side search the assistant consults for
// fresh data; *brickapi.Aggregator satisfies it.
type LiveSearcher interface {
	SearchSets(ctx context.Context, query string) ([]catalog.Set, error)
}

type Assistant struct {
	store *store.Store
	llm   llm.LLM
	api   LiveSearcher
	cfg   *config.Config
	model string
	log   *zap.SugaredLogger
}

// New wires an assistant. api may be nil (offline mode: local catalog
// only); cfg may be nil (no collector notes).
func New(st *store.Store, client llm.LLM, api LiveSearcher, cfg *config.Config, model string, logger *zap.Logger) *Assistant {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg == nil {
		cfg = &config.Config{}
	}
	return &Assistant{store: st, llm: client, api: api, cfg: cfg, model: model, log: logger.Sugar()}
}

// Ask runs the full pipeline for one query: parse, gather structured +
// semantic + live context, rank, prompt the model, cache the answer.
func (a *Assistant) Ask(ctx context.Context, query string) (*catalog.Answer, error) {
	parsed := queryproc.Parse(query)

	structured := a.structuredSearch(parsed)
	semantic := a.semanticSearch(ctx, query)
	apiData := a.liveSearch(ctx, query)

	sets := queryproc.Rank(mergeSets(apiData, structured, semantic), parsed)
	if len(sets) > answerSetLimit {
		sets = sets[:answerSetLimit]
	}

	notes := config.FindNoteForTheme(a.cfg, parsed.Theme)
	prompt := BuildPrompt(structured, semantic, apiData, query, notes)

	key := store.AnswerCacheKey(a.model, prompt)
	if cached, ok, err := a.store.GetCachedAnswer(key); err == nil && ok {
		a.log.Debugw("answer cache hit", "query", query)
		return &catalog.Answer{Sets: sets, Response: cached, Cached: true}, nil
	}

	response, err := a.llm.Generate(ctx, prompt)
	if err != nil {
		return nil, err
	}
	if err := a.store.PutCachedAnswer(key, response, time.Now()); err != nil {
		a.log.Warnw("answer cache write failed", "err", err)
	}

	return &catalog.Answer{Sets: sets, Response: response}, nil
}

// structuredSearch is the LIKE-on-name lookup, falling back to the derived
// queries when the raw query matches nothing.
func (a *Assistant) structuredSearch(parsed queryproc.Parsed) []catalog.Set {
	sets, err := a.store.SearchByName(parsed.Query, structuredLimit)
	if err != nil {
		a.log.Warnw("structured search failed", "err", err)
		return nil
	}
	if len(sets) > 0 {
		return sets
	}
	// Queries() drops blank entries, so the original query may not lead
	// the list; skip it wherever it sits.
	original := strings.TrimSpace(parsed.Query)
	for _, q := range parsed.Queries() {
		if q == original {
			continue
		}
		sets, err = a.store.SearchByName(q, structuredLimit)
		if err == nil && len(sets) > 0 {
			return sets
		}
	}
	if parsed.Theme != "" {
		sets, err = a.store.ListSets(store.ListFilter{Theme: parsed.Theme, Limit: structuredLimit})
		if err == nil {
			return sets
		}
	}
	return nil
}

func (a *Assistant) semanticSearch(ctx context.Context, query string) []catalog.Set {
	if !a.store.HasVectors() {
		return nil
	}
	emb, err := a.llm.Embed(ctx, query)
	if err != nil {
		a.log.Warnw("query embedding failed", "err", err)
		return nil
	}
	results, err := a.store.SearchVectorsBrute(emb.Embedding, semanticLimit)
	if err != nil {
		a.log.Warnw("vector search failed", "err", err)
		return nil
	}
	sets := make([]catalog.Set, 0, len(results))
	for _, r := range results {
		sets = append(sets, r.Set)
	}
	return sets
}

func (a *Assistant) liveSearch(ctx context.Context, query string) []catalog.Set {
	if a.api == nil {
		return nil
	}
	sets, err := a.api.SearchSets(ctx, query)
	if err != nil {
		a.log.Warnw("provider search failed", "err", err)
		return nil
	}
	return sets
}

// mergeSets deduplicates by set id, earlier sources winning.
func mergeSets(groups ...[]catalog.Set) []catalog.Set {
	seen := make(map[string]bool)
	var out []catalog.Set
	for _, group := range groups {
		for _, s := range group {
			if seen[s.SetID] {
				continue
			}
			seen[s.SetID] = true
			out = append(out, s)
		}
	}
	return out
}
