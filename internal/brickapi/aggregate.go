package brickapi

import (
	"context"
	"os"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/brickmind/brickmind/internal/catalog"
	"github.com/brickmind/brickmind/internal/config"
)

// searchLimit caps how many Brickset matches SearchSets hydrates.
const searchLimit = 5

// Keys holds the provider API keys.
type Keys struct {
	Brickset    string
	Rebrickable string
	BrickOwl    string
}

// KeysFromEnv reads the provider keys from the environment.
func KeysFromEnv() Keys {
	return Keys{
		Brickset:    os.Getenv("BRICKSET_API_KEY"),
		Rebrickable: os.Getenv("REBRICKABLE_API_KEY"),
		BrickOwl:    os.Getenv("BRICKOWL_API_KEY"),
	}
}

// Aggregator merges the three providers into catalog records. Field
// ownership: Brickset supplies identity (name, theme, year, description)
// and is required; Rebrickable supplies piece counts and BrickOwl pricing,
// both optional.
type Aggregator struct {
	Brickset    *BricksetClient
	Rebrickable *RebrickableClient
	BrickOwl    *BrickOwlClient
	log         *zap.SugaredLogger
}

func NewAggregator(providers config.Providers, keys Keys, logger *zap.Logger) *Aggregator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Aggregator{
		Brickset:    NewBricksetClient(providers.Brickset.BaseURL, keys.Brickset),
		Rebrickable: NewRebrickableClient(providers.Rebrickable.BaseURL, keys.Rebrickable),
		BrickOwl:    NewBrickOwlClient(providers.BrickOwl.BaseURL, keys.BrickOwl),
		log:         logger.Sugar(),
	}
}

// FetchSet aggregates one set from all three providers concurrently.
// A Brickset failure is fatal; the other providers degrade to missing
// pieces or price.
func (a *Aggregator) FetchSet(ctx context.Context, setID string) (*catalog.Set, error) {
	var (
		bs    *BricksetSet
		rb    *RebrickableSet
		price *float64
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		bs, err = a.Brickset.GetSet(gctx, setID)
		return err
	})
	g.Go(func() error {
		s, err := a.Rebrickable.GetSet(gctx, setID)
		if err != nil {
			a.log.Warnw("rebrickable lookup failed", "set", setID, "err", err)
			return nil
		}
		rb = s
		return nil
	})
	g.Go(func() error {
		p, err := a.BrickOwl.GetRetailPrice(gctx, setID)
		if err != nil {
			a.log.Warnw("brickowl lookup failed", "set", setID, "err", err)
			return nil
		}
		price = p
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	set := &catalog.Set{
		SetID:       bs.SetNumber(),
		Name:        bs.Name,
		Theme:       bs.Theme,
		Description: bs.ExtendedData.Description,
		Price:       price,
	}
	if bs.Year > 0 {
		y := bs.Year
		set.ReleaseYear = &y
	}
	switch {
	case rb != nil && rb.NumParts > 0:
		set.PieceCount = rb.NumParts
	case bs.Pieces > 0:
		set.PieceCount = bs.Pieces
	}

	a.log.Debugw("aggregated set", "set", set.SetID, "pieces", set.PieceCount, "priced", price != nil)
	return set, nil
}

// SearchSets runs a Brickset text search and hydrates the top matches via
// FetchSet. Individual hydration failures are skipped, not fatal.
func (a *Aggregator) SearchSets(ctx context.Context, query string) ([]catalog.Set, error) {
	matches, err := a.Brickset.Search(ctx, query, searchLimit)
	if err != nil {
		return nil, err
	}
	if len(matches) > searchLimit {
		matches = matches[:searchLimit]
	}

	var out []catalog.Set
	for _, m := range matches {
		set, err := a.FetchSet(ctx, m.SetNumber())
		if err != nil {
			a.log.Warnw("hydrating search match failed", "set", m.SetNumber(), "err", err)
			continue
		}
		out = append(out, *set)
	}
	return out, nil
}
