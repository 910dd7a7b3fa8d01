// Package curate drives dataset production: it walks the seed space from a
// start seed, runs the generation pipeline for each seed, skips the seeds
// that fail, and hands accepted instances to the storage collaborator. The
// walk is strictly seed = start, start+1, ..., so re-running with the same
// start and target reproduces the same accepted set.
package curate

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"svw.info/puzzlefoundry/internal/domain"
	"svw.info/puzzlefoundry/internal/ports"
)

// Options parameterize one curation run.
type Options struct {
	Family     domain.Family
	Size       int
	Difficulty domain.Difficulty
	StartSeed  int64
	Count      int
	// MaxAttempts caps total seeds tried; 0 means 200 per requested
	// instance.
	MaxAttempts int
}

func (o Options) maxAttempts() int {
	if o.MaxAttempts > 0 {
		return o.MaxAttempts
	}
	return o.Count * 200
}

// Result summarizes a finished run.
type Result struct {
	Accepted int
	Attempts int
	// NextSeed is the first untried seed, usable as StartSeed of a
	// follow-up run that extends this dataset.
	NextSeed int64
}

// Driver wires the pipeline ports together.
type Driver struct {
	Generator ports.Generator
	Dealer    ports.Dealer
	Storage   ports.Storage
	Log       *logrus.Logger
}

// New returns a driver; a nil logger disables progress logging.
func New(g ports.Generator, d ports.Dealer, st ports.Storage, log *logrus.Logger) *Driver {
	if log == nil {
		log = logrus.New()
		log.SetLevel(logrus.PanicLevel)
	}
	return &Driver{Generator: g, Dealer: d, Storage: st, Log: log}
}

// Run produces opts.Count accepted instances. Construction failures,
// uncertified uniqueness and unsolvable deals are skipped by advancing to
// the next seed; misconfiguration (unknown family, invalid size) aborts
// immediately.
func (d *Driver) Run(ctx context.Context, opts Options) (Result, error) {
	if !opts.Family.ValidSize(opts.Size) && opts.Family != domain.Pyramid {
		return Result{}, fmt.Errorf("%w: %s size %d", domain.ErrInvalidSize, opts.Family, opts.Size)
	}
	res := Result{NextSeed: opts.StartSeed}
	max := opts.maxAttempts()
	for res.Accepted < opts.Count && res.Attempts < max {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		seed := opts.StartSeed + int64(res.Attempts)
		res.Attempts++
		res.NextSeed = seed + 1

		accepted, err := d.attempt(ctx, seed, opts)
		if err != nil {
			if recoverable(err) {
				d.Log.WithFields(logrus.Fields{
					"seed": seed,
					"err":  err,
				}).Debug("seed rejected")
				continue
			}
			return res, err
		}
		if !accepted {
			continue
		}
		res.Accepted++
		if res.Accepted%100 == 0 || res.Accepted == opts.Count {
			d.Log.WithFields(logrus.Fields{
				"accepted": res.Accepted,
				"target":   opts.Count,
				"attempts": res.Attempts,
			}).Info("curation progress")
		}
	}
	if res.Accepted < opts.Count {
		d.Log.WithFields(logrus.Fields{
			"accepted": res.Accepted,
			"target":   opts.Count,
			"attempts": res.Attempts,
		}).Warn("attempt budget exhausted before target count")
	}
	return res, nil
}

func (d *Driver) attempt(ctx context.Context, seed int64, opts Options) (bool, error) {
	if opts.Family == domain.Pyramid {
		deal, _, err := d.Dealer.Deal(ctx, seed)
		if err != nil {
			return false, err
		}
		if !deal.Solvable {
			return false, nil
		}
		deal.ID = uuid.NewString()
		if err := d.Storage.SaveDeal(ctx, deal); err != nil {
			return false, err
		}
		return true, nil
	}

	p, _, err := d.Generator.Generate(ctx, seed, opts.Family, opts.Size, opts.Difficulty)
	if err != nil {
		return false, err
	}
	p.ID = uuid.NewString()
	if err := d.Storage.SavePuzzle(ctx, p); err != nil {
		return false, err
	}
	return true, nil
}

// recoverable reports whether a failure is an unlucky draw (skip the seed)
// rather than misconfiguration (abort the run).
func recoverable(err error) bool {
	return errors.Is(err, domain.ErrConstructionFailed) ||
		errors.Is(err, domain.ErrBudgetExceeded)
}
