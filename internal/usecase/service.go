package usecase

import (
	"context"
	"errors"

	"svw.info/puzzlefoundry/internal/curate"
	"svw.info/puzzlefoundry/internal/domain"
	"svw.info/puzzlefoundry/internal/ports"
)

// Service is the engine facade: everything the surrounding system (CLI,
// dataset scripts) calls goes through here.
type Service struct {
	Solver    ports.Solver
	Generator ports.Generator
	Validator ports.Validator
	Dealer    ports.Dealer
	Storage   ports.Storage
	Curator   *curate.Driver
}

func NewService(s ports.Solver, g ports.Generator, v ports.Validator, d ports.Dealer, st ports.Storage, cu *curate.Driver) *Service {
	return &Service{Solver: s, Generator: g, Validator: v, Dealer: d, Storage: st, Curator: cu}
}

var errNotConfigured = errors.New("usecase dependency not configured")

func (u *Service) Solve(ctx context.Context, g *domain.Grid) (*domain.Grid, ports.Stats, error) {
	if u.Solver == nil {
		return nil, ports.Stats{}, errNotConfigured
	}
	return u.Solver.Solve(ctx, g)
}

func (u *Service) Unique(ctx context.Context, g *domain.Grid) (bool, ports.Stats, error) {
	if u.Solver == nil {
		return false, ports.Stats{}, errNotConfigured
	}
	return u.Solver.Unique(ctx, g)
}

func (u *Service) Generate(ctx context.Context, seed int64, f domain.Family, size int, d domain.Difficulty) (*domain.Puzzle, ports.Stats, error) {
	if u.Generator == nil {
		return nil, ports.Stats{}, errNotConfigured
	}
	return u.Generator.Generate(ctx, seed, f, size, d)
}

func (u *Service) Validate(ctx context.Context, g *domain.Grid) (bool, []domain.CellCoord, error) {
	if u.Validator == nil {
		return false, nil, errNotConfigured
	}
	return u.Validator.Validate(ctx, g)
}

func (u *Service) Deal(ctx context.Context, seed int64) (*domain.Deal, ports.Stats, error) {
	if u.Dealer == nil {
		return nil, ports.Stats{}, errNotConfigured
	}
	return u.Dealer.Deal(ctx, seed)
}

func (u *Service) Curate(ctx context.Context, opts curate.Options) (curate.Result, error) {
	if u.Curator == nil {
		return curate.Result{}, errNotConfigured
	}
	return u.Curator.Run(ctx, opts)
}

// Persistence
func (u *Service) LoadPuzzle(ctx context.Context, id string) (*domain.Puzzle, error) {
	if u.Storage == nil {
		return nil, errNotConfigured
	}
	return u.Storage.LoadPuzzle(ctx, id)
}

func (u *Service) List(ctx context.Context) ([]domain.PuzzleMeta, error) {
	if u.Storage == nil {
		return nil, errNotConfigured
	}
	return u.Storage.List(ctx)
}
