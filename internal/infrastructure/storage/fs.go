// Package storage is the persistence collaborator for the curation driver:
// accepted instances land as JSON files under
// <dir>/<family>/<difficulty>/<id>.json (deals have no difficulty level and
// sit directly under <dir>/pyramid/).
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"svw.info/puzzlefoundry/internal/domain"
)

type FS struct{ dir string }

func NewFS(dir string) *FS { return &FS{dir: dir} }

func (s *FS) puzzlePath(p *domain.Puzzle) string {
	return filepath.Join(s.dir, p.Family.String(), p.Difficulty.String(), strings.TrimSpace(p.ID)+".json")
}

func (s *FS) dealPath(d *domain.Deal) string {
	return filepath.Join(s.dir, domain.Pyramid.String(), strings.TrimSpace(d.ID)+".json")
}

func writeJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (s *FS) SavePuzzle(ctx context.Context, p *domain.Puzzle) error {
	if p == nil || p.ID == "" {
		return errors.New("invalid puzzle: missing ID")
	}
	return writeJSON(s.puzzlePath(p), p)
}

func (s *FS) SaveDeal(ctx context.Context, d *domain.Deal) error {
	if d == nil || d.ID == "" {
		return errors.New("invalid deal: missing ID")
	}
	return writeJSON(s.dealPath(d), d)
}

// LoadPuzzle scans the family/difficulty folders for the given ID.
func (s *FS) LoadPuzzle(ctx context.Context, id string) (*domain.Puzzle, error) {
	for _, fam := range []domain.Family{domain.Latin, domain.Orthogonal, domain.Jigsaw} {
		for _, diff := range []domain.Difficulty{domain.Easy, domain.Medium, domain.Hard, domain.Expert} {
			path := filepath.Join(s.dir, fam.String(), diff.String(), id+".json")
			data, err := os.ReadFile(path)
			if err != nil {
				if os.IsNotExist(err) {
					continue
				}
				return nil, err
			}
			var out domain.Puzzle
			if err := json.Unmarshal(data, &out); err != nil {
				return nil, err
			}
			return &out, nil
		}
	}
	return nil, os.ErrNotExist
}

// List walks every family/difficulty folder and returns lightweight
// metadata for each stored puzzle. Unreadable or malformed files are
// skipped, matching the tolerant listing behavior the dataset scripts
// expect.
func (s *FS) List(ctx context.Context) ([]domain.PuzzleMeta, error) {
	type meta struct {
		ID         string            `json:"id"`
		Family     domain.Family     `json:"family"`
		Size       int               `json:"size"`
		Difficulty domain.Difficulty `json:"difficulty"`
		Seed       int64             `json:"seed"`
		CreatedAt  int64             `json:"createdAt"`
	}
	var out []domain.PuzzleMeta
	for _, fam := range []domain.Family{domain.Latin, domain.Orthogonal, domain.Jigsaw} {
		for _, diff := range []domain.Difficulty{domain.Easy, domain.Medium, domain.Hard, domain.Expert} {
			dir := filepath.Join(s.dir, fam.String(), diff.String())
			ents, err := os.ReadDir(dir)
			if err != nil {
				if os.IsNotExist(err) {
					continue
				}
				return nil, err
			}
			for _, e := range ents {
				if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
					continue
				}
				data, err := os.ReadFile(filepath.Join(dir, e.Name()))
				if err != nil {
					continue
				}
				var m meta
				if err := json.Unmarshal(data, &m); err != nil || m.ID == "" {
					continue
				}
				out = append(out, domain.PuzzleMeta{
					ID:         m.ID,
					Family:     m.Family,
					Size:       m.Size,
					Difficulty: m.Difficulty,
					Seed:       m.Seed,
					CreatedAt:  m.CreatedAt,
				})
			}
		}
	}
	return out, nil
}
