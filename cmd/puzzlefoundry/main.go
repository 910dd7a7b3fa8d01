// Command puzzlefoundry generates constraint puzzles, checks dealt games
// for solvability, and curates datasets of accepted instances.
package main

import (
	"encoding/json"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"svw.info/puzzlefoundry/internal/curate"
	"svw.info/puzzlefoundry/internal/domain"
	"svw.info/puzzlefoundry/internal/generator"
	"svw.info/puzzlefoundry/internal/infrastructure/storage"
	"svw.info/puzzlefoundry/internal/ports"
	"svw.info/puzzlefoundry/internal/pyramid"
	"svw.info/puzzlefoundry/internal/solver"
	"svw.info/puzzlefoundry/internal/usecase"
	"svw.info/puzzlefoundry/internal/validator"
)

var log = logrus.New()

type rootFlags struct {
	logLevel   string
	solverKind string
}

func pickSolver(kind string) ports.Solver {
	switch kind {
	case "sat":
		return solver.NewSAT()
	default:
		return solver.NewBacktracking()
	}
}

// seedOrNow implements the boundary contract: an omitted seed gets a
// time-derived default.
func seedOrNow(seed int64, set bool) int64 {
	if set {
		return seed
	}
	return time.Now().UnixNano()
}

func emit(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newService(rf *rootFlags, dataDir string) *usecase.Service {
	s := pickSolver(rf.solverKind)
	g := generator.NewUnique(s)
	d := pyramid.New()
	st := storage.NewFS(dataDir)
	cu := curate.New(g, d, st, log)
	return usecase.NewService(s, g, validator.New(), d, st, cu)
}

func main() {
	rf := &rootFlags{}

	root := &cobra.Command{
		Use:           "puzzlefoundry",
		Short:         "deterministic puzzle generation and dataset curation",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			lvl, err := logrus.ParseLevel(rf.logLevel)
			if err != nil {
				return err
			}
			log.SetLevel(lvl)
			return nil
		},
	}
	root.PersistentFlags().StringVar(&rf.logLevel, "log-level", "info", "debug|info|warn|error")
	root.PersistentFlags().StringVar(&rf.solverKind, "solver", "backtrack", "uniqueness backend: backtrack|sat")

	var (
		familyName string
		size       int
		diffName   string
		seed       int64
		startSeed  int64
		count      int
		dataDir    string
	)

	genCmd := &cobra.Command{
		Use:   "generate",
		Short: "generate one carved puzzle and print it as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			fam, err := domain.ParseFamily(familyName)
			if err != nil {
				return err
			}
			diff, err := domain.ParseDifficulty(diffName)
			if err != nil {
				return err
			}
			svc := newService(rf, dataDir)
			s := seedOrNow(seed, cmd.Flags().Changed("seed"))
			p, st, err := svc.Generate(cmd.Context(), s, fam, size, diff)
			if err != nil {
				return err
			}
			log.WithFields(logrus.Fields{
				"seed":  s,
				"clues": p.Clues,
				"nodes": st.Nodes,
				"dur":   st.Duration.Round(time.Millisecond),
			}).Info("generated")
			return emit(p)
		},
	}
	genCmd.Flags().StringVar(&familyName, "family", "latin", "latin|orthogonal|jigsaw")
	genCmd.Flags().IntVar(&size, "size", 5, "grid size")
	genCmd.Flags().StringVar(&diffName, "difficulty", "medium", "easy|medium|hard|expert")
	genCmd.Flags().Int64Var(&seed, "seed", 0, "generation seed (default: time-derived)")

	dealCmd := &cobra.Command{
		Use:   "deal",
		Short: "deal one pyramid game and report its solvability",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := newService(rf, dataDir)
			s := seedOrNow(seed, cmd.Flags().Changed("seed"))
			deal, st, err := svc.Deal(cmd.Context(), s)
			if err != nil {
				return err
			}
			log.WithFields(logrus.Fields{
				"seed":     s,
				"solvable": deal.Solvable,
				"states":   st.Nodes,
				"dur":      st.Duration.Round(time.Millisecond),
			}).Info("dealt")
			return emit(deal)
		},
	}
	dealCmd.Flags().Int64Var(&seed, "seed", 0, "deal seed (default: time-derived)")

	curateCmd := &cobra.Command{
		Use:   "curate",
		Short: "accumulate accepted instances into a dataset directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			fam, err := domain.ParseFamily(familyName)
			if err != nil {
				return err
			}
			diff, err := domain.ParseDifficulty(diffName)
			if err != nil {
				return err
			}
			svc := newService(rf, dataDir)
			res, err := svc.Curate(cmd.Context(), curate.Options{
				Family:     fam,
				Size:       size,
				Difficulty: diff,
				StartSeed:  startSeed,
				Count:      count,
			})
			if err != nil {
				return err
			}
			log.WithFields(logrus.Fields{
				"accepted": res.Accepted,
				"attempts": res.Attempts,
				"nextSeed": res.NextSeed,
				"dir":      dataDir,
			}).Info("curation finished")
			return nil
		},
	}
	curateCmd.Flags().StringVar(&familyName, "family", "latin", "latin|orthogonal|jigsaw|pyramid")
	curateCmd.Flags().IntVar(&size, "size", 5, "grid size (ignored for pyramid)")
	curateCmd.Flags().StringVar(&diffName, "difficulty", "medium", "easy|medium|hard|expert")
	curateCmd.Flags().Int64Var(&startSeed, "start-seed", 1, "first seed of the deterministic walk")
	curateCmd.Flags().IntVar(&count, "count", 100, "accepted instances to accumulate")

	root.PersistentFlags().StringVar(&dataDir, "data", "./data", "dataset directory")
	root.AddCommand(genCmd, dealCmd, curateCmd)

	if err := root.Execute(); err != nil {
		log.WithError(err).Error("command failed")
		os.Exit(1)
	}
}
