package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/deptsched/engine/internal/decode"
	"github.com/deptsched/engine/internal/domain"
	"github.com/deptsched/engine/internal/engine"
	"github.com/deptsched/engine/internal/export"
	"github.com/deptsched/engine/internal/ingest"
	"github.com/deptsched/engine/internal/modelenc"
	"github.com/deptsched/engine/internal/solve"
)

// exitCode carries the process exit status: 0 on a decoded timetable, 2
// on infeasible, 3 on unknown, 1 on input errors. main reads it after
// cobra returns since cobra's own convention is to report errors, not
// exit codes.
var exitCode int

var (
	timeBudget   = solve.DefaultTimeBudget
	seed         int64
	useSeed      bool
	workers      = 1
	outPrefix    = "timetable"
	constrainTBD = true
	runVerify    bool
)

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "schedule",
		Short: "Weekly class timetable solver",
		Long: "Builds a weekly class/course/room/teacher timetable with a CP-SAT solver\n" +
			"that is biased toward earlier periods of the day.",
	}

	cmdSolve := &cobra.Command{
		Use:   "solve <rooms-file> <courses-file>",
		Short: "Solve a timetable from a rooms document and a curricula document",
		Args:  cobra.ExactArgs(2),
		RunE:  runSolve,
	}
	cmdSolve.Flags().DurationVar(&timeBudget, "time", timeBudget, "solver wall-clock budget")
	cmdSolve.Flags().Int64Var(&seed, "seed", 0, "deterministic solver seed (disables multi-worker racing)")
	cmdSolve.Flags().IntVar(&workers, "workers", workers, "number of concurrently seeded solver attempts when --seed is not set")
	cmdSolve.Flags().StringVar(&outPrefix, "out", outPrefix, "output file prefix (.json suffix)")
	cmdSolve.Flags().BoolVar(&constrainTBD, "constrain-tbd", constrainTBD, "treat the TBD sentinel teacher as constraining")
	cmdSolve.Flags().BoolVar(&runVerify, "verify", false, "run the constraint diagnostic pass on the decoded timetable before exporting")
	cmdSolve.PreRun = func(cmd *cobra.Command, args []string) {
		useSeed = cmd.Flags().Changed("seed")
	}

	root.AddCommand(cmdSolve)
	return root
}

func runSolve(cmd *cobra.Command, args []string) error {
	roomsPath, coursesPath := args[0], args[1]

	roomsReader, err := ingest.Open(roomsPath)
	if err != nil {
		exitCode = 1
		return err
	}
	defer roomsReader.Close()
	rooms, err := ingest.LoadRooms(roomsReader)
	if err != nil {
		exitCode = 1
		return err
	}

	coursesReader, err := ingest.Open(coursesPath)
	if err != nil {
		exitCode = 1
		return err
	}
	defer coursesReader.Close()
	curricula, err := ingest.LoadCurricula(coursesReader)
	if err != nil {
		exitCode = 1
		return err
	}

	solveCfg := solve.Config{TimeBudget: timeBudget, Workers: workers}
	if useSeed {
		solveCfg.Seed = &seed
	}
	cfg := engine.Config{
		Encode: modelenc.Options{ConstrainTBD: constrainTBD},
		Solve:  solveCfg,
	}

	var e engine.Engine
	ctx, cancel := context.WithTimeout(context.Background(), timeBudget+30*time.Second)
	defer cancel()

	timetable, err := e.Run(ctx, rooms, curricula, cfg)
	if err != nil {
		switch err.(type) {
		case *domain.InputError:
			exitCode = 1
		case *domain.InfeasibleError:
			exitCode = 2
		case *domain.TimeoutError:
			exitCode = 3
		default:
			exitCode = 1
		}
		return err
	}

	log.Printf("solved: status=%s objective=%d scheduled=%d/%d wall_time=%.2fs attempts=%d",
		e.Status(), e.Objective(), e.Stats().ScheduledCount, e.Stats().TotalCourses, e.Stats().WallTime, e.Stats().Attempts)

	if runVerify {
		catalog := decode.NewClassCatalog(classCurricula(timetable))
		problems := decode.Diagnose(catalog, timetable, decode.Options{IgnoreTBDInTeacherCheck: !constrainTBD})
		for _, p := range problems {
			log.Printf("diagnose: %s", p.Message)
		}
	}

	fp, err := os.Create(outPrefix + ".json")
	if err != nil {
		exitCode = 1
		return err
	}
	defer fp.Close()
	if err := export.WriteJSON(fp, timetable); err != nil {
		exitCode = 1
		return fmt.Errorf("writing %s: %w", outPrefix+".json", err)
	}

	exitCode = 0
	return nil
}

func classCurricula(t domain.Timetable) []domain.ClassCurriculum {
	out := make([]domain.ClassCurriculum, len(t.Classes))
	for i, ct := range t.Classes {
		out[i] = domain.ClassCurriculum{ClassID: ct.ClassID, Courses: ct.Courses}
	}
	return out
}
