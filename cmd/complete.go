package cmd

import (
	"flag"
	"strconv"

	"github.com/etnz/expense/docs"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// Completion returns the shell completion description of the commander's
// subcommands and of the global flags in top.
//
// The main package calls its Complete method before parsing flags.
func Completion(c *subcommands.Commander, top *flag.FlagSet) *complete.Command {
	sub := make(map[string]*complete.Command)
	c.VisitCommands(func(_ *subcommands.CommandGroup, cmd subcommands.Command) {
		fs := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
		cmd.SetFlags(fs)
		sub[cmd.Name()] = &complete.Command{
			Flags: flagPredictors(fs),
			Args:  argsPredictor(cmd.Name()),
		}
	})
	return &complete.Command{Sub: sub, Flags: flagPredictors(top)}
}

func flagPredictors(fs *flag.FlagSet) map[string]complete.Predictor {
	flags := make(map[string]complete.Predictor)
	fs.VisitAll(func(f *flag.Flag) {
		flags[f.Name] = flagPredictor(f)
	})
	return flags
}

func flagPredictor(f *flag.Flag) complete.Predictor {
	if b, ok := f.Value.(interface{ IsBoolFlag() bool }); ok && b.IsBoolFlag() {
		return predict.Nothing
	}
	switch f.Name {
	case "month":
		months := make(predict.Set, 0, 12)
		for m := 1; m <= 12; m++ {
			months = append(months, strconv.Itoa(m))
		}
		return months
	case "backend":
		return predict.Set{BackendFile, BackendSQLite}
	case "id-policy":
		return predict.Set{"count", "next"}
	case "summary-year":
		return predict.Set{SummaryAnyYear, SummaryCurrentYear}
	case "ledger-file", "o":
		return predict.Files("*")
	default:
		return predict.Something
	}
}

func argsPredictor(name string) complete.Predictor {
	if name != "topic" {
		return predict.Nothing
	}
	topics, err := docs.GetAllTopics()
	if err != nil {
		return predict.Nothing
	}
	return predict.Set(topics)
}
