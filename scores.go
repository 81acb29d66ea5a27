package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/milk9111/glider/highscore"
	"github.com/milk9111/glider/logger"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	boxStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

// renderScores formats the best record and a run list for the terminal.
func renderScores(best highscore.Record, hasBest bool, heading string, runs []highscore.Run) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Best run"))
	b.WriteString("\n")
	if hasBest {
		b.WriteString(fmt.Sprintf("time %s  score %d", formatElapsed(time.Duration(best.Time)*time.Millisecond), best.Score))
	} else {
		b.WriteString(dimStyle.Render("no record yet"))
	}
	b.WriteString("\n\n")

	b.WriteString(headerStyle.Render(heading))
	b.WriteString("\n")
	if len(runs) == 0 {
		b.WriteString(dimStyle.Render("no runs recorded"))
	}
	for i, r := range runs {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(fmt.Sprintf("%-14s %s  score %-5d deaths %-3d %s",
			r.Level, formatElapsed(r.Time), r.Score, r.Deaths,
			dimStyle.Render(r.CreatedAt.Local().Format("2006-01-02 15:04"))))
	}
	return boxStyle.Render(b.String())
}

func newScoresCmd(f *flags) *cobra.Command {
	var (
		limit   int
		fastest bool
	)
	cmd := &cobra.Command{
		Use:   "scores",
		Short: "Show the best run and recent history",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := f.load()
			if err != nil {
				return err
			}
			defer logger.Sync()

			svc := openServices(cfg)
			defer svc.Close()

			best, ok := svc.scores.Best()

			heading := "Recent runs"
			var runs []highscore.Run
			if svc.history != nil {
				if fastest {
					heading = "Fastest runs on " + cfg.Level
					runs, err = svc.history.Fastest(cfg.Level, limit)
				} else {
					runs, err = svc.history.Recent(limit)
				}
				if err != nil {
					return err
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderScores(best, ok, heading, runs))
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 10, "number of runs to list")
	cmd.Flags().BoolVar(&fastest, "fastest", false, "list the fastest runs on the configured level")
	return cmd
}
