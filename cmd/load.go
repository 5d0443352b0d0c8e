package cmd

import (
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/spf13/cobra"

	"github.com/zjrosen/switchboard/internal/app"
	"github.com/zjrosen/switchboard/internal/engine"
	"github.com/zjrosen/switchboard/internal/presentation"
)

var loadCmd = &cobra.Command{
	Use:   "load",
	Short: "Reload the collection and show what changed",
	Long: `Rebuild the scene registry from the saved collection, then print a diff
between the scenes the database holds and the registry built from them.

The diff shows what loading changed: a default scene created for an empty
collection, or a program scene picked because the saved one is missing.
Nothing but the listing is printed when the two agree.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer func() { _ = a.Close() }()

		if _, err := a.Restore(cmd.Context()); err != nil {
			return fmt.Errorf("loading collection: %w", err)
		}
		before, err := backendListing(a.Engine())
		if err != nil {
			return err
		}
		if err := a.Reload(cmd.Context()); err != nil {
			return err
		}
		after := listing(a)

		out := cmd.OutOrStdout()
		if patch := listingDiff(before, after); patch != "" {
			_, _ = fmt.Fprint(out, patch)
		}
		_, _ = fmt.Fprint(out, after)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(loadCmd)
}

func listing(a *app.App) string {
	svc := a.Scenes()
	return presentation.SceneListing(presentation.FromScenes(svc.Scenes(), svc.ActiveSceneID(), a.Sources()))
}

// backendListing renders the engine's scenes in tab order, marking the
// program scene.
func backendListing(e *engine.Engine) (string, error) {
	names, err := e.ListCurrentSceneNames()
	if err != nil {
		return "", err
	}
	current := e.CurrentScene()
	dtos := make([]presentation.SceneDTO, len(names))
	for i, n := range names {
		dtos[i] = presentation.SceneDTO{Name: n, Position: i, Active: n == current}
	}
	return presentation.SceneListing(dtos), nil
}

// listingDiff returns a line diff from before to after, or "" when equal.
// Removed lines are prefixed with '-', added lines with '+'.
func listingDiff(before, after string) string {
	if before == after {
		return ""
	}
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var sb strings.Builder
	for _, d := range diffs {
		prefix := " "
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			prefix = "-"
		case diffmatchpatch.DiffInsert:
			prefix = "+"
		}
		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line == "" {
				continue
			}
			sb.WriteString(prefix)
			sb.WriteString(line)
		}
	}
	return sb.String()
}
