package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zjrosen/switchboard/internal/app"
	appscenes "github.com/zjrosen/switchboard/internal/application/scenes"
	domain "github.com/zjrosen/switchboard/internal/domain/scenes"
	"github.com/zjrosen/switchboard/internal/presentation"
)

var (
	scenesJSON         bool
	sceneDuplicateFrom string
)

var scenesCmd = &cobra.Command{
	Use:   "scenes",
	Short: "List and edit the scenes of the collection",
}

var scenesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List scenes in display order",
	Long: `List scenes in display order. The active scene is marked with '*'.

Examples:
  switchboard scenes list
  switchboard scenes list --json | jq '.[].name'`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer func() { _ = a.Close() }()

		return printScenes(cmd, a)
	},
}

var scenesCreateCmd = &cobra.Command{
	Use:   "create NAME",
	Short: "Create a scene and make it active",
	Long: `Create a scene and make it active.

A new scene gets the configured default sources. With --duplicate-from it
instead gets the items of an existing scene, sharing their sources.

Examples:
  switchboard scenes create "Starting Soon"
  switchboard scenes create "Main (copy)" --duplicate-from Main`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer func() { _ = a.Close() }()

		var opts []appscenes.CreateOption
		if sceneDuplicateFrom != "" {
			from, err := resolveScene(a, sceneDuplicateFrom)
			if err != nil {
				return err
			}
			opts = append(opts, appscenes.DuplicateSourcesFromScene(from.Name()))
		}

		sc, err := a.Scenes().CreateScene(args[0], opts...)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "created %s (%s)\n", sc.Name(), sc.ID())
		return nil
	},
}

var scenesRemoveCmd = &cobra.Command{
	Use:   "remove SCENE",
	Short: "Remove a scene by name or id",
	Long: `Remove a scene by name or id. The last remaining scene is never removed.
When the active scene is removed, the first scene in display order becomes active.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer func() { _ = a.Close() }()

		sc, err := resolveScene(a, args[0])
		if err != nil {
			return err
		}
		if err := a.Scenes().RemoveScene(sc.ID()); err != nil {
			return err
		}
		return printScenes(cmd, a)
	},
}

var scenesActivateCmd = &cobra.Command{
	Use:   "activate SCENE",
	Short: "Make a scene the program scene",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer func() { _ = a.Close() }()

		sc, err := resolveScene(a, args[0])
		if err != nil {
			return err
		}
		if err := a.Scenes().MakeSceneActive(sc.ID()); err != nil {
			return err
		}
		if err := a.Save(cmd.Context()); err != nil {
			return err
		}
		return printScenes(cmd, a)
	},
}

var scenesOrderCmd = &cobra.Command{
	Use:   "order SCENE...",
	Short: "Set the display order",
	Long: `Set the display order. Every scene must be named exactly once.

Example:
  switchboard scenes order BRB Main "Starting Soon"`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer func() { _ = a.Close() }()

		order, err := resolveOrder(a, args)
		if err != nil {
			return err
		}
		a.Scenes().SetSceneOrder(order)
		if err := a.Scenes().CommitSceneOrder(); err != nil {
			return err
		}
		return printScenes(cmd, a)
	},
}

var scenesSourcesCmd = &cobra.Command{
	Use:   "sources [SOURCE]",
	Short: "List sources, or the scenes that use one",
	Long: `Without arguments, list every registered source. With a source name or id,
list the scenes containing at least one item of that source, hidden items included.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer func() { _ = a.Close() }()

		f := presentation.NewFormatter(cmd.OutOrStdout())
		if len(args) == 0 {
			return f.FormatJSON(presentation.FromSources(a.Sources().List()))
		}

		src, ok := a.Sources().GetSource(args[0])
		if !ok {
			src, ok = a.Sources().GetSourceByName(args[0])
		}
		if !ok {
			return fmt.Errorf("source %q: %w", args[0], domain.ErrSourceNotFound)
		}

		dtos := presentation.FromScenes(a.Scenes().GetSourceScenes(src.ID), a.Scenes().ActiveSceneID(), a.Sources())
		if scenesJSON {
			return f.FormatJSON(dtos)
		}
		return f.FormatSceneTable(dtos)
	},
}

func init() {
	scenesCmd.PersistentFlags().BoolVar(&scenesJSON, "json", false, "print scenes as JSON")
	scenesCreateCmd.Flags().StringVar(&sceneDuplicateFrom, "duplicate-from", "", "copy the items of this scene (name or id)")

	scenesCmd.AddCommand(scenesListCmd, scenesCreateCmd, scenesRemoveCmd,
		scenesActivateCmd, scenesOrderCmd, scenesSourcesCmd)
	rootCmd.AddCommand(scenesCmd)
}

// errAmbiguousOrder is returned when scenes order does not name every scene once.
var errAmbiguousOrder = errors.New("order must name every scene exactly once")

// resolveScene finds a scene by id, falling back to the first scene with that name.
func resolveScene(a *app.App, ref string) (*appscenes.Scene, error) {
	if sc := a.Scenes().GetScene(ref); sc != nil {
		return sc, nil
	}
	if sc := a.Scenes().GetSceneByName(ref); sc != nil {
		return sc, nil
	}
	return nil, fmt.Errorf("scene %q: %w", ref, domain.ErrSceneNotFound)
}

// resolveOrder maps refs to ids and checks they form a permutation of the scenes.
func resolveOrder(a *app.App, refs []string) ([]string, error) {
	order := make([]string, 0, len(refs))
	seen := make(map[string]bool, len(refs))
	for _, ref := range refs {
		sc, err := resolveScene(a, ref)
		if err != nil {
			return nil, err
		}
		if seen[sc.ID()] {
			return nil, fmt.Errorf("%q listed twice: %w", ref, errAmbiguousOrder)
		}
		seen[sc.ID()] = true
		order = append(order, sc.ID())
	}
	if len(order) != len(a.Scenes().Scenes()) {
		return nil, fmt.Errorf("got %d of %d scenes: %w", len(order), len(a.Scenes().Scenes()), errAmbiguousOrder)
	}
	return order, nil
}

func printScenes(cmd *cobra.Command, a *app.App) error {
	svc := a.Scenes()
	dtos := presentation.FromScenes(svc.Scenes(), svc.ActiveSceneID(), a.Sources())
	f := presentation.NewFormatter(cmd.OutOrStdout())
	if scenesJSON {
		return f.FormatJSON(dtos)
	}
	return f.FormatSceneTable(dtos)
}
