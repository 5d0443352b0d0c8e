package cmd

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/spf13/cobra"

	domain "github.com/zjrosen/switchboard/internal/domain/scenes"
	"github.com/zjrosen/switchboard/internal/log"
	"github.com/zjrosen/switchboard/internal/pubsub"
)

var watchChanges bool

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Reload whenever the collection database changes",
	Long: `Watch the collection database and reload the scene registry whenever another
process writes it. The scene listing is printed after every reload.
With --changes, every registry transition is printed as it happens.
Stop with Ctrl-C.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer func() { _ = a.Close() }()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		out := &lockedWriter{w: cmd.OutOrStdout()}
		changes := a.Scenes().SubscribeChanges(ctx)
		var wg sync.WaitGroup
		wg.Add(1)
		go func() {
			defer wg.Done()
			streamChanges(changes, out, watchChanges)
		}()
		defer wg.Wait()
		defer stop()

		_, _ = fmt.Fprint(out, listing(a))
		return a.Watch(ctx, func(err error) {
			if err != nil {
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "reload failed: %v\n", err)
				return
			}
			_, _ = fmt.Fprintf(out, "--\n%s", listing(a))
		})
	},
}

func init() {
	watchCmd.Flags().BoolVar(&watchChanges, "changes", false, "print every registry transition")
	rootCmd.AddCommand(watchCmd)
}

// streamChanges logs each transition from ch, and prints it to w when show is
// set, until ch is closed.
func streamChanges(ch <-chan pubsub.Event[domain.Mutation], w io.Writer, show bool) {
	for ev := range ch {
		m := ev.Payload
		log.Debug(log.CatCLI, "registry changed", "kind", m.Kind, "version", m.Version, "scene", m.SceneID)
		if show {
			_, _ = fmt.Fprintln(w, formatMutation(m))
		}
	}
}

// formatMutation renders a transition as "~ kind target @version".
func formatMutation(m domain.Mutation) string {
	target := m.Name
	if target == "" {
		target = m.SceneID
	}
	if target == "" {
		return fmt.Sprintf("~ %s @%d", m.Kind, m.Version)
	}
	return fmt.Sprintf("~ %s %s @%d", m.Kind, target, m.Version)
}

// lockedWriter serializes writes from the reload loop and the change stream.
type lockedWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *lockedWriter) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w.Write(p)
}
