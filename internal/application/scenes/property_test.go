package scenes

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/zjrosen/switchboard/internal/engine"
	"github.com/zjrosen/switchboard/internal/sources"
)

// ============================================================================
// Property-Based Tests for Registry Invariants
// ============================================================================

// TestProperty_OperationsPreserveInvariants runs random sequences of
// create, remove, activate and reorder against the in-process engine and
// checks the registry invariants after every operation.
func TestProperty_OperationsPreserveInvariants(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		e := engine.New()
		svc := NewService(e, sources.NewRegistry(e, &seqIDs{prefix: "src-"}), nil,
			WithIDGenerator(&seqIDs{prefix: "scene-"}),
			WithAlerter(&recordingAlerter{}),
		)
		defer svc.Close()

		created := 0
		hadScene := false
		steps := rapid.IntRange(1, 30).Draw(t, "steps")

		for i := 0; i < steps; i++ {
			ids := sceneIDs(svc.Scenes())
			op := rapid.IntRange(0, 3).Draw(t, fmt.Sprintf("op-%d", i))
			if len(ids) == 0 {
				op = 0
			}

			switch op {
			case 0:
				created++
				name := fmt.Sprintf("Scene %d", created)
				sc, err := svc.CreateScene(name)
				require.NoError(t, err)
				require.Equal(t, sc.ID(), svc.ActiveSceneID(), "create activates")
			case 1:
				victim := rapid.SampledFrom(ids).Draw(t, fmt.Sprintf("victim-%d", i))
				activeBefore := svc.ActiveSceneID()
				require.NoError(t, svc.RemoveScene(victim))
				switch {
				case len(ids) < 2:
					require.Equal(t, ids, sceneIDs(svc.Scenes()), "last scene is never removed")
				case victim != activeBefore:
					require.Equal(t, activeBefore, svc.ActiveSceneID())
				default:
					require.Equal(t, sceneIDs(svc.Scenes())[0], svc.ActiveSceneID())
				}
			case 2:
				target := rapid.SampledFrom(ids).Draw(t, fmt.Sprintf("target-%d", i))
				require.NoError(t, svc.MakeSceneActive(target))
				require.Equal(t, target, svc.ActiveSceneID())
			case 3:
				perm := rapid.Permutation(ids).Draw(t, fmt.Sprintf("perm-%d", i))
				svc.SetSceneOrder(perm)
				require.Equal(t, perm, sceneIDs(svc.Scenes()))
			}

			snap := svc.Snapshot()
			require.NoError(t, snap.Validate(), "step %d", i)
			if len(snap.Scenes) > 0 {
				hadScene = true
			}
			if hadScene {
				require.NotEmpty(t, snap.Scenes, "registry never drops to zero scenes")
			}

			names, err := e.ListCurrentSceneNames()
			require.NoError(t, err)
			require.ElementsMatch(t, snap.Names(), names, "backend and registry agree on scenes")
		}
	})
}
