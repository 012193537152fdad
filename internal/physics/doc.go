// Package physics holds the two-body collision model.
//
// A [State] owns two [Body] values on a single axis bounded by a viewport.
// Each call to [State.Tick] advances the model by one fixed step:
//
//   - integrate positions (explicit Euler, one velocity unit per step)
//   - reflect bodies that reached a wall while moving into it
//   - detect overlap and, once per contact, apply the elastic [Exchange]
//
// The package performs no I/O. Hosts read the exported fields after each tick
// to render, and use [TickEvents.Collided] to trigger sound.
//
// # Example
//
//	set, err := params.Validate("3", "1", "4", "0")
//	if err != nil {
//	    return err
//	}
//	st := physics.New(set, physics.DefaultLayout())
//	for st.Phase == physics.Running {
//	    if ev := st.Tick(); ev.Collided {
//	        player.Play()
//	    }
//	}
package physics
