package meadow

import (
	"time"
)

// Time is refreshed at the start of every frame. Dt and Elapsed are
// seconds; both are zero on the first frame.
type Time struct {
	Now     time.Time
	Dt      float32
	Elapsed float32
}

type TimeModule struct {
}

func (mod TimeModule) Install(app *App, cmd *Commands) {
	cmd.AddResources(&Time{})
	app.UseSystem(System(timeSystem).InStage(PreUpdate))
}

func timeSystem(t *Time) {
	now := time.Now()

	if t.Now.IsZero() {
		t.Now = now
		return
	}

	dt := float32(now.Sub(t.Now).Seconds())
	if dt < 0 {
		dt = 0
	}

	t.Now = now
	t.Dt = dt
	t.Elapsed += dt
}
