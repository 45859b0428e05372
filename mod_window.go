package meadow

import (
	"reflect"
)

// WindowModule owns the single GLFW window shared by input and
// rendering. Install is idempotent: an existing WindowState resource
// is reused so user code may create the window itself.
type WindowModule struct {
	Width  int
	Height int
	Title  string
}

func (m WindowModule) Install(app *App, cmd *Commands) {
	if m.Width <= 0 {
		m.Width = 1280
	}
	if m.Height <= 0 {
		m.Height = 720
	}
	if m.Title == "" {
		m.Title = "Meadow"
	}

	t := reflect.TypeOf((*WindowState)(nil)).Elem()
	if _, ok := app.resources[t]; !ok {
		app.addResources(createWindowState(m.Width, m.Height, m.Title))
		app.Logger().Infof("Created window (%dx%d) '%s'", m.Width, m.Height, m.Title)
	}

	app.UseSystem(System(windowSystem).InStage(PreUpdate))
}

// windowSystem reacts to window events already polled by the input
// system: close requests, Escape, and resizes.
func windowSystem(s *WindowState, gpu *GpuState, input *Input, logger *DefaultLogger, cmd *Commands) {
	if s.windowGlfw.ShouldClose() || input.JustPressed[KeyEscape] {
		logger.Infof("Quit requested")
		cmd.Quit()
		return
	}

	if !s.resized {
		return
	}
	s.resized = false

	// A minimized window reports zero size; leave the old surface
	// until something is visible again.
	if s.WindowWidth <= 0 || s.WindowHeight <= 0 {
		return
	}

	logger.Debugf("Surface reconfigured to %dx%d", s.WindowWidth, s.WindowHeight)
	gpu.surfaceConfig.Width = uint32(s.WindowWidth)
	gpu.surfaceConfig.Height = uint32(s.WindowHeight)
	gpu.surface.Configure(gpu.adapter, gpu.device, gpu.surfaceConfig)

	aspect := float32(s.WindowWidth) / float32(s.WindowHeight)
	MakeQuery1[CameraComponent](cmd).Map(func(eid EntityId, cam *CameraComponent) bool {
		cam.Aspect = aspect
		return true
	})
}
