package meadow

// SceneModule spawns the entities of a SceneDef on the first frame,
// once every other module has registered its resources.
type SceneModule struct {
	Scene *SceneDef
}

type sceneState struct {
	def    *SceneDef
	loaded bool
}

func (m SceneModule) Install(app *App, cmd *Commands) {
	cmd.AddResources(&sceneState{def: m.Scene})
	app.UseSystem(System(sceneSpawnSystem).InStage(PreUpdate))
}

func sceneSpawnSystem(state *sceneState, assets *AssetServer, input *Input, cmd *Commands) {
	if state.loaded || state.def == nil {
		return
	}
	state.loaded = true

	aspect := float32(0)
	if input.WindowHeight > 0 {
		aspect = float32(input.WindowWidth) / float32(input.WindowHeight)
	}
	LoadScene(cmd, assets, state.def, aspect)
	cmd.app.Logger().Infof("Scene loaded: %d meshes, %d lights", len(state.def.Meshes), len(state.def.Lights))
}
