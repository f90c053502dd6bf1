package ebiten_test

import (
	"context"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/platform/app"
	"github.com/plus3/platform/assets"
	"github.com/plus3/platform/backend"
	"github.com/plus3/platform/ecs/debugui"
	debugui_ebiten "github.com/plus3/platform/ecs/debugui/ebiten"
	"github.com/plus3/platform/input"
)

func Example() {
	// Create the ImGui backend before the game so it can size the window.
	overlay := debugui_ebiten.NewImguiBackend("Debug UI Example", 1280, 720)

	mappings, err := input.Compile(input.Config{
		ActionMappings: map[string][]string{"jump": {"SPACE"}},
	}, backend.KeyNames())
	if err != nil {
		panic(err)
	}

	a := app.New(nil, input.NewMapper(mappings, nil), assets.NewDatabase(nil), app.DefaultOptions())

	// Every debug window is a component on one entity.
	debugui.SpawnDebugUI(a)

	kb := backend.Keyboard{Captured: debugui.WantCaptureKeyboard}
	game := backend.NewGame(context.Background(), a, kb, 1280, 720, nil)
	game.Overlay = overlay

	if err := ebiten.RunGame(game); err != nil {
		panic(err)
	}
}
