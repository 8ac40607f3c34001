package editor

import (
	"path/filepath"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/plus3/sandbox/playmode"
	"github.com/plus3/sandbox/scene"
)

// SceneExt is appended to file names typed without an extension.
const SceneExt = ".yaml"

var ErrPlayModeActive = errors.New("stop play mode first")

// ResolvePath turns a name typed by the user into a file path. Bare names go
// under dir; names with a directory part are used as given.
func ResolvePath(dir, name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", scene.ErrNoScenePath
	}
	if filepath.Ext(name) == "" {
		name += SceneExt
	}
	if filepath.IsAbs(name) || strings.ContainsAny(name, `/\`) {
		return filepath.Clean(name), nil
	}
	return filepath.Join(dir, name), nil
}

// SceneFiles runs file operations for the editor and reports each outcome to
// Status. Every operation is refused while a play session is active.
type SceneFiles struct {
	Manager    *scene.Manager
	Machine    *playmode.Machine
	Status     *Status
	Selection  *Selection
	ScenesDir  string
	PrefabsDir string
	Logger     *zap.Logger

	// Name is the text in the scene window's file field.
	Name string
}

func (f *SceneFiles) guard(op string) error {
	if f.Machine != nil && f.Machine.InPlayMode() {
		f.Status.Errorf("%s: %v", op, ErrPlayModeActive)
		return ErrPlayModeActive
	}
	return nil
}

func (f *SceneFiles) fail(op string, err error) error {
	f.Logger.Warn("file operation failed", zap.String("op", op), zap.Error(err))
	f.Status.Errorf("%s failed: %v", op, err)
	return err
}

func (f *SceneFiles) New() error {
	if err := f.guard("New scene"); err != nil {
		return err
	}
	f.Manager.New()
	f.Selection.Clear()
	f.Name = ""
	f.Status.Successf("New scene")
	return nil
}

// Save writes to the current path, or to Name if the scene was never saved.
func (f *SceneFiles) Save() error {
	if f.Manager.Path() == "" {
		return f.SaveAs(f.Name)
	}
	if err := f.guard("Save"); err != nil {
		return err
	}
	if err := f.Manager.Save(); err != nil {
		return f.fail("Save", err)
	}
	f.Status.Successf("Saved %s", f.Manager.Path())
	return nil
}

func (f *SceneFiles) SaveAs(name string) error {
	if err := f.guard("Save As"); err != nil {
		return err
	}
	path, err := ResolvePath(f.ScenesDir, name)
	if err != nil {
		return f.fail("Save As", err)
	}
	if err := f.Manager.SaveAs(path); err != nil {
		return f.fail("Save As", err)
	}
	f.Name = filepath.Base(path)
	f.Status.Successf("Saved %s", path)
	return nil
}

func (f *SceneFiles) Load(name string) error {
	if err := f.guard("Load"); err != nil {
		return err
	}
	path, err := ResolvePath(f.ScenesDir, name)
	if err != nil {
		return f.fail("Load", err)
	}
	if err := f.Manager.Load(path); err != nil {
		return f.fail("Load", err)
	}
	f.Selection.Clear()
	f.Name = filepath.Base(path)
	f.Status.Successf("Loaded %s", path)
	return nil
}

func (f *SceneFiles) SaveAsPrefab(name string) error {
	if err := f.guard("Save Prefab"); err != nil {
		return err
	}
	path, err := ResolvePath(f.PrefabsDir, name)
	if err != nil {
		return f.fail("Save Prefab", err)
	}
	if err := f.Manager.SaveAsPrefab(path); err != nil {
		return f.fail("Save Prefab", err)
	}
	f.Status.Successf("Saved prefab %s", path)
	return nil
}

func (f *SceneFiles) SpawnPrefab(name string) error {
	if err := f.guard("Spawn Prefab"); err != nil {
		return err
	}
	path, err := ResolvePath(f.PrefabsDir, name)
	if err != nil {
		return f.fail("Spawn Prefab", err)
	}
	ids, err := f.Manager.SpawnPrefab(path)
	if err != nil {
		return f.fail("Spawn Prefab", err)
	}
	f.Status.Successf("Spawned %d entities from %s", len(ids), path)
	return nil
}

func (f *SceneFiles) Render() {
	window("Scene", nil, func() {
		path := f.Manager.Path()
		if path == "" {
			path = "<unsaved>"
		}
		if f.Manager.Dirty() {
			path += " *"
		}
		imgui.Text("Current: " + path)
		imgui.Separator()

		imgui.SetNextItemWidth(240)
		imgui.InputTextWithHint("##file", "scene name", &f.Name, imgui.InputTextFlagsNone, nil)

		if imgui.Button("New") {
			_ = f.New()
		}
		imgui.SameLine()
		if imgui.Button("Save") {
			_ = f.Save()
		}
		imgui.SameLine()
		if imgui.Button("Save As") {
			_ = f.SaveAs(f.Name)
		}
		imgui.SameLine()
		if imgui.Button("Load") {
			_ = f.Load(f.Name)
		}

		imgui.Separator()
		imgui.Text("Prefabs")
		if imgui.Button("Spawn Prefab") {
			_ = f.SpawnPrefab(f.Name)
		}
		imgui.SameLine()
		if imgui.Button("Save as Prefab") {
			_ = f.SaveAsPrefab(f.Name)
		}
	})
}
