package editor

import (
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/pkg/errors"
)

// AssetKind classifies a file by extension.
type AssetKind int

const (
	AssetUnknown AssetKind = iota
	AssetImage
	AssetAudio
	AssetScene
)

func (k AssetKind) String() string {
	switch k {
	case AssetImage:
		return "image"
	case AssetAudio:
		return "audio"
	case AssetScene:
		return "scene"
	}
	return "file"
}

// KindOf returns the asset kind of name.
func KindOf(name string) AssetKind {
	switch strings.ToLower(strings.TrimPrefix(path.Ext(name), ".")) {
	case "png", "jpg", "jpeg", "bmp", "gif":
		return AssetImage
	case "ogg", "wav", "mp3":
		return AssetAudio
	case "yaml", "yml":
		return AssetScene
	}
	return AssetUnknown
}

// AssetEntry is a file or directory under the assets root. Path is relative
// to the root and always uses forward slashes.
type AssetEntry struct {
	Name     string
	Path     string
	Dir      bool
	Children []AssetEntry
	Expanded bool
}

// ScanAssets walks root. Directories come before files, each group sorted by
// name, and dot files are skipped. A missing root is created.
func ScanAssets(root string) ([]AssetEntry, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, errors.Wrap(err, "create assets directory")
	}
	return scanDir(root, "")
}

func scanDir(dir, rel string) ([]AssetEntry, error) {
	des, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "scan %s", dir)
	}

	entries := make([]AssetEntry, 0, len(des))
	for _, de := range des {
		name := de.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}
		entry := AssetEntry{Name: name, Path: path.Join(rel, name), Dir: de.IsDir()}
		if entry.Dir {
			// Unreadable subdirectories show up empty.
			entry.Children, _ = scanDir(filepath.Join(dir, name), entry.Path)
		} else if !de.Type().IsRegular() {
			continue
		}
		entries = append(entries, entry)
	}

	slices.SortFunc(entries, func(a, b AssetEntry) int {
		if a.Dir != b.Dir {
			if a.Dir {
				return -1
			}
			return 1
		}
		return strings.Compare(a.Name, b.Name)
	})
	return entries, nil
}

// Toggle flips the Expanded flag of the directory at p.
func Toggle(entries []AssetEntry, p string) bool {
	for i := range entries {
		e := &entries[i]
		if !e.Dir {
			continue
		}
		if e.Path == p {
			e.Expanded = !e.Expanded
			return true
		}
		if strings.HasPrefix(p, e.Path+"/") {
			return Toggle(e.Children, p)
		}
	}
	return false
}

// AssetBrowser lists the assets directory, previews audio and assigns images
// to the selected sprite.
type AssetBrowser struct {
	Root     string
	Entries  []AssetEntry
	Selected string
	Audio    *AudioPreview

	// AssignImage is called when the user applies an image asset.
	AssignImage func(path string) error
	OnError     func(error)
}

func (b *AssetBrowser) Rescan() error {
	entries, err := ScanAssets(b.Root)
	if err != nil {
		return err
	}
	b.Entries = entries
	return nil
}

func (b *AssetBrowser) Render() {
	window("Assets", nil, func() {
		if imgui.Button("Refresh") {
			b.report(b.Rescan())
		}
		imgui.Separator()

		if len(b.Entries) == 0 {
			imgui.Text("No assets found.")
			imgui.Text("Add files to " + b.Root)
		}
		for i := range b.Entries {
			b.renderEntry(&b.Entries[i])
		}

		if b.Selected != "" {
			imgui.Separator()
			b.renderPreview(b.Selected)
		}
	})
}

func (b *AssetBrowser) renderEntry(e *AssetEntry) {
	if e.Dir {
		icon := "+ "
		if e.Expanded {
			icon = "- "
		}
		if imgui.SelectableBoolV(icon+e.Name+"/##"+e.Path, false, imgui.SelectableFlagsNone, imgui.NewVec2(0, 0)) {
			e.Expanded = !e.Expanded
		}
		if e.Expanded {
			for i := range e.Children {
				imgui.Text("  ")
				imgui.SameLine()
				b.renderEntry(&e.Children[i])
			}
		}
		return
	}
	label := "[" + KindOf(e.Name).String() + "] " + e.Name + "##" + e.Path
	if imgui.SelectableBoolV(label, b.Selected == e.Path, imgui.SelectableFlagsNone, imgui.NewVec2(0, 0)) {
		b.Selected = e.Path
	}
}

func (b *AssetBrowser) renderPreview(p string) {
	imgui.Text("Path: " + p)
	switch KindOf(p) {
	case AssetImage:
		if b.AssignImage != nil && imgui.Button("Assign to selected sprite") {
			b.report(b.AssignImage(p))
		}
	case AssetAudio:
		imgui.Text("Format: " + strings.ToUpper(strings.TrimPrefix(path.Ext(p), ".")))
		if b.Audio == nil {
			imgui.Text("Audio output unavailable")
			return
		}
		if b.Audio.Playing() == p {
			if imgui.Button("Stop") {
				b.Audio.Stop()
			}
			imgui.SameLine()
			imgui.Text("Playing...")
		} else if imgui.Button("Play") {
			b.report(b.Audio.Play(filepath.Join(b.Root, filepath.FromSlash(p)), p))
		}
	case AssetScene:
		imgui.Text("Scene file. Open it from the Scene window.")
	default:
		imgui.Text("Unknown file type")
	}
}

func (b *AssetBrowser) report(err error) {
	if err != nil && b.OnError != nil {
		b.OnError(err)
	}
}
