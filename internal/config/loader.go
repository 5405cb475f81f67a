package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-tilegen/internal/registry"
	"github.com/vovakirdan/tui-tilegen/internal/wfc"
)

// tilesetExtensions are tried in order when searching tileset directories.
var tilesetExtensions = []string{".yaml", ".yml", ".json"}

// LoadRun loads the run configuration.
// Search order: customPath -> ~/.tilegen/config.yaml -> ./configs/tilegen.yaml -> embedded default
// The first file that exists is used; a file that exists but cannot be read
// or parsed is an error, never a fallback to the next source.
func LoadRun(customPath string) (RunConfig, error) {
	if customPath != "" {
		return readRun(customPath)
	}

	candidates := []string{
		userConfigPath("config.yaml"),
		filepath.Join("configs", "tilegen.yaml"),
	}
	for _, path := range candidates {
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			continue
		}
		return readRun(path)
	}

	cfg, err := decodeRun(defaultRunYAML)
	if err != nil {
		return DefaultRunConfig(), &Error{Path: "embedded defaults", Err: err}
	}
	return cfg, nil
}

// readRun reads and decodes one run config file.
func readRun(path string) (RunConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return DefaultRunConfig(), &Error{Path: path, Err: fmt.Errorf("failed to read: %w", err)}
	}
	cfg, err := decodeRun(data)
	if err != nil {
		return DefaultRunConfig(), &Error{Path: path, Err: err}
	}
	return cfg, nil
}

// decodeRun decodes data over the defaults. Unknown keys are rejected.
// An empty document yields the defaults.
func decodeRun(data []byte) (RunConfig, error) {
	cfg := DefaultRunConfig()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return DefaultRunConfig(), fmt.Errorf("failed to parse: %w", err)
	}
	return cfg, nil
}

// Tileset is a parsed tileset: the engine catalog plus presentation hints.
type Tileset struct {
	ID          string
	Name        string
	Description string
	Source      string // file path or "builtin:<id>"
	Catalog     *wfc.Catalog
	Skins       map[string]Skin // keyed by asset reference
}

// Skin returns the presentation for asset, or the zero Skin.
func (t *Tileset) Skin(asset string) Skin {
	return t.Skins[asset]
}

// LoadTileset resolves a tileset by name.
// Search order: customPath -> ~/.tilegen/tilesets/<name>.* -> ./tilesets/<name>.* -> built-in <name>
//
// Unlike run configs, a tileset file that exists but does not parse is an
// error: generation never falls back to a different ruleset.
func LoadTileset(name, customPath string) (*Tileset, error) {
	if customPath != "" {
		return LoadTilesetFile(customPath)
	}

	var dirs []string
	if userDir := userConfigPath("tilesets"); userDir != "" {
		dirs = append(dirs, userDir)
	}
	dirs = append(dirs, "tilesets")

	for _, dir := range dirs {
		for _, ext := range tilesetExtensions {
			path := filepath.Join(dir, name+ext)
			if _, err := os.Stat(path); err == nil {
				return LoadTilesetFile(path)
			}
		}
	}

	data, err := registry.Source(name)
	if err != nil {
		return nil, &Error{Path: name, Err: fmt.Errorf("%w: %v", ErrUnknownTileset, err)}
	}
	ts, err := ParseTileset(data, name)
	if err != nil {
		return nil, &Error{Path: "builtin:" + name, Err: err}
	}
	ts.Source = "builtin:" + name
	return ts, nil
}

// LoadTilesetFile reads and parses a tileset file.
func LoadTilesetFile(path string) (*Tileset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &Error{Path: path, Err: fmt.Errorf("failed to read: %w", err)}
	}
	id := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	ts, err := ParseTileset(data, id)
	if err != nil {
		return nil, &Error{Path: path, Err: err}
	}
	ts.Source = path
	return ts, nil
}

// ParseTileset parses a YAML or JSON tileset document.
// The document is either {name, description, tiles: {code: tile}} or the
// bare {code: tile} map.
func ParseTileset(data []byte, id string) (*Tileset, error) {
	doc, err := DecodeTileset(data)
	if err != nil {
		return nil, err
	}
	return BuildTileset(doc, id)
}

// DecodeTileset decodes a document without building the catalog.
func DecodeTileset(data []byte) (TilesetDoc, error) {
	var doc TilesetDoc

	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return doc, fmt.Errorf("failed to parse: %w", err)
	}
	if len(node.Content) == 0 {
		return doc, errors.New("document is empty")
	}
	root := node.Content[0]
	if root.Kind != yaml.MappingNode {
		return doc, errors.New("document must be a mapping")
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if hasKey(root, "tiles") {
		err := dec.Decode(&doc)
		if err != nil {
			return doc, fmt.Errorf("failed to parse: %w", err)
		}
	} else {
		err := dec.Decode(&doc.Tiles)
		if err != nil {
			return doc, fmt.Errorf("failed to parse: %w", err)
		}
	}
	return doc, nil
}

// hasKey reports whether a mapping node has the given key.
func hasKey(m *yaml.Node, key string) bool {
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value == key {
			return true
		}
	}
	return false
}

// BuildTileset validates a decoded document and builds its catalog.
func BuildTileset(doc TilesetDoc, id string) (*Tileset, error) {
	if len(doc.Tiles) == 0 {
		return nil, errors.New("tileset has no tiles")
	}

	// Deterministic iteration for stable error messages
	keys := make([]string, 0, len(doc.Tiles))
	for k := range doc.Tiles {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	models := make(map[wfc.TileCode]wfc.ModelOptions, len(doc.Tiles))
	skins := make(map[string]Skin)
	for _, key := range keys {
		tile := doc.Tiles[key]

		n, err := strconv.ParseUint(strings.TrimSpace(key), 10, 32)
		if err != nil {
			return nil, fmt.Errorf("tile key %q is not a tile code: %w", key, err)
		}
		code := wfc.TileCode(n)
		if _, dup := models[code]; dup {
			return nil, fmt.Errorf("tile %d defined twice", code)
		}
		if tile.Code != nil && *tile.Code != int64(code) {
			return nil, fmt.Errorf("tile %d: code field is %d", code, *tile.Code)
		}
		if tile.AssetModel == "" {
			return nil, fmt.Errorf("tile %d: asset_model is required", code)
		}

		sides := tile.BesideImpossible
		if sides == nil {
			sides = tile.BesideImposible
		} else if tile.BesideImposible != nil {
			return nil, fmt.Errorf("tile %d: both beside_impossible and beside_imposible given", code)
		}
		if sides == nil {
			return nil, fmt.Errorf("tile %d: beside_impossible is required", code)
		}

		models[code] = wfc.ModelOptions{
			Asset: tile.AssetModel,
			Forbidden: wfc.Constraint{
				Top:    toTileSet(sides.Top),
				Right:  toTileSet(sides.Right),
				Bottom: toTileSet(sides.Bottom),
				Left:   toTileSet(sides.Left),
			},
		}
		if tile.Glyph != "" || tile.Color != "" {
			skins[tile.AssetModel] = Skin{Glyph: tile.Glyph, Color: tile.Color}
		}
	}

	cat, err := wfc.NewCatalog(models)
	if err != nil {
		return nil, err
	}

	name := doc.Name
	if name == "" {
		name = id
	}
	return &Tileset{
		ID:          id,
		Name:        name,
		Description: doc.Description,
		Catalog:     cat,
		Skins:       skins,
	}, nil
}

func toTileSet(codes []uint32) wfc.TileSet {
	out := make([]wfc.TileCode, len(codes))
	for i, c := range codes {
		out[i] = wfc.TileCode(c)
	}
	return wfc.NewTileSet(out...)
}

// userConfigPath returns the path under ~/.tilegen, or empty if home is unavailable.
func userConfigPath(name string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".tilegen", name)
}

// ListTilesetFiles returns tileset files found in the user and local
// tileset directories, sorted by path. Missing directories are skipped.
func ListTilesetFiles() ([]string, error) {
	var dirs []string
	if userDir := userConfigPath("tilesets"); userDir != "" {
		dirs = append(dirs, userDir)
	}
	dirs = append(dirs, "tilesets")

	var files []string
	for _, dir := range dirs {
		err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				if errors.Is(err, fs.ErrNotExist) {
					return filepath.SkipDir
				}
				return err
			}
			if d.IsDir() {
				return nil
			}
			if isTilesetExtension(strings.ToLower(filepath.Ext(path))) {
				files = append(files, path)
			}
			return nil
		})
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("walking directory %s: %w", dir, err)
		}
	}
	sort.Strings(files)
	return files, nil
}

func isTilesetExtension(ext string) bool {
	for _, supported := range tilesetExtensions {
		if ext == supported {
			return true
		}
	}
	return false
}
