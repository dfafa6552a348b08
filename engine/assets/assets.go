// Package assets loads content files by name through per-type loaders and
// watches the content tree so levels can be reloaded while the game runs.
package assets

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/spaghettifunk/zippy/engine/assets/loaders"
	"github.com/spaghettifunk/zippy/engine/core"
	"github.com/spaghettifunk/zippy/engine/renderer/metadata"
)

type AssetInfo struct {
	Path       string
	Type       metadata.ResourceType
	LastLoaded time.Time
}

type AssetManagerConfig struct {
	// BaseDir is what asset names are relative to, e.g. "Content/Levels/Level1.csv".
	BaseDir string
	// WatchDir is watched recursively when Watch is set. Relative to BaseDir.
	WatchDir string
	Watch    bool
}

type subscriber struct {
	id int
	fn func(name string)
}

/**
 * @brief AssetManager resolves asset names against a base directory and hands
 * them to the loader registered for their resource type. When watching, file
 * writes under the watch directory are collected on the watcher goroutine and
 * delivered to OnChange subscribers from Update, on the frame thread.
 */
type AssetManager struct {
	base    string
	watch   string
	assets  map[string]AssetInfo
	loaders map[metadata.ResourceType]Loader

	mutex sync.RWMutex

	subscribers map[string][]subscriber
	nextID      int
	pending     map[string]struct{}

	done     chan struct{}
	fsnotify *fsnotify.Watcher
	isClosed bool
}

func NewAssetManager(config *AssetManagerConfig) (*AssetManager, error) {
	base := config.BaseDir
	if base == "" {
		base = "."
	}
	am := &AssetManager{
		base:        base,
		assets:      make(map[string]AssetInfo),
		loaders:     make(map[metadata.ResourceType]Loader),
		subscribers: make(map[string][]subscriber),
		pending:     make(map[string]struct{}),
	}
	am.registerLoader(metadata.ResourceTypeText, &loaders.TextLoader{})
	am.registerLoader(metadata.ResourceTypeBinary, &loaders.BinaryLoader{})
	am.registerLoader(metadata.ResourceTypeAudio, &loaders.BinaryLoader{})
	am.registerLoader(metadata.ResourceTypeImage, &loaders.ImageLoader{})
	am.registerLoader(metadata.ResourceTypeShader, &loaders.ShaderLoader{})
	am.registerLoader(metadata.ResourceTypeBitmapFont, &loaders.BitmapFontLoader{})

	if !config.Watch {
		return am, nil
	}
	fsWatch, err := fsnotify.NewWatcher()
	if err != nil {
		err = fmt.Errorf("func NewAssetManager - failed to create watcher: %w", err)
		core.LogError("%s", err)
		return nil, err
	}
	am.fsnotify = fsWatch
	am.done = make(chan struct{})
	am.watch = filepath.Join(base, config.WatchDir)
	if err := am.addRecursive(am.watch); err != nil {
		fsWatch.Close()
		err = fmt.Errorf("func NewAssetManager - failed to watch `%s`: %w", am.watch, err)
		core.LogError("%s", err)
		return nil, err
	}
	go am.start()
	core.LogInfo("watching `%s` for content changes", am.watch)
	return am, nil
}

func (am *AssetManager) BaseDir() string {
	return am.base
}

func (am *AssetManager) Watching() bool {
	return am.fsnotify != nil && !am.isClosed
}

// RegisterLoader replaces the loader used for assetType.
func (am *AssetManager) RegisterLoader(assetType metadata.ResourceType, loader Loader) {
	am.registerLoader(assetType, loader)
}

func (am *AssetManager) registerLoader(assetType metadata.ResourceType, loader Loader) {
	am.loaders[assetType] = loader
}

// Path is the file system path of an asset name.
func (am *AssetManager) Path(name string) string {
	return filepath.Join(am.base, filepath.FromSlash(name))
}

// name is the inverse of Path: a slash separated name relative to the base.
func (am *AssetManager) name(path string) string {
	rel, err := filepath.Rel(am.base, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}

// LoadAsset loads name using the appropriate loader.
func (am *AssetManager) LoadAsset(name string, resourceType metadata.ResourceType, params interface{}) (*metadata.Resource, error) {
	loader, ok := am.loaders[resourceType]
	if !ok {
		err := fmt.Errorf("func LoadAsset - no loader registered for asset type `%s`: %w", resourceType, core.ErrUnknownType)
		core.LogError("%s", err)
		return nil, err
	}
	res, err := loader.Load(am.Path(name), resourceType, params)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			err = fmt.Errorf("func LoadAsset - `%s`: %w: %v", name, core.ErrNotFound, err)
		} else {
			err = fmt.Errorf("func LoadAsset - `%s`: %w", name, err)
		}
		core.LogError("%s", err)
		return nil, err
	}
	res.Name = name
	res.Type = resourceType

	am.mutex.Lock()
	am.assets[name] = AssetInfo{Path: res.FullPath, Type: resourceType, LastLoaded: time.Now()}
	am.mutex.Unlock()
	return res, nil
}

func (am *AssetManager) UnloadAsset(asset *metadata.Resource) error {
	loader, ok := am.loaders[asset.Type]
	if !ok {
		return fmt.Errorf("func UnloadAsset - `%s`: %w", asset.Name, core.ErrUnknownType)
	}
	am.mutex.Lock()
	delete(am.assets, asset.Name)
	am.mutex.Unlock()
	return loader.Unload(asset)
}

// Loaded returns what is known about a previously loaded asset.
func (am *AssetManager) Loaded(name string) (AssetInfo, bool) {
	am.mutex.RLock()
	defer am.mutex.RUnlock()
	info, ok := am.assets[name]
	return info, ok
}

func (am *AssetManager) LoadText(name string) (string, error) {
	res, err := am.LoadAsset(name, metadata.ResourceTypeText, nil)
	if err != nil {
		return "", err
	}
	return res.Data.(string), nil
}

func (am *AssetManager) LoadBytes(name string) ([]byte, error) {
	res, err := am.LoadAsset(name, metadata.ResourceTypeBinary, nil)
	if err != nil {
		return nil, err
	}
	return res.Data.([]byte), nil
}

// LoadAudio returns the encoded bytes of a sound clip.
func (am *AssetManager) LoadAudio(name string) ([]byte, error) {
	res, err := am.LoadAsset(name, metadata.ResourceTypeAudio, nil)
	if err != nil {
		return nil, err
	}
	return res.Data.([]byte), nil
}

func (am *AssetManager) LoadImage(name string) (*metadata.ImageResourceData, error) {
	res, err := am.LoadAsset(name, metadata.ResourceTypeImage, nil)
	if err != nil {
		return nil, err
	}
	return res.Data.(*metadata.ImageResourceData), nil
}

func (am *AssetManager) LoadShader(name, vertex, fragment string) (metadata.ShaderSource, error) {
	res, err := am.LoadAsset(vertex, metadata.ResourceTypeShader, &metadata.ShaderResourceParams{FragmentPath: am.Path(fragment)})
	if err != nil {
		return metadata.ShaderSource{}, err
	}
	src := res.Data.(metadata.ShaderSource)
	src.Name = name
	return src, nil
}

// LoadBitmapFont loads a .fnt descriptor. Page files come back as asset names.
func (am *AssetManager) LoadBitmapFont(name string) (*metadata.BitmapFontResourceData, error) {
	res, err := am.LoadAsset(name, metadata.ResourceTypeBitmapFont, nil)
	if err != nil {
		return nil, err
	}
	data := res.Data.(*metadata.BitmapFontResourceData)
	for _, p := range data.Pages {
		p.File = am.name(filepath.FromSlash(p.File))
	}
	return data, nil
}

// OnChange calls fn from Update whenever the named file is written. The
// returned func unsubscribes.
func (am *AssetManager) OnChange(name string, fn func(name string)) func() {
	am.mutex.Lock()
	defer am.mutex.Unlock()
	am.nextID++
	id := am.nextID
	am.subscribers[name] = append(am.subscribers[name], subscriber{id: id, fn: fn})
	return func() {
		am.mutex.Lock()
		defer am.mutex.Unlock()
		subs := am.subscribers[name]
		for i, s := range subs {
			if s.id == id {
				am.subscribers[name] = append(subs[:i:i], subs[i+1:]...)
				return
			}
		}
	}
}

func (am *AssetManager) CanUpdate() bool {
	return am.fsnotify != nil
}

// Update delivers the changes collected since the previous call.
func (am *AssetManager) Update(dt time.Duration) {
	am.mutex.Lock()
	if len(am.pending) == 0 {
		am.mutex.Unlock()
		return
	}
	var calls []func()
	for name := range am.pending {
		for _, s := range am.subscribers[name] {
			fn, n := s.fn, name
			calls = append(calls, func() { fn(n) })
		}
	}
	am.pending = make(map[string]struct{})
	am.mutex.Unlock()

	for _, call := range calls {
		call()
	}
}

func (am *AssetManager) Shutdown() error {
	if am.fsnotify == nil || am.isClosed {
		return nil
	}
	am.isClosed = true
	close(am.done)
	return nil
}

func (am *AssetManager) start() {
	for {
		select {
		case e, ok := <-am.fsnotify.Events:
			if !ok {
				return
			}
			s, err := os.Stat(e.Name)
			if err == nil && s != nil && s.IsDir() {
				if e.Op&fsnotify.Create != 0 {
					am.watchRecursive(e.Name, false)
				}
				continue
			}
			// Handle create or modify events
			if e.Op&(fsnotify.Create|fsnotify.Write) != 0 {
				am.handleFileEvent(e.Name)
			}
			if e.Op&fsnotify.Remove != 0 {
				am.removeAsset(e.Name)
			}

		case err, ok := <-am.fsnotify.Errors:
			if !ok {
				return
			}
			core.LogError("%s", err)

		case <-am.done:
			am.fsnotify.Close()
			return
		}
	}
}

// AddRecursive starts watching the named directory and all sub-directories.
func (am *AssetManager) addRecursive(name string) error {
	if am.isClosed {
		return errors.New("asset watcher already closed")
	}
	return am.watchRecursive(name, false)
}

// watchRecursive adds all directories under the given one to the watch list.
func (am *AssetManager) watchRecursive(path string, unWatch bool) error {
	return filepath.Walk(path, func(walkPath string, fi os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !fi.IsDir() {
			return nil
		}
		if unWatch {
			return am.fsnotify.Remove(walkPath)
		}
		return am.fsnotify.Add(walkPath)
	})
}

// Handle the creation or modification of a file
func (am *AssetManager) handleFileEvent(path string) {
	name := am.name(path)
	if determineAssetType(name) == metadata.ResourceTypeNone {
		return
	}
	am.mutex.Lock()
	defer am.mutex.Unlock()
	am.pending[name] = struct{}{}
}

// Remove the asset from the index if it was deleted
func (am *AssetManager) removeAsset(path string) {
	am.mutex.Lock()
	defer am.mutex.Unlock()
	delete(am.assets, am.name(path))
}

func determineAssetType(path string) metadata.ResourceType {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".txt", ".glsl":
		return metadata.ResourceTypeText
	case ".png", ".jpg", ".jpeg", ".bmp":
		return metadata.ResourceTypeImage
	case ".fnt":
		return metadata.ResourceTypeBitmapFont
	case ".wav":
		return metadata.ResourceTypeAudio
	default:
		return metadata.ResourceTypeNone
	}
}
