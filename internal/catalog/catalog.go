// Package catalog indexes a directory of title containers.
package catalog

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/golang/groupcache/lru"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/samcharles93/xdbf/internal/logger"
	"github.com/samcharles93/xdbf/internal/source"
	"github.com/samcharles93/xdbf/pkg/xdbf"
)

var ErrTitleNotFound = errors.New("catalog: title not found")

// namespace seeds the name-based title ids so they are stable across runs.
var namespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/samcharles93/xdbf/catalog"))

// Extensions of raw container files. Compressed variants append a
// compression suffix, e.g. "title.spa.zst".
var Extensions = []string{".xdbf", ".spa"}

type Options struct {
	// Concurrency bounds parallel file opens; zero means 8.
	Concurrency int
	// CacheSize is the number of (title, locale) achievement lists kept.
	CacheSize int
	// MaxDecompressed caps compressed containers, see source.Options.
	MaxDecompressed int64
	Logger          logger.Logger
}

func (o Options) withDefaults() Options {
	if o.Concurrency <= 0 {
		o.Concurrency = 8
	}
	if o.CacheSize <= 0 {
		o.CacheSize = 256
	}
	if o.Logger == nil {
		o.Logger = logger.Discard()
	}
	return o
}

// Title is one loaded container.
type Title struct {
	ID          uuid.UUID
	Name        string
	Path        string
	Compression source.Compression
	Summary     xdbf.Summary

	file *source.File
}

// Catalog holds open title containers. It is safe for concurrent use.
type Catalog struct {
	dir    string
	titles []*Title
	byID   map[uuid.UUID]*Title
	log    logger.Logger

	mu    sync.Mutex
	cache *lru.Cache
}

type cacheKey struct {
	id     uuid.UUID
	locale xdbf.Locale
}

type cachedAchievements struct {
	list  []xdbf.Achievement
	count uint32
}

// IsContainerPath reports whether name looks like a container file.
func IsContainerPath(name string) bool {
	lower := strings.ToLower(name)
	if source.CompressionFor(lower) != source.CompNone {
		lower = strings.TrimSuffix(lower, filepath.Ext(lower))
	}
	for _, ext := range Extensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

// Open scans dir and loads every container found. Unreadable or invalid
// files are logged and skipped.
func Open(ctx context.Context, dir string, opts Options) (*Catalog, error) {
	opts = opts.withDefaults()
	log := opts.Logger.With("dir", dir)

	var paths []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && IsContainerPath(d.Name()) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", dir, err)
	}

	loaded := make([]*Title, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Concurrency)
	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			loaded[i] = loadTitle(dir, path, opts, log)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		closeTitles(loaded)
		return nil, err
	}

	c := &Catalog{
		dir:   dir,
		byID:  make(map[uuid.UUID]*Title),
		log:   log,
		cache: lru.New(opts.CacheSize),
	}
	for _, t := range loaded {
		if t == nil {
			continue
		}
		if _, dup := c.byID[t.ID]; dup {
			log.Warn("duplicate title id, skipping", "path", t.Path)
			_ = t.file.Close()
			continue
		}
		c.byID[t.ID] = t
		c.titles = append(c.titles, t)
	}
	sort.Slice(c.titles, func(i, j int) bool {
		if c.titles[i].Name != c.titles[j].Name {
			return c.titles[i].Name < c.titles[j].Name
		}
		return c.titles[i].Path < c.titles[j].Path
	})
	log.Info("catalog loaded", "titles", len(c.titles), "scanned", len(paths))
	return c, nil
}

func loadTitle(dir, path string, opts Options, log logger.Logger) *Title {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		rel = path
	}
	rel = filepath.ToSlash(rel)

	f, err := source.Open(path, source.Options{MaxDecompressed: opts.MaxDecompressed})
	if err != nil {
		log.Warn("skipping unreadable container", "path", rel, "error", err)
		return nil
	}
	g := f.GameData()
	if !g.Valid() {
		log.Warn("skipping invalid container", "path", rel, "error", g.Err())
		_ = f.Close()
		return nil
	}
	summary := g.Summary()
	name := summary.Title
	if name == "" {
		name = strings.SplitN(filepath.Base(path), ".", 2)[0]
	}
	log.Debug("loaded container", "path", rel, "title", name, "mapped", f.Mapped())
	return &Title{
		ID:          uuid.NewSHA1(namespace, []byte(rel)),
		Name:        name,
		Path:        rel,
		Compression: f.Compression,
		Summary:     summary,
		file:        f,
	}
}

func closeTitles(titles []*Title) {
	for _, t := range titles {
		if t != nil {
			_ = t.file.Close()
		}
	}
}

// Dir returns the scanned directory.
func (c *Catalog) Dir() string {
	return c.dir
}

// Titles returns the loaded titles sorted by name.
func (c *Catalog) Titles() []*Title {
	out := make([]*Title, len(c.titles))
	copy(out, c.titles)
	return out
}

// Get returns the title with the given id.
func (c *Catalog) Get(id string) (*Title, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrTitleNotFound, id)
	}
	t, ok := c.byID[uid]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrTitleNotFound, uid)
	}
	return t, nil
}

// GameData returns the decoded container of title id.
func (c *Catalog) GameData(id string) (*xdbf.GameData, error) {
	t, err := c.Get(id)
	if err != nil {
		return nil, err
	}
	return t.file.GameData(), nil
}

// Achievements returns the achievement list of title id in locale.
// Results are cached per (title, locale); callers get their own copy.
func (c *Catalog) Achievements(id string, locale xdbf.Locale) ([]xdbf.Achievement, uint32, error) {
	t, err := c.Get(id)
	if err != nil {
		return nil, 0, err
	}
	key := cacheKey{id: t.ID, locale: locale}

	c.mu.Lock()
	v, ok := c.cache.Get(key)
	c.mu.Unlock()
	if !ok {
		list, count := t.file.GameData().Achievements(locale)
		v = cachedAchievements{list: list, count: count}
		c.mu.Lock()
		c.cache.Add(key, v)
		c.mu.Unlock()
	}
	ca := v.(cachedAchievements)
	out := make([]xdbf.Achievement, len(ca.list))
	copy(out, ca.list)
	return out, ca.count, nil
}

// Strings returns the string table of title id for locale.
func (c *Catalog) Strings(id string, locale xdbf.Locale) ([]xdbf.StringRecord, error) {
	g, err := c.GameData(id)
	if err != nil {
		return nil, err
	}
	st, err := xdbf.ParseStringTable(g.StringTable(locale))
	if err != nil {
		return nil, fmt.Errorf("%s string table: %w", locale, err)
	}
	return st.Records(), nil
}

// Icon returns a copy of the title icon payload.
func (c *Catalog) Icon(id string) ([]byte, error) {
	g, err := c.GameData(id)
	if err != nil {
		return nil, err
	}
	b := g.Icon()
	if !b.Found() {
		return nil, fmt.Errorf("icon: %w", b.Err())
	}
	return bytes.Clone(b.Bytes()), nil
}

// Close releases every container. The catalog must not be used afterwards.
func (c *Catalog) Close() error {
	var errs []error
	for _, t := range c.titles {
		if err := t.file.Close(); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", t.Path, err))
		}
	}
	c.mu.Lock()
	c.cache.Clear()
	c.mu.Unlock()
	return errors.Join(errs...)
}
