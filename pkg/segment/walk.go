package segment

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"github.com/hashicorp/go-hclog"
	"golang.org/x/sync/errgroup"

	"github.com/yeonchae62/REU-Project/pkg/data"
)

// FileName is the name of the per-segment signal file.
const FileName = "eda.csv"

// ErrShallowPath is returned for an eda.csv with fewer than three parent
// directories.
var ErrShallowPath = errors.New("segment path needs three parent directories")

// GroupOf returns the group of an eda.csv path from its three parent
// directory names.
func GroupOf(path string) (Group, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return Group{}, err
	}
	parts := strings.Split(filepath.ToSlash(filepath.Dir(abs)), "/")
	var names []string
	for _, p := range parts {
		if p != "" {
			names = append(names, p)
		}
	}
	if len(names) < 3 {
		return Group{}, fmt.Errorf("%w: %s", ErrShallowPath, path)
	}
	n := len(names)
	return Group{names[n-3], names[n-2], names[n-1]}, nil
}

// Walk finds every eda.csv below root and records the first and last
// timestamp of each. Files are read concurrently. Files without readings
// are skipped; when two files map to the same group the lexically later
// path wins.
func Walk(ctx context.Context, root string, loader *data.Loader) (Set, error) {
	log := hclog.NewNullLogger()
	if loader != nil && loader.Log != nil {
		log = loader.Log
	}
	if loader == nil {
		loader = data.NewLoader(log)
	}

	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && d.Name() == FileName {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk segments: %w", err)
	}
	sort.Strings(paths)

	type found struct {
		group  Group
		bounds Bounds
		ok     bool
	}
	results := make([]found, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, path := range paths {
		g.Go(func() error {
			group, err := GroupOf(path)
			if err != nil {
				return err
			}
			first, last, err := loader.FileBounds(gctx, path)
			if errors.Is(err, data.ErrNoReadings) {
				log.Warn("skipping empty segment", "path", path)
				return nil
			}
			if err != nil {
				return err
			}
			results[i] = found{group: group, bounds: Bounds{Start: first.Micros, End: last.Micros}, ok: true}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	set := make(Set)
	for i, r := range results {
		if !r.ok {
			continue
		}
		if _, dup := set[r.group]; dup {
			log.Warn("duplicate segment group, keeping later path", "group", r.group.String(), "path", paths[i])
		}
		set[r.group] = r.bounds
	}
	log.Debug("walked segments", "root", root, "files", len(paths), "groups", len(set))
	return set, nil
}
