package rsync

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"
)

// File is one entry of a directory listing. Directory names end with "/".
type File struct {
	Name string `json:"name"`
	Dir  bool   `json:"dir,omitempty"`
	Size int64  `json:"size"`
}

// Action describes what a transfer would do to a file.
type Action string

const (
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// PlanItem is one file the transfer would touch.
type PlanItem struct {
	File   File   `json:"file"`
	Action Action `json:"action"`
}

// PlanOptions controls the preview.
type PlanOptions struct {
	Delete   bool
	Excludes []string
}

// Plan is the predicted outcome of a transfer.
type Plan struct {
	Items    []PlanItem `json:"items"`
	Excluded []string   `json:"excluded,omitempty"`
}

// Counts returns the number of items per action.
func (p Plan) Counts() map[Action]int {
	counts := make(map[Action]int, 3)
	for _, item := range p.Items {
		counts[item.Action]++
	}
	return counts
}

// Bytes is the total size of the files created or updated.
func (p Plan) Bytes() int64 {
	var total int64
	for _, item := range p.Items {
		if item.Action != ActionDelete && !item.File.Dir {
			total += item.File.Size
		}
	}
	return total
}

// HumanBytes is Bytes formatted for display.
func (p Plan) HumanBytes() string {
	return humanize.Bytes(uint64(p.Bytes()))
}

// HumanSize formats the file size for display, e.g. "1.2 MB".
// Directories have no size.
func (f File) HumanSize() string {
	if f.Dir {
		return "-"
	}
	return humanize.Bytes(uint64(max(f.Size, 0)))
}

// BuildPlan predicts which files a transfer from source to dest would create,
// update or (with Delete) remove. Files differ when their sizes differ;
// directories are only ever created or deleted.
func BuildPlan(source, dest []File, opts PlanOptions) Plan {
	destByName := make(map[string]File, len(dest))
	for _, f := range dest {
		destByName[f.Name] = f
	}
	sourceNames := make(map[string]bool, len(source))

	var plan Plan
	for _, src := range source {
		sourceNames[src.Name] = true
		if MatchesExclude(src.Name, opts.Excludes) {
			plan.Excluded = append(plan.Excluded, src.Name)
			continue
		}
		existing, ok := destByName[src.Name]
		switch {
		case !ok:
			plan.Items = append(plan.Items, PlanItem{File: src, Action: ActionCreate})
		case !src.Dir && existing.Size != src.Size:
			plan.Items = append(plan.Items, PlanItem{File: src, Action: ActionUpdate})
		}
	}

	if opts.Delete {
		for _, dst := range dest {
			if sourceNames[dst.Name] || MatchesExclude(dst.Name, opts.Excludes) {
				continue
			}
			plan.Items = append(plan.Items, PlanItem{File: dst, Action: ActionDelete})
		}
	}
	return plan
}

// MatchesExclude reports whether name is covered by any pattern. A pattern
// ending in "/" matches that directory and everything below it. Other
// patterns match the exact name, or the base name when they contain glob
// characters.
func MatchesExclude(name string, patterns []string) bool {
	for _, pattern := range patterns {
		if matchPattern(name, pattern) {
			return true
		}
	}
	return false
}

func matchPattern(name, pattern string) bool {
	if pattern == "" {
		return false
	}
	if strings.HasSuffix(pattern, "/") {
		return strings.HasPrefix(name, pattern) || name == strings.TrimSuffix(pattern, "/")
	}
	if name == pattern {
		return true
	}
	if strings.ContainsAny(pattern, "*?[") {
		base := path.Base(strings.TrimSuffix(name, "/"))
		ok, err := path.Match(pattern, base)
		return err == nil && ok
	}
	return false
}

// ScanDir lists the files under root as slash-separated relative names,
// sorted by name. Directories carry a trailing "/".
func ScanDir(root string) ([]File, error) {
	var files []File
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, relErr := filepath.Rel(root, p)
		if relErr != nil {
			return relErr
		}
		if rel == "." {
			return nil
		}
		name := filepath.ToSlash(rel)
		if d.IsDir() {
			files = append(files, File{Name: name + "/", Dir: true})
			return nil
		}
		info, infoErr := d.Info()
		if infoErr != nil {
			return infoErr
		}
		files = append(files, File{Name: name, Size: info.Size()})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", root, err)
	}

	sort.Slice(files, func(i, j int) bool { return files[i].Name < files[j].Name })
	return files, nil
}

// Preview scans two local directories and plans a transfer from one to the
// other. A missing destination is treated as empty.
func Preview(from, to string, opts PlanOptions) (Plan, error) {
	source, err := ScanDir(from)
	if err != nil {
		return Plan{}, err
	}
	var dest []File
	if _, statErr := os.Stat(to); statErr == nil {
		if dest, err = ScanDir(to); err != nil {
			return Plan{}, err
		}
	} else if !errors.Is(statErr, fs.ErrNotExist) {
		return Plan{}, fmt.Errorf("reading %s: %w", to, statErr)
	}
	return BuildPlan(source, dest, opts), nil
}
