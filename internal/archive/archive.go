// ABOUTME: Date-partitioned, append-only archive of article records
// ABOUTME: One JSON file per day under a four-digit year directory; malformed partitions read as empty

package archive

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/samber/lo"
	log "github.com/sirupsen/logrus"

	"github.com/harper/secdigest/internal/models"
	"github.com/harper/secdigest/internal/timeutil"
)

const (
	partitionExt = ".json"
	brokenExt    = ".broken"
	dirPerms     = 0755
	filePerms    = 0644
)

// ErrInvalidDate is returned when a partition key is not YYYY-MM-DD.
var ErrInvalidDate = errors.New("invalid partition date")

// Store reads and appends archive partitions under a root directory.
type Store struct {
	root string
}

// New returns a store rooted at root. Nothing is created until the first write.
func New(root string) *Store {
	return &Store{root: root}
}

// Root returns the archive root directory.
func (s *Store) Root() string {
	return s.root
}

// PartitionPath returns the file holding the records added on date.
func (s *Store) PartitionPath(date string) (string, error) {
	if !timeutil.IsDate(date) {
		return "", fmt.Errorf("%w: %q", ErrInvalidDate, date)
	}
	return filepath.Join(s.root, timeutil.Year(date), date+partitionExt), nil
}

// LoadAll concatenates every partition under the root, oldest file first.
// A missing root is an empty archive.
func (s *Store) LoadAll() ([]models.Article, error) {
	var paths []string
	err := filepath.WalkDir(s.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			log.WithField("path", path).Warnf("skipping unreadable archive path: %v", err)
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if !d.IsDir() && strings.HasSuffix(d.Name(), partitionExt) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk archive %s: %w", s.root, err)
	}
	sort.Strings(paths)

	var all []models.Article
	for _, p := range paths {
		articles, _ := readPartition(p)
		all = append(all, articles...)
	}

	log.WithFields(log.Fields{
		"root":       s.root,
		"partitions": len(paths),
		"articles":   len(all),
	}).Info("loaded archive")
	return all, nil
}

// LoadPartition returns the records stored for date.
func (s *Store) LoadPartition(date string) ([]models.Article, error) {
	path, err := s.PartitionPath(date)
	if err != nil {
		return nil, err
	}
	articles, _ := readPartition(path)
	return articles, nil
}

// AppendNew adds the candidates whose URL is not yet in date's partition.
// Accepted records are stamped with date. The partition file is rewritten only
// when at least one record is new; existing records are kept as they were.
func (s *Store) AppendNew(candidates []models.Article, date string) (int, error) {
	path, err := s.PartitionPath(date)
	if err != nil {
		return 0, err
	}

	existing, broken := readPartition(path)
	seen := make(map[string]struct{}, len(existing)+len(candidates))
	for _, a := range existing {
		seen[a.URL] = struct{}{}
	}

	fresh := lo.FilterMap(candidates, func(a models.Article, _ int) (models.Article, bool) {
		if a.URL == "" {
			return a, false
		}
		if _, ok := seen[a.URL]; ok {
			return a, false
		}
		seen[a.URL] = struct{}{}
		return a.Stamped(date), true
	})
	if len(fresh) == 0 {
		return 0, nil
	}

	if broken != nil {
		// Keep the unreadable original next to the rewritten partition.
		if err := os.WriteFile(path+brokenExt, broken, filePerms); err != nil {
			log.WithField("path", path).Warnf("cannot keep broken partition: %v", err)
		}
	}

	updated := make([]models.Article, 0, len(existing)+len(fresh))
	updated = append(updated, existing...)
	updated = append(updated, fresh...)
	if err := writePartition(path, updated); err != nil {
		return 0, err
	}

	log.WithFields(log.Fields{
		"path":  path,
		"added": len(fresh),
	}).Info("saved new articles")
	return len(fresh), nil
}

// readPartition never fails: unreadable or malformed files yield no records.
// The raw bytes of a malformed file are returned as broken.
func readPartition(path string) (articles []models.Article, broken []byte) {
	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			log.WithField("path", path).Warnf("cannot read partition, treating as empty: %v", err)
		}
		return nil, nil
	}
	if len(bytes.TrimSpace(data)) == 0 {
		log.WithField("path", path).Warn("partition is empty")
		return nil, nil
	}

	if err := json.Unmarshal(data, &articles); err != nil {
		log.WithField("path", path).Warnf("partition is malformed, treating as empty: %v", err)
		return nil, data
	}
	return articles, nil
}

func writePartition(path string, articles []models.Article) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(articles); err != nil {
		return fmt.Errorf("encode partition: %w", err)
	}
	return AtomicWrite(path, buf.Bytes())
}

// AtomicWrite writes data to a temp file next to path and renames it into place.
func AtomicWrite(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, dirPerms); err != nil {
		return fmt.Errorf("create directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, filePerms); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}
