// Package dictionary ingests word/weight lists into a lexicon.
package dictionary

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
)

// Sink receives ingested words. Contains guards the insert precondition of the lexicon.
type Sink interface {
	Insert(word string, count int)
	Contains(word string) bool
}

// Loader reads dictionary files into a Sink
type Loader struct {
	encoding       string
	skipDuplicates bool
}

// FileInfo contains metadata about a dictionary file in a data directory
type FileInfo struct {
	ID       int
	Filename string
	Format   FileFormat
}

// LoadStats counts what happened to the lines or records of a load
type LoadStats struct {
	Files      int
	Lines      int
	Loaded     int
	Malformed  int
	Duplicates int
}

func (s *LoadStats) add(o LoadStats) {
	s.Files += o.Files
	s.Lines += o.Lines
	s.Loaded += o.Loaded
	s.Malformed += o.Malformed
	s.Duplicates += o.Duplicates
}

// NewLoader creates a loader decoding text files from the given charset.
// With skipDuplicates, a word seen twice keeps its first weight.
func NewLoader(encoding string, skipDuplicates bool) *Loader {
	return &Loader{
		encoding:       encoding,
		skipDuplicates: skipDuplicates,
	}
}

// Load ingests path, which is either a single dictionary file or a directory of dict_NNNN files
func (l *Loader) Load(path string, sink Sink) (LoadStats, error) {
	info, err := os.Stat(path)
	if err != nil {
		return LoadStats{}, fmt.Errorf("failed to stat dictionary %s: %w", path, err)
	}
	if info.IsDir() {
		return l.LoadDir(path, sink)
	}
	return l.LoadFile(path, sink)
}

// GetAvailable scans dirPath for dict_NNNN.txt and dict_NNNN.bin files, sorted by ID
func (l *Loader) GetAvailable(dirPath string) ([]FileInfo, error) {
	var files []FileInfo
	for _, pattern := range []string{"dict_*.txt", "dict_*.bin"} {
		matches, err := filepath.Glob(filepath.Join(dirPath, pattern))
		if err != nil {
			return nil, fmt.Errorf("failed to scan for dictionary files: %w", err)
		}
		for _, file := range matches {
			ext := filepath.Ext(file)
			idStr := strings.TrimSuffix(strings.TrimPrefix(filepath.Base(file), "dict_"), ext)
			id, err := strconv.Atoi(idStr)
			if err != nil {
				log.Debugf("Skipping %s: no numeric id", file)
				continue
			}
			format := FormatText
			if ext == ".bin" {
				format = FormatBinary
			}
			files = append(files, FileInfo{ID: id, Filename: file, Format: format})
		}
	}

	sort.Slice(files, func(i, j int) bool {
		if files[i].ID != files[j].ID {
			return files[i].ID < files[j].ID
		}
		return files[i].Filename < files[j].Filename
	})
	return files, nil
}

// LoadDir ingests every dictionary file of a data directory in ID order
func (l *Loader) LoadDir(dirPath string, sink Sink) (LoadStats, error) {
	files, err := l.GetAvailable(dirPath)
	if err != nil {
		return LoadStats{}, err
	}
	if len(files) == 0 {
		return LoadStats{}, fmt.Errorf("no dictionary files found in %s", dirPath)
	}

	log.Debugf("Found %d dictionary files", len(files))

	var total LoadStats
	for _, f := range files {
		stats, err := l.LoadFile(f.Filename, sink)
		if err != nil {
			return total, err
		}
		total.add(stats)
	}
	return total, nil
}

// LoadFile ingests one dictionary file, text or binary by extension
func (l *Loader) LoadFile(filename string, sink Sink) (LoadStats, error) {
	format, err := DetectFileFormat(filename)
	if err != nil {
		return LoadStats{}, err
	}

	file, err := os.Open(filename)
	if err != nil {
		return LoadStats{}, fmt.Errorf("failed to open dictionary %s: %w", filename, err)
	}
	defer file.Close()

	var stats LoadStats
	switch format {
	case FormatBinary:
		stats, err = l.ReadBinary(bufio.NewReader(file), sink)
	default:
		stats, err = l.ReadText(file, sink)
	}
	if err != nil {
		return stats, fmt.Errorf("failed to load %s: %w", filename, err)
	}
	stats.Files = 1

	log.Debugf("Loaded %s: %d words (%d malformed, %d duplicates)",
		filename, stats.Loaded, stats.Malformed, stats.Duplicates)
	return stats, nil
}

// ReadText ingests "<word> <count>" lines. Blank lines are ignored, and lines without exactly
// two fields or with a non-integer count are skipped.
func (l *Loader) ReadText(r io.Reader, sink Sink) (LoadStats, error) {
	var stats LoadStats

	decoded, err := decodingReader(r, l.encoding)
	if err != nil {
		return stats, err
	}

	scanner := bufio.NewScanner(decoded)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		stats.Lines++

		fields := strings.Fields(line)
		if len(fields) != 2 {
			stats.Malformed++
			continue
		}
		count, err := strconv.Atoi(fields[1])
		if err != nil {
			stats.Malformed++
			continue
		}
		l.insert(fields[0], count, sink, &stats)
	}
	if err := scanner.Err(); err != nil {
		return stats, fmt.Errorf("reading dictionary lines: %w", err)
	}
	return stats, nil
}

// ReadBinary ingests the binary format:
// 4 bytes entry count header + (2 bytes length + word bytes + 4 bytes frequency) repeated, little endian
func (l *Loader) ReadBinary(r io.Reader, sink Sink) (LoadStats, error) {
	var stats LoadStats

	var totalEntries int32
	if err := binary.Read(r, binary.LittleEndian, &totalEntries); err != nil {
		return stats, fmt.Errorf("failed to read header: %w", err)
	}
	if totalEntries < 0 || totalEntries > maxBinaryEntries {
		return stats, fmt.Errorf("invalid entry count %d", totalEntries)
	}

	for i := 0; i < int(totalEntries); i++ {
		var wordLen uint16
		if err := binary.Read(r, binary.LittleEndian, &wordLen); err != nil {
			if errors.Is(err, io.EOF) {
				log.Warnf("Binary dictionary ended after %d of %d entries", i, totalEntries)
				break
			}
			return stats, fmt.Errorf("failed to read word length: %w", err)
		}

		wordBytes := make([]byte, wordLen)
		if _, err := io.ReadFull(r, wordBytes); err != nil {
			return stats, fmt.Errorf("failed to read word: %w", err)
		}

		var freq uint32
		if err := binary.Read(r, binary.LittleEndian, &freq); err != nil {
			return stats, fmt.Errorf("failed to read frequency: %w", err)
		}

		stats.Lines++
		if wordLen == 0 {
			stats.Malformed++
			continue
		}
		l.insert(string(wordBytes), int(freq), sink, &stats)
	}
	return stats, nil
}

func (l *Loader) insert(word string, count int, sink Sink, stats *LoadStats) {
	if l.skipDuplicates && sink.Contains(word) {
		log.Debugf("Duplicate dictionary word %q ignored", word)
		stats.Duplicates++
		return
	}
	sink.Insert(word, count)
	stats.Loaded++
}
