// Package cli is an interactive shell over the lexicon for trying out edits and queries by hand.
package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/bastiangx/ninekey/internal/logger"
	"github.com/bastiangx/ninekey/internal/utils"
	"github.com/bastiangx/ninekey/pkg/config"
	"github.com/bastiangx/ninekey/pkg/lexicon"
	"github.com/bastiangx/ninekey/pkg/suggest"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

var (
	wordStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("75"))
	digitStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

const helpText = `commands:
  add <word> <count>    store a new word
  del <word>            remove a word
  set <word> <count>    change the count of a stored word
  get <word>            count of a word
  match <pattern>       words matching '?' (one letter) and '*' (any run)
  prefix <letters>      words starting with letters, lowest count first
  fix <digits>          words whose keys are within one edit of digits
  digits <digits>       best guess after each key press
  limit <n>             results shown per listing (saved to config)
  stats                 vocabulary and cache counters
  help                  this text
  quit                  leave
a bare line is read by its shape: digits resolve, '?' or '*' match, letters list by prefix`

// InputHandler reads commands line by line and prints the answers
type InputHandler struct {
	engine       suggest.Suggester
	config       *config.Config
	configPath   string
	limit        int
	requestCount int
	out          *log.Logger
}

// NewInputHandler creates a handler printing to stdout.
// configPath receives limit changes; empty keeps them for the session.
func NewInputHandler(engine suggest.Suggester, cfg *config.Config, configPath string, limit int) *InputHandler {
	return NewInputHandlerWriter(engine, cfg, configPath, limit, os.Stdout)
}

// NewInputHandlerWriter creates a handler printing to w
func NewInputHandlerWriter(engine suggest.Suggester, cfg *config.Config, configPath string, limit int, w io.Writer) *InputHandler {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if limit <= 0 {
		limit = cfg.CLI.DefaultLimit
	}
	return &InputHandler{
		engine:     engine,
		config:     cfg,
		configPath: configPath,
		limit:      limit,
		out:        logger.NewWithConfig(w, "", log.DebugLevel, false, false, log.TextFormatter),
	}
}

// Start runs the loop on stdin
func (h *InputHandler) Start() error {
	return h.Run(os.Stdin)
}

// Run reads lines from r until it ends or the user quits
func (h *InputHandler) Run(r io.Reader) error {
	h.out.Print("ninekey CLI")
	h.out.Print("type a word, some keypad digits or a command (help lists them, Ctrl+C exits):")

	scanner := bufio.NewScanner(r)
	for {
		h.out.Print("> ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "quit" || line == "exit" {
			return nil
		}
		h.handleInput(line)
	}
}

// handleInput runs one command and logs how long it took
func (h *InputHandler) handleInput(line string) {
	h.requestCount++
	start := time.Now()

	fields := strings.Fields(line)
	cmd, args := fields[0], fields[1:]

	var err error
	switch cmd {
	case "add":
		err = h.cmdWordCount(args, "add", h.engine.Add)
	case "set":
		err = h.cmdWordCount(args, "set", h.engine.Update)
	case "del":
		err = h.cmdDel(args)
	case "get":
		err = h.cmdGet(args)
	case "match":
		err = h.withArg(args, "match <pattern>", h.showMatch)
	case "prefix":
		err = h.withArg(args, "prefix <letters>", h.showPrefix)
	case "fix":
		err = h.withArg(args, "fix <digits>", h.showCorrections)
	case "digits":
		err = h.withArg(args, "digits <digits>", h.showResolution)
	case "limit":
		err = h.cmdLimit(args)
	case "stats":
		h.showStats()
	case "help":
		h.out.Print(helpText)
	default:
		if len(fields) > 1 {
			err = fmt.Errorf("unknown command %q, try help", cmd)
			break
		}
		err = h.bareQuery(line)
	}

	if err != nil {
		h.out.Error(err.Error())
	}
	log.Debugf("Took [ %v ] for '%s'", time.Since(start), line)
}

func (h *InputHandler) bareQuery(q string) error {
	switch utils.ClassifyQuery(q) {
	case utils.QueryDigits:
		if err := h.showResolution(q); err != nil {
			return err
		}
		return h.showCorrections(q)
	case utils.QueryWildcard:
		return h.showMatch(q)
	case utils.QueryPrefix:
		return h.showPrefix(q)
	}
	return fmt.Errorf("cannot read %q as a word, digits or pattern", q)
}

func (h *InputHandler) withArg(args []string, usage string, fn func(string) error) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: %s", usage)
	}
	return fn(args[0])
}

func (h *InputHandler) cmdWordCount(args []string, name string, fn func(string, int) error) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: %s <word> <count>", name)
	}
	count, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("count %q is not a number", args[1])
	}
	if err := fn(args[0], count); err != nil {
		if errors.Is(err, suggest.ErrInvalidCount) {
			return errors.New("enter a positive count")
		}
		return err
	}
	h.out.Printf("%s = %s", wordStyle.Render(args[0]), utils.FormatWithCommas(count))
	return nil
}

func (h *InputHandler) cmdDel(args []string) error {
	if len(args) != 1 {
		return errors.New("usage: del <word>")
	}
	if !h.engine.Remove(args[0]) {
		return fmt.Errorf("%q not found", args[0])
	}
	h.out.Printf("removed %s", wordStyle.Render(args[0]))
	return nil
}

func (h *InputHandler) cmdGet(args []string) error {
	if len(args) != 1 {
		return errors.New("usage: get <word>")
	}
	if !h.engine.Contains(args[0]) {
		return fmt.Errorf("%q not found", args[0])
	}
	h.out.Printf("%s = %s", wordStyle.Render(args[0]), utils.FormatWithCommas(h.engine.Lookup(args[0])))
	return nil
}

func (h *InputHandler) cmdLimit(args []string) error {
	if len(args) != 1 {
		return errors.New("usage: limit <n>")
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n <= 0 {
		return fmt.Errorf("limit %q must be a positive number", args[0])
	}
	h.limit = n
	if err := h.config.Update(h.configPath, nil, &n, nil); err != nil {
		log.Warnf("Limit set for this session only: %v", err)
	}
	h.out.Printf("showing up to %d results", n)
	return nil
}

func (h *InputHandler) showMatch(pattern string) error {
	words := h.engine.WildcardSearch(pattern)
	if len(words) == 0 {
		log.Warnf("No words match '%s'", pattern)
		return nil
	}
	h.out.Printf("%d words match '%s':", len(words), pattern)
	for i, w := range words {
		if i == h.limit {
			h.out.Printf("    ... %d more", len(words)-i)
			break
		}
		h.out.Printf("%2d. %s", i+1, wordStyle.Render(w))
	}
	return nil
}

func (h *InputHandler) showPrefix(prefix string) error {
	entries := h.engine.PrefixListing(prefix)
	if len(entries) == 0 {
		log.Warnf("No words start with '%s'", prefix)
		return nil
	}
	h.out.Printf("%d words start with '%s':", len(entries), prefix)
	h.printEntries(entries)
	return nil
}

func (h *InputHandler) showCorrections(digits string) error {
	if err := suggest.ValidateDigits(digits); err != nil {
		return err
	}
	entries := h.engine.Autocorrect(digits)
	if len(entries) == 0 {
		h.out.Printf("no match for %s", digitStyle.Render(digits))
		return nil
	}
	h.out.Printf("%d words type close to %s:", len(entries), digitStyle.Render(digits))
	h.printEntries(entries)
	return nil
}

func (h *InputHandler) showResolution(digits string) error {
	if err := suggest.ValidateDigits(digits); err != nil {
		return err
	}
	steps := h.engine.DigitResolution(digits)
	if len(steps) == 0 {
		h.out.Printf("no result for %s", digitStyle.Render(digits))
		return nil
	}
	for _, step := range steps {
		keys, letters, _ := strings.Cut(step, " ")
		h.out.Printf("%-12s %s", digitStyle.Render(keys), wordStyle.Render(letters))
	}
	if len(steps) < len(digits) {
		h.out.Printf("no letters continue past %s", digitStyle.Render(digits[:len(steps)]))
	}
	h.out.Printf("best guess: %s", wordStyle.Render(lexicon.LastLetters(steps)))
	return nil
}

func (h *InputHandler) printEntries(entries []lexicon.Entry) {
	for i, e := range entries {
		if i == h.limit {
			h.out.Printf("    ... %d more", len(entries)-i)
			return
		}
		if h.config.CLI.ShowCounts {
			h.out.Printf("%2d. %-30s (count: %8s)", i+1, wordStyle.Render(e.Word), utils.FormatWithCommas(e.Count))
		} else {
			h.out.Printf("%2d. %s", i+1, wordStyle.Render(e.Word))
		}
	}
}

func (h *InputHandler) showStats() {
	stats := h.engine.Stats()
	h.out.Printf("words:        %s", utils.FormatWithCommas(stats["words"]))
	h.out.Printf("nodes:        %s", utils.FormatWithCommas(stats["nodes"]))
	h.out.Printf("total weight: %s", utils.FormatWithCommas(stats["totalWeight"]))
	h.out.Printf("cache:        %d/%d entries, %d hits, %d misses",
		stats["cacheEntries"], stats["maxCacheEntries"], stats["cacheHits"], stats["cacheMisses"])
	h.out.Printf("commands:     %d", h.requestCount)
}
