package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"github.com/yildizm/go-logparser"

	"github.com/acevedoonyx/onyx/internal/formatter"
	"github.com/acevedoonyx/onyx/internal/logger"
	"github.com/acevedoonyx/onyx/internal/terminal"
)

func newWatchCommand(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch [file]",
		Short: "Run commands appended to a file",
		Long: `Follow a file and submit every line appended to it as a console command.

Lines may be plain text, JSON or logfmt records; for structured records the
message field is the command. Uses file system notifications to detect
changes. Press Ctrl+C to stop watching.

Examples:
  onyx watch commands.log
  tail -f requests.jsonl > queue.log & onyx watch queue.log`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd, opts, args[0])
		},
	}

	return cmd
}

// fileWatcher feeds appended records to a console and prints what they produce
type fileWatcher struct {
	console *terminal.Console
	text    formatter.TextFormatter
	out     io.Writer
	log     *logger.Logger
	parser  logparser.Parser
	printed int
}

func runWatch(cmd *cobra.Command, opts *rootOptions, filename string) error {
	cfg, err := opts.loadConfig()
	if err != nil {
		return err
	}
	log, err := opts.newLogger("watch", cfg)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	// Setup file watcher
	watcher, file, cleanup, err := setupFileWatcher(filename, log)
	if err != nil {
		return err
	}
	defer cleanup()

	client, err := createIntelligence(cfg, log, nil)
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	console := createConsole(cfg, client, log, 0, nil)
	defer console.Close()
	console.Boot()
	console.Wait()

	fw := &fileWatcher{
		console: console,
		text:    formatter.NewText(formatterOptions(cfg)),
		out:     cmd.OutOrStdout(),
		log:     log,
	}
	fw.flush()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Run watch loop
	return fw.run(ctx, watcher, file)
}

// processNewLines submits every record read from file since the last call
func (fw *fileWatcher) processNewLines(file io.Reader) error {
	scanner := bufio.NewScanner(file)

	var newLines []string
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) != "" {
			newLines = append(newLines, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("scanner error: %w", err)
	}

	if len(newLines) == 0 {
		return nil
	}

	// Auto-detect the record format on first use
	if fw.parser == nil {
		fw.parser = logparser.New()
		fw.log.Debug("created auto-detecting parser")
	}

	entries, err := fw.parser.ParseString(strings.Join(newLines, "\n"))
	if err != nil {
		fw.log.Warn("failed to parse lines", logger.Count(len(newLines)), logger.Error(err))
		return nil
	}

	for _, entry := range entries {
		command := strings.TrimSpace(entry.Message)
		if command == "" {
			continue
		}
		if err := fw.console.Submit(command); err != nil {
			fw.log.Warn("command rejected", logger.F("command", command), logger.Error(err))
			continue
		}
		fw.console.Wait()
		fw.flush()
	}

	return nil
}

// flush prints the entries appended since the previous flush
func (fw *fileWatcher) flush() {
	entries := fw.console.Session().Entries()
	if len(entries) < fw.printed {
		// the log was cleared
		fw.printed = 0
	}
	for _, e := range entries[fw.printed:] {
		fmt.Fprintln(fw.out, fw.text.FormatEntry(e))
	}
	fw.printed = len(entries)
}

// cleanupWatcher safely closes watcher with error logging
func cleanupWatcher(watcher *fsnotify.Watcher, log *logger.Logger) {
	if err := watcher.Close(); err != nil {
		log.Warn("failed to close watcher", logger.Error(err))
	}
}

// cleanupFile safely closes file with error logging
func cleanupFile(file *os.File, log *logger.Logger) {
	if err := file.Close(); err != nil {
		log.Warn("failed to close file", logger.Error(err))
	}
}

// createWatcher creates and configures a new file system watcher
func createWatcher(filename string, log *logger.Logger) (*fsnotify.Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	if err := watcher.Add(filename); err != nil {
		cleanupWatcher(watcher, log)
		return nil, fmt.Errorf("failed to watch file: %w", err)
	}

	return watcher, nil
}

// openWatchFile opens file and positions it at the end so only new records run
func openWatchFile(filename string, log *logger.Logger) (*os.File, error) {
	// #nosec G304 - path is validated by caller
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	if _, err := file.Seek(0, io.SeekEnd); err != nil {
		cleanupFile(file, log)
		return nil, fmt.Errorf("failed to seek to end of file: %w", err)
	}

	return file, nil
}

// setupFileWatcher creates and configures file watcher
func setupFileWatcher(filename string, log *logger.Logger) (*fsnotify.Watcher, *os.File, func(), error) {
	// Check if file exists
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return nil, nil, nil, fmt.Errorf("file does not exist: %s", filename)
	}

	// Validate file path for security
	if err := validateWatchFilePath(filename); err != nil {
		return nil, nil, nil, fmt.Errorf("invalid file path: %w", err)
	}

	watcher, err := createWatcher(filename, log)
	if err != nil {
		return nil, nil, nil, err
	}

	file, err := openWatchFile(filename, log)
	if err != nil {
		cleanupWatcher(watcher, log)
		return nil, nil, nil, err
	}

	log.Info("watching file", logger.F("path", filename))

	cleanup := func() {
		cleanupWatcher(watcher, log)
		cleanupFile(file, log)
	}

	return watcher, file, cleanup, nil
}

// run is the main watch loop; it returns when ctx is cancelled
func (fw *fileWatcher) run(ctx context.Context, watcher *fsnotify.Watcher, file io.Reader) error {
	for {
		select {
		case <-ctx.Done():
			fw.log.Debug("stopping watch")
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			if err := fw.handleWatchEvent(event, file); err != nil {
				fw.log.Warn("error handling event", logger.Error(err))
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			fw.log.Warn("watcher error", logger.Error(err))
		}
	}
}

// handleWatchEvent processes file system events
func (fw *fileWatcher) handleWatchEvent(event fsnotify.Event, file io.Reader) error {
	// Only process write events
	if !event.Has(fsnotify.Write) {
		return nil
	}
	if err := fw.processNewLines(file); err != nil {
		return fmt.Errorf("error processing new lines: %w", err)
	}
	return nil
}

// validateWatchFilePath validates that a file path is safe to watch
func validateWatchFilePath(path string) error {
	// Check for empty path
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("empty file path")
	}

	// Clean the path to resolve . and .. elements
	cleanPath := filepath.Clean(path)

	// Check for path traversal attempts
	if strings.Contains(cleanPath, "..") {
		return fmt.Errorf("path traversal not allowed")
	}

	// For watch operations, ensure the file exists and is a regular file
	info, err := os.Stat(cleanPath)
	if err != nil {
		return fmt.Errorf("cannot access file: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("cannot watch directory, must be a file")
	}

	return nil
}
