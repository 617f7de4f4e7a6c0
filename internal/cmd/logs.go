package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"time"

	charmlog "charm.land/log/v2"
	"github.com/nxadm/tail"
	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"
)

const defaultTailLines = 1000

func init() {
	logsCmd.Flags().BoolP("follow", "f", false, "Follow log output")
	logsCmd.Flags().IntP("tail", "t", defaultTailLines, "Show only the last N lines, 0 for all")
}

var logsCmd = &cobra.Command{
	Use:   "logs",
	Short: "Show logs",
	Long:  "Show the logs written while browsing, from the log file in the data directory.",
	RunE: func(cmd *cobra.Command, args []string) error {
		follow, _ := cmd.Flags().GetBool("follow")
		tailLines, _ := cmd.Flags().GetInt("tail")

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		path := cfg.LogFile()
		if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
			fmt.Fprintf(cmd.ErrOrStderr(), "No logs found at %s\n", path)
			return nil
		}

		w := cmd.OutOrStdout()
		if err := showLastLines(w, path, tailLines); err != nil {
			return err
		}
		if follow {
			return followLogs(cmd, w, path)
		}
		return nil
	},
}

func showLastLines(w io.Writer, path string, n int) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer f.Close()

	lines, err := lastLines(f, n)
	if err != nil {
		return fmt.Errorf("failed to read log file: %w", err)
	}
	for _, line := range lines {
		printLogLine(w, line)
	}
	return nil
}

// lastLines returns the last n lines of r, or every line when n is not
// positive.
func lastLines(r io.Reader, n int) ([]string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var ring []string
	next := 0
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case n <= 0 || len(ring) < n:
			ring = append(ring, line)
		default:
			ring[next] = line
			next = (next + 1) % n
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return slices.Concat(ring[next:], ring[:next]), nil
}

func followLogs(cmd *cobra.Command, w io.Writer, path string) error {
	t, err := tail.TailFile(path, tail.Config{
		Follow:   true,
		ReOpen:   true,
		Location: &tail.SeekInfo{Offset: 0, Whence: io.SeekEnd},
		Logger:   tail.DiscardingLogger,
	})
	if err != nil {
		return fmt.Errorf("failed to tail log file: %w", err)
	}
	defer t.Cleanup()

	for {
		select {
		case <-cmd.Context().Done():
			return t.Stop()
		case line, ok := <-t.Lines:
			if !ok {
				return t.Err()
			}
			if line.Err != nil {
				continue
			}
			printLogLine(w, line.Text)
		}
	}
}

// printLogLine pretty prints a JSON log line as written by the file logger.
// Lines that are not JSON are printed as is.
func printLogLine(w io.Writer, line string) {
	if !gjson.Valid(line) {
		fmt.Fprintln(w, line)
		return
	}

	var (
		msg     string
		level   = charmlog.InfoLevel
		logTime time.Time
		keyvals []any
	)
	gjson.Parse(line).ForEach(func(key, value gjson.Result) bool {
		switch key.String() {
		case "time":
			if t, err := time.Parse(time.RFC3339Nano, value.String()); err == nil {
				logTime = t
			}
		case "level":
			if l, err := charmlog.ParseLevel(strings.ToLower(value.String())); err == nil {
				level = l
			}
		case "msg":
			msg = value.String()
		default:
			keyvals = append(keyvals, key.String(), value.String())
		}
		return true
	})

	logger := charmlog.NewWithOptions(w, charmlog.Options{
		ReportTimestamp: !logTime.IsZero(),
		TimeFormat:      time.DateTime,
		Level:           charmlog.DebugLevel,
	})
	logger.SetTimeFunction(func(time.Time) time.Time { return logTime })
	logger.Log(level, msg, keyvals...)
}
