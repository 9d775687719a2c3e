package ui

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/mattn/go-isatty"
)

var (
	// ANSI Colors
	ColorReset  = "\033[0m"
	ColorRed    = "\033[31m"
	ColorGreen  = "\033[32m"
	ColorYellow = "\033[33m"
	ColorCyan   = "\033[36m"
	ColorBold   = "\033[1m"
)

// Out receives all status output.
var Out io.Writer = os.Stdout

func init() {
	if !IsTerminal(os.Stdout) || os.Getenv("NO_COLOR") != "" {
		DisableColors()
	}
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// DisableColors turns all color codes into empty strings.
func DisableColors() {
	ColorReset, ColorRed, ColorGreen, ColorYellow, ColorCyan, ColorBold = "", "", "", "", "", ""
}

func PrintHeader(msg string) {
	fmt.Fprintf(Out, "\n%s%s%s\n", ColorBold, msg, ColorReset)
}

func PrintSuccess(label, detail string) {
	fmt.Fprintf(Out, "  %s✔%s %-15s %s%s\n", ColorGreen, ColorReset, label, ColorGreen, detail+ColorReset)
}

func PrintError(label, detail string) {
	fmt.Fprintf(Out, "  %s✘%s %-15s %s%s\n", ColorRed, ColorReset, label, ColorRed, detail+ColorReset)
}

func PrintWarning(label, detail string) {
	fmt.Fprintf(Out, "  %s!%s %-15s %s%s\n", ColorYellow, ColorReset, label, ColorYellow, detail+ColorReset)
}

// Spinner represents a loading indicator
type Spinner struct {
	mu       sync.Mutex
	msg      string
	stopChan chan struct{}
	doneChan chan struct{}
	stopOnce sync.Once
}

// StartSpinner starts a new spinner with the given message.
// Without a terminal the message is printed once and nothing animates.
func StartSpinner(msg string) *Spinner {
	s := &Spinner{
		msg:      msg,
		stopChan: make(chan struct{}),
		doneChan: make(chan struct{}),
	}
	if f, ok := Out.(*os.File); !ok || !IsTerminal(f) {
		fmt.Fprintln(Out, msg)
		close(s.doneChan)
		return s
	}
	go s.run()
	return s
}

// Update replaces the spinner message.
func (s *Spinner) Update(msg string) {
	s.mu.Lock()
	s.msg = msg
	s.mu.Unlock()
}

func (s *Spinner) message() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.msg
}

func (s *Spinner) run() {
	defer close(s.doneChan)
	chars := []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
	i := 0
	width := 0
	for {
		select {
		case <-s.stopChan:
			fmt.Fprintf(Out, "\r%s\r", strings.Repeat(" ", width+10))
			return
		default:
			msg := s.message()
			width = max(width, len(msg))
			fmt.Fprintf(Out, "\r%s%s%s %-*s", ColorCyan, chars[i], ColorReset, width, msg)
			time.Sleep(100 * time.Millisecond)
			i = (i + 1) % len(chars)
		}
	}
}

// Stop stops the spinner and clears the line. Safe to call multiple times.
func (s *Spinner) Stop() {
	s.stopOnce.Do(func() {
		close(s.stopChan)
	})
	<-s.doneChan // Wait for goroutine to finish
}

// RunSpinner executes the given action while showing a spinner.
func RunSpinner(msg string, action func(s *Spinner) error) error {
	s := StartSpinner(msg)
	defer s.Stop()
	return action(s)
}
