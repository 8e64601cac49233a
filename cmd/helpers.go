package cmd

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/nikogura/resume-optimizer/pkg/config"
	"github.com/nikogura/resume-optimizer/pkg/llm"
	"github.com/pkg/errors"
)

// newLLMClient builds a completion client from config. Caching is on by
// default and disabled by the --no-cache flag on commands that have one.
func newLLMClient(cfg config.Config, noCache bool) (client *llm.Client, err error) {
	var cache *llm.Cache
	if !noCache {
		size := cfg.CacheSize
		if size == 0 {
			size = llm.DefaultCacheSize
		}
		cache, err = llm.NewCache(size)
		if err != nil {
			err = errors.Wrap(err, "failed to create completion cache")
			return client, err
		}
	}

	client = llm.NewClient(cfg.OpenAIAPIKey, cfg.Model, cache)
	return client, err
}

// writeOutput writes data to path, or stdout when path is empty.
func writeOutput(path string, data []byte) (err error) {
	if path == "" {
		fmt.Println(string(data))
		return err
	}

	err = os.WriteFile(path, data, 0600)
	if err != nil {
		err = errors.Wrapf(err, "failed to write output file: %s", path)
		return err
	}

	fmt.Printf("Output written to %s\n", path)
	return err
}

// spinner provides a simple text-based progress indicator.
type spinner struct {
	message string
	stop    chan bool
	done    chan bool
	mu      sync.Mutex
	active  bool
}

func newSpinner(message string) (s *spinner) {
	s = &spinner{
		message: message,
		stop:    make(chan bool),
		done:    make(chan bool),
	}
	return s
}

func (s *spinner) start() {
	s.mu.Lock()
	if s.active {
		s.mu.Unlock()
		return
	}
	s.active = true
	s.mu.Unlock()

	go func() {
		chars := []string{"|", "/", "-", "\\"}
		i := 0
		ticker := time.NewTicker(100 * time.Millisecond)
		defer ticker.Stop()

		fmt.Printf("%s ", s.message)
		for {
			select {
			case <-s.stop:
				// Clear the line and ensure cursor is at start of new line
				fmt.Printf("\r%s\r", strings.Repeat(" ", len(s.message)+2))
				s.done <- true
				return
			case <-ticker.C:
				fmt.Printf("\r%s %s", s.message, chars[i%len(chars)])
				i++
			}
		}
	}()
}

func (s *spinner) stopSpinner() {
	s.mu.Lock()
	if !s.active {
		s.mu.Unlock()
		return
	}
	s.mu.Unlock()

	s.stop <- true
	<-s.done

	s.mu.Lock()
	s.active = false
	s.mu.Unlock()
}

// withSpinner runs fn behind a progress indicator unless verbose output is
// on, in which case the message is just printed.
func withSpinner(message string, fn func() error) (err error) {
	if getVerbose() {
		fmt.Println(message)
		err = fn()
		return err
	}

	s := newSpinner(message)
	s.start()
	err = fn()
	s.stopSpinner()
	return err
}
