package bpe

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/dustin/go-humanize"
	"github.com/lwch/logging"
	"golang.org/x/sync/errgroup"
)

const maxWordSize = 1024 * 1024

// WordSource produces the training words in corpus order.
type WordSource interface {
	Words() ([]string, error)
}

// ReaderSource splits R on white space.
type ReaderSource struct {
	R io.Reader
}

func (s ReaderSource) Words() ([]string, error) {
	return readWords(s.R)
}

func readWords(r io.Reader) ([]string, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxWordSize)
	sc.Split(bufio.ScanWords)
	var ret []string
	for sc.Scan() {
		ret = append(ret, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return ret, err
	}
	return ret, nil
}

// FileSource reads every file concurrently and returns their words in
// the order of Paths.
type FileSource struct {
	Paths []string
}

func (s FileSource) Words() ([]string, error) {
	words := make([][]string, len(s.Paths))
	var g errgroup.Group
	g.SetLimit(runtime.NumCPU())
	for i, path := range s.Paths {
		i, path := i, path
		g.Go(func() error {
			f, err := os.Open(path)
			if err != nil {
				return err
			}
			defer f.Close()
			fi, err := f.Stat()
			if err != nil {
				return err
			}
			words[i], err = readWords(f)
			if err != nil {
				return fmt.Errorf("read %s: %w", path, err)
			}
			logging.Info("%s: %s, %s words", path,
				humanize.Bytes(uint64(fi.Size())), humanize.Comma(int64(len(words[i]))))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	var total int
	for _, w := range words {
		total += len(w)
	}
	ret := make([]string, 0, total)
	for _, w := range words {
		ret = append(ret, w...)
	}
	return ret, nil
}
