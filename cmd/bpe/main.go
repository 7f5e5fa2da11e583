package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/lwch/bpe"
	"github.com/lwch/bpe/internal/config"
	"github.com/lwch/logging"
	"github.com/lwch/runtime"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/pflag"
)

const usage = "Usage: bpe <train | encode | decode> [flags] [args]\n"

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
	switch os.Args[1] {
	case "train":
		train(os.Args[2:])
	case "encode":
		encode(os.Args[2:])
	case "decode":
		decode(os.Args[2:])
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
}

func train(args []string) {
	cfg := config.DefaultConfig()
	fs := pflag.NewFlagSet("train", pflag.ExitOnError)
	cfg.AddFlags(fs)
	runtime.Assert(fs.Parse(args))
	runtime.Assert(cfg.Complete())
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		fs.Usage()
		os.Exit(2)
	}

	words, err := bpe.FileSource{Paths: cfg.Corpus}.Words()
	runtime.Assert(err)

	reg := prometheus.NewRegistry()
	opts := bpe.Options{
		VocabSize:       cfg.VocabSize,
		MinFrequency:    cfg.MinFrequency,
		MaxMerges:       cfg.MaxMerges,
		MaxSymbolLength: cfg.MaxSymbolLength,
		Workers:         cfg.Workers,
		Metrics:         bpe.NewMetrics(reg),
	}
	var progress chan bpe.Progress
	done := make(chan struct{})
	if cfg.Verbose {
		progress = make(chan bpe.Progress, 1024)
		opts.Progress = progress
		go func() {
			defer close(done)
			for p := range progress {
				fmt.Printf("%s freq=%d vocab=%d\n", p.Rule, p.Frequency, p.VocabSize)
			}
		}()
	} else {
		close(done)
	}

	model, err := bpe.Train(words, opts)
	if progress != nil {
		close(progress)
	}
	<-done
	runtime.Assert(err)
	if model.IsEmpty() {
		logging.Error("corpus %s has no words", strings.Join(cfg.Corpus, ","))
	}
	runtime.Assert(model.Save(cfg.Output))

	if cfg.MetricsFile != "" {
		runtime.Assert(prometheus.WriteToTextfile(cfg.MetricsFile, reg))
	}
}

func encode(args []string) {
	fs := pflag.NewFlagSet("encode", pflag.ExitOnError)
	path := fs.StringP("model", "m", "model.bpe", "model file")
	cacheSize := fs.Uint64("cache-size", 0, "number of encoded words to cache")
	runtime.Assert(fs.Parse(args))

	model, err := bpe.Load(*path)
	runtime.Assert(err)
	enc := bpe.NewEncoder(model, bpe.EncoderOptions{CacheSize: *cacheSize})

	words := fs.Args()
	if len(words) == 0 {
		words, err = bpe.ReaderSource{R: os.Stdin}.Words()
		runtime.Assert(err)
	}
	for _, word := range words {
		var line []string
		for _, tk := range enc.Encode(word) {
			line = append(line, fmt.Sprintf("%s(%d)", tk, tk.ID))
		}
		fmt.Println(strings.Join(line, " "))
	}
}

func decode(args []string) {
	fs := pflag.NewFlagSet("decode", pflag.ExitOnError)
	path := fs.StringP("model", "m", "model.bpe", "model file")
	runtime.Assert(fs.Parse(args))

	model, err := bpe.Load(*path)
	runtime.Assert(err)

	ids := make([]int, 0, fs.NArg())
	for _, arg := range fs.Args() {
		id, err := strconv.Atoi(arg)
		runtime.Assert(err)
		ids = append(ids, id)
	}
	str, err := model.DecodeIDs(ids)
	runtime.Assert(err)
	fmt.Println(str)
}
