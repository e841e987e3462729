package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/lintang-b-s/compassx/pkg/concurrent"
	"github.com/lintang-b-s/compassx/pkg/datastructure"
	"github.com/lintang-b-s/compassx/pkg/document"
	"github.com/lintang-b-s/compassx/pkg/engine"
	"github.com/lintang-b-s/compassx/pkg/http"
	"github.com/lintang-b-s/compassx/pkg/http/usecases"
	"github.com/lintang-b-s/compassx/pkg/logger"
	"github.com/lintang-b-s/compassx/pkg/util"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var (
	configPath = flag.String("config", "./data/config.yaml", "config file (yaml, toml or json)")
	mode       = flag.String("mode", "serve", "serve: run the HTTP API, expand: run a JSON-lines query file")
	inputPath  = flag.String("input", "", "expand mode: JSON-lines query file")
	outputPath = flag.String("output", "", "expand mode: JSON-lines result file, stdout when empty")
)

func main() {
	flag.Parse()
	log, err := logger.New()
	if err != nil {
		panic(err)
	}
	defer log.Sync() //nolint:errcheck // ignore

	v := viper.New()
	if err := util.ReadConfig(v, *configPath); err != nil {
		log.Fatal("failed to read config", zap.String("path", *configPath), zap.Error(err))
	}
	cfg, err := engine.LoadConfig(v)
	if err != nil {
		log.Fatal("invalid config", zap.Error(err))
	}

	log.Info("Reading graph...", zap.String("path", cfg.GraphFile))
	graph, err := datastructure.ReadGraph(cfg.GraphFile)
	if err != nil {
		log.Fatal("failed to read graph", zap.Error(err))
	}

	compass, err := engine.NewEngine(cfg, graph, log)
	if err != nil {
		log.Fatal("failed to build engine", zap.Error(err))
	}

	switch *mode {
	case "serve":
		err = serve(compass, cfg, log)
	case "expand":
		err = expand(compass, cfg, log)
	default:
		err = fmt.Errorf("unknown mode %q", *mode)
	}
	if err != nil {
		log.Fatal("compass stopped with error", zap.Error(err))
	}
}

func serve(compass *engine.Engine, cfg *engine.Config, log *zap.Logger) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	api := http.NewServer(log)
	compassService := usecases.NewCompassService(compass)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return api.Use(gctx, cfg.Server, compassService)
	})
	go func() {
		sig := http.GracefulShutdown()
		log.Info("Compass Server Stopping", zap.String("signal", sig.String()))
		cancel()
	}()

	return g.Wait()
}

// expand evaluates every line of the input file as a query and writes the expanded results,
// one JSON document per line, in input order.
func expand(compass *engine.Engine, cfg *engine.Config, log *zap.Logger) error {
	if *inputPath == "" {
		return fmt.Errorf("expand mode needs -input")
	}
	lines, err := readLines(*inputPath)
	if err != nil {
		return err
	}
	log.Info("Expanding queries", zap.Int("queries", len(lines)), zap.Int("workers", cfg.Workers))

	ctx := context.Background()
	results, err := concurrent.Map(ctx, cfg.Workers, lines, func(ctx context.Context, line string) ([]*document.Document, error) {
		query, err := document.Parse([]byte(line))
		if err != nil {
			return nil, err
		}
		return compass.RunQuery(ctx, query)
	})
	if err != nil {
		return err
	}

	var out io.Writer = os.Stdout
	if *outputPath != "" {
		f, err := os.Create(*outputPath)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}
	bw := bufio.NewWriter(out)
	count := 0
	for _, docs := range results {
		for _, doc := range docs {
			js, err := document.Marshal(doc)
			if err != nil {
				return err
			}
			bw.Write(js)
			bw.WriteByte('\n')
			count++
		}
	}
	log.Info("Queries expanded", zap.Int("results", count))
	return bw.Flush()
}

func readLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var lines []string
	br := bufio.NewReader(f)
	for {
		line, err := util.ReadLine(br)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines, nil
}
