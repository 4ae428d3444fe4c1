// Command kmerbench drives a distributed k-mer table end to end: it reads
// a FASTA-like k-mer list, streams every k-mer into a table sized by a load
// factor, finishes the insert phase, and verifies every inserted k-mer is
// still findable. It exists to exercise kmerhash.Construct/Insert/
// FinishInsert/Find the way the original runtime's driver program did,
// without depending on MPI or upcxx to do it.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	kmerhash "github.com/Chazzzzzzz/cs267-hw3"
	"github.com/Chazzzzzzz/cs267-hw3/kmer"
	"go.uber.org/zap"
)

func main() {
	var (
		ranks       = flag.Int("ranks", 4, "number of simulated ranks")
		loadFactor  = flag.Float64("load-factor", 0.5, "target table occupancy, 0 < load-factor <= 1")
		outboxSize  = flag.Int("outbox-size", 0, "per-target outbox capacity (0 uses the library default)")
		inputPath   = flag.String("input", "", "path to a newline-delimited k-mer list; each line is <kmer><forward-base>")
		verbose     = flag.Bool("v", false, "enable debug logging")
	)
	flag.Parse()

	if *inputPath == "" {
		fmt.Fprintln(os.Stderr, "kmerbench: -input is required")
		os.Exit(2)
	}

	pairs, err := readKMers(*inputPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "kmerbench:", err)
		os.Exit(1)
	}

	var logger *zap.Logger
	if *verbose {
		logger, err = zap.NewDevelopment()
	} else {
		logger = zap.NewNop()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "kmerbench:", err)
		os.Exit(1)
	}
	defer logger.Sync()

	opts := []kmerhash.Option{kmerhash.OptLogger(logger)}
	if *outboxSize > 0 {
		opts = append(opts, kmerhash.OptOutboxSize(*outboxSize))
	}

	size := uint64(float64(len(pairs)) / *loadFactor)
	if size < 1 {
		size = 1
	}

	start := time.Now()
	maps, err := kmerhash.Construct(*ranks, size, opts...)
	if err != nil {
		fmt.Fprintln(os.Stderr, "kmerbench: construct:", err)
		os.Exit(1)
	}
	constructElapsed := time.Since(start)

	start = time.Now()
	shards := shardRoundRobin(pairs, len(maps))
	for id, m := range maps {
		for _, pair := range shards[id] {
			if !m.Insert(pair) {
				fmt.Fprintf(os.Stderr, "kmerbench: rank %d saturated on %s\n", id, pair.KMer.String())
				os.Exit(1)
			}
		}
	}
	// FinishInsert is collective: every rank must call it for its internal
	// barriers to release, so the ranks' calls are issued concurrently
	// rather than one at a time.
	var wg sync.WaitGroup
	wg.Add(len(maps))
	for _, m := range maps {
		go func(m *kmerhash.HashMap) {
			defer wg.Done()
			m.FinishInsert()
		}(m)
	}
	wg.Wait()
	insertElapsed := time.Since(start)

	start = time.Now()
	var misses int
	for _, pair := range pairs {
		var out kmerhash.Record
		if !maps[0].Find(pair, &out) {
			misses++
		}
	}
	findElapsed := time.Since(start)

	logger.Info("run complete",
		zap.Int("ranks", *ranks),
		zap.Int("kmers", len(pairs)),
		zap.Uint64("table_size", size),
		zap.Duration("construct", constructElapsed),
		zap.Duration("insert", insertElapsed),
		zap.Duration("find", findElapsed),
		zap.Int("misses", misses),
	)

	fmt.Printf("ranks=%d kmers=%d table_size=%d construct=%s insert=%s find=%s misses=%d\n",
		*ranks, len(pairs), size, constructElapsed, insertElapsed, findElapsed, misses)
	for _, m := range maps {
		fmt.Println(m.Stats())
	}
	if misses > 0 {
		os.Exit(1)
	}
}

// shardRoundRobin splits pairs round-robin across p ranks, simulating each
// rank reading its own slice of the input file. Which rank ends up owning
// each k-mer's home slot is unrelated to this sharding and is decided by
// Insert itself, by hash, independently of which rank happened to read it.
func shardRoundRobin(pairs []kmer.Pair, p int) [][]kmer.Pair {
	out := make([][]kmer.Pair, p)
	for i, pair := range pairs {
		out[i%p] = append(out[i%p], pair)
	}
	return out
}

// readKMers reads a newline-delimited k-mer list: each line is a DNA
// sequence followed by a single forward-extension character (A, C, G, T,
// or F for a contig terminus).
func readKMers(path string) ([]kmer.Pair, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var pairs []kmer.Pair
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if len(line) < 2 {
			return nil, fmt.Errorf("kmerbench: malformed line %q", line)
		}
		seq, forward := line[:len(line)-1], line[len(line)-1]
		pairs = append(pairs, kmer.NewPair(seq, forward))
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return pairs, nil
}
