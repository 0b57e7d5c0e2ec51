// masksummary summarizes a manifest written by combinemasks: per split and
// class, how many combined masks were produced and how their object counts
// distribute. The table is tab-delimited on stdout so it can flow into the
// usual command line tools; a terminal histogram of objects per mask goes to
// stderr.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"sort"
	"strings"

	"github.com/aybabtme/uniplot/histogram"
	"github.com/montanaflynn/stats"

	"github.com/carbocation/cellmisc"
	"github.com/carbocation/cellmisc/maskset"

	_ "github.com/carbocation/cellmisc/compileinfoprint"
)

func main() {
	var manifest string
	var bins int

	flag.StringVar(&manifest, "manifest", "", "Path to a manifest.tsv produced by combinemasks. (Required)")
	flag.IntVar(&bins, "bins", 10, "Bucket count for the objects-per-mask histogram printed to stderr. 0 disables the histogram.")
	flag.Parse()

	if manifest == "" {
		flag.Usage()
		os.Exit(1)
	}

	if err := run(manifest, bins); err != nil {
		log.Fatalln(err)
	}
}

type group struct {
	split string
	class string
}

func run(manifest string, bins int) error {
	entries, err := maskset.ReadManifest(cellmisc.ExpandHome(manifest))
	if err != nil {
		return err
	}

	if len(entries) == 0 {
		return fmt.Errorf("no entries in %s", manifest)
	}

	groups := make(map[group][]float64)
	for _, entry := range entries {
		key := group{split: entry.Split, class: entry.Class}
		groups[key] = append(groups[key], float64(entry.Objects))
	}

	keys := make([]group, 0, len(groups))
	for key := range groups {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].split != keys[j].split {
			return splitRank(keys[i].split) < splitRank(keys[j].split)
		}

		return keys[i].class < keys[j].class
	})

	fmt.Println(strings.Join([]string{
		"Split",
		"Class",
		"Masks",
		"TotalObjects",
		"MeanObjects",
		"SDObjects",
		"MinObjects",
		"MedianObjects",
		"MaxObjects",
	}, "\t"))

	for _, key := range keys {
		data := stats.Float64Data(groups[key])

		sum, err := data.Sum()
		if err != nil {
			return err
		}

		output := []string{key.split, key.class, fmt.Sprintf("%d", len(data)), fmt.Sprintf("%.0f", sum)}

		for _, statFunc := range []func() (float64, error){data.Mean, data.StandardDeviation, data.Min, data.Median, data.Max} {
			fl, err := statFunc()
			if err != nil {
				return err
			}

			output = append(output, fmt.Sprintf("%.3f", fl))
		}

		fmt.Println(strings.Join(output, "\t"))
	}

	if bins > 0 {
		counts := make([]float64, 0, len(entries))
		for _, entry := range entries {
			counts = append(counts, float64(entry.Objects))
		}

		fmt.Fprintln(os.Stderr, "Objects per combined mask:")
		hist := histogram.Hist(bins, counts)
		if err := histogram.Fprint(os.Stderr, hist, histogram.Linear(40)); err != nil {
			return err
		}
	}

	return nil
}

func splitRank(split string) int {
	for i, name := range maskset.SplitNames {
		if name == split {
			return i
		}
	}

	return len(maskset.SplitNames)
}
