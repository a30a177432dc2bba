// Command modelpack bundles model artifacts into a single sqlite pack file
// and inspects packs or artifact directories.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/olekukonko/tablewriter"

	"github.com/cliniclab/medscreen/internal/classifier"
	"github.com/cliniclab/medscreen/internal/disease"
	"github.com/cliniclab/medscreen/internal/modelstore"
)

func main() {
	build := flag.Bool("build", false, "Build a model pack from a directory of artifacts")
	list := flag.Bool("list", false, "List the artifacts in a directory or pack")
	dir := flag.String("dir", ".", "Directory containing model artifacts")
	pack := flag.String("pack", "", "Model pack file to inspect")
	out := flag.String("out", "models.pack", "Output pack filename for -build")
	flag.Parse()

	var err error
	switch {
	case *build:
		err = runBuild(*dir, *out)
	case *list && *pack != "":
		err = listPack(*pack)
	case *list:
		err = listDir(*dir)
	default:
		flag.Usage()
		os.Exit(2)
	}
	if err != nil {
		log.Fatal(err)
	}
}

type row struct {
	disease  string
	kind     string
	features int
	created  time.Time
	size     int64
	source   string
}

// newTable returns a writer with the compact aligned style used everywhere
func newTable() *tablewriter.Table {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Disease", "Kind", "Features", "Created", "Size", "Source"})
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")
	return table
}

func render(rows []row) {
	table := newTable()
	for _, r := range rows {
		table.Append([]string{
			r.disease,
			r.kind,
			fmt.Sprintf("%d", r.features),
			r.created.UTC().Format("2006-01-02 15:04"),
			fmt.Sprintf("%.1f KB", float64(r.size)/1024),
			r.source,
		})
	}
	table.Render()
}

// collect loads every readable loose artifact for the known diseases
func collect(dir string) ([]*classifier.Artifact, []row, error) {
	var artifacts []*classifier.Artifact
	var rows []row

	for _, d := range disease.All() {
		for _, name := range modelstore.ArtifactCandidates(d) {
			path := filepath.Join(dir, name)
			info, err := os.Stat(path)
			if err != nil {
				continue
			}

			artifact, err := classifier.Load(path)
			if err != nil {
				fmt.Printf("skipping %s: %v\n", path, err)
				continue
			}
			if artifact.Name != string(d) {
				fmt.Printf("skipping %s: trained for %q\n", path, artifact.Name)
				continue
			}

			artifacts = append(artifacts, artifact)
			rows = append(rows, row{
				disease:  artifact.Name,
				kind:     string(artifact.Kind),
				features: len(artifact.Weights),
				created:  artifact.Created,
				size:     info.Size(),
				source:   path,
			})
			break
		}
	}

	if len(artifacts) == 0 {
		return nil, nil, fmt.Errorf("no artifacts found in %s", dir)
	}
	return artifacts, rows, nil
}

func runBuild(dir, out string) error {
	if _, err := os.Stat(out); err == nil {
		return fmt.Errorf("refusing to overwrite %s", out)
	} else if !errors.Is(err, os.ErrNotExist) {
		return err
	}

	artifacts, rows, err := collect(dir)
	if err != nil {
		return err
	}

	if err := modelstore.WritePack(out, artifacts); err != nil {
		return err
	}

	// Read the pack back so what we report is what a consumer will see
	pack, err := modelstore.ReadPack(out)
	if err != nil {
		return fmt.Errorf("pack verification failed: %w", err)
	}

	fmt.Printf("Packed %d models into %s (pack id %s)\n\n", len(pack.Entries), out, pack.Meta["id"])
	render(rows)
	return nil
}

func listDir(dir string) error {
	_, rows, err := collect(dir)
	if err != nil {
		return err
	}
	render(rows)
	return nil
}

func listPack(path string) error {
	pack, err := modelstore.ReadPack(path)
	if err != nil {
		return err
	}

	fmt.Printf("%s: format %s, created %s, id %s\n\n",
		path, pack.Meta["format"], pack.Meta["created"], pack.Meta["id"])

	rows := make([]row, 0, len(pack.Entries))
	for _, entry := range pack.Entries {
		rows = append(rows, row{
			disease:  entry.Artifact.Name,
			kind:     string(entry.Artifact.Kind),
			features: len(entry.Artifact.Weights),
			created:  entry.Artifact.Created,
			size:     entry.Size,
			source:   "pack",
		})
	}
	render(rows)
	return nil
}
